package catalogs

// GPU is a graphics card model. Every field except Name is optional and is
// nil when the catalog has no value for it.
type GPU struct {
	Name         string   `json:"name" yaml:"name"`
	Manufacturer *string  `json:"manufacturer,omitempty" yaml:"manufacturer,omitempty"`
	MemorySizeGB *float64 `json:"memory_size_gb,omitempty" yaml:"memory_size_gb,omitempty"`
	Architecture *string  `json:"architecture,omitempty" yaml:"architecture,omitempty"`
	ReleaseDate  *Date    `json:"release_date,omitempty" yaml:"release_date,omitempty"`
}

// Copy returns a deep copy of the GPU.
func (g GPU) Copy() *GPU {
	out := GPU{Name: g.Name}
	if g.Manufacturer != nil {
		out.Manufacturer = String(*g.Manufacturer)
	}
	if g.MemorySizeGB != nil {
		out.MemorySizeGB = Float(*g.MemorySizeGB)
	}
	if g.Architecture != nil {
		out.Architecture = String(*g.Architecture)
	}
	if g.ReleaseDate != nil {
		d := *g.ReleaseDate
		out.ReleaseDate = &d
	}
	return &out
}

// String returns a pointer to s.
func String(s string) *string {
	return &s
}

// Float returns a pointer to f.
func Float(f float64) *float64 {
	return &f
}
