package catalogs

import (
	"sort"
	"strings"
	"sync"

	"github.com/agentstation/gpumap/pkg/constants"
	"github.com/agentstation/gpumap/pkg/errors"
)

// record is one catalog entry. Entries loaded from files keep their raw YAML
// value and are decoded on first access.
type record struct {
	source string // file the entry came from; empty when set in code
	raw    any

	once sync.Once
	gpu  *GPU
	err  error
}

// newDecodedRecord wraps an already typed GPU.
func newDecodedRecord(gpu *GPU) *record {
	r := &record{gpu: gpu}
	r.once.Do(func() {})
	return r
}

// decode returns the typed GPU, decoding the raw value once.
func (r *record) decode(name string) (*GPU, error) {
	r.once.Do(func() {
		r.gpu, r.err = decodeGPU(name, r.source, r.raw)
	})
	return r.gpu, r.err
}

// GPUs is a concurrent safe map of GPU records keyed by model name.
type GPUs struct {
	mu      sync.RWMutex
	records map[string]*record
}

// GPUsOption defines a function that configures a GPUs instance.
type GPUsOption func(*GPUs)

// WithGPUsCapacity sets the initial capacity of the map.
func WithGPUsCapacity(capacity int) GPUsOption {
	return func(g *GPUs) {
		g.records = make(map[string]*record, capacity)
	}
}

// NewGPUs creates a new GPUs map with optional configuration.
func NewGPUs(opts ...GPUsOption) *GPUs {
	g := &GPUs{
		records: make(map[string]*record),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Get returns a copy of the GPU stored under name.
func (g *GPUs) Get(name string) (*GPU, error) {
	g.mu.RLock()
	rec, ok := g.records[name]
	g.mu.RUnlock()

	if !ok {
		return nil, errors.NewNotFoundError("gpu", name)
	}

	gpu, err := rec.decode(name)
	if err != nil {
		return nil, err
	}
	return gpu.Copy(), nil
}

// Set stores a GPU under its name, replacing any existing entry.
func (g *GPUs) Set(gpu *GPU) error {
	if err := validateGPU(gpu); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.records[gpu.Name] = newDecodedRecord(gpu.Copy())
	return nil
}

// Add adds a GPU, returning an error if the name is already taken.
func (g *GPUs) Add(gpu *GPU) error {
	if err := validateGPU(gpu); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.records[gpu.Name]; exists {
		return &errors.AlreadyExistsError{Resource: "gpu", ID: gpu.Name}
	}
	g.records[gpu.Name] = newDecodedRecord(gpu.Copy())
	return nil
}

// addRaw adds an undecoded entry loaded from source.
func (g *GPUs) addRaw(name, source string, raw any) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.records[name]; exists {
		return &errors.AlreadyExistsError{Resource: "gpu", ID: name}
	}
	if len(g.records) >= constants.MaxCatalogGPUs {
		return errors.NewValidationError("gpus", len(g.records), "catalog exceeds the maximum number of GPUs")
	}
	g.records[name] = &record{source: source, raw: raw}
	return nil
}

// Delete removes a GPU by name. Returns an error if it doesn't exist.
func (g *GPUs) Delete(name string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.records[name]; !exists {
		return errors.NewNotFoundError("gpu", name)
	}

	delete(g.records, name)
	return nil
}

// Len returns the number of entries, including ones that fail to decode.
func (g *GPUs) Len() int {
	g.mu.RLock()
	length := len(g.records)
	g.mu.RUnlock()
	return length
}

// Names returns all model names in ascending order.
func (g *GPUs) Names() []string {
	g.mu.RLock()
	names := make([]string, 0, len(g.records))
	for name := range g.records {
		names = append(names, name)
	}
	g.mu.RUnlock()

	sort.Strings(names)
	return names
}

// ForEach calls fn for each entry in name order with the decoded GPU or the
// decode error. Iteration stops early when fn returns false.
func (g *GPUs) ForEach(fn func(name string, gpu *GPU, err error) bool) {
	for _, name := range g.Names() {
		gpu, err := g.Get(name)
		if errors.IsNotFound(err) {
			continue // deleted concurrently
		}
		if !fn(name, gpu, err) {
			return
		}
	}
}

// Search returns GPUs whose name contains query, ignoring case, ordered by
// name and capped at limit. A limit of zero or less uses the default.
func (g *GPUs) Search(query string, limit int) []*GPU {
	if limit <= 0 {
		limit = constants.DefaultSearchLimit
	}
	needle := strings.ToLower(strings.TrimSpace(query))

	var results []*GPU
	g.ForEach(func(name string, gpu *GPU, err error) bool {
		if err != nil || !strings.Contains(strings.ToLower(name), needle) {
			return true
		}
		results = append(results, gpu)
		return len(results) < limit
	})
	return results
}

// clone copies the map. Entries are shared: raw values are never mutated and
// decoded GPUs are copied on every Get.
func (g *GPUs) clone() *GPUs {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := NewGPUs(WithGPUsCapacity(len(g.records)))
	for name, rec := range g.records {
		out.records[name] = rec
	}
	return out
}

func validateGPU(gpu *GPU) error {
	if gpu == nil {
		return errors.NewValidationError("gpu", nil, "gpu cannot be nil")
	}
	if gpu.Name == "" {
		return errors.NewValidationError("name", gpu.Name, "gpu name cannot be empty")
	}
	return nil
}
