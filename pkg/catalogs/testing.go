package catalogs

import (
	"testing"
)

// TestGPU creates a test GPU with sensible defaults.
// The t.Helper() call ensures stack traces point to the test, not this function.
func TestGPU(t testing.TB) *GPU {
	t.Helper()
	released := ParseDate("2022-12-13")
	return &GPU{
		Name:         "RX 7900 XTX",
		Manufacturer: String("AMD"),
		MemorySizeGB: Float(24),
		Architecture: String("RDNA 3"),
		ReleaseDate:  &released,
	}
}

// TestCatalog creates an in-memory catalog holding the given GPUs.
func TestCatalog(t testing.TB, gpus ...*GPU) Catalog {
	t.Helper()
	cat := NewEmpty()
	for _, gpu := range gpus {
		if err := cat.SetGPU(*gpu); err != nil {
			t.Fatalf("failed to add gpu %q: %v", gpu.Name, err)
		}
	}
	return cat
}
