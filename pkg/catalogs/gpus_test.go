package catalogs

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/gpumap/pkg/errors"
)

func TestGPUsAddAndSet(t *testing.T) {
	gpus := NewGPUs()
	gpu := TestGPU(t)

	require.NoError(t, gpus.Add(gpu))
	err := gpus.Add(gpu)
	assert.True(t, errors.IsAlreadyExists(err))

	gpu.MemorySizeGB = Float(32)
	require.NoError(t, gpus.Set(gpu))

	got, err := gpus.Get(gpu.Name)
	require.NoError(t, err)
	assert.Equal(t, 32.0, *got.MemorySizeGB)
}

func TestGPUsValidation(t *testing.T) {
	gpus := NewGPUs()
	assert.True(t, errors.IsValidationError(gpus.Set(nil)))
	assert.True(t, errors.IsValidationError(gpus.Set(&GPU{})))
}

func TestGPUsDelete(t *testing.T) {
	gpus := NewGPUs()
	require.NoError(t, gpus.Add(TestGPU(t)))
	require.NoError(t, gpus.Delete("RX 7900 XTX"))
	_, err := gpus.Get("RX 7900 XTX")
	assert.True(t, errors.IsNotFound(err))
	assert.True(t, errors.IsNotFound(gpus.Delete("RX 7900 XTX")))
}

func TestGPUsSearchSkipsUndecodable(t *testing.T) {
	gpus := NewGPUs()
	require.NoError(t, gpus.Add(TestGPU(t)))
	require.NoError(t, gpus.addRaw("RX Broken", "test.yaml", "not a mapping"))

	assert.Equal(t, 2, gpus.Len())
	found := gpus.Search("rx", 10)
	require.Len(t, found, 1)
	assert.Equal(t, "RX 7900 XTX", found[0].Name)
}

func TestGPUsForEachStopsEarly(t *testing.T) {
	gpus := NewGPUs()
	for _, name := range []string{"C", "A", "B"} {
		require.NoError(t, gpus.Add(&GPU{Name: name}))
	}

	var seen []string
	gpus.ForEach(func(name string, _ *GPU, _ error) bool {
		seen = append(seen, name)
		return len(seen) < 2
	})
	assert.Equal(t, []string{"A", "B"}, seen)
}

func TestGPUsSearch(t *testing.T) {
	gpus := NewGPUs()
	for _, name := range []string{"GeForce RTX 4090", "GeForce RTX 3090", "RX 7900 XTX", "Arc A770"} {
		require.NoError(t, gpus.Add(&GPU{Name: name}))
	}

	tests := []struct {
		name  string
		query string
		limit int
		want  []string
	}{
		{"case insensitive", "rtx", 0, []string{"GeForce RTX 3090", "GeForce RTX 4090"}},
		{"limit", "90", 1, []string{"GeForce RTX 3090"}},
		{"no match", "voodoo", 0, nil},
		{"empty query matches all", "", 0, []string{"Arc A770", "GeForce RTX 3090", "GeForce RTX 4090", "RX 7900 XTX"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, gpu := range gpus.Search(tt.query, tt.limit) {
				got = append(got, gpu.Name)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGPUsConcurrentAccess(t *testing.T) {
	gpus := NewGPUs()
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("gpu-%d", i)
			assert.NoError(t, gpus.Set(&GPU{Name: name, MemorySizeGB: Float(float64(i + 1))}))
			_, err := gpus.Get(name)
			assert.NoError(t, err)
			_ = gpus.Names()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, gpus.Len())
}
