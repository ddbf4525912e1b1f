package gpumap

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/gpumap/pkg/catalogs"
	"github.com/agentstation/gpumap/pkg/errors"
	"github.com/agentstation/gpumap/pkg/export"
	"github.com/agentstation/gpumap/pkg/logging"
)

func TestNewEmbedded(t *testing.T) {
	c, err := New(WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)

	cat, err := c.Catalog()
	require.NoError(t, err)
	assert.Greater(t, cat.Len(), 0)
}

func TestNewWithInitialCatalog(t *testing.T) {
	tl := logging.NewTestLogger(t)
	cat := catalogs.TestCatalog(t, catalogs.TestGPU(t))

	c, err := New(WithInitialCatalog(cat), WithLogger(tl.Logger))
	require.NoError(t, err)

	var out bytes.Buffer
	summary, err := c.Export(&out)
	require.NoError(t, err)
	assert.Equal(t, export.Summary{Total: 1, Exported: 1}, summary)

	records, err := export.Read(&out)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "RX 7900 XTX", records[0].ModelName)
	tl.AssertContains(t, "Exported 1 GPUs with VRAM information")
}

func TestNewCatalogUnavailable(t *testing.T) {
	_, err := New(WithCatalogPath("does/not/exist"))
	require.Error(t, err)
	assert.True(t, errors.IsUnavailable(err))
}

func TestNewNilCatalog(t *testing.T) {
	_, err := New(WithInitialCatalog(nil))
	assert.Error(t, err)
}

func TestCatalogReturnsCopy(t *testing.T) {
	c, err := New(WithInitialCatalog(catalogs.TestCatalog(t, catalogs.TestGPU(t))))
	require.NoError(t, err)

	cat, err := c.Catalog()
	require.NoError(t, err)
	require.NoError(t, cat.DeleteGPU("RX 7900 XTX"))

	again, err := c.Catalog()
	require.NoError(t, err)
	assert.Equal(t, 1, again.Len())
}
