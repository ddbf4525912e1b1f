package app

import (
	"bytes"
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/gpumap"
	"github.com/agentstation/gpumap/pkg/catalogs"
	"github.com/agentstation/gpumap/pkg/errors"
	"github.com/agentstation/gpumap/pkg/export"
	"github.com/agentstation/gpumap/pkg/logging"
)

func testCatalog(t *testing.T) catalogs.Catalog {
	t.Helper()
	zeta := catalogs.ParseDate("2020-01-01")
	return catalogs.TestCatalog(t,
		&catalogs.GPU{Name: "Z1", Manufacturer: catalogs.String("Zeta"), MemorySizeGB: catalogs.Float(8), Architecture: catalogs.String("X"), ReleaseDate: &zeta},
		&catalogs.GPU{Name: "A1", Manufacturer: catalogs.String("Alpha"), MemorySizeGB: catalogs.Float(16), Architecture: catalogs.String("Y")},
		&catalogs.GPU{Name: "Z0", Manufacturer: catalogs.String("Zeta")},
	)
}

// newTestApp creates an app over the test catalog that writes to out.
func newTestApp(t *testing.T, in *bytes.Buffer, out *bytes.Buffer) (*App, *logging.TestLogger) {
	t.Helper()
	tl := logging.NewTestLogger(t)

	client, err := gpumap.New(gpumap.WithInitialCatalog(testCatalog(t)))
	require.NoError(t, err)

	if in == nil {
		in = &bytes.Buffer{}
	}
	app, err := New("1.0.0", "abc123", "2024-01-01", "test",
		WithConfig(&Config{LogFormat: "json", LogOutput: "stderr"}),
		WithLogger(tl.Logger),
		WithClient(client),
		WithIO(in, out),
	)
	require.NoError(t, err)
	return app, tl
}

func TestApp_New(t *testing.T) {
	app, err := New("1.0.0", "abc123", "2024-01-01", "test")
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", app.Version())
	assert.Equal(t, "abc123", app.Commit())
	assert.Equal(t, "2024-01-01", app.Date())
	assert.Equal(t, "test", app.BuiltBy())
	assert.NotNil(t, app.Logger())
	assert.NotNil(t, app.Config())
}

func TestApp_Client_Singleton(t *testing.T) {
	app, err := New("1.0.0", "test", "2024-01-01", "test", WithConfig(&Config{}))
	require.NoError(t, err)

	const goroutines = 20
	var wg sync.WaitGroup
	results := make([]gpumap.Client, goroutines)
	errs := make([]error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = app.Client()
		}(i)
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.Same(t, results[0], results[i])
	}
}

func TestExecute_DefaultRunsExport(t *testing.T) {
	var out bytes.Buffer
	app, tl := newTestApp(t, nil, &out)

	require.NoError(t, app.Execute(context.Background(), []string{}))

	records, err := export.Read(&out)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "A1", records[0].ModelName)
	assert.Nil(t, records[0].ReleaseYear)
	assert.Equal(t, "Z1", records[1].ModelName)
	require.NotNil(t, records[1].ReleaseYear)
	assert.Equal(t, 2020, *records[1].ReleaseYear)

	tl.AssertContains(t, "Processing 3 GPUs...")
	tl.AssertContains(t, "Exported 2 GPUs with VRAM information")
}

func TestExecute_ExportCommandMatchesRoot(t *testing.T) {
	var rootOut, exportOut bytes.Buffer

	app, _ := newTestApp(t, nil, &rootOut)
	require.NoError(t, app.Execute(context.Background(), []string{}))

	app, _ = newTestApp(t, nil, &exportOut)
	require.NoError(t, app.Execute(context.Background(), []string{"export"}))

	assert.Equal(t, rootOut.String(), exportOut.String())
}

func TestExecute_ExportMetricsFile(t *testing.T) {
	var out bytes.Buffer
	app, _ := newTestApp(t, nil, &out)

	path := filepath.Join(t.TempDir(), "gpumap.prom")
	require.NoError(t, app.Execute(context.Background(), []string{"export", "--metrics-file", path}))
	assert.FileExists(t, path)
}

func TestExecute_CatalogUnavailable(t *testing.T) {
	var out bytes.Buffer
	tl := logging.NewTestLogger(t)
	app, err := New("1.0.0", "test", "2024-01-01", "test",
		WithConfig(&Config{CatalogPath: filepath.Join(t.TempDir(), "missing")}),
		WithLogger(tl.Logger),
		WithIO(&bytes.Buffer{}, &out),
	)
	require.NoError(t, err)

	err = app.Execute(context.Background(), []string{})
	require.Error(t, err)
	assert.True(t, errors.IsUnavailable(err))
	assert.Empty(t, out.String())
}

func TestExecute_List(t *testing.T) {
	var out bytes.Buffer
	app, _ := newTestApp(t, nil, &out)

	require.NoError(t, app.Execute(context.Background(), []string{"list", "--manufacturer", "zeta", "-o", "json"}))

	records, err := export.Read(&out)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Z1", records[0].ModelName)
}

func TestExecute_ListSearch(t *testing.T) {
	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{name: "case insensitive", search: "z", want: []string{"Z1"}},
		{name: "exact name", search: "A1", want: []string{"A1"}},
		{name: "no match", search: "rtx", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			app, _ := newTestApp(t, nil, &out)
			require.NoError(t, app.Execute(context.Background(), []string{"list", "--search", tt.search, "-o", "json"}))

			records, err := export.Read(&out)
			require.NoError(t, err)
			var names []string
			for _, r := range records {
				names = append(names, r.ModelName)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestExecute_ListInvalidFormat(t *testing.T) {
	app, _ := newTestApp(t, nil, &bytes.Buffer{})
	err := app.Execute(context.Background(), []string{"list", "-o", "xml"})
	assert.Error(t, err)
}

func TestExecute_Version(t *testing.T) {
	var out bytes.Buffer
	app, _ := newTestApp(t, nil, &out)

	require.NoError(t, app.Execute(context.Background(), []string{"version"}))
	assert.Equal(t, "gpumap 1.0.0\n", out.String())
}

func TestExecute_ExportThenImport(t *testing.T) {
	var doc bytes.Buffer
	app, _ := newTestApp(t, nil, &doc)
	require.NoError(t, app.Execute(context.Background(), []string{}))

	// Diagnostics captured ahead of the document are skipped on import.
	in := bytes.NewBufferString("Processing 3 GPUs...\n" + doc.String())
	dbPath := filepath.Join(t.TempDir(), "gpus.db")

	app, tl := newTestApp(t, in, &bytes.Buffer{})
	require.NoError(t, app.Execute(context.Background(), []string{"import", "--database-url", "sqlite://" + dbPath}))
	tl.AssertContains(t, "Successfully imported 2 GPUs")
	tl.AssertContains(t, `"operation":"import"`)
	tl.AssertContains(t, "Table gpus ready")

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM gpus").Scan(&count))
	assert.Equal(t, 2, count)
}

func TestExecute_ImportWithoutDatabase(t *testing.T) {
	app, _ := newTestApp(t, bytes.NewBufferString("[]\n"), &bytes.Buffer{})
	err := app.Execute(context.Background(), []string{"import"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "DATABASE_URL"))
}
