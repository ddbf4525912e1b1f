package catalogs

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/gpumap/pkg/constants"
	"github.com/agentstation/gpumap/pkg/errors"
)

// Load reads every YAML file below the configured filesystem into the catalog.
// Each file is a mapping from model name to GPU fields:
//
//	RX 7900 XTX:
//	  manufacturer: AMD
//	  memory_size_gb: 24
//	  architecture: RDNA 3
//	  release_date: 2022-12-13
//
// Files are visited in lexical path order. A model name defined twice fails the load.
func (cat *catalog) Load() error {
	if cat.options.readFS == nil {
		return errors.NewConfigError("catalog", "no filesystem configured", nil)
	}

	return fs.WalkDir(cat.options.readFS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.WrapIO("walk", p, err)
		}
		if d.IsDir() || path.Ext(p) != constants.CatalogFileExtension {
			return nil
		}
		return cat.loadFile(p)
	})
}

// loadFile adds the entries of a single catalog file.
func (cat *catalog) loadFile(p string) error {
	data, err := fs.ReadFile(cat.options.readFS, p)
	if err != nil {
		return errors.WrapIO("read", p, err)
	}

	var entries yaml.MapSlice
	if err := yaml.UnmarshalWithOptions(data, &entries, yaml.UseOrderedMap()); err != nil {
		return errors.WrapParse("yaml", p, err)
	}

	for _, item := range entries {
		name, ok := modelName(item.Key)
		if !ok {
			return errors.NewParseError("yaml", p, fmt.Sprintf("invalid model name %v", item.Key), nil)
		}
		if err := cat.gpus.addRaw(name, p, item.Value); err != nil {
			return errors.NewParseError("yaml", p, fmt.Sprintf("cannot add %s: %v", name, err), err)
		}
	}
	return nil
}

// modelName converts a mapping key to a model name. Unquoted keys such as
// 4090 or 1.5 are parsed by YAML as scalars and keep their text form.
func modelName(key any) (string, bool) {
	var name string
	switch k := key.(type) {
	case string:
		name = k
	case int, int64, uint64, float64, bool:
		name = fmt.Sprint(k)
	default:
		return "", false
	}
	return name, strings.TrimSpace(name) != ""
}

// decodeGPU converts a raw catalog entry into a GPU. Absent and null fields
// stay nil. A field holding a value of the wrong kind is an error.
func decodeGPU(name, source string, raw any) (*GPU, error) {
	gpu := &GPU{Name: name}

	fields, err := entryFields(raw)
	if err != nil {
		return nil, decodeError(source, name, err)
	}

	for key, value := range fields {
		switch key {
		case "manufacturer":
			gpu.Manufacturer, err = optionalString(key, value)
		case "architecture":
			gpu.Architecture, err = optionalString(key, value)
		case "memory_size_gb":
			gpu.MemorySizeGB, err = optionalNumber(key, value)
		case "release_date":
			gpu.ReleaseDate, err = optionalDate(key, value)
		}
		if err != nil {
			return nil, decodeError(source, name, err)
		}
	}

	return gpu, nil
}

func decodeError(source, name string, err error) error {
	return errors.NewParseError("yaml", source, fmt.Sprintf("invalid entry %s: %v", name, err), err)
}

// entryFields accepts the shapes goccy/go-yaml produces for a mapping.
func entryFields(raw any) (map[string]any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return v, nil
	case yaml.MapSlice:
		out := make(map[string]any, len(v))
		for _, item := range v {
			key, ok := item.Key.(string)
			if !ok {
				return nil, errors.NewValidationError("entry", item.Key, "field names must be strings")
			}
			out[key] = item.Value
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, value := range v {
			key, ok := k.(string)
			if !ok {
				return nil, errors.NewValidationError("entry", k, "field names must be strings")
			}
			out[key] = value
		}
		return out, nil
	default:
		return nil, errors.NewValidationError("entry", raw, "entry must be a mapping")
	}
}

func optionalString(field string, value any) (*string, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		return String(v), nil
	default:
		return nil, errors.NewValidationError(field, value, "must be a string")
	}
}

func optionalNumber(field string, value any) (*float64, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case int:
		return Float(float64(v)), nil
	case int64:
		return Float(float64(v)), nil
	case uint64:
		return Float(float64(v)), nil
	case float64:
		return Float(v), nil
	case float32:
		return Float(float64(v)), nil
	default:
		return nil, errors.NewValidationError(field, value, "must be a number")
	}
}

func optionalDate(field string, value any) (*Date, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}
		d := ParseDate(v)
		return &d, nil
	case time.Time:
		d := DateFromTime(v)
		return &d, nil
	case int, int64, uint64:
		// A bare year such as 2021 is read as an integer.
		d := ParseDate(fmt.Sprint(v))
		return &d, nil
	default:
		return nil, errors.NewValidationError(field, value, "must be a date")
	}
}
