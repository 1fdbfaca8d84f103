package mapping

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/bearlytools/tracefield/field"
)

// yamlTable is the on disk form of a schema table:
//
//	schemas:
//	  - provider: Microsoft-Windows-WinINet
//	    name: Request
//	    id: 105
//	    version: 1
//	    fields:
//	      - {name: Id, type: int64}
//	      - {name: Uri, type: unicodestring}
//	      - {name: Success, type: bool}
type yamlTable struct {
	Schemas []yamlSchema `yaml:"schemas"`
}

type yamlSchema struct {
	Provider string      `yaml:"provider"`
	Name     string      `yaml:"name"`
	ID       uint16      `yaml:"id"`
	Version  uint8       `yaml:"version"`
	Fields   []yamlField `yaml:"fields"`
}

type yamlField struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// LoadYAML reads a schema table. Field types use the names printed by field.Type.String().
// Unknown keys are an error so that typos do not silently drop fields.
func LoadYAML(r io.Reader) ([]*Schema, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var t yamlTable
	if err := dec.Decode(&t); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("could not decode schema table: %w", err)
	}

	out := make([]*Schema, 0, len(t.Schemas))
	for i, ys := range t.Schemas {
		fields := make([]FieldDescr, 0, len(ys.Fields))
		for _, yf := range ys.Fields {
			ft, ok := field.Parse(yf.Type)
			if !ok {
				return nil, fmt.Errorf("schemas[%d](%s).%s: unknown field type %q", i, ys.Name, yf.Name, yf.Type)
			}
			fields = append(fields, FieldDescr{Name: yf.Name, Type: ft})
		}
		s, err := New(ys.Provider, ys.Name, ys.ID, ys.Version, fields...)
		if err != nil {
			return nil, fmt.Errorf("schemas[%d]: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// LoadYAML reads a schema table and registers every schema in it. Nothing is registered if
// the table fails to decode; a registration error stops at the failing schema.
func (r *Registry) LoadYAML(rd io.Reader) error {
	schemas, err := LoadYAML(rd)
	if err != nil {
		return err
	}
	for _, s := range schemas {
		if err := r.Register(s); err != nil {
			return err
		}
	}
	return nil
}
