// Package specfile loads named array specifications from model-definition
// documents, so a schema for several array-valued fields can live next to
// the model instead of in code:
//
//	fields:
//	  image:
//	    shape: "* x, * y, 3-4 rgb"
//	    dtype: uint8
//	  embedding:
//	    shape: "768"
//	    dtype: float32
//
// Both YAML and JSON documents are accepted.
package specfile

import (
	"fmt"
	"sort"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	gondarray "github.com/reoring/gondarray"
)

// Decl is one field's textual constraint pair.
type Decl struct {
	Shape string `json:"shape" yaml:"shape"`
	Dtype string `json:"dtype" yaml:"dtype"`
}

// Document is the on-disk layout.
type Document struct {
	Fields map[string]Decl `json:"fields" yaml:"fields"`
}

// LoadYAML parses a YAML model definition into ArraySpecs keyed by field
// name.
func LoadYAML(data []byte) (map[string]gondarray.ArraySpec, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("specfile: %w", err)
	}
	return build(doc)
}

// LoadJSON parses a JSON model definition into ArraySpecs keyed by field
// name.
func LoadJSON(data []byte) (map[string]gondarray.ArraySpec, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("specfile: %w", err)
	}
	return build(doc)
}

func build(doc Document) (map[string]gondarray.ArraySpec, error) {
	if len(doc.Fields) == 0 {
		return nil, fmt.Errorf("specfile: document declares no fields")
	}
	specs := make(map[string]gondarray.ArraySpec, len(doc.Fields))
	// deterministic error order
	names := make([]string, 0, len(doc.Fields))
	for name := range doc.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		decl := doc.Fields[name]
		if decl.Dtype == "" {
			decl.Dtype = "any"
		}
		spec, err := gondarray.NewSpec(decl.Shape, decl.Dtype)
		if err != nil {
			return nil, fmt.Errorf("specfile: field %q: %w", name, err)
		}
		specs[name] = spec
	}
	return specs, nil
}
