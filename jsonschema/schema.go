// Package jsonschema holds the serializable JSON Schema representation
// emitted by the schema generator. It stays a plain data struct so output
// is deterministic under encoding: struct fields marshal in declaration
// order and $defs keys sort lexicographically.
package jsonschema

// Schema is a minimal JSON Schema representation used for export.
type Schema struct {
	// Core
	Ref     string `json:"$ref,omitempty"`
	Type    string `json:"type,omitempty"`
	Format  string `json:"format,omitempty"`
	Title   string `json:"title,omitempty"`
	Default any    `json:"default,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	Items    *Schema `json:"items,omitempty"`
	MinItems *int    `json:"minItems,omitempty"`
	MaxItems *int    `json:"maxItems,omitempty"`

	// Numeric
	Minimum *float64 `json:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty"`

	// Union
	OneOf []*Schema `json:"oneOf,omitempty"`
	AnyOf []*Schema `json:"anyOf,omitempty"`

	// Shared definitions referenced via "#/$defs/<name>".
	Defs map[string]*Schema `json:"$defs,omitempty"`

	// Dtype is a non-enforcing provenance annotation naming the element
	// type constraint that produced this schema, for consumers that want
	// more than the JSON Schema vocabulary expresses.
	Dtype string `json:"dtype,omitempty"`
}

// DefRef returns a $ref schema pointing at a shared definition.
func DefRef(name string) *Schema { return &Schema{Ref: "#/$defs/" + name} }
