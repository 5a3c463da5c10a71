package schema

import (
	"bytes"
	"encoding/json"
)

// DraftURL identifies the JSON Schema dialect emitted by Infer.
const DraftURL = "http://json-schema.org/draft-07/schema#"

// Property describes a single inferred field.
type Property struct {
	Type        string `json:"type"`
	Format      string `json:"format,omitempty"`
	Items       *Items `json:"items,omitempty"`
	Description string `json:"description,omitempty"`
}

// Items describes array element types.
type Items struct {
	Type string `json:"type"`
}

// Document is a complete JSON Schema object. It is built in one call and
// never mutated after return.
type Document struct {
	Schema      string      `json:"$schema"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Type        string      `json:"type"`
	Properties  *Properties `json:"properties"`
	Required    []string    `json:"required"`
}

// Properties is an insertion-ordered name -> Property map. Go maps don't
// preserve order, and property order must match detection order, so
// marshaling is done by hand.
type Properties struct {
	names  []string
	byName map[string]Property
}

// Set inserts or overwrites a property. A name keeps its original position
// when overwritten; only the value changes.
func (p *Properties) Set(name string, prop Property) {
	if p.byName == nil {
		p.byName = make(map[string]Property)
	}
	if _, exists := p.byName[name]; !exists {
		p.names = append(p.names, name)
	}
	p.byName[name] = prop
}

// Get returns the property for name, if present.
func (p *Properties) Get(name string) (Property, bool) {
	prop, ok := p.byName[name]
	return prop, ok
}

// Len returns the number of properties.
func (p *Properties) Len() int {
	return len(p.names)
}

// Names returns property names in insertion order.
func (p *Properties) Names() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

// MarshalJSON emits properties in insertion order.
func (p *Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range p.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(p.byName[name])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
