package schema

import (
	"regexp"
	"slices"
	"strings"
)

// candidate is one (name, raw type) pair produced by a matcher.
type candidate struct {
	name    string
	rawType string
}

// Pattern families for field declarations. All of them run over the full
// lowercased text and their matches are unioned; when the same name is
// detected more than once, the last match wins (map overwrite semantics).
var fieldPatterns = []*regexp.Regexp{
	// "field nombre (texto)" / "campo nombre (texto)"
	regexp.MustCompile(`(?:field|campo)\s+(\w+)\s+\((\w+)\)`),
	// "edad: entero" anchored to the start of a line
	regexp.MustCompile(`(?m)^\s*-?\s*(\w+)\s*:\s*(\w+)`),
	// "- nombre (texto)"
	regexp.MustCompile(`-\s*(\w+)\s+\((\w+)\)`),
	// bare "nombre (texto)"
	regexp.MustCompile(`(\w+)\s+\((\w+)\)`),
	// "titulo es un texto" / "title is a string"
	regexp.MustCompile(`(\w+)\s+(?:is\s+an?|es\s+un[ao]?)\s+(\w+)`),
}

// keywordFields maps well-known field names to raw types for the fallback
// scan when no pattern matched anything. Slice order is iteration order.
var keywordFields = []struct {
	word    string
	rawType string
}{
	{"name", "string"},
	{"nombre", "string"},
	{"apellido", "string"},
	{"address", "string"},
	{"direccion", "string"},
	{"city", "string"},
	{"ciudad", "string"},
	{"country", "string"},
	{"pais", "string"},
	{"email", "email"},
	{"correo", "email"},
	{"phone", "string"},
	{"telefono", "string"},
	{"age", "integer"},
	{"edad", "integer"},
	{"price", "number"},
	{"precio", "number"},
	{"quantity", "integer"},
	{"cantidad", "integer"},
	{"date", "date"},
	{"fecha", "date"},
	{"description", "string"},
	{"descripcion", "string"},
	{"title", "string"},
	{"titulo", "string"},
	{"url", "url"},
	{"active", "boolean"},
	{"activo", "boolean"},
	{"enabled", "boolean"},
	{"habilitado", "boolean"},
}

// typeSynonyms maps raw (possibly Spanish) type words to JSON Schema types.
// Unknown raw types default to string.
var typeSynonyms = map[string]string{
	"texto":    "string",
	"cadena":   "string",
	"string":   "string",
	"str":      "string",
	"numero":   "number",
	"number":   "number",
	"float":    "number",
	"decimal":  "number",
	"entero":   "integer",
	"int":      "integer",
	"integer":  "integer",
	"booleano": "boolean",
	"bool":     "boolean",
	"boolean":  "boolean",
	"fecha":    "string",
	"date":     "string",
	"email":    "string",
	"correo":   "string",
	"url":      "string",
	"array":    "array",
	"lista":    "array",
	"arreglo":  "array",
	"objeto":   "object",
	"object":   "object",
}

var requiredKeyword = regexp.MustCompile(`\b(obligatorio|requerido|required)\b`)

var segmentSplit = regexp.MustCompile(`[.!?\n]+`)

// Infer analyzes a natural-language description and produces a JSON Schema
// document for the fields it detects. It never fails: input with no
// recognizable fields (including the empty string) yields a single generic
// placeholder property marked required.
func Infer(text string) Document {
	lower := strings.ToLower(text)

	var cands []candidate
	for _, re := range fieldPatterns {
		for _, m := range re.FindAllStringSubmatch(lower, -1) {
			cands = append(cands, candidate{name: m[1], rawType: m[2]})
		}
	}
	if len(cands) == 0 {
		cands = keywordCandidates(lower)
	}

	doc := Document{
		Schema:      DraftURL,
		Title:       "Generated Schema",
		Description: "Schema generated automatically from text",
		Type:        "object",
		Properties:  &Properties{},
		Required:    []string{},
	}

	segments := segmentSplit.Split(lower, -1)
	for _, c := range cands {
		prop := propertyFor(c.rawType)
		if isRequired(c.name, segments) {
			prop.Description = "Field " + c.name + " (required)"
			if !slices.Contains(doc.Required, c.name) {
				doc.Required = append(doc.Required, c.name)
			}
		} else {
			prop.Description = "Field " + c.name
		}
		doc.Properties.Set(c.name, prop)
	}

	if doc.Properties.Len() == 0 {
		doc.Properties.Set("example", Property{
			Type:        "string",
			Description: "No specific fields detected. This is a generic example.",
		})
		doc.Required = []string{"example"}
	}

	return doc
}

// keywordCandidates scans whitespace-split words for exact matches against
// the keyword dictionary. No stemming; dictionary order decides output order.
func keywordCandidates(lower string) []candidate {
	words := strings.Fields(lower)
	var cands []candidate
	for _, kf := range keywordFields {
		if slices.Contains(words, kf.word) {
			cands = append(cands, candidate{name: kf.word, rawType: kf.rawType})
		}
	}
	return cands
}

// propertyFor maps a raw type word to a Property, attaching formats for
// email/date/url and default string items for arrays.
func propertyFor(rawType string) Property {
	jsonType, ok := typeSynonyms[rawType]
	if !ok {
		jsonType = "string"
	}

	prop := Property{Type: jsonType}
	switch rawType {
	case "email", "correo":
		prop.Format = "email"
	case "fecha", "date":
		prop.Format = "date"
	case "url":
		prop.Format = "uri"
	}
	if jsonType == "array" {
		prop.Items = &Items{Type: "string"}
	}
	return prop
}

// isRequired reports whether any sentence/line segment mentions the field
// name followed by an obligatory keyword. The search inside a segment is
// deliberately loose: any later keyword mention in the same segment counts,
// even if it refers to something else.
func isRequired(name string, segments []string) bool {
	nameRe, err := regexp.Compile(`\b` + regexp.QuoteMeta(name) + `\b`)
	if err != nil {
		return false
	}
	for _, seg := range segments {
		loc := nameRe.FindStringIndex(seg)
		if loc == nil {
			continue
		}
		if requiredKeyword.MatchString(seg[loc[1]:]) {
			return true
		}
	}
	return false
}
