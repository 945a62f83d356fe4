package idf

import (
	"regexp"
	"strings"
)

// Object types the parser extracts. Type tokens are lowercased with all
// spaces removed before comparison.
const (
	TypeMaterial      = "material"
	TypeNoMass        = "material:nomass"
	TypeAirGap        = "material:airgap"
	TypeSimpleGlazing = "windowmaterial:simpleglazingsystem"
	TypeConstruction  = "construction"
)

var commentRe = regexp.MustCompile(`![^\n]*`)

// Object is one semicolon-terminated IDF block.
type Object struct {
	Type   string
	Fields []string
}

// Name returns the first field, or "" when the object has none.
func (o Object) Name() string {
	if len(o.Fields) == 0 {
		return ""
	}
	return o.Fields[0]
}

// Clean strips comments and normalizes whitespace that editors and
// spreadsheet exports tend to leave behind.
func Clean(text string) string {
	text = commentRe.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "\u00a0", " ")
	text = strings.ReplaceAll(text, "\u200b", "")
	text = strings.ReplaceAll(text, "\t", " ")
	return text
}

// Split cleans text and returns its objects in declaration order. Blocks
// without a comma are ignored, as are empty fields.
func Split(text string) []Object {
	var out []Object
	for _, block := range strings.Split(Clean(text), ";") {
		block = strings.TrimSpace(block)
		if block == "" || !strings.Contains(block, ",") {
			continue
		}

		head, rest, _ := strings.Cut(block, ",")
		obj := Object{Type: typeToken(head)}
		for _, f := range strings.Split(rest, ",") {
			if f = strings.TrimSpace(f); f != "" {
				obj.Fields = append(obj.Fields, f)
			}
		}
		out = append(out, obj)
	}
	return out
}

func typeToken(head string) string {
	return strings.ToLower(strings.Join(strings.Fields(head), ""))
}
