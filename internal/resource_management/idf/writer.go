package idf

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// commentColumn is where the "!-" field comments start.
const commentColumn = 29

// Field is one value of an object being written, with its "!-" comment.
type Field struct {
	Value   string
	Comment string
}

// F is shorthand for a Field.
func F(value, comment string) Field {
	return Field{Value: value, Comment: comment}
}

// Num formats a number the way IDF files usually carry it.
func Num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Vertex formats one "X,Y,Z" coordinate triple.
func Vertex(x, y, z float64) string {
	return Num(x) + "," + Num(y) + "," + Num(z)
}

// WriteObject writes one object in the usual one-field-per-line layout.
func WriteObject(w io.Writer, typ string, fields ...Field) error {
	var b strings.Builder
	b.WriteString(typ)
	b.WriteString(",\n")
	for i, f := range fields {
		term := ","
		if i == len(fields)-1 {
			term = ";"
		}
		line := "    " + f.Value + term
		if f.Comment != "" {
			if pad := commentColumn - len(line); pad > 0 {
				line += strings.Repeat(" ", pad)
			} else {
				line += " "
			}
			line += "!- " + f.Comment
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteComment writes a "!" comment line.
func WriteComment(w io.Writer, format string, args ...interface{}) error {
	_, err := fmt.Fprintf(w, "! "+format+"\n", args...)
	return err
}
