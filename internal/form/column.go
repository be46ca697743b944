package form

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/schemakit/internal/schema"
)

// Column mini-syntax, one column per line:
//
//	name : tests : description
//
// Tests are semicolon-separated. A test of the form "->model.column" becomes
// a relationships test against that reference, with field set to the column
// name. Everything else is passed through as a named test (unique, not_null,
// custom tests alike).

// ParseColumn parses one column line into a column record.
func ParseColumn(line string) (*schema.Mapping, error) {
	parts := strings.SplitN(line, ":", 3)
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return nil, fmt.Errorf("column %q: name is required", strings.TrimSpace(line))
	}
	col := schema.NewMapping()
	col.Set("name", name)
	if len(parts) > 1 {
		var tests []any
		for _, tok := range strings.Split(parts[1], ";") {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			if to, ok := strings.CutPrefix(tok, "->"); ok {
				rel := schema.NewMapping()
				rel.Set("to", strings.TrimSpace(to))
				rel.Set("field", name)
				test := schema.NewMapping()
				test.Set("relationships", rel)
				tests = append(tests, test)
				continue
			}
			tests = append(tests, tok)
		}
		if len(tests) > 0 {
			col.Set("tests", tests)
		}
	}
	if len(parts) > 2 {
		if desc := strings.TrimSpace(parts[2]); desc != "" {
			col.Set("description", desc)
		}
	}
	return col, nil
}

// ParseColumns parses newline-separated column lines. Blank lines are
// skipped.
func ParseColumns(text string) ([]any, error) {
	var cols []any
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		col, err := ParseColumn(line)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return cols, nil
}

// FormatColumn renders a column record back into the mini-syntax, best
// effort, for prefilling the edit form.
func FormatColumn(col *schema.Mapping) string {
	name := schema.RecordName(col)
	var tests []string
	if v, ok := col.Get("tests"); ok {
		if seq, ok := v.([]any); ok {
			for _, item := range seq {
				switch t := item.(type) {
				case string:
					tests = append(tests, t)
				case *schema.Mapping:
					if rel, ok := t.Get("relationships"); ok {
						if relMap, ok := rel.(*schema.Mapping); ok {
							if to, ok := relMap.Get("to"); ok {
								tests = append(tests, fmt.Sprintf("->%v", to))
							}
						}
					}
				}
			}
		}
	}
	desc := ""
	if v, ok := col.Get("description"); ok {
		desc, _ = v.(string)
	}
	line := name
	if len(tests) > 0 || desc != "" {
		line += ":" + strings.Join(tests, ";")
	}
	if desc != "" {
		line += ":" + desc
	}
	return line
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func toAnySlice(items []string) []any {
	out := make([]any, len(items))
	for i, s := range items {
		out[i] = s
	}
	return out
}
