package schema

// NewRecord builds a model record from a name and a set of form fields.
// The name key is always inserted first; the remaining fields follow in
// their original order. A name key inside fields is skipped so the explicit
// name argument wins.
func NewRecord(name string, fields *Mapping) *Mapping {
	rec := NewMapping()
	rec.Set("name", name)
	if fields == nil {
		return rec
	}
	for _, k := range fields.Keys() {
		if k == "name" {
			continue
		}
		v, _ := fields.Get(k)
		rec.Set(k, v)
	}
	return rec
}

// RecordName returns the name of a record inside a models sequence, or ""
// when the element is not a named record.
func RecordName(item any) string {
	rec, ok := item.(*Mapping)
	if !ok {
		return ""
	}
	v, _ := rec.Get("name")
	name, _ := v.(string)
	return name
}
