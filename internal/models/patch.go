package models

// PatchField is one column assignment of a partial write.
type PatchField struct {
	Column string
	Value  any
}

// Patch is an ordered, sparse set of column assignments. Only fields that
// carry a value are present; absent fields are left untouched by the write.
type Patch []PatchField

// PatchBuilder collects optional column values and projects them to a Patch.
type PatchBuilder struct {
	fields Patch
}

// Int records column when v is non-nil.
func (b *PatchBuilder) Int(column string, v *int) *PatchBuilder {
	if v != nil {
		b.fields = append(b.fields, PatchField{Column: column, Value: *v})
	}
	return b
}

// Int64 records column when v is non-nil.
func (b *PatchBuilder) Int64(column string, v *int64) *PatchBuilder {
	if v != nil {
		b.fields = append(b.fields, PatchField{Column: column, Value: *v})
	}
	return b
}

// String records column when v is non-nil.
func (b *PatchBuilder) String(column string, v *string) *PatchBuilder {
	if v != nil {
		b.fields = append(b.fields, PatchField{Column: column, Value: *v})
	}
	return b
}

// Float records column when v is non-nil.
func (b *PatchBuilder) Float(column string, v *float64) *PatchBuilder {
	if v != nil {
		b.fields = append(b.fields, PatchField{Column: column, Value: *v})
	}
	return b
}

// Set records column unconditionally, replacing an earlier value for it.
func (b *PatchBuilder) Set(column string, v any) *PatchBuilder {
	for i := range b.fields {
		if b.fields[i].Column == column {
			b.fields[i].Value = v
			return b
		}
	}
	b.fields = append(b.fields, PatchField{Column: column, Value: v})
	return b
}

// Build returns the collected fields.
func (b *PatchBuilder) Build() Patch {
	out := make(Patch, len(b.fields))
	copy(out, b.fields)
	return out
}

// Empty reports whether the patch writes nothing.
func (p Patch) Empty() bool { return len(p) == 0 }

// Map returns the patch as a column->value map, the shape squirrel's SetMap
// and Insert builders accept.
func (p Patch) Map() map[string]any {
	m := make(map[string]any, len(p))
	for _, f := range p {
		m[f.Column] = f.Value
	}
	return m
}

// Columns returns the column names in patch order.
func (p Patch) Columns() []string {
	cols := make([]string, len(p))
	for i, f := range p {
		cols[i] = f.Column
	}
	return cols
}

// Values returns the values in patch order.
func (p Patch) Values() []any {
	vals := make([]any, len(p))
	for i, f := range p {
		vals[i] = f.Value
	}
	return vals
}

// Get returns the value stored for column.
func (p Patch) Get(column string) (any, bool) {
	for _, f := range p {
		if f.Column == column {
			return f.Value, true
		}
	}
	return nil, false
}
