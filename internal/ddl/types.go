package ddl

import "segprep/internal/frame"

// ColumnDef describes one column of a table definition. Name is unquoted;
// quoting happens at render time.
type ColumnDef struct {
	Name     string
	SQLType  string
	Nullable bool
}

// TableDef holds a dotted table name ("schema.table") and its ordered columns.
type TableDef struct {
	FQN     string
	Columns []ColumnDef
}

// Dialect carries the per-backend differences that matter for CREATE TABLE.
type Dialect struct {
	Name string

	// Numeric and Object are the SQL types for the two column kinds.
	Numeric string
	Object  string

	// Quote quotes one identifier segment.
	Quote func(string) string

	// Guard wraps a CREATE TABLE so it is a no-op when the table exists.
	// When nil, "IF NOT EXISTS" is emitted.
	Guard func(fqn, create string) string
}

// FromDataset derives a table definition from the dataset's column kinds.
// Every column is nullable; the pipeline may leave missing cells behind.
func FromDataset(fqn string, ds *frame.Dataset, d Dialect) TableDef {
	t := TableDef{FQN: fqn, Columns: make([]ColumnDef, 0, ds.Width())}
	for _, c := range ds.Columns() {
		typ := d.Object
		if c.Kind() == frame.Numeric {
			typ = d.Numeric
		}
		t.Columns = append(t.Columns, ColumnDef{Name: c.Name(), SQLType: typ, Nullable: true})
	}
	return t
}
