package domain

// Table is the immutable, in-memory reference table. It is built once at
// startup and only read afterwards, so it is safe for concurrent use without
// locking. The zero value and NewTable(nil) are both empty tables.
type Table struct {
	rows  []Food
	names []string
	index map[string]int // name -> first row position
	dupes []string
}

// NewTable indexes rows by exact name. Rows keep their order; when a name
// repeats, lookups resolve to the first row and the name is reported by
// Duplicates.
func NewTable(rows []Food) *Table {
	t := &Table{
		rows:  make([]Food, len(rows)),
		names: make([]string, len(rows)),
		index: make(map[string]int, len(rows)),
	}
	copy(t.rows, rows)
	for i, r := range t.rows {
		t.names[i] = r.Name
		if _, ok := t.index[r.Name]; ok {
			t.dupes = append(t.dupes, r.Name)
			continue
		}
		t.index[r.Name] = i
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Names returns every row name in file order, duplicates included.
func (t *Table) Names() []string {
	if t == nil {
		return []string{}
	}
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Rows returns a copy of all rows in file order.
func (t *Table) Rows() []Food {
	if t == nil {
		return nil
	}
	out := make([]Food, len(t.rows))
	copy(out, t.rows)
	return out
}

// Lookup finds the first row whose name matches exactly. No case folding or
// trimming is applied.
func (t *Table) Lookup(name string) (Food, bool) {
	if t == nil {
		return Food{}, false
	}
	i, ok := t.index[name]
	if !ok {
		return Food{}, false
	}
	return t.rows[i], true
}

// Duplicates lists names that appear on more than one row, once per extra
// occurrence.
func (t *Table) Duplicates() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.dupes...)
}
