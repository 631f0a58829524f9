package datatable

// Filter decides whether a row belongs to the filtered view.
type Filter interface {
	// Evaluate reports whether row passes. columnNames is aligned with row.
	Evaluate(row []Value, columnNames []string) (bool, error)

	// Description returns a human-readable form of the filter.
	Description() string
}
