package datatable

// DefaultPageSize is the page size a fresh ViewState starts with.
const DefaultPageSize = 10

// ViewState is the mutable pagination, filter and sort state of a table.
// It is independent of the data it is applied to.
type ViewState struct {
	PageIndex int
	PageSize  int
	Filter    Filter
	Sort      SortState
}

// DefaultViewState returns the state a table starts in once data arrives.
func DefaultViewState() ViewState {
	return ViewState{
		PageIndex: 0,
		PageSize:  DefaultPageSize,
		Sort:      Unsorted,
	}
}

// View is the result of applying a ViewState to a DataSource.
type View struct {
	// Rows holds the source row indices on the current page, in display order.
	Rows []int
	// Filtered holds every row that passed the filter, sorted.
	Filtered []int
	// PageCount is ceil(len(Filtered) / PageSize).
	PageCount int
}

// FilteredCount returns the number of rows that passed the filter.
func (v View) FilteredCount() int {
	return len(v.Filtered)
}

// ComputeVisibleRows filters, sorts and paginates src according to vs.
// A nil source yields an empty view.
func ComputeVisibleRows(src DataSource, vs ViewState, engine Engine) (View, error) {
	if src == nil {
		return View{Rows: []int{}, Filtered: []int{}}, nil
	}
	if engine == nil {
		engine = DefaultEngine{}
	}

	all := make([]int, src.RowCount())
	for i := range all {
		all[i] = i
	}

	filtered, err := engine.Filter(src, all, vs.Filter)
	if err != nil {
		return View{}, err
	}
	sorted, err := engine.Sort(src, filtered, vs.Sort)
	if err != nil {
		return View{}, err
	}

	return View{
		Rows:      engine.Paginate(sorted, vs.PageIndex, vs.PageSize),
		Filtered:  sorted,
		PageCount: pageCount(len(sorted), vs.PageSize),
	}, nil
}

func pageCount(rows, size int) int {
	if size <= 0 {
		return 0
	}
	return (rows + size - 1) / size
}
