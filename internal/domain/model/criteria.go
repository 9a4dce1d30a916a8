package model

type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"

	defaultSortProperty      = "id"
	defaultPageSize     uint = 10
)

type (
	SortField struct {
		Field     string
		Direction SortDirection
	}

	// Criteria is the rendered form of a DeviceFilter: an optional
	// predicate tree plus sorting and pagination controls.
	Criteria struct {
		spec     Specification
		sorting  []SortField
		page     uint
		size     uint
		paginate bool
	}
)

func (c Criteria) Spec() Specification  { return c.spec }
func (c Criteria) Sorting() []SortField { return c.sorting }
func (c Criteria) Page() uint           { return c.page }
func (c Criteria) Size() uint           { return c.size }
func (c Criteria) Offset() uint         { return c.page * c.size }
func (c Criteria) HasSpec() bool        { return c.spec != nil }
func (c Criteria) HasSorting() bool     { return len(c.sorting) > 0 }
func (c Criteria) IsPaginated() bool    { return c.paginate }
