package model

import "strings"

// DeviceFilter captures the optional list criteria plus sort and
// pagination controls for one request. Blank strings and nil State mean
// "no constraint on this field".
type DeviceFilter struct {
	Brand         string
	Name          string
	SearchText    string
	State         *State
	SortProperty  string
	SortDirection SortDirection
	Page          uint
	Size          uint
	Paginate      bool
}

func DefaultDeviceFilter() DeviceFilter {
	return DeviceFilter{
		SortProperty:  defaultSortProperty,
		SortDirection: SortDesc,
		Size:          defaultPageSize,
	}
}

// Normalize fills in the sort and size defaults so every consumer sees
// the same effective filter.
func (f *DeviceFilter) Normalize() {
	if strings.TrimSpace(f.SortProperty) == "" {
		f.SortProperty = defaultSortProperty
	}

	if f.SortDirection != SortAsc && f.SortDirection != SortDesc {
		f.SortDirection = SortDesc
	}

	if f.Size == 0 {
		f.Size = defaultPageSize
	}
}

// FromDeviceFilter builds the predicate for a filter. Each set field
// contributes one AND-ed condition:
//   - brand: exact equality, bound as given
//   - name: case-insensitive contains on the trimmed input
//   - state: equality on the canonical string form
//   - searchText: one OR-group matching name, brand, state and the
//     formatted creation time against a single shared pattern
//
// Fields that are blank after trimming contribute nothing; with no field
// set the criteria has no predicate and matches every record.
func FromDeviceFilter(filter DeviceFilter) Criteria {
	filter.Normalize()

	builder := NewCriteria()

	if strings.TrimSpace(filter.Brand) != "" {
		builder.Where("brand", filter.Brand)
	}

	if name := strings.TrimSpace(filter.Name); name != "" {
		builder.WhereILike("name", "%"+name+"%")
	}

	if filter.State != nil {
		builder.Where("state", filter.State.String())
	}

	if searchText := strings.TrimSpace(filter.SearchText); searchText != "" {
		pattern := "%" + searchText + "%"

		builder.WhereShould(
			ILike("name", pattern),
			ILike("brand", pattern),
			ILike("state", pattern),
			ILike("creationTime", pattern),
		)
	}

	sort := filter.SortProperty
	if filter.SortDirection == SortDesc {
		sort = "-" + sort
	}

	builder.OrderBy(sort)

	if filter.Paginate {
		builder.Paginate(filter.Page, filter.Size)
	}

	return builder.Build()
}

type Pagination struct {
	Page           uint
	Size           uint
	TotalItems     uint
	TotalPages     uint
	HasNext        bool
	HasPrevious    bool
	NextCursor     string
	PreviousCursor string
}

// DevicePage is the result of a filtered list query: the matching
// devices for the requested page plus pagination metadata.
type DevicePage struct {
	Items      []*Device
	Pagination Pagination
	Filters    DeviceFilter
}

// EmptyDevicePage is the degraded result returned when a list query
// fails: zero items, zero total, the request's page metadata preserved.
func EmptyDevicePage(filter DeviceFilter) *DevicePage {
	filter.Normalize()

	return &DevicePage{
		Items: []*Device{},
		Pagination: Pagination{
			Page: filter.Page,
			Size: filter.Size,
		},
		Filters: filter,
	}
}
