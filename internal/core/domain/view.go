package domain

import (
	"errors"
	"fmt"
)

var ErrUnknownSortField = errors.New("unknown sort field")

type SortField string

const (
	SortByID       SortField = "id"
	SortByTitle    SortField = "title"
	SortByPrice    SortField = "price"
	SortByCategory SortField = "category"
)

func ParseSortField(s string) (SortField, error) {
	switch f := SortField(s); f {
	case SortByID, SortByTitle, SortByPrice, SortByCategory:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSortField, s)
}

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ViewState is the user-controlled presentation state: search query,
// active sort and page position.
type ViewState struct {
	Query         string
	SortField     SortField
	SortDirection SortDirection
	Page          int
	PageSize      int
}

// PageMeta describes the pagination controls for the current filtered
// view. Pages is empty when there is a single page only, in which case
// no pagination is rendered.
type PageMeta struct {
	Current    int
	TotalPages int
	Pages      []int
	HasPrev    bool
	HasNext    bool
}

// DashboardView is the renderable projection of the dashboard:
// the page window of the filtered view plus pagination metadata.
type DashboardView struct {
	Products      []Product
	State         ViewState
	Meta          PageMeta
	TotalFiltered int
}

// FileExport is a downloadable document produced from the current
// page window.
type FileExport struct {
	Filename string
	MIME     string
	Data     []byte
}
