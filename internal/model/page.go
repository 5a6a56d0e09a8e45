package model

import "fmt"

const (
	// MaxPageLimit caps how many rows a single page may return.
	MaxPageLimit = 100
)

// Page selects a window of an ordered listing.
//
// Paged listings are ordered by creation time, then identifier, so
// consecutive pages neither overlap nor skip rows while the data is stable.
type Page struct {
	Limit  int
	Offset int
}

// Validate checks the page bounds.
func (p Page) Validate() error {
	if p.Limit < 1 || p.Limit > MaxPageLimit {
		return fmt.Errorf("page limit must be between 1 and %d, got %d", MaxPageLimit, p.Limit)
	}
	if p.Offset < 0 {
		return fmt.Errorf("page offset must be non-negative, got %d", p.Offset)
	}
	return nil
}

// PageRequest carries optional paging query parameters.
type PageRequest struct {
	Limit  *int `json:"limit,omitempty" query:"limit" validate:"omitempty,min=1,max=100"`
	Offset *int `json:"offset,omitempty" query:"offset" validate:"omitempty,min=0"`
}

// Page returns the requested page, or false when no limit was supplied.
func (r PageRequest) Page() (Page, bool) {
	if r.Limit == nil {
		return Page{}, false
	}

	page := Page{Limit: *r.Limit}
	if r.Offset != nil {
		page.Offset = *r.Offset
	}
	return page, true
}
