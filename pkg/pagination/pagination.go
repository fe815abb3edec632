package pagination

import (
	"math"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxPage keeps Offset within int range for any limit up to MaxLimit.
	MaxPage      = math.MaxInt / MaxLimit
)

type Params struct {
	Page  int
	Limit int
}

// Meta is the pagination block returned with every list response.
type Meta struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	Limit       int   `json:"limit"`
}

// FromQuery parses raw page/limit query values. Missing, malformed or
// non-positive values fall back to the defaults; page is capped at MaxPage
// and limit at MaxLimit.
func FromQuery(page, limit string) Params {
	p := Params{Page: DefaultPage, Limit: DefaultLimit}
	if n, err := strconv.Atoi(page); err == nil && n > 0 {
		p.Page = min(n, MaxPage)
	}
	if n, err := strconv.Atoi(limit); err == nil && n > 0 {
		p.Limit = n
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

func (p Params) Meta(total int64) Meta {
	return Meta{
		CurrentPage: p.Page,
		TotalPages:  TotalPages(total, p.Limit),
		TotalCount:  total,
		Limit:       p.Limit,
	}
}

// TotalPages is ceil(total/limit).
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// Block renders the pagination object. The total appears as totalCount and
// again under totalKey ("totalPosts", "totalComments").
func (m Meta) Block(totalKey string) map[string]interface{} {
	return map[string]interface{}{
		"currentPage": m.CurrentPage,
		"totalPages":  m.TotalPages,
		"totalCount":  m.TotalCount,
		totalKey:      m.TotalCount,
		"limit":       m.Limit,
	}
}
