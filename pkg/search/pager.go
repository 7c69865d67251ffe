package search

import (
	"errors"
	"strconv"
	"strings"
)

var ErrInvalidPage = errors.New("invalid page")

// ParsePage reads the page query parameter. Missing means the first page.
func ParsePage(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, ErrInvalidPage
	}
	return n, nil
}

// Paginate returns the page-th slice of size limit. limit <= 0 disables paging.
func Paginate[T any](items []T, page, limit int) []T {
	if limit <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

type Pager struct {
	Page  int
	Limit int
	Count int
	Query string
}

func NewPager(page, limit, count int, query string) Pager {
	return Pager{Page: page, Limit: limit, Count: count, Query: query}
}

// NumPages is at least 1 so an empty list still renders its first page.
func (p Pager) NumPages() int {
	if p.Limit <= 0 || p.Count == 0 {
		return 1
	}
	return (p.Count + p.Limit - 1) / p.Limit
}

func (p Pager) Valid() bool {
	return p.Page >= 1 && p.Page <= p.NumPages()
}

func (p Pager) IsPaginated() bool { return p.NumPages() > 1 }
func (p Pager) HasPrevious() bool { return p.Page > 1 }
func (p Pager) HasNext() bool     { return p.Page < p.NumPages() }
func (p Pager) Previous() int     { return p.Page - 1 }
func (p Pager) Next() int         { return p.Page + 1 }
