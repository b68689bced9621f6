package repository_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/cppla/goblog/repository"
)

func TestNormalizePagination(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{name: "both valid", page: 3, limit: 25, wantPage: 3, wantLimit: 25},
		{name: "zero page falls back", page: 0, limit: 10, wantPage: 1, wantLimit: 10},
		{name: "negative page falls back", page: -4, limit: 10, wantPage: 1, wantLimit: 10},
		{name: "zero limit falls back", page: 2, limit: 0, wantPage: 2, wantLimit: 10},
		{name: "negative limit falls back", page: 2, limit: -1, wantPage: 2, wantLimit: 10},
		{name: "oversized limit falls back", page: 1, limit: 1000, wantPage: 1, wantLimit: 10},
		{name: "limit at cap kept", page: 1, limit: 100, wantPage: 1, wantLimit: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)

			page, limit := repository.NormalizePagination(tt.page, tt.limit)
			c.Assert(page, qt.Equals, tt.wantPage)
			c.Assert(limit, qt.Equals, tt.wantLimit)
		})
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		limit int
		want  int
	}{
		{name: "empty corpus", total: 0, limit: 10, want: 0},
		{name: "exact fit", total: 20, limit: 10, want: 2},
		{name: "one over a page boundary", total: 11, limit: 10, want: 2},
		{name: "single short page", total: 3, limit: 10, want: 1},
		{name: "limit one", total: 7, limit: 1, want: 7},
		{name: "zero limit guards division", total: 5, limit: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)
			c.Assert(repository.TotalPages(tt.total, tt.limit), qt.Equals, tt.want)
		})
	}
}

func TestLikePattern(t *testing.T) {
	c := qt.New(t)

	c.Assert(repository.LikePattern("hello"), qt.Equals, "%hello%")
	c.Assert(repository.LikePattern(""), qt.Equals, "%%")
}
