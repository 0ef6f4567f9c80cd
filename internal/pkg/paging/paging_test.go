//go:build unit

package paging_test

import (
	"testing"

	"parkspot/internal/pkg/paging"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		number     int
		size       int
		wantNumber int
		wantSize   int
	}{
		{"defaults", 0, 0, 0, paging.DefaultPageSize},
		{"explicit values", 2, 25, 2, 25},
		{"negative page falls back to zero", -1, 10, 0, 10},
		{"negative size falls back to default", 0, -5, 0, paging.DefaultPageSize},
		{"oversized request is capped", 0, 1000, 0, paging.MaxPageSize},
		{"size at the cap is kept", 0, paging.MaxPageSize, 0, paging.MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := paging.New(tt.number, tt.size)
			assert.Equal(t, tt.wantNumber, p.Number)
			assert.Equal(t, tt.wantSize, p.Size)
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, paging.New(0, 10).Offset())
	assert.Equal(t, 30, paging.New(3, 10).Offset())
	assert.Equal(t, 50, paging.New(2, 25).Offset())
}

func TestMetaFor(t *testing.T) {
	meta := paging.New(2, 1000).MetaFor(57)

	// Meta reports the capped size, not the requested one
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, paging.MaxPageSize, meta.PageSize)
	assert.Equal(t, int64(57), meta.Total)
}
