package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultResolver(t *testing.T) {
	r := Default()
	assert.Equal(t, 30, r.Len())
	assert.Len(t, r.Categories(), 10)

	tests := []struct {
		productType string
		category    string
	}{
		{"Shampoo", "Shampoo"},
		{"Dry Shampoo", "Shampoo"},
		{"Scalp Serum", "Hair Treatment"},
		{"Hand Cream", "Hand Care"},
		{"BB Cream", "Face Care"},
		{"Lip Balm", "Makeup"},
		{"Nail Brush", "Nail Tools"},
	}
	for _, tt := range tests {
		t.Run(tt.productType, func(t *testing.T) {
			got, err := r.Category(tt.productType)
			require.NoError(t, err)
			assert.Equal(t, tt.category, got)
		})
	}
}

func TestResolverIsTotalOverItsTypes(t *testing.T) {
	r := Default()
	for _, pt := range r.Types() {
		_, err := r.Category(pt)
		assert.NoError(t, err, pt)
	}
}

func TestResolverUnknownType(t *testing.T) {
	_, err := Default().Category("Beard Oil")
	assert.ErrorIs(t, err, ErrUnknownProductType)
}

func TestNewResolverRejectsBadCatalogs(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		wantErr error
	}{
		{name: "empty", entries: nil, wantErr: ErrEmptyCatalog},
		{name: "blank type", entries: []Entry{{"", "Makeup"}}},
		{name: "blank category", entries: []Entry{{"Blush", " "}}},
		{name: "duplicate", entries: []Entry{{"Blush", "Makeup"}, {"Blush", "Face Care"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewResolver(tt.entries)
			assert.Nil(t, r)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestTypesReturnsCopy(t *testing.T) {
	r := Default()
	types := r.Types()
	types[0] = "Changed"
	assert.Equal(t, "Shampoo", r.Types()[0])

	entries := r.Entries()
	assert.Equal(t, Entry{ProductType: "Shampoo", Category: "Shampoo"}, entries[0])
	assert.Len(t, entries, 30)
}
