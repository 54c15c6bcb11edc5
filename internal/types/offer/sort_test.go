package offer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	myErr "bazarlyq-main/internal/types/errors"
)

func TestParseSort(t *testing.T) {
	tests := []struct {
		name        string
		token       string
		expected    Sort
		expectError error
	}{
		{
			name:     "price desc",
			token:    "price,desc",
			expected: Sort{Field: SortByPrice, Dir: SortDesc},
		},
		{
			name:     "updatedAt asc",
			token:    "updatedAt,asc",
			expected: Sort{Field: SortByUpdatedAt, Dir: SortAsc},
		},
		{
			name:     "empty token falls back to default",
			token:    "",
			expected: Sort{Field: SortByUpdatedAt, Dir: SortDesc},
		},
		{
			name:        "unknown field",
			token:       "rating,desc",
			expectError: myErr.ErrBadSortToken,
		},
		{
			name:        "unknown direction",
			token:       "price,down",
			expectError: myErr.ErrBadSortToken,
		},
		{
			name:        "missing direction",
			token:       "price",
			expectError: myErr.ErrBadSortToken,
		},
		{
			name:        "too many parts",
			token:       "price,desc,extra",
			expectError: myErr.ErrBadSortToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSort(tt.token)
			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSortTokenRoundTrip(t *testing.T) {
	for _, token := range []string{"price,asc", "price,desc", "updatedAt,asc", "updatedAt,desc"} {
		s, err := ParseSort(token)
		assert.NoError(t, err)
		assert.Equal(t, token, s.Token())
	}
}

func TestSortColumn(t *testing.T) {
	assert.Equal(t, "price", Sort{Field: SortByPrice, Dir: SortAsc}.Column())
	assert.Equal(t, "updated_at", DefaultSort().Column())
}
