package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		bounds Bounds
		in     Params
		want   Params
	}{
		{name: "defaults", bounds: Public, in: Params{}, want: Params{Page: 1, Limit: 10}},
		{name: "negative page", bounds: Public, in: Params{Page: -3, Limit: 5}, want: Params{Page: 1, Limit: 5}},
		{name: "public cap", bounds: Public, in: Params{Page: 2, Limit: 500}, want: Params{Page: 2, Limit: 50}},
		{name: "moderation default", bounds: Moderation, in: Params{Page: 1, Limit: 0}, want: Params{Page: 1, Limit: 20}},
		{name: "moderation cap", bounds: Moderation, in: Params{Page: 1, Limit: 101}, want: Params{Page: 1, Limit: 100}},
		{name: "favorites default", bounds: Favorites, in: Params{Page: 4}, want: Params{Page: 4, Limit: 12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.bounds.Normalize(tt.in))
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, Params{Page: 3, Limit: 10}.Offset())
	assert.Equal(t, 0, Params{}.Offset())
}

func TestPages(t *testing.T) {
	assert.Equal(t, 0, Pages(0, 12))
	assert.Equal(t, 1, Pages(12, 12))
	assert.Equal(t, 2, Pages(13, 12))
	assert.Equal(t, 0, Pages(5, 0))
}
