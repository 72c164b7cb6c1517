package interfaces

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPageQuery_Offset(t *testing.T) {
	tests := []struct {
		name string
		q    PageQuery
		want int
	}{
		{"first page", PageQuery{Page: 0, Size: 20}, 0},
		{"third page", PageQuery{Page: 2, Size: 20}, 40},
		{"overflow saturates", PageQuery{Page: 1 << 62, Size: 2}, math.MaxInt},
		{"overflow that wraps to zero", PageQuery{Page: 1 << 62, Size: 4}, math.MaxInt},
		{"largest exact product", PageQuery{Page: math.MaxInt / 3, Size: 3}, math.MaxInt / 3 * 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.q.Offset())
		})
	}
}
