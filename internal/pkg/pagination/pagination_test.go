package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetMeta(t *testing.T) {
	meta := GetMeta(&Params{Page: 2, Limit: 20}, 45)

	require.Equal(t, 2, meta.Page)
	require.Equal(t, int64(45), meta.Total)
	require.Equal(t, 3, meta.TotalPages)
	require.True(t, meta.HasNext)
	require.True(t, meta.HasPrev)
}

func TestGetMetaExactMultiple(t *testing.T) {
	meta := GetMeta(&Params{Page: 2, Limit: 20}, 40)

	require.Equal(t, 2, meta.TotalPages)
	require.False(t, meta.HasNext)
}

func TestGetMetaEmpty(t *testing.T) {
	meta := GetMeta(&Params{Page: 1, Limit: 20}, 0)

	require.Equal(t, 0, meta.TotalPages)
	require.False(t, meta.HasNext)
	require.False(t, meta.HasPrev)
}
