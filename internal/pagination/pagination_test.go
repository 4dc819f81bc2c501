package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perkhub/loyalty/internal/apperr"
)

func TestCursorRoundTrip(t *testing.T) {
	at := time.Date(2024, 3, 15, 10, 30, 0, 123456789, time.UTC)

	decoded, err := DecodeCursor(EncodeCursor(at))
	require.NoError(t, err)
	assert.True(t, decoded.Equal(at))
}

func TestDecodeCursorInvalid(t *testing.T) {
	tests := []struct {
		name   string
		cursor string
	}{
		{"not base64", "not-a-cursor!!!"},
		{"wrong length", "aGVsbG8="},
		{"empty payload", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCursor(tt.cursor)
			require.Error(t, err)
			assert.True(t, apperr.IsCode(err, apperr.CodePagination))
			assert.Contains(t, err.Error(), "Invalid cursor")
		})
	}
}

func TestArgsResolve(t *testing.T) {
	t.Run("negative first", func(t *testing.T) {
		first := -1
		_, _, err := Args{First: &first}.Resolve()
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodePagination))
		assert.Contains(t, err.Error(), "Invalid first")
	})

	t.Run("bad after cursor", func(t *testing.T) {
		after := "garbage"
		_, _, err := Args{After: &after}.Resolve()
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodePagination))
	})

	t.Run("empty after is from the beginning", func(t *testing.T) {
		after := ""
		_, since, err := Args{After: &after}.Resolve()
		require.NoError(t, err)
		assert.Nil(t, since)
	})

	t.Run("valid after decodes inclusive since", func(t *testing.T) {
		at := time.Unix(0, 42*int64(time.Millisecond)).UTC()
		after := EncodeCursor(at)
		_, since, err := Args{After: &after}.Resolve()
		require.NoError(t, err)
		require.NotNil(t, since)
		assert.True(t, since.Equal(at))
	})
}

type record struct {
	id string
	at time.Time
}

func windowOf(n int) []record {
	out := make([]record, n)
	for i := range out {
		out[i] = record{
			id: string(rune('a' + i)),
			at: time.Unix(0, int64(i+1)*int64(time.Millisecond)).UTC(),
		}
	}
	return out
}

func TestConnect(t *testing.T) {
	at := func(r record) time.Time { return r.at }

	t.Run("empty window", func(t *testing.T) {
		conn := Connect(nil, nil, at)
		assert.Equal(t, 0, conn.TotalCount)
		assert.Empty(t, conn.Edges)
		assert.Nil(t, conn.PageInfo.EndCursor)
		assert.False(t, conn.PageInfo.HasNextPage)
	})

	t.Run("first caps edges and signals more", func(t *testing.T) {
		first := 2
		conn := Connect(windowOf(5), &first, at)
		assert.Equal(t, 5, conn.TotalCount)
		require.Len(t, conn.Edges, 2)
		assert.True(t, conn.PageInfo.HasNextPage)
		require.NotNil(t, conn.PageInfo.EndCursor)
		assert.Equal(t, conn.Edges[1].Cursor, *conn.PageInfo.EndCursor)
	})

	t.Run("first beyond window returns everything", func(t *testing.T) {
		first := 10
		conn := Connect(windowOf(3), &first, at)
		assert.Equal(t, 3, conn.TotalCount)
		assert.Len(t, conn.Edges, 3)
		assert.False(t, conn.PageInfo.HasNextPage)
	})

	t.Run("nil first returns everything", func(t *testing.T) {
		conn := Connect(windowOf(3), nil, at)
		assert.Len(t, conn.Edges, 3)
		assert.False(t, conn.PageInfo.HasNextPage)
	})

	t.Run("first zero yields no edges but full count", func(t *testing.T) {
		first := 0
		conn := Connect(windowOf(3), &first, at)
		assert.Equal(t, 3, conn.TotalCount)
		assert.Empty(t, conn.Edges)
		assert.Nil(t, conn.PageInfo.EndCursor)
		assert.True(t, conn.PageInfo.HasNextPage)
	})

	t.Run("edge cursors decode to creation times", func(t *testing.T) {
		window := windowOf(2)
		conn := Connect(window, nil, at)
		for i, edge := range conn.Edges {
			decoded, err := DecodeCursor(edge.Cursor)
			require.NoError(t, err)
			assert.True(t, decoded.Equal(window[i].at))
		}
	})
}
