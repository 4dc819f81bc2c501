// Package pagination implements the opaque cursor codec and connection
// builder shared by every list endpoint.
package pagination

import (
	"encoding/base64"
	"encoding/binary"
	"time"

	"github.com/perkhub/loyalty/internal/apperr"
)

// Args are the caller-supplied traversal arguments for a list query.
type Args struct {
	First *int    // caps the number of returned edges; nil means all remaining
	After *string // opaque cursor to start at; nil means from the beginning
}

// PageInfo carries traversal metadata for a connection.
type PageInfo struct {
	EndCursor   *string `json:"endCursor"`
	HasNextPage bool    `json:"hasNextPage"`
}

// Edge pairs a node with its cursor.
type Edge[T any] struct {
	Node   T      `json:"node"`
	Cursor string `json:"cursor"`
}

// Connection is the paginated result shape.
type Connection[T any] struct {
	TotalCount int       `json:"totalCount"`
	Edges      []Edge[T] `json:"edges"`
	PageInfo   PageInfo  `json:"pageInfo"`
}

// CursorBytes returns the raw cursor value snapshotted on each record at
// creation time: the creation timestamp as big-endian nanoseconds.
func CursorBytes(t time.Time) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(t.UnixNano()))
	return buf
}

// EncodeCursor encodes a creation timestamp as an opaque cursor token.
func EncodeCursor(t time.Time) string {
	return base64.StdEncoding.EncodeToString(CursorBytes(t))
}

// DecodeCursor decodes an opaque cursor token back into a timestamp.
func DecodeCursor(cursor string) (time.Time, error) {
	raw, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil || len(raw) != 8 {
		return time.Time{}, apperr.New(apperr.CodePagination, "Invalid cursor")
	}
	return time.Unix(0, int64(binary.BigEndian.Uint64(raw))).UTC(), nil
}

// Resolve validates the arguments and decodes the after cursor. The returned
// since value is the creation time the result window starts at, inclusive.
func (a Args) Resolve() (first *int, since *time.Time, err error) {
	if a.First != nil && *a.First < 0 {
		return nil, nil, apperr.New(apperr.CodePagination, "Invalid first")
	}
	if a.After != nil && *a.After != "" {
		t, err := DecodeCursor(*a.After)
		if err != nil {
			return nil, nil, err
		}
		since = &t
	}
	return a.First, since, nil
}

// Connect builds a connection from an already-windowed result set, ordered
// ascending by creation time. first caps the returned edges; at extracts a
// record's creation time. An empty window yields a nil end cursor.
func Connect[T any](window []T, first *int, at func(T) time.Time) Connection[T] {
	total := len(window)

	limited := window
	if first != nil && *first < total {
		limited = window[:*first]
	}

	edges := make([]Edge[T], 0, len(limited))
	for _, node := range limited {
		edges = append(edges, Edge[T]{Node: node, Cursor: EncodeCursor(at(node))})
	}

	info := PageInfo{HasNextPage: len(edges) < total}
	if len(edges) > 0 {
		info.EndCursor = &edges[len(edges)-1].Cursor
	}

	return Connection[T]{TotalCount: total, Edges: edges, PageInfo: info}
}
