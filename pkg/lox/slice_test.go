package lox_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"inn_ledger/pkg/lox"
)

func TestMap(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	rq.Equal([]string{"1", "2"}, lox.Map([]int{1, 2}, strconv.Itoa))
	rq.NotNil(lox.Map([]int(nil), strconv.Itoa))
}

func TestFirstDuplicate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		in     []string
		want   string
		wantOK bool
	}{
		{name: "empty", in: nil},
		{name: "unique", in: []string{"a", "b"}},
		{name: "first repeat wins", in: []string{"a", "b", "b", "a"}, want: "b", wantOK: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rq := require.New(t)

			got, ok := lox.FirstDuplicate(tc.in, func(s string) string { return s })
			rq.Equal(tc.wantOK, ok)
			rq.Equal(tc.want, got)
		})
	}
}
