package engine

import (
	"context"
	"testing"
)

func TestFakeHeadClampsN(t *testing.T) {
	f := NewFake()
	ctx := context.Background()
	data, err := f.CreateDataset(ctx, "d", []string{"a"})
	if err != nil {
		t.Fatalf("got error: %v", err)
	}
	if err := f.AppendRows(ctx, data, [][]string{{"1"}, {"2"}}); err != nil {
		t.Fatalf("got error: %v", err)
	}
	for _, tc := range []struct {
		n, want int
	}{
		{-1, 0},
		{0, 0},
		{1, 1},
		{5, 2},
	} {
		rows, err := f.Head(ctx, data, tc.n)
		if err != nil {
			t.Fatalf("got error: %v", err)
		}
		if len(rows) != tc.want {
			t.Fatalf("expected %d rows; got %d", tc.want, len(rows))
		}
	}
}
