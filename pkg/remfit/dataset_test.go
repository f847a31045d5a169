package remfit

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"git.sr.ht/~flobar/remfit/pkg/remfit/engine"
)

func csvInput(rows int) string {
	var b strings.Builder
	b.WriteString("label,f1,f2\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&b, "%d,%d.5,x%d\n", i%2, i, i)
	}
	return b.String()
}

func TestUploadCSV(t *testing.T) {
	for _, tc := range []struct {
		name string
		rows int
	}{
		{"empty", 0},
		{"single batch", 10},
		{"exact batch", 256},
		{"multiple batches", 600},
	} {
		t.Run(tc.name, func(t *testing.T) {
			e := engine.NewFake()
			data, err := UploadCSV(context.Background(), e, "train", strings.NewReader(csvInput(tc.rows)))
			if err != nil {
				t.Fatalf("got error: %v", err)
			}
			cols := e.Columns(data)
			if !reflect.DeepEqual(cols, []string{"label", "f1", "f2"}) {
				t.Fatalf("expected header columns; got %v", cols)
			}
			if got := len(e.Rows(data)); got != tc.rows {
				t.Fatalf("expected %d rows; got %d", tc.rows, got)
			}
			if tc.rows > 0 {
				want := []string{"0", "0.5", "x0"}
				if !reflect.DeepEqual(e.Rows(data)[0], want) {
					t.Fatalf("expected %v; got %v", want, e.Rows(data)[0])
				}
			}
		})
	}
}

func TestUploadCSVBadInput(t *testing.T) {
	for _, tc := range []struct {
		name, input string
	}{
		{"no header", ""},
		{"ragged row", "a,b\n1,2,3\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			e := engine.NewFake()
			if _, err := UploadCSV(context.Background(), e, "bad", strings.NewReader(tc.input)); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}

func TestUploadCSVCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := engine.NewFake()
	if _, err := UploadCSV(ctx, e, "train", strings.NewReader(csvInput(600))); err == nil {
		t.Fatalf("expected an error")
	}
}
