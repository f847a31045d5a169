package engine

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestClientFit(t *testing.T) {
	var got FitRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/fit" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("got error: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"handle": "logit-1"})
	}))
	defer srv.Close()
	c, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("got error: %v", err)
	}
	var ps Params
	ps.AddFloat("regParam", .5)
	h, err := c.Fit(context.Background(), FitRequest{
		Kind:    "logit",
		Dataset: "iris",
		Formula: "label ~ .",
		Params:  ps,
	})
	if err != nil {
		t.Fatalf("got error: %v", err)
	}
	if h != "logit-1" {
		t.Fatalf("expected logit-1; got %s", h)
	}
	if got.Kind != "logit" || got.Formula != "label ~ ." {
		t.Fatalf("unexpected request body: %+v", got)
	}
	if got.Params[0].Name != "regParam" || got.Params[0].Value != .5 {
		t.Fatalf("unexpected params: %v", got.Params)
	}
}

func TestClientErrorKinds(t *testing.T) {
	for _, tc := range []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, ErrInvalidConfig},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrExists},
		{http.StatusNotImplemented, ErrUnsupported},
	} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			json.NewEncoder(w).Encode(map[string]string{"error": "boom"})
		}))
		c, err := NewClient(srv.URL)
		if err != nil {
			t.Fatalf("got error: %v", err)
		}
		err = c.Save(context.Background(), "h", "/models/m", false)
		if !errors.Is(err, tc.want) {
			t.Fatalf("expected %v; got %v", tc.want, err)
		}
		srv.Close()
	}
}

func TestClientOpaqueError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "executor lost", http.StatusInternalServerError)
	}))
	defer srv.Close()
	c, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("got error: %v", err)
	}
	_, err = c.Fit(context.Background(), FitRequest{Kind: "svc"})
	if err == nil {
		t.Fatalf("expected an error")
	}
	for _, kind := range []error{ErrInvalidConfig, ErrNotFound, ErrExists, ErrUnsupported} {
		if errors.Is(err, kind) {
			t.Fatalf("expected an opaque error; got %v", err)
		}
	}
}

func TestClientInfoCached(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		json.NewEncoder(w).Encode(&ModelInfo{
			Features:     []string{"f1"},
			Coefficients: []float64{.5},
		})
	}))
	defer srv.Close()
	c, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("got error: %v", err)
	}
	first, err := c.Info(context.Background(), "h1")
	if err != nil {
		t.Fatalf("got error: %v", err)
	}
	second, err := c.Info(context.Background(), "h1")
	if err != nil {
		t.Fatalf("got error: %v", err)
	}
	if hits != 1 {
		t.Fatalf("expected 1 request; got %d", hits)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected %v; got %v", first, second)
	}
}

func TestClientHead(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/datasets/iris/head" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("n") != "2" {
			t.Errorf("unexpected n: %s", r.URL.Query().Get("n"))
		}
		json.NewEncoder(w).Encode(map[string][][]string{
			"rows": {{"1", "a"}, {"0", "b"}},
		})
	}))
	defer srv.Close()
	c, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("got error: %v", err)
	}
	rows, err := c.Head(context.Background(), "iris", 2)
	if err != nil {
		t.Fatalf("got error: %v", err)
	}
	want := [][]string{{"1", "a"}, {"0", "b"}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("expected %v; got %v", want, rows)
	}
}
