package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDoJSON_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/echo" {
			http.Error(w, "bad route", http.StatusNotFound)
			return
		}
		if r.Header.Get("X-Api-Key") != "k" || r.Header.Get("User-Agent") != DefaultUserAgent {
			http.Error(w, "missing headers", http.StatusUnauthorized)
			return
		}
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"echo": in["msg"]})
	}))
	defer srv.Close()

	c, err := NewWithBaseURL(srv.URL, time.Second)
	if err != nil {
		t.Fatalf("NewWithBaseURL: %v", err)
	}

	var out map[string]string
	err = c.DoJSON(context.Background(), http.MethodPost, "v1/echo", map[string]string{"X-Api-Key": "k"}, map[string]string{"msg": "hi"}, &out)
	if err != nil {
		t.Fatalf("DoJSON: %v", err)
	}
	if out["echo"] != "hi" {
		t.Fatalf("unexpected response %v", out)
	}
}

func TestDoJSON_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	c := New(time.Second)
	err := c.DoJSON(context.Background(), http.MethodGet, srv.URL, nil, nil, nil)
	if StatusCode(err) != http.StatusForbidden {
		t.Fatalf("expected 403 HTTPError, got %v", err)
	}
}

func TestGetBytes_LimitsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("0123456789"))
	}))
	defer srv.Close()

	c := New(time.Second)
	c.MaxBodyBytes = 4

	b, err := c.GetBytes(context.Background(), srv.URL, nil)
	if err != nil {
		t.Fatalf("GetBytes: %v", err)
	}
	if string(b) != "0123" {
		t.Fatalf("expected truncated body, got %q", b)
	}
}

func TestResolveURL_RelativeRequiresBase(t *testing.T) {
	c := New(time.Second)
	if _, err := c.GetBytes(context.Background(), "/rules.json", nil); err == nil {
		t.Fatalf("expected error for relative path without BaseURL")
	}
	if _, err := NewWithBaseURL("::bad", time.Second); err == nil {
		t.Fatalf("expected invalid base url error")
	}
}
