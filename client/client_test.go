package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCreateValidatesBeforeSending(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	c := NewWithHTTPClient(server.URL, server.Client())

	cases := []struct {
		name string
		req  CreateCollectionRequest
	}{
		{"title too short", CreateCollectionRequest{Title: "ab", PhotoIDs: []uint{1}}},
		{"title too long", CreateCollectionRequest{Title: strings.Repeat("x", 51), PhotoIDs: []uint{1}}},
		{"no photos", CreateCollectionRequest{Title: "Sunsets"}},
		{"bad email", CreateCollectionRequest{Title: "Sunsets", PhotoIDs: []uint{1}, CollaboratorEmails: []string{"not-an-email"}}},
	}

	for _, tc := range cases {
		_, err := c.Create(context.Background(), tc.req)
		if _, ok := err.(*ValidationError); !ok {
			t.Errorf("%s: expected ValidationError, got %v", tc.name, err)
		}
	}

	if requests != 0 {
		t.Fatalf("validation failures must not reach the server, saw %d requests", requests)
	}
}

func TestRequestErrorCarriesServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"error": "you do not have access to this resource"})
	}))
	defer server.Close()

	c := NewWithHTTPClient(server.URL, server.Client())
	_, err := c.Get(context.Background(), 7)

	re, ok := err.(*RequestError)
	if !ok {
		t.Fatalf("expected RequestError, got %T: %v", err, err)
	}
	if re.Status != http.StatusForbidden {
		t.Errorf("status = %d, want 403", re.Status)
	}
	if re.Message != "you do not have access to this resource" {
		t.Errorf("message = %q", re.Message)
	}
}

func TestRequestErrorFallbackMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewWithHTTPClient(server.URL, server.Client())
	_, err := c.Get(context.Background(), 7)

	re, ok := err.(*RequestError)
	if !ok {
		t.Fatalf("expected RequestError, got %T", err)
	}
	if re.Message != "HTTP 500" {
		t.Errorf("message = %q, want HTTP 500 fallback", re.Message)
	}
}

func TestNetworkErrorWhenNoResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing is listening anymore

	c := NewWithHTTPClient(server.URL, http.DefaultClient)
	_, err := c.Get(context.Background(), 1)

	if _, ok := err.(*NetworkError); !ok {
		t.Fatalf("expected NetworkError, got %T: %v", err, err)
	}
}

func TestDeleteTreatsNotFoundAsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "resource not found"})
	}))
	defer server.Close()

	c := NewWithHTTPClient(server.URL, server.Client())
	if err := c.Delete(context.Background(), 99); err != nil {
		t.Fatalf("second delete should be success-equivalent, got %v", err)
	}
}

func TestJoinRejectsMalformedCodeLocally(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	c := NewWithHTTPClient(server.URL, server.Client())

	for _, code := range []string{"", "12345", "1234567", "12345a", "abc def"} {
		err := c.Join(context.Background(), 1, code)
		if _, ok := err.(*ValidationError); !ok {
			t.Errorf("code %q: expected ValidationError, got %v", code, err)
		}
	}
	if requests != 0 {
		t.Fatalf("malformed codes must not reach the server, saw %d requests", requests)
	}
}

func TestCreateGetRoundTrip(t *testing.T) {
	stored := Collection{
		ID:          42,
		Title:       "A",
		PhotosCount: 1,
		Photos:      []CollectionPhoto{{PhotoID: 1}},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/collections", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var req CreateCollectionRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.IsCollaborative {
			t.Error("payload should not be collaborative")
		}
		stored.Title = req.Title
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]Collection{"collection": stored})
	})
	mux.HandleFunc("/api/collections/42", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]Collection{"collection": stored})
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	c := NewWithHTTPClient(server.URL, server.Client())

	created, err := c.Create(context.Background(), CreateCollectionRequest{
		Title:    "Aaa",
		PhotoIDs: []uint{1},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := c.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Aaa" {
		t.Errorf("title = %q, want Aaa", got.Title)
	}
	if got.PhotosCount != int64(len(got.Photos)) {
		t.Errorf("photosCount %d != len(photos) %d", got.PhotosCount, len(got.Photos))
	}
}

func TestListSendsOnlySetFilters(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(CollectionPage{})
	}))
	defer server.Close()

	c := NewWithHTTPClient(server.URL, server.Client())
	if _, err := c.List(context.Background(), ListFilters{Scope: "mine", Limit: 10}); err != nil {
		t.Fatalf("list: %v", err)
	}

	if got := gotQuery["filter"]; len(got) != 1 || got[0] != "mine" {
		t.Errorf("filter = %v", got)
	}
	if got := gotQuery["limit"]; len(got) != 1 || got[0] != "10" {
		t.Errorf("limit = %v", got)
	}
	for _, absent := range []string{"search", "sort", "offset", "user_id"} {
		if _, ok := gotQuery[absent]; ok {
			t.Errorf("unset filter %q was sent", absent)
		}
	}
}

func TestBearerTokenSent(t *testing.T) {
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(CollectionPage{})
	}))
	defer server.Close()

	c := NewWithHTTPClient(server.URL, server.Client())
	c.SetToken("tok123")
	c.List(context.Background(), ListFilters{})

	if auth != "Bearer tok123" {
		t.Fatalf("Authorization = %q", auth)
	}
}
