package unitu_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"unitu-block/unitu"
)

func newTestClient(srvURL string) *unitu.Client {
	return unitu.NewClient(srvURL, "test-key", 2*time.Second, nil)
}

func TestFetchNotificationsDecodesFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/feed/notifications", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"UniversityDomain": "uni.example.ac.uk",
			"Posts": [
				{"FullName": "Alex Doe", "Title": "Hello", "Likes": 2, "Departments": ["Maths"]}
			]
		}`))
	}))
	defer srv.Close()

	resp := newTestClient(srv.URL).FetchNotifications(context.Background())
	if resp == nil {
		t.Fatal("response must never be nil")
	}
	assert.Empty(t, resp.Error)
	assert.Equal(t, "uni.example.ac.uk", resp.UniversityDomain)
	assert.Len(t, resp.Posts, 1)
	assert.Equal(t, "Alex Doe", resp.Posts[0].FullName)
	assert.Equal(t, []string{"Maths"}, resp.Posts[0].Departments)
	assert.False(t, resp.IsEmpty())
}

func TestFetchNotificationsEmptyBodyIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	resp := newTestClient(srv.URL).FetchNotifications(context.Background())
	assert.True(t, resp.IsEmpty())
	assert.Empty(t, resp.Error)
}

func TestFetchNotificationsStatusErrorBecomesErrorShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusBadGateway)
	}))
	defer srv.Close()

	resp := newTestClient(srv.URL).FetchNotifications(context.Background())
	if resp == nil {
		t.Fatal("response must never be nil")
	}
	assert.NotEmpty(t, resp.Error)
	assert.Contains(t, resp.Error, "status=502")
	assert.Empty(t, resp.Posts)
}

func TestFetchNotificationsDecodeFailureBecomesErrorShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))
	defer srv.Close()

	resp := newTestClient(srv.URL).FetchNotifications(context.Background())
	assert.NotEmpty(t, resp.Error)
}

func TestFetchNotificationsTransportFailureBecomesErrorShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	resp := newTestClient(srv.URL).FetchNotifications(context.Background())
	assert.NotEmpty(t, resp.Error)
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).Health(context.Background())
	assert.NoError(t, err)
}
