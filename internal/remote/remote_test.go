package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/san-kum/orrery/internal/metrics"
)

var testOpts = Options{Timeout: time.Second, RatePerSecond: 1000}

const catalogJSON = `{"bodies":[
 {"id":"terre","englishName":"Earth","isPlanet":true,"meanRadius":6371.0084,
  "mass":{"massValue":5.97237,"massExponent":24},"gravity":9.8,"semimajorAxis":149598023,
  "moons":[{"moon":"La Lune","rel":"https://x/lune"}]},
 {"id":"lune","englishName":"Moon","isPlanet":false,"meanRadius":1737,
  "mass":{"massValue":7.346,"massExponent":22},"gravity":1.62,"semimajorAxis":384400,"moons":null},
 {"id":"venus","englishName":"Venus","isPlanet":true,"meanRadius":6051.8,
  "mass":{"massValue":4.86747,"massExponent":24},"gravity":8.87,"semimajorAxis":108208475,"moons":null}
]}`

func TestCatalogBodies(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("expected bearer key, got %q", got)
		}
		io.WriteString(w, catalogJSON)
	}))
	defer srv.Close()

	c := NewCatalogClient(srv.URL, "secret", testOpts)
	ctx := context.Background()

	planets, err := c.Planets(ctx)
	if err != nil {
		t.Fatalf("planets: %v", err)
	}
	if len(planets) != 2 {
		t.Fatalf("expected 2 planets, got %d", len(planets))
	}

	earth, err := c.Find(ctx, "EARTH")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if earth.MoonCount() != 1 {
		t.Errorf("expected 1 moon, got %d", earth.MoonCount())
	}
	if math.Abs(earth.MassKg()-5.97237e24) > 1e12 {
		t.Errorf("expected 5.97237e24 kg, got %g", earth.MassKg())
	}
	if earth.Diameter() != 2*6371.0084 {
		t.Errorf("unexpected diameter %f", earth.Diameter())
	}

	if _, err := c.Find(ctx, "Vulcan"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("expected one request thanks to the cache, got %d", n)
	}
}

func TestCatalogErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"server error", http.StatusInternalServerError, "oops", ErrHTTPStatus},
		{"bad json", http.StatusOK, "{not json", ErrMalformed},
		{"missing bodies", http.StatusOK, `{"other":1}`, ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := NewCatalogClient(srv.URL, "", testOpts).Bodies(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewChatClient(srv.URL, "k", testOpts).Complete(context.Background(), "hi")
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %T %v", err, err)
	}
	if se.Code != http.StatusForbidden || se.API != "chat" {
		t.Errorf("unexpected status error %+v", se)
	}
}

func TestChatComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Query().Get("key") != "abc" {
			t.Errorf("expected key query parameter, got %q", r.URL.RawQuery)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req.Contents[0].Parts[0].Text != "How hot is Venus?" {
			t.Errorf("unexpected prompt %+v", req)
		}
		io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"About 465 C."}]}}]}`)
	}))
	defer srv.Close()

	text, err := NewChatClient(srv.URL, "abc", testOpts).Complete(context.Background(), "How hot is Venus?")
	if err != nil {
		t.Fatal(err)
	}
	if got := ChatReply(text, err); got != "Bot: About 465 C." {
		t.Errorf("unexpected reply %q", got)
	}
}

func TestChatNoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"candidates":[]}`)
	}))
	defer srv.Close()

	_, err := NewChatClient(srv.URL, "", testOpts).Complete(context.Background(), "hello")
	if !errors.Is(err, ErrNoCandidates) {
		t.Errorf("expected ErrNoCandidates, got %v", err)
	}
}

func TestChatRejectedFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	m := metrics.NewCollector()
	c := NewChatClient(url, "", Options{Timeout: time.Second, RatePerSecond: 1000, Metrics: m})
	text, err := c.Complete(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected a network error")
	}
	if got := ChatReply(text, err); got != "Bot: Error occurred, please try again." {
		t.Errorf("unexpected fallback %q", got)
	}
}

func TestNewsLatest(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantErr  error
		wantText string
	}{
		{
			name:     "latest event",
			body:     `[{"activityID":"2024-05-01-CME-001","note":"Halo CME","cmeAnalyses":[{"time21_5":"2024-05-01T12:00Z","speed":850,"isEarthDirected":true}]}]`,
			wantText: "Event Time: 2024-05-01T12:00Z\nSpeed: 850 km/s\nIs Earth Directed: Yes\nNote: Halo CME",
		},
		{
			name:     "empty note",
			body:     `[{"activityID":"a","note":"","cmeAnalyses":[{"time21_5":"t","speed":300}]}]`,
			wantText: "Event Time: t\nSpeed: 300 km/s\nIs Earth Directed: No\nNote: No additional information",
		},
		{name: "no events", body: `[]`, wantErr: ErrNoEvents, wantText: "No recent news available."},
		{name: "no analyses", body: `[{"activityID":"a"}]`, wantErr: ErrMalformed, wantText: "Failed to load news."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Query().Get("api_key") != "nasa" {
					t.Errorf("expected api_key, got %q", r.URL.RawQuery)
				}
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			ev, err := NewNewsClient(srv.URL, "nasa", testOpts).Latest(context.Background())
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if got := NewsText(ev, err); got != tt.wantText {
				t.Errorf("expected %q, got %q", tt.wantText, got)
			}
		})
	}
}

func TestContextCancelled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewNewsClient(srv.URL, "", testOpts).Latest(ctx)
	if err == nil || !strings.Contains(err.Error(), "context deadline exceeded") {
		t.Errorf("expected deadline error, got %v", err)
	}
}
