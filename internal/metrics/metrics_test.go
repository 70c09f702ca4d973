package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollectorCounts(t *testing.T) {
	m := NewCollector()

	m.Frame()
	m.Frame()
	m.Pick(true)
	m.Pick(false)
	m.Pick(false)
	m.Selection()
	m.RecordRemote("chat", nil, 20*time.Millisecond)
	m.RecordRemote("chat", errors.New("boom"), time.Second)

	if got := testutil.ToFloat64(m.frames); got != 2 {
		t.Errorf("expected 2 frames, got %f", got)
	}
	if got := testutil.ToFloat64(m.picks.WithLabelValues("miss")); got != 2 {
		t.Errorf("expected 2 misses, got %f", got)
	}
	if got := testutil.ToFloat64(m.selections); got != 1 {
		t.Errorf("expected 1 selection, got %f", got)
	}
	if got := testutil.ToFloat64(m.remoteRequests.WithLabelValues("chat", "error")); got != 1 {
		t.Errorf("expected 1 chat error, got %f", got)
	}
}

func TestNilCollector(t *testing.T) {
	var m *Collector
	m.Frame()
	m.Pick(true)
	m.Selection()
	m.RecordRemote("news", nil, 0)
	if m.Registry() != nil {
		t.Error("nil collector should have no registry")
	}
}

func TestHandler(t *testing.T) {
	m := NewCollector()
	m.Frame()

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "orrery_frames_total 1") {
		t.Errorf("expected frames counter in output, got:\n%s", body)
	}
}
