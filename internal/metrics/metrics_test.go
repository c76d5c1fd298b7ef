package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordRequest(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.RecordRequest(200, 25*time.Millisecond)
	c.RecordRequest(200, 10*time.Millisecond)
	c.RecordRequest(404, 5*time.Millisecond)

	if got := testutil.ToFloat64(c.httpRequests.WithLabelValues("200")); got != 2 {
		t.Errorf("requests with status 200 = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.httpRequests.WithLabelValues("404")); got != 1 {
		t.Errorf("requests with status 404 = %v, want 1", got)
	}
}

func TestRecordSignIn(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.RecordSignIn(true)
	c.RecordSignIn(false)
	c.RecordSignIn(false)

	if got := testutil.ToFloat64(c.signIns.WithLabelValues("new_user")); got != 1 {
		t.Errorf("new_user sign-ins = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.signIns.WithLabelValues("returning")); got != 2 {
		t.Errorf("returning sign-ins = %v, want 2", got)
	}
}

func TestRecordListingAction(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.RecordListingAction("create")
	c.RecordListingAction("create")
	c.RecordListingAction("delete")

	if got := testutil.ToFloat64(c.listingActions.WithLabelValues("create")); got != 2 {
		t.Errorf("create actions = %v, want 2", got)
	}
}

func TestNewCollector_NilRegisterer(t *testing.T) {
	// The default registerer already holds these metrics after prior tests in
	// a process would register them, so swap in a fresh one for the check.
	orig := prometheus.DefaultRegisterer
	prometheus.DefaultRegisterer = prometheus.NewRegistry()
	defer func() { prometheus.DefaultRegisterer = orig }()

	if c := NewCollector(nil); c == nil {
		t.Fatal("NewCollector(nil) returned nil")
	}
}
