package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

// TestInitRegistersMetrics verifies Init registers every collector.
func TestInitRegistersMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()

	if err := Init(reg); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	// Record some data so the metrics appear in Gather output
	RecordRequest("GET", "/api/blog/posts", "OK")
	RecordRequestDuration("GET", "/api/blog/posts", "OK", 0.05)
	RecordAuthFailure("invalid_credentials")
	RecordContactSubmission()
	RecordSlugCollision()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	names := make(map[string]bool)
	for _, mf := range families {
		names[mf.GetName()] = true
	}

	for _, want := range []string{
		"site_api_requests_total",
		"site_api_request_duration_seconds",
		"site_api_auth_failures_total",
		"site_api_contact_submissions_total",
		"site_api_slug_collisions_total",
	} {
		if !names[want] {
			t.Errorf("expected metric %s to be registered, found %v", want, names)
		}
	}
}

// TestInitDuplicateRegistration verifies registering twice in one registry fails.
func TestInitDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()

	if err := Init(reg); err != nil {
		t.Fatalf("first Init failed: %v", err)
	}
	if err := Init(reg); err == nil {
		t.Errorf("expected duplicate registration to fail")
	}
}

// TestGetMetricsText verifies the text exposition contains recorded samples.
func TestGetMetricsText(t *testing.T) {
	reg := prometheus.NewRegistry()
	if err := Init(reg); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	RecordSlugCollision()

	text, err := GetMetricsText(reg)
	if err != nil {
		t.Fatalf("GetMetricsText failed: %v", err)
	}

	if !strings.Contains(text, "site_api_slug_collisions_total 1") {
		t.Errorf("expected slug collision sample in output:\n%s", text)
	}
}
