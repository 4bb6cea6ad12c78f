package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestRecord_FailedProbeSerializesNulls(t *testing.T) {
	msg := "Request timeout (> 10 seconds)"
	rec := Record{
		ID:           7,
		URL:          "https://example.com",
		IsHealthy:    false,
		ErrorMessage: &msg,
		CreatedAt:    time.Date(2025, 8, 18, 12, 0, 0, 0, time.UTC),
	}
	b, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, `"status_code":null`) || !strings.Contains(s, `"response_time_ms":null`) {
		t.Fatalf("expected null status/latency, got %s", s)
	}
	var back Record
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.ErrorMessage == nil || *back.ErrorMessage != msg {
		t.Fatalf("error message lost: %+v", back.ErrorMessage)
	}
}

func TestRecord_JSONRoundTrip(t *testing.T) {
	code := 200
	lat := 123.45
	want := Record{
		ID:         1,
		URL:        "https://example.com",
		StatusCode: &code,
		LatencyMS:  &lat,
		IsHealthy:  true,
		CreatedAt:  time.Date(2025, 8, 18, 12, 0, 0, 0, time.UTC),
	}
	b, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Record
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ID != want.ID || got.URL != want.URL || !got.IsHealthy ||
		got.StatusCode == nil || *got.StatusCode != 200 ||
		got.LatencyMS == nil || *got.LatencyMS != 123.45 ||
		got.ErrorMessage != nil || !got.CreatedAt.Equal(want.CreatedAt) {
		t.Fatalf("mismatch after round-trip:\nwant=%+v\ngot =%+v", want, got)
	}
}
