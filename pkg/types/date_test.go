package types

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-15")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.Year() != 2024 || d.Month() != time.June || d.Day() != 15 {
		t.Fatalf("unexpected date %v", d)
	}

	if _, err := ParseDate("15/06/2024"); err == nil {
		t.Fatal("expected error for wrong layout")
	}
}

func TestNewDateTruncates(t *testing.T) {
	d := NewDate(time.Date(2024, 6, 15, 23, 45, 12, 0, time.UTC))
	if d.Hour() != 0 || d.Minute() != 0 || d.Second() != 0 {
		t.Fatalf("expected midnight, got %v", d.Time)
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d, _ := ParseDate("2023-01-31")
	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `"2023-01-31"` {
		t.Fatalf("unexpected encoding %s", raw)
	}

	var parsed Date
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !parsed.Equal(d.Time) {
		t.Fatalf("round trip mismatch: %v vs %v", parsed, d)
	}
}

func TestDateJSONNull(t *testing.T) {
	raw, err := json.Marshal(Date{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != "null" {
		t.Fatalf("zero date must encode as null, got %s", raw)
	}

	var parsed Date
	if err := json.Unmarshal([]byte("null"), &parsed); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !parsed.IsZero() {
		t.Fatalf("expected zero date, got %v", parsed)
	}
}

func TestDateString(t *testing.T) {
	d, _ := ParseDate("2022-12-01")
	if d.String() != "2022-12-01" {
		t.Fatalf("unexpected string %q", d.String())
	}
	if (Date{}).String() != "" {
		t.Fatal("zero date must stringify empty")
	}
}
