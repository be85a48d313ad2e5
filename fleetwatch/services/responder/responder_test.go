package responder

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRespondRiskRule(t *testing.T) {
	r := New()
	reply := r.Respond("What's my risk?", "High", 82.5)
	if !strings.Contains(reply, "82.5") {
		t.Errorf("reply should contain the risk score: %q", reply)
	}
	if !strings.Contains(reply, "High") {
		t.Errorf("reply should contain the classification: %q", reply)
	}
}

func TestRespondFallback(t *testing.T) {
	r := New()
	reply := r.Respond("hello", "Low", 12.0)
	if !strings.Contains(reply, "I can help") {
		t.Errorf("expected the fallback reply, got %q", reply)
	}
}

func TestRespondCaseInsensitive(t *testing.T) {
	r := New()
	upper := r.Respond("WHY is it flagged?", "High", 70)
	lower := r.Respond("why is it flagged?", "High", 70)
	if upper != lower {
		t.Errorf("matching must be case-insensitive: %q vs %q", upper, lower)
	}
	if !strings.Contains(upper, "mileage") {
		t.Errorf("why-reply should mention mileage: %q", upper)
	}
}

func TestRespondFirstMatchWins(t *testing.T) {
	r := New()
	// "risk" is the first rule; a message also containing "cost" must still
	// hit the risk rule.
	reply := r.Respond("what does my risk cost me", "Low", 30)
	if !strings.Contains(reply, "30%") {
		t.Errorf("expected the risk rule to win: %q", reply)
	}
}

func TestRespondServiceAndBookKeywords(t *testing.T) {
	r := New()
	a := r.Respond("should I book something", "Low", 10)
	b := r.Respond("time for a service?", "Low", 10)
	if a != b {
		t.Errorf("service and book should hit the same rule: %q vs %q", a, b)
	}
	if !strings.Contains(a, "schedule") {
		t.Errorf("scheduling suggestion expected: %q", a)
	}
}

func TestRespondDeterministic(t *testing.T) {
	r := New()
	first := r.Respond("cost?", "High", 91.25)
	for i := 0; i < 3; i++ {
		if got := r.Respond("cost?", "High", 91.25); got != first {
			t.Fatalf("reply not deterministic: %q vs %q", got, first)
		}
	}
}

func TestNewFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	rules := `
rules:
  - keywords: ["ping"]
    reply: "pong {risk} {risk_score}"
fallback: "no idea"
`
	if err := os.WriteFile(path, []byte(rules), 0o644); err != nil {
		t.Fatalf("write rules: %v", err)
	}
	r, err := NewFromFile(path)
	if err != nil {
		t.Fatalf("NewFromFile: %v", err)
	}
	if got := r.Respond("ping", "High", 77.5); got != "pong High 77.5" {
		t.Errorf("custom rule reply = %q", got)
	}
	if got := r.Respond("hello", "Low", 1); got != "no idea" {
		t.Errorf("custom fallback = %q", got)
	}
}

func TestNewFromFileFailures(t *testing.T) {
	dir := t.TempDir()

	if _, err := NewFromFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing rules file")
	}

	empty := filepath.Join(dir, "empty.yaml")
	os.WriteFile(empty, []byte("rules: []"), 0o644)
	if _, err := NewFromFile(empty); err == nil {
		t.Error("expected error for rules file without rules")
	}
}
