package balancer

import (
	"strings"
	"testing"
	"time"
)

func TestStats_StringRendersFamiliesInOrder(t *testing.T) {
	s := Stats{
		"B": {{ID: "B-0", Family: "B", Active: true, ActiveRequests: 1, TotalRequests: 4, TotalTokens: 40, ErrorCount: 0, LastUsedAt: time.Now()}},
		"A": {{ID: "A-0", Family: "A", Active: false, ActiveRequests: 0, TotalRequests: 9, TotalTokens: 90, ErrorCount: 3, LastUsedAt: time.Now()}},
	}

	out := s.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "A") {
		t.Fatalf("expected family A to render first, got %q", lines[0])
	}
	if !strings.Contains(lines[0], "inactive") {
		t.Fatalf("expected A-0 to render as inactive, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "active") || strings.Contains(lines[1], "inactive") {
		t.Fatalf("expected B-0 to render as active, got %q", lines[1])
	}
}

func TestStats_StringOnEmptyStatsIsEmpty(t *testing.T) {
	var s Stats
	if s.String() != "" {
		t.Fatal("expected an empty Stats to render as an empty string")
	}
}
