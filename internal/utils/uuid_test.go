package utils

import (
	"regexp"
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerator_Generate(t *testing.T) {
	g := NewUUIDGenerator()

	a, b := g.Generate(), g.Generate()
	if a == b {
		t.Fatal("expected distinct identifiers")
	}

	parsed, err := uuid.Parse(a)
	if err != nil {
		t.Fatalf("expected valid uuid, got %q: %v", a, err)
	}
	if parsed.Version() != 7 {
		t.Errorf("expected version 7, got %d", parsed.Version())
	}
}

func TestUUIDGenerator_Short(t *testing.T) {
	s := NewUUIDGenerator().Short()

	if !regexp.MustCompile(`^[0-9a-f]{8}$`).MatchString(s) {
		t.Errorf("unexpected short id %q", s)
	}
}
