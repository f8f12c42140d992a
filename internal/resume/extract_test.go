package resume

import (
	"strings"
	"testing"
)

func TestExtractText_EmptyInput(t *testing.T) {
	text, err := ExtractText(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "" {
		t.Errorf("expected empty text, got %q", text)
	}
}

func TestExtractText_GarbageInput(t *testing.T) {
	if _, err := ExtractText([]byte("not a pdf")); err == nil {
		t.Error("expected error for non-PDF input")
	}
}

func TestTruncate_UnderCap(t *testing.T) {
	text := strings.Repeat("a", MaxChars)
	if got := Truncate(text); got != text {
		t.Error("text within the cap was modified")
	}
}

func TestTruncate_OverCap(t *testing.T) {
	text := strings.Repeat("a", MaxChars+500)
	got := Truncate(text)

	if !strings.HasSuffix(got, truncationMarker) {
		t.Error("truncation marker missing")
	}
	if len(got) != MaxChars+len(truncationMarker) {
		t.Errorf("unexpected truncated length %d", len(got))
	}
	if !strings.HasPrefix(got, strings.Repeat("a", MaxChars)) {
		t.Error("truncation did not keep the head of the text")
	}
}
