package logging

import "testing"

func TestRedactEmail(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty string", input: "", expected: ""},
		{name: "simple address", input: "ann@x.com", expected: "a***@x.com"},
		{name: "single character local part", input: "a@x.com", expected: "a***@x.com"},
		{name: "surrounding whitespace", input: "  bo@studio.example ", expected: "b***@studio.example"},
		{name: "not an address", input: "ann", expected: RedactedText},
		{name: "two at signs", input: "a@b@c", expected: RedactedText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RedactEmail(tt.input); got != tt.expected {
				t.Errorf("RedactEmail(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNew(t *testing.T) {
	if _, err := New(Options{Level: "debug", Format: "console"}); err != nil {
		t.Fatalf("console logger: %v", err)
	}
	if _, err := New(Options{}); err != nil {
		t.Fatalf("default logger: %v", err)
	}
	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Fatalf("expected invalid level error")
	}
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatalf("expected invalid format error")
	}
}
