package cmd

import (
	"errors"
	"strings"
	"testing"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"lowercase y", "y\n", true},
		{"uppercase Y", "Y\n", true},
		{"lowercase yes", "yes\n", true},
		{"uppercase YES", "YES\n", true},
		{"lowercase n", "n\n", false},
		{"empty input", "\n", false},
		{"random text", "maybe\n", false},
		{"y with spaces", "  y  \n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := strings.NewReader(tt.input)
			result := confirm(reader, "Test?")
			if result != tt.expected {
				t.Errorf("confirm(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestConfirm_EOF(t *testing.T) {
	reader := strings.NewReader("")
	if confirm(reader, "Test?") {
		t.Error("confirm(EOF) = true, want false")
	}
}

func TestConfirm_ErrorReader(t *testing.T) {
	if confirm(&errorReader{}, "Test?") {
		t.Error("confirm(error) = true, want false")
	}
}

// errorReader is a reader that always returns an error
type errorReader struct{}

func (e *errorReader) Read(p []byte) (n int, err error) {
	return 0, errors.New("read error")
}

func TestFileExists(t *testing.T) {
	if fileExists("/nonexistent/path/for/sure") {
		t.Error("fileExists on missing path = true")
	}
}
