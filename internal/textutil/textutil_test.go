package textutil

import "testing"

func TestNonSpaceLen(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"   \n\t", 0},
		{"abc", 3},
		{" a b\nc ", 3},
		{"ação", 4},
	}

	for _, tt := range tests {
		if got := NonSpaceLen(tt.in); got != tt.want {
			t.Errorf("NonSpaceLen(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestTrimmedLen(t *testing.T) {
	if got := TrimmedLen("  olá mundo \n"); got != 9 {
		t.Errorf("TrimmedLen() = %d, want 9", got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"plain", "plain"},
		{"ﬁle", "file"},
		{"１２", "12"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsBlank(t *testing.T) {
	if !IsBlank(" \n ") {
		t.Error("IsBlank() = false for whitespace")
	}
	if IsBlank(" x ") {
		t.Error("IsBlank() = true for text")
	}
}
