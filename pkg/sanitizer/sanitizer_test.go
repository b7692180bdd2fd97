package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"only spaces", "   ", ""},
		{"already clean", "Big Pod 1", "Big Pod 1"},
		{"leading and trailing", "  Big Pod 1  ", "Big Pod 1"},
		{"internal runs", "Big   Pod \t 1", "Big Pod 1"},
		{"newlines", "Big\nPod\n1", "Big Pod 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty stays empty", "", ""},
		{"blank stays empty", "  ", ""},
		{"lowercased", "A@X.Com", "a@x.com"},
		{"trimmed", " a@x.com ", "a@x.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeEmail(tt.input); got != tt.want {
				t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizePodName_Idempotent(t *testing.T) {
	input := "  Single   Pod 1 "
	once := NormalizePodName(input)
	twice := NormalizePodName(once)
	if once != twice {
		t.Errorf("NormalizePodName not idempotent: %q vs %q", once, twice)
	}
}
