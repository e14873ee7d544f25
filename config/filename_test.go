package config

import "testing"

func TestCleanFileName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"report", "report"},
		{"a/b", "ab"},
		{"..hidden", "hidden"},
		{"tab\there", "tabhere"},
		{"trailing  ", "trailing"},
		{"Привет мир", "Привет мир"},
		{"", badFileName},
		{"...", badFileName},
		{"/", badFileName},
	}
	for _, tt := range tests {
		if got := CleanFileName(tt.in); got != tt.want {
			t.Errorf("CleanFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
