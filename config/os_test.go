package config

import (
	"os"
	"testing"
)

func TestCleanFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"LLDump_20240501123000.json", "LLDump_20240501123000.json"},
		{"LLDump_a" + string(os.PathSeparator) + "b.json", "LLDump_ab.json"},
		{"LLDump_\x01tab\t.json", "LLDump_tab.json"},
		{"", badFileName},
	}
	for _, tt := range tests {
		if got := CleanFileName(tt.in); got != tt.want {
			t.Errorf("CleanFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEnableColorOutput_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if EnableColorOutput(os.Stdout) {
		t.Error("EnableColorOutput() = true with NO_COLOR set")
	}
}
