package service

import "testing"

func TestCreditNote(t *testing.T) {
	tests := []struct {
		name     string
		markedBy string
		watched  bool
		want     string
	}{
		{"watched carries attribution", "Ms. Rivera", true, "[Credit given by Ms. Rivera]"},
		{"unwatched carries no note", "Ms. Rivera", false, ""},
		{"unwatched ignores empty marker", "", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := creditNote(tt.markedBy, tt.watched); got != tt.want {
				t.Errorf("creditNote(%q, %v) = %q, want %q", tt.markedBy, tt.watched, got, tt.want)
			}
		})
	}
}
