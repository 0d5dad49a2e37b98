package inspect

import "testing"

func TestIsBlocked(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		needle string
		want   bool
	}{
		{"exact match", "bad_message", "bad_message", true},
		{"substring in middle", "contains bad_message here", "bad_message", true},
		{"substring at start", "bad_message trailing", "bad_message", true},
		{"substring at end", "leading bad_message", "bad_message", true},
		{"no match", "hello world", "bad_message", false},
		{"case sensitive", "BAD_MESSAGE", "bad_message", false},
		{"partial needle", "bad_messag", "bad_message", false},
		{"empty body", "", "bad_message", false},
		{"empty needle blocks nothing", "anything", "", false},
		{"both empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBlocked(tt.body, tt.needle); got != tt.want {
				t.Errorf("IsBlocked(%q, %q) = %v, want %v", tt.body, tt.needle, got, tt.want)
			}
		})
	}
}
