package logger

import "testing"

func TestRedactEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"john.doe@example.com", "jo***@example.com"},
		{"ab@example.com", "***@example.com"},
		{"a@example.com", "***@example.com"},
		{"not-an-email", "***@***"},
		{"", "***@***"},
	}

	for _, tt := range tests {
		if got := RedactEmail(tt.in); got != tt.want {
			t.Errorf("RedactEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRedactPIIValue(t *testing.T) {
	got := redactPIIValue("recipient_email", "jane@x.com")
	if got != "ja***@x.com" {
		t.Errorf("redactPIIValue(email field) = %q", got)
	}

	got = redactPIIValue("error", "550 mailbox jane@x.com unavailable")
	if got != "550 mailbox ja***@x.com unavailable" {
		t.Errorf("redactPIIValue(embedded) = %q", got)
	}
}
