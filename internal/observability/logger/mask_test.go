package logger

import "testing"

func TestMaskAuthorization(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Bearer sk_live_abcdef123456", "Bearer ****3456"},
		{"bearer token9999", "Bearer ****9999"},
		{"rawtoken1234", "****1234"},
		{"abc", "****abc"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := MaskAuthorization(tc.in); got != tc.want {
			t.Errorf("MaskAuthorization(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMaskAPIKey(t *testing.T) {
	if got := MaskAPIKey("admin-key-12345678"); got != "****5678" {
		t.Errorf("unexpected mask: %q", got)
	}
	if got := MaskAPIKey(""); got != "" {
		t.Errorf("expected empty mask, got %q", got)
	}
}

func TestMaskPhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"13800138000", "138****8000"},
		{"12345678", "123*5678"},
		{"1234567", "*******"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := MaskPhone(tc.in); got != tc.want {
			t.Errorf("MaskPhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
