package phone

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		uri  string
		want string
	}{
		{"plain digits", "tel:5551234567", "5551234567"},
		{"formatted us number", "tel:+1 (555) 123-4567", "+15551234567"},
		{"keeps leading plus", "tel:+445551234", "+445551234"},
		{"dashes only", "tel:555-123-4567", "5551234567"},
		{"uppercase scheme", "TEL:5551234567", "5551234567"},
		{"not a tel uri", "http://example.com", ""},
		{"empty remainder", "tel:", ""},
		{"empty string", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.uri); got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.uri, got, tc.want)
			}
		})
	}
}

func TestHasTelScheme(t *testing.T) {
	if !HasTelScheme("tel:123") {
		t.Fatalf("HasTelScheme(tel:123) = false, want true")
	}
	if !HasTelScheme("Tel:123") {
		t.Fatalf("HasTelScheme(Tel:123) = false, want true")
	}
	if HasTelScheme("telephone") {
		t.Fatalf("HasTelScheme(telephone) = true, want false")
	}
	if HasTelScheme("te") {
		t.Fatalf("HasTelScheme(te) = true, want false")
	}
}

func TestFindTelArg(t *testing.T) {
	args := []string{"-config", "/tmp/c.toml", "tel:555 123", "tel:999"}
	if got := FindTelArg(args); got != "tel:555 123" {
		t.Fatalf("FindTelArg = %q, want %q", got, "tel:555 123")
	}
	if got := FindTelArg([]string{"--verbose"}); got != "" {
		t.Fatalf("FindTelArg = %q, want empty", got)
	}
}
