package slug

import "testing"

func TestMake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"How to pay", "how-to-pay"},
		{"Billing", "billing"},
		{"  Spaced   out  ", "spaced-out"},
		{"Émigré café", "emigre-cafe"},
		{"FAQ: the basics?", "faq-the-basics"},
		{"already-slugified", "already-slugified"},
		{"under_score name", "under-score-name"},
		{"Ünïcödé", "unicode"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Make(tt.in); got != tt.want {
			t.Errorf("Make(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMakeIdempotent(t *testing.T) {
	inputs := []string{"How to pay", "Émigré café", "a  b--c", "MiXeD Case 42"}
	for _, in := range inputs {
		once := Make(in)
		twice := Make(once)
		if once != twice {
			t.Errorf("Make not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestMakeOutputAlphabet(t *testing.T) {
	for _, in := range []string{"Weird!@#$%^&*()", "Tabs\tand\nnewlines", "ça va?"} {
		out := Make(in)
		for _, r := range out {
			if !(r == '-' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')) {
				t.Errorf("Make(%q) produced %q with illegal rune %q", in, out, r)
			}
		}
	}
}

func TestLocaleRoundTrip(t *testing.T) {
	tests := []struct {
		local  string
		remote string
	}{
		{"en-US", "en-us"},
		{"pt-BR", "pt-br"},
		{"de", "de"},
		{"zh-CN", "zh-cn"},
	}

	for _, tt := range tests {
		if got := ToRemoteLocale(tt.local); got != tt.remote {
			t.Errorf("ToRemoteLocale(%q) = %q, want %q", tt.local, got, tt.remote)
		}
		if got := ToLocalLocale(tt.remote); got != tt.local {
			t.Errorf("ToLocalLocale(%q) = %q, want %q", tt.remote, got, tt.local)
		}
	}
}
