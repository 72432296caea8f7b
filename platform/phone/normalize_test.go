package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	cases := []struct {
		input  string
		region string
		want   string
	}{
		{"(650) 253-0000", "US", "+16502530000"},
		{"650-253-0000", "", "+16502530000"},
		{"+1 650 253 0000", "NL", "+16502530000"},
		{"  ", "US", ""},
		{"not a number", "US", "not a number"},
		{"123", "US", "123"},
	}

	for _, tc := range cases {
		if got := NormalizeE164(tc.input, tc.region); got != tc.want {
			t.Errorf("NormalizeE164(%q, %q) = %q, want %q", tc.input, tc.region, got, tc.want)
		}
	}
}
