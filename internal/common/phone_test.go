package common

import "testing"

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"  ", ""},
		{"+386 41 123 456", "+38641123456"},
		{"041 123 456", "+38641123456"},
		{"call me maybe", "call me maybe"},
	}
	for _, c := range cases {
		if got := NormalizePhone(c.in, "SI"); got != c.want {
			t.Errorf("NormalizePhone(%q) = %q, expected %q", c.in, got, c.want)
		}
	}
}
