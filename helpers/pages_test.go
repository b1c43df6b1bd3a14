package helpers

import "testing"

func TestFormatPages(t *testing.T) {
	cases := []struct {
		start, end, want string
	}{
		{"", "", ""},
		{"100", "", "100"},
		{"100", "100", "100"},
		{"R575", "582", "R575-R582"},
		{"1234", "45", "1234-1245"},
		{"100", "110", "100-110"},
	}
	for _, c := range cases {
		if got := FormatPages(c.start, c.end); got != c.want {
			t.Errorf("FormatPages(%q, %q) = %q, want %q", c.start, c.end, got, c.want)
		}
	}
}
