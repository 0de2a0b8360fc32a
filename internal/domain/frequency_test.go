package domain

import "testing"

func TestFrequency_Minutes(t *testing.T) {
	cases := []struct {
		in     Frequency
		want   int
		wantOK bool
	}{
		{Every1Min, 1, true},
		{Every5Min, 5, true},
		{Every10Min, 10, true},
		{Frequency("15min"), 5, false},
		{Frequency(""), 5, false},
	}
	for _, c := range cases {
		got, ok := c.in.Minutes()
		if got != c.want || ok != c.wantOK {
			t.Fatalf("Minutes(%q) = %d,%v want %d,%v", c.in, got, ok, c.want, c.wantOK)
		}
	}
}
