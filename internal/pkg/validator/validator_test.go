package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2025-06-10"); !ok {
		t.Error("IsValidDate(2025-06-10) = false, want true")
	}
	for _, bad := range []string{"2025-13-01", "10/06/2025", "2025-06-10T00:00:00Z", ""} {
		if _, ok := IsValidDate(bad); ok {
			t.Errorf("IsValidDate(%q) = true, want false", bad)
		}
	}
}

func TestIsValidAmount(t *testing.T) {
	valid := []string{"0", "30", "30.5", "30.50", "1250.00"}
	invalid := []string{"-30", "30.505", "RM30", "30,50", "", "."}
	for _, s := range valid {
		if !IsValidAmount(s) {
			t.Errorf("IsValidAmount(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidAmount(s) {
			t.Errorf("IsValidAmount(%q) = true, want false", s)
		}
	}
}

func TestIsValidMonth(t *testing.T) {
	for _, m := range []int{1, 6, 12} {
		if !IsValidMonth(m) {
			t.Errorf("IsValidMonth(%d) = false, want true", m)
		}
	}
	for _, m := range []int{0, 13, -1} {
		if IsValidMonth(m) {
			t.Errorf("IsValidMonth(%d) = true, want false", m)
		}
	}
}
