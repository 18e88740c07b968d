package utils

import "testing"

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"Valid Password", "secret1!", true},
		{"Too Short", "a1!", false},
		{"Missing Number", "secrets!", false},
		{"Missing Special Character", "secret12", false},
		{"Empty", "", false},
		{"Exactly Six Characters", "abc12!", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidatePassword(tc.password); got != tc.want {
				t.Errorf("ValidatePassword(%q) = %v, want %v", tc.password, got, tc.want)
			}
		})
	}
}

func TestIsISODate(t *testing.T) {
	tests := []struct {
		name string
		date string
		want bool
	}{
		{"Valid Date", "2026-03-01", true},
		{"Missing Padding", "2026-3-1", false},
		{"Wrong Separator", "2026/03/01", false},
		{"Trailing Garbage", "2026-03-01T00:00:00Z", false},
		{"Empty", "", false},
		{"Impossible Month", "2026-13-45", false},
		{"Day Out Of Range", "2026-04-31", false},
		{"February 29 Off Leap Year", "2023-02-29", false},
		{"February 29 On Leap Year", "2024-02-29", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsISODate(tc.date); got != tc.want {
				t.Errorf("IsISODate(%q) = %v, want %v", tc.date, got, tc.want)
			}
		})
	}
}

func TestDeviceName(t *testing.T) {
	chromeMac := "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	if got := DeviceName(chromeMac); got == "" || got == "Unknown Device" {
		t.Errorf("expected a recognizable device name, got %q", got)
	}

	if got := DeviceName(""); got == "" {
		t.Error("empty user agent should still yield a placeholder name")
	}
}
