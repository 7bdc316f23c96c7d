package service

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		want string
	}{
		{"Wireless Mouse", "wireless-mouse"},
		{"Wireless  Mouse", "wireless-mouse"},
		{"USB-C Cable", "usb-c-cable"},
		{"snake_case_name", "snake-case-name"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Café au Lait", "caf-au-lait"},
		{"100% Cotton T-Shirt", "100-cotton-t-shirt"},
		{"UPPERCASE", "uppercase"},
		{"!!!", ""},
		{"", ""},
		{"tab\tand\nnewline", "tab-and-newline"},
	}

	for _, tc := range cases {
		if got := Slugify(tc.name); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestSlugify_Truncation(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", 150)
	slug := Slugify(long)
	if len(slug) != maxSlugLength {
		t.Errorf("slug length = %d, want %d", len(slug), maxSlugLength)
	}

	// Truncation must not leave a trailing hyphen.
	boundary := strings.Repeat("word-", 30)
	slug = Slugify(boundary)
	if strings.HasSuffix(slug, "-") {
		t.Errorf("slug should not end with a hyphen: %q", slug)
	}
	if len(slug) > maxSlugLength {
		t.Errorf("slug length = %d, want <= %d", len(slug), maxSlugLength)
	}
}

func TestValidSlugFormat(t *testing.T) {
	t.Parallel()

	valid := []string{"a", "abc", "wireless-mouse", "usb-c-cable-2", "100"}
	for _, slug := range valid {
		if !ValidSlugFormat(slug) {
			t.Errorf("ValidSlugFormat(%q) = false, want true", slug)
		}
	}

	invalid := []string{
		"",
		"-leading",
		"trailing-",
		"double--hyphen",
		"UPPER",
		"with space",
		"unicode-café",
		strings.Repeat("a", maxSlugLength+1),
	}
	for _, slug := range invalid {
		if ValidSlugFormat(slug) {
			t.Errorf("ValidSlugFormat(%q) = true, want false", slug)
		}
	}
}
