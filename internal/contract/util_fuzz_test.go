package contract

import (
	"testing"
	"unicode/utf8"
)

// FuzzParseYears fuzzes ParseYears with arbitrary input.
func FuzzParseYears(f *testing.F) {
	for _, seed := range []string{"", "snap", "1990,2000", " 2023 ", "a,b", ",,,"} {
		f.Add(seed)
	}
	f.Fuzz(func(_ *testing.T, s string) {
		_, _ = ParseYears(s)
	})
}

// FuzzTruncateName checks that truncation never exceeds the requested width.
func FuzzTruncateName(f *testing.F) {
	f.Add("East Cesar Chavez / East 5th-7th", 12)
	f.Add("", 0)
	f.Add("Ñuñoa", 4)
	f.Fuzz(func(t *testing.T, name string, width int) {
		out := TruncateName(name, width)
		if width > 3 && utf8.RuneCountInString(name) > width && len([]rune(out)) != width {
			t.Fatalf("TruncateName(%q, %d) = %q", name, width, out)
		}
	})
}
