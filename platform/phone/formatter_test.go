package phone

import (
	"strings"
	"testing"

	"github.com/nyaruka/phonenumbers"
)

const (
	usNational = "2015550123"
	usE164     = "+12015550123"
)

func TestFormatIfValid(t *testing.T) {
	f := NewFormatter("US")

	cases := []struct {
		name        string
		number      string
		countryCode string
		want        string
		valid       bool
	}{
		{name: "national US", number: usNational, countryCode: "US", want: usE164, valid: true},
		{name: "punctuated US", number: "(201) 555-0123", countryCode: "US", want: usE164, valid: true},
		{name: "lower case region", number: usNational, countryCode: "us", want: usE164, valid: true},
		{name: "empty region uses default", number: usNational, countryCode: "", want: usE164, valid: true},
		{name: "already E.164", number: usE164, countryCode: "US", want: usE164, valid: true},
		{name: "too short", number: "123", countryCode: "US"},
		{name: "empty", number: "   ", countryCode: "US"},
		{name: "letters only", number: "hello", countryCode: "US"},
		{name: "unknown region", number: usNational, countryCode: "XX"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := f.FormatIfValid(tc.number, tc.countryCode)
			if ok != tc.valid {
				t.Fatalf("expected valid=%v, got %v (%q)", tc.valid, ok, got)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestFormatIfValidIsIdempotent(t *testing.T) {
	f := NewFormatter("US")

	first, ok := f.FormatIfValid(usNational, "US")
	if !ok {
		t.Fatalf("expected %s to be valid", usNational)
	}
	second, ok := f.FormatIfValid(first, "US")
	if !ok || second != first {
		t.Fatalf("expected re-validation to return %q, got %q (valid=%v)", first, second, ok)
	}
}

func TestFormatIfValidReturnsPlusAndDigitsOnly(t *testing.T) {
	f := NewFormatter("US")

	got, ok := f.FormatIfValid("201-555-0123", "US")
	if !ok {
		t.Fatalf("expected number to be valid")
	}
	if !strings.HasPrefix(got, "+") {
		t.Fatalf("expected leading plus, got %q", got)
	}
	for _, r := range got[1:] {
		if r < '0' || r > '9' {
			t.Fatalf("expected digits only after plus, got %q", got)
		}
	}
}

func TestFormatIncrementalFullNumber(t *testing.T) {
	f := NewFormatter("US")

	if got := f.FormatIncremental(usNational, "US"); got != "(201) 555-0123" {
		t.Fatalf("expected (201) 555-0123, got %q", got)
	}
	if got := f.FormatIncremental(usE164, "US"); got != "+1 201-555-0123" {
		t.Fatalf("expected +1 201-555-0123, got %q", got)
	}
}

func TestFormatIncrementalPartialNumbers(t *testing.T) {
	f := NewFormatter("US")

	cases := map[string]string{
		"2":     "2",
		"20":    "20",
		"201":   "(201)",
		"2015":  "(201) 5",
		"20155": "(201) 55",
		"+120":  "+1 20",
	}
	for input, want := range cases {
		if got := f.FormatIncremental(input, "US"); got != want {
			t.Fatalf("input %q: expected %q, got %q", input, want, got)
		}
	}
}

func TestFormatIncrementalNationalPrefix(t *testing.T) {
	f := NewFormatter("US")

	cases := []struct {
		number      string
		countryCode string
		want        string
	}{
		{number: "020794", countryCode: "GB", want: "020 794"},
		{number: "2079460", countryCode: "GB", want: "20 7946 0"},
		{number: "1201555", countryCode: "US", want: "1 (201) 555"},
		{number: "12015550123", countryCode: "US", want: "1 (201) 555-0123"},
		{number: "2644612", countryCode: "AI", want: "(264) 461-2"},
	}
	for _, tc := range cases {
		if got := f.FormatIncremental(tc.number, tc.countryCode); got != tc.want {
			t.Fatalf("%s %q: expected %q, got %q", tc.countryCode, tc.number, tc.want, got)
		}
	}
}

func TestFormatIncrementalCompleteExampleNumbers(t *testing.T) {
	f := NewFormatter("US")

	for _, region := range []string{"US", "GB", "DE", "FR", "JP", "KR", "PH", "AI"} {
		example := phonenumbers.GetExampleNumber(region)
		if example == nil {
			t.Fatalf("no example number for %s", region)
		}
		want := phonenumbers.Format(example, phonenumbers.NATIONAL)
		if got := f.FormatIncremental(phonenumbers.NormalizeDigitsOnly(want), region); got != want {
			t.Fatalf("%s: expected %q, got %q", region, want, got)
		}
	}
}

// Every region's example number, typed one national digit at a time, must
// never get shorter and must keep exactly the typed digits.
func TestFormatIncrementalPrefixesNeverShrink(t *testing.T) {
	f := NewFormatter("US")

	for _, info := range f.Regions() {
		example := phonenumbers.GetExampleNumber(info.Region)
		if example == nil {
			continue
		}
		national := phonenumbers.NormalizeDigitsOnly(phonenumbers.Format(example, phonenumbers.NATIONAL))

		prev := ""
		for i := 1; i <= len(national); i++ {
			prefix := national[:i]
			got := f.FormatIncremental(prefix, info.Region)
			if len(got) < len(prev) {
				t.Fatalf("%s: %q formatted to %q, shorter than %q", info.Region, prefix, got, prev)
			}
			if digits := phonenumbers.NormalizeDigitsOnly(got); digits != prefix {
				t.Fatalf("%s: %q formatted to %q, digits changed", info.Region, prefix, got)
			}
			prev = got
		}
	}
}

func TestFormatIncrementalInternationalPrefixesNeverShrink(t *testing.T) {
	f := NewFormatter("US")

	for _, region := range []string{"US", "GB", "DE", "KR", "PH", "AI", "IT"} {
		example := phonenumbers.GetExampleNumber(region)
		if example == nil {
			t.Fatalf("no example number for %s", region)
		}
		e164 := phonenumbers.Format(example, phonenumbers.E164)

		prev := ""
		for i := 2; i <= len(e164); i++ {
			got := f.FormatIncremental(e164[:i], "")
			if len(got) < len(prev) || !strings.HasPrefix(got, "+") {
				t.Fatalf("%s: %q formatted to %q after %q", region, e164[:i], got, prev)
			}
			prev = got
		}
		if want := phonenumbers.Format(example, phonenumbers.INTERNATIONAL); prev != want {
			t.Fatalf("%s: expected %q, got %q", region, want, prev)
		}
	}
}

func TestFormatIncrementalUnparseableFallsBackToDigits(t *testing.T) {
	f := NewFormatter("US")

	if got := f.FormatIncremental("201-555-0123", "XX"); got != usNational {
		t.Fatalf("expected raw digits for unknown region, got %q", got)
	}
	if got := f.FormatIncremental("", "US"); got != "" {
		t.Fatalf("expected empty output for empty input, got %q", got)
	}
}

func TestRegionsAndExample(t *testing.T) {
	f := NewFormatter("us")

	if f.DefaultRegion() != "US" {
		t.Fatalf("expected default region to be upper-cased, got %q", f.DefaultRegion())
	}

	regions := f.Regions()
	if len(regions) < 200 {
		t.Fatalf("expected the full region table, got %d entries", len(regions))
	}
	for i := 1; i < len(regions); i++ {
		if regions[i-1].Region >= regions[i].Region {
			t.Fatalf("regions not sorted at %d: %s >= %s", i, regions[i-1].Region, regions[i].Region)
		}
	}

	us, ok := f.Example("us")
	if !ok {
		t.Fatalf("expected US to be supported")
	}
	if us.CallingCode != 1 || !strings.HasPrefix(us.Example, "+1 ") {
		t.Fatalf("unexpected US entry %+v", us)
	}
	if f.IsSupportedRegion("XX") {
		t.Fatalf("expected XX to be unsupported")
	}
}
