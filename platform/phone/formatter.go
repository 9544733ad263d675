// Package phone wraps github.com/nyaruka/phonenumbers with the two operations
// the UI needs: as-you-type formatting and validate-then-normalize to E.164.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"sort"
	"strconv"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// minLeadingDigits is how many digits are buffered before any formatting is
// attempted, as libphonenumber's own as-you-type formatter does.
const minLeadingDigits = 3

const (
	maxCallingCodeLength = 3
	maxNSNLength         = 17
)

// RegionInfo describes one region of the metadata table.
type RegionInfo struct {
	Region      string `json:"region"`
	CallingCode int    `json:"callingCode"`
	Example     string `json:"example,omitempty"`
}

// Formatter formats and validates numbers against the library's metadata
// table. The table is compiled into the library, so a Formatter is read-only
// and safe for concurrent use.
type Formatter struct {
	defaultRegion string
	regions       []RegionInfo
	byRegion      map[string]regionData
}

type regionData struct {
	info           RegionInfo
	nationalPrefix string
	// examples holds the national significant numbers of the region's
	// example numbers, one per number type that has one.
	examples []string
}

// exampleTypes are the number types whose examples serve as templates for
// partially typed numbers, in order of preference.
var exampleTypes = []phonenumbers.PhoneNumberType{
	phonenumbers.FIXED_LINE,
	phonenumbers.MOBILE,
	phonenumbers.TOLL_FREE,
	phonenumbers.PREMIUM_RATE,
	phonenumbers.SHARED_COST,
	phonenumbers.VOIP,
	phonenumbers.PERSONAL_NUMBER,
	phonenumbers.UAN,
}

// NewFormatter builds a Formatter. defaultRegion is used when a request
// carries no country code.
func NewFormatter(defaultRegion string) *Formatter {
	f := &Formatter{
		defaultRegion: strings.ToUpper(strings.TrimSpace(defaultRegion)),
		byRegion:      make(map[string]regionData),
	}

	for region := range phonenumbers.GetSupportedRegions() {
		data := regionData{
			info: RegionInfo{
				Region:      region,
				CallingCode: phonenumbers.GetCountryCodeForRegion(region),
			},
			nationalPrefix: phonenumbers.GetNddPrefixForRegion(region, true),
		}
		if example := phonenumbers.GetExampleNumber(region); example != nil {
			data.info.Example = phonenumbers.Format(example, phonenumbers.INTERNATIONAL)
		}
		seen := make(map[string]bool)
		for _, typ := range exampleTypes {
			example := phonenumbers.GetExampleNumberForType(region, typ)
			if example == nil {
				continue
			}
			nsn := phonenumbers.GetNationalSignificantNumber(example)
			if nsn != "" && !seen[nsn] {
				seen[nsn] = true
				data.examples = append(data.examples, nsn)
			}
		}
		f.regions = append(f.regions, data.info)
		f.byRegion[region] = data
	}
	sort.Slice(f.regions, func(i, j int) bool {
		return f.regions[i].Region < f.regions[j].Region
	})

	return f
}

// FormatIncremental formats number as if it had been typed digit by digit.
// It never fails: input that cannot be formatted for countryCode comes back
// as its dialable characters only. Each extra digit never makes the output
// shorter; when a longer prefix cannot be formatted, or would format shorter,
// the remaining digits are appended to the last formatted prefix.
func (f *Formatter) FormatIncremental(number, countryCode string) string {
	raw := dialable(number)
	digits := strings.TrimPrefix(raw, "+")
	if len(digits) < minLeadingDigits {
		return raw
	}

	international := strings.HasPrefix(raw, "+")
	region := f.region(countryCode)

	out := raw[:len(raw)-len(digits)+minLeadingDigits-1]
	for n := minLeadingDigits; n <= len(digits); n++ {
		next := out + digits[n-1:n]
		if formatted, ok := f.formatPrefix(digits[:n], region, international); ok && len(formatted) >= len(out) {
			next = formatted
		}
		out = next
	}
	return out
}

// FormatIfValid returns the E.164 form of number when it parses as a valid
// number for countryCode.
func (f *Formatter) FormatIfValid(number, countryCode string) (string, bool) {
	trimmed := strings.TrimSpace(number)
	if trimmed == "" {
		return "", false
	}

	parsed, err := phonenumbers.Parse(trimmed, f.region(countryCode))
	if err != nil {
		return "", false
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return "", false
	}

	return phonenumbers.Format(parsed, phonenumbers.E164), true
}

// Regions lists every supported region sorted by region code.
func (f *Formatter) Regions() []RegionInfo {
	out := make([]RegionInfo, len(f.regions))
	copy(out, f.regions)
	return out
}

// Example returns the metadata entry for a region.
func (f *Formatter) Example(countryCode string) (RegionInfo, bool) {
	data, ok := f.byRegion[strings.ToUpper(strings.TrimSpace(countryCode))]
	return data.info, ok
}

// IsSupportedRegion reports whether countryCode names a region in the table.
func (f *Formatter) IsSupportedRegion(countryCode string) bool {
	_, ok := f.Example(countryCode)
	return ok
}

// DefaultRegion is the region used for requests without a country code.
func (f *Formatter) DefaultRegion() string {
	return f.defaultRegion
}

func (f *Formatter) region(countryCode string) string {
	region := strings.ToUpper(strings.TrimSpace(countryCode))
	if region == "" {
		return f.defaultRegion
	}
	return region
}

// formatPrefix formats typed digits in one pass, without regard to the
// shorter prefixes typed before them.
func (f *Formatter) formatPrefix(digits, region string, international bool) (string, bool) {
	if international {
		return f.formatInternational(digits)
	}

	data, ok := f.byRegion[region]
	if !ok {
		return "", false
	}

	np := data.nationalPrefix
	if np != "" && len(digits) > len(np) && strings.HasPrefix(digits, np) {
		nsn := digits[len(np):]
		for _, tmpl := range templates(data.info.CallingCode, nsn, data.examples, phonenumbers.NATIONAL) {
			if out, ok := cutAfterDigits(tmpl, digits); ok {
				return out, true
			}
			// NANP style: the national format leaves the trunk prefix out.
			if out, ok := cutAfterDigits(tmpl, nsn); ok {
				return np + " " + out, true
			}
		}
	}

	for _, tmpl := range templates(data.info.CallingCode, digits, data.examples, phonenumbers.NATIONAL) {
		if out, ok := cutAfterDigits(tmpl, digits); ok {
			return out, true
		}
		if np == "" {
			continue
		}
		if rest, ok := dropLeadingDigits(tmpl, np); ok {
			if out, ok := cutAfterDigits(rest, digits); ok {
				return out, true
			}
		}
	}
	return "", false
}

func (f *Formatter) formatInternational(digits string) (string, bool) {
	for size := 1; size <= maxCallingCodeLength && size <= len(digits); size++ {
		callingCode, err := strconv.Atoi(digits[:size])
		if err != nil {
			return "", false
		}
		region := phonenumbers.GetRegionCodeForCountryCode(callingCode)
		if region == phonenumbers.UNKNOWN_REGION {
			continue
		}

		nsn := digits[size:]
		for _, tmpl := range templates(callingCode, nsn, f.byRegion[region].examples, phonenumbers.INTERNATIONAL) {
			if out, ok := cutAfterDigits(tmpl, digits); ok {
				return out, true
			}
		}
		return "", false
	}
	return "", false
}

// templates completes a partial national significant number with the tails
// of the region's example numbers so the library can pick a formatting
// pattern, and formats each completion. Completions that no pattern matches
// are skipped. A number that is already valid is formatted as typed first.
func templates(callingCode int, nsn string, examples []string, format phonenumbers.PhoneNumberFormat) []string {
	var candidates []string
	if num, ok := nationalNumber(callingCode, nsn); ok && phonenumbers.IsValidNumber(num) {
		candidates = append(candidates, nsn)
	}

	ordered := make([]string, len(examples))
	copy(ordered, examples)
	sort.SliceStable(ordered, func(i, j int) bool {
		return sharedPrefix(ordered[i], nsn) > sharedPrefix(ordered[j], nsn)
	})
	for _, example := range ordered {
		if len(nsn) < len(example) {
			candidates = append(candidates, nsn+example[len(nsn):])
		}
	}
	candidates = append(candidates, nsn)

	prefix := ""
	if format == phonenumbers.INTERNATIONAL {
		prefix = "+" + strconv.Itoa(callingCode) + " "
	}

	var out []string
	for _, candidate := range candidates {
		num, ok := nationalNumber(callingCode, candidate)
		if !ok {
			continue
		}
		formatted := phonenumbers.Format(num, format)
		if !hasSeparator(strings.TrimPrefix(formatted, prefix)) {
			continue
		}
		out = append(out, formatted)
	}
	return out
}

// nationalNumber builds a number from its parts without going through
// Parse, which would rewrite or reject partial input.
func nationalNumber(callingCode int, nsn string) (*phonenumbers.PhoneNumber, bool) {
	if nsn == "" || len(nsn) > maxNSNLength {
		return nil, false
	}
	value, err := strconv.ParseUint(nsn, 10, 64)
	if err != nil {
		return nil, false
	}

	code := int32(callingCode)
	num := &phonenumbers.PhoneNumber{CountryCode: &code, NationalNumber: &value}

	// The library writes one zero for a zero national number itself.
	zeros := len(nsn) - len(strings.TrimLeft(nsn, "0"))
	if zeros == len(nsn) {
		zeros--
	}
	if zeros > 0 {
		leading := true
		count := int32(zeros)
		num.ItalianLeadingZero = &leading
		num.NumberOfLeadingZeros = &count
	}
	return num, true
}
