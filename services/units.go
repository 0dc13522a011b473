package services

import (
	"regexp"
	"strconv"
	"strings"
)

// Building blocks for the volume patterns. num accepts thousands separators
// and decimals; unit words are matched against lower-cased text.
const (
	num     = `(\d{1,3}(?:,\d{3})+(?:\.\d+)?|\d+(?:\.\d+)?)`
	flOz    = `(?:fl\.?\s*oz|fluid\s+ounces?)`
	anyOz   = `(?:fl\.?\s*oz|fluid\s+ounces?|ounces?|oz)`
	looseOz = `(?:ounces?|oz)\b`
	countWd = `\s*-?\s*(?:count|ct)\b`
	packWd  = `\s*-?\s*(?:pack|pk|count|ct|cans)\b`
	packOf  = `(?:pack|case)\s+of\s+`
)

// volumePatterns are tried in order; the first match wins. Fluid-ounce
// phrasing comes before bare "oz" so a generic pattern cannot steal a match
// from a specific one. Within each tier "N count" and "N ct" come before
// "pack of N": in "16 Fl Oz, 24 Count (Pack of 1)" the count is the cans.
var volumePatterns = []*regexp.Regexp{
	regexp.MustCompile(num + countWd + `.*?` + num + `\s*` + flOz),
	regexp.MustCompile(num + `\s*` + flOz + `.*?` + num + countWd),
	regexp.MustCompile(packOf + num + `\b.*?` + num + `\s*` + flOz),
	regexp.MustCompile(num + `\s*` + flOz + `.*?` + packOf + num),
	regexp.MustCompile(num + packWd + `.*?` + num + `\s*` + flOz),
	regexp.MustCompile(num + `\s*` + flOz + `.*?` + num + packWd),
	regexp.MustCompile(num + `\s*[x×]\s*` + num + `\s*` + anyOz),
	regexp.MustCompile(num + countWd + `.*?` + num + `\s*` + looseOz),
	regexp.MustCompile(num + `\s*` + looseOz + `.*?` + num + countWd),
	regexp.MustCompile(packOf + num + `\b.*?` + num + `\s*` + looseOz),
	regexp.MustCompile(num + `\s*` + looseOz + `.*?` + packOf + num),
	regexp.MustCompile(num + packWd + `.*?` + num + `\s*` + looseOz),
	regexp.MustCompile(num + `\s*` + looseOz + `.*?` + num + packWd),
}

// ExtractVolume recovers the total fluid ounces described by pack/size
// phrasing such as "16 Fl Oz (Pack of 24)" or "24-Pack 16 oz". The two
// captured numbers are multiplied without deciding which one is the count.
// ok is false when no pattern matches; a miss is never reported as zero.
func ExtractVolume(text string) (volume float64, ok bool) {
	lower := strings.ToLower(text)
	for _, re := range volumePatterns {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		a, errA := parseNumber(m[1])
		b, errB := parseNumber(m[2])
		if errA != nil || errB != nil {
			continue
		}
		if total := a * b; total > 0 {
			return total, true
		}
	}
	return 0, false
}

func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}
