package services

import (
	"regexp"
	"strconv"
	"strings"
)

// priceRegexp captures the first numeric amount in a price label.
var priceRegexp = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)

// ParsePrice extracts a positive currency amount from a label such as
// "$1,234.56" or "USD 24.99". ok is false for anything unparsable or
// non-positive.
func ParsePrice(raw string) (price float64, ok bool) {
	match := priceRegexp.FindString(raw)
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// AssemblePrice joins a split "whole" and "fraction" rendering (for example
// "32." and "48") into one amount. A missing fraction counts as zero cents.
func AssemblePrice(whole, fraction string) (price float64, ok bool) {
	w := strings.TrimRight(strings.TrimSpace(whole), ".")
	w = strings.ReplaceAll(w, ",", "")
	if m := priceRegexp.FindString(w); m != "" {
		w = m
	} else {
		return 0, false
	}

	f := strings.TrimSpace(fraction)
	digits := strings.Builder{}
	for _, r := range f {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return ParsePrice(w)
	}
	return ParsePrice(w + "." + digits.String())
}
