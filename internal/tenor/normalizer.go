// Package tenor classifies raw FX tenor strings into canonical forms. The
// feed mixes several disjoint grammars (central bank meeting dates, IMM
// futures, month-boundary codes, plain time offsets, explicit dates) and is
// inconsistent about prefixes, so normalization tries each grammar in
// priority order and returns on the first match.
package tenor

import (
	"regexp"

	"github.com/sirupsen/logrus"
)

var (
	prefixPattern        = regexp.MustCompile(`^(SP-|SP:)`)
	centralBankPattern   = regexp.MustCompile(`^(FED|RBA|ECB|BOE|BOC|SNB)_\w{3}_\d{2}$`)
	immPattern           = regexp.MustCompile(`^IMM\d+$`)
	quarterPattern       = regexp.MustCompile(`^(EOQ|BOQ)\d+$`)
	futuresStylePattern  = regexp.MustCompile(`^[FMT]\d+$`)
	shortTermPattern     = regexp.MustCompile(`^(ON|TN|SN)(\+\d+)?$`)
	monthBoundaryPattern = regexp.MustCompile(`BOM\d+|EOM\d+`)
	digitRunPattern      = regexp.MustCompile(`\d+`)
	timeBasedPattern     = regexp.MustCompile(`^\d+[DWMY]$`)
	explicitDatePattern  = regexp.MustCompile(`^\d{8}$`)
)

// Normalize returns the canonical form of a raw tenor string. It is total:
// unrecognized input is logged and returned prefix-stripped rather than
// rejected. An empty result signals an invalid tenor to the caller (used by
// the swap points loader to drop an entry).
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	normalized := prefixPattern.ReplaceAllString(raw, "")

	switch {
	case centralBankPattern.MatchString(normalized):
		return normalized
	case immPattern.MatchString(normalized):
		return normalized
	case quarterPattern.MatchString(normalized):
		return normalized
	case futuresStylePattern.MatchString(normalized):
		return normalized
	case shortTermPattern.MatchString(normalized):
		return normalized
	}

	// Month-boundary codes collapse to a plain month tenor: BOM5 -> 5M,
	// EOM12x3 -> 12M (first digit run wins).
	if monthBoundaryPattern.MatchString(normalized) {
		number := digitRunPattern.FindString(normalized)
		if number == "" {
			return ""
		}
		return number + "M"
	}

	if timeBasedPattern.MatchString(normalized) {
		return normalized
	}

	if explicitDatePattern.MatchString(normalized) {
		return normalized
	}

	logrus.Warnf("unrecognized tenor format: %s (original: %s) - returning as-is", normalized, raw)
	return normalized
}

// IsExplicitDate reports whether a normalized tenor is an eight digit
// YYYYMMDD calendar date rather than a relative offset.
func IsExplicitDate(tenor string) bool {
	return explicitDatePattern.MatchString(tenor)
}
