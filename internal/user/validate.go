package user

import (
	"regexp"
	"strings"
)

var (
	mobilePattern = regexp.MustCompile(`^[789]\d{9}$`)
	panPattern    = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
)

// normalizeMobile strips a single leading national "0", then a single leading
// "+91" country prefix, then surrounding whitespace. Prefixes are stripped
// before the number is validated, and the result is stable under repeated
// normalization.
func normalizeMobile(raw string) string {
	mob := strings.TrimPrefix(raw, "0")
	mob = strings.TrimPrefix(mob, "+91")
	return strings.TrimSpace(mob)
}

func validMobile(mob string) bool {
	return mobilePattern.MatchString(mob)
}

// normalizePan uppercases the whole PAN; records never store raw input.
func normalizePan(raw string) string {
	return strings.ToUpper(raw)
}

func validPan(pan string) bool {
	return panPattern.MatchString(pan)
}
