package parking

import "regexp"

// plateRe matches Hungarian-style plates: three uppercase letters, an
// optional dash, three digits ("ABC-123" or "ABC123").
var plateRe = regexp.MustCompile(`^[A-Z]{3}-?\d{3}$`)

// ValidPlate reports whether the plate matches the accepted format.
// Callers normalize to uppercase before validating.
func ValidPlate(plate string) bool {
	return plateRe.MatchString(plate)
}
