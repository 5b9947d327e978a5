package domain

import "strings"

// ParseVariant maps a user-supplied string onto a known Variant.
func ParseVariant(s string) (Variant, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(VariantStandard):
		return VariantStandard, true
	case string(VariantParallelImport):
		return VariantParallelImport, true
	default:
		return "", false
	}
}
