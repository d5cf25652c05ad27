package utils

import (
	"strings"
)

// NormalizeCountryName - normalize a raw country name into all small case
// with spaces instead of underscores, e.g. "United_States" -> "united states".
func NormalizeCountryName(name string) string {
	name = strings.Replace(name, "_", " ", -1)
	return strings.TrimSpace(strings.ToLower(name))
}

// NameToKey - normalize a country name into all small case with underscore,
// safe for file names and identifiers.
func NameToKey(name string) string {
	return strings.Replace(NormalizeCountryName(name), " ", "_", -1)
}
