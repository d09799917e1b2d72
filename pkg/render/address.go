package render

import "strings"

// CityStatePostal extracts the locality portion of a comma separated street
// address. With three or more parts the first (street) and last (country) are
// dropped; with two parts only the street is dropped; a single part is
// returned whole. Empty input yields "N/A".
func CityStatePostal(address string) string {
	if address == "" {
		return missingValue
	}
	parts := strings.Split(address, ",")
	switch {
	case len(parts) >= 3:
		return strings.TrimSpace(strings.Join(parts[1:len(parts)-1], ","))
	case len(parts) == 2:
		return strings.TrimSpace(parts[1])
	default:
		return address
	}
}
