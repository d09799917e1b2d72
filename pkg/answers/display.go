package answers

// NotProvided is shown in review for unanswered fields.
const NotProvided = "Not provided"

// DisplayValue formats an answer for the review screen.
func DisplayValue(r Record, field string) string {
	value := r.Get(field)
	if value == "" {
		return NotProvided
	}
	if field == FieldSellingRegions && value == r.Get(FieldShipToCountries) {
		return value + " (same as shipping countries)"
	}
	return value
}
