package answers

import "strings"

// URL suffixes appended to the site base when deriving page links.
const (
	returnPolicyPath = "/return-and-refund-policy"
	termsPath        = "/terms-of-service"
	contactPath      = "/contact"
)

// Derive fills dependent fields from their sources and returns a new record.
// Each derived field is computed only while it is empty.
func Derive(in Record) Record {
	out := in.Clone()

	if countries := out.Get(FieldShipToCountries); countries != "" && !out.Has(FieldSellingRegions) {
		out[FieldSellingRegions] = countries
	}

	domain := out.Get(FieldPrimaryWebsiteDomain)
	if domain == "" {
		return out
	}
	base := BaseURL(domain)
	fillEmpty(out, FieldFAQPageURL, base)
	fillEmpty(out, FieldReturnPolicyURL, base+returnPolicyPath)
	fillEmpty(out, FieldTermsOfServicePageURL, base+termsPath)
	fillEmpty(out, FieldContactPageURL, base+contactPath)
	return out
}

// BaseURL prefixes https:// unless domain already carries an http(s) scheme.
func BaseURL(domain string) string {
	if strings.HasPrefix(domain, "http") {
		return domain
	}
	return "https://" + domain
}

func fillEmpty(r Record, field, value string) {
	if r.Get(field) == "" {
		r[field] = value
	}
}
