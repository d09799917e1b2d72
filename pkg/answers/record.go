package answers

import (
	"sort"
	"strings"
)

// Field names referenced by derivation and rendering.
const (
	FieldLegalBusinessName                 = "legalBusinessName"
	FieldStoreWebsiteName                  = "storeWebsiteName"
	FieldPrimaryWebsiteDomain              = "primaryWebsiteDomain"
	FieldMainContactEmail                  = "mainContactEmail"
	FieldPhoneNumber                       = "phoneNumber"
	FieldFullStreetAddress                 = "fullStreetAddress"
	FieldCountryOfIncorporation            = "countryOfIncorporation"
	FieldGoverningLawState                 = "governingLawState"
	FieldShipToCountries                   = "shipToCountries"
	FieldSellingRegions                    = "sellingRegions"
	FieldOrderProcessingTime               = "orderProcessingTime"
	FieldDailyOrderCutoff                  = "dailyOrderCutoff"
	FieldDomesticCarriers                  = "domesticCarriers"
	FieldInternationalCarriers             = "internationalCarriers"
	FieldDomesticDeliveryEstimateStandard  = "domesticDeliveryEstimateStandard"
	FieldDomesticDeliveryEstimateExpedited = "domesticDeliveryEstimateExpedited"
	FieldInternationalDeliveryEstimate     = "internationalDeliveryEstimate"
	FieldDomesticFreeShippingThreshold     = "domesticFreeShippingThreshold"
	FieldDomesticFlatRateShippingFee       = "domesticFlatRateShippingFee"
	FieldInternationalFlatRateShippingFee  = "internationalFlatRateShippingFee"
	FieldISOCurrencyCode                   = "isoCurrencyCode"
	FieldAcceptedPayments                  = "acceptedPayments"
	FieldCustomerServiceHours              = "customerServiceHours"
	FieldFAQPageURL                        = "faqPageURL"
	FieldReturnPolicyURL                   = "returnPolicyURL"
	FieldTermsOfServicePageURL             = "termsOfServicePageURL"
	FieldContactPageURL                    = "contactPageURL"
	FieldLastUpdatedDate                   = "lastUpdatedDate"
	FieldAffiliateProgramName              = "affiliateProgramName"
)

// Record maps question fields to answers. A missing key means unanswered.
type Record map[string]string

// New returns an empty record.
func New() Record {
	return make(Record)
}

// FromMap copies values into a new record, dropping blank keys.
func FromMap(values map[string]string) Record {
	out := make(Record, len(values))
	for key, value := range values {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		out[key] = value
	}
	return out
}

// Get returns the answer for field, "" when unanswered.
func (r Record) Get(field string) string {
	if r == nil {
		return ""
	}
	return r[field]
}

// Lookup returns the answer and whether the field was ever written.
func (r Record) Lookup(field string) (string, bool) {
	if r == nil {
		return "", false
	}
	v, ok := r[field]
	return v, ok
}

// Has reports whether field holds a non-empty answer.
func (r Record) Has(field string) bool {
	return r.Get(field) != ""
}

// Or returns the answer for field or fallback when empty.
func (r Record) Or(field, fallback string) string {
	if v := r.Get(field); v != "" {
		return v
	}
	return fallback
}

// Clone returns an independent copy.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Trimmed returns a copy of r with surrounding whitespace removed from every
// answer. Front ends and the generator both store answers in this form.
func (r Record) Trimmed() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = strings.TrimSpace(v)
	}
	return out
}

// With returns a copy of r with field set to value.
func (r Record) With(field, value string) Record {
	out := r.Clone()
	out[field] = value
	return out
}

// Fields returns the written field names sorted alphabetically.
func (r Record) Fields() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
