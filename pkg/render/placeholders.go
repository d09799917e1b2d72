package render

import (
	"time"

	"github.com/goliatone/go-policygen/pkg/answers"
)

// DateLayout formats the fallback effective date, e.g. "12 November 2023".
const DateLayout = "2 January 2006"

const missingValue = "N/A"

// Replacement pairs a literal template token with the text substituted for it.
// An empty Value renders as "N/A".
type Replacement struct {
	Token string
	Value string
}

// Placeholders builds the ordered token table for rec. Tokens are applied in
// the returned order, so a token that is a prefix of a later one shadows it.
func Placeholders(rec answers.Record, now time.Time) []Replacement {
	get := rec.Get
	or := rec.Or
	domain := get(answers.FieldPrimaryWebsiteDomain)
	email := get(answers.FieldMainContactEmail)
	phone := get(answers.FieldPhoneNumber)
	address := get(answers.FieldFullStreetAddress)
	country := get(answers.FieldCountryOfIncorporation)
	hours := get(answers.FieldCustomerServiceHours)
	today := now.Format(DateLayout)

	return []Replacement{
		{"[Insert Effective Date]", get(answers.FieldLastUpdatedDate)},
		{"[Your Company Name]", get(answers.FieldLegalBusinessName)},
		{"[Your Website URL]", domain},
		{"[List of Countries/Regions]", get(answers.FieldShipToCountries)},
		{"[Your Country]", country},
		{"[e.g., Free shipping on all orders over $50.]", freeShippingSentence(get(answers.FieldDomesticFreeShippingThreshold))},
		{"[e.g., $5 flat rate for orders under $50.]", flatRateSentence(get(answers.FieldDomesticFlatRateShippingFee))},
		{"[e.g., $15 flat rate.]", get(answers.FieldInternationalFlatRateShippingFee)},
		{"[Number of Business Days, e.g., 1-2 business days]", get(answers.FieldOrderProcessingTime)},
		{"[Cut-Off Time, e.g., 5:00 PM EST]", get(answers.FieldDailyOrderCutoff)},
		{"[e.g., 3-5 business days]", get(answers.FieldDomesticDeliveryEstimateStandard)},
		{"[e.g., 1-2 business days]", get(answers.FieldDomesticDeliveryEstimateExpedited)},
		{"[e.g., 7-14 business days]", get(answers.FieldInternationalDeliveryEstimate)},
		{"[e.g., USPS, UPS, FedEx]", get(answers.FieldDomesticCarriers)},
		{"[e.g., DHL, FedEx International]", get(answers.FieldInternationalCarriers)},
		{"[Your Website URL]/track-order", domain + "/track-order"},
		{"[Customer Service Email]", email},
		{"[Customer Service Phone Number]", phone},
		{"[Number of Days, e.g., 7 days]", "7 days"},
		{"[Number of Days, e.g., 30 days]", "30 days"},
		{"[Number of Days, e.g., 14 days]", "14 days"},
		{"[Street Address]", address},
		{"[City, State/Province, ZIP/Postal Code]", CityStatePostal(address)},
		{"[Days and Hours of Operation, e.g., Monday to Friday, 9 AM to 5 PM EST]", orDefault(hours, "Monday to Friday, 9 AM to 5 PM EST")},
		{"[Country]", orDefault(country, "United States")},

		// billing
		{"[Currency]", or(answers.FieldISOCurrencyCode, "USD")},
		{"[Other Payment Methods, e.g., Apple Pay, Google Pay]", or(answers.FieldAcceptedPayments, "Apple Pay, Google Pay")},
		{"[Specify Due Date, e.g., upon receipt, within 15 days of invoice date]", "upon receipt"},
		{"[Specify Billing Cycle, e.g., first day of each month]", "first day of each month"},
		{"[Specify Frequency, e.g., upon order completion, monthly, annually]", "upon order completion"},
		{"[Email/Online Portal]", "email"},
		{"[Specify Rate, e.g., 1.5% per month or the maximum allowed by law]", "1.5% per month or the maximum allowed by law"},
		{"[Number of Days, e.g., 10 days]", "10 days"},
		{"[Number of Days, e.g., 15 days]", "15 days"},
		{"[Billing Contact Email/Address]", orDefault(email, "billing@company.com")},
		{"[Insert Link to Refund Policy]", or(answers.FieldReturnPolicyURL, "#")},
		{"[Specify Payment Gateway/Processor]", "secure payment processor"},
		{"[Website URL]", orDefault(domain, "yourdomain.com")},
		{"[Time Period, e.g., six months]", "six months"},
		{"[Your Country/State]", orDefault(country, "United States")},
		{"[Your Jurisdiction]", orDefault(get(answers.FieldGoverningLawState), orDefault(country, "United States"))},
		{"[Your Company Address]", orDefault(address, "Company Address")},
		{"[Billing Contact Email]", orDefault(email, "billing@company.com")},
		{"[Billing Contact Phone Number]", orDefault(phone, "Phone Number")},
		{"[Insert Link to Terms of Service]", or(answers.FieldTermsOfServicePageURL, "#")},
		{"[Insert Link to Privacy Policy]", or(answers.FieldContactPageURL, "#")},
		{"[Insert Link to Cancellation Policy]", or(answers.FieldReturnPolicyURL, "#")},

		// privacy and cookies
		{"[Your Contact Email]", orDefault(email, "contact@company.com")},
		{"[Your Contact Phone Number]", orDefault(phone, "Phone Number")},
		{"[Contact Us Page URL]", or(answers.FieldContactPageURL, "#")},
		{"[Affiliate Program Name]", or(answers.FieldAffiliateProgramName, "affiliate advertising program")},
		{"[Affiliate Website(s)]", "affiliate websites"},

		// payment options
		{"[WEBSITE NAME]", or(answers.FieldStoreWebsiteName, "Our Website")},
		{"[SELLING COUNTRIES]", or(answers.FieldSellingRegions, "the countries we serve")},
		{"[CUSTOMER SERVICE EMAIL]", orDefault(email, "customer service email")},
		{"[CUSTOMER SERVICE PHONE]", orDefault(phone, "customer service phone")},
		{"[COMPANY ADDRESS]", orDefault(address, "company address")},
		{"[Hours of Operation, e.g., Monday to Friday, 9 AM to 5 PM CET]", orDefault(hours, "Monday to Friday, 9 AM to 5 PM CET")},
		{"[Time Frame, e.g., 1 hour]", "1 hour"},
		{"[Currency, e.g., Euros (€)]", CurrencyLabel(get(answers.FieldISOCurrencyCode))},
		{"[WEBSITE URL]", orDefault(domain, "website URL")},
		{"[TODAY'S DATE, e.g., 12 November 2023]", or(answers.FieldLastUpdatedDate, today)},
		{"[Today's Date, e.g., 12 November 2023]", or(answers.FieldLastUpdatedDate, today)},
		{"[Insert Age, e.g., 13 or 16]", "13"},

		// return and refund, terms
		{"[Return Window Days]", "30"},
		{"[Company Address]", orDefault(address, "Company Address")},
		{"[FAQ Page URL]", or(answers.FieldFAQPageURL, "#")},
		{"[Track Order URL]", siteURL(domain, "/track-order")},
		{"[Insert Link to Return and Refund Policy]", or(answers.FieldReturnPolicyURL, "#")},
		{"[Insert Link to Shipping Policy]", siteURL(domain, "/shipping-policy")},
	}
}

func freeShippingSentence(threshold string) string {
	if threshold == "" {
		return "No free shipping threshold."
	}
	return "Free shipping on all orders over $" + threshold + "."
}

func flatRateSentence(fee string) string {
	if fee == "" {
		return "Custom (calculated at checkout)."
	}
	return "$" + fee + " flat rate for orders under the free shipping threshold."
}

func siteURL(domain, path string) string {
	if domain == "" {
		return "#"
	}
	return answers.BaseURL(domain) + path
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
