// Package testsupport holds shared fixtures and golden-file helpers for the
// policygen test suites.
package testsupport

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-policygen/pkg/answers"
)

// FixtureRecord returns a fully answered, derived business profile.
func FixtureRecord() answers.Record {
	return answers.Derive(answers.Record{
		answers.FieldLegalBusinessName:                 "Acme Goods LLC",
		answers.FieldStoreWebsiteName:                  "Acme",
		answers.FieldPrimaryWebsiteDomain:              "acme.com",
		answers.FieldMainContactEmail:                  "help@acme.com",
		answers.FieldPhoneNumber:                       "555-123-4567",
		answers.FieldFullStreetAddress:                 "1 Main St, Springfield, IL 62704, USA",
		answers.FieldCountryOfIncorporation:            "United States",
		answers.FieldGoverningLawState:                 "Illinois",
		answers.FieldShipToCountries:                   "United States, Canada",
		answers.FieldOrderProcessingTime:               "1-2 business days",
		answers.FieldDailyOrderCutoff:                  "5:00 PM EST",
		answers.FieldDomesticCarriers:                  "USPS, UPS, FedEx",
		answers.FieldInternationalCarriers:             "DHL, FedEx International",
		answers.FieldDomesticDeliveryEstimateStandard:  "3-5 business days",
		answers.FieldDomesticDeliveryEstimateExpedited: "1-2 business days",
		answers.FieldInternationalDeliveryEstimate:     "7-14 business days",
		answers.FieldDomesticFreeShippingThreshold:     "50",
		answers.FieldDomesticFlatRateShippingFee:       "5",
		answers.FieldInternationalFlatRateShippingFee:  "$15 flat rate.",
		answers.FieldISOCurrencyCode:                   "USD",
		answers.FieldAcceptedPayments:                  "Apple Pay, Google Pay",
		answers.FieldCustomerServiceHours:              "Monday to Friday, 9 AM to 5 PM EST",
		answers.FieldLastUpdatedDate:                   "12 November 2023",
		answers.FieldAffiliateProgramName:              "Amazon Associates",
	})
}

// FixedClock returns a clock pinned to t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput runs render against a buffer and returns both the
// returned string and what was written, so callers can assert they match.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
