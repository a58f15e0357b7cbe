package domain

import "strings"

// ConsultationOption entry of the static service catalog
type ConsultationOption struct {
	ID                string
	Title             string
	Description       string
	PriceKey          string
	DefaultPrice      string
	PaymentProductRef string
}

// Prices admin-editable prices keyed by ConsultationOption.PriceKey, decimal strings
type Prices map[string]string

var consultationCatalog = []ConsultationOption{
	{
		ID:                "degree_recognition",
		Title:             "Degree Recognition (ZAB)",
		Description:       "Support for the recognition of your school/university degrees via the Central Office for Foreign Education (ZAB).",
		PriceKey:          "degreeRecognitionPrice",
		DefaultPrice:      "50",
		PaymentProductRef: "price_1S1cK2P0OXBFDAIs8jQW1Nex",
	},
	{
		ID:                "integration_course",
		Title:             "Integration Course Application",
		Description:       "We help you apply for a government-funded integration course to learn German and integrate successfully.",
		PriceKey:          "integrationCoursePrice",
		DefaultPrice:      "30",
		PaymentProductRef: "price_1S1cLmP0OXBFDAIsg2brI8dW",
	},
	{
		ID:                "study_apprenticeship",
		Title:             "CV & Application Letter Service",
		Description:       "Professional CV, motivation Letter and Cover letter tailored to fit your professional job market.",
		PriceKey:          "studyApprenticeshipPrice",
		DefaultPrice:      "50",
		PaymentProductRef: "price_1S1cMFP0OXBFDAIsYN1KomzO",
	},
	{
		ID:                "visa_extension",
		Title:             "Visa & Residence Permit",
		Description:       "General consultation on all questions regarding visa applications, extensions, and residence permits.",
		PriceKey:          "visaExtensionPrice",
		DefaultPrice:      "40",
		PaymentProductRef: "price_1S1cMpP0OXBFDAIs9OT51CEX",
	},
}

// Consultations returns a copy of the catalog
func Consultations() []ConsultationOption {
	return append([]ConsultationOption{}, consultationCatalog...)
}

// FindConsultation looks a catalog entry up by id
func FindConsultation(id string) (ConsultationOption, bool) {
	for _, c := range consultationCatalog {
		if c.ID == id {
			return c, true
		}
	}
	return ConsultationOption{}, false
}

// DefaultPrices prices from the catalog defaults
func DefaultPrices() Prices {
	prices := make(Prices, len(consultationCatalog))
	for _, c := range consultationCatalog {
		prices[c.PriceKey] = c.DefaultPrice
	}
	return prices
}

// IsPlaceholderPaymentRef reports a missing or not-yet-configured payment product reference
func IsPlaceholderPaymentRef(ref string) bool {
	ref = strings.TrimSpace(ref)
	return ref == "" || strings.Contains(ref, "REPLACE_ME") || strings.Contains(ref, "FAKE")
}
