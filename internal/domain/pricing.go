package domain

import "strings"

// Parcel size class. Unrecognized values fall back to medium.
type Size string

const (
	SizeS Size = "S"
	SizeM Size = "M"
	SizeL Size = "L"
)

// ParseSize normalizes user input to a known size class, defaulting to M.
func ParseSize(s string) Size {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "S":
		return SizeS
	case "L":
		return SizeL
	default:
		return SizeM
	}
}

// PricingConfig holds the administrator-editable pricing coefficients.
// It is re-read from its store on every quote, never cached, so admin
// changes take effect between requests.
type PricingConfig struct {
	BasePricePerKg    float64
	PerKmRate         float64
	OfficeMultiplier  float64
	AddressMultiplier float64
	SizeMultiplierS   float64
	SizeMultiplierM   float64
	SizeMultiplierL   float64
}

// SizeMultiplier selects the coefficient for a size class.
func (c PricingConfig) SizeMultiplier(s Size) float64 {
	switch s {
	case SizeS:
		return c.SizeMultiplierS
	case SizeL:
		return c.SizeMultiplierL
	default:
		return c.SizeMultiplierM
	}
}
