package dto

type QuoteRequest struct {
	WeightKg   float64 `json:"weight_kg"`
	ToOffice   bool    `json:"to_office"`
	DistanceKm float64 `json:"distance_km"`
	Size       string  `json:"size"`
}

type QuoteResponse struct {
	Price float64 `json:"price"`
}
