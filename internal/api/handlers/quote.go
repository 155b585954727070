package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"shipment-distance-service/internal/api/dto"
	"shipment-distance-service/internal/domain"
	"shipment-distance-service/internal/services"
)

// QuoteHandler computes a shipment price from weight, distance, delivery
// mode and parcel size. The distance may be a resolver result or the
// caller's manual fallback value.
type QuoteHandler struct {
	Pricing *services.PricingEngine
}

func (h *QuoteHandler) Quote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.QuoteRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	price, err := h.Pricing.Quote(
		r.Context(),
		req.WeightKg,
		req.ToOffice,
		req.DistanceKm,
		domain.ParseSize(req.Size),
	)
	if err != nil {
		log.Printf("quote failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.QuoteResponse{Price: price})
}
