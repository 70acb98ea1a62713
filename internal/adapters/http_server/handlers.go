package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"tablescout/internal/app"
	"tablescout/internal/domain"
)

type Handlers struct{ S *app.SearchService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/reservations", h.searchReservations)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// GET /v1/reservations?date=2024-06-01&party_size=2&time=06:00+PM
// Optional repeated filters: price=$$&cuisine=Sushi&neighborhood=SoHo —
// applied to the aggregated set after acquisition, never during it.
func (h *Handlers) searchReservations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	day := q.Get("date")
	if day == "" {
		writeProblem(w, http.StatusBadRequest, "Missing date", "date is required (YYYY-MM-DD)")
		return
	}
	if _, err := time.Parse("2006-01-02", day); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid date", "date must be YYYY-MM-DD")
		return
	}

	partySize := 2
	if ps := q.Get("party_size"); ps != "" {
		n, err := strconv.Atoi(ps)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid party size", "party_size must be an integer")
			return
		}
		partySize = n
	}

	req := domain.SearchRequest{Day: day, PartySize: partySize, TargetTime: q.Get("time")}
	agg, err := h.S.Search(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidTimeFormat):
			writeProblem(w, http.StatusBadRequest, "Invalid time", "time must be HH:MM AM/PM, e.g. 06:00 PM")
		case errors.Is(err, domain.ErrInvalidPartySize):
			writeProblem(w, http.StatusBadRequest, "Invalid party size", "party_size must be between 1 and 10")
		default:
			log.Error().Err(err).Msg("search failed")
			writeProblem(w, http.StatusInternalServerError, "Search failed", "")
		}
		return
	}

	filters := app.Filters{
		Prices:        q["price"],
		Cuisines:      q["cuisine"],
		Neighborhoods: q["neighborhood"],
	}
	agg.Records = filters.Apply(agg.Records)
	agg.TotalCount = len(agg.Records)
	venues := make(map[string]struct{}, len(agg.Records))
	for _, rec := range agg.Records {
		venues[rec.VenueName] = struct{}{}
	}
	agg.UniqueVenues = len(venues)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(agg); err != nil {
		log.Error().Err(err).Msg("failed to write search response")
	}
}
