package handlers

import (
	"net/http"

	"github.com/pribylovaa/edm-sync/internal/service"
	apierrors "github.com/pribylovaa/edm-sync/internal/transport/http/errors"
)

type sweepEntryView struct {
	CredentialID string `json:"credential_id"`
	Refreshed    bool   `json:"refreshed"`
	Detail       string `json:"detail,omitempty"`
}

type sweepResponse struct {
	Processed int              `json:"processed"`
	Refreshed int              `json:"refreshed"`
	Results   []sweepEntryView `json:"results"`
}

func sweepFromResults(results []service.SweepResult) sweepResponse {
	out := sweepResponse{Results: make([]sweepEntryView, 0, len(results))}
	for _, res := range results {
		if res.Refreshed {
			out.Refreshed++
		}

		out.Results = append(out.Results, sweepEntryView{
			CredentialID: res.CredentialID.String(),
			Refreshed:    res.Refreshed,
			Detail:       res.Detail,
		})
	}
	out.Processed = len(results)

	return out
}

// SweepAll — POST /sweep: принудительное обновление всех неотозванных записей.
func (h *Handlers) SweepAll(w http.ResponseWriter, r *http.Request) {
	results, err := h.Svc.SweepAll(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sweepFromResults(results))
}

// SweepDue — POST /sweep/due: обновление записей с наступившим сроком.
func (h *Handlers) SweepDue(w http.ResponseWriter, r *http.Request) {
	results, err := h.Svc.SweepDue(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sweepFromResults(results))
}
