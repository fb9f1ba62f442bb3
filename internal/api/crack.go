package api

import (
	"context"
	"net/http"

	"github.com/raphaelgruber/shiftcrack/internal/cipher"
	"github.com/raphaelgruber/shiftcrack/internal/recovery"
	"github.com/raphaelgruber/shiftcrack/internal/service"
)

type crackRequest struct {
	Ciphertext string `json:"ciphertext"`
	Reference  string `json:"reference,omitempty"`
	Top        int    `json:"top,omitempty"`
	Parallel   bool   `json:"parallel,omitempty"`
	// Shift picks a candidate when there is no reference.
	Shift *int `json:"shift,omitempty"`
}

type crackResponse struct {
	ID        string            `json:"id"`
	Mode      string            `json:"mode"`
	Shift     int               `json:"shift"`
	Canonical int               `json:"canonical"`
	Text      string            `json:"text"`
	Score     *float64          `json:"score,omitempty"`
	Ranked    []recovery.Result `json:"ranked,omitempty"`
}

type candidatesResponse struct {
	Mode       string               `json:"mode"`
	Candidates []recovery.Candidate `json:"candidates"`
}

// crack recovers the key with a reference, or without one returns every
// candidate. A follow-up request carrying shift completes the selection.
func (a *api) crack(w http.ResponseWriter, r *http.Request) {
	var req crackRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Top < 0 || req.Top > recovery.CandidateCount {
		writeError(w, http.StatusBadRequest, "top must be between 0 and 63")
		return
	}

	if req.Reference == "" && req.Shift == nil {
		writeJSON(w, http.StatusOK, candidatesResponse{
			Mode:       service.ModeInteractive,
			Candidates: recovery.Candidates(req.Ciphertext),
		})
		return
	}

	opts := service.CrackOptions{
		ReferenceText: req.Reference,
		Top:           req.Top,
		Parallel:      req.Parallel,
	}
	sel := service.SelectorFunc(func(context.Context, []recovery.Candidate) (*int, error) {
		return req.Shift, nil
	})

	result, err := a.svc.Crack(r.Context(), req.Ciphertext, opts, sel)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, newCrackResponse(result))
}

func newCrackResponse(result *service.CrackResult) crackResponse {
	resp := crackResponse{
		ID:        result.ID,
		Mode:      result.Mode,
		Shift:     result.Shift,
		Canonical: cipher.Canonical(result.Shift),
		Text:      result.Text,
		Ranked:    result.Ranked,
	}
	if result.Mode == service.ModeReference {
		score := result.Score
		resp.Score = &score
	}
	return resp
}
