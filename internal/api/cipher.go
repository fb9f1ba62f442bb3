package api

import (
	"net/http"

	"github.com/raphaelgruber/shiftcrack/internal/frequency"
)

type shiftRequest struct {
	Text  string `json:"text"`
	Shift *int   `json:"shift"`
}

type shiftResponse struct {
	Text  string `json:"text"`
	Shift int    `json:"shift"`
}

type frequencyRequest struct {
	Text string `json:"text"`
}

type frequencyResponse struct {
	Letters int               `json:"letters"`
	Entries []frequency.Entry `json:"entries"`
}

func (a *api) encrypt(w http.ResponseWriter, r *http.Request) {
	a.transform(w, r, a.svc.EncryptText)
}

func (a *api) decrypt(w http.ResponseWriter, r *http.Request) {
	a.transform(w, r, a.svc.DecryptText)
}

func (a *api) transform(w http.ResponseWriter, r *http.Request, fn func(string, int) (string, error)) {
	var req shiftRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Shift == nil {
		writeError(w, http.StatusBadRequest, "shift is required")
		return
	}

	out, err := fn(req.Text, *req.Shift)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, shiftResponse{Text: out, Shift: *req.Shift})
}

func (a *api) frequency(w http.ResponseWriter, r *http.Request) {
	var req frequencyRequest
	if !decode(w, r, &req) {
		return
	}

	entries := a.svc.Frequency(req.Text)
	letters := 0
	for _, e := range entries {
		letters += e.Count
	}
	a.write(w, r, http.StatusOK, frequencyResponse{Letters: letters, Entries: entries})
}
