// Package httpx writes the JSON envelopes returned by the API.
package httpx

import (
	"encoding/json"
	"net/http"
)

// Result is the envelope of every API answer: {"ok": bool, ...}.
type Result struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	Saved *int   `json:"saved,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	var body []byte
	var err error
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			// avoid writing partial JSON
			http.Error(w, `{"ok":false,"error":"encode_error"}`, http.StatusInternalServerError)
			return
		}
	} else {
		body = []byte("null")
	}
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// Fail writes {"ok": false, "error": code}.
func Fail(w http.ResponseWriter, status int, code string) {
	JSON(w, status, Result{OK: false, Error: code})
}

// Saved writes {"ok": true, "saved": n}.
func Saved(w http.ResponseWriter, n int) {
	JSON(w, http.StatusOK, Result{OK: true, Saved: &n})
}
