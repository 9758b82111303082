package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// sendDelay imitates the upstream mail relay round-trip; there is no
// real delivery integration.
const sendDelay = 1200 * time.Millisecond

type ContactHandler struct{}

func RegisterContact(mux *http.ServeMux) {
	h := ContactHandler{}
	mux.HandleFunc("POST /v1/contact", h.PostContact)
}

func (h ContactHandler) PostContact(w http.ResponseWriter, r *http.Request) {
	const op = "ContactHandler.PostContact"
	log := slog.With("op", op)

	var v ContactForm
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	if v.Name == "" || v.Message == "" {
		http.Error(w, "name and message are required", http.StatusBadRequest)
		return
	}

	select {
	case <-r.Context().Done():
		return
	case <-time.After(sendDelay):
	}

	log.Info("contact message accepted", "name", v.Name)

	w.WriteHeader(http.StatusAccepted)
	if _, err := w.Write([]byte("Accepted")); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}
