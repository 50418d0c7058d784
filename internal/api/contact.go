package api

import (
	"encoding/json"
	"net/http"

	"github.com/rudimedia/site-api/internal/contact"
	"github.com/rudimedia/site-api/internal/metrics"
)

// ContactRequest is the request body for POST /api/contact
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Phone   string `json:"phone"`
}

// ContactResponse confirms a stored submission.
type ContactResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// handleSubmitContact stores a contact form submission and triggers the
// notification emails.
// POST /api/contact
func (s *Server) handleSubmitContact(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid JSON")
		return
	}

	in := contact.SubmitInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
		Phone:   req.Phone,
	}

	if err := in.Validate(); err != nil {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}

	entry, err := s.contacts.Submit(r.Context(), in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	metrics.RecordContactSubmission()

	writeJSON(w, http.StatusOK, ContactResponse{
		ID:      entry.ID,
		Message: "Vielen Dank für Ihre Nachricht! Wir melden uns schnellstmöglich bei Ihnen.",
	})
}
