package leads

import (
	"net/mail"
	"strings"
	"time"
)

// Lead is a prospect's request to approve the proposal with a chosen plan.
type Lead struct {
	ID         string    `json:"id"`
	ProposalID string    `json:"proposal_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Plan       string    `json:"plan"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateLeadRequest represents the request body for creating a lead
type CreateLeadRequest struct {
	ProposalID string `json:"-"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Plan       string `json:"plan"`
	Message    string `json:"message"`
}

// Normalize trims every field and lowercases the email.
func (r *CreateLeadRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	r.Plan = strings.TrimSpace(r.Plan)
	r.Message = strings.TrimSpace(r.Message)
}

// Validate validates the create lead request
func (r *CreateLeadRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrInvalidName
	}
	if r.Email == "" && r.Phone == "" {
		return ErrMissingContact
	}
	if r.Email != "" {
		if _, err := mail.ParseAddress(r.Email); err != nil {
			return ErrInvalidEmail
		}
	}
	if strings.TrimSpace(r.Plan) == "" {
		return ErrMissingPlan
	}
	return nil
}

// ListLeadsFilter narrows a lead listing.
type ListLeadsFilter struct {
	Plan   string
	Limit  int
	Offset int
}
