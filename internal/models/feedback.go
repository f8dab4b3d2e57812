package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 3
)

type FeedbackRecord struct {
	ID          uuid.UUID `json:"id" db:"id"`
	SubmittedAt time.Time `json:"submitted_at" db:"submitted_at"`
	Name        string    `json:"name" db:"name"`
	UserType    UserType  `json:"user_type" db:"user_type"`
	Rating      int       `json:"rating" db:"rating"`
	Comments    string    `json:"comments" db:"comments"`
}

type FeedbackRequest struct {
	Name     string   `json:"name"`
	UserType UserType `json:"user_type"`
	Rating   *int     `json:"rating,omitempty"`
	Comments string   `json:"comments"`
}

// Validate rejects blank name or comments and out of range ratings. A missing
// user type or rating takes the form defaults.
func (r FeedbackRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Comments) == "" {
		return NewValidationError("", "please fill in your name and comments before submitting")
	}
	if r.UserType != "" && !r.UserType.IsValid() {
		return NewValidationError("user_type", "must be one of Farmer, Agriculture Expert, Student, Other")
	}
	if r.Rating != nil && (*r.Rating < MinRating || *r.Rating > MaxRating) {
		return NewValidationError("rating", "must be between 1 and 5")
	}
	return nil
}

// ToRecord assumes Validate has passed.
func (r FeedbackRequest) ToRecord(at time.Time) FeedbackRecord {
	userType := r.UserType
	if userType == "" {
		userType = DefaultUserType
	}
	rating := DefaultRating
	if r.Rating != nil {
		rating = *r.Rating
	}
	return FeedbackRecord{
		ID:          uuid.New(),
		SubmittedAt: at,
		Name:        r.Name,
		UserType:    userType,
		Rating:      rating,
		Comments:    r.Comments,
	}
}

type FeedbackResponse struct {
	Message  string          `json:"message"`
	Feedback *FeedbackRecord `json:"feedback"`
}
