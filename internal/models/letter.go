package models

import "time"

// LetterStatus tracks the lifecycle of a confirmation letter job.
type LetterStatus string

const (
	LetterQueued     LetterStatus = "QUEUED"
	LetterProcessing LetterStatus = "PROCESSING"
	LetterFinished   LetterStatus = "FINISHED"
	LetterFailed     LetterStatus = "FAILED"
)

// LetterJob is a request to render a registration confirmation letter.
type LetterJob struct {
	ID             string       `json:"id"`
	RegistrationID string       `json:"registrationId"`
	Status         LetterStatus `json:"status"`
	Attempts       int          `json:"attempts"`
	Error          string       `json:"error,omitempty"`
	FilePath       string       `json:"-"`
	DownloadURL    string       `json:"downloadUrl,omitempty"`
	ExpiresAt      *time.Time   `json:"expiresAt,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}
