package models

import "time"

// FormSnapshot is the externally visible state of an open form session.
type FormSnapshot struct {
	ID        string            `json:"id"`
	State     string            `json:"state"`
	Values    map[string]string `json:"values"`
	Errors    map[string]string `json:"errors"`
	ExpiresAt time.Time         `json:"expiresAt"`
	Record    *Registration     `json:"record,omitempty"`
}
