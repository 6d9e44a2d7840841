// Package identity is the read-only port through which the loan ledger
// sees KYC state. Document storage and review belong to the KYC
// collaborator; the core only needs verification status and date of birth.
package identity

import (
	"context"
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusVerified Status = "verified"
	StatusRejected Status = "rejected"
)

type Profile struct {
	UserID      uint64
	DateOfBirth time.Time
	Status      Status
}

// AgeAt returns the applicant's age in whole years at ref.
func (p *Profile) AgeAt(ref time.Time) int {
	age := ref.Year() - p.DateOfBirth.Year()
	if ref.YearDay() < p.DateOfBirth.YearDay() {
		age--
	}
	return age
}

type Verifier interface {
	// ProfileOf returns the KYC profile for userID, or a not-found error
	// when the user has never submitted documents.
	ProfileOf(ctx context.Context, userID uint64) (*Profile, error)
}
