package identitymock

import (
	"context"
	"errors"
	"time"

	"microfin-backend/internal/domain/identity"
)

var _ identity.Verifier = (*Verifier)(nil)

var errUnimplemented = errors.New("identitymock: method not implemented")

type Verifier struct {
	ProfileOfFn func(ctx context.Context, userID uint64) (*identity.Profile, error)
}

func (m *Verifier) ProfileOf(ctx context.Context, userID uint64) (*identity.Profile, error) {
	if m.ProfileOfFn != nil {
		return m.ProfileOfFn(ctx, userID)
	}
	return nil, errUnimplemented
}

// Verified returns a verifier whose every user is KYC-verified with the
// given date of birth.
func Verified(dob time.Time) *Verifier {
	return &Verifier{ProfileOfFn: func(ctx context.Context, userID uint64) (*identity.Profile, error) {
		return &identity.Profile{UserID: userID, DateOfBirth: dob, Status: identity.StatusVerified}, nil
	}}
}
