package auth

import "time"

// SetClock overrides the generator clock in tests.
func (j *JWTTokenGenerator) SetClock(now func() time.Time) {
	j.now = now
}
