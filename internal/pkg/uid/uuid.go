package uid

import "github.com/google/uuid"

// UUID produces RFC 4122 identifiers, preferring the time-ordered v7 form so
// token IDs and correlation IDs sort roughly by creation time.
type UUID struct{}

func NewUUID() *UUID {
	return &UUID{}
}

func (u *UUID) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString() // v4 fallback
	}
	return id.String()
}
