package domain

import "github.com/google/uuid"

// generateID creates a new unique, time-ordered identifier.
func generateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
