package id

import "github.com/google/uuid"

// GenerateID creates a random (version 4) UUID in its canonical string form.
func GenerateID() string {
	return uuid.NewString()
}
