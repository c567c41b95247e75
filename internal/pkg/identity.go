package pkg

import "github.com/google/uuid"

// GenerateClientID returns a unique id for one client run, attached to the
// logger so instances can be told apart in shared logs.
func GenerateClientID() string {
	return uuid.NewString()
}
