// Package domain contains core concepts of the collaborative study room.
// This file defines participant identity. Participants carry no credentials:
// a self-chosen display name is the whole identity.
package domain

// ConnectionID identifies one live participant channel inside the hub.
type ConnectionID string

// Participant is one human member of the room.
type Participant struct {
	ID   ConnectionID
	Name string
}
