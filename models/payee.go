package models

import (
	"fmt"

	"github.com/google/uuid"
)

// PayeeKind discriminates the four entity kinds that can be owed money.
type PayeeKind string

const (
	PayeeStreamer       PayeeKind = "streamer"
	PayeeVoiceActor     PayeeKind = "voiceActor"
	PayeeTeamMember     PayeeKind = "teamMember"
	PayeeContentCreator PayeeKind = "contentCreator"
)

// PayeeRef is a non-owning reference to exactly one payee entity.
type PayeeRef struct {
	Kind PayeeKind `json:"kind"`
	ID   uuid.UUID `json:"id"`
}

func (r PayeeRef) Validate() error {
	switch r.Kind {
	case PayeeStreamer, PayeeVoiceActor, PayeeTeamMember, PayeeContentCreator:
	default:
		return fmt.Errorf("unknown payee kind: %q", r.Kind)
	}
	if r.ID == uuid.Nil {
		return fmt.Errorf("payee id is required")
	}
	return nil
}

func (r PayeeRef) String() string {
	return string(r.Kind) + ":" + r.ID.String()
}

// AuthContext is the resolved identity handed to every core operation.
// Credential verification happens at the HTTP boundary, never here.
type AuthContext struct {
	ActorID uuid.UUID
	Role    string
}

func (a AuthContext) IsAdmin() bool {
	return a.Role == RoleAdmin
}
