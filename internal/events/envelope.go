package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Envelope is the wire form of an event on the outbox.
type Envelope struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Subject   string    `json:"subject"`
	EmittedAt time.Time `json:"emitted_at"`
}

func NewEnvelope(e Event, now time.Time) Envelope {
	return Envelope{
		ID:        uuid.New(),
		Type:      e.EventType(),
		Subject:   e.Subject(),
		EmittedAt: now.UTC(),
	}
}

// DecodeEnvelope parses an outbox payload and checks it names a known event.
func DecodeEnvelope(payload []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	if env.ID == uuid.Nil {
		return Envelope{}, fmt.Errorf("decode envelope: missing id")
	}
	if _, err := env.Event(); err != nil {
		return Envelope{}, err
	}
	return env, nil
}

// Event rebuilds the typed event.
func (e Envelope) Event() (Event, error) {
	switch e.Type {
	case TypePaymentReleased:
		return PaymentReleased{JobID: e.Subject}, nil
	case TypeNFTSold:
		return NFTSold{NFTID: e.Subject}, nil
	default:
		return nil, fmt.Errorf("unknown event type %q", e.Type)
	}
}

func (e Envelope) Marshal() ([]byte, error) {
	return json.Marshal(e)
}
