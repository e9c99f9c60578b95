package command

import (
	"strings"

	"github.com/aura-mf/bridge/core"
)

const (
	TypeSubmitEnvelope = "bridge.command.envelope.submit"
	TypeReplaceOrigins = "bridge.command.origins.replace"
)

// SubmitEnvelopeMessage carries one inbound message into the bridge. Envelope
// shape and origin trust are deliberately not validated here; the router owns
// the drop-versus-respond policy for those failures.
type SubmitEnvelopeMessage struct {
	Message core.InboundMessage
}

func (SubmitEnvelopeMessage) Type() string { return TypeSubmitEnvelope }

func (m SubmitEnvelopeMessage) Validate() error {
	if strings.TrimSpace(m.Message.Origin) == "" {
		return commandInvalidInputError("command: sender origin is required")
	}
	return nil
}

type ReplaceOriginsMessage struct {
	Origins []string
}

func (ReplaceOriginsMessage) Type() string { return TypeReplaceOrigins }

func (m ReplaceOriginsMessage) Validate() error {
	for _, entry := range m.Origins {
		if strings.TrimSpace(entry) == "" {
			return commandInvalidInputError("command: origin entries must not be blank")
		}
	}
	return nil
}
