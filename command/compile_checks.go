package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Commander[SubmitEnvelopeMessage] = (*SubmitEnvelopeCommand)(nil)
	_ gocmd.Commander[ReplaceOriginsMessage] = (*ReplaceOriginsCommand)(nil)
)
