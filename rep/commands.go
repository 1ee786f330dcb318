// This file contains the types describing the parsed body: chat and,
// optionally, the classified command stream.

package rep

import "github.com/aoe2rec/aoe2rec/rep/repcmd"

// Commands contains everything extracted from the body opcode stream
// besides the per-player fields folded directly onto Header.Players.
type Commands struct {
	// Chat is the ordered sequence of surviving chat messages (lobby chat
	// has no TimeMs).
	Chat []Chat

	// Cmds is the classified command stream; only populated when the
	// decoder is configured with Config.Commands.
	Cmds []repcmd.Cmd `json:"-"`

	// Debug holds optional debug info.
	Debug *CommandsDebug `json:"-"`
}

// Chat describes a single surviving chat message.
type Chat struct {
	// TimeMs is the game duration at which the message was sent;
	// nil for lobby chat, which has no timestamp.
	TimeMs *uint32

	// PlayerSlot is the sender's slot; nil when the message could not be
	// attributed (the chat operation itself carries no sender field).
	PlayerSlot *int

	// ContentRaw is the undecoded message bytes.
	ContentRaw []byte `json:"-"`

	// Content is the decoded message text.
	Content string
}

// CommandsDebug holds debug info for the body section.
type CommandsDebug struct {
	// Data is the raw body buffer (all chapters concatenated).
	Data []byte `json:"-"`
}
