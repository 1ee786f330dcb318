// This file contains types that model the different COMMAND sub-types
// observable in the body opcode stream.

package repcmd

import (
	"fmt"

	"github.com/aoe2rec/aoe2rec/rep/repcore"
)

// e creates a new Enum value.
func e(name string) repcore.Enum {
	return repcore.Enum{Name: name}
}

// Cmd is the command interface. It is only populated when the decoder is
// configured to retain a classified command stream (Config.Commands);
// the fields the parser actually extracts (resignation, research, early
// moves) are always reflected onto the owning Player/Record regardless.
type Cmd interface {
	// BaseCmd returns the base command.
	BaseCmd() *Base

	// Params returns human-readable concrete command-specific parameters.
	Params() string
}

// Base is the base of all classified commands.
type Base struct {
	// DurationMs is the accumulated game duration, in milliseconds, at the
	// time the command was issued.
	DurationMs uint32

	// Type of the command.
	Type *Type

	// Len is the command's payload length in bytes, as read from the
	// COMMAND operation's length field (excludes the length field itself
	// and the 4-byte trailer; includes the leading sub-code byte).
	Len uint32
}

// BaseCmd implements Cmd.BaseCmd().
func (b *Base) BaseCmd() *Base {
	return b
}

// Params implements Cmd.Params().
func (b *Base) Params() string {
	return ""
}

// ResignCmd describes a resignation. Type: TypeResign.
type ResignCmd struct {
	*Base

	// Slot of the resigning player.
	Slot int8

	// Disconnected tells whether the resignation was a disconnect rather
	// than a voluntary resign.
	Disconnected bool
}

// Params implements Cmd.Params().
func (rc *ResignCmd) Params() string {
	return fmt.Sprintf("Slot: %d, Disconnected: %t", rc.Slot, rc.Disconnected)
}

// ResearchCmd describes a technology research start. Type: TypeResearch.
type ResearchCmd struct {
	*Base

	// Slot is the player index field read from the command; the body loop
	// resolves it against each player's Index rather than using it as an
	// array position.
	Slot int

	// TechID is the raw technology id.
	TechID int16
}

// Params implements Cmd.Params().
func (rc *ResearchCmd) Params() string {
	return fmt.Sprintf("Slot: %d, TechID: %d", rc.Slot, rc.TechID)
}

// MoveCmd describes one of the first 5 move commands of the game, retained
// verbatim as a 19-byte fingerprint used by the GUID digester.
type MoveCmd struct {
	*Base

	// Fingerprint is the raw 19-byte move payload.
	Fingerprint [19]byte
}

// Params implements Cmd.Params().
func (mc *MoveCmd) Params() string {
	return fmt.Sprintf("Fingerprint: % x", mc.Fingerprint)
}

// GenericCmd represents a recognized-but-unextracted command sub-type
// (Train, TrainSingle, Build, Tribute, Save, Chapter, Postgame) or an
// unrecognized one. Its payload bytes are not decoded since no component
// of the record needs them, but the command is still classified and
// observable in a debug command stream.
type GenericCmd struct {
	*Base
}

// Params implements Cmd.Params().
func (gc *GenericCmd) Params() string {
	return fmt.Sprintf("Len: %d", gc.Len)
}
