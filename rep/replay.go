// This file contains the Replay type and its components which model a
// complete Age of Kings / Conquerors recorded game.

package rep

// Replay models a decoded recorded game.
type Replay struct {
	// Identity holds the file-level fields the core never discovers on
	// its own: the loader-supplied filename/size/mtime, and the MD5 of
	// the original file bytes (which the core computes itself, since it
	// already owns the buffer).
	Identity *Identity

	// Header of the replay: match settings, scenario, player roster.
	Header *Header

	// Commands extracted from the body opcode stream (chat, and
	// optionally the classified command stream).
	Commands *Commands

	// MapData describes the map tile region.
	MapData *MapData

	// Computed contains data derived from other parts of the replay
	// (duration, GUID, winner inference).
	Computed *Computed
}

// Identity holds the file-identity fields of a Record: some supplied
// externally by the Loader collaborator (Filename, FileSize,
// LastModifiedMs), one computed by the core itself (MD5, since the core
// already owns the raw file bytes and hashing them requires no
// filesystem access).
type Identity struct {
	// Filename is the loader-supplied name of the source file. Empty if
	// the caller parsed an in-memory buffer with no associated path.
	Filename string

	// FileSize is the loader-supplied size of the source file in bytes.
	FileSize int64

	// LastModifiedMs is the loader-supplied last-modified time of the
	// source file, in milliseconds since the Unix epoch.
	LastModifiedMs int64

	// MD5 is the lowercase hex MD5 digest of the original file bytes.
	MD5 string
}
