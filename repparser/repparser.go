/*

Package repparser decodes Age of Kings / Conquerors recorded-game files
(the ".mgx"/".mgl"/".aoe2record" family through UserPatch 1.5; HD Edition
and Definitive Edition saves are explicitly rejected, see
errs.UnsupportedVersionError).

A recorded game is a two-part container: a raw-deflate-compressed header
describing the lobby, map and scenario, followed by an uncompressed body
that is an opcode stream replaying the match. Parser mirrors that shape
directly -- New performs the container decode, Parse walks the resulting
header and body buffers into a Replay. ParseFile/ParseFileConfig and
Parse/ParseConfig are thin convenience wrappers for callers who don't need
the two-step form (or the sub-buffer dumps it enables).

The package is safe for concurrent use: a Parser and the Replay it
produces are never shared state between calls.

*/
package repparser

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/aoe2rec/aoe2rec/log"
	"github.com/aoe2rec/aoe2rec/rep"
	"github.com/aoe2rec/aoe2rec/rep/repcore"
	"github.com/aoe2rec/aoe2rec/repparser/repdecoder"
)

// Version is a Semver2 compatible version of the parser.
const Version = "v0.1.0"

var (
	// ErrNotReplayFile indicates the given buffer is too small to even
	// contain a container header.
	ErrNotReplayFile = errors.New("not a recorded game file")

	// ErrParsing indicates an unexpected error occurred (most likely a
	// corrupt file tripping an invariant the decoder doesn't otherwise
	// guard against).
	ErrParsing = errors.New("parsing")
)

// Config holds parser configuration.
type Config struct {
	// Commands tells if the classified command stream is to be retained
	// on Replay.Commands.Cmds.
	Commands bool

	// MapData tells if the map tile region is to be resolved into
	// Replay.MapData.
	MapData bool

	// Debug tells if raw sub-buffers (header, body, tiles) are to be
	// retained on the various Debug fields. Header offsets are recorded
	// on Header.Debug either way.
	Debug bool

	// Strict tells the body opcode loop to fail on an out-of-range sync
	// delta instead of tolerating it by zeroing the delta.
	Strict bool

	// Logger, if non-nil, is installed as the package-level logger
	// (see the log package) for the duration of this call.
	Logger log.Logger

	// Identity, if non-nil, supplies the loader-side identity fields
	// (Filename/FileSize/LastModifiedMs) the core cannot discover on its
	// own. Its MD5 field is ignored and always overwritten with the hash
	// of the buffer actually parsed.
	Identity *rep.Identity

	_ struct{} // To prevent unkeyed literals
}

// Parser holds the result of a container decode and the raw file bytes it
// was produced from, matching repdecoder.Decoder's shape one level up.
type Parser struct {
	raw []byte
	dec *repdecoder.Decoder
}

// New performs the container decode step on a raw recorded-game buffer.
func New(buffer []byte) (*Parser, error) {
	if len(buffer) < 8 {
		return nil, ErrNotReplayFile
	}
	dec, err := repdecoder.New(buffer)
	if err != nil {
		return nil, err
	}
	return &Parser{raw: buffer, dec: dec}, nil
}

// DumpHeader writes the inflated header buffer to path.
func (p *Parser) DumpHeader(path string) error {
	return os.WriteFile(path, p.dec.Header, 0o644)
}

// DumpBody writes the raw body buffer to path.
func (p *Parser) DumpBody(path string) error {
	return os.WriteFile(path, p.dec.Body, 0o644)
}

// Parse populates a Replay by walking the decoded header and body
// buffers. It is safe to call multiple times on the same Parser; each
// call produces an independent Replay.
func (p *Parser) Parse(cfg Config) (r *rep.Replay, err error) {
	if cfg.Logger != nil {
		prev := log.GetLogger()
		log.SetLogger(cfg.Logger)
		defer log.SetLogger(prev)
	}

	defer func() {
		if rec := recover(); rec != nil {
			buf := make([]byte, 2000)
			n := runtime.Stack(buf, false)
			log.Error("panic while parsing recorded game", log.F("recover", fmt.Sprint(rec)), log.F("stack", string(buf[:n])))
			r, err = nil, ErrParsing
		}
	}()

	header, lobbyChat, err := parseHeader(p.dec.Header, p.dec.Body, cfg)
	if err != nil {
		return nil, err
	}

	rawHeaderEnd := uint32(len(p.raw) - len(p.dec.Body))
	commands, durationMs, err := parseBody(p.dec.Body, header, header.Dialect, rawHeaderEnd, p.dec.NextChapterPos, cfg)
	if err != nil {
		return nil, err
	}
	commands.Chat = append(lobbyChat, commands.Chat...)

	identity := buildIdentity(cfg.Identity, p.raw)

	replay := &rep.Replay{
		Identity: identity,
		Header:   header,
		Commands: commands,
		Computed: &rep.Computed{DurationMs: durationMs},
	}
	replay.Computed.GUID = computeGUID(header)

	if cfg.MapData {
		replay.MapData = buildMapData(header, p.dec.Header, cfg)
	}

	replay.InferWinner()

	return replay, nil
}

// buildMapData resolves the map tile region located during the header
// walk into a MapData value. The tile stride is re-derived from the
// header buffer rather than threaded through parseHeader's return value,
// since it only takes one byte peek at the already-known map-pos offset.
func buildMapData(h *rep.Header, headerBuf []byte, cfg Config) *rep.MapData {
	if h.Debug == nil {
		return nil
	}
	pos := h.Debug.MapPos
	stride := 2
	if pos >= 0 && pos < len(headerBuf) && headerBuf[pos] == 0xff {
		stride = 4
	}
	md := &rep.MapData{Size: repcore.Point{X: h.MapX, Y: h.MapY}, Pos: pos, TileStride: stride}
	if cfg.Debug {
		end := pos + int(h.MapX)*int(h.MapY)*stride
		if end > len(headerBuf) {
			end = len(headerBuf)
		}
		if pos >= 0 && pos < end {
			md.Debug = &rep.MapDataDebug{Tiles: headerBuf[pos:end]}
		}
	}
	return md
}

// buildIdentity merges the loader-supplied identity fields (filename,
// size, mtime) with the core-computed MD5 of the exact bytes parsed.
// base's own MD5 field, if any, is always discarded.
func buildIdentity(base *rep.Identity, raw []byte) *rep.Identity {
	identity := rep.Identity{}
	if base != nil {
		identity = *base
	}
	sum := md5.Sum(raw)
	identity.MD5 = hex.EncodeToString(sum[:])
	return &identity
}

// ParseFile reads path and parses it with the default configuration
// (commands and map data both retained).
func ParseFile(path string) (*rep.Replay, error) {
	return ParseFileConfig(path, Config{Commands: true, MapData: true})
}

// ParseFileConfig reads path and parses it per cfg, supplying the
// filename/filesize/last-modified identity fields cfg.Identity would
// otherwise have to carry. This is the only place the package touches the
// filesystem; the parsing core itself only ever sees in-memory buffers.
func ParseFileConfig(path string, cfg Config) (*rep.Replay, error) {
	buffer, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if cfg.Identity == nil {
		ident := rep.Identity{Filename: path, FileSize: int64(len(buffer))}
		if fi, statErr := os.Stat(path); statErr == nil {
			ident.FileSize = fi.Size()
			ident.LastModifiedMs = fi.ModTime().UnixMilli()
		}
		cfg.Identity = &ident
	}
	return ParseConfig(buffer, cfg)
}

// Parse parses a recorded-game buffer with the default configuration
// (commands and map data both retained).
func Parse(buffer []byte) (*rep.Replay, error) {
	return ParseConfig(buffer, Config{Commands: true, MapData: true})
}

// ParseConfig parses a recorded-game buffer per cfg.
func ParseConfig(buffer []byte, cfg Config) (*rep.Replay, error) {
	p, err := New(buffer)
	if err != nil {
		return nil, err
	}
	return p.Parse(cfg)
}
