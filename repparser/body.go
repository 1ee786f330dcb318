// This file implements the body opcode loop: a sequence of
// synchronous time-step and asynchronous command operations that, once
// interpreted in order, yield the game duration, resignations, age-advance
// timestamps, the early-move GUID fingerprint and surviving chat.

package repparser

import (
	"encoding/binary"

	"github.com/aoe2rec/aoe2rec/errs"
	"github.com/aoe2rec/aoe2rec/log"
	"github.com/aoe2rec/aoe2rec/rep"
	"github.com/aoe2rec/aoe2rec/rep/repcmd"
	"github.com/aoe2rec/aoe2rec/rep/repcore"
)

const (
	opCommand  = 1
	opSync     = 2
	opViewlock = 3
	opChat     = 4

	earlyMoveThreshold = 5

	feudalAgeTechID   = 101
	castleAgeTechID   = 102
	imperialAgeTechID = 103

	feudalDurationMs   = 130000
	castleDurationMs   = 160000
	imperialDurationMs = 190000
)

// splitBodyChapters splits the raw body buffer into chapter slices. Most
// files have no chapters (nextChapterPos == 0, or the container's pointer
// doesn't actually land past the header), in which case the whole body is
// a single chapter. Chapter boundaries are a rare, sparsely-documented
// feature, so this degrades defensively: any unparsable boundary simply
// stops slicing and hands the remainder to a final chapter.
func splitBodyChapters(body []byte, rawHeaderEnd, nextChapterPos uint32) [][]byte {
	if nextChapterPos == 0 || nextChapterPos <= rawHeaderEnd {
		return [][]byte{body}
	}

	var chapters [][]byte
	pos := uint32(0)
	next := nextChapterPos
	for next != 0 {
		if next < rawHeaderEnd {
			break
		}
		rel := next - rawHeaderEnd
		if rel > uint32(len(body)) {
			rel = uint32(len(body))
		}
		if rel <= pos {
			break
		}
		chapters = append(chapters, body[pos:rel])
		if rel+8 > uint32(len(body)) {
			pos = rel
			next = 0
			break
		}
		next = binary.LittleEndian.Uint32(body[rel+4 : rel+8])
		pos = rel + 8
	}
	chapters = append(chapters, body[pos:])
	return chapters
}

// bodyState carries the accumulators the opcode loop mutates across
// chapter slices: duration is a single running total, chat and early
// moves keep accumulating, and player times/resignations are written
// straight onto the Header's player array.
type bodyState struct {
	h          *rep.Header
	dialect    *repcore.Dialect
	cfg        Config
	durationMs uint32
	chat       []rep.Chat
	cmds       []repcmd.Cmd
}

// parseBody runs the body preamble then the opcode loop (across however
// many chapter slices the container produced) and returns the commands
// section plus the final duration.
func parseBody(body []byte, h *rep.Header, dialect *repcore.Dialect, rawHeaderEnd, nextChapterPos uint32, cfg Config) (*rep.Commands, uint32, error) {
	st := &bodyState{h: h, dialect: dialect, cfg: cfg}

	chapters := splitBodyChapters(body, rawHeaderEnd, nextChapterPos)
	for i, chapter := range chapters {
		bc := newCursor(chapter, 0)
		if i == 0 {
			if err := parseBodyPreamble(bc, h); err != nil {
				return nil, st.durationMs, err
			}
		}
		if err := runOpcodeLoop(bc, st); err != nil {
			return nil, st.durationMs, err
		}
	}

	cs := &rep.Commands{Chat: st.chat}
	if cfg.Commands {
		cs.Cmds = st.cmds
	}
	if cfg.Debug {
		cs.Debug = &rep.CommandsDebug{Data: body}
	}
	return cs, st.durationMs, nil
}

// parseBodyPreamble consumes the version-dependent prefix that precedes
// the opcode stream proper. It is peek-based rather than dialect-switched
// so it self-corrects regardless of classification (AoK has no
// log-version prefix, so its leading u32 already equals the
// sync-checksum interval and the first peek is a no-op).
func parseBodyPreamble(bc *cursor, h *rep.Header) error {
	v, ok := bc.peekU32()
	if !ok {
		return errs.NewTruncatedError("body preamble truncated before sync-checksum interval", bc.tell())
	}
	if v != 500 {
		bc.mov(4)
	}
	bc.mov(4) // sync-checksum interval value itself
	isMultiplayer, ok := bc.getBool(4)
	if !ok {
		return errs.NewTruncatedError("body preamble truncated reading is-multiplayer", bc.tell())
	}
	h.IsMultiplayer = isMultiplayer
	bc.mov(16)

	if bc.remain() >= 4 {
		if peek, _ := bc.peekU32(); peek == 0 {
			bc.mov(4)
		} else if bc.remain() >= 8 {
			if peek2, _ := bc.peekU32(); peek2 != 2 {
				bc.mov(8)
			}
		}
	}
	return nil
}

// runOpcodeLoop processes one chapter slice's worth of operations.
func runOpcodeLoop(bc *cursor, st *bodyState) error {
	for bc.remain() >= 8 {
		opType, ok := bc.getI32()
		if !ok {
			break
		}
		switch opType {
		case opCommand:
			if err := handleCommand(bc, st); err != nil {
				return err
			}
		case opSync:
			if err := handleSync(bc, st); err != nil {
				return err
			}
		case opViewlock:
			bc.mov(12)
		case opChat:
			handleChat(bc, st)
		default:
			if st.dialect.IsAoKFamily() || st.cfg.Strict {
				return errs.NewCorruptError("unrecognized body opcode", bc.tell()-4)
			}
			log.Warn("tolerating unrecognized body opcode", log.F("dialect", st.dialect.ID), log.F("opType", opType))
		}
	}
	return nil
}

func handleSync(bc *cursor, st *bodyState) error {
	delta, ok := bc.getI32()
	if !ok {
		return nil
	}
	if delta < 0 || delta > 1000 {
		if st.cfg.Strict {
			return errs.NewCorruptError("sync delta out of range", bc.tell()-4)
		}
		log.Warn("sync delta out of range, tolerating", log.F("delta", delta))
		delta = 0
	}
	syncTag, _ := bc.getI32()
	if syncTag != 3 {
		bc.mov(28)
	}
	bc.mov(12)
	st.durationMs += uint32(delta)
	return nil
}

func handleChat(bc *cursor, st *bodyState) {
	cmd, ok := bc.getI32()
	if !ok {
		return
	}
	if cmd == 500 {
		if st.dialect == repcore.DialectAoK || st.dialect == repcore.DialectAoKTrial {
			bc.mov(32)
		} else {
			bc.mov(20)
		}
		return
	}
	if cmd != -1 {
		// Anything but the -1 text marker is treated as a malformed chat
		// operation and skipped without consuming further bytes.
		return
	}

	msg, ok := bc.extractStrL32()
	if !ok {
		return
	}
	if isProductionNote(msg) || len(msg) == 0 {
		return
	}

	t := st.durationMs
	st.chat = append(st.chat, rep.Chat{
		TimeMs:     &t,
		ContentRaw: msg,
		Content:    decodeText(msg),
	})
}

// isProductionNote matches the in-game broadcast format "@#N--text--",
// which is never surfaced as user chat.
func isProductionNote(msg []byte) bool {
	if len(msg) < 7 {
		return false
	}
	if msg[0] != '@' || msg[1] != '#' {
		return false
	}
	if msg[3] != '-' || msg[4] != '-' {
		return false
	}
	return msg[len(msg)-1] == '-' && msg[len(msg)-2] == '-'
}

func handleCommand(bc *cursor, st *bodyState) error {
	length, ok := bc.getU32()
	if !ok {
		return errs.NewTruncatedError("command length truncated", bc.tell())
	}
	// The command occupies its length field's value plus a 4-byte trailer;
	// the terminus is the recovery checkpoint the cursor is reset to no
	// matter what the sub-code handler consumed.
	cmdLen := int(length) + 4
	terminus := len(bc.data())
	if bc.remain() >= cmdLen {
		terminus = bc.tell() + cmdLen
	}

	subCode, ok := bc.getU8()
	if !ok {
		bc.seek(terminus)
		return nil
	}
	typ := repcmd.TypeByID(subCode)
	base := &repcmd.Base{DurationMs: st.durationMs, Type: typ, Len: length}

	var cmd repcmd.Cmd = &repcmd.GenericCmd{Base: base}

	switch subCode {
	case repcmd.TypeIDResign:
		bc.mov(1)
		slot, ok := bc.getI8()
		rc := &repcmd.ResignCmd{Base: base, Slot: slot}
		if ok && slot >= 0 && int(slot) < len(st.h.Players) {
			if p := st.h.Players[slot]; p.IsValid() {
				d := st.durationMs
				p.ResignedAtMs = &d
				disc, _ := bc.getBool(4)
				p.Disconnected = disc
				rc.Disconnected = disc
			}
		}
		cmd = rc

	case repcmd.TypeIDResearch:
		bc.mov(7)
		idx, ok := bc.getI8()
		bc.mov(1)
		techID, _ := bc.getI16()
		rc := &repcmd.ResearchCmd{Base: base, Slot: int(idx), TechID: techID}
		cmd = rc
		if ok {
			applyResearch(st.h, int(idx), techID, st.durationMs)
		}

	case repcmd.TypeIDMove:
		mc := &repcmd.MoveCmd{Base: base}
		if len(st.h.Debug.EarlyMoveCmds) < earlyMoveThreshold {
			cur := bc.current()
			if len(cur) >= 19 {
				copy(mc.Fingerprint[:], cur[:19])
				st.h.Debug.EarlyMoveCmds = append(st.h.Debug.EarlyMoveCmds, mc.Fingerprint)
				st.h.Debug.EarlyMoveTimesMs = append(st.h.Debug.EarlyMoveTimesMs, st.durationMs)
			}
		}
		cmd = mc

	default:
		// Train/TrainSingle/Build/Tribute/Save/Chapter/Postgame and any
		// unrecognized sub-code: classified for observability only.
	}

	if st.cfg.Commands {
		st.cmds = append(st.cmds, cmd)
	}

	bc.seek(terminus)
	return nil
}

// applyResearch resolves the researching player by matching the
// command's logical index field against each player's Index (rather than
// treating the byte as a direct array position, which picks the wrong
// player in re-joined games) and, for the three age-advance technologies,
// derives that player's age-up timestamp.
func applyResearch(h *rep.Header, index int, techID int16, durationMs uint32) {
	var p *rep.Player
	for _, cand := range h.Players {
		if cand != nil && cand.IsValid() && cand.Index == index {
			p = cand
			break
		}
	}
	if p == nil {
		return
	}

	switch techID {
	case feudalAgeTechID:
		t := durationMs + feudalDurationMs
		p.FeudalAtMs = &t
	case castleAgeTechID:
		t := durationMs + castleDiscounted(p, castleDurationMs)
		p.CastleAtMs = &t
	case imperialAgeTechID:
		t := durationMs + castleDiscounted(p, imperialDurationMs)
		p.ImperialAtMs = &t
	}
}

// castleDiscounted applies the Persian (civ_raw 8) research-speed
// discount used for the castle/imperial age-up timestamps.
func castleDiscounted(p *rep.Player, base uint32) uint32 {
	if p.Civ != nil && p.Civ.IsPersianFamily() {
		return uint32(float64(base) / 1.1)
	}
	return base
}
