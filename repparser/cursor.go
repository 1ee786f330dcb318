// This file contains the byte cursor used to walk the inflated header and
// the body opcode stream. It never panics on a short read: every get/peek
// returns an ok flag, and a failed read never advances the position.

package repparser

import (
	"bytes"
	"encoding/binary"
	"math"
)

// cursor is a bounded view over an owned byte buffer. offset is the start
// of the logical "data" region (e.g. past a container envelope); pos is
// the current position relative to offset.
type cursor struct {
	src    []byte
	pos    int
	offset int
}

// newCursor wraps src as a cursor whose data region starts at offset.
func newCursor(src []byte, offset int) *cursor {
	return &cursor{src: src, offset: offset}
}

// mov shifts pos by dist, clamped to [0, len(data)].
func (c *cursor) mov(dist int) *cursor {
	dest := c.pos + dist
	switch {
	case dest < 0:
		c.pos = 0
	case dest > len(c.data()):
		c.pos = len(c.data())
	default:
		c.pos = dest
	}
	return c
}

// data returns the logical data region (from offset to the end of src).
func (c *cursor) data() []byte {
	return c.src[c.offset:]
}

// current returns the unread remainder of the data region.
func (c *cursor) current() []byte {
	return c.src[c.offset+c.pos:]
}

// seek sets pos, clamped to the data region's length. A negative pos is
// out of range and also lands at the end of the data region.
func (c *cursor) seek(pos int) *cursor {
	if pos >= 0 && pos < len(c.data()) {
		c.pos = pos
	} else {
		c.pos = len(c.data())
	}
	return c
}

// tell returns the current position relative to offset.
func (c *cursor) tell() int {
	return c.pos
}

// remain returns how many bytes are left to read.
func (c *cursor) remain() int {
	return len(c.src) - c.offset - c.pos
}

func (c *cursor) peekU8() (byte, bool) {
	if len(c.current()) < 1 {
		return 0, false
	}
	return c.current()[0], true
}

func (c *cursor) getU8() (byte, bool) {
	v, ok := c.peekU8()
	if ok {
		c.pos++
	}
	return v, ok
}

func (c *cursor) getI8() (int8, bool) {
	v, ok := c.getU8()
	return int8(v), ok
}

func (c *cursor) peekU16() (uint16, bool) {
	if len(c.current()) < 2 {
		return 0, false
	}
	return binary.LittleEndian.Uint16(c.current()), true
}

func (c *cursor) getU16() (uint16, bool) {
	v, ok := c.peekU16()
	if ok {
		c.pos += 2
	}
	return v, ok
}

func (c *cursor) getI16() (int16, bool) {
	v, ok := c.getU16()
	return int16(v), ok
}

func (c *cursor) peekU32() (uint32, bool) {
	if len(c.current()) < 4 {
		return 0, false
	}
	return binary.LittleEndian.Uint32(c.current()), true
}

func (c *cursor) getU32() (uint32, bool) {
	v, ok := c.peekU32()
	if ok {
		c.pos += 4
	}
	return v, ok
}

func (c *cursor) peekI32() (int32, bool) {
	v, ok := c.peekU32()
	return int32(v), ok
}

func (c *cursor) getI32() (int32, bool) {
	v, ok := c.getU32()
	return int32(v), ok
}

func (c *cursor) peekF32() (float32, bool) {
	v, ok := c.peekU32()
	if !ok {
		return 0, false
	}
	return math.Float32frombits(v), true
}

func (c *cursor) getF32() (float32, bool) {
	v, ok := c.peekF32()
	if ok {
		c.pos += 4
	}
	return v, ok
}

// getBool reads n bytes and reports whether any of them is non-zero.
// It refuses to advance (and returns ok=false) when fewer than n bytes
// remain, keeping the no-advance-on-failure contract of the other reads.
func (c *cursor) getBool(n int) (bool, bool) {
	if len(c.current()) < n {
		return false, false
	}
	result := false
	for i := 0; i < n; i++ {
		if c.current()[i] != 0 {
			result = true
			break
		}
	}
	c.pos += n
	return result, true
}

// extractStrL32 reads an int32 length prefix followed by that many bytes,
// stripping one trailing NUL if present. Absent (and no advance) if the
// length is zero, negative, or greater than the remaining data.
func (c *cursor) extractStrL32() ([]byte, bool) {
	n, ok := c.peekI32()
	if !ok || n <= 0 || int(n) > len(c.current())-4 {
		return nil, false
	}
	c.pos += 4
	return c.extractRaw(int(n)), true
}

// extractStrL16 is extractStrL32's u16-length-prefixed counterpart.
func (c *cursor) extractStrL16() ([]byte, bool) {
	n, ok := c.peekU16()
	if !ok || n == 0 || int(n) > len(c.current())-2 {
		return nil, false
	}
	c.pos += 2
	return c.extractRaw(int(n)), true
}

func (c *cursor) extractRaw(n int) []byte {
	raw := c.current()[:n]
	if raw[n-1] == 0 {
		raw = raw[:n-1]
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	c.pos += n
	return out
}

// find searches for needle within the data-relative half-open range
// [lo, hi), returning the first match's data-relative offset.
//
// No Boyer-Moore-class search library appears anywhere in the example
// pack, so this falls back to the standard library's bytes.Index, which
// already uses a two-way string-matching algorithm with sublinear
// expected behavior -- adequate for the small, fixed-size needles used
// throughout the header walk.
func (c *cursor) find(needle []byte, lo, hi int) (int, bool) {
	d := c.data()
	if lo < 0 {
		lo = 0
	}
	if hi > len(d) {
		hi = len(d)
	}
	if lo >= hi {
		return 0, false
	}
	idx := bytes.Index(d[lo:hi], needle)
	if idx < 0 {
		return 0, false
	}
	return lo + idx, true
}

// rfind is find's reverse-search counterpart (finds the last match).
func (c *cursor) rfind(needle []byte, lo, hi int) (int, bool) {
	d := c.data()
	if lo < 0 {
		lo = 0
	}
	if hi > len(d) {
		hi = len(d)
	}
	if lo >= hi {
		return 0, false
	}
	idx := bytes.LastIndex(d[lo:hi], needle)
	if idx < 0 {
		return 0, false
	}
	return lo + idx, true
}
