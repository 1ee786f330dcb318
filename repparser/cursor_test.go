package repparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorPrimitives(t *testing.T) {
	buf := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	c := newCursor(buf, 0)

	u8, ok := c.getU8()
	require.True(t, ok)
	assert.Equal(t, byte(0x01), u8)

	u16, ok := c.getU16()
	require.True(t, ok)
	assert.Equal(t, uint16(0x0403), u16)

	u32, ok := c.getU32()
	require.True(t, ok)
	assert.Equal(t, uint32(0x08070605), u32)

	assert.Equal(t, 7, c.tell())
	assert.Equal(t, 1, c.remain())
}

func TestCursorShortReadDoesNotAdvance(t *testing.T) {
	buf := []byte{0x01, 0x02}
	c := newCursor(buf, 0)

	_, ok := c.getU32()
	assert.False(t, ok)
	assert.Equal(t, 0, c.tell())

	_, ok = c.getU16()
	require.True(t, ok)
	assert.Equal(t, 2, c.tell())

	_, ok = c.getU8()
	assert.False(t, ok)
	assert.Equal(t, 2, c.tell())
}

func TestCursorSeekClamps(t *testing.T) {
	buf := make([]byte, 4)
	c := newCursor(buf, 0)

	c.seek(100)
	assert.Equal(t, 4, c.tell())

	c.seek(-5)
	assert.Equal(t, 4, c.tell())
	c.mov(-100)
	assert.Equal(t, 0, c.tell())
}

func TestCursorExtractStrL32(t *testing.T) {
	buf := []byte{5, 0, 0, 0, 'h', 'e', 'l', 'l', 0}
	c := newCursor(buf, 0)

	s, ok := c.extractStrL32()
	require.True(t, ok)
	assert.Equal(t, []byte("hell"), s)
	assert.Equal(t, len(buf), c.tell())
}

func TestCursorExtractStrL32RejectsOversizedLength(t *testing.T) {
	buf := []byte{100, 0, 0, 0, 'a', 'b'}
	c := newCursor(buf, 0)

	_, ok := c.extractStrL32()
	assert.False(t, ok)
	assert.Equal(t, 0, c.tell())
}

func TestCursorFindAndRfind(t *testing.T) {
	buf := []byte("abc--needle--def--needle--xyz")
	c := newCursor(buf, 0)

	first, ok := c.find([]byte("needle"), 0, len(buf))
	require.True(t, ok)
	assert.Equal(t, 5, first)

	last, ok := c.rfind([]byte("needle"), 0, len(buf))
	require.True(t, ok)
	assert.Equal(t, 18, last)

	_, ok = c.find([]byte("missing"), 0, len(buf))
	assert.False(t, ok)
}

func TestCursorOffsetRegion(t *testing.T) {
	buf := []byte{0xff, 0xff, 0x01, 0x02, 0x03}
	c := newCursor(buf, 2)

	assert.Equal(t, 3, len(c.data()))
	v, ok := c.getU8()
	require.True(t, ok)
	assert.Equal(t, byte(0x01), v)
}
