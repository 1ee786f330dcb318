package repdecoder

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/klauspost/compress/flate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deflate(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// buildContainer assembles a raw recorded-game buffer using the
// chapter-pointer layout (length field, then a next-chapter-pos field set
// to 0, then the raw-deflate compressed header, then the body). Setting
// the chapter-pos field to a value less than the total file length is
// what selects the 8-byte compStart branch deterministically; without it
// the decoder would have to guess based on a read of the first 4
// (arbitrary) compressed bytes.
func buildContainer(t *testing.T, rawHeaderEnd uint32, headerPlain, bodyPlain []byte) []byte {
	t.Helper()
	compressed := deflate(t, headerPlain)

	var raw bytes.Buffer
	var lenField, chapterField [4]byte
	binary.LittleEndian.PutUint32(lenField[:], rawHeaderEnd)
	binary.LittleEndian.PutUint32(chapterField[:], 0)
	raw.Write(lenField[:])
	raw.Write(chapterField[:])
	raw.Write(compressed)
	raw.Write(bodyPlain)
	return raw.Bytes()
}

func TestNewDecodesHeaderAndBody(t *testing.T) {
	headerPlain := []byte("this is the inflated header payload")
	bodyPlain := []byte("body-opcode-bytes")
	compressed := deflate(t, headerPlain)
	rawHeaderEnd := uint32(8 + len(compressed))

	dec, err := New(buildContainer(t, rawHeaderEnd, headerPlain, bodyPlain))
	require.NoError(t, err)
	assert.Equal(t, headerPlain, dec.Header)
	assert.Equal(t, bodyPlain, dec.Body)
}

func TestNewTooSmall(t *testing.T) {
	_, err := New([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestNewSelfCorrectsZeroHeaderLength(t *testing.T) {
	headerPlain := []byte("payload")
	bodyPlain := []byte("rest")

	dec, err := New(buildContainer(t, 0, headerPlain, bodyPlain))
	require.NoError(t, err)
	assert.Equal(t, headerPlain, dec.Header)
	assert.Equal(t, bodyPlain, dec.Body)
}
