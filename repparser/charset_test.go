package repparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeTextASCIIPassthrough(t *testing.T) {
	assert.Equal(t, "player one", decodeText([]byte("player one")))
}

func TestDecodeTextEmpty(t *testing.T) {
	assert.Equal(t, "", decodeText(nil))
	assert.Equal(t, "", decodeText([]byte{}))
}

func TestDecodeTextWindows1252Fallback(t *testing.T) {
	// 0x80 (EURO SIGN in windows-1252) falls outside every multi-byte
	// East Asian lead-byte range and below the 0xc0+ cyrillic-sniffing
	// threshold, so it should fall through to the windows-1252 decode.
	got := decodeText([]byte{0x80})
	assert.Equal(t, "€", got)
}
