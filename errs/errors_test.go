package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseErrorFormatting(t *testing.T) {
	e := NewTruncatedError("ran off the end", 0x20)
	assert.Equal(t, "ran off the end at offset 0x20", e.Error())

	e2 := NewDecompressFailedError("bad stream")
	assert.Equal(t, "bad stream", e2.Error())
}

func TestErrorsAsDiscrimination(t *testing.T) {
	var err error = NewAnchorMissingError("trigger")

	var am *AnchorMissingError
	assert.True(t, errors.As(err, &am))
	assert.Equal(t, "trigger", am.Anchor)

	var cu *CorruptError
	assert.False(t, errors.As(err, &cu))
}
