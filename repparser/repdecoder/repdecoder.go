/*

Package repdecoder implements the container decode step: splitting a raw
recorded-game file into its raw-deflate-compressed header and its
uncompressed body.

The container has no section table: the header is a single raw-deflate
stream (no zlib wrapper), and the body that follows it is plain bytes
with an optional chapter-pointer scheme. The Decoder type reflects that
flat shape.

*/
package repdecoder

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/klauspost/compress/flate"

	"github.com/aoe2rec/aoe2rec/errs"
)

// Decoder holds the result of a container decode.
type Decoder struct {
	// Header is the inflated header buffer.
	Header []byte

	// Body is the raw (uncompressed) body buffer, from the corrected
	// header end to the end of the file.
	Body []byte

	// NextChapterPos is the raw next-chapter pointer read from the
	// container's second u32 field; 0 means the body has no chapters.
	NextChapterPos uint32
}

// New decodes the container structure of a raw recorded-game file.
func New(raw []byte) (*Decoder, error) {
	if len(raw) < 8 {
		return nil, errs.NewTruncatedError("file too small to contain a container header", 0)
	}

	rawHeaderEnd := int(binary.LittleEndian.Uint32(raw[0:4]))
	nextChapterPos := binary.LittleEndian.Uint32(raw[4:8])

	// AoK-family files have no chapter pointer field; the compressed
	// header starts right after the 4-byte length field. Later dialects
	// reserve a second u32 for the chapter pointer.
	compStart := 4
	if int(nextChapterPos) < len(raw) {
		compStart = 8
	}

	// bytes.Reader implements io.ByteReader, which keeps flate reading
	// exactly the bytes it needs; the leftover Len then gives a faithful
	// count of the compressed bytes consumed.
	br := bytes.NewReader(raw[compStart:])
	zr := flate.NewReader(br)
	defer zr.Close()

	header, err := io.ReadAll(zr)
	if err != nil {
		return nil, errs.NewDecompressFailedError(err.Error())
	}

	// Self-correct a zero or underestimated header-length field from the
	// number of compressed bytes actually consumed.
	consumedEnd := compStart + int(br.Size()) - br.Len()
	if rawHeaderEnd == 0 || rawHeaderEnd < consumedEnd {
		rawHeaderEnd = consumedEnd
	}
	if rawHeaderEnd > len(raw) {
		rawHeaderEnd = len(raw)
	}

	return &Decoder{
		Header:         header,
		Body:           raw[rawHeaderEnd:],
		NextChapterPos: nextChapterPos,
	}, nil
}
