// This file implements the inline character-set decoding step performed
// on name/chat/instructions bytes before a Replay reaches its consumers:
// encoding is inferred from the raw bytes themselves, there is no
// out-of-band locale tag available during parsing. The raw bytes always
// remain available alongside the decoded string so a consumer can redo
// this step with a better locale hint.

package repparser

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"
)

// candidateEncoding pairs a decoder with the lead-byte range that makes it
// worth trying for a given raw byte sequence.
type candidateEncoding struct {
	name string
	enc  encoding.Encoding
	lo   byte
	hi   byte
}

// candidateEncodings is tried in order for any raw byte sequence that
// isn't already valid UTF-8. The lead-byte ranges are the classic
// East-Asian multi-byte sniffing heuristic (GBK/Big5/Shift_JIS/EUC-KR all
// reserve their lead byte to the high range, in overlapping sub-ranges, so
// the first candidate whose range holds the lead byte and which decodes
// cleanly wins); windows-1252/windows-1251 are single-byte and always
// decode without error, so they're the final fallback.
var candidateEncodings = []candidateEncoding{
	{"Shift_JIS", japanese.ShiftJIS, 0x81, 0x9f},
	{"GBK", simplifiedchinese.GBK, 0x81, 0xfe},
	{"Big5", traditionalchinese.Big5, 0xa1, 0xf9},
	{"EUC-KR", korean.EUCKR, 0xa1, 0xfe},
}

// decodeText decodes raw replay bytes (a player name, chat message, or
// scenario instructions blob) into a unicode string, inferring the source
// encoding by inspecting the bytes themselves. Valid UTF-8 (which covers
// the common case of plain ASCII) is returned unchanged.
func decodeText(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	if utf8.Valid(raw) {
		return string(raw)
	}

	lead := firstHighByte(raw)
	for _, c := range candidateEncodings {
		if lead < c.lo || lead > c.hi {
			continue
		}
		if s, ok := tryDecode(c.enc, raw); ok {
			return s
		}
	}

	// Cyrillic windows-1251 is distinguished from western windows-1252 by
	// its lead bytes clustering in 0xc0-0xff with few bytes elsewhere;
	// since both are single-byte and always "succeed", prefer 1251 when
	// the bulk of the high bytes fall in that range, else fall back to
	// the western code page.
	if mostlyCyrillicRange(raw) {
		if s, ok := tryDecode(charmap.Windows1251, raw); ok {
			return s
		}
	}
	s, _ := tryDecode(charmap.Windows1252, raw)
	return s
}

func firstHighByte(raw []byte) byte {
	for _, b := range raw {
		if b >= 0x80 {
			return b
		}
	}
	return 0
}

func mostlyCyrillicRange(raw []byte) bool {
	high, cyr := 0, 0
	for _, b := range raw {
		if b >= 0x80 {
			high++
			if b >= 0xc0 {
				cyr++
			}
		}
	}
	return high > 0 && cyr*3 >= high*2
}

func tryDecode(enc encoding.Encoding, raw []byte) (string, bool) {
	out, _, err := transform.Bytes(enc.NewDecoder(), raw)
	if err != nil {
		return "", false
	}
	if !utf8.Valid(out) {
		return "", false
	}
	return string(out), true
}
