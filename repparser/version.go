// This file implements the version classifier: mapping the header's
// 7-byte ASCII tag, the save-version float and the body's log-version u32
// onto a Dialect.

package repparser

import (
	"fmt"

	"github.com/aoe2rec/aoe2rec/errs"
	"github.com/aoe2rec/aoe2rec/rep/repcore"
)

// classifyDialect implements the (tag, save-float, log) -> Dialect table.
// A "TRL 9.3" tag is always classified as AoKTrial: the trial builds that
// produced a Conquerors-style trial file never shipped, so there is no
// observable AoCTrial recording to disambiguate against within a single
// parse.
func classifyDialect(tag string, saveFloat float32, log uint32) *repcore.Dialect {
	switch tag {
	case "TRL 9.3\x00", "TRL 9.3":
		return repcore.DialectAoKTrial
	case "VER 9.3\x00", "VER 9.3":
		return repcore.DialectAoK
	case "VER 9.4\x00", "VER 9.4":
		switch {
		case log == 0 || log == 3:
			return repcore.DialectAoC10a
		case log == 5 || saveFloat >= 12.9699:
			return repcore.DialectDE
		case saveFloat > 11.7601:
			return repcore.DialectHD
		case log == 4:
			return repcore.DialectAoC10c
		default:
			return repcore.DialectAoC
		}
	case "VER 9.5\x00", "VER 9.5":
		return repcore.DialectAoFE21
	case "VER 9.8\x00", "VER 9.8":
		return repcore.DialectUP12
	case "VER 9.9\x00", "VER 9.9":
		return repcore.DialectUP13
	case "VER 9.A\x00", "VER 9.A":
		return repcore.DialectUP14RC1
	case "VER 9.B\x00", "VER 9.B":
		return repcore.DialectUP14RC2
	case "VER 9.C\x00", "VER 9.C", "VER 9.D\x00", "VER 9.D":
		return repcore.DialectUP14
	case "VER 9.E\x00", "VER 9.E", "VER 9.F\x00", "VER 9.F":
		return repcore.DialectUP15
	case "MCP 9.F\x00", "MCP 9.F":
		return repcore.DialectMCP
	default:
		return repcore.DialectUnknown
	}
}

// checkVersionSupported returns UnsupportedVersionError for save versions
// the decoder explicitly rejects (DE/HD and anything newer, or a negative
// sentinel).
func checkVersionSupported(saveFloat float32) error {
	if saveFloat >= 11.7601 || saveFloat < 0 {
		return errs.NewUnsupportedVersionError(fmt.Sprintf("%g", saveFloat))
	}
	return nil
}
