// This file contains the command types.

package repcmd

import "github.com/aoe2rec/aoe2rec/rep/repcore"

// Type IDs of command sub-codes, as they appear as the first byte of a
// COMMAND operation's payload in the body opcode stream.
const (
	TypeIDResign      byte = 0x0b
	TypeIDResearch    byte = 0x65
	TypeIDTrain       byte = 0x77
	TypeIDTrainSingle byte = 0x64
	TypeIDBuild       byte = 0x66
	TypeIDTribute     byte = 0x6c
	TypeIDMove        byte = 0x03
	TypeIDSave        byte = 0x1b
	TypeIDChapter     byte = 0x20
	TypeIDPostgame    byte = 0xff
)

// Type describes the command sub-type.
type Type struct {
	repcore.Enum

	// ID as it appears in the body opcode stream.
	ID byte
}

// Types is an enumeration of the recognized command sub-types.
var Types = []*Type{
	{e("Resign"), TypeIDResign},
	{e("Research"), TypeIDResearch},
	{e("Train"), TypeIDTrain},
	{e("Train Single"), TypeIDTrainSingle},
	{e("Build"), TypeIDBuild},
	{e("Tribute"), TypeIDTribute},
	{e("Move"), TypeIDMove},
	{e("Save"), TypeIDSave},
	{e("Chapter"), TypeIDChapter},
	{e("Postgame"), TypeIDPostgame},
}

// Named command types
var (
	TypeResign      = Types[0]
	TypeResearch    = Types[1]
	TypeTrain       = Types[2]
	TypeTrainSingle = Types[3]
	TypeBuild       = Types[4]
	TypeTribute     = Types[5]
	TypeMove        = Types[6]
	TypeSave        = Types[7]
	TypeChapter     = Types[8]
	TypePostgame    = Types[9]
)

// typeIDType maps from sub-code to Type.
var typeIDType = map[byte]*Type{}

func init() {
	for _, t := range Types {
		typeIDType[t.ID] = t
	}
}

// TypeByID returns the Type for a given sub-code.
// A new Type with Unknown name is returned if one is not found
// for the given ID (preserving the unknown ID).
func TypeByID(id byte) *Type {
	if t := typeIDType[id]; t != nil {
		return t
	}
	return &Type{repcore.UnknownEnum(id), id}
}
