// This file contains general enum types.

package repcore

import "fmt"

// Enum is the base / common part of enum types.
type Enum struct {
	// Name of the entity
	Name string
}

// String returns the string representation of the enum (the name).
// Defined with value receiver so this gets called even if a non-pointer is used.
func (e Enum) String() string {
	return e.Name
}

// UnknownEnum constructs a new Enum for an unknown entity with a name:
//
//	"Unknown 0xID"
//
// ID must be an integer number.
func UnknownEnum(ID any) Enum {
	return Enum{fmt.Sprintf("Unknown 0x%x", ID)}
}

// Dialect identifies the game version / build family a recorded game was
// produced by. Header and body layout both depend on it.
type Dialect struct {
	Enum

	// ID is a short, stable mnemonic for the dialect (not a byte value read
	// from the file -- dialects are classified from a combination of the
	// 7-byte version tag, the save/log version numbers and the body sync tag).
	ID string
}

// Dialects is an enumeration of the recognized dialects (see repparser's
// version classifier for how each one is detected).
var Dialects = []*Dialect{
	{Enum{"Age of Kings (trial)"}, "AoKTrial"},
	{Enum{"Age of Kings"}, "AoK"},
	{Enum{"Age of Conquerors (trial)"}, "AoCTrial"},
	{Enum{"Age of Conquerors"}, "AoC"},
	{Enum{"Age of Conquerors 1.0a"}, "AoC10a"},
	{Enum{"Age of Conquerors 1.0c"}, "AoC10c"},
	{Enum{"UserPatch 1.2"}, "UP12"},
	{Enum{"UserPatch 1.3"}, "UP13"},
	{Enum{"UserPatch 1.4 RC1"}, "UP14RC1"},
	{Enum{"UserPatch 1.4 RC2"}, "UP14RC2"},
	{Enum{"UserPatch 1.4"}, "UP14"},
	{Enum{"UserPatch 1.5"}, "UP15"},
	{Enum{"Age of Kings: The Forgotten 2.1"}, "AoFE21"},
	{Enum{"Multiplayer Campaign Patch"}, "MCP"},
	{Enum{"HD Edition"}, "HD"},
	{Enum{"Definitive Edition"}, "DE"},
	{Enum{"Unknown"}, "Unknown"},
}

// Named dialects
var (
	DialectAoKTrial = Dialects[0]
	DialectAoK      = Dialects[1]
	DialectAoCTrial = Dialects[2]
	DialectAoC      = Dialects[3]
	DialectAoC10a   = Dialects[4]
	DialectAoC10c   = Dialects[5]
	DialectUP12     = Dialects[6]
	DialectUP13     = Dialects[7]
	DialectUP14RC1  = Dialects[8]
	DialectUP14RC2  = Dialects[9]
	DialectUP14     = Dialects[10]
	DialectUP15     = Dialects[11]
	DialectAoFE21   = Dialects[12]
	DialectMCP      = Dialects[13]
	DialectHD       = Dialects[14]
	DialectDE       = Dialects[15]
	DialectUnknown  = Dialects[16]
)

// DialectByMnemonic returns the Dialect for a given mnemonic ID.
// DialectUnknown is returned if the mnemonic is not recognized.
func DialectByMnemonic(id string) *Dialect {
	for _, d := range Dialects {
		if d.ID == id {
			return d
		}
	}
	return DialectUnknown
}

// IsAoKFamily tells whether the dialect belongs to the original, strict
// AoK/AoC opcode family, where an unrecognized body opcode is treated as
// corruption rather than tolerated padding (UserPatch-era files commonly
// carry padding bytes between operations).
func (d *Dialect) IsAoKFamily() bool {
	switch d {
	case DialectAoK, DialectAoKTrial, DialectAoC, DialectAoCTrial, DialectAoC10a, DialectAoC10c:
		return true
	default:
		return false
	}
}

// PlayerType classifies a player slot.
type PlayerType struct {
	Enum

	// ID as it appears in the replay's settings block.
	ID byte
}

// PlayerTypes is an enumeration of the possible player types.
var PlayerTypes = []*PlayerType{
	{Enum{"Inactive"}, 0},
	{Enum{"Unused 1"}, 1},
	{Enum{"Human"}, 2},
	{Enum{"Computer"}, 3},
	{Enum{"Closed"}, 4},
	{Enum{"Open"}, 5},
}

// Named player types
var (
	PlayerTypeInactive = PlayerTypes[0]
	PlayerTypeHuman    = PlayerTypes[2]
	PlayerTypeComputer = PlayerTypes[3]
	PlayerTypeClosed   = PlayerTypes[4]
	PlayerTypeOpen     = PlayerTypes[5]
)

// PlayerTypeByID returns the PlayerType for a given ID.
// A new PlayerType with Unknown name is returned if one is not found
// for the given ID (preserving the unknown ID).
func PlayerTypeByID(id byte) *PlayerType {
	for _, t := range PlayerTypes {
		if t.ID == id {
			return t
		}
	}
	return &PlayerType{UnknownEnum(id), id}
}

// IsValid tells whether a player slot with this type participates in the
// recorded match: the raw type byte must fall in [2,5]. Closed and Open
// slots pass this check too -- the settings block reuses the participant
// range for them, and the init resolver relies on the same range when
// deciding which slots get a search needle.
func (t *PlayerType) IsValid() bool {
	return t.ID >= 2 && t.ID <= 5
}

// Civ identifies a player's civilization.
type Civ struct {
	Enum

	// ID as it appears in the player's init block (civ_raw).
	ID byte
}

// Civs is an enumeration of the Age of Kings / Conquerors civilizations.
// ID 0 is Gaia; the remaining IDs follow release order.
var Civs = []*Civ{
	{Enum{"Gaia"}, 0},
	{Enum{"Britons"}, 1},
	{Enum{"Franks"}, 2},
	{Enum{"Goths"}, 3},
	{Enum{"Teutons"}, 4},
	{Enum{"Japanese"}, 5},
	{Enum{"Chinese"}, 6},
	{Enum{"Byzantines"}, 7},
	{Enum{"Persians"}, 8},
	{Enum{"Saracens"}, 9},
	{Enum{"Turks"}, 10},
	{Enum{"Vikings"}, 11},
	{Enum{"Mongols"}, 12},
	{Enum{"Celts"}, 13},
	{Enum{"Spanish"}, 14},
	{Enum{"Aztecs"}, 15},
	{Enum{"Mayans"}, 16},
	{Enum{"Huns"}, 17},
	{Enum{"Koreans"}, 18},
}

// CivByID returns the Civ for a given ID.
// A new Civ with Unknown name is returned if one is not found for the
// given ID (preserving the unknown ID).
func CivByID(id byte) *Civ {
	if int(id) < len(Civs) {
		return Civs[id]
	}
	return &Civ{UnknownEnum(id), id}
}

// IsPersianFamily reports whether the research-timing discount applied to
// Persians (civ_raw 8) in the body opcode loop's castle/imperial age-up
// timestamp calculation applies to this civ.
func (c *Civ) IsPersianFamily() bool {
	return c.ID == 8
}

// Difficulty identifies the AI/game difficulty level.
type Difficulty struct {
	Enum

	ID int32
}

// Difficulties is an enumeration of the possible difficulty levels.
var Difficulties = []*Difficulty{
	{Enum{"Hardest"}, 0},
	{Enum{"Hard"}, 1},
	{Enum{"Moderate"}, 2},
	{Enum{"Standard"}, 3},
	{Enum{"Easiest"}, 4},
}

// DifficultyByID returns the Difficulty for a given ID.
func DifficultyByID(id int32) *Difficulty {
	for _, d := range Difficulties {
		if d.ID == id {
			return d
		}
	}
	return &Difficulty{UnknownEnum(id), id}
}

// MapID identifies the map/scenario generator used.
type MapID struct {
	Enum

	ID uint32
}

// MapIDs is an enumeration of built-in random map generators.
var MapIDs = []*MapID{
	{Enum{"Arabia"}, 9},
	{Enum{"Archipelago"}, 10},
	{Enum{"Baltic"}, 11},
	{Enum{"Black Forest"}, 12},
	{Enum{"Coastal"}, 13},
	{Enum{"Continental"}, 14},
	{Enum{"Crater Lake"}, 15},
	{Enum{"Fortress"}, 16},
	{Enum{"Gold Rush"}, 18},
	{Enum{"Highland"}, 19},
	{Enum{"Islands"}, 20},
	{Enum{"Mediterranean"}, 21},
	{Enum{"Migration"}, 22},
	{Enum{"Rivers"}, 23},
	{Enum{"Team Islands"}, 24},
	{Enum{"Random"}, 25},
	{Enum{"Scandinavia"}, 28},
	{Enum{"Salt Marsh"}, 31},
	{Enum{"Yucatan"}, 32},
	{Enum{"Custom"}, 33},
	{Enum{"Real World"}, 36},
	{Enum{"Geyser Park"}, 40},
	{Enum{"Ghost Lake"}, 42},
}

// MapIDByID returns the MapID for a given raw ID.
func MapIDByID(id uint32) *MapID {
	for _, m := range MapIDs {
		if m.ID == id {
			return m
		}
	}
	return &MapID{UnknownEnum(id), id}
}

// GameType identifies the victory-condition ruleset.
type GameType struct {
	Enum

	ID byte
}

// GameTypes is an enumeration of the possible game types.
var GameTypes = []*GameType{
	{Enum{"Random Map"}, 0},
	{Enum{"Regicide"}, 1},
	{Enum{"Death Match"}, 2},
	{Enum{"Scenario"}, 3},
	{Enum{"Campaign"}, 4},
	{Enum{"King of the Hill"}, 5},
	{Enum{"Wonder Race"}, 6},
	{Enum{"Defend the Wonder"}, 7},
	{Enum{"Turbo Random Map"}, 8},
}

// GameTypeByID returns the GameType for a given ID.
func GameTypeByID(id byte) *GameType {
	if int(id) < len(GameTypes) {
		return GameTypes[id]
	}
	return &GameType{UnknownEnum(id), id}
}

// VictoryType identifies the way a game is won.
type VictoryType struct {
	Enum

	ID int32
}

// VictoryTypes is an enumeration of the possible victory types.
var VictoryTypes = []*VictoryType{
	{Enum{"Conquest"}, 0},
	{Enum{"Last Man Standing"}, 1},
	{Enum{"Score"}, 2},
	{Enum{"Time Limit"}, 3},
	{Enum{"Standard"}, 4},
}

// VictoryTypeByID returns the VictoryType for a given ID.
func VictoryTypeByID(id int32) *VictoryType {
	for _, v := range VictoryTypes {
		if v.ID == id {
			return v
		}
	}
	return &VictoryType{UnknownEnum(id), id}
}

// Speed identifies the game simulation speed.
type Speed struct {
	Enum

	// ID is the raw speed value as stored in the replay settings block.
	ID uint32
}

// Speeds is an enumeration of the possible game speeds.
var Speeds = []*Speed{
	{Enum{"Slow"}, 1000},
	{Enum{"Normal"}, 1500},
	{Enum{"Fast"}, 2000},
}

// SpeedByID returns the Speed for a given raw ID.
func SpeedByID(id uint32) *Speed {
	for _, s := range Speeds {
		if s.ID == id {
			return s
		}
	}
	return &Speed{UnknownEnum(id), id}
}

// RevealMap identifies the map visibility setting.
type RevealMap struct {
	Enum

	ID int32
}

// RevealMaps is an enumeration of the possible map reveal settings.
var RevealMaps = []*RevealMap{
	{Enum{"Normal"}, 0},
	{Enum{"Explored"}, 1},
	{Enum{"All Visible"}, 2},
}

// RevealMapByID returns the RevealMap for a given ID.
func RevealMapByID(id int32) *RevealMap {
	for _, r := range RevealMaps {
		if r.ID == id {
			return r
		}
	}
	return &RevealMap{UnknownEnum(id), id}
}

// Color identifies a player's map/minimap color.
type Color struct {
	Enum

	// ID is the raw color-id byte read from the player's init block.
	ID byte

	// RGB is the color's approximate on-screen triple, published for the
	// benefit of an external minimap-rendering collaborator (the core
	// never rasterizes anything itself).
	RGB [3]byte
}

// Colors is an enumeration of the 8 standard player colors.
var Colors = []*Color{
	{Enum{"Blue"}, 0, [3]byte{0x43, 0x43, 0xdb}},
	{Enum{"Red"}, 1, [3]byte{0xe1, 0x38, 0x2a}},
	{Enum{"Green"}, 2, [3]byte{0x24, 0x9c, 0x3d}},
	{Enum{"Yellow"}, 3, [3]byte{0xf1, 0xe1, 0x38}},
	{Enum{"Cyan"}, 4, [3]byte{0x38, 0xc6, 0xd9}},
	{Enum{"Purple"}, 5, [3]byte{0xb0, 0x47, 0xc2}},
	{Enum{"Gray"}, 6, [3]byte{0x8e, 0x8e, 0x8e}},
	{Enum{"Orange"}, 7, [3]byte{0xe7, 0x8c, 0x28}},
}

// ColorByID returns the Color for a given ID.
func ColorByID(id byte) *Color {
	if int(id) < len(Colors) {
		return Colors[id]
	}
	return &Color{UnknownEnum(id), id, [3]byte{}}
}
