// This file contains the types describing the replay header: the match
// settings, scenario text, and the per-player roster resolved from the
// header's init blocks.

package rep

import (
	"fmt"
	"strings"

	"github.com/aoe2rec/aoe2rec/rep/repcore"
)

// Header models the decoded replay header.
type Header struct {
	// RawTag is the 7-byte ASCII version tag at the start of the header
	// (e.g. "VER 9.4", "TRL 9.3", "MCP 9.F").
	RawTag string

	// SaveVersion is the float32 version number following RawTag.
	SaveVersion float32

	// SaveVersion2 is the alternate uint32 version slot, only present
	// when SaveVersion is exactly -1.
	SaveVersion2 *uint32

	// LogVersion is the uint32 read from the start of the body: the
	// log-format version, or for AoK, which has no log-version prefix, the
	// sync-checksum interval (500) that opens its body.
	LogVersion uint32

	// ScenarioVersion is the float32 embedded near the scenario-anchor.
	ScenarioVersion float32

	// Dialect is the classified game version family.
	Dialect *repcore.Dialect

	// Speed is the game speed.
	Speed *repcore.Speed

	// PopulationLimit is the population cap (already multiplied by 25 if
	// the raw stored value was 40 or below).
	PopulationLimit uint32

	// MapSizeRaw is the raw lobby map-size setting, distinct from the
	// actual MapX/MapY tile dimensions; folded into the GUID digest.
	MapSizeRaw uint32

	// MapID identifies the map/scenario generator.
	MapID *repcore.MapID

	// MapX, MapY are the map dimensions in tiles.
	MapX, MapY int32

	// RevealMap is the map visibility setting.
	RevealMap *repcore.RevealMap

	// FogOfWar tells if fog of war is enabled.
	FogOfWar bool

	// InstantBuild tells if instant building/researching is enabled.
	InstantBuild bool

	// EnableCheats tells if cheat codes are enabled.
	EnableCheats bool

	// LockTeams tells if teams are locked.
	LockTeams bool

	// LockDiplomacy tells if diplomacy is locked.
	LockDiplomacy bool

	// GameType identifies the victory-condition ruleset.
	GameType *repcore.GameType

	// Difficulty is the game difficulty.
	Difficulty *repcore.Difficulty

	// IsMultiplayer tells if the game was multiplayer.
	IsMultiplayer bool

	// IsConquest tells if the "conquest" victory condition was enabled.
	IsConquest bool

	// VictoryType identifies the victory condition.
	VictoryType *repcore.VictoryType

	// RelicsToWin, ExploredToWin, ScoreToWin are the respective victory
	// condition thresholds (0 if not applicable).
	RelicsToWin, ExploredToWin, ScoreToWin uint32

	// TimeToWinRaw is the raw time-limit victory condition value.
	TimeToWinRaw uint32

	// AnyOrAll tells if any-or-all victory conditions must be met.
	AnyOrAll bool

	// ScenarioFilename is the scenario's file name, if the game used one.
	ScenarioFilename string

	// ScenarioFilenameRaw is the undecoded scenario file name bytes.
	ScenarioFilenameRaw []byte `json:"-"`

	// Instructions is the scenario's briefing text, if any.
	Instructions string

	// InstructionsRaw is the undecoded briefing text bytes.
	InstructionsRaw []byte `json:"-"`

	// RecorderSlot is the 1-based slot of the player who recorded the
	// game (the local player of the client that produced this file).
	RecorderSlot uint16

	// TotalPlayers is the number of player slots, GAIA included.
	TotalPlayers uint8

	// IncludeAI tells if the AI scripting block was present.
	IncludeAI bool

	// Players holds all 9 slots; index 0 is always GAIA. It carries the
	// index, type and name the settings block lists for slot 0, but never
	// a lobby team id.
	Players [9]*Player

	// Teams is the set of ally clusters, each a list of player indices
	// (Player.Index, not slots).
	Teams [][]int

	// Matchup is the sorted ascending sequence of team sizes.
	Matchup []int

	// Debug holds optional debug info (file offsets used while parsing).
	Debug *HeaderDebug `json:"-"`
}

// MatchupString renders Matchup the way a human reads it, e.g. "1v1", "3v3v2".
func (h *Header) MatchupString() string {
	parts := make([]string, len(h.Matchup))
	for i, n := range h.Matchup {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, "v")
}

// ValidPlayers returns the players (excluding GAIA) whose PlayerType is
// valid, in slot order.
func (h *Header) ValidPlayers() []*Player {
	var ps []*Player
	for i := 1; i < len(h.Players); i++ {
		if p := h.Players[i]; p != nil && p.PlayerType != nil && p.PlayerType.IsValid() {
			ps = append(ps, p)
		}
	}
	return ps
}

// Player represents one of the 9 player slots (slot 0 is GAIA and is
// never a valid participant).
type Player struct {
	// Slot is the 0-8 position in Header.Players.
	Slot int

	// Index is the logical player number used inside body commands and
	// the diplomacy matrix; -1 if unused.
	Index int

	// PlayerType classifies the slot.
	PlayerType *repcore.PlayerType

	// Name is the decoded player name.
	Name string

	// NameRaw is the undecoded name bytes.
	NameRaw []byte `json:"-"`

	// TeamID is the raw lobby team-id byte (before diplomacy clustering).
	TeamID int

	// IsMainOp tells if this slot's name matched the search needle's
	// template name, i.e. this is the recording ("main") operator.
	IsMainOp bool

	// InitPos is the player's starting position, in the float tile
	// coordinates the replay itself stores.
	InitPos repcore.FPoint

	// InitFood, InitWood, InitStone, InitGold are the starting resources.
	InitFood, InitWood, InitStone, InitGold float32

	// InitAgeRaw is the raw starting-age float.
	InitAgeRaw float32

	// InitPop, InitCivilian, InitMilitary are starting population figures.
	InitPop, InitCivilian, InitMilitary float32

	// Civ is the player's civilization.
	Civ *repcore.Civ

	// ColorID identifies the player's color.
	ColorID byte

	// Color resolves ColorID to a named, renderable color.
	Color *repcore.Color

	// ModVersion is the UserPatch mod version, only present for
	// UP15/MCP dialects.
	ModVersion *float32

	// ResignedAtMs is the game duration at which the player resigned, if any.
	ResignedAtMs *uint32

	// Disconnected tells whether the resignation was a disconnect.
	Disconnected bool

	// FeudalAtMs, CastleAtMs, ImperialAtMs are inferred age-up timestamps
	// derived from observed RESEARCH commands for the corresponding
	// age-advance technology.
	FeudalAtMs, CastleAtMs, ImperialAtMs *uint32

	// Winner tells if this player was inferred to have won the game.
	Winner bool
}

// IsValid reports whether this slot is an actual participant.
func (p *Player) IsValid() bool {
	return p != nil && p.PlayerType != nil && p.PlayerType.IsValid()
}

// HeaderDebug holds debug info for the header section: the file offsets
// located by the anchor locator and player init resolver, plus the raw
// early-move fingerprints consumed by the GUID digester.
type HeaderDebug struct {
	// Data is the raw, inflated header buffer.
	Data []byte `json:"-"`

	AIPos            int
	InitPos          int
	TriggerPos       int
	SettingsPos      int
	DisabledTechsPos int
	VictoryPos       int
	ScenarioPos      int
	MapPos           int

	// PlayerInitPos[i] is the resolved init-block offset for the player
	// whose Index is i, or -1 if it could not be located.
	PlayerInitPos [9]int

	// EarlyMoveCmds holds up to 5 raw 19-byte move-command fingerprints.
	EarlyMoveCmds [][19]byte `json:"-"`

	// EarlyMoveTimesMs holds the game duration at which each fingerprint
	// was captured.
	EarlyMoveTimesMs []uint32
}
