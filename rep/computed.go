// This file contains computed / derived data: the game duration, the GUID
// fingerprint, and the winner inference algorithm.

package rep

// Computed contains data that is computed / derived from other parts of
// the replay, rather than read directly off the wire.
type Computed struct {
	// DurationMs is the total game duration, accumulated from body sync
	// operations.
	DurationMs uint32

	// GUID is the MD5-based fingerprint identifying this match
	// (deterministic across different spectator views of the same game).
	GUID string

	// HasWinner tells if the winner inference algorithm reached a verdict.
	HasWinner bool

	// WinningTeamIndex is the index into Header.Teams of the winning team,
	// only meaningful when HasWinner is true.
	WinningTeamIndex int
}

// InferWinner runs the winner inference algorithm (resignation-based,
// two-equal-team heuristic) and mutates each winning player's Winner field.
//
// Preconditions mirror the source algorithm: exactly two teams of equal
// size, and neither instant-build nor cheats enabled. If no verdict can be
// reached, HasWinner is left false and no player is mutated.
func (r *Replay) InferWinner() {
	h := r.Header
	c := r.Computed
	if h == nil || c == nil {
		return
	}
	if h.InstantBuild || h.EnableCheats {
		return
	}
	if len(h.Teams) != 2 || len(h.Teams[0]) != len(h.Teams[1]) {
		return
	}

	// Teams hold player indices, not slots, so the resigned set is built
	// from indices too.
	resigned := map[int]bool{}
	for _, p := range h.Players {
		if p.IsValid() && p.ResignedAtMs != nil && p.Index >= 0 {
			resigned[p.Index] = true
		}
	}
	if len(resigned) == 0 {
		// Nobody resigned in this view: the recording player left by
		// closing the game, so treat the recorder as the resignee.
		if p := h.playerBySlot(int(h.RecorderSlot)); p != nil && p.Index >= 0 {
			resigned[p.Index] = true
		}
		if len(resigned) == 0 {
			return
		}
	}

	inTeam := func(team []int) bool {
		for idx := range resigned {
			found := false
			for _, t := range team {
				if t == idx {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	}

	var winningTeam int
	switch {
	case inTeam(h.Teams[0]):
		winningTeam = 1
	case inTeam(h.Teams[1]):
		winningTeam = 0
	default:
		return
	}

	c.HasWinner = true
	c.WinningTeamIndex = winningTeam
	for _, idx := range h.Teams[winningTeam] {
		if p := h.playerByIndex(idx); p != nil {
			p.Winner = true
		}
	}
}

func (h *Header) playerBySlot(slot int) *Player {
	if slot >= 0 && slot < len(h.Players) && h.Players[slot].IsValid() {
		return h.Players[slot]
	}
	return nil
}

func (h *Header) playerByIndex(index int) *Player {
	for _, p := range h.Players {
		if p.IsValid() && p.Index == index {
			return p
		}
	}
	return nil
}
