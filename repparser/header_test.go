package repparser

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoe2rec/aoe2rec/rep"
	"github.com/aoe2rec/aoe2rec/rep/repcore"
)

func TestBuildPlayerNeedle(t *testing.T) {
	trail := [6]byte{1, 2, 3, 4, 5, 6}
	needle := buildPlayerNeedle(5, []byte("abcd"), trail)

	require.Len(t, needle, 2+4+1+6)
	assert.Equal(t, uint16(5), binary.LittleEndian.Uint16(needle[0:2]))
	assert.Equal(t, []byte("abcd"), needle[2:6])
	assert.Equal(t, byte(0), needle[6])
	assert.Equal(t, trail[:], needle[7:])
}

func TestReadU8AtAndReadI32At(t *testing.T) {
	buf := []byte{0x11, 0x01, 0x00, 0x00, 0x00}

	v, ok := readU8At(buf, 0)
	require.True(t, ok)
	assert.Equal(t, byte(0x11), v)

	_, ok = readU8At(buf, 10)
	assert.False(t, ok)

	n, ok := readI32At(buf, 1)
	require.True(t, ok)
	assert.Equal(t, int32(1), n)

	_, ok = readI32At(buf, 2)
	assert.False(t, ok)
}

func TestUint32OrZero(t *testing.T) {
	assert.Equal(t, uint32(5), uint32OrZero(5))
	assert.Equal(t, uint32(0), uint32OrZero(-1))
}

// TestBuildTeamsClustersAllies constructs a minimal 3-player diplomacy
// matrix (players at index 1 and 2 allied, player 3 hostile to both) and
// verifies the union-find clustering and derived Matchup.
func TestBuildTeamsClustersAllies(t *testing.T) {
	totalPlayers := 3
	// Each player's init block is 100 bytes apart for this synthetic layout;
	// diplomacy reads are relative to (initPos - 41).
	initPos := map[int]int{1: 1000, 2: 1100, 3: 1200}

	buf := make([]byte, 2000)
	// player 1 (idx 1): allied with 2, hostile to 3
	myDiplo1 := initPos[1] - 41
	binary.LittleEndian.PutUint32(buf[myDiplo1+4*2:], 2) // meToOther(2) == ally
	binary.LittleEndian.PutUint32(buf[myDiplo1+4*3:], 0)
	otherDiplo1 := myDiplo1 - totalPlayers
	buf[otherDiplo1+2] = 0 // otherToMe from player 2 == 0 (ally)
	buf[otherDiplo1+3] = 9 // otherToMe from player 3 != 0 (not ally)

	hdr := &rep.Header{}
	for i := 0; i < 9; i++ {
		hdr.Players[i] = &rep.Player{Slot: i, Index: -1}
	}
	for idx := range initPos {
		hdr.Players[idx] = &rep.Player{
			Slot:       idx,
			Index:      idx,
			PlayerType: repcore.PlayerTypeHuman,
		}
	}

	var playerInitPos [9]int
	for i := range playerInitPos {
		playerInitPos[i] = -1
	}
	for idx, pos := range initPos {
		playerInitPos[idx] = pos
	}

	buildTeams(hdr, buf, playerInitPos, totalPlayers)

	require.Len(t, hdr.Teams, 2)
	assert.Equal(t, []int{1, 2}, hdr.Teams[0])
	assert.Equal(t, []int{3}, hdr.Teams[1])
	assert.Equal(t, []int{1, 2}, hdr.Matchup)
}
