package repparser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aoe2rec/aoe2rec/rep"
	"github.com/aoe2rec/aoe2rec/rep/repcore"
)

func sampleHeader() *rep.Header {
	h := &rep.Header{
		RawTag:          "VER 9.4",
		SaveVersion:     9.4,
		LogVersion:      3,
		ScenarioVersion: 1.22,
		MapSizeRaw:      3,
		PopulationLimit: 200,
		Speed:           repcore.SpeedByID(1),
		MapID:           repcore.MapIDByID(9),
		Debug: &rep.HeaderDebug{
			EarlyMoveCmds:    [][19]byte{{1, 2, 3}},
			EarlyMoveTimesMs: []uint32{1000},
		},
	}
	h.Players[1] = &rep.Player{
		NameRaw: []byte("Player1"),
		Civ:     repcore.CivByID(1),
		Index:   1,
		Slot:    1,
		ColorID: 0,
		TeamID:  1,
	}
	h.Players[2] = &rep.Player{
		NameRaw: []byte("Player2"),
		Civ:     repcore.CivByID(2),
		Index:   2,
		Slot:    2,
		ColorID: 1,
		TeamID:  2,
	}
	return h
}

func TestComputeGUIDDeterministic(t *testing.T) {
	h1 := sampleHeader()
	h2 := sampleHeader()

	assert.Equal(t, computeGUID(h1), computeGUID(h2))
}

func TestComputeGUIDChangesWithPlayerIdentity(t *testing.T) {
	h1 := sampleHeader()
	h2 := sampleHeader()
	h2.Players[1].ColorID = 7

	assert.NotEqual(t, computeGUID(h1), computeGUID(h2))
}

func TestComputeGUIDUnaffectedByEqualNameBytes(t *testing.T) {
	h1 := sampleHeader()
	h2 := sampleHeader()
	h2.Players[1].NameRaw = []byte("Player1")

	assert.Equal(t, computeGUID(h1), computeGUID(h2))
}
