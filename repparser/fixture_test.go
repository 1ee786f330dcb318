package repparser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoe2rec/aoe2rec/errs"
)

// fixtureDir holds real recorded-game files, which are too large (and too
// encumbered) to bundle with the module. Each test below skips itself when
// its fixture is absent, so the expectations double as documentation of
// the known-good values for anyone who drops the files in.
const fixtureDir = "testdata"

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	buf, err := os.ReadFile(filepath.Join(fixtureDir, name))
	if err != nil {
		t.Skipf("fixture %s not present: %v", name, err)
	}
	return buf
}

func TestFixtureScenarios(t *testing.T) {
	cases := []struct {
		file       string
		dialectID  string
		durationMs uint32
		matchup    []int
		guid       string
		chatCount  int
		hasWinner  bool
	}{
		{
			file:       "aok_trial.mgl",
			dialectID:  "AoKTrial",
			durationMs: 1933820,
			matchup:    []int{1, 1, 1},
			guid:       "c346c0c9238f25317bbdb27246b4d56a",
		},
		{
			file:       "aok_4v4_fast.mgl",
			dialectID:  "AoK",
			durationMs: 9770100,
			matchup:    []int{4, 4},
			guid:       "f94380bd153af62786c7ad2a0e01d114",
		},
		{
			file:       "aoc10a_4v4_standard_1.mgx",
			dialectID:  "AoC10a",
			durationMs: 3235875,
			matchup:    []int{4, 4},
			guid:       "aead4c4da21c523f458be8e8399227e1",
			chatCount:  2,
			hasWinner:  true,
		},
		{
			file:       "aoc10c_1v1_with_spectator.mgx",
			dialectID:  "AoC10c",
			durationMs: 1710630,
			matchup:    []int{1, 1},
			guid:       "1e3be847550bcc56008d952c2241e7ff",
			hasWinner:  true,
		},
		{
			file:       "next_chapter_1.mgx",
			dialectID:  "AoC10c",
			durationMs: 3179880,
		},
	}

	for _, c := range cases {
		t.Run(c.file, func(t *testing.T) {
			r, err := Parse(loadFixture(t, c.file))
			require.NoError(t, err)

			require.NotNil(t, r.Header.Dialect)
			assert.Equal(t, c.dialectID, r.Header.Dialect.ID)
			assert.Equal(t, c.durationMs, r.Computed.DurationMs)
			if c.matchup != nil {
				assert.Equal(t, c.matchup, r.Header.Matchup)
			}
			if c.guid != "" {
				assert.Equal(t, c.guid, r.Computed.GUID)
			}
			if c.chatCount > 0 {
				assert.Len(t, r.Commands.Chat, c.chatCount)
			}
			if c.hasWinner {
				assert.True(t, r.Computed.HasWinner)
			}
		})
	}
}

// TestFixtureSpectatorViewsShareGUID checks that two different players'
// recordings of the same match digest to the same GUID.
func TestFixtureSpectatorViewsShareGUID(t *testing.T) {
	r1, err := Parse(loadFixture(t, "aoc10a_4v4_standard_1.mgx"))
	require.NoError(t, err)
	r2, err := Parse(loadFixture(t, "aoc10a_4v4_standard_2.mgx"))
	require.NoError(t, err)

	assert.Equal(t, "aead4c4da21c523f458be8e8399227e1", r1.Computed.GUID)
	assert.Equal(t, r1.Computed.GUID, r2.Computed.GUID)
}

func TestFixtureDefinitiveEditionRejected(t *testing.T) {
	_, err := Parse(loadFixture(t, "de-63.0.aoe2record"))

	require.Error(t, err)
	var uv *errs.UnsupportedVersionError
	assert.True(t, errors.As(err, &uv))
}

// TestFixtureParseTwiceIsDeterministic re-parses the same buffer and
// compares the externally visible results.
func TestFixtureParseTwiceIsDeterministic(t *testing.T) {
	buf := loadFixture(t, "aoc10a_4v4_standard_1.mgx")

	r1, err := Parse(buf)
	require.NoError(t, err)
	r2, err := Parse(buf)
	require.NoError(t, err)

	assert.Equal(t, r1.Computed.GUID, r2.Computed.GUID)
	assert.Equal(t, r1.Computed.DurationMs, r2.Computed.DurationMs)
	assert.Equal(t, r1.Header.Matchup, r2.Header.Matchup)
	assert.Equal(t, len(r1.Commands.Chat), len(r2.Commands.Chat))
}
