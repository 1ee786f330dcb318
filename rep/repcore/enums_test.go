package repcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDialectIsAoKFamily(t *testing.T) {
	assert.True(t, DialectAoK.IsAoKFamily())
	assert.True(t, DialectAoKTrial.IsAoKFamily())
	assert.True(t, DialectAoC.IsAoKFamily())
	assert.False(t, DialectUP15.IsAoKFamily())
	assert.False(t, DialectDE.IsAoKFamily())
}

func TestDialectByMnemonic(t *testing.T) {
	assert.Same(t, DialectAoK, DialectByMnemonic(DialectAoK.ID))
	assert.Same(t, DialectUnknown, DialectByMnemonic("does-not-exist"))
}

func TestPlayerTypeIsValid(t *testing.T) {
	assert.True(t, PlayerTypeHuman.IsValid())
	assert.True(t, PlayerTypeComputer.IsValid())
	assert.True(t, PlayerTypeClosed.IsValid())
	assert.True(t, PlayerTypeOpen.IsValid())
	assert.False(t, PlayerTypeInactive.IsValid())
	assert.False(t, PlayerTypes[1].IsValid())
	assert.False(t, PlayerTypeByID(6).IsValid())
}

func TestCivIsPersianFamily(t *testing.T) {
	assert.True(t, CivByID(8).IsPersianFamily())
	assert.False(t, CivByID(1).IsPersianFamily())
}

func TestMapIDByIDUnknownFallsBack(t *testing.T) {
	m := MapIDByID(999999)
	assert.Contains(t, m.Name, "Unknown")
	assert.Equal(t, uint32(999999), m.ID)
}
