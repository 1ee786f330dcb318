package repcmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeByIDKnown(t *testing.T) {
	assert.Same(t, TypeResign, TypeByID(TypeIDResign))
	assert.Same(t, TypeResearch, TypeByID(TypeIDResearch))
	assert.Same(t, TypeMove, TypeByID(TypeIDMove))
}

func TestTypeByIDUnknown(t *testing.T) {
	typ := TypeByID(0x99)
	assert.Equal(t, byte(0x99), typ.ID)
	assert.Contains(t, typ.Name, "99")
}

func TestResignCmdParams(t *testing.T) {
	rc := &ResignCmd{Base: &Base{}, Slot: 3, Disconnected: true}
	assert.Contains(t, rc.Params(), "Slot: 3")
	assert.Contains(t, rc.Params(), "Disconnected: true")
}
