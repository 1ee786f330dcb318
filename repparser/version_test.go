package repparser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aoe2rec/aoe2rec/rep/repcore"
)

func TestClassifyDialect(t *testing.T) {
	cases := []struct {
		name string
		tag  string
		save float32
		log  uint32
		want *repcore.Dialect
	}{
		{"AoK", "VER 9.3", 9.3, 0, repcore.DialectAoK},
		{"AoK trial always wins over AoC trial", "TRL 9.3", 9.3, 0, repcore.DialectAoKTrial},
		{"AoC 1.0a via log 0", "VER 9.4", 9.4, 0, repcore.DialectAoC10a},
		{"AoC 1.0a via log 3", "VER 9.4", 9.4, 3, repcore.DialectAoC10a},
		{"AoC 1.0c via log 4", "VER 9.4", 9.4, 4, repcore.DialectAoC10c},
		{"plain AoC", "VER 9.4", 9.4, 7, repcore.DialectAoC},
		{"HD by save version", "VER 9.4", 11.9, 7, repcore.DialectHD},
		{"DE by log version", "VER 9.4", 9.4, 5, repcore.DialectDE},
		{"DE by save version", "VER 9.4", 13.0, 7, repcore.DialectDE},
		{"AoFE21", "VER 9.5", 9.5, 0, repcore.DialectAoFE21},
		{"UP1.2", "VER 9.8", 9.8, 0, repcore.DialectUP12},
		{"UP1.3", "VER 9.9", 9.9, 0, repcore.DialectUP13},
		{"UP1.4RC1", "VER 9.A", 9.9, 0, repcore.DialectUP14RC1},
		{"UP1.4RC2", "VER 9.B", 9.9, 0, repcore.DialectUP14RC2},
		{"UP1.4 (C)", "VER 9.C", 9.9, 0, repcore.DialectUP14},
		{"UP1.4 (D)", "VER 9.D", 9.9, 0, repcore.DialectUP14},
		{"UP1.5 (E)", "VER 9.E", 9.9, 0, repcore.DialectUP15},
		{"UP1.5 (F)", "VER 9.F", 9.9, 0, repcore.DialectUP15},
		{"MCP", "MCP 9.F", 9.9, 0, repcore.DialectMCP},
		{"unrecognized tag", "ZZZ 0.0", 0, 0, repcore.DialectUnknown},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := classifyDialect(c.tag, c.save, c.log)
			assert.Same(t, c.want, got)
		})
	}
}

func TestCheckVersionSupported(t *testing.T) {
	assert.NoError(t, checkVersionSupported(9.3))
	assert.NoError(t, checkVersionSupported(9.4))
	assert.Error(t, checkVersionSupported(11.7601))
	assert.Error(t, checkVersionSupported(13.0))
	assert.Error(t, checkVersionSupported(-1))
}
