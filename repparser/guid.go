// This file implements the GUID digester: an MD5 fingerprint over a
// fixed projection of header and early-body fields, chosen so that two
// different spectators' recordings of the same match hash identically
// even though each file's body and exact byte layout differ.

package repparser

import (
	"crypto/md5"
	"encoding/binary"
	"encoding/hex"
	"math"

	"github.com/aoe2rec/aoe2rec/rep"
)

// computeGUID hashes the fields listed in the GUID projection, in order,
// each appended only when present.
func computeGUID(h *rep.Header) string {
	d := md5.New()

	d.Write([]byte(h.RawTag))
	writeF32(d, h.SaveVersion)
	writeU32(d, h.LogVersion)
	writeF32(d, h.ScenarioVersion)
	writeU32(d, h.MapSizeRaw)
	writeU32(d, h.PopulationLimit)
	if h.Speed != nil {
		writeU32(d, h.Speed.ID)
	}
	if h.MapID != nil {
		writeU32(d, h.MapID.ID)
	}

	if h.Debug != nil {
		for _, fp := range h.Debug.EarlyMoveCmds {
			d.Write(fp[:])
		}
		for _, t := range h.Debug.EarlyMoveTimesMs {
			writeU32(d, t)
		}
	}

	for _, p := range h.Players {
		if p == nil {
			continue
		}
		d.Write(p.NameRaw)
		if p.Civ != nil {
			d.Write([]byte{p.Civ.ID})
		}
		writeU32(d, uint32(int32(p.Index)))
		var slot [8]byte
		binary.LittleEndian.PutUint64(slot[:], uint64(p.Slot))
		d.Write(slot[:])
		d.Write([]byte{p.ColorID})
		writeU32(d, uint32(int32(p.TeamID)))
	}

	return hex.EncodeToString(d.Sum(nil))
}

func writeU32(d interface{ Write([]byte) (int, error) }, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	d.Write(b[:])
}

func writeF32(d interface{ Write([]byte) (int, error) }, v float32) {
	writeU32(d, math.Float32bits(v))
}
