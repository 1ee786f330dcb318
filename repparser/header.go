// This file implements the header walk, the anchor locator, the player
// init resolver and the diplomacy/team builder. All
// four operate on the single inflated header buffer and share state
// (positions, per-player search needles) closely enough that splitting
// them into separate cursors would only duplicate bookkeeping, so they
// run as one scripted pass.

package repparser

import (
	"bytes"
	"encoding/binary"
	"sort"

	"github.com/aoe2rec/aoe2rec/errs"
	"github.com/aoe2rec/aoe2rec/rep"
	"github.com/aoe2rec/aoe2rec/rep/repcore"
)

var (
	triggerNeedle      = []byte{0x9a, 0x99, 0x99, 0x99, 0x99, 0x99, 0xf9, 0x3f}
	settingsNeedle     = []byte{0x9d, 0xff, 0xff, 0xff}
	scenarioNeedleAoK  = []byte{0x9a, 0x99, 0x99, 0x3f} // float 1.20
	scenarioNeedleLate = []byte{0xf6, 0x28, 0x9c, 0x3f} // float 1.22
)

const (
	disabledTechsOffset = 5456
	victoryOffset       = 12544 + 44
	easySkipMargin      = 35100
	playerInitStride    = 1817
)

// parseHeader walks the inflated header buffer to completion: version tag,
// AI block, replay settings, map geometry, trigger table, lobby, victory
// conditions, scenario text, per-player settings and init blocks, and the
// diplomacy-derived team clustering. bodyBuf is only consulted for its
// leading u32 (the log-version peek that feeds classification).
func parseHeader(headerBuf, bodyBuf []byte, cfg Config) (*rep.Header, []rep.Chat, error) {
	hc := newCursor(headerBuf, 0)

	tagBytes := hc.current()
	if len(tagBytes) < 8 {
		return nil, nil, errs.NewTruncatedError("header too small for version tag", hc.tell())
	}
	tagRaw := string(bytes.TrimRight(tagBytes[:8], "\x00"))
	hc.mov(8)

	saveFloat, _ := hc.getF32()
	var save2 *uint32
	if saveFloat == -1.0 {
		if v, ok := hc.getU32(); ok {
			save2 = &v
		}
	}

	var logVersion uint32
	if len(bodyBuf) >= 4 {
		logVersion = binary.LittleEndian.Uint32(bodyBuf[:4])
	}

	dialect := classifyDialect(tagRaw, saveFloat, logVersion)
	if err := checkVersionSupported(saveFloat); err != nil {
		return nil, nil, err
	}
	notAoK := dialect != repcore.DialectAoK
	isAoKFamilyForScenario := dialect == repcore.DialectAoK || dialect == repcore.DialectAoKTrial

	aiPos := hc.tell()
	includeAI, _ := hc.getBool(4)
	if includeAI {
		hc.mov(2)
		numAIStrings, _ := hc.getU16()
		hc.mov(4)
		for i := 0; i < int(numAIStrings); i++ {
			strLen, _ := hc.getU32()
			hc.mov(int(strLen))
		}
		hc.mov(6)
		const ruleSize = 16 + 16*24
		for i := 0; i < 8; i++ {
			hc.mov(10)
			numRules, _ := hc.getU16()
			hc.mov(4)
			hc.mov(int(numRules) * ruleSize)
		}
		hc.mov(104 + 320 + 1024)
		hc.mov(4096)
	}

	hc.mov(12)
	speedRaw, _ := hc.getU32()
	hc.mov(29)
	recorderSlot, _ := hc.getU16()
	totalPlayers, _ := hc.getU8()
	var instantBuild, enableCheats bool
	if notAoK {
		instantBuild, _ = hc.getBool(1)
		enableCheats, _ = hc.getBool(1)
	}
	hc.mov(2 + 58)

	mapX, _ := hc.getI32()
	mapY, _ := hc.getI32()
	if mapX < 0 || mapY < 0 {
		return nil, nil, errs.NewMapInvalidError("negative map size", hc.tell())
	}
	if mapX > 10000 || mapY > 10000 {
		return nil, nil, errs.NewMapInvalidError("map size too large", hc.tell())
	}
	if mapX != mapY {
		return nil, nil, errs.NewMapInvalidError("map is not square", hc.tell())
	}
	mapBits := int(mapX) * int(mapY)

	numZones, _ := hc.getI32()
	for i := 0; i < int(numZones); i++ {
		hc.mov(1275 + mapBits)
		numFloats, _ := hc.getI32()
		hc.mov(int(numFloats)*4 + 4)
	}

	fogOfWar, _ := hc.getBool(1)
	hc.mov(1)
	mapPos := hc.tell()
	tileStride := 2
	if b, ok := hc.peekU8(); ok && b == 0xff {
		tileStride = 4
	}
	hc.mov(mapBits * tileStride)

	numData, _ := hc.getI32()
	hc.mov(4 + 4*int(numData))
	for i := 0; i < int(numData); i++ {
		numObstructions, _ := hc.getI32()
		hc.mov(8 * int(numObstructions))
	}
	visW, _ := hc.getI32()
	visH, _ := hc.getI32()
	hc.mov(int(visW) * int(visH) * 4)
	hc.mov(4) // restore-time, not retained
	numParticles, _ := hc.getU32()
	hc.mov(27*int(numParticles) + 4)

	initPos := hc.tell()
	if dialect == repcore.DialectAoKTrial {
		initPos += 4
	}

	matchPos, ok := hc.rfind(triggerNeedle, 0, len(hc.data()))
	if !ok {
		return nil, nil, errs.NewAnchorMissingError("trigger")
	}
	triggerPos := matchPos + len(triggerNeedle)

	hc.seek(triggerPos)
	hc.mov(1)
	numTriggers, _ := hc.getI32()
	for i := 0; i < int(numTriggers); i++ {
		hc.mov(4 + 2 + 12)
		if descLen, _ := hc.getI32(); descLen > 0 {
			hc.mov(int(descLen))
		}
		if nameLen, _ := hc.getI32(); nameLen > 0 {
			hc.mov(int(nameLen))
		}
		numEffects, _ := hc.getI32()
		for e := 0; e < int(numEffects); e++ {
			hc.mov(24)
			numSelected, _ := hc.getI32()
			if numSelected == -1 {
				numSelected = 0
			}
			hc.mov(72)
			if textLen, _ := hc.getI32(); textLen > 0 {
				hc.mov(int(textLen))
			}
			if soundLen, _ := hc.getI32(); soundLen > 0 {
				hc.mov(int(soundLen))
			}
			hc.mov(4 * int(numSelected))
		}
		numConditions, _ := hc.getI32()
		hc.mov(int(numConditions) * (72 + 4))
	}
	if numTriggers > 0 {
		hc.mov(4 * int(numTriggers))
	}

	var teamIDs [9]byte
	for i := 1; i < 9; i++ {
		teamIDs[i], _ = hc.getU8()
	}
	hc.mov(1)
	revealMapRaw, _ := hc.getI32()
	hc.mov(4) // fog-of-war lobby flag, not retained (redundant with the earlier fog-of-war read)
	mapSizeRaw, _ := hc.getU32()
	popLimit, _ := hc.getU32()
	if popLimit <= 40 {
		popLimit *= 25
	}
	var gameTypeRaw byte
	var lockDiplomacy bool
	var lobbyChat []rep.Chat
	if notAoK {
		gameTypeRaw, _ = hc.getU8()
		lockDiplomacy, _ = hc.getBool(1)
		totalChats, _ := hc.getI32()
		for i := 0; i < int(totalChats); i++ {
			if msg, ok := hc.extractStrL32(); ok {
				lobbyChat = append(lobbyChat, rep.Chat{ContentRaw: msg, Content: decodeText(msg)})
			}
		}
	}

	settingsMatch, ok := hc.rfind(settingsNeedle, 0, triggerPos)
	if !ok {
		return nil, nil, errs.NewAnchorMissingError("settings")
	}
	settingsPos := settingsMatch
	disabledTechsPos := settingsPos - disabledTechsOffset
	victoryPos := disabledTechsPos - victoryOffset

	hc.seek(victoryPos)
	hc.mov(4)
	isConquest, _ := hc.getBool(4)
	hc.mov(4)
	relicsToWin, _ := hc.getI32()
	hc.mov(4)
	exploredToWin, _ := hc.getI32()
	hc.mov(4)
	anyOrAll, _ := hc.getBool(4)
	victoryModeRaw, _ := hc.getI32()
	scoreToWin, _ := hc.getI32()
	timeToWinRaw, _ := hc.getI32()

	scenarioNeedle := scenarioNeedleLate
	if isAoKFamilyForScenario {
		scenarioNeedle = scenarioNeedleAoK
	}
	scenarioMatch, ok := hc.rfind(scenarioNeedle, 0, victoryPos)
	if !ok {
		return nil, nil, errs.NewAnchorMissingError("scenario")
	}
	scenarioPos := scenarioMatch - 4

	hc.seek(scenarioPos)
	hc.mov(4)
	scenarioVersion, _ := hc.getF32()
	hc.mov(16*256 + 16*4 + 16*16 + 5 + 4)
	scenarioFilenameRaw, _ := hc.extractStrL16()
	hc.mov(4 * 5)
	if notAoK {
		hc.mov(4)
	}
	instructionsRaw, _ := hc.extractStrL16()

	trailBasePos := initPos + 2 + int(totalPlayers) + 36 + 4 + 1
	hc.seek(trailBasePos)
	hc.extractStrL16()
	var trailTypes [6]byte
	if cur := hc.current(); len(cur) >= 6 {
		copy(trailTypes[:], cur[:6])
	}

	hc.seek(settingsPos)
	hc.mov(4 + 8)
	var mapID *repcore.MapID
	if notAoK {
		mapIDRaw, _ := hc.getU32()
		mapID = repcore.MapIDByID(mapIDRaw)
	}
	difficultyRaw, _ := hc.getI32()
	lockTeams, _ := hc.getBool(4)

	var playerIndex [9]int32
	var playerTypeRaw [9]int32
	var names [9][]byte
	var needles [9][]byte
	for i := 0; i < 9; i++ {
		idx, _ := hc.getI32()
		ptype, _ := hc.getI32()
		nameLen, okLen := hc.peekI32()
		if okLen && nameLen >= 0 && int(nameLen) <= len(hc.current())-4 {
			nameBytes := hc.current()[4 : 4+int(nameLen)]
			needles[i] = buildPlayerNeedle(int16(nameLen+1), nameBytes, trailTypes)
		}
		nameRaw, _ := hc.extractStrL32()
		playerIndex[i] = idx
		playerTypeRaw[i] = ptype
		names[i] = nameRaw
	}

	hdr := &rep.Header{
		RawTag:              tagRaw,
		SaveVersion:         saveFloat,
		SaveVersion2:        save2,
		LogVersion:          logVersion,
		ScenarioVersion:     scenarioVersion,
		Dialect:             dialect,
		Speed:               repcore.SpeedByID(speedRaw),
		PopulationLimit:     popLimit,
		MapSizeRaw:          mapSizeRaw,
		MapID:               mapID,
		MapX:                mapX,
		MapY:                mapY,
		RevealMap:           repcore.RevealMapByID(revealMapRaw),
		FogOfWar:            fogOfWar,
		InstantBuild:        instantBuild,
		EnableCheats:        enableCheats,
		LockTeams:           lockTeams,
		LockDiplomacy:       lockDiplomacy,
		Difficulty:          repcore.DifficultyByID(difficultyRaw),
		IsConquest:          isConquest,
		VictoryType:         repcore.VictoryTypeByID(victoryModeRaw),
		RelicsToWin:         uint32OrZero(relicsToWin),
		ExploredToWin:       uint32OrZero(exploredToWin),
		ScoreToWin:          uint32OrZero(scoreToWin),
		TimeToWinRaw:        uint32OrZero(timeToWinRaw),
		AnyOrAll:            anyOrAll,
		ScenarioFilename:    decodeText(scenarioFilenameRaw),
		ScenarioFilenameRaw: scenarioFilenameRaw,
		Instructions:        decodeText(instructionsRaw),
		InstructionsRaw:     instructionsRaw,
		RecorderSlot:        recorderSlot,
		TotalPlayers:        totalPlayers,
		IncludeAI:           includeAI,
	}
	if notAoK {
		hdr.GameType = repcore.GameTypeByID(gameTypeRaw)
	}

	for i := 0; i < 9; i++ {
		p := &rep.Player{
			Slot:       i,
			Index:      int(playerIndex[i]),
			PlayerType: repcore.PlayerTypeByID(byte(playerTypeRaw[i])),
			NameRaw:    names[i],
			Name:       decodeText(names[i]),
		}
		if i >= 1 {
			p.TeamID = int(teamIDs[i])
		}
		hdr.Players[i] = p
	}

	basePos := initPos + 2 + int(totalPlayers) + 36 + 4 + 1
	hc.seek(basePos)
	easySkipStart := hc.tell() + easySkipMargin + mapBits

	searchEndBase := len(hc.data())
	switch {
	case scenarioPos != 0:
		searchEndBase = scenarioPos
	case victoryPos != 0:
		searchEndBase = victoryPos
	case disabledTechsPos != 0:
		searchEndBase = disabledTechsPos
	case settingsPos != 0:
		searchEndBase = settingsPos
	}
	searchEndPos := searchEndBase - int(totalPlayers)*playerInitStride

	var playerInitPos [9]int
	for i := range playerInitPos {
		playerInitPos[i] = -1
	}
	for i := 1; i < 9; i++ {
		p := hdr.Players[i]
		idx := p.Index
		if !p.IsValid() || idx < 0 || idx > 8 || playerInitPos[idx] != -1 {
			continue
		}
		needle := needles[i]
		if needle == nil {
			continue
		}
		pos, found := hc.find(needle, easySkipStart, searchEndPos)
		if found {
			playerInitPos[idx] = pos
			hc.seek(pos)
			easySkipStart = hc.tell()
		}
	}

	for i := 0; i < 9; i++ {
		p := hdr.Players[i]
		if p.Index < 0 || p.Index > 8 {
			continue
		}
		pos := playerInitPos[p.Index]
		if !p.IsValid() || pos < 0 {
			continue
		}
		parsePlayerInit(hc, p, pos, dialect, notAoK)
	}

	hdr.Debug = &rep.HeaderDebug{
		AIPos:            aiPos,
		InitPos:          initPos,
		TriggerPos:       triggerPos,
		SettingsPos:      settingsPos,
		DisabledTechsPos: disabledTechsPos,
		VictoryPos:       victoryPos,
		ScenarioPos:      scenarioPos,
		MapPos:           mapPos,
		PlayerInitPos:    playerInitPos,
	}
	if cfg.Debug {
		hdr.Debug.Data = headerBuf
	}

	buildTeams(hdr, headerBuf, playerInitPos, int(totalPlayers))

	return hdr, lobbyChat, nil
}

func uint32OrZero(v int32) uint32 {
	if v < 0 {
		return 0
	}
	return uint32(v)
}

// buildPlayerNeedle constructs the search needle used to locate a player's
// init block: a u16 length prefix, the name bytes, a NUL terminator and the
// trailing-type bytes shared by every player's init header.
func buildPlayerNeedle(length int16, name []byte, trail [6]byte) []byte {
	needle := make([]byte, 0, 2+len(name)+1+len(trail))
	var lb [2]byte
	binary.LittleEndian.PutUint16(lb[:], uint16(length))
	needle = append(needle, lb[:]...)
	needle = append(needle, name...)
	needle = append(needle, 0)
	needle = append(needle, trail[:]...)
	return needle
}

func parsePlayerInit(hc *cursor, p *rep.Player, pos int, dialect *repcore.Dialect, notAoK bool) {
	hc.seek(pos)
	mainOpName, _ := hc.extractStrL16()
	p.IsMainOp = bytes.Equal(mainOpName, p.NameRaw)
	hc.mov(6)
	p.InitFood, _ = hc.getF32()
	p.InitWood, _ = hc.getF32()
	p.InitStone, _ = hc.getF32()
	p.InitGold, _ = hc.getF32()
	hc.mov(8)
	p.InitAgeRaw, _ = hc.getF32()
	hc.mov(16)
	p.InitPop, _ = hc.getF32()
	hc.mov(100)
	p.InitCivilian, _ = hc.getF32()
	hc.mov(8)
	p.InitMilitary, _ = hc.getF32()
	hc.mov(756 - 41*4)
	if notAoK {
		hc.mov(36)
	}
	if dialect == repcore.DialectUP15 || dialect == repcore.DialectMCP {
		mv, _ := hc.getF32()
		p.ModVersion = &mv
		hc.mov(4*6 + 4*7 + 4*28)
	}
	hc.mov(1)
	p.InitPos.X, _ = hc.getF32()
	p.InitPos.Y, _ = hc.getF32()
	if notAoK {
		if numSavedViews, _ := hc.getI32(); numSavedViews > 0 {
			hc.mov(int(numSavedViews) * 8)
		}
	}
	hc.mov(5)
	civRaw, _ := hc.getU8()
	hc.mov(3)
	colorID, _ := hc.getU8()

	p.Civ = repcore.CivByID(civRaw)
	p.ColorID = colorID
	p.Color = repcore.ColorByID(colorID)
}

// buildTeams implements the diplomacy matrix walk and union-find team
// clustering: two players are allies iff the other player's u8 entry
// towards this one is 0 and this player's i32 entry towards the other
// is 2 ("ally").
func buildTeams(hdr *rep.Header, headerBuf []byte, playerInitPos [9]int, totalPlayers int) {
	parent := make([]int, 9)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}

	present := map[int]bool{}
	for i := 0; i < 9; i++ {
		p := hdr.Players[i]
		if p.IsValid() && p.Index >= 0 && p.Index <= 8 && playerInitPos[p.Index] != -1 {
			present[p.Index] = true
		}
	}

	for idx := range present {
		myDiploPos := playerInitPos[idx] - 41
		otherDiploPos := myDiploPos - totalPlayers
		for j := idx + 1; j <= 8; j++ {
			otherToMe, ok1 := readU8At(headerBuf, otherDiploPos+j)
			meToOther, ok2 := readI32At(headerBuf, myDiploPos+4*j)
			if ok1 && ok2 && otherToMe == 0 && meToOther == 2 {
				union(idx, j)
			}
		}
	}

	byRoot := map[int][]int{}
	for idx := range present {
		r := find(idx)
		byRoot[r] = append(byRoot[r], idx)
	}
	roots := make([]int, 0, len(byRoot))
	for r := range byRoot {
		roots = append(roots, r)
	}
	sort.Ints(roots)

	teams := make([][]int, 0, len(roots))
	for _, r := range roots {
		members := byRoot[r]
		sort.Ints(members)
		teams = append(teams, members)
	}
	matchup := make([]int, 0, len(teams))
	for _, t := range teams {
		matchup = append(matchup, len(t))
	}
	sort.Ints(matchup)

	hdr.Teams = teams
	hdr.Matchup = matchup
}

func readU8At(buf []byte, pos int) (byte, bool) {
	if pos < 0 || pos >= len(buf) {
		return 0, false
	}
	return buf[pos], true
}

func readI32At(buf []byte, pos int) (int32, bool) {
	if pos < 0 || pos+4 > len(buf) {
		return 0, false
	}
	return int32(binary.LittleEndian.Uint32(buf[pos : pos+4])), true
}
