package video

import (
	"github.com/mbrannon/gbcore/addr"
	"github.com/mbrannon/gbcore/bit"
)

// mode identifies one of the four PPU states, matching the two low bits
// of STAT.
const (
	modeHBlank   uint8 = 0
	modeVBlank   uint8 = 1
	modeOAM      uint8 = 2
	modeTransfer uint8 = 3
)

// cyclesPerLine is the total dot budget of one scanline (OAM scan +
// pixel transfer + H-blank).
const cyclesPerLine = 456

// Bus is the subset of memory.MMU the PPU needs: raw VRAM/OAM/register
// access (bypassing bank routing, since none of these addresses are
// banked) plus interrupt requests.
type Bus interface {
	Peek(address uint16) uint8
	Poke(address uint16, value uint8)
	RequestInterrupt(i addr.Interrupt)
}

// PPU implements the pixel pipeline: the mode state machine driven by a
// per-scanline dot budget, and the background/window/sprite compositor
// that fills Frame once per scanline.
type PPU struct {
	bus        Bus
	dotCounter int

	Frame FrameBuffer

	bgColorIndex [Width]uint8
}

// New returns a PPU wired to bus, with the dot counter primed for the
// first scanline.
func New(bus Bus) *PPU {
	return &PPU{bus: bus, dotCounter: cyclesPerLine}
}

// Tick advances the PPU by cycles CPU cycles.
func (p *PPU) Tick(cycles int) {
	p.setMode()

	lcdc := p.bus.Peek(addr.LCDC)
	if !bit.IsSet(7, lcdc) {
		p.bus.Poke(addr.LY, 0)
		p.dotCounter = cyclesPerLine
		return
	}

	p.dotCounter -= cycles
	if p.dotCounter > 0 {
		return
	}
	p.dotCounter += cyclesPerLine

	ly := p.bus.Peek(addr.LY) + 1
	p.bus.Poke(addr.LY, ly)

	if ly == 144 {
		p.bus.RequestInterrupt(addr.VBlankInterrupt)
		if bit.IsSet(4, p.bus.Peek(addr.STAT)) {
			p.bus.RequestInterrupt(addr.LCDSTATInterrupt)
		}
	}

	if ly > 153 {
		ly = 0
		p.bus.Poke(addr.LY, 0)
	}

	if ly < 144 {
		p.drawScanline(ly)
	}
}

// setMode recomputes STAT's mode bits and coincidence flag from the
// current LY and dot budget, requesting a STAT interrupt on a mode
// transition or LY==LYC coincidence whose corresponding enable bit is
// set.
func (p *PPU) setMode() {
	lcdc := p.bus.Peek(addr.LCDC)
	stat := p.bus.Peek(addr.STAT)
	ly := p.bus.Peek(addr.LY)

	var newMode uint8
	switch {
	case !bit.IsSet(7, lcdc):
		newMode = modeVBlank
		ly = 0
		p.bus.Poke(addr.LY, 0)
	case ly >= 144:
		newMode = modeVBlank
	case p.dotCounter >= 376:
		newMode = modeOAM
	case p.dotCounter >= 204:
		newMode = modeTransfer
	default:
		newMode = modeHBlank
	}

	if newMode != stat&0x03 {
		var enableBit uint8
		var hasEnable bool
		switch newMode {
		case modeHBlank:
			enableBit, hasEnable = 3, true
		case modeVBlank:
			enableBit, hasEnable = 4, true
		case modeOAM:
			enableBit, hasEnable = 5, true
		}
		if hasEnable && bit.IsSet(enableBit, stat) {
			p.bus.RequestInterrupt(addr.LCDSTATInterrupt)
		}
	}

	stat = (stat &^ 0x03) | newMode

	if ly == p.bus.Peek(addr.LYC) {
		stat = bit.Set(2, stat)
		if bit.IsSet(6, stat) {
			p.bus.RequestInterrupt(addr.LCDSTATInterrupt)
		}
	} else {
		stat = bit.Reset(2, stat)
	}

	p.bus.Poke(addr.STAT, stat)
}

// drawScanline renders background, window, and sprites into row ly of
// Frame.
func (p *PPU) drawScanline(ly uint8) {
	lcdc := p.bus.Peek(addr.LCDC)

	if bit.IsSet(0, lcdc) {
		p.drawBackgroundAndWindow(ly, lcdc)
	} else {
		for x := 0; x < Width; x++ {
			p.bgColorIndex[x] = 0
			p.Frame.Set(x, int(ly), shadeColors[ShadeWhite])
		}
	}

	if bit.IsSet(1, lcdc) {
		p.drawSprites(ly, lcdc)
	}
}

func (p *PPU) drawBackgroundAndWindow(ly uint8, lcdc uint8) {
	scy := p.bus.Peek(addr.SCY)
	scx := p.bus.Peek(addr.SCX)
	wy := p.bus.Peek(addr.WY)
	wx := p.bus.Peek(addr.WX)
	bgp := p.bus.Peek(addr.BGP)

	windowEnabled := bit.IsSet(5, lcdc) && wy <= ly

	bgMap := addr.TileMap0
	if bit.IsSet(3, lcdc) {
		bgMap = addr.TileMap1
	}
	windowMap := addr.TileMap0
	if bit.IsSet(6, lcdc) {
		windowMap = addr.TileMap1
	}

	for x := 0; x < Width; x++ {
		useWindow := windowEnabled && x+7 >= int(wx)

		var tileMap uint16
		var tileY, tileX uint8
		if useWindow {
			tileMap = windowMap
			tileY = ly - wy
			tileX = uint8(x + 7 - int(wx))
		} else {
			tileMap = bgMap
			tileY = scy + ly
			tileX = scx + uint8(x)
		}

		tileRow := uint16(tileY / 8)
		tileCol := uint16(tileX / 8)
		tileIndex := p.bus.Peek(tileMap + tileRow*32 + tileCol)

		tileAddr := p.tileDataAddress(tileIndex, lcdc)
		tileAddr += uint16(tileY%8) * 2

		low := p.bus.Peek(tileAddr)
		high := p.bus.Peek(tileAddr + 1)
		colorBit := 7 - (tileX % 8)
		colorIndex := (bit.ExtractBits(high, colorBit, colorBit) << 1) | bit.ExtractBits(low, colorBit, colorBit)

		p.bgColorIndex[x] = colorIndex
		p.Frame.Set(x, int(ly), resolvePalette(bgp, colorIndex))
	}
}

// tileDataAddress resolves a tile index to its base VRAM address using
// the background/window addressing mode selected by LCDC bit 4: unsigned
// 0-255 against 0x8000, or signed -128..127 against the 0x9000 zero
// point.
func (p *PPU) tileDataAddress(tileIndex uint8, lcdc uint8) uint16 {
	if bit.IsSet(4, lcdc) {
		return addr.TileData0 + uint16(tileIndex)*16
	}
	return uint16(int32(addr.TileData2) + int32(int8(tileIndex))*16)
}

type spriteAttrs struct {
	y, x, tile, flags uint8
}

func (p *PPU) drawSprites(ly uint8, lcdc uint8) {
	height := 8
	if bit.IsSet(2, lcdc) {
		height = 16
	}

	for i := uint16(0); i < 40; i++ {
		base := addr.OAMStart + i*4
		s := spriteAttrs{
			y:     p.bus.Peek(base),
			x:     p.bus.Peek(base + 1),
			tile:  p.bus.Peek(base + 2),
			flags: p.bus.Peek(base + 3),
		}

		spriteTop := int(s.y) - 16
		line := int(ly) - spriteTop
		if line < 0 || line >= height {
			continue
		}
		if bit.IsSet(6, s.flags) { // Y-flip
			line = height - 1 - line
		}

		tile := s.tile
		if height == 16 {
			tile &= 0xFE
			if line >= 8 {
				tile++
				line -= 8
			}
		}

		tileAddr := addr.TileData0 + uint16(tile)*16 + uint16(line)*2
		low := p.bus.Peek(tileAddr)
		high := p.bus.Peek(tileAddr + 1)

		palette := addr.OBP0
		if bit.IsSet(4, s.flags) {
			palette = addr.OBP1
		}
		obp := p.bus.Peek(palette)

		for col := 0; col < 8; col++ {
			screenX := int(s.x) - 8 + col
			if screenX < 0 || screenX >= Width {
				continue
			}

			srcCol := col
			if bit.IsSet(5, s.flags) { // X-flip
				srcCol = 7 - col
			}
			colorBit := uint8(7 - srcCol)
			colorIndex := (bit.ExtractBits(high, colorBit, colorBit) << 1) | bit.ExtractBits(low, colorBit, colorBit)
			if colorIndex == 0 {
				continue // transparent
			}
			if bit.IsSet(7, s.flags) && p.bgColorIndex[screenX] != 0 {
				continue // BG-over-OBJ priority
			}

			p.Frame.Set(screenX, int(ly), resolvePalette(obp, colorIndex))
		}
	}
}
