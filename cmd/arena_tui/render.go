package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/icedm/pkg/components"
	"github.com/gonewx/icedm/pkg/game"
	"github.com/mattn/go-runewidth"
)

// sidebarWidth 右侧计分栏宽度（列）
const sidebarWidth = 26

// 各类元素的字形
const (
	glyphPlayer = "☃"
	glyphFrozen = "🧊"
	glyphBuffed = "❄"
	glyphDead   = "✖"
	glyphBomb   = "●"
	glyphMine   = "▪"
	glyphBlast  = "✺"
	glyphPower  = "◆"
	glyphBox    = "▣"
	glyphScorch = "░"
)

// renderer 把 game.View 画到终端网格上（俯视：X → 列，Z → 行）
type renderer struct {
	screen tcell.Screen
}

// cell 世界坐标到屏幕单元格的映射
type cell struct {
	cols, rows int
	minX, minZ float64
	sx, sz     float64 // 每单位世界长度对应的列/行数
}

func newCell(v game.View, cols, rows int) cell {
	w := v.Bounds.Max[0] - v.Bounds.Min[0]
	h := v.Bounds.Max[2] - v.Bounds.Min[2]
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return cell{
		cols: cols, rows: rows,
		minX: v.Bounds.Min[0], minZ: v.Bounds.Min[2],
		sx: float64(cols-1) / w, sz: float64(rows-1) / h,
	}
}

// at 返回世界坐标所在的单元格，超出场地时 ok 为 false
func (c cell) at(x, z float64) (col, row int, ok bool) {
	col = int(math.Round((x - c.minX) * c.sx))
	row = int(math.Round((z - c.minZ) * c.sz))
	return col, row, col >= 0 && col < c.cols && row >= 0 && row < c.rows
}

func toColor(c components.Color) tcell.Color {
	ch := func(i int) int32 {
		return int32(math.Min(1, math.Max(0, c[i])) * 255)
	}
	return tcell.NewRGBColor(ch(0), ch(1), ch(2))
}

func (r *renderer) draw(v game.View) {
	r.screen.Clear()
	width, height := r.screen.Size()
	arenaCols := width - sidebarWidth - 2
	arenaRows := height - 2
	if arenaCols < 4 || arenaRows < 4 {
		r.putText(0, 0, "terminal too small", tcell.StyleDefault.Foreground(tcell.ColorRed))
		r.screen.Show()
		return
	}

	r.drawFrame(0, 0, arenaCols+2, arenaRows+2)
	grid := newCell(v, arenaCols, arenaRows)
	for _, s := range v.Sprites {
		col, row, ok := grid.at(s.Pos.X, s.Pos.Z)
		if !ok {
			continue
		}
		glyph, style := spriteGlyph(s)
		if glyph == "" {
			continue
		}
		r.putGlyph(col+1, row+1, glyph, style)
		if s.Kind == game.SpritePlayer && s.Label != "" && row+2 <= arenaRows {
			r.putText(col+1, row+2, s.Label, tcell.StyleDefault.Foreground(tcell.ColorGray))
		}
	}
	r.drawSidebar(v, arenaCols+3)
	r.screen.Show()
}

// spriteGlyph 元素的字形与样式；返回空字形表示不绘制
func spriteGlyph(s game.Sprite) (string, tcell.Style) {
	style := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(toColor(s.Color))
	switch s.Kind {
	case game.SpriteScorch:
		if s.Alpha < 0.2 {
			return "", style
		}
		return glyphScorch, style.Foreground(tcell.ColorDarkSlateGray)
	case game.SpriteLight:
		return "", style
	case game.SpriteBox:
		return glyphBox, style
	case game.SpritePower:
		return glyphPower, style.Bold(true)
	case game.SpriteBomb:
		if s.Label == "land_mine" {
			return glyphMine, style
		}
		return glyphBomb, style
	case game.SpriteBlast:
		return glyphBlast, style.Foreground(tcell.ColorLightCyan)
	case game.SpritePlayer:
		switch {
		case s.Dead:
			return glyphDead, style.Dim(true)
		case s.Frozen:
			return glyphFrozen, style
		case s.Buffed:
			return glyphBuffed, style.Bold(true).Reverse(true)
		case s.Shielded:
			return glyphPlayer, style.Underline(true)
		default:
			return glyphPlayer, style.Bold(true)
		}
	}
	return "", style
}

func (r *renderer) drawFrame(x, y, w, h int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorLightBlue)
	for i := x + 1; i < x+w-1; i++ {
		r.screen.SetContent(i, y, '─', nil, style)
		r.screen.SetContent(i, y+h-1, '─', nil, style)
	}
	for j := y + 1; j < y+h-1; j++ {
		r.screen.SetContent(x, j, '│', nil, style)
		r.screen.SetContent(x+w-1, j, '│', nil, style)
	}
	r.screen.SetContent(x, y, '┌', nil, style)
	r.screen.SetContent(x+w-1, y, '┐', nil, style)
	r.screen.SetContent(x, y+h-1, '└', nil, style)
	r.screen.SetContent(x+w-1, y+h-1, '┘', nil, style)
}

func (r *renderer) drawSidebar(v game.View, x int) {
	title := tcell.StyleDefault.Foreground(tcell.ColorLightCyan).Bold(true)
	plain := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)

	y := 1
	r.putText(x, y, "ICE DEATH MATCH", title)
	y += 2
	if v.TimeLeft >= 0 {
		r.putText(x, y, fmt.Sprintf("time  %d:%02d", int(v.TimeLeft)/60, int(v.TimeLeft)%60), plain)
		y++
	}
	r.putText(x, y, fmt.Sprintf("goal  %d", v.ScoreToWin), plain)
	y += 2

	for _, team := range v.Standings {
		style := tcell.StyleDefault.Foreground(toColor(team.Color))
		r.putText(x, y, fmt.Sprintf("%-14s %3d", truncate(team.Name, 14), team.Score), style)
		y++
		for _, p := range team.Players {
			if len(team.Players) == 1 && p.Name == team.Name {
				break
			}
			r.putText(x+2, y, fmt.Sprintf("%-10s %2d/%-2d", truncate(p.Name, 10), p.Kills, p.Deaths), dim)
			y++
		}
	}

	y++
	if v.Ended {
		msg := "DRAW"
		if v.Winner != nil {
			msg = v.Winner.Name + " WINS"
		}
		r.putText(x, y, msg, title.Reverse(true))
		y += 2
	}
	r.putText(x, y, "q / esc  quit", dim)
	r.putText(x, y+1, "r        restart", dim)
}

// putGlyph 在 (x, y) 画一个字形（ASCII 或多码点 emoji）
func (r *renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	mainc := runes[0]
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, mainc, combc, style)
	if runewidth.StringWidth(glyph) == 2 {
		// 宽字符占两列，补上第二列
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}

func (r *renderer) putText(x, y int, text string, style tcell.Style) {
	for _, ch := range text {
		r.screen.SetContent(x, y, ch, nil, style)
		x += runewidth.RuneWidth(ch)
	}
}

func truncate(s string, n int) string {
	return runewidth.Truncate(s, n, "…")
}
