package app

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gonewx/icedm/pkg/components"
	"github.com/gonewx/icedm/pkg/fx"
	"github.com/gonewx/icedm/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	hudWidth     = 200 // 右侧计分栏宽度
	arenaPadding = 20
)

// cameraShake 接收镜头震动请求，按时间衰减
type cameraShake struct {
	intensity float64
	phase     float64
}

func (c *cameraShake) Emit(fx.Particles) {}
func (c *cameraShake) PlaySound(fx.Sound) {}

func (c *cameraShake) CameraShake(intensity float64) {
	c.intensity = math.Max(c.intensity, intensity)
}

func (c *cameraShake) update(deltaTime float64) {
	c.phase += deltaTime * 40
	c.intensity = math.Max(0, c.intensity-deltaTime*12)
}

// offset 当前帧的画面偏移（像素）
func (c *cameraShake) offset() (float64, float64) {
	return math.Sin(c.phase) * c.intensity, math.Cos(c.phase*1.3) * c.intensity
}

// projection 俯视投影：世界 X → 屏幕 x，世界 Z → 屏幕 y
type projection struct {
	scale          float64
	originX, origY float64
	minX, minZ     float64
}

func newProjection(v game.View, shakeX, shakeY float64) projection {
	w := v.Bounds.Max[0] - v.Bounds.Min[0]
	h := v.Bounds.Max[2] - v.Bounds.Min[2]
	availW := float64(WindowWidth - hudWidth - 2*arenaPadding)
	availH := float64(WindowHeight - 2*arenaPadding)
	scale := math.Min(availW/w, availH/h)
	return projection{
		scale:   scale,
		originX: arenaPadding + (availW-w*scale)/2 + shakeX,
		origY:   arenaPadding + (availH-h*scale)/2 + shakeY,
		minX:    v.Bounds.Min[0],
		minZ:    v.Bounds.Min[2],
	}
}

func (p projection) point(x, z float64) (float32, float32) {
	return float32(p.originX + (x-p.minX)*p.scale), float32(p.origY + (z-p.minZ)*p.scale)
}

func (p projection) length(l float64) float32 {
	return float32(l * p.scale)
}

func toRGBA(c components.Color, tint components.Color, alpha float64) color.NRGBA {
	ch := func(i int) uint8 {
		return uint8(math.Min(1, math.Max(0, c[i]*tint[i])) * 255)
	}
	return color.NRGBA{R: ch(0), G: ch(1), B: ch(2), A: uint8(math.Min(1, math.Max(0, alpha)) * 255)}
}

// drawView 绘制一帧
func drawView(screen *ebiten.Image, v game.View, local *game.Player, shakeX, shakeY float64) {
	screen.Fill(color.RGBA{R: 18, G: 24, B: 36, A: 255})
	tint := v.Tint
	if tint == (components.Color{}) {
		tint = components.Color{1, 1, 1}
	}

	proj := newProjection(v, shakeX, shakeY)
	x0, y0 := proj.point(v.Bounds.Min[0], v.Bounds.Min[2])
	x1, y1 := proj.point(v.Bounds.Max[0], v.Bounds.Max[2])
	vector.DrawFilledRect(screen, x0, y0, x1-x0, y1-y0, toRGBA(components.Color{0.75, 0.85, 0.9}, tint, 1), false)
	vector.StrokeRect(screen, x0, y0, x1-x0, y1-y0, 2, color.RGBA{R: 200, G: 230, B: 255, A: 255}, false)

	for _, s := range v.Sprites {
		cx, cy := proj.point(s.Pos.X, s.Pos.Z)
		r := proj.length(s.Radius)

		switch s.Kind {
		case game.SpriteScorch:
			vector.DrawFilledCircle(screen, cx, cy, r, color.NRGBA{R: 40, G: 50, B: 70, A: uint8(120 * s.Alpha)}, true)
		case game.SpriteLight:
			vector.DrawFilledCircle(screen, cx, cy, r, toRGBA(s.Color, tint, 0.35*s.Alpha), true)
		case game.SpriteBox:
			vector.DrawFilledRect(screen, cx-r, cy-r, 2*r, 2*r, toRGBA(s.Color, tint, 1), false)
			ebitenutil.DebugPrintAt(screen, s.Label, int(cx-r), int(cy+r))
		case game.SpritePower:
			vector.DrawFilledCircle(screen, cx, cy, r, toRGBA(s.Color, tint, 0.9), true)
			vector.StrokeCircle(screen, cx, cy, r+proj.length(0.3), 2, color.White, true)
			ebitenutil.DebugPrintAt(screen, s.Label, int(cx)-3, int(cy)-8)
		case game.SpriteBomb:
			vector.DrawFilledCircle(screen, cx, cy, r, toRGBA(s.Color, tint, 1), true)
			vector.StrokeCircle(screen, cx, cy, r, 1, color.Black, true)
		case game.SpriteBlast:
			vector.DrawFilledCircle(screen, cx, cy, r, toRGBA(s.Color, tint, s.Alpha), true)
		case game.SpritePlayer:
			drawPlayer(screen, s, tint, cx, cy, r, local)
		}
	}

	drawHUD(screen, v)
}

func drawPlayer(screen *ebiten.Image, s game.Sprite, tint components.Color, cx, cy, r float32, local *game.Player) {
	body := toRGBA(s.Color, tint, 1)
	if s.Dead {
		body.A = 90
	}
	vector.DrawFilledCircle(screen, cx, cy, r, body, true)

	switch {
	case s.Frozen:
		vector.DrawFilledCircle(screen, cx, cy, r+3, color.NRGBA{R: 170, G: 220, B: 255, A: 150}, true)
		vector.StrokeCircle(screen, cx, cy, r+3, 2, color.White, true)
	case s.Buffed:
		vector.StrokeCircle(screen, cx, cy, r+4, 3, color.RGBA{R: 120, G: 255, B: 255, A: 255}, true)
	}
	if s.Shielded {
		vector.StrokeCircle(screen, cx, cy, r+7, 2, color.NRGBA{R: 255, G: 120, B: 255, A: 200}, true)
	}

	// 血条
	w := 2 * r
	vector.DrawFilledRect(screen, cx-r, cy-r-8, w, 3, color.NRGBA{R: 60, G: 0, B: 0, A: 200}, false)
	vector.DrawFilledRect(screen, cx-r, cy-r-8, w*float32(s.Health), 3, color.RGBA{R: 80, G: 220, B: 80, A: 255}, false)

	label := s.Label
	if local != nil && s.ID == local.Entity {
		label = "> " + label
	}
	ebitenutil.DebugPrintAt(screen, label, int(cx-r), int(cy+r+2))
}

func drawHUD(screen *ebiten.Image, v game.View) {
	x := WindowWidth - hudWidth + 10
	vector.DrawFilledRect(screen, float32(WindowWidth-hudWidth), 0, hudWidth, WindowHeight, color.RGBA{A: 160}, false)

	ebitenutil.DebugPrintAt(screen, "ICE DEATH MATCH", x, 10)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("First to %d", v.ScoreToWin), x, 28)
	if v.TimeLeft >= 0 {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Time %d:%02d", int(v.TimeLeft)/60, int(v.TimeLeft)%60), x, 46)
	}

	y := 76
	for _, t := range v.Standings {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%-12s %3d", t.Name, t.Score), x, y)
		y += 18
	}

	if v.Ended {
		result := "DRAW"
		if v.Winner != nil {
			result = v.Winner.Name + " WINS"
		}
		ebitenutil.DebugPrintAt(screen, result, x, y+20)
		ebitenutil.DebugPrintAt(screen, "Press R to restart", x, y+38)
	}

	ebitenutil.DebugPrintAt(screen, "Move: WASD/Arrows\nBomb: Space\nPunch: F\nFullscreen: F11", x, WindowHeight-80)
}
