package scenes

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/waterguns/pkg/simulation"
	"github.com/decker502/waterguns/pkg/types"
)

// 绘制参数
const (
	barrelLengthRatio = 0.6 // 炮管长度相对塔边长
	barrelWidth       = 6
	healthBarHeight   = 5
	pathLineWidth     = 3
)

var (
	colorBackground = color.RGBA{R: 0x8f, G: 0xc9, B: 0xe8, A: 0xff}
	colorToolbar    = color.RGBA{R: 0x3a, G: 0x3f, B: 0x4b, A: 0xff}
	colorPath       = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x60}
	colorSelected   = color.RGBA{R: 0xff, G: 0xe0, B: 0x40, A: 0xff}
	colorRange      = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x50}
	colorFiring     = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xc0}
	colorPlane      = color.RGBA{R: 0xf4, G: 0xf4, B: 0xf0, A: 0xff}
	colorHPBack     = color.RGBA{R: 0x60, G: 0x10, B: 0x10, A: 0xff}
	colorHPFront    = color.RGBA{R: 0x30, G: 0xd0, B: 0x50, A: 0xff}
	colorButton     = color.RGBA{R: 0x5c, G: 0x64, B: 0x74, A: 0xff}
	colorPressed    = color.RGBA{R: 0x2c, G: 0x30, B: 0x38, A: 0xff}
	colorUpgrade    = color.RGBA{R: 0x30, G: 0xa0, B: 0x40, A: 0xff}
	colorDelete     = color.RGBA{R: 0xc0, G: 0x30, B: 0x30, A: 0xff}
	colorOverlay    = color.RGBA{A: 0xa0}
)

// familyColor 防御塔家族的填充色
func familyColor(f types.TowerFamily) color.RGBA {
	switch f {
	case types.FamilyWaterGun:
		return color.RGBA{R: 0x20, G: 0x70, B: 0xe0, A: 0xff}
	case types.FamilyAcidTower:
		return color.RGBA{R: 0x70, G: 0xc0, B: 0x20, A: 0xff}
	case types.FamilySodaMaker:
		return color.RGBA{R: 0xb0, G: 0x40, B: 0xc0, A: 0xff}
	}
	return color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
}

// buttonColor 按钮的填充色
func buttonColor(b simulation.ButtonView) color.RGBA {
	switch {
	case b.Kind == types.ButtonUpgrade:
		return colorUpgrade
	case b.Kind == types.ButtonDelete:
		return colorDelete
	case b.Pressed:
		return colorPressed
	}
	if family, ok := b.Kind.Family(); ok {
		return familyColor(family)
	}
	return colorButton
}

// barrelEnd 返回炮管末端坐标
// 精灵默认朝上，旋转角为 r 时朝向 (sin r, -cos r)
func barrelEnd(t simulation.TowerView) (float64, float64) {
	length := t.Rect.W() * barrelLengthRatio
	return t.Rect.CenterX() + math.Sin(t.Rotation)*length,
		t.Rect.CenterY() - math.Cos(t.Rotation)*length
}

// healthBarWidth 血条前景宽度
func healthBarWidth(p simulation.PlaneView) float64 {
	pct := min(max(p.HPPercent, 0), 100)
	return p.Rect.W() * pct / 100
}

// hudText 顶部状态文字
func hudText(sim *simulation.Simulation, speed int, paused bool) string {
	text := fmt.Sprintf("Cash $%d  HP %d/%d  Wave %d/%d  x%d",
		sim.Cash(), sim.PlayerHP(), sim.MaxPlayerHP(), sim.Round(), sim.WaveCount(), speed)
	if paused {
		text += "  PAUSED"
	}
	return text
}

// Draw 绘制对局
func (s *BattleScene) Draw(screen *ebiten.Image) {
	field := s.sim.Field()
	settings := s.settingsManager.Settings()

	screen.Fill(colorBackground)
	s.drawPath(screen)

	for _, t := range s.sim.Towers() {
		drawTower(screen, t, settings.ShowRanges)
	}
	for _, p := range s.sim.Planes() {
		drawPlane(screen, p)
	}

	vector.DrawFilledRect(screen, 0, 0, float32(field.Width), float32(field.ToolbarHeight), colorToolbar, false)
	for _, b := range s.sim.Buttons() {
		drawButton(screen, b)
	}

	if settings.ShowHUD {
		ebitenutil.DebugPrintAt(screen, hudText(s.sim, settings.TicksPerFrame, s.paused), 8, int(field.ToolbarHeight)+4)
	}

	if s.sim.IsDefeated() {
		vector.DrawFilledRect(screen, 0, 0, float32(field.Width), float32(field.Height), colorOverlay, false)
		msg := fmt.Sprintf("DEFEATED in wave %d. Click or press N to play again.", s.sim.Round())
		ebitenutil.DebugPrintAt(screen, msg, int(field.Width)/2-len(msg)*3, int(field.Height)/2)
	}
}

func (s *BattleScene) drawPath(screen *ebiten.Image) {
	field := s.sim.Field()
	points := s.sim.Path().Polyline(field.Width, field.Height)
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		vector.StrokeLine(screen, float32(a[0]), float32(a[1]), float32(b[0]), float32(b[1]), pathLineWidth, colorPath, true)
	}
}

func drawTower(screen *ebiten.Image, t simulation.TowerView, showRange bool) {
	x, y := float32(t.Rect.X()), float32(t.Rect.Y())
	w, h := float32(t.Rect.W()), float32(t.Rect.H())
	cx, cy := float32(t.Rect.CenterX()), float32(t.Rect.CenterY())

	if showRange {
		vector.StrokeCircle(screen, cx, cy, float32(t.Range), 1, colorRange, true)
	}

	vector.DrawFilledRect(screen, x, y, w, h, familyColor(t.Family), false)
	if t.Status == types.TowerSelected {
		vector.StrokeRect(screen, x, y, w, h, 3, colorSelected, false)
	}

	ex, ey := barrelEnd(t)
	vector.StrokeLine(screen, cx, cy, float32(ex), float32(ey), barrelWidth, color.Black, true)
	if t.Firing {
		vector.DrawFilledCircle(screen, float32(ex), float32(ey), barrelWidth, colorFiring, true)
	}

	ebitenutil.DebugPrintAt(screen, t.Form, int(x), int(y+h))
}

func drawPlane(screen *ebiten.Image, p simulation.PlaneView) {
	x, y := float32(p.Rect.X()), float32(p.Rect.Y())
	w, h := float32(p.Rect.W()), float32(p.Rect.H())

	vector.DrawFilledRect(screen, x, y, w, h, colorPlane, false)
	vector.StrokeRect(screen, x, y, w, h, 1, color.Black, false)

	vector.DrawFilledRect(screen, x, y-healthBarHeight-2, w, healthBarHeight, colorHPBack, false)
	vector.DrawFilledRect(screen, x, y-healthBarHeight-2, float32(healthBarWidth(p)), healthBarHeight, colorHPFront, false)
}

func drawButton(screen *ebiten.Image, b simulation.ButtonView) {
	x, y := float32(b.Rect.X()), float32(b.Rect.Y())
	w, h := float32(b.Rect.W()), float32(b.Rect.H())

	vector.DrawFilledRect(screen, x, y, w, h, buttonColor(b), false)
	if b.Selected {
		vector.StrokeRect(screen, x, y, w, h, 3, colorSelected, false)
	}
	ebitenutil.DebugPrintAt(screen, b.Caption(), int(x)+4, int(y)+4)
}
