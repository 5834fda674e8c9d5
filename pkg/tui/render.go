// Package tui 是基于 tcell 的终端前端
//
// 场地按字符格缩放到终端大小，最后一行是状态栏。
// 鼠标点击换算为字符格中心的场地坐标后交给模拟。
package tui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/waterguns/pkg/config"
	"github.com/decker502/waterguns/pkg/game"
	"github.com/decker502/waterguns/pkg/simulation"
	"github.com/decker502/waterguns/pkg/types"
	"github.com/decker502/waterguns/pkg/utils"
)

// Canvas 可以逐格写入的屏幕，tcell.Screen 满足此接口
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (int, int)
}

var (
	styleField    = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	styleRoute    = styleField.Foreground(tcell.ColorLightSkyBlue)
	styleRange    = styleField.Foreground(tcell.ColorGray)
	styleToolbar  = tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite)
	styleStatus   = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleDefeat   = tcell.StyleDefault.Background(tcell.ColorDarkRed).Foreground(tcell.ColorWhite).Bold(true)
	styleUpgrade  = tcell.StyleDefault.Background(tcell.ColorGreen).Foreground(tcell.ColorBlack)
	styleDelete   = tcell.StyleDefault.Background(tcell.ColorRed).Foreground(tcell.ColorWhite)
	styleSelected = tcell.StyleDefault.Background(tcell.ColorYellow).Foreground(tcell.ColorBlack).Bold(true)
)

// Frame 一帧需要绘制的内容
type Frame struct {
	Sim      *simulation.Simulation
	Settings game.DisplaySettings
	Paused   bool
}

// FieldGrid 终端尺寸对应的场地网格，最后一行留给状态栏
func FieldGrid(field config.FieldConfig, cols, rows int) utils.CellGrid {
	return utils.NewCellGrid(field.Width, field.Height, cols, rows-1)
}

// familyStyle 防御塔家族的颜色
func familyStyle(f types.TowerFamily) tcell.Style {
	switch f {
	case types.FamilyWaterGun:
		return tcell.StyleDefault.Background(tcell.ColorBlue).Foreground(tcell.ColorWhite)
	case types.FamilyAcidTower:
		return tcell.StyleDefault.Background(tcell.ColorOliveDrab).Foreground(tcell.ColorWhite)
	case types.FamilySodaMaker:
		return tcell.StyleDefault.Background(tcell.ColorPurple).Foreground(tcell.ColorWhite)
	}
	return tcell.StyleDefault.Background(tcell.ColorGray)
}

// towerGlyph 防御塔占据的字符
func towerGlyph(f types.TowerFamily) rune {
	switch f {
	case types.FamilyWaterGun:
		return 'W'
	case types.FamilyAcidTower:
		return 'A'
	case types.FamilySodaMaker:
		return 'S'
	}
	return '?'
}

// planeGlyph 按飞行方向（角度制）选择箭头
func planeGlyph(rotation float64) rune {
	deg := math.Mod(rotation, 360)
	if deg < 0 {
		deg += 360
	}
	switch {
	case deg >= 45 && deg < 135:
		return 'v'
	case deg >= 135 && deg < 225:
		return '<'
	case deg >= 225 && deg < 315:
		return '^'
	}
	return '>'
}

// healthStyle 按剩余血量给飞机着色
func healthStyle(pct float64) tcell.Style {
	switch {
	case pct > 66:
		return styleField.Foreground(tcell.ColorWhite).Bold(true)
	case pct > 33:
		return styleField.Foreground(tcell.ColorYellow).Bold(true)
	}
	return styleField.Foreground(tcell.ColorRed).Bold(true)
}

// statusLine 状态栏文字
func statusLine(sim *simulation.Simulation, speed int, paused bool) string {
	line := fmt.Sprintf(" $%d  HP %d/%d  wave %d/%d  x%d  [r]ange [h]ud [m]ute [space]speed [p]ause [q]uit",
		sim.Cash(), sim.PlayerHP(), sim.MaxPlayerHP(), sim.Round(), sim.WaveCount(), speed)
	if paused {
		line = " PAUSED" + line
	}
	return line
}

// Render 绘制一帧
func Render(c Canvas, f Frame) {
	cols, rows := c.Size()
	if cols <= 0 || rows <= 0 {
		return
	}
	field := f.Sim.Field()
	grid := FieldGrid(field, cols, rows)

	for y := 0; y < grid.Rows; y++ {
		style := styleField
		if _, fy := grid.ToField(0, y); fy < field.ToolbarHeight {
			style = styleToolbar
		}
		fill(c, 0, y, cols-1, y, ' ', style)
	}

	drawRoute(c, grid, f.Sim)
	towers := f.Sim.Towers()
	if f.Settings.ShowRanges {
		for _, t := range towers {
			drawRange(c, grid, t)
		}
	}
	for _, t := range towers {
		drawTower(c, grid, t)
	}
	for _, p := range f.Sim.Planes() {
		col, row, ok := grid.ToCell(p.Rect.CenterX(), p.Rect.CenterY())
		if ok {
			c.SetContent(col, row, planeGlyph(p.Rotation), nil, healthStyle(p.HPPercent))
		}
	}
	for _, b := range f.Sim.Buttons() {
		drawButton(c, grid, b)
	}

	fill(c, 0, rows-1, cols-1, rows-1, ' ', styleStatus)
	if f.Settings.ShowHUD {
		putText(c, 0, rows-1, cols, statusLine(f.Sim, f.Settings.TicksPerFrame, f.Paused), styleStatus)
	}

	if f.Sim.IsDefeated() {
		msg := fmt.Sprintf(" DEFEATED in wave %d - click or press n ", f.Sim.Round())
		x := max((cols-len(msg))/2, 0)
		putText(c, x, grid.Rows/2, cols-x, msg, styleDefeat)
	}
}

// drawRoute 沿折线按半格步长采样
func drawRoute(c Canvas, grid utils.CellGrid, sim *simulation.Simulation) {
	field := sim.Field()
	points := sim.Path().Polyline(field.Width, field.Height)
	step := math.Min(grid.CellW(), grid.CellH()) / 2

	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		length := math.Hypot(b[0]-a[0], b[1]-a[1])
		n := int(math.Ceil(length / step))
		for k := 0; k <= n; k++ {
			t := 0.0
			if n > 0 {
				t = float64(k) / float64(n)
			}
			col, row, ok := grid.ToCell(a[0]+(b[0]-a[0])*t, a[1]+(b[1]-a[1])*t)
			if ok {
				c.SetContent(col, row, '·', nil, styleRoute)
			}
		}
	}
}

// drawRange 射程圈：中心到圆周距离不超过半格的字符格
func drawRange(c Canvas, grid utils.CellGrid, t simulation.TowerView) {
	cx, cy, r := t.Rect.CenterX(), t.Rect.CenterY(), t.Range
	tolerance := math.Max(grid.CellW(), grid.CellH()) / 2

	col0, row0, col1, row1, ok := grid.SpanCells(cx-r-tolerance, cy-r-tolerance, 2*(r+tolerance), 2*(r+tolerance))
	if !ok {
		return
	}
	for row := row0; row <= row1; row++ {
		for col := col0; col <= col1; col++ {
			x, y := grid.ToField(col, row)
			if math.Abs(math.Hypot(x-cx, y-cy)-r) <= tolerance {
				c.SetContent(col, row, '.', nil, styleRange)
			}
		}
	}
}

func drawTower(c Canvas, grid utils.CellGrid, t simulation.TowerView) {
	col0, row0, col1, row1, ok := grid.SpanCells(t.Rect.X(), t.Rect.Y(), t.Rect.W(), t.Rect.H())
	if !ok {
		return
	}
	style := familyStyle(t.Family)
	if t.Status == types.TowerSelected {
		style = style.Foreground(tcell.ColorYellow).Bold(true)
	}
	fill(c, col0, row0, col1, row1, towerGlyph(t.Family), style)

	if t.Firing {
		if col, row, ok := grid.ToCell(t.Rect.CenterX(), t.Rect.CenterY()); ok {
			c.SetContent(col, row, '*', nil, style)
		}
	}
}

func drawButton(c Canvas, grid utils.CellGrid, b simulation.ButtonView) {
	col0, row0, col1, row1, ok := grid.SpanCells(b.Rect.X(), b.Rect.Y(), b.Rect.W(), b.Rect.H())
	if !ok {
		return
	}

	var style tcell.Style
	switch {
	case b.Kind == types.ButtonUpgrade:
		style = styleUpgrade
	case b.Kind == types.ButtonDelete:
		style = styleDelete
	case b.Selected:
		style = styleSelected
	default:
		if family, ok := b.Kind.Family(); ok {
			style = familyStyle(family)
		} else {
			style = styleToolbar
		}
	}
	if b.Pressed {
		style = style.Reverse(true)
	}

	fill(c, col0, row0, col1, row1, ' ', style)
	putText(c, col0, (row0+row1)/2, col1-col0+1, b.Caption(), style)
}

func fill(c Canvas, col0, row0, col1, row1 int, ch rune, style tcell.Style) {
	for row := row0; row <= row1; row++ {
		for col := col0; col <= col1; col++ {
			c.SetContent(col, row, ch, nil, style)
		}
	}
}

// putText 从 (x, y) 开始写入最多 width 个字符
func putText(c Canvas, x, y, width int, text string, style tcell.Style) {
	i := 0
	for _, ch := range text {
		if i >= width {
			return
		}
		c.SetContent(x+i, y, ch, nil, style)
		i++
	}
}
