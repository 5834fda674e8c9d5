package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/waterguns/pkg/simulation"
	"github.com/decker502/waterguns/pkg/utils"
)

// pollPointer 读取 ebiten 的鼠标和触摸输入
// 优先使用触摸，其次使用鼠标左键
func pollPointer(pt *utils.PointerTracker) simulation.Pointer {
	if touchIDs := ebiten.AppendTouchIDs(nil); len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return pt.Sample(true, float64(x), float64(y), true)
	}
	if len(inpututil.AppendJustReleasedTouchIDs(nil)) > 0 {
		return pt.Sample(false, 0, 0, false)
	}

	x, y := ebiten.CursorPosition()
	return pt.Sample(ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), float64(x), float64(y), true)
}
