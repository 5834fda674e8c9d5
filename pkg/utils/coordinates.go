package utils

import "math"

// CellGrid 场地坐标与终端字符格之间的换算
//
// 场地 (0,0)-(FieldW,FieldH) 均匀映射到 Cols×Rows 个字符格，
// 每个字符格对应场地中的一个矩形区域，换算回场地坐标时取该区域的中心。
type CellGrid struct {
	FieldW, FieldH float64
	Cols, Rows     int
}

// NewCellGrid 创建换算网格，行列数至少为 1
func NewCellGrid(fieldW, fieldH float64, cols, rows int) CellGrid {
	return CellGrid{
		FieldW: fieldW,
		FieldH: fieldH,
		Cols:   max(cols, 1),
		Rows:   max(rows, 1),
	}
}

// CellW 一个字符格的场地宽度
func (g CellGrid) CellW() float64 {
	return g.FieldW / float64(g.Cols)
}

// CellH 一个字符格的场地高度
func (g CellGrid) CellH() float64 {
	return g.FieldH / float64(g.Rows)
}

// ToCell 场地坐标 → 字符格
// ok 为 false 表示该点在场地之外（如已飞出右边界或尚未进场的飞机）
func (g CellGrid) ToCell(x, y float64) (col, row int, ok bool) {
	col = int(math.Floor(x / g.CellW()))
	row = int(math.Floor(y / g.CellH()))
	ok = col >= 0 && col < g.Cols && row >= 0 && row < g.Rows
	return col, row, ok
}

// ToField 字符格 → 场地坐标（字符格中心）
func (g CellGrid) ToField(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * g.CellW(), (float64(row) + 0.5) * g.CellH()
}

// SpanCells 场地矩形覆盖的字符格范围 [col0, col1] × [row0, row1]
// 结果会被截断到网格内；完全在网格外时 ok 为 false
func (g CellGrid) SpanCells(x, y, w, h float64) (col0, row0, col1, row1 int, ok bool) {
	col0 = int(math.Floor(x / g.CellW()))
	row0 = int(math.Floor(y / g.CellH()))
	col1 = int(math.Ceil((x+w)/g.CellW())) - 1
	row1 = int(math.Ceil((y+h)/g.CellH())) - 1

	col0, row0 = max(col0, 0), max(row0, 0)
	col1, row1 = min(col1, g.Cols-1), min(row1, g.Rows-1)
	ok = col0 <= col1 && row0 <= row1
	return col0, row0, col1, row1, ok
}
