// Package waterguns 声明内置的游戏数据
//
// //go:embed 只能嵌入当前包目录及其子目录的文件，
// 所以这个文件必须放在项目根目录（与 data/ 同级）。
// 程序启动时把 DataFS 交给 embedded.Init。
package waterguns

import "embed"

// DataFS 内置的 data/ 目录
//
//go:embed data/game.yaml
var DataFS embed.FS
