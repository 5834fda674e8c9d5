//go:build !mobile

// Package mobile 在普通构建时只提供占位函数，实际入口在 mobile.go（-tags mobile）
package mobile

// Dummy 是一个空导出函数，确保包在非移动端构建时也能被引用
func Dummy() {}
