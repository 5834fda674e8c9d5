//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此文件仅在使用 -tags mobile 构建时编译：
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.waterguns -o build/android/waterguns.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/WaterGuns.xcframework -v ./mobile
package mobile

import (
	"github.com/hajimehoshi/ebiten/v2/mobile"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/decker502/waterguns"
	"github.com/decker502/waterguns/pkg/app"
	"github.com/decker502/waterguns/pkg/embedded"
	"github.com/decker502/waterguns/pkg/game"
)

func init() {
	embedded.Init(waterguns.DataFS)

	// 移动端没有配置文件，只使用默认值
	if err := app.LoadConfig(""); err != nil {
		log.Warn().Err(err).Str("system", "Mobile").Msg("failed to load app config")
	}
	cfg, err := app.LoadGameData()
	if err != nil {
		log.Fatal().Err(err).Str("system", "Mobile").Msg("failed to load game data")
	}

	settings := game.OpenSettingsManager(viper.GetString("settings.appName"))
	gameApp, err := app.NewApp(cfg, settings, nil)
	if err != nil {
		log.Fatal().Err(err).Str("system", "Mobile").Msg("failed to create app")
	}

	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
