package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/decker502/waterguns/pkg/config"
)

// 配置文件与环境变量
const (
	ConfigName = "waterguns"
	EnvPrefix  = "WATERGUNS"
)

// setDefaults 应用设置的默认值
func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFormat", "console")
	viper.SetDefault("logFile", "")

	viper.SetDefault("data", config.DefaultGameConfigPath)
	viper.SetDefault("tps", 60)
	viper.SetDefault("settings.appName", "waterguns")

	viper.SetDefault("window.title", "Water Guns")
	viper.SetDefault("window.scale", 1.0)

	viper.SetDefault("sound.enabled", true)
}

// LoadConfig 读取应用设置并设置默认值
//
// 参数：
//   - configFile: 配置文件路径；为空时在当前目录和 $HOME/.config/waterguns 中查找 waterguns.yaml，
//     找不到不算错误
//
// 环境变量 WATERGUNS_* 覆盖文件中的值（例如 WATERGUNS_WINDOW_SCALE）。
func LoadConfig(configFile string) error {
	setDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file: %w", err)
		}
		return nil
	}

	viper.SetConfigName(ConfigName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/waterguns")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// LoadGameData 加载 data 设置指向的游戏数据文件
func LoadGameData() (*config.GameConfig, error) {
	path := viper.GetString("data")
	cfg, err := config.LoadGameConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load game data %s: %w", path, err)
	}
	return cfg, nil
}
