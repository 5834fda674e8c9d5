package app

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// ParseLevel 把 logLevel 设置转换为 zerolog 级别，无法识别时为 info
func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "DISABLED", "OFF":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// SetupLogging 根据 logLevel/logFormat/logFile 设置全局 logger
//
// logFormat 为 json 时输出 JSON 行，否则输出带颜色的控制台格式。
// 设置了 logFile 时同时写入该文件（无颜色）。
//
// 返回：
//   - func(): 关闭日志文件，调用方在退出前调用
//   - error: 日志文件无法打开
func SetupLogging(out io.Writer) (func(), error) {
	zerolog.SetGlobalLevel(ParseLevel(viper.GetString("logLevel")))

	json := strings.EqualFold(viper.GetString("logFormat"), "json")
	writer := formatWriter(out, json, false)
	cleanup := func() {}

	if path := viper.GetString("logFile"); path != "" {
		file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			return cleanup, fmt.Errorf("failed to open log file: %w", err)
		}
		writer = zerolog.MultiLevelWriter(writer, formatWriter(file, json, true))
		cleanup = func() { _ = file.Close() }
	}

	log.Logger = zerolog.New(writer).With().Timestamp().Logger()
	return cleanup, nil
}

func formatWriter(out io.Writer, json, noColor bool) io.Writer {
	if json {
		return out
	}
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}
}
