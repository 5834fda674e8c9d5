package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/decker502/waterguns"
	"github.com/decker502/waterguns/pkg/app"
	"github.com/decker502/waterguns/pkg/audio"
	"github.com/decker502/waterguns/pkg/embedded"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string
	closeLogFile := func() {}

	rootCmd := &cobra.Command{
		Use:          "waterguns",
		Short:        "Water guns versus paper planes tower defense",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			embedded.Init(waterguns.DataFS)

			if err := app.LoadConfig(configFile); err != nil {
				return err
			}
			if err := viper.BindPFlag("data", cmd.Flags().Lookup("data")); err != nil {
				return err
			}
			if err := viper.BindPFlag("logLevel", cmd.Flags().Lookup("log-level")); err != nil {
				return err
			}

			cleanup, err := app.SetupLogging(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			closeLogFile = cleanup
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			closeLogFile()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "app config file (default ./waterguns.yaml)")
	rootCmd.PersistentFlags().String("data", "", "game data file (default embedded data/game.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error, off")

	rootCmd.AddCommand(playCmd())
	rootCmd.AddCommand(tuiCmd())
	rootCmd.AddCommand(simulateCmd())
	rootCmd.AddCommand(validateCmd())
	return rootCmd
}

// openSound 按 sound.enabled 初始化扬声器，失败时静音运行
func openSound() *audio.SoundManager {
	if !viper.GetBool("sound.enabled") {
		return nil
	}
	sm := audio.NewSoundManager()
	if err := sm.Initialize(); err != nil {
		log.Warn().Err(err).Str("system", "Audio").Msg("audio unavailable, running muted")
		return nil
	}
	return sm
}
