package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/decker502/waterguns/pkg/app"
	"github.com/decker502/waterguns/pkg/audio"
	"github.com/decker502/waterguns/pkg/config"
	"github.com/decker502/waterguns/pkg/game"
	"github.com/decker502/waterguns/pkg/tui"
)

func playCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Open the game window",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := app.LoadGameData()
			if err != nil {
				return err
			}
			settings := game.OpenSettingsManager(viper.GetString("settings.appName"))

			a, err := app.NewApp(cfg, settings, openSound())
			if err != nil {
				return err
			}
			return a.Run()
		},
	}
}

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Play in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := app.LoadGameData()
			if err != nil {
				return err
			}
			// 终端被 tcell 占用，没有日志文件时丢弃日志
			if viper.GetString("logFile") == "" {
				log.Logger = log.Logger.Output(io.Discard)
			}

			settings := game.OpenSettingsManager(viper.GetString("settings.appName"))
			var sink audio.Sink
			sound := openSound()
			if sound != nil {
				sink = sound
				defer sound.Cleanup()
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("failed to create screen: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("failed to init screen: %w", err)
			}
			defer screen.Fini()

			runner, err := tui.NewRunner(screen, cfg, settings, sink, viper.GetInt("tps"))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			if err := runner.Run(ctx); err != nil {
				return err
			}
			if err := settings.Save(); err != nil {
				log.Warn().Err(err).Str("system", "TUI").Msg("failed to save settings")
			}
			return nil
		},
	}
}

func simulateCmd() *cobra.Command {
	var (
		ticks  int
		towers []string
		cash   int
		format string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the game headless with a scripted tower layout and print a summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.LoadGameData()
			if err != nil {
				return err
			}

			specs := make([]towerSpec, 0, len(towers))
			for _, s := range towers {
				spec, err := parseTowerSpec(s)
				if err != nil {
					return err
				}
				specs = append(specs, spec)
			}

			result, err := simulate(cfg, simulateOptions{
				Ticks:  ticks,
				Towers: specs,
				Cash:   cash,
				TickMs: 1000 / float64(max(viper.GetInt("tps"), 1)),
			})
			if err != nil {
				return err
			}
			return writeSummary(cmd.OutOrStdout(), result, format)
		},
	}

	cmd.Flags().IntVar(&ticks, "ticks", 3600, "maximum number of ticks to run")
	cmd.Flags().StringArrayVar(&towers, "tower", nil, "tower to place before the first tick, as family:x:y (repeatable)")
	cmd.Flags().IntVar(&cash, "cash", -1, "starting cash (default from game data)")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or yaml")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Load and validate a game data file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := viper.GetString("data")
			if len(args) == 1 {
				path = args[0]
			}
			cfg, err := config.LoadGameConfig(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d plane kinds, %d tower families, %d waves, %d toolbar buttons)\n",
				path, len(cfg.Planes.Kinds), len(cfg.Towers.Families), cfg.WaveCount(), len(cfg.ToolbarEntries()))
			return nil
		},
	}
}

// writeSummary 输出模拟结果
func writeSummary(w io.Writer, s summary, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("failed to encode summary: %w", err)
		}
		return enc.Close()
	case "text", "":
		_, err := fmt.Fprintf(w,
			"ticks %d  waves %d/%d  spawned %d  killed %d  escaped %d  shots %d\ncash %d  hp %d  towers %d  defeated %v\n",
			s.Ticks, s.Round, s.Waves, s.Spawned, s.Killed, s.Escaped, s.Shots,
			s.Cash, s.PlayerHP, s.Towers, s.Defeated)
		return err
	}
	return fmt.Errorf("unknown format %q", format)
}
