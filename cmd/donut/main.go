package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/midbel/donut"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// set via -ldflags
var version = "dev"

var settings = viper.New()

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "donut",
	Short:         "Draw donut charts from chart description files",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogger(settings.GetString("log-level"))
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("donut %s\n", version)
	},
}

func init() {
	settings.SetEnvPrefix("DONUT")
	settings.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	settings.AutomaticEnv()
	settings.SetDefault("log-level", "info")

	flags := rootCmd.PersistentFlags()
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.Float64("width", 0, "width of the chart")
	flags.Float64("height", 0, "height of the chart")
	flags.Float64("inner-radius", 0, "radius of the hole")
	flags.Float64("outer-radius", 0, "radius of the ring")
	flags.Float64("value", 0, "value shown at the center")
	flags.String("pre-unit", "", "text written before the value")
	flags.String("post-unit", "", "text written after the value")
	flags.String("label", "", "caption written below the chart")
	flags.Int("focus", -1, "index of the segment to draw focused")
	flags.String("format", formatSVG, "output format (svg, png)")
	settings.BindPFlags(flags)

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(serveCmd)
}

func setupLogger(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("%s: invalid log level", level)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: lvl,
	}))
	slog.SetDefault(logger)
	donut.SetLogger(logger)
	return nil
}

// override replaces the options decoded from a file by the ones given on the
// command line or in the environment.
func override(opts donut.Options) donut.Options {
	if settings.IsSet("width") {
		opts.Width = settings.GetFloat64("width")
	}
	if settings.IsSet("height") {
		opts.Height = settings.GetFloat64("height")
	}
	if settings.IsSet("inner-radius") {
		opts.InnerRadius = settings.GetFloat64("inner-radius")
	}
	if settings.IsSet("outer-radius") {
		opts.OuterRadius = settings.GetFloat64("outer-radius")
	}
	if settings.IsSet("value") {
		opts.Value = donut.Number(settings.GetFloat64("value"))
	}
	if settings.IsSet("pre-unit") {
		opts.PreUnit = settings.GetString("pre-unit")
	}
	if settings.IsSet("post-unit") {
		opts.PostUnit = settings.GetString("post-unit")
	}
	if settings.IsSet("label") {
		opts.Caption = settings.GetString("label")
	}
	return opts
}
