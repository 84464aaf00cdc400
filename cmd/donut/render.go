package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/midbel/donut/decode"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var renderCmd = &cobra.Command{
	Use:   "render <file>...",
	Short: "Render chart files as SVG or PNG",
	Long: `Render each chart file given on the command line. Files are written in the
output directory with the extension of the selected format. With "-" as
output, the single chart given is written on stdout.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		if output == "-" && len(args) > 1 {
			return fmt.Errorf("only one chart can be written on stdout")
		}
		var (
			format = settings.GetString("format")
			focus  = settings.GetInt("focus")
			grp    errgroup.Group
		)
		grp.SetLimit(runtime.NumCPU())
		for _, file := range args {
			grp.Go(func() error {
				return renderFile(file, output, format, focus)
			})
		}
		return grp.Wait()
	},
}

func init() {
	renderCmd.Flags().StringP("output", "o", ".", "output directory")
}

func renderFile(file, output, format string, focus int) error {
	opts, err := decode.DecodeFile(file)
	if err != nil {
		return err
	}
	s, err := draw(override(opts), focus)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	if output == "-" {
		return write(os.Stdout, s, format)
	}
	var (
		base = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		dest = filepath.Join(output, base+"."+format)
	)
	w, err := os.Create(dest)
	if err != nil {
		return err
	}
	if err := write(w, s, format); err != nil {
		w.Close()
		return fmt.Errorf("%s: %w", file, err)
	}
	if err := w.Close(); err != nil {
		return err
	}
	slog.Info("chart rendered", "file", file, "output", dest)
	return nil
}
