package main

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/midbel/donut"
	"github.com/midbel/donut/decode"
	"github.com/spf13/cobra"
)

const chartExt = ".chart"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the charts of a directory over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			addr, _ = cmd.Flags().GetString("addr")
			dir, _  = cmd.Flags().GetString("dir")
			app     = newApp(dir)
		)
		slog.Info("starting chart server", "addr", addr, "dir", dir)
		return app.Listen(addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "address to listen on")
	serveCmd.Flags().String("dir", ".", "directory of the chart files")
}

func newApp(dir string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "donut",
	})
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	h := handler{dir: dir}
	app.Get("/charts/:name", h.Chart)
	app.Post("/render", h.Render)
	return app
}

type handler struct {
	dir string
}

// Chart renders a chart file of the served directory.
func (h handler) Chart(c fiber.Ctx) error {
	name := filepath.Base(c.Params("name"))
	if filepath.Ext(name) == "" {
		name += chartExt
	}
	opts, err := decode.DecodeFile(filepath.Join(h.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "chart not found",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return h.send(c, opts)
}

// Render renders the chart description sent in the body of the request.
func (h handler) Render(c fiber.Ctx) error {
	if len(c.Body()) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "body required",
		})
	}
	dec := decode.NewDecoder(bytes.NewReader(c.Body()))
	dec.DisableFiles()
	opts, err := dec.Decode()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return h.send(c, opts)
}

func (h handler) send(c fiber.Ctx, opts donut.Options) error {
	var (
		format = c.Query("format", formatSVG)
		focus  = -1
	)
	if str := c.Query("focus"); str != "" {
		f, err := strconv.Atoi(str)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "focus should be a segment index",
			})
		}
		focus = f
	}
	if format != formatSVG && format != formatPNG {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrFormat.Error(),
		})
	}
	s, err := draw(override(opts), focus)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	var buf bytes.Buffer
	if err := write(&buf, s, format); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	c.Set("Content-Type", contentType(format))
	return c.Send(buf.Bytes())
}
