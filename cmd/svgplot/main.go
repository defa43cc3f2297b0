// Command svgplot converts SVG files into G-code for a pen plotter.
//
// For every input name.svg it writes name.gcode and name.stripped.svg, a
// normalized drawing of exactly what the plotter draws, and with -preview
// also name.preview.png.
//
//	svgplot [flags] <file-or-glob>...
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/vasalvit/svgplot/batch"
	"github.com/vasalvit/svgplot/config"
	"github.com/vasalvit/svgplot/svg"
)

// Exit codes.
const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

func main() {
	log.SetPrefix("svgplot: ")
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.LookupEnv, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, lookupEnv func(string) (string, bool), stderr io.Writer) int {
	fs := flag.NewFlagSet("svgplot", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: svgplot [flags] <file-or-glob>...")
		fs.PrintDefaults()
	}

	defaults := config.Default()
	outputDir := fs.String("o", "", "output directory (default: next to each input)")
	penUp := fs.Float64("u", defaults.PenUpHeight, "pen up height (env "+config.EnvPenUpHeight+")")
	penDown := fs.Float64("d", defaults.PenDownHeight, "pen down height (env "+config.EnvPenDownHeight+")")
	speed := fs.Float64("f", defaults.MaxLineSpeed, "feed rate of drawing moves (env "+config.EnvMaxLineSpeed+")")
	configPath := fs.String("c", "", "YAML configuration file")
	initConfig := fs.String("init-config", "", "write the default configuration to this file and exit")
	withPreview := fs.Bool("preview", defaults.Preview, "also write a PNG preview")
	previewWidth := fs.Int("preview-width", defaults.PreviewWidth, "width of the PNG preview in pixels")
	strict := fs.Bool("strict", false, "fail on SVG elements that cannot be plotted (same as -error-mode strict)")
	errorMode := fs.String("error-mode", defaults.ErrorMode, "handling of unsupported SVG elements: ignore, warn or strict")
	watch := fs.Bool("watch", false, "keep running and convert inputs again when they change")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	logger := log.New(stderr, "svgplot: ", log.LstdFlags)

	if *initConfig != "" {
		if err := config.InitConfig(*initConfig); err != nil {
			logger.Printf("init config: %v", err)
			return exitUsage
		}
		logger.Printf("wrote default configuration to %s", *initConfig)
		return exitOK
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		logger.Print(err)
		return exitUsage
	}
	if err := cfg.ApplyEnv(lookupEnv); err != nil {
		logger.Print(err)
		return exitUsage
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "o":
			cfg.OutputDir = *outputDir
		case "u":
			cfg.PenUpHeight = *penUp
		case "d":
			cfg.PenDownHeight = *penDown
		case "f":
			cfg.MaxLineSpeed = *speed
		case "preview":
			cfg.Preview = *withPreview
		case "preview-width":
			cfg.PreviewWidth = *previewWidth
		case "error-mode":
			cfg.ErrorMode = *errorMode
		}
	})
	if *strict {
		cfg.ErrorMode = svg.StrictErrorMode.String()
	}
	if err := cfg.Validate(); err != nil {
		logger.Print(err)
		return exitUsage
	}

	inputs, err := batch.Expand(fs.Args())
	if err != nil {
		logger.Print(err)
		return exitUsage
	}

	opts := batch.Options{
		Params:       cfg.Params(),
		ErrorMode:    cfg.Mode(),
		OutputDir:    cfg.OutputDir,
		Preview:      cfg.Preview,
		PreviewWidth: cfg.PreviewWidth,
		Logger:       logger,
	}
	code := exitOK
	if err := batch.Run(ctx, inputs, opts); err != nil {
		code = exitFailed
	}
	if *watch {
		if err := batch.Watch(ctx, inputs, opts, batch.DefaultWatchDebounce); err != nil {
			logger.Print(err)
			return exitFailed
		}
	}
	return code
}
