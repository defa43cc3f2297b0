// Package batch converts SVG files on disk into plotter programs, one
// document at a time.
package batch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/vasalvit/svgplot/plot"
	"github.com/vasalvit/svgplot/preview"
	"github.com/vasalvit/svgplot/svg"
)

// Options control a batch run.
type Options struct {
	Params    plot.Params
	ErrorMode svg.ErrorMode

	// OutputDir receives the outputs. Empty means next to each input.
	OutputDir string

	Preview      bool
	PreviewWidth int

	// Logger receives progress and failures. Nil discards them.
	Logger *log.Logger
}

func (o *Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return o.Logger
}

// Run converts every input in order. A failing document is logged and
// does not stop the others; all failures are returned joined. Run stops
// between documents when ctx is done.
func Run(ctx context.Context, inputs []string, opts Options) error {
	logger := opts.logger()
	id := uuid.New()
	start := time.Now()
	logger.Printf("run %s: converting %d file(s)", id, len(inputs))

	var errs []error
	done := 0
	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, fmt.Errorf("run %s interrupted: %w", id, err))
			break
		}
		if err := ConvertFile(in, opts); err != nil {
			logger.Printf("run %s: %v", id, err)
			errs = append(errs, err)
			continue
		}
		done++
	}

	logger.Printf("run %s: %d of %d file(s) converted in %s", id, done, len(inputs), time.Since(start).Round(time.Millisecond))
	return errors.Join(errs...)
}

// ConvertFile converts one input file and writes its outputs.
func ConvertFile(input string, opts Options) error {
	logger := opts.logger()

	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	doc, err := svg.ParseSvgFromReader(f, input, opts.ErrorMode)
	f.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	res, err := plot.Convert(doc, opts.Params)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	var png []byte
	out := OutputPaths(input, opts.OutputDir)
	if opts.Preview {
		img, err := preview.Render(res, opts.PreviewWidth)
		if err != nil {
			return fmt.Errorf("%s: %w", input, err)
		}
		var buf bytes.Buffer
		if err := preview.Encode(&buf, img); err != nil {
			return fmt.Errorf("%s: %w", input, err)
		}
		png = buf.Bytes()
	}

	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := writeFile(out.Drawing, []byte(res.Drawing)); err != nil {
		return err
	}
	if err := writeFile(out.Program, []byte(res.Program)); err != nil {
		return err
	}
	if png != nil {
		if err := writeFile(out.Preview, png); err != nil {
			return err
		}
	}

	s := res.Stats
	logger.Printf("%s -> %s, %s: %d paths, %d drawing moves, %d rapid moves, %d pen lifts, drawn %.1f, about %s",
		input, out.Drawing, out.Program, s.Paths, s.DrawMoves, s.RapidMoves, s.PenLifts,
		s.DrawnLength, s.DrawTime(opts.Params.MaxLineSpeed).Round(time.Second))
	return nil
}
