// Command goal-roi finds goal-post regions of interest in camera frames.
//
// Usage: goal-roi [options] <frame.png> [frame.png ...]
//
// Each frame goes through a small vision pipeline: color classification,
// white/green integral images, a post width model, an optional field-border
// mask and the goal ROI filter. ROIs are printed as one JSON object per
// frame on stdout; logs go to stderr.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ironsheep/goal-roi/internal/goal"
	"github.com/ironsheep/goal-roi/internal/imaging"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("goal-roi %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		}
	}

	log := newLogger(os.Getenv("GOAL_ROI_LOG_LEVEL"))

	opts, frames, err := parseOptions(os.Args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			return
		}
		log.Fatal().Err(err).Msg("invalid options")
	}

	a, err := newApp(opts, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build pipeline")
	}

	encoder := json.NewEncoder(os.Stdout)
	failed := 0
	for _, path := range frames {
		frame, info, err := imaging.LoadFrame(path)
		if err != nil {
			log.Error().Err(err).Str("frame", path).Msg("skipping frame")
			failed++
			continue
		}
		report, err := a.process(frame, info)
		if err != nil {
			log.Error().Err(err).Str("frame", path).Msg("processing failed")
			failed++
			continue
		}
		if err := encoder.Encode(report); err != nil {
			log.Fatal().Err(err).Msg("failed to write result")
		}
		log.Info().Str("frame", path).Int("rois", len(report.ROIs)).Msg("frame processed")
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// newLogger writes human-readable logs to stderr (stdout carries results).
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

// parseOptions reads command line flags and returns the frame paths.
func parseOptions(args []string) (options, []string, error) {
	fs := flag.NewFlagSet("goal-roi", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "goal-roi - goal-post region of interest finder")
		fmt.Fprintln(fs.Output())
		fmt.Fprintln(fs.Output(), "Usage: goal-roi [options] <frame.png> [frame.png ...]")
		fmt.Fprintln(fs.Output())
		fmt.Fprintln(fs.Output(), "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(fs.Output())
		fmt.Fprintln(fs.Output(), "Environment variables:")
		fmt.Fprintln(fs.Output(), "  GOAL_ROI_LOG_LEVEL=debug    Log level (debug, info, warn, error)")
	}

	paramsPath := fs.String("params", "", "TOML file with goal filter parameters")
	topWidth := fs.Float64("top-width", 2, "expected post width (pixels) on the first row")
	bottomWidth := fs.Float64("bottom-width", 12, "expected post width (pixels) on the last row")
	maskScale := fs.Int("mask-scale", 1, "field-border mask scale relative to the frame")
	maskRun := fs.Int("mask-run", 3, "green pixels in a row marking the start of the field")
	smooth := fs.Float64("smooth", 0, "blur radius applied to classification masks (0 = off)")
	workers := fs.Int("workers", 1, "goroutines scoring anchors")
	outDir := fs.String("out", "", "directory receiving overlay, heat-map and crop images")
	heatScale := fs.Int("heat-scale", 1, "integer upscaling of the saved heat-map")
	crops := fs.Bool("crops", false, "save one image per ROI (requires -out)")
	cropScale := fs.Float64("crop-scale", 1, "resize factor of saved ROI crops")

	if err := fs.Parse(args); err != nil {
		return options{}, nil, err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return options{}, nil, fmt.Errorf("no frame given")
	}

	params := goal.DefaultParams()
	if *paramsPath != "" {
		var err error
		if params, err = goal.LoadParams(*paramsPath); err != nil {
			return options{}, nil, err
		}
	}

	classifier := imaging.DefaultClassifier()
	classifier.SmoothRadius = *smooth

	return options{
		Params:     params,
		Classifier: classifier,
		Widths:     imaging.WidthModel{TopWidth: *topWidth, BottomWidth: *bottomWidth},
		MaskScale:  *maskScale,
		MaskRun:    *maskRun,
		Workers:    *workers,
		OutDir:     *outDir,
		HeatScale:  *heatScale,
		Crops:      *crops,
		CropScale:  *cropScale,
	}, fs.Args(), nil
}
