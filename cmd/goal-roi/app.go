package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ironsheep/goal-roi/internal/goal"
	"github.com/ironsheep/goal-roi/internal/imaging"
	"github.com/ironsheep/goal-roi/internal/integral"
	"github.com/ironsheep/goal-roi/internal/pipeline"
)

// options holds everything the command line configures.
type options struct {
	Params     goal.Params
	Classifier imaging.Classifier
	Widths     imaging.WidthModel
	MaskScale  int
	MaskRun    int
	Workers    int
	OutDir     string
	HeatScale  int
	Crops      bool
	CropScale  float64
}

// frameReport is printed as one JSON line per frame.
type frameReport struct {
	Frame *imaging.FrameInfo   `json:"frame"`
	ROIs  []goal.ROI           `json:"rois"`
	Stats goal.AccumulateStats `json:"stats"`
}

// stageSpec declares one pipeline stage.
type stageSpec struct {
	name   string
	filter pipeline.Filter
	deps   []string
}

// app runs the goal pipeline over successive frames. The pipeline and the
// goal filter are built once, so their buffers are reused between frames.
type app struct {
	opts   options
	log    zerolog.Logger
	runner *pipeline.Runner
	frame  image.Image
}

func newApp(opts options, log zerolog.Logger) (*app, error) {
	filter, err := goal.NewFilter(opts.Params,
		goal.WithLogger(log),
		goal.WithWorkers(opts.Workers),
	)
	if err != nil {
		return nil, err
	}

	a := &app{opts: opts, log: log, runner: pipeline.NewRunner(log)}

	stages := []stageSpec{
		{"source", &pipeline.FuncFilter{FilterName: "Source", Fn: a.source}, nil},
		{"classify", &pipeline.FuncFilter{FilterName: "ColorClassifier", Inputs: 1, Fn: a.classify}, []string{"source"}},
		{"whiteII", &pipeline.FuncFilter{FilterName: "IntegralImage", Inputs: 1, Fn: integralOf(true)}, []string{"classify"}},
		{"greenII", &pipeline.FuncFilter{FilterName: "IntegralImage", Inputs: 1, Fn: integralOf(false)}, []string{"classify"}},
		{"postWidth", &pipeline.FuncFilter{FilterName: "PostWidth", Inputs: 1, Fn: a.postWidth}, []string{"source"}},
	}
	goalDeps := []string{"whiteII", "greenII", "postWidth"}
	if opts.Params.UseMask > 0 {
		stages = append(stages, stageSpec{"fieldBorder", &pipeline.FuncFilter{FilterName: "FieldBorder", Inputs: 1, Fn: a.fieldBorder}, []string{"classify"}})
		goalDeps = append(goalDeps, "fieldBorder")
	}

	for _, s := range stages {
		if err := a.runner.Add(s.name, s.filter, s.deps...); err != nil {
			return nil, err
		}
	}
	if err := a.runner.Add("goal", filter, goalDeps...); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *app) source([]any) (any, error) {
	if a.frame == nil {
		return nil, fmt.Errorf("no frame loaded")
	}
	return a.frame, nil
}

func (a *app) classify(deps []any) (any, error) {
	return a.opts.Classifier.Classify(deps[0].(image.Image)), nil
}

func integralOf(white bool) func([]any) (any, error) {
	return func(deps []any) (any, error) {
		cls := deps[0].(*imaging.Classification)
		if white {
			return integral.FromGray(cls.White), nil
		}
		return integral.FromGray(cls.Green), nil
	}
}

func (a *app) postWidth(deps []any) (any, error) {
	b := deps[0].(image.Image).Bounds()
	return a.opts.Widths.WidthMap(b.Dy(), b.Dx()), nil
}

func (a *app) fieldBorder(deps []any) (any, error) {
	cls := deps[0].(*imaging.Classification)
	return imaging.FieldMask(cls.Green, a.opts.MaskScale, a.opts.MaskRun)
}

// process runs the pipeline on one frame and writes the requested debug images.
func (a *app) process(frame image.Image, info *imaging.FrameInfo) (*frameReport, error) {
	a.frame = frame
	defer func() { a.frame = nil }()

	if err := a.runner.Step(); err != nil {
		return nil, err
	}
	out, err := a.runner.Output("goal")
	if err != nil {
		return nil, err
	}
	res := out.(*goal.Result)

	if a.opts.OutDir != "" {
		if err := a.writeDebug(frame, info, res); err != nil {
			return nil, err
		}
	}
	return &frameReport{Frame: info, ROIs: res.ROIs, Stats: res.Stats}, nil
}

func (a *app) writeDebug(frame image.Image, info *imaging.FrameInfo, res *goal.Result) error {
	if err := os.MkdirAll(a.opts.OutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	base := strings.TrimSuffix(filepath.Base(info.Path), filepath.Ext(info.Path))
	path := func(suffix string) string {
		return filepath.Join(a.opts.OutDir, base+suffix+".png")
	}

	if err := imaging.SaveImage(path("_rois"), imaging.DrawROIs(frame, res.ROIs, "#FFFF00")); err != nil {
		return err
	}
	if res.HeatMap != nil {
		if err := imaging.SaveImage(path("_heatmap"), imaging.Upscale(res.HeatMap, a.opts.HeatScale)); err != nil {
			return err
		}
	}
	if a.opts.Crops {
		for i, c := range imaging.CropROIs(frame, res.ROIs, a.opts.CropScale) {
			if err := imaging.SaveImage(path(fmt.Sprintf("_roi%d", i)), c.Image); err != nil {
				return err
			}
		}
	}

	a.log.Debug().Str("frame", info.Path).Str("dir", a.opts.OutDir).Msg("debug images written")
	return nil
}
