// Package pipeline runs one dataset transformation end to end: load the
// input table, apply a transformer, measure the distortion, write the
// output table and optionally render a preview image.
package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"gonum.org/v1/gonum/mat"

	"github.com/FilippoGiorgi4/TirocinioFp200/core/model"
	"github.com/FilippoGiorgi4/TirocinioFp200/dataset"
	"github.com/FilippoGiorgi4/TirocinioFp200/metrics"
	"github.com/FilippoGiorgi4/TirocinioFp200/pkg/errors"
	"github.com/FilippoGiorgi4/TirocinioFp200/pkg/log"
	"github.com/FilippoGiorgi4/TirocinioFp200/preview"
)

// Config describes where to read from and write to.
type Config struct {
	// Input and Output are file paths. Both are required.
	Input  string
	Output string

	// ReadHeader controls header detection on the input.
	ReadHeader dataset.HeaderMode

	// WriteHeader controls the header of the output. HeaderAuto writes one.
	WriteHeader dataset.HeaderMode

	// Progress, when not nil, receives a progress bar while the input is read.
	Progress io.Writer

	// Preview, when not empty, is the path of a before/after image of the
	// first row. The format follows the extension.
	Preview string

	// PreviewWidth is the image width in pixels, preview.DefaultWidth if zero.
	PreviewWidth int

	// Logger receives structured records. log.GetLogger() if nil.
	Logger log.Logger
}

// Result summarizes a run.
type Result struct {
	Rows    int
	Columns int

	// Distortion between input and output. Zero for an empty dataset.
	MSE          float64
	PSNR         float64
	ZeroFraction float64

	Duration time.Duration
}

// Run loads cfg.Input, applies t and writes the result to cfg.Output.
// The transformer is fitted on the input before transforming it. A table
// with no rows is written back unchanged without calling t.
func Run(cfg Config, t model.Transformer) (*Result, error) {
	start := time.Now()

	if cfg.Input == "" {
		return nil, errors.NewValueError("pipeline.Run", "input path is required")
	}
	if cfg.Output == "" {
		return nil, errors.NewValueError("pipeline.Run", "output path is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.GetLogger()
	}
	logger = logger.With(log.ComponentKey, "pipeline")
	if d, ok := t.(model.Describer); ok {
		logger = logger.With(log.ModelNameKey, d.Name())
		logger.Debug("Parameters", "params", d.GetParams())
	}

	ds, err := load(cfg, logger)
	if err != nil {
		logger.Error("Load failed", err, log.PathKey, cfg.Input)
		return nil, err
	}
	rows, cols := ds.Dims()
	res := &Result{Rows: rows, Columns: cols}

	if ds.IsEmpty() {
		logger.Warn("Input has no rows, writing an empty table", log.PathKey, cfg.Input)
		if err := save(cfg, ds, logger); err != nil {
			return nil, err
		}
		res.Duration = time.Since(start)
		return res, nil
	}

	var out mat.Matrix
	err = errors.SafeExecute("pipeline.FitTransform", func() error {
		var err error
		out, err = t.FitTransform(ds.X)
		return err
	})
	if err != nil {
		logger.Error("Transform failed", err, log.OperationKey, log.OperationFitTransform)
		return nil, err
	}
	logger.Debug("Transform finished",
		log.OperationKey, log.OperationFitTransform,
		log.SamplesKey, rows,
		log.FeaturesKey, cols,
	)

	if err := measure(res, ds.X, out); err != nil {
		return nil, err
	}
	logger.Info("Distortion",
		log.MSEKey, res.MSE,
		log.PSNRKey, res.PSNR,
		log.ZeroFractionKey, res.ZeroFraction,
	)

	if err := save(cfg, dataset.New(out), logger); err != nil {
		return nil, err
	}

	if cfg.Preview != "" {
		if err := renderPreview(cfg, ds.X, out, t, logger); err != nil {
			return nil, err
		}
	}

	res.Duration = time.Since(start)
	logger.Info("Run finished",
		log.SamplesKey, rows,
		log.FeaturesKey, cols,
		log.DurationMsKey, res.Duration.Milliseconds(),
	)
	return res, nil
}

func load(cfg Config, logger log.Logger) (*dataset.Dataset, error) {
	f, err := os.Open(cfg.Input)
	if err != nil {
		return nil, errors.NewFileError("open", cfg.Input, err)
	}
	defer f.Close()

	var r io.Reader = f
	if cfg.Progress != nil {
		var size int64 = -1
		if info, err := f.Stat(); err == nil {
			size = info.Size()
		}
		bar := progressbar.NewOptions64(size,
			progressbar.OptionSetWriter(cfg.Progress),
			progressbar.OptionSetDescription("reading "+filepath.Base(cfg.Input)),
			progressbar.OptionShowBytes(true),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionOnCompletion(func() { io.WriteString(cfg.Progress, "\n") }),
		)
		pr := progressbar.NewReader(f, bar)
		defer bar.Finish()
		r = &pr
	}

	ds, err := dataset.Read(r, dataset.WithSource(cfg.Input), dataset.WithHeader(cfg.ReadHeader))
	if err != nil {
		return nil, err
	}

	rows, cols := ds.Dims()
	logger.Info("Dataset loaded",
		log.OperationKey, log.OperationLoad,
		log.PathKey, cfg.Input,
		log.SamplesKey, rows,
		log.FeaturesKey, cols,
		log.HeaderKey, ds.Header,
	)
	return ds, nil
}

func measure(res *Result, before, after mat.Matrix) (err error) {
	if res.MSE, err = metrics.MSE(before, after); err != nil {
		return err
	}
	if res.PSNR, err = metrics.PSNR(before, after, 1); err != nil {
		return err
	}
	res.ZeroFraction, err = metrics.ZeroFraction(after)
	return err
}

func save(cfg Config, ds *dataset.Dataset, logger log.Logger) error {
	if err := dataset.Save(cfg.Output, ds, dataset.WithHeader(cfg.WriteHeader)); err != nil {
		logger.Error("Save failed", err, log.PathKey, cfg.Output)
		return err
	}

	fields := []any{log.OperationKey, log.OperationSave, log.PathKey, cfg.Output}
	if info, err := os.Stat(cfg.Output); err == nil {
		fields = append(fields, log.BytesKey, info.Size())
	}
	logger.Info("Dataset saved", fields...)
	return nil
}

func renderPreview(cfg Config, before, after mat.Matrix, t model.Transformer, logger log.Logger) error {
	width := cfg.PreviewWidth
	if width == 0 {
		width = preview.DefaultWidth
	}

	cmp := &preview.Comparison{Before: before, After: after, Width: width}
	if s, ok := t.(fmt.Stringer); ok {
		cmp.Title = s.String()
	}
	if err := cmp.Save(cfg.Preview); err != nil {
		logger.Error("Preview failed", err, log.PathKey, cfg.Preview)
		return err
	}

	logger.Info("Preview saved", log.OperationKey, log.OperationPreview, log.PathKey, cfg.Preview)
	return nil
}
