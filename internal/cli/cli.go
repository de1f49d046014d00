// Package cli implements the mask, addnoise and removenoise commands.
// Each command reads a fixed input table, applies one transformation and
// writes the result next to it, printing a confirmation on success.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/FilippoGiorgi4/TirocinioFp200/core/model"
	"github.com/FilippoGiorgi4/TirocinioFp200/dataset"
	"github.com/FilippoGiorgi4/TirocinioFp200/pipeline"
	"github.com/FilippoGiorgi4/TirocinioFp200/pkg/errors"
	"github.com/FilippoGiorgi4/TirocinioFp200/pkg/log"
	"github.com/FilippoGiorgi4/TirocinioFp200/preprocessing"
	"github.com/FilippoGiorgi4/TirocinioFp200/preview"
)

// DefaultInput is the table every tool reads unless --input is given.
const DefaultInput = "mnist_test/x_test.csv"

// Default output tables.
const (
	DefaultMaskOutput        = "mnist_test/xmasked_test.csv"
	DefaultAddNoiseOutput    = "mnist_test/xrumore_test.csv"
	DefaultRemoveNoiseOutput = "mnist_test/xdegradato_test.csv"
)

// commonFlags are shared by all tools.
type commonFlags struct {
	input        string
	output       string
	seed         int64
	logLevel     string
	progress     bool
	preview      string
	previewWidth int
	header       string
}

func (f *commonFlags) register(fs *pflag.FlagSet, defaultOutput string) {
	fs.StringVar(&f.input, "input", DefaultInput, "input CSV table")
	fs.StringVar(&f.output, "output", defaultOutput, "output CSV table")
	fs.Int64Var(&f.seed, "seed", -1, "random seed; negative means non-reproducible")
	fs.StringVar(&f.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	fs.BoolVar(&f.progress, "progress", false, "show a progress bar on stderr while reading")
	fs.StringVar(&f.preview, "preview", "", "write a before/after image of the first row to this path")
	fs.IntVar(&f.previewWidth, "preview-width", preview.DefaultWidth, "image width in pixels for --preview")
	fs.StringVar(&f.header, "header", "auto", "input header row (auto, present, absent)")
}

func (f *commonFlags) randomOptions() []preprocessing.Option {
	if f.seed < 0 {
		return nil
	}
	return []preprocessing.Option{preprocessing.WithRandomState(f.seed)}
}

// tool describes one command.
type tool struct {
	use           string
	short         string
	long          string
	param         string
	paramUsage    string
	defaultOutput string
	newTransform  func(value float64, opts ...preprocessing.Option) model.Transformer
	confirmation  func(value float64, output string) string
}

func newCommand(t tool) *cobra.Command {
	var (
		flags commonFlags
		value float64
	)

	cmd := &cobra.Command{
		Use:           t.use,
		Short:         t.short,
		Long:          t.long,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			level, err := log.ParseLevel(flags.logLevel)
			if err != nil {
				return errors.NewValidationError("log-level", "must be one of debug, info, warn, error", flags.logLevel)
			}
			header, ok := dataset.ParseHeaderMode(flags.header)
			if !ok {
				return errors.NewValidationError("header", "must be one of auto, present, absent", flags.header)
			}

			provider := log.NewZerologProvider(cmd.ErrOrStderr(), level)
			if zl, ok := provider.GetLogger().(*log.ZerologLogger); ok {
				errors.SetZerologWarnFunc(zl.WarnFunc())
				defer errors.SetZerologWarnFunc(nil)
			}
			logger := provider.GetLoggerWithName(t.use)
			logger.Debug("Starting",
				t.param, value,
				log.PathKey, flags.input,
				log.RandomSeedKey, flags.seed,
			)

			cfg := pipeline.Config{
				Input:        flags.input,
				Output:       flags.output,
				ReadHeader:   header,
				Preview:      flags.preview,
				PreviewWidth: flags.previewWidth,
				Logger:       logger,
			}
			if flags.progress {
				cfg.Progress = cmd.ErrOrStderr()
			}

			if _, err := pipeline.Run(cfg, t.newTransform(value, flags.randomOptions()...)); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), t.confirmation(value, flags.output))
			return nil
		},
	}

	fs := cmd.Flags()
	fs.SortFlags = false
	fs.Float64Var(&value, t.param, 0, t.paramUsage)
	flags.register(fs, t.defaultOutput)
	_ = cmd.MarkFlagRequired(t.param)

	return cmd
}

// NewMaskCommand returns the command that zeroes a fixed share of pixels per image.
func NewMaskCommand() *cobra.Command {
	return newCommand(tool{
		use:   "mask",
		short: "Zero a fixed percentage of randomly chosen pixels in every image",
		long: `mask sets floor(mask_percentage × P) pixels of every row to 0, where P is
the number of columns. The pixels are chosen uniformly at random without
repetition, independently for each row.`,
		param:         "mask_percentage",
		paramUsage:    "share of pixels to zero per image, between 0 and 1 (required)",
		defaultOutput: DefaultMaskOutput,
		newTransform: func(v float64, opts ...preprocessing.Option) model.Transformer {
			return preprocessing.NewPixelMasker(v, opts...)
		},
		confirmation: func(v float64, output string) string {
			return fmt.Sprintf("Dataset with %.0f%% pixels removed saved to: %s", v*100, output)
		},
	})
}

// NewAddNoiseCommand returns the command that adds Gaussian noise.
func NewAddNoiseCommand() *cobra.Command {
	return newCommand(tool{
		use:   "addnoise",
		short: "Add Gaussian noise to every pixel and clip to [0, 1]",
		long: `addnoise adds an independent N(0, noise_level²) sample to every cell and
clips the result to [0, 1].`,
		param:         "noise_level",
		paramUsage:    "standard deviation of the noise, 0 or more (required)",
		defaultOutput: DefaultAddNoiseOutput,
		newTransform: func(v float64, opts ...preprocessing.Option) model.Transformer {
			return preprocessing.NewNoiseInjector(v, opts...)
		},
		confirmation: func(v float64, output string) string {
			return fmt.Sprintf("Dataset with noise (level %g) saved to: %s", v, output)
		},
	})
}

// NewRemoveNoiseCommand returns the command that subtracts Gaussian noise.
func NewRemoveNoiseCommand() *cobra.Command {
	return newCommand(tool{
		use:   "removenoise",
		short: "Subtract fresh Gaussian noise from every pixel and clip to [0, 1]",
		long: `removenoise subtracts a newly drawn N(0, noise_level²) sample from every
cell and clips the result to [0, 1]. The noise is independent of any noise
added earlier, so this degrades the images further rather than restoring them.`,
		param:         "noise_level",
		paramUsage:    "standard deviation of the noise, 0 or more (required)",
		defaultOutput: DefaultRemoveNoiseOutput,
		newTransform: func(v float64, opts ...preprocessing.Option) model.Transformer {
			return preprocessing.NewNoiseRemover(v, opts...)
		},
		confirmation: func(v float64, output string) string {
			return fmt.Sprintf("Dataset with noise removed (level %g) saved to: %s", v, output)
		},
	})
}

// Execute runs cmd and returns the process exit code. Errors are printed
// to the command's error stream.
func Execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return 1
	}
	return 0
}
