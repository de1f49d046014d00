package log

// Operation context.
const (
	// ModelNameKey identifies the transformer, e.g. "PixelMasker".
	ModelNameKey = "model.name"

	// OperationKey is the operation being performed, see the Operation* values.
	OperationKey = "ml.operation"

	// ComponentKey identifies the package or tool emitting the record.
	ComponentKey = "ml.component"
)

// Data shape.
const (
	// SamplesKey is the number of rows (images) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of columns (pixels per image).
	FeaturesKey = "data.features"

	// HeaderKey reports whether a positional header row was read or written.
	HeaderKey = "data.header"

	// PathKey is the file being read or written.
	PathKey = "io.path"

	// BytesKey is the size of a file in bytes.
	BytesKey = "io.bytes"
)

// Transform parameters.
const (
	MaskPercentageKey = "mask.percentage"
	MaskCountKey      = "mask.count"
	NoiseLevelKey     = "noise.level"
	RandomSeedKey     = "config.random_seed"
)

// Distortion and timing.
const (
	DurationMsKey   = "perf.duration_ms"
	MSEKey          = "metrics.mse"
	PSNRKey         = "metrics.psnr"
	ZeroFractionKey = "metrics.zero_fraction"
)

// Errors.
const (
	ErrorKey      = "error"
	StacktraceKey = "error.stacktrace"
	ErrorTypeKey  = "error.type"
)

// Standard attribute values.
const (
	OperationLoad         = "load"
	OperationFit          = "fit"
	OperationTransform    = "transform"
	OperationFitTransform = "fit_transform"
	OperationSave         = "save"
	OperationPreview      = "preview"
)
