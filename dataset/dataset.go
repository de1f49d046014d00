// Package dataset reads and writes flattened image tables: one image per
// line, one comma separated pixel intensity per column.
//
// The layout matches what numpy.savetxt and pandas.DataFrame.to_csv produce
// for MNIST, so files written by the original Python tooling load unchanged.
// Written files carry a positional header (0, 1, ..., P-1) by default and
// every value keeps a decimal point, which lets Read tell the header apart
// from data rows.
package dataset

import (
	"gonum.org/v1/gonum/mat"
)

// Dataset is a rectangular table of pixel intensities, one row per image.
type Dataset struct {
	// X holds the values. It is nil when the table has no rows, since
	// gonum matrices cannot have a zero dimension.
	X *mat.Dense

	// Columns is the number of pixels per image. It is set even when X is nil.
	Columns int

	// Header reports whether a positional header row was present on read.
	Header bool
}

// New wraps a matrix. The data is copied, so later changes to m are not
// reflected in the Dataset.
func New(m mat.Matrix) *Dataset {
	_, c := m.Dims()
	return &Dataset{X: mat.DenseCopyOf(m), Columns: c}
}

// Empty returns a dataset with no rows and the given number of columns.
func Empty(columns int) *Dataset {
	return &Dataset{Columns: columns}
}

// Dims returns the number of rows and columns.
func (d *Dataset) Dims() (rows, cols int) {
	if d.X == nil {
		return 0, d.Columns
	}
	return d.X.Dims()
}

// IsEmpty reports whether the dataset has no rows.
func (d *Dataset) IsEmpty() bool {
	rows, _ := d.Dims()
	return rows == 0
}

// HeaderMode controls the positional header row.
type HeaderMode int

const (
	// HeaderAuto detects the header on read and writes one on write.
	HeaderAuto HeaderMode = iota
	// HeaderPresent always treats the first record as a header, and writes one.
	HeaderPresent
	// HeaderAbsent never reads nor writes a header.
	HeaderAbsent
)

func (m HeaderMode) String() string {
	switch m {
	case HeaderAuto:
		return "auto"
	case HeaderPresent:
		return "present"
	case HeaderAbsent:
		return "absent"
	default:
		return "unknown"
	}
}

// ParseHeaderMode converts "auto", "present" or "absent" into a HeaderMode.
func ParseHeaderMode(s string) (HeaderMode, bool) {
	switch s {
	case "auto", "":
		return HeaderAuto, true
	case "present":
		return HeaderPresent, true
	case "absent":
		return HeaderAbsent, true
	default:
		return HeaderAuto, false
	}
}

type options struct {
	header HeaderMode
	comma  rune
	source string
}

// Option configures Read, Load, Write and Save.
type Option func(*options)

// WithHeader sets the header handling mode.
func WithHeader(mode HeaderMode) Option {
	return func(o *options) {
		o.header = mode
	}
}

// WithComma sets the field delimiter. The default is ','.
func WithComma(comma rune) Option {
	return func(o *options) {
		o.comma = comma
	}
}

// WithSource names the stream in error messages. Load and Save set it to the file path.
func WithSource(name string) Option {
	return func(o *options) {
		o.source = name
	}
}

func newOptions(opts []Option) options {
	o := options{header: HeaderAuto, comma: ',', source: "<input>"}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
