// Package preview renders one image of a dataset before and after a
// transformation as a side-by-side heat map, for a quick visual check of
// how strong a degradation is.
package preview

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/FilippoGiorgi4/TirocinioFp200/pkg/errors"
)

// DefaultWidth is the side of an MNIST digit.
const DefaultWidth = 28

// Image size of the rendered comparison.
const (
	imageWidth  = 6 * vg.Inch
	imageHeight = 3.4 * vg.Inch
)

// Comparison describes a single before/after rendering.
type Comparison struct {
	// Before and After hold the datasets before and after the
	// transformation. They must have the same shape.
	Before, After mat.Matrix

	// Row selects the image to show.
	Row int

	// Width is the image width in pixels. It must divide the number of
	// columns; the height is derived from it.
	Width int

	// Title is drawn above the images when not empty.
	Title string
}

// validate checks the comparison and returns the image height.
func (c *Comparison) validate() (int, error) {
	if c.Before == nil || c.After == nil {
		return 0, errors.NewValueError("preview", "both Before and After are required")
	}
	rows, cols := c.Before.Dims()
	ar, ac := c.After.Dims()
	if ar != rows {
		return 0, errors.NewDimensionError("preview", rows, ar, 0)
	}
	if ac != cols {
		return 0, errors.NewDimensionError("preview", cols, ac, 1)
	}
	if c.Row < 0 || c.Row >= rows {
		return 0, errors.NewValidationError("row", fmt.Sprintf("must be in [0, %d)", rows), c.Row)
	}
	if c.Width <= 0 || cols%c.Width != 0 {
		return 0, errors.NewValidationError("width", fmt.Sprintf("must divide the %d columns", cols), c.Width)
	}
	return cols / c.Width, nil
}

// Plot builds the heat map plot.
func (c *Comparison) Plot() (*plot.Plot, error) {
	height, err := c.validate()
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = c.Title
	p.HideAxes()

	pal := palette.Heat(256, 1)
	colors := pal.Colors()

	h := plotter.NewHeatMap(&sideBySide{
		before: c.Before,
		after:  c.After,
		row:    c.Row,
		width:  c.Width,
		height: height,
	}, pal)
	h.Min, h.Max = 0, 1
	h.Underflow = colors[0]
	h.Overflow = colors[len(colors)-1]
	h.NaN = color.White
	h.Rasterized = true
	p.Add(h)

	return p, nil
}

// Render writes the comparison in the given format ("png", "svg", "pdf", ...).
func (c *Comparison) Render(w io.Writer, format string) (n int64, err error) {
	defer errors.Recover(&err, "preview.Render")

	p, err := c.Plot()
	if err != nil {
		return 0, err
	}
	wt, err := p.WriterTo(imageWidth, imageHeight, format)
	if err != nil {
		return 0, errors.Wrapf(err, "preview: format %q", format)
	}
	return wt.WriteTo(w)
}

// Save renders the comparison to path. The format follows the file extension.
func (c *Comparison) Save(path string) (err error) {
	defer errors.Recover(&err, "preview.Save")

	p, err := c.Plot()
	if err != nil {
		return err
	}
	if err := p.Save(imageWidth, imageHeight, path); err != nil {
		return errors.NewFileError("create", path, err)
	}
	return nil
}

// sideBySide lays out the two images of one row next to each other, with a
// blank column in between. Grid row 0 is the bottom of the plot, so image
// rows are flipped.
type sideBySide struct {
	before, after mat.Matrix
	row           int
	width, height int
}

func (g *sideBySide) Dims() (c, r int) {
	return 2*g.width + 1, g.height
}

func (g *sideBySide) Z(c, r int) float64 {
	y := g.height - 1 - r
	switch {
	case c < g.width:
		return g.before.At(g.row, y*g.width+c)
	case c == g.width:
		return math.NaN()
	default:
		return g.after.At(g.row, y*g.width+c-g.width-1)
	}
}

func (g *sideBySide) X(c int) float64 { return float64(c) }
func (g *sideBySide) Y(r int) float64 { return float64(r) }
