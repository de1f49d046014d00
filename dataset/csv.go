package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/FilippoGiorgi4/TirocinioFp200/pkg/errors"
)

// Read parses a delimited numeric table. Every record must have the same
// number of fields as the first one. Ragged rows, non-numeric cells and
// NaN or infinite values are reported as *errors.FormatError.
//
// With HeaderAuto the first record is skipped when it is exactly the
// positional header 0, 1, ..., P-1 written as integers.
func Read(r io.Reader, opts ...Option) (*Dataset, error) {
	o := newOptions(opts)

	cr := csv.NewReader(r)
	cr.Comma = o.comma
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var (
		data   []float64
		rows   int
		cols   = -1
		header bool
	)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, errors.NewFormatError(o.source, parseErr.Line, -1, parseErr.Err.Error())
			}
			return nil, errors.NewFileError("read", o.source, err)
		}
		line, _ := cr.FieldPos(0)

		if cols < 0 {
			cols = len(record)
			if o.header == HeaderPresent || (o.header == HeaderAuto && isPositionalHeader(record)) {
				header = true
				continue
			}
		}
		if len(record) != cols {
			return nil, errors.NewFormatError(o.source, line, -1,
				fmt.Sprintf("expected %d columns, got %d", cols, len(record)))
		}

		for j, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, errors.NewFormatError(o.source, line, j,
					fmt.Sprintf("cannot parse %q as a number", field))
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errors.NewFormatError(o.source, line, j,
					fmt.Sprintf("non-finite value %q", field))
			}
			data = append(data, v)
		}
		rows++
	}

	ds := &Dataset{Columns: max(cols, 0), Header: header}
	if rows > 0 {
		ds.X = mat.NewDense(rows, cols, data)
	}
	return ds, nil
}

// isPositionalHeader reports whether record is "0,1,...,len-1".
func isPositionalHeader(record []string) bool {
	for j, field := range record {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil || n != j {
			return false
		}
	}
	return true
}

// Load reads the table stored at path.
func Load(path string, opts ...Option) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewFileError("open", path, err)
	}
	defer f.Close()

	return Read(f, append([]Option{WithSource(path)}, opts...)...)
}

// Write serializes ds, one row per line. Unless the header mode is
// HeaderAbsent, a positional header 0, 1, ..., P-1 comes first.
func Write(w io.Writer, ds *Dataset, opts ...Option) error {
	o := newOptions(opts)
	rows, cols := ds.Dims()

	cw := csv.NewWriter(w)
	cw.Comma = o.comma

	record := make([]string, cols)
	if o.header != HeaderAbsent && cols > 0 {
		for j := range record {
			record[j] = strconv.Itoa(j)
		}
		if err := cw.Write(record); err != nil {
			return errors.NewFileError("write", o.source, err)
		}
	}

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			record[j] = FormatValue(ds.X.At(i, j))
		}
		if err := cw.Write(record); err != nil {
			return errors.NewFileError("write", o.source, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.NewFileError("write", o.source, err)
	}
	return nil
}

// FormatValue formats v with the shortest decimal representation that
// parses back to the same float64. Integral values keep a trailing ".0"
// so that data rows never look like the integer header.
func FormatValue(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// Save writes ds to path atomically: the table goes to a temporary file in
// the same directory which is renamed over path once fully written.
func Save(path string, ds *Dataset, opts ...Option) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.NewFileError("create", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = Write(tmp, ds, append([]Option{WithSource(path)}, opts...)...); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return errors.NewFileError("chmod", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return errors.NewFileError("sync", path, err)
	}
	if err = tmp.Close(); err != nil {
		return errors.NewFileError("close", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.NewFileError("rename", path, err)
	}
	return nil
}
