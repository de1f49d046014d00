package errors

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewFileError(t *testing.T) {
	err := NewFileError("open", "mnist_test/x_test.csv", os.ErrNotExist)

	want := "tirocinio: open mnist_test/x_test.csv: file does not exist"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	// 原因のエラーまで辿れるか確認
	if !Is(err, os.ErrNotExist) {
		t.Error("Expected Is(err, os.ErrNotExist) to be true")
	}

	var fileErr *FileError
	if !As(err, &fileErr) {
		t.Fatal("Error should be castable to *FileError")
	}
	if fileErr.Path != "mnist_test/x_test.csv" {
		t.Errorf("Path = %q", fileErr.Path)
	}

	// スタックトレースの存在確認
	formatted := fmt.Sprintf("%+v", err)
	if !strings.Contains(formatted, "errors_test.go") {
		t.Error("Expected stack trace to contain test file name")
	}
}

func TestNewFormatError(t *testing.T) {
	tests := []struct {
		name    string
		line    int
		column  int
		wantMsg string
	}{
		{
			name:    "cell position",
			line:    3,
			column:  2,
			wantMsg: "tirocinio: x.csv:3: column 2: not a number",
		},
		{
			name:    "whole line",
			line:    3,
			column:  -1,
			wantMsg: "tirocinio: x.csv:3: not a number",
		},
		{
			name:    "unknown position",
			line:    0,
			column:  -1,
			wantMsg: "tirocinio: x.csv: not a number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewFormatError("x.csv", tt.line, tt.column, "not a number")
			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			var formatErr *FormatError
			if !As(err, &formatErr) {
				t.Error("Error should be castable to *FormatError")
			}
		})
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("PixelMasker.Transform", 784, 10, 1)

	want := "tirocinio: PixelMasker.Transform: dimension mismatch on axis 1 (columns). Expected 784, got 10"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Error("Error should be castable to *DimensionError")
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("NoiseInjector", "Transform")

	want := "tirocinio: NoiseInjector: this transformer is not fitted yet. Call Fit() before using Transform()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var notFittedErr *NotFittedError
	if !As(err, &notFittedErr) {
		t.Error("Error should be castable to *NotFittedError")
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("mask_percentage", "must be in [0, 1]", 1.5)

	want := "tirocinio: validation failed for parameter 'mask_percentage': must be in [0, 1] (got: 1.5)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var valErr *ValidationError
	if !As(err, &valErr) {
		t.Error("Error should be castable to *ValidationError")
	}
}

func TestMarshalZerologObject(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	var formatErr *FormatError
	if !As(NewFormatError("x.csv", 2, 1, "not a number"), &formatErr) {
		t.Fatal("Error should be castable to *FormatError")
	}
	logger.Error().EmbedObject(formatErr).Msg("load failed")

	out := buf.String()
	for _, want := range []string{`"type":"FormatError"`, `"line":2`, `"source":"x.csv"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %s does not contain %s", out, want)
		}
	}
}

func TestWarn(t *testing.T) {
	var got []error
	prev := warningHandler
	SetWarningHandler(func(w error) { got = append(got, w) })
	defer SetWarningHandler(prev)

	Warn(NewMaskRoundingWarning(0.001, 784, 0))
	if len(got) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(got))
	}
	want := "mask percentage 0.001 of 784 columns rounds down to 0 masked pixels per row"
	if got[0].Error() != want {
		t.Errorf("Error() = %v, want %v", got[0].Error(), want)
	}

	// zerologが設定されている場合はそちらが優先される
	var viaZerolog int
	SetZerologWarnFunc(func(error) { viaZerolog++ })
	defer SetZerologWarnFunc(nil)

	Warn(NewMaskRoundingWarning(0.001, 784, 0))
	if viaZerolog != 1 || len(got) != 1 {
		t.Errorf("expected warning routed to zerolog only, got zerolog=%d handler=%d", viaZerolog, len(got))
	}
}

func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrEmptyData, "in %s: expected %d rows", "Transform", 10)

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}

	expectedMsg := "in Transform: expected 10 rows"
	if !strings.Contains(wrapped.Error(), expectedMsg) {
		t.Errorf("Expected wrapped error to contain %q", expectedMsg)
	}
}
