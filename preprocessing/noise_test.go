package preprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/FilippoGiorgi4/TirocinioFp200/core/model"
	"github.com/FilippoGiorgi4/TirocinioFp200/metrics"
	"github.com/FilippoGiorgi4/TirocinioFp200/pkg/errors"
)

var (
	_ model.Transformer = (*NoiseInjector)(nil)
	_ model.Transformer = (*NoiseRemover)(nil)
	_ model.Describer   = (*NoiseInjector)(nil)
	_ model.Describer   = (*NoiseRemover)(nil)
)

func newNoise(kind string, level float64, opts ...Option) model.Transformer {
	if kind == "remove" {
		return NewNoiseRemover(level, opts...)
	}
	return NewNoiseInjector(level, opts...)
}

func TestNoiseZeroLevelIsIdentity(t *testing.T) {
	inputs := []*mat.Dense{
		mat.NewDense(1, 2, []float64{1.0, 0.0}),
		mat.NewDense(2, 3, []float64{0.1, 0.5, 0.9, 0, 1, 0.25}),
	}

	for _, kind := range []string{"add", "remove"} {
		for _, X := range inputs {
			got, err := newNoise(kind, 0).FitTransform(X)
			require.NoError(t, err)
			assert.True(t, mat.Equal(X, got), "%s: %v", kind, mat.Formatted(got))
		}
	}
}

func TestNoiseOutputWithinUnitRange(t *testing.T) {
	// 範囲外の入力でも出力は必ず [0, 1] に収まる
	X := mat.NewDense(2, 4, []float64{
		5, -3, 0.5, 1e6,
		-1e6, 0, 1, 2,
	})

	for _, kind := range []string{"add", "remove"} {
		for _, level := range []float64{0, 0.01, 0.5, 10, 1e9} {
			got, err := newNoise(kind, level, WithRandomState(9)).FitTransform(X)
			require.NoError(t, err)

			r, c := got.Dims()
			for i := 0; i < r; i++ {
				for j := 0; j < c; j++ {
					v := got.At(i, j)
					assert.True(t, v >= 0 && v <= 1, "%s level=%g: (%d,%d)=%g", kind, level, i, j, v)
				}
			}
		}
	}
}

func TestNoiseClipsHalfAtZero(t *testing.T) {
	// [[0.0]] に標準偏差10のノイズ: 約半分の試行で出力はちょうど0
	const trials = 4000
	X := mat.NewDense(1, 1, []float64{0})

	for _, kind := range []string{"add", "remove"} {
		tr := newNoise(kind, 10, WithRandomState(123))
		require.NoError(t, tr.Fit(X))

		zeros := 0
		for n := 0; n < trials; n++ {
			got, err := tr.Transform(X)
			require.NoError(t, err)
			if got.At(0, 0) == 0 {
				zeros++
			}
		}
		assert.InDelta(t, 0.5, float64(zeros)/trials, 0.05, kind)
	}
}

func TestNoiseInjectorDistribution(t *testing.T) {
	const sigma = 0.05
	X := constant(200, 100, 0.5)

	got, err := NewNoiseInjector(sigma, WithRandomState(2)).FitTransform(X)
	require.NoError(t, err)

	var diff mat.Dense
	diff.Sub(got, X)
	mean, std := stat.MeanStdDev(diff.RawMatrix().Data, nil)
	assert.InDelta(t, 0, mean, 0.002)
	assert.InDelta(t, sigma, std, 0.002)
}

func TestNoiseRemoverIsNotInverse(t *testing.T) {
	// ノイズ除去は独立なノイズを引くだけなので、誤差は増える
	const sigma = 0.1
	X := constant(100, 200, 0.5)

	noisy, err := NewNoiseInjector(sigma, WithRandomState(1)).FitTransform(X)
	require.NoError(t, err)
	restored, err := NewNoiseRemover(sigma, WithRandomState(2)).FitTransform(noisy)
	require.NoError(t, err)

	noisyMSE, err := metrics.MSE(X, noisy)
	require.NoError(t, err)
	restoredMSE, err := metrics.MSE(X, restored)
	require.NoError(t, err)

	assert.InDelta(t, sigma*sigma, noisyMSE, 0.001)
	assert.InDelta(t, 2*sigma*sigma, restoredMSE, 0.002)
	assert.Greater(t, restoredMSE, noisyMSE)
}

func TestNoiseSignsAreOpposite(t *testing.T) {
	// 同じ乱数列なら加算と減算の結果は0.5を中心に対称になる
	X := constant(10, 10, 0.5)

	added, err := NewNoiseInjector(0.01, WithRandomState(77)).FitTransform(X)
	require.NoError(t, err)
	removed, err := NewNoiseRemover(0.01, WithRandomState(77)).FitTransform(X)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		for j := 0; j < 10; j++ {
			assert.InDelta(t, 1.0, added.At(i, j)+removed.At(i, j), 1e-12)
		}
	}
}

func TestNoiseReproducible(t *testing.T) {
	X := constant(5, 5, 0.5)

	for _, kind := range []string{"add", "remove"} {
		a, err := newNoise(kind, 0.2, WithRandomState(42)).FitTransform(X)
		require.NoError(t, err)
		b, err := newNoise(kind, 0.2, WithRandomState(42)).FitTransform(X)
		require.NoError(t, err)
		assert.True(t, mat.Equal(a, b), kind)

		c, err := newNoise(kind, 0.2, WithRandomState(43)).FitTransform(X)
		require.NoError(t, err)
		assert.False(t, mat.Equal(a, c), kind)
	}
}

func TestNoiseDoesNotMutateInput(t *testing.T) {
	X := constant(3, 3, 0.5)
	before := mat.DenseCopyOf(X)

	for _, kind := range []string{"add", "remove"} {
		_, err := newNoise(kind, 0.3).FitTransform(X)
		require.NoError(t, err)
		assert.True(t, mat.Equal(before, X))
	}
}

func TestNoiseValidation(t *testing.T) {
	X := constant(2, 2, 0.5)

	for _, kind := range []string{"add", "remove"} {
		for _, level := range []float64{-0.01, math.NaN(), math.Inf(1)} {
			_, err := newNoise(kind, level).FitTransform(X)
			var valErr *errors.ValidationError
			require.True(t, errors.As(err, &valErr), "%s level=%v: %v", kind, level, err)
			assert.Equal(t, "noise_level", valErr.ParamName)
		}
	}
}

func TestNoiseErrors(t *testing.T) {
	tests := []struct {
		name string
		tr   interface {
			model.Transformer
			model.Describer
		}
	}{
		{"injector", NewNoiseInjector(0.1)},
		{"remover", NewNoiseRemover(0.1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.tr.Transform(constant(1, 3, 0.5))
			var notFitted *errors.NotFittedError
			require.True(t, errors.As(err, &notFitted))
			assert.Equal(t, tt.tr.Name(), notFitted.ModelName)

			require.NoError(t, tt.tr.Fit(constant(1, 3, 0.5)))

			_, err = tt.tr.Transform(constant(1, 2, 0.5))
			var dimErr *errors.DimensionError
			assert.True(t, errors.As(err, &dimErr))

			_, err = tt.tr.Transform(mat.NewDense(1, 3, []float64{0, math.Inf(-1), 0}))
			var numErr *errors.NumericalInstabilityError
			assert.True(t, errors.As(err, &numErr))

			_, err = tt.tr.Transform(&mat.Dense{})
			assert.True(t, errors.Is(err, errors.ErrEmptyData))
		})
	}
}

func TestNoiseParams(t *testing.T) {
	injector := NewNoiseInjector(0.2, WithRandomState(3))
	assert.Equal(t, "NoiseInjector", injector.Name())
	assert.Equal(t, map[string]interface{}{"noise_level": 0.2, "random_state": int64(3)}, injector.GetParams())
	assert.Equal(t, "NoiseInjector(noise_level=0.2)", injector.String())

	remover := NewNoiseRemover(0.2)
	assert.Equal(t, "NoiseRemover", remover.Name())
	require.NoError(t, remover.Fit(constant(1, 4, 0.5)))
	assert.Equal(t, "NoiseRemover(noise_level=0.2, n_features=4)", remover.String())
}
