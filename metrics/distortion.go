// Package metrics は元の画像と劣化後の画像の差を測る指標を提供する。
// すべての関数は行列の全要素を対象とする。
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/FilippoGiorgi4/TirocinioFp200/pkg/errors"
)

// checkShapes は2つの行列が空でなく同じ形であることを確認する
func checkShapes(op string, a, b mat.Matrix) (rows, cols int, err error) {
	ra, ca := a.Dims()
	rb, cb := b.Dims()

	if ra == 0 || ca == 0 {
		return 0, 0, errors.NewValueError(op, "empty matrix")
	}
	if ra != rb {
		return 0, 0, errors.NewDimensionError(op, ra, rb, 0)
	}
	if ca != cb {
		return 0, 0, errors.NewDimensionError(op, ca, cb, 1)
	}
	return ra, ca, nil
}

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(original, degraded mat.Matrix) (float64, error) {
	r, c, err := checkShapes("MSE", original, degraded)
	if err != nil {
		return 0, err
	}

	// MSE = (1/n) * Σ(original - degraded)²
	var sum float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			diff := original.At(i, j) - degraded.At(i, j)
			sum += diff * diff
		}
	}

	return sum / float64(r*c), nil
}

// RMSE は平方根平均二乗誤差（Root Mean Squared Error）を計算する
func RMSE(original, degraded mat.Matrix) (float64, error) {
	mse, err := MSE(original, degraded)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差（Mean Absolute Error）を計算する
func MAE(original, degraded mat.Matrix) (float64, error) {
	r, c, err := checkShapes("MAE", original, degraded)
	if err != nil {
		return 0, err
	}

	var sum float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			sum += math.Abs(original.At(i, j) - degraded.At(i, j))
		}
	}

	return sum / float64(r*c), nil
}

// PSNR はピーク信号対雑音比をデシベルで返す。
// maxValue は画素値の最大値（[0, 1] に正規化された画像では1）。
// 2つの行列が等しい場合は +Inf を返す
func PSNR(original, degraded mat.Matrix, maxValue float64) (float64, error) {
	if !(maxValue > 0) || math.IsInf(maxValue, 0) {
		return 0, errors.NewValidationError("max_value", "must be a finite value > 0", maxValue)
	}

	mse, err := MSE(original, degraded)
	if err != nil {
		return 0, err
	}
	if mse == 0 {
		return math.Inf(1), nil
	}

	// PSNR = 10 * log10(MAX² / MSE)
	return 10 * math.Log10(maxValue*maxValue/mse), nil
}

// ZeroFraction はちょうど0である要素の割合を返す
func ZeroFraction(X mat.Matrix) (float64, error) {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return 0, errors.NewValueError("ZeroFraction", "empty matrix")
	}

	zeros := 0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if X.At(i, j) == 0 {
				zeros++
			}
		}
	}

	return float64(zeros) / float64(r*c), nil
}
