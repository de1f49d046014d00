package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/FilippoGiorgi4/TirocinioFp200/core/model"
	"github.com/FilippoGiorgi4/TirocinioFp200/pkg/errors"
)

// PixelMasker は各画像（行）の画素のうち一定割合をランダムに0にする変換器。
// マスクする画素数は行ごとに floor(MaskPercentage × 画素数) で固定され、
// 位置は行ごとに独立に、重複なく一様に選ばれる
type PixelMasker struct {
	model.BaseEstimator
	stochastic

	// MaskPercentage は0にする画素の割合 (0〜1)
	MaskPercentage float64

	// NFeatures はFit時の画素数
	NFeatures int

	// MaskCount は1行あたりに0にする画素数
	MaskCount int

	// idx は部分Fisher–Yatesシャッフル用の作業領域
	idx []int
}

// NewPixelMasker は新しいPixelMaskerを作成する
//
// パラメータ:
//   - maskPercentage: 0にする画素の割合 (0〜1)
//   - opts: WithRandomState, WithSource
//
// 使用例:
//
//	masker := preprocessing.NewPixelMasker(0.3, preprocessing.WithRandomState(42))
//	masked, err := masker.FitTransform(X)
func NewPixelMasker(maskPercentage float64, opts ...Option) *PixelMasker {
	m := &PixelMasker{MaskPercentage: maskPercentage}
	m.apply(opts)
	return m
}

// Fit はパラメータを検証し、1行あたりのマスク数を決める
func (m *PixelMasker) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.Wrap(errors.ErrEmptyData, "PixelMasker.Fit")
	}

	p := m.MaskPercentage
	if math.IsNaN(p) || p < 0 || p > 1 {
		return errors.NewValidationError("mask_percentage", "must be in [0, 1]", p)
	}

	m.NFeatures = c
	m.MaskCount = int(math.Floor(p * float64(c)))
	if p > 0 && m.MaskCount == 0 {
		errors.Warn(errors.NewMaskRoundingWarning(p, c, m.MaskCount))
	}

	m.SetFitted()
	return nil
}

// Transform は各行からMaskCount個の画素を選んで0にした新しい行列を返す。
// 入力は変更しない
func (m *PixelMasker) Transform(X mat.Matrix) (mat.Matrix, error) {
	if err := m.CheckFitted("PixelMasker", "Transform"); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "PixelMasker.Transform")
	}
	if c != m.NFeatures {
		return nil, errors.NewDimensionError("PixelMasker.Transform", m.NFeatures, c, 1)
	}
	if err := errors.CheckMatrix("PixelMasker.Transform", X); err != nil {
		return nil, err
	}

	result := mat.DenseCopyOf(X)
	if m.MaskCount == 0 {
		return result, nil
	}

	if len(m.idx) != c {
		m.idx = make([]int, c)
	}
	for i := 0; i < r; i++ {
		// 行ごとに 0..c-1 から始め、先頭MaskCount個だけシャッフルする
		for j := range m.idx {
			m.idx[j] = j
		}
		for j := 0; j < m.MaskCount; j++ {
			k := j + m.rng.IntN(c-j)
			m.idx[j], m.idx[k] = m.idx[k], m.idx[j]
			result.Set(i, m.idx[j], 0)
		}
	}

	return result, nil
}

// FitTransform はFitとTransformを同時に実行する
func (m *PixelMasker) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := m.Fit(X); err != nil {
		return nil, err
	}
	return m.Transform(X)
}

// Name は変換器の名前を返す
func (m *PixelMasker) Name() string {
	return "PixelMasker"
}

// GetParams はパラメータを取得する
func (m *PixelMasker) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"mask_percentage": m.MaskPercentage,
		"random_state":    m.seedParam(),
	}
}

// String は変換器の文字列表現を返す
func (m *PixelMasker) String() string {
	if !m.IsFitted() {
		return fmt.Sprintf("PixelMasker(mask_percentage=%g)", m.MaskPercentage)
	}
	return fmt.Sprintf("PixelMasker(mask_percentage=%g, n_features=%d, mask_count=%d)",
		m.MaskPercentage, m.NFeatures, m.MaskCount)
}
