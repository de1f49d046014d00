package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/FilippoGiorgi4/TirocinioFp200/core/model"
	"github.com/FilippoGiorgi4/TirocinioFp200/pkg/errors"
)

// gaussian はNoiseInjectorとNoiseRemoverの共通部分。
// 平均0・標準偏差NoiseLevelの正規乱数を行優先で N×P 個引き、
// sign倍して加えた後 [0, 1] にクリップする
type gaussian struct {
	model.BaseEstimator
	stochastic

	// NoiseLevel は正規分布の標準偏差 (0以上)
	NoiseLevel float64

	// NFeatures はFit時の画素数
	NFeatures int

	name string
	sign float64
}

func (g *gaussian) fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.Wrap(errors.ErrEmptyData, g.name+".Fit")
	}
	if math.IsNaN(g.NoiseLevel) || math.IsInf(g.NoiseLevel, 0) || g.NoiseLevel < 0 {
		return errors.NewValidationError("noise_level", "must be a finite value >= 0", g.NoiseLevel)
	}

	g.NFeatures = c
	g.SetFitted()
	return nil
}

func (g *gaussian) transform(X mat.Matrix) (mat.Matrix, error) {
	if err := g.CheckFitted(g.name, "Transform"); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, g.name+".Transform")
	}
	if c != g.NFeatures {
		return nil, errors.NewDimensionError(g.name+".Transform", g.NFeatures, c, 1)
	}
	if err := errors.CheckMatrix(g.name+".Transform", X); err != nil {
		return nil, err
	}

	// NoiseLevelが0のときは乱数を消費せずクリップだけ行う
	draw := func() float64 { return 0 }
	if g.NoiseLevel > 0 {
		dist := distuv.Normal{Mu: 0, Sigma: g.NoiseLevel, Src: g.src}
		draw = dist.Rand
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := X.At(i, j) + g.sign*draw()
			result.Set(i, j, errors.ClipValue(v, 0, 1))
		}
	}

	return result, nil
}

func (g *gaussian) params() map[string]interface{} {
	return map[string]interface{}{
		"noise_level":  g.NoiseLevel,
		"random_state": g.seedParam(),
	}
}

func (g *gaussian) String() string {
	if !g.IsFitted() {
		return fmt.Sprintf("%s(noise_level=%g)", g.name, g.NoiseLevel)
	}
	return fmt.Sprintf("%s(noise_level=%g, n_features=%d)", g.name, g.NoiseLevel, g.NFeatures)
}

// NoiseInjector は加法的ガウスノイズを加え、結果を [0, 1] にクリップする
//
//	Y = clip(X + N(0, NoiseLevel), 0, 1)
type NoiseInjector struct {
	gaussian
}

// NewNoiseInjector は新しいNoiseInjectorを作成する
//
// 使用例:
//
//	injector := preprocessing.NewNoiseInjector(0.2, preprocessing.WithRandomState(42))
//	noisy, err := injector.FitTransform(X)
func NewNoiseInjector(noiseLevel float64, opts ...Option) *NoiseInjector {
	n := &NoiseInjector{gaussian{NoiseLevel: noiseLevel, name: "NoiseInjector", sign: 1}}
	n.apply(opts)
	return n
}

// Fit はノイズレベルを検証する
func (n *NoiseInjector) Fit(X mat.Matrix) error { return n.fit(X) }

// Transform はノイズを加えた新しい行列を返す
func (n *NoiseInjector) Transform(X mat.Matrix) (mat.Matrix, error) { return n.transform(X) }

// FitTransform はFitとTransformを同時に実行する
func (n *NoiseInjector) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := n.Fit(X); err != nil {
		return nil, err
	}
	return n.Transform(X)
}

// Name は変換器の名前を返す
func (n *NoiseInjector) Name() string { return n.name }

// GetParams はパラメータを取得する
func (n *NoiseInjector) GetParams() map[string]interface{} { return n.params() }

// NoiseRemover は新しく独立に生成したガウスノイズを引き、[0, 1] にクリップする
//
//	Y = clip(X - N(0, NoiseLevel), 0, 1)
//
// 以前に加えたノイズを知らないため逆変換にはならず、実際には劣化が増える。
// 名前に反して「ノイズ除去」ではない点に注意
type NoiseRemover struct {
	gaussian
}

// NewNoiseRemover は新しいNoiseRemoverを作成する
func NewNoiseRemover(noiseLevel float64, opts ...Option) *NoiseRemover {
	n := &NoiseRemover{gaussian{NoiseLevel: noiseLevel, name: "NoiseRemover", sign: -1}}
	n.apply(opts)
	return n
}

// Fit はノイズレベルを検証する
func (n *NoiseRemover) Fit(X mat.Matrix) error { return n.fit(X) }

// Transform はノイズを引いた新しい行列を返す
func (n *NoiseRemover) Transform(X mat.Matrix) (mat.Matrix, error) { return n.transform(X) }

// FitTransform はFitとTransformを同時に実行する
func (n *NoiseRemover) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := n.Fit(X); err != nil {
		return nil, err
	}
	return n.Transform(X)
}

// Name は変換器の名前を返す
func (n *NoiseRemover) Name() string { return n.name }

// GetParams はパラメータを取得する
func (n *NoiseRemover) GetParams() map[string]interface{} { return n.params() }
