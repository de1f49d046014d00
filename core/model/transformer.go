package model

import "gonum.org/v1/gonum/mat"

// Transformer はデータ変換のインターフェース
type Transformer interface {
	// Fit は変換に必要なパラメータを検証・記録する
	Fit(X mat.Matrix) error

	// Transform は入力を変更せず、新しい行列として変換結果を返す
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform はFitとTransformを同時に実行する
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}

// Describer はログや確認メッセージ用に自身のパラメータを公開する
type Describer interface {
	// Name は変換器の型名を返す（例: "PixelMasker"）
	Name() string

	// GetParams はパラメータを名前付きで返す
	GetParams() map[string]interface{}
}
