package model

import (
	"context"

	"github.com/YuminosukeSato/dtforest/core/dataset"
)

// Fitter は事例集合から学習可能なモデルのインターフェース
type Fitter interface {
	// Fit は事例集合と属性名（最後がラベル）でモデルを学習させる
	Fit(examples dataset.Examples, attributes dataset.Attributes) error
}

// ContextFitter はキャンセル可能な学習をサポートするモデルのインターフェース
type ContextFitter interface {
	FitContext(ctx context.Context, examples dataset.Examples, attributes dataset.Attributes) error
}

// Predictor は1件の事例に対する予測を行うモデルのインターフェース
type Predictor interface {
	// Predict は事例のラベルを予測する。分類できない場合はUnknownを返す
	Predict(example dataset.Example) (Prediction, error)
}

// BatchPredictor は複数の事例をまとめて予測するモデルのインターフェース
type BatchPredictor interface {
	PredictBatch(examples dataset.Examples) ([]Prediction, error)
}
