// Package metrics は分類結果の評価指標を提供します。
// 予測はmodel.Predictionで表され、Unknown（分類不能）はどのラベルとも一致しない独立した結果として扱われます。
package metrics

import (
	"sort"

	"github.com/YuminosukeSato/dtforest/core/dataset"
	"github.com/YuminosukeSato/dtforest/core/model"
	"github.com/YuminosukeSato/dtforest/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

func checkLengths(op string, yTrue []dataset.Value, yPred []model.Prediction) error {
	// 入力検証
	if len(yTrue) == 0 {
		return errors.NewValueError(op, "empty input")
	}
	if len(yPred) != len(yTrue) {
		return errors.NewDimensionError(op, len(yTrue), len(yPred), 0)
	}
	return nil
}

// Accuracy は正解率を計算する。Unknownの予測は不正解として数える
func Accuracy(yTrue []dataset.Value, yPred []model.Prediction) (float64, error) {
	if err := checkLengths("Accuracy", yTrue, yPred); err != nil {
		return 0, err
	}

	correct, unknown := 0, 0
	for i, label := range yTrue {
		switch {
		case yPred[i].IsUnknown():
			unknown++
		case yPred[i].Matches(label):
			correct++
		}
	}
	if unknown == len(yTrue) {
		errors.Warn(errors.NewUndefinedMetricWarning("accuracy", "every prediction is unknown", 0))
	}
	return float64(correct) / float64(len(yTrue)), nil
}

// ClassificationError は誤分類率（1 - 正解率）を計算する
func ClassificationError(yTrue []dataset.Value, yPred []model.Prediction) (float64, error) {
	acc, err := Accuracy(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return 1 - acc, nil
}

// UnknownRate はUnknownと予測された割合を計算する
func UnknownRate(yPred []model.Prediction) (float64, error) {
	if len(yPred) == 0 {
		return 0, errors.NewValueError("UnknownRate", "empty input")
	}
	unknown := 0
	for _, p := range yPred {
		if p.IsUnknown() {
			unknown++
		}
	}
	return float64(unknown) / float64(len(yPred)), nil
}

// ConfusionMatrix は混同行列。行が正解ラベル、列が予測ラベルで、最後の列がUnknown
type ConfusionMatrix struct {
	Labels []dataset.Value
	Counts *mat.Dense
}

// NewConfusionMatrix は混同行列を作成する。ラベルは正解と予測に現れたものを値の順に並べる
func NewConfusionMatrix(yTrue []dataset.Value, yPred []model.Prediction) (*ConfusionMatrix, error) {
	if err := checkLengths("ConfusionMatrix", yTrue, yPred); err != nil {
		return nil, err
	}

	index := make(map[dataset.Value]int)
	var labels []dataset.Value
	add := func(v dataset.Value) {
		if _, ok := index[v]; !ok {
			index[v] = len(labels)
			labels = append(labels, v)
		}
	}
	for i, label := range yTrue {
		add(label)
		if l, ok := yPred[i].Label(); ok {
			add(l)
		}
	}
	sort.SliceStable(labels, func(i, j int) bool { return labels[i].Less(labels[j]) })
	for i, l := range labels {
		index[l] = i
	}

	n := len(labels)
	counts := mat.NewDense(n, n+1, nil)
	for i, label := range yTrue {
		row := index[label]
		col := n
		if l, ok := yPred[i].Label(); ok {
			col = index[l]
		}
		counts.Set(row, col, counts.At(row, col)+1)
	}
	return &ConfusionMatrix{Labels: labels, Counts: counts}, nil
}

// Count は正解trueLabelに対してpredが予測された回数を返す
func (cm *ConfusionMatrix) Count(trueLabel dataset.Value, pred model.Prediction) int {
	row := cm.labelIndex(trueLabel)
	if row < 0 {
		return 0
	}
	col := len(cm.Labels)
	if l, ok := pred.Label(); ok {
		col = cm.labelIndex(l)
		if col < 0 {
			return 0
		}
	}
	return int(cm.Counts.At(row, col))
}

func (cm *ConfusionMatrix) labelIndex(v dataset.Value) int {
	for i, l := range cm.Labels {
		if l == v {
			return i
		}
	}
	return -1
}

// Accuracy は対角成分の合計を全体で割った値を返す
func (cm *ConfusionMatrix) Accuracy() float64 {
	total := mat.Sum(cm.Counts)
	if total == 0 {
		return 0
	}
	diag := 0.0
	for i := range cm.Labels {
		diag += cm.Counts.At(i, i)
	}
	return diag / total
}
