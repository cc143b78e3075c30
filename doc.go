// Package dtforest provides ID3 decision trees and attribute-bagging random
// forests over categorical data.
//
// Examples are fixed-length rows of discrete values whose last column is the
// label. A tree is grown by repeatedly asking the question (attribute) with
// the largest information gain; a forest grows several trees, each restricted
// to a random subset of attributes, and predicts by plurality vote.
//
// # Installation
//
//	go get github.com/YuminosukeSato/dtforest
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/dtforest/core/dataset"
//	    "github.com/YuminosukeSato/dtforest/sklearn/tree"
//	)
//
//	func main() {
//	    attrs := dataset.Attributes{"outlook", "windy", "play"}
//	    examples := dataset.FromStrings([][]string{
//	        {"sunny", "N", "yes"},
//	        {"sunny", "Y", "no"},
//	        {"rain", "N", "yes"},
//	    })
//
//	    dt := tree.NewDecisionTreeClassifier(tree.WithMaxDepth(3))
//	    if err := dt.Fit(examples, attrs); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    pred, err := dt.Predict(dataset.Example{dataset.String("rain"), dataset.String("Y")})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(dt)
//	    fmt.Println("prediction:", pred)
//	}
//
// A value never seen at a node during training yields an unknown prediction
// rather than an error.
//
// # Packages
//
//   - core/dataset: values, examples, attribute names, CSV and SQL input
//   - core/model: estimator interfaces, fitted state and predictions
//   - core/parallel: bounded worker helpers used for forest growth and batch prediction
//   - sklearn/tree: entropy, information gain and the ID3 DecisionTreeClassifier
//   - sklearn/ensemble: attribute subsets and the RandomForestClassifier
//   - metrics: accuracy, unknown rate and confusion matrices
//   - pkg/errors: typed errors and warnings
//   - pkg/log: structured logging
//   - cmd/dtforest: the grow and evaluate command line tool
//
// # Command Line
//
//	dtforest grow -i train.csv -l will_wait -m forest -c forest.yaml
//	dtforest evaluate -i train.csv -t test.csv
//	dtforest evaluate -i weather.db -q 'SELECT * FROM days' -l rain_tomorrow
//
// # License
//
// dtforest is released under the MIT License.
package dtforest
