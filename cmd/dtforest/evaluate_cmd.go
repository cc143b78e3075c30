package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/dtforest/core/dataset"
	"github.com/YuminosukeSato/dtforest/core/model"
	"github.com/YuminosukeSato/dtforest/metrics"
	"github.com/YuminosukeSato/dtforest/pkg/errors"
	"github.com/YuminosukeSato/dtforest/pkg/log"
)

type evaluateCmdConfig struct {
	trainingConfig
	testInput string
}

func evaluateCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &evaluateCmdConfig{trainingConfig: trainingConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Grow a model and measure its predictions",
		Long: `Grow a decision tree or random forest from a training CSV file and report
its accuracy, unknown rate and confusion matrix on a test CSV file (or on the
training data when no test file is given).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.loadConfig()
			if err != nil {
				return err
			}
			clf, examples, attrs, err := config.train(cmd.Context(), cmd.InOrStdin(), cfg)
			if err != nil {
				return err
			}
			if config.testInput == "" || config.testInput == config.dataInput {
				return report(cmd.OutOrStdout(), clf, examples)
			}
			examples, testAttrs, err := config.readExamples(cmd.Context(), cmd.InOrStdin(), config.testInput, attrs.Label())
			if err != nil {
				return err
			}
			if !slices.Equal(attrs, testAttrs) {
				return errors.Newf("test attributes %v do not match training attributes %v", testAttrs, attrs)
			}
			return report(cmd.OutOrStdout(), clf, examples)
		},
	}
	addTrainingFlags(cmd, &config.trainingConfig)
	cmd.Flags().StringVarP(&(config.testInput), "test", "t", "", "path to a CSV file to evaluate on (defaults to the training input)")
	return cmd
}

func report(w io.Writer, clf model.Classifier, examples dataset.Examples) error {
	preds, err := clf.PredictBatch(examples)
	if err != nil {
		return err
	}
	labels := examples.Labels()
	accuracy, err := metrics.Accuracy(labels, preds)
	if err != nil {
		return err
	}
	unknownRate, err := metrics.UnknownRate(preds)
	if err != nil {
		return err
	}
	cm, err := metrics.NewConfusionMatrix(labels, preds)
	if err != nil {
		return err
	}
	log.GetLoggerWithName("cli").Info("Model evaluated",
		log.OperationKey, log.OperationScore,
		log.PredsKey, len(preds),
		log.AccuracyKey, accuracy,
		log.UnknownRateKey, unknownRate)

	fmt.Fprintf(w, "examples: %d\n", len(examples))
	fmt.Fprintf(w, "accuracy: %.4f\n", accuracy)
	fmt.Fprintf(w, "unknown rate: %.4f\n", unknownRate)
	fmt.Fprintln(w, "confusion matrix (rows: true label, columns: prediction):")
	fmt.Fprint(w, "\t")
	for _, l := range cm.Labels {
		fmt.Fprintf(w, "%s\t", l)
	}
	fmt.Fprintln(w, model.UnknownSymbol)
	for i, l := range cm.Labels {
		fmt.Fprintf(w, "%s\t", l)
		for j := 0; j <= len(cm.Labels); j++ {
			if j > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprintf(w, "%d", int(cm.Counts.At(i, j)))
		}
		fmt.Fprintln(w)
	}
	return nil
}
