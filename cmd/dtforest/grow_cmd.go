package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type growCmdConfig struct {
	trainingConfig
	output string
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{trainingConfig: trainingConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree or forest from a set of data",
		Long:  `Grow a decision tree or random forest from a CSV file or a SQLite query and print it.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.loadConfig()
			if err != nil {
				return err
			}
			clf, _, _, err := config.train(cmd.Context(), cmd.InOrStdin(), cfg)
			if err != nil {
				return err
			}
			w, closeOutput, err := openOutput(config.output, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintln(w, clf); err != nil {
				closeOutput()
				return err
			}
			return closeOutput()
		},
	}
	addTrainingFlags(cmd, &config.trainingConfig)
	cmd.Flags().StringVarP(&(config.output), "output", "o", "", "path to a file the grown model is printed to (defaults to STDOUT)")
	return cmd
}

func addTrainingFlags(cmd *cobra.Command, config *trainingConfig) {
	cmd.Flags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV file with a header row (defaults to STDIN)")
	cmd.Flags().StringVarP(&(config.label), "label", "l", "", "name of the column to predict (defaults to the config label, then the last column)")
	cmd.Flags().StringVarP(&(config.configPath), "config", "c", "", "path to a YAML file with hyperparameters")
	cmd.Flags().StringVarP(&(config.modelKind), "model", "m", "", "model to grow: tree or forest (overrides the config)")
	cmd.Flags().StringVarP(&(config.query), "query", "q", "", "SQL query selecting the examples; the input is then a SQLite database")
}
