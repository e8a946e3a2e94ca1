package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a model file's structural soundness",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")

		spec, err := loadModelSpec(file)
		if err != nil {
			return err
		}
		model, err := spec.ToModel()
		if err != nil {
			return err
		}

		errs, warnings := model.Validate()
		for _, w := range warnings {
			fmt.Printf("⚠ %s\n", w.String())
		}
		if len(errs) > 0 {
			for _, e := range errs {
				fmt.Printf("✗ %v\n", e)
			}
			return fmt.Errorf("%d structural error(s) found", len(errs))
		}

		fmt.Printf("✓ %s is structurally valid (%d activities, %d warnings)\n",
			spec.Name, len(spec.Activities), len(warnings))
		return nil
	},
}

func init() {
	validateCmd.Flags().StringP("file", "f", "", "Path to the model YAML file")
	_ = validateCmd.MarkFlagRequired("file")
}
