package main

import (
	"fmt"
	"os"

	"github.com/cuemby/sdesim/pkg/simmodel"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// loadModelSpec reads a YAML model definition file into a
// simmodel.ModelSpec, the declarative form every subcommand builds a
// runtime *simmodel.Model from.
func loadModelSpec(path string) (*simmodel.ModelSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var spec simmodel.ModelSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &spec, nil
}

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Manage model definitions persisted to the BoltDB store",
}

var modelSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Validate and persist a model file",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		dataDir, _ := cmd.Flags().GetString("data-dir")

		spec, err := loadModelSpec(file)
		if err != nil {
			return err
		}

		repo, err := openRepo(dataDir)
		if err != nil {
			return err
		}
		defer repo.Close()

		if err := repo.SaveModel(spec); err != nil {
			return fmt.Errorf("saving model %q: %w", spec.Name, err)
		}

		fmt.Printf("✓ saved model %q (%d activities)\n", spec.Name, len(spec.Activities))
		return nil
	},
}

var modelListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every persisted model definition",
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, _ := cmd.Flags().GetString("data-dir")

		repo, err := openRepo(dataDir)
		if err != nil {
			return err
		}
		defer repo.Close()

		specs, err := repo.ListModels()
		if err != nil {
			return fmt.Errorf("listing models: %w", err)
		}

		if len(specs) == 0 {
			fmt.Println("no models persisted yet")
			return nil
		}
		fmt.Printf("  %-24s %10s\n", "NAME", "ACTIVITIES")
		for _, spec := range specs {
			fmt.Printf("  %-24s %10d\n", spec.Name, len(spec.Activities))
		}
		return nil
	},
}

var modelGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Print one persisted model definition as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, _ := cmd.Flags().GetString("data-dir")

		repo, err := openRepo(dataDir)
		if err != nil {
			return err
		}
		defer repo.Close()

		spec, err := repo.GetModel(args[0])
		if err != nil {
			return fmt.Errorf("getting model %q: %w", args[0], err)
		}

		return printModelSpec(spec)
	},
}

func printModelSpec(spec *simmodel.ModelSpec) error {
	data, err := yaml.Marshal(spec)
	if err != nil {
		return fmt.Errorf("encoding model %q: %w", spec.Name, err)
	}
	fmt.Print(string(data))
	return nil
}

func init() {
	for _, c := range []*cobra.Command{modelSaveCmd, modelListCmd, modelGetCmd} {
		c.Flags().String("data-dir", "./sdesim-data", "Directory for the model/run BoltDB store")
	}
	modelSaveCmd.Flags().StringP("file", "f", "", "Path to the model YAML file")
	_ = modelSaveCmd.MarkFlagRequired("file")

	modelCmd.AddCommand(modelSaveCmd)
	modelCmd.AddCommand(modelListCmd)
	modelCmd.AddCommand(modelGetCmd)
}
