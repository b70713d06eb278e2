// Package mftc binds the Moral Foundations Twitter Corpus task to the generic
// CSV processor and multi-label PVP.
package mftc

import (
	_ "embed"
	"fmt"
	"log/slog"
	"slices"

	"pet-mftc/internal/pet"

	"gopkg.in/yaml.v2"
)

const TaskName = "MFTC"

//go:embed task.yaml
var taskYAML []byte

type taskDefinition struct {
	Name  string `yaml:"name"`
	Files struct {
		Train     string `yaml:"train"`
		Dev       string `yaml:"dev"`
		Test      string `yaml:"test"`
		Unlabeled string `yaml:"unlabeled"`
	} `yaml:"files"`
	Columns struct {
		TextA string `yaml:"text_a"`
		TextB string `yaml:"text_b"`
	} `yaml:"columns"`
	Labels       []string `yaml:"labels"`
	LabelColumns []string `yaml:"label_columns,omitempty"`
	MaxComboSize int      `yaml:"max_combo_size"`
}

func Config() (pet.TaskConfig, error) {
	return parseConfig(taskYAML)
}

func parseConfig(data []byte) (pet.TaskConfig, error) {
	var def taskDefinition
	if err := yaml.UnmarshalStrict(data, &def); err != nil {
		return pet.TaskConfig{}, fmt.Errorf("error parsing task definition: %w", err)
	}

	labelColumns := def.LabelColumns
	if len(labelColumns) == 0 {
		labelColumns = slices.Clone(def.Labels)
	}

	config := pet.TaskConfig{
		Name:          def.Name,
		TrainFile:     def.Files.Train,
		DevFile:       def.Files.Dev,
		TestFile:      def.Files.Test,
		UnlabeledFile: def.Files.Unlabeled,
		TextAColumn:   def.Columns.TextA,
		TextBColumn:   def.Columns.TextB,
		LabelColumns:  labelColumns,
		Labels:        def.Labels,
		MaxComboSize:  def.MaxComboSize,
	}

	if err := config.Validate(); err != nil {
		return pet.TaskConfig{}, err
	}

	return config, nil
}

// Register adds the MFTC processor, PVP and multi mask helper to the registry.
// The verbalizer is built once here and shared by every PVP the registry creates.
func Register(registry *pet.Registry) error {
	config, err := Config()
	if err != nil {
		return err
	}

	verbalizer, numLabels := pet.BuildVerbalizer(config.Labels, config.MaxComboSize)
	slog.Debug("built verbalizer", "task", config.Name, "tokens", verbalizer.Len(), "numLabels", numLabels)

	if err := registry.RegisterProcessor(config.Name, func() (pet.DataProcessor, error) {
		return pet.NewCSVProcessor(config)
	}); err != nil {
		return err
	}

	if err := registry.RegisterPVP(config.Name, func(patternID int, mask string) (pet.PVP, error) {
		return pet.NewMultiLabelPVP(patternID, mask, verbalizer)
	}); err != nil {
		return err
	}

	return registry.RegisterTaskHelper(config.Name, pet.MultiMaskTaskHelper)
}
