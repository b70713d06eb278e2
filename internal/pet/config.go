package pet

import (
	"fmt"
	"slices"
)

// TaskConfig describes where a task's data lives and how its CSV columns map onto
// InputExample fields. An empty TextBColumn means the task has no text b.
type TaskConfig struct {
	Name string

	TrainFile     string
	DevFile       string
	TestFile      string
	UnlabeledFile string

	TextAColumn  string
	TextBColumn  string
	LabelColumns []string

	Labels       []string
	MaxComboSize int
}

func (c TaskConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: task name is empty", ErrInvalidConfig)
	}

	for split, file := range map[Split]string{
		TrainSplit:     c.TrainFile,
		DevSplit:       c.DevFile,
		TestSplit:      c.TestFile,
		UnlabeledSplit: c.UnlabeledFile,
	} {
		if file == "" {
			return fmt.Errorf("%w: task '%s' has no file for split '%s'", ErrInvalidConfig, c.Name, split)
		}
	}

	if c.TextAColumn == "" {
		return fmt.Errorf("%w: task '%s' has no text a column", ErrInvalidConfig, c.Name)
	}

	if len(c.Labels) == 0 {
		return fmt.Errorf("%w: task '%s' has no labels", ErrInvalidConfig, c.Name)
	}

	for _, col := range c.LabelColumns {
		if !slices.Contains(c.Labels, col) {
			return fmt.Errorf("%w: label column '%s' of task '%s' is not a label", ErrInvalidConfig, col, c.Name)
		}
	}

	return nil
}

func (c TaskConfig) FileName(split Split) (string, error) {
	switch split {
	case TrainSplit:
		return c.TrainFile, nil
	case DevSplit:
		return c.DevFile, nil
	case TestSplit:
		return c.TestFile, nil
	case UnlabeledSplit:
		return c.UnlabeledFile, nil
	default:
		return "", fmt.Errorf("%w: '%s'", ErrUnknownSplit, split)
	}
}

func (c TaskConfig) HasTextB() bool {
	return c.TextBColumn != ""
}
