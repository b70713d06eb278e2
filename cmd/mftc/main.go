package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/template"

	"pet-mftc/cmd"
	"pet-mftc/internal/config"
	"pet-mftc/internal/pet"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	envFile string
	dataDir string
	split   string
	limit   int
	pattern int
	maxRows int

	cfg      *config.Config
	registry *pet.Registry
)

var rootCmd = &cobra.Command{
	Use:   "mftc",
	Short: "Inspect the MFTC task data, verbalizer and patterns",
	PersistentPreRunE: func(c *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.LoadConfig(envFile); err != nil {
			return err
		}
		cmd.SetupLogging(cfg)

		if dataDir == "" {
			dataDir = cfg.DataDir
		}
		if !c.Flags().Changed("pattern") {
			pattern = cfg.PatternID
		}

		registry, err = cmd.NewRegistry()
		return err
	},
	SilenceUsage: true,
}

var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "Print the first records of a split",
	RunE: func(c *cobra.Command, args []string) error {
		examples, err := loadSplit()
		if err != nil {
			return err
		}
		return printExamples(c.OutOrStdout(), head(examples))
	},
}

var verbalizerCmd = &cobra.Command{
	Use:   "verbalizer",
	Short: "Print the verbalizer token table",
	RunE: func(c *cobra.Command, args []string) error {
		processor, err := newProcessor()
		if err != nil {
			return err
		}

		pvp, err := registry.PVP(cfg.TaskName, pattern, cfg.MaskToken)
		if err != nil {
			return err
		}

		tokens := pvp.Labels()
		fmt.Fprintf(c.OutOrStdout(), "labels: %s\n", strings.Join(processor.Labels(), ", "))
		fmt.Fprintf(c.OutOrStdout(), "tokens: %d\n", len(tokens))

		for _, token := range tokens {
			labels, err := pvp.Verbalize(token)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "%s\t%s\n", token, strings.Join(labels, ","))
		}
		return nil
	},
}

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "Print the pattern applied to the first records of a split",
	RunE: func(c *cobra.Command, args []string) error {
		examples, err := loadSplit()
		if err != nil {
			return err
		}

		pvp, err := registry.PVP(cfg.TaskName, pattern, cfg.MaskToken)
		if err != nil {
			return err
		}

		for _, example := range head(examples) {
			partsA, _, err := pvp.GetParts(example)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "%s\t%s\n", example.GUID, pet.JoinParts(partsA))
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print per label counts for every split",
	RunE: func(c *cobra.Command, args []string) error {
		processor, err := newProcessor()
		if err != nil {
			return err
		}

		splits := pet.Splits()
		bar := progressbar.NewOptions(len(splits),
			progressbar.OptionSetDescription("loading splits"),
			progressbar.OptionSetWriter(c.ErrOrStderr()),
			progressbar.OptionSetWidth(30),
			progressbar.OptionClearOnFinish(),
		)

		counts := make(map[pet.Split]map[string]int)
		sizes := make(map[pet.Split]int)
		for _, s := range splits {
			examples, err := processor.Examples(dataDir, s)
			_ = bar.Add(1)
			if errors.Is(err, pet.ErrFileNotFound) {
				slog.Warn("skipping missing split", "split", s, "error", err)
				continue
			}
			if err != nil {
				return err
			}

			sizes[s] = len(examples)
			counts[s] = make(map[string]int)
			for _, example := range examples {
				for _, label := range example.Labels {
					counts[s][label]++
				}
			}
		}
		_ = bar.Finish()

		return printStats(c.OutOrStdout(), processor.Labels(), splits, sizes, counts)
	},
}

func loadSplit() ([]pet.InputExample, error) {
	s, err := pet.ParseSplit(split)
	if err != nil {
		return nil, err
	}

	processor, err := newProcessor()
	if err != nil {
		return nil, err
	}

	return processor.Examples(dataDir, s)
}

func newProcessor() (pet.DataProcessor, error) {
	processor, err := registry.Processor(cfg.TaskName)
	if err != nil {
		return nil, err
	}
	return processor.WithMaxExamples(maxRows), nil
}

func head(examples []pet.InputExample) []pet.InputExample {
	if limit < 0 {
		return examples
	}
	return examples[:min(limit, len(examples))]
}

const exampleFormat = `{{ .GUID }}
  text_a: {{ .TextA }}
{{- if .TextB }}
  text_b: {{ deref .TextB }}
{{- end }}
  labels: [{{ range $i, $l := .Labels }}{{ if $i }}, {{ end }}{{ $l }}{{ end }}]
`

var exampleTmpl = template.Must(template.New("example").Funcs(template.FuncMap{
	"deref": func(s *string) string { return *s },
}).Parse(exampleFormat))

func printExamples(w io.Writer, examples []pet.InputExample) error {
	for _, example := range examples {
		if err := exampleTmpl.Execute(w, example); err != nil {
			return fmt.Errorf("error rendering example %s: %w", example.GUID, err)
		}
	}
	return nil
}

func printStats(w io.Writer, labels []string, splits []pet.Split, sizes map[pet.Split]int, counts map[pet.Split]map[string]int) error {
	for _, s := range splits {
		if _, ok := counts[s]; !ok {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s: %d examples\n", s, sizes[s]); err != nil {
			return err
		}
		for _, label := range labels {
			if _, err := fmt.Fprintf(w, "  %-12s %d\n", label, counts[s][label]); err != nil {
				return err
			}
		}
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "path to load env from")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory containing the split files (defaults to DATA_DIR)")
	rootCmd.PersistentFlags().IntVar(&pattern, "pattern", 0, "pattern id (defaults to PATTERN_ID)")
	rootCmd.PersistentFlags().IntVar(&maxRows, "max-examples", -1, "stop reading each split after this many rows, -1 reads all")

	for _, c := range []*cobra.Command{examplesCmd, promptsCmd} {
		c.Flags().StringVar(&split, "split", string(pet.TrainSplit), "split to load: train, dev, test or unlabeled")
		c.Flags().IntVar(&limit, "limit", 10, "number of records to print")
	}

	rootCmd.AddCommand(examplesCmd, verbalizerCmd, promptsCmd, statsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
