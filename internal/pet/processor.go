package pet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
)

type DataProcessor interface {
	TrainExamples(dataDir string) ([]InputExample, error)

	DevExamples(dataDir string) ([]InputExample, error)

	TestExamples(dataDir string) ([]InputExample, error)

	UnlabeledExamples(dataDir string) ([]InputExample, error)

	Examples(dataDir string, split Split) ([]InputExample, error)

	Labels() []string

	// WithMaxExamples returns a processor that stops after n rows per split. A
	// negative n loads every row.
	WithMaxExamples(n int) DataProcessor
}

type ProcessorFactory func() (DataProcessor, error)

// CSVProcessor loads splits from comma separated files with a header row. A label
// is assigned to an example iff the cell in that label's column is exactly "1".
type CSVProcessor struct {
	config      TaskConfig
	maxExamples int
}

func NewCSVProcessor(config TaskConfig) (*CSVProcessor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &CSVProcessor{config: config, maxExamples: -1}, nil
}

func (p *CSVProcessor) WithMaxExamples(n int) DataProcessor {
	return &CSVProcessor{config: p.config, maxExamples: n}
}

func (p *CSVProcessor) TrainExamples(dataDir string) ([]InputExample, error) {
	return p.Examples(dataDir, TrainSplit)
}

func (p *CSVProcessor) DevExamples(dataDir string) ([]InputExample, error) {
	return p.Examples(dataDir, DevSplit)
}

func (p *CSVProcessor) TestExamples(dataDir string) ([]InputExample, error) {
	return p.Examples(dataDir, TestSplit)
}

func (p *CSVProcessor) UnlabeledExamples(dataDir string) ([]InputExample, error) {
	return p.Examples(dataDir, UnlabeledSplit)
}

func (p *CSVProcessor) Examples(dataDir string, split Split) ([]InputExample, error) {
	filename, err := p.config.FileName(split)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dataDir, filename)

	examples, err := p.createExamples(path, split)
	if err != nil {
		return nil, err
	}

	slog.Info("loaded examples", "task", p.config.Name, "split", split, "path", path, "count", len(examples))

	return examples, nil
}

func (p *CSVProcessor) Labels() []string {
	return slices.Clone(p.config.Labels)
}

func (p *CSVProcessor) createExamples(path string, split Split) ([]InputExample, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: no %s file at '%s'", ErrFileNotFound, split, path)
		}
		return nil, fmt.Errorf("error opening %s file '%s': %w", split, path, err)
	}
	defer file.Close()

	return p.readExamples(file, path, split)
}

func (p *CSVProcessor) readExamples(data io.Reader, path string, split Split) ([]InputExample, error) {
	reader := csv.NewReader(data)
	reader.Comma = ','
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: '%s' has no header row", ErrParse, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: error reading header of '%s': %v", ErrParse, path, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}

	textACol, err := requireColumn(columns, p.config.TextAColumn, path)
	if err != nil {
		return nil, err
	}

	textBCol := -1
	if p.config.HasTextB() {
		if textBCol, err = requireColumn(columns, p.config.TextBColumn, path); err != nil {
			return nil, err
		}
	}

	labelCols := make([]int, len(p.config.LabelColumns))
	for i, label := range p.config.LabelColumns {
		if labelCols[i], err = requireColumn(columns, label, path); err != nil {
			return nil, err
		}
	}

	var examples []InputExample
	for idx := 0; p.maxExamples < 0 || idx < p.maxExamples; idx++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d of '%s': %v", ErrParse, idx, path, err)
		}

		var labels []string
		for i, col := range labelCols {
			if cell(row, col) == "1" {
				labels = append(labels, p.config.LabelColumns[i])
			}
		}

		var textB *string
		if textBCol >= 0 && textBCol < len(row) {
			textB = &row[textBCol]
		}

		guid := fmt.Sprintf("%s-%d", split, idx)
		examples = append(examples, NewInputExample(guid, cell(row, textACol), textB, labels))
	}

	return examples, nil
}

func requireColumn(columns map[string]int, name, path string) (int, error) {
	col, ok := columns[name]
	if !ok {
		return -1, fmt.Errorf("%w: column '%s' missing from header of '%s'", ErrParse, name, path)
	}
	return col, nil
}

// cell returns "" for columns beyond the end of a short row.
func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return row[col]
}
