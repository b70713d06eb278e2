package pet

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrFileNotFound       = errors.New("file not found")
	ErrParse              = errors.New("parse error")
	ErrUnsupportedPattern = errors.New("unsupported pattern")
	ErrKeyNotFound        = errors.New("key not found")
	ErrUnknownSplit       = errors.New("unknown split")
	ErrUnknownTask        = errors.New("unknown task")
	ErrDuplicateTask      = errors.New("task already registered")
	ErrInvalidConfig      = errors.New("invalid task config")
)

type Split string

const (
	TrainSplit     Split = "train"
	DevSplit       Split = "dev"
	TestSplit      Split = "test"
	UnlabeledSplit Split = "unlabeled"
)

func Splits() []Split {
	return []Split{TrainSplit, DevSplit, TestSplit, UnlabeledSplit}
}

func ParseSplit(s string) (Split, error) {
	for _, split := range Splits() {
		if string(split) == s {
			return split, nil
		}
	}
	return "", fmt.Errorf("%w: '%s'", ErrUnknownSplit, s)
}

// InputExample is a single record of a split. TextB is nil when the task has no
// second text column.
type InputExample struct {
	GUID   string
	TextA  string
	TextB  *string
	Labels []string
}

func NewInputExample(guid, textA string, textB *string, labels []string) InputExample {
	return InputExample{
		GUID:   guid,
		TextA:  textA,
		TextB:  textB,
		Labels: labels,
	}
}

func (e InputExample) String() string {
	textB := "<nil>"
	if e.TextB != nil {
		textB = fmt.Sprintf("%q", *e.TextB)
	}
	return fmt.Sprintf("InputExample(guid=%s, text_a=%q, text_b=%s, labels=[%s])", e.GUID, e.TextA, textB, strings.Join(e.Labels, ", "))
}

func (e InputExample) HasLabel(label string) bool {
	for _, l := range e.Labels {
		if l == label {
			return true
		}
	}
	return false
}
