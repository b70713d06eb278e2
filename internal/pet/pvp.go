package pet

import (
	"fmt"
	"strings"
)

const (
	DefaultMask = "[MASK]"

	// The verbalizer tokens have at most 3 digits, the mask span is rounded up to 4.
	maskCount = 4
)

// Part is a segment of a pattern. Shortenable parts may be truncated by the
// tokenizer when the full sequence exceeds the model's max length.
type Part struct {
	Text        string
	Shortenable bool
}

func shortenable(text string) Part {
	return Part{Text: text, Shortenable: true}
}

func fixed(text string) Part {
	return Part{Text: text}
}

type PVP interface {
	// GetParts applies the configured pattern to the example and returns the parts
	// for text a and text b.
	GetParts(example InputExample) ([]Part, []Part, error)

	Verbalize(label string) ([]string, error)

	Labels() []string
}

type PVPFactory func(patternID int, mask string) (PVP, error)

type pattern func(textA, mask Part) []Part

var multiLabelPatterns = []pattern{
	func(textA, mask Part) []Part {
		return []Part{textA, fixed("This is about"), mask}
	},
	func(textA, mask Part) []Part {
		return []Part{fixed("What is the next sentence about"), textA, mask}
	},
	func(textA, mask Part) []Part {
		return []Part{textA, fixed("The previous is about"), mask}
	},
	func(textA, mask Part) []Part {
		return []Part{fixed("What is this for"), textA, mask}
	},
}

// MultiLabelPVP prompts the model to fill a fixed mask span with the token of the
// example's label combination.
type MultiLabelPVP struct {
	patternID  int
	mask       string
	verbalizer *Verbalizer
}

func NewMultiLabelPVP(patternID int, mask string, verbalizer *Verbalizer) (*MultiLabelPVP, error) {
	if patternID < 0 || patternID >= len(multiLabelPatterns) {
		return nil, fmt.Errorf("%w: no pattern implemented for id %d", ErrUnsupportedPattern, patternID)
	}
	if mask == "" {
		mask = DefaultMask
	}
	return &MultiLabelPVP{patternID: patternID, mask: mask, verbalizer: verbalizer}, nil
}

func PatternIDs() []int {
	ids := make([]int, len(multiLabelPatterns))
	for i := range ids {
		ids[i] = i
	}
	return ids
}

func (p *MultiLabelPVP) PatternID() int {
	return p.patternID
}

func (p *MultiLabelPVP) MaskCount() int {
	return maskCount
}

func (p *MultiLabelPVP) GetParts(example InputExample) ([]Part, []Part, error) {
	if p.patternID < 0 || p.patternID >= len(multiLabelPatterns) {
		return nil, nil, fmt.Errorf("%w: no pattern implemented for id %d", ErrUnsupportedPattern, p.patternID)
	}

	textA := shortenable(example.TextA)
	mask := fixed(strings.Repeat(p.mask, maskCount))

	return multiLabelPatterns[p.patternID](textA, mask), []Part{}, nil
}

func (p *MultiLabelPVP) Verbalize(label string) ([]string, error) {
	return p.verbalizer.Lookup(label)
}

func (p *MultiLabelPVP) Labels() []string {
	return p.verbalizer.Tokens()
}

// Label returns the verbalizer token for the example's label set.
func (p *MultiLabelPVP) Label(example InputExample) (string, error) {
	return p.verbalizer.TokenFor(example.Labels)
}

func JoinParts(parts []Part) string {
	texts := make([]string, 0, len(parts))
	for _, part := range parts {
		texts = append(texts, part.Text)
	}
	return strings.Join(texts, " ")
}
