package pet

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Verbalizer maps numeric string tokens to label combinations. It is never
// modified after BuildVerbalizer returns, so it can be shared between readers.
type Verbalizer struct {
	tokens       []string
	combinations map[string][]string
	reverse      map[string]string
}

// BuildVerbalizer assigns the tokens "1", "2", ... to every combination of 1 up
// to maxComboSize labels. Smaller combinations come first, and combinations of
// the same size are ordered lexicographically by label position. The returned
// count is one past the last assigned token.
func BuildVerbalizer(labels []string, maxComboSize int) (*Verbalizer, int) {
	v := &Verbalizer{
		combinations: make(map[string][]string),
		reverse:      make(map[string]string),
	}

	cnt := 1
	for size := 1; size <= min(maxComboSize, len(labels)); size++ {
		forEachCombination(len(labels), size, func(idxs []int) {
			combo := make([]string, len(idxs))
			for i, idx := range idxs {
				combo[i] = labels[idx]
			}

			token := strconv.Itoa(cnt)
			v.tokens = append(v.tokens, token)
			v.combinations[token] = combo
			v.reverse[comboKey(combo)] = token
			cnt++
		})
	}

	return v, cnt
}

// forEachCombination calls fn with the index positions of every k-subset of
// [0, n) in lexicographic order. The slice passed to fn is reused between calls.
func forEachCombination(n, k int, fn func([]int)) {
	if k <= 0 || k > n {
		return
	}

	idxs := make([]int, k)
	for i := range idxs {
		idxs[i] = i
	}

	for {
		fn(idxs)

		i := k - 1
		for i >= 0 && idxs[i] == i+n-k {
			i--
		}
		if i < 0 {
			return
		}

		idxs[i]++
		for j := i + 1; j < k; j++ {
			idxs[j] = idxs[j-1] + 1
		}
	}
}

func comboKey(labels []string) string {
	sorted := slices.Clone(labels)
	slices.Sort(sorted)
	return strings.Join(sorted, "\x00")
}

func (v *Verbalizer) Len() int {
	return len(v.tokens)
}

// Tokens returns the tokens in the order they were assigned.
func (v *Verbalizer) Tokens() []string {
	return slices.Clone(v.tokens)
}

func (v *Verbalizer) Lookup(token string) ([]string, error) {
	combo, ok := v.combinations[token]
	if !ok {
		return nil, fmt.Errorf("%w: no verbalization for token '%s'", ErrKeyNotFound, token)
	}
	return slices.Clone(combo), nil
}

// TokenFor returns the token assigned to the given set of labels, regardless of
// the order they are listed in.
func (v *Verbalizer) TokenFor(labels []string) (string, error) {
	token, ok := v.reverse[comboKey(labels)]
	if !ok {
		return "", fmt.Errorf("%w: no token for labels [%s]", ErrKeyNotFound, strings.Join(labels, ", "))
	}
	return token, nil
}
