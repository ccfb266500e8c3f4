package ahp

import (
	"fmt"
	"math"
	"strings"
)

// Comparisons holds the pairwise judgments for a fixed, ordered set of
// criteria. A judgment Set(a, b, v) reads "a is v times as important as b"
// on the Saaty scale. Only one direction per pair is stored; the reverse is
// implied as 1/v. Pairs never set default to equal importance.
type Comparisons struct {
	criteria []string
	index    map[string]int
	// keyed by (row, col) with row < col; value is oriented row-over-col
	values map[[2]int]float64
}

// NewComparisons creates an empty judgment set over the given criteria.
// Order is significant: it defines matrix row/column indices.
func NewComparisons(criteria []string) (*Comparisons, error) {
	if len(criteria) == 0 {
		return nil, fmt.Errorf("%w: no criteria", ErrInvalidInput)
	}
	index := make(map[string]int, len(criteria))
	for i, name := range criteria {
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("%w: duplicate criterion %q", ErrInvalidInput, name)
		}
		index[name] = i
	}
	ordered := make([]string, len(criteria))
	copy(ordered, criteria)
	return &Comparisons{
		criteria: ordered,
		index:    index,
		values:   make(map[[2]int]float64),
	}, nil
}

// Criteria returns the criterion names in matrix order.
func (c *Comparisons) Criteria() []string {
	out := make([]string, len(c.criteria))
	copy(out, c.criteria)
	return out
}

// Set records that a is strength times as important as b. Unknown criteria,
// self-comparisons and non-positive strengths are rejected. Re-setting a
// pair (in either direction) with a value that contradicts the stored
// judgment fails rather than silently picking a winner.
func (c *Comparisons) Set(a, b string, strength float64) error {
	i, ok := c.index[a]
	if !ok {
		return fmt.Errorf("%w: unknown criterion %q", ErrInvalidInput, a)
	}
	j, ok := c.index[b]
	if !ok {
		return fmt.Errorf("%w: unknown criterion %q", ErrInvalidInput, b)
	}
	if i == j {
		return fmt.Errorf("%w: cannot compare %q against itself", ErrInvalidInput, a)
	}
	if strength <= 0 || math.IsNaN(strength) || math.IsInf(strength, 0) {
		return fmt.Errorf("%w: judgment %q vs %q must be positive, got %v", ErrInvalidInput, a, b, strength)
	}

	// Canonical orientation: row < col.
	oriented := strength
	if i > j {
		i, j = j, i
		oriented = 1 / strength
	}
	key := [2]int{i, j}
	if prev, exists := c.values[key]; exists {
		if math.Abs(prev-oriented) > 1e-9*math.Max(1, math.Abs(prev)) {
			return fmt.Errorf("%w: conflicting judgments for %q vs %q (%v and %v)",
				ErrInvalidInput, c.criteria[i], c.criteria[j], prev, oriented)
		}
		return nil
	}
	c.values[key] = oriented
	return nil
}

// at returns the judgment for (i, j), defaulting to equal importance.
func (c *Comparisons) at(i, j int) float64 {
	if i == j {
		return 1
	}
	if i < j {
		if v, ok := c.values[[2]int{i, j}]; ok {
			return v
		}
		return 1
	}
	if v, ok := c.values[[2]int{j, i}]; ok {
		return 1 / v
	}
	return 1
}

// ParseComparisons builds a judgment set from the wire form used by the
// ranking API: keys like "Comfort vs Health" mapped to Saaty strengths.
func ParseComparisons(criteria []string, judgments map[string]float64) (*Comparisons, error) {
	cmp, err := NewComparisons(criteria)
	if err != nil {
		return nil, err
	}
	for key, strength := range judgments {
		a, b, ok := splitPairKey(key)
		if !ok {
			return nil, fmt.Errorf("%w: malformed judgment key %q, want \"A vs B\"", ErrInvalidInput, key)
		}
		if err := cmp.Set(a, b, strength); err != nil {
			return nil, err
		}
	}
	return cmp, nil
}

func splitPairKey(key string) (a, b string, ok bool) {
	parts := strings.SplitN(key, " vs ", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	a = strings.TrimSpace(parts[0])
	b = strings.TrimSpace(parts[1])
	if a == "" || b == "" {
		return "", "", false
	}
	return a, b, true
}
