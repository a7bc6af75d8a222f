package transform

import (
	"fmt"
	"strings"
)

// Chain is an ordered list of operations applied first to last.
type Chain []Operation

// Parse turns "raw", "gzip" or a pipe-separated list such as
// "bzip2|gzip" into a Chain. An empty string and "raw" yield an empty
// chain.
func Parse(spec string) (Chain, error) {
	spec = strings.ToLower(strings.TrimSpace(spec))
	if spec == "" || spec == "raw" {
		return nil, nil
	}

	var chain Chain
	for _, part := range strings.Split(spec, "|") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		op, err := Get(part)
		if err != nil {
			return nil, err
		}
		chain = append(chain, op)
	}
	return chain, nil
}

// String renders the chain in the form Parse accepts.
func (c Chain) String() string {
	if len(c) == 0 {
		return "raw"
	}
	names := make([]string, len(c))
	for i, op := range c {
		names[i] = op.Name()
	}
	return strings.Join(names, "|")
}

// Apply runs every operation in order.
func (c Chain) Apply(data []byte) ([]byte, error) {
	current := data
	for _, op := range c {
		result, err := op.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("applying %s: %w", op.Name(), err)
		}
		current = result
	}
	return current, nil
}

// Reverse undoes the chain, last operation first.
func (c Chain) Reverse(data []byte) ([]byte, error) {
	current := data
	for i := len(c) - 1; i >= 0; i-- {
		result, err := c[i].Reverse(current)
		if err != nil {
			return nil, fmt.Errorf("reversing %s: %w", c[i].Name(), err)
		}
		current = result
	}
	return current, nil
}
