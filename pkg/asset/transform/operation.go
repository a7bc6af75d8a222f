// Package transform applies reversible payload operations, such as
// compression, to asset bytes before they are rendered as literals.
package transform

import (
	"fmt"
	"sort"
	"sync"

	asseterrors "github.com/provide-io/flavor/go/assetgen/pkg/asset/errors"
)

// Operation identifiers. The values follow the slot operation codes used
// by the flavor package format.
const (
	OpNone  = 0x00
	OpGzip  = 0x10
	OpBzip2 = 0x13
)

// Operation is a single reversible transformation of a payload.
type Operation interface {
	// ID returns the operation identifier (e.g., OpGzip)
	ID() uint8

	// Name returns the lowercase name used in manifests and flags
	Name() string

	// Apply transforms input. The output must depend on input alone.
	Apply(input []byte) ([]byte, error)

	// Reverse undoes Apply
	Reverse(input []byte) ([]byte, error)
}

// BaseOperation provides ID and Name for embedding.
type BaseOperation struct {
	OpID   uint8
	OpName string
}

func (o *BaseOperation) ID() uint8 {
	return o.OpID
}

func (o *BaseOperation) Name() string {
	return o.OpName
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Operation)
)

// Register makes an operation available by name.
func Register(op Operation) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[op.Name()] = op
}

// Get retrieves an operation by name.
func Get(name string) (Operation, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	op, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", asseterrors.ErrUnknownTransform, name)
	}
	return op, nil
}

// Names lists the registered operations in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
