package collections

import (
	"errors"
	"fmt"
	"strings"
)

type Kind int

const (
	KindSingle Kind = iota + 1
	KindMultiple
)

func (k Kind) String() string {
	switch k {
	case KindSingle:
		return "single"
	case KindMultiple:
		return "multiple"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

var (
	ErrNoSelection          = errors.New("no collection selected")
	ErrConflictingSelection = errors.New("conflicting collection selections")
)

// Selection is the resolved choice between the single collection ID and the collection ID
// list command line options.
type Selection struct {
	Kind  Kind
	Value string
}

func Single(v string) Selection {
	return Selection{Kind: KindSingle, Value: v}
}

func Multiple(v string) Selection {
	return Selection{Kind: KindMultiple, Value: v}
}

// Select resolves a pair of mutually exclusive options into a Selection. Exactly one of the
// options must have been set.
func Select(single, multiple string, singleSet, multipleSet bool) (Selection, error) {
	switch {
	case singleSet && multipleSet:
		return Selection{}, ErrConflictingSelection

	case singleSet:
		return Single(single), nil

	case multipleSet:
		return Multiple(multiple), nil

	default:
		return Selection{}, ErrNoSelection
	}
}

// Identifiers returns the collection IDs for the selection. A single selection is used
// verbatim (after trimming) and is not split on commas.
func (s Selection) Identifiers() ([]string, error) {
	switch s.Kind {
	case KindSingle:
		if id := strings.TrimSpace(s.Value); id == "" {
			return nil, ErrEmptyInput
		} else {
			return []string{id}, nil
		}

	case KindMultiple:
		return Normalize(s.Value)

	default:
		return nil, ErrNoSelection
	}
}
