package collections

import (
	"errors"
	"strings"
	"unicode"
)

var (
	ErrEmptyInput         = errors.New("no identifiers provided")
	ErrMixedSeparators    = errors.New("mixed separators not allowed")
	ErrNoValidIdentifiers = errors.New("no valid identifiers after processing")
)

// Normalize converts the raw text of a collection identifiers argument into an ordered,
// non-empty list of trimmed identifiers.
//
// Comma separated input is split and each segment trimmed, with empty segments discarded.
// Input without a comma is a single identifier, even if it contains spaces. A comma
// separated segment that still contains any whitespace is rejected since it
// means the list mixes comma and space separators e.g. "id1,id2 id3".
func Normalize(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyInput
	}

	s := strings.TrimSpace(raw)

	if !strings.Contains(s, ",") {
		return []string{s}, nil
	}

	list := []string{}
	for _, v := range strings.Split(s, ",") {
		id := strings.TrimSpace(v)
		if strings.ContainsFunc(id, unicode.IsSpace) {
			return nil, ErrMixedSeparators
		}

		if id != "" {
			list = append(list, id)
		}
	}

	if len(list) == 0 {
		return nil, ErrNoValidIdentifiers
	}

	return list, nil
}
