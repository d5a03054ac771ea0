package roster

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/pkg/errors"
)

// codePattern splits a roster code into a letter prefix and a numeric suffix.
var codePattern = regexp.MustCompile(`^([A-Za-z]+)([0-9]+)$`)

var ErrMalformedCode = errors.New("code must be letters followed by digits")

// NextCode returns the next free code sharing base's letter prefix:
// the smallest positive integer suffix not taken by an existing code,
// zero-padded to base's suffix width. Gaps left by deletions are filled
// before the sequence is extended, and the result never collides with
// a code in existing.
func NextCode(base string, existing []string) (string, error) {
	m := codePattern.FindStringSubmatch(base)
	if m == nil {
		return "", ErrMalformedCode
	}
	prefix, width := m[1], len(m[2])

	taken := make(map[int]bool, len(existing))
	for _, code := range existing {
		cm := codePattern.FindStringSubmatch(code)
		if cm == nil || cm[1] != prefix {
			continue
		}
		n, err := strconv.Atoi(cm[2])
		if err != nil {
			continue
		}
		taken[n] = true
	}

	next := 1
	for taken[next] {
		next++
	}
	return fmt.Sprintf("%s%0*d", prefix, width, next), nil
}
