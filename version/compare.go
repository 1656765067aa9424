package version

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// Compare orders two semantic versions, with or without a "v" prefix.
// It returns 1 if a > b, -1 if a < b and 0 if they are equal. A version
// with a pre-release suffix such as "-rc1" is lower than the same version without it.
func Compare(a, b string) (int, error) {
	av, apre, err := parse(a)
	if err != nil {
		return 0, err
	}

	bv, bpre, err := parse(b)
	if err != nil {
		return 0, err
	}

	if c := slices.Compare(av, bv); c != 0 {
		return c, nil
	}

	switch {
	case apre == bpre:
		return 0, nil
	case apre == "":
		return 1, nil
	case bpre == "":
		return -1, nil
	default:
		return strings.Compare(apre, bpre), nil
	}
}

func parse(s string) (core []int, pre string, err error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	s, pre, _ = strings.Cut(s, "-")

	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return nil, "", fmt.Errorf("invalid version %q", s)
	}

	core = make([]int, len(parts))
	for i, part := range parts {
		if core[i], err = strconv.Atoi(part); err != nil {
			return nil, "", fmt.Errorf("invalid version %q: %w", s, err)
		}
	}

	return core, pre, nil
}
