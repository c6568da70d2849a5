// Package compat resolves which code-generation template pack is
// compatible with a given OIML schema version and target framework
// version, using a restricted semantic-version range matcher.
package compat

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a parsed semantic version. Pre-release and build metadata
// are deliberately unsupported; this is not full semver.
type Version struct {
	Major int
	Minor int
	Patch int
}

// String returns the dotted form of the version
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0, or 1 ordering v against o
func (v Version) Compare(o Version) int {
	for _, d := range []int{v.Major - o.Major, v.Minor - o.Minor, v.Patch - o.Patch} {
		if d < 0 {
			return -1
		}
		if d > 0 {
			return 1
		}
	}
	return 0
}

// ParseVersion parses a strict X.Y.Z version string
func ParseVersion(s string) (Version, error) {
	if strings.ContainsAny(s, "-+") {
		return Version{}, fmt.Errorf("invalid version %q: pre-release and build metadata are not supported", s)
	}

	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("invalid version %q: expected major.minor.patch", s)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("invalid version %q: component %q is not a non-negative integer", s, p)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// Range is a restricted version range: an optional inclusive lower bound
// and an optional exclusive upper bound. An empty range matches everything.
type Range struct {
	GTE *Version // inclusive
	LT  *Version // exclusive
}

// String returns the range in its wire form
func (r Range) String() string {
	var parts []string
	if r.GTE != nil {
		parts = append(parts, ">="+r.GTE.String())
	}
	if r.LT != nil {
		parts = append(parts, "<"+r.LT.String())
	}
	if len(parts) == 0 {
		return ">=0.0.0"
	}
	return strings.Join(parts, " ")
}

// ParseRange parses a restricted range expression like ">=1.0.0 <2.0.0".
// Caret, tilde, OR-joined ranges, and other operators are rejected loudly
// rather than mis-parsed.
func ParseRange(s string) (Range, error) {
	var r Range

	if strings.Contains(s, "||") {
		return r, fmt.Errorf("invalid range %q: OR-joined ranges are not supported", s)
	}

	for _, clause := range strings.Fields(s) {
		switch {
		case strings.HasPrefix(clause, ">="):
			if r.GTE != nil {
				return r, fmt.Errorf("invalid range %q: duplicate >= clause", s)
			}
			v, err := ParseVersion(clause[2:])
			if err != nil {
				return r, fmt.Errorf("invalid range %q: %w", s, err)
			}
			r.GTE = &v
		case strings.HasPrefix(clause, "<="):
			return r, fmt.Errorf("invalid range %q: operator %q is not supported", s, "<=")
		case strings.HasPrefix(clause, ">"):
			return r, fmt.Errorf("invalid range %q: operator %q is not supported", s, ">")
		case strings.HasPrefix(clause, "<"):
			if r.LT != nil {
				return r, fmt.Errorf("invalid range %q: duplicate < clause", s)
			}
			v, err := ParseVersion(clause[1:])
			if err != nil {
				return r, fmt.Errorf("invalid range %q: %w", s, err)
			}
			r.LT = &v
		case strings.HasPrefix(clause, "^"), strings.HasPrefix(clause, "~"):
			return r, fmt.Errorf("invalid range %q: operator %q is not supported", s, string(clause[0]))
		default:
			return r, fmt.Errorf("invalid range %q: unrecognized clause %q", s, clause)
		}
	}

	return r, nil
}

// Contains reports whether the version satisfies every present clause:
// inclusive on the lower bound, exclusive on the upper.
func (r Range) Contains(v Version) bool {
	if r.GTE != nil && v.Compare(*r.GTE) < 0 {
		return false
	}
	if r.LT != nil && v.Compare(*r.LT) >= 0 {
		return false
	}
	return true
}

// Satisfies parses both arguments and reports whether the version is in
// the range. An empty range expression matches every version.
func Satisfies(version, rangeExpr string) (bool, error) {
	v, err := ParseVersion(version)
	if err != nil {
		return false, err
	}
	r, err := ParseRange(rangeExpr)
	if err != nil {
		return false, err
	}
	return r.Contains(v), nil
}
