/*
package version tracks the source version of rhoprof and decides whether a
config file written for some version can be read by this one.
*/
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// SourceVersion is the semantic version number of the source code.
const SourceVersion = "0.4.1"

// Version is a parsed semantic version number.
type Version struct {
	Major, Minor, Patch int
}

const parseErrMsg = "The version string '%s' does not take the form of " +
	"three period-separated non-negative numbers."

// Parse parses a semantic version number string and returns an error if
// the string is invalid.
func Parse(s string) (Version, error) {
	toks := strings.Split(s, ".")
	if len(toks) != 3 {
		return Version{}, fmt.Errorf(parseErrMsg, s)
	}

	nums := [3]int{}
	for i := range toks {
		n, err := strconv.Atoi(toks[i])
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf(parseErrMsg, s)
		}
		nums[i] = n
	}

	return Version{nums[0], nums[1], nums[2]}, nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// After returns true if v is a later version than u.
func (v Version) After(u Version) bool {
	switch {
	case v.Major != u.Major:
		return v.Major > u.Major
	case v.Minor != u.Minor:
		return v.Minor > u.Minor
	default:
		return v.Patch > u.Patch
	}
}

// Later returns true if s1 represents a later version of the source than
// s2. An error is returned if either is invalid.
func Later(s1, s2 string) (bool, error) {
	v1, err := Parse(s1)
	if err != nil {
		return false, err
	}
	v2, err := Parse(s2)
	if err != nil {
		return false, err
	}
	return v1.After(v2), nil
}

// Compatible returns an error if a config file written for the version s
// can't be read by this source. Patch releases never change config
// variables, so only the major and minor numbers need to match.
func Compatible(s string) error {
	v, err := Parse(s)
	if err != nil {
		return err
	}
	src, _ := Parse(SourceVersion)
	if v.Major != src.Major || v.Minor != src.Minor {
		return fmt.Errorf("The config file was written for version %s, "+
			"but the version of the source is %s.", s, SourceVersion)
	}
	return nil
}
