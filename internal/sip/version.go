package sip

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// OSVersion is a macOS product version.
type OSVersion struct {
	Major int `json:"major" yaml:"major"`
	Minor int `json:"minor" yaml:"minor"`
	Patch int `json:"patch" yaml:"patch"`
}

// MinimumVersion is the first release with System Integrity Protection.
var MinimumVersion = OSVersion{Major: 10, Minor: 11}

func (v OSVersion) String() string {
	if v.Patch != 0 {
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Less compares major, then minor, then patch.
func (v OSVersion) Less(o OSVersion) bool {
	if v.Major != o.Major {
		return v.Major < o.Major
	}
	if v.Minor != o.Minor {
		return v.Minor < o.Minor
	}
	return v.Patch < o.Patch
}

// ParseOSVersion parses "14", "10.15" or "13.6.1".
func ParseOSVersion(s string) (OSVersion, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return OSVersion{}, fmt.Errorf("empty os version")
	}
	parts := strings.Split(s, ".")
	if len(parts) > 3 {
		return OSVersion{}, fmt.Errorf("invalid os version %q", s)
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return OSVersion{}, fmt.Errorf("invalid os version %q", s)
		}
		nums[i] = n
	}
	return OSVersion{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// VersionProvider discovers the installed OS version.
type VersionProvider interface {
	OSVersion(ctx context.Context) (OSVersion, error)
}

// VersionFunc adapts a function to VersionProvider.
type VersionFunc func(ctx context.Context) (OSVersion, error)

func (f VersionFunc) OSVersion(ctx context.Context) (OSVersion, error) {
	return f(ctx)
}
