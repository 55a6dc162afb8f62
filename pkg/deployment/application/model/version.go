package model

import (
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"
)

var ErrInvalidVersion = errors.New("invalid version")

// Version is a semantic version whose pre-release part is split into a label
// and a trailing counter, e.g. 3.0.0-beta.2 has label "beta" and counter 2.
type Version struct {
	Major uint64
	Minor uint64
	Patch uint64

	PreRelease          string
	PreReleaseNumber    uint64
	HasPreReleaseNumber bool
}

// ParseVersion accepts strict semantic versions with an optional leading v.
// Build metadata is rejected because it cannot be carried into a tag name unambiguously.
func ParseVersion(text string) (Version, error) {
	parsed, err := semver.StrictNewVersion(strings.TrimPrefix(text, "v"))
	if err != nil {
		return Version{}, errors.Wrapf(ErrInvalidVersion, "%q: %v", text, err)
	}
	if parsed.Metadata() != "" {
		return Version{}, errors.Wrapf(ErrInvalidVersion, "%q: build metadata is not supported", text)
	}

	version := Version{
		Major: parsed.Major(),
		Minor: parsed.Minor(),
		Patch: parsed.Patch(),
	}
	preRelease := parsed.Prerelease()
	if preRelease == "" {
		return version, nil
	}

	label, counter := "", preRelease
	if i := strings.LastIndex(preRelease, "."); i >= 0 {
		label, counter = preRelease[:i], preRelease[i+1:]
	}
	number, err := strconv.ParseUint(counter, 10, 64)
	if err != nil {
		version.PreRelease = preRelease
		return version, nil
	}
	version.PreRelease = label
	version.PreReleaseNumber = number
	version.HasPreReleaseNumber = true
	return version, nil
}

func (v Version) IsPreRelease() bool {
	return v.PreRelease != "" || v.HasPreReleaseNumber
}

// Next bumps the pre-release counter when there is one and the patch otherwise.
// Bumping the patch drops a counterless pre-release label.
func (v Version) Next() Version {
	if v.HasPreReleaseNumber {
		v.PreReleaseNumber++
		return v
	}
	return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
}

// Compare returns -1, 0 or 1. Pre-releases sort before their release and
// numeric identifiers compare numerically.
func (v Version) Compare(other Version) int {
	return v.semver().Compare(other.semver())
}

func (v Version) String() string {
	return v.semver().String()
}

func (v Version) preRelease() string {
	if !v.HasPreReleaseNumber {
		return v.PreRelease
	}
	number := strconv.FormatUint(v.PreReleaseNumber, 10)
	if v.PreRelease == "" {
		return number
	}
	return v.PreRelease + "." + number
}

func (v Version) semver() *semver.Version {
	return semver.New(v.Major, v.Minor, v.Patch, v.preRelease(), "")
}
