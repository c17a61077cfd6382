package js

import (
	"fmt"
	"strings"
)

// Profile identifies the browser family a runtime emulates.
// It is fixed when the runtime is created.
type Profile uint8

const (
	Chrome Profile = iota
	Edge
	Firefox
	FirefoxESR
	IE

	profileCount
)

var profileNames = [profileCount]string{
	Chrome:     "chrome",
	Edge:       "edge",
	Firefox:    "firefox",
	FirefoxESR: "firefox-esr",
	IE:         "ie",
}

var profileAliases = map[string]Profile{
	"chrome":      Chrome,
	"edge":        Edge,
	"firefox":     Firefox,
	"ff":          Firefox,
	"firefox-esr": FirefoxESR,
	"firefox_esr": FirefoxESR,
	"ff-esr":      FirefoxESR,
	"ff_esr":      FirefoxESR,
	"ie":          IE,
}

// String returns the canonical lowercase name of the profile.
func (p Profile) String() string {
	if p < profileCount {
		return profileNames[p]
	}
	return fmt.Sprintf("profile(%d)", uint8(p))
}

// Valid reports whether p is one of the known profiles.
func (p Profile) Valid() bool {
	return p < profileCount
}

// ParseProfile parses a profile name. Matching is case-insensitive.
func ParseProfile(s string) (Profile, error) {
	if p, ok := profileAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return p, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownProfile, s)
}

// KnownProfiles returns every profile in declaration order.
func KnownProfiles() []Profile {
	out := make([]Profile, 0, profileCount)
	for p := Profile(0); p < profileCount; p++ {
		out = append(out, p)
	}
	return out
}

// ProfileSet is a set of profiles.
type ProfileSet uint32

// AllProfiles contains every known profile.
const AllProfiles ProfileSet = 1<<profileCount - 1

// Profiles builds a set from the given profiles.
func Profiles(ps ...Profile) ProfileSet {
	var s ProfileSet
	for _, p := range ps {
		s |= 1 << p
	}
	return s
}

// Has reports whether p is in the set.
func (s ProfileSet) Has(p Profile) bool {
	return p.Valid() && s&(1<<p) != 0
}

// Empty reports whether the set has no members.
func (s ProfileSet) Empty() bool {
	return s == 0
}

// Valid reports whether the set only contains known profiles.
func (s ProfileSet) Valid() bool {
	return s&^AllProfiles == 0
}

func (s ProfileSet) String() string {
	var names []string
	for p := Profile(0); p < profileCount; p++ {
		if s.Has(p) {
			names = append(names, p.String())
		}
	}
	return "{" + strings.Join(names, ",") + "}"
}
