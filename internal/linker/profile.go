package linker

import (
	"fmt"
	"strings"
)

// Profile selects how a variables table is laid out and which cells get linked.
type Profile string

// Supported profiles.
const (
	ProfileTHECB Profile = "thecb"
	ProfileSBEC  Profile = "sbec"
	ProfileTEA   Profile = "tea"
)

// Profiles lists the supported profiles in help order.
var Profiles = []Profile{ProfileTHECB, ProfileSBEC, ProfileTEA}

// ResetMessage is the version message of a reset.
const ResetMessage = "Reset hyperlinks to plain text"

// ParseProfile parses a --link-type value.
func ParseProfile(s string) (Profile, error) {
	p := Profile(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Profiles {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q (want one of thecb, sbec, tea)", ErrUnknownProfile, s)
}

// Message returns the version message recorded when links are updated.
func (p Profile) Message() string {
	return "Updated " + strings.ToUpper(string(p)) + " links"
}
