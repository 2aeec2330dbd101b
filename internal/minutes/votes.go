// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package minutes

import (
	"strings"

	"github.com/pdiddy/council-votes/pkg/types"
)

// NormalizeVote lower-cases a vote keyword and reports whether it is one of
// the five canonical votes.
func NormalizeVote(keyword string) (types.Vote, bool) {
	v := types.Vote(strings.ToLower(strings.TrimSpace(keyword)))
	return v, v.Valid()
}

// NormalizeMember trims a member name and collapses embedded line breaks and
// runs of whitespace. Empty tokens and digit-only placeholders left behind by
// tally formatting ("0") are rejected.
func NormalizeMember(name string) (string, bool) {
	name = collapseSpace(name)
	if name == "" || isDigits(name) {
		return "", false
	}
	return name, true
}

// splitMembers turns a tally member list ("MORENO, KING, THOMAS - 3") into
// normalized member names.
func splitMembers(list string) []string {
	list = tallyCountRe.ReplaceAllString(list, "")
	var members []string
	for _, part := range strings.Split(list, ",") {
		if m, ok := NormalizeMember(part); ok {
			members = append(members, m)
		}
	}
	return members
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
