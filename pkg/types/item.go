// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// ItemKind identifies which header grammar recognized an agenda item.
type ItemKind string

const (
	// KindGeneric is a motion, resolution, or ordinance amendment introduced
	// in the meeting ("MOTION NO. M-23-145 - BY: ...").
	KindGeneric ItemKind = "generic"

	// KindCalendar is a pre-numbered calendar matter ("CAL. NO. 34,462 - BY: ...").
	KindCalendar ItemKind = "calendar"
)

// Outcome is the result of one voting round.
type Outcome string

const (
	OutcomePassed    Outcome = "passed"
	OutcomeFailed    Outcome = "failed"
	OutcomeWithdrawn Outcome = "withdrawn"
	OutcomeUnknown   Outcome = "unknown"
)

// Vote is a canonical vote value.
type Vote string

const (
	VoteYeas    Vote = "yeas"
	VoteNays    Vote = "nays"
	VoteAbstain Vote = "abstain"
	VoteAbsent  Vote = "absent"
	VoteRecused Vote = "recused"

	// VoteNotAvailable marks the sentinel row of an item without recorded votes.
	VoteNotAvailable Vote = "not available"
)

// Valid reports whether v is one of the five canonical member votes.
func (v Vote) Valid() bool {
	switch v {
	case VoteYeas, VoteNays, VoteAbstain, VoteAbsent, VoteRecused:
		return true
	}
	return false
}

// ItemHeader is the identity of an agenda item. Immutable once extracted.
type ItemHeader struct {
	Kind ItemKind `json:"kind" yaml:"kind"`

	// Designator is the canonical identifier, e.g. "MOTION M-23-145" or
	// "CAL. NO. 34,462". It is the deduplication key.
	Designator string `json:"designator" yaml:"designator"`

	// Proposer is who introduced the item ("COUNCILMEMBER MORENO").
	Proposer string `json:"proposer" yaml:"proposer"`

	// Action is the ACTION: keyword (e.g. "Adopt"), when present.
	Action string `json:"action,omitempty" yaml:"action,omitempty"`

	// Brief is the item summary from the Brief: field, when present.
	Brief string `json:"brief,omitempty" yaml:"brief,omitempty"`

	// Annotation is the Annotation: field, when present.
	Annotation string `json:"annotation,omitempty" yaml:"annotation,omitempty"`
}

// MemberVote is one entry of a round's raw vote mapping.
type MemberVote struct {
	Member  string `json:"member" yaml:"member"`
	Keyword string `json:"keyword" yaml:"keyword"`
}

// VotingRound is one move-second-vote-outcome sequence of an item.
type VotingRound struct {
	Mover    string  `json:"mover" yaml:"mover"`
	Seconder string  `json:"seconder,omitempty" yaml:"seconder,omitempty"`
	Outcome  Outcome `json:"outcome" yaml:"outcome"`

	// Votes maps member to raw vote keyword in first-seen order. Each member
	// appears at most once; a later occurrence overwrites the keyword.
	Votes []MemberVote `json:"votes" yaml:"votes"`
}

// SetVote records keyword for member, keeping the member's original position
// when it already has an entry.
func (r *VotingRound) SetVote(member, keyword string) {
	for i := range r.Votes {
		if r.Votes[i].Member == member {
			r.Votes[i].Keyword = keyword
			return
		}
	}
	r.Votes = append(r.Votes, MemberVote{Member: member, Keyword: keyword})
}

// Records returns the canonical vote records of the round. Entries whose
// keyword is not a canonical vote are skipped.
func (r VotingRound) Records() []VoteRecord {
	var out []VoteRecord
	for _, mv := range r.Votes {
		v := Vote(strings.ToLower(strings.TrimSpace(mv.Keyword)))
		if !v.Valid() || mv.Member == "" {
			continue
		}
		member := mv.Member
		out = append(out, VoteRecord{Member: &member, Vote: v})
	}
	return out
}

// VoteRecord is a canonical (council member, vote) pair. Member is nil only
// for the sentinel record.
type VoteRecord struct {
	Member *string `json:"council_member" yaml:"council_member"`
	Vote   Vote    `json:"vote" yaml:"vote"`
}

// SentinelRecord is emitted for items that carry no recognized votes.
func SentinelRecord() VoteRecord {
	return VoteRecord{Vote: VoteNotAvailable}
}

// ParsedItem is an item header plus its voting rounds.
type ParsedItem struct {
	Header ItemHeader    `json:"header" yaml:"header"`
	Rounds []VotingRound `json:"rounds" yaml:"rounds"`

	// Page is the page on which the header was found; 0 when unknown.
	Page int `json:"page,omitempty" yaml:"page,omitempty"`
}
