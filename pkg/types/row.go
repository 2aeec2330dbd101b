// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// OutputRow is one (item, vote) row of the published dataset. It is the
// shape consumed by the downstream lookup table.
type OutputRow struct {
	Designator    string  `json:"designator" yaml:"designator"`
	Proposer      string  `json:"proposer" yaml:"proposer"`
	Action        string  `json:"action" yaml:"action"`
	Brief         string  `json:"brief" yaml:"brief"`
	Annotation    string  `json:"annotation" yaml:"annotation"`
	Mover         string  `json:"mover" yaml:"mover"`
	Seconder      string  `json:"seconder" yaml:"seconder"`
	Outcome       Outcome `json:"outcome" yaml:"outcome"`
	CouncilMember *string `json:"council_member" yaml:"council_member"`
	Vote          Vote    `json:"vote" yaml:"vote"`

	// MeetingDate is YYYY-MM-DD, or nil when the source filename had no date.
	MeetingDate *string `json:"meeting_date" yaml:"meeting_date"`

	Source string `json:"source" yaml:"source"`
	Page   int    `json:"page,omitempty" yaml:"page,omitempty"`

	// ItemIndex is the ordinal of the item within its source document. With
	// Source it identifies one item instance across the concatenated rows.
	ItemIndex int `json:"item_index" yaml:"item_index"`
}

// Columns lists the tabular column names in output order.
var Columns = []string{
	"designator", "proposer", "action", "brief", "annotation",
	"mover", "seconder", "outcome", "council_member", "vote",
	"meeting_date", "source", "page",
}

// Member returns the council member name, or "" for the sentinel row.
func (r OutputRow) Member() string {
	if r.CouncilMember == nil {
		return ""
	}
	return *r.CouncilMember
}

// Date returns the meeting date string, or "" when unknown.
func (r OutputRow) Date() string {
	if r.MeetingDate == nil {
		return ""
	}
	return *r.MeetingDate
}
