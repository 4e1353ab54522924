package models

import (
	"time"
)

// Status is the moderation state of a submitted record
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ValidStatuses defines allowed record statuses
var ValidStatuses = map[Status]bool{
	StatusPending:  true,
	StatusApproved: true,
	StatusRejected: true,
}

// Kind identifies one of the four moderatable record kinds
type Kind string

const (
	KindIdea         Kind = "idea"
	KindJoinRequest  Kind = "idea_request"
	KindFeature      Kind = "project_feature"
	KindContribution Kind = "project_contribution"
)

// AllKinds lists every record kind, in display order
var AllKinds = []Kind{KindIdea, KindJoinRequest, KindFeature, KindContribution}

// Submission holds the lifecycle fields shared by all four record kinds.
// The store assigns ID and timestamps; status always starts at pending.
type Submission struct {
	ID              string    `json:"id" db:"id"`
	Status          Status    `json:"status" db:"status"`
	SubmitterName   string    `json:"submitter_name" db:"submitter_name"`
	SubmitterEmail  string    `json:"submitter_email" db:"submitter_email"`
	SubmitterHandle string    `json:"submitter_handle,omitempty" db:"submitter_handle"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// Record is the generic moderatable record: any of the four kinds seen
// through its shared lifecycle fields.
type Record interface {
	RecordKind() Kind
	RecordID() string
	RecordStatus() Status
	Meta() *Submission
}

// Filter narrows a list query. Zero values mean "no filter".
type Filter struct {
	Status   Status
	ParentID string
}

// StatusCounts summarizes a record list by status. Derived by scanning the
// full list in memory, not by a separate aggregate query.
type StatusCounts struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Total    int `json:"total"`
}

// CountByStatus tallies records per status
func CountByStatus(records []Record) StatusCounts {
	var counts StatusCounts
	for _, r := range records {
		switch r.RecordStatus() {
		case StatusPending:
			counts.Pending++
		case StatusApproved:
			counts.Approved++
		case StatusRejected:
			counts.Rejected++
		}
		counts.Total++
	}
	return counts
}
