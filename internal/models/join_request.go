package models

// IdeaJoinRequest is a request to contribute to an existing idea.
// IdeaTitle is a display snapshot copied at submission time; it is never
// resynchronized if the idea is renamed.
type IdeaJoinRequest struct {
	Submission
	IdeaID    string `json:"idea_id" db:"idea_id"`
	IdeaTitle string `json:"idea_title" db:"idea_title"`
	TechStack string `json:"tech_stack" db:"tech_stack"`
	Message   string `json:"message,omitempty" db:"message"`
}

func (r *IdeaJoinRequest) RecordKind() Kind     { return KindJoinRequest }
func (r *IdeaJoinRequest) RecordID() string     { return r.ID }
func (r *IdeaJoinRequest) RecordStatus() Status { return r.Status }
func (r *IdeaJoinRequest) Meta() *Submission    { return &r.Submission }

// JoinRequestSubmission is the public-form payload for a join request
type JoinRequestSubmission struct {
	IdeaID          string `json:"idea_id"`
	IdeaTitle       string `json:"idea_title"`
	TechStack       string `json:"tech_stack"`
	Message         string `json:"message"`
	SubmitterName   string `json:"submitter_name"`
	SubmitterEmail  string `json:"submitter_email"`
	SubmitterHandle string `json:"submitter_handle"`
}
