package models

// Idea is a top-level project idea posted by a community member
type Idea struct {
	Submission
	Title       string `json:"title" db:"title"`
	Problem     string `json:"problem" db:"problem"`
	Solution    string `json:"solution" db:"solution"`
	Category    string `json:"category" db:"category"`
	Difficulty  string `json:"difficulty" db:"difficulty"`
	LookingFor  string `json:"looking_for" db:"looking_for"`
	HowYouHelp  string `json:"how_you_help" db:"how_you_help"`
	LeadProject bool   `json:"lead_project" db:"lead_project"`
}

func (i *Idea) RecordKind() Kind     { return KindIdea }
func (i *Idea) RecordID() string     { return i.ID }
func (i *Idea) RecordStatus() Status { return i.Status }
func (i *Idea) Meta() *Submission    { return &i.Submission }

// IdeaSubmission is the public-form payload for a new idea.
// Any status-like field a client sends is ignored; the store always
// creates records as pending.
type IdeaSubmission struct {
	Title           string `json:"title"`
	Problem         string `json:"problem"`
	Solution        string `json:"solution"`
	Category        string `json:"category"`
	Difficulty      string `json:"difficulty"`
	LookingFor      string `json:"looking_for"`
	HowYouHelp      string `json:"how_you_help"`
	LeadProject     bool   `json:"lead_project"`
	SubmitterName   string `json:"submitter_name"`
	SubmitterEmail  string `json:"submitter_email"`
	SubmitterHandle string `json:"submitter_handle"`
	Status          string `json:"status,omitempty"` // ignored on create
}
