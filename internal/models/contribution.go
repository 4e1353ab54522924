package models

// ProjectContribution is a code contribution submitted against a project,
// optionally linking an open pull request.
type ProjectContribution struct {
	Submission
	ProjectID       string `json:"project_id" db:"project_id"`
	ProjectName     string `json:"project_name" db:"project_name"`
	Title           string `json:"title" db:"title"`
	Description     string `json:"description" db:"description"`
	Type            string `json:"type" db:"type"`
	ExperienceLevel string `json:"experience_level" db:"experience_level"`
	Timeline        string `json:"timeline" db:"timeline"`
	HowYouHelp      string `json:"how_you_help" db:"how_you_help"`
	PullRequestURL  string `json:"pull_request_url,omitempty" db:"pull_request_url"`
}

func (c *ProjectContribution) RecordKind() Kind     { return KindContribution }
func (c *ProjectContribution) RecordID() string     { return c.ID }
func (c *ProjectContribution) RecordStatus() Status { return c.Status }
func (c *ProjectContribution) Meta() *Submission    { return &c.Submission }

// ContributionSubmission is the public-form payload for a contribution
type ContributionSubmission struct {
	ProjectID       string `json:"project_id"`
	ProjectName     string `json:"project_name"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Type            string `json:"type"`
	ExperienceLevel string `json:"experience_level"`
	Timeline        string `json:"timeline"`
	HowYouHelp      string `json:"how_you_help"`
	PullRequestURL  string `json:"pull_request_url"`
	SubmitterName   string `json:"submitter_name"`
	SubmitterEmail  string `json:"submitter_email"`
	SubmitterHandle string `json:"submitter_handle"`
}
