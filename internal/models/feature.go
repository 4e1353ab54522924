package models

// ProjectFeature is a feature proposal against an open-source project.
// ProjectName is a display snapshot copied at submission time.
type ProjectFeature struct {
	Submission
	ProjectID   string `json:"project_id" db:"project_id"`
	ProjectName string `json:"project_name" db:"project_name"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	Category    string `json:"category" db:"category"`
	Difficulty  string `json:"difficulty" db:"difficulty"`
	Solution    string `json:"solution" db:"solution"`
}

func (f *ProjectFeature) RecordKind() Kind     { return KindFeature }
func (f *ProjectFeature) RecordID() string     { return f.ID }
func (f *ProjectFeature) RecordStatus() Status { return f.Status }
func (f *ProjectFeature) Meta() *Submission    { return &f.Submission }

// FeatureSubmission is the public-form payload for a feature proposal
type FeatureSubmission struct {
	ProjectID       string `json:"project_id"`
	ProjectName     string `json:"project_name"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	Difficulty      string `json:"difficulty"`
	Solution        string `json:"solution"`
	SubmitterName   string `json:"submitter_name"`
	SubmitterEmail  string `json:"submitter_email"`
	SubmitterHandle string `json:"submitter_handle"`
}
