package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/project-moderation-api/internal/models"
)

var (
	emailRegex       = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	pullRequestRegex = regexp.MustCompile(`^https://(www\.)?github\.com/[\w.-]+/[\w.-]+/pull/\d+/?$`)
)

const (
	maxTitleLen = 200
	maxNameLen  = 100
	maxTextLen  = 5000
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// validateSubmitter checks the contact fields every kind requires: a name
// plus at least one of email or external profile handle.
func validateSubmitter(name, email, handle string) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(name) == "" {
		errs = append(errs, ValidationError{Field: "submitter_name", Message: "submitter_name is required"})
	} else if len(name) > maxNameLen {
		errs = append(errs, ValidationError{Field: "submitter_name", Message: fmt.Sprintf("must be at most %d characters", maxNameLen)})
	}

	if email == "" && handle == "" {
		errs = append(errs, ValidationError{Field: "submitter_email", Message: "an email or profile handle is required"})
	}
	if email != "" && !emailRegex.MatchString(email) {
		errs = append(errs, ValidationError{Field: "submitter_email", Message: "invalid email format", Value: email})
	}
	if len(handle) > maxNameLen {
		errs = append(errs, ValidationError{Field: "submitter_handle", Message: fmt.Sprintf("must be at most %d characters", maxNameLen)})
	}

	return errs
}

func requireText(errs []ValidationError, field, value string, maxLen int) []ValidationError {
	if strings.TrimSpace(value) == "" {
		return append(errs, ValidationError{Field: field, Message: field + " is required"})
	}
	if len(value) > maxLen {
		return append(errs, ValidationError{Field: field, Message: fmt.Sprintf("must be at most %d characters", maxLen)})
	}
	return errs
}

// ValidateIdea validates an idea submission
func ValidateIdea(sub *models.IdeaSubmission) []ValidationError {
	errs := validateSubmitter(sub.SubmitterName, sub.SubmitterEmail, sub.SubmitterHandle)
	errs = requireText(errs, "title", sub.Title, maxTitleLen)
	errs = requireText(errs, "problem", sub.Problem, maxTextLen)
	errs = requireText(errs, "solution", sub.Solution, maxTextLen)
	errs = requireText(errs, "category", sub.Category, maxNameLen)
	errs = requireText(errs, "difficulty", sub.Difficulty, maxNameLen)
	errs = requireText(errs, "looking_for", sub.LookingFor, maxNameLen)
	errs = requireText(errs, "how_you_help", sub.HowYouHelp, maxTextLen)
	return errs
}

// ValidateJoinRequest validates an idea join request submission
func ValidateJoinRequest(sub *models.JoinRequestSubmission) []ValidationError {
	errs := validateSubmitter(sub.SubmitterName, sub.SubmitterEmail, sub.SubmitterHandle)
	errs = requireText(errs, "idea_id", sub.IdeaID, maxNameLen)
	errs = requireText(errs, "tech_stack", sub.TechStack, maxTextLen)
	if len(sub.Message) > maxTextLen {
		errs = append(errs, ValidationError{Field: "message", Message: fmt.Sprintf("must be at most %d characters", maxTextLen)})
	}
	return errs
}

// ValidateFeature validates a project feature submission
func ValidateFeature(sub *models.FeatureSubmission) []ValidationError {
	errs := validateSubmitter(sub.SubmitterName, sub.SubmitterEmail, sub.SubmitterHandle)
	errs = requireText(errs, "project_id", sub.ProjectID, maxNameLen)
	errs = requireText(errs, "project_name", sub.ProjectName, maxTitleLen)
	errs = requireText(errs, "title", sub.Title, maxTitleLen)
	errs = requireText(errs, "description", sub.Description, maxTextLen)
	errs = requireText(errs, "category", sub.Category, maxNameLen)
	errs = requireText(errs, "difficulty", sub.Difficulty, maxNameLen)
	errs = requireText(errs, "solution", sub.Solution, maxTextLen)
	return errs
}

// ValidateContribution validates a project contribution submission
func ValidateContribution(sub *models.ContributionSubmission) []ValidationError {
	errs := validateSubmitter(sub.SubmitterName, sub.SubmitterEmail, sub.SubmitterHandle)
	errs = requireText(errs, "project_id", sub.ProjectID, maxNameLen)
	errs = requireText(errs, "project_name", sub.ProjectName, maxTitleLen)
	errs = requireText(errs, "title", sub.Title, maxTitleLen)
	errs = requireText(errs, "description", sub.Description, maxTextLen)
	errs = requireText(errs, "type", sub.Type, maxNameLen)
	errs = requireText(errs, "experience_level", sub.ExperienceLevel, maxNameLen)
	errs = requireText(errs, "timeline", sub.Timeline, maxNameLen)
	errs = requireText(errs, "how_you_help", sub.HowYouHelp, maxTextLen)
	if sub.PullRequestURL != "" && !pullRequestRegex.MatchString(sub.PullRequestURL) {
		errs = append(errs, ValidationError{
			Field:   "pull_request_url",
			Message: "must look like a GitHub pull request URL",
			Value:   sub.PullRequestURL,
		})
	}
	return errs
}
