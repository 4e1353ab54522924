package benchmark

import (
	"context"
	"fmt"
	"testing"

	"github.com/project-moderation-api/internal/mocks"
	"github.com/project-moderation-api/internal/models"
	"github.com/project-moderation-api/internal/validation"
)

// seedFeatures loads n feature records spread across 10 projects and the
// three statuses
func seedFeatures(b *testing.B, repo *mocks.MockFeatureRepository, n int) {
	b.Helper()
	ctx := context.Background()
	statuses := []models.Status{models.StatusPending, models.StatusApproved, models.StatusRejected}
	for i := 0; i < n; i++ {
		feature := &models.ProjectFeature{
			ProjectID:   fmt.Sprintf("p%d", i%10),
			ProjectName: "Project",
			Title:       fmt.Sprintf("Feature %d", i),
		}
		if err := repo.Create(ctx, feature); err != nil {
			b.Fatal(err)
		}
		feature.Status = statuses[i%3]
	}
}

// BenchmarkListByParent measures the full-collection-scan filtering the
// admin and public views rely on
func BenchmarkListByParent(b *testing.B) {
	repo := mocks.NewMockFeatureRepository()
	seedFeatures(b, repo, 10000)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		records, err := repo.List(ctx, models.Filter{
			Status:   models.StatusApproved,
			ParentID: "p1",
		})
		if err != nil {
			b.Fatal(err)
		}
		_ = records
	}
}

// BenchmarkCountByStatus measures the in-memory status summary used by the
// admin list view
func BenchmarkCountByStatus(b *testing.B) {
	repo := mocks.NewMockFeatureRepository()
	seedFeatures(b, repo, 10000)
	records, err := repo.List(context.Background(), models.Filter{})
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		counts := models.CountByStatus(records)
		if counts.Total != 10000 {
			b.Fatalf("unexpected total %d", counts.Total)
		}
	}
}

// BenchmarkValidateContribution measures submission validation throughput
func BenchmarkValidateContribution(b *testing.B) {
	sub := &models.ContributionSubmission{
		ProjectID:       "p1",
		ProjectName:     "Example",
		Title:           "Fix flaky tests",
		Description:     "Stabilizes the CI suite",
		Type:            "bugfix",
		ExperienceLevel: "intermediate",
		Timeline:        "2 weeks",
		HowYouHelp:      "I maintain similar suites",
		PullRequestURL:  "https://github.com/org/repo/pull/42",
		SubmitterName:   "Ada",
		SubmitterEmail:  "ada@test.dev",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if errs := validation.ValidateContribution(sub); len(errs) != 0 {
			b.Fatalf("unexpected errors: %v", errs)
		}
	}
}
