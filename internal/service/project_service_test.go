package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/srisoftware/portal-api/internal/models"
	appErrors "github.com/srisoftware/portal-api/pkg/errors"
)

type memProjectRepo struct {
	rows    map[string]*models.Project
	batches int
}

func newMemProjectRepo(projects ...models.Project) *memProjectRepo {
	repo := &memProjectRepo{rows: map[string]*models.Project{}}
	for i := range projects {
		p := projects[i]
		repo.rows[p.ID] = &p
	}
	return repo
}

func (m *memProjectRepo) List(ctx context.Context, filter models.ProjectFilter) ([]models.Project, error) {
	out := []models.Project{}
	for _, p := range m.rows {
		if filter.StudentID != "" && p.StudentID != filter.StudentID {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (m *memProjectRepo) FindByID(ctx context.Context, id string) (*models.Project, error) {
	if p, ok := m.rows[id]; ok {
		c := *p
		return &c, nil
	}
	return nil, sql.ErrNoRows
}

func (m *memProjectRepo) CreateMany(ctx context.Context, projects []models.Project) error {
	m.batches++
	for i := range projects {
		projects[i].ID = "project-" + projects[i].StudentID
		c := projects[i]
		m.rows[c.ID] = &c
	}
	return nil
}

func (m *memProjectRepo) SubmitLinks(ctx context.Context, id, studentID string, github, live *string) (bool, error) {
	p, ok := m.rows[id]
	if !ok || p.StudentID != studentID || p.Status == models.ProjectCompleted {
		return false, nil
	}
	p.GithubLink, p.LiveLink, p.Status = github, live, models.ProjectSubmitted
	return true, nil
}

func (m *memProjectRepo) Complete(ctx context.Context, id string) (bool, error) {
	p, ok := m.rows[id]
	if !ok || p.Status != models.ProjectSubmitted {
		return false, nil
	}
	p.Status = models.ProjectCompleted
	return true, nil
}

func TestProjectServiceAssignToAllTrainees(t *testing.T) {
	repo := newMemProjectRepo()
	svc := NewProjectService(repo, &fakeRoster{ids: []string{"STU001", "STU002"}}, nil, nil, nil, zap.NewNop())

	projects, err := svc.Assign(context.Background(), adminIdentity(), AssignProjectRequest{
		Audience:     Audience{AllTrainees: true},
		ProjectName:  "Portfolio",
		Technologies: TagList{"Go", "React"},
		StartDate:    models.MustDate("2024-01-01").Ptr(),
		EndDate:      models.MustDate("2024-02-01").Ptr(),
	})
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, 1, repo.batches)
	for _, p := range projects {
		assert.Equal(t, models.ProjectInProgress, p.Status)
		assert.Equal(t, []string{"Go", "React"}, []string(p.Technologies))
	}
}

func TestProjectServiceAssignValidation(t *testing.T) {
	repo := newMemProjectRepo()
	svc := NewProjectService(repo, &fakeRoster{ids: []string{"STU001"}}, nil, nil, nil, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Assign(ctx, adminIdentity(), AssignProjectRequest{
		Audience:    Audience{StudentIDs: []string{"STU001"}},
		ProjectName: "Portfolio",
		StartDate:   models.MustDate("2024-02-01").Ptr(),
		EndDate:     models.MustDate("2024-01-01").Ptr(),
	})
	require.Error(t, err)
	assert.Equal(t, "end date cannot be before start date", appErrors.FromError(err).Message)

	_, err = svc.Assign(ctx, adminIdentity(), AssignProjectRequest{Audience: Audience{StudentIDs: []string{"STU001"}}, ProjectName: "P", Status: "archived"})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation.Code))
	assert.Zero(t, repo.batches)
}

func TestProjectServiceSubmitThenComplete(t *testing.T) {
	repo := newMemProjectRepo(models.Project{ID: "p1", StudentID: "STU001", ProjectName: "Portfolio", Status: models.ProjectInProgress})
	audit := &mockAudit{}
	svc := NewProjectService(repo, &fakeRoster{}, audit, nil, nil, zap.NewNop())
	ctx := context.Background()
	me := studentIdentity("STU001")

	_, err := svc.Complete(ctx, adminIdentity(), "p1")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInvalidTransition.Code))

	_, err = svc.Submit(ctx, me, "p1", SubmitProjectRequest{})
	require.Error(t, err)
	assert.Equal(t, "provide a GitHub or live link", appErrors.FromError(err).Message)

	project, err := svc.Submit(ctx, me, "p1", SubmitProjectRequest{GithubLink: strPtr("https://github.com/asha/portfolio")})
	require.NoError(t, err)
	assert.Equal(t, models.ProjectSubmitted, project.Status)
	assert.Nil(t, project.LiveLink)

	project, err = svc.Submit(ctx, me, "p1", SubmitProjectRequest{GithubLink: strPtr("https://github.com/asha/portfolio"), LiveLink: strPtr("https://asha.dev")})
	require.NoError(t, err)
	assert.Equal(t, "https://asha.dev", *project.LiveLink)

	project, err = svc.Complete(ctx, adminIdentity(), "p1")
	require.NoError(t, err)
	assert.Equal(t, models.ProjectCompleted, project.Status)
	assert.Equal(t, []string{"UPDATE projects"}, audit.actions())

	_, err = svc.Submit(ctx, me, "p1", SubmitProjectRequest{LiveLink: strPtr("https://asha.dev")})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInvalidTransition.Code))

	_, err = svc.Submit(ctx, studentIdentity("STU002"), "p1", SubmitProjectRequest{LiveLink: strPtr("https://asha.dev")})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound.Code))
}

func TestProjectServiceForStudentScopesToIdentity(t *testing.T) {
	repo := newMemProjectRepo(
		models.Project{ID: "p1", StudentID: "STU001", ProjectName: "Mine"},
		models.Project{ID: "p2", StudentID: "STU002", ProjectName: "Theirs"},
	)
	svc := NewProjectService(repo, &fakeRoster{}, nil, nil, nil, zap.NewNop())

	projects, err := svc.ForStudent(context.Background(), studentIdentity("STU001"))
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Mine", projects[0].ProjectName)
}
