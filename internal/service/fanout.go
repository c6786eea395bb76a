package service

import (
	"context"

	"github.com/srisoftware/portal-api/internal/models"
	appErrors "github.com/srisoftware/portal-api/pkg/errors"
)

type rosterSource interface {
	RosterIDs(ctx context.Context) ([]string, error)
	MissingStudentIDs(ctx context.Context, ids []string) ([]string, error)
}

// Audience selects the students a bulk write fans out to: either every
// trainee on the roster or an explicit list.
type Audience struct {
	AllTrainees bool     `json:"all_trainees"`
	StudentIDs  []string `json:"student_ids"`
}

// resolveAudience returns the normalised, existing student IDs of a.
func resolveAudience(ctx context.Context, students rosterSource, a Audience) ([]string, error) {
	if a.AllTrainees {
		ids, err := students.RosterIDs(ctx)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return nil, appErrors.Clone(appErrors.ErrValidation, "no trainees on the roster")
		}
		return ids, nil
	}
	ids := dedupe(a.StudentIDs)
	if err := ensureStudents(ctx, students, ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// fanOut builds one row per student from build.
func fanOut[T any](ids []string, build func(studentID string) T) []T {
	rows := make([]T, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, build(id))
	}
	return rows
}

func auditFanOut(ctx context.Context, audit auditRecorder, actor models.Identity, resource string, ids []string) {
	recordChange(ctx, audit, actor, models.AuditActionCreate, resource, "", map[string]interface{}{
		"students": ids,
		"rows":     len(ids),
	})
}
