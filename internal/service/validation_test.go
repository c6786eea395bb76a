package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/srisoftware/portal-api/internal/models"
	appErrors "github.com/srisoftware/portal-api/pkg/errors"
)

func TestValidatorRejectsBlankRequiredText(t *testing.T) {
	v := NewValidator()
	due := models.MustDate("2024-05-01")
	profile := StudentProfileInput{FullName: "Asha Rao"}

	cases := []struct {
		name  string
		req   interface{}
		field string
	}{
		{"lead name", RegisterLeadRequest{FullName: "  ", CollegeName: "PSG", EducationQualification: "BE", MobileNumber: "9876543210", City: "Salem"}, "full_name"},
		{"lead city", RegisterLeadRequest{FullName: "Asha", CollegeName: "PSG", EducationQualification: "BE", MobileNumber: "9876543210", City: "\t"}, "city"},
		{"lead mobile", RegisterLeadRequest{FullName: "Asha", CollegeName: "PSG", EducationQualification: "BE", MobileNumber: "         ", City: "Salem"}, "mobile_number"},
		{"create student id", CreateStudentRequest{StudentID: "   ", Password: "secret1", StudentProfileInput: profile}, "student_id"},
		{"create name", CreateStudentRequest{StudentID: "STU010", Password: "secret1", StudentProfileInput: StudentProfileInput{FullName: "   "}}, "full_name"},
		{"update name", UpdateStudentRequest{StudentID: "STU010", StudentProfileInput: StudentProfileInput{FullName: " "}}, "full_name"},
		{"attendance entry", MarkAttendanceRequest{Entries: []AttendanceEntry{{StudentID: "  ", Status: models.AttendancePresent}}}, "student_id"},
		{"fee type", FeeRequest{StudentID: "STU001", FeeType: "  ", Amount: 100, DueDate: due, PaymentStatus: models.PaymentPending}, "fee_type"},
		{"fee student", FeeRequest{StudentID: " ", FeeType: "Tuition", Amount: 100, DueDate: due, PaymentStatus: models.PaymentPending}, "student_id"},
		{"note title", SendNoteRequest{Title: "  ", Content: "Bring laptops"}, "title"},
		{"note content", SendNoteRequest{Title: "Lab", Content: "\n "}, "content"},
		{"task title", AssignTaskRequest{Title: "   "}, "title"},
		{"project name", AssignProjectRequest{ProjectName: "  "}, "project_name"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := invalid(v.Struct(tc.req), "invalid payload")
			require.Error(t, err)
			assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation.Code))
			assert.Contains(t, err.Error(), tc.field+" is required")
		})
	}
}

func TestTaskServiceAssignBlankTitleSendsNothing(t *testing.T) {
	repo := newMemTaskRepo()
	svc := NewTaskService(repo, &fakeRoster{ids: []string{"STU001"}}, nil, nil, nil, zap.NewNop())

	_, err := svc.Assign(context.Background(), adminIdentity(), AssignTaskRequest{Audience: Audience{StudentIDs: []string{"STU001"}}, Title: "   "})

	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation.Code))
	assert.Zero(t, repo.batches)
	assert.Empty(t, repo.rows)
}

func TestStudentServiceCreateBlankNameSendsNothing(t *testing.T) {
	repo := newMockStudentRepo()
	svc := NewStudentService(repo, plainHasher{}, nil, nil, nil, zap.NewNop(), 0)

	_, err := svc.Create(context.Background(), adminIdentity(), CreateStudentRequest{
		StudentID:           "STU010",
		Password:            "secret1",
		StudentProfileInput: StudentProfileInput{FullName: "   "},
	})

	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation.Code))
	assert.Zero(t, repo.created)
}
