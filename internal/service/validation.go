package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/srisoftware/portal-api/internal/models"
	"github.com/srisoftware/portal-api/pkg/database"
	appErrors "github.com/srisoftware/portal-api/pkg/errors"
)

// NewValidator returns a validator that reports json field names and knows
// the portal's enum tags.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	registerEnum(v, "student_status", func(s string) bool { return models.StudentStatus(s).Valid() })
	registerEnum(v, "attendance_status", func(s string) bool { return models.AttendanceStatus(s).Valid() })
	registerEnum(v, "fee_status", func(s string) bool { return models.PaymentStatus(s).Valid() })
	registerEnum(v, "project_status", func(s string) bool { return models.ProjectStatus(s).Valid() })
	_ = v.RegisterValidation("task_grade", validTaskGrade)
	return v
}

const maxTaskGrade = 100

func validTaskGrade(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		g := field.Float()
		return g >= 0 && g <= maxTaskGrade
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		g := field.Int()
		return g >= 0 && g <= maxTaskGrade
	}
	return false
}

func registerEnum(v *validator.Validate, tag string, valid func(string) bool) {
	_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return valid(fl.Field().String())
	})
}

// invalid wraps a validator failure into VALIDATION_ERROR naming the first bad field.
func invalid(err error, message string) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		detail := fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
		switch fe.Tag() {
		case "required", "notblank":
			detail = fe.Field() + " is required"
		case "min", "gte":
			detail = fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
		case "max", "lte":
			detail = fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
		case "task_grade":
			detail = fmt.Sprintf("%s must be between 0 and %d", fe.Field(), maxTaskGrade)
		case "url":
			detail = fe.Field() + " must be a valid URL"
		case "email":
			detail = fe.Field() + " must be a valid email"
		}
		return appErrors.Validation(err, message+": "+detail)
	}
	return appErrors.Validation(err, message)
}

// NormalizeStudentID canonicalises a human entered student ID.
func NormalizeStudentID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

type studentIDChecker interface {
	MissingStudentIDs(ctx context.Context, ids []string) ([]string, error)
}

// ensureStudents fails with VALIDATION_ERROR when any id has no registration.
func ensureStudents(ctx context.Context, checker studentIDChecker, ids []string) error {
	if len(ids) == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "select at least one student")
	}
	missing, err := checker.MissingStudentIDs(ctx, ids)
	if err != nil {
		return appErrors.Internal(err, "failed to check students")
	}
	if len(missing) > 0 {
		return appErrors.Clone(appErrors.ErrValidation, "unknown student: "+strings.Join(missing, ", "))
	}
	return nil
}

// writeError maps constraint violations from a write into client errors.
func writeError(err error, message string) error {
	switch {
	case database.IsUniqueViolation(err):
		return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "record already exists")
	case database.IsForeignKeyViolation(err):
		return appErrors.Validation(err, "unknown student")
	case database.IsCheckViolation(err):
		return appErrors.Validation(err, "value out of range")
	default:
		return appErrors.Internal(err, message)
	}
}

// dedupe normalises ids, dropping blanks and repeats while keeping order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = NormalizeStudentID(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func requireStudent(identity models.Identity) error {
	if !identity.IsStudent() {
		return appErrors.Clone(appErrors.ErrForbidden, "student session required")
	}
	return nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
