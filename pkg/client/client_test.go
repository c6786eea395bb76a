package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srisoftware/portal-api/internal/models"
)

func writeEnvelope(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL + "/api/v1/")
	require.NoError(t, err)
	return c
}

func TestNewRejectsRelativeURL(t *testing.T) {
	_, err := New("/api/v1")
	assert.Error(t, err)
}

func TestLoginKeepsTokenAndLogoutClearsIt(t *testing.T) {
	var sawAuth []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		sawAuth = append(sawAuth, r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/api/v1/auth/student/login":
			var req models.StudentLoginRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "STU001", req.StudentID)
			writeEnvelope(w, http.StatusOK, `{"data":{"token":"tok-1","view":"student_dashboard","identity":{"role":"STUDENT","student_id":"STU001","name":"Asha"}}}`)
		case "/api/v1/auth/logout":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	session, err := c.StudentLogin(context.Background(), "STU001", "abc123")
	require.NoError(t, err)
	assert.Equal(t, models.ViewStudentDashboard, session.View)
	assert.Equal(t, "tok-1", c.Token())

	require.NoError(t, c.Logout(context.Background()))
	assert.Empty(t, c.Token())
	assert.Equal(t, []string{"", "Bearer tok-1"}, sawAuth)
}

func TestErrorEnvelopeBecomesAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, `{"data":null,"error":{"code":"INVALID_CREDENTIALS","message":"invalid credentials","status":401}}`)
	})

	_, err := c.AdminLogin(context.Background(), "office", "wrong")
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "invalid credentials", apiErr.Message)
	assert.True(t, IsCode(err, "INVALID_CREDENTIALS"))
	assert.Empty(t, c.Token())
}

func TestNonJSONErrorStillTyped(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	})

	_, err := c.Roster(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "HTTP_ERROR", apiErr.Code)
}

func TestStudentsEncodesQueryAndPagination(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/admin/students", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "asha", q.Get("search"))
		assert.Equal(t, "true", q.Get("trainee"))
		assert.Equal(t, "2", q.Get("page"))
		assert.Empty(t, q.Get("sort"))
		writeEnvelope(w, http.StatusOK, `{"data":[{"id":"r1","student_id":"STU001","full_name":"Asha","status":"active","is_trainee":true}],"pagination":{"page":2,"page_size":20,"total_count":21}}`)
	})

	trainee := true
	students, page, err := c.Students(context.Background(), StudentQuery{Search: "asha", Trainee: &trainee, Page: 2})
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "STU001", students[0].Code())
	require.NotNil(t, page)
	assert.Equal(t, 2, page.Page)
}

func TestSubmitTaskPathAndBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/student/tasks/t-1/submit", r.URL.Path)
		var req SubmitTaskRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "https://github.com/asha/api", req.SubmissionLink)
		writeEnvelope(w, http.StatusOK, `{"data":{"id":"t-1","student_id":"STU001","status":"submitted"}}`)
	})
	c.SetToken("student-token")

	task, err := c.SubmitTask(context.Background(), "t-1", SubmitTaskRequest{SubmissionLink: "https://github.com/asha/api"})
	require.NoError(t, err)
	assert.Equal(t, TaskSubmitted, task.Status)
}

func TestDeleteFeeNoContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/admin/fees/f-9", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})
	assert.NoError(t, c.DeleteFee(context.Background(), "f-9"))
}

func TestExportFeesDownloadsAttachment(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "csv", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="fees.csv"`)
		_, _ = io.WriteString(w, "Student ID,Fee Type\n")
	})

	body, contentType, err := c.ExportFees(context.Background(), PaymentPending, ExportCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
	assert.Equal(t, "Student ID,Fee Type\n", string(body))
}

func TestMenuUsesRolePrefix(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/admin/dashboard", r.URL.Path)
		writeEnvelope(w, http.StatusOK, `{"data":{"role":"ADMIN","tabs":[{"key":"students","label":"Students"}]}}`)
	})
	menu, err := c.Menu(context.Background(), RoleAdmin)
	require.NoError(t, err)
	require.Len(t, menu.Tabs, 1)
	assert.Equal(t, models.TabStudents, menu.Tabs[0].Key)
}
