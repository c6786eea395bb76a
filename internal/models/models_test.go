package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeAttendance(t *testing.T) {
	records := []AttendanceRecord{
		{Status: AttendancePresent},
		{Status: AttendancePresent},
		{Status: AttendanceLate},
	}
	summary := SummarizeAttendance(records)
	assert.Equal(t, AttendanceSummary{Total: 3, Present: 2, Late: 1, Percentage: 67}, summary)

	assert.Equal(t, AttendanceSummary{}, SummarizeAttendance(nil))
}

func TestSumFees(t *testing.T) {
	totals := SumFees([]FeeRecord{
		{Amount: 15000, PaidAmount: 15000},
		{Amount: 10000, PaidAmount: 2500},
	})
	assert.Equal(t, FeeTotals{TotalAmount: 25000, PaidAmount: 17500, Pending: 7500}, totals)
}

func TestTaskTransitions(t *testing.T) {
	cases := []struct {
		from, to TaskStatus
		ok       bool
	}{
		{TaskPending, TaskSubmitted, true},
		{TaskSubmitted, TaskCompleted, true},
		{TaskPending, TaskCompleted, false},
		{TaskSubmitted, TaskPending, false},
		{TaskCompleted, TaskSubmitted, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestIdentityView(t *testing.T) {
	assert.Equal(t, ViewAdminDashboard, Identity{Role: RoleAdmin, AdminID: "a1"}.View())
	assert.Equal(t, ViewStudentDashboard, Identity{Role: RoleStudent, StudentID: "STU001"}.View())
	assert.Equal(t, ViewPublicSite, Identity{Role: RoleStudent}.View())

	claims := &JWTClaims{Role: RoleStudent, StudentID: "STU001", FullName: "Asha Rao"}
	assert.Equal(t, "Asha Rao", claims.Identity().Name)
	var nilClaims *JWTClaims
	assert.Equal(t, Identity{}, nilClaims.Identity())
}

func TestPersonalInfoScan(t *testing.T) {
	var info PersonalInfo
	require.NoError(t, info.Scan([]byte(`{"name":"Asha","email":"asha@example.com"}`)))
	assert.Equal(t, "Asha", info.Name)

	v, err := info.Value()
	require.NoError(t, err)
	assert.Contains(t, string(v.([]byte)), `"email":"asha@example.com"`)

	assert.Error(t, info.Scan(42))
}
