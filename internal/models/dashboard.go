package models

// DashboardTab identifies one screen of a role dashboard.
type DashboardTab string

const (
	TabHome       DashboardTab = "home"
	TabStudents   DashboardTab = "students"
	TabAttendance DashboardTab = "attendance"
	TabFees       DashboardTab = "fees"
	TabNotes      DashboardTab = "notes"
	TabTasks      DashboardTab = "tasks"
	TabProjects   DashboardTab = "projects"
	TabResume     DashboardTab = "resume"
)

// TabInfo is a menu entry.
type TabInfo struct {
	Key   DashboardTab `json:"key"`
	Label string       `json:"label"`
}

// DashboardMenu is the fixed tab list of a role.
type DashboardMenu struct {
	Role     UserRole  `json:"role"`
	Identity Identity  `json:"identity"`
	Tabs     []TabInfo `json:"tabs"`
}

// TabContent is the payload of one dashboard tab.
type TabContent struct {
	Tab  DashboardTab `json:"tab"`
	Data interface{}  `json:"data"`
}
