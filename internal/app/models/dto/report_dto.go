package dto

import "time"

// ReportResponse wraps a generated report with its type and generation time
type ReportResponse struct {
	Type        string      `json:"type" example:"overview"`
	GeneratedAt time.Time   `json:"generatedAt"`
	Data        interface{} `json:"data"`
}

// OverviewReport is the high-level registration summary
type OverviewReport struct {
	TotalUsers               int     `json:"totalUsers" example:"42"`
	TotalStudents            int     `json:"totalStudents" example:"40"`
	TotalCourses             int     `json:"totalCourses" example:"49"`
	TotalSelections          int     `json:"totalSelections" example:"35"`
	TotalVotes               int     `json:"totalVotes" example:"45"`
	AverageCoursesPerStudent float64 `json:"averageCoursesPerStudent" example:"1.75"`
	StudentsWithoutCourses   int     `json:"studentsWithoutCourses" example:"5"`
	CoursesWithoutStudents   int     `json:"coursesWithoutStudents" example:"14"`
}

// CourseReportEntry is one course's occupancy row
type CourseReportEntry struct {
	ID             int64    `json:"id" example:"3"`
	Name           string   `json:"name" example:"Programación en Go"`
	Capacity       int      `json:"capacity" example:"30"`
	Enrolled       int      `json:"enrolled" example:"12"`
	AvailableSpots int      `json:"availableSpots" example:"18"`
	OccupancyRate  int      `json:"occupancyRate" example:"40"`
	Students       []string `json:"students"`
}

// CoursesReportSummary aggregates occupancy across all courses
type CoursesReportSummary struct {
	AverageOccupancy int `json:"averageOccupancy" example:"38"`
	FullCourses      int `json:"fullCourses" example:"2"`
	LowDemandCourses int `json:"lowDemandCourses" example:"11"`
}

// CoursesReport lists occupancy per course with a global summary
type CoursesReport struct {
	Courses []CourseReportEntry  `json:"courses"`
	Summary CoursesReportSummary `json:"summary"`
}

// StudentReportEntry is one student's registration row
type StudentReportEntry struct {
	ID           int64    `json:"id" example:"4"`
	Name         string   `json:"name" example:"María"`
	LastName     string   `json:"lastName" example:"López"`
	IDCard       string   `json:"idCard" example:"12345678"`
	Email        string   `json:"email" example:"maria.lopez@example.com"`
	Age          int      `json:"age" example:"21"`
	Major        string   `json:"major" example:"Ingeniería de Sistemas"`
	Semester     int      `json:"semester" example:"5"`
	CoursesCount int      `json:"coursesCount" example:"2"`
	Courses      []string `json:"courses"`
}

// StudentsReportSummary aggregates the student population
type StudentsReportSummary struct {
	TotalStudents         int `json:"totalStudents" example:"40"`
	StudentsWithSelection int `json:"studentsWithSelection" example:"35"`
	AverageAge            int `json:"averageAge" example:"21"`
}

// StudentsReport lists students with their selections and a summary
type StudentsReport struct {
	Students []StudentReportEntry  `json:"students"`
	Summary  StudentsReportSummary `json:"summary"`
}

// PreselectionReportEntry is one preselection row
type PreselectionReportEntry struct {
	ID            int64     `json:"id" example:"9"`
	SelectionDate time.Time `json:"selectionDate"`
	Student       string    `json:"student" example:"María López"`
	IDCard        string    `json:"idCard" example:"12345678"`
	Courses       []string  `json:"courses"`
	Status        string    `json:"status" example:"Completa"`
}

// PreselectionsReportSummary aggregates preselection completeness
type PreselectionsReportSummary struct {
	TotalPreselections         int     `json:"totalPreselections" example:"35"`
	Completed                  int     `json:"completed" example:"33"`
	Incomplete                 int     `json:"incomplete" example:"2"`
	AverageCoursesPerSelection float64 `json:"averageCoursesPerSelection" example:"1.94"`
}

// PreselectionsReport lists preselections with a completeness summary
type PreselectionsReport struct {
	Preselections []PreselectionReportEntry  `json:"preselections"`
	Summary       PreselectionsReportSummary `json:"summary"`
}

// RoleCount is the user tally for one role
type RoleCount struct {
	Role  string `json:"role" example:"STUDENT"`
	Count int    `json:"count" example:"40"`
}

// DashboardStatsResponse feeds the administration dashboard
type DashboardStatsResponse struct {
	TotalUsers       int                `json:"totalUsers" example:"42"`
	TotalStudents    int                `json:"totalStudents" example:"40"`
	TotalCourses     int                `json:"totalCourses" example:"49"`
	TotalSelections  int                `json:"totalSelections" example:"35"`
	UsersByRole      []RoleCount        `json:"usersByRole"`
	RecentSelections int                `json:"recentSelections" example:"6"`
	AverageAge       float64            `json:"averageAge" example:"21.4"`
	PopularCourses   []CoursePopularity `json:"popularCourses"`
}
