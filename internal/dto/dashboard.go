package dto

// CoursePopularity pairs a course display name with its registration count in
// the trailing twelve-month window. The display name falls back to the raw
// course id when the course is no longer resolvable.
type CoursePopularity struct {
	Course string `json:"course"`
	Count  int    `json:"count"`
}

// DashboardStatsResponse is the read-only aggregation snapshot backing the
// admin dashboard.
type DashboardStatsResponse struct {
	TotalRegistrations     int                `json:"total_registrations"`
	ThisMonthRegistrations int                `json:"this_month_registrations"`
	ActiveCourses          int                `json:"active_courses"`
	Revenue                float64            `json:"revenue"`
	CompletionRate         int                `json:"completion_rate"`
	RegistrationTrends     []int              `json:"registration_trends"`
	CoursePopularity       []CoursePopularity `json:"course_popularity"`
}
