package service

import (
	"context"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/geospatial-academy/training-hub-api/internal/dto"
	"github.com/geospatial-academy/training-hub-api/internal/models"
	appErrors "github.com/geospatial-academy/training-hub-api/pkg/errors"
)

const (
	dashboardCachePattern  = "dash:*"
	dashboardStatsCacheKey = "dash:stats"

	// trendWindowMonths is the span of the byMonth trend array, current
	// month included.
	trendWindowMonths = 12

	// completionRatePlaceholder is a static figure shown on the dashboard.
	// There is no completion tracking to derive it from.
	completionRatePlaceholder = 87
)

type dashboardRegistrationRepository interface {
	Count(ctx context.Context, filter models.StatsFilter) (int, error)
	ListSince(ctx context.Context, from time.Time) ([]models.Registration, error)
}

type dashboardCourseRepository interface {
	List(ctx context.Context, activeOnly bool) ([]models.Course, error)
	CountActive(ctx context.Context) (int, error)
}

// DashboardService computes the read-only aggregation snapshot backing the
// admin dashboard. Unfiltered snapshots are cached.
type DashboardService struct {
	registrations dashboardRegistrationRepository
	courses       dashboardCourseRepository
	cache         *CacheService
	cacheTTL      time.Duration
	logger        *zap.Logger
	now           func() time.Time
}

// NewDashboardService constructs a DashboardService instance.
func NewDashboardService(registrations dashboardRegistrationRepository, courses dashboardCourseRepository, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		registrations: registrations,
		courses:       courses,
		cache:         cache,
		cacheTTL:      cacheTTL,
		logger:        logger,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the time source. Intended for tests.
func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	if now != nil {
		s.now = now
	}
	return s
}

// Stats computes the dashboard snapshot. The optional filter bounds the
// total count only; the trend and popularity arrays always cover the
// trailing twelve calendar months. Returns whether the snapshot came from
// cache.
func (s *DashboardService) Stats(ctx context.Context, filter models.StatsFilter) (*dto.DashboardStatsResponse, bool, error) {
	cacheable := filter.From == nil && filter.To == nil
	if cacheable {
		var cached dto.DashboardStatsResponse
		hit, err := s.cache.Get(ctx, dashboardStatsCacheKey, &cached)
		if err == nil && hit {
			return &cached, true, nil
		}
	}

	now := s.now()

	total, err := s.registrations.Count(ctx, filter)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count registrations")
	}

	windowStart := monthStart(now).AddDate(0, -(trendWindowMonths - 1), 0)
	windowed, err := s.registrations.ListSince(ctx, windowStart)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load recent registrations")
	}

	trends := make([]int, trendWindowMonths)
	thisMonth := 0
	countsByCourse := make(map[string]int)
	for _, reg := range windowed {
		d := monthDiff(now, reg.RegisteredAt)
		if d < 0 || d >= trendWindowMonths {
			continue
		}
		trends[trendWindowMonths-1-d]++
		if d == 0 {
			thisMonth++
		}
		countsByCourse[reg.CourseID]++
	}

	courses, err := s.courses.List(ctx, false)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load courses")
	}
	coursesByID := make(map[string]models.Course, len(courses))
	for _, c := range courses {
		coursesByID[c.ID] = c
	}

	popularity := make([]dto.CoursePopularity, 0, len(countsByCourse))
	revenue := 0.0
	for courseID, count := range countsByCourse {
		name := courseID
		if course, ok := coursesByID[courseID]; ok {
			name = course.Title
			if price, err := strconv.ParseFloat(course.Price, 64); err == nil {
				revenue += price * float64(count)
			} else {
				s.logger.Warn("course has unparseable price",
					zap.String("course_id", courseID), zap.String("price", course.Price))
			}
		}
		popularity = append(popularity, dto.CoursePopularity{Course: name, Count: count})
	}
	sort.Slice(popularity, func(i, j int) bool {
		if popularity[i].Count == popularity[j].Count {
			return popularity[i].Course < popularity[j].Course
		}
		return popularity[i].Count > popularity[j].Count
	})

	activeCourses, err := s.courses.CountActive(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count active courses")
	}

	stats := &dto.DashboardStatsResponse{
		TotalRegistrations:     total,
		ThisMonthRegistrations: thisMonth,
		ActiveCourses:          activeCourses,
		Revenue:                revenue,
		CompletionRate:         completionRatePlaceholder,
		RegistrationTrends:     trends,
		CoursePopularity:       popularity,
	}

	if cacheable {
		if err := s.cache.Set(ctx, dashboardStatsCacheKey, stats, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache dashboard stats", zap.Error(err))
		}
	}

	return stats, false, nil
}

// monthStart truncates t to local midnight on the 1st of its month.
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// monthDiff counts whole calendar months between t and now. 0 means the same
// calendar month, 11 means eleven months prior.
func monthDiff(now, t time.Time) int {
	return (now.Year()-t.Year())*12 + int(now.Month()) - int(t.Month())
}
