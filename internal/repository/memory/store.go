// Package memory provides a process-local storage backend with the same
// contracts as the Postgres repositories. It backs demo deployments and
// environments without a database.
package memory

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/geospatial-academy/training-hub-api/internal/models"
)

// Store holds all entities behind a single lock. Typed views expose the
// per-entity contracts the services consume. Not-found lookups return
// sql.ErrNoRows so services map storage errors uniformly across drivers.
type Store struct {
	mu sync.RWMutex

	users         map[string]models.User
	refreshTokens map[string]models.RefreshToken

	courses map[string]models.Course

	registrations      map[int64]models.Registration
	nextRegistrationID int64

	contacts      map[int64]models.ContactMessage
	nextContactID int64

	banners      map[int64]models.Banner
	nextBannerID int64

	settings      map[string]models.WebsiteSetting
	nextSettingID int64
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users:         make(map[string]models.User),
		refreshTokens: make(map[string]models.RefreshToken),
		courses:       make(map[string]models.Course),
		registrations: make(map[int64]models.Registration),
		contacts:      make(map[int64]models.ContactMessage),
		banners:       make(map[int64]models.Banner),
		settings:      make(map[string]models.WebsiteSetting),
	}
}

// Users returns the user view.
func (s *Store) Users() *UserStore { return &UserStore{s: s} }

// Courses returns the course view.
func (s *Store) Courses() *CourseStore { return &CourseStore{s: s} }

// Registrations returns the registration view.
func (s *Store) Registrations() *RegistrationStore { return &RegistrationStore{s: s} }

// Contacts returns the contact message view.
func (s *Store) Contacts() *ContactStore { return &ContactStore{s: s} }

// Banners returns the banner view.
func (s *Store) Banners() *BannerStore { return &BannerStore{s: s} }

// Settings returns the website settings view.
func (s *Store) Settings() *SettingStore { return &SettingStore{s: s} }

// SeedSampleCourses loads a starter catalog when the store is empty.
func (s *Store) SeedSampleCourses() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.courses) > 0 {
		return
	}
	now := time.Now().UTC()
	samples := []models.Course{
		{ID: "gis-fundamentals", Title: "GIS Fundamentals", Description: "Core concepts of geographic information systems, coordinate systems, and spatial data management.", Level: models.CourseLevelBeginner, Duration: "6 weeks", Price: "499.00", Active: true, CreatedAt: now, UpdatedAt: now},
		{ID: "remote-sensing-analysis", Title: "Remote Sensing Analysis", Description: "Satellite and aerial imagery processing, classification, and change detection workflows.", Level: models.CourseLevelIntermediate, Duration: "8 weeks", Price: "799.00", Active: true, CreatedAt: now, UpdatedAt: now},
		{ID: "spatial-data-science", Title: "Spatial Data Science", Description: "Statistical modelling and machine learning on geospatial datasets.", Level: models.CourseLevelAdvanced, Duration: "10 weeks", Price: "999.00", Active: true, CreatedAt: now, UpdatedAt: now},
		{ID: "web-mapping-development", Title: "Web Mapping Development", Description: "Building interactive web maps and location-aware applications.", Level: models.CourseLevelIntermediate, Duration: "8 weeks", Price: "849.00", Active: true, CreatedAt: now, UpdatedAt: now},
	}
	for _, c := range samples {
		s.courses[c.ID] = c
	}
}

// UserStore is the in-memory counterpart of the user repository.
type UserStore struct {
	s *Store
}

// FindByUsername returns a user by username.
func (u *UserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	for _, user := range u.s.users {
		if user.Username == username {
			copied := user
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

// FindByID returns a user by identifier.
func (u *UserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	user, ok := u.s.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := user
	return &copied, nil
}

// Create inserts a new user.
func (u *UserStore) Create(ctx context.Context, user *models.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	u.s.users[user.ID] = *user
	return nil
}

// Count returns the number of stored users.
func (u *UserStore) Count(ctx context.Context) (int, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	return len(u.s.users), nil
}

// CreateRefreshToken persists a refresh token entry.
func (u *UserStore) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if token.ID == "" {
		token.ID = uuid.NewString()
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now().UTC()
	}
	u.s.refreshTokens[token.Token] = *token
	return nil
}

// FindRefreshToken returns a refresh token by token string.
func (u *UserStore) FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	rt, ok := u.s.refreshTokens[token]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := rt
	return &copied, nil
}

// RevokeRefreshToken marks a token as revoked.
func (u *UserStore) RevokeRefreshToken(ctx context.Context, id string, revokedAt time.Time) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for key, rt := range u.s.refreshTokens {
		if rt.ID == id {
			rt.Revoked = true
			rt.RevokedAt = &revokedAt
			u.s.refreshTokens[key] = rt
			return nil
		}
	}
	return nil
}

// CourseStore is the in-memory counterpart of the course repository.
type CourseStore struct {
	s *Store
}

// Create inserts a new course.
func (c *CourseStore) Create(ctx context.Context, course *models.Course) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	now := time.Now().UTC()
	if course.CreatedAt.IsZero() {
		course.CreatedAt = now
	}
	course.UpdatedAt = now
	c.s.courses[course.ID] = *course
	return nil
}

// FindByID returns a course by slug.
func (c *CourseStore) FindByID(ctx context.Context, id string) (*models.Course, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	course, ok := c.s.courses[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := course
	return &copied, nil
}

// List returns courses ordered by title, optionally only active ones.
func (c *CourseStore) List(ctx context.Context, activeOnly bool) ([]models.Course, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	courses := make([]models.Course, 0, len(c.s.courses))
	for _, course := range c.s.courses {
		if activeOnly && !course.Active {
			continue
		}
		courses = append(courses, course)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].Title < courses[j].Title })
	return courses, nil
}

// Update overwrites the mutable fields of a course.
func (c *CourseStore) Update(ctx context.Context, course *models.Course) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	course.UpdatedAt = time.Now().UTC()
	c.s.courses[course.ID] = *course
	return nil
}

// SoftDelete flips the active flag off, keeping the entry.
func (c *CourseStore) SoftDelete(ctx context.Context, id string) (bool, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	course, ok := c.s.courses[id]
	if !ok {
		return false, nil
	}
	course.Active = false
	course.UpdatedAt = time.Now().UTC()
	c.s.courses[id] = course
	return true, nil
}

// IncrementEnrollment atomically adjusts the enrollment counter. A missing
// course id is reported as applied == false, not an error.
func (c *CourseStore) IncrementEnrollment(ctx context.Context, id string, delta int) (bool, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	course, ok := c.s.courses[id]
	if !ok {
		return false, nil
	}
	course.Enrolled += delta
	course.UpdatedAt = time.Now().UTC()
	c.s.courses[id] = course
	return true, nil
}

// CountActive returns the number of courses not soft-deleted.
func (c *CourseStore) CountActive(ctx context.Context) (int, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	total := 0
	for _, course := range c.s.courses {
		if course.Active {
			total++
		}
	}
	return total, nil
}

// RegistrationStore is the in-memory counterpart of the registration
// repository.
type RegistrationStore struct {
	s *Store
}

// Create inserts a new registration and fills in the generated id.
func (r *RegistrationStore) Create(ctx context.Context, reg *models.Registration) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextRegistrationID++
	reg.ID = r.s.nextRegistrationID
	r.s.registrations[reg.ID] = *reg
	return nil
}

// FindByID returns a registration by identifier.
func (r *RegistrationStore) FindByID(ctx context.Context, id int64) (*models.Registration, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	reg, ok := r.s.registrations[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := reg
	return &copied, nil
}

// List returns all registrations, newest first.
func (r *RegistrationStore) List(ctx context.Context) ([]models.Registration, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	regs := make([]models.Registration, 0, len(r.s.registrations))
	for _, reg := range r.s.registrations {
		regs = append(regs, reg)
	}
	sortRegistrations(regs)
	return regs, nil
}

// ListSince returns registrations recorded at or after the given instant,
// newest first.
func (r *RegistrationStore) ListSince(ctx context.Context, from time.Time) ([]models.Registration, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	regs := make([]models.Registration, 0, len(r.s.registrations))
	for _, reg := range r.s.registrations {
		if reg.RegisteredAt.Before(from) {
			continue
		}
		regs = append(regs, reg)
	}
	sortRegistrations(regs)
	return regs, nil
}

// UpdateStatus sets the lifecycle status of a registration. Reports whether
// an entry was matched.
func (r *RegistrationStore) UpdateStatus(ctx context.Context, id int64, status models.RegistrationStatus) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	reg, ok := r.s.registrations[id]
	if !ok {
		return false, nil
	}
	reg.Status = status
	r.s.registrations[id] = reg
	return true, nil
}

// Count returns the number of registrations matching the optional date
// filter.
func (r *RegistrationStore) Count(ctx context.Context, filter models.StatsFilter) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	total := 0
	for _, reg := range r.s.registrations {
		if filter.From != nil && reg.RegisteredAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && reg.RegisteredAt.After(*filter.To) {
			continue
		}
		total++
	}
	return total, nil
}

func sortRegistrations(regs []models.Registration) {
	sort.Slice(regs, func(i, j int) bool {
		if regs[i].RegisteredAt.Equal(regs[j].RegisteredAt) {
			return regs[i].ID > regs[j].ID
		}
		return regs[i].RegisteredAt.After(regs[j].RegisteredAt)
	})
}

// ContactStore is the in-memory counterpart of the contact repository.
type ContactStore struct {
	s *Store
}

// Create inserts a new contact message and fills in the generated id.
func (c *ContactStore) Create(ctx context.Context, msg *models.ContactMessage) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	c.s.nextContactID++
	msg.ID = c.s.nextContactID
	c.s.contacts[msg.ID] = *msg
	return nil
}

// List returns all contact messages, newest first.
func (c *ContactStore) List(ctx context.Context) ([]models.ContactMessage, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	msgs := make([]models.ContactMessage, 0, len(c.s.contacts))
	for _, msg := range c.s.contacts {
		msgs = append(msgs, msg)
	}
	sort.Slice(msgs, func(i, j int) bool {
		if msgs[i].CreatedAt.Equal(msgs[j].CreatedAt) {
			return msgs[i].ID > msgs[j].ID
		}
		return msgs[i].CreatedAt.After(msgs[j].CreatedAt)
	})
	return msgs, nil
}

// BannerStore is the in-memory counterpart of the banner repository.
type BannerStore struct {
	s *Store
}

// Create inserts a new banner and fills in the generated id.
func (b *BannerStore) Create(ctx context.Context, banner *models.Banner) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	now := time.Now().UTC()
	if banner.CreatedAt.IsZero() {
		banner.CreatedAt = now
	}
	banner.UpdatedAt = now
	b.s.nextBannerID++
	banner.ID = b.s.nextBannerID
	b.s.banners[banner.ID] = *banner
	return nil
}

// FindByID returns a banner by identifier.
func (b *BannerStore) FindByID(ctx context.Context, id int64) (*models.Banner, error) {
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()
	banner, ok := b.s.banners[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := banner
	return &copied, nil
}

// List returns banners ordered by display order, optionally only active
// ones.
func (b *BannerStore) List(ctx context.Context, activeOnly bool) ([]models.Banner, error) {
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()
	banners := make([]models.Banner, 0, len(b.s.banners))
	for _, banner := range b.s.banners {
		if activeOnly && !banner.IsActive {
			continue
		}
		banners = append(banners, banner)
	}
	sort.Slice(banners, func(i, j int) bool {
		if banners[i].DisplayOrder == banners[j].DisplayOrder {
			return banners[i].ID < banners[j].ID
		}
		return banners[i].DisplayOrder < banners[j].DisplayOrder
	})
	return banners, nil
}

// Update overwrites the mutable fields of a banner.
func (b *BannerStore) Update(ctx context.Context, banner *models.Banner) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	banner.UpdatedAt = time.Now().UTC()
	b.s.banners[banner.ID] = *banner
	return nil
}

// Delete removes a banner permanently. Reports whether an entry was matched.
func (b *BannerStore) Delete(ctx context.Context, id int64) (bool, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	if _, ok := b.s.banners[id]; !ok {
		return false, nil
	}
	delete(b.s.banners, id)
	return true, nil
}

// SettingStore is the in-memory counterpart of the setting repository.
type SettingStore struct {
	s *Store
}

// List returns all settings ordered by key.
func (s *SettingStore) List(ctx context.Context) ([]models.WebsiteSetting, error) {
	s.s.mu.RLock()
	defer s.s.mu.RUnlock()
	settings := make([]models.WebsiteSetting, 0, len(s.s.settings))
	for _, setting := range s.s.settings {
		settings = append(settings, setting)
	}
	sort.Slice(settings, func(i, j int) bool { return settings[i].Key < settings[j].Key })
	return settings, nil
}

// FindByKey returns a setting by its key.
func (s *SettingStore) FindByKey(ctx context.Context, key string) (*models.WebsiteSetting, error) {
	s.s.mu.RLock()
	defer s.s.mu.RUnlock()
	setting, ok := s.s.settings[key]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := setting
	return &copied, nil
}

// Upsert creates a setting or replaces it when the key already exists.
func (s *SettingStore) Upsert(ctx context.Context, setting *models.WebsiteSetting) error {
	s.s.mu.Lock()
	defer s.s.mu.Unlock()
	setting.UpdatedAt = time.Now().UTC()
	if existing, ok := s.s.settings[setting.Key]; ok {
		setting.ID = existing.ID
	} else {
		s.s.nextSettingID++
		setting.ID = s.s.nextSettingID
	}
	s.s.settings[setting.Key] = *setting
	return nil
}

// UpdateValue changes the stored value for an existing key. Reports whether
// an entry was matched.
func (s *SettingStore) UpdateValue(ctx context.Context, key, value string) (bool, error) {
	s.s.mu.Lock()
	defer s.s.mu.Unlock()
	setting, ok := s.s.settings[key]
	if !ok {
		return false, nil
	}
	setting.Value = value
	setting.UpdatedAt = time.Now().UTC()
	s.s.settings[key] = setting
	return true, nil
}
