package mocks

import (
	"context"
	"time"

	"github.com/agency-admin-api/internal/models"
	"github.com/agency-admin-api/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	Users map[string]*models.User
	Err   error
	order []string
}

// Verify interface compliance
var _ repository.UserRepository = (*MockUserRepository)(nil)

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{Users: make(map[string]*models.User)}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.Err != nil {
		return m.Err
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.Users[user.ID] = user
	m.order = append(m.order, user.ID)
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	u, ok := m.Users[id]
	if !ok || u.Deleted {
		return nil, nil
	}
	return u, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, id := range m.order {
		if u := m.Users[id]; u.Email == email && !u.Deleted {
			return u, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) List(ctx context.Context) ([]*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]*models.User, 0, len(m.order))
	for _, id := range m.order {
		if u := m.Users[id]; !u.Deleted {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	if m.Err != nil {
		return m.Err
	}
	user.UpdatedAt = time.Now()
	m.Users[user.ID] = user
	return nil
}

func (m *MockUserRepository) SoftDelete(ctx context.Context, id string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	u, ok := m.Users[id]
	if !ok || u.Deleted {
		return false, nil
	}
	now := time.Now()
	u.Deleted = true
	u.DeletedAt = &now
	return true, nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	var n int64
	for _, u := range m.Users {
		if !u.Deleted {
			n++
		}
	}
	return n, nil
}

// MockEngagementRepository is a mock implementation of EngagementRepository
type MockEngagementRepository struct {
	Engagements map[string]*models.Engagement
	Staff       map[string][]models.StaffAssignment
	Err         error
	order       []string
}

var _ repository.EngagementRepository = (*MockEngagementRepository)(nil)

func NewMockEngagementRepository() *MockEngagementRepository {
	return &MockEngagementRepository{
		Engagements: make(map[string]*models.Engagement),
		Staff:       make(map[string][]models.StaffAssignment),
	}
}

func (m *MockEngagementRepository) Create(ctx context.Context, e *models.Engagement) error {
	if m.Err != nil {
		return m.Err
	}
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	m.Engagements[e.ID] = e
	m.order = append(m.order, e.ID)
	return nil
}

func (m *MockEngagementRepository) GetByID(ctx context.Context, id string) (*models.Engagement, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	e, ok := m.Engagements[id]
	if !ok {
		return nil, nil
	}
	e.HandledBy = append([]models.StaffAssignment{}, m.Staff[id]...)
	return e, nil
}

func (m *MockEngagementRepository) GetBySessionID(ctx context.Context, sessionID string) (*models.Engagement, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, id := range m.order {
		if e := m.Engagements[id]; e.CheckoutSessionID == sessionID {
			return e, nil
		}
	}
	return nil, nil
}

func (m *MockEngagementRepository) List(ctx context.Context, engagementType models.EngagementType) ([]*models.Engagement, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*models.Engagement
	for _, id := range m.order {
		e := m.Engagements[id]
		if engagementType == "" || e.Type == engagementType {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *MockEngagementRepository) Update(ctx context.Context, e *models.Engagement) error {
	if m.Err != nil {
		return m.Err
	}
	e.UpdatedAt = time.Now()
	m.Engagements[e.ID] = e
	return nil
}

func (m *MockEngagementRepository) Delete(ctx context.Context, id string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	if _, ok := m.Engagements[id]; !ok {
		return false, nil
	}
	delete(m.Engagements, id)
	delete(m.Staff, id)
	return true, nil
}

func (m *MockEngagementRepository) AddStaff(ctx context.Context, engagementID string, a models.StaffAssignment) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	for _, existing := range m.Staff[engagementID] {
		if existing.UserID == a.UserID {
			return false, nil
		}
	}
	m.Staff[engagementID] = append(m.Staff[engagementID], a)
	return true, nil
}

func (m *MockEngagementRepository) RemoveStaff(ctx context.Context, engagementID, userID string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	assignments := m.Staff[engagementID]
	for i, a := range assignments {
		if a.UserID == userID {
			m.Staff[engagementID] = append(assignments[:i:i], assignments[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *MockEngagementRepository) ListByClient(ctx context.Context, userID string) ([]*models.Engagement, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*models.Engagement
	for _, id := range m.order {
		if e := m.Engagements[id]; e.ClientID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *MockEngagementRepository) ListByStaff(ctx context.Context, userID string) ([]*models.Engagement, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*models.Engagement
	for _, id := range m.order {
		for _, a := range m.Staff[id] {
			if a.UserID == userID {
				out = append(out, m.Engagements[id])
				break
			}
		}
	}
	return out, nil
}

func (m *MockEngagementRepository) SetCheckoutSession(ctx context.Context, id, sessionID, clientSecret string) error {
	if m.Err != nil {
		return m.Err
	}
	e, ok := m.Engagements[id]
	if !ok {
		return nil
	}
	e.CheckoutSessionID = sessionID
	e.ClientSecret = clientSecret
	e.PaymentStatus = models.PaymentStatusPending
	return nil
}

func (m *MockEngagementRepository) UpdatePaymentBySession(ctx context.Context, sessionID string, paymentStatus models.PaymentStatus, status models.EngagementStatus, statusPercentage int) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	for _, id := range m.order {
		e := m.Engagements[id]
		if e.CheckoutSessionID != sessionID {
			continue
		}
		e.PaymentStatus = paymentStatus
		e.Status = status
		if statusPercentage >= 0 {
			e.StatusPercentage = statusPercentage
		}
		return true, nil
	}
	return false, nil
}

func (m *MockEngagementRepository) Count(ctx context.Context) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return int64(len(m.Engagements)), nil
}

func (m *MockEngagementRepository) CountByStatus(ctx context.Context) (*models.EngagementBreakdown, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	b := &models.EngagementBreakdown{Total: len(m.Engagements)}
	for _, e := range m.Engagements {
		switch e.Status {
		case models.EngagementStatusCompleted:
			b.Completed++
		case models.EngagementStatusInProgress:
			b.InProgress++
		case models.EngagementStatusPending:
			b.Pending++
		case models.EngagementStatusCanceled:
			b.Canceled++
		}
	}
	return b, nil
}

func (m *MockEngagementRepository) PaidRevenueTotal(ctx context.Context) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	var total int64
	for _, e := range m.Engagements {
		if e.PaymentStatus == models.PaymentStatusPaid {
			total += e.Price
		}
	}
	return total, nil
}

func (m *MockEngagementRepository) MonthlyRevenue(ctx context.Context, year int) ([]int64, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	monthly := make([]int64, 12)
	for _, e := range m.Engagements {
		if e.PaymentStatus != models.PaymentStatusPaid || e.EndDate == nil {
			continue
		}
		if e.Status != models.EngagementStatusInProgress && e.Status != models.EngagementStatusCompleted {
			continue
		}
		if e.EndDate.Year() == year {
			monthly[int(e.EndDate.Month())-1] += e.Price
		}
	}
	return monthly, nil
}

func (m *MockEngagementRepository) ClientRevenue(ctx context.Context, year int) ([]models.ClientRevenue, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	byClient := make(map[string]*models.ClientRevenue)
	var keys []string
	for _, id := range m.order {
		e := m.Engagements[id]
		if e.PaymentStatus != models.PaymentStatusPaid || e.EndDate == nil || e.EndDate.Year() != year {
			continue
		}
		cr, ok := byClient[e.ClientID]
		if !ok {
			cr = &models.ClientRevenue{ClientID: e.ClientID}
			byClient[e.ClientID] = cr
			keys = append(keys, e.ClientID)
		}
		cr.NumberOfProjects++
		cr.TotalAmount += e.Price
	}
	out := make([]models.ClientRevenue, 0, len(keys))
	for _, k := range keys {
		out = append(out, *byClient[k])
	}
	return out, nil
}

func (m *MockEngagementRepository) Latest(ctx context.Context, limit int) ([]*models.Engagement, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*models.Engagement
	for i := len(m.order) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.Engagements[m.order[i]])
	}
	return out, nil
}

// MockEstimateRepository is a mock implementation of EstimateRepository
type MockEstimateRepository struct {
	Estimates map[string]*models.Estimate
	Err       error
	order     []string
}

var _ repository.EstimateRepository = (*MockEstimateRepository)(nil)

func NewMockEstimateRepository() *MockEstimateRepository {
	return &MockEstimateRepository{Estimates: make(map[string]*models.Estimate)}
}

func (m *MockEstimateRepository) Create(ctx context.Context, e *models.Estimate) error {
	if m.Err != nil {
		return m.Err
	}
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	m.Estimates[e.ID] = e
	m.order = append(m.order, e.ID)
	return nil
}

func (m *MockEstimateRepository) GetByID(ctx context.Context, id string) (*models.Estimate, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Estimates[id], nil
}

func (m *MockEstimateRepository) List(ctx context.Context) ([]*models.Estimate, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*models.Estimate
	for i := len(m.order) - 1; i >= 0; i-- {
		if e, ok := m.Estimates[m.order[i]]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *MockEstimateRepository) Update(ctx context.Context, e *models.Estimate) error {
	if m.Err != nil {
		return m.Err
	}
	e.UpdatedAt = time.Now()
	m.Estimates[e.ID] = e
	return nil
}

func (m *MockEstimateRepository) Delete(ctx context.Context, id string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	if _, ok := m.Estimates[id]; !ok {
		return false, nil
	}
	delete(m.Estimates, id)
	return true, nil
}

func (m *MockEstimateRepository) Count(ctx context.Context) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return int64(len(m.Estimates)), nil
}

func (m *MockEstimateRepository) Latest(ctx context.Context, limit int) ([]*models.Estimate, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*models.Estimate
	for i := len(m.order) - 1; i >= 0 && len(out) < limit; i-- {
		if e, ok := m.Estimates[m.order[i]]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

// MockArticleRepository is a mock implementation of ArticleRepository
type MockArticleRepository struct {
	Articles map[string]*models.Article
	Err      error
	order    []string
}

var _ repository.ArticleRepository = (*MockArticleRepository)(nil)

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{Articles: make(map[string]*models.Article)}
}

func (m *MockArticleRepository) Create(ctx context.Context, a *models.Article) error {
	if m.Err != nil {
		return m.Err
	}
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	m.Articles[a.ID] = a
	m.order = append(m.order, a.ID)
	return nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Articles[id], nil
}

func (m *MockArticleRepository) List(ctx context.Context) ([]*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*models.Article
	for i := len(m.order) - 1; i >= 0; i-- {
		if a, ok := m.Articles[m.order[i]]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MockArticleRepository) Update(ctx context.Context, a *models.Article) error {
	if m.Err != nil {
		return m.Err
	}
	a.UpdatedAt = time.Now()
	m.Articles[a.ID] = a
	return nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	if _, ok := m.Articles[id]; !ok {
		return false, nil
	}
	delete(m.Articles, id)
	return true, nil
}

func (m *MockArticleRepository) Count(ctx context.Context) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return int64(len(m.Articles)), nil
}

func (m *MockArticleRepository) Latest(ctx context.Context, limit int) ([]*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*models.Article
	for i := len(m.order) - 1; i >= 0 && len(out) < limit; i-- {
		if a, ok := m.Articles[m.order[i]]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

// MockTimelineRepository is a mock implementation of TimelineRepository
type MockTimelineRepository struct {
	Comments []*models.TimelineComment
	Err      error
}

var _ repository.TimelineRepository = (*MockTimelineRepository)(nil)

func NewMockTimelineRepository() *MockTimelineRepository {
	return &MockTimelineRepository{}
}

func (m *MockTimelineRepository) Create(ctx context.Context, c *models.TimelineComment) error {
	if m.Err != nil {
		return m.Err
	}
	c.CreatedAt = time.Now()
	m.Comments = append(m.Comments, c)
	return nil
}

func (m *MockTimelineRepository) ListByEngagement(ctx context.Context, engagementID string) ([]*models.TimelineComment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*models.TimelineComment
	for i := len(m.Comments) - 1; i >= 0; i-- {
		if m.Comments[i].EngagementID == engagementID {
			out = append(out, m.Comments[i])
		}
	}
	return out, nil
}

// MockActivityRepository is a mock implementation of ActivityRepository
type MockActivityRepository struct {
	Activities map[string]*models.Activity
	Err        error
	order      []string
}

var _ repository.ActivityRepository = (*MockActivityRepository)(nil)

func NewMockActivityRepository() *MockActivityRepository {
	return &MockActivityRepository{Activities: make(map[string]*models.Activity)}
}

func (m *MockActivityRepository) Create(ctx context.Context, a *models.Activity) error {
	if m.Err != nil {
		return m.Err
	}
	a.CreatedAt = time.Now()
	m.Activities[a.ID] = a
	m.order = append(m.order, a.ID)
	return nil
}

func (m *MockActivityRepository) GetByID(ctx context.Context, id string) (*models.Activity, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Activities[id], nil
}

func (m *MockActivityRepository) List(ctx context.Context) ([]*models.Activity, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*models.Activity
	for i := len(m.order) - 1; i >= 0; i-- {
		if a, ok := m.Activities[m.order[i]]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MockActivityRepository) Update(ctx context.Context, a *models.Activity) error {
	if m.Err != nil {
		return m.Err
	}
	m.Activities[a.ID] = a
	return nil
}

func (m *MockActivityRepository) Delete(ctx context.Context, id string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	if _, ok := m.Activities[id]; !ok {
		return false, nil
	}
	delete(m.Activities, id)
	return true, nil
}

// MockVisitRepository is a mock implementation of VisitRepository
type MockVisitRepository struct {
	LandingVisits []*models.LandingVisit
	UserVisits    []*models.UserVisit
	Err           error
}

var _ repository.VisitRepository = (*MockVisitRepository)(nil)

func NewMockVisitRepository() *MockVisitRepository {
	return &MockVisitRepository{}
}

func (m *MockVisitRepository) CreateLanding(ctx context.Context, v *models.LandingVisit) error {
	if m.Err != nil {
		return m.Err
	}
	v.VisitedAt = time.Now()
	m.LandingVisits = append(m.LandingVisits, v)
	return nil
}

func (m *MockVisitRepository) CreateUser(ctx context.Context, v *models.UserVisit) error {
	if m.Err != nil {
		return m.Err
	}
	v.VisitedAt = time.Now()
	m.UserVisits = append(m.UserVisits, v)
	return nil
}

func (m *MockVisitRepository) DailyUniqueIPs(ctx context.Context, start, end time.Time) ([]models.DailyVisitCount, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	byDay := make(map[string]map[string]bool)
	var days []string
	for _, v := range m.LandingVisits {
		if v.VisitedAt.Before(start) || v.VisitedAt.After(end) {
			continue
		}
		day := v.VisitedAt.Format("2006-01-02")
		if byDay[day] == nil {
			byDay[day] = make(map[string]bool)
			days = append(days, day)
		}
		byDay[day][v.IPAddress] = true
	}
	out := make([]models.DailyVisitCount, 0, len(days))
	for _, day := range days {
		out = append(out, models.DailyVisitCount{Date: day, UniqueVisitors: len(byDay[day])})
	}
	return out, nil
}

func (m *MockVisitRepository) MonthlyUniqueUsers(ctx context.Context, start, end time.Time) ([]models.MonthlyUserCount, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	byMonth := make(map[string]map[string]bool)
	var months []string
	for _, v := range m.UserVisits {
		if v.VisitedAt.Before(start) || v.VisitedAt.After(end) {
			continue
		}
		month := v.VisitedAt.Format("2006-01")
		if byMonth[month] == nil {
			byMonth[month] = make(map[string]bool)
			months = append(months, month)
		}
		byMonth[month][v.UserID] = true
	}
	out := make([]models.MonthlyUserCount, 0, len(months))
	for _, month := range months {
		out = append(out, models.MonthlyUserCount{Month: month, UniqueUsers: len(byMonth[month])})
	}
	return out, nil
}

func (m *MockVisitRepository) ListLanding(ctx context.Context, f models.VisitFilter) ([]*models.LandingVisit, int, error) {
	if m.Err != nil {
		return nil, 0, m.Err
	}
	var matched []*models.LandingVisit
	for _, v := range m.LandingVisits {
		if !v.VisitedAt.Before(f.Start) && !v.VisitedAt.After(f.End) {
			matched = append(matched, v)
		}
	}
	return pageOf(matched, f), len(matched), nil
}

func (m *MockVisitRepository) ListUser(ctx context.Context, f models.VisitFilter) ([]*models.UserVisit, int, error) {
	if m.Err != nil {
		return nil, 0, m.Err
	}
	var matched []*models.UserVisit
	for _, v := range m.UserVisits {
		if v.VisitedAt.Before(f.Start) || v.VisitedAt.After(f.End) {
			continue
		}
		if f.UserID != "" && v.UserID != f.UserID {
			continue
		}
		if f.Area != "" && v.Area != f.Area {
			continue
		}
		matched = append(matched, v)
	}
	return pageOf(matched, f), len(matched), nil
}

func pageOf[T any](items []T, f models.VisitFilter) []T {
	start := (f.Page - 1) * f.Limit
	if start >= len(items) {
		return nil
	}
	end := start + f.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// NewMockRepositories bundles fresh mocks into a Repositories value
func NewMockRepositories() *repository.Repositories {
	return &repository.Repositories{
		User:       NewMockUserRepository(),
		Engagement: NewMockEngagementRepository(),
		Estimate:   NewMockEstimateRepository(),
		Article:    NewMockArticleRepository(),
		Timeline:   NewMockTimelineRepository(),
		Activity:   NewMockActivityRepository(),
		Visit:      NewMockVisitRepository(),
	}
}
