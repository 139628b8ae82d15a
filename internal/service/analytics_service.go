package service

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agency-admin-api/internal/apierr"
	"github.com/agency-admin-api/internal/cache"
	"github.com/agency-admin-api/internal/models"
	"github.com/agency-admin-api/internal/repository"
)

// AnalyticsService serves the dashboard rollups and the visit tracker.
// Rollup reads go through the cache when one is wired; tracking writes
// are append-only and never read back on the hot path.
type AnalyticsService interface {
	Dashboard(ctx context.Context) ([]models.StatCard, error)
	RevenueByYear(ctx context.Context, year int) (*models.RevenueReport, error)
	EngagementBreakdown(ctx context.Context) (*models.EngagementBreakdown, error)
	LatestFeed(ctx context.Context) ([]models.LatestActivityItem, error)

	TrackLandingVisit(ctx context.Context, ip, userAgent string) error
	TrackUserVisit(ctx context.Context, userID, area, ip, userAgent string) error
	DailyLandingVisits(ctx context.Context, start, end time.Time) ([]models.DailyVisitCount, error)
	MonthlyUserVisits(ctx context.Context, start, end time.Time) ([]models.MonthlyUserCount, error)
	LandingVisitDetails(ctx context.Context, f models.VisitFilter) ([]*models.LandingVisit, *models.Pagination, error)
	UserVisitDetails(ctx context.Context, f models.VisitFilter) ([]*models.UserVisit, *models.Pagination, error)
}

type analyticsService struct {
	repos *repository.Repositories
	cache *cache.Cache
	log   zerolog.Logger
}

// NewAnalyticsService creates a new analytics service; cache may be nil
func NewAnalyticsService(repos *repository.Repositories, c *cache.Cache, log zerolog.Logger) AnalyticsService {
	return &analyticsService{
		repos: repos,
		cache: c,
		log:   log.With().Str("service", "analytics").Logger(),
	}
}

var monthLabels = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// Dashboard returns the headline stat cards
func (s *analyticsService) Dashboard(ctx context.Context) ([]models.StatCard, error) {
	const key = "analytics:dashboard"
	var cards []models.StatCard
	if s.cache.Get(ctx, key, &cards) {
		return cards, nil
	}

	articles, err := s.repos.Article.Count(ctx)
	if err != nil {
		return nil, err
	}
	engagements, err := s.repos.Engagement.Count(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.repos.User.Count(ctx)
	if err != nil {
		return nil, err
	}
	estimates, err := s.repos.Estimate.Count(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.repos.Engagement.PaidRevenueTotal(ctx)
	if err != nil {
		return nil, err
	}

	cards = []models.StatCard{
		{Title: "Total Articles", Value: articles},
		{Title: "Total Projects", Value: engagements},
		{Title: "Total Users", Value: users},
		{Title: "Estimate Requests", Value: estimates},
		{Title: "Revenue Generated", Value: revenue},
	}
	s.cache.Set(ctx, key, cards)
	return cards, nil
}

// RevenueByYear builds the monthly revenue chart and the per-client
// rollup for one year. Only paid engagements in delivery or done count.
func (s *analyticsService) RevenueByYear(ctx context.Context, year int) (*models.RevenueReport, error) {
	if year < 2000 || year > 2100 {
		return nil, apierr.BadRequest("invalid year")
	}

	key := "analytics:revenue:" + strconv.Itoa(year)
	var report models.RevenueReport
	if s.cache.Get(ctx, key, &report) {
		return &report, nil
	}

	monthly, err := s.repos.Engagement.MonthlyRevenue(ctx, year)
	if err != nil {
		return nil, err
	}
	clients, err := s.repos.Engagement.ClientRevenue(ctx, year)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, v := range monthly {
		total += v
	}
	if clients == nil {
		clients = []models.ClientRevenue{}
	}

	report = models.RevenueReport{
		TotalRevenue: total,
		Year:         year,
		Revenue: models.RevenueChart{
			XAxis: models.RevenueAxis{Label: "Months", Values: monthLabels},
			YAxis: models.RevenueAxis{Label: "Revenue", Unit: "usd"},
			Data: []models.RevenueSeries{
				{Period: strconv.Itoa(year), Values: monthly},
			},
		},
		Clients: clients,
	}
	s.cache.Set(ctx, key, &report)
	return &report, nil
}

// EngagementBreakdown returns the per-status engagement counts
func (s *analyticsService) EngagementBreakdown(ctx context.Context) (*models.EngagementBreakdown, error) {
	const key = "analytics:breakdown"
	var b models.EngagementBreakdown
	if s.cache.Get(ctx, key, &b) {
		return &b, nil
	}

	breakdown, err := s.repos.Engagement.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, key, breakdown)
	return breakdown, nil
}

// LatestFeed merges the newest engagements, articles and estimates into
// one activity-shaped feed
func (s *analyticsService) LatestFeed(ctx context.Context) ([]models.LatestActivityItem, error) {
	const key = "analytics:latest"
	const limit = 5

	var feed []models.LatestActivityItem
	if s.cache.Get(ctx, key, &feed) {
		return feed, nil
	}

	engagements, err := s.repos.Engagement.Latest(ctx, limit)
	if err != nil {
		return nil, err
	}
	articles, err := s.repos.Article.Latest(ctx, limit)
	if err != nil {
		return nil, err
	}
	estimates, err := s.repos.Estimate.Latest(ctx, limit)
	if err != nil {
		return nil, err
	}

	feed = make([]models.LatestActivityItem, 0, len(engagements)+len(articles)+len(estimates))
	for _, e := range engagements {
		feed = append(feed, models.LatestActivityItem{
			Title:       e.Title,
			CreatedBy:   e.ClientID,
			Description: e.Description,
			Category:    "project",
		})
	}
	for _, a := range articles {
		feed = append(feed, models.LatestActivityItem{
			Title:       a.Title,
			Description: a.Heading,
			Category:    "article",
		})
	}
	for _, est := range estimates {
		feed = append(feed, models.LatestActivityItem{
			Title:       est.RequestDetails.Title,
			CreatedBy:   est.Client.Email,
			Description: est.Description,
			Category:    "estimate",
		})
	}

	s.cache.Set(ctx, key, feed)
	return feed, nil
}

// TrackLandingVisit records one landing-page visit
func (s *analyticsService) TrackLandingVisit(ctx context.Context, ip, userAgent string) error {
	return s.repos.Visit.CreateLanding(ctx, &models.LandingVisit{
		ID:        uuid.NewString(),
		IPAddress: ip,
		UserAgent: userAgent,
	})
}

// TrackUserVisit records one authenticated-area visit
func (s *analyticsService) TrackUserVisit(ctx context.Context, userID, area, ip, userAgent string) error {
	if userID == "" || area == "" {
		return apierr.BadRequest("user_id and area are required")
	}
	return s.repos.Visit.CreateUser(ctx, &models.UserVisit{
		ID:        uuid.NewString(),
		UserID:    userID,
		Area:      area,
		IPAddress: ip,
		UserAgent: userAgent,
	})
}

// DailyLandingVisits returns unique visitor IPs per day in the range
func (s *analyticsService) DailyLandingVisits(ctx context.Context, start, end time.Time) ([]models.DailyVisitCount, error) {
	if end.Before(start) {
		return nil, apierr.BadRequest("end date precedes start date")
	}
	return s.repos.Visit.DailyUniqueIPs(ctx, start, end)
}

// MonthlyUserVisits returns unique active users per month in the range
func (s *analyticsService) MonthlyUserVisits(ctx context.Context, start, end time.Time) ([]models.MonthlyUserCount, error) {
	if end.Before(start) {
		return nil, apierr.BadRequest("end date precedes start date")
	}
	return s.repos.Visit.MonthlyUniqueUsers(ctx, start, end)
}

// LandingVisitDetails returns one page of raw landing-visit records
func (s *analyticsService) LandingVisitDetails(ctx context.Context, f models.VisitFilter) ([]*models.LandingVisit, *models.Pagination, error) {
	normalizeFilter(&f)
	visits, total, err := s.repos.Visit.ListLanding(ctx, f)
	if err != nil {
		return nil, nil, err
	}
	return visits, paginate(total, f), nil
}

// UserVisitDetails returns one page of raw user-visit records
func (s *analyticsService) UserVisitDetails(ctx context.Context, f models.VisitFilter) ([]*models.UserVisit, *models.Pagination, error) {
	normalizeFilter(&f)
	visits, total, err := s.repos.Visit.ListUser(ctx, f)
	if err != nil {
		return nil, nil, err
	}
	return visits, paginate(total, f), nil
}

func normalizeFilter(f *models.VisitFilter) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 200 {
		f.Limit = 50
	}
	if f.End.IsZero() {
		f.End = time.Now()
	}
	if f.Start.IsZero() {
		f.Start = f.End.AddDate(0, -1, 0)
	}
}

func paginate(total int, f models.VisitFilter) *models.Pagination {
	pages := total / f.Limit
	if total%f.Limit != 0 {
		pages++
	}
	return &models.Pagination{Total: total, Page: f.Page, Limit: f.Limit, Pages: pages}
}
