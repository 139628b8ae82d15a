package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agency-admin-api/internal/apierr"
	"github.com/agency-admin-api/internal/mocks"
	"github.com/agency-admin-api/internal/models"
	"github.com/agency-admin-api/internal/service"
)

func TestDashboardCards(t *testing.T) {
	repos := mocks.NewMockRepositories()
	svc := service.NewAnalyticsService(repos, nil, zerolog.Nop())
	client := seedUser(t, repos, "c@example.com", "customer")

	paid := seedEngagement(t, repos, client.ID)
	paid.PaymentStatus = models.PaymentStatusPaid
	repos.Engagement.Update(context.Background(), paid)
	seedEngagement(t, repos, client.ID)

	repos.Article.Create(context.Background(), &models.Article{ID: uuid.NewString(), Title: "Post", Body: "b"})

	cards, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}
	if len(cards) != 5 {
		t.Fatalf("Expected 5 cards, got %d", len(cards))
	}

	byTitle := map[string]int64{}
	for _, card := range cards {
		byTitle[card.Title] = card.Value
	}
	if byTitle["Total Projects"] != 2 {
		t.Errorf("Expected 2 projects, got %d", byTitle["Total Projects"])
	}
	if byTitle["Revenue Generated"] != paid.Price {
		t.Errorf("Expected revenue %d, got %d", paid.Price, byTitle["Revenue Generated"])
	}
}

func TestRevenueByYear(t *testing.T) {
	repos := mocks.NewMockRepositories()
	svc := service.NewAnalyticsService(repos, nil, zerolog.Nop())
	client := seedUser(t, repos, "c@example.com", "customer")

	march := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	e := seedEngagement(t, repos, client.ID)
	e.PaymentStatus = models.PaymentStatusPaid
	e.Status = models.EngagementStatusCompleted
	e.EndDate = &march
	e.Price = 3000
	repos.Engagement.Update(context.Background(), e)

	// Unpaid work in the same year does not count
	unpaid := seedEngagement(t, repos, client.ID)
	unpaid.EndDate = &march
	repos.Engagement.Update(context.Background(), unpaid)

	report, err := svc.RevenueByYear(context.Background(), 2025)
	if err != nil {
		t.Fatalf("RevenueByYear failed: %v", err)
	}
	if report.TotalRevenue != 3000 {
		t.Errorf("Expected total 3000, got %d", report.TotalRevenue)
	}
	values := report.Revenue.Data[0].Values
	if len(values) != 12 {
		t.Fatalf("Expected 12 months, got %d", len(values))
	}
	if values[2] != 3000 {
		t.Errorf("Expected March revenue 3000, got %d", values[2])
	}
	if len(report.Clients) != 1 || report.Clients[0].TotalAmount != 3000 {
		t.Errorf("Unexpected client rollup: %+v", report.Clients)
	}

	if _, err := svc.RevenueByYear(context.Background(), 99); !apierr.IsCode(err, apierr.CodeBadRequest) {
		t.Errorf("Expected bad_request for invalid year, got %v", err)
	}
}

func TestEngagementBreakdown(t *testing.T) {
	repos := mocks.NewMockRepositories()
	svc := service.NewAnalyticsService(repos, nil, zerolog.Nop())
	client := seedUser(t, repos, "c@example.com", "customer")

	done := seedEngagement(t, repos, client.ID)
	done.Status = models.EngagementStatusCompleted
	repos.Engagement.Update(context.Background(), done)
	seedEngagement(t, repos, client.ID)

	b, err := svc.EngagementBreakdown(context.Background())
	if err != nil {
		t.Fatalf("Breakdown failed: %v", err)
	}
	if b.Total != 2 || b.Completed != 1 || b.InProgress != 1 {
		t.Errorf("Unexpected breakdown: %+v", b)
	}
}

func TestLatestFeed(t *testing.T) {
	repos := mocks.NewMockRepositories()
	svc := service.NewAnalyticsService(repos, nil, zerolog.Nop())
	client := seedUser(t, repos, "c@example.com", "customer")
	seedEngagement(t, repos, client.ID)
	repos.Article.Create(context.Background(), &models.Article{ID: uuid.NewString(), Title: "Post", Heading: "h", Body: "b"})
	repos.Estimate.Create(context.Background(), &models.Estimate{
		ID:             uuid.NewString(),
		RequestDetails: models.EstimateRequestDetails{Title: "Ask"},
		Client:         models.EstimateClient{Email: "p@example.com"},
	})

	feed, err := svc.LatestFeed(context.Background())
	if err != nil {
		t.Fatalf("LatestFeed failed: %v", err)
	}
	if len(feed) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(feed))
	}

	categories := map[string]bool{}
	for _, item := range feed {
		categories[item.Category] = true
	}
	for _, want := range []string{"project", "article", "estimate"} {
		if !categories[want] {
			t.Errorf("Missing %s entry in feed", want)
		}
	}
}

func TestVisitTracking(t *testing.T) {
	repos := mocks.NewMockRepositories()
	svc := service.NewAnalyticsService(repos, nil, zerolog.Nop())

	if err := svc.TrackLandingVisit(context.Background(), "10.0.0.1", "agent"); err != nil {
		t.Fatalf("TrackLandingVisit failed: %v", err)
	}
	if err := svc.TrackLandingVisit(context.Background(), "10.0.0.1", "agent"); err != nil {
		t.Fatalf("TrackLandingVisit failed: %v", err)
	}
	if err := svc.TrackLandingVisit(context.Background(), "10.0.0.2", "agent"); err != nil {
		t.Fatalf("TrackLandingVisit failed: %v", err)
	}

	start := time.Now().Add(-time.Hour)
	end := time.Now().Add(time.Hour)
	daily, err := svc.DailyLandingVisits(context.Background(), start, end)
	if err != nil {
		t.Fatalf("DailyLandingVisits failed: %v", err)
	}
	if len(daily) != 1 || daily[0].UniqueVisitors != 2 {
		t.Errorf("Expected 1 day with 2 unique IPs, got %+v", daily)
	}

	if err := svc.TrackUserVisit(context.Background(), "", "dashboard", "ip", "ua"); !apierr.IsCode(err, apierr.CodeBadRequest) {
		t.Errorf("Expected bad_request for missing user, got %v", err)
	}

	if _, err := svc.DailyLandingVisits(context.Background(), end, start); !apierr.IsCode(err, apierr.CodeBadRequest) {
		t.Errorf("Expected bad_request for inverted range, got %v", err)
	}
}

func TestVisitDetails_Pagination(t *testing.T) {
	repos := mocks.NewMockRepositories()
	svc := service.NewAnalyticsService(repos, nil, zerolog.Nop())

	for i := 0; i < 5; i++ {
		if err := svc.TrackUserVisit(context.Background(), "u1", "dashboard", "ip", "ua"); err != nil {
			t.Fatalf("TrackUserVisit failed: %v", err)
		}
	}

	visits, page, err := svc.UserVisitDetails(context.Background(), models.VisitFilter{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("UserVisitDetails failed: %v", err)
	}
	if len(visits) != 2 {
		t.Errorf("Expected 2 visits on page 2, got %d", len(visits))
	}
	if page.Total != 5 || page.Pages != 3 {
		t.Errorf("Unexpected pagination: %+v", page)
	}
}
