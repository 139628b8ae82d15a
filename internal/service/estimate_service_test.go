package service_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/agency-admin-api/internal/apierr"
	"github.com/agency-admin-api/internal/mocks"
	"github.com/agency-admin-api/internal/models"
	"github.com/agency-admin-api/internal/service"
)

func TestEstimateCreate_Defaults(t *testing.T) {
	repos := mocks.NewMockRepositories()
	svc := service.NewEstimateService(repos, zerolog.Nop())

	est, err := svc.Create(context.Background(), &models.Estimate{
		RequestDetails: models.EstimateRequestDetails{Title: "Shop", Service: "web"},
		Client:         models.EstimateClient{Email: "p@example.com"},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if est.Status != models.EstimateStatusPending {
		t.Errorf("Expected pending, got %s", est.Status)
	}
	if est.RequestDetails.RequestID == "" {
		t.Error("Expected generated request id")
	}
}

func TestEstimateCreate_Validation(t *testing.T) {
	repos := mocks.NewMockRepositories()
	svc := service.NewEstimateService(repos, zerolog.Nop())

	_, err := svc.Create(context.Background(), &models.Estimate{
		Client: models.EstimateClient{Email: "p@example.com"},
	})
	if !apierr.IsCode(err, apierr.CodeBadRequest) {
		t.Errorf("Expected bad_request for missing request details, got %v", err)
	}

	_, err = svc.Create(context.Background(), &models.Estimate{
		RequestDetails: models.EstimateRequestDetails{Title: "t", Service: "s"},
		Client:         models.EstimateClient{Email: "not-an-email"},
	})
	if !apierr.IsCode(err, apierr.CodeBadRequest) {
		t.Errorf("Expected bad_request for bad email, got %v", err)
	}
}

func TestEstimateList_Summary(t *testing.T) {
	repos := mocks.NewMockRepositories()
	svc := service.NewEstimateService(repos, zerolog.Nop())

	statuses := []models.EstimateStatus{
		models.EstimateStatusPending,
		models.EstimateStatusPending,
		models.EstimateStatusInProgress,
		models.EstimateStatusCompleted,
		models.EstimateStatusClosed,
	}
	for i, st := range statuses {
		_, err := svc.Create(context.Background(), &models.Estimate{
			RequestDetails: models.EstimateRequestDetails{Title: "t", Service: "web"},
			Client:         models.EstimateClient{Email: "p@example.com"},
			Status:         st,
		})
		if err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
	}

	listing, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	s := listing.Summary
	if s.TotalRequests != 5 || s.Pending != 2 || s.InProgress != 1 || s.Completed != 1 || s.Closed != 1 {
		t.Errorf("Unexpected summary: %+v", s)
	}
	if len(listing.Requests) != 5 {
		t.Errorf("Expected 5 rows, got %d", len(listing.Requests))
	}
}

func BenchmarkEstimateListSummary(b *testing.B) {
	repos := mocks.NewMockRepositories()
	svc := service.NewEstimateService(repos, zerolog.Nop())

	for i := 0; i < 1000; i++ {
		svc.Create(context.Background(), &models.Estimate{
			RequestDetails: models.EstimateRequestDetails{Title: "t", Service: "web"},
			Client:         models.EstimateClient{Email: "p@example.com"},
		})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := svc.List(context.Background()); err != nil {
			b.Fatal(err)
		}
	}
}

func TestEstimateUpdate(t *testing.T) {
	repos := mocks.NewMockRepositories()
	svc := service.NewEstimateService(repos, zerolog.Nop())

	est, _ := svc.Create(context.Background(), &models.Estimate{
		RequestDetails: models.EstimateRequestDetails{Title: "t", Service: "s"},
		Client:         models.EstimateClient{Email: "p@example.com"},
	})

	closed := models.EstimateStatusClosed
	updated, err := svc.Update(context.Background(), est.ID, &models.EstimateUpdate{Status: &closed})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Status != models.EstimateStatusClosed {
		t.Errorf("Expected closed, got %s", updated.Status)
	}

	bad := models.EstimateStatus("archived")
	if _, err := svc.Update(context.Background(), est.ID, &models.EstimateUpdate{Status: &bad}); !apierr.IsCode(err, apierr.CodeBadRequest) {
		t.Errorf("Expected bad_request, got %v", err)
	}
}
