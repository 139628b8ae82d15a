package service

import (
	"github.com/rs/zerolog"

	"github.com/agency-admin-api/internal/cache"
	"github.com/agency-admin-api/internal/config"
	"github.com/agency-admin-api/internal/payment"
	"github.com/agency-admin-api/internal/repository"
)

// Services holds all service interfaces
type Services struct {
	User       UserService
	Engagement EngagementService
	Estimate   EstimateService
	Payment    PaymentService
	Analytics  AnalyticsService
	Article    ArticleService
	Timeline   TimelineService
	Activity   ActivityService
}

// NewServices creates all services with their dependencies. The cache may
// be nil; analytics then reads straight from the store.
func NewServices(repos *repository.Repositories, provider payment.Provider, c *cache.Cache, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		User:       NewUserService(repos, cfg, log),
		Engagement: NewEngagementService(repos, log),
		Estimate:   NewEstimateService(repos, log),
		Payment:    NewPaymentService(repos, provider, cfg, log),
		Analytics:  NewAnalyticsService(repos, c, log),
		Article:    NewArticleService(repos, log),
		Timeline:   NewTimelineService(repos, log),
		Activity:   NewActivityService(repos, log),
	}
}
