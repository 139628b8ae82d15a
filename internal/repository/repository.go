package repository

import (
	"context"
	"time"

	"github.com/agency-admin-api/internal/database"
	"github.com/agency-admin-api/internal/models"
)

// UserRepository defines the interface for user data operations.
// Users are soft-deleted only; reads exclude deleted rows.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	SoftDelete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// EngagementRepository defines the interface for engagement data operations
type EngagementRepository interface {
	Create(ctx context.Context, e *models.Engagement) error
	GetByID(ctx context.Context, id string) (*models.Engagement, error)
	GetBySessionID(ctx context.Context, sessionID string) (*models.Engagement, error)
	List(ctx context.Context, engagementType models.EngagementType) ([]*models.Engagement, error)
	Update(ctx context.Context, e *models.Engagement) error
	Delete(ctx context.Context, id string) (bool, error)

	// AddStaff appends an assignment atomically; returns false when the
	// user is already assigned (insert-if-absent, no read-modify-write)
	AddStaff(ctx context.Context, engagementID string, a models.StaffAssignment) (bool, error)
	RemoveStaff(ctx context.Context, engagementID, userID string) (bool, error)

	ListByClient(ctx context.Context, userID string) ([]*models.Engagement, error)
	ListByStaff(ctx context.Context, userID string) ([]*models.Engagement, error)

	SetCheckoutSession(ctx context.Context, id, sessionID, clientSecret string) error
	// UpdatePaymentBySession resolves the engagement by stored correlation
	// id and applies the payment transition; returns false on no match.
	// A negative statusPercentage leaves the stored value unchanged.
	UpdatePaymentBySession(ctx context.Context, sessionID string, payment models.PaymentStatus, status models.EngagementStatus, statusPercentage int) (bool, error)

	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) (*models.EngagementBreakdown, error)
	PaidRevenueTotal(ctx context.Context) (int64, error)
	MonthlyRevenue(ctx context.Context, year int) ([]int64, error)
	ClientRevenue(ctx context.Context, year int) ([]models.ClientRevenue, error)
	Latest(ctx context.Context, limit int) ([]*models.Engagement, error)
}

// EstimateRepository defines the interface for estimate data operations
type EstimateRepository interface {
	Create(ctx context.Context, e *models.Estimate) error
	GetByID(ctx context.Context, id string) (*models.Estimate, error)
	List(ctx context.Context) ([]*models.Estimate, error)
	Update(ctx context.Context, e *models.Estimate) error
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)
	Latest(ctx context.Context, limit int) ([]*models.Estimate, error)
}

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	Create(ctx context.Context, a *models.Article) error
	GetByID(ctx context.Context, id string) (*models.Article, error)
	List(ctx context.Context) ([]*models.Article, error)
	Update(ctx context.Context, a *models.Article) error
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)
	Latest(ctx context.Context, limit int) ([]*models.Article, error)
}

// TimelineRepository defines the interface for timeline comments.
// Comments are append-only: created and listed, never updated.
type TimelineRepository interface {
	Create(ctx context.Context, c *models.TimelineComment) error
	ListByEngagement(ctx context.Context, engagementID string) ([]*models.TimelineComment, error)
}

// ActivityRepository defines the interface for activity-feed entries
type ActivityRepository interface {
	Create(ctx context.Context, a *models.Activity) error
	GetByID(ctx context.Context, id string) (*models.Activity, error)
	List(ctx context.Context) ([]*models.Activity, error)
	Update(ctx context.Context, a *models.Activity) error
	Delete(ctx context.Context, id string) (bool, error)
}

// VisitRepository defines the interface for append-only visit records
type VisitRepository interface {
	CreateLanding(ctx context.Context, v *models.LandingVisit) error
	CreateUser(ctx context.Context, v *models.UserVisit) error
	DailyUniqueIPs(ctx context.Context, start, end time.Time) ([]models.DailyVisitCount, error)
	MonthlyUniqueUsers(ctx context.Context, start, end time.Time) ([]models.MonthlyUserCount, error)
	ListLanding(ctx context.Context, f models.VisitFilter) ([]*models.LandingVisit, int, error)
	ListUser(ctx context.Context, f models.VisitFilter) ([]*models.UserVisit, int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	User       UserRepository
	Engagement EngagementRepository
	Estimate   EstimateRepository
	Article    ArticleRepository
	Timeline   TimelineRepository
	Activity   ActivityRepository
	Visit      VisitRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		User:       NewUserRepo(db),
		Engagement: NewEngagementRepo(db),
		Estimate:   NewEstimateRepo(db),
		Article:    NewArticleRepo(db),
		Timeline:   NewTimelineRepo(db),
		Activity:   NewActivityRepo(db),
		Visit:      NewVisitRepo(db),
	}
}
