package plans

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	slug "github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/goliatone/go-sitebuilder/internal/domain"
	"github.com/goliatone/go-sitebuilder/internal/identity"
	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

// Service resolves plan features lazily and enforces usage limits.
type Service interface {
	CreatePlan(ctx context.Context, input CreatePlanInput) (*Plan, error)
	GetPlan(ctx context.Context, id uuid.UUID) (*Plan, error)
	GetPlanBySlug(ctx context.Context, planSlug string) (*Plan, error)
	ListPlans(ctx context.Context) ([]*Plan, error)
	SortPlans(ctx context.Context, pairs []SortPair) error
	DeletePlan(ctx context.Context, id uuid.UUID) error

	// GetFeature returns the plan's feature row for a catalog code, creating
	// it from the skeleton on first access. Idempotent per (plan, code).
	GetFeature(ctx context.Context, planID uuid.UUID, code string) (*PlanFeature, error)
	ListFeatures(ctx context.Context, planID uuid.UUID) ([]*PlanFeature, error)
	UpdateFeature(ctx context.Context, input UpdateFeatureInput) (*PlanFeature, error)

	// CheckLimit returns nil when the feature is enabled and used is under
	// its limit. A negative limit is unlimited; zero means unavailable.
	CheckLimit(ctx context.Context, planID uuid.UUID, code string, used int) error
}

// CreatePlanInput captures plan creation attributes.
type CreatePlanInput struct {
	Name        string
	Slug        string
	Description string
	Position    *int
	Status      domain.Status
	Prices      map[string]any
}

// UpdateFeatureInput overrides a plan feature's entitlement values.
type UpdateFeatureInput struct {
	PlanID  uuid.UUID
	Code    string
	Enabled *bool
	Limit   *int
}

// LimitError reports that a plan feature rejected further usage.
type LimitError struct {
	Code  string
	Limit int
	Used  int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("plan limit reached for %s: %d of %d used", e.Code, e.Used, e.Limit)
}

var (
	ErrPlanIDRequired  = errors.New("plans: plan id required")
	ErrNameRequired    = errors.New("plans: name required")
	ErrSlugInvalid     = errors.New("plans: slug is not valid")
	ErrSlugTaken       = errors.New("plans: slug already in use")
	ErrCodeRequired    = errors.New("plans: feature code required")
	ErrCodeUnknown     = errors.New("plans: feature code not in catalog")
	ErrEmptySortBatch  = errors.New("plans: sort batch is empty")
	ErrPositionInvalid = errors.New("plans: position cannot be negative")
)

type IDGenerator func() uuid.UUID

type ServiceOption func(*service)

func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	plans    PlanRepository
	features PlanFeatureRepository
	now      func() time.Time
	id       IDGenerator
	logger   interfaces.Logger
}

func NewService(planRepo PlanRepository, featureRepo PlanFeatureRepository, opts ...ServiceOption) Service {
	s := &service{
		plans:    planRepo,
		features: featureRepo,
		now:      time.Now,
		id:       uuid.New,
		logger:   logging.NoOp(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *service) CreatePlan(ctx context.Context, input CreatePlanInput) (*Plan, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	source := strings.TrimSpace(input.Slug)
	if source == "" {
		source = name
	}
	planSlug, err := slug.Normalize(source)
	if err != nil || planSlug == "" {
		return nil, ErrSlugInvalid
	}

	if _, err := s.plans.GetBySlug(ctx, planSlug); err == nil {
		return nil, ErrSlugTaken
	} else if !isNotFound(err) {
		return nil, err
	}

	position := 0
	if input.Position != nil {
		if *input.Position < 0 {
			return nil, ErrPositionInvalid
		}
		position = *input.Position
	} else {
		existing, err := s.plans.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, plan := range existing {
			if plan.Position >= position {
				position = plan.Position + 1
			}
		}
	}

	status := domain.StatusDraft
	if input.Status != "" {
		status = input.Status
	}

	now := s.now()
	plan := &Plan{
		ID:          identity.PlanUUID(planSlug),
		Name:        name,
		Slug:        planSlug,
		Description: strings.TrimSpace(input.Description),
		Position:    position,
		Status:      status,
		Prices:      cloneMap(input.Prices),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.plans.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	s.logger.Info("plan created", "plan_id", created.ID.String(), "slug", created.Slug)
	return created, nil
}

func (s *service) GetPlan(ctx context.Context, id uuid.UUID) (*Plan, error) {
	if id == uuid.Nil {
		return nil, ErrPlanIDRequired
	}
	return s.plans.GetByID(ctx, id)
}

func (s *service) GetPlanBySlug(ctx context.Context, planSlug string) (*Plan, error) {
	if strings.TrimSpace(planSlug) == "" {
		return nil, ErrSlugInvalid
	}
	return s.plans.GetBySlug(ctx, planSlug)
}

func (s *service) ListPlans(ctx context.Context) ([]*Plan, error) {
	return s.plans.List(ctx)
}

func (s *service) SortPlans(ctx context.Context, pairs []SortPair) error {
	if len(pairs) == 0 {
		return ErrEmptySortBatch
	}
	for _, pair := range pairs {
		if pair.ID == uuid.Nil {
			return ErrPlanIDRequired
		}
		if pair.Position < 0 {
			return ErrPositionInvalid
		}
	}
	return s.plans.UpdatePositions(ctx, pairs)
}

func (s *service) DeletePlan(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrPlanIDRequired
	}
	if _, err := s.plans.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.features.DeleteByPlan(ctx, id); err != nil {
		return err
	}
	return s.plans.Delete(ctx, id)
}

func (s *service) GetFeature(ctx context.Context, planID uuid.UUID, code string) (*PlanFeature, error) {
	if planID == uuid.Nil {
		return nil, ErrPlanIDRequired
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrCodeRequired
	}

	feature, err := s.features.GetByPlanAndCode(ctx, planID, code)
	if err == nil {
		return feature, nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	skeleton, ok := FeatureSkeletonFor(code)
	if !ok {
		return nil, ErrCodeUnknown
	}

	now := s.now()
	created, err := s.features.Create(ctx, &PlanFeature{
		// Deterministic id: concurrent resolvers of the same pair converge
		// on one row instead of inserting duplicates.
		ID:          identity.PlanFeatureUUID(planID, code),
		PlanID:      planID,
		Code:        skeleton.Code,
		Name:        skeleton.Name,
		Description: skeleton.Description,
		Type:        skeleton.Type,
		Enabled:     skeleton.Enabled,
		Limit:       skeleton.Limit,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		// Another resolver may have won the insert.
		if existing, getErr := s.features.GetByPlanAndCode(ctx, planID, code); getErr == nil {
			return existing, nil
		}
		return nil, err
	}
	s.logger.Debug("plan feature materialized", "plan_id", planID.String(), "code", code)
	return created, nil
}

func (s *service) ListFeatures(ctx context.Context, planID uuid.UUID) ([]*PlanFeature, error) {
	if planID == uuid.Nil {
		return nil, ErrPlanIDRequired
	}
	return s.features.ListByPlan(ctx, planID)
}

func (s *service) UpdateFeature(ctx context.Context, input UpdateFeatureInput) (*PlanFeature, error) {
	feature, err := s.GetFeature(ctx, input.PlanID, input.Code)
	if err != nil {
		return nil, err
	}

	if input.Enabled != nil {
		feature.Enabled = *input.Enabled
	}
	if input.Limit != nil {
		feature.Limit = *input.Limit
	}
	feature.UpdatedAt = s.now()

	return s.features.Update(ctx, feature)
}

func (s *service) CheckLimit(ctx context.Context, planID uuid.UUID, code string, used int) error {
	feature, err := s.GetFeature(ctx, planID, code)
	if err != nil {
		return err
	}

	if !feature.Enabled || feature.Limit == 0 {
		return &LimitError{Code: code, Limit: feature.Limit, Used: used}
	}
	if feature.Limit < 0 {
		return nil
	}
	if used >= feature.Limit {
		return &LimitError{Code: code, Limit: feature.Limit, Used: used}
	}
	return nil
}

func isNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
