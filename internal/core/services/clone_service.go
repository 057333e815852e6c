package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/clonewander/internal/apperrors"
	"github.com/SscSPs/clonewander/internal/core/clock"
	"github.com/SscSPs/clonewander/internal/core/domain"
	"github.com/SscSPs/clonewander/internal/core/lifecycle"
	portsrepo "github.com/SscSPs/clonewander/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/clonewander/internal/core/ports/services"
	"github.com/SscSPs/clonewander/internal/dto"
	"github.com/SscSPs/clonewander/internal/middleware"
	"github.com/shopspring/decimal"
)

// MaxActivityDays bounds how long a single trip may last.
const MaxActivityDays = 30

const anonymousUser = "anonymous"

var (
	ErrNameMissing        = errors.New("clone name is required")
	ErrDestinationMissing = errors.New("destination is required")
	ErrTravelHours        = errors.New("travel hours must be a non-negative number")
	ErrActivityDays       = fmt.Errorf("activity days must be greater than 0 and at most %d", MaxActivityDays)
	ErrUnknownBudget      = errors.New("unknown budget tier")
	ErrUnknownPack        = errors.New("unknown adventure pack")
	ErrPremiumPack        = errors.New("adventure pack requires a premium clone")
)

// cloneService manages clone creation and the user-facing clone operations.
type cloneService struct {
	cloneRepo   portsrepo.CloneRepositoryFacade
	journalRepo portsrepo.JournalEntryReader
	catalog     portssvc.CatalogSvc
	clock       clock.Accelerated
	now         func() time.Time
}

// CloneServiceOption configures a cloneService.
type CloneServiceOption func(*cloneService)

// WithCloneClock overrides the wall clock, e.g. in tests.
func WithCloneClock(now func() time.Time) CloneServiceOption {
	return func(s *cloneService) {
		s.now = now
	}
}

// NewCloneService creates a new CloneService.
func NewCloneService(cloneRepo portsrepo.CloneRepositoryFacade, journalRepo portsrepo.JournalEntryReader, catalog portssvc.CatalogSvc, clk clock.Accelerated, opts ...CloneServiceOption) portssvc.CloneSvcFacade {
	s := &cloneService{
		cloneRepo:   cloneRepo,
		journalRepo: journalRepo,
		catalog:     catalog,
		clock:       clk,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.CloneSvcFacade = (*cloneService)(nil)

func invalid(cause error) error {
	return fmt.Errorf("%w: %w", apperrors.ErrInvalidCloneConfiguration, cause)
}

// validate normalises req in place and resolves the pack and travel time.
func (s *cloneService) validate(req *dto.CreateCloneRequest) (float64, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Destination = strings.TrimSpace(req.Destination)
	if req.Name == "" {
		return 0, invalid(ErrNameMissing)
	}
	if req.Destination == "" {
		return 0, invalid(ErrDestinationMissing)
	}

	var travelHours float64
	if req.TravelHours == nil {
		travelHours = s.catalog.EstimateTravel(req.Destination).Hours
	} else {
		travelHours = *req.TravelHours
	}
	if travelHours < 0 || math.IsNaN(travelHours) || math.IsInf(travelHours, 0) {
		return 0, invalid(ErrTravelHours)
	}

	if !(req.ActivityDays > 0 && req.ActivityDays <= MaxActivityDays) {
		return 0, invalid(ErrActivityDays)
	}
	if !req.Budget.IsValid() {
		return 0, invalid(fmt.Errorf("%w: %q", ErrUnknownBudget, req.Budget))
	}

	if req.Pack == "" {
		req.Pack = domain.DefaultPack
	}
	pack, ok := s.catalog.FindPack(req.Pack)
	if !ok {
		return 0, invalid(fmt.Errorf("%w: %q", ErrUnknownPack, req.Pack))
	}
	if pack.IsPremium && !req.IsPremium {
		return 0, invalid(fmt.Errorf("%w: %q", ErrPremiumPack, req.Pack))
	}
	return travelHours, nil
}

// CreateClone validates the request and dispatches a new clone. The trip's
// three instants are fixed here and never recomputed.
func (s *cloneService) CreateClone(ctx context.Context, req dto.CreateCloneRequest, userID string) (*dto.CloneResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	travelHours, err := s.validate(&req)
	if err != nil {
		logger.Warn("Rejected clone configuration", slog.String("error", err.Error()))
		return nil, err
	}
	if userID == "" {
		userID = anonymousUser
	}

	now := s.now()
	arrival := now.Add(s.clock.ToReal(travelHours, time.Hour))
	clone := domain.Clone{
		CloneID:         uuid.NewString(),
		Name:            req.Name,
		Destination:     req.Destination,
		Status:          domain.StatusTraveling,
		TravelHours:     travelHours,
		ActivityDays:    req.ActivityDays,
		Preferences:     strings.TrimSpace(req.Preferences),
		Budget:          req.Budget,
		Pack:            req.Pack,
		IsPremium:       req.IsPremium,
		DepartureTime:   now,
		ArrivalTime:     arrival,
		ActivityEndTime: arrival.Add(s.clock.ToReal(req.ActivityDays, clock.SimulatedDay)),
		TotalSpend:      decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.cloneRepo.SaveClone(ctx, clone); err != nil {
		logger.Error("Failed to save clone", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save clone: %w", err)
	}

	logger.Info("Clone dispatched",
		slog.String("clone_id", clone.CloneID),
		slog.String("destination", clone.Destination),
		slog.Time("arrival_time", clone.ArrivalTime),
		slog.Time("activity_end_time", clone.ActivityEndTime))
	resp := dto.ToCloneResponse(clone, now, s.clock)
	return &resp, nil
}

func (s *cloneService) GetClone(ctx context.Context, cloneID string) (*dto.CloneResponse, error) {
	clone, err := s.cloneRepo.FindCloneByID(ctx, cloneID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find clone", slog.String("clone_id", cloneID), slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("failed to find clone %s: %w", cloneID, err)
	}
	resp := dto.ToCloneResponse(*clone, s.now(), s.clock)
	return &resp, nil
}

func (s *cloneService) ListClones(ctx context.Context) (*dto.ListClonesResponse, error) {
	clones, err := s.cloneRepo.ListClones(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list clones", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list clones: %w", err)
	}
	return &dto.ListClonesResponse{Clones: dto.ToCloneResponses(clones, s.now(), s.clock)}, nil
}

// DismissClone ends a traveling or active clone early. Finished and already
// dismissed clones are rejected with a validation error.
func (s *cloneService) DismissClone(ctx context.Context, cloneID string, userID string) (*dto.CloneResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	clone, err := s.cloneRepo.FindCloneByID(ctx, cloneID)
	if err != nil {
		return nil, fmt.Errorf("failed to find clone %s: %w", cloneID, err)
	}
	if !lifecycle.CanTransition(clone.Status, domain.StatusDismissed) {
		return nil, fmt.Errorf("%w: clone %s is already %s", apperrors.ErrValidation, cloneID, clone.Status)
	}
	if userID == "" {
		userID = anonymousUser
	}

	now := s.now()
	dismissed := domain.StatusDismissed
	updated, err := s.cloneRepo.UpdateClone(ctx, cloneID, domain.CloneUpdate{
		Status:        &dismissed,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrTerminal) {
			// Finished between the read and the write.
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
		logger.Error("Failed to dismiss clone", slog.String("clone_id", cloneID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to dismiss clone %s: %w", cloneID, err)
	}

	logger.Info("Clone dismissed", slog.String("clone_id", cloneID), slog.String("previous_status", string(clone.Status)))
	resp := dto.ToCloneResponse(*updated, now, s.clock)
	return &resp, nil
}

func (s *cloneService) DeleteClone(ctx context.Context, cloneID string) error {
	if err := s.cloneRepo.DeleteClone(ctx, cloneID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to delete clone", slog.String("clone_id", cloneID), slog.String("error", err.Error()))
		}
		return fmt.Errorf("failed to delete clone %s: %w", cloneID, err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("Clone deleted", slog.String("clone_id", cloneID))
	return nil
}

// GetTripReport summarises a clone's journal: entries and spend per simulated
// day, plus the closing summary once written.
func (s *cloneService) GetTripReport(ctx context.Context, cloneID string) (*dto.TripReport, error) {
	clone, err := s.cloneRepo.FindCloneByID(ctx, cloneID)
	if err != nil {
		return nil, fmt.Errorf("failed to find clone %s: %w", cloneID, err)
	}
	entries, err := s.journalRepo.ListJournalEntries(ctx, domain.JournalFilter{CloneID: &cloneID})
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to load journal for report", slog.String("clone_id", cloneID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}

	report := &dto.TripReport{
		CloneID:     clone.CloneID,
		Name:        clone.Name,
		Destination: clone.Destination,
		Status:      clone.Status,
		EntryCount:  len(entries),
		TotalSpend:  clone.TotalSpend,
		SpendByDay:  []dto.DaySpend{},
		GeneratedAt: s.now(),
	}

	byDay := make(map[int]*dto.DaySpend)
	for _, e := range entries {
		d, ok := byDay[e.Day]
		if !ok {
			d = &dto.DaySpend{Day: e.Day, Spend: decimal.Zero}
			byDay[e.Day] = d
		}
		d.Entries++
		d.Spend = d.Spend.Add(e.Cost)
		if e.Moment == domain.MomentSummary {
			msg := e.Message
			report.Summary = &msg
		}
	}
	for _, d := range byDay {
		report.SpendByDay = append(report.SpendByDay, *d)
	}
	sort.Slice(report.SpendByDay, func(i, j int) bool {
		return report.SpendByDay[i].Day < report.SpendByDay[j].Day
	})
	return report, nil
}
