package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"taxidesk/internal/models"
	"taxidesk/internal/repositories/interfaces"
	"taxidesk/internal/utils"
	"taxidesk/pkg/cache"
	"taxidesk/pkg/logger"
)

// DashboardStats is the payload behind the landing page tiles.
type DashboardStats struct {
	StatusCounts   map[models.BookingStatus]int64 `json:"status_counts"`
	Today          *interfaces.RevenueSummary     `json:"today"`
	Last30Days     *interfaces.RevenueSummary     `json:"last_30_days"`
	VisitsToday    int64                          `json:"visits_today"`
	UniqueVisitors int64                          `json:"unique_visitors"`
	TopPaths       []*interfaces.PathHit          `json:"top_paths"`
}

type AnalyticsService struct {
	bookingRepo interfaces.BookingRepository
	traceRepo   interfaces.IPTraceRepository
	cache       cache.Service
	logger      *logger.Logger
}

func NewAnalyticsService(bookingRepo interfaces.BookingRepository, traceRepo interfaces.IPTraceRepository, cacheService cache.Service, log *logger.Logger) *AnalyticsService {
	return &AnalyticsService{
		bookingRepo: bookingRepo,
		traceRepo:   traceRepo,
		cache:       cacheService,
		logger:      log.WithField("service", "analytics"),
	}
}

// Dashboard assembles the stats tiles, cached briefly since every session
// polls them. Vendor logins get only their own numbers.
func (s *AnalyticsService) Dashboard(ctx context.Context, vendorID *primitive.ObjectID) (*DashboardStats, error) {
	cacheKey := utils.CacheDashboardPrefix + "admin"
	if vendorID != nil {
		cacheKey = utils.CacheDashboardPrefix + vendorID.Hex()
	}

	var cached DashboardStats
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthAgo := now.AddDate(0, 0, -30)

	counts, err := s.bookingRepo.CountByStatus(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	today, err := s.bookingRepo.RevenueBetween(ctx, startOfDay, now, vendorID)
	if err != nil {
		return nil, err
	}
	last30, err := s.bookingRepo.RevenueBetween(ctx, monthAgo, now, vendorID)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		StatusCounts: counts,
		Today:        today,
		Last30Days:   last30,
	}

	// Traffic numbers are admin-only; vendor dashboards skip them.
	if vendorID == nil {
		if visits, err := s.traceRepo.CountSince(ctx, startOfDay); err == nil {
			stats.VisitsToday = visits
		}
		if unique, err := s.traceRepo.UniqueVisitorsSince(ctx, startOfDay); err == nil {
			stats.UniqueVisitors = unique
		}
		if paths, err := s.traceRepo.TopPaths(ctx, monthAgo, 10); err == nil {
			stats.TopPaths = paths
		}
	}

	if err := s.cache.Set(ctx, cacheKey, stats, utils.DashboardStatsTTL); err != nil {
		s.logger.WithError(err).Debug("failed to cache dashboard stats")
	}
	return stats, nil
}

// RecordTrace persists one request trace. Called from middleware on every
// dashboard hit; failures are swallowed so tracking never breaks a request.
func (s *AnalyticsService) RecordTrace(ctx context.Context, trace *models.IPTrace) {
	if err := s.traceRepo.Insert(ctx, trace); err != nil {
		s.logger.WithError(err).Debug("failed to record ip trace")
	}
}

func (s *AnalyticsService) ListTraces(ctx context.Context, params *utils.PaginationParams) ([]*models.IPTrace, int64, error) {
	return s.traceRepo.List(ctx, params)
}
