package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"taxidesk/internal/middleware"
	"taxidesk/internal/models"
	"taxidesk/internal/repositories/interfaces"
	"taxidesk/internal/services"
	"taxidesk/internal/utils"
	"taxidesk/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(&logger.Config{Level: "error", Format: "text"})
	require.NoError(t, err)
	return log
}

// scopeBookingRepo serves a single stored booking and records the calls the
// handler lets through.
type scopeBookingRepo struct {
	stored          *models.Booking
	mutated         bool
	bulkScope       *primitive.ObjectID
	bulkScopeCalled bool
}

func (s *scopeBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	s.mutated = true
	return nil
}

func (s *scopeBookingRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	if s.stored == nil || s.stored.ID != id {
		return nil, interfaces.ErrNotFound
	}
	return s.stored, nil
}

func (s *scopeBookingRepo) GetByNumber(ctx context.Context, bookingNumber string) (*models.Booking, error) {
	return nil, interfaces.ErrNotFound
}

func (s *scopeBookingRepo) UpdateWithVersion(ctx context.Context, id primitive.ObjectID, version int64, updates map[string]interface{}) error {
	s.mutated = true
	return nil
}

func (s *scopeBookingRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mutated = true
	return nil
}

func (s *scopeBookingRepo) BulkDelete(ctx context.Context, ids []primitive.ObjectID, vendorID *primitive.ObjectID) (int64, error) {
	s.bulkScopeCalled = true
	s.bulkScope = vendorID
	return int64(len(ids)), nil
}

func (s *scopeBookingRepo) List(ctx context.Context, params *utils.PaginationParams, filter *interfaces.BookingListFilter) ([]*models.Booking, int64, error) {
	return nil, 0, nil
}

func (s *scopeBookingRepo) CountByStatus(ctx context.Context, vendorID *primitive.ObjectID) (map[models.BookingStatus]int64, error) {
	return nil, nil
}

func (s *scopeBookingRepo) RevenueBetween(ctx context.Context, from, to time.Time, vendorID *primitive.ObjectID) (*interfaces.RevenueSummary, error) {
	return &interfaces.RevenueSummary{}, nil
}

// scopedBookingRouter mounts the per-id booking routes behind a stub identity
// that mimics a vendor (or admin, when scope is nil) login.
func scopedBookingRouter(t *testing.T, repo *scopeBookingRepo, scope *primitive.ObjectID) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := services.NewBookingService(repo, nil, nil, nil, nil, nil, nil, nil, testLogger(t))
	handler := NewBookingHandler(svc, testLogger(t))

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserRole, models.RoleVendor)
		if scope != nil {
			c.Set(middleware.ContextVendorID, *scope)
		}
		c.Next()
	})
	router.GET("/bookings/:id", handler.Get)
	router.PUT("/bookings/:id", handler.Update)
	router.DELETE("/bookings/:id", handler.Delete)
	router.POST("/bookings/:id/start", handler.StartTrip)
	router.POST("/bookings/:id/cancel", handler.Cancel)
	router.GET("/bookings/:id/commission", handler.Commission)
	router.POST("/bookings/bulk-delete", handler.BulkDelete)
	return router
}

func serveJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestBookingRoutesRejectOtherVendors(t *testing.T) {
	owner := primitive.NewObjectID()
	intruder := primitive.NewObjectID()
	repo := &scopeBookingRepo{stored: &models.Booking{
		ID:       primitive.NewObjectID(),
		VendorID: &owner,
		Status:   models.BookingStatusCreated,
	}}
	router := scopedBookingRouter(t, repo, &intruder)
	id := repo.stored.ID.Hex()

	cases := []struct {
		method string
		path   string
		body   string
	}{
		{"GET", "/bookings/" + id, ""},
		{"PUT", "/bookings/" + id, `{"version":0}`},
		{"DELETE", "/bookings/" + id, ""},
		{"POST", "/bookings/" + id + "/start", `{"version":0,"odometer":100}`},
		{"POST", "/bookings/" + id + "/cancel", `{"version":0}`},
		{"GET", "/bookings/" + id + "/commission", ""},
	}
	for _, tc := range cases {
		w := serveJSON(router, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusForbidden, w.Code, "%s %s", tc.method, tc.path)
	}
	assert.False(t, repo.mutated)
}

func TestBookingRoutesAllowOwningVendor(t *testing.T) {
	owner := primitive.NewObjectID()
	repo := &scopeBookingRepo{stored: &models.Booking{
		ID:       primitive.NewObjectID(),
		VendorID: &owner,
		Status:   models.BookingStatusCompleted,
	}}
	router := scopedBookingRouter(t, repo, &owner)

	w := serveJSON(router, "GET", "/bookings/"+repo.stored.ID.Hex()+"/commission", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBookingBulkDeleteCarriesVendorScope(t *testing.T) {
	scope := primitive.NewObjectID()
	repo := &scopeBookingRepo{}
	router := scopedBookingRouter(t, repo, &scope)

	body := `{"ids":["` + primitive.NewObjectID().Hex() + `"]}`
	w := serveJSON(router, "POST", "/bookings/bulk-delete", body)

	assert.Equal(t, http.StatusOK, w.Code)
	require.True(t, repo.bulkScopeCalled)
	require.NotNil(t, repo.bulkScope)
	assert.Equal(t, scope, *repo.bulkScope)
}
