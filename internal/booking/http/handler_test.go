package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mellowtide/homecare-admin-backend/internal/booking"
)

// fakeService stubs booking.Service with per-method hooks so each test
// controls exactly one behavior.
type fakeService struct {
	createFn         func(booking.CreateRequest) (*booking.Booking, error)
	checkConflictsFn func(booking.ConflictCandidate) ([]booking.Conflict, error)
	createRecurFn    func(booking.RecurringRequest) ([]*booking.Booking, error)
	updateStatusFn   func(string, booking.Status) (*booking.Booking, error)
}

func (f *fakeService) Create(_ context.Context, req booking.CreateRequest) (*booking.Booking, error) {
	return f.createFn(req)
}
func (f *fakeService) GetByID(context.Context, string) (*booking.Booking, error) {
	return nil, booking.ErrNotFound
}
func (f *fakeService) List(context.Context, booking.Filter) ([]*booking.Booking, int, error) {
	return nil, 0, nil
}
func (f *fakeService) Update(context.Context, string, booking.UpdateRequest) (*booking.Booking, error) {
	return nil, booking.ErrNotFound
}
func (f *fakeService) UpdateStatus(_ context.Context, id string, status booking.Status) (*booking.Booking, error) {
	return f.updateStatusFn(id, status)
}
func (f *fakeService) UpdatePayment(context.Context, string, booking.PaymentRequest) (*booking.Booking, error) {
	return nil, booking.ErrNotFound
}
func (f *fakeService) Cancel(context.Context, string) error { return nil }
func (f *fakeService) CheckConflicts(_ context.Context, cand booking.ConflictCandidate) ([]booking.Conflict, error) {
	if f.checkConflictsFn == nil {
		return nil, nil
	}
	return f.checkConflictsFn(cand)
}
func (f *fakeService) CreateRecurringGroup(_ context.Context, req booking.RecurringRequest) ([]*booking.Booking, error) {
	return f.createRecurFn(req)
}
func (f *fakeService) GetRecurringGroup(context.Context, string) ([]*booking.Booking, error) {
	return nil, booking.ErrGroupNotFound
}

func newTestRouter(svc booking.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewHandler(svc))
	return r
}

func executeJSON(t *testing.T, r *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func tod(t *testing.T, s string) booking.TimeOfDay {
	t.Helper()
	v, err := booking.ParseTimeOfDay(s)
	require.NoError(t, err)
	return v
}

func TestCheckConflictsEndpoint(t *testing.T) {
	staffID := "3f1c8de2-5b0a-4a7e-9c3d-0b1f2a3c4d5e"
	excludeID := "7c9e6679-7425-40de-944b-e07fc1f90ae7"

	t.Run("returns overlapping bookings", func(t *testing.T) {
		svc := &fakeService{
			checkConflictsFn: func(cand booking.ConflictCandidate) ([]booking.Conflict, error) {
				assert.Equal(t, excludeID, cand.ExcludeBookingID)
				return []booking.Conflict{{
					BookingID:    "b1",
					CustomerName: "Dana Whitfield",
					ServiceName:  "Deep Clean",
					StartTime:    tod(t, "09:00"),
					EndTime:      tod(t, "11:00"),
					Status:       booking.StatusConfirmed,
				}}, nil
			},
		}
		r := newTestRouter(svc)

		w := executeJSON(t, r, "POST", "/v1/bookings/check-conflicts", CheckConflictsRequest{
			StaffID:          &staffID,
			Date:             "2026-09-14",
			StartTime:        "10:00",
			EndTime:          "12:00",
			ExcludeBookingID: excludeID,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp CheckConflictsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.HasConflicts)
		require.Len(t, resp.Conflicts, 1)
		assert.Equal(t, "09:00", resp.Conflicts[0].StartTime)
		assert.Equal(t, "Dana Whitfield", resp.Conflicts[0].CustomerName)
	})

	t.Run("empty result reports no conflicts", func(t *testing.T) {
		svc := &fakeService{
			checkConflictsFn: func(booking.ConflictCandidate) ([]booking.Conflict, error) {
				return nil, nil
			},
		}
		r := newTestRouter(svc)

		w := executeJSON(t, r, "POST", "/v1/bookings/check-conflicts", CheckConflictsRequest{
			StaffID:   &staffID,
			Date:      "2026-09-14",
			StartTime: "11:00",
			EndTime:   "13:00",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp CheckConflictsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.HasConflicts)
		assert.NotNil(t, resp.Conflicts)
	})

	t.Run("rejects malformed time", func(t *testing.T) {
		svc := &fakeService{}
		r := newTestRouter(svc)

		w := executeJSON(t, r, "POST", "/v1/bookings/check-conflicts", CheckConflictsRequest{
			StaffID:   &staffID,
			Date:      "2026-09-14",
			StartTime: "25:00",
			EndTime:   "13:00",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCreateBookingEndpoint(t *testing.T) {
	customerID := "0a1b2c3d-4e5f-6071-8293-a4b5c6d7e8f9"
	serviceID := "9f8e7d6c-5b4a-3928-1706-f5e4d3c2b1a0"

	t.Run("time conflict maps to 409 with the overlap list", func(t *testing.T) {
		svc := &fakeService{
			createFn: func(booking.CreateRequest) (*booking.Booking, error) {
				return nil, booking.ErrTimeConflict
			},
			checkConflictsFn: func(booking.ConflictCandidate) ([]booking.Conflict, error) {
				return []booking.Conflict{{
					BookingID:    "b1",
					CustomerName: "Dana Whitfield",
					StartTime:    tod(t, "09:00"),
					EndTime:      tod(t, "11:00"),
					Status:       booking.StatusConfirmed,
				}}, nil
			},
		}
		r := newTestRouter(svc)

		w := executeJSON(t, r, "POST", "/v1/bookings", CreateBookingRequest{
			CustomerID:  customerID,
			ServiceID:   serviceID,
			Date:        "2026-09-14",
			StartTime:   "10:00",
			EndTime:     "12:00",
			PricingMode: "package",
		})
		require.Equal(t, http.StatusConflict, w.Code)

		var resp struct {
			Error     string             `json:"error"`
			Conflicts []ConflictResponse `json:"conflicts"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Conflicts, 1)
		assert.Equal(t, "b1", resp.Conflicts[0].BookingID)
	})

	t.Run("missing fields map to 400", func(t *testing.T) {
		svc := &fakeService{}
		r := newTestRouter(svc)

		w := executeJSON(t, r, "POST", "/v1/bookings", CreateBookingRequest{
			CustomerID: customerID,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCreateRecurringEndpoint(t *testing.T) {
	customerID := "0a1b2c3d-4e5f-6071-8293-a4b5c6d7e8f9"
	serviceID := "9f8e7d6c-5b4a-3928-1706-f5e4d3c2b1a0"

	t.Run("date validation problems come back as details", func(t *testing.T) {
		svc := &fakeService{
			createRecurFn: func(booking.RecurringRequest) ([]*booking.Booking, error) {
				return nil, &booking.DateValidationError{
					Messages: []string{"must select exactly 4 dates (have 2)"},
				}
			},
		}
		r := newTestRouter(svc)

		w := executeJSON(t, r, "POST", "/v1/bookings/recurring", CreateRecurringRequest{
			CustomerID:  customerID,
			ServiceID:   serviceID,
			StartTime:   "10:00",
			EndTime:     "12:00",
			PricingMode: "package",
			Frequency:   4,
			Mode:        "custom",
			Dates:       []string{"2026-09-20", "2026-10-20"},
		})
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp struct {
			Error   string   `json:"error"`
			Details []string `json:"details"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "validation failed", resp.Error)
		require.Len(t, resp.Details, 1)
		assert.Contains(t, resp.Details[0], "exactly 4 dates")
	})

	t.Run("created group echoes sequence and totals", func(t *testing.T) {
		groupID := "11111111-2222-3333-4444-555555555555"
		svc := &fakeService{
			createRecurFn: func(req booking.RecurringRequest) ([]*booking.Booking, error) {
				mk := func(seq int, date time.Time, cents int64) *booking.Booking {
					return &booking.Booking{
						ID:               fmt.Sprintf("bk-%d", seq),
						CustomerID:       req.CustomerID,
						ServiceID:        req.ServiceID,
						Date:             date,
						StartTime:        req.StartTime,
						EndTime:          req.EndTime,
						Status:           booking.StatusPending,
						PricingMode:      req.PricingMode,
						PriceCents:       cents,
						PaymentStatus:    booking.PaymentUnpaid,
						RecurringGroupID: &groupID,
						RecurringSeq:     seq,
						RecurringTotal:   2,
						RecurringPattern: "custom",
					}
				}
				return []*booking.Booking{
					mk(1, time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC), 2501),
					mk(2, time.Date(2026, 11, 3, 0, 0, 0, 0, time.UTC), 2500),
				}, nil
			},
		}
		r := newTestRouter(svc)

		price := int64(5001)
		w := executeJSON(t, r, "POST", "/v1/bookings/recurring", CreateRecurringRequest{
			CustomerID:  customerID,
			ServiceID:   serviceID,
			StartTime:   "10:00",
			EndTime:     "12:00",
			PricingMode: "custom",
			PriceCents:  &price,
			Frequency:   2,
			Mode:        "custom",
			Dates:       []string{"2026-11-03", "2026-09-20"},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp RecurringGroupResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, groupID, resp.GroupID)
		assert.Equal(t, 2, resp.Total)
		assert.Equal(t, int64(5001), resp.TotalCents)
		require.Len(t, resp.Bookings, 2)
		assert.Equal(t, "2026-09-20", resp.Bookings[0].Date)
	})
}

func TestUpdateStatusEndpoint(t *testing.T) {
	id := "0a1b2c3d-4e5f-6071-8293-a4b5c6d7e8f9"

	t.Run("terminal booking maps to 400", func(t *testing.T) {
		svc := &fakeService{
			updateStatusFn: func(string, booking.Status) (*booking.Booking, error) {
				return nil, booking.ErrCancelledTerminal
			},
		}
		r := newTestRouter(svc)

		w := executeJSON(t, r, "PATCH", "/v1/bookings/"+id+"/status", UpdateStatusRequest{Status: "confirmed"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown status rejected by binding", func(t *testing.T) {
		svc := &fakeService{}
		r := newTestRouter(svc)

		w := executeJSON(t, r, "PATCH", "/v1/bookings/"+id+"/status", UpdateStatusRequest{Status: "archived"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
