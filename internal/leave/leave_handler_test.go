package leave_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-leave/internal/leave"
	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiMeta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Meta  *apiMeta        `json:"meta"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeLeaveService struct {
	submitFn     func(ctx context.Context, actorID string, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error)
	transitionFn func(ctx context.Context, actorID, id string, req leave.TransitionLeaveRequest) (leave.LeaveResponse, error)
	approveFn    func(ctx context.Context, actorID, id string) (leave.LeaveResponse, error)
	rejectFn     func(ctx context.Context, actorID, id, rejectionReason string) (leave.LeaveResponse, error)
	cancelFn     func(ctx context.Context, actorID, id string) (leave.LeaveResponse, error)
	getByIDFn    func(ctx context.Context, id string) (leave.LeaveResponse, error)
	listFn       func(ctx context.Context, employeeID, status string) ([]leave.LeaveResponse, error)
}

func (f *fakeLeaveService) Submit(ctx context.Context, actorID string, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
	return f.submitFn(ctx, actorID, req)
}
func (f *fakeLeaveService) Transition(ctx context.Context, actorID, id string, req leave.TransitionLeaveRequest) (leave.LeaveResponse, error) {
	return f.transitionFn(ctx, actorID, id, req)
}
func (f *fakeLeaveService) Approve(ctx context.Context, actorID, id string) (leave.LeaveResponse, error) {
	return f.approveFn(ctx, actorID, id)
}
func (f *fakeLeaveService) Reject(ctx context.Context, actorID, id, rejectionReason string) (leave.LeaveResponse, error) {
	return f.rejectFn(ctx, actorID, id, rejectionReason)
}
func (f *fakeLeaveService) Cancel(ctx context.Context, actorID, id string) (leave.LeaveResponse, error) {
	return f.cancelFn(ctx, actorID, id)
}
func (f *fakeLeaveService) GetByID(ctx context.Context, id string) (leave.LeaveResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeLeaveService) ListByEmployee(ctx context.Context, employeeID, status string) ([]leave.LeaveResponse, error) {
	return f.listFn(ctx, employeeID, status)
}

func newRouter(svc leave.Service, actorID string) *gin.Engine {
	h := leave.NewHandler(svc)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextActorID, actorID)
		c.Next()
	})
	r.POST("/leave-requests", h.Submit)
	r.GET("/leave-requests/:id", h.GetByID)
	r.POST("/leave-requests/:id/transition", h.Transition)
	r.POST("/leave-requests/:id/approve", h.Approve)
	r.POST("/leave-requests/:id/reject", h.Reject)
	r.POST("/leave-requests/:id/cancel", h.Cancel)
	r.GET("/employees/:id/leave-requests", h.ListByEmployee)
	return r
}

func TestLeaveHandler_Submit(t *testing.T) {
	actorID := uuid.NewString()
	employeeID := uuid.NewString()
	leaveTypeID := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		svc := &fakeLeaveService{
			submitFn: func(_ context.Context, aid string, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, actorID, aid)
				assert.Equal(t, employeeID, req.EmployeeID)
				assert.Equal(t, "2024-07-01", req.StartDate)
				return leave.LeaveResponse{ID: uuid.NewString(), EmployeeID: req.EmployeeID, Status: leave.StatusPending, RequestedDays: 10}, nil
			},
		}

		body := `{"employee_id":"` + employeeID + `","leave_type_id":"` + leaveTypeID + `","start_date":"2024-07-01","end_date":"2024-07-12"}`
		w := httptest.NewRecorder()
		newRouter(svc, actorID).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(body)))

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, leave.StatusPending, got.Status)
		assert.Equal(t, 10, got.RequestedDays)
	})

	t.Run("missing leave type", func(t *testing.T) {
		w := httptest.NewRecorder()
		body := `{"employee_id":"` + employeeID + `","start_date":"2024-07-01","end_date":"2024-07-12"}`
		newRouter(&fakeLeaveService{}, actorID).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})

	t.Run("overlap maps to conflict", func(t *testing.T) {
		svc := &fakeLeaveService{
			submitFn: func(context.Context, string, leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrLeaveOverlap
			},
		}
		body := `{"employee_id":"` + employeeID + `","leave_type_id":"` + leaveTypeID + `","start_date":"2024-07-01","end_date":"2024-07-12"}`
		w := httptest.NewRecorder()
		newRouter(svc, actorID).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(body)))

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "CONFLICT", env.Error.Code)
	})
}

func TestLeaveHandler_Transition(t *testing.T) {
	actorID := uuid.NewString()
	leaveID := uuid.NewString()

	t.Run("passes status and reason", func(t *testing.T) {
		svc := &fakeLeaveService{
			transitionFn: func(_ context.Context, aid, id string, req leave.TransitionLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, actorID, aid)
				assert.Equal(t, leaveID, id)
				assert.Equal(t, leave.StatusRejected, req.Status)
				if assert.NotNil(t, req.RejectionReason) {
					assert.Equal(t, "overlaps audit", *req.RejectionReason)
				}
				return leave.LeaveResponse{ID: id, Status: req.Status, RejectionReason: req.RejectionReason}, nil
			},
		}
		w := httptest.NewRecorder()
		body := `{"status":"REJECTED","rejection_reason":"overlaps audit"}`
		newRouter(svc, actorID).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leave-requests/"+leaveID+"/transition", strings.NewReader(body)))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown status is rejected by binding", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter(&fakeLeaveService{}, actorID).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leave-requests/"+leaveID+"/transition", strings.NewReader(`{"status":"PENDING"}`)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid transition", func(t *testing.T) {
		svc := &fakeLeaveService{
			transitionFn: func(context.Context, string, string, leave.TransitionLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
			},
		}
		w := httptest.NewRecorder()
		newRouter(svc, actorID).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leave-requests/"+leaveID+"/transition", strings.NewReader(`{"status":"APPROVED"}`)))

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INVALID_TRANSITION", env.Error.Code)
	})
}

func TestLeaveHandler_Shortcuts(t *testing.T) {
	actorID := uuid.NewString()
	leaveID := uuid.NewString()

	svc := &fakeLeaveService{
		approveFn: func(_ context.Context, aid, id string) (leave.LeaveResponse, error) {
			assert.Equal(t, actorID, aid)
			return leave.LeaveResponse{ID: id, Status: leave.StatusApproved}, nil
		},
		rejectFn: func(_ context.Context, _, id, reason string) (leave.LeaveResponse, error) {
			assert.Equal(t, "no cover", reason)
			return leave.LeaveResponse{ID: id, Status: leave.StatusRejected}, nil
		},
		cancelFn: func(context.Context, string, string) (leave.LeaveResponse, error) {
			return leave.LeaveResponse{}, leaveerrors.ErrConcurrencyConflict
		},
	}
	r := newRouter(svc, actorID)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leave-requests/"+leaveID+"/approve", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leave-requests/"+leaveID+"/reject", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leave-requests/"+leaveID+"/reject", strings.NewReader(`{"rejection_reason":"no cover"}`)))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leave-requests/"+leaveID+"/cancel", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "CONCURRENCY_CONFLICT", env.Error.Code)
}

func TestLeaveHandler_ListByEmployee(t *testing.T) {
	employeeID := uuid.NewString()

	svc := &fakeLeaveService{
		listFn: func(_ context.Context, eid, status string) ([]leave.LeaveResponse, error) {
			assert.Equal(t, employeeID, eid)
			assert.Equal(t, leave.StatusApproved, status)
			out := make([]leave.LeaveResponse, 3)
			for i := range out {
				out[i] = leave.LeaveResponse{ID: uuid.NewString(), Status: status}
			}
			return out, nil
		},
		getByIDFn: func(context.Context, string) (leave.LeaveResponse, error) {
			return leave.LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		},
	}
	r := newRouter(svc, uuid.NewString())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/"+employeeID+"/leave-requests?status=APPROVED&page=2&page_size=2", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	var got []leave.LeaveResponse
	assert.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Len(t, got, 1)
	if assert.NotNil(t, env.Meta) {
		assert.Equal(t, int64(3), env.Meta.Total)
		assert.Equal(t, 2, env.Meta.Page)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/leave-requests/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
