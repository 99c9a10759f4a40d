package leavetype_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-leave/internal/leavetype"
	leavetypeerrors "go-leave/internal/leavetype/errors"
	leavetypeMock "go-leave/internal/leavetype/mock"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(svc leavetype.Service) *gin.Engine {
	h := leavetype.NewHandler(svc)
	r := gin.New()
	r.GET("/leave-types", h.GetAll)
	r.GET("/leave-types/:id", h.GetByID)
	r.PUT("/leave-types/:id", h.Define)
	return r
}

func TestLeaveTypeHandler_Define(t *testing.T) {
	id := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := leavetypeMock.NewMockService(ctrl)
		svc.EXPECT().
			Define(gomock.Any(), id, gomock.Any()).
			DoAndReturn(func(_ any, _ string, req leavetype.DefineLeaveTypeRequest) (leavetype.LeaveTypeResponse, error) {
				assert.Equal(t, "Paternidad", req.Name)
				assert.Equal(t, 14, *req.EventDays)
				return leavetype.LeaveTypeResponse{ID: id, Name: req.Name, Classification: "EVENT_REPEATABLE"}, nil
			})

		w := httptest.NewRecorder()
		body := `{"name":"Paternidad","is_paid":true,"requires_approval":false,"event_days":14}`
		newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/leave-types/"+id, strings.NewReader(body)))

		assert.Equal(t, http.StatusOK, w.Code)
		var env apiEnvelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		var got leavetype.LeaveTypeResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, "EVENT_REPEATABLE", got.Classification)
	})

	t.Run("unknown classification fails binding", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := leavetypeMock.NewMockService(ctrl)

		w := httptest.NewRecorder()
		body := `{"name":"Paternidad","is_paid":true,"requires_approval":false,"classification":"SABBATICAL"}`
		newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/leave-types/"+id, strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("reclassification conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := leavetypeMock.NewMockService(ctrl)
		svc.EXPECT().Define(gomock.Any(), id, gomock.Any()).Return(leavetype.LeaveTypeResponse{}, leavetypeerrors.ErrReclassificationUnsupported)

		w := httptest.NewRecorder()
		body := `{"name":"Vacaciones","is_paid":true,"requires_approval":true,"classification":"ONE_TIME"}`
		newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/leave-types/"+id, strings.NewReader(body)))

		assert.Equal(t, http.StatusConflict, w.Code)
		var env apiEnvelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, "RECLASSIFICATION_UNSUPPORTED", env.Error.Code)
	})
}

func TestLeaveTypeHandler_Read(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := leavetypeMock.NewMockService(ctrl)
	id := uuid.New()

	svc.EXPECT().List(gomock.Any()).Return([]leavetype.LeaveTypeResponse{{ID: id.String(), Name: "Vacaciones"}}, nil)
	svc.EXPECT().GetByID(gomock.Any(), id.String()).Return(leavetype.LeaveType{ID: id, Name: "Vacaciones", Classification: leavetype.ClassificationAnnual}, nil)
	svc.EXPECT().GetByID(gomock.Any(), "nope").Return(leavetype.LeaveType{}, leavetypeerrors.ErrInvalidLeaveTypeID)

	r := newRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/leave-types", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/leave-types/"+id.String(), nil))
	assert.Equal(t, http.StatusOK, w.Code)
	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var got leavetype.LeaveTypeResponse
	assert.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "ANNUAL", got.Classification)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/leave-types/nope", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
