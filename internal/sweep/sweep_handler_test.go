package sweep_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-leave/internal/bootstrap"
	"go-leave/internal/shared/dateutil"
	"go-leave/internal/sweep"
	"go-leave/internal/sweep/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type recordingAudit struct {
	entries []bootstrap.AuditLog
}

func (r *recordingAudit) Log(_ context.Context, entry bootstrap.AuditLog) {
	r.entries = append(r.entries, entry)
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestSweepHandler_Run(t *testing.T) {
	today := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	newRouter := func(svc sweep.Service, audit bootstrap.AuditLogger) *gin.Engine {
		r := gin.New()
		r.POST("/sweeps", sweep.NewHandler(svc, dateutil.FixedClock(today), audit).Run)
		return r
	}

	t.Run("defaults to today and audits", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mock.NewMockService(ctrl)
		audit := &recordingAudit{}
		svc.EXPECT().Run(gomock.Any(), today).Return(sweep.Result{Employees: 12, BalancesCreated: 5}, nil)

		w := httptest.NewRecorder()
		newRouter(svc, audit).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sweeps", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var env apiEnvelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		var got sweep.RunSweepResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, "2024-06-01", got.AsOf)
		assert.Equal(t, 5, got.BalancesCreated)

		if assert.Len(t, audit.entries, 1) {
			assert.Equal(t, "sweep.run", audit.entries[0].Action)
			assert.Equal(t, 12, audit.entries[0].Meta["employees"])
		}
	})

	t.Run("explicit as_of", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mock.NewMockService(ctrl)
		asOf := time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC)
		svc.EXPECT().Run(gomock.Any(), asOf).Return(sweep.Result{}, nil)

		w := httptest.NewRecorder()
		newRouter(svc, nil).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sweeps", strings.NewReader(`{"as_of":"2023-12-31"}`)))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("bad as_of", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mock.NewMockService(ctrl)

		w := httptest.NewRecorder()
		newRouter(svc, nil).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sweeps", strings.NewReader(`{"as_of":"31/12/2023"}`)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("service failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mock.NewMockService(ctrl)
		audit := &recordingAudit{}
		svc.EXPECT().Run(gomock.Any(), today).Return(sweep.Result{}, errors.New("db gone"))

		w := httptest.NewRecorder()
		newRouter(svc, audit).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sweeps", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Empty(t, audit.entries)
	})
}
