package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-leave/internal/domain"
	"go-leave/internal/middleware"
	"go-leave/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeEnforcer struct {
	allowed bool
	err     error
	got     domain.EnforceRequest
}

func (f *fakeEnforcer) Enforce(req domain.EnforceRequest) (bool, error) {
	f.got = req
	return f.allowed, f.err
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestActorFromHeaders(t *testing.T) {
	actorID := uuid.New().String()

	newRouter := func() *gin.Engine {
		r := gin.New()
		r.Use(middleware.ActorFromHeaders())
		r.GET("/whoami", func(c *gin.Context) {
			ctx := c.Request.Context()
			c.JSON(http.StatusOK, gin.H{
				"actor": contextutil.GetActorID(ctx),
				"role":  contextutil.GetActorRole(ctx),
			})
		})
		return r
	}

	t.Run("success", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set(middleware.HeaderActorID, actorID)
		req.Header.Set(middleware.HeaderActorRole, domain.RoleManager)

		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), actorID)
		assert.Contains(t, w.Body.String(), domain.RoleManager)
	})

	t.Run("negative missing headers", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("negative malformed actor", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set(middleware.HeaderActorID, "bob")
		req.Header.Set(middleware.HeaderActorRole, domain.RoleEmployee)

		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequestID(t *testing.T) {
	newRouter := func() *gin.Engine {
		r := gin.New()
		r.Use(middleware.RequestID(), middleware.ActorFromHeaders())
		r.GET("/rid", func(c *gin.Context) {
			c.String(http.StatusOK, contextutil.GetRequestID(c.Request.Context()))
		})
		return r
	}

	t.Run("adopts caller id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/rid", nil)
		req.Header.Set(middleware.HeaderRequestID, "req-42")
		req.Header.Set(middleware.HeaderActorID, uuid.NewString())
		req.Header.Set(middleware.HeaderActorRole, domain.RoleEmployee)

		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "req-42", w.Body.String())
		assert.Equal(t, "req-42", w.Header().Get(middleware.HeaderRequestID))
	})

	t.Run("replaces oversized id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/rid", nil)
		req.Header.Set(middleware.HeaderRequestID, strings.Repeat("x", 65))
		req.Header.Set(middleware.HeaderActorID, uuid.NewString())
		req.Header.Set(middleware.HeaderActorRole, domain.RoleEmployee)

		newRouter().ServeHTTP(w, req)

		_, err := uuid.Parse(w.Body.String())
		assert.NoError(t, err)
	})

	t.Run("error envelope carries the id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/rid", nil)
		req.Header.Set(middleware.HeaderRequestID, "req-43")

		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"request_id":"req-43"`)
	})
}

func TestRBACAuthorize(t *testing.T) {
	actorID := uuid.New().String()

	run := func(enforcer *fakeEnforcer) *httptest.ResponseRecorder {
		r := gin.New()
		r.Use(middleware.ActorFromHeaders())
		r.POST("/sweeps", middleware.RBACAuthorize(enforcer, "sweep", "run"), func(c *gin.Context) {
			c.Status(http.StatusAccepted)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/sweeps", nil)
		req.Header.Set(middleware.HeaderActorID, actorID)
		req.Header.Set(middleware.HeaderActorRole, domain.RoleHRAdmin)
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("allowed", func(t *testing.T) {
		enforcer := &fakeEnforcer{allowed: true}
		w := run(enforcer)

		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Equal(t, domain.EnforceRequest{ActorID: actorID, Role: domain.RoleHRAdmin, Resource: "sweep", Action: "run"}, enforcer.got)
	})

	t.Run("negative forbidden", func(t *testing.T) {
		w := run(&fakeEnforcer{allowed: false})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("negative enforcer error", func(t *testing.T) {
		w := run(&fakeEnforcer{err: errors.New("boom")})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestRateLimitByActor(t *testing.T) {
	r := gin.New()
	r.Use(middleware.ActorFromHeaders(), middleware.RateLimitByActor(0.001, 1))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(actor string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(middleware.HeaderActorID, actor)
		req.Header.Set(middleware.HeaderActorRole, domain.RoleEmployee)
		r.ServeHTTP(w, req)
		return w.Code
	}

	first := uuid.New().String()
	assert.Equal(t, http.StatusOK, send(first))
	assert.Equal(t, http.StatusTooManyRequests, send(first))
	assert.Equal(t, http.StatusOK, send(uuid.New().String()))
}

func TestIdempotency(t *testing.T) {
	actorID := uuid.New().String()
	idempKey := "submit-1"
	cacheKey := middleware.IdempotencyKey("/leave-requests", actorID, idempKey)
	lockKey := cacheKey + ":lock"

	newRouter := func(t *testing.T, mockRedis func(redismock.ClientMock)) (*gin.Engine, redismock.ClientMock, *int) {
		rdb, mock := redismock.NewClientMock()
		mockRedis(mock)
		calls := 0

		r := gin.New()
		r.Use(middleware.ActorFromHeaders(), middleware.Idempotency(rdb))
		r.POST("/leave-requests", func(c *gin.Context) {
			calls++
			c.Data(http.StatusCreated, "application/json", []byte(`{"ok":true}`))
		})
		return r, mock, &calls
	}

	send := func(r *gin.Engine) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/leave-requests", nil)
		req.Header.Set(middleware.HeaderActorID, actorID)
		req.Header.Set(middleware.HeaderActorRole, domain.RoleEmployee)
		req.Header.Set("Idempotency-Key", idempKey)
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("first request stores the response", func(t *testing.T) {
		r, mock, calls := newRouter(t, func(m redismock.ClientMock) {
			m.ExpectGet(cacheKey).RedisNil()
			m.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
			m.ExpectSet(cacheKey, []byte(`{"status":201,"body":{"ok":true}}`), 24*time.Hour).SetVal("OK")
			m.ExpectDel(lockKey).SetVal(1)
		})

		w := send(r)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, *calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("replay skips the handler", func(t *testing.T) {
		r, mock, calls := newRouter(t, func(m redismock.ClientMock) {
			m.ExpectGet(cacheKey).SetVal(`{"status":201,"body":{"ok":true}}`)
		})

		w := send(r)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "true", w.Header().Get("Idempotent-Replayed"))
		assert.JSONEq(t, `{"ok":true}`, w.Body.String())
		assert.Equal(t, 0, *calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative concurrent duplicate", func(t *testing.T) {
		r, mock, calls := newRouter(t, func(m redismock.ClientMock) {
			m.ExpectGet(cacheKey).RedisNil()
			m.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(false)
		})

		w := send(r)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, 0, *calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
