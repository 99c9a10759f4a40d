package leavetype

import (
	"context"
	"encoding/json"
	"time"

	leavetypeerrors "go-leave/internal/leavetype/errors"
	"go-leave/internal/shared/dberr"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	LeaveTypeAllKey       = "leave_types:all"
	LeaveTypeDetailPrefix = "leave_types:detail:"

	DefaultCacheTTL = 10 * time.Minute
)

func GetLeaveTypeDetailKey(id string) string {
	return LeaveTypeDetailPrefix + id
}

//go:generate mockgen -source=leavetype_service.go -destination=mock/leavetype_service_mock.go -package=mock
type Service interface {
	GetByID(ctx context.Context, id string) (LeaveType, error)
	List(ctx context.Context) ([]LeaveTypeResponse, error)
	ListAnnual(ctx context.Context) ([]LeaveType, error)
	Define(ctx context.Context, id string, req DefineLeaveTypeRequest) (LeaveTypeResponse, error)
}

type service struct {
	db       *gorm.DB
	repo     Repository
	rdb      *redis.Client
	sf       *singleflight.Group
	resolver *Resolver
	ttl      time.Duration
	logger   *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, rdb *redis.Client, resolver *Resolver, ttl time.Duration, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavetype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavetype.service")
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &service{
		db:       db,
		repo:     repo,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		resolver: resolver,
		ttl:      ttl,
		logger:   l,
	}
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveType, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveType{}, leavetypeerrors.ErrInvalidLeaveTypeID
	}

	cacheKey := GetLeaveTypeDetailKey(id)
	var cached LeaveType
	if s.readCache(ctx, cacheKey, &cached) {
		return cached, nil
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		lt, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, mapRepositoryError(err)
		}
		s.writeCache(ctx, cacheKey, lt)
		return *lt, nil
	})
	if err != nil {
		return LeaveType{}, err
	}
	return v.(LeaveType), nil
}

func (s *service) List(ctx context.Context) ([]LeaveTypeResponse, error) {
	var cached []LeaveTypeResponse
	if s.readCache(ctx, LeaveTypeAllKey, &cached) {
		return cached, nil
	}

	v, err, _ := s.sf.Do(LeaveTypeAllKey, func() (interface{}, error) {
		types, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		resp := mapToListResponse(types)
		s.writeCache(ctx, LeaveTypeAllKey, resp)
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]LeaveTypeResponse), nil
}

// ListAnnual reads straight from storage; the sweep wants the current
// catalog rather than a cached one.
func (s *service) ListAnnual(ctx context.Context) ([]LeaveType, error) {
	return s.repo.FindByClassification(ctx, ClassificationAnnual)
}

// Define creates or replaces a leave-type definition. The classification is
// fixed here, from the request or from the name table, and is never derived
// again afterwards.
func (s *service) Define(ctx context.Context, id string, req DefineLeaveTypeRequest) (LeaveTypeResponse, error) {
	typeID, err := uuid.Parse(id)
	if err != nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidLeaveTypeID
	}

	classification := Classification(req.Classification)
	if classification == "" {
		classification = s.resolver.Classify(req.Name)
	}
	if !classification.Valid() {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidClassification
	}
	if req.SeniorityScaled && classification != ClassificationAnnual {
		return LeaveTypeResponse{}, leavetypeerrors.ErrSeniorityRequiresAnnual
	}

	s.logger.Debug("define leave type requested",
		zap.String("leave_type_id", id),
		zap.String("name", req.Name),
		zap.String("classification", string(classification)),
	)

	lt := LeaveType{
		ID:                typeID,
		Name:              req.Name,
		Description:       req.Description,
		IsPaid:            *req.IsPaid,
		RequiresApproval:  *req.RequiresApproval,
		MaxDaysPerYear:    req.MaxDaysPerYear,
		MaxDaysPerRequest: req.MaxDaysPerRequest,
		MinNoticeDays:     req.MinNoticeDays,
		EventDays:         req.EventDays,
		SeniorityScaled:   req.SeniorityScaled,
		Classification:    classification,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		existing, err := qtx.FindByID(ctx, id)
		if err != nil && !dberr.IsNotFound(err) {
			return err
		}
		if existing != nil {
			lt.CreatedAt = existing.CreatedAt
			if existing.Classification != classification {
				count, err := qtx.CountBalances(ctx, id)
				if err != nil {
					return err
				}
				if count > 0 {
					s.logger.Warn("define leave type reclassification rejected",
						zap.String("leave_type_id", id),
						zap.String("from", string(existing.Classification)),
						zap.String("to", string(classification)),
						zap.Int64("balances", count),
					)
					return leavetypeerrors.ErrReclassificationUnsupported
				}
			}
		}

		return mapRepositoryError(qtx.Save(ctx, &lt))
	})
	if err != nil {
		return LeaveTypeResponse{}, err
	}

	s.invalidate(ctx, id)
	s.logger.Info("define leave type success",
		zap.String("leave_type_id", id),
		zap.String("classification", string(classification)),
	)
	return mapToResponse(lt), nil
}

func (s *service) readCache(ctx context.Context, key string, dst any) bool {
	if s.rdb == nil {
		return false
	}
	cached, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(cached), dst) == nil
}

func (s *service) writeCache(ctx context.Context, key string, v any) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *service) invalidate(ctx context.Context, id string) {
	if s.rdb == nil {
		return
	}
	keys := []string{LeaveTypeAllKey, GetLeaveTypeDetailKey(id)}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		s.logger.Error("cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
