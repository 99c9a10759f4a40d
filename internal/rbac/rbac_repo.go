package rbac

import (
	"context"

	"go-leave/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RolePermission struct {
	Role     string `gorm:"type:varchar(50);primaryKey"`
	Resource string `gorm:"type:varchar(50);primaryKey"`
	Action   string `gorm:"type:varchar(50);primaryKey"`
}

func (RolePermission) TableName() string {
	return "role_permissions"
}

// RoleParent makes Role inherit every permission of Parent.
type RoleParent struct {
	Role   string `gorm:"type:varchar(50);primaryKey"`
	Parent string `gorm:"type:varchar(50);primaryKey"`
}

func (RoleParent) TableName() string {
	return "role_parents"
}

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetRolePermissions(ctx context.Context) ([]RolePermission, error)
	GetRoleParents(ctx context.Context) ([]RoleParent, error)
	SeedDefaults(ctx context.Context) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetRolePermissions(ctx context.Context) ([]RolePermission, error) {
	var rows []RolePermission
	err := r.db.WithContext(ctx).Order("role, resource, action").Find(&rows).Error
	return rows, err
}

func (r *repository) GetRoleParents(ctx context.Context) ([]RoleParent, error) {
	var rows []RoleParent
	err := r.db.WithContext(ctx).Order("role").Find(&rows).Error
	return rows, err
}

// SeedDefaults inserts the built-in policy, leaving operator edits alone.
func (r *repository) SeedDefaults(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(DefaultPermissions()).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(DefaultParents()).Error
	})
}

func DefaultPermissions() []RolePermission {
	return []RolePermission{
		{Role: domain.RoleEmployee, Resource: "leave_request", Action: "create"},
		{Role: domain.RoleEmployee, Resource: "leave_request", Action: "read"},
		{Role: domain.RoleEmployee, Resource: "leave_request", Action: "cancel"},
		{Role: domain.RoleEmployee, Resource: "balance", Action: "read"},
		{Role: domain.RoleEmployee, Resource: "leave_type", Action: "read"},
		{Role: domain.RoleManager, Resource: "leave_request", Action: "approve"},
		{Role: domain.RoleManager, Resource: "leave_request", Action: "reject"},
		{Role: domain.RoleHRAdmin, Resource: "leave_request", Action: "transition"},
		{Role: domain.RoleHRAdmin, Resource: "leave_type", Action: "define"},
		{Role: domain.RoleHRAdmin, Resource: "balance", Action: "ensure"},
		{Role: domain.RoleHRAdmin, Resource: "sweep", Action: "run"},
		{Role: domain.RoleHRAdmin, Resource: "rbac", Action: "reload"},
	}
}

func DefaultParents() []RoleParent {
	return []RoleParent{
		{Role: domain.RoleManager, Parent: domain.RoleEmployee},
		{Role: domain.RoleHRAdmin, Parent: domain.RoleManager},
	}
}
