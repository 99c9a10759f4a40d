package employee

import (
	"time"

	"github.com/google/uuid"
)

// Employee is the leave engine's projection of the HR record. Only hire
// date and active status drive accrual.
type Employee struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TaxID     string    `gorm:"type:varchar(32);not null;uniqueIndex:uq_employee_tax_id"`
	FullName  string    `gorm:"type:varchar(200);not null"`
	HireDate  time.Time `gorm:"type:date;not null"`
	IsActive  bool      `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Employee) TableName() string {
	return "employees"
}
