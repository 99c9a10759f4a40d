package workday

import (
	"time"

	"github.com/google/uuid"
)

type Holiday struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:uq_holiday_date" json:"date"`
	Name      string    `gorm:"type:varchar(200);not null" json:"name"`
	Recurring bool      `gorm:"not null" json:"recurring"`
	CreatedAt time.Time `json:"created_at"`
}

func (Holiday) TableName() string {
	return "holidays"
}

// Matches reports whether the holiday falls on d. Recurring holidays match
// the same month and day of any year.
func (h Holiday) Matches(d time.Time) bool {
	if h.Recurring {
		return h.Date.Month() == d.Month() && h.Date.Day() == d.Day()
	}
	return h.Date.Equal(d)
}
