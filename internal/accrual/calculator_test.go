package accrual_test

import (
	"testing"
	"time"

	"go-leave/internal/accrual"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }

func newCalculator() *accrual.Calculator {
	return accrual.NewCalculator(accrual.NewSchedule([]accrual.Step{
		{FromYear: 20, Days: 28},
		{FromYear: 0, Days: 12},
		{FromYear: 1, Days: 14},
		{FromYear: 2, Days: 16},
		{FromYear: 3, Days: 18},
		{FromYear: 4, Days: 20},
		{FromYear: 5, Days: 22},
		{FromYear: 10, Days: 24},
		{FromYear: 15, Days: 26},
	}), 6)
}

func TestSchedule_DaysFor(t *testing.T) {
	c := newCalculator()

	cases := map[int]int{0: 12, 1: 14, 4: 20, 5: 22, 9: 22, 10: 24, 14: 24, 15: 26, 19: 26, 20: 28, 35: 28}
	for year, want := range cases {
		assert.Equal(t, want, c.SeniorityDays(year), "year %d", year)
	}

	prev := 0
	for year := 0; year <= 40; year++ {
		days := c.SeniorityDays(year)
		assert.GreaterOrEqual(t, days, prev)
		prev = days
	}
}

func TestCalculator_CompletedYears(t *testing.T) {
	c := newCalculator()
	hire := date(2018, time.March, 15)

	assert.Equal(t, 6, c.CompletedYears(hire, date(2024, time.June, 1)))
	assert.Equal(t, 5, c.CompletedYears(hire, date(2024, time.March, 14)))
	assert.Equal(t, 6, c.CompletedYears(hire, date(2024, time.March, 15)))
	assert.Equal(t, 0, c.CompletedYears(hire, date(2017, time.January, 1)))
}

func TestCalculator_MonthsOfService(t *testing.T) {
	c := newCalculator()
	hire := date(2023, time.January, 31)

	assert.Equal(t, 0, c.MonthsOfService(hire, date(2023, time.February, 28)))
	assert.Equal(t, 2, c.MonthsOfService(hire, date(2023, time.March, 31)))
	assert.Equal(t, 1, c.MonthsOfService(hire, date(2023, time.March, 30)))
	assert.Equal(t, 12, c.MonthsOfService(hire, date(2024, time.January, 31)))
}

func TestCalculator_Period(t *testing.T) {
	c := newCalculator()
	hire := date(2018, time.March, 15)

	year0 := c.Period(hire, 0)
	assert.Equal(t, date(2018, time.September, 15), year0.Start)
	assert.Equal(t, date(2019, time.March, 14), year0.End)

	year6 := c.Period(hire, 6)
	assert.Equal(t, date(2024, time.March, 15), year6.Start)
	assert.Equal(t, date(2025, time.March, 14), year6.End)
	assert.True(t, year6.Contains(date(2024, time.June, 1)))
	assert.False(t, year6.Contains(date(2025, time.March, 15)))

	for year := 1; year < 10; year++ {
		prev := c.Period(hire, year-1)
		cur := c.Period(hire, year)
		assert.Equal(t, prev.End.AddDate(0, 0, 1), cur.Start, "year %d", year)
	}
}

func TestCalculator_MaxAnniversaryYear(t *testing.T) {
	c := newCalculator()
	hire := date(2024, time.January, 10)

	t.Run("before first eligibility", func(t *testing.T) {
		_, ok := c.MaxAnniversaryYear(hire, date(2024, time.July, 9))
		assert.False(t, ok)
	})

	t.Run("at first eligibility", func(t *testing.T) {
		year, ok := c.MaxAnniversaryYear(hire, date(2024, time.July, 10))
		assert.True(t, ok)
		assert.Equal(t, 0, year)
	})

	t.Run("scenario hired 2018-03-15", func(t *testing.T) {
		year, ok := c.MaxAnniversaryYear(date(2018, time.March, 15), date(2024, time.June, 1))
		assert.True(t, ok)
		assert.Equal(t, 6, year)
		assert.Equal(t, 22, c.SeniorityDays(year))
	})
}

func TestCalculator_YearContaining(t *testing.T) {
	c := newCalculator()
	hire := date(2018, time.March, 15)

	year, ok := c.YearContaining(hire, date(2020, time.April, 2))
	assert.True(t, ok)
	assert.Equal(t, 2, year)

	_, ok = c.YearContaining(hire, date(2018, time.April, 1))
	assert.False(t, ok)
}

func TestCalculator_Entitlement(t *testing.T) {
	c := newCalculator()

	days, ok := c.Entitlement(accrual.Rule{SeniorityScaled: true}, 3)
	assert.True(t, ok)
	assert.Equal(t, 18, days)

	days, ok = c.Entitlement(accrual.Rule{FixedDays: intPtr(30)}, 3)
	assert.True(t, ok)
	assert.Equal(t, 30, days)

	_, ok = c.Entitlement(accrual.Rule{}, 3)
	assert.False(t, ok)

	assert.Equal(t, 84, c.EventEntitlement(accrual.Rule{FixedDays: intPtr(84)}, 60))
	assert.Equal(t, 4, c.EventEntitlement(accrual.Rule{}, 4))
}
