// Package accrual computes entitlements and service-year boundaries. Every
// function takes the evaluation date explicitly; nothing here reads the clock.
package accrual

import (
	"sort"
	"time"

	"go-leave/internal/shared/dateutil"
)

// Step grants Days from FromYear completed service years onward.
type Step struct {
	FromYear int
	Days     int
}

// Schedule is a seniority table sorted by FromYear.
type Schedule []Step

func NewSchedule(steps []Step) Schedule {
	s := make(Schedule, len(steps))
	copy(s, steps)
	sort.Slice(s, func(i, j int) bool { return s[i].FromYear < s[j].FromYear })
	return s
}

// DaysFor returns the entitlement of the last step at or below year.
func (s Schedule) DaysFor(year int) int {
	days := 0
	for _, step := range s {
		if step.FromYear > year {
			break
		}
		days = step.Days
	}
	return days
}

type Period struct {
	Start time.Time
	End   time.Time
}

func (p Period) Contains(d time.Time) bool {
	d = dateutil.Truncate(d)
	return !d.Before(p.Start) && !d.After(p.End)
}

// Rule is how a leave type earns days. SeniorityScaled types follow the
// schedule; otherwise FixedDays applies, and a nil FixedDays means the type
// has no configured entitlement.
type Rule struct {
	SeniorityScaled bool
	FixedDays       *int
}

type Calculator struct {
	schedule          Schedule
	eligibilityMonths int
}

func NewCalculator(schedule Schedule, eligibilityMonths int) *Calculator {
	return &Calculator{schedule: schedule, eligibilityMonths: eligibilityMonths}
}

func (c *Calculator) EligibilityMonths() int {
	return c.eligibilityMonths
}

// CompletedYears counts whole anniversaries between hire and asOf.
func (c *Calculator) CompletedYears(hire, asOf time.Time) int {
	hire, asOf = dateutil.Truncate(hire), dateutil.Truncate(asOf)
	if asOf.Before(hire) {
		return 0
	}
	years := asOf.Year() - hire.Year()
	if asOf.Month() < hire.Month() || (asOf.Month() == hire.Month() && asOf.Day() < hire.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// MonthsOfService counts whole months between hire and asOf.
func (c *Calculator) MonthsOfService(hire, asOf time.Time) int {
	hire, asOf = dateutil.Truncate(hire), dateutil.Truncate(asOf)
	if asOf.Before(hire) {
		return 0
	}
	months := (asOf.Year()-hire.Year())*12 + int(asOf.Month()-hire.Month())
	if asOf.Day() < hire.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// IsEligible reports whether the employee has reached first eligibility.
func (c *Calculator) IsEligible(hire, asOf time.Time) bool {
	return !dateutil.Truncate(asOf).Before(c.eligibilityStart(hire))
}

// MaxAnniversaryYear is the highest anniversary year reached at asOf. The
// second result is false before first eligibility.
func (c *Calculator) MaxAnniversaryYear(hire, asOf time.Time) (int, bool) {
	if !c.IsEligible(hire, asOf) {
		return 0, false
	}
	return c.CompletedYears(hire, asOf), true
}

// Period returns the service window of anniversary year N. Year 0 opens at
// first eligibility rather than at hire.
func (c *Calculator) Period(hire time.Time, year int) Period {
	hire = dateutil.Truncate(hire)
	start := hire.AddDate(year, 0, 0)
	if year == 0 {
		start = c.eligibilityStart(hire)
	}
	return Period{
		Start: start,
		End:   hire.AddDate(year+1, 0, -1),
	}
}

// YearContaining returns the anniversary year whose period holds d.
func (c *Calculator) YearContaining(hire, d time.Time) (int, bool) {
	year, ok := c.MaxAnniversaryYear(hire, d)
	if !ok {
		return 0, false
	}
	return year, c.Period(hire, year).Contains(d)
}

func (c *Calculator) SeniorityDays(year int) int {
	return c.schedule.DaysFor(year)
}

// Entitlement returns the days an annual-type balance grants for the given
// anniversary year. The second result is false when the rule grants nothing.
func (c *Calculator) Entitlement(rule Rule, year int) (int, bool) {
	if rule.SeniorityScaled {
		return c.schedule.DaysFor(year), true
	}
	if rule.FixedDays == nil {
		return 0, false
	}
	return *rule.FixedDays, true
}

// EventEntitlement returns the fixed grant of an event-triggered type,
// falling back to the requested days when the type carries no constant.
func (c *Calculator) EventEntitlement(rule Rule, requestedDays int) int {
	if rule.FixedDays != nil {
		return *rule.FixedDays
	}
	return requestedDays
}

// EventPeriod anchors an event-based balance to its trigger window.
func (c *Calculator) EventPeriod(start, end time.Time) Period {
	return Period{Start: dateutil.Truncate(start), End: dateutil.Truncate(end)}
}

func (c *Calculator) eligibilityStart(hire time.Time) time.Time {
	return dateutil.Truncate(hire).AddDate(0, c.eligibilityMonths, 0)
}
