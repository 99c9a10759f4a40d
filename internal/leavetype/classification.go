package leavetype

import (
	"strings"

	leavetypeerrors "go-leave/internal/leavetype/errors"

	"golang.org/x/text/cases"
)

type Classification string

const (
	ClassificationAnnual          Classification = "ANNUAL"
	ClassificationOneTime         Classification = "ONE_TIME"
	ClassificationEventRepeatable Classification = "EVENT_REPEATABLE"
)

func (c Classification) Valid() bool {
	_, ok := policies[c]
	return ok
}

// Policy is the ledger behaviour attached to a classification.
type Policy struct {
	// EventBased balances are opened per occurrence instead of per
	// anniversary year, with entitled = pending = the type's fixed grant.
	EventBased bool
	// OncePerEmployment gates submission on the event registry.
	OncePerEmployment bool
	// RevokeOnWithdraw deletes the event when a pending request is rejected
	// or cancelled. The event's date is free for a new request afterwards.
	RevokeOnWithdraw bool
	// RevokeOnApprovedCancel returns the benefit when an approved request
	// is cancelled.
	RevokeOnApprovedCancel bool
}

var policies = map[Classification]Policy{
	ClassificationAnnual:          {},
	ClassificationOneTime:         {EventBased: true, OncePerEmployment: true, RevokeOnWithdraw: true, RevokeOnApprovedCancel: true},
	ClassificationEventRepeatable: {EventBased: true, RevokeOnWithdraw: true},
}

func PolicyFor(c Classification) (Policy, error) {
	p, ok := policies[c]
	if !ok {
		return Policy{}, leavetypeerrors.ErrInvalidClassification
	}
	return p, nil
}

// Resolve returns the stored classification of a definition. It never looks
// at the name; names are only consulted once, by Resolver, when the type is
// defined.
func Resolve(def LeaveType) (Classification, error) {
	if !def.Classification.Valid() {
		return "", leavetypeerrors.ErrInvalidClassification
	}
	return def.Classification, nil
}

// Resolver maps leave-type names to a classification using the configured
// table. Unknown names are ANNUAL.
type Resolver struct {
	table map[string]Classification
	fold  cases.Caser
}

func NewResolver(table map[string]string) *Resolver {
	fold := cases.Fold()
	t := make(map[string]Classification, len(table))
	for name, class := range table {
		t[fold.String(strings.TrimSpace(name))] = Classification(strings.ToUpper(class))
	}
	return &Resolver{table: t, fold: fold}
}

func (r *Resolver) Classify(name string) Classification {
	if c, ok := r.table[r.fold.String(strings.TrimSpace(name))]; ok {
		return c
	}
	return ClassificationAnnual
}
