package task

import (
	"context"
	"fmt"
	"sort"
	"time"

	"bloomfundr-settlement/internal/constant"
	"bloomfundr-settlement/internal/dto"
	ordermodel "bloomfundr-settlement/internal/model/order"
	"bloomfundr-settlement/internal/utils"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var ErrReconcile = constant.NewError(constant.CodeReconcileFailed)

type LedgerReader interface {
	SumLedger(ctx context.Context) ([]dto.RecipientAmount, error)
	// SumLedgerSince totals only rows created at or after since.
	SumLedgerSince(ctx context.Context, since time.Time) ([]dto.RecipientAmount, error)
}

type EarningsStore interface {
	ListEarnings(ctx context.Context, recipientType string) ([]dto.RecipientAmount, error)
	IncrementEarnings(ctx context.Context, recipientType, recipientID string, delta decimal.Decimal) error
}

const defaultGrace = 5 * time.Minute

// EarningsReconciler compares each recipient's cached lifetime earnings with
// the sum of its pending and completed payout rows.
type EarningsReconciler struct {
	ledger   LedgerReader
	earnings EarningsStore
	grace    time.Duration
	now      func() time.Time
	log      *logrus.Logger
}

// NewEarningsReconciler builds a reconciler. Recipients with a payout row
// younger than grace are never fixed.
func NewEarningsReconciler(ledger LedgerReader, earnings EarningsStore, grace time.Duration, log *logrus.Logger) *EarningsReconciler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if grace <= 0 {
		grace = defaultGrace
	}
	return &EarningsReconciler{ledger: ledger, earnings: earnings, grace: grace, now: time.Now, log: log}
}

type recipientKey struct {
	recipientType string
	recipientID   string
}

// Run reports every drifted recipient. With fix set the counter is moved
// onto the ledger by an atomic increment of the difference.
//
// Settlement inserts a payout row before it credits the counter, and the
// ledger and the counters are read without a shared snapshot. A recipient
// with a row created inside the grace window may still have that credit in
// flight, so its drift is reported as deferred and left alone.
func (r *EarningsReconciler) Run(ctx context.Context, fix bool) (dto.ReconcileReport, error) {
	report := dto.ReconcileReport{Drifts: []dto.EarningsDrift{}}
	cutoff := r.now().Add(-r.grace)

	sums, err := r.ledger.SumLedger(ctx)
	if err != nil {
		return report, fmt.Errorf("%w: %v", ErrReconcile, err)
	}
	ledger := make(map[recipientKey]decimal.Decimal, len(sums))
	for _, s := range sums {
		ledger[recipientKey{s.RecipientType, s.RecipientID}] = utils.RoundCents(s.Amount)
	}

	seen := make(map[recipientKey]bool, len(ledger))
	for _, typ := range []string{ordermodel.RecipientFlorist, ordermodel.RecipientOrganization} {
		counters, err := r.earnings.ListEarnings(ctx, typ)
		if err != nil {
			return report, fmt.Errorf("%w: %v", ErrReconcile, err)
		}
		for _, c := range counters {
			key := recipientKey{c.RecipientType, c.RecipientID}
			seen[key] = true
			report.Checked++

			counter := utils.RoundCents(c.Amount)
			want := ledger[key]
			if counter.Equal(want) {
				continue
			}
			drift := dto.EarningsDrift{
				RecipientType: c.RecipientType,
				RecipientID:   c.RecipientID,
				Counter:       counter,
				Ledger:        want,
				Delta:         want.Sub(counter),
			}
			report.Drifts = append(report.Drifts, drift)
		}
	}

	// Read after the counters so a settlement that lands between the two
	// earlier reads is still caught here.
	if fix && len(report.Drifts) > 0 {
		recent, err := r.ledger.SumLedgerSince(ctx, cutoff)
		if err != nil {
			return report, fmt.Errorf("%w: %v", ErrReconcile, err)
		}
		inFlight := make(map[recipientKey]bool, len(recent))
		for _, s := range recent {
			inFlight[recipientKey{s.RecipientType, s.RecipientID}] = true
		}
		for i := range report.Drifts {
			drift := &report.Drifts[i]
			if inFlight[recipientKey{drift.RecipientType, drift.RecipientID}] {
				drift.Deferred = true
				report.Deferred++
				continue
			}
			drift.Fixed = r.fix(ctx, *drift)
			if drift.Fixed {
				report.Fixed++
			}
		}
	}

	// Payout rows whose recipient row is gone cannot be fixed, only reported.
	for key, amount := range ledger {
		if seen[key] {
			continue
		}
		report.Drifts = append(report.Drifts, dto.EarningsDrift{
			RecipientType: key.recipientType,
			RecipientID:   key.recipientID,
			Counter:       decimal.Zero,
			Ledger:        amount,
			Delta:         amount,
		})
	}
	sort.Slice(report.Drifts, func(i, j int) bool {
		a, b := report.Drifts[i], report.Drifts[j]
		if a.RecipientType != b.RecipientType {
			return a.RecipientType < b.RecipientType
		}
		return a.RecipientID < b.RecipientID
	})

	r.log.WithFields(logrus.Fields{
		"checked":  report.Checked,
		"drifts":   len(report.Drifts),
		"fixed":    report.Fixed,
		"deferred": report.Deferred,
	}).Info("[RECONCILE] earnings reconciliation finished")
	return report, nil
}

func (r *EarningsReconciler) fix(ctx context.Context, drift dto.EarningsDrift) bool {
	log := r.log.WithFields(logrus.Fields{
		"recipient": drift.RecipientType,
		"id":        drift.RecipientID,
		"counter":   drift.Counter.StringFixed(2),
		"ledger":    drift.Ledger.StringFixed(2),
	})
	if err := r.earnings.IncrementEarnings(ctx, drift.RecipientType, drift.RecipientID, drift.Delta); err != nil {
		log.WithError(err).Error("[RECONCILE] could not correct earnings counter")
		return false
	}
	log.Warn("[RECONCILE] earnings counter corrected")
	return true
}
