package task

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"bloomfundr-settlement/internal/dto"
	ordermodel "bloomfundr-settlement/internal/model/order"

	"github.com/go-co-op/gocron/v2"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// memLedger serves fixed ledger sums. recent is what SumLedgerSince returns.
type memLedger struct {
	sums      func() []dto.RecipientAmount
	recent    []dto.RecipientAmount
	sumErr    error
	recentErr error
	since     time.Time
}

func (l *memLedger) SumLedger(ctx context.Context) ([]dto.RecipientAmount, error) {
	if l.sumErr != nil {
		return nil, l.sumErr
	}
	return l.sums(), nil
}

func (l *memLedger) SumLedgerSince(ctx context.Context, since time.Time) ([]dto.RecipientAmount, error) {
	l.since = since
	if l.recentErr != nil {
		return nil, l.recentErr
	}
	return l.recent, nil
}

type memEarnings struct {
	counters map[string][]dto.RecipientAmount
	listErr  error
	incrErr  error
	incr     []dto.RecipientAmount
}

func (m *memEarnings) ListEarnings(ctx context.Context, recipientType string) ([]dto.RecipientAmount, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.counters[recipientType], nil
}

func (m *memEarnings) IncrementEarnings(ctx context.Context, recipientType, recipientID string, delta decimal.Decimal) error {
	if m.incrErr != nil {
		return m.incrErr
	}
	m.incr = append(m.incr, dto.RecipientAmount{RecipientType: recipientType, RecipientID: recipientID, Amount: delta})
	rows := m.counters[recipientType]
	for i := range rows {
		if rows[i].RecipientID == recipientID {
			rows[i].Amount = rows[i].Amount.Add(delta)
		}
	}
	return nil
}

func (m *memEarnings) counter(recipientType, recipientID string) string {
	for _, c := range m.counters[recipientType] {
		if c.RecipientID == recipientID {
			return c.Amount.StringFixed(2)
		}
	}
	return ""
}

func ra(typ, id, amount string) dto.RecipientAmount {
	return dto.RecipientAmount{RecipientType: typ, RecipientID: id, Amount: d(amount)}
}

func fixture() (*memLedger, *memEarnings) {
	ledger := &memLedger{sums: func() []dto.RecipientAmount {
		return []dto.RecipientAmount{
			ra(ordermodel.RecipientFlorist, "f1", "120.5"),
			ra(ordermodel.RecipientFlorist, "f2", "10.00"),
			ra(ordermodel.RecipientOrganization, "o1", "80.000000"),
			ra(ordermodel.RecipientOrganization, "gone", "5.00"),
		}
	}}
	earnings := &memEarnings{counters: map[string][]dto.RecipientAmount{
		ordermodel.RecipientFlorist: {
			ra(ordermodel.RecipientFlorist, "f1", "100.50"),
			ra(ordermodel.RecipientFlorist, "f2", "10.00"),
			ra(ordermodel.RecipientFlorist, "f3", "7.25"),
		},
		ordermodel.RecipientOrganization: {
			ra(ordermodel.RecipientOrganization, "o1", "80.00"),
		},
	}}
	return ledger, earnings
}

func TestEarningsReconciler_ReportsDriftWithoutFix(t *testing.T) {
	ledger, earnings := fixture()
	r := NewEarningsReconciler(ledger, earnings, time.Minute, quietLogger())

	report, err := r.Run(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, 4, report.Checked)
	assert.Equal(t, 0, report.Fixed)
	assert.Empty(t, earnings.incr)
	require.Len(t, report.Drifts, 3)

	f1 := report.Drifts[0]
	assert.Equal(t, "f1", f1.RecipientID)
	assert.True(t, d("20.00").Equal(f1.Delta))
	f3 := report.Drifts[1]
	assert.Equal(t, "f3", f3.RecipientID)
	assert.True(t, d("-7.25").Equal(f3.Delta))
	gone := report.Drifts[2]
	assert.Equal(t, "gone", gone.RecipientID)
	assert.True(t, d("5").Equal(gone.Ledger))
	assert.False(t, gone.Fixed)
}

func TestEarningsReconciler_FixIncrementsByDelta(t *testing.T) {
	ledger, earnings := fixture()
	r := NewEarningsReconciler(ledger, earnings, time.Minute, quietLogger())

	report, err := r.Run(context.Background(), true)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Fixed)
	require.Len(t, earnings.incr, 2)
	assert.Equal(t, "f1", earnings.incr[0].RecipientID)
	assert.True(t, d("20").Equal(earnings.incr[0].Amount))
	assert.Equal(t, "f3", earnings.incr[1].RecipientID)
	assert.True(t, d("-7.25").Equal(earnings.incr[1].Amount))
}

func TestEarningsReconciler_FixSkipsRecipientsPaidWithinGrace(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	earnings := &memEarnings{counters: map[string][]dto.RecipientAmount{
		ordermodel.RecipientFlorist: {ra(ordermodel.RecipientFlorist, "f1", "100.00")},
	}}
	// The 52.20 payout row is in, its counter increment is not yet.
	ledger := &memLedger{
		sums:   func() []dto.RecipientAmount { return []dto.RecipientAmount{ra(ordermodel.RecipientFlorist, "f1", "152.20")} },
		recent: []dto.RecipientAmount{ra(ordermodel.RecipientFlorist, "f1", "52.20")},
	}
	r := NewEarningsReconciler(ledger, earnings, 5*time.Minute, quietLogger())
	r.now = func() time.Time { return now }

	report, err := r.Run(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, now.Add(-5*time.Minute), ledger.since)
	assert.Empty(t, earnings.incr)
	assert.Equal(t, 0, report.Fixed)
	assert.Equal(t, 1, report.Deferred)
	require.Len(t, report.Drifts, 1)
	assert.True(t, report.Drifts[0].Deferred)
	assert.False(t, report.Drifts[0].Fixed)

	// settlement finishes its own credit
	require.NoError(t, earnings.IncrementEarnings(context.Background(), ordermodel.RecipientFlorist, "f1", d("52.20")))
	assert.Equal(t, "152.20", earnings.counter(ordermodel.RecipientFlorist, "f1"))

	// once the row ages out the recipient is clean
	ledger.recent = nil
	report, err = r.Run(context.Background(), true)
	require.NoError(t, err)
	assert.Empty(t, report.Drifts)
	assert.Equal(t, "152.20", earnings.counter(ordermodel.RecipientFlorist, "f1"))
}

func TestEarningsReconciler_StaleDriftIsFixedNextToDeferred(t *testing.T) {
	ledger, earnings := fixture()
	ledger.recent = []dto.RecipientAmount{ra(ordermodel.RecipientFlorist, "f1", "20.00")}
	r := NewEarningsReconciler(ledger, earnings, time.Minute, quietLogger())

	report, err := r.Run(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Fixed)
	assert.Equal(t, 1, report.Deferred)
	require.Len(t, earnings.incr, 1)
	assert.Equal(t, "f3", earnings.incr[0].RecipientID)
	assert.Equal(t, "100.50", earnings.counter(ordermodel.RecipientFlorist, "f1"))
}

func TestEarningsReconciler_FixFailureIsReportedNotFatal(t *testing.T) {
	ledger, earnings := fixture()
	earnings.incrErr = errors.New("deadlock")
	r := NewEarningsReconciler(ledger, earnings, time.Minute, quietLogger())

	report, err := r.Run(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Fixed)
	for _, drift := range report.Drifts {
		assert.False(t, drift.Fixed)
	}
}

func TestEarningsReconciler_ReadErrors(t *testing.T) {
	_, earnings := fixture()
	broken := &memLedger{sumErr: errors.New("db down")}
	_, err := NewEarningsReconciler(broken, earnings, time.Minute, quietLogger()).Run(context.Background(), false)
	assert.ErrorIs(t, err, ErrReconcile)

	ledger, earnings := fixture()
	earnings.listErr = errors.New("db down")
	_, err = NewEarningsReconciler(ledger, earnings, time.Minute, quietLogger()).Run(context.Background(), false)
	assert.ErrorIs(t, err, ErrReconcile)

	ledger, earnings = fixture()
	ledger.recentErr = errors.New("db down")
	_, err = NewEarningsReconciler(ledger, earnings, time.Minute, quietLogger()).Run(context.Background(), true)
	assert.ErrorIs(t, err, ErrReconcile)
	assert.Empty(t, earnings.incr)
}

func TestEarningsReconcileJob_Execute(t *testing.T) {
	ledger, earnings := fixture()
	job := NewEarningsReconcileJob(NewEarningsReconciler(ledger, earnings, time.Minute, quietLogger()), time.Minute, true, quietLogger())

	assert.Equal(t, "earnings_reconciler", job.GetName())
	job.Execute()
	assert.Len(t, earnings.incr, 2)
}

type tickJob struct {
	ran chan struct{}
}

func (j *tickJob) GetName() string { return "tick" }

func (j *tickJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(20 * time.Millisecond)
}

func (j *tickJob) Execute() {
	select {
	case j.ran <- struct{}{}:
	default:
	}
}

func TestManager_RunsRegisteredJobs(t *testing.T) {
	m, err := NewManager(quietLogger())
	require.NoError(t, err)

	job := &tickJob{ran: make(chan struct{}, 1)}
	require.NoError(t, m.Register(job))
	assert.Equal(t, []string{"tick"}, m.Jobs())

	m.Start()
	defer m.Stop()
	select {
	case <-job.ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run")
	}
}
