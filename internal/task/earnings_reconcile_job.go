package task

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"
)

// EarningsReconcileJob runs the reconciler on a fixed interval.
type EarningsReconcileJob struct {
	reconciler *EarningsReconciler
	interval   time.Duration
	fix        bool
	timeout    time.Duration
	log        *logrus.Logger
}

func NewEarningsReconcileJob(reconciler *EarningsReconciler, interval time.Duration, fix bool, log *logrus.Logger) *EarningsReconcileJob {
	return &EarningsReconcileJob{
		reconciler: reconciler,
		interval:   interval,
		fix:        fix,
		timeout:    interval,
		log:        log,
	}
}

func (j *EarningsReconcileJob) GetName() string {
	return "earnings_reconciler"
}

func (j *EarningsReconcileJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(j.interval)
}

func (j *EarningsReconcileJob) Execute() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()
	if _, err := j.reconciler.Run(ctx, j.fix); err != nil {
		j.log.WithError(err).Error("[RECONCILE] scheduled run failed")
	}
}
