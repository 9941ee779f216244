package task

import (
	"fmt"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"
)

// Job is one scheduled unit of work.
type Job interface {
	GetName() string
	GetSchedule() gocron.JobDefinition
	Execute()
}

// Manager owns the gocron scheduler and the jobs registered on it.
type Manager struct {
	scheduler gocron.Scheduler
	log       *logrus.Logger
}

func NewManager(log *logrus.Logger) (*Manager, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	return &Manager{scheduler: s, log: log}, nil
}

// Register adds a job. A run still in progress when the next tick comes is
// not started twice.
func (m *Manager) Register(job Job) error {
	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("register job %s: %w", job.GetName(), err)
	}
	m.log.WithField("job", job.GetName()).Info("[TASK] job registered")
	return nil
}

func (m *Manager) Start() {
	m.scheduler.Start()
	m.log.Info("[TASK] task manager started")
}

func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		m.log.WithError(err).Error("[TASK] scheduler shutdown failed")
	}
	m.log.Info("[TASK] task manager stopped")
}

// Jobs lists the names of registered jobs.
func (m *Manager) Jobs() []string {
	jobs := m.scheduler.Jobs()
	names := make([]string, 0, len(jobs))
	for _, j := range jobs {
		names = append(names, j.Name())
	}
	return names
}
