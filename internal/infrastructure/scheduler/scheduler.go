package scheduler

import (
	"github.com/robfig/cron/v3"

	"dukkan/pkg/logger"
)

// Job is a named periodic task.
type Job struct {
	Name string
	Spec string
	Run  func()
}

// Scheduler runs maintenance jobs such as lifting expired bans.
type Scheduler struct {
	cron *cron.Cron
	jobs []Job
}

func NewScheduler(jobs ...Job) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		jobs: jobs,
	}
}

func (s *Scheduler) Start() error {
	for _, job := range s.jobs {
		job := job
		_, err := s.cron.AddFunc(job.Spec, func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("Scheduled job %s panicked: %v", job.Name, r)
				}
			}()
			logger.Debug("Running scheduled job %s", job.Name)
			job.Run()
		})
		if err != nil {
			logger.Error("Failed to add cron job %s: %v", job.Name, err)
			return err
		}
	}

	s.cron.Start()
	logger.Info("Scheduler started with %d jobs", len(s.jobs))
	return nil
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	logger.Info("Stopping scheduler...")
	<-s.cron.Stop().Done()
	logger.Info("Scheduler stopped")
}
