package jobs

import (
	"artistsite/internal/services"
	"context"
	"time"

	logger "github.com/Bparsons0904/goLogger"
)

// SessionSweepJob drops expired sessions from stores that keep them in
// process memory.
type SessionSweepJob struct {
	sweeper  services.SessionSweeper
	now      func() time.Time
	log      logger.Logger
	schedule services.Schedule
}

func NewSessionSweepJob(sweeper services.SessionSweeper, schedule services.Schedule) *SessionSweepJob {
	return &SessionSweepJob{
		sweeper:  sweeper,
		now:      time.Now,
		log:      logger.New("sessionSweepJob"),
		schedule: schedule,
	}
}

func (j *SessionSweepJob) Name() string {
	return "HourlySessionSweep"
}

func (j *SessionSweepJob) Execute(ctx context.Context) error {
	removed := j.sweeper.Sweep(j.now())
	if removed > 0 {
		j.log.Function("Execute").Info("Removed expired sessions", "count", removed)
	}
	return nil
}

func (j *SessionSweepJob) Schedule() services.Schedule {
	return j.schedule
}
