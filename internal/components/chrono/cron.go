package chrono

import (
	"fmt"
	"time"

	"spot-scraper/internal/components/telemetry"

	"github.com/robfig/cron/v3"
)

// Scheduler runs jobs on cron specs read in the portal's timezone. A job still running
// when its next tick arrives is skipped instead of stacked, so a slow crawl never
// overlaps the next one.
type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler(tel telemetry.API) *Scheduler {
	logger := cronLogger{tel: tel}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(portal),
			cron.WithLogger(logger),
			cron.WithChain(
				cron.Recover(logger),
				cron.SkipIfStillRunning(logger),
			),
		),
	}
}

func parse(spec string) (cron.Schedule, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("schedule %q: %w", spec, err)
	}
	return schedule, nil
}

// Validate reports whether spec would be accepted by Schedule without starting anything.
func (s *Scheduler) Validate(spec string) error {
	_, err := parse(spec)
	return err
}

// Schedule registers job under a standard 5 field spec (or a descriptor like @every 6h),
// starts the scheduler and returns when job will first run.
func (s *Scheduler) Schedule(spec string, job func()) (time.Time, error) {
	schedule, err := parse(spec)
	if err != nil {
		return time.Time{}, err
	}
	s.cron.Schedule(schedule, cron.FuncJob(job))
	s.cron.Start()
	return schedule.Next(time.Now().In(portal)), nil
}

// Stop stops scheduling and waits for running jobs to return.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

type cronLogger struct {
	tel telemetry.API
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.tel.ReportDebug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.tel.ReportBroken("scheduler", append([]any{fmt.Errorf("%s: %w", msg, err)}, keysAndValues...)...)
}
