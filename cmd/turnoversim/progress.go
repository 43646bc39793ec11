package main

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// progressReporter logs how far a run has come on a fixed schedule.
type progressReporter struct {
	cron *cron.Cron
	s    *scenario
}

func newProgressReporter(
	s *scenario,
	every time.Duration,
) (*progressReporter, error) {
	r := &progressReporter{
		cron: cron.New(),
		s:    s,
	}

	if _, err := r.cron.AddFunc("@every "+every.String(), r.report); err != nil {
		return nil, fmt.Errorf("schedule progress report: %w", err)
	}

	return r, nil
}

func (r *progressReporter) start() {
	r.cron.Start()
}

// stop waits for a running report to finish.
func (r *progressReporter) stop() {
	<-r.cron.Stop().Done()
}

func (r *progressReporter) report() {
	st := r.s.stats.Stats()

	r.s.logger.Printf("%s: step %d of %d, %d ticks, mean expression %.4f",
		r.s.host.Name(), r.s.host.StepsDone(), r.s.cfg.Run.Steps,
		st.Ticks, st.MeanExpression)
}
