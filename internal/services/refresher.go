package services

import (
	"context"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type refreshable interface {
	Refresh(ctx context.Context) (*LoadReport, error)
}

// Refresher runs the pipeline on a cron schedule. A run that is still going when the next one
// is due makes the next one be skipped.
type Refresher struct {
	pipeline refreshable
	cron     *cron.Cron
	ctx      context.Context
}

func NewRefresher(ctx context.Context, pipeline refreshable, schedule string) (*Refresher, error) {

	r := &Refresher{
		pipeline: pipeline,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		ctx:      ctx,
	}

	if _, err := r.cron.AddFunc(schedule, r.refresh); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Refresher) Start() {
	r.cron.Start()
	log.Infof("refresher started, next run at %v", r.cron.Entries()[0].Next)
}

// Stop waits for a running refresh to finish.
func (r *Refresher) Stop() {
	<-r.cron.Stop().Done()
}

func (r *Refresher) refresh() {
	if r.ctx.Err() != nil {
		return
	}

	report, err := r.pipeline.Refresh(r.ctx)
	if err != nil {
		log.Errorf("scheduled refresh failed: %v", err)
		return
	}
	log.Infof("scheduled refresh %s completed: %d companies, %d vacancies", report.LoadID, report.Companies, report.Vacancies)
}
