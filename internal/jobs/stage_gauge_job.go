package jobs

import (
	"context"
	"time"

	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/core/domain/model/parcel"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// DefaultStageGaugeSpec refreshes the gauges every 30 seconds.
const DefaultStageGaugeSpec = "*/30 * * * * *"

type StageCounter interface {
	Handle(ctx context.Context, query queries.CountParcelsByStageQuery) (map[parcel.Status]int64, error)
}

type StageRecorder interface {
	SetStageCounts(counts map[parcel.Status]int64)
	StageRefreshFailed()
}

// StageGaugeJob publishes the number of parcels per stage.
type StageGaugeJob struct {
	counter  StageCounter
	recorder StageRecorder
	spec     string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *log.Entry
}

func NewStageGaugeJob(counter StageCounter, recorder StageRecorder, spec string, logger *log.Entry) *StageGaugeJob {
	if spec == "" {
		spec = DefaultStageGaugeSpec
	}
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	return &StageGaugeJob{
		counter:  counter,
		recorder: recorder,
		spec:     spec,
		timeout:  10 * time.Second,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.WithField("component", "stage_gauge_job"),
	}
}

// Start schedules the refresh and runs it once immediately.
func (j *StageGaugeJob) Start() error {
	if _, err := j.cron.AddFunc(j.spec, func() {
		j.refresh(context.Background())
	}); err != nil {
		return err
	}

	j.refresh(context.Background())
	j.cron.Start()
	j.logger.WithField("spec", j.spec).Info("Stage gauge job started")
	return nil
}

// Stop waits for a running refresh to finish.
func (j *StageGaugeJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Stage gauge job stopped")
}

func (j *StageGaugeJob) refresh(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	counts, err := j.counter.Handle(ctx, queries.NewCountParcelsByStageQuery())
	if err != nil {
		j.recorder.StageRefreshFailed()
		j.logger.WithError(err).Error("Stage gauge refresh failed")
		return
	}

	j.recorder.SetStageCounts(counts)
	j.logger.WithField("counts", len(counts)).Debug("Stage gauges refreshed")
}
