// Package jobs provides scheduled background tasks for the tracking service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, seconds field enabled) and are
// managed through JobManager:
//
//	jobManager := jobs.NewJobManager(jobs.NewStageGaugeJob(counter, metrics, "*/30 * * * * *", logger))
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// StageGaugeJob counts parcels per lifecycle stage and publishes the counts as gauges.
// A failed refresh is logged and counted; the previous gauge values stay in place.
package jobs
