package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/uniqverse/marketplace-api/pkg/apiErrors"
)

const (
	CronJobTypeExchangeRates = "exchange-rates"
	CronJobTypeAll           = "all"
)

// SyncJob is a scheduled job that can also be started by hand.
type SyncJob interface {
	TriggerManualSync() bool
	GetStatus() map[string]any
}

// CronJobServices holds the jobs that can be run manually.
type CronJobServices struct {
	ExchangeRateSync SyncJob
}

func (s CronJobServices) jobs() map[string]SyncJob {
	jobs := map[string]SyncJob{}
	if s.ExchangeRateSync != nil {
		jobs[CronJobTypeExchangeRates] = s.ExchangeRateSync
	}
	return jobs
}

// RunCronJob starts a job in the background. Jobs already running are left alone.
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		jobs := services.jobs()

		var selected map[string]SyncJob
		switch job, ok := jobs[cronType]; {
		case cronType == CronJobTypeAll:
			selected = jobs
		case ok:
			selected = map[string]SyncJob{cronType: job}
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "unknown cron job type", map[string]any{
				"accepted": []string{CronJobTypeExchangeRates, CronJobTypeAll},
			})
			return
		}

		started := make(map[string]bool, len(selected))
		for name, job := range selected {
			started[name] = job.TriggerManualSync()
		}

		logrus.WithFields(logrus.Fields{
			"type":    cronType,
			"started": started,
		}).Info("cron job triggered manually")

		writeSuccess(w, r, http.StatusAccepted, map[string]any{
			"type":    cronType,
			"started": started,
		})
	}
}

func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		for name, job := range services.jobs() {
			status[name] = job.GetStatus()
		}

		writeSuccess(w, r, http.StatusOK, status)
	}
}
