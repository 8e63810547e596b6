package services

import (
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"talentfolio-backend/internal/apperr"
	"talentfolio-backend/internal/models"
	"talentfolio-backend/internal/supabase"
	"talentfolio-backend/internal/trigger"
)

// taskRetries is how many attempts a runner API call gets before the job is
// marked failed.
const taskRetries = 3

// TaskService queues background work on the external task runner and keeps
// the job rows in sync with what the runner reports back.
type TaskService struct {
	db      *supabase.DatabaseClient
	trigger *trigger.Client
	events  *supabase.EventsClient
	logger  *zap.Logger
}

func NewTaskService(db *supabase.DatabaseClient, triggerClient *trigger.Client, events *supabase.EventsClient, logger *zap.Logger) *TaskService {
	return &TaskService{
		db:      db,
		trigger: triggerClient,
		events:  events,
		logger:  logger,
	}
}

// StartPortfolioAnalysis queues an analysis run over everything a creator
// has published. One active job per portfolio at a time.
func (s *TaskService) StartPortfolioAnalysis(userID uuid.UUID, creator *models.Creator) (*models.AnalysisJob, error) {
	portfolioID := uuid.NullUUID{UUID: creator.ID, Valid: true}
	return s.startAnalysis(userID, creator.ID, portfolioID, uuid.NullUUID{}, trigger.TaskPortfolioAnalysis, map[string]interface{}{
		"portfolio_id": creator.ID.String(),
		"user_id":      userID.String(),
	})
}

// StartProjectAnalysis queues an analysis run for a single project.
func (s *TaskService) StartProjectAnalysis(userID uuid.UUID, creatorID, projectID uuid.UUID) (*models.AnalysisJob, error) {
	target := uuid.NullUUID{UUID: projectID, Valid: true}
	return s.startAnalysis(userID, creatorID, uuid.NullUUID{}, target, trigger.TaskProjectAnalysis, map[string]interface{}{
		"project_id": projectID.String(),
		"user_id":    userID.String(),
	})
}

func (s *TaskService) startAnalysis(userID, creatorID uuid.UUID, portfolioID, projectID uuid.NullUUID, taskID string, payload map[string]interface{}) (*models.AnalysisJob, error) {
	if !s.trigger.Configured() {
		return nil, apperr.New(apperr.KindExternal, "Task runner is not configured")
	}

	active, err := s.db.ActiveJobExists(portfolioID, projectID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, apperr.New(apperr.KindConflict, "An analysis job is already running for this target")
	}

	job, err := s.db.CreateAnalysisJob(portfolioID, projectID, creatorID)
	if err != nil {
		return nil, err
	}

	payload["job_id"] = job.ID.String()
	var runID string
	err = s.trigger.RetryWithBackoff(func() error {
		var trErr error
		runID, trErr = s.trigger.TriggerTask(taskID, payload)
		return trErr
	}, taskRetries)
	if err != nil {
		// The row stays behind as a failed record rather than vanishing.
		if updErr := s.db.UpdateAnalysisJobStatus(job.ID, models.JobFailed, 0, "Failed to queue task"); updErr != nil {
			s.logger.Error("marking unqueued job failed", zap.Error(updErr))
		}
		return nil, apperr.Wrap(apperr.KindExternal, "Failed to queue analysis job", err)
	}

	s.logger.Info("analysis job queued",
		zap.String("job_id", job.ID.String()),
		zap.String("task", taskID),
		zap.String("run_id", runID),
	)
	s.events.PublishUserEvent(userID, "job:queued", supabase.JobQueuedPayload(job.ID, taskID))
	return job, nil
}

// CancelAnalysis flips an active job to cancelled. The runner is told
// best-effort; a run that already finished just ignores it.
func (s *TaskService) CancelAnalysis(job *models.AnalysisJob) error {
	if job.Status != models.JobPending && job.Status != models.JobProcessing {
		return apperr.New(apperr.KindConflict, "Job is no longer active")
	}

	if err := s.db.UpdateAnalysisJobStatus(job.ID, models.JobCancelled, job.Progress, "Cancelled by user"); err != nil {
		return err
	}
	return nil
}

// StartScrape queues a website scraping run and records it.
func (s *TaskService) StartScrape(userID uuid.UUID, req models.StartScrapeRequest) (*models.ScrapeLog, error) {
	if !s.trigger.Configured() {
		return nil, apperr.New(apperr.KindExternal, "Task runner is not configured")
	}

	var projectID uuid.NullUUID
	if req.ProjectID != "" {
		parsed, err := uuid.Parse(req.ProjectID)
		if err != nil {
			return nil, apperr.New(apperr.KindValidation, "invalid project_id")
		}
		projectID = uuid.NullUUID{UUID: parsed, Valid: true}
	}

	log, err := s.db.CreateScrapeLog(userID, req.URL, projectID, req.Settings)
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"scrape_id": log.ID.String(),
		"url":       req.URL,
		"user_id":   userID.String(),
	}
	if projectID.Valid {
		payload["project_id"] = projectID.UUID.String()
	}
	if len(req.Settings) > 0 {
		var settings map[string]interface{}
		if jsonErr := json.Unmarshal(req.Settings, &settings); jsonErr == nil {
			payload["settings"] = settings
		}
	}

	var runID string
	err = s.trigger.RetryWithBackoff(func() error {
		var trErr error
		runID, trErr = s.trigger.TriggerTask(trigger.TaskWebsiteScraper, payload)
		return trErr
	}, taskRetries)
	if err != nil {
		if updErr := s.db.UpdateScrapeLogStatus(log.ID, models.JobFailed, "Failed to queue task"); updErr != nil {
			s.logger.Error("marking unqueued scrape failed", zap.Error(updErr))
		}
		return nil, apperr.Wrap(apperr.KindExternal, "Failed to queue scrape", err)
	}

	if err := s.db.SetScrapeLogHandle(log.ID, runID, models.JobRunning); err != nil {
		s.logger.Error("recording scrape handle", zap.Error(err))
	} else {
		log.Status = models.JobRunning
		log.HandleID.String = runID
		log.HandleID.Valid = true
	}

	s.logger.Info("scrape queued",
		zap.String("scrape_id", log.ID.String()),
		zap.String("run_id", runID),
	)
	return log, nil
}

// CancelScrape asks the runner to stop an active scrape and marks the log.
func (s *TaskService) CancelScrape(log *models.ScrapeLog) error {
	if log.Status != models.JobPending && log.Status != models.JobRunning {
		return apperr.New(apperr.KindConflict, "Scrape is no longer active")
	}

	if log.HandleID.Valid {
		err := s.trigger.RetryWithBackoff(func() error {
			return s.trigger.CancelRun(log.HandleID.String)
		}, taskRetries)
		if err != nil {
			s.logger.Warn("cancelling scrape run",
				zap.String("handle_id", log.HandleID.String),
				zap.Error(err),
			)
		}
	}
	return s.db.UpdateScrapeLogStatus(log.ID, models.JobCancelled, "")
}

// TaskStatusUpdate is what the runner posts to the webhook when a run
// changes state.
type TaskStatusUpdate struct {
	JobID    string `json:"job_id"`
	ScrapeID string `json:"scrape_id"`
	HandleID string `json:"handle_id"`
	Status   string `json:"status"`
	Progress int    `json:"progress"`
	Message  string `json:"message"`
	Error    string `json:"error"`
}

// Statuses the runner may report, per target. Cancellation is user-initiated
// and never comes in over the webhook. The two vocabularies match the rows'
// CHECK constraints so a mixed-up callback is rejected up front instead of
// surfacing as a database error.
var (
	analysisJobStatuses = map[string]bool{
		models.JobPending:    true,
		models.JobProcessing: true,
		models.JobCompleted:  true,
		models.JobFailed:     true,
	}
	scrapeStatuses = map[string]bool{
		models.JobPending:   true,
		models.JobRunning:   true,
		models.JobCompleted: true,
		models.JobFailed:    true,
	}
)

// ApplyStatusUpdate routes a webhook callback to the matching analysis job
// or scrape log.
func (s *TaskService) ApplyStatusUpdate(update TaskStatusUpdate) error {
	if update.JobID != "" {
		if !analysisJobStatuses[update.Status] {
			return apperr.Newf(apperr.KindValidation, "unknown status %q for an analysis job", update.Status)
		}
		jobID, err := uuid.Parse(update.JobID)
		if err != nil {
			return apperr.New(apperr.KindValidation, "invalid job_id")
		}

		job, err := s.db.GetAnalysisJob(jobID)
		if err != nil {
			return err
		}
		if job.Status == models.JobCancelled {
			// Late callbacks from a cancelled run are dropped.
			return nil
		}

		message := update.Message
		if update.Status == models.JobFailed && update.Error != "" {
			message = update.Error
		}
		if err := s.db.UpdateAnalysisJobStatus(jobID, update.Status, update.Progress, message); err != nil {
			return err
		}

		switch update.Status {
		case models.JobFailed:
			s.events.PublishJobEvent(jobID, "job:failed", supabase.JobFailedPayload(jobID, message))
		default:
			s.events.PublishJobEvent(jobID, "job:progress", supabase.JobProgressPayload(jobID, update.Status, update.Progress))
		}
		return nil
	}

	if !scrapeStatuses[update.Status] {
		return apperr.Newf(apperr.KindValidation, "unknown status %q for a scrape", update.Status)
	}

	var log *models.ScrapeLog
	var err error
	switch {
	case update.ScrapeID != "":
		scrapeID, parseErr := uuid.Parse(update.ScrapeID)
		if parseErr != nil {
			return apperr.New(apperr.KindValidation, "invalid scrape_id")
		}
		log, err = s.db.GetScrapeLog(scrapeID)
	case update.HandleID != "":
		log, err = s.db.GetScrapeLogByHandle(update.HandleID)
	default:
		return apperr.New(apperr.KindValidation, "callback names no job or scrape")
	}
	if err != nil {
		return err
	}
	if log.Status == models.JobCancelled {
		return nil
	}

	return s.db.UpdateScrapeLogStatus(log.ID, update.Status, update.Error)
}
