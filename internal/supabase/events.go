package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"
)

// EventsClient publishes status events for jobs and uploads. Status-row
// updates already reach subscribed clients through Supabase Realtime's
// postgres_changes stream; explicit broadcast publishing can be added here
// without touching callers.
type EventsClient struct {
	client *supabase.Client
}

func NewEventsClient(client *supabase.Client) *EventsClient {
	return &EventsClient{
		client: client,
	}
}

func (e *EventsClient) Publish(channel string, event string, payload map[string]interface{}) error {
	// Database updates trigger Realtime automatically.
	return nil
}

func (e *EventsClient) PublishJobEvent(jobID uuid.UUID, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("job:%s", jobID.String())
	return e.Publish(channel, event, payload)
}

func (e *EventsClient) PublishUserEvent(userID uuid.UUID, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("user:%s", userID.String())
	return e.Publish(channel, event, payload)
}

// Event payloads
func JobQueuedPayload(jobID uuid.UUID, task string) map[string]interface{} {
	return map[string]interface{}{
		"job_id": jobID.String(),
		"status": "pending",
		"task":   task,
	}
}

func JobProgressPayload(jobID uuid.UUID, status string, progress int) map[string]interface{} {
	return map[string]interface{}{
		"job_id":   jobID.String(),
		"status":   status,
		"progress": progress,
	}
}

func JobFailedPayload(jobID uuid.UUID, errorMsg string) map[string]interface{} {
	return map[string]interface{}{
		"job_id": jobID.String(),
		"status": "failed",
		"error":  errorMsg,
	}
}

func UploadCompletedPayload(projectID uuid.UUID, fileCount int) map[string]interface{} {
	return map[string]interface{}{
		"project_id": projectID.String(),
		"status":     "uploaded",
		"file_count": fileCount,
	}
}
