package scheduler

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const TaskEmergencyCallback = "leads.emergency_callback"

type EmergencyCallbackPayload struct {
	LeadID string `json:"leadId"`
}

func NewEmergencyCallbackTask(payload EmergencyCallbackPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskEmergencyCallback, data), nil
}

func ParseEmergencyCallbackPayload(task *asynq.Task) (EmergencyCallbackPayload, error) {
	var payload EmergencyCallbackPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return EmergencyCallbackPayload{}, err
	}
	return payload, nil
}

func emergencyCallbackTaskID(leadID string) string {
	return fmt.Sprintf("%s:%s", TaskEmergencyCallback, leadID)
}
