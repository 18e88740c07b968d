package dto

import "main/model"

type TaskResponse struct {
	*model.Task
	DoneToday bool `json:"done_today"`
}

// ToTaskResponses decorates tasks with the done-today flag for the given
// trusted date.
func ToTaskResponses(tasks []*model.Task, today string) []TaskResponse {
	responses := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		responses[i] = TaskResponse{Task: task, DoneToday: task.HasCompleted(today)}
	}
	return responses
}
