package usecase

import (
	"context"
	"errors"
	"strings"

	"main/model"
	"main/services"
	"main/utils"
)

type TasksService struct {
	manager *SpaceManager
	clock   *services.TrustedClock
}

func NewTasksService(manager *SpaceManager, clock *services.TrustedClock) *TasksService {
	return &TasksService{manager: manager, clock: clock}
}

func (svc *TasksService) space(userID string) (*UserSpace, error) {
	space, ok := svc.manager.Get(userID)
	if !ok {
		return nil, errors.New("no active session for user")
	}
	return space, nil
}

// GetUserTasks returns the cached (decrypted) tasks.
func (svc *TasksService) GetUserTasks(userID string) ([]*model.Task, error) {
	space, err := svc.space(userID)
	if err != nil {
		return nil, err
	}
	return space.Tasks.Snapshot(), nil
}

// CreateTask validates and writes a new habit or goal.
func (svc *TasksService) CreateTask(ctx context.Context, userID string, task *model.Task) error {
	space, err := svc.space(userID)
	if err != nil {
		return err
	}

	if strings.TrimSpace(task.Name) == "" {
		return errors.New("task name is required")
	}
	if task.Type != model.TaskTypeHabit && task.Type != model.TaskTypeGoal {
		return errors.New("task type must be Habit or Goal")
	}
	if task.StartDate != "" && !utils.IsISODate(task.StartDate) {
		return errors.New("start date must be YYYY-MM-DD")
	}
	if task.EndDate != "" && !utils.IsISODate(task.EndDate) {
		return errors.New("end date must be YYYY-MM-DD")
	}

	if task.TaskID == "" {
		task.TaskID = utils.GenerateID()
	}
	task.UserID = userID
	task.CreatedAt = svc.clock.Now()
	task.Streaks = 0
	task.MaxStreaks = 0
	task.CompletedDates = []string{}

	if err := space.Tasks.Create(ctx, task); err != nil {
		return err
	}
	space.Notifications.Notify("Task Created!", NotifySuccess)
	return nil
}

// UpdateTask writes the fully-updated record; streak counters cannot be
// edited this way.
func (svc *TasksService) UpdateTask(ctx context.Context, userID string, task *model.Task) error {
	space, err := svc.space(userID)
	if err != nil {
		return err
	}
	existing, ok := space.Tasks.Get(task.TaskID)
	if !ok {
		return errors.New("task not found")
	}

	task.UserID = userID
	task.CreatedAt = existing.CreatedAt
	task.Streaks = existing.Streaks
	task.MaxStreaks = existing.MaxStreaks
	task.CompletedDates = existing.CompletedDates

	if err := space.Tasks.Update(ctx, task); err != nil {
		return err
	}
	space.Notifications.Notify("Task updated.", NotifySuccess)
	return nil
}

// DeleteTask removes the task remotely.
func (svc *TasksService) DeleteTask(ctx context.Context, userID, taskID string) error {
	space, err := svc.space(userID)
	if err != nil {
		return err
	}
	if _, ok := space.Tasks.Get(taskID); !ok {
		return errors.New("task not found")
	}
	if err := space.Tasks.Delete(ctx, taskID); err != nil {
		return err
	}
	space.Notifications.Notify("Task Deleted.", NotifyInfo)
	return nil
}

// MarkComplete records today's completion: it advances the streak counters
// and writes both the updated task and an immutable proof record. Marking
// the same day twice is rejected before any state changes.
func (svc *TasksService) MarkComplete(ctx context.Context, userID, taskID, remark, imageURL string) (*model.Task, error) {
	space, err := svc.space(userID)
	if err != nil {
		return nil, err
	}
	task, ok := space.Tasks.Get(taskID)
	if !ok {
		return nil, errors.New("task not found")
	}

	today := svc.clock.Today()
	if task.HasCompleted(today) {
		utils.TrackError("validation", "already_marked_today")
		return nil, errors.New("task already marked complete today")
	}

	streaks, maxStreaks := NextStreak(task, today)

	updated := *task
	updated.CompletedDates = append(append([]string(nil), task.CompletedDates...), today)
	updated.Streaks = streaks
	updated.MaxStreaks = maxStreaks

	if err := space.Tasks.Update(ctx, &updated); err != nil {
		return nil, err
	}

	proof := &model.Proof{
		ProofID:   utils.GenerateID(),
		UserID:    userID,
		TaskID:    taskID,
		Date:      today,
		Remark:    remark,
		ImageURL:  imageURL,
		Timestamp: svc.clock.Now(),
	}
	if err := space.Proofs.Create(ctx, proof); err != nil {
		return nil, err
	}

	space.Notifications.Notify("Progress Recorded!", NotifySuccess)
	return &updated, nil
}

// GetTaskProofs returns the cached proofs for one task.
func (svc *TasksService) GetTaskProofs(userID, taskID string) ([]*model.Proof, error) {
	space, err := svc.space(userID)
	if err != nil {
		return nil, err
	}
	var proofs []*model.Proof
	for _, p := range space.Proofs.Snapshot() {
		if p.TaskID == taskID {
			proofs = append(proofs, p)
		}
	}
	return proofs, nil
}
