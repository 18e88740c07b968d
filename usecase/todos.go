package usecase

import (
	"context"
	"errors"
	"strings"

	"main/model"
	"main/services"
	"main/utils"
)

type TodosService struct {
	manager *SpaceManager
	clock   *services.TrustedClock
}

func NewTodosService(manager *SpaceManager, clock *services.TrustedClock) *TodosService {
	return &TodosService{manager: manager, clock: clock}
}

func (svc *TodosService) space(userID string) (*UserSpace, error) {
	space, ok := svc.manager.Get(userID)
	if !ok {
		return nil, errors.New("no active session for user")
	}
	return space, nil
}

func (svc *TodosService) GetUserTodos(userID string) ([]*model.Todo, error) {
	space, err := svc.space(userID)
	if err != nil {
		return nil, err
	}
	return space.Todos.Snapshot(), nil
}

func (svc *TodosService) CreateTodo(ctx context.Context, userID string, todo *model.Todo) error {
	space, err := svc.space(userID)
	if err != nil {
		return err
	}
	if strings.TrimSpace(todo.Text) == "" {
		return errors.New("todo text is required")
	}

	if todo.TodoID == "" {
		todo.TodoID = utils.GenerateID()
	}
	todo.UserID = userID
	todo.Completed = false
	todo.CreatedAt = svc.clock.Now()

	if err := space.Todos.Create(ctx, todo); err != nil {
		return err
	}
	space.Notifications.Notify("Task added to list.", NotifySuccess)
	return nil
}

// ToggleTodo flips the completed flag.
func (svc *TodosService) ToggleTodo(ctx context.Context, userID, todoID string) (*model.Todo, error) {
	space, err := svc.space(userID)
	if err != nil {
		return nil, err
	}
	todo, ok := space.Todos.Get(todoID)
	if !ok {
		return nil, errors.New("todo not found")
	}

	updated := *todo
	updated.Completed = !todo.Completed
	if err := space.Todos.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (svc *TodosService) DeleteTodo(ctx context.Context, userID, todoID string) error {
	space, err := svc.space(userID)
	if err != nil {
		return err
	}
	if _, ok := space.Todos.Get(todoID); !ok {
		return errors.New("todo not found")
	}
	if err := space.Todos.Delete(ctx, todoID); err != nil {
		return err
	}
	space.Notifications.Notify("Task removed.", NotifyInfo)
	return nil
}
