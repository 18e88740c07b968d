package usecase

import (
	"context"
	"errors"

	"main/model"
	"main/services"
	"main/utils"
)

type ExpensesService struct {
	manager *SpaceManager
	clock   *services.TrustedClock
}

func NewExpensesService(manager *SpaceManager, clock *services.TrustedClock) *ExpensesService {
	return &ExpensesService{manager: manager, clock: clock}
}

func (svc *ExpensesService) space(userID string) (*UserSpace, error) {
	space, ok := svc.manager.Get(userID)
	if !ok {
		return nil, errors.New("no active session for user")
	}
	return space, nil
}

// GetUserExpenses returns the cached expenses, newest first.
func (svc *ExpensesService) GetUserExpenses(userID string) ([]*model.Expense, error) {
	space, err := svc.space(userID)
	if err != nil {
		return nil, err
	}
	return space.Expenses.Snapshot(), nil
}

func (svc *ExpensesService) CreateExpense(ctx context.Context, userID string, expense *model.Expense) error {
	space, err := svc.space(userID)
	if err != nil {
		return err
	}
	if expense.Amount <= 0 {
		return errors.New("expense amount must be positive")
	}

	if expense.ExpenseID == "" {
		expense.ExpenseID = utils.GenerateID()
	}
	expense.UserID = userID
	if expense.Date == "" {
		expense.Date = svc.clock.Today()
	}

	if err := space.Expenses.Create(ctx, expense); err != nil {
		return err
	}
	space.Notifications.Notify("Expense recorded.", NotifySuccess)
	return nil
}

func (svc *ExpensesService) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	space, err := svc.space(userID)
	if err != nil {
		return err
	}
	if _, ok := space.Expenses.Get(expenseID); !ok {
		return errors.New("expense not found")
	}
	if err := space.Expenses.Delete(ctx, expenseID); err != nil {
		return err
	}
	space.Notifications.Notify("Expense removed.", NotifyInfo)
	return nil
}
