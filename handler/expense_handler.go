package handler

import (
	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func GetExpensesHandler(c *gin.Context, expensesService *usecase.ExpensesService) {
	userID := c.GetString("user_id")

	expenses, err := expensesService.GetUserExpenses(userID)
	if err != nil {
		utils.Unauthorized(c, "No active session")
		return
	}

	utils.Success(c, gin.H{"expenses": expenses})
}

func CreateExpenseHandler(c *gin.Context, expensesService *usecase.ExpensesService) {
	userID := c.GetString("user_id")

	var expense model.Expense
	if err := c.ShouldBindJSON(&expense); err != nil {
		utils.BadRequest(c, "Invalid Request")
		return
	}

	if err := expensesService.CreateExpense(c.Request.Context(), userID, &expense); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Created(c, expense)
}

func DeleteExpenseHandler(c *gin.Context, expensesService *usecase.ExpensesService) {
	userID := c.GetString("user_id")

	if err := expensesService.DeleteExpense(c.Request.Context(), userID, c.Param("id")); err != nil {
		if err.Error() == "expense not found" {
			utils.NotFound(c, "Expense not found")
			return
		}
		utils.InternalError(c, "Failed to delete expense")
		return
	}

	utils.Success(c, gin.H{"message": "Expense deleted"})
}
