package handler

import (
	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func GetTodosHandler(c *gin.Context, todosService *usecase.TodosService) {
	userID := c.GetString("user_id")

	todos, err := todosService.GetUserTodos(userID)
	if err != nil {
		utils.Unauthorized(c, "No active session")
		return
	}

	utils.Success(c, gin.H{"todos": todos})
}

func CreateTodoHandler(c *gin.Context, todosService *usecase.TodosService) {
	userID := c.GetString("user_id")

	var todo model.Todo
	if err := c.ShouldBindJSON(&todo); err != nil {
		utils.BadRequest(c, "Invalid Request")
		return
	}

	if err := todosService.CreateTodo(c.Request.Context(), userID, &todo); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Created(c, todo)
}

func ToggleTodoHandler(c *gin.Context, todosService *usecase.TodosService) {
	userID := c.GetString("user_id")

	todo, err := todosService.ToggleTodo(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if err.Error() == "todo not found" {
			utils.NotFound(c, "Todo not found")
			return
		}
		utils.InternalError(c, "Failed to update todo")
		return
	}

	utils.Success(c, todo)
}

func DeleteTodoHandler(c *gin.Context, todosService *usecase.TodosService) {
	userID := c.GetString("user_id")

	if err := todosService.DeleteTodo(c.Request.Context(), userID, c.Param("id")); err != nil {
		if err.Error() == "todo not found" {
			utils.NotFound(c, "Todo not found")
			return
		}
		utils.InternalError(c, "Failed to delete todo")
		return
	}

	utils.Success(c, gin.H{"message": "Todo deleted"})
}
