package handler

import (
	"main/dto"
	"main/model"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func GetTasksHandler(c *gin.Context, tasksService *usecase.TasksService, clock *services.TrustedClock) {
	userID := c.GetString("user_id")

	tasks, err := tasksService.GetUserTasks(userID)
	if err != nil {
		utils.Unauthorized(c, "No active session")
		return
	}

	utils.Success(c, gin.H{"tasks": dto.ToTaskResponses(tasks, clock.Today())})
}

func CreateTaskHandler(c *gin.Context, tasksService *usecase.TasksService) {
	userID := c.GetString("user_id")

	var task model.Task
	if err := c.ShouldBindJSON(&task); err != nil {
		utils.BadRequest(c, "Invalid Request")
		return
	}

	if err := tasksService.CreateTask(c.Request.Context(), userID, &task); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Created(c, task)
}

func UpdateTaskHandler(c *gin.Context, tasksService *usecase.TasksService) {
	userID := c.GetString("user_id")

	var task model.Task
	if err := c.ShouldBindJSON(&task); err != nil {
		utils.BadRequest(c, "Invalid Request")
		return
	}
	task.TaskID = c.Param("id")

	if err := tasksService.UpdateTask(c.Request.Context(), userID, &task); err != nil {
		if err.Error() == "task not found" {
			utils.NotFound(c, "Task not found")
			return
		}
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Success(c, task)
}

func DeleteTaskHandler(c *gin.Context, tasksService *usecase.TasksService) {
	userID := c.GetString("user_id")

	if err := tasksService.DeleteTask(c.Request.Context(), userID, c.Param("id")); err != nil {
		if err.Error() == "task not found" {
			utils.NotFound(c, "Task not found")
			return
		}
		utils.InternalError(c, "Failed to delete task")
		return
	}

	utils.Success(c, gin.H{"message": "Task deleted"})
}

func MarkTaskCompleteHandler(c *gin.Context, tasksService *usecase.TasksService) {
	userID := c.GetString("user_id")

	var req model.MarkCompleteRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BadRequest(c, "Invalid Request")
			return
		}
	}

	task, err := tasksService.MarkComplete(c.Request.Context(), userID, c.Param("id"), req.Remark, req.ImageURL)
	if err != nil {
		switch err.Error() {
		case "task not found":
			utils.NotFound(c, "Task not found")
		case "task already marked complete today":
			utils.Conflict(c, "Task already marked complete today")
		default:
			utils.InternalError(c, "Failed to mark task complete")
		}
		return
	}

	utils.Success(c, task)
}

func GetTaskProofsHandler(c *gin.Context, tasksService *usecase.TasksService) {
	userID := c.GetString("user_id")

	proofs, err := tasksService.GetTaskProofs(userID, c.Param("id"))
	if err != nil {
		utils.Unauthorized(c, "No active session")
		return
	}

	utils.Success(c, gin.H{"proofs": proofs})
}
