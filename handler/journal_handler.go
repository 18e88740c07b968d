package handler

import (
	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func GetJournalHandler(c *gin.Context, journalService *usecase.JournalService) {
	userID := c.GetString("user_id")

	entries, err := journalService.GetUserJournal(userID)
	if err != nil {
		utils.Unauthorized(c, "No active session")
		return
	}

	utils.Success(c, gin.H{"entries": entries})
}

func CreateJournalEntryHandler(c *gin.Context, journalService *usecase.JournalService) {
	userID := c.GetString("user_id")

	var entry model.JournalEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		utils.BadRequest(c, "Invalid Request")
		return
	}

	if err := journalService.CreateEntry(c.Request.Context(), userID, &entry); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Created(c, entry)
}

func UpdateJournalEntryHandler(c *gin.Context, journalService *usecase.JournalService) {
	userID := c.GetString("user_id")

	var entry model.JournalEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		utils.BadRequest(c, "Invalid Request")
		return
	}
	entry.EntryID = c.Param("id")

	if err := journalService.UpdateEntry(c.Request.Context(), userID, &entry); err != nil {
		if err.Error() == "journal entry not found" {
			utils.NotFound(c, "Journal entry not found")
			return
		}
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Success(c, entry)
}

func DeleteJournalEntryHandler(c *gin.Context, journalService *usecase.JournalService) {
	userID := c.GetString("user_id")

	if err := journalService.DeleteEntry(c.Request.Context(), userID, c.Param("id")); err != nil {
		if err.Error() == "journal entry not found" {
			utils.NotFound(c, "Journal entry not found")
			return
		}
		utils.InternalError(c, "Failed to delete journal entry")
		return
	}

	utils.Success(c, gin.H{"message": "Journal entry deleted"})
}
