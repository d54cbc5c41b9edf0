package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fitbuddy/backend/internal/model"
	"fitbuddy/backend/internal/service"
)

type TrackerHandler struct {
	trackerService *service.TrackerService
}

type waterAmountRequest struct {
	Amount int `json:"amount"`
}

type waterGoalRequest struct {
	Goal int `json:"goal"`
}

func NewTrackerHandler(trackerService *service.TrackerService) *TrackerHandler {
	return &TrackerHandler{trackerService: trackerService}
}

func (h *TrackerHandler) Favorites(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": h.trackerService.Favorites(c.Request.Context(), userID)})
}

func (h *TrackerHandler) ToggleFavorite(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req model.Exercise
	if !bindJSON(c, &req) {
		return
	}

	items, apiErr := h.trackerService.ToggleFavorite(c.Request.Context(), userID, req)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	isFavorite := false
	for _, item := range items {
		if item.ID == req.ID {
			isFavorite = true
			break
		}
	}
	c.JSON(http.StatusOK, gin.H{"favorites": items, "isFavorite": isFavorite})
}

func (h *TrackerHandler) History(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.trackerService.History(c.Request.Context(), userID))
}

func (h *TrackerHandler) LogWorkout(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req model.WorkoutRecord
	if !bindJSON(c, &req) {
		return
	}

	view, apiErr := h.trackerService.LogWorkout(c.Request.Context(), userID, req)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *TrackerHandler) CompleteWorkout(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req service.CompleteWorkoutInput
	if !bindJSON(c, &req) {
		return
	}

	record, view, apiErr := h.trackerService.CompleteWorkout(c.Request.Context(), userID, req)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"record":  record,
		"history": view.History,
		"stats":   view.Stats,
	})
}

func (h *TrackerHandler) ClearHistory(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.trackerService.ClearHistory(c.Request.Context(), userID))
}

func (h *TrackerHandler) Water(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.trackerService.Water(c.Request.Context(), userID))
}

func (h *TrackerHandler) AddWater(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req waterAmountRequest
	if !bindJSON(c, &req) {
		return
	}

	view, apiErr := h.trackerService.AddWater(c.Request.Context(), userID, req.Amount)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *TrackerHandler) ResetWater(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.trackerService.ResetWater(c.Request.Context(), userID))
}

func (h *TrackerHandler) SetWaterGoal(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req waterGoalRequest
	if !bindJSON(c, &req) {
		return
	}

	view, apiErr := h.trackerService.SetWaterGoal(c.Request.Context(), userID, req.Goal)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, view)
}
