package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fitbuddy/backend/internal/service"
)

type ExerciseHandler struct {
	exerciseService *service.ExerciseService
}

func NewExerciseHandler(exerciseService *service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

func (h *ExerciseHandler) List(c *gin.Context) {
	items := h.exerciseService.List(c.Request.Context(), c.Query("category"), c.Query("q"))
	c.JSON(http.StatusOK, gin.H{"exercises": items})
}

func (h *ExerciseHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.exerciseService.Categories()})
}

func (h *ExerciseHandler) Get(c *gin.Context) {
	item := h.exerciseService.Get(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"exercise": item})
}

func (h *ExerciseHandler) DailyTip(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tip": h.exerciseService.DailyTip()})
}
