package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fitbuddy/backend/internal/service"
)

type ToolsHandler struct {
	calculator *service.CalculatorService
}

func NewToolsHandler(calculator *service.CalculatorService) *ToolsHandler {
	return &ToolsHandler{calculator: calculator}
}

func (h *ToolsHandler) Calories(c *gin.Context) {
	var req service.CaloriesInput
	if !bindJSON(c, &req) {
		return
	}

	result, apiErr := h.calculator.Calories(req)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}

func (h *ToolsHandler) BMI(c *gin.Context) {
	var req service.BMIInput
	if !bindJSON(c, &req) {
		return
	}

	result, apiErr := h.calculator.BMI(req)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}
