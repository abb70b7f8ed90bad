package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"train-status-live/models"
)

const (
	indexTemplate      = "index.html"
	invalidNumberError = "Please enter a valid 5-digit train number."
)

// StatusFetcher looks up the live status of one train run
type StatusFetcher interface {
	FetchStatus(ctx context.Context, trainNumber string, day models.DayOffset) (*models.NormalizedStatus, error)
}

// StatusHandler serves the lookup form and its results
type StatusHandler struct {
	fetcher StatusFetcher
	logger  *zap.SugaredLogger
}

func NewStatusHandler(fetcher StatusFetcher, logger *zap.SugaredLogger) *StatusHandler {
	return &StatusHandler{fetcher: fetcher, logger: logger}
}

// Form renders the empty lookup form
func (h *StatusHandler) Form(c *gin.Context) {
	c.HTML(http.StatusOK, indexTemplate, gin.H{
		"train_number_input": "",
		"train_data":         nil,
		"error_message":      "",
		"selected_day":       models.Today.String(),
	})
}

// Lookup validates the submitted form, fetches the live status and renders
// either the result or an error message
func (h *StatusHandler) Lookup(c *gin.Context) {
	var form models.StatusForm
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Debugw("form bind failed", "error", err)
	}

	trainNumber := strings.TrimSpace(form.TrainNumber)
	selectedDay := form.StartDay
	if selectedDay == "" {
		selectedDay = models.Today.String()
	}

	status, errorMessage := h.lookup(c.Request.Context(), trainNumber, selectedDay)

	c.HTML(http.StatusOK, indexTemplate, gin.H{
		"train_number_input": trainNumber,
		"train_data":         status,
		"error_message":      errorMessage,
		"selected_day":       selectedDay,
	})
}

func (h *StatusHandler) lookup(ctx context.Context, trainNumber, selectedDay string) (*models.NormalizedStatus, string) {
	if !models.IsValidTrainNumber(trainNumber) {
		return nil, invalidNumberError
	}

	day, ok := models.ParseDayOffset(selectedDay)
	if !ok {
		return nil, unavailableMessage(trainNumber, "the selected day")
	}

	status, err := h.fetcher.FetchStatus(ctx, trainNumber, day)
	if err != nil || status == nil {
		return nil, unavailableMessage(trainNumber, day.Label())
	}

	return status, ""
}

func unavailableMessage(trainNumber, dayLabel string) string {
	return fmt.Sprintf("Could not retrieve live status for train %s that started on '%s'.", trainNumber, dayLabel)
}
