package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"train-status-live/services"
)

// SearchHandler answers autocomplete queries against the reference list
type SearchHandler struct {
	index *services.TrainIndex
}

func NewSearchHandler(index *services.TrainIndex) *SearchHandler {
	return &SearchHandler{index: index}
}

// Search returns up to ten trains matching the term query parameter
func (h *SearchHandler) Search(c *gin.Context) {
	c.JSON(http.StatusOK, h.index.Search(c.Query("term")))
}
