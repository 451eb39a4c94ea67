package handlers

import (
	"net/http"

	"tourbook/services/stats"
	"tourbook/utils"

	"github.com/gin-gonic/gin"
)

type DatabaseHandler struct {
	StatsService stats.StatsService
}

func NewDatabaseHandler(statsService stats.StatsService) *DatabaseHandler {
	return &DatabaseHandler{StatsService: statsService}
}

// DatabaseInfoHandler handles GET /api/database/info.
func (h *DatabaseHandler) DatabaseInfoHandler(c *gin.Context) {
	info, err := h.StatsService.DatabaseInfo(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"database_info": info})
}

// HealthHandler reports the last snapshot taken by the health monitor.
func HealthHandler(c *gin.Context) {
	h := utils.GetHealthStatus()
	status, code := "ok", http.StatusOK
	if !h.Healthy() {
		status, code = "degraded", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": status, "message": "Hi, I'm TourBook", "health": h})
}
