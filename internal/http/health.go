package http

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

type HealthController struct {
	dataPath string
	version  string
}

func NewHealthController(dataPath, version string) *HealthController {
	return &HealthController{
		dataPath: dataPath,
		version:  version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	// Check the data file is reachable. A missing file is fine, it gets
	// created on first write.
	if _, err := os.Stat(h.dataPath); err == nil {
		checks["data_file"] = "ok"
	} else if os.IsNotExist(err) {
		checks["data_file"] = "not created yet"
	} else {
		checks["data_file"] = "error: " + err.Error()
		status = "unhealthy"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
