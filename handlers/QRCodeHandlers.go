package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"feasibility/services"
	"feasibility/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultQRSize = 256
	maxQRSize     = 1024
)

// GetReportQRCode godoc
// @Summary      QR code for a feasibility report
// @Description  With history enabled the code carries the recorded plot parameters; otherwise only the report id
// @Tags         qr
// @Produce      image/png
// @Param        report_id  path      string  true   "Report ID (uuid)"
// @Param        size       query     int     false  "Edge length in pixels (default 256)"
// @Success      200        {file}    file    "PNG image"
// @Failure      400        {object}  models.ErrorResponse
// @Failure      404        {object}  models.ErrorResponse
// @Router       /api/feasibility/qr/{report_id} [get]
func GetReportQRCode(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		reportID := c.Param("report_id")
		if _, err := uuid.Parse(reportID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report ID"})
			return
		}

		size := defaultQRSize
		if s := c.Query("size"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 64 || n > maxQRSize {
				c.JSON(http.StatusBadRequest, gin.H{"error": "size must be between 64 and 1024"})
				return
			}
			size = n
		}

		tag := services.ReportTag{ReportID: reportID}
		if env.History != nil {
			rec, err := env.History.Find(c.Request.Context(), reportID)
			if errors.Is(err, storage.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
				return
			}
			if err != nil {
				log.Printf("[qr] error fetching report %s: %v", reportID, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch report"})
				return
			}
			tag.Revision = rec.Revision
			tag.BuildingType = rec.BuildingType
			tag.PlotArea = rec.PlotArea
			tag.RoadWidth = rec.RoadWidth
		}

		png, err := services.QRCodePNG(tag, size)
		if err != nil {
			log.Printf("[qr] error generating code for %s: %v", reportID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
			return
		}
		c.Data(http.StatusOK, "image/png", png)
	}
}
