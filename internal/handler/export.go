package handler

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/orbitx-mcn/orbitx-go/internal/middleware"
	"github.com/orbitx-mcn/orbitx-go/internal/service"
)

const (
	analyticsExportName = "orbitx_analytics.csv"
	creatorsExportName  = "orbitx_creators.csv"
)

var (
	analyticsHeader = []string{"Date", "Views", "Revenue", "Subscribers"}
	creatorsHeader  = []string{
		"ID", "Name", "Channel", "Subscribers", "Total Views", "Videos",
		"Revenue", "Niche", "Status", "Trend", "Linked Handle", "Last Synced",
	}
)

type ExportHandler struct {
	creators  *service.CreatorService
	analytics *service.AnalyticsService
}

func NewExportHandler(creators *service.CreatorService, analytics *service.AnalyticsService) *ExportHandler {
	return &ExportHandler{creators: creators, analytics: analytics}
}

// Analytics handles GET /api/analytics/export
func (h *ExportHandler) Analytics(c fiber.Ctx) error {
	data := h.analytics.List()
	rows := make([][]string, 0, len(data)+1)
	rows = append(rows, analyticsHeader)
	for _, d := range data {
		rows = append(rows, []string{
			d.Date,
			strconv.FormatInt(d.Views, 10),
			strconv.FormatInt(d.Revenue, 10),
			strconv.FormatInt(d.Subs, 10),
		})
	}
	return sendCSV(c, analyticsExportName, rows)
}

// Creators handles GET /api/creators/export
func (h *ExportHandler) Creators(c fiber.Ctx) error {
	creators, err := h.creators.List(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list creators")
	}

	rows := make([][]string, 0, len(creators)+1)
	rows = append(rows, creatorsHeader)
	for _, cr := range creators {
		rows = append(rows, []string{
			cr.ID,
			cr.Name,
			cr.ChannelName,
			strconv.FormatInt(cr.Subscribers, 10),
			strconv.FormatInt(cr.TotalViews, 10),
			strconv.FormatInt(cr.VideoCount, 10),
			strconv.FormatFloat(cr.Revenue, 'f', -1, 64),
			cr.Niche,
			cr.Status,
			cr.Trend,
			cr.LinkedChannelHandle,
			cr.LastSynced,
		})
	}
	return sendCSV(c, creatorsExportName, rows)
}

func sendCSV(c fiber.Ctx, filename string, rows [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build export")
	}

	c.Set("Content-Type", "text/csv; charset=utf-8")
	c.Set("Content-Disposition", "attachment; filename="+filename)
	return c.Send(buf.Bytes())
}
