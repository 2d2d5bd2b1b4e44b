package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/mv-autocenter/internal/httperr"
	"github.com/BruksfildServices01/mv-autocenter/internal/httpresp"
	"github.com/BruksfildServices01/mv-autocenter/internal/usecase/report"
)

type ReportHandler struct {
	reports *report.Service
}

func NewReportHandler(reports *report.Service) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) Dashboard(c *gin.Context) {
	d, err := h.reports.Dashboard(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, d)
}

// Report aceita ?period=weekly|monthly|yearly (padrão: monthly).
func (h *ReportHandler) Report(c *gin.Context) {
	p, err := report.ParsePeriod(c.Query("period"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	r, err := h.reports.Report(c.Request.Context(), p)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, r)
}
