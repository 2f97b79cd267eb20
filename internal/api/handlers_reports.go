package api

import (
	"github.com/gin-gonic/gin"

	"github.com/resourcio/resourcio/internal/apierrors"
)

// handleUtilizationReport computes per-resource utilization. Either a
// ?week= ISO week key or a ?start=&end= date window selects the scope.
func (router *APIRouter) handleUtilizationReport(c *gin.Context) {
	if week := c.Query("week"); week != "" {
		summary, err := router.planning.WeekReport(c.Request.Context(), week)
		if err != nil {
			apierrors.Error(c, apierrors.CodeInvalidWeekKey)
			return
		}
		sendSuccess(c, summary)
		return
	}

	start, end, ok := parseWindow(c, c.Query("start"), c.Query("end"))
	if !ok {
		return
	}

	summary, err := router.planning.UtilizationReport(c.Request.Context(), start, end)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccess(c, summary)
}
