package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	statsdomain "github.com/haixin886/recharge-hub-system-sub001/internal/stats/domain"
)

// @Summary      Dashboard Statistics
// @Description  Aggregated sales, user and order statistics for a time range
// @Tags         stats
// @Produce      json
// @Security     ApiKeyAuth
// @Param        range  query  string  false  "today|week|month|last_month|custom"
// @Param        start  query  string  false  "Custom range start (RFC 3339 or 2006-01-02)"
// @Param        end    query  string  false  "Custom range end (RFC 3339 or 2006-01-02)"
// @Param        mock   query  bool    false  "Serve deterministic demo data"
// @Success      200  {object}  statsdomain.StatisticsSnapshot
// @Router       /stats/dashboard [get]
func (s *Server) GetDashboardStats(c *gin.Context) {
	if s.statsSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	req, err := parseStatsRequest(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	snap, err := s.statsSvc.GetStatistics(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": snap})
}

// @Summary      Agent Statistics
// @Description  Statistics restricted to one processing agent's orders
// @Tags         stats
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id     path   string  true   "Agent ID"
// @Param        range  query  string  false  "today|week|month|last_month|custom"
// @Success      200  {object}  statsdomain.StatisticsSnapshot
// @Router       /stats/agents/{id} [get]
func (s *Server) GetAgentStats(c *gin.Context) {
	if s.statsSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	req, err := parseStatsRequest(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	req.AgentID = strings.TrimSpace(c.Param("id"))

	snap, err := s.statsSvc.GetStatistics(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": snap})
}

func parseStatsRequest(c *gin.Context) (statsdomain.StatsRequest, error) {
	selector := statsdomain.TimeRangeType(strings.ToLower(strings.TrimSpace(c.Query("range"))))
	if selector == "" {
		selector = statsdomain.RangeToday
	}
	switch selector {
	case statsdomain.RangeToday, statsdomain.RangeWeek, statsdomain.RangeMonth,
		statsdomain.RangeLastMonth, statsdomain.RangeCustom:
	default:
		return statsdomain.StatsRequest{}, newValidationError("range", "invalid_range", "unknown time range selector")
	}

	req := statsdomain.StatsRequest{Selector: selector}

	if selector == statsdomain.RangeCustom {
		start, err := parseStatsTime(c.Query("start"))
		if err != nil {
			return statsdomain.StatsRequest{}, newValidationError("start", "invalid_time", "invalid start time")
		}
		end, err := parseStatsTime(c.Query("end"))
		if err != nil {
			return statsdomain.StatsRequest{}, newValidationError("end", "invalid_time", "invalid end time")
		}
		req.CustomRange = &statsdomain.CustomRange{StartDate: start, EndDate: end}
	}

	if raw := strings.TrimSpace(c.Query("mock")); raw != "" {
		mock, err := strconv.ParseBool(raw)
		if err != nil {
			return statsdomain.StatsRequest{}, newValidationError("mock", "invalid_mock", "invalid mock flag")
		}
		req.UseMock = mock
	}

	return req, nil
}

func parseStatsTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
