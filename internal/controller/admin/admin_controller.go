package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/sardorbek/kalit/config"
	"github.com/sardorbek/kalit/internal/dto"
	"github.com/sardorbek/kalit/internal/model"
	"github.com/sardorbek/kalit/internal/report"
	"github.com/sardorbek/kalit/internal/service"
)

type AdminController struct {
	cfg      *config.Config
	registry service.RegistryService
	stats    service.StatsService
	users    service.UserService
}

func NewAdminController(
	cfg *config.Config,
	registry service.RegistryService,
	stats service.StatsService,
	users service.UserService,
) *AdminController {
	return &AdminController{cfg: cfg, registry: registry, stats: stats, users: users}
}

// RequireAdmin gates the admin group on the static allow-list. The
// caller identifies itself with the X-Admin-ID header.
func (c *AdminController) RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, err := strconv.ParseInt(ctx.GetHeader("X-Admin-ID"), 10, 64)
		if err != nil || !c.cfg.IsAdmin(id) {
			log.Warn().Str("header", ctx.GetHeader("X-Admin-ID")).Str("path", ctx.FullPath()).Msg("Admin access denied")
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "Admin access required"})
			return
		}
		ctx.Next()
	}
}

// GetPlatformStats godoc
// @Summary Global user/test/result counters
// @Tags admin
// @Produce json
// @Param X-Admin-ID header int true "Admin chat id"
// @Success 200 {object} dto.PlatformStatsDTO
// @Failure 403 {object} dto.ErrorResponse
// @Router /admin/stats [get]
func (c *AdminController) GetPlatformStats(ctx *gin.Context) {
	stats, err := c.stats.PlatformStats()
	if err != nil {
		log.Error().Err(err).Msg("GetPlatformStats: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load counters"})
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

// SearchTests godoc
// @Summary Search tests by code or name substring
// @Tags admin
// @Produce json
// @Param X-Admin-ID header int true "Admin chat id"
// @Param q query string true "Search query"
// @Success 200 {array} dto.TestSearchHitDTO
// @Failure 403 {object} dto.ErrorResponse
// @Router /admin/tests/search [get]
func (c *AdminController) SearchTests(ctx *gin.Context) {
	query := ctx.Query("q")
	if query == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Missing query"})
		return
	}

	hits, err := c.stats.SearchTests(query)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("SearchTests: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Search failed"})
		return
	}
	ctx.JSON(http.StatusOK, hits)
}

// DeleteTest godoc
// @Summary Delete a single test by code
// @Description Results and attempt records for the test are removed via the cascade.
// @Tags admin
// @Produce json
// @Param X-Admin-ID header int true "Admin chat id"
// @Param code path string true "Test code"
// @Success 200 {object} map[string]string
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/tests/{code} [delete]
func (c *AdminController) DeleteTest(ctx *gin.Context) {
	code := ctx.Param("code")
	if err := c.registry.Delete(code); err != nil {
		if errors.Is(err, model.ErrTestNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Unknown test code"})
			return
		}
		log.Error().Err(err).Str("code", code).Msg("DeleteTest: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to delete test"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// PurgeOldTests godoc
// @Summary Delete tests older than max_age_days
// @Description Tests created exactly at the boundary are retained. Omitting the body uses the configured retention.
// @Tags admin
// @Accept json
// @Produce json
// @Param X-Admin-ID header int true "Admin chat id"
// @Param purge body dto.PurgeRequest false "Age threshold in days"
// @Success 200 {object} dto.PurgeResultDTO
// @Failure 403 {object} dto.ErrorResponse
// @Router /admin/tests/purge [post]
func (c *AdminController) PurgeOldTests(ctx *gin.Context) {
	days := c.cfg.RetentionDays
	var req dto.PurgeRequest
	if err := ctx.ShouldBindJSON(&req); err == nil && req.MaxAgeDays > 0 {
		days = req.MaxAgeDays
	}

	deleted, err := c.registry.Purge(days)
	if err != nil {
		log.Error().Err(err).Int("days", days).Msg("PurgeOldTests: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Purge failed"})
		return
	}
	ctx.JSON(http.StatusOK, dto.PurgeResultDTO{Deleted: deleted})
}

// ListUsers godoc
// @Summary List registered users
// @Tags admin
// @Produce json
// @Param X-Admin-ID header int true "Admin chat id"
// @Success 200 {array} dto.UserDTO
// @Failure 403 {object} dto.ErrorResponse
// @Router /admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	users, err := c.stats.ListUsers()
	if err != nil {
		log.Error().Err(err).Msg("ListUsers: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to list users"})
		return
	}
	ctx.JSON(http.StatusOK, users)
}

// DownloadUsersCSV godoc
// @Summary Registered users as CSV
// @Tags admin
// @Produce text/csv
// @Param X-Admin-ID header int true "Admin chat id"
// @Success 200 {file} binary
// @Failure 403 {object} dto.ErrorResponse
// @Router /admin/users.csv [get]
func (c *AdminController) DownloadUsersCSV(ctx *gin.Context) {
	users, err := c.stats.ListUsers()
	if err != nil {
		log.Error().Err(err).Msg("DownloadUsersCSV: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to list users"})
		return
	}

	data, err := report.UsersCSV(users)
	if err != nil {
		log.Error().Err(err).Msg("DownloadUsersCSV: render error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to build CSV"})
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="users.csv"`)
	ctx.Data(http.StatusOK, "text/csv", data)
}

// Broadcast godoc
// @Summary Send a message to every registered user
// @Description Best-effort fan-out; per-recipient failures are counted, never aborting the batch.
// @Tags admin
// @Accept json
// @Produce json
// @Param X-Admin-ID header int true "Admin chat id"
// @Param broadcast body dto.BroadcastRequest true "Message text"
// @Success 200 {object} dto.BroadcastReportDTO
// @Failure 403 {object} dto.ErrorResponse
// @Router /admin/broadcast [post]
func (c *AdminController) Broadcast(ctx *gin.Context) {
	var req dto.BroadcastRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	broadcastReport, err := c.users.Broadcast(req.Text)
	if err != nil {
		log.Error().Err(err).Msg("Broadcast: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Broadcast failed"})
		return
	}
	ctx.JSON(http.StatusOK, broadcastReport)
}
