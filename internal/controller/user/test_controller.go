package user

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/sardorbek/kalit/internal/codec"
	"github.com/sardorbek/kalit/internal/dto"
	"github.com/sardorbek/kalit/internal/model"
	"github.com/sardorbek/kalit/internal/report"
	"github.com/sardorbek/kalit/internal/service"
)

type TestController struct {
	registry    service.RegistryService
	submissions service.SubmissionService
	stats       service.StatsService
	users       service.UserService
}

func NewTestController(
	registry service.RegistryService,
	submissions service.SubmissionService,
	stats service.StatsService,
	users service.UserService,
) *TestController {
	return &TestController{registry: registry, submissions: submissions, stats: stats, users: users}
}

// RegisterUser godoc
// @Summary Register a chat user
// @Description Create or refresh a user; called on first interaction and whenever the handle changes.
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.RegisterUserRequest true "User identity"
// @Success 200 {object} map[string]string
// @Failure 400 {object} dto.ErrorResponse
// @Router /users [post]
func (c *TestController) RegisterUser(ctx *gin.Context) {
	var req dto.RegisterUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	if err := c.users.Register(req); err != nil {
		log.Error().Err(err).Int64("userID", req.ID).Msg("RegisterUser: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to register user"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "registered"})
}

// CreateTest godoc
// @Summary Create a test from the compact wire format
// @Description Accepts CODE|NAME+ANSWERS exactly as typed in the chat. The code must be unique and alphanumeric.
// @Tags tests
// @Accept json
// @Produce json
// @Param test body dto.CreateTestRequest true "Creator id and raw payload"
// @Success 201 {object} dto.TestCreatedDTO
// @Failure 400 {object} dto.ErrorResponse "Malformed payload"
// @Failure 409 {object} dto.ErrorResponse "Code already exists"
// @Router /tests [post]
func (c *TestController) CreateTest(ctx *gin.Context) {
	var req dto.CreateTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	created, err := c.registry.Create(req.CreatorID, req.Raw)
	if err != nil {
		respondError(ctx, err, "CreateTest")
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// SubmitAnswers godoc
// @Summary Grade a submission
// @Description Accepts CODE*ANSWERS. Each test can be taken once per user; repeat submissions are rejected.
// @Tags submissions
// @Accept json
// @Produce json
// @Param submission body dto.SubmitRequest true "User id and raw payload"
// @Success 200 {object} dto.ScoreResultDTO
// @Failure 400 {object} dto.ErrorResponse "Malformed payload"
// @Failure 404 {object} dto.ErrorResponse "Unknown test code"
// @Failure 409 {object} dto.ErrorResponse "Already attempted"
// @Router /submissions [post]
func (c *TestController) SubmitAnswers(ctx *gin.Context) {
	var req dto.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	result, err := c.submissions.Submit(req.UserID, req.Raw)
	if err != nil {
		respondError(ctx, err, "SubmitAnswers")
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// EditTest godoc
// @Summary Replace a test's name and answer key
// @Description Accepts NAME+ANSWERS. Only the creator may edit; ownership is checked here, not in the registry.
// @Tags tests
// @Accept json
// @Produce json
// @Param code path string true "Test code"
// @Param edit body dto.EditTestRequest true "Editor id and raw payload"
// @Success 200 {object} map[string]string
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "Editor is not the creator"
// @Failure 404 {object} dto.ErrorResponse
// @Router /tests/{code} [put]
func (c *TestController) EditTest(ctx *gin.Context) {
	code := ctx.Param("code")
	var req dto.EditTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if !c.ownedBy(ctx, code, req.EditorID, "EditTest") {
		return
	}
	if err := c.registry.Edit(code, req.Raw); err != nil {
		respondError(ctx, err, "EditTest")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// AttachBonusScores godoc
// @Summary Attach bonus scores to a test
// @Description Accepts a ';'-separated decimal list (1.1;2;3.5). Overwrites any prior list. The test code is always explicit.
// @Tags tests
// @Accept json
// @Produce json
// @Param code path string true "Test code"
// @Param scores body dto.BonusScoresRequest true "Editor id and raw score list"
// @Success 200 {object} map[string]string
// @Failure 400 {object} dto.ErrorResponse "A token is not a decimal number"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tests/{code}/scores [post]
func (c *TestController) AttachBonusScores(ctx *gin.Context) {
	code := ctx.Param("code")
	var req dto.BonusScoresRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	scores, err := codec.ParseBonusScores(req.Raw)
	if err != nil {
		respondError(ctx, err, "AttachBonusScores")
		return
	}
	if !c.ownedBy(ctx, code, req.EditorID, "AttachBonusScores") {
		return
	}
	if err := c.registry.AttachBonusScores(code, scores); err != nil {
		respondError(ctx, err, "AttachBonusScores")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "scores attached"})
}

// ListMyTests godoc
// @Summary List tests created by a user, newest first
// @Tags tests
// @Produce json
// @Param id path int true "Creator id"
// @Success 200 {array} dto.TestSummaryDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /users/{id}/tests [get]
func (c *TestController) ListMyTests(ctx *gin.Context) {
	creatorID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid user id"})
		return
	}

	tests, err := c.registry.ListByCreator(creatorID)
	if err != nil {
		log.Error().Err(err).Int64("creatorID", creatorID).Msg("ListMyTests: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to list tests"})
		return
	}
	ctx.JSON(http.StatusOK, tests)
}

// GetStatistics godoc
// @Summary Per-test results, best score first
// @Tags statistics
// @Produce json
// @Param code path string true "Test code"
// @Success 200 {object} dto.StatisticsReportDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /tests/{code}/statistics [get]
func (c *TestController) GetStatistics(ctx *gin.Context) {
	statsReport, err := c.stats.TestStatistics(ctx.Param("code"))
	if err != nil {
		respondError(ctx, err, "GetStatistics")
		return
	}
	ctx.JSON(http.StatusOK, statsReport)
}

// DownloadStatisticsExcel godoc
// @Summary Per-test results as an Excel workbook
// @Tags statistics
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param code path string true "Test code"
// @Success 200 {file} binary
// @Failure 404 {object} dto.ErrorResponse
// @Router /tests/{code}/statistics.xlsx [get]
func (c *TestController) DownloadStatisticsExcel(ctx *gin.Context) {
	statsReport, err := c.stats.TestStatistics(ctx.Param("code"))
	if err != nil {
		respondError(ctx, err, "DownloadStatisticsExcel")
		return
	}

	data, err := report.TestStatisticsExcel(statsReport)
	if err != nil {
		log.Error().Err(err).Str("code", statsReport.TestCode).Msg("DownloadStatisticsExcel: render error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to build report"})
		return
	}

	filename := fmt.Sprintf("test_%s_results.xlsx", statsReport.TestCode)
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// GetLeaderboard godoc
// @Summary Global ranking by average score
// @Tags statistics
// @Produce json
// @Param limit query int false "Maximum entries (default 10)"
// @Success 200 {array} dto.LeaderboardEntryDTO
// @Router /leaderboard [get]
func (c *TestController) GetLeaderboard(ctx *gin.Context) {
	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid limit"})
			return
		}
		limit = v
	}

	entries, err := c.stats.Leaderboard(limit)
	if err != nil {
		log.Error().Err(err).Msg("GetLeaderboard: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load leaderboard"})
		return
	}
	ctx.JSON(http.StatusOK, entries)
}

// ownedBy loads the test and rejects the request unless editorID
// created it. The registry's Edit stays permissive, so this boundary is
// the only ownership enforcement.
func (c *TestController) ownedBy(ctx *gin.Context, code string, editorID int64, op string) bool {
	test, err := c.registry.Lookup(code)
	if err != nil {
		respondError(ctx, err, op)
		return false
	}
	if test.CreatorID != editorID {
		log.Warn().Str("code", code).Int64("editorID", editorID).Str("op", op).Msg("Edit rejected, not the creator")
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Message: "Only the test creator may do this"})
		return false
	}
	return true
}

func respondError(ctx *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, model.ErrBadFormat):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Malformed input, check the format and try again"})
	case errors.Is(err, model.ErrDuplicateCode):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: "This test code already exists"})
	case errors.Is(err, model.ErrTestNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Unknown test code"})
	case errors.Is(err, model.ErrAlreadyAttempted):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: "You already took this test; each test can be taken once"})
	case errors.Is(err, model.ErrEmptyAnswerKey):
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Message: "Test has an empty answer key"})
	case errors.Is(err, model.ErrUserNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "User is not registered"})
	default:
		log.Error().Err(err).Str("op", op).Msg("Unhandled service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal error"})
	}
}
