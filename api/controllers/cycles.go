package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/ThomasWeyssow/rewaard-api/api/models"
	"github.com/ThomasWeyssow/rewaard-api/api/transport"
	"github.com/ThomasWeyssow/rewaard-api/logging"
	"github.com/ThomasWeyssow/rewaard-api/storage"
	"github.com/ThomasWeyssow/rewaard-api/workflow"
	"github.com/gin-gonic/gin"
)

type CycleController struct {
	cycles   *workflow.CycleService
	resolver *workflow.WinnerResolver
	winners  storage.WinnerStorage
}

func NewCycleController(cycles *workflow.CycleService, resolver *workflow.WinnerResolver, winners storage.WinnerStorage) *CycleController {
	return &CycleController{
		cycles:   cycles,
		resolver: resolver,
		winners:  winners,
	}
}

func (c *CycleController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/cycles")
	group.GET("/ongoing", c.ongoing)
	group.GET("/completed/latest", c.latestCompleted)

	admin := engine.Group("/api/admin/cycles", transport.AdminAuthMiddleware())
	admin.POST("/next", c.scheduleNext)
	admin.POST("/advance", c.advance)
	admin.DELETE("/ongoing", c.deleteOngoing)
	admin.POST("/resolve", c.resolve)
}

// ongoing godoc
// @Summary Get the ongoing nomination cycle
// @Tags cycles
// @Produce json
// @Success 200 {object} models.CycleResponse
// @Failure 404 {object} models.ErrorResponse "No ongoing cycle"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/cycles/ongoing [get]
func (c *CycleController) ongoing(g *gin.Context) {
	cycle, err := c.cycles.Ongoing(g.Request.Context())
	if err != nil {
		writeError(g, err)
		return
	}
	g.JSON(http.StatusOK, models.TransformCycleFromStorage(cycle))
}

// latestCompleted godoc
// @Summary Get the latest completed cycle with its winner, if resolved
// @Tags cycles
// @Produce json
// @Success 200 {object} models.CompletedCycleResponse
// @Failure 404 {object} models.ErrorResponse "No completed cycle"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/cycles/completed/latest [get]
func (c *CycleController) latestCompleted(g *gin.Context) {
	cycle, err := c.cycles.LatestCompleted(g.Request.Context())
	if err != nil {
		writeError(g, err)
		return
	}

	response := models.CompletedCycleResponse{CycleResponse: models.TransformCycleFromStorage(cycle)}
	winner, err := c.winners.Get(g.Request.Context(), cycle.ID)
	if err == nil {
		response.Winner = &models.WinnerResponse{NomineeID: winner.NomineeID, CreatedAt: winner.CreatedAt}
	} else if !errors.Is(err, storage.ErrItemNotFound) {
		writeError(g, err)
		return
	}

	g.JSON(http.StatusOK, response)
}

// @Security AdminToken
// scheduleNext godoc
// @Summary Schedule or overwrite the next nomination cycle
// @Tags cycles
// @Accept json
// @Produce json
// @Param cycle body models.ScheduleCycleRequest true "Next cycle"
// @Success 200 {object} models.CycleResponse
// @Failure 400 {object} models.ErrorResponse "Invalid period, date, or overlap with the ongoing cycle"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/cycles/next [post]
func (c *CycleController) scheduleNext(g *gin.Context) {
	var req models.ScheduleCycleRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid start date, expected YYYY-MM-DD"})
		return
	}

	cycle, err := c.cycles.ScheduleNext(g.Request.Context(), req.AreaID, startDate, req.Period)
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to schedule next cycle: %v", err)
		writeError(g, err)
		return
	}
	g.JSON(http.StatusOK, models.TransformCycleFromStorage(cycle))
}

// @Security AdminToken
// advance godoc
// @Summary Apply time-driven cycle transitions
// @Description Completes the ongoing cycle past its end date and promotes the next cycle once its start date is reached; called by the external scheduler
// @Tags cycles
// @Produce json
// @Success 200 {object} models.MessageResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/cycles/advance [post]
func (c *CycleController) advance(g *gin.Context) {
	if err := c.cycles.Advance(g.Request.Context()); err != nil {
		logging.Log.Errorf("ADMIN: cycle advance failed: %v", err)
		writeError(g, err)
		return
	}
	g.JSON(http.StatusOK, &models.MessageResponse{Message: "cycles advanced"})
}

// @Security AdminToken
// deleteOngoing godoc
// @Summary Delete the ongoing cycle
// @Tags cycles
// @Produce json
// @Success 200 {object} models.MessageResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/cycles/ongoing [delete]
func (c *CycleController) deleteOngoing(g *gin.Context) {
	if err := c.cycles.DeleteOngoing(g.Request.Context()); err != nil {
		logging.Log.Errorf("ADMIN: failed to delete ongoing cycle: %v", err)
		writeError(g, err)
		return
	}
	g.JSON(http.StatusOK, &models.MessageResponse{Message: "ongoing cycle deleted"})
}

// @Security AdminToken
// resolve godoc
// @Summary Resolve the winner of the latest completed cycle
// @Description Picks the finalist with the most validations once the validation window closed; idempotent
// @Tags cycles
// @Produce json
// @Success 200 {object} models.WinnerResponse
// @Failure 400 {object} models.ErrorResponse "Validation window still open"
// @Failure 409 {object} models.ErrorResponse "Tied validation counts"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/cycles/resolve [post]
func (c *CycleController) resolve(g *gin.Context) {
	winner, err := c.resolver.Resolve(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("ADMIN: winner resolution failed: %v", err)
		writeError(g, err)
		return
	}
	g.JSON(http.StatusOK, &models.WinnerResponse{NomineeID: winner.NomineeID, CreatedAt: winner.CreatedAt})
}
