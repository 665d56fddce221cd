package controllers

import (
	"net/http"

	"github.com/ThomasWeyssow/rewaard-api/api/models"
	"github.com/ThomasWeyssow/rewaard-api/api/transport"
	"github.com/ThomasWeyssow/rewaard-api/logging"
	"github.com/ThomasWeyssow/rewaard-api/storage"
	"github.com/ThomasWeyssow/rewaard-api/workflow"
	"github.com/gin-gonic/gin"
)

type NominationController struct {
	ledger      *workflow.NominationLedger
	validations *workflow.ValidationLedger
	cycles      *workflow.CycleService
	profiles    storage.ProfileStorage
}

func NewNominationController(ledger *workflow.NominationLedger, validations *workflow.ValidationLedger, cycles *workflow.CycleService, profiles storage.ProfileStorage) *NominationController {
	return &NominationController{
		ledger:      ledger,
		validations: validations,
		cycles:      cycles,
		profiles:    profiles,
	}
}

func (c *NominationController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/nominations", transport.CallerMiddleware(c.profiles))

	group.POST("", c.submit)
	group.DELETE("", c.withdraw)
	group.GET("/me", c.current)
	group.GET("/standings", c.standings)
}

// submit godoc
// @Summary Submit a nomination
// @Description Records the caller's nomination for the ongoing cycle; one nomination per voter, withdraw first to change it
// @Tags nominations
// @Accept json
// @Produce json
// @Param nomination body models.SubmitNominationRequest true "Nomination"
// @Param x-profile-id header string true "Caller profile ID"
// @Success 200 {object} models.NominationResponse
// @Failure 400 {object} models.ErrorResponse "Missing areas or justification"
// @Failure 404 {object} models.ErrorResponse "No ongoing cycle"
// @Failure 409 {object} models.ErrorResponse "Caller already nominated"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/nominations [post]
func (c *NominationController) submit(g *gin.Context) {
	var req models.SubmitNominationRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}

	caller := transport.Caller(g)
	nomination, err := c.ledger.Submit(g.Request.Context(), transport.CallerCapabilities(g), caller.ID, req.NomineeID, req.Areas, req.Justification, req.Remarks)
	if err != nil {
		logging.Log.Errorf("NOMINATION: submit failed for voter %s: %v", caller.ID, err)
		writeError(g, err)
		return
	}

	g.JSON(http.StatusOK, models.TransformNominationFromStorage(nomination))
}

// withdraw godoc
// @Summary Withdraw the caller's nomination
// @Description Removes the caller's nomination in the ongoing cycle; succeeds when none exists
// @Tags nominations
// @Produce json
// @Param x-profile-id header string true "Caller profile ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse "No ongoing cycle"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/nominations [delete]
func (c *NominationController) withdraw(g *gin.Context) {
	caller := transport.Caller(g)
	if err := c.ledger.Withdraw(g.Request.Context(), caller.ID); err != nil {
		logging.Log.Errorf("NOMINATION: withdraw failed for voter %s: %v", caller.ID, err)
		writeError(g, err)
		return
	}

	g.JSON(http.StatusOK, &models.MessageResponse{Message: "nomination withdrawn"})
}

// current godoc
// @Summary Get the caller's nomination in the ongoing cycle
// @Tags nominations
// @Produce json
// @Param x-profile-id header string true "Caller profile ID"
// @Success 200 {object} models.NominationResponse
// @Failure 404 {object} models.ErrorResponse "No ongoing cycle or no nomination"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/nominations/me [get]
func (c *NominationController) current(g *gin.Context) {
	caller := transport.Caller(g)
	nomination, err := c.ledger.Current(g.Request.Context(), caller.ID)
	if err != nil {
		writeError(g, err)
		return
	}
	if nomination == nil {
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "no nomination for caller"})
		return
	}
	g.JSON(http.StatusOK, models.TransformNominationFromStorage(nomination))
}

// standings godoc
// @Summary Ranked standings of the latest completed cycle
// @Description Nominees ranked by nomination count, split into the six finalists and the other nominees
// @Tags nominations
// @Produce json
// @Param x-profile-id header string true "Caller profile ID"
// @Success 200 {object} models.StandingsResponse
// @Failure 404 {object} models.ErrorResponse "No completed cycle"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/nominations/standings [get]
func (c *NominationController) standings(g *gin.Context) {
	cycle, err := c.cycles.LatestCompleted(g.Request.Context())
	if err != nil {
		writeError(g, err)
		return
	}

	nominations, err := c.ledger.ListForCycle(g.Request.Context(), cycle.ID)
	if err != nil {
		writeError(g, err)
		return
	}
	validations, err := c.validations.ListForCycle(g.Request.Context(), cycle.ID)
	if err != nil {
		writeError(g, err)
		return
	}

	caller := transport.Caller(g)
	finalists, others := workflow.Partition(workflow.Rank(nominations, validations, caller.ID))

	profiles, err := c.profiles.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("NOMINATION: failed to load profiles for standings: %v", err)
		writeError(g, err)
		return
	}
	profileMap := make(map[string]*storage.Profile, len(profiles))
	for _, p := range profiles {
		profileMap[p.ID] = p
	}

	response := models.StandingsResponse{
		CycleID:   cycle.ID,
		Finalists: make([]models.StandingEntry, 0, len(finalists)),
		Others:    make([]models.StandingEntry, 0, len(others)),
	}
	for _, s := range finalists {
		response.Finalists = append(response.Finalists, models.TransformStanding(s, profileMap[s.NomineeID]))
	}
	for _, s := range others {
		response.Others = append(response.Others, models.TransformStanding(s, profileMap[s.NomineeID]))
	}

	g.JSON(http.StatusOK, response)
}
