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

type ValidationController struct {
	ledger   *workflow.ValidationLedger
	profiles storage.ProfileStorage
}

func NewValidationController(ledger *workflow.ValidationLedger, profiles storage.ProfileStorage) *ValidationController {
	return &ValidationController{
		ledger:   ledger,
		profiles: profiles,
	}
}

func (c *ValidationController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/validations", transport.CallerMiddleware(c.profiles))

	group.POST("", c.confirm)
	group.GET("/me", c.choice)
}

// confirm godoc
// @Summary Confirm a finalist
// @Description Toggles or moves the caller's confirmation of a finalist while the validation window is open
// @Tags validations
// @Accept json
// @Produce json
// @Param validation body models.ConfirmValidationRequest true "Validation"
// @Param x-profile-id header string true "Caller profile ID"
// @Success 200 {object} models.ValidatorChoiceResponse
// @Failure 400 {object} models.ErrorResponse "Window closed or nominee not a finalist"
// @Failure 403 {object} models.ErrorResponse "Caller cannot validate"
// @Failure 404 {object} models.ErrorResponse "No completed cycle"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/validations [post]
func (c *ValidationController) confirm(g *gin.Context) {
	var req models.ConfirmValidationRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}

	caller := transport.Caller(g)
	if err := c.ledger.Confirm(g.Request.Context(), transport.CallerCapabilities(g), caller.ID, req.NomineeID); err != nil {
		logging.Log.Errorf("VALIDATION: confirm failed for validator %s: %v", caller.ID, err)
		writeError(g, err)
		return
	}

	choice, err := c.ledger.ValidatorChoice(g.Request.Context(), caller.ID)
	if err != nil {
		writeError(g, err)
		return
	}
	g.JSON(http.StatusOK, &models.ValidatorChoiceResponse{NomineeID: choice})
}

// choice godoc
// @Summary Get the caller's current confirmation
// @Tags validations
// @Produce json
// @Param x-profile-id header string true "Caller profile ID"
// @Success 200 {object} models.ValidatorChoiceResponse
// @Failure 404 {object} models.ErrorResponse "No completed cycle"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/validations/me [get]
func (c *ValidationController) choice(g *gin.Context) {
	caller := transport.Caller(g)
	choice, err := c.ledger.ValidatorChoice(g.Request.Context(), caller.ID)
	if err != nil {
		writeError(g, err)
		return
	}
	g.JSON(http.StatusOK, &models.ValidatorChoiceResponse{NomineeID: choice})
}
