package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ThomasWeyssow/rewaard-api/api/models"
	"github.com/ThomasWeyssow/rewaard-api/api/transport"
	"github.com/ThomasWeyssow/rewaard-api/logging"
	"github.com/ThomasWeyssow/rewaard-api/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RecognitionController struct {
	programs     storage.RecognitionProgramStorage
	recognitions storage.RecognitionStorage
	balances     storage.PointsBalanceStorage
	profiles     storage.ProfileStorage
}

func NewRecognitionController(programs storage.RecognitionProgramStorage, recognitions storage.RecognitionStorage, balances storage.PointsBalanceStorage, profiles storage.ProfileStorage) *RecognitionController {
	return &RecognitionController{
		programs:     programs,
		recognitions: recognitions,
		balances:     balances,
		profiles:     profiles,
	}
}

func (c *RecognitionController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/recognitions", transport.CallerMiddleware(c.profiles))
	group.GET("", c.feed)
	group.POST("", c.send)
	group.GET("/balance", c.balance)

	engine.GET("/api/programs/active", c.activeProgram)

	admin := engine.Group("/api/admin/programs", transport.AdminAuthMiddleware())
	admin.POST("", c.createProgram)
}

// send godoc
// @Summary Send a recognition
// @Description Moves points from the caller's distributable balance to the receiver's earned balance
// @Tags recognitions
// @Accept json
// @Produce json
// @Param recognition body models.SendRecognitionRequest true "Recognition"
// @Param x-profile-id header string true "Caller profile ID"
// @Success 200 {object} models.RecognitionResponse
// @Failure 400 {object} models.ErrorResponse "Empty message, bad points, or self-recognition"
// @Failure 404 {object} models.ErrorResponse "No active program or unknown receiver"
// @Failure 409 {object} models.ErrorResponse "Insufficient distributable points"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/recognitions [post]
func (c *RecognitionController) send(g *gin.Context) {
	var req models.SendRecognitionRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}

	caller := transport.Caller(g)
	if req.ReceiverID == caller.ID {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "cannot recognize yourself"})
		return
	}
	if req.Points <= 0 {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "points must be positive"})
		return
	}
	if req.Message == "" {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "message is required"})
		return
	}

	if _, err := c.profiles.Get(g.Request.Context(), req.ReceiverID); err != nil {
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "receiver not found"})
		return
	}

	program, err := c.findActiveProgram(g)
	if err != nil {
		writeError(g, err)
		return
	}

	if err := c.balances.Transfer(g.Request.Context(), program.ID, caller.ID, req.ReceiverID, req.Points); err != nil {
		logging.Log.Errorf("RECOGNITION: points transfer from %s to %s failed: %v", caller.ID, req.ReceiverID, err)
		writeError(g, err)
		return
	}

	recognition := &storage.Recognition{
		ProgramID:  program.ID,
		ID:         uuid.NewString(),
		SenderID:   caller.ID,
		ReceiverID: req.ReceiverID,
		Points:     req.Points,
		Message:    req.Message,
		Tags:       req.Tags,
		Private:    req.Private,
		CreatedAt:  time.Now().UTC(),
	}
	if err := c.recognitions.Create(g.Request.Context(), recognition); err != nil {
		logging.Log.Errorf("RECOGNITION: failed to store recognition: %v", err)
		writeError(g, err)
		return
	}

	logging.Log.Infof("RECOGNITION: %s sent %d points to %s", caller.ID, req.Points, req.ReceiverID)
	g.JSON(http.StatusOK, models.TransformRecognitionFromStorage(recognition))
}

// feed godoc
// @Summary Recognition feed for the active program
// @Description Public recognitions plus the caller's own private ones
// @Tags recognitions
// @Produce json
// @Param x-profile-id header string true "Caller profile ID"
// @Success 200 {array} models.RecognitionResponse
// @Failure 404 {object} models.ErrorResponse "No active program"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/recognitions [get]
func (c *RecognitionController) feed(g *gin.Context) {
	program, err := c.findActiveProgram(g)
	if err != nil {
		writeError(g, err)
		return
	}

	recognitions, err := c.recognitions.GetByProgram(g.Request.Context(), program.ID)
	if err != nil {
		writeError(g, err)
		return
	}

	caller := transport.Caller(g)
	response := make([]models.RecognitionResponse, 0, len(recognitions))
	for _, r := range recognitions {
		if r.Private && r.SenderID != caller.ID && r.ReceiverID != caller.ID {
			continue
		}
		response = append(response, models.TransformRecognitionFromStorage(r))
	}
	g.JSON(http.StatusOK, response)
}

// balance godoc
// @Summary The caller's points balance in the active program
// @Tags recognitions
// @Produce json
// @Param x-profile-id header string true "Caller profile ID"
// @Success 200 {object} models.BalanceResponse
// @Failure 404 {object} models.ErrorResponse "No active program or no balance"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/recognitions/balance [get]
func (c *RecognitionController) balance(g *gin.Context) {
	program, err := c.findActiveProgram(g)
	if err != nil {
		writeError(g, err)
		return
	}

	caller := transport.Caller(g)
	balance, err := c.balances.Get(g.Request.Context(), caller.ID, program.ID)
	if err != nil {
		writeError(g, err)
		return
	}
	g.JSON(http.StatusOK, &models.BalanceResponse{
		ProfileID:           balance.ProfileID,
		ProgramID:           balance.ProgramID,
		DistributablePoints: balance.Distributable,
		EarnedPoints:        balance.Earned,
	})
}

// activeProgram godoc
// @Summary The recognition program covering today
// @Tags recognitions
// @Produce json
// @Success 200 {object} models.ProgramResponse
// @Failure 404 {object} models.ErrorResponse "No active program"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/programs/active [get]
func (c *RecognitionController) activeProgram(g *gin.Context) {
	program, err := c.findActiveProgram(g)
	if err != nil {
		writeError(g, err)
		return
	}
	g.JSON(http.StatusOK, models.TransformProgramFromStorage(program))
}

// @Security AdminToken
// createProgram godoc
// @Summary Create a recognition program
// @Description Seeds every profile's distributable balance with the program's points-per-user
// @Tags recognitions
// @Accept json
// @Produce json
// @Param program body models.CreateProgramRequest true "Program"
// @Success 200 {object} models.ProgramResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/programs [post]
func (c *RecognitionController) createProgram(g *gin.Context) {
	var req models.CreateProgramRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid start date, expected YYYY-MM-DD"})
		return
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil || !endDate.After(startDate) {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid end date"})
		return
	}
	if req.PointsPerUser <= 0 {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "pointsPerUser must be positive"})
		return
	}

	program := &storage.RecognitionProgram{
		ID:            uuid.NewString(),
		Name:          req.Name,
		StartDate:     startDate,
		EndDate:       endDate,
		PointsPerUser: req.PointsPerUser,
	}
	if err := c.programs.Create(g.Request.Context(), program); err != nil {
		logging.Log.Errorf("ADMIN: failed to create program: %v", err)
		writeError(g, err)
		return
	}

	// Seed distributable balances for everyone in the directory.
	profiles, err := c.profiles.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to load profiles for program seeding: %v", err)
		writeError(g, err)
		return
	}
	for _, p := range profiles {
		balance := &storage.PointsBalance{
			ProfileID:     p.ID,
			ProgramID:     program.ID,
			Distributable: req.PointsPerUser,
		}
		if err := c.balances.Put(g.Request.Context(), balance); err != nil {
			logging.Log.Errorf("ADMIN: failed to seed balance for profile %s: %v", p.ID, err)
		}
	}

	logging.Log.Infof("ADMIN: created program %s with %d points per user", program.ID, req.PointsPerUser)
	g.JSON(http.StatusOK, models.TransformProgramFromStorage(program))
}

func (c *RecognitionController) findActiveProgram(g *gin.Context) (*storage.RecognitionProgram, error) {
	programs, err := c.programs.GetAll(g.Request.Context())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	for _, p := range programs {
		if !now.Before(p.StartDate) && now.Before(p.EndDate.AddDate(0, 0, 1)) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no active recognition program: %w", storage.ErrItemNotFound)
}
