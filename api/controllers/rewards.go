package controllers

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/ThomasWeyssow/rewaard-api/api/models"
	"github.com/ThomasWeyssow/rewaard-api/api/transport"
	"github.com/ThomasWeyssow/rewaard-api/logging"
	"github.com/ThomasWeyssow/rewaard-api/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const redemptionCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

type RewardController struct {
	rewards  storage.RewardStorage
	programs storage.RecognitionProgramStorage
	balances storage.PointsBalanceStorage
	profiles storage.ProfileStorage
}

func NewRewardController(rewards storage.RewardStorage, programs storage.RecognitionProgramStorage, balances storage.PointsBalanceStorage, profiles storage.ProfileStorage) *RewardController {
	return &RewardController{
		rewards:  rewards,
		programs: programs,
		balances: balances,
		profiles: profiles,
	}
}

func (c *RewardController) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/api/rewards", c.getAll)
	engine.POST("/api/rewards/redeem", transport.CallerMiddleware(c.profiles), c.redeem)

	admin := engine.Group("/api/admin/rewards", transport.AdminAuthMiddleware())
	admin.POST("", c.create)
	admin.PUT("/:id", c.update)
	admin.DELETE("/:id", c.delete)
}

// getAll godoc
// @Summary List all rewards
// @Tags rewards
// @Produce json
// @Success 200 {array} models.RewardResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/rewards [get]
func (c *RewardController) getAll(g *gin.Context) {
	rewards, err := c.rewards.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("REWARD: failed to list rewards: %v", err)
		writeError(g, err)
		return
	}

	// Sort this so it shows the same for everyone
	sort.SliceStable(rewards, func(i, j int) bool {
		return rewards[i].PointsCost < rewards[j].PointsCost
	})

	response := make([]models.RewardResponse, 0, len(rewards))
	for _, r := range rewards {
		response = append(response, models.TransformRewardFromStorage(r))
	}
	g.JSON(http.StatusOK, response)
}

// redeem godoc
// @Summary Redeem a reward
// @Description Deducts the reward's cost from the caller's earned points and issues a redemption code
// @Tags rewards
// @Accept json
// @Produce json
// @Param redemption body models.RedeemRequest true "Redemption"
// @Param x-profile-id header string true "Caller profile ID"
// @Success 200 {object} models.RedeemResponse
// @Failure 404 {object} models.ErrorResponse "Unknown reward or no active program"
// @Failure 409 {object} models.ErrorResponse "Insufficient earned points"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/rewards/redeem [post]
func (c *RewardController) redeem(g *gin.Context) {
	var req models.RedeemRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}

	reward, err := c.rewards.Get(g.Request.Context(), req.RewardID)
	if err != nil {
		writeError(g, err)
		return
	}

	program, err := c.findActiveProgram(g)
	if err != nil {
		writeError(g, err)
		return
	}

	caller := transport.Caller(g)
	if err := c.balances.Spend(g.Request.Context(), caller.ID, program.ID, reward.PointsCost); err != nil {
		logging.Log.Warnf("REWARD: redemption of %s by %s failed: %v", reward.ID, caller.ID, err)
		writeError(g, err)
		return
	}

	balance, err := c.balances.Get(g.Request.Context(), caller.ID, program.ID)
	if err != nil {
		writeError(g, err)
		return
	}

	logging.Log.Infof("REWARD: %s redeemed %s for %d points", caller.ID, reward.ID, reward.PointsCost)
	g.JSON(http.StatusOK, &models.RedeemResponse{
		RedemptionCode:  c.generateRedemptionCode(),
		RemainingPoints: balance.Earned,
	})
}

// @Security AdminToken
// create godoc
// @Summary Create a reward
// @Tags rewards
// @Accept json
// @Produce json
// @Param reward body models.RewardCreateRequest true "Reward"
// @Success 200 {object} models.RewardResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/rewards [post]
func (c *RewardController) create(g *gin.Context) {
	var req models.RewardCreateRequest
	if err := g.ShouldBindJSON(&req); err != nil || req.PointsCost < 1 {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request, missing name or points cost"})
		return
	}

	reward := &storage.Reward{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		PointsCost:  req.PointsCost,
		ImageURL:    req.ImageURL,
	}
	if err := c.rewards.Create(g.Request.Context(), reward); err != nil {
		logging.Log.Errorf("ADMIN: failed to create reward: %v", err)
		writeError(g, err)
		return
	}

	logging.Log.Infof("ADMIN: created reward %s (%d points)", reward.ID, reward.PointsCost)
	g.JSON(http.StatusOK, models.TransformRewardFromStorage(reward))
}

// @Security AdminToken
// update godoc
// @Summary Update a reward
// @Tags rewards
// @Accept json
// @Produce json
// @Param id path string true "Reward ID"
// @Param reward body models.RewardUpdateRequest true "Reward"
// @Success 200 {object} models.RewardResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/rewards/{id} [put]
func (c *RewardController) update(g *gin.Context) {
	id := g.Param("id")

	var req models.RewardUpdateRequest
	if err := g.ShouldBindJSON(&req); err != nil || req.PointsCost < 1 {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request, missing name or points cost"})
		return
	}

	reward := &storage.Reward{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		PointsCost:  req.PointsCost,
		ImageURL:    req.ImageURL,
	}
	if err := c.rewards.Update(g.Request.Context(), reward); err != nil {
		logging.Log.Errorf("ADMIN: failed to update reward %s: %v", id, err)
		writeError(g, err)
		return
	}
	g.JSON(http.StatusOK, models.TransformRewardFromStorage(reward))
}

// @Security AdminToken
// delete godoc
// @Summary Delete a reward
// @Tags rewards
// @Produce json
// @Param id path string true "Reward ID"
// @Success 200 {object} models.MessageResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/rewards/{id} [delete]
func (c *RewardController) delete(g *gin.Context) {
	id := g.Param("id")
	if err := c.rewards.Delete(g.Request.Context(), id); err != nil {
		logging.Log.Errorf("ADMIN: failed to delete reward %s: %v", id, err)
		writeError(g, err)
		return
	}
	logging.Log.Infof("ADMIN: deleted reward %s", id)
	g.JSON(http.StatusOK, &models.MessageResponse{Message: "reward deleted"})
}

func (c *RewardController) findActiveProgram(g *gin.Context) (*storage.RecognitionProgram, error) {
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

func (c *RewardController) generateRedemptionCode() string {
	code, err := gonanoid.Generate(redemptionCodeAlphabet, 8)
	if err != nil {
		logging.Log.Errorf("REWARD: failed to generate redemption code: %v", err)
		return "ERROR"
	}
	return code
}
