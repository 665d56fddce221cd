package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	testutils "github.com/ThomasWeyssow/rewaard-api/api/controllers/testing"
	"github.com/ThomasWeyssow/rewaard-api/api/models"
	"github.com/ThomasWeyssow/rewaard-api/logging"
	"github.com/ThomasWeyssow/rewaard-api/storage"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rewardTestEnv struct {
	router   *gin.Engine
	balances *storage.MemoryPointsBalanceStorage
}

// setupRewardTestController seeds an active program and gives member-1 some
// earned points to spend.
func setupRewardTestController(t *testing.T) *rewardTestEnv {
	t.Helper()
	logging.Log = logrus.New()
	t.Setenv("ADMIN_TOKEN", "secret")

	env := &rewardTestEnv{balances: storage.NewMemoryPointsBalanceStorage()}

	today := time.Now().UTC()
	programs := storage.NewMemoryRecognitionProgramStorage()
	require.NoError(t, programs.Create(context.Background(), &storage.RecognitionProgram{
		ID:            "program-1",
		Name:          "Q2 kudos",
		StartDate:     today.AddDate(0, 0, -1),
		EndDate:       today.AddDate(0, 1, 0),
		PointsPerUser: 100,
	}))
	require.NoError(t, env.balances.Put(context.Background(), &storage.PointsBalance{
		ProfileID: "member-1",
		ProgramID: "program-1",
		Earned:    80,
	}))

	rewards := storage.NewMemoryRewardStorage()
	profiles := storage.NewMemoryProfileStorage(testProfiles()...)

	controller := NewRewardController(rewards, programs, env.balances, profiles)
	gin.SetMode(gin.TestMode)
	env.router = gin.New()
	controller.RegisterRoutes(env.router)
	return env
}

func createReward(t *testing.T, router *gin.Engine, name string, cost int) models.RewardResponse {
	t.Helper()

	res := testutils.PerformRequest(router, http.MethodPost, "/api/admin/rewards", models.RewardCreateRequest{
		Name:       name,
		PointsCost: cost,
	}, adminHeaders)
	require.Equal(t, http.StatusOK, res.Code)

	var reward models.RewardResponse
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &reward))
	return reward
}

func TestListRewardsEndpoint(t *testing.T) {
	env := setupRewardTestController(t)
	createReward(t, env.router, "Hoodie", 60)
	createReward(t, env.router, "Sticker pack", 10)
	createReward(t, env.router, "Coffee voucher", 25)

	res := testutils.PerformRequest(env.router, http.MethodGet, "/api/rewards", nil, nil)
	require.Equal(t, http.StatusOK, res.Code)

	var rewards []models.RewardResponse
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &rewards))
	require.Len(t, rewards, 3)
	assert.Equal(t, "Sticker pack", rewards[0].Name)
	assert.Equal(t, "Coffee voucher", rewards[1].Name)
	assert.Equal(t, "Hoodie", rewards[2].Name)
}

func TestRedeemRewardEndpoint(t *testing.T) {
	t.Run("Happy path - redeem issues a code and deducts points", func(t *testing.T) {
		env := setupRewardTestController(t)
		reward := createReward(t, env.router, "Hoodie", 60)

		res := testutils.PerformRequest(env.router, http.MethodPost, "/api/rewards/redeem", models.RedeemRequest{
			RewardID: reward.ID,
		}, map[string]string{"x-profile-id": "member-1"})
		require.Equal(t, http.StatusOK, res.Code)

		var redemption models.RedeemResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &redemption))
		assert.Len(t, redemption.RedemptionCode, 8)
		assert.Equal(t, 20, redemption.RemainingPoints)

		balance, err := env.balances.Get(context.Background(), "member-1", "program-1")
		require.NoError(t, err)
		assert.Equal(t, 20, balance.Earned)
	})

	t.Run("Unhappy path - not enough earned points", func(t *testing.T) {
		env := setupRewardTestController(t)
		reward := createReward(t, env.router, "Weekend trip", 500)

		res := testutils.PerformRequest(env.router, http.MethodPost, "/api/rewards/redeem", models.RedeemRequest{
			RewardID: reward.ID,
		}, map[string]string{"x-profile-id": "member-1"})
		assert.Equal(t, http.StatusConflict, res.Code)

		balance, err := env.balances.Get(context.Background(), "member-1", "program-1")
		require.NoError(t, err)
		assert.Equal(t, 80, balance.Earned)
	})

	t.Run("Unhappy path - unknown reward", func(t *testing.T) {
		env := setupRewardTestController(t)

		res := testutils.PerformRequest(env.router, http.MethodPost, "/api/rewards/redeem", models.RedeemRequest{
			RewardID: "missing",
		}, map[string]string{"x-profile-id": "member-1"})
		assert.Equal(t, http.StatusNotFound, res.Code)
	})

	t.Run("Unhappy path - no balance at all", func(t *testing.T) {
		env := setupRewardTestController(t)
		reward := createReward(t, env.router, "Sticker pack", 10)

		res := testutils.PerformRequest(env.router, http.MethodPost, "/api/rewards/redeem", models.RedeemRequest{
			RewardID: reward.ID,
		}, map[string]string{"x-profile-id": "member-2"})
		assert.Equal(t, http.StatusConflict, res.Code)
	})
}

func TestRewardAdminEndpoints(t *testing.T) {
	t.Run("Happy path - update and delete", func(t *testing.T) {
		env := setupRewardTestController(t)
		reward := createReward(t, env.router, "Hoodie", 60)

		res := testutils.PerformRequest(env.router, http.MethodPut, "/api/admin/rewards/"+reward.ID, models.RewardUpdateRequest{
			Name:       "Hoodie v2",
			PointsCost: 70,
		}, adminHeaders)
		require.Equal(t, http.StatusOK, res.Code)

		var updated models.RewardResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &updated))
		assert.Equal(t, "Hoodie v2", updated.Name)
		assert.Equal(t, 70, updated.PointsCost)

		res = testutils.PerformRequest(env.router, http.MethodDelete, "/api/admin/rewards/"+reward.ID, nil, adminHeaders)
		require.Equal(t, http.StatusOK, res.Code)

		res = testutils.PerformRequest(env.router, http.MethodGet, "/api/rewards", nil, nil)
		require.Equal(t, http.StatusOK, res.Code)
		var rewards []models.RewardResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &rewards))
		assert.Empty(t, rewards)
	})

	t.Run("Unhappy path - create without admin token", func(t *testing.T) {
		env := setupRewardTestController(t)

		res := testutils.PerformRequest(env.router, http.MethodPost, "/api/admin/rewards", models.RewardCreateRequest{
			Name:       "Hoodie",
			PointsCost: 60,
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, res.Code)
	})

	t.Run("Unhappy path - zero cost rejected", func(t *testing.T) {
		env := setupRewardTestController(t)

		res := testutils.PerformRequest(env.router, http.MethodPost, "/api/admin/rewards", models.RewardCreateRequest{
			Name:       "Free stuff",
			PointsCost: 0,
		}, adminHeaders)
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})
}
