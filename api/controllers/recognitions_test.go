package controllers

import (
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

type recognitionTestEnv struct {
	router   *gin.Engine
	balances *storage.MemoryPointsBalanceStorage
}

func setupRecognitionTestController(t *testing.T) *recognitionTestEnv {
	t.Helper()
	logging.Log = logrus.New()
	t.Setenv("ADMIN_TOKEN", "secret")

	env := &recognitionTestEnv{balances: storage.NewMemoryPointsBalanceStorage()}

	programs := storage.NewMemoryRecognitionProgramStorage()
	recognitions := storage.NewMemoryRecognitionStorage()
	profiles := storage.NewMemoryProfileStorage(testProfiles()...)

	controller := NewRecognitionController(programs, recognitions, env.balances, profiles)
	gin.SetMode(gin.TestMode)
	env.router = gin.New()
	controller.RegisterRoutes(env.router)
	return env
}

// createActiveProgram creates a program spanning today and seeds everyone's
// distributable balance.
func createActiveProgram(t *testing.T, router *gin.Engine, pointsPerUser int) models.ProgramResponse {
	t.Helper()

	today := time.Now().UTC()
	res := testutils.PerformRequest(router, http.MethodPost, "/api/admin/programs", models.CreateProgramRequest{
		Name:          "Q2 kudos",
		StartDate:     today.AddDate(0, 0, -1).Format("2006-01-02"),
		EndDate:       today.AddDate(0, 1, 0).Format("2006-01-02"),
		PointsPerUser: pointsPerUser,
	}, adminHeaders)
	require.Equal(t, http.StatusOK, res.Code)

	var program models.ProgramResponse
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &program))
	return program
}

func TestCreateProgramEndpoint(t *testing.T) {
	t.Run("Happy path - seeds distributable balances for every profile", func(t *testing.T) {
		env := setupRecognitionTestController(t)
		program := createActiveProgram(t, env.router, 100)

		res := testutils.PerformRequest(env.router, http.MethodGet, "/api/recognitions/balance", nil, map[string]string{
			"x-profile-id": "member-1",
		})
		require.Equal(t, http.StatusOK, res.Code)

		var balance models.BalanceResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &balance))
		assert.Equal(t, program.ID, balance.ProgramID)
		assert.Equal(t, 100, balance.DistributablePoints)
		assert.Zero(t, balance.EarnedPoints)
	})

	t.Run("Unhappy path - missing admin token", func(t *testing.T) {
		env := setupRecognitionTestController(t)

		res := testutils.PerformRequest(env.router, http.MethodPost, "/api/admin/programs", models.CreateProgramRequest{
			Name:          "Q2 kudos",
			StartDate:     "2025-04-01",
			EndDate:       "2025-06-30",
			PointsPerUser: 100,
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, res.Code)
	})

	t.Run("Unhappy path - end date before start date", func(t *testing.T) {
		env := setupRecognitionTestController(t)

		res := testutils.PerformRequest(env.router, http.MethodPost, "/api/admin/programs", models.CreateProgramRequest{
			Name:          "Q2 kudos",
			StartDate:     "2025-06-30",
			EndDate:       "2025-04-01",
			PointsPerUser: 100,
		}, adminHeaders)
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})
}

func TestSendRecognitionEndpoint(t *testing.T) {
	t.Run("Happy path - points move from sender to receiver", func(t *testing.T) {
		env := setupRecognitionTestController(t)
		createActiveProgram(t, env.router, 100)

		res := testutils.PerformRequest(env.router, http.MethodPost, "/api/recognitions", models.SendRecognitionRequest{
			ReceiverID: "member-2",
			Points:     30,
			Message:    "thanks for the review marathon",
			Tags:       []string{"teamwork"},
		}, map[string]string{"x-profile-id": "member-1"})
		require.Equal(t, http.StatusOK, res.Code)

		var recognition models.RecognitionResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &recognition))
		assert.Equal(t, "member-1", recognition.SenderID)
		assert.Equal(t, 30, recognition.Points)

		senderRes := testutils.PerformRequest(env.router, http.MethodGet, "/api/recognitions/balance", nil, map[string]string{
			"x-profile-id": "member-1",
		})
		require.Equal(t, http.StatusOK, senderRes.Code)
		var sender models.BalanceResponse
		require.NoError(t, json.Unmarshal(senderRes.Body.Bytes(), &sender))
		assert.Equal(t, 70, sender.DistributablePoints)

		receiverRes := testutils.PerformRequest(env.router, http.MethodGet, "/api/recognitions/balance", nil, map[string]string{
			"x-profile-id": "member-2",
		})
		require.Equal(t, http.StatusOK, receiverRes.Code)
		var receiver models.BalanceResponse
		require.NoError(t, json.Unmarshal(receiverRes.Body.Bytes(), &receiver))
		assert.Equal(t, 30, receiver.EarnedPoints)
		assert.Equal(t, 100, receiver.DistributablePoints)
	})

	t.Run("Unhappy path - insufficient distributable points", func(t *testing.T) {
		env := setupRecognitionTestController(t)
		createActiveProgram(t, env.router, 10)

		res := testutils.PerformRequest(env.router, http.MethodPost, "/api/recognitions", models.SendRecognitionRequest{
			ReceiverID: "member-2",
			Points:     50,
			Message:    "too generous",
		}, map[string]string{"x-profile-id": "member-1"})
		assert.Equal(t, http.StatusConflict, res.Code)
	})

	t.Run("Unhappy path - self recognition", func(t *testing.T) {
		env := setupRecognitionTestController(t)
		createActiveProgram(t, env.router, 100)

		res := testutils.PerformRequest(env.router, http.MethodPost, "/api/recognitions", models.SendRecognitionRequest{
			ReceiverID: "member-1",
			Points:     10,
			Message:    "good job me",
		}, map[string]string{"x-profile-id": "member-1"})
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})

	t.Run("Unhappy path - unknown receiver", func(t *testing.T) {
		env := setupRecognitionTestController(t)
		createActiveProgram(t, env.router, 100)

		res := testutils.PerformRequest(env.router, http.MethodPost, "/api/recognitions", models.SendRecognitionRequest{
			ReceiverID: "nobody",
			Points:     10,
			Message:    "hello?",
		}, map[string]string{"x-profile-id": "member-1"})
		assert.Equal(t, http.StatusNotFound, res.Code)
	})

	t.Run("Unhappy path - no active program", func(t *testing.T) {
		env := setupRecognitionTestController(t)

		res := testutils.PerformRequest(env.router, http.MethodPost, "/api/recognitions", models.SendRecognitionRequest{
			ReceiverID: "member-2",
			Points:     10,
			Message:    "thanks",
		}, map[string]string{"x-profile-id": "member-1"})
		assert.Equal(t, http.StatusNotFound, res.Code)
	})
}

func TestRecognitionFeedEndpoint(t *testing.T) {
	t.Run("private recognitions stay between sender and receiver", func(t *testing.T) {
		env := setupRecognitionTestController(t)
		createActiveProgram(t, env.router, 100)

		res := testutils.PerformRequest(env.router, http.MethodPost, "/api/recognitions", models.SendRecognitionRequest{
			ReceiverID: "member-2",
			Points:     10,
			Message:    "between us",
			Private:    true,
		}, map[string]string{"x-profile-id": "member-1"})
		require.Equal(t, http.StatusOK, res.Code)

		res = testutils.PerformRequest(env.router, http.MethodPost, "/api/recognitions", models.SendRecognitionRequest{
			ReceiverID: "member-3",
			Points:     10,
			Message:    "for everyone to see",
		}, map[string]string{"x-profile-id": "member-1"})
		require.Equal(t, http.StatusOK, res.Code)

		feedOf := func(profileID string) []models.RecognitionResponse {
			res := testutils.PerformRequest(env.router, http.MethodGet, "/api/recognitions", nil, map[string]string{
				"x-profile-id": profileID,
			})
			require.Equal(t, http.StatusOK, res.Code)
			var feed []models.RecognitionResponse
			require.NoError(t, json.Unmarshal(res.Body.Bytes(), &feed))
			return feed
		}

		assert.Len(t, feedOf("member-1"), 2)
		assert.Len(t, feedOf("member-2"), 2)
		assert.Len(t, feedOf("excom-1"), 1)
	})
}

func TestActiveProgramEndpoint(t *testing.T) {
	t.Run("Happy path", func(t *testing.T) {
		env := setupRecognitionTestController(t)
		created := createActiveProgram(t, env.router, 100)

		res := testutils.PerformRequest(env.router, http.MethodGet, "/api/programs/active", nil, nil)
		require.Equal(t, http.StatusOK, res.Code)

		var program models.ProgramResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &program))
		assert.Equal(t, created.ID, program.ID)
	})

	t.Run("Unhappy path - no program covers today", func(t *testing.T) {
		env := setupRecognitionTestController(t)

		res := testutils.PerformRequest(env.router, http.MethodGet, "/api/programs/active", nil, nil)
		assert.Equal(t, http.StatusNotFound, res.Code)
	})
}
