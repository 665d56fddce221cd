package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	testutils "github.com/ThomasWeyssow/rewaard-api/api/controllers/testing"
	"github.com/ThomasWeyssow/rewaard-api/api/models"
	"github.com/ThomasWeyssow/rewaard-api/logging"
	"github.com/ThomasWeyssow/rewaard-api/storage"
	"github.com/ThomasWeyssow/rewaard-api/workflow"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validationTestEnv struct {
	router          *gin.Engine
	now             *time.Time
	validationStore *storage.MemoryValidationStorage
}

// setupValidationTestController seeds a completed cycle with seven distinct
// nominees, so nominee-7 sits outside the finalist slots.
func setupValidationTestController(t *testing.T) *validationTestEnv {
	t.Helper()
	logging.Log = logrus.New()

	now := testDate(2025, time.April, 2)
	env := &validationTestEnv{
		now:             &now,
		validationStore: storage.NewMemoryValidationStorage(),
	}

	cycleStore := storage.NewMemoryCycleStorage()
	require.NoError(t, cycleStore.Put(context.Background(), &storage.Cycle{
		ID:                "cycle-1",
		Status:            storage.CycleStatusCompleted,
		StartDate:         testDate(2025, time.March, 1),
		EndDate:           testDate(2025, time.March, 31),
		ValidationEndDate: testDate(2025, time.April, 7),
	}))

	cycles := workflow.NewCycleService(cycleStore)
	cycles.Now = func() time.Time { return *env.now }

	nominationStore := storage.NewMemoryNominationStorage()
	for i := 1; i <= 7; i++ {
		for j := 0; j < 9-i; j++ {
			require.NoError(t, nominationStore.Create(context.Background(), &storage.Nomination{
				CycleID:   "cycle-1",
				VoterID:   fmt.Sprintf("voter-%d-%d", i, j),
				ID:        fmt.Sprintf("n-%d-%d", i, j),
				NomineeID: fmt.Sprintf("nominee-%d", i),
			}))
		}
	}

	ledger := workflow.NewValidationLedger(env.validationStore, nominationStore, cycles)
	profiles := storage.NewMemoryProfileStorage(testProfiles()...)

	controller := NewValidationController(ledger, profiles)
	gin.SetMode(gin.TestMode)
	env.router = gin.New()
	controller.RegisterRoutes(env.router)
	return env
}

func TestConfirmValidationEndpoint(t *testing.T) {
	confirm := func(nomineeID string) models.ConfirmValidationRequest {
		return models.ConfirmValidationRequest{NomineeID: nomineeID}
	}
	headers := map[string]string{"x-profile-id": "excom-1"}

	t.Run("Happy path - confirm, switch, toggle off", func(t *testing.T) {
		env := setupValidationTestController(t)

		res := testutils.PerformRequest(env.router, http.MethodPost, "/api/validations", confirm("nominee-1"), headers)
		require.Equal(t, http.StatusOK, res.Code)

		var choice models.ValidatorChoiceResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &choice))
		assert.Equal(t, "nominee-1", choice.NomineeID)

		// Switch to another finalist; exactly one row remains.
		res = testutils.PerformRequest(env.router, http.MethodPost, "/api/validations", confirm("nominee-2"), headers)
		require.Equal(t, http.StatusOK, res.Code)
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &choice))
		assert.Equal(t, "nominee-2", choice.NomineeID)

		rows, err := env.validationStore.GetByCycle(context.Background(), "cycle-1")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "nominee-2", rows[0].NomineeID)

		// Confirming the same nominee again withdraws.
		res = testutils.PerformRequest(env.router, http.MethodPost, "/api/validations", confirm("nominee-2"), headers)
		require.Equal(t, http.StatusOK, res.Code)
		// The empty choice serializes as {} (omitempty), so reset the
		// unmarshal target to avoid reading the previous value.
		choice = models.ValidatorChoiceResponse{}
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &choice))
		assert.Empty(t, choice.NomineeID)

		rows, err = env.validationStore.GetByCycle(context.Background(), "cycle-1")
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("Unhappy path - member cannot validate", func(t *testing.T) {
		env := setupValidationTestController(t)

		res := testutils.PerformRequest(env.router, http.MethodPost, "/api/validations", confirm("nominee-1"), map[string]string{
			"x-profile-id": "member-1",
		})
		assert.Equal(t, http.StatusForbidden, res.Code)
	})

	t.Run("Unhappy path - admin cannot validate either", func(t *testing.T) {
		env := setupValidationTestController(t)

		res := testutils.PerformRequest(env.router, http.MethodPost, "/api/validations", confirm("nominee-1"), map[string]string{
			"x-profile-id": "admin-1",
		})
		assert.Equal(t, http.StatusForbidden, res.Code)
	})

	t.Run("Unhappy path - nominee outside the finalist slots", func(t *testing.T) {
		env := setupValidationTestController(t)

		res := testutils.PerformRequest(env.router, http.MethodPost, "/api/validations", confirm("nominee-7"), headers)
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})

	t.Run("Unhappy path - validation window closed", func(t *testing.T) {
		env := setupValidationTestController(t)
		*env.now = testDate(2025, time.April, 7)

		res := testutils.PerformRequest(env.router, http.MethodPost, "/api/validations", confirm("nominee-1"), headers)
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})
}

func TestValidatorChoiceEndpoint(t *testing.T) {
	headers := map[string]string{"x-profile-id": "excom-1"}

	t.Run("Happy path - empty before confirming", func(t *testing.T) {
		env := setupValidationTestController(t)

		res := testutils.PerformRequest(env.router, http.MethodGet, "/api/validations/me", nil, headers)
		require.Equal(t, http.StatusOK, res.Code)

		var choice models.ValidatorChoiceResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &choice))
		assert.Empty(t, choice.NomineeID)
	})

	t.Run("Happy path - reflects the current confirmation", func(t *testing.T) {
		env := setupValidationTestController(t)

		res := testutils.PerformRequest(env.router, http.MethodPost, "/api/validations", models.ConfirmValidationRequest{NomineeID: "nominee-1"}, headers)
		require.Equal(t, http.StatusOK, res.Code)

		res = testutils.PerformRequest(env.router, http.MethodGet, "/api/validations/me", nil, headers)
		require.Equal(t, http.StatusOK, res.Code)

		var choice models.ValidatorChoiceResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &choice))
		assert.Equal(t, "nominee-1", choice.NomineeID)
	})
}
