package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	testutils "github.com/ThomasWeyssow/rewaard-api/api/controllers/testing"
	"github.com/ThomasWeyssow/rewaard-api/api/models"
	"github.com/ThomasWeyssow/rewaard-api/logging"
	"github.com/ThomasWeyssow/rewaard-api/storage"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAreaMetaTestController(t *testing.T) *gin.Engine {
	t.Helper()
	logging.Log = logrus.New()
	t.Setenv("ADMIN_TOKEN", "secret")

	controller := NewAreaMetaController(storage.NewMemoryNominationAreaStorage())
	gin.SetMode(gin.TestMode)
	r := gin.New()
	controller.RegisterRoutes(r)
	return r
}

func TestNominationAreaCRUD(t *testing.T) {
	t.Run("Happy path - create, get, update, delete", func(t *testing.T) {
		router := setupAreaMetaTestController(t)

		createRes := testutils.PerformRequest(router, http.MethodPost, "/api/meta/areas", models.NominationAreaCreateRequest{
			ID:       "area-1",
			Category: "Collaboration",
			Areas: []models.AreaItem{
				{Title: "Teamwork", Description: "Helps others succeed"},
			},
			Icon: "handshake",
		}, adminHeaders)
		require.Equal(t, http.StatusOK, createRes.Code)

		getRes := testutils.PerformRequest(router, http.MethodGet, "/api/meta/areas/area-1", nil, nil)
		require.Equal(t, http.StatusOK, getRes.Code)
		var area models.NominationAreaResponse
		require.NoError(t, json.Unmarshal(getRes.Body.Bytes(), &area))
		assert.Equal(t, "Collaboration", area.Category)
		require.Len(t, area.Areas, 1)
		assert.Equal(t, "Teamwork", area.Areas[0].Title)

		updateRes := testutils.PerformRequest(router, http.MethodPut, "/api/meta/areas/area-1", models.NominationAreaUpdateRequest{
			Category: "Collaboration & Support",
			Areas: []models.AreaItem{
				{Title: "Teamwork", Description: "Helps others succeed"},
				{Title: "Mentoring", Description: "Grows colleagues"},
			},
		}, adminHeaders)
		require.Equal(t, http.StatusOK, updateRes.Code)

		getRes = testutils.PerformRequest(router, http.MethodGet, "/api/meta/areas/area-1", nil, nil)
		require.Equal(t, http.StatusOK, getRes.Code)
		require.NoError(t, json.Unmarshal(getRes.Body.Bytes(), &area))
		assert.Equal(t, "Collaboration & Support", area.Category)
		assert.Len(t, area.Areas, 2)

		delRes := testutils.PerformRequest(router, http.MethodDelete, "/api/meta/areas/area-1", nil, adminHeaders)
		require.Equal(t, http.StatusOK, delRes.Code)

		getRes = testutils.PerformRequest(router, http.MethodGet, "/api/meta/areas/area-1", nil, nil)
		assert.Equal(t, http.StatusNotFound, getRes.Code)
	})

	t.Run("Happy path - list is sorted by category", func(t *testing.T) {
		router := setupAreaMetaTestController(t)

		for _, category := range []string{"Ownership", "Collaboration", "Innovation"} {
			res := testutils.PerformRequest(router, http.MethodPost, "/api/meta/areas", models.NominationAreaCreateRequest{
				Category: category,
			}, adminHeaders)
			require.Equal(t, http.StatusOK, res.Code)
		}

		res := testutils.PerformRequest(router, http.MethodGet, "/api/meta/areas", nil, nil)
		require.Equal(t, http.StatusOK, res.Code)

		var areas []models.NominationAreaResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &areas))
		require.Len(t, areas, 3)
		assert.Equal(t, "Collaboration", areas[0].Category)
		assert.Equal(t, "Innovation", areas[1].Category)
		assert.Equal(t, "Ownership", areas[2].Category)
	})

	t.Run("Unhappy path - duplicate ID conflicts", func(t *testing.T) {
		router := setupAreaMetaTestController(t)

		area := models.NominationAreaCreateRequest{ID: "area-1", Category: "Collaboration"}
		res := testutils.PerformRequest(router, http.MethodPost, "/api/meta/areas", area, adminHeaders)
		require.Equal(t, http.StatusOK, res.Code)

		res = testutils.PerformRequest(router, http.MethodPost, "/api/meta/areas", area, adminHeaders)
		assert.Equal(t, http.StatusConflict, res.Code)
	})

	t.Run("Unhappy path - writes need the admin token", func(t *testing.T) {
		router := setupAreaMetaTestController(t)

		res := testutils.PerformRequest(router, http.MethodPost, "/api/meta/areas", models.NominationAreaCreateRequest{
			Category: "Collaboration",
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, res.Code)
	})

	t.Run("Unhappy path - empty category rejected", func(t *testing.T) {
		router := setupAreaMetaTestController(t)

		res := testutils.PerformRequest(router, http.MethodPost, "/api/meta/areas", models.NominationAreaCreateRequest{
			Icon: "question",
		}, adminHeaders)
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})
}
