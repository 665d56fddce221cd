package controllers

import (
	"net/http"
	"sort"

	"github.com/ThomasWeyssow/rewaard-api/api/models"
	"github.com/ThomasWeyssow/rewaard-api/logging"
	"github.com/ThomasWeyssow/rewaard-api/storage"
	"github.com/gin-gonic/gin"
)

// ProfileController exposes the read-only employee directory.
// Profiles are provisioned out of band, so there are no write routes.
type ProfileController struct {
	profiles storage.ProfileStorage
}

func NewProfileController(profiles storage.ProfileStorage) *ProfileController {
	return &ProfileController{profiles: profiles}
}

func (c *ProfileController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/profiles")
	group.GET("", c.getAll)
	group.GET("/:id", c.get)
}

// getAll godoc
// @Summary List all profiles
// @Tags profiles
// @Produce json
// @Success 200 {array} models.ProfileResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/profiles [get]
func (c *ProfileController) getAll(g *gin.Context) {
	profiles, err := c.profiles.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("PROFILE: failed to list profiles: %v", err)
		writeError(g, err)
		return
	}

	// Sort this so it shows the same for everyone
	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].LastName < profiles[j].LastName
	})

	response := make([]models.ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		response = append(response, models.TransformProfileFromStorage(p))
	}
	g.JSON(http.StatusOK, response)
}

// get godoc
// @Summary Get a profile by ID
// @Tags profiles
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} models.ProfileResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/profiles/{id} [get]
func (c *ProfileController) get(g *gin.Context) {
	profile, err := c.profiles.Get(g.Request.Context(), g.Param("id"))
	if err != nil {
		writeError(g, err)
		return
	}
	g.JSON(http.StatusOK, models.TransformProfileFromStorage(profile))
}
