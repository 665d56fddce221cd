package controllers

import (
	"errors"
	"net/http"
	"sort"

	"github.com/ThomasWeyssow/rewaard-api/api/models"
	"github.com/ThomasWeyssow/rewaard-api/api/transport"
	"github.com/ThomasWeyssow/rewaard-api/logging"
	"github.com/ThomasWeyssow/rewaard-api/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AreaMetaController struct {
	storage storage.NominationAreaStorage
}

func NewAreaMetaController(s storage.NominationAreaStorage) *AreaMetaController {
	return &AreaMetaController{storage: s}
}

func (c *AreaMetaController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/meta/areas")

	group.GET("", c.getAll)
	group.GET("/:id", c.get)
	group.POST("", transport.AdminAuthMiddleware(), c.create)
	group.PUT("/:id", transport.AdminAuthMiddleware(), c.update)
	group.DELETE("/:id", transport.AdminAuthMiddleware(), c.delete)
}

// @Summary Get all nomination areas
// @Tags Meta/Areas
// @Produce json
// @Success 200 {array} models.NominationAreaResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/meta/areas [get]
func (c *AreaMetaController) getAll(g *gin.Context) {
	areas, err := c.storage.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("META: failed to get all nomination areas: %v", err)
		g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	// Sort this so it shows the same for everyone
	sort.SliceStable(areas, func(i, j int) bool {
		return areas[i].Category < areas[j].Category
	})

	response := make([]models.NominationAreaResponse, 0, len(areas))
	for _, area := range areas {
		response = append(response, models.TransformNominationAreaFromStorage(area))
	}
	g.JSON(http.StatusOK, response)
}

// @Summary Get a nomination area by ID
// @Tags Meta/Areas
// @Produce json
// @Param id path string true "Area ID"
// @Success 200 {object} models.NominationAreaResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/meta/areas/{id} [get]
func (c *AreaMetaController) get(g *gin.Context) {
	area, err := c.storage.Get(g.Request.Context(), g.Param("id"))
	if err != nil {
		logging.Log.Errorf("META: failed to get nomination area: %v", err)
		g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}
	if area == nil {
		g.JSON(http.StatusNotFound, models.ErrorResponse{Error: "nomination area not found"})
		return
	}
	g.JSON(http.StatusOK, models.TransformNominationAreaFromStorage(area))
}

// @Security AdminToken
// @Summary Create a nomination area
// @Tags Meta/Areas
// @Accept json
// @Produce json
// @Param area body models.NominationAreaCreateRequest true "NominationArea object"
// @Success 200 {object} models.NominationAreaResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/meta/areas [post]
func (c *AreaMetaController) create(g *gin.Context) {
	var req models.NominationAreaCreateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		logging.Log.Errorf("META: invalid create area request: %v", err)
		g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request"})
		return
	}

	if req.Category == "" {
		g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request empty category"})
		return
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}

	area := &storage.NominationArea{
		ID:       id,
		Category: req.Category,
		Areas:    models.TransformAreaItemsToStorage(req.Areas),
		Icon:     req.Icon,
	}

	if err := c.storage.Create(g.Request.Context(), area); err != nil {
		if errors.Is(err, storage.ErrItemAlreadyExists) {
			logging.Log.Warnf("META: nomination area with ID %s already exists", id)
			g.JSON(http.StatusConflict, models.ErrorResponse{Error: "nomination area with ID already exists"})
			return
		}

		logging.Log.Errorf("META: failed to create nomination area: %v", err)
		g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}
	g.JSON(http.StatusOK, models.TransformNominationAreaFromStorage(area))
}

// @Security AdminToken
// @Summary Update a nomination area
// @Tags Meta/Areas
// @Accept json
// @Produce json
// @Param id path string true "Area ID"
// @Param area body models.NominationAreaUpdateRequest true "NominationArea object"
// @Success 200 {object} models.NominationAreaResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/meta/areas/{id} [put]
func (c *AreaMetaController) update(g *gin.Context) {
	var req models.NominationAreaUpdateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		logging.Log.Errorf("META: invalid update area request: %v", err)
		g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request"})
		return
	}

	if req.Category == "" {
		g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request empty category"})
		return
	}

	area := &storage.NominationArea{
		ID:       g.Param("id"),
		Category: req.Category,
		Areas:    models.TransformAreaItemsToStorage(req.Areas),
		Icon:     req.Icon,
	}

	if err := c.storage.Update(g.Request.Context(), area); err != nil {
		logging.Log.Errorf("META: failed to update nomination area: %v", err)
		g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}
	g.JSON(http.StatusOK, models.TransformNominationAreaFromStorage(area))
}

// @Security AdminToken
// @Summary Delete a nomination area
// @Tags Meta/Areas
// @Produce json
// @Param id path string true "Area ID"
// @Success 200 {object} models.MessageResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/meta/areas/{id} [delete]
func (c *AreaMetaController) delete(g *gin.Context) {
	if err := c.storage.Delete(g.Request.Context(), g.Param("id")); err != nil {
		logging.Log.Errorf("META: failed to delete nomination area: %v", err)
		g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}
	g.JSON(http.StatusOK, &models.MessageResponse{Message: "nomination area deleted"})
}
