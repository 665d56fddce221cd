package controllers

import (
	"errors"
	"net/http"

	"github.com/ThomasWeyssow/rewaard-api/api/models"
	"github.com/ThomasWeyssow/rewaard-api/storage"
	"github.com/ThomasWeyssow/rewaard-api/workflow"
	"github.com/gin-gonic/gin"
)

// writeError maps workflow and storage errors onto HTTP statuses. Anything
// unrecognized is a transient backend failure.
func writeError(g *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, workflow.ErrNotAllowed):
		status = http.StatusForbidden
	case errors.Is(err, workflow.ErrNoOngoingCycle),
		errors.Is(err, workflow.ErrNoCompletedCycle),
		errors.Is(err, storage.ErrItemNotFound):
		status = http.StatusNotFound
	case errors.Is(err, workflow.ErrNoAreasSelected),
		errors.Is(err, workflow.ErrJustificationRequired),
		errors.Is(err, workflow.ErrJustificationTooLong),
		errors.Is(err, workflow.ErrRemarksTooLong),
		errors.Is(err, workflow.ErrInvalidPeriod),
		errors.Is(err, workflow.ErrCycleOverlap),
		errors.Is(err, workflow.ErrNotFinalist),
		errors.Is(err, workflow.ErrValidationClosed),
		errors.Is(err, workflow.ErrValidationOpen):
		status = http.StatusBadRequest
	case errors.Is(err, workflow.ErrAlreadyNominated),
		errors.Is(err, workflow.ErrTie),
		errors.Is(err, workflow.ErrNoValidations),
		errors.Is(err, storage.ErrItemAlreadyExists),
		errors.Is(err, storage.ErrInsufficientPoints):
		status = http.StatusConflict
	}

	g.JSON(status, &models.ErrorResponse{Error: err.Error()})
}
