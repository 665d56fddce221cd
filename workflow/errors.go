package workflow

import "errors"

var ErrNotAllowed = errors.New("caller is not allowed to perform this operation")

var ErrNoOngoingCycle = errors.New("no ongoing nomination cycle")
var ErrNoCompletedCycle = errors.New("no completed nomination cycle")
var ErrInvalidPeriod = errors.New("nomination period must be monthly or bi-monthly")
var ErrCycleOverlap = errors.New("next cycle cannot start before the ongoing cycle ends")

var ErrNoAreasSelected = errors.New("at least one nomination area must be selected")
var ErrJustificationRequired = errors.New("justification is required")
var ErrJustificationTooLong = errors.New("justification exceeds the maximum length")
var ErrRemarksTooLong = errors.New("remarks exceed the maximum length")
var ErrAlreadyNominated = errors.New("voter already has a nomination in this cycle")

var ErrNotFinalist = errors.New("nominee is not among the finalists")
var ErrValidationClosed = errors.New("validation window is closed")
var ErrValidationOpen = errors.New("validation window is still open")

var ErrTie = errors.New("validation counts are tied between finalists")
var ErrNoValidations = errors.New("no validations were recorded for any finalist")
