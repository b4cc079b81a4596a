package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/JasVita/wealthpilot-portal/internal/api/response"
	"github.com/JasVita/wealthpilot-portal/internal/apperrors"
)

// clientErrors are reported to the caller as 400 with their own message.
var clientErrors = []error{
	apperrors.ErrMissingClientID,
	apperrors.ErrInvalidClientID,
	apperrors.ErrInvalidPeriod,
	apperrors.ErrInvalidDateRange,
	apperrors.ErrInvalidUUID,
}

// respondFailure maps an error to the error envelope. Validation errors become 400 with
// their message; anything else is logged and reported as 500 with the generic message.
func respondFailure(w http.ResponseWriter, operation string, err error) {
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			response.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if errors.Is(err, apperrors.ErrSnapshotNotFound) {
		response.RespondError(w, http.StatusNotFound, err.Error())
		return
	}

	log.Printf("%s failed: %v", operation, err)
	response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToLoad.Error())
}
