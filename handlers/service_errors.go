package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/upb/wte-dashboard/backend/services"
	"github.com/upb/wte-dashboard/backend/utils"
)

// HandleServiceError writes the JSON error response for err. Internal
// failures are logged and answered with a generic message.
func HandleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if err == nil {
		return
	}

	details := services.GetErrorDetails(err)

	var writeErr error
	switch kind := services.GetErrorType(err); kind {
	case services.ErrorTypeNotFound:
		writeErr = utils.WriteNotFound(w, err.Error())
	case services.ErrorTypeValidation:
		writeErr = utils.WriteBadRequest(w, err.Error(), details)
	case services.ErrorTypeUnauthorized:
		writeErr = utils.WriteUnauthorized(w, err.Error())
	case services.ErrorTypeForbidden:
		writeErr = utils.WriteForbidden(w, err.Error())
	case services.ErrorTypeConflict:
		writeErr = utils.WriteConflict(w, err.Error(), details)
	case services.ErrorTypeExternal:
		logger.Warn("backing service unavailable", zap.Error(err))
		writeErr = utils.WriteServiceUnavailable(w, err.Error())
	case services.ErrorTypeInternal:
		logger.Error("internal server error", zap.Error(err))
		writeErr = utils.WriteInternalServerError(w, "An internal error occurred")
	default:
		logger.Error("unclassified error", zap.Error(err), zap.String("error_type", string(kind)))
		writeErr = utils.WriteInternalServerError(w, "An unexpected error occurred")
	}

	if writeErr != nil {
		logger.Error("failed to write error response", zap.Error(writeErr))
	}
}

// HandleValidationError handles validation errors from request parsing
func HandleValidationError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if utils.IsValidationError(err) {
		fields := utils.GetValidationFields(err)
		details := make(map[string]interface{})
		for k, v := range fields {
			details[k] = v
		}
		if err := utils.WriteBadRequest(w, "Validation failed", details); err != nil {
			logger.Error("failed to write validation error response", zap.Error(err))
		}
		return
	}

	// Malformed body or query parameter
	if err := utils.WriteBadRequest(w, err.Error(), nil); err != nil {
		logger.Error("failed to write validation error response", zap.Error(err))
	}
}
