package handlers

import (
	"errors"
	"net/http"
	"time"

	bookingSvc "grandstay/services/booking"
	paymentSvc "grandstay/services/payment"
	roomSvc "grandstay/services/room"
	userSvc "grandstay/services/user"
	"grandstay/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondServiceError translates service-layer errors into the HTTP status
// taxonomy: 400 for bad input, 403 for ownership/role violations, 404 for
// missing entities, 409 for state conflicts, 500 otherwise.
func respondServiceError(c *gin.Context, err error) {
	var transition *bookingSvc.TransitionError
	switch {
	case errors.Is(err, bookingSvc.ErrValidation):
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
	case errors.Is(err, bookingSvc.ErrRoomNotFound),
		errors.Is(err, bookingSvc.ErrBookingNotFound),
		errors.Is(err, roomSvc.ErrRoomNotFound),
		errors.Is(err, userSvc.ErrUserNotFound):
		utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())
	case errors.Is(err, bookingSvc.ErrNotOwner),
		errors.Is(err, paymentSvc.ErrForbidden):
		utils.JSONError(c, http.StatusForbidden, "Forbidden", err.Error())
	case errors.Is(err, bookingSvc.ErrRoomUnavailable),
		errors.Is(err, bookingSvc.ErrCancellationState),
		errors.Is(err, roomSvc.ErrRoomInUse),
		errors.Is(err, paymentSvc.ErrNotConfirmed),
		errors.Is(err, paymentSvc.ErrAlreadyPaid),
		errors.Is(err, paymentSvc.ErrIllegalPaymentTransition),
		errors.Is(err, paymentSvc.ErrSessionNotSettled):
		utils.JSONError(c, http.StatusConflict, "Conflict", err.Error())
	case errors.As(err, &transition):
		utils.JSONError(c, http.StatusConflict, "Conflict", err.Error())
	default:
		// Internal error text stays in the logs, not in the response.
		utils.GetLogger().Error("unhandled service error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error",
			"An unexpected error occurred. Please try again later.")
	}
}

// parseDate parses a YYYY-MM-DD query value.
func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

// dateWindow parses the from/to query params, defaulting to the last 30 days.
func dateWindow(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if v := c.Query("from"); v != "" {
		parsed, err := parseDate(v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := parseDate(v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = parsed
	}
	return from, to, nil
}
