package handlers

import (
	"net/http"

	"osmeet/services/booking"
	"osmeet/utils"

	"github.com/gin-gonic/gin"
)

// bookingStatus maps stable booking error kinds to HTTP statuses.
func bookingStatus(code string) int {
	switch code {
	case booking.CodeInvalidWindow, booking.CodeUnknownCommunity, booking.CodeUnknownPlatform:
		return http.StatusBadRequest
	case booking.CodeNoHostAvailable, booking.CodeTooLateToCancel:
		return http.StatusConflict
	case booking.CodeRemoteCreateFailed, booking.CodeRemoteCancelFailed:
		return http.StatusBadGateway
	case booking.CodeNotFound:
		return http.StatusNotFound
	case booking.CodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func respondBookingError(c *gin.Context, err error) {
	code := booking.CodeOf(err)
	msg := err.Error()
	if code == booking.CodeInternal {
		// Never leak internal detail.
		msg = "internal error"
	}
	utils.JSONError(c, bookingStatus(code), code, msg)
}
