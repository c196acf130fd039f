package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"auction-house/internal/biddingerrors"
	"auction-house/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, biddingerrors.ErrLotNotFound):
		return http.StatusNotFound, "lot not found"
	case errors.Is(err, biddingerrors.ErrEmptyBidderName):
		return http.StatusBadRequest, "bidder name is required"
	case errors.Is(err, biddingerrors.ErrAmountMalformed):
		return http.StatusBadRequest, "invalid bid amount"
	case errors.Is(err, biddingerrors.ErrAmountNotHigher):
		return http.StatusConflict, "bid amount too low"
	case errors.Is(err, biddingerrors.ErrAuctionClosed):
		return http.StatusUnprocessableEntity, "auction has ended"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// RespondError writes err as a JSON error. Rejections also carry the machine-readable
// reason, the rejection message and the lot's current bid so the client can retry.
func RespondError(c *gin.Context, err error) (int, string) {
	status, message := MapErrorToHTTP(err)
	rej, ok := biddingerrors.AsRejection(err)
	if !ok {
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return status, message
	}

	details := gin.H{
		"reason": rej.Reason,
		"detail": rej.Message,
	}
	if rej.Reason != biddingerrors.ReasonLotNotFound {
		details["current_bid"] = rej.CurrentBid.StringFixed(2)
	}
	utils.JSONErrorWithDetails(c, status, err, message, details)
	return status, message
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
