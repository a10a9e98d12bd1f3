package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	bookingSvc "grandstay/services/booking"
	paymentSvc "grandstay/services/payment"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func TestRespondServiceError_HidesInternalDetail(t *testing.T) {
	c, w := testContext()

	respondServiceError(c, errors.New("dial tcp 10.0.0.5:27017: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
	assert.Contains(t, w.Body.String(), "An unexpected error occurred")
}

func TestRespondServiceError_StateConflictsMapTo409(t *testing.T) {
	for _, err := range []error{
		bookingSvc.ErrRoomUnavailable,
		paymentSvc.ErrAlreadyPaid,
		paymentSvc.ErrIllegalPaymentTransition,
	} {
		c, w := testContext()
		respondServiceError(c, err)
		assert.Equal(t, http.StatusConflict, w.Code, "for %v", err)
	}
}

func TestRespondServiceError_NotFound(t *testing.T) {
	c, w := testContext()

	respondServiceError(c, bookingSvc.ErrBookingNotFound)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
