package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/service"
)

func TestHandleErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &Handler{log: zerolog.Nop()}

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"unauthenticated", service.ErrUnauthenticated, http.StatusUnauthorized, "Authentication required"},
		{"invalid identifier", fmt.Errorf("%w: %q", service.ErrInvalidIdentifier, "abc"), http.StatusBadRequest, "Invalid user identifier"},
		{"invalid filter", fmt.Errorf("%w: userId", service.ErrInvalidFilter), http.StatusBadRequest, "Invalid userId"},
		{"invalid start date", fmt.Errorf("%w: startDate", service.ErrInvalidDate), http.StatusBadRequest, "Invalid startDate"},
		{"invalid end date", fmt.Errorf("%w: endDate", service.ErrInvalidDate), http.StatusBadRequest, "Invalid endDate"},
		{"inverted range", service.ErrInvalidRange, http.StatusBadRequest, "endDate must be on or after startDate"},
		{"not found", service.ErrNotFound, http.StatusNotFound, "Not found"},
		{"capacity exceeded", service.ErrCapacityExceeded, http.StatusBadRequest, "Bin capacity exceeded. Please use another bin."},
		{"store validation", fmt.Errorf("%w: bad column", service.ErrStoreValidation), http.StatusBadRequest, "Invalid request"},
		{"store unavailable", fmt.Errorf("%w: refused", service.ErrStoreUnavailable), http.StatusServiceUnavailable, "Database unavailable, please try again later"},
		{"duplicate order", service.ErrDuplicateOrder, http.StatusBadRequest, "Duplicate order"},
		{"unexpected", fmt.Errorf("boom"), http.StatusInternalServerError, "Server Error"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(recorder)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			h.handleError(c, tc.err)

			assert.Equal(t, tc.wantStatus, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tc.wantMessage)
		})
	}
}

func TestUnexpectedErrorWithholdsDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &Handler{log: zerolog.Nop()}

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	h.handleError(c, fmt.Errorf("password=hunter2 leaked"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "hunter2")
}
