package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"fitness-tracker/internal/usecase/validation"
	"fitness-tracker/pkg/logger"
)

func TestServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid argument", validation.InvalidArgument("bad"), http.StatusBadRequest, "invalid_argument"},
		{"not found", validation.NotFound("training 1"), http.StatusNotFound, "not_found"},
		{"other", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			ServiceError(c, logger.Discard(), "test", tc.err)

			require.Equal(t, tc.status, w.Code)
			var body Envelope
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			require.Equal(t, tc.code, body.Error.Code)
			require.True(t, c.IsAborted())
		})
	}
}
