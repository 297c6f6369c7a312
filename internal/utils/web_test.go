package utils

import (
	"bytes"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanbo-dev/kanbo/internal/errors"
)

func TestDecodeValidate(t *testing.T) {
	type TestStruct struct {
		Field1 string `json:"field1" validate:"required"`
		Field2 int    `json:"field2"`
	}

	tests := []struct {
		name        string
		requestBody string
		expectedErr *errors.ErrorWithStatusCode
	}{
		{
			name:        "Valid JSON and Validation",
			requestBody: `{"field1": "value", "field2": 123}`,
			expectedErr: nil,
		},
		{
			name:        "Optional field missing",
			requestBody: `{"field1": "value"}`,
			expectedErr: nil,
		},
		{
			name:        "Invalid JSON",
			requestBody: `{"field1": "value", "field2": 123`, // Missing closing brace
			expectedErr: &errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: 400},
		},
		{
			name:        "Missing Required Field",
			requestBody: `{"field2": 123}`,
			expectedErr: &errors.ErrorWithStatusCode{Message: "Required fields missing or malformed", StatusCode: 400},
		},
		{
			name:        "Empty Body",
			requestBody: "",
			expectedErr: &errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: 400},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", bytes.NewReader([]byte(tt.requestBody)))

			err := DecodeValidate(req.Body, &TestStruct{})

			if tt.expectedErr == nil {
				assert.NoError(t, err)
			} else {
				e, ok := err.(*errors.ErrorWithStatusCode)
				require.True(t, ok, "Error should be ErrorWithStatusCode")
				assert.Equal(t, tt.expectedErr.Message, e.Message)
				assert.Equal(t, tt.expectedErr.StatusCode, e.StatusCode)
			}
		})
	}
}

func TestWriteErrorAndStatusCode(t *testing.T) {
	t.Run("coded error", func(t *testing.T) {
		rr := httptest.NewRecorder()
		WriteErrorAndStatusCode(rr, errors.NotFound("Board not found"))

		assert.Equal(t, 404, rr.Code)
		assert.Equal(t, "Board not found\n", rr.Body.String())
	})

	t.Run("wrapped coded error keeps its status", func(t *testing.T) {
		rr := httptest.NewRecorder()
		wrapped := fmt.Errorf("delete card: %w", errors.NotFound("Card not found"))
		WriteErrorAndStatusCode(rr, wrapped)

		assert.Equal(t, 404, rr.Code)
		assert.Equal(t, "Card not found\n", rr.Body.String())
	})

	t.Run("plain error is a 500 without internal detail", func(t *testing.T) {
		rr := httptest.NewRecorder()
		WriteErrorAndStatusCode(rr, io.ErrUnexpectedEOF)

		assert.Equal(t, 500, rr.Code)
		assert.Equal(t, "Internal error\n", rr.Body.String())
	})
}

func TestWriteJSONStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSONStatus(rr, 201, map[string]string{"message": "created"})

	assert.Equal(t, 201, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, `{"message":"created"}`+"\n", rr.Body.String())
}
