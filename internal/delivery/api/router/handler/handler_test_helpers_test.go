package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apimiddleware "funntour/internal/delivery/api/middleware"
	"funntour/internal/delivery/api/response"
	"funntour/internal/delivery/api/validator"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestEcho mirrors the production error handling and validation.
func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = apimiddleware.NewErrorMiddleware(apimiddleware.ErrorMiddlewareParams{
		Logger: newDiscardLogger(),
	}).HandleHTTPError

	return e
}

func newJSONRequest(method, path, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	return req
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func serveJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	return serve(e, newJSONRequest(method, path, body))
}

// decodeData unmarshals the data member of a success envelope into out and
// returns the envelope's meta.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) response.MetaInfo {
	t.Helper()

	var envelope struct {
		Data json.RawMessage   `json:"data"`
		Meta response.MetaInfo `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))

	return envelope.Meta
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorInfo {
	t.Helper()

	var envelope response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)

	return *envelope.Error
}

func ptr[T any](v T) *T {
	return &v
}
