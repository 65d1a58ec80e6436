package test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"net/url"
	"os"
	"reflect"
	"testing"

	"github.com/envelope-zero/ledger/internal/config"
	"github.com/envelope-zero/ledger/pkg/ledger"
	"github.com/envelope-zero/ledger/pkg/router"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// Request sends a request to a fresh router serving the ledger and returns the recorded response.
//
// Strings are sent verbatim, *bytes.Buffer bodies (e.g. multipart uploads) as they are
// and everything else is encoded as JSON.
func Request(t *testing.T, l *ledger.Ledger, method, reqURL string, body any, headers ...map[string]string) httptest.ResponseRecorder {
	r, teardown := engine(t, l)
	defer teardown()

	req := httptest.NewRequest(method, reqURL, requestBody(t, body))
	for _, headerMap := range headers {
		for header, value := range headerMap {
			req.Header.Set(header, value)
		}
	}

	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, req)

	return *recorder
}

func requestBody(t *testing.T, body any) io.Reader {
	switch b := body.(type) {
	case nil:
		return &bytes.Buffer{}
	case string:
		return bytes.NewBufferString(b)
	case *bytes.Buffer:
		return b
	}

	encoded, err := json.Marshal(body)
	require.Nil(t, err, "request body of type %v could not be encoded", reflect.TypeOf(body))
	return bytes.NewReader(encoded)
}

// engine configures the router with the base URL from API_URL.
//
// The returned function unregisters the metrics and must be called before
// the next engine is configured.
func engine(t *testing.T, l *ledger.Ledger) (*gin.Engine, func()) {
	apiURL, ok := os.LookupEnv("API_URL")
	require.True(t, ok, "environment variable API_URL must be set")

	baseURL, err := url.Parse(apiURL)
	require.Nil(t, err, "environment variable API_URL must be a valid URL")

	cfg := config.Config{APIURL: baseURL}
	r, teardown, err := router.Config(cfg)
	require.Nil(t, err, "router could not be initialized")

	router.AttachRoutes(cfg, l, r.Group("/"))
	return r, teardown
}

// DecodeResponse decodes the JSON body of a recorded response into target.
func DecodeResponse(t *testing.T, r *httptest.ResponseRecorder, target any) {
	err := json.Unmarshal(r.Body.Bytes(), &target)
	require.Nil(t, err, "response %q could not be decoded into %v. Request ID: %s", r.Body, reflect.TypeOf(target), r.Result().Header.Get("x-request-id"))
}

// AssertHTTPStatus verifies that the HTTP response status is one of the expected ones.
func AssertHTTPStatus(t *testing.T, r *httptest.ResponseRecorder, expectedStatus ...int) {
	require.Contains(t, expectedStatus, r.Code, "HTTP status is wrong. Request ID: '%s' Response body: %s", r.Result().Header.Get("x-request-id"), r.Body.String())
}
