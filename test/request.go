package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"testing"

	"github.com/expense-tracker/backend/internal/config"
	"github.com/expense-tracker/backend/internal/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Request is a helper method to simplify making a HTTP request for tests.
//
// The body can be a string, url.Values for a form submission, a
// *bytes.Buffer or anything that is encoded as JSON. nil sends no body.
func Request(t *testing.T, method, reqURL string, body any, headers ...map[string]string) httptest.ResponseRecorder {
	var byteBuffer *bytes.Buffer
	contentType := ""

	switch b := body.(type) {
	case nil:
		byteBuffer = new(bytes.Buffer)
	case string:
		byteBuffer = bytes.NewBufferString(b)
	case url.Values:
		byteBuffer = bytes.NewBufferString(b.Encode())
		contentType = "application/x-www-form-urlencoded"
	case *bytes.Buffer:
		byteBuffer = b
	default:
		kind := reflect.TypeOf(body).Kind()
		if kind != reflect.Struct && kind != reflect.Map && kind != reflect.Slice {
			assert.FailNow(t, "Request body has an unsupported type", "%T", body)
		}

		byteStr, err := json.Marshal(body)
		if err != nil {
			assert.Fail(t, "Request body could not be marshalled from struct input", err)
		}
		byteBuffer = bytes.NewBuffer(byteStr)
		contentType = "application/json"
	}

	cfg, err := config.Load()
	if err != nil {
		assert.FailNow(t, "Configuration is invalid", err.Error())
	}

	r, teardown, err := router.Config(cfg)
	defer teardown()

	if err != nil {
		assert.FailNow(t, "Router could not be initialized", err.Error())
	}
	router.AttachRoutes(cfg, r.Group("/"))

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(method, reqURL, byteBuffer)

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	for _, headerMap := range headers {
		for header, value := range headerMap {
			req.Header.Set(header, value)
		}
	}

	r.ServeHTTP(recorder, req)

	return *recorder
}

// DecodeResponse decodes an HTTP response into a target struct.
func DecodeResponse(t *testing.T, r *httptest.ResponseRecorder, target any) {
	err := json.Unmarshal(r.Body.Bytes(), &target)
	if err != nil {
		assert.FailNow(t, "Parsing error", "Unable to parse response from server %q into %v, '%v', Request ID: %s", r.Body, reflect.TypeOf(target), err, r.Result().Header.Get("x-request-id"))
	}
}

// AssertHTTPStatus verifies that the HTTP response status is correct
func AssertHTTPStatus(t *testing.T, r *httptest.ResponseRecorder, expectedStatus ...int) {
	require.Contains(t, expectedStatus, r.Code, "HTTP status is wrong. Request ID: '%s' Response body: %s", r.Result().Header.Get("x-request-id"), r.Body.String())
}

// AssertRedirect verifies that the response redirects to the location.
func AssertRedirect(t *testing.T, r *httptest.ResponseRecorder, location string) {
	AssertHTTPStatus(t, r, http.StatusFound)
	assert.Equal(t, location, r.Header().Get("Location"), "Redirect location is wrong. Request ID: '%s'", r.Result().Header.Get("x-request-id"))
}

// Cookie returns the cookie with the name set by the response.
func Cookie(r *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range r.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
