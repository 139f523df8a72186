package common_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guarzo/welcome/common"
)

func TestNewHTTPClient(t *testing.T) {
	client := common.NewHTTPClient("MyUserAgent", &http.Client{})
	require.NotNil(t, client)
}

func TestHTTPClient_HeaderInjection(t *testing.T) {
	var gotUserAgent, gotRequestID string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotRequestID = r.Header.Get("X-Request-ID")
	}))
	defer ts.Close()

	hc := common.NewHTTPClient("TestUserAgent", &http.Client{})

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	resp, err := hc.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "TestUserAgent", gotUserAgent)
	assert.NotEmpty(t, gotRequestID, "outbound requests should carry an X-Request-ID")
}

func TestHTTPClient_KeepsCallerRequestID(t *testing.T) {
	var gotRequestID string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get("X-Request-ID")
	}))
	defer ts.Close()

	hc := common.NewHTTPClient("UA", &http.Client{})

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "caller-chosen")

	resp, err := hc.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "caller-chosen", gotRequestID)
}

func TestHTTPClient_Head(t *testing.T) {
	var gotMethod string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
	}))
	defer ts.Close()

	hc := common.NewHTTPClient("UA", &http.Client{})

	resp, err := hc.Head(ts.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.MethodHead, gotMethod)
}

func TestHTTPError_Error(t *testing.T) {
	err := &common.HTTPError{StatusCode: 502, Body: []byte("bad gateway")}
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "bad gateway")
}
