package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/njchilds90/minimaple"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(newRouter(minimaple.New(), 1<<10, zap.NewNop()))
	t.Cleanup(srv.Close)
	return srv
}

func postTool(t *testing.T, url, body string) (*http.Response, minimaple.ToolResponse) {
	t.Helper()
	resp, err := http.Post(url+"/tool", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var out minimaple.ToolResponse
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

func TestToolEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, out := postTool(t, srv.URL, `{"tool":"differentiate","params":{"expr":"x^2 + 2*x + 1","var":"x"}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Empty(t, out.Error)
	require.Equal(t, "2*x+2", out.String)

	_, out = postTool(t, srv.URL, `{"tool":"differentiate","params":{"expr":"x^2 + @","var":"x"}}`)
	require.Contains(t, out.Error, "unexpected character")
}

func TestToolEndpointRejectsBadBodies(t *testing.T) {
	srv := newTestServer(t)

	for name, body := range map[string]string{
		"unknown field": `{"tool":"parse","extra":1}`,
		"trailing":      `{"tool":"parse"} {}`,
		"too large":     `{"tool":"` + strings.Repeat("a", 2048) + `"}`,
	} {
		t.Run(name, func(t *testing.T) {
			resp, _ := postTool(t, srv.URL, body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestSchemaAndHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/schema")
	require.NoError(t, err)
	defer resp.Body.Close()
	var spec map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&spec))
	require.Len(t, spec["tools"], 7)

	resp, err = http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/tool")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
