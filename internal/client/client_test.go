package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mwdeps/internal/deptable"
)

func newTestClient() *TableClient {
	c := NewClient(hclog.NewNullLogger(), "test-version")
	c.HttpClient.RetryMax = 0
	return c
}

func Test_FetchTable(t *testing.T) {
	var userAgent string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		userAgent = req.Header.Get("User-Agent")
		switch req.URL.Path {
		case "/deps.yaml":
			w.Write([]byte("Echo:\n  - EventLogging\n"))
		case "/deps.toml":
			w.Write([]byte("Echo = [\"EventLogging\"]\n"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	c := newTestClient()
	for _, p := range []string{"/deps.yaml", "/deps.toml"} {
		table, err := c.FetchTable(context.Background(), ts.URL+p)
		require.NoError(t, err, p)
		assert.Equal(t, deptable.Table{"Echo": {"EventLogging"}}, table, p)
	}
	assert.True(t, strings.HasPrefix(userAgent, "mwdeps test-version"), userAgent)

	_, err := c.FetchTable(context.Background(), ts.URL+"/missing.yaml")
	assert.Error(t, err)
}

func Test_FetchTableServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	_, err := newTestClient().FetchTable(context.Background(), ts.URL+"/deps.yaml")
	assert.Error(t, err)
}

func Test_FetchTableMalformed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("Echo: [unterminated"))
	}))
	defer ts.Close()

	_, err := newTestClient().FetchTable(context.Background(), ts.URL+"/deps.yaml")
	assert.Error(t, err)
}

func Test_FetchTableCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("Echo: []\n"))
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestClient().FetchTable(ctx, ts.URL+"/deps.yaml")
	assert.Error(t, err)
}
