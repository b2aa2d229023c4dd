// Package client fetches dependency tables over HTTP.
package client

import (
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"runtime"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
	"mwdeps/internal/deptable"
)

// TableClient downloads dependency tables, retrying on server errors.
type TableClient struct {
	version string
	// An http client
	HttpClient *retryablehttp.Client
}

// NewClient creates a new TableClient
func NewClient(logger hclog.Logger, version string) *TableClient {
	return &TableClient{
		version: version,
		HttpClient: &retryablehttp.Client{
			HTTPClient: &http.Client{
				Timeout: time.Duration(30 * time.Second),
			},
			RetryWaitMin: 1 * time.Second,
			RetryWaitMax: 5 * time.Second,
			RetryMax:     3,
			CheckRetry:   retryablehttp.DefaultRetryPolicy,
			Backoff:      retryablehttp.DefaultBackoff,
			Logger:       logger,
		},
	}
}

// UserAgent identifies mwdeps to the table host.
func (c *TableClient) UserAgent() string {
	return fmt.Sprintf("mwdeps %v %v %v (%v)", c.version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// FetchTable downloads and parses the table at tableURL. The format follows the
// extension of the URL path.
func (c *TableClient) FetchTable(ctx context.Context, tableURL string) (deptable.Table, error) {
	u, err := url.Parse(tableURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid table URL %v", tableURL)
	}
	req, err := retryablehttp.NewRequest(http.MethodGet, tableURL, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid table URL %v", tableURL)
	}
	req = req.WithContext(ctx)
	req.Header.Set("User-Agent", c.UserAgent())

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch dependency table from %v", tableURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("failed to fetch dependency table from %v: %v", tableURL, resp.Status)
	}
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read dependency table from %v", tableURL)
	}
	return deptable.Parse(body, deptable.FormatFromPath(u.Path))
}
