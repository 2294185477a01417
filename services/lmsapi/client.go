// Package lmsapi is the client of the remote LMS HTTP API and of the course curation service.
package lmsapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core"
)

// Error is an unexpected response of the remote API.
type Error struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: %d", e.Method, e.Path, e.StatusCode)
}

type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e apiError) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

type Client struct {
	lms      *resty.Client
	curation *resty.Client
	log      core.Logger
}

func newRestClient(baseURL string, conf core.LMSConfig) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(conf.Timeout).
		SetRetryCount(conf.RetryCount).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")
}

func New(conf core.LMSConfig, logger core.Logger) *Client {
	return &Client{
		lms:      newRestClient(conf.BaseURL, conf),
		curation: newRestClient(conf.CurationURL, conf),
		log:      logger,
	}
}

// statusErrors maps response codes to domain errors for one call.
type statusErrors map[int]error

func (c *Client) do(ctx context.Context, rc *resty.Client, method, path string, body, out interface{}, errs statusErrors) error {
	var apiErr apiError
	req := rc.R().SetContext(ctx).SetError(&apiErr)
	if body != nil {
		req.SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	if !resp.IsError() {
		return nil
	}
	if mapped, ok := errs[resp.StatusCode()]; ok {
		return mapped
	}
	if c.log != nil {
		c.log.Warn("lms api error", map[string]interface{}{"method": method, "path": path, "status": resp.StatusCode()})
	}
	return &Error{Method: method, Path: path, StatusCode: resp.StatusCode(), Message: apiErr.text()}
}

func (c *Client) get(ctx context.Context, path string, out interface{}, errs statusErrors) error {
	return c.do(ctx, c.lms, http.MethodGet, path, nil, out, errs)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}, errs statusErrors) error {
	return c.do(ctx, c.lms, http.MethodPost, path, body, out, errs)
}
