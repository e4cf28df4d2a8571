package limelight

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
)

// endpointURL builds a full request URL from the current camera address.
func (c *Client) endpointURL(path string, query url.Values) string {
	c.mu.RLock()
	base := c.config.baseURL()
	c.mu.RUnlock()
	u := base + "/" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// do issues one request and enforces a 2xx status. The response body is
// returned to the caller, which must close it.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: req.Method, URL: req.URL.String(), Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &TransportError{Op: req.Method, URL: req.URL.String(), StatusCode: resp.StatusCode}
	}
	return resp, nil
}

// getJSON fetches an endpoint and decodes its JSON body into out.
// Network failures surface as TransportError, undecodable bodies as
// SchemaError.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.endpointURL(path, query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &TransportError{Op: http.MethodGet, URL: u, Err: err}
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: http.MethodGet, URL: u, Err: err}
	}
	if err := json.Unmarshal(body, out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return &SchemaError{Field: typeErr.Field, Err: err}
		}
		return &SchemaError{Err: err}
	}
	return nil
}

// postJSON posts a JSON-encoded body. Success is a 2xx status; the
// response body is discarded. A nil body posts an empty JSON object.
func (c *Client) postJSON(ctx context.Context, path string, query url.Values, body any) error {
	if body == nil {
		body = struct{}{}
	}
	data, err := json.Marshal(body)
	if err != nil {
		return &SchemaError{Err: err}
	}
	return c.postBytes(ctx, path, query, "application/json", data)
}

// postBytes posts a raw body. Success is a 2xx status; the response body
// is discarded.
func (c *Client) postBytes(ctx context.Context, path string, query url.Values, contentType string, data []byte) error {
	u := c.endpointURL(path, query)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(data))
	if err != nil {
		return &TransportError{Op: http.MethodPost, URL: u, Err: err}
	}
	req.Header.Set("Content-Type", contentType)
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// deleteResource issues a DELETE. Success is a 2xx status.
func (c *Client) deleteResource(ctx context.Context, path string, query url.Values) error {
	u := c.endpointURL(path, query)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return &TransportError{Op: http.MethodDelete, URL: u, Err: err}
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}
