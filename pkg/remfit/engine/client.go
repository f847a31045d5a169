package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

const infoCacheSize = 128

// Client implements Engine over the engine's HTTP interface.  It is
// the single transport adapter behind the typed interface; no other
// part of the library talks to the wire.
type Client struct {
	addr  string
	hc    *http.Client
	infos *lru.Cache[Handle, *ModelInfo]
}

// NewClient creates a client for the engine at addr.  Model infos
// are cached per handle; a handle's introspection data never changes
// after the fit, so cached entries cannot go stale.
func NewClient(addr string) (*Client, error) {
	if _, err := url.Parse(addr); err != nil {
		return nil, fmt.Errorf("connect %s: %v", addr, err)
	}
	infos, err := lru.New[Handle, *ModelInfo](infoCacheSize)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %v", addr, err)
	}
	return &Client{
		addr:  strings.TrimRight(addr, "/"),
		hc:    &http.Client{Timeout: 0}, // fits block until the job ends
		infos: infos,
	}, nil
}

// Fit implements Engine.
func (c *Client) Fit(ctx context.Context, req FitRequest) (Handle, error) {
	var res struct {
		Handle Handle `json:"handle"`
	}
	if err := c.post(ctx, "/v1/fit", req, &res); err != nil {
		return "", fmt.Errorf("fit %s: %v", req.Kind, err)
	}
	return res.Handle, nil
}

// Transform implements Engine.
func (c *Client) Transform(ctx context.Context, h Handle, data Dataset) (Dataset, error) {
	req := struct {
		Dataset Dataset `json:"dataset"`
	}{data}
	var res struct {
		Dataset Dataset `json:"dataset"`
	}
	if err := c.post(ctx, "/v1/models/"+url.PathEscape(string(h))+"/transform", req, &res); err != nil {
		return "", fmt.Errorf("transform %s: %v", data, err)
	}
	return res.Dataset, nil
}

// Info implements Engine.
func (c *Client) Info(ctx context.Context, h Handle) (*ModelInfo, error) {
	if info, ok := c.infos.Get(h); ok {
		return info, nil
	}
	var info ModelInfo
	if err := c.get(ctx, "/v1/models/"+url.PathEscape(string(h))+"/info", &info); err != nil {
		return nil, fmt.Errorf("info: %v", err)
	}
	c.infos.Add(h, &info)
	return &info, nil
}

// Save implements Engine.
func (c *Client) Save(ctx context.Context, h Handle, path string, overwrite bool) error {
	req := struct {
		Path      string `json:"path"`
		Overwrite bool   `json:"overwrite"`
	}{path, overwrite}
	if err := c.post(ctx, "/v1/models/"+url.PathEscape(string(h))+"/save", req, nil); err != nil {
		return fmt.Errorf("save %s: %v", path, err)
	}
	return nil
}

// Load implements Engine.
func (c *Client) Load(ctx context.Context, kind, path string) (Handle, error) {
	req := struct {
		Kind string `json:"kind"`
		Path string `json:"path"`
	}{kind, path}
	var res struct {
		Handle Handle `json:"handle"`
	}
	if err := c.post(ctx, "/v1/load", req, &res); err != nil {
		return "", fmt.Errorf("load %s: %v", path, err)
	}
	return res.Handle, nil
}

// CreateDataset implements Engine.
func (c *Client) CreateDataset(ctx context.Context, name string, columns []string) (Dataset, error) {
	req := struct {
		Name    string   `json:"name"`
		Columns []string `json:"columns"`
	}{name, columns}
	var res struct {
		Dataset Dataset `json:"dataset"`
	}
	if err := c.post(ctx, "/v1/datasets", req, &res); err != nil {
		return "", fmt.Errorf("createDataset %s: %v", name, err)
	}
	return res.Dataset, nil
}

// AppendRows implements Engine.
func (c *Client) AppendRows(ctx context.Context, data Dataset, rows [][]string) error {
	req := struct {
		Rows [][]string `json:"rows"`
	}{rows}
	if err := c.post(ctx, "/v1/datasets/"+url.PathEscape(string(data))+"/rows", req, nil); err != nil {
		return fmt.Errorf("appendRows %s: %v", data, err)
	}
	return nil
}

// Head implements Engine.
func (c *Client) Head(ctx context.Context, data Dataset, n int) ([][]string, error) {
	var res struct {
		Rows [][]string `json:"rows"`
	}
	path := fmt.Sprintf("/v1/datasets/%s/head?n=%d", url.PathEscape(string(data)), n)
	if err := c.get(ctx, path, &res); err != nil {
		return nil, fmt.Errorf("head %s: %v", data, err)
	}
	return res.Rows, nil
}

// Schema implements Engine.
func (c *Client) Schema(ctx context.Context, data Dataset) ([]string, error) {
	var res struct {
		Columns []string `json:"columns"`
	}
	if err := c.get(ctx, "/v1/datasets/"+url.PathEscape(string(data))+"/schema", &res); err != nil {
		return nil, fmt.Errorf("schema %s: %v", data, err)
	}
	return res.Columns, nil
}

func (c *Client) post(ctx context.Context, path string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.addr+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.addr+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// statusError maps the engine's status signals onto the error kinds.
// Anything unrecognized propagates opaquely with the engine's message.
func statusError(resp *http.Response) error {
	msg := readMessage(resp.Body)
	switch resp.StatusCode {
	case http.StatusBadRequest:
		return fmt.Errorf("%s: %w", msg, ErrInvalidConfig)
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", msg, ErrNotFound)
	case http.StatusConflict:
		return fmt.Errorf("%s: %w", msg, ErrExists)
	case http.StatusNotImplemented:
		return fmt.Errorf("%s: %w", msg, ErrUnsupported)
	}
	return fmt.Errorf("engine: %s: %s", resp.Status, msg)
}

func readMessage(r io.Reader) string {
	var res struct {
		Error string `json:"error"`
	}
	data, err := io.ReadAll(io.LimitReader(r, 1<<12))
	if err != nil {
		return "engine error"
	}
	if err := json.Unmarshal(data, &res); err == nil && res.Error != "" {
		return res.Error
	}
	if msg := strings.TrimSpace(string(data)); msg != "" {
		return msg
	}
	return "engine error"
}
