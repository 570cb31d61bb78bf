package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	restPathPrefix       = "/rest/v1/"
	singleObjectMimeType = "application/vnd.pgrst.object+json"
	// notFoundCode is returned by PostgREST when a single object was requested but no row matched.
	notFoundCode = "PGRST116"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RESTClient speaks the PostgREST dialect used by hosted Postgres backends.
type RESTClient struct {
	baseURL    string
	anonKey    string
	serviceKey string
	httpClient httpDoer
}

// NewRESTClient builds a client. serviceKey may be empty; it is used for writes when set.
func NewRESTClient(baseURL, anonKey, serviceKey string, timeout time.Duration) *RESTClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RESTClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		anonKey:    anonKey,
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *RESTClient) endpoint(table string, params url.Values) string {
	endpoint := c.baseURL + restPathPrefix + table
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}
	return endpoint
}

func (c *RESTClient) do(ctx context.Context, method, endpoint string, body interface{}, write bool, headers map[string]string) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	key := c.anonKey
	if write && c.serviceKey != "" {
		key = c.serviceKey
	}
	req.Header.Set("apikey", key)
	req.Header.Set("Authorization", "Bearer "+key)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for name, value := range headers {
		req.Header.Set(name, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, decodeError(resp.StatusCode, raw)
	}
	return raw, nil
}

func decodeError(status int, raw []byte) error {
	apiErr := &Error{Status: status}
	if err := json.Unmarshal(raw, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(raw))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(status)
		}
	}
	if apiErr.Code == notFoundCode {
		return fmt.Errorf("%w: %s", ErrNotFound, apiErr.Message)
	}
	return apiErr
}

// RESTRepository maps Repository calls onto one PostgREST table.
type RESTRepository[R any] struct {
	client *RESTClient
	table  string
}

// NewRESTRepository returns a repository for table.
func NewRESTRepository[R any](client *RESTClient, table string) *RESTRepository[R] {
	return &RESTRepository[R]{client: client, table: table}
}

// List issues a select=* request with eq filters and order clauses.
func (r *RESTRepository[R]) List(ctx context.Context, query Query) ([]R, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("select", "*")
	for _, filter := range query.Filters {
		params.Add(filter.Column, "eq."+filter.Value)
	}
	if len(query.Order) > 0 {
		parts := make([]string, 0, len(query.Order))
		for _, order := range query.Order {
			direction := "asc"
			if order.Descending {
				direction = "desc"
			}
			parts = append(parts, order.Column+"."+direction)
		}
		params.Set("order", strings.Join(parts, ","))
	}
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}

	raw, err := r.client.do(ctx, http.MethodGet, r.client.endpoint(r.table, params), nil, false, nil)
	if err != nil {
		return nil, err
	}

	rows := make([]R, 0)
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.table, err)
	}
	return rows, nil
}

// Get requests a single object; PGRST116 becomes ErrNotFound.
func (r *RESTRepository[R]) Get(ctx context.Context, id string) (R, error) {
	var row R
	params := url.Values{}
	params.Set("select", "*")
	params.Set("id", "eq."+id)

	raw, err := r.client.do(ctx, http.MethodGet, r.client.endpoint(r.table, params), nil, false, map[string]string{
		"Accept": singleObjectMimeType,
	})
	if err != nil {
		return row, err
	}
	if err := json.Unmarshal(raw, &row); err != nil {
		return row, fmt.Errorf("decode %s row: %w", r.table, err)
	}
	return row, nil
}

// Insert posts row and returns the stored representation.
func (r *RESTRepository[R]) Insert(ctx context.Context, row R) (R, error) {
	var stored R
	payload, err := writePayload(row, false)
	if err != nil {
		return stored, err
	}

	raw, err := r.client.do(ctx, http.MethodPost, r.client.endpoint(r.table, nil), []map[string]interface{}{payload}, true, map[string]string{
		"Accept": singleObjectMimeType,
		"Prefer": "return=representation",
	})
	if err != nil {
		return stored, err
	}
	if err := json.Unmarshal(raw, &stored); err != nil {
		return stored, fmt.Errorf("decode %s row: %w", r.table, err)
	}
	return stored, nil
}

// Update patches the row with id and returns the stored representation.
func (r *RESTRepository[R]) Update(ctx context.Context, id string, row R) (R, error) {
	var stored R
	payload, err := writePayload(row, true)
	if err != nil {
		return stored, err
	}

	params := url.Values{}
	params.Set("id", "eq."+id)
	raw, err := r.client.do(ctx, http.MethodPatch, r.client.endpoint(r.table, params), payload, true, map[string]string{
		"Accept": singleObjectMimeType,
		"Prefer": "return=representation",
	})
	if err != nil {
		return stored, err
	}
	if err := json.Unmarshal(raw, &stored); err != nil {
		return stored, fmt.Errorf("decode %s row: %w", r.table, err)
	}
	return stored, nil
}

// Delete removes the row with id. Deleting nothing is reported as ErrNotFound.
func (r *RESTRepository[R]) Delete(ctx context.Context, id string) error {
	params := url.Values{}
	params.Set("id", "eq."+id)
	raw, err := r.client.do(ctx, http.MethodDelete, r.client.endpoint(r.table, params), nil, true, map[string]string{
		"Prefer": "return=representation",
	})
	if err != nil {
		return err
	}

	var deleted []json.RawMessage
	if err := json.Unmarshal(raw, &deleted); err != nil {
		return fmt.Errorf("decode %s delete: %w", r.table, err)
	}
	if len(deleted) == 0 {
		return ErrNotFound
	}
	return nil
}

// writePayload strips server-owned columns from row.
func writePayload(row interface{}, update bool) (map[string]interface{}, error) {
	raw, err := json.Marshal(row)
	if err != nil {
		return nil, fmt.Errorf("encode row: %w", err)
	}
	payload := map[string]interface{}{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("encode row: %w", err)
	}

	delete(payload, "created_at")
	delete(payload, "updated_at")
	if id, _ := payload["id"].(string); update || id == "" {
		delete(payload, "id")
	}
	if update {
		payload["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	}
	return payload, nil
}
