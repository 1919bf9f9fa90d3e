package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"lummy/models"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPSource reads the event registry through a JSON read gateway:
//
//	GET {base}/events       -> {"events": ["0xabc...", ...]}
//	GET {base}/events/{id}  -> EventDetails, 404 when unknown
type HTTPSource struct {
	baseURL string
	hc      *http.Client
}

func NewHTTPSource(baseURL string) *HTTPSource {
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type listEventsResponse struct {
	Events []string `json:"events"`
}

func (s *HTTPSource) ListEvents(ctx context.Context) ([]string, error) {
	var resp listEventsResponse
	found, err := s.getJSON(ctx, "/events", &resp)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("gateway: events listing not found")
	}
	return resp.Events, nil
}

func (s *HTTPSource) GetEventDetails(ctx context.Context, id string) (*models.EventDetails, error) {
	var details models.EventDetails
	found, err := s.getJSON(ctx, "/events/"+url.PathEscape(id), &details)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &details, nil
}

// getJSON reports found=false on 404.
func (s *HTTPSource) getJSON(ctx context.Context, path string, out any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return false, fmt.Errorf("gateway: new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.hc.Do(req)
	if err != nil {
		return false, fmt.Errorf("gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return false, fmt.Errorf("gateway: GET %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("gateway: decode %s: %w", path, err)
	}
	return true, nil
}
