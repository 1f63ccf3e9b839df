package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"uptime-report-backend/config"
	"uptime-report-backend/internal/model"
	"uptime-report-backend/internal/parse"
	"uptime-report-backend/internal/store"
)

// Service periodically pulls reachability samples from the upstream
// status feed and appends them as observations.
type Service struct {
	cfg    *config.Config
	store  store.Store
	client *http.Client
}

// NewService creates and initializes a new collector service.
func NewService(cfg *config.Config, store store.Store) *Service {
	return &Service{
		cfg:   cfg,
		store: store,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// classifyStatus maps a raw feed status value onto the stored
// active/inactive vocabulary.
func (s *Service) classifyStatus(raw string) (string, bool) {
	for _, v := range s.cfg.Collector.ActiveValues {
		if raw == v {
			return model.StatusActive, true
		}
	}
	for _, v := range s.cfg.Collector.InactiveValues {
		if raw == v {
			return model.StatusInactive, true
		}
	}
	return "", false
}

// Run starts the collection process in a loop.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Collector.Enabled {
		log.Println("Collector is disabled. Not starting.")
		return
	}
	log.Println("Starting collector service...")

	s.CollectOnce(ctx)

	timer := time.NewTimer(s.cfg.Collector.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Collector service shutting down.")
			return
		case <-timer.C:
			s.CollectOnce(ctx)
			timer.Reset(s.cfg.Collector.Interval)
		}
	}
}

// CollectOnce performs a single round of feed collection and appends
// the resulting observations.
func (s *Service) CollectOnce(ctx context.Context) {
	log.Println("Executing collection cycle...")

	var allItems []FeedItem
	total := 1
	pageSize := s.cfg.Collector.Request.PageSize
	for page := 1; (page-1)*pageSize < total; page++ {
		resp, err := s.fetchPage(ctx, page)
		if err != nil {
			log.Printf("Error fetching page %d: %v", page, err)
			break
		}
		if resp.Data.Total == 0 || len(resp.Data.Items) == 0 {
			break
		}
		total = resp.Data.Total
		allItems = append(allItems, resp.Data.Items...)
	}

	if len(allItems) == 0 {
		log.Println("Collection cycle finished: no samples to record.")
		return
	}

	observations := make([]model.Observation, 0, len(allItems))
	for _, item := range allItems {
		status, ok := s.classifyStatus(item.Status)
		if !ok {
			log.Printf("Warning: unrecognized status %q for location %s; sample dropped", item.Status, item.LocationID)
			continue
		}
		ts, err := parse.UTCTimestamp(item.Timestamp)
		if err != nil {
			log.Printf("Warning: could not parse timestamp for location %s: %v", item.LocationID, err)
			continue
		}
		observations = append(observations, model.Observation{
			LocationID: item.LocationID,
			Timestamp:  ts,
			Status:     status,
		})
	}

	if err := s.store.CreateObservations(ctx, observations); err != nil {
		log.Printf("Error recording observations: %v", err)
		return
	}

	log.Printf("Collection cycle finished: %d observations recorded.", len(observations))
}

// fetchPage fetches a single page of samples from the upstream feed.
func (s *Service) fetchPage(ctx context.Context, page int) (*FeedResponse, error) {
	payload := map[string]any{
		"page":     page,
		"pageSize": s.cfg.Collector.Request.PageSize,
	}
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Collector.Request.URL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range s.cfg.Collector.Request.Headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var feedResp FeedResponse
	if err := json.Unmarshal(body, &feedResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal feed response: %w", err)
	}

	if feedResp.Code != 0 {
		return nil, fmt.Errorf("feed returned non-zero application code: %d", feedResp.Code)
	}

	return &feedResp, nil
}
