package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/pageza/dishcovery/backend/config"
	"github.com/pageza/dishcovery/backend/internal/metrics"
	"github.com/pageza/dishcovery/backend/internal/model"
)

const (
	videoResults = 6
	// The search endpoint does not return durations.
	placeholderDuration = "4:32"
)

type youtubeSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			Thumbnails   struct {
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

// VideoService searches YouTube for recipe videos.
type VideoService struct {
	apiKey  string
	baseURL string
	client  *http.Client
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewVideoService(cfg config.YouTubeConfig, m *metrics.Metrics, logger *zap.Logger) *VideoService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VideoService{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
		metrics: m,
		logger:  logger,
	}
}

// Search returns up to six videos for "<title> recipe". Failures are
// logged and yield an empty list, never an error.
func (s *VideoService) Search(ctx context.Context, title string) ([]model.Video, error) {
	videos, err := s.search(ctx, title)
	if err != nil {
		s.metrics.VideoSearch("error")
		s.logger.Warn("video search failed", zap.String("query", title), zap.Error(err))
		return []model.Video{}, nil
	}
	s.metrics.VideoSearch("ok")
	return videos, nil
}

func (s *VideoService) search(ctx context.Context, title string) ([]model.Video, error) {
	if s.apiKey == "" {
		return nil, errors.New("youtube api key is not configured")
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("maxResults", fmt.Sprint(videoResults))
	params.Set("type", "video")
	params.Set("q", title+" recipe")
	params.Set("key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("youtube search failed with status %d", resp.StatusCode)
	}

	var result youtubeSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	videos := make([]model.Video, 0, len(result.Items))
	for _, item := range result.Items {
		videos = append(videos, model.Video{
			ID:           item.ID.VideoID,
			Title:        item.Snippet.Title,
			Thumbnail:    item.Snippet.Thumbnails.Medium.URL,
			ChannelTitle: item.Snippet.ChannelTitle,
			Duration:     placeholderDuration,
		})
	}
	return videos, nil
}
