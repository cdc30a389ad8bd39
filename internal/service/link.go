package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Charles-Okoeguale/smart-link/internal/analytics"
	"github.com/Charles-Okoeguale/smart-link/internal/domain"
	"github.com/Charles-Okoeguale/smart-link/internal/dto"
	"github.com/Charles-Okoeguale/smart-link/internal/platform"
	"github.com/Charles-Okoeguale/smart-link/internal/registry"
	"github.com/Charles-Okoeguale/smart-link/internal/repository"
	"github.com/Charles-Okoeguale/smart-link/internal/routing"
	"github.com/Charles-Okoeguale/smart-link/internal/shortcode"
)

// maxCodeAttempts bounds the collision retry loop on link creation
const maxCodeAttempts = 10

// LinkService implements LinkServicer. It owns the resolution flow:
// lookup, classify, resolve, tag, record.
type LinkService struct {
	registry      registry.LinkRegistry
	recorder      ClickRecorder
	events        repository.ClickRepository
	codes         *shortcode.Generator
	baseURL       string
	recordTimeout time.Duration
	log           *zap.Logger
}

// NewLinkService creates a new link service
func NewLinkService(
	reg registry.LinkRegistry,
	recorder ClickRecorder,
	events repository.ClickRepository,
	codes *shortcode.Generator,
	baseURL string,
	recordTimeout time.Duration,
	log *zap.Logger,
) *LinkService {
	return &LinkService{
		registry:      reg,
		recorder:      recorder,
		events:        events,
		codes:         codes,
		baseURL:       strings.TrimRight(baseURL, "/"),
		recordTimeout: recordTimeout,
		log:           log,
	}
}

// CreateLink validates a creation request and stores a new link record
// under a collision-free short code
func (s *LinkService) CreateLink(ctx context.Context, req *dto.ShortenRequest) (*dto.ShortenResponse, error) {
	rules, err := domain.NormalizeRoutingRules(req.RoutingRules)
	if err != nil {
		s.log.Warn("Rejected link creation with invalid routing rules",
			zap.String("campaign_id", req.CampaignID),
			zap.Error(err))
		return nil, err
	}

	record := &domain.LinkRecord{
		OriginalURL:     req.OriginalURL,
		CampaignID:      req.CampaignID,
		CreatorID:       req.CreatorID,
		RoutingRules:    rules,
		PlatformRouting: req.PlatformRouting,
		CreatedAt:       time.Now().UTC(),
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		record.ShortCode = s.codes.Generate()

		err := s.registry.Create(ctx, record)
		if errors.Is(err, domain.ErrCodeExists) {
			s.log.Warn("Short code collision, retrying",
				zap.String("short_code", record.ShortCode),
				zap.Int("attempt", attempt+1))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to store link: %w", err)
		}

		s.log.Info("Link created",
			zap.String("short_code", record.ShortCode),
			zap.String("campaign_id", record.CampaignID),
			zap.Bool("platform_routing", record.PlatformRouting))

		return &dto.ShortenResponse{
			Success:   true,
			ShortURL:  fmt.Sprintf("%s/%s", s.baseURL, record.ShortCode),
			ShortCode: record.ShortCode,
			Data:      record,
		}, nil
	}

	return nil, fmt.Errorf("failed to generate a unique short code after %d attempts", maxCodeAttempts)
}

// ResolveRedirect resolves a short code to its final target URL and
// records the click. A recording failure never fails the redirect; it
// is surfaced on the response instead.
func (s *LinkService) ResolveRedirect(ctx context.Context, req *dto.RedirectRequest) (*dto.RedirectResponse, error) {
	if !shortcode.Valid(req.ShortCode) {
		return nil, domain.ErrLinkNotFound
	}

	record, err := s.registry.FindByCode(ctx, req.ShortCode)
	if err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to look up short code: %w", err)
	}

	detected := platform.Detect(req.UserAgent)
	location := req.UserLocation.Normalize()
	now := time.Now().UTC()

	resolution := routing.Resolve(record, detected)

	targetURL, err := routing.AppendTracking(resolution.TargetURL, routing.TrackingParams{
		CampaignID: record.CampaignID,
		CreatorID:  record.CreatorID,
		ClickID:    fmt.Sprintf("%s_%d", record.ShortCode, now.UnixMilli()),
		Platform:   detected,
		Country:    location.Country,
	})
	if err != nil {
		// A stored target that cannot be parsed is a data-integrity
		// fault. Degrade to the untagged URL rather than failing the
		// user-visible redirect.
		s.log.Error("Stored target URL is malformed, redirecting without tracking parameters",
			zap.String("short_code", record.ShortCode),
			zap.String("target_url", resolution.TargetURL),
			zap.Error(err))
		targetURL = resolution.TargetURL
	}

	event := &domain.ClickEvent{
		ShortCode:   record.ShortCode,
		CampaignID:  record.CampaignID,
		CreatorID:   record.CreatorID,
		OriginalURL: record.OriginalURL,
		TargetURL:   targetURL,
		Timestamp:   now,
		UserAgent:   req.UserAgent,
		IP:          location.IP,
		Country:     location.Country,
		CountryName: location.CountryName,
		City:        location.City,
		Region:      location.Region,
		RoutingRule: resolution.AppliedRule,
		Platform:    string(detected),
	}

	response := &dto.RedirectResponse{
		Success:   true,
		TargetURL: targetURL,
		Routing: dto.RoutingInfo{
			Original:    record.OriginalURL,
			Final:       targetURL,
			AppliedRule: resolution.AppliedRule,
			UserCountry: location.Country,
			Platform:    string(detected),
			RoutingKey:  resolution.RoutingKey,
		},
	}

	// Recording runs detached from the request context so an HTTP
	// cancellation cannot abort a write for a redirect the user
	// already received.
	recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.recordTimeout)
	defer cancel()

	if err := s.recorder.Record(recordCtx, event); err != nil {
		s.log.Error("Failed to record click, redirect still served",
			zap.String("short_code", record.ShortCode),
			zap.Error(err))
		response.AnalyticsError = err.Error()
	}

	s.log.Info("Redirect resolved",
		zap.String("short_code", record.ShortCode),
		zap.String("platform", string(detected)),
		zap.String("applied_rule", resolution.AppliedRule),
		zap.String("country", location.Country))

	return response, nil
}

// GetAnalytics returns the filtered click events plus their summary.
// A storage read failure yields an empty result with an error flag
// instead of failing the response.
func (s *LinkService) GetAnalytics(ctx context.Context, req *dto.AnalyticsRequest) (*dto.AnalyticsResponse, error) {
	filter := repository.EventFilter{
		CampaignID: req.CampaignID,
		ShortCode:  req.ShortCode,
	}

	events, err := s.events.QueryEvents(ctx, filter)
	if err != nil {
		s.log.Error("Failed to query click events",
			zap.String("campaign_id", req.CampaignID),
			zap.String("short_code", req.ShortCode),
			zap.Error(err))
		return &dto.AnalyticsResponse{
			Success:   false,
			Analytics: []*domain.ClickEvent{},
			Summary:   analytics.Summarize(nil),
			Error:     "failed to read click events",
		}, nil
	}

	if events == nil {
		events = []*domain.ClickEvent{}
	}

	s.log.Info("Analytics retrieved",
		zap.String("campaign_id", req.CampaignID),
		zap.String("short_code", req.ShortCode),
		zap.Int("event_count", len(events)))

	return &dto.AnalyticsResponse{
		Success:   true,
		Analytics: events,
		Summary:   analytics.Summarize(events),
	}, nil
}
