package service

import (
	"context"

	"github.com/Charles-Okoeguale/smart-link/internal/domain"
	"github.com/Charles-Okoeguale/smart-link/internal/dto"
)

// LinkServicer defines the interface for smart link operations
type LinkServicer interface {
	CreateLink(ctx context.Context, req *dto.ShortenRequest) (*dto.ShortenResponse, error)
	ResolveRedirect(ctx context.Context, req *dto.RedirectRequest) (*dto.RedirectResponse, error)
	GetAnalytics(ctx context.Context, req *dto.AnalyticsRequest) (*dto.AnalyticsResponse, error)
}

// ClickRecorder persists the outcome of one resolution
type ClickRecorder interface {
	Record(ctx context.Context, event *domain.ClickEvent) error
}
