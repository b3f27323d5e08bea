// Package title formats the current P&L into a video title and pushes
// it to the video-metadata collaborator.
package title

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/aristath/spacefolio/internal/domain"
)

// FormatTitle renders the video title for a summary. The P&L amount is
// thousands-separated with two decimal places; a loss keeps its minus
// sign, which reads just as well in the template.
func FormatTitle(summary *domain.PortfolioSummary) string {
	amount := humanize.FormatFloat("#,###.##", summary.Total.PnL.InexactFloat64())
	return fmt.Sprintf("How I Made $%s with SpaceX Stock", amount)
}

// Publisher pushes P&L-bearing titles to a fixed external video.
type Publisher struct {
	updater domain.VideoUpdater
	videoID string
	log     zerolog.Logger
}

// NewPublisher creates a new title publisher targeting the given video.
func NewPublisher(updater domain.VideoUpdater, videoID string, log zerolog.Logger) *Publisher {
	return &Publisher{
		updater: updater,
		videoID: videoID,
		log:     log.With().Str("component", "title_publisher").Logger(),
	}
}

// Publish formats the summary into a title and hands it to the video
// updater. Returns the published title. Single attempt; the updater's
// error (including missing-credentials) propagates unchanged.
func (p *Publisher) Publish(ctx context.Context, summary *domain.PortfolioSummary) (string, error) {
	if p.videoID == "" {
		return "", fmt.Errorf("no target video configured")
	}

	newTitle := FormatTitle(summary)
	if err := p.updater.UpdateTitle(ctx, p.videoID, newTitle); err != nil {
		return "", err
	}

	p.log.Info().Str("title", newTitle).Msg("Title published")
	return newTitle, nil
}
