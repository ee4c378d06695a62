package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/akyairhashvil/kamreen/internal/models"
	"github.com/rs/zerolog"
	"github.com/slack-go/slack"
)

type SlackNotifier struct {
	logger zerolog.Logger
	timing timingConfig
	poster *httpPoster
}

// SlackOption customizes SlackNotifier behavior.
type SlackOption func(*SlackNotifier)

// WithSlackTiming overrides timing parameters (primarily for testing).
func WithSlackTiming(rateInterval time.Duration, rateBurst int, backoffInitial, backoffMax, backoffMaxElapsed time.Duration) SlackOption {
	return func(s *SlackNotifier) {
		s.timing.rateInterval = rateInterval
		s.timing.rateBurst = rateBurst
		s.timing.backoffInitial = backoffInitial
		s.timing.backoffMax = backoffMax
		s.timing.backoffMaxElapsed = backoffMaxElapsed
	}
}

// NewSlackNotifier creates a Slack notifier or a noop notifier when the webhook is empty.
func NewSlackNotifier(logger zerolog.Logger, webhookURL string, opts ...SlackOption) Notifier {
	if webhookURL == "" {
		return NewNoop(logger, "slack webhook not configured; notifications disabled")
	}

	notifier := &SlackNotifier{
		logger: logger,
		timing: defaultTiming,
	}
	for _, opt := range opts {
		opt(notifier)
	}
	notifier.poster = newHTTPPoster(logger, "slack", webhookURL, "application/json", notifier.timing)
	return notifier
}

// Notify implements Notifier.
func (n *SlackNotifier) Notify(ctx context.Context, event Event) error {
	if err := n.poster.waitForRateLimit(ctx, string(event.Kind)); err != nil {
		return err
	}
	payload, err := json.Marshal(buildSlackMessage(event))
	if err != nil {
		return fmt.Errorf("marshal slack payload: %w", err)
	}
	if err := n.poster.postWithRetry(ctx, payload); err != nil {
		return err
	}
	n.logger.Debug().Str("kind", string(event.Kind)).Msg("slack notification sent")
	return nil
}

func buildSlackMessage(event Event) slack.WebhookMessage {
	summary := fmt.Sprintf("%s %s", kindEmoji(event.Kind), event.Title)
	header := slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", summary, true, false))
	body := slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", event.Message, false, false), nil, nil)
	context := slack.NewContextBlock("",
		slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("Kind: *%s*", event.Kind), false, false),
		slack.NewTextBlockObject("mrkdwn", "Fired: "+event.FiredAt.UTC().Format(time.RFC3339), false, false),
	)

	blockSet := slack.Blocks{BlockSet: []slack.Block{header, body, context}}
	return slack.WebhookMessage{
		Text:   summary,
		Blocks: &blockSet,
	}
}

func kindEmoji(kind models.AlertKind) string {
	switch kind {
	case models.AlertAlarm:
		return ":alarm_clock:"
	case models.AlertFilter:
		return ":droplet:"
	default:
		return ":bell:"
	}
}
