// Package importer triggers the external workflow engine that imports match
// data. Calls are fire and forget: the importer populates the store
// asynchronously and the backend only ever observes whether data has arrived.
package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

// Topic identifies an import workflow.
type Topic string

const (
	TopicLineups      Topic = "lineups"
	TopicEvents       Topic = "events"
	TopicStatistics   Topic = "statistics"
	TopicPlayerStats  Topic = "player-statistics"
	TopicPreMatch     Topic = "prematch"
	TopicCountry      Topic = "country"
	TopicCompetitions Topic = "competitions"
	TopicMatches      Topic = "matches"
)

// Notifier posts import requests to the workflow engine's webhooks.
type Notifier struct {
	client   *resty.Client
	webhooks map[Topic]string
	limiter  Limiter
}

// NewNotifier creates a notifier. The limiter guards topics that would
// otherwise fire on every read of still-empty data.
func NewNotifier(webhooks map[Topic]string, limiter Limiter) *Notifier {
	return &Notifier{
		client:   resty.New().SetTimeout(10 * time.Second),
		webhooks: webhooks,
		limiter:  limiter,
	}
}

// Notify posts the payload to the topic's webhook. Failures are logged, never
// surfaced; delivery is not guaranteed.
func (n *Notifier) Notify(ctx context.Context, topic Topic, payload map[string]interface{}) {
	url, ok := n.webhooks[topic]
	if !ok || url == "" {
		log.Debug().Str("topic", string(topic)).Msg("No webhook configured for topic")
		return
	}

	resp, err := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(url)

	if err != nil {
		log.Error().Err(err).Str("topic", string(topic)).Msg("Import webhook failed")
		return
	}

	log.Info().
		Str("topic", string(topic)).
		Int("status", resp.StatusCode()).
		Msg("Import webhook triggered")
}

// NotifyCooled posts to the topic's webhook at most once per cooldown window
// for the given key.
func (n *Notifier) NotifyCooled(ctx context.Context, topic Topic, key string, payload map[string]interface{}) {
	if n.limiter != nil && !n.limiter.Allow(ctx, fmt.Sprintf("%s:%s", topic, key)) {
		log.Debug().Str("topic", string(topic)).Str("key", key).Msg("Import webhook in cooldown")
		return
	}
	n.Notify(ctx, topic, payload)
}
