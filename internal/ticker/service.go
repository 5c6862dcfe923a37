// Package ticker orchestrates commentary generation for match events.
package ticker

import (
	"context"
	"errors"
	"fmt"

	"github.com/matchwire/matchwire/internal/llm"
	"github.com/matchwire/matchwire/internal/models"
	"github.com/matchwire/matchwire/internal/storage"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrGeneration marks an upstream provider failure. The API boundary maps it
// to a 502.
var ErrGeneration = errors.New("llm generation failed")

// UnknownTeamName is used when an event's team cannot be resolved.
const UnknownTeamName = "Unknown Team"

// MatchStore resolves match context for prompt construction.
type MatchStore interface {
	GetMatchContext(ctx context.Context, matchID primitive.ObjectID) (*models.MatchContext, error)
	GetTeamByID(ctx context.Context, id primitive.ObjectID) (*models.Team, error)
}

// EventStore resolves source events and persists ticker entries.
type EventStore interface {
	GetEventByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error)
	GetSyntheticEventByID(ctx context.Context, id primitive.ObjectID) (*models.SyntheticEvent, error)
	GetTickerEntryByEvent(ctx context.Context, eventID primitive.ObjectID) (*models.TickerEntry, error)
	GetTickerEntryBySyntheticEvent(ctx context.Context, syntheticEventID primitive.ObjectID) (*models.TickerEntry, error)
	InsertTickerEntry(ctx context.Context, entry *models.TickerEntry) (*models.TickerEntry, error)
	PublishTickerEntry(ctx context.Context, id primitive.ObjectID) (*models.TickerEntry, error)
	MarkSyntheticEventGenerated(ctx context.Context, id primitive.ObjectID, text string, style models.Style) error
}

// Service generates ticker entries from events.
type Service struct {
	matches  MatchStore
	events   EventStore
	provider llm.Provider
}

// NewService creates a generation service bound to the provider selected at
// startup.
func NewService(matches MatchStore, events EventStore, provider llm.Provider) *Service {
	return &Service{
		matches:  matches,
		events:   events,
		provider: provider,
	}
}

// Provider returns the active generation provider.
func (s *Service) Provider() llm.Provider {
	return s.provider
}

// GenerateForEvent produces (or returns the existing) ticker entry for a
// source event. Repeat calls for the same event are idempotent: the first
// generated entry is returned unchanged.
func (s *Service) GenerateForEvent(ctx context.Context, eventID primitive.ObjectID, style models.Style, mode models.Mode) (*models.TickerEntry, error) {
	event, err := s.events.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("resolve event: %w", err)
	}

	// Idempotency gate: at most one entry per source event.
	existing, err := s.events.GetTickerEntryByEvent(ctx, eventID)
	if err == nil {
		idempotentHits.Inc()
		log.Debug().Str("event_id", eventID.Hex()).Msg("Ticker entry already exists, returning it")
		return existing, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	// Match context is best effort on this path; the fact block carries the
	// essentials even without it.
	matchCtx, err := s.matches.GetMatchContext(ctx, event.MatchID)
	if err != nil {
		log.Warn().Err(err).Str("match_id", event.MatchID.Hex()).Msg("Match context unavailable")
		matchCtx = nil
	}

	teamName := UnknownTeamName
	if event.TeamID != nil {
		if team, err := s.matches.GetTeamByID(ctx, *event.TeamID); err == nil {
			teamName = team.Name
		}
	}

	minute := event.Minute
	if minute == 0 && matchCtx != nil {
		minute = matchCtx.Minute
	}

	// Goal events always get a minimal structured context, even without a
	// richer payload.
	var contextData map[string]interface{}
	if event.Type.IsGoal() {
		contextData = map[string]interface{}{
			"player_name": event.PlayerName,
			"assist":      event.AssistName,
			"team_name":   teamName,
		}
	}

	text, err := s.provider.Generate(ctx, llm.Request{
		Taxonomy:    event.Type,
		Detail:      event.Detail,
		Minute:      minute,
		PlayerName:  event.PlayerName,
		AssistName:  event.AssistName,
		TeamName:    teamName,
		Style:       style,
		Language:    "de",
		ContextData: contextData,
	})
	if err != nil {
		generationFailures.WithLabelValues(s.provider.Name(), string(event.Type)).Inc()
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	entry := models.NewPublishedEntry(event.MatchID, minute, text, mode, style, "de")
	entry.EventID = &event.ID
	entry.LLMModel = s.provider.Model()

	inserted, err := s.events.InsertTickerEntry(ctx, entry)
	if errors.Is(err, storage.ErrDuplicateEntry) {
		// Another request won the race; return its entry.
		idempotentHits.Inc()
		return s.events.GetTickerEntryByEvent(ctx, eventID)
	}
	if err != nil {
		return nil, fmt.Errorf("persist ticker entry: %w", err)
	}

	generationsTotal.WithLabelValues(s.provider.Name(), string(event.Type)).Inc()
	log.Info().
		Str("entry_id", inserted.ID.Hex()).
		Str("event_id", eventID.Hex()).
		Str("taxonomy", string(event.Type)).
		Str("style", string(style)).
		Msg("Ticker entry generated")

	return inserted, nil
}

// SyntheticGenerationRequest is a generation request for a synthetic event.
// Provider and model overrides do not re-route generation (provider selection
// is fixed at startup); they are reflected in the reported fields only.
type SyntheticGenerationRequest struct {
	SyntheticEventID primitive.ObjectID
	Style            models.Style
	Language         string
	ProviderOverride string
	ModelOverride    string
}

// SyntheticGenerationResult is the outcome of a synthetic generation.
type SyntheticGenerationResult struct {
	TickerEntryID    primitive.ObjectID `json:"ticker_entry_id"`
	SyntheticEventID primitive.ObjectID `json:"synthetic_event_id"`
	Text             string             `json:"text"`
	LLMModel         string             `json:"llm_model"`
	LLMProvider      string             `json:"llm_provider"`
}

// GenerateForSyntheticEvent produces (or returns the existing) entry for a
// synthetic event: pre-match briefs and live-stat snapshots.
func (s *Service) GenerateForSyntheticEvent(ctx context.Context, req SyntheticGenerationRequest) (*SyntheticGenerationResult, error) {
	synEvent, err := s.events.GetSyntheticEventByID(ctx, req.SyntheticEventID)
	if err != nil {
		return nil, fmt.Errorf("resolve synthetic event: %w", err)
	}

	if existing, err := s.events.GetTickerEntryBySyntheticEvent(ctx, req.SyntheticEventID); err == nil {
		idempotentHits.Inc()
		return s.syntheticResult(existing), nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	// Unlike the direct-event path, match context is required here: synthetic
	// events carry no actor fields of their own.
	matchCtx, err := s.matches.GetMatchContext(ctx, synEvent.MatchID)
	if err != nil {
		return nil, fmt.Errorf("resolve match: %w", err)
	}

	if req.ProviderOverride != "" && req.ProviderOverride != s.provider.Name() {
		log.Warn().
			Str("requested", req.ProviderOverride).
			Str("active", s.provider.Name()).
			Msg("Provider override ignored, selection is fixed at startup")
	}

	style := req.Style
	if style == "" {
		style = models.StyleNeutral
	}
	language := req.Language
	if language == "" {
		language = "de"
	}

	minute := 0
	if synEvent.Minute != nil {
		minute = *synEvent.Minute
	}

	teamName := matchCtx.HomeTeam
	if synEvent.TeamID != nil {
		if team, err := s.matches.GetTeamByID(ctx, *synEvent.TeamID); err == nil {
			teamName = team.Name
		}
	}

	text, err := s.provider.Generate(ctx, llm.Request{
		Taxonomy:    synEvent.EventType,
		Minute:      minute,
		TeamName:    teamName,
		Style:       style,
		Language:    language,
		ContextData: synEvent.ContextData,
	})
	if err != nil {
		generationFailures.WithLabelValues(s.provider.Name(), string(synEvent.EventType)).Inc()
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	model := s.provider.Model()
	if req.ModelOverride != "" {
		model = req.ModelOverride
	}

	entry := models.NewPublishedEntry(synEvent.MatchID, minute, text, models.ModeAuto, style, language)
	entry.SyntheticEventID = &synEvent.ID
	entry.LLMModel = model

	inserted, err := s.events.InsertTickerEntry(ctx, entry)
	if errors.Is(err, storage.ErrDuplicateEntry) {
		idempotentHits.Inc()
		existing, err := s.events.GetTickerEntryBySyntheticEvent(ctx, req.SyntheticEventID)
		if err != nil {
			return nil, err
		}
		return s.syntheticResult(existing), nil
	}
	if err != nil {
		return nil, fmt.Errorf("persist ticker entry: %w", err)
	}

	if err := s.events.MarkSyntheticEventGenerated(ctx, synEvent.ID, text, style); err != nil {
		log.Warn().Err(err).Str("synthetic_event_id", synEvent.ID.Hex()).Msg("Failed to mark synthetic event")
	}

	generationsTotal.WithLabelValues(s.provider.Name(), string(synEvent.EventType)).Inc()
	log.Info().
		Str("entry_id", inserted.ID.Hex()).
		Str("synthetic_event_id", synEvent.ID.Hex()).
		Str("taxonomy", string(synEvent.EventType)).
		Msg("Synthetic ticker entry generated")

	return s.syntheticResult(inserted), nil
}

func (s *Service) syntheticResult(entry *models.TickerEntry) *SyntheticGenerationResult {
	res := &SyntheticGenerationResult{
		TickerEntryID: entry.ID,
		Text:          entry.Text,
		LLMModel:      entry.LLMModel,
		LLMProvider:   s.provider.Name(),
	}
	if entry.SyntheticEventID != nil {
		res.SyntheticEventID = *entry.SyntheticEventID
	}
	return res
}

// CreateEntryInput carries the fields of a directly authored entry.
type CreateEntryInput struct {
	MatchID  primitive.ObjectID
	EventID  *primitive.ObjectID
	Minute   int
	Text     string
	Icon     string
	Mode     models.Mode
	Style    models.Style
	Language string
	Publish  bool
}

// CreateEntry is the generic create path. Manual entries bypass review and
// are published at creation; auto and hybrid entries start as drafts unless
// the caller explicitly asks for publication.
func (s *Service) CreateEntry(ctx context.Context, input CreateEntryInput) (*models.TickerEntry, error) {
	language := input.Language
	if language == "" {
		language = "de"
	}

	var entry *models.TickerEntry
	if input.Mode == models.ModeManual || input.Publish {
		entry = models.NewPublishedEntry(input.MatchID, input.Minute, input.Text, input.Mode, input.Style, language)
	} else {
		entry = models.NewDraftEntry(input.MatchID, input.Minute, input.Text, input.Mode, input.Style, language)
	}
	entry.EventID = input.EventID
	entry.Icon = input.Icon

	inserted, err := s.events.InsertTickerEntry(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("persist ticker entry: %w", err)
	}
	return inserted, nil
}

// Publish transitions a draft entry to published; publishing twice is a
// no-op.
func (s *Service) Publish(ctx context.Context, entryID primitive.ObjectID) (*models.TickerEntry, error) {
	return s.events.PublishTickerEntry(ctx, entryID)
}
