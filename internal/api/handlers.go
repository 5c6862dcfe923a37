package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/matchwire/matchwire/internal/importer"
	"github.com/matchwire/matchwire/internal/llm"
	"github.com/matchwire/matchwire/internal/models"
	"github.com/matchwire/matchwire/internal/storage"
	"github.com/matchwire/matchwire/internal/ticker"
)

// Store is the slice of the storage layer the handlers read from and write
// to. It is an interface so handler tests can run against a fake.
type Store interface {
	GetTeams(ctx context.Context, skip, limit int) ([]models.Team, error)
	GetTeamByID(ctx context.Context, id primitive.ObjectID) (*models.Team, error)
	GetTeamsByCountry(ctx context.Context, country string) ([]models.Team, error)
	GetPartnerTeams(ctx context.Context) ([]models.Team, error)
	GetCountries(ctx context.Context) ([]string, error)

	GetMatchByID(ctx context.Context, id primitive.ObjectID) (*models.Match, error)
	GetMatchesByTeam(ctx context.Context, teamID primitive.ObjectID, skip, limit int) ([]models.Match, error)
	GetEventsByMatch(ctx context.Context, matchID primitive.ObjectID) ([]models.Event, error)
	CountEventsByMatch(ctx context.Context, matchID primitive.ObjectID) (int64, error)

	InsertSyntheticEvent(ctx context.Context, event *models.SyntheticEvent) (*models.SyntheticEvent, error)
	GetSyntheticEventsByMatch(ctx context.Context, matchID primitive.ObjectID) ([]models.SyntheticEvent, error)

	GetTickerEntryByID(ctx context.Context, id primitive.ObjectID) (*models.TickerEntry, error)
	ListTickerEntries(ctx context.Context, filter storage.TickerFilter) ([]models.TickerEntry, error)
	GetEntriesBySyntheticTaxonomies(ctx context.Context, matchID primitive.ObjectID, taxonomies []models.Taxonomy) ([]models.TickerEntry, error)
	UpdateTickerEntry(ctx context.Context, id primitive.ObjectID, update storage.TickerEntryUpdate) (*models.TickerEntry, error)

	GetStats(ctx context.Context) (*storage.Stats, error)
}

// Generator is the generation service surface the handlers call.
type Generator interface {
	GenerateForEvent(ctx context.Context, eventID primitive.ObjectID, style models.Style, mode models.Mode) (*models.TickerEntry, error)
	GenerateForSyntheticEvent(ctx context.Context, req ticker.SyntheticGenerationRequest) (*ticker.SyntheticGenerationResult, error)
	CreateEntry(ctx context.Context, input ticker.CreateEntryInput) (*models.TickerEntry, error)
	Publish(ctx context.Context, entryID primitive.ObjectID) (*models.TickerEntry, error)
}

// Handlers contains the HTTP handlers.
type Handlers struct {
	store   Store
	ticker  Generator
	imports *importer.Notifier
}

// NewHandlers creates handler functions bound to the store, the generation
// service and the import notifier.
func NewHandlers(store Store, gen Generator, imports *importer.Notifier) *Handlers {
	return &Handlers{
		store:   store,
		ticker:  gen,
		imports: imports,
	}
}

// ============================================================================
// HELPERS
// ============================================================================

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Error().Err(err).Msg("Failed to encode response")
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps storage and generation errors to status codes:
// unknown documents are 404, upstream provider failures are 502.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, ticker.ErrGeneration), errors.Is(err, llm.ErrNotImplemented):
		respondError(w, http.StatusBadGateway, err.Error())
	default:
		log.Error().Err(err).Msg("Request failed")
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func objectIDParam(r *http.Request, name string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(chi.URLParam(r, name))
}

func intQuery(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}

// ============================================================================
// HEALTH & STATS
// ============================================================================

// HealthCheck handles GET /api/health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// GetStats handles GET /api/stats
func (h *Handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.GetStats(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// ============================================================================
// TEAM HANDLERS
// ============================================================================

// GetTeams handles GET /api/teams
func (h *Handlers) GetTeams(w http.ResponseWriter, r *http.Request) {
	skip := intQuery(r, "skip", 0)
	limit := intQuery(r, "limit", 100)

	teams, err := h.store.GetTeams(r.Context(), skip, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if teams == nil {
		teams = []models.Team{}
	}
	respondJSON(w, http.StatusOK, teams)
}

// GetCountries handles GET /api/teams/countries
func (h *Handlers) GetCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.store.GetCountries(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"countries": countries})
}

// GetPartnerTeams handles GET /api/teams/partners
func (h *Handlers) GetPartnerTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.store.GetPartnerTeams(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if teams == nil {
		teams = []models.Team{}
	}
	respondJSON(w, http.StatusOK, teams)
}

// GetTeamsByCountry handles GET /api/teams/by-country/{country}.
// An empty result triggers the country import workflow so a later read finds
// the teams; the empty list is still returned immediately.
func (h *Handlers) GetTeamsByCountry(w http.ResponseWriter, r *http.Request) {
	country := chi.URLParam(r, "country")
	if country == "" {
		respondError(w, http.StatusBadRequest, "country is required")
		return
	}

	teams, err := h.store.GetTeamsByCountry(r.Context(), country)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if len(teams) == 0 && h.imports != nil {
		h.imports.NotifyCooled(r.Context(), importer.TopicCountry, country, map[string]interface{}{
			"country": country,
		})
		teams = []models.Team{}
	}
	respondJSON(w, http.StatusOK, teams)
}

// GetTeam handles GET /api/teams/{teamID}
func (h *Handlers) GetTeam(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "teamID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid team ID")
		return
	}

	team, err := h.store.GetTeamByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, team)
}

// GetTeamMatches handles GET /api/teams/{teamID}/matches.
// A team without any stored fixtures triggers the competitions and matches
// import workflows for its external ID.
func (h *Handlers) GetTeamMatches(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "teamID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid team ID")
		return
	}

	team, err := h.store.GetTeamByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	skip := intQuery(r, "skip", 0)
	limit := intQuery(r, "limit", 50)

	matches, err := h.store.GetMatchesByTeam(r.Context(), id, skip, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if len(matches) == 0 && team.ExternalID != 0 && h.imports != nil {
		key := strconv.Itoa(team.ExternalID)
		payload := map[string]interface{}{"team_id": team.ExternalID}
		h.imports.NotifyCooled(r.Context(), importer.TopicCompetitions, key, payload)
		h.imports.NotifyCooled(r.Context(), importer.TopicMatches, key, payload)
		matches = []models.Match{}
	}
	respondJSON(w, http.StatusOK, matches)
}

// ============================================================================
// MATCH HANDLERS
// ============================================================================

// GetMatch handles GET /api/matches/{matchID}.
// Reading a live match triggers the lineup and statistics import workflows;
// the importer keeps those collections current while a match runs.
func (h *Handlers) GetMatch(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "matchID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid match ID")
		return
	}

	match, err := h.store.GetMatchByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if match.Status == models.MatchLive && match.ExternalID != 0 && h.imports != nil {
		key := strconv.Itoa(match.ExternalID)
		payload := map[string]interface{}{"fixture_id": match.ExternalID}
		h.imports.NotifyCooled(r.Context(), importer.TopicLineups, key, payload)
		h.imports.NotifyCooled(r.Context(), importer.TopicStatistics, key, payload)
		h.imports.NotifyCooled(r.Context(), importer.TopicPlayerStats, key, payload)
	}
	respondJSON(w, http.StatusOK, match)
}

// GetMatchEvents handles GET /api/matches/{matchID}/events.
// A match with no imported events yet triggers the events workflow.
func (h *Handlers) GetMatchEvents(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "matchID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid match ID")
		return
	}

	match, err := h.store.GetMatchByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	events, err := h.store.GetEventsByMatch(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if len(events) == 0 && match.ExternalID != 0 && h.imports != nil {
		h.imports.NotifyCooled(r.Context(), importer.TopicEvents, strconv.Itoa(match.ExternalID), map[string]interface{}{
			"fixture_id": match.ExternalID,
		})
		events = []models.Event{}
	}
	respondJSON(w, http.StatusOK, events)
}

// ============================================================================
// TICKER HANDLERS
// ============================================================================

// GetTickerEntries handles GET /api/ticker
func (h *Handlers) GetTickerEntries(w http.ResponseWriter, r *http.Request) {
	filter := storage.TickerFilter{
		Skip:  intQuery(r, "skip", 0),
		Limit: intQuery(r, "limit", 50),
	}

	if raw := r.URL.Query().Get("mode"); raw != "" {
		mode, err := models.ParseMode(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		filter.Mode = mode
	}

	entries, err := h.store.ListTickerEntries(r.Context(), filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if entries == nil {
		entries = []models.TickerEntry{}
	}
	respondJSON(w, http.StatusOK, entries)
}

// GetMatchTicker handles GET /api/ticker/match/{matchID}
func (h *Handlers) GetMatchTicker(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "matchID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid match ID")
		return
	}

	filter := storage.TickerFilter{
		MatchID:       &id,
		PublishedOnly: r.URL.Query().Get("published_only") != "false",
		Skip:          intQuery(r, "skip", 0),
		Limit:         intQuery(r, "limit", 100),
	}

	entries, err := h.store.ListTickerEntries(r.Context(), filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if entries == nil {
		entries = []models.TickerEntry{}
	}
	respondJSON(w, http.StatusOK, entries)
}

// GetPreMatchEntries handles GET /api/ticker/match/{matchID}/prematch.
// An empty pre-match feed for a scheduled match triggers the prematch import
// workflow, which creates the synthetic events and their entries.
func (h *Handlers) GetPreMatchEntries(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "matchID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid match ID")
		return
	}

	entries, err := h.store.GetEntriesBySyntheticTaxonomies(r.Context(), id, models.PreMatchTaxonomies())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if len(entries) == 0 && h.imports != nil {
		if match, err := h.store.GetMatchByID(r.Context(), id); err == nil &&
			match.Status == models.MatchScheduled && match.ExternalID != 0 {
			h.imports.NotifyCooled(r.Context(), importer.TopicPreMatch, strconv.Itoa(match.ExternalID), map[string]interface{}{
				"fixture_id": match.ExternalID,
			})
		}
		entries = []models.TickerEntry{}
	}
	respondJSON(w, http.StatusOK, entries)
}

// GetLiveEntries handles GET /api/ticker/match/{matchID}/live
func (h *Handlers) GetLiveEntries(w http.ResponseWriter, r *http.Request) {
	h.syntheticEntries(w, r, []models.Taxonomy{models.TaxonomyLiveStatsUpdate})
}

func (h *Handlers) syntheticEntries(w http.ResponseWriter, r *http.Request, taxonomies []models.Taxonomy) {
	id, err := objectIDParam(r, "matchID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid match ID")
		return
	}

	entries, err := h.store.GetEntriesBySyntheticTaxonomies(r.Context(), id, taxonomies)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if entries == nil {
		entries = []models.TickerEntry{}
	}
	respondJSON(w, http.StatusOK, entries)
}

// GetTickerEntry handles GET /api/ticker/{entryID}
func (h *Handlers) GetTickerEntry(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "entryID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid entry ID")
		return
	}

	entry, err := h.store.GetTickerEntryByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

type createEntryRequest struct {
	MatchID  string `json:"match_id"`
	EventID  string `json:"event_id,omitempty"`
	Minute   int    `json:"minute"`
	Text     string `json:"text"`
	Icon     string `json:"icon,omitempty"`
	Mode     string `json:"mode"`
	Style    string `json:"style,omitempty"`
	Language string `json:"language,omitempty"`
	Publish  bool   `json:"publish,omitempty"`
}

// CreateTickerEntry handles POST /api/ticker. Manual entries are published at
// creation; auto and hybrid entries start as drafts unless publish is set.
func (h *Handlers) CreateTickerEntry(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	matchID, err := primitive.ObjectIDFromHex(req.MatchID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid match ID")
		return
	}
	if req.Text == "" {
		respondError(w, http.StatusBadRequest, "text is required")
		return
	}
	if req.Minute < 0 || req.Minute > 120 {
		respondError(w, http.StatusBadRequest, "minute must be between 0 and 120")
		return
	}

	mode, err := models.ParseMode(req.Mode)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var style models.Style
	if req.Style != "" {
		if style, err = models.ParseStyle(req.Style); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	language := req.Language
	if language != "" {
		if language, err = models.ParseLanguage(language); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	input := ticker.CreateEntryInput{
		MatchID:  matchID,
		Minute:   req.Minute,
		Text:     req.Text,
		Icon:     req.Icon,
		Mode:     mode,
		Style:    style,
		Language: language,
		Publish:  req.Publish,
	}
	if req.EventID != "" {
		eventID, err := primitive.ObjectIDFromHex(req.EventID)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid event ID")
			return
		}
		input.EventID = &eventID
	}

	entry, err := h.ticker.CreateEntry(r.Context(), input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, entry)
}

type updateEntryRequest struct {
	Text   *string `json:"text,omitempty"`
	Icon   *string `json:"icon,omitempty"`
	Status *string `json:"status,omitempty"`
}

// UpdateTickerEntry handles PATCH /api/ticker/{entryID}
func (h *Handlers) UpdateTickerEntry(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "entryID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid entry ID")
		return
	}

	var req updateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	update := storage.TickerEntryUpdate{
		Text: req.Text,
		Icon: req.Icon,
	}
	if req.Status != nil {
		status := models.Status(*req.Status)
		if status != models.StatusDraft && status != models.StatusPublished {
			respondError(w, http.StatusBadRequest, "invalid status: "+*req.Status)
			return
		}
		update.Status = &status
		if status == models.StatusPublished {
			now := time.Now().UTC()
			update.PublishedAt = &now
		}
	}

	entry, err := h.store.UpdateTickerEntry(r.Context(), id, update)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

// PublishTickerEntry handles POST /api/ticker/{entryID}/publish
func (h *Handlers) PublishTickerEntry(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "entryID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid entry ID")
		return
	}

	entry, err := h.ticker.Publish(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

// GenerateForEvent handles POST /api/ticker/generate/{eventID}. Repeat calls
// for the same event return the first generated entry.
func (h *Handlers) GenerateForEvent(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "eventID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid event ID")
		return
	}

	style := models.StyleNeutral
	if raw := r.URL.Query().Get("style"); raw != "" {
		if style, err = models.ParseStyle(raw); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	mode := models.ModeAuto
	if raw := r.URL.Query().Get("mode"); raw != "" {
		if mode, err = models.ParseMode(raw); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	entry, err := h.ticker.GenerateForEvent(r.Context(), id, style, mode)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

type generateSyntheticRequest struct {
	SyntheticEventID string `json:"synthetic_event_id"`
	Style            string `json:"style,omitempty"`
	Language         string `json:"language,omitempty"`
	LLMProvider      string `json:"llm_provider,omitempty"`
	LLMModel         string `json:"llm_model,omitempty"`
}

// GenerateForSyntheticEvent handles POST /api/ticker/generate-synthetic
func (h *Handlers) GenerateForSyntheticEvent(w http.ResponseWriter, r *http.Request) {
	var req generateSyntheticRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := primitive.ObjectIDFromHex(req.SyntheticEventID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid synthetic event ID")
		return
	}

	genReq := ticker.SyntheticGenerationRequest{
		SyntheticEventID: id,
		ProviderOverride: req.LLMProvider,
		ModelOverride:    req.LLMModel,
	}
	if req.Style != "" {
		if genReq.Style, err = models.ParseStyle(req.Style); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.Language != "" {
		if genReq.Language, err = models.ParseLanguage(req.Language); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	result, err := h.ticker.GenerateForSyntheticEvent(r.Context(), genReq)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// ============================================================================
// SYNTHETIC EVENT HANDLERS
// ============================================================================

type createSyntheticEventRequest struct {
	MatchID     string                 `json:"match_id"`
	TeamID      string                 `json:"team_id,omitempty"`
	EventType   string                 `json:"event_type"`
	Severity    string                 `json:"severity,omitempty"`
	ContextData map[string]interface{} `json:"context_data,omitempty"`
	Minute      *int                   `json:"minute,omitempty"`
}

// CreateSyntheticEvent handles POST /api/ticker/synthetic
func (h *Handlers) CreateSyntheticEvent(w http.ResponseWriter, r *http.Request) {
	var req createSyntheticEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	matchID, err := primitive.ObjectIDFromHex(req.MatchID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid match ID")
		return
	}
	if req.EventType == "" {
		respondError(w, http.StatusBadRequest, "event_type is required")
		return
	}
	if req.Minute != nil && (*req.Minute < 0 || *req.Minute > 120) {
		respondError(w, http.StatusBadRequest, "minute must be between 0 and 120")
		return
	}

	// The match must exist before synthetic events can hang off it.
	if _, err := h.store.GetMatchByID(r.Context(), matchID); err != nil {
		respondServiceError(w, err)
		return
	}

	event := &models.SyntheticEvent{
		MatchID:     matchID,
		EventType:   models.Taxonomy(req.EventType),
		Severity:    req.Severity,
		ContextData: req.ContextData,
		Minute:      req.Minute,
	}
	if req.TeamID != "" {
		teamID, err := primitive.ObjectIDFromHex(req.TeamID)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid team ID")
			return
		}
		event.TeamID = &teamID
	}

	inserted, err := h.store.InsertSyntheticEvent(r.Context(), event)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, inserted)
}

// GetSyntheticEvents handles GET /api/ticker/match/{matchID}/synthetic
func (h *Handlers) GetSyntheticEvents(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "matchID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid match ID")
		return
	}

	events, err := h.store.GetSyntheticEventsByMatch(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if events == nil {
		events = []models.SyntheticEvent{}
	}
	respondJSON(w, http.StatusOK, events)
}
