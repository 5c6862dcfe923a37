// Package storage provides MongoDB storage for matchwire.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/matchwire/matchwire/internal/models"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a referenced document does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEntry is returned when inserting a ticker entry whose source
// event already has one. The unique index on the source-event reference is
// what guarantees at-most-one under concurrent generation; callers refetch
// the winning entry.
var ErrDuplicateEntry = errors.New("ticker entry already exists for source event")

// Store provides access to all MongoDB collections.
type Store struct {
	client          *mongo.Client
	db              *mongo.Database
	teams           *mongo.Collection
	matches         *mongo.Collection
	events          *mongo.Collection
	syntheticEvents *mongo.Collection
	tickerEntries   *mongo.Collection
}

// NewStore creates a new storage connection.
func NewStore(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(dbName)
	log.Info().Str("db", dbName).Msg("Connected to MongoDB")

	store := &Store{
		client:          client,
		db:              db,
		teams:           db.Collection("teams"),
		matches:         db.Collection("matches"),
		events:          db.Collection("events"),
		syntheticEvents: db.Collection("synthetic_events"),
		tickerEntries:   db.Collection("ticker_entries"),
	}

	if err := store.createIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to create some indexes")
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// createIndexes creates necessary indexes. The partial unique indexes on the
// ticker entries' source-event references back the idempotency contract of
// the generation service.
func (s *Store) createIndexes(ctx context.Context) error {
	teamIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "external_id", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
		{Keys: bson.D{{Key: "country", Value: 1}}},
	}
	if _, err := s.teams.Indexes().CreateMany(ctx, teamIndexes); err != nil {
		log.Warn().Err(err).Msg("Failed to create team indexes")
	}

	matchIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "external_id", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
		{Keys: bson.D{{Key: "match_date", Value: -1}}},
		{Keys: bson.D{{Key: "home_team_id", Value: 1}}},
		{Keys: bson.D{{Key: "away_team_id", Value: 1}}},
	}
	if _, err := s.matches.Indexes().CreateMany(ctx, matchIndexes); err != nil {
		log.Warn().Err(err).Msg("Failed to create match indexes")
	}

	eventIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "match_id", Value: 1}, {Key: "minute", Value: 1}}},
	}
	if _, err := s.events.Indexes().CreateMany(ctx, eventIndexes); err != nil {
		log.Warn().Err(err).Msg("Failed to create event indexes")
	}

	syntheticIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "match_id", Value: 1}, {Key: "event_type", Value: 1}}},
	}
	if _, err := s.syntheticEvents.Indexes().CreateMany(ctx, syntheticIndexes); err != nil {
		log.Warn().Err(err).Msg("Failed to create synthetic event indexes")
	}

	entryIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "event_id", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(bson.M{"event_id": bson.M{"$exists": true}}),
		},
		{
			Keys: bson.D{{Key: "synthetic_event_id", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(bson.M{"synthetic_event_id": bson.M{"$exists": true}}),
		},
		{Keys: bson.D{{Key: "match_id", Value: 1}, {Key: "minute", Value: -1}}},
		{Keys: bson.D{{Key: "mode", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	if _, err := s.tickerEntries.Indexes().CreateMany(ctx, entryIndexes); err != nil {
		log.Warn().Err(err).Msg("Failed to create ticker entry indexes")
	}

	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

// ============================================================================
// TEAM OPERATIONS
// ============================================================================

// GetTeamByID returns a team by its ID.
func (s *Store) GetTeamByID(ctx context.Context, id primitive.ObjectID) (*models.Team, error) {
	var team models.Team
	err := s.teams.FindOne(ctx, bson.M{"_id": id}).Decode(&team)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &team, nil
}

// GetTeams returns teams with pagination.
func (s *Store) GetTeams(ctx context.Context, skip, limit int) ([]models.Team, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	return s.findTeams(ctx, bson.M{}, opts)
}

// GetTeamsByCountry returns teams for a country.
func (s *Store) GetTeamsByCountry(ctx context.Context, country string) ([]models.Team, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	return s.findTeams(ctx, bson.M{"country": country}, opts)
}

// GetPartnerTeams returns teams flagged as partners.
func (s *Store) GetPartnerTeams(ctx context.Context) ([]models.Team, error) {
	return s.findTeams(ctx, bson.M{"partner": true}, nil)
}

// GetCountries returns the distinct countries teams belong to.
func (s *Store) GetCountries(ctx context.Context) ([]string, error) {
	values, err := s.teams.Distinct(ctx, "country", bson.M{"country": bson.M{"$ne": ""}})
	if err != nil {
		return nil, err
	}

	countries := make([]string, 0, len(values))
	for _, v := range values {
		if c, ok := v.(string); ok {
			countries = append(countries, c)
		}
	}
	return countries, nil
}

func (s *Store) findTeams(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Team, error) {
	cursor, err := s.teams.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var teams []models.Team
	if err := cursor.All(ctx, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// ============================================================================
// MATCH OPERATIONS
// ============================================================================

// GetMatchByID returns a match by its ID.
func (s *Store) GetMatchByID(ctx context.Context, id primitive.ObjectID) (*models.Match, error) {
	var match models.Match
	err := s.matches.FindOne(ctx, bson.M{"_id": id}).Decode(&match)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &match, nil
}

// GetMatchContext assembles the read-only projection of a match used for
// prompt construction.
func (s *Store) GetMatchContext(ctx context.Context, matchID primitive.ObjectID) (*models.MatchContext, error) {
	match, err := s.GetMatchByID(ctx, matchID)
	if err != nil {
		return nil, err
	}

	mc := &models.MatchContext{
		ScoreHome: match.ScoreHome,
		ScoreAway: match.ScoreAway,
		Status:    match.Status,
		Minute:    match.Minute,
	}

	if home, err := s.GetTeamByID(ctx, match.HomeTeamID); err == nil {
		mc.HomeTeam = home.Name
	}
	if away, err := s.GetTeamByID(ctx, match.AwayTeamID); err == nil {
		mc.AwayTeam = away.Name
	}

	return mc, nil
}

// GetMatchesByTeam returns matches a team is involved in, newest first.
func (s *Store) GetMatchesByTeam(ctx context.Context, teamID primitive.ObjectID, skip, limit int) ([]models.Match, error) {
	filter := bson.M{"$or": []bson.M{
		{"home_team_id": teamID},
		{"away_team_id": teamID},
	}}
	opts := options.Find().
		SetSort(bson.D{{Key: "match_date", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := s.matches.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var matches []models.Match
	if err := cursor.All(ctx, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// ============================================================================
// EVENT OPERATIONS
// ============================================================================

// GetEventByID returns an event by its ID.
func (s *Store) GetEventByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var event models.Event
	err := s.events.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &event, nil
}

// GetEventsByMatch returns all events of a match in match order.
func (s *Store) GetEventsByMatch(ctx context.Context, matchID primitive.ObjectID) ([]models.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "minute", Value: 1}})
	cursor, err := s.events.Find(ctx, bson.M{"match_id": matchID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []models.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// CountEventsByMatch returns the number of imported events for a match.
func (s *Store) CountEventsByMatch(ctx context.Context, matchID primitive.ObjectID) (int64, error) {
	return s.events.CountDocuments(ctx, bson.M{"match_id": matchID})
}

// ============================================================================
// SYNTHETIC EVENT OPERATIONS
// ============================================================================

// InsertSyntheticEvent saves a new synthetic event.
func (s *Store) InsertSyntheticEvent(ctx context.Context, event *models.SyntheticEvent) (*models.SyntheticEvent, error) {
	event.CreatedAt = time.Now().UTC()

	res, err := s.syntheticEvents.InsertOne(ctx, event)
	if err != nil {
		return nil, err
	}
	event.ID = res.InsertedID.(primitive.ObjectID)
	return event, nil
}

// GetSyntheticEventByID returns a synthetic event by its ID.
func (s *Store) GetSyntheticEventByID(ctx context.Context, id primitive.ObjectID) (*models.SyntheticEvent, error) {
	var event models.SyntheticEvent
	err := s.syntheticEvents.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &event, nil
}

// GetSyntheticEventsByMatch returns the synthetic events of a match.
func (s *Store) GetSyntheticEventsByMatch(ctx context.Context, matchID primitive.ObjectID) ([]models.SyntheticEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := s.syntheticEvents.Find(ctx, bson.M{"match_id": matchID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []models.SyntheticEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// MarkSyntheticEventGenerated records the generated text on the synthetic
// event after its ticker entry was created.
func (s *Store) MarkSyntheticEventGenerated(ctx context.Context, id primitive.ObjectID, text string, style models.Style) error {
	update := bson.M{"$set": bson.M{
		"ticker_text":    text,
		"ticker_style":   string(style),
		"auto_generated": true,
	}}
	_, err := s.syntheticEvents.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// ============================================================================
// TICKER ENTRY OPERATIONS
// ============================================================================

// TickerFilter narrows entry listings.
type TickerFilter struct {
	Mode          models.Mode
	MatchID       *primitive.ObjectID
	PublishedOnly bool
	Skip          int
	Limit         int
}

// InsertTickerEntry saves a new ticker entry. A duplicate-key violation on
// the source-event reference means another request already generated an entry
// for the same event; it is reported as ErrDuplicateEntry.
func (s *Store) InsertTickerEntry(ctx context.Context, entry *models.TickerEntry) (*models.TickerEntry, error) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	res, err := s.tickerEntries.InsertOne(ctx, entry)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEntry
		}
		return nil, err
	}
	entry.ID = res.InsertedID.(primitive.ObjectID)
	return entry, nil
}

// GetTickerEntryByID returns an entry by its ID.
func (s *Store) GetTickerEntryByID(ctx context.Context, id primitive.ObjectID) (*models.TickerEntry, error) {
	var entry models.TickerEntry
	err := s.tickerEntries.FindOne(ctx, bson.M{"_id": id}).Decode(&entry)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &entry, nil
}

// GetTickerEntryByEvent returns the entry generated for a source event, or
// ErrNotFound.
func (s *Store) GetTickerEntryByEvent(ctx context.Context, eventID primitive.ObjectID) (*models.TickerEntry, error) {
	var entry models.TickerEntry
	err := s.tickerEntries.FindOne(ctx, bson.M{"event_id": eventID}).Decode(&entry)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &entry, nil
}

// GetTickerEntryBySyntheticEvent returns the entry generated for a synthetic
// event, or ErrNotFound.
func (s *Store) GetTickerEntryBySyntheticEvent(ctx context.Context, syntheticEventID primitive.ObjectID) (*models.TickerEntry, error) {
	var entry models.TickerEntry
	err := s.tickerEntries.FindOne(ctx, bson.M{"synthetic_event_id": syntheticEventID}).Decode(&entry)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &entry, nil
}

// ListTickerEntries returns entries matching the filter. Match-scoped
// listings sort by minute descending, the ticker's display order.
func (s *Store) ListTickerEntries(ctx context.Context, filter TickerFilter) ([]models.TickerEntry, error) {
	query := bson.M{}
	if filter.Mode != "" {
		query["mode"] = filter.Mode
	}
	if filter.MatchID != nil {
		query["match_id"] = *filter.MatchID
	}
	if filter.PublishedOnly {
		query["status"] = models.StatusPublished
	}

	sort := bson.D{{Key: "created_at", Value: -1}}
	if filter.MatchID != nil {
		sort = bson.D{{Key: "minute", Value: -1}}
	}

	opts := options.Find().SetSort(sort)
	if filter.Skip > 0 {
		opts.SetSkip(int64(filter.Skip))
	}
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	return s.findEntries(ctx, query, opts)
}

// GetEntriesBySyntheticTaxonomies returns the entries whose synthetic events
// have one of the given taxonomies, newest first.
func (s *Store) GetEntriesBySyntheticTaxonomies(ctx context.Context, matchID primitive.ObjectID, taxonomies []models.Taxonomy) ([]models.TickerEntry, error) {
	synFilter := bson.M{
		"match_id":   matchID,
		"event_type": bson.M{"$in": taxonomies},
	}
	cursor, err := s.syntheticEvents.Find(ctx, synFilter, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var refs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &refs); err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return nil, nil
	}

	ids := make([]primitive.ObjectID, len(refs))
	for i, r := range refs {
		ids[i] = r.ID
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return s.findEntries(ctx, bson.M{
		"match_id":           matchID,
		"synthetic_event_id": bson.M{"$in": ids},
	}, opts)
}

// PublishTickerEntry transitions an entry to published. Publishing an already
// published entry returns it unchanged.
func (s *Store) PublishTickerEntry(ctx context.Context, id primitive.ObjectID) (*models.TickerEntry, error) {
	entry, err := s.GetTickerEntryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.Published() {
		return entry, nil
	}

	now := time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"status":       models.StatusPublished,
		"published_at": now,
	}}
	if _, err := s.tickerEntries.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return nil, err
	}

	entry.Publish(now)
	return entry, nil
}

// TickerEntryUpdate carries the editable fields of an entry.
type TickerEntryUpdate struct {
	Text        *string        `json:"text,omitempty"`
	Icon        *string        `json:"icon,omitempty"`
	Status      *models.Status `json:"status,omitempty"`
	PublishedAt *time.Time     `json:"published_at,omitempty"`
}

// UpdateTickerEntry applies a partial update and returns the updated entry.
func (s *Store) UpdateTickerEntry(ctx context.Context, id primitive.ObjectID, update TickerEntryUpdate) (*models.TickerEntry, error) {
	set := bson.M{}
	if update.Text != nil {
		set["text"] = *update.Text
	}
	if update.Icon != nil {
		set["icon"] = *update.Icon
	}
	if update.Status != nil {
		set["status"] = *update.Status
	}
	if update.PublishedAt != nil {
		set["published_at"] = *update.PublishedAt
	}

	if len(set) > 0 {
		res, err := s.tickerEntries.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, ErrNotFound
		}
	}

	return s.GetTickerEntryByID(ctx, id)
}

func (s *Store) findEntries(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.TickerEntry, error) {
	cursor, err := s.tickerEntries.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []models.TickerEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ============================================================================
// STATS OPERATIONS
// ============================================================================

// Stats holds general statistics.
type Stats struct {
	Teams            int64 `json:"teams"`
	Matches          int64 `json:"matches"`
	Events           int64 `json:"events"`
	TickerEntries    int64 `json:"ticker_entries"`
	PublishedEntries int64 `json:"published_entries"`
}

// GetStats returns general statistics.
func (s *Store) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	var err error
	stats.Teams, err = s.teams.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	stats.Matches, err = s.matches.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	stats.Events, err = s.events.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	stats.TickerEntries, err = s.tickerEntries.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	stats.PublishedEntries, err = s.tickerEntries.CountDocuments(ctx, bson.M{"status": models.StatusPublished})
	if err != nil {
		return nil, err
	}

	return stats, nil
}
