// Package snapshot saves live ducks at shutdown and restores them at
// startup without announcing them again.
package snapshot

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/osse101/DuckHunt_Go/internal/domain"
	"github.com/osse101/DuckHunt_Go/internal/ducks"
	"github.com/osse101/DuckHunt_Go/internal/logger"
	"github.com/osse101/DuckHunt_Go/internal/repository"
)

//go:embed entry.schema.json
var entrySchema []byte

// Extra is category specific state. Only professor ducks carry one.
type Extra struct {
	Question string `json:"question"`
	Answer   int    `json:"answer"`
	Anger    int    `json:"anger"`
}

// Entry is one serialized duck.
type Entry struct {
	ID         string          `json:"id,omitempty"`
	Category   domain.Category `json:"category"`
	SpawnedFor float64         `json:"spawned_for"`
	Lives      int             `json:"lives"`
	LivesLeft  int             `json:"lives_left"`
	Decoy      bool            `json:"decoy"`
	Cosmetics  ducks.Cosmetics `json:"cosmetic_params"`
	Extra      *Extra          `json:"category_specific_extra,omitempty"`
}

// Document is the snapshot file: channel id to ducks in arrival order.
type Document map[string][]Entry

// Store reads and writes the snapshot file.
type Store struct {
	path     string
	channels repository.Channel
	schema   *jsonschema.Schema
}

// New creates a store for path. channels is used on restore to drop ducks
// of channels that are gone or disabled.
func New(path string, channels repository.Channel) (*Store, error) {
	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}
	return &Store{path: path, channels: channels, schema: schema}, nil
}

func compileSchema() (*jsonschema.Schema, error) {
	var schemaJSON interface{}
	if err := json.Unmarshal(entrySchema, &schemaJSON); err != nil {
		return nil, fmt.Errorf("failed to parse schema JSON: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, schemaJSON); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return schema, nil
}

// Path returns the snapshot file path.
func (s *Store) Path() string {
	return s.path
}

// Encode serializes every duck of the registry relative to now.
func Encode(registry *ducks.Registry, now time.Time) ([]byte, error) {
	doc := make(Document)
	for channelID, list := range registry.All() {
		entries := make([]Entry, 0, len(list))
		for _, d := range list {
			entries = append(entries, toEntry(d.State(), now))
		}
		doc[channelID] = entries
	}
	return json.MarshalIndent(doc, "", "  ")
}

func toEntry(st ducks.State, now time.Time) Entry {
	e := Entry{
		ID:         st.ID.String(),
		Category:   st.Category,
		SpawnedFor: math.Max(now.Sub(st.SpawnedAt).Seconds(), 0),
		Lives:      st.LivesTotal,
		LivesLeft:  st.LivesLeft,
		Decoy:      st.Decoy,
		Cosmetics:  st.Cosmetics,
	}
	if st.Quiz != nil {
		e.Extra = &Extra{Question: st.Quiz.Question, Answer: st.Quiz.Answer, Anger: st.Quiz.Anger}
	}
	return e
}

func fromEntry(channelID string, e Entry, now time.Time) (*ducks.Duck, error) {
	st := ducks.State{
		ChannelID:  channelID,
		Category:   e.Category,
		Decoy:      e.Decoy,
		SpawnedAt:  now.Add(-time.Duration(e.SpawnedFor * float64(time.Second))),
		LivesTotal: e.Lives,
		LivesLeft:  e.LivesLeft,
		Cosmetics:  e.Cosmetics,
	}
	if e.ID != "" {
		id, err := uuid.Parse(e.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidSnapshotEntry, err)
		}
		st.ID = id
	}
	if e.Extra != nil {
		st.Quiz = &ducks.Quiz{Question: e.Extra.Question, Answer: e.Extra.Answer, Anger: e.Extra.Anger}
	}
	return ducks.FromState(st)
}

// Save writes the registry to the snapshot file.
func (s *Store) Save(ctx context.Context, registry *ducks.Registry, now time.Time) error {
	data, err := Encode(registry, now)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := writeFile(s.path, data); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	logger.FromContext(ctx).Info(LogMsgSnapshotSaved, "path", s.path, "ducks", registry.Count())
	return nil
}

// Restore registers the ducks of the snapshot file, with spawn times
// shifted so their age is preserved. A missing file restores nothing.
// Bad entries and ducks of unavailable channels are dropped.
func (s *Store) Restore(ctx context.Context, registry *ducks.Registry, now time.Time) (int, error) {
	log := logger.FromContext(ctx)
	data, err := readFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		log.Info(LogMsgSnapshotMissing, "path", s.path)
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var raw map[string][]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	channelIDs := make([]string, 0, len(raw))
	for id := range raw {
		channelIDs = append(channelIDs, id)
	}
	sort.Strings(channelIDs)

	restored := 0
	for _, channelID := range channelIDs {
		entries := raw[channelID]
		if !s.channelAvailable(ctx, channelID) {
			log.Info(LogMsgChannelDropped, "channel_id", channelID, "ducks", len(entries))
			continue
		}
		for i, msg := range entries {
			d, err := s.decodeEntry(channelID, msg, now)
			if err != nil {
				log.Warn(LogMsgEntryDropped, "channel_id", channelID, "index", i, "error", err)
				continue
			}
			if !registry.Append(d) {
				log.Warn(LogMsgDuplicateEntryDropped, "channel_id", channelID, "duck_id", d.ID.String())
				continue
			}
			restored++
		}
	}
	log.Info(LogMsgSnapshotRestored, "path", s.path, "ducks", restored)
	return restored, nil
}

func (s *Store) decodeEntry(channelID string, msg json.RawMessage, now time.Time) (*ducks.Duck, error) {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(msg))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidSnapshotEntry, err)
	}
	if err := s.schema.Validate(inst); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidSnapshotEntry, err)
	}
	var e Entry
	if err := json.Unmarshal(msg, &e); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidSnapshotEntry, err)
	}
	return fromEntry(channelID, e, now)
}

func (s *Store) channelAvailable(ctx context.Context, channelID string) bool {
	if s.channels == nil {
		return true
	}
	cfg, err := s.channels.GetChannel(ctx, channelID)
	if err != nil {
		if !errors.Is(err, domain.ErrChannelNotFound) {
			logger.FromContext(ctx).Warn(LogMsgChannelLookupFailed, "channel_id", channelID, "error", err)
		}
		return false
	}
	return cfg.Enabled
}
