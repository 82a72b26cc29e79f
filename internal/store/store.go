// Package store is the single source of truth for all domain collections.
// Every create/update/delete goes through it; each collection is mirrored
// to durable storage under its own key whenever it changes.
package store

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/studyscribe/studyscribe-api/internal/models"
	"github.com/studyscribe/studyscribe-api/internal/storage"
)

// Storage keys, one per persisted collection.
const (
	keySubjects = "studyscribe-subjects"
	keySchedule = "studyscribe-schedule"
	keyPlans    = "studyscribe-studyPlans"
	keyChat     = "studyscribe-chatHistory"
	keyAPIKey   = "studyscribe-apiKey"
)

// ResourceOpener resolves a resource into something a client can open: a
// download URL for a stored PDF, the target URL for a link. It is a
// side-effect collaborator; opening never mutates store state.
type ResourceOpener interface {
	OpenResource(ctx context.Context, r models.Resource) (string, error)
}

// Store owns the five domain collections plus the transient UI selection
// state. A single mutex serializes all mutations, so every observer sees
// the collections as if one actor wrote them. Mutations never signal
// failure to the caller; a failed durable write is logged and the in-memory
// state stands.
type Store struct {
	mu     sync.Mutex
	kv     storage.KV
	opener ResourceOpener

	subjects []models.Subject
	schedule []models.ScheduleCell
	plans    []models.StudyPlan
	chat     []models.ChatMessage
	apiKey   string

	// Session-only selection state, never persisted.
	activeSubjectID string
	activePage      string
}

// New returns a store backed by kv. Call Load before use. opener may be
// nil, in which case OpenResource resolves nothing.
func New(kv storage.KV, opener ResourceOpener) *Store {
	return &Store{
		kv:         kv,
		opener:     opener,
		activePage: defaultPage,
	}
}

// Load reads every persisted collection from durable storage. A key that is
// absent or fails validation falls back to the built-in default for that
// collection; Load itself never fails.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subjects = loadCollection(ctx, s.kv, keySubjects, validSubjects, defaultSubjects)
	s.schedule = loadCollection(ctx, s.kv, keySchedule, validSchedule, defaultSchedule)
	s.plans = loadCollection(ctx, s.kv, keyPlans, validPlans, func() []models.StudyPlan { return []models.StudyPlan{} })
	s.chat = loadCollection(ctx, s.kv, keyChat, validChat, func() []models.ChatMessage { return []models.ChatMessage{} })

	// The API key is stored as a raw string, not JSON.
	if raw, err := s.kv.Get(ctx, keyAPIKey); err == nil {
		s.apiKey = string(raw)
	} else {
		s.apiKey = ""
	}
}

// loadCollection reads one collection and falls back to its default when
// the key is missing, unparseable, or shape-invalid.
func loadCollection[T any](ctx context.Context, kv storage.KV, key string, valid func([]T) bool, fallback func() []T) []T {
	raw, err := kv.Get(ctx, key)
	if err != nil {
		if err != storage.ErrNotFound {
			log.Printf("store: reading %s: %v", key, err)
		}
		return fallback()
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil || !valid(items) {
		log.Printf("store: %s is corrupt, using defaults", key)
		return fallback()
	}
	return items
}

// persist serializes one collection and writes it under its key. Callers
// hold the mutex, so readers never observe mutated memory paired with stale
// storage beyond the current commit. A write failure is logged only: one
// collection failing to persist must not block mutations or the other
// collections.
func (s *Store) persist(ctx context.Context, key string, collection any) {
	raw, err := json.Marshal(collection)
	if err != nil {
		log.Printf("store: serializing %s: %v", key, err)
		return
	}
	if err := s.kv.Put(ctx, key, raw); err != nil {
		log.Printf("store: writing %s: %v", key, err)
	}
}

// Subjects returns a deep copy of the subjects collection.
func (s *Store) Subjects() []models.Subject {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySubjects(s.subjects)
}

// Subject returns the subject with the given id.
func (s *Store) Subject(id string) (models.Subject, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.subjects {
		if s.subjects[i].ID == id {
			return copySubject(s.subjects[i]), true
		}
	}
	return models.Subject{}, false
}

// Schedule returns a copy of the full 48-cell timetable grid.
func (s *Store) Schedule() []models.ScheduleCell {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ScheduleCell, len(s.schedule))
	copy(out, s.schedule)
	return out
}

// StudyPlans returns a copy of the study plan list.
func (s *Store) StudyPlans() []models.StudyPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.StudyPlan, len(s.plans))
	copy(out, s.plans)
	return out
}

// ChatHistory returns a copy of the conversation log, insertion order.
func (s *Store) ChatHistory() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ChatMessage, len(s.chat))
	copy(out, s.chat)
	return out
}

// APIKey returns the stored AI credential, "" when unset.
func (s *Store) APIKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apiKey
}

// SetAPIKey replaces the single AI credential.
func (s *Store) SetAPIKey(ctx context.Context, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apiKey = key
	if err := s.kv.Put(ctx, keyAPIKey, []byte(key)); err != nil {
		log.Printf("store: writing %s: %v", keyAPIKey, err)
	}
}

// ActiveSubject returns the currently selected subject, if any.
func (s *Store) ActiveSubject() (models.Subject, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeSubjectID == "" {
		return models.Subject{}, false
	}
	for i := range s.subjects {
		if s.subjects[i].ID == s.activeSubjectID {
			return copySubject(s.subjects[i]), true
		}
	}
	return models.Subject{}, false
}

// SetActiveSubject selects the subject with the given id, or clears the
// selection when id is "". Selection state is session-only.
func (s *Store) SetActiveSubject(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == "" {
		s.activeSubjectID = ""
		return
	}
	for i := range s.subjects {
		if s.subjects[i].ID == id {
			s.activeSubjectID = id
			return
		}
	}
}

// ActivePage returns the current navigation page identifier.
func (s *Store) ActivePage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activePage
}

// SetActivePage records the current navigation page. Session-only.
func (s *Store) SetActivePage(page string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activePage = page
}

func copySubjects(subjects []models.Subject) []models.Subject {
	out := make([]models.Subject, len(subjects))
	for i := range subjects {
		out[i] = copySubject(subjects[i])
	}
	return out
}

func copySubject(subject models.Subject) models.Subject {
	out := subject
	out.Resources = make([]models.Resource, len(subject.Resources))
	for i, r := range subject.Resources {
		out.Resources[i] = copyResource(r)
	}
	return out
}

func copyResource(r models.Resource) models.Resource {
	out := r
	if r.Annotations != nil {
		out.Annotations = append([]models.Annotation(nil), r.Annotations...)
	}
	if r.Bookmarks != nil {
		out.Bookmarks = append([]models.Bookmark(nil), r.Bookmarks...)
	}
	return out
}
