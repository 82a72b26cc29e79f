package store

import (
	"context"
	"time"

	"github.com/studyscribe/studyscribe-api/internal/ids"
	"github.com/studyscribe/studyscribe-api/internal/models"
)

// SubjectFields carries the caller-supplied parts of a new subject.
type SubjectFields struct {
	Name        string
	Color       string
	Description string
	Schedule    string
}

// AddSubject creates a subject with a fresh id and an empty resource list.
func (s *Store) AddSubject(ctx context.Context, fields SubjectFields) models.Subject {
	s.mu.Lock()
	defer s.mu.Unlock()

	subject := models.Subject{
		ID:          ids.New(),
		Name:        fields.Name,
		Color:       fields.Color,
		Description: fields.Description,
		Schedule:    fields.Schedule,
		Resources:   []models.Resource{},
	}
	s.subjects = append(s.subjects, subject)
	s.persist(ctx, keySubjects, s.subjects)
	return copySubject(subject)
}

// UpdateSubject replaces the subject with a matching id wholesale. Unknown
// ids are a no-op.
func (s *Store) UpdateSubject(ctx context.Context, subject models.Subject) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.subjects {
		if s.subjects[i].ID == subject.ID {
			if subject.Resources == nil {
				subject.Resources = []models.Resource{}
			}
			s.subjects[i] = copySubject(subject)
			s.persist(ctx, keySubjects, s.subjects)
			return
		}
	}
}

// DeleteSubject removes the subject and cascades to every study plan that
// references it. Embedded resources are discarded with the subject. If the
// deleted subject was the active selection, the selection clears.
func (s *Store) DeleteSubject(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.subjects[:0]
	removed := false
	for _, subject := range s.subjects {
		if subject.ID == id {
			removed = true
			continue
		}
		kept = append(kept, subject)
	}
	if !removed {
		return
	}
	s.subjects = kept

	if s.activeSubjectID == id {
		s.activeSubjectID = ""
	}

	keptPlans := s.plans[:0]
	plansChanged := false
	for _, plan := range s.plans {
		if plan.SubjectID == id {
			plansChanged = true
			continue
		}
		keptPlans = append(keptPlans, plan)
	}
	s.plans = keptPlans

	// Each collection persists on its own; a failure in one does not hold
	// back the other.
	s.persist(ctx, keySubjects, s.subjects)
	if plansChanged {
		s.persist(ctx, keyPlans, s.plans)
	}
}

// ResourceFields carries the caller-supplied parts of a new resource.
type ResourceFields struct {
	Name      string
	Type      string
	Path      string
	URL       string
	Content   string
	SubjectID string
}

// AddResource appends a resource to its owning subject's list, assigning an
// id and creation timestamp. When no subject matches SubjectID nothing
// happens: no orphan resource is created.
func (s *Store) AddResource(ctx context.Context, fields ResourceFields) (models.Resource, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.subjects {
		if s.subjects[i].ID != fields.SubjectID {
			continue
		}
		resource := models.Resource{
			ID:        ids.New(),
			Name:      fields.Name,
			Type:      fields.Type,
			Path:      fields.Path,
			URL:       fields.URL,
			Content:   fields.Content,
			SubjectID: fields.SubjectID,
			CreatedAt: time.Now(),
		}
		s.subjects[i].Resources = append(s.subjects[i].Resources, resource)
		s.persist(ctx, keySubjects, s.subjects)
		return copyResource(resource), true
	}
	return models.Resource{}, false
}

// UpdateResource replaces the resource with a matching id inside the
// subject named by its SubjectID. Unknown subject or resource ids are a
// no-op.
func (s *Store) UpdateResource(ctx context.Context, resource models.Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.subjects {
		if s.subjects[i].ID != resource.SubjectID {
			continue
		}
		for j := range s.subjects[i].Resources {
			if s.subjects[i].Resources[j].ID == resource.ID {
				s.subjects[i].Resources[j] = copyResource(resource)
				s.persist(ctx, keySubjects, s.subjects)
				return
			}
		}
		return
	}
}

// DeleteResource removes the resource with the given id, scanning every
// subject's list.
func (s *Store) DeleteResource(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.subjects {
		for j := range s.subjects[i].Resources {
			if s.subjects[i].Resources[j].ID == id {
				s.subjects[i].Resources = append(s.subjects[i].Resources[:j], s.subjects[i].Resources[j+1:]...)
				s.persist(ctx, keySubjects, s.subjects)
				return
			}
		}
	}
}

// Resource returns the resource with the given id, wherever it lives.
func (s *Store) Resource(id string) (models.Resource, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.subjects {
		for _, r := range s.subjects[i].Resources {
			if r.ID == id {
				return copyResource(r), true
			}
		}
	}
	return models.Resource{}, false
}

// OpenResource delegates to the configured opener. It mutates no state; the
// returned target is whatever the collaborator resolved, "" when there is
// nothing to open.
func (s *Store) OpenResource(ctx context.Context, r models.Resource) (string, error) {
	if s.opener == nil {
		return "", nil
	}
	return s.opener.OpenResource(ctx, r)
}
