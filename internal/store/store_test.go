package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyscribe/studyscribe-api/internal/models"
	"github.com/studyscribe/studyscribe-api/internal/storage"
)

func newTestStore(t *testing.T) (*Store, *storage.Memory) {
	t.Helper()
	kv := storage.NewMemory()
	st := New(kv, nil)
	st.Load(context.Background())
	return st, kv
}

func TestLoadDefaults(t *testing.T) {
	st, _ := newTestStore(t)

	subjects := st.Subjects()
	require.Len(t, subjects, 2)
	assert.Equal(t, "Computer Science", subjects[0].Name)
	assert.Equal(t, "Mathematics", subjects[1].Name)
	assert.Empty(t, subjects[0].Resources)

	assert.Len(t, st.Schedule(), models.ScheduleCells)
	assert.Empty(t, st.StudyPlans())
	assert.Empty(t, st.ChatHistory())
	assert.Empty(t, st.APIKey())

	_, ok := st.ActiveSubject()
	assert.False(t, ok)
	assert.Equal(t, "subjects", st.ActivePage())
}

func TestAddSubject(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	before := st.Subjects()
	created := st.AddSubject(ctx, SubjectFields{Name: "Physics", Color: "#4299E1"})

	after := st.Subjects()
	require.Len(t, after, len(before)+1)

	assert.NotEmpty(t, created.ID)
	for _, existing := range before {
		assert.NotEqual(t, existing.ID, created.ID)
	}
	assert.Equal(t, "Physics", created.Name)
	assert.NotNil(t, created.Resources)
	assert.Empty(t, created.Resources)
}

func TestUpdateSubjectUnknownIDIsNoop(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	before := st.Subjects()
	st.UpdateSubject(ctx, models.Subject{ID: "nope", Name: "Ghost"})
	assert.Equal(t, before, st.Subjects())
}

func TestDeleteSubjectCascade(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	st.AddStudyPlan(ctx, PlanFields{Title: "Review Ch.3", SubjectID: "1", Date: day, Duration: 60, Priority: models.PriorityMedium})
	keepPlan := st.AddStudyPlan(ctx, PlanFields{Title: "Integrals", SubjectID: "2", Date: day, Duration: 45, Priority: models.PriorityHigh})

	st.DeleteSubject(ctx, "1")

	subjects := st.Subjects()
	require.Len(t, subjects, 1)
	assert.Equal(t, "Mathematics", subjects[0].Name)

	plans := st.StudyPlans()
	require.Len(t, plans, 1)
	assert.Equal(t, keepPlan.ID, plans[0].ID)
}

func TestDeleteSubjectScenario(t *testing.T) {
	// The documented walk: defaults, one plan on subject "1", delete "1".
	st, _ := newTestStore(t)
	ctx := context.Background()

	st.AddStudyPlan(ctx, PlanFields{
		Title:     "Review Ch.3",
		SubjectID: "1",
		Date:      time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC),
		Duration:  60,
		Priority:  models.PriorityMedium,
	})
	st.DeleteSubject(ctx, "1")

	subjects := st.Subjects()
	require.Len(t, subjects, 1)
	assert.Equal(t, "Mathematics", subjects[0].Name)
	assert.Empty(t, st.StudyPlans())
}

func TestDeleteSubjectClearsActiveSelection(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	st.SetActiveSubject("1")
	_, ok := st.ActiveSubject()
	require.True(t, ok)

	st.DeleteSubject(ctx, "1")
	_, ok = st.ActiveSubject()
	assert.False(t, ok)
}

func TestUpdateScheduleCellInvariants(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	grid := st.Schedule()
	target := grid[10]

	st.UpdateScheduleCell(ctx, models.ScheduleCell{
		ID:        target.ID,
		Day:       5, // attempts to move the slot must not stick
		Period:    8,
		Subject:   "Algorithms",
		Room:      "B-204",
		Professor: "Dr. Chen",
		Notes:     "bring laptop",
	})

	after := st.Schedule()
	require.Len(t, after, models.ScheduleCells)

	for i, cell := range after {
		assert.Equal(t, grid[i].Day, cell.Day)
		assert.Equal(t, grid[i].Period, cell.Period)
		assert.Equal(t, grid[i].ID, cell.ID)
	}

	updated := after[10]
	assert.Equal(t, "Algorithms", updated.Subject)
	assert.Equal(t, "B-204", updated.Room)
	assert.Equal(t, "Dr. Chen", updated.Professor)
	assert.Equal(t, "bring laptop", updated.Notes)
}

func TestUpdateScheduleCellUnknownIDIsNoop(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	before := st.Schedule()
	st.UpdateScheduleCell(ctx, models.ScheduleCell{ID: "schedule-999", Subject: "Ghost"})
	assert.Equal(t, before, st.Schedule())
}

func TestAddResourceOrphanSubjectIsNoop(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	before := st.Subjects()
	_, created := st.AddResource(ctx, ResourceFields{Name: "stray", Type: models.ResourceNote, SubjectID: "does-not-exist"})

	assert.False(t, created)
	assert.Equal(t, before, st.Subjects())
}

func TestResourceLifecycle(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	resource, created := st.AddResource(ctx, ResourceFields{
		Name:      "Lecture 1",
		Type:      models.ResourceNote,
		Content:   "big-O notation",
		SubjectID: "1",
	})
	require.True(t, created)
	assert.NotEmpty(t, resource.ID)
	assert.False(t, resource.CreatedAt.IsZero())
	assert.Equal(t, "1", resource.SubjectID)

	subject, ok := st.Subject("1")
	require.True(t, ok)
	require.Len(t, subject.Resources, 1)

	resource.Name = "Lecture 1 (revised)"
	st.UpdateResource(ctx, resource)
	subject, _ = st.Subject("1")
	assert.Equal(t, "Lecture 1 (revised)", subject.Resources[0].Name)

	st.DeleteResource(ctx, resource.ID)
	subject, _ = st.Subject("1")
	assert.Empty(t, subject.Resources)
}

func TestChatAppendOnlyOrdered(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	first := st.AddChatMessage(ctx, MessageFields{Content: "hi", Role: models.RoleUser})
	second := st.AddChatMessage(ctx, MessageFields{Content: "hi", Role: models.RoleUser})

	history := st.ChatHistory()
	require.Len(t, history, 2)
	assert.Equal(t, first.ID, history[0].ID)
	assert.Equal(t, second.ID, history[1].ID)
	assert.NotEqual(t, history[0].ID, history[1].ID)
	assert.False(t, history[1].Timestamp.Before(history[0].Timestamp))
}

func TestRestartRoundTrip(t *testing.T) {
	kv := storage.NewMemory()
	ctx := context.Background()

	st := New(kv, nil)
	st.Load(ctx)
	created := st.AddSubject(ctx, SubjectFields{Name: "History", Color: "#ED8936"})
	st.AddResource(ctx, ResourceFields{Name: "syllabus", Type: models.ResourceLink, URL: "https://example.edu/h101", SubjectID: created.ID})
	st.SetAPIKey(ctx, "sk-test")
	st.UpdateScheduleCell(ctx, models.ScheduleCell{ID: "schedule-0", Subject: "History"})

	// Simulated restart: a fresh store over the same storage. Collections
	// carrying timestamps are compared in serialized form, since wall-clock
	// values lose their monotonic reading on the way through storage.
	reloaded := New(kv, nil)
	reloaded.Load(ctx)

	assertSameJSON(t, st.Subjects(), reloaded.Subjects())
	assert.Equal(t, st.Schedule(), reloaded.Schedule())
	assertSameJSON(t, st.StudyPlans(), reloaded.StudyPlans())
	assertSameJSON(t, st.ChatHistory(), reloaded.ChatHistory())
	assert.Equal(t, "sk-test", reloaded.APIKey())
}

func assertSameJSON(t *testing.T, want, got any) {
	t.Helper()
	wantRaw, err := json.Marshal(want)
	require.NoError(t, err)
	gotRaw, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, string(wantRaw), string(gotRaw))
}

func TestCorruptStorageFallsBackToDefaults(t *testing.T) {
	kv := storage.NewMemory()
	ctx := context.Background()

	require.NoError(t, kv.Put(ctx, keySubjects, []byte("{not json")))
	require.NoError(t, kv.Put(ctx, keySchedule, []byte(`[{"id":"schedule-0","day":0,"period":1}]`))) // incomplete grid
	require.NoError(t, kv.Put(ctx, keyPlans, []byte(`[{"id":""}]`)))
	require.NoError(t, kv.Put(ctx, keyChat, []byte("42")))

	st := New(kv, nil)
	st.Load(ctx)

	subjects := st.Subjects()
	require.Len(t, subjects, 2)
	assert.Equal(t, "Computer Science", subjects[0].Name)
	assert.Len(t, st.Schedule(), models.ScheduleCells)
	assert.Empty(t, st.StudyPlans())
	assert.Empty(t, st.ChatHistory())
}

func TestSnapshotsAreCopies(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	st.AddResource(ctx, ResourceFields{Name: "notes", Type: models.ResourceNote, SubjectID: "1"})

	snapshot := st.Subjects()
	snapshot[0].Name = "mutated"
	snapshot[0].Resources[0].Name = "mutated"

	subjects := st.Subjects()
	assert.Equal(t, "Computer Science", subjects[0].Name)
	assert.Equal(t, "notes", subjects[0].Resources[0].Name)
}
