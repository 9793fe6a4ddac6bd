package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/time-matcha/timematcha-backend/internal/identity"
	"github.com/time-matcha/timematcha-backend/internal/projects/domain"
	"github.com/time-matcha/timematcha-backend/internal/projects/repository"
)

type fakeStore struct {
	projects map[string]*domain.Project
	created  []repository.CreateProject
}

func newFakeStore(projects ...*domain.Project) *fakeStore {
	s := &fakeStore{projects: map[string]*domain.Project{}}
	for _, p := range projects {
		s.projects[p.PublicID] = p
	}
	return s
}

func (s *fakeStore) Create(_ context.Context, ownerID string, in repository.CreateProject) (*domain.Project, error) {
	s.created = append(s.created, in)
	p := &domain.Project{
		PublicID:  "matcha-00001-0001",
		OwnerID:   ownerID,
		Name:      in.Name,
		Location:  in.Location,
		Dates:     in.Dates,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Status:    domain.StatusAdjusting,
	}
	s.projects[p.PublicID] = p
	return p, nil
}

func (s *fakeStore) GetByPublicID(_ context.Context, publicID string) (*domain.Project, error) {
	p, ok := s.projects[publicID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (s *fakeStore) ListForUser(_ context.Context, userID string, _ bool) ([]domain.Project, error) {
	out := []domain.Project{}
	for _, p := range s.projects {
		if p.OwnerID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *fakeStore) owned(ownerID, publicID string) (*domain.Project, error) {
	p, ok := s.projects[publicID]
	if !ok || p.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (s *fakeStore) Rename(_ context.Context, ownerID, publicID, newName string) (*domain.Project, error) {
	p, err := s.owned(ownerID, publicID)
	if err != nil {
		return nil, err
	}
	p.Name = newName
	return p, nil
}

func (s *fakeStore) SetStatus(_ context.Context, ownerID, publicID, status string) (*domain.Project, error) {
	p, err := s.owned(ownerID, publicID)
	if err != nil {
		return nil, err
	}
	p.Status = status
	return p, nil
}

func (s *fakeStore) AddDate(_ context.Context, ownerID, publicID, date string) (*domain.Project, error) {
	p, err := s.owned(ownerID, publicID)
	if err != nil {
		return nil, err
	}
	for _, d := range p.Dates {
		if d == date {
			return nil, domain.ErrDuplicateDate
		}
	}
	p.Dates = append(p.Dates, date)
	return p, nil
}

func (s *fakeStore) RemoveDate(_ context.Context, ownerID, publicID, date string) (*domain.Project, error) {
	p, err := s.owned(ownerID, publicID)
	if err != nil {
		return nil, err
	}
	for i, d := range p.Dates {
		if d == date {
			p.Dates = append(p.Dates[:i], p.Dates[i+1:]...)
			return p, nil
		}
	}
	return nil, domain.ErrDateNotFound
}

func (s *fakeStore) SoftDelete(_ context.Context, ownerID, publicID string) (bool, error) {
	p, ok := s.projects[publicID]
	if !ok || p.OwnerID != ownerID {
		return false, nil
	}
	delete(s.projects, publicID)
	return true, nil
}

type fakeNotifier struct {
	invalidated []string
}

func (n *fakeNotifier) Invalidate(_ context.Context, projectID string) error {
	n.invalidated = append(n.invalidated, projectID)
	return nil
}

func setupRouter(store Store, notifier Notifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(identity.CtxUserDBID, "user-1")
		c.Set(identity.CtxUserName, "Tester")
	})
	New(store, notifier).Register(r.Group("/projects"))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func existingProject() *domain.Project {
	return &domain.Project{
		PublicID:  "matcha-11111-2222",
		OwnerID:   "user-1",
		Name:      "study group",
		Dates:     []string{"2026-09-01", "2026-09-02"},
		StartTime: "09:00",
		EndTime:   "18:00",
		Status:    domain.StatusAdjusting,
	}
}

func TestCreateProject(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	r := setupRouter(store, notifier)

	w := doJSON(t, r, http.MethodPost, "/projects", gin.H{
		"name":       "  team offsite  ",
		"dates":      []string{"2026-09-01", "2026-09-01", "2026-09-02"},
		"start_time": "09:00",
		"end_time":   "18:00",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, store.created, 1)
	assert.Equal(t, "team offsite", store.created[0].Name)
	// Duplicate dates collapse before the store sees them.
	assert.Equal(t, []string{"2026-09-01", "2026-09-02"}, store.created[0].Dates)
}

func TestCreateProjectValidation(t *testing.T) {
	r := setupRouter(newFakeStore(), nil)

	cases := []struct {
		name string
		body gin.H
	}{
		{"blank name", gin.H{"name": "  ", "dates": []string{"2026-09-01"}, "start_time": "09:00", "end_time": "18:00"}},
		{"bad clock", gin.H{"name": "x", "dates": []string{"2026-09-01"}, "start_time": "9am", "end_time": "18:00"}},
		{"window inverted", gin.H{"name": "x", "dates": []string{"2026-09-01"}, "start_time": "18:00", "end_time": "09:00"}},
		{"bad date", gin.H{"name": "x", "dates": []string{"sept 1"}, "start_time": "09:00", "end_time": "18:00"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/projects", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetProject(t *testing.T) {
	r := setupRouter(newFakeStore(existingProject()), nil)

	w := doJSON(t, r, http.MethodGet, "/projects/matcha-11111-2222", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/projects/matcha-99999-9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateProject(t *testing.T) {
	store := newFakeStore(existingProject())
	notifier := &fakeNotifier{}
	r := setupRouter(store, notifier)

	w := doJSON(t, r, http.MethodPatch, "/projects/matcha-11111-2222", gin.H{
		"name":   "renamed",
		"status": domain.StatusConfirmed,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "renamed", store.projects["matcha-11111-2222"].Name)
	assert.Equal(t, domain.StatusConfirmed, store.projects["matcha-11111-2222"].Status)
	assert.Equal(t, []string{"matcha-11111-2222"}, notifier.invalidated)
}

func TestUpdateProjectRejectsBadStatus(t *testing.T) {
	r := setupRouter(newFakeStore(existingProject()), nil)

	w := doJSON(t, r, http.MethodPatch, "/projects/matcha-11111-2222", gin.H{"status": "done"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPatch, "/projects/matcha-11111-2222", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddDate(t *testing.T) {
	store := newFakeStore(existingProject())
	notifier := &fakeNotifier{}
	r := setupRouter(store, notifier)

	w := doJSON(t, r, http.MethodPost, "/projects/matcha-11111-2222/dates", gin.H{"date": "2026-09-03"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, store.projects["matcha-11111-2222"].Dates, "2026-09-03")

	// Adding it again conflicts.
	w = doJSON(t, r, http.MethodPost, "/projects/matcha-11111-2222/dates", gin.H{"date": "2026-09-03"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRemoveDate(t *testing.T) {
	store := newFakeStore(existingProject())
	r := setupRouter(store, &fakeNotifier{})

	w := doJSON(t, r, http.MethodDelete, "/projects/matcha-11111-2222/dates/2026-09-02", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"2026-09-01"}, store.projects["matcha-11111-2222"].Dates)

	w = doJSON(t, r, http.MethodDelete, "/projects/matcha-11111-2222/dates/2026-09-02", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteProject(t *testing.T) {
	store := newFakeStore(existingProject())
	notifier := &fakeNotifier{}
	r := setupRouter(store, notifier)

	w := doJSON(t, r, http.MethodDelete, "/projects/matcha-11111-2222", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, store.projects, "matcha-11111-2222")
	assert.Equal(t, []string{"matcha-11111-2222"}, notifier.invalidated)

	w = doJSON(t, r, http.MethodDelete, "/projects/matcha-11111-2222", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
