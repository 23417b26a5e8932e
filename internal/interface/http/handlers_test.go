package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adiwinata/eventdesk/internal/application"
	"github.com/adiwinata/eventdesk/internal/domain/entity"
	"github.com/adiwinata/eventdesk/internal/domain/repository"
	"github.com/adiwinata/eventdesk/internal/interface/middleware"
	"github.com/adiwinata/eventdesk/pkg/helpers"
	"github.com/adiwinata/eventdesk/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

// fakeStore backs the event and participant repositories in memory so the
// handlers run against real services.
type fakeStore struct {
	mu           sync.Mutex
	seq          int
	events       map[string]entity.Event
	participants []entity.Participant
}

func newFakeStore() *fakeStore {
	return &fakeStore{events: make(map[string]entity.Event)}
}

func (f *fakeStore) nextID() string {
	f.seq++
	return fmt.Sprintf("id-%d", f.seq)
}

func (f *fakeStore) countLocked(eventID string) int {
	n := 0
	for _, p := range f.participants {
		if p.EventID == eventID {
			n++
		}
	}
	return n
}

func (f *fakeStore) Create(ctx context.Context, e *entity.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ID = f.nextID()
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	f.events[e.ID] = *e
	return nil
}

func (f *fakeStore) List(ctx context.Context) ([]entity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.Event, 0, len(f.events))
	for _, e := range f.events {
		e.ParticipantCount = f.countLocked(e.ID)
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeStore) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	e.ParticipantCount = f.countLocked(id)
	return &e, nil
}

func (f *fakeStore) Update(ctx context.Context, e *entity.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[e.ID]; !ok {
		return repository.ErrNotFound
	}
	e.UpdatedAt = time.Now()
	f.events[e.ID] = *e
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.events, id)
	kept := f.participants[:0]
	for _, p := range f.participants {
		if p.EventID != id {
			kept = append(kept, p)
		}
	}
	f.participants = kept
	return nil
}

func (f *fakeStore) Join(ctx context.Context, eventID string, p *entity.Participant) (*entity.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, found := f.events[eventID]
	already := false
	for _, existing := range f.participants {
		if existing.EventID == eventID && existing.Email == p.Email {
			already = true
			break
		}
	}
	if err := repository.CheckJoin(found, e.Capacity, f.countLocked(eventID), already); err != nil {
		return nil, err
	}
	cp := *p
	cp.ID = f.nextID()
	cp.EventID = eventID
	cp.CreatedAt = time.Now()
	f.participants = append(f.participants, cp)
	return &cp, nil
}

func (f *fakeStore) ListByEvent(ctx context.Context, eventID string) ([]entity.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.Participant, 0)
	for i := len(f.participants) - 1; i >= 0; i-- {
		p := f.participants[i]
		if eventID != "" && p.EventID != eventID {
			continue
		}
		if e, ok := f.events[p.EventID]; ok {
			p.Event = &entity.EventSummary{ID: e.ID, Name: e.Name, Date: e.Date, Location: e.Location}
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeStore) CountByEvent(ctx context.Context, eventID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.countLocked(eventID), nil
}

// fakeParticipants renames ListByEvent to List so fakeStore satisfies
// ParticipantRepository without clashing with EventRepository.List.
type fakeParticipants struct{ *fakeStore }

func (f fakeParticipants) List(ctx context.Context, eventID string) ([]entity.Participant, error) {
	return f.ListByEvent(ctx, eventID)
}

type fakeUsers struct {
	mu    sync.Mutex
	seq   int
	users map[string]entity.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[string]entity.User)}
}

func (f *fakeUsers) Create(ctx context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.users {
		if e.Email == u.Email {
			return repository.ErrEmailTaken
		}
	}
	f.seq++
	u.ID = fmt.Sprintf("user-%d", f.seq)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) List(ctx context.Context) ([]entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUsers) Update(ctx context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	u.UpdatedAt = time.Now()
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUsers) UpdateRole(ctx context.Context, id, role2 string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Role2 = role2
	u.UpdatedAt = time.Now()
	f.users[id] = u
	return &u, nil
}

func (f *fakeUsers) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

// interface conformance
var (
	_ repository.EventRepository       = (*fakeStore)(nil)
	_ repository.ParticipantRepository = fakeParticipants{}
	_ repository.UserRepository        = (*fakeUsers)(nil)
)

type testEnv struct {
	router *gin.Engine
	store  *fakeStore
	users  *fakeUsers
}

func withRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CtxUserID, "tester")
		c.Set(middleware.CtxUserRole, role)
	}
}

func newTestEnv(role string) testEnv {
	store := newFakeStore()
	users := newFakeUsers()

	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	userSvc := application.NewUserService(users, jwt, nil, nil, time.Hour, nil, "eventdesk")
	eventSvc := application.NewEventService(store, fakeParticipants{store}, nil, nil, "", false)
	regSvc := application.NewRegistrationService(store, fakeParticipants{store}, nil, nil)

	auth := NewAuthHandler(userSvc, helpers.NewCookie("", false), nil)
	uh := NewUserHandler(userSvc, nil)
	eh := NewEventHandler(eventSvc, nil)
	ph := NewParticipantHandler(regSvc, nil)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/auth/signup", auth.SignUp)
	api.POST("/auth/signin", auth.SignIn)

	authed := api.Group("", withRole(role))
	authed.GET("/users", uh.List)
	admin := authed.Group("", middleware.RequireAdmin())
	admin.PUT("/users/:id", uh.Update)
	admin.PUT("/users/:id/role", uh.UpdateRole)
	admin.DELETE("/users/:id", uh.Delete)

	api.GET("/events", eh.List)
	api.GET("/events/:id", eh.Get)
	admin.POST("/events", eh.Create)
	admin.PUT("/events/:id", eh.Update)
	admin.DELETE("/events/:id", eh.Delete)

	api.POST("/participants", ph.Join)
	api.GET("/participants", ph.List)

	return testEnv{router: r, store: store, users: users}
}

func (e testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e testEnv) seedEvent(t *testing.T, capacity int) string {
	t.Helper()
	env := struct {
		Data eventView `json:"data"`
	}{}
	w := e.do(t, http.MethodPost, "/api/events", gin.H{
		"name": "Launch", "date": "2026-05-01T18:00:00Z", "location": "Bandung", "capacity": capacity,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("seed event: %d %s", w.Code, w.Body.String())
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode seed event: %v", err)
	}
	return env.Data.ID
}

func TestSignUpAndDuplicateEmail(t *testing.T) {
	env := newTestEnv(entity.RoleAdmin)

	body := gin.H{"fullName": "Ada", "email": "ada@x.com", "password": "secret123"}
	if w := env.do(t, http.MethodPost, "/api/auth/signup", body); w.Code != http.StatusCreated {
		t.Fatalf("signup: %d %s", w.Code, w.Body.String())
	}
	if w := env.do(t, http.MethodPost, "/api/auth/signup", body); w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate signup should be 400, got %d", w.Code)
	}
}

func TestSignUpValidation(t *testing.T) {
	env := newTestEnv(entity.RoleAdmin)
	w := env.do(t, http.MethodPost, "/api/auth/signup", gin.H{"fullName": "Ada", "email": "not-an-email", "password": "short"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSignUpStripsPassword(t *testing.T) {
	env := newTestEnv(entity.RoleAdmin)
	w := env.do(t, http.MethodPost, "/api/auth/signup", gin.H{"fullName": "Ada", "email": "ada@x.com", "password": "secret123"})
	if bytes.Contains(w.Body.Bytes(), []byte("secret123")) || bytes.Contains(w.Body.Bytes(), []byte("password")) {
		t.Fatalf("password leaked into response: %s", w.Body.String())
	}
}

func TestSignInSetsCookies(t *testing.T) {
	env := newTestEnv(entity.RoleAdmin)
	env.do(t, http.MethodPost, "/api/auth/signup", gin.H{"fullName": "Ada", "email": "ada@x.com", "password": "secret123"})

	w := env.do(t, http.MethodPost, "/api/auth/signin", gin.H{"email": "ada@x.com", "password": "secret123"})
	if w.Code != http.StatusOK {
		t.Fatalf("signin: %d %s", w.Code, w.Body.String())
	}
	cookies := w.Result().Cookies()
	var access, refresh bool
	for _, ck := range cookies {
		switch ck.Name {
		case "access_token":
			access = ck.Value != "" && ck.HttpOnly
		case "refresh_token":
			refresh = ck.Value != "" && ck.HttpOnly
		}
	}
	if !access || !refresh {
		t.Fatalf("expected both httponly auth cookies, got %v", cookies)
	}
}

func TestSignInSymmetricFailures(t *testing.T) {
	env := newTestEnv(entity.RoleAdmin)
	env.do(t, http.MethodPost, "/api/auth/signup", gin.H{"fullName": "Ada", "email": "ada@x.com", "password": "secret123"})

	unknown := env.do(t, http.MethodPost, "/api/auth/signin", gin.H{"email": "ghost@x.com", "password": "secret123"})
	wrong := env.do(t, http.MethodPost, "/api/auth/signin", gin.H{"email": "ada@x.com", "password": "wrong-pass"})

	if unknown.Code != http.StatusUnauthorized || wrong.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", unknown.Code, wrong.Code)
	}
	var a, b struct{ Message string `json:"message"` }
	_ = json.Unmarshal(unknown.Body.Bytes(), &a)
	_ = json.Unmarshal(wrong.Body.Bytes(), &b)
	if a.Message != b.Message {
		t.Fatalf("failure messages must be identical: %q vs %q", a.Message, b.Message)
	}
}

func TestListUsersProjectionByRole(t *testing.T) {
	for _, tc := range []struct {
		role      string
		wantEmail bool
	}{
		{entity.RoleAdmin, true},
		{entity.RoleUser, false},
	} {
		env := newTestEnv(tc.role)
		env.do(t, http.MethodPost, "/api/auth/signup", gin.H{"fullName": "Ada", "email": "ada@x.com", "password": "secret123"})

		w := env.do(t, http.MethodGet, "/api/users", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("%s list users: %d", tc.role, w.Code)
		}
		var envlp struct {
			Data []map[string]any `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &envlp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(envlp.Data) != 1 {
			t.Fatalf("expected one user, got %d", len(envlp.Data))
		}
		_, hasEmail := envlp.Data[0]["email"]
		if hasEmail != tc.wantEmail {
			t.Fatalf("role %s: email visibility = %v, want %v", tc.role, hasEmail, tc.wantEmail)
		}
		if _, ok := envlp.Data[0]["id"]; !ok {
			t.Fatalf("role %s: id must always be present", tc.role)
		}
	}
}

func TestUserAdminRoutesForbiddenForUsers(t *testing.T) {
	env := newTestEnv(entity.RoleUser)
	if w := env.do(t, http.MethodDelete, "/api/users/u1", nil); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	if w := env.do(t, http.MethodPut, "/api/users/u1/role", gin.H{"role2": "ADMIN"}); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestUpdateRoleRejectsUnknownRole(t *testing.T) {
	env := newTestEnv(entity.RoleAdmin)
	env.do(t, http.MethodPost, "/api/auth/signup", gin.H{"fullName": "Ada", "email": "ada@x.com", "password": "secret123"})

	w := env.do(t, http.MethodPut, "/api/users/user-1/role", gin.H{"role2": "SUPERUSER"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown role, got %d: %s", w.Code, w.Body.String())
	}
}

func TestEventCRUD(t *testing.T) {
	env := newTestEnv(entity.RoleAdmin)
	id := env.seedEvent(t, 10)

	if w := env.do(t, http.MethodGet, "/api/events/"+id, nil); w.Code != http.StatusOK {
		t.Fatalf("get event: %d", w.Code)
	}
	if w := env.do(t, http.MethodGet, "/api/events/nope", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown event, got %d", w.Code)
	}
	w := env.do(t, http.MethodPut, "/api/events/"+id, gin.H{
		"name": "Launch v2", "date": "2026-06-01T18:00:00Z", "location": "Bandung", "capacity": 20,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update event: %d %s", w.Code, w.Body.String())
	}
	if w := env.do(t, http.MethodDelete, "/api/events/"+id, nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete event: %d", w.Code)
	}
	if w := env.do(t, http.MethodDelete, "/api/events/"+id, nil); w.Code != http.StatusNotFound {
		t.Fatalf("second delete should 404, got %d", w.Code)
	}
}

func TestEventViewReportsAvailability(t *testing.T) {
	env := newTestEnv(entity.RoleAdmin)
	id := env.seedEvent(t, 2)

	get := func() eventView {
		w := env.do(t, http.MethodGet, "/api/events/"+id, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("get event: %d", w.Code)
		}
		var envlp struct {
			Data eventView `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &envlp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return envlp.Data
	}

	v := get()
	if v.Remaining != 2 || v.IsFull {
		t.Fatalf("fresh event: remaining=%d isFull=%v", v.Remaining, v.IsFull)
	}

	env.do(t, http.MethodPost, "/api/participants", gin.H{"eventId": id, "name": "A", "email": "a@x.com", "role": "OTHER"})
	env.do(t, http.MethodPost, "/api/participants", gin.H{"eventId": id, "name": "B", "email": "b@x.com", "role": "OTHER"})

	v = get()
	if v.ParticipantCount != 2 || v.Remaining != 0 || !v.IsFull {
		t.Fatalf("full event: count=%d remaining=%d isFull=%v", v.ParticipantCount, v.Remaining, v.IsFull)
	}
}

func TestEventCreateRejectsNonPositiveCapacity(t *testing.T) {
	env := newTestEnv(entity.RoleAdmin)
	w := env.do(t, http.MethodPost, "/api/events", gin.H{
		"name": "Launch", "date": "2026-05-01T18:00:00Z", "location": "Bandung", "capacity": 0,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestJoinStatusMapping(t *testing.T) {
	env := newTestEnv(entity.RoleAdmin)
	id := env.seedEvent(t, 1)

	join := func(email string) *httptest.ResponseRecorder {
		return env.do(t, http.MethodPost, "/api/participants", gin.H{
			"eventId": id, "name": "Guest", "email": email, "role": "OTHER",
		})
	}

	if w := join("a@x.com"); w.Code != http.StatusCreated {
		t.Fatalf("first join: %d %s", w.Code, w.Body.String())
	}
	// Duplicate wins over capacity for the same email.
	if w := join("a@x.com"); w.Code != http.StatusBadRequest || !bytes.Contains(w.Body.Bytes(), []byte("already registered")) {
		t.Fatalf("duplicate join: %d %s", w.Code, w.Body.String())
	}
	if w := join("b@x.com"); w.Code != http.StatusBadRequest || !bytes.Contains(w.Body.Bytes(), []byte("capacity exceeded")) {
		t.Fatalf("full join: %d %s", w.Code, w.Body.String())
	}
	// Unknown event is 404 regardless of payload.
	w := env.do(t, http.MethodPost, "/api/participants", gin.H{
		"eventId": "ghost", "name": "Guest", "email": "c@x.com", "role": "OTHER",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown event join: %d", w.Code)
	}
}

func TestJoinValidationDetails(t *testing.T) {
	env := newTestEnv(entity.RoleAdmin)
	w := env.do(t, http.MethodPost, "/api/participants", gin.H{"eventId": "", "name": "", "email": "bad", "role": ""})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var envlp struct {
		Error map[string]string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envlp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, field := range []string{"eventId", "name", "email", "role"} {
		if _, ok := envlp.Error[field]; !ok {
			t.Fatalf("expected detail for %q, got %v", field, envlp.Error)
		}
	}
}

func TestListParticipantsWithEventSummary(t *testing.T) {
	env := newTestEnv(entity.RoleAdmin)
	id := env.seedEvent(t, 5)
	env.do(t, http.MethodPost, "/api/participants", gin.H{"eventId": id, "name": "Guest", "email": "a@x.com", "role": "MENTOR"})

	w := env.do(t, http.MethodGet, "/api/participants?event_id="+id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: %d", w.Code)
	}
	var envlp struct {
		Data []participantView `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envlp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(envlp.Data) != 1 {
		t.Fatalf("expected one participant, got %d", len(envlp.Data))
	}
	p := envlp.Data[0]
	if p.Event == nil || p.Event.Name != "Launch" || p.Event.Location != "Bandung" {
		t.Fatalf("missing event summary: %+v", p)
	}
}
