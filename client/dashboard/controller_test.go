package dashboard_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"peer-backend/client"
	"peer-backend/client/dashboard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// profileServer is a minimal in-memory backend for controller tests.
type profileServer struct {
	mu          chan struct{} // 1-buffered semaphore
	fullName    string
	bio         string
	location    string
	experiences []client.Experience
	nextID      int64

	getCalls  int32
	failGets  bool
	firstLoad bool
}

func newProfileServer() *profileServer {
	s := &profileServer{
		mu:        make(chan struct{}, 1),
		fullName:  "alice",
		nextID:    100,
		firstLoad: true,
	}
	s.mu <- struct{}{}
	return s
}

func (s *profileServer) lock()   { <-s.mu }
func (s *profileServer) unlock() { s.mu <- struct{}{} }

func (s *profileServer) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.lock()
		defer s.unlock()

		switch {
		case r.URL.Path == "/api/profile" && r.Method == http.MethodGet:
			atomic.AddInt32(&s.getCalls, 1)
			if s.failGets && !s.firstLoad {
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]string{"message": "Internal Server Error"})
				return
			}
			s.firstLoad = false
			json.NewEncoder(w).Encode(map[string]interface{}{
				"profile": map[string]interface{}{
					"id":           1,
					"full_name":    s.fullName,
					"bio":          s.bio,
					"location":     s.location,
					"experience":   s.experiences,
					"achievements": []client.Achievement{},
					"photos":       []client.Photo{},
				},
				"user": map[string]interface{}{"id": 7, "username": "alice", "email": "a@x.com"},
			})

		case r.URL.Path == "/api/profile" && r.Method == http.MethodPut:
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if v, ok := body["full_name"]; ok {
				s.fullName = v
			}
			if v, ok := body["bio"]; ok {
				s.bio = v
			}
			if v, ok := body["location"]; ok {
				s.location = v
			}
			json.NewEncoder(w).Encode(map[string]string{"message": "Profile updated successfully"})

		case r.URL.Path == "/api/profile/experience" && r.Method == http.MethodPost:
			var in client.ExperienceInput
			json.NewDecoder(r.Body).Decode(&in)
			s.nextID++
			exp := client.Experience{
				ID:        s.nextID,
				Title:     in.Title,
				Company:   in.Company,
				StartDate: in.StartDate,
			}
			s.experiences = append(s.experiences, exp)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"message":    "Experience added successfully",
				"experience": exp,
			})

		case strings.HasPrefix(r.URL.Path, "/api/profile/experience/") && r.Method == http.MethodDelete:
			id, _ := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/api/profile/experience/"), 10, 64)
			for i, exp := range s.experiences {
				if exp.ID == id {
					s.experiences = append(s.experiences[:i], s.experiences[i+1:]...)
					json.NewEncoder(w).Encode(map[string]string{"message": "Experience removed successfully"})
					return
				}
			}
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"message": "Experience not found"})

		default:
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"message": "Not found"})
		}
	})
}

func newController(t *testing.T, s *profileServer, opts ...dashboard.Option) (*dashboard.Controller, func()) {
	t.Helper()
	srv := httptest.NewServer(s.handler())
	api := client.New(srv.URL)
	api.Session.SetCredentials("tok", &client.User{ID: 7, Username: "alice"})
	return dashboard.NewController(api, opts...), srv.Close
}

func TestPhotoValidationIsPure(t *testing.T) {
	// No server at all: the check must not touch the network.
	assert.NoError(t, dashboard.ValidatePhoto("pic.png", 1024))
	assert.NoError(t, dashboard.ValidatePhoto("pic.JPG", 5*1024*1024))

	err := dashboard.ValidatePhoto("pic.png", 5*1024*1024+1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "5MB")

	err = dashboard.ValidatePhoto("doc.pdf", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid file type")
}

func TestSidebarFallbacks(t *testing.T) {
	s := newProfileServer()
	ctrl, done := newController(t, s)
	defer done()

	require.NoError(t, ctrl.LoadProfile(context.Background()))

	sb := ctrl.Sidebar()
	assert.Equal(t, "Software Engineer", sb.Title)
	assert.Equal(t, "TechCorp", sb.Company)
	assert.Equal(t, "alice", sb.FullName)

	// With experience the first entry wins.
	s.lock()
	s.experiences = []client.Experience{{ID: 1, Title: "Staff Engineer", Company: "Acme", StartDate: "2020-01"}}
	s.unlock()

	require.NoError(t, ctrl.LoadProfile(context.Background()))
	sb = ctrl.Sidebar()
	assert.Equal(t, "Staff Engineer", sb.Title)
	assert.Equal(t, "Acme", sb.Company)
}

func TestExperienceAddRemoveRoundTrip(t *testing.T) {
	s := newProfileServer()
	s.experiences = []client.Experience{{ID: 1, Title: "Engineer", Company: "Acme", StartDate: "2020-01"}}
	ctrl, done := newController(t, s)
	defer done()

	ctx := context.Background()
	require.NoError(t, ctrl.LoadProfile(ctx))
	require.NoError(t, ctrl.StartEditing())

	before := append([]client.Experience(nil), ctrl.Buffer().Experience...)

	require.NoError(t, ctrl.AddExperience(ctx, client.ExperienceInput{
		Title:     "Lead",
		Company:   "Initech",
		StartDate: "2024-01",
	}))
	assert.Len(t, ctrl.Buffer().Experience, len(before)+1)
	// Sidebar overwritten from the new entry.
	assert.Equal(t, "Lead", ctrl.Sidebar().Title)
	assert.Equal(t, "Initech", ctrl.Sidebar().Company)

	// Reload keeps canonical and buffer index-aligned, then remove the
	// added entry by its index.
	require.NoError(t, ctrl.LoadProfile(ctx))
	require.NoError(t, ctrl.RemoveExperience(ctx, len(before)))

	assert.Equal(t, before, ctrl.Buffer().Experience)
}

func TestAddExperienceValidatesLocally(t *testing.T) {
	s := newProfileServer()
	ctrl, done := newController(t, s)
	defer done()

	ctx := context.Background()
	require.NoError(t, ctrl.LoadProfile(ctx))
	require.NoError(t, ctrl.StartEditing())

	err := ctrl.AddExperience(ctx, client.ExperienceInput{Title: "Lead"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
	assert.Empty(t, ctrl.Buffer().Experience)
}

func TestSaveProfileOptimisticSidebar(t *testing.T) {
	s := newProfileServer()
	ctrl, done := newController(t, s)
	defer done()

	ctx := context.Background()
	require.NoError(t, ctrl.LoadProfile(ctx))
	require.NoError(t, ctrl.StartEditing())

	// Fail every reload after the first so the sidebar can only hold the
	// optimistic values, never server-confirmed ones.
	s.lock()
	s.failGets = true
	s.unlock()

	err := ctrl.SaveProfile(ctx, "Alice Liddell", "hi", "NYC")
	require.Error(t, err, "canonical reload fails")

	sb := ctrl.Sidebar()
	assert.Equal(t, "Alice Liddell", sb.FullName)
	assert.Equal(t, "NYC", sb.Location)
	assert.False(t, ctrl.Editing())
}

func TestCancelEditingDiscardsBuffer(t *testing.T) {
	s := newProfileServer()
	s.bio = "original"
	ctrl, done := newController(t, s)
	defer done()

	require.NoError(t, ctrl.LoadProfile(context.Background()))
	require.NoError(t, ctrl.StartEditing())

	ctrl.Buffer().Bio = "scratch"
	ctrl.CancelEditing()

	assert.False(t, ctrl.Editing())
	assert.Nil(t, ctrl.Buffer())
	assert.Equal(t, "original", ctrl.Profile().Bio)
}

func TestProfileTabLoadsOnActivate(t *testing.T) {
	s := newProfileServer()
	ctrl, done := newController(t, s)
	defer done()

	ctx := context.Background()
	require.NoError(t, ctrl.SetActiveTab(ctx, dashboard.TabJobs))
	assert.Equal(t, int32(0), atomic.LoadInt32(&s.getCalls))

	require.NoError(t, ctrl.SetActiveTab(ctx, dashboard.TabProfile))
	assert.Equal(t, int32(1), atomic.LoadInt32(&s.getCalls))
	assert.NotNil(t, ctrl.Profile())
}

func TestDeleteControlGatedOnID(t *testing.T) {
	me := &client.User{ID: 7, Username: "alice"}
	mine := &client.Post{ID: 1, User: client.User{ID: 7, Username: "someone else entirely"}}
	theirs := &client.Post{ID: 2, User: client.User{ID: 8, Username: "alice"}}

	assert.True(t, dashboard.CanDelete(mine, me), "same id, regardless of display name")
	assert.False(t, dashboard.CanDelete(theirs, me), "same name is not enough")
	assert.False(t, dashboard.CanDelete(mine, nil))
}

func TestNotificationBannerWindow(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }

	ctrl := dashboard.NewController(client.New("http://unused"), dashboard.WithClock(clock))
	ctx := context.Background()

	require.NoError(t, ctrl.LoadNotifications(ctx))
	initial := len(ctrl.Notifications())
	require.NotZero(t, initial)

	require.NoError(t, ctrl.AcceptNotification(ctx, 1))
	assert.True(t, ctrl.BannerVisible())
	assert.Equal(t, "Connection accepted", ctrl.BannerMessage())

	// Accept rewrites in place.
	assert.Len(t, ctrl.Notifications(), initial)
	for _, n := range ctrl.Notifications() {
		if n.ID == 1 {
			assert.False(t, n.Pending)
			assert.Equal(t, "connection_accepted", n.Type)
		}
	}

	// Decline filters the entry out.
	require.NoError(t, ctrl.DeclineNotification(ctx, 2))
	assert.Len(t, ctrl.Notifications(), initial-1)

	now = now.Add(3*time.Second + time.Millisecond)
	assert.False(t, ctrl.BannerVisible(), "banner hides after the window")
}

func TestMockJobsPanel(t *testing.T) {
	ctrl := dashboard.NewController(client.New("http://unused"))
	ctx := context.Background()

	require.NoError(t, ctrl.LoadJobs(ctx))
	require.NotEmpty(t, ctrl.Jobs())
	id := ctrl.Jobs()[0].ID

	require.NoError(t, ctrl.ApplyToJob(ctx, id))
	assert.True(t, ctrl.Jobs()[0].Applied)
	assert.Equal(t, "applied", ctrl.Jobs()[0].Status)

	require.NoError(t, ctrl.WithdrawFromJob(ctx, id))
	assert.False(t, ctrl.Jobs()[0].Applied)

	require.NoError(t, ctrl.ToggleSaveJob(ctx, id))
	assert.True(t, ctrl.Jobs()[0].Saved)
	require.NoError(t, ctrl.ToggleSaveJob(ctx, id))
	assert.False(t, ctrl.Jobs()[0].Saved)
}

func TestMockMessagesAppendOnly(t *testing.T) {
	ctrl := dashboard.NewController(client.New("http://unused"))
	ctx := context.Background()

	require.NoError(t, ctrl.LoadConversations(ctx))
	require.NotEmpty(t, ctrl.ConversationList())
	id := ctrl.ConversationList()[0].ID

	require.NoError(t, ctrl.SendMessage(ctx, id, "see you there"))
	assert.Equal(t, "see you there", ctrl.ConversationList()[0].LastMessage)
}
