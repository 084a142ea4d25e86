package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"peer-backend/client"
)

// Panel providers. Demo panels and live panels implement the same
// interfaces so the controller never knows which it is driving.

type JobsProvider interface {
	Load(ctx context.Context) ([]client.Job, error)
	Apply(ctx context.Context, id int64) error
	Withdraw(ctx context.Context, id int64) error
	ToggleSave(ctx context.Context, id int64) (bool, error)
}

type MessagesProvider interface {
	Load(ctx context.Context) ([]client.Conversation, error)
	Send(ctx context.Context, conversationID int64, content string) error
}

type Notification struct {
	ID      int64
	Type    string
	Message string
	Icon    string
	Pending bool
}

type NotificationsProvider interface {
	Load(ctx context.Context) ([]Notification, error)
	Accept(ctx context.Context, id int64) error
	Decline(ctx context.Context, id int64) error
}

// MockJobs is the demo jobs panel: an in-memory board whose flags flip
// locally with no persistence.
type MockJobs struct {
	jobs []client.Job
}

func NewMockJobs() *MockJobs {
	return &MockJobs{
		jobs: []client.Job{
			{ID: 1, Title: "Senior Software Engineer", Company: "InnovateTech", Location: "San Francisco, CA", Salary: "$150k - $200k", JobType: "Full-time", Posted: time.Now().AddDate(0, 0, -2)},
			{ID: 2, Title: "Product Manager", Company: "GrowthLabs", Location: "New York, NY", Salary: "$130k - $170k", JobType: "Full-time", Posted: time.Now().AddDate(0, 0, -5)},
			{ID: 3, Title: "UX Designer", Company: "DesignHub", Location: "Remote", Salary: "$100k - $140k", JobType: "Contract", Posted: time.Now().AddDate(0, 0, -7)},
		},
	}
}

func (m *MockJobs) Load(ctx context.Context) ([]client.Job, error) {
	out := make([]client.Job, len(m.jobs))
	copy(out, m.jobs)
	return out, nil
}

func (m *MockJobs) Apply(ctx context.Context, id int64) error {
	return m.mutate(id, func(j *client.Job) {
		j.Applied = true
		j.Status = "applied"
	})
}

func (m *MockJobs) Withdraw(ctx context.Context, id int64) error {
	return m.mutate(id, func(j *client.Job) {
		j.Applied = false
		j.Status = "withdrawn"
	})
}

func (m *MockJobs) ToggleSave(ctx context.Context, id int64) (bool, error) {
	var saved bool
	err := m.mutate(id, func(j *client.Job) {
		j.Saved = !j.Saved
		saved = j.Saved
	})
	return saved, err
}

func (m *MockJobs) mutate(id int64, f func(*client.Job)) error {
	for i := range m.jobs {
		if m.jobs[i].ID == id {
			f(&m.jobs[i])
			return nil
		}
	}
	return fmt.Errorf("job %d not found", id)
}

// LiveJobs drives the jobs panel from the real API.
type LiveJobs struct {
	API *client.Client
}

func (l *LiveJobs) Load(ctx context.Context) ([]client.Job, error) {
	return l.API.ListJobs(ctx)
}

func (l *LiveJobs) Apply(ctx context.Context, id int64) error {
	return l.API.ApplyToJob(ctx, id)
}

func (l *LiveJobs) Withdraw(ctx context.Context, id int64) error {
	return l.API.WithdrawApplication(ctx, id)
}

func (l *LiveJobs) ToggleSave(ctx context.Context, id int64) (bool, error) {
	return l.API.ToggleSaveJob(ctx, id)
}

// MockMessages appends sends onto the conversation's lastMessage, never
// creating a message record.
type MockMessages struct {
	conversations []client.Conversation
}

func NewMockMessages() *MockMessages {
	return &MockMessages{
		conversations: []client.Conversation{
			{ID: 1, Sender: "Sarah Chen", LastMessage: "Thanks for connecting!", Time: time.Now().Add(-2 * time.Hour), Unread: 1},
			{ID: 2, Sender: "Marcus Webb", LastMessage: "Let's catch up next week.", Time: time.Now().Add(-26 * time.Hour), Unread: 0},
		},
	}
}

func (m *MockMessages) Load(ctx context.Context) ([]client.Conversation, error) {
	out := make([]client.Conversation, len(m.conversations))
	copy(out, m.conversations)
	return out, nil
}

func (m *MockMessages) Send(ctx context.Context, conversationID int64, content string) error {
	for i := range m.conversations {
		if m.conversations[i].ID == conversationID {
			m.conversations[i].LastMessage = content
			m.conversations[i].Time = time.Now()
			return nil
		}
	}
	return fmt.Errorf("conversation %d not found", conversationID)
}

// LiveMessages drives the messages panel from the real API.
type LiveMessages struct {
	API *client.Client
}

func (l *LiveMessages) Load(ctx context.Context) ([]client.Conversation, error) {
	return l.API.Conversations(ctx)
}

func (l *LiveMessages) Send(ctx context.Context, conversationID int64, content string) error {
	_, err := l.API.SendMessage(ctx, conversationID, content)
	return err
}

// MockNotifications is the demo notifications panel. Accept rewrites the
// entry in place; decline drops it.
type MockNotifications struct {
	notes []Notification
}

func NewMockNotifications() *MockNotifications {
	return &MockNotifications{
		notes: []Notification{
			{ID: 1, Type: "connection_request", Message: "Sarah Chen wants to connect", Icon: "user-plus", Pending: true},
			{ID: 2, Type: "connection_request", Message: "Marcus Webb wants to connect", Icon: "user-plus", Pending: true},
			{ID: 3, Type: "post_like", Message: "Your post got 12 likes", Icon: "thumbs-up", Pending: false},
		},
	}
}

func (m *MockNotifications) Load(ctx context.Context) ([]Notification, error) {
	out := make([]Notification, len(m.notes))
	copy(out, m.notes)
	return out, nil
}

func (m *MockNotifications) Accept(ctx context.Context, id int64) error {
	for i := range m.notes {
		if m.notes[i].ID == id {
			m.notes[i].Type = "connection_accepted"
			m.notes[i].Message = "You are now connected"
			m.notes[i].Icon = "check-circle"
			m.notes[i].Pending = false
			return nil
		}
	}
	return errors.New("notification not found")
}

func (m *MockNotifications) Decline(ctx context.Context, id int64) error {
	for i := range m.notes {
		if m.notes[i].ID == id {
			m.notes = append(m.notes[:i], m.notes[i+1:]...)
			return nil
		}
	}
	return errors.New("notification not found")
}
