// Package dashboard implements the client-side state controller behind
// the dashboard view: tabbed panels with independent load-on-activate,
// a profile edit buffer with optimistic sidebar updates, and pluggable
// panel providers so demo panels and live panels share one code path.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"peer-backend/client"
)

// Tab identifiers.
const (
	TabFeed          = "feed"
	TabJobs          = "jobs"
	TabMessages      = "messages"
	TabNotifications = "notifications"
	TabProfile       = "profile"
	TabPost          = "post"
)

const (
	maxPhotoBytes = 5 * 1024 * 1024
	bannerWindow  = 3 * time.Second

	// Sidebar fallbacks shown when the profile has no experience yet.
	defaultTitle   = "Software Engineer"
	defaultCompany = "TechCorp"
)

var allowedPhotoExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// Sidebar is the derived projection displayed next to the panels. Title
// and company come from the first experience entry; the defaults are a
// presentation fallback, not stored data.
type Sidebar struct {
	FullName string
	Title    string
	Company  string
	Location string
}

// EditBuffer is the in-progress copy of the profile during editing,
// distinct from the last-loaded canonical copy.
type EditBuffer struct {
	FullName     string
	Bio          string
	Location     string
	Experience   []client.Experience
	Achievements []client.Achievement
}

type pendingPhoto struct {
	filename string
	data     []byte
}

type Controller struct {
	api *client.Client

	activeTab string

	// Canonical server state.
	profile *client.Profile
	user    *client.User
	sidebar Sidebar

	editing bool
	buffer  *EditBuffer

	staged *pendingPhoto

	jobs          JobsProvider
	messages      MessagesProvider
	notifications NotificationsProvider

	jobList       []client.Job
	conversations []client.Conversation
	noteList      []Notification

	// Per-panel loading flags; deliberately not unified.
	profileLoading  bool
	jobsLoading     bool
	messagesLoading bool
	uploadingPhoto  bool

	bannerMessage string
	bannerUntil   time.Time

	now func() time.Time
}

// Option configures a Controller.
type Option func(*Controller)

// WithJobsProvider swaps the jobs panel source, e.g. for the live
// SDK-backed provider.
func WithJobsProvider(p JobsProvider) Option {
	return func(c *Controller) { c.jobs = p }
}

func WithMessagesProvider(p MessagesProvider) Option {
	return func(c *Controller) { c.messages = p }
}

func WithNotificationsProvider(p NotificationsProvider) Option {
	return func(c *Controller) { c.notifications = p }
}

// WithClock overrides the time source; tests use it to step through the
// banner window.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func NewController(api *client.Client, opts ...Option) *Controller {
	c := &Controller{
		api:           api,
		activeTab:     TabFeed,
		jobs:          NewMockJobs(),
		messages:      NewMockMessages(),
		notifications: NewMockNotifications(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) ActiveTab() string { return c.activeTab }

// SetActiveTab switches panels. Only the profile tab reloads on
// activation; the others keep whatever state they already hold.
func (c *Controller) SetActiveTab(ctx context.Context, tab string) error {
	c.activeTab = tab
	if tab == TabProfile {
		return c.LoadProfile(ctx)
	}
	return nil
}

func (c *Controller) Profile() *client.Profile { return c.profile }
func (c *Controller) CurrentUser() *client.User {
	return c.user
}
func (c *Controller) Sidebar() Sidebar { return c.sidebar }
func (c *Controller) Editing() bool    { return c.editing }
func (c *Controller) Buffer() *EditBuffer {
	return c.buffer
}

func (c *Controller) LoadProfile(ctx context.Context) error {
	c.profileLoading = true
	defer func() { c.profileLoading = false }()

	resp, err := c.api.GetProfile(ctx)
	if err != nil {
		return err
	}

	c.profile = &resp.Profile
	c.user = &resp.User
	c.sidebar = projectSidebar(&resp.Profile)
	return nil
}

func projectSidebar(p *client.Profile) Sidebar {
	s := Sidebar{
		FullName: p.FullName,
		Location: p.Location,
		Title:    defaultTitle,
		Company:  defaultCompany,
	}
	if len(p.Experience) > 0 {
		s.Title = p.Experience[0].Title
		s.Company = p.Experience[0].Company
	}
	return s
}

// StartEditing snapshots the canonical profile into the edit buffer.
func (c *Controller) StartEditing() error {
	if c.profile == nil {
		return errors.New("profile not loaded")
	}
	c.buffer = &EditBuffer{
		FullName:     c.profile.FullName,
		Bio:          c.profile.Bio,
		Location:     c.profile.Location,
		Experience:   append([]client.Experience(nil), c.profile.Experience...),
		Achievements: append([]client.Achievement(nil), c.profile.Achievements...),
	}
	c.editing = true
	return nil
}

// CancelEditing discards the buffer without touching canonical state.
func (c *Controller) CancelEditing() {
	c.buffer = nil
	c.editing = false
}

// SaveProfile persists the buffered fields. The sidebar reflects the
// submitted values immediately; the canonical reload that follows may
// overwrite it with confirmed server state.
func (c *Controller) SaveProfile(ctx context.Context, fullName, bio, location string) error {
	upd := client.ProfileUpdate{
		FullName: &fullName,
		Bio:      &bio,
		Location: &location,
	}
	if err := c.api.UpdateProfile(ctx, upd); err != nil {
		return err
	}

	// Optimistic update from the submitted values, not the response.
	c.sidebar.FullName = fullName
	c.sidebar.Location = location

	c.editing = false
	c.buffer = nil

	return c.LoadProfile(ctx)
}

// ValidatePhoto is the pure pre-upload check: it never reads the file
// and never touches the network.
func ValidatePhoto(filename string, size int64) error {
	if size > maxPhotoBytes {
		return errors.New("File too large. Maximum size is 5MB")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedPhotoExts[ext] {
		return errors.New("Invalid file type. Allowed: jpeg, jpg, png, gif")
	}
	return nil
}

// StagePhoto validates and holds the image for preview; the upload
// happens only on ConfirmPhotoUpload.
func (c *Controller) StagePhoto(filename string, data []byte) error {
	if err := ValidatePhoto(filename, int64(len(data))); err != nil {
		return err
	}
	c.staged = &pendingPhoto{filename: filename, data: data}
	return nil
}

func (c *Controller) HasStagedPhoto() bool { return c.staged != nil }

func (c *Controller) CancelPhotoUpload() { c.staged = nil }

// ConfirmPhotoUpload sends the staged photo. On failure the staged state
// stays so the user can retry; only the uploading flag resets.
func (c *Controller) ConfirmPhotoUpload(ctx context.Context) (*client.Photo, error) {
	if c.staged == nil {
		return nil, errors.New("no photo staged")
	}

	c.uploadingPhoto = true
	defer func() { c.uploadingPhoto = false }()

	photo, err := c.api.UploadProfilePhoto(ctx, c.staged.filename, c.staged.data)
	if err != nil {
		return nil, err
	}

	c.staged = nil
	return photo, c.LoadProfile(ctx)
}

// AddExperience validates locally, posts, appends to the edit buffer and
// overwrites the sidebar title/company from the new entry.
func (c *Controller) AddExperience(ctx context.Context, in client.ExperienceInput) error {
	if in.Title == "" || in.Company == "" || in.StartDate == "" {
		return errors.New("Title, company and start date are required")
	}
	if c.buffer == nil {
		return errors.New("not editing")
	}

	exp, err := c.api.AddExperience(ctx, in)
	if err != nil {
		return err
	}

	c.buffer.Experience = append(c.buffer.Experience, *exp)
	c.sidebar.Title = exp.Title
	c.sidebar.Company = exp.Company
	return nil
}

// RemoveExperience resolves the id from the canonical list by index and
// removes the same index from the buffer. The two lists stay
// index-aligned because adds append to both (buffer now, canonical on
// the next reload before further removals).
func (c *Controller) RemoveExperience(ctx context.Context, index int) error {
	if c.profile == nil || c.buffer == nil {
		return errors.New("not editing")
	}
	if index < 0 || index >= len(c.profile.Experience) {
		return fmt.Errorf("experience index %d out of range", index)
	}

	id := c.profile.Experience[index].ID
	if err := c.api.RemoveExperience(ctx, id); err != nil {
		return err
	}

	if index < len(c.buffer.Experience) {
		c.buffer.Experience = append(c.buffer.Experience[:index], c.buffer.Experience[index+1:]...)
	}
	return nil
}

func (c *Controller) AddAchievement(ctx context.Context, in client.AchievementInput) error {
	if in.Title == "" {
		return errors.New("Title is required")
	}
	if c.buffer == nil {
		return errors.New("not editing")
	}

	a, err := c.api.AddAchievement(ctx, in)
	if err != nil {
		return err
	}

	c.buffer.Achievements = append(c.buffer.Achievements, *a)
	return nil
}

func (c *Controller) RemoveAchievement(ctx context.Context, index int) error {
	if c.profile == nil || c.buffer == nil {
		return errors.New("not editing")
	}
	if index < 0 || index >= len(c.profile.Achievements) {
		return fmt.Errorf("achievement index %d out of range", index)
	}

	id := c.profile.Achievements[index].ID
	if err := c.api.RemoveAchievement(ctx, id); err != nil {
		return err
	}

	if index < len(c.buffer.Achievements) {
		c.buffer.Achievements = append(c.buffer.Achievements[:index], c.buffer.Achievements[index+1:]...)
	}
	return nil
}

// Jobs panel.

func (c *Controller) LoadJobs(ctx context.Context) error {
	c.jobsLoading = true
	defer func() { c.jobsLoading = false }()

	jobs, err := c.jobs.Load(ctx)
	if err != nil {
		return err
	}
	c.jobList = jobs
	return nil
}

func (c *Controller) Jobs() []client.Job { return c.jobList }

func (c *Controller) ApplyToJob(ctx context.Context, id int64) error {
	if err := c.jobs.Apply(ctx, id); err != nil {
		return err
	}
	for i := range c.jobList {
		if c.jobList[i].ID == id {
			c.jobList[i].Applied = true
			c.jobList[i].Status = "applied"
		}
	}
	return nil
}

func (c *Controller) WithdrawFromJob(ctx context.Context, id int64) error {
	if err := c.jobs.Withdraw(ctx, id); err != nil {
		return err
	}
	for i := range c.jobList {
		if c.jobList[i].ID == id {
			c.jobList[i].Applied = false
			c.jobList[i].Status = "withdrawn"
		}
	}
	return nil
}

func (c *Controller) ToggleSaveJob(ctx context.Context, id int64) error {
	saved, err := c.jobs.ToggleSave(ctx, id)
	if err != nil {
		return err
	}
	for i := range c.jobList {
		if c.jobList[i].ID == id {
			c.jobList[i].Saved = saved
		}
	}
	return nil
}

// Messages panel.

func (c *Controller) LoadConversations(ctx context.Context) error {
	c.messagesLoading = true
	defer func() { c.messagesLoading = false }()

	convs, err := c.messages.Load(ctx)
	if err != nil {
		return err
	}
	c.conversations = convs
	return nil
}

func (c *Controller) ConversationList() []client.Conversation { return c.conversations }

func (c *Controller) SendMessage(ctx context.Context, conversationID int64, content string) error {
	if err := c.messages.Send(ctx, conversationID, content); err != nil {
		return err
	}
	// Refresh the list so lastMessage/time reflect the send.
	convs, err := c.messages.Load(ctx)
	if err == nil {
		c.conversations = convs
	}
	return nil
}

// Notifications panel.

func (c *Controller) LoadNotifications(ctx context.Context) error {
	notes, err := c.notifications.Load(ctx)
	if err != nil {
		return err
	}
	c.noteList = notes
	return nil
}

func (c *Controller) Notifications() []Notification { return c.noteList }

func (c *Controller) AcceptNotification(ctx context.Context, id int64) error {
	if err := c.notifications.Accept(ctx, id); err != nil {
		return err
	}
	notes, err := c.notifications.Load(ctx)
	if err == nil {
		c.noteList = notes
	}
	c.showBanner("Connection accepted")
	return nil
}

func (c *Controller) DeclineNotification(ctx context.Context, id int64) error {
	if err := c.notifications.Decline(ctx, id); err != nil {
		return err
	}
	notes, err := c.notifications.Load(ctx)
	if err == nil {
		c.noteList = notes
	}
	c.showBanner("Invitation declined")
	return nil
}

func (c *Controller) showBanner(msg string) {
	c.bannerMessage = msg
	c.bannerUntil = c.now().Add(bannerWindow)
}

// BannerVisible reports whether the transient success banner is still
// inside its display window.
func (c *Controller) BannerVisible() bool {
	return c.now().Before(c.bannerUntil)
}

func (c *Controller) BannerMessage() string { return c.bannerMessage }
