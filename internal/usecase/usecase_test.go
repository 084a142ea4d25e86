package usecase_test

import (
	"context"
	"testing"
	"time"

	"peer-backend/internal/domain"
	"peer-backend/internal/usecase"
	"peer-backend/pkg/auth"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// Mock Repositories

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	args := m.Called(ctx, username, email)
	return args.Bool(0), args.Error(1)
}

type MockPostRepo struct {
	mock.Mock
}

func (m *MockPostRepo) Create(ctx context.Context, post *domain.Post) error {
	return m.Called(ctx, post).Error(0)
}
func (m *MockPostRepo) GetByID(ctx context.Context, id, viewerID int64) (*domain.Post, error) {
	args := m.Called(ctx, id, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}
func (m *MockPostRepo) Fetch(ctx context.Context, viewerID int64) ([]domain.Post, error) {
	args := m.Called(ctx, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Post), args.Error(1)
}
func (m *MockPostRepo) FetchByUser(ctx context.Context, userID, viewerID int64) ([]domain.Post, error) {
	args := m.Called(ctx, userID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Post), args.Error(1)
}
func (m *MockPostRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockPostRepo) ToggleLike(ctx context.Context, postID, userID int64) (int64, bool, error) {
	args := m.Called(ctx, postID, userID)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockProfileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	return m.Called(ctx, profile).Error(0)
}
func (m *MockProfileRepo) Update(ctx context.Context, userID int64, upd domain.ProfileUpdate) error {
	return m.Called(ctx, userID, upd).Error(0)
}
func (m *MockProfileRepo) AddExperience(ctx context.Context, exp *domain.Experience) error {
	return m.Called(ctx, exp).Error(0)
}
func (m *MockProfileRepo) UpdateExperience(ctx context.Context, exp *domain.Experience) error {
	return m.Called(ctx, exp).Error(0)
}
func (m *MockProfileRepo) DeleteExperience(ctx context.Context, profileID, expID int64) error {
	return m.Called(ctx, profileID, expID).Error(0)
}
func (m *MockProfileRepo) AddAchievement(ctx context.Context, a *domain.Achievement) error {
	return m.Called(ctx, a).Error(0)
}
func (m *MockProfileRepo) UpdateAchievement(ctx context.Context, a *domain.Achievement) error {
	return m.Called(ctx, a).Error(0)
}
func (m *MockProfileRepo) DeleteAchievement(ctx context.Context, profileID, achID int64) error {
	return m.Called(ctx, profileID, achID).Error(0)
}
func (m *MockProfileRepo) ReplacePhoto(ctx context.Context, photo *domain.ProfilePhoto) error {
	return m.Called(ctx, photo).Error(0)
}
func (m *MockProfileRepo) DeletePhotos(ctx context.Context, profileID int64) ([]domain.ProfilePhoto, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProfilePhoto), args.Error(1)
}

type MockMessageRepo struct {
	mock.Mock
}

func (m *MockMessageRepo) FetchConversations(ctx context.Context, userID int64) ([]domain.Conversation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Conversation), args.Error(1)
}
func (m *MockMessageRepo) GetConversation(ctx context.Context, conversationID, userID int64) (bool, error) {
	args := m.Called(ctx, conversationID, userID)
	return args.Bool(0), args.Error(1)
}
func (m *MockMessageRepo) FetchMessages(ctx context.Context, conversationID int64) ([]domain.Message, error) {
	args := m.Called(ctx, conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Message), args.Error(1)
}
func (m *MockMessageRepo) CreateMessage(ctx context.Context, msg *domain.Message) error {
	return m.Called(ctx, msg).Error(0)
}
func (m *MockMessageRepo) MarkRead(ctx context.Context, conversationID, readerID int64) error {
	return m.Called(ctx, conversationID, readerID).Error(0)
}

func testIssuer() *auth.Issuer {
	return auth.NewIssuer("test-secret", time.Hour)
}

func TestSignupValidation(t *testing.T) {
	mockRepo := new(MockUserRepo)
	uc := usecase.NewAuthUsecase(mockRepo, testIssuer(), nil)
	ctx := context.Background()

	t.Run("Should reject passwords under the length floor", func(t *testing.T) {
		_, err := uc.Signup(ctx, "alice", "alice@example.com", "short")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Password must be at least 8 characters")
	})

	t.Run("Should reject malformed emails", func(t *testing.T) {
		_, err := uc.Signup(ctx, "alice", "not-an-email", "longenough")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid email format")
	})

	t.Run("Should reject duplicate username or email", func(t *testing.T) {
		mockRepo.On("ExistsByUsernameOrEmail", ctx, "alice", "alice@example.com").Return(true, nil).Once()
		_, err := uc.Signup(ctx, "alice", "alice@example.com", "longenough")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "User already exists")
	})

	t.Run("Should create the user when input is valid", func(t *testing.T) {
		mockRepo.On("ExistsByUsernameOrEmail", ctx, "bob", "bob@example.com").Return(false, nil).Once()
		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Once().Run(func(args mock.Arguments) {
			u := args.Get(1).(*domain.User)
			assert.NotEqual(t, "longenough", u.PasswordHash) // never stored in clear
		})

		user, err := uc.Signup(ctx, "bob", "bob@example.com", "longenough")
		assert.NoError(t, err)
		assert.Equal(t, "bob", user.Username)
	})
}

func TestLoginCredentials(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	stored := &domain.User{ID: 7, Username: "alice", Email: "alice@example.com", PasswordHash: string(hash)}

	t.Run("Should not reveal whether the user exists", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, testIssuer(), nil)
		mockRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, domain.ErrNotFound)

		_, _, err := uc.Login(ctx, "ghost@example.com", "whatever")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid credentials")
	})

	t.Run("Should reject a wrong password with the same message", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, testIssuer(), nil)
		mockRepo.On("GetByEmail", ctx, "alice@example.com").Return(stored, nil)

		_, _, err := uc.Login(ctx, "alice@example.com", "wrong")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid credentials")
	})

	t.Run("Should look up by username when login is not an email", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, testIssuer(), nil)
		mockRepo.On("GetByUsername", ctx, "alice").Return(stored, nil)

		token, user, err := uc.Login(ctx, "alice", "correct-horse")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, int64(7), user.ID)
	})

	t.Run("Should issue a token that parses back to the same claims", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		issuer := testIssuer()
		uc := usecase.NewAuthUsecase(mockRepo, issuer, nil)
		mockRepo.On("GetByEmail", ctx, "alice@example.com").Return(stored, nil)

		token, _, err := uc.Login(ctx, "alice@example.com", "correct-horse")
		assert.NoError(t, err)

		claims, err := issuer.Parse(token)
		assert.NoError(t, err)
		assert.Equal(t, int64(7), claims.UserID)
		assert.Equal(t, "alice", claims.Username)
	})
}

func TestPostOwnership(t *testing.T) {
	ctx := context.Background()

	t.Run("Should forbid deleting another user's post", func(t *testing.T) {
		mockPosts := new(MockPostRepo)
		uc := usecase.NewPostUsecase(mockPosts, new(MockUserRepo), nil)
		mockPosts.On("GetByID", ctx, int64(42), int64(1)).Return(&domain.Post{ID: 42, UserID: 2}, nil)

		err := uc.DeletePost(ctx, 1, 42)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "your own posts")
		mockPosts.AssertNotCalled(t, "Delete", ctx, int64(42))
	})

	t.Run("Should delete own post", func(t *testing.T) {
		mockPosts := new(MockPostRepo)
		uc := usecase.NewPostUsecase(mockPosts, new(MockUserRepo), nil)
		mockPosts.On("GetByID", ctx, int64(42), int64(2)).Return(&domain.Post{ID: 42, UserID: 2}, nil)
		mockPosts.On("Delete", ctx, int64(42)).Return(nil)

		assert.NoError(t, uc.DeletePost(ctx, 2, 42))
		mockPosts.AssertExpectations(t)
	})

	t.Run("Should 404 a like on a missing post", func(t *testing.T) {
		mockPosts := new(MockPostRepo)
		uc := usecase.NewPostUsecase(mockPosts, new(MockUserRepo), nil)
		mockPosts.On("GetByID", ctx, int64(99), int64(1)).Return(nil, domain.ErrNotFound)

		_, _, err := uc.ToggleLike(ctx, 1, 99)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Post not found")
	})
}

func TestPostCreation(t *testing.T) {
	ctx := context.Background()

	t.Run("Should require content", func(t *testing.T) {
		uc := usecase.NewPostUsecase(new(MockPostRepo), new(MockUserRepo), nil)
		_, err := uc.CreatePost(ctx, 1, "   ", nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Content is required")
	})

	t.Run("Should reject inline base64 image payloads", func(t *testing.T) {
		uc := usecase.NewPostUsecase(new(MockPostRepo), new(MockUserRepo), nil)
		data := "data:image/png;base64,AAAA"
		_, err := uc.CreatePost(ctx, 1, "hello", &data)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "upload the photo first")
	})

	t.Run("Should mark posts with an image as photo posts", func(t *testing.T) {
		mockPosts := new(MockPostRepo)
		mockUsers := new(MockUserRepo)
		uc := usecase.NewPostUsecase(mockPosts, mockUsers, nil)
		mockUsers.On("GetByID", ctx, int64(1)).Return(&domain.User{ID: 1, Username: "alice"}, nil)
		mockPosts.On("Create", ctx, mock.AnythingOfType("*domain.Post")).Return(nil)

		url := "http://localhost:8080/uploads/post_photos/1_abc.jpg"
		post, err := uc.CreatePost(ctx, 1, "look", &url)
		assert.NoError(t, err)
		assert.Equal(t, domain.PostTypePhoto, post.PostType)
		assert.Equal(t, "alice", post.User.Username)
	})
}

func TestExperienceValidation(t *testing.T) {
	mockProfiles := new(MockProfileRepo)
	mockUsers := new(MockUserRepo)
	uc := usecase.NewProfileUsecase(mockProfiles, mockUsers, nil, validator.New())
	ctx := context.Background()

	t.Run("Should fail when required fields are missing", func(t *testing.T) {
		err := uc.AddExperience(ctx, 1, &domain.Experience{Title: "Engineer"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "required")
		mockProfiles.AssertNotCalled(t, "AddExperience", ctx, mock.Anything)
	})

	t.Run("Should attach the owner's profile id", func(t *testing.T) {
		mockUsers.On("GetByID", ctx, int64(1)).Return(&domain.User{ID: 1, Username: "alice"}, nil)
		mockProfiles.On("GetByUserID", ctx, int64(1)).Return(&domain.Profile{ID: 10, UserID: 1}, nil)
		mockProfiles.On("AddExperience", ctx, mock.AnythingOfType("*domain.Experience")).Return(nil).Run(func(args mock.Arguments) {
			exp := args.Get(1).(*domain.Experience)
			assert.Equal(t, int64(10), exp.ProfileID)
		})

		err := uc.AddExperience(ctx, 1, &domain.Experience{
			Title:     "Engineer",
			Company:   "Acme",
			StartDate: "2023-01",
			ProfileID: 999, // must be overwritten from the owner lookup
		})
		assert.NoError(t, err)
	})
}

func TestProfileAutoCreate(t *testing.T) {
	mockProfiles := new(MockProfileRepo)
	mockUsers := new(MockUserRepo)
	uc := usecase.NewProfileUsecase(mockProfiles, mockUsers, nil, validator.New())
	ctx := context.Background()

	mockUsers.On("GetByID", ctx, int64(3)).Return(&domain.User{ID: 3, Username: "carol"}, nil)
	mockProfiles.On("GetByUserID", ctx, int64(3)).Return(nil, domain.ErrNotFound)
	mockProfiles.On("Create", ctx, mock.AnythingOfType("*domain.Profile")).Return(nil)

	profile, user, err := uc.GetProfile(ctx, 3)
	assert.NoError(t, err)
	assert.Equal(t, "carol", user.Username)
	// First access seeds the full name from the username.
	assert.Equal(t, "carol", profile.FullName)
	assert.NotNil(t, profile.Experience)
	assert.NotNil(t, profile.Achievements)
	mockProfiles.AssertExpectations(t)
}

func TestMessageAccess(t *testing.T) {
	ctx := context.Background()

	t.Run("Should 404 an unknown conversation", func(t *testing.T) {
		mockRepo := new(MockMessageRepo)
		uc := usecase.NewMessageUsecase(mockRepo)
		mockRepo.On("GetConversation", ctx, int64(5), int64(1)).Return(false, domain.ErrNotFound)

		_, err := uc.ListMessages(ctx, 1, 5)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Conversation not found")
	})

	t.Run("Should forbid reading a thread the user is not part of", func(t *testing.T) {
		mockRepo := new(MockMessageRepo)
		uc := usecase.NewMessageUsecase(mockRepo)
		mockRepo.On("GetConversation", ctx, int64(5), int64(1)).Return(false, nil)

		_, err := uc.ListMessages(ctx, 1, 5)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not part of this conversation")
		mockRepo.AssertNotCalled(t, "FetchMessages", ctx, int64(5))
	})

	t.Run("Should mark the thread read when listed", func(t *testing.T) {
		mockRepo := new(MockMessageRepo)
		uc := usecase.NewMessageUsecase(mockRepo)
		mockRepo.On("GetConversation", ctx, int64(5), int64(1)).Return(true, nil)
		mockRepo.On("FetchMessages", ctx, int64(5)).Return([]domain.Message{{ID: 1, Content: "hi"}}, nil)
		mockRepo.On("MarkRead", ctx, int64(5), int64(1)).Return(nil)

		msgs, err := uc.ListMessages(ctx, 1, 5)
		assert.NoError(t, err)
		assert.Len(t, msgs, 1)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Should require message content", func(t *testing.T) {
		mockRepo := new(MockMessageRepo)
		uc := usecase.NewMessageUsecase(mockRepo)

		_, err := uc.SendMessage(ctx, 1, 5, "  ")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Content is required")
	})
}
