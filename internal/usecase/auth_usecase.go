package usecase

import (
	"context"
	"errors"
	"regexp"
	"time"

	"peer-backend/internal/domain"
	"peer-backend/pkg/apperror"
	"peer-backend/pkg/auth"
	"peer-backend/pkg/email"
	"peer-backend/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type authUsecase struct {
	userRepo domain.UserRepository
	issuer   *auth.Issuer
	mailer   *email.EmailService
}

func NewAuthUsecase(userRepo domain.UserRepository, issuer *auth.Issuer, mailer *email.EmailService) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo, issuer: issuer, mailer: mailer}
}

func (u *authUsecase) Signup(ctx context.Context, username, emailAddr, password string) (*domain.User, error) {
	if username == "" || emailAddr == "" {
		return nil, apperror.BadRequest("Username and email are required")
	}
	if !emailRegex.MatchString(emailAddr) {
		return nil, apperror.BadRequest("Invalid email format")
	}
	// The original backend enforces exactly this floor.
	if len(password) < 8 {
		return nil, apperror.BadRequest("Password must be at least 8 characters")
	}

	exists, err := u.userRepo.ExistsByUsernameOrEmail(ctx, username, emailAddr)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.BadRequest("User already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user := &domain.User{
		Username:     username,
		Email:        emailAddr,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, apperror.Internal(err)
	}

	// Welcome email is best effort; signup never fails on SMTP trouble.
	if u.mailer != nil && u.mailer.IsConfigured() {
		go func(to, name string) {
			if err := u.mailer.SendWelcome(to, name); err != nil {
				logger.Log.Warn("welcome email failed", "error", err)
			}
		}(user.Email, user.Username)
	}

	return user, nil
}

// Login accepts either an email or a username in the login argument, the
// same way the original form did.
func (u *authUsecase) Login(ctx context.Context, login, password string) (string, *domain.User, error) {
	var user *domain.User
	var err error
	if emailRegex.MatchString(login) {
		user, err = u.userRepo.GetByEmail(ctx, login)
	} else {
		user, err = u.userRepo.GetByUsername(ctx, login)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, apperror.Unauthorized("Invalid credentials")
		}
		return "", nil, apperror.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperror.Unauthorized("Invalid credentials")
	}

	token, err := u.issuer.Issue(auth.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
	if err != nil {
		return "", nil, apperror.Internal(err)
	}

	return token, user, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}
