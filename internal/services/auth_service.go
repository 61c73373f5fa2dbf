package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/cannaconnect/cannaconnect-api/internal/auth"
	"github.com/cannaconnect/cannaconnect-api/internal/constants"
	apierrors "github.com/cannaconnect/cannaconnect-api/internal/errors"
	"github.com/cannaconnect/cannaconnect-api/internal/logger"
	"github.com/cannaconnect/cannaconnect-api/internal/metrics"
	"github.com/cannaconnect/cannaconnect-api/internal/models"
	"github.com/cannaconnect/cannaconnect-api/internal/repository"
)

var (
	ErrSignupFieldsRequired = apierrors.New(apierrors.ErrInvalidInput, "email, password and name are required")
	ErrInvalidEmail         = apierrors.New(apierrors.ErrInvalidInput, "email address is invalid")
	ErrPasswordTooShort     = apierrors.New(apierrors.ErrInvalidInput, fmt.Sprintf("password must be at least %d characters", constants.MinPasswordLength))
	ErrNameTooLong          = apierrors.New(apierrors.ErrInvalidInput, fmt.Sprintf("name must be at most %d characters", constants.MaxNameLength))
	ErrEmailTaken           = apierrors.New(apierrors.ErrConflict, "email already registered")
	ErrInvalidCredentials   = apierrors.New(apierrors.ErrUnauthorized, "invalid email or password")
	ErrInvalidToken         = apierrors.New(apierrors.ErrUnauthorized, "invalid or expired token")
	ErrTokenRevoked         = apierrors.New(apierrors.ErrUnauthorized, "token has been revoked")
	ErrInvalidAccessToken   = apierrors.New(apierrors.ErrInvalidInput, "access_token is not a valid access token")
	ErrVerificationExpired  = apierrors.New(apierrors.ErrTokenExpired, "verification link has expired")
	ErrVerificationInvalid  = apierrors.New(apierrors.ErrTokenInvalid, "verification link is invalid")
	ErrAlreadyVerified      = apierrors.New(apierrors.ErrConflict, "email already verified")
	ErrUserNotFound         = apierrors.New(apierrors.ErrNotFound, "user not found")
	ErrInvalidRole          = apierrors.New(apierrors.ErrInvalidInput, "role is not one you can choose")
)

// dummyHash is compared against when the email is unknown so both login failures
// cost one bcrypt comparison.
var dummyHash = sync.OnceValue(func() []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte("cannaconnect-dummy-password"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return hash
})

// AuthService handles authentication related business logic.
type AuthService struct {
	uow     repository.UnitOfWork
	tokens  *auth.TokenManager
	mailer  auth.Mailer
	metrics metrics.Recorder
	baseURL string
	admins  map[string]bool
}

// NewAuthService creates a new AuthService. baseURL prefixes verification links;
// accounts with one of adminEmails are given the Admin role.
func NewAuthService(uow repository.UnitOfWork, tokens *auth.TokenManager, mailer auth.Mailer, recorder metrics.Recorder, baseURL string, adminEmails []string) *AuthService {
	admins := make(map[string]bool, len(adminEmails))
	for _, email := range adminEmails {
		admins[normalizeEmail(email)] = true
	}
	return &AuthService{
		uow:     uow,
		tokens:  tokens,
		mailer:  mailer,
		metrics: recorder,
		baseURL: strings.TrimRight(baseURL, "/"),
		admins:  admins,
	}
}

// SignupInput represents the required information to create a new user. Role is
// optional and may be any role but Admin.
type SignupInput struct {
	Email    string
	Password string
	Name     string
	City     string
	State    string
	Role     string
}

// Signup creates a new user and sends the verification email.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*models.User, error) {
	email := normalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)
	if email == "" || input.Password == "" || name == "" {
		return nil, ErrSignupFieldsRequired
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if utf8.RuneCountInString(name) > constants.MaxNameLength {
		return nil, ErrNameTooLong
	}
	role, err := signupRole(input.Role)
	if err != nil {
		return nil, err
	}
	if s.admins[email] {
		role = models.RoleAdmin
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
		City:         strings.TrimSpace(input.City),
		State:        strings.TrimSpace(input.State),
	}

	err = s.uow.Do(ctx, func(repos repository.Repositories) error {
		if err := repos.Users.Create(user); err != nil {
			return insert(err, ErrEmailTaken, "user")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordAuthEvent(metrics.EventSignup)
	s.sendVerification(ctx, user)
	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult is a successful login: the user and a fresh token pair.
type LoginResult struct {
	User         *models.User
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Login verifies credentials and issues an access and a refresh token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := normalizeEmail(input.Email)

	var user *models.User
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		found, err := repos.Users.FindByEmail(email)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(input.Password))
			return ErrInvalidCredentials
		}
		if err != nil {
			return fmt.Errorf("failed to find user: %w", err)
		}

		if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(input.Password)); err != nil {
			return ErrInvalidCredentials
		}

		now := time.Now().UTC()
		fields := map[string]interface{}{"last_login": now}
		if s.admins[found.Email] && found.Role != models.RoleAdmin {
			fields["role"] = models.RoleAdmin
			found.Role = models.RoleAdmin
		}
		if err := repos.Users.UpdateFields(found.ID, fields); err != nil {
			return fmt.Errorf("failed to record login: %w", err)
		}
		found.LastLogin = &now
		user = found
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			s.metrics.RecordAuthEvent(metrics.EventLoginFailure)
		}
		return nil, err
	}

	access, accessClaims, err := s.tokens.Issue(user.ID, auth.TokenAccess)
	if err != nil {
		return nil, err
	}
	refresh, _, err := s.tokens.Issue(user.ID, auth.TokenRefresh)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordAuthEvent(metrics.EventLogin)
	return &LoginResult{
		User:         user,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    accessClaims.ExpiresAtTime(),
	}, nil
}

// Authenticate verifies a bearer token of the wanted type against the signature,
// expiry and revocation list.
func (s *AuthService) Authenticate(ctx context.Context, token string, want auth.TokenType) (*auth.Claims, error) {
	claims, err := s.tokens.Parse(token, want)
	if err != nil {
		return nil, ErrInvalidToken
	}

	err = s.uow.Do(ctx, func(repos repository.Repositories) error {
		revoked, err := repos.Tokens.IsRevoked(claims.ID)
		if err != nil {
			return fmt.Errorf("failed to check revocation: %w", err)
		}
		if revoked {
			return ErrTokenRevoked
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// Logout revokes the refresh token and, when given, the access token as well.
// An expired access token needs no revocation and is ignored.
func (s *AuthService) Logout(ctx context.Context, refresh *auth.Claims, accessToken string) error {
	var access *auth.Claims
	if accessToken = strings.TrimSpace(accessToken); accessToken != "" {
		parsed, err := s.tokens.Parse(accessToken, auth.TokenAccess)
		switch {
		case err == nil:
			if parsed.UserID != refresh.UserID {
				return ErrInvalidAccessToken
			}
			access = parsed
		case !errors.Is(err, auth.ErrExpired):
			return ErrInvalidAccessToken
		}
	}

	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		if err := repos.Tokens.Revoke(refresh.ID, refresh.ExpiresAtTime()); err != nil {
			return fmt.Errorf("failed to revoke refresh token: %w", err)
		}
		if access != nil {
			if err := repos.Tokens.Revoke(access.ID, access.ExpiresAtTime()); err != nil {
				return fmt.Errorf("failed to revoke access token: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.metrics.RecordAuthEvent(metrics.EventLogout)
	return nil
}

// Refresh issues a new access token for the identity of a verified refresh token.
func (s *AuthService) Refresh(ctx context.Context, refresh *auth.Claims) (string, time.Time, error) {
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		if _, err := repos.Users.FindByID(refresh.UserID); err != nil {
			return lookup(err, ErrInvalidToken, "user")
		}
		return nil
	})
	if err != nil {
		return "", time.Time{}, err
	}

	access, claims, err := s.tokens.Issue(refresh.UserID, auth.TokenAccess)
	if err != nil {
		return "", time.Time{}, err
	}

	s.metrics.RecordAuthEvent(metrics.EventRefresh)
	return access, claims.ExpiresAtTime(), nil
}

// VerifyEmail marks the token's user as verified. Verifying twice succeeds.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token, auth.TokenVerifyEmail)
	if err != nil {
		if errors.Is(err, auth.ErrExpired) {
			return ErrVerificationExpired
		}
		return ErrVerificationInvalid
	}

	err = s.uow.Do(ctx, func(repos repository.Repositories) error {
		user, err := repos.Users.FindByID(claims.UserID)
		if err != nil {
			return lookup(err, ErrVerificationInvalid, "user")
		}
		if user.IsVerified {
			return nil
		}
		if err := repos.Users.UpdateFields(user.ID, map[string]interface{}{"is_verified": true}); err != nil {
			return fmt.Errorf("failed to verify user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.metrics.RecordAuthEvent(metrics.EventVerifyEmail)
	return nil
}

// ResendVerification issues a new verification email for an unverified user.
func (s *AuthService) ResendVerification(ctx context.Context, userID uint64) error {
	var user *models.User
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		found, err := repos.Users.FindByID(userID)
		if err != nil {
			return lookup(err, ErrUserNotFound, "user")
		}
		if found.IsVerified {
			return ErrAlreadyVerified
		}
		user = found
		return nil
	})
	if err != nil {
		return err
	}

	s.sendVerification(ctx, user)
	return nil
}

// sendVerification mails a verification link. Delivery failures are logged; the
// user can ask for a new link.
func (s *AuthService) sendVerification(ctx context.Context, user *models.User) {
	log := logger.FromContext(ctx)

	token, _, err := s.tokens.Issue(user.ID, auth.TokenVerifyEmail)
	if err != nil {
		log.Error("Failed to issue verification token", zap.Uint64("user_id", user.ID), zap.Error(err))
		return
	}

	link := s.baseURL + "/verify-email/" + token
	if err := s.mailer.SendVerification(ctx, user.Email, user.Name, link); err != nil {
		log.Warn("Failed to send verification email", zap.Uint64("user_id", user.ID), zap.Error(err))
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// signupRole resolves the role picked at signup; empty means the default.
func signupRole(raw string) (models.Role, error) {
	if strings.TrimSpace(raw) == "" {
		return models.DefaultRole, nil
	}
	role, err := models.ParseRole(raw)
	if err != nil || !role.SelfAssignable() {
		return "", ErrInvalidRole
	}
	return role, nil
}
