package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/supplychainlens/monitoring-api/internal/auth"
	"github.com/supplychainlens/monitoring-api/internal/constants"
	"github.com/supplychainlens/monitoring-api/internal/models"
	"github.com/supplychainlens/monitoring-api/internal/repository"
	"github.com/supplychainlens/monitoring-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// bcryptCost is the work factor for password hashing.
const bcryptCost = 12

var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToCreateUser   = errors.New("failed to create user")
	ErrFailedToCreateOrg    = errors.New("failed to create organization")
	ErrFailedToAddMember    = errors.New("failed to add user to organization")
	ErrFailedToIssueToken   = errors.New("failed to issue token")
)

// AuthService handles credential issuance: registration, login, logout.
type AuthService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	tokens      *auth.TokenManager
	sessionTTL  time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, tokens *auth.TokenManager, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		tokens:      tokens,
		sessionTTL:  sessionTTL,
	}
}

// Credentials is an issued token together with its server-side expiry.
type Credentials struct {
	Token     string
	ExpiresAt time.Time
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// Register creates a new user along with a personal organization and issues
// the first session token.
func (s *AuthService) Register(input RegisterInput) (*models.User, *Credentials, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, nil, fmt.Errorf("email is required")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Name:         strings.TrimSpace(input.Name),
		Role:         models.GlobalRoleUser,
		IsActive:     true,
	}

	orgName := fmt.Sprintf("%s's organization", user.Name)
	if user.Name == "" {
		orgName = fmt.Sprintf("%s's organization", email)
	}
	inviteCode, err := utils.GenerateInviteCode()
	if err != nil {
		return nil, nil, ErrFailedToCreateOrg
	}

	org := &models.Organization{
		Name:       orgName,
		InviteCode: inviteCode,
	}

	member := &models.OrganizationMember{
		Role:     models.RoleOwner,
		JoinedAt: time.Now(),
	}

	if err := s.userRepo.CreateWithPersonalOrganization(user, org, member); err != nil {
		switch {
		case errors.Is(err, repository.ErrCreateUser):
			return nil, nil, ErrFailedToCreateUser
		case errors.Is(err, repository.ErrCreateOrganization):
			return nil, nil, ErrFailedToCreateOrg
		case errors.Is(err, repository.ErrCreateOrganizationMember):
			return nil, nil, ErrFailedToAddMember
		default:
			return nil, nil, fmt.Errorf("failed to complete registration: %w", err)
		}
	}

	creds, err := s.issueSession(user)
	if err != nil {
		return nil, nil, err
	}

	return user, creds, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and issues a session token. Unknown email,
// inactive user and wrong password all return ErrInvalidCredentials so the
// caller cannot enumerate accounts.
func (s *AuthService) Login(input LoginInput) (*models.User, *Credentials, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !user.IsActive {
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	creds, err := s.issueSession(user)
	if err != nil {
		return nil, nil, err
	}

	return user, creds, nil
}

// Logout revokes the session backing the given token. The token's signature
// stays valid until its claim expiry, but without a session row every
// subsequent request is rejected.
func (s *AuthService) Logout(token string) error {
	return s.sessionRepo.DeleteByTokenHash(auth.HashToken(token))
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// issueSession signs a token and persists the session row in the same store
// the validator reads, so the very next request bearing this token succeeds.
func (s *AuthService) issueSession(user *models.User) (*Credentials, error) {
	token, err := s.tokens.Generate(user.ID, user.Email, s.sessionTTL)
	if err != nil {
		return nil, ErrFailedToIssueToken
	}

	expiresAt := time.Now().Add(s.sessionTTL)
	session := &models.Session{
		UserID:    user.ID,
		TokenHash: auth.HashToken(token),
		ExpiresAt: expiresAt,
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, ErrFailedToIssueToken
	}

	return &Credentials{Token: token, ExpiresAt: expiresAt}, nil
}
