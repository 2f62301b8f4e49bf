package service

import (
	"calibration_quiz/internal/config"
	"calibration_quiz/internal/model"
	"calibration_quiz/internal/repository"
	"calibration_quiz/internal/util"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Sessions repository.SessionRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, sessions repository.SessionRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Sessions: sessions,
		Cfg:      cfg,
	}
}

// RegisterInput carries the optional profile fields alongside the credentials.
type RegisterInput struct {
	Username       string
	Email          string
	Password       string
	FirstName      *string
	LastName       *string
	DateOfBirth    *time.Time
	ProfilePicture *string
	Preferences    map[string]any
}

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	SessionID   string `json:"-"`
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	taken, err := s.UserRepo.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, util.ErrUsernameTaken
	}

	_, err = s.UserRepo.FindByEmail(ctx, in.Email)
	if err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, util.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:       in.Username,
		Email:          in.Email,
		HashedPassword: string(hashed),
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		DateOfBirth:    in.DateOfBirth,
		ProfilePicture: in.ProfilePicture,
	}
	if in.Preferences != nil {
		prefs, err := json.Marshal(in.Preferences)
		if err != nil {
			return nil, err
		}
		user.Preferences = datatypes.JSON(prefs)
	}

	if err := s.UserRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks a username/password pair. Unknown users and wrong
// passwords are indistinguishable to the caller.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.UserRepo.FindByUsername(ctx, username)
	if errors.Is(err, util.ErrUserNotFound) {
		return nil, util.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}
	return user, nil
}

// Login issues a bearer token and opens a server-side session.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	token, err := util.GenerateJWT(user.Username, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}

	sessionID := uuid.NewString()
	session := &repository.Session{
		IsAuthenticated: true,
		Username:        user.Username,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.Sessions.Save(ctx, sessionID, session, s.Cfg.Session.MaxAge); err != nil {
		return nil, err
	}

	return &LoginResult{AccessToken: token, TokenType: "bearer", SessionID: sessionID}, nil
}

// Logout drops the session. Unknown ids are not an error.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.Sessions.Delete(ctx, sessionID)
}

// IdentityFromSession resolves a session cookie value.
func (s *AuthService) IdentityFromSession(ctx context.Context, sessionID string) (util.Identity, error) {
	session, err := s.Sessions.Find(ctx, sessionID)
	if err != nil {
		return util.Anonymous(), err
	}
	if !session.IsAuthenticated || session.Username == "" {
		return util.Anonymous(), nil
	}
	return util.Authenticated(session.Username), nil
}

// IdentityFromToken resolves a bearer token.
func (s *AuthService) IdentityFromToken(token string) (util.Identity, error) {
	claims, err := util.ParseJWT(token, s.Cfg.JWT.Secret)
	if err != nil {
		return util.Anonymous(), err
	}
	return util.Authenticated(claims.Username), nil
}
