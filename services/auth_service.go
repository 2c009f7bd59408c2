package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"realty/constants"
	"realty/dto"
	"realty/errors"
	"realty/models"
	"realty/services/logger"
)

const sessionTTL = 3 * 24 * time.Hour

// AuthService is the identity/session store. Tokens are minted by the
// external identity service; this store keeps the opaque token plus a
// minimal session payload per session id and eagerly loads the detailed
// profile after login and registration.
type AuthService struct {
	client *BackendClient
	rdb    *redis.Client
	log    logger.Logger
}

type AuthServiceOptions struct {
	Client *BackendClient
	Redis  *redis.Client
	Logger logger.Logger
}

func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Logger == nil {
		opts.Logger = logger.NewDefaultLogger(logger.InfoLevel)
	}
	return &AuthService{
		client: opts.Client,
		rdb:    opts.Redis,
		log:    opts.Logger,
	}
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

// Login authenticates, persists the session payload and eagerly loads
// the current-user profile with the user's own reservations.
func (s *AuthService) Login(ctx context.Context, sessionID string, req dto.LoginRequest) (dto.LoginResponse, *models.CurrentUser, error) {
	resp, err := s.client.Login(ctx, req)
	if err != nil {
		return dto.LoginResponse{}, nil, errors.NewAppError(errors.ErrCodeLoginFailed, "login failed", err)
	}

	session := dto.Session{
		Token:    resp.Token,
		UserName: resp.UserName,
		UserRole: resp.UserRole,
	}
	if err := SetToRedis(ctx, s.rdb, sessionKey(sessionID), session, sessionTTL); err != nil {
		s.log.Error("store session %s: %v", sessionID, err)
	}

	profile, err := s.FetchCurrentUser(ctx, resp.Token)
	if err != nil {
		// Login succeeded; the profile can be loaded again later.
		s.log.Error("eager profile load: %v", err)
		return resp, nil, nil
	}
	return resp, profile, nil
}

// Register creates an account and runs the same post-steps as login.
func (s *AuthService) Register(ctx context.Context, sessionID string, req dto.RegisterRequest) (dto.RegisterResponse, *models.CurrentUser, error) {
	resp, err := s.client.Register(ctx, req)
	if err != nil {
		return dto.RegisterResponse{}, nil, errors.NewAppError(errors.ErrCodeLoginFailed, "registration failed", err)
	}

	session := dto.Session{
		Token:    resp.Token,
		UserName: resp.UserName,
		UserRole: resp.UserRole,
	}
	if err := SetToRedis(ctx, s.rdb, sessionKey(sessionID), session, sessionTTL); err != nil {
		s.log.Error("store session %s: %v", sessionID, err)
	}

	profile, err := s.FetchCurrentUser(ctx, resp.Token)
	if err != nil {
		s.log.Error("eager profile load: %v", err)
		return resp, nil, nil
	}
	return resp, profile, nil
}

// Logout clears the local session only; the token itself is not
// invalidated server-side.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return DeleteFromRedis(ctx, s.rdb, sessionKey(sessionID))
}

// Session loads the stored session payload, if any.
func (s *AuthService) Session(ctx context.Context, sessionID string) (*dto.Session, error) {
	var session dto.Session
	if err := GetFromRedis(ctx, s.rdb, sessionKey(sessionID), &session); err != nil {
		return nil, err
	}
	if session.Token == "" {
		return nil, nil
	}
	return &session, nil
}

// FetchCurrentUser loads the profile including owned reservations.
func (s *AuthService) FetchCurrentUser(ctx context.Context, token string) (*models.CurrentUser, error) {
	profile, err := s.client.GetProfile(ctx, token)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile edits the mutable profile fields, then reloads the
// profile so the session view reflects the authoritative state.
func (s *AuthService) UpdateProfile(ctx context.Context, token string, req dto.ProfileUpdateRequest) (*models.CurrentUser, error) {
	if _, err := s.client.UpdateProfile(ctx, token, req); err != nil {
		return nil, err
	}
	return s.FetchCurrentUser(ctx, token)
}

// GetAllUsers lists every account. Admin views only.
func (s *AuthService) GetAllUsers(ctx context.Context, token string) ([]models.User, error) {
	return s.client.GetAllUsers(ctx, token)
}

// IsAdmin derives the admin flag from the role claim in the token.
func (s *AuthService) IsAdmin(token string) bool {
	_, role, err := GetUserFromToken(token)
	if err != nil {
		return false
	}
	return role == constants.RoleAdmin
}
