package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/adiwinata/eventdesk/internal/domain/entity"
	repo "github.com/adiwinata/eventdesk/internal/domain/repository"
	"github.com/adiwinata/eventdesk/pkg/helpers"
	"github.com/adiwinata/eventdesk/pkg/mailer"
	mailtpl "github.com/adiwinata/eventdesk/pkg/mailer/templates"
)

// UserService owns account lifecycle and authentication. Sessions live in
// Redis as a hash keyed by user id; the session id inside the hash must
// match the sid claim of any presented token.
type UserService struct {
	Repo       repo.UserRepository
	JWT        *helpers.JWTManager
	Redis      *redis.Client
	Logger     *logrus.Logger
	SessionTTL time.Duration

	// Pub queues the welcome mail after signup; optional, never fails the
	// signup. AppName renders into the mail subject.
	Pub     Publisher
	AppName string
}

func NewUserService(r repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger, sessionTTL time.Duration, pub Publisher, appName string) *UserService {
	return &UserService{Repo: r, JWT: jwt, Redis: rdb, Logger: logger, SessionTTL: sessionTTL, Pub: pub, AppName: appName}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

type SignUpInput struct {
	FullName    string
	Email       string
	Password    string
	PhoneNumber string
	Role1       string
	Role2       string
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// SignUp creates an account with a bcrypt-hashed password. Role2 defaults to
// USER; an unrecognized role2 is rejected rather than silently granted.
func (s *UserService) SignUp(ctx context.Context, in SignUpInput) (*entity.User, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)
	if in.Role2 == "" {
		in.Role2 = entity.RoleUser
	}
	if !entity.ValidRole2(in.Role2) {
		return nil, wrapValidation("role2 must be ADMIN or USER")
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		FullName:    in.FullName,
		Email:       in.Email,
		Password:    hash,
		Role1:       in.Role1,
		Role2:       in.Role2,
		PhoneNumber: in.PhoneNumber,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}
	s.queueWelcome(ctx, u)
	return u, nil
}

func (s *UserService) queueWelcome(ctx context.Context, u *entity.User) {
	if s.Pub == nil {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data: map[string]any{
			"Name":    u.FullName,
			"Email":   u.Email,
			"AppName": s.AppName,
		},
	}
	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Pub.PublishJSON(c, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("queue welcome email failed")
	}
}

// Authenticate validates email/password. Unknown email and wrong password
// both return ErrInvalidCredentials with no distinguishing signal.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// IssueTokens generates an access/refresh pair and records the session in
// Redis. The role stored here is the server-side source of truth for
// authorization; client-supplied role claims are never consulted.
func (s *UserService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, err
	}

	if s.Redis != nil {
		key := helpers.SessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"name":       u.FullName,
			"role":       u.Role2,
			"sid":        sid,
			"created_at": nowRFC3339(),
		})
		pipe.Expire(ctx, key, s.SessionTTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*entity.User, TokenPair, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// Refresh rotates the session id and both tokens. The refresh token is only
// honored while its sid matches the active session.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}
	u, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil || u == nil {
		return TokenPair{}, ErrInvalidCredentials
	}
	if s.Redis != nil {
		data, rErr := s.Redis.HGetAll(ctx, helpers.SessionKey(u.ID)).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, ErrInvalidCredentials
		}
	}
	return s.IssueTokens(ctx, u)
}

// Logout drops the server-side session, invalidating outstanding tokens.
func (s *UserService) Logout(ctx context.Context, userID string) {
	s.dropSession(ctx, userID)
}

func (s *UserService) dropSession(ctx context.Context, userID string) {
	if s.Redis == nil || userID == "" {
		return
	}
	if err := s.Redis.Del(ctx, helpers.SessionKey(userID)).Err(); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("drop session failed")
	}
}

func (s *UserService) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context) ([]entity.User, error) {
	return s.Repo.List(ctx)
}

type UpdateUserInput struct {
	FullName    string
	Email       string
	Role1       string
	Role2       string
	PhoneNumber string
}

// UpdateUser applies the non-empty fields of in to the account. A changed
// role or email drops the target's session so stale authorization cannot
// outlive the change.
func (s *UserService) UpdateUser(ctx context.Context, id string, in UpdateUserInput) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	if in.Role2 != "" && !entity.ValidRole2(in.Role2) {
		return nil, wrapValidation("role2 must be ADMIN or USER")
	}
	if in.FullName != "" {
		u.FullName = strings.TrimSpace(in.FullName)
	}
	if in.Email != "" {
		u.Email = strings.TrimSpace(strings.ToLower(in.Email))
	}
	if in.Role1 != "" {
		u.Role1 = in.Role1
	}
	if in.Role2 != "" {
		u.Role2 = in.Role2
	}
	if in.PhoneNumber != "" {
		u.PhoneNumber = in.PhoneNumber
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	s.dropSession(ctx, u.ID)
	return u, nil
}

// UpdateRole changes only the authorization role.
func (s *UserService) UpdateRole(ctx context.Context, id, role2 string) (*entity.User, error) {
	if !entity.ValidRole2(role2) {
		return nil, wrapValidation("role2 must be ADMIN or USER")
	}
	u, err := s.Repo.UpdateRole(ctx, id, role2)
	if err != nil {
		return nil, err
	}
	s.dropSession(ctx, id)
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.dropSession(ctx, id)
	return nil
}
