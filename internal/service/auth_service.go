package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/restaurant-reservation/internal/metrics"
	"github.com/iliyamo/restaurant-reservation/internal/model"
	"github.com/iliyamo/restaurant-reservation/internal/repository"
	"github.com/iliyamo/restaurant-reservation/internal/utils"
)

// UserStore is the credential store used by AuthService.  Lookups return
// repository.ErrNotFound for missing users and Create returns
// repository.ErrEmailExists for duplicate emails.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// AuthConfig holds the session signing parameters.
type AuthConfig struct {
	Secret     string
	SessionTTL time.Duration
	BcryptCost int
}

// AuthService registers and authenticates users and issues and resolves
// session tokens.
type AuthService struct {
	users   UserStore
	cfg     AuthConfig
	metrics metrics.Recorder
	log     *zap.Logger
}

func NewAuthService(users UserStore, cfg AuthConfig, rec metrics.Recorder, log *zap.Logger) *AuthService {
	if users == nil {
		panic("nil user store passed to NewAuthService")
	}
	if rec == nil {
		rec = metrics.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{users: users, cfg: cfg, metrics: rec, log: log}
}

// Register validates in, hashes the password and stores a new non-admin user.
func (s *AuthService) Register(ctx context.Context, in SignupInput) (model.User, error) {
	u, err := s.create(ctx, in, false)
	if err != nil {
		return model.User{}, err
	}
	s.metrics.RecordSignup()
	s.log.Info("user registered", zap.Uint64("user_id", u.ID))
	return u, nil
}

// SeedAdmin creates an admin user from in unless a user with that email
// already exists, in which case the existing user is returned and created
// is false.
func (s *AuthService) SeedAdmin(ctx context.Context, in SignupInput) (u model.User, created bool, err error) {
	in.trim()
	existing, err := s.users.GetByEmail(ctx, in.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return model.User{}, false, ErrInternal("lookup admin", err)
	}
	u, err = s.create(ctx, in, true)
	if err != nil {
		return model.User{}, false, err
	}
	return u, true, nil
}

func (s *AuthService) create(ctx context.Context, in SignupInput, admin bool) (model.User, error) {
	in.trim()
	if in.missingField() {
		return model.User{}, ErrValidation(MsgMissingFields)
	}
	if err := validateSignup(in); err != nil {
		return model.User{}, err
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return model.User{}, ErrConflict(MsgEmailTaken)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return model.User{}, ErrInternal("lookup email", err)
	}

	hash, err := utils.HashPassword(in.Password, s.cfg.BcryptCost)
	if err != nil {
		return model.User{}, ErrInternal("hash password", err)
	}
	u := model.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
		IsAdmin:      admin,
	}
	if err := s.users.Create(ctx, &u); err != nil {
		// A concurrent signup can win the race past the lookup above.
		if errors.Is(err, repository.ErrEmailExists) {
			return model.User{}, ErrConflict(MsgEmailTaken)
		}
		if verr, ok := storeValidation(err); ok {
			return model.User{}, verr
		}
		return model.User{}, ErrInternal("create user", err)
	}
	return u, nil
}

// Authenticate checks email and password.  Unknown emails and wrong
// passwords produce the same error, and both run a bcrypt comparison.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return model.User{}, ErrValidation(MsgMissingLogin)
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return model.User{}, ErrInternal("lookup user", err)
		}
		utils.BurnPassword(password, s.cfg.BcryptCost)
		s.metrics.RecordLogin(false)
		return model.User{}, ErrAuth(MsgBadCredentials)
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		s.metrics.RecordLogin(false)
		return model.User{}, ErrAuth(MsgBadCredentials)
	}
	s.metrics.RecordLogin(true)
	return u, nil
}

// AuthenticateAdmin is Authenticate followed by an admin check.  The
// password is verified first so the admin flag is never revealed to a
// caller who does not know it.
func (s *AuthService) AuthenticateAdmin(ctx context.Context, email, password string) (model.User, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return model.User{}, err
	}
	if !u.IsAdmin {
		return model.User{}, ErrForbidden(MsgAdminRequired)
	}
	return u, nil
}

// IssueSession signs a session token for u.
func (s *AuthService) IssueSession(u model.User) (utils.SessionToken, error) {
	tok, err := utils.NewSessionToken(s.cfg.Secret, u.ID, s.cfg.SessionTTL)
	if err != nil {
		return utils.SessionToken{}, ErrInternal("sign session", err)
	}
	return tok, nil
}

// ResolveSession verifies token and loads the user it was issued for.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (model.User, error) {
	if token == "" {
		return model.User{}, ErrAuth(MsgLoginRequired)
	}
	id, err := utils.ParseSessionToken(s.cfg.Secret, token)
	if err != nil {
		return model.User{}, ErrAuth(MsgInvalidToken)
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.User{}, ErrAuth(MsgInvalidToken)
		}
		return model.User{}, ErrInternal("load session user", err)
	}
	return u, nil
}
