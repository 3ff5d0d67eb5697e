package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/khairunnisaa/palmcode-api/internal/dto"
	"github.com/khairunnisaa/palmcode-api/internal/models"
	"github.com/khairunnisaa/palmcode-api/internal/repository"
	"github.com/khairunnisaa/palmcode-api/internal/validation"
	"github.com/khairunnisaa/palmcode-api/pkg/cache"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenName = "MyApp"

// TokenCache short-circuits the token table for recently seen tokens.
type TokenCache interface {
	Get(ctx context.Context, hash string) (cache.Entry, bool, error)
	Set(ctx context.Context, hash string, e cache.Entry) error
}

// IssuedToken is a freshly minted plain-text token and its owner.
type IssuedToken struct {
	Token string
	User  *models.User
}

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*IssuedToken, error)
	Login(ctx context.Context, req dto.LoginRequest) (*IssuedToken, error)
	Authenticate(ctx context.Context, plain string) (*models.User, error)
}

type authService struct {
	users      repository.UserRepository
	tokens     repository.TokenRepository
	cache      TokenCache
	bcryptCost int
	now        func() time.Time
}

func NewAuthService(users repository.UserRepository, tokens repository.TokenRepository, cache TokenCache) AuthService {
	return &authService{
		users:      users,
		tokens:     tokens,
		cache:      cache,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*IssuedToken, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	errs := validation.Struct(req)
	if errs == nil {
		errs = validation.Errors{}
	}
	if !errs.Has("email") {
		taken, err := s.users.EmailTaken(ctx, req.Email)
		if err != nil {
			return nil, fmt.Errorf("check user email: %w", err)
		}
		if taken {
			errs.Add("email", "The email has already been taken.")
		}
	}
	if err := invalid(errs); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{Name: req.Name, Email: req.Email, Password: string(hash)}
	var plain string
	err = s.users.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.users.Create(ctx, tx, user); err != nil {
			return err
		}
		var mintErr error
		plain, mintErr = s.mint(ctx, tx, user)
		return mintErr
	})
	if err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}

	return &IssuedToken{Token: plain, User: user}, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*IssuedToken, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	plain, err := s.mint(ctx, s.users.GetDB(), user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &IssuedToken{Token: plain, User: user}, nil
}

// Authenticate resolves a plain-text bearer token to its user and stamps
// the token's last use.
func (s *authService) Authenticate(ctx context.Context, plain string) (*models.User, error) {
	tokenID, secret := SplitToken(plain)
	if secret == "" {
		return nil, ErrUnauthenticated
	}
	hash := HashToken(secret)

	entry, ok := s.cached(ctx, hash)
	if !ok {
		token, err := s.tokens.FindByHash(ctx, hash)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthenticated
		}
		if err != nil {
			return nil, fmt.Errorf("find token: %w", err)
		}
		entry = cache.Entry{TokenID: token.ID, UserID: token.UserID}
		if s.cache != nil {
			if err := s.cache.Set(ctx, hash, entry); err != nil {
				slog.Warn("cache token failed", "error", err)
			}
		}
	}
	if tokenID != 0 && tokenID != entry.TokenID {
		return nil, ErrUnauthenticated
	}

	user, err := s.users.FindByID(ctx, entry.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("find token user: %w", err)
	}

	if err := s.tokens.Touch(ctx, entry.TokenID, s.now()); err != nil {
		slog.Warn("stamp token last use failed", "token_id", entry.TokenID, "error", err)
	}
	return user, nil
}

func (s *authService) cached(ctx context.Context, hash string) (cache.Entry, bool) {
	if s.cache == nil {
		return cache.Entry{}, false
	}
	entry, ok, err := s.cache.Get(ctx, hash)
	if err != nil {
		slog.Warn("token cache lookup failed", "error", err)
		return cache.Entry{}, false
	}
	return entry, ok
}

func (s *authService) mint(ctx context.Context, tx *gorm.DB, user *models.User) (string, error) {
	secret, err := randomSecret()
	if err != nil {
		return "", err
	}
	token := &models.PersonalAccessToken{
		UserID: user.ID,
		Name:   tokenName,
		Token:  HashToken(secret),
	}
	if err := s.tokens.Create(ctx, tx, token); err != nil {
		return "", err
	}
	return fmt.Sprintf("%d|%s", token.ID, secret), nil
}

// SplitToken separates an optional "<id>|" prefix from the secret.
func SplitToken(plain string) (uint, string) {
	plain = strings.TrimSpace(plain)
	idPart, secret, found := strings.Cut(plain, "|")
	if !found {
		return 0, plain
	}
	id, err := strconv.ParseUint(idPart, 10, 64)
	if err != nil {
		return 0, ""
	}
	return uint(id), secret
}

func HashToken(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

func randomSecret() (string, error) {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
