package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	userRepo "tourbook/database/repository/user"
	"tourbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const sessionKey = "session"

var (
	ErrUnauthenticated = errors.New("Insufficient authorization")
	ErrTokenMismatch   = errors.New("Token mismatch")
)

// Session is the authenticated caller of one request.
type Session struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
}

type cachedSession struct {
	TokenHash string  `json:"token_hash"`
	Session   Session `json:"session"`
}

// SessionStore resolves bearer tokens to sessions. The user record holds the
// hash of the only live token; Redis caches the lookup for AuthCacheTTL.
type SessionStore struct {
	cache *redis.Client
	users userRepo.UserRepository
}

// NewSessionStore accepts a nil cache, in which case every request reads the user record.
func NewSessionStore(cache *redis.Client, users userRepo.UserRepository) *SessionStore {
	return &SessionStore{cache: cache, users: users}
}

func cacheKey(userID string) string {
	return utils.AuthCachePrefix + userID
}

// Load validates the token and returns the session it belongs to.
func (s *SessionStore) Load(ctx context.Context, token string) (*Session, error) {
	userID, err := utils.ExtractIDFromToken(token)
	if err != nil || userID == "" {
		return nil, ErrUnauthenticated
	}
	hash := utils.HashToken(token)

	if s.cache != nil {
		raw, err := s.cache.Get(ctx, cacheKey(userID)).Bytes()
		switch {
		case err == nil:
			var cached cachedSession
			if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
				if cached.TokenHash != hash {
					return nil, ErrTokenMismatch
				}
				_ = s.cache.Expire(ctx, cacheKey(userID), utils.AuthCacheTTL).Err()
				return &cached.Session, nil
			}
		case err != redis.Nil:
			utils.GetLogger().Warn("Auth cache read failed, falling back to DB", zap.Error(err))
		}
	}

	u, err := s.users.GetByID(userID)
	if err != nil || u == nil {
		return nil, ErrUnauthenticated
	}
	if u.TokenHash == "" || u.TokenHash != hash {
		return nil, ErrTokenMismatch
	}
	sess := &Session{UserID: u.ID, Email: u.Email, Name: u.Name, IsAdmin: u.IsAdmin}

	if s.cache != nil {
		if raw, err := json.Marshal(cachedSession{TokenHash: hash, Session: *sess}); err == nil {
			if err := s.cache.Set(ctx, cacheKey(userID), raw, utils.AuthCacheTTL).Err(); err != nil {
				utils.GetLogger().Warn("Auth cache write failed", zap.Error(err))
			}
		}
	}
	return sess, nil
}

// Clear drops the cached session so the next request re-reads the user.
func (s *SessionStore) Clear(ctx context.Context, userID string) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Del(ctx, cacheKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear session of %s: %w", userID, err)
	}
	return nil
}

// SessionFrom returns the session stored by JWTAuthMiddleware.
func SessionFrom(c *gin.Context) (*Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*Session)
	return sess, ok && sess != nil
}

// WithSession stores a session in the context.
func WithSession(c *gin.Context, sess *Session) {
	c.Set(sessionKey, sess)
	c.Set("userID", sess.UserID)
}
