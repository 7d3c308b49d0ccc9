package services

import (
	"artistsite/internal/database"
	"artistsite/internal/types"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	SESSION_CACHE_PREFIX = "session"
	SESSION_COOKIE_NAME  = "artist_session"
)

type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"userId,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

type SessionStore interface {
	Save(ctx context.Context, session *Session, ttl time.Duration) error
	// Get returns nil without error when the session does not exist.
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// SessionSweeper is implemented by stores that do not expire entries on
// their own.
type SessionSweeper interface {
	Sweep(now time.Time) int
}

type valkeySessionStore struct {
	cache database.CacheClient
}

func NewValkeySessionStore(cache database.CacheClient) SessionStore {
	return &valkeySessionStore{cache: cache}
}

func (v *valkeySessionStore) Save(ctx context.Context, session *Session, ttl time.Duration) error {
	return database.NewCacheBuilder(v.cache, session.ID).
		WithHash(SESSION_CACHE_PREFIX).
		WithStruct(session).
		WithTTL(ttl).
		WithContext(ctx).
		Set()
}

func (v *valkeySessionStore) Get(ctx context.Context, id string) (*Session, error) {
	var session Session
	found, err := database.NewCacheBuilder(v.cache, id).
		WithHash(SESSION_CACHE_PREFIX).
		WithContext(ctx).
		Get(&session)
	if err != nil || !found {
		return nil, err
	}
	return &session, nil
}

func (v *valkeySessionStore) Delete(ctx context.Context, id string) error {
	return database.NewCacheBuilder(v.cache, id).
		WithHash(SESSION_CACHE_PREFIX).
		WithContext(ctx).
		Delete()
}

type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]Session)}
}

func (m *MemorySessionStore) Save(ctx context.Context, session *Session, ttl time.Duration) error {
	if session.ID == "" {
		return errors.New("session id is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = *session
	return nil
}

func (m *MemorySessionStore) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

func (m *MemorySessionStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Sweep drops expired sessions and returns how many were removed.
func (m *MemorySessionStore) Sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, session := range m.sessions {
		if session.Expired(now) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

func (m *MemorySessionStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// SessionService issues signed session tokens. The token's jti names a
// record in the session store, so revoking the record ends the session even
// though the token itself is still well formed.
type SessionService struct {
	store      SessionStore
	signingKey []byte
	ttl        time.Duration
	now        func() time.Time
	log        logger.Logger
}

func NewSessionService(store SessionStore, signingKey string, ttl time.Duration) *SessionService {
	return &SessionService{
		store:      store,
		signingKey: []byte(signingKey),
		ttl:        ttl,
		now:        time.Now,
		log:        logger.New("sessionService"),
	}
}

func (s *SessionService) Store() SessionStore {
	return s.store
}

// Create stores a new session for identity and returns its signed token.
func (s *SessionService) Create(ctx context.Context, identity Identity) (string, *Session, error) {
	log := s.log.Function("Create")

	now := s.now().UTC()
	session := &Session{
		ID:        uuid.NewString(),
		UserID:    identity.UserID,
		Email:     identity.Email,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.store.Save(ctx, session, s.ttl); err != nil {
		return "", nil, log.Err("failed to save session", err)
	}

	claims := jwt.RegisteredClaims{
		ID:        session.ID,
		Subject:   identity.Email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", nil, log.Err("failed to sign session token", err)
	}

	return token, session, nil
}

// Validate resolves token to a live session. Any problem with the token or
// a missing record is reported as types.ErrAuth.
func (s *SessionService) Validate(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: no session", types.ErrAuth)
	}

	claims, err := s.parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrAuth, err)
	}

	session, err := s.store.Get(ctx, claims.ID)
	if err != nil {
		return nil, s.log.Function("Validate").Err("failed to read session", err)
	}
	if session == nil || session.Expired(s.now()) {
		return nil, fmt.Errorf("%w: session ended", types.ErrAuth)
	}

	return session, nil
}

// Revoke deletes the session behind token. Unknown or malformed tokens are
// ignored.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return nil
	}

	if err := s.store.Delete(ctx, claims.ID); err != nil {
		return s.log.Function("Revoke").Err("failed to delete session", err)
	}
	return nil
}

func (s *SessionService) parse(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(
		token,
		claims,
		func(t *jwt.Token) (any, error) { return s.signingKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}
	if claims.ID == "" {
		return nil, errors.New("token has no session id")
	}
	return claims, nil
}
