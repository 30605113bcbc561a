// Package auth provides HMAC-based API key authentication for the gRPC
// service and key issuing for the CLI.
package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/AkkiPaul2000/Screening-Ontology/internal/core/logging"
	"github.com/AkkiPaul2000/Screening-Ontology/internal/types"
)

// MetadataKey is the gRPC metadata entry carrying the API key.
const MetadataKey = "x-api-key"

type contextKey string

const ownerKey = contextKey("owner")

// Queries is the subset of *db.Queries used here.
type Queries interface {
	Get(ctx context.Context, name string, dest interface{}, args ...interface{}) error
	Select(ctx context.Context, name string, dest interface{}, args ...interface{}) error
	Exec(ctx context.Context, name string, args ...interface{}) (sql.Result, error)
}

// APIKey is a stored key. The key itself is never stored, only its HMAC.
type APIKey struct {
	ID         string     `db:"api_key_id"`
	SecretID   string     `db:"secret_id"`
	Owner      string     `db:"owner"`
	KeyHash    string     `db:"key_hash"`
	CreatedAt  time.Time  `db:"created_at"`
	LastUsedAt *time.Time `db:"last_used_at"`
	RevokedAt  *time.Time `db:"revoked_at"`
}

// Authenticator validates API keys against stored HMACs.
type Authenticator struct {
	secrets map[string][]byte
	queries Queries
	logger  *zap.Logger
}

// NewAuthenticator creates an authenticator over secret_id -> secret.
func NewAuthenticator(secrets map[string][]byte, queries Queries, logger *zap.Logger) *Authenticator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Authenticator{secrets: secrets, queries: queries, logger: logger}
}

// Authenticate validates apiKey and returns its owner.
func (a *Authenticator) Authenticate(ctx context.Context, apiKey string) (string, error) {
	secretID, _, err := ParseAPIKey(apiKey)
	if err != nil {
		return "", err
	}

	secret, ok := a.secrets[secretID]
	if !ok {
		return "", ErrUnknownKey
	}

	var key APIKey
	err = a.queries.Get(ctx, "get-api-key-by-hash", &key, KeyHash(secret, apiKey))
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrInvalidKey
	}
	if err != nil {
		return "", fmt.Errorf("database error: %w", err)
	}

	if key.RevokedAt != nil {
		return "", ErrKeyRevoked
	}

	// Throttled to one write per minute per key.
	if key.LastUsedAt == nil || time.Since(*key.LastUsedAt) > time.Minute {
		if _, err := a.queries.Exec(ctx, "touch-api-key", time.Now().UTC(), key.ID); err != nil {
			a.logger.Warn("failed to record key use", zap.String("api_key_id", key.ID), zap.Error(err))
		}
	}

	return key.Owner, nil
}

// Create issues a new key for owner signed with the given secret and returns
// the stored record with the plaintext key. The plaintext is not kept.
func (a *Authenticator) Create(ctx context.Context, owner, secretID string) (*APIKey, string, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, "", ErrOwnerRequired
	}
	secret, ok := a.secrets[secretID]
	if !ok {
		return nil, "", ErrUnknownKey
	}

	plaintext, err := GenerateAPIKey(secretID)
	if err != nil {
		return nil, "", err
	}

	key := &APIKey{
		ID:        types.NewNodeID(),
		SecretID:  secretID,
		Owner:     owner,
		KeyHash:   KeyHash(secret, plaintext),
		CreatedAt: time.Now().UTC(),
	}
	if _, err := a.queries.Exec(ctx, "insert-api-key", key.ID, key.SecretID, key.Owner, key.KeyHash, key.CreatedAt); err != nil {
		return nil, "", fmt.Errorf("store api key: %w", err)
	}

	a.logger.Info("api key created",
		zap.String("api_key_id", key.ID),
		zap.String("owner", owner),
		zap.String("key", logging.RedactKey(plaintext)))
	return key, plaintext, nil
}

// Revoke blocks the key with id. Revoking twice reports ErrKeyNotFound.
func (a *Authenticator) Revoke(ctx context.Context, id string) error {
	res, err := a.queries.Exec(ctx, "revoke-api-key", time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("revoke api key %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("revoke api key %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrKeyNotFound, id)
	}
	a.logger.Info("api key revoked", zap.String("api_key_id", id))
	return nil
}

// List returns all stored keys, oldest first.
func (a *Authenticator) List(ctx context.Context) ([]APIKey, error) {
	var keys []APIKey
	if err := a.queries.Select(ctx, "list-api-keys", &keys); err != nil {
		return nil, fmt.Errorf("list api keys: %w", err)
	}
	return keys, nil
}

// UnaryInterceptor authenticates every call except those whose full method
// starts with one of the skip prefixes (e.g. the health service).
func (a *Authenticator) UnaryInterceptor(skip ...string) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		for _, prefix := range skip {
			if strings.HasPrefix(info.FullMethod, prefix) {
				return handler(ctx, req)
			}
		}

		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}
		apiKeys := md.Get(MetadataKey)
		if len(apiKeys) == 0 {
			return nil, status.Error(codes.Unauthenticated, ErrMissingKey.Error())
		}

		owner, err := a.Authenticate(ctx, apiKeys[0])
		if err != nil {
			a.logger.Debug("authentication failed",
				zap.String("method", info.FullMethod),
				zap.String("key", logging.RedactKey(apiKeys[0])),
				zap.Error(err))
			switch {
			case errors.Is(err, ErrKeyRevoked):
				return nil, status.Error(codes.PermissionDenied, err.Error())
			case errors.Is(err, ErrMissingKey), errors.Is(err, ErrInvalidKeyFormat),
				errors.Is(err, ErrUnknownKey), errors.Is(err, ErrInvalidKey):
				return nil, status.Error(codes.Unauthenticated, err.Error())
			default:
				return nil, status.Error(codes.Unavailable, err.Error())
			}
		}

		return handler(WithOwner(ctx, owner), req)
	}
}

// WithOwner returns ctx carrying the authenticated key owner.
func WithOwner(ctx context.Context, owner string) context.Context {
	return context.WithValue(ctx, ownerKey, owner)
}

// OwnerFromContext returns the authenticated key owner, or "".
func OwnerFromContext(ctx context.Context) string {
	if owner, ok := ctx.Value(ownerKey).(string); ok {
		return owner
	}
	return ""
}
