package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	errorspkg "bazarlyq-main/internal/types/errors"
)

type SessionRepository struct {
	RedisClient  *redis.Client
	Logger       *zap.SugaredLogger
	tokenSecret  string
	baseDuration time.Duration
}

func NewSessionRepository(
	redisClient *redis.Client,
	logger *zap.SugaredLogger,
	tokenSecret string,
	baseDuration time.Duration,
) *SessionRepository {
	return &SessionRepository{
		RedisClient:  redisClient,
		Logger:       logger,
		tokenSecret:  tokenSecret,
		baseDuration: baseDuration,
	}
}

func (sr *SessionRepository) CreateSession(
	ctx context.Context,
	profileID string,
	email string,
) (*Session, string, error) {
	now := time.Now()

	// Создаём новую сессию
	session := &Session{
		ID:        uuid.New().String(),
		ProfileID: profileID,
		StartTime: now,
		EndTime:   now.Add(sr.baseDuration),
	}

	if err := sr.saveSessionToRedis(ctx, session); err != nil {
		// Логируется внутри saveSessionToRedis
		return nil, "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email":      email,
		"profileId":  profileID,
		"iat":        session.StartTime.Unix(),
		"exp":        session.EndTime.Unix(),
		"session_id": session.ID,
	})

	tokenStr, err := token.SignedString([]byte(sr.tokenSecret))
	if err != nil {
		sr.Logger.Error("Failed to sign JWT token", zap.Error(err))
		return nil, "", fmt.Errorf("error signing token: %w", err)
	}

	sr.Logger.Infof("Session %s created for profile %s", session.ID, profileID)
	return session, tokenStr, nil
}

func (sr *SessionRepository) CheckSession(r *http.Request) (*Session, error) {
	const bearerPrefix = "Bearer "

	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return nil, errorspkg.ErrNoAuth
	}
	tokenStr := strings.TrimPrefix(authHeader, bearerPrefix)

	// Разбор токена
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			sr.Logger.Warnf("Unexpected signing method: %v", token.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(sr.tokenSecret), nil
	})
	if err != nil || !token.Valid {
		sr.Logger.Warnf("Invalid JWT token: %v", err)
		return nil, errorspkg.ErrNoAuth
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errorspkg.ErrNoAuth
	}
	sessionID, ok := claims["session_id"].(string)
	if !ok {
		sr.Logger.Warn("session_id claim is missing or not a string")
		return nil, errorspkg.ErrNoAuth
	}

	ctx := r.Context()
	session, err := sr.getSessionFromRedis(ctx, sessionID)
	if err != nil {
		return nil, err // уже логируется внутри
	}

	if time.Now().After(session.EndTime) {
		_ = sr.RedisClient.Del(ctx, sessionKey(sessionID)).Err() // nolint:errcheck
		return nil, errorspkg.ErrSessionIsExpired
	}

	return session, nil
}

func (sr *SessionRepository) ExtendSession(ctx context.Context, sessionID string) error {
	session, err := sr.getSessionFromRedis(ctx, sessionID)
	if err != nil {
		// Все логирование происходит внутри getSessionFromRedis
		return err
	}

	session.EndTime = time.Now().Add(sr.baseDuration)

	if err = sr.saveSessionToRedis(ctx, session); err != nil {
		sr.Logger.Error(
			"Failed update session end time",
			zap.Error(err),
			zap.String("sessionID", sessionID),
		)

		return err
	}

	return nil
}

func (sr *SessionRepository) DestroySession(ctx context.Context, sessionID string) error {
	deleted, err := sr.RedisClient.Del(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		sr.Logger.Error(
			"Failed delete session from Redis",
			zap.Error(err),
			zap.String("sessionID", sessionID),
		)

		return err
	}
	if deleted == 0 {
		return errorspkg.ErrSessionNotFound
	}

	return nil
}

func (sr *SessionRepository) saveSessionToRedis(ctx context.Context, session *Session) error {
	sessionDataJSON, err := json.Marshal(session)
	if err != nil {
		sr.Logger.Error(
			"Failed encode session to JSON",
			zap.Error(err),
			zap.String("sessionID", session.ID),
		)

		return err
	}

	err = sr.RedisClient.Set(ctx, sessionKey(session.ID), sessionDataJSON, sr.baseDuration).Err()
	if err != nil {
		sr.Logger.Error(
			"Failed save session to Redis",
			zap.Error(err),
			zap.String("sessionID", session.ID),
		)

		return err
	}

	return nil
}

func (sr *SessionRepository) getSessionFromRedis(ctx context.Context, sessionID string) (*Session, error) {
	sessionDataJSON, err := sr.RedisClient.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			sr.Logger.Warnf("Session %s not found in Redis", sessionID)
			return nil, errorspkg.ErrSessionNotFound
		}
		sr.Logger.Error(
			"Failed get session from Redis",
			zap.Error(err),
			zap.String("sessionID", sessionID),
		)

		return nil, err
	}

	var session Session
	if err = json.Unmarshal(sessionDataJSON, &session); err != nil {
		sr.Logger.Error(
			"Failed decode session from JSON",
			zap.Error(err),
			zap.String("sessionID", sessionID),
		)

		return nil, err
	}

	return &session, nil
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}
