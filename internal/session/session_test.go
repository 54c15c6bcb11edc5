package session

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dgrijalva/jwt-go"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"bazarlyq-main/internal/types/errors"
)

func setupTestRepo(t *testing.T) (*SessionRepository, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	assert.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	logger := zaptest.NewLogger(t).Sugar()
	repo := NewSessionRepository(rdb, logger, "secret", 15*time.Minute)

	return repo, mr
}

func generateJWT(t *testing.T, secret, sessionID, profileID string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"profileId":  profileID,
		"iat":        time.Now().Unix(),
		"exp":        time.Now().Add(10 * time.Minute).Unix(),
		"session_id": sessionID,
	})
	tokenStr, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)

	return tokenStr
}

func TestCreateSession(t *testing.T) {
	repo, mr := setupTestRepo(t)
	defer mr.Close()

	sess, tokenStr, err := repo.CreateSession(context.Background(), "p-42", "aidar@example.com")
	assert.NoError(t, err)
	assert.NotNil(t, sess)
	assert.Equal(t, "p-42", sess.ProfileID)
	assert.NotEmpty(t, tokenStr)

	// Проверка записи в Redis
	val, err := mr.Get(sessionKey(sess.ID))
	assert.NoError(t, err)
	assert.NotEmpty(t, val)
}

func TestCheckSession_Success(t *testing.T) {
	repo, mr := setupTestRepo(t)
	defer mr.Close()

	sessionData := Session{
		ID:        "session-1",
		ProfileID: "p-42",
		StartTime: time.Now().Add(-5 * time.Minute),
		EndTime:   time.Now().Add(10 * time.Minute),
	}
	data, _ := json.Marshal(sessionData)            // nolint:errcheck
	mr.Set(sessionKey("session-1"), string(data))   // nolint:errcheck

	tokenStr := generateJWT(t, "secret", sessionData.ID, sessionData.ProfileID)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+tokenStr)

	sess, err := repo.CheckSession(req)
	assert.NoError(t, err)
	assert.Equal(t, "p-42", sess.ProfileID)
}

func TestCheckSession_NoHeader(t *testing.T) {
	repo, mr := setupTestRepo(t)
	defer mr.Close()

	req := httptest.NewRequest("GET", "/", nil)

	_, err := repo.CheckSession(req)
	assert.ErrorIs(t, err, errors.ErrNoAuth)
}

func TestCheckSession_BadSecret(t *testing.T) {
	repo, mr := setupTestRepo(t)
	defer mr.Close()

	tokenStr := generateJWT(t, "wrong-secret", "session-1", "p-42")

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+tokenStr)

	_, err := repo.CheckSession(req)
	assert.ErrorIs(t, err, errors.ErrNoAuth)
}

func TestCheckSession_Expired(t *testing.T) {
	repo, mr := setupTestRepo(t)
	defer mr.Close()

	sessionData := Session{
		ID:        "session-old",
		ProfileID: "p-42",
		StartTime: time.Now().Add(-30 * time.Minute),
		EndTime:   time.Now().Add(-15 * time.Minute),
	}
	data, _ := json.Marshal(sessionData)            // nolint:errcheck
	mr.Set(sessionKey("session-old"), string(data)) // nolint:errcheck

	tokenStr := generateJWT(t, "secret", sessionData.ID, sessionData.ProfileID)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+tokenStr)

	_, err := repo.CheckSession(req)
	assert.ErrorIs(t, err, errors.ErrSessionIsExpired)

	// Просроченная сессия удаляется
	assert.False(t, mr.Exists(sessionKey("session-old")))
}

func TestCheckSession_NotInRedis(t *testing.T) {
	repo, mr := setupTestRepo(t)
	defer mr.Close()

	tokenStr := generateJWT(t, "secret", "session-ghost", "p-42")

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+tokenStr)

	_, err := repo.CheckSession(req)
	assert.ErrorIs(t, err, errors.ErrSessionNotFound)
}

func TestExtendSession(t *testing.T) {
	repo, mr := setupTestRepo(t)
	defer mr.Close()

	sessionData := Session{
		ID:        "session-2",
		ProfileID: "p-42",
		StartTime: time.Now().Add(-10 * time.Minute),
		EndTime:   time.Now().Add(5 * time.Minute),
	}
	data, _ := json.Marshal(sessionData)          // nolint:errcheck
	mr.Set(sessionKey("session-2"), string(data)) // nolint:errcheck

	err := repo.ExtendSession(context.Background(), "session-2")
	assert.NoError(t, err)

	val, err := mr.Get(sessionKey("session-2"))
	assert.NoError(t, err)

	var updated Session
	assert.NoError(t, json.Unmarshal([]byte(val), &updated))
	assert.True(t, updated.EndTime.After(sessionData.EndTime))
}

func TestDestroySession(t *testing.T) {
	repo, mr := setupTestRepo(t)
	defer mr.Close()

	mr.Set(sessionKey("session-3"), "{}") // nolint:errcheck

	assert.NoError(t, repo.DestroySession(context.Background(), "session-3"))
	assert.False(t, mr.Exists(sessionKey("session-3")))

	assert.ErrorIs(t, repo.DestroySession(context.Background(), "session-3"), errors.ErrSessionNotFound)
}
