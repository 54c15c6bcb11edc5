package session

import (
	"context"
	"net/http"
	"time"
)

// Session - структура сессии продавца
type Session struct {
	ID        string
	ProfileID string
	StartTime time.Time
	EndTime   time.Time
}

// SessionRepo - репозиторий для работы с сессиями
//
//go:generate mockgen -source=internal/session/session.go -destination=internal/mocks/mock_session_repo.go -package=mocks
type SessionRepo interface {
	// CreateSession - создает новую сессию, кладет ее в Redis и возвращает подписанный JWT
	CreateSession(ctx context.Context, profileID string, email string) (*Session, string, error)
	// CheckSession - проверяет токен из заголовка Authorization и существование сессии в Redis
	// Возвращает *Session в случае успеха, иначе nil
	CheckSession(r *http.Request) (*Session, error)
	// ExtendSession - продлевает сессию, если продавец активно пользуется сервисом
	ExtendSession(ctx context.Context, sessionID string) error
	// DestroySession - удаляет сессию из Redis
	DestroySession(ctx context.Context, sessionID string) error
}
