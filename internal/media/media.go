package media

import "time"

// File - запись о загруженном файле, привязанном к сущности
// (linkedType + linkedId), например ("OFFER", 10). Само хранилище
// файлов внешнее, здесь только связки
type File struct {
	ID         string    `json:"id"` // uuid
	LinkedType string    `json:"linkedType"`
	LinkedID   int64     `json:"linkedId"`
	URL        string    `json:"url"`
	IsMain     bool      `json:"isMain"`
	CreatedAt  time.Time `json:"createdAt"`
}

//go:generate mockgen -source=media.go -destination=../mocks/mock_media_repo.go -package=mocks
type MediaRepo interface {
	ListByLink(linkedType string, linkedID int64) ([]File, error)
	AddLink(linkedType string, linkedID int64, url string) (*File, error)
	SetMain(id string) error
	Delete(id string) error
}
