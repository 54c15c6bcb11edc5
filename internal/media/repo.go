package media

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	myErr "bazarlyq-main/internal/types/errors"
)

type MediaDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewMediaDBRepository(db *sql.DB, logger *zap.SugaredLogger) *MediaDBRepository {
	return &MediaDBRepository{
		DB:     db,
		Logger: logger,
	}
}

// ListByLink возвращает файлы сущности, главный - первым
func (mr *MediaDBRepository) ListByLink(linkedType string, linkedID int64) ([]File, error) {
	query := `
	SELECT id, linked_type, linked_id, url, is_main, created_at
	FROM media_file
	WHERE linked_type = $1 AND linked_id = $2
	ORDER BY is_main DESC, created_at
	`

	rows, err := mr.DB.Query(query, linkedType, linkedID)
	if err != nil {
		mr.Logger.Errorf("Ошибка при получении файлов %s/%d: %v", linkedType, linkedID, err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	var files []File
	for rows.Next() {
		var f File
		if err := rows.Scan(&f.ID, &f.LinkedType, &f.LinkedID, &f.URL, &f.IsMain, &f.CreatedAt); err != nil {
			return nil, myErr.ErrDBInternal
		}
		files = append(files, f)
	}

	return files, nil
}

func (mr *MediaDBRepository) AddLink(linkedType string, linkedID int64, url string) (*File, error) {
	query := `
	INSERT INTO media_file (id, linked_type, linked_id, url)
	VALUES ($1, $2, $3, $4)
	RETURNING id, linked_type, linked_id, url, is_main, created_at
	`

	var f File
	err := mr.DB.QueryRow(query, uuid.New().String(), linkedType, linkedID, url).
		Scan(&f.ID, &f.LinkedType, &f.LinkedID, &f.URL, &f.IsMain, &f.CreatedAt)
	if err != nil {
		mr.Logger.Errorf("Ошибка при добавлении файла: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return &f, nil
}

// SetMain делает файл главным в своей связке, снимая флаг с остальных
func (mr *MediaDBRepository) SetMain(id string) error {
	tx, err := mr.DB.Begin()
	if err != nil {
		return myErr.ErrDBInternal
	}
	defer tx.Rollback() // nolint:errcheck

	var linkedType string
	var linkedID int64
	err = tx.QueryRow(`SELECT linked_type, linked_id FROM media_file WHERE id = $1`, id).
		Scan(&linkedType, &linkedID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return myErr.ErrNotFound
		}
		return myErr.ErrDBInternal
	}

	_, err = tx.Exec(
		`UPDATE media_file SET is_main = (id = $1) WHERE linked_type = $2 AND linked_id = $3`,
		id, linkedType, linkedID,
	)
	if err != nil {
		mr.Logger.Errorf("Ошибка при смене главного файла: %v", err)
		return myErr.ErrDBInternal
	}

	if err := tx.Commit(); err != nil {
		return myErr.ErrDBInternal
	}

	return nil
}

func (mr *MediaDBRepository) Delete(id string) error {
	res, err := mr.DB.Exec(`DELETE FROM media_file WHERE id = $1`, id)
	if err != nil {
		mr.Logger.Errorf("Ошибка при удалении файла: %v", err)
		return myErr.ErrDBInternal
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return myErr.ErrDBInternal
	}
	if affected == 0 {
		return myErr.ErrNotFound
	}

	return nil
}
