package offer

import (
	"strings"

	myErr "bazarlyq-main/internal/types/errors"
)

// Wire-формат сортировки: "<field>,<asc|desc>", например "price,desc".
// Формат зафиксирован бэкендом, менять нельзя.

type SortField string

const (
	SortByUpdatedAt SortField = "updatedAt"
	SortByPrice     SortField = "price"
)

type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

type Sort struct {
	Field SortField
	Dir   SortDir
}

// DefaultSort - как и витрина, по умолчанию свежие сверху
func DefaultSort() Sort {
	return Sort{Field: SortByUpdatedAt, Dir: SortDesc}
}

// ParseSort разбирает wire-токен. Пустая строка - сортировка по умолчанию.
func ParseSort(token string) (Sort, error) {
	if token == "" {
		return DefaultSort(), nil
	}

	parts := strings.Split(token, ",")
	if len(parts) != 2 {
		return Sort{}, myErr.ErrBadSortToken
	}

	var field SortField
	switch SortField(parts[0]) {
	case SortByUpdatedAt, SortByPrice:
		field = SortField(parts[0])
	default:
		return Sort{}, myErr.ErrBadSortToken
	}

	var dir SortDir
	switch SortDir(parts[1]) {
	case SortAsc, SortDesc:
		dir = SortDir(parts[1])
	default:
		return Sort{}, myErr.ErrBadSortToken
	}

	return Sort{Field: field, Dir: dir}, nil
}

// Token собирает обратный wire-токен
func (s Sort) Token() string {
	return string(s.Field) + "," + string(s.Dir)
}

// Column возвращает имя колонки для ORDER BY
func (s Sort) Column() string {
	if s.Field == SortByPrice {
		return "price"
	}
	return "updated_at"
}
