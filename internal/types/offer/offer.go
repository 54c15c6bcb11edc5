package offer

import (
	typesAttr "bazarlyq-main/internal/types/attribute"
	typesCity "bazarlyq-main/internal/types/city"
)

// Status - статус оффера в том виде, в котором его отдает бэкенд.
// Токены прокидываются без преобразований, переходы между статусами
// на клиентской стороне не проверяются.
type Status string

const (
	StatusDraft    Status = "DRFT"
	StatusActive   Status = "ACTV"
	StatusArchived Status = "ARCH"
	StatusPending  Status = "PNDG"
	StatusRejected Status = "REJC"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusArchived, StatusPending, StatusRejected:
		return true
	}
	return false
}

// Currency - валюта цены оффера
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyKZT Currency = "KZT"
	CurrencyRUB Currency = "RUB"
)

// Page - стандартный постраничный конверт всех списочных ручек
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// FilterRequest - тело запроса фильтрации офферов.
// Уходит в body, остальные параметры фильтра - в query:
// структурные критерии в URL компактно не кодируются.
type FilterRequest struct {
	Cities           []typesCity.Local `json:"cities"`
	AttributeFilters []typesAttr.Value `json:"offerAttributeFormList"`
}

// ListQuery - query-параметры листинга офферов
type ListQuery struct {
	ProductID int64
	ProfileID string // чей запрос, для разделения scope
	Status    Status // пустой = любой
	Other     bool   // false = свои офферы, true = чужие по тому же товару
	Page      int    // с нуля
	Size      int
	Sort      Sort
}
