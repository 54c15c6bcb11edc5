package offer

import (
	"time"

	typesAttr "bazarlyq-main/internal/types/attribute"
	typesOffer "bazarlyq-main/internal/types/offer"
)

// Offer - объявление на витрине. Атрибуты принадлежат офферу целиком:
// при сохранении список заменяется оптом, по одному атрибуты не удаляются.
type Offer struct {
	OfferID         int64               `json:"offerId,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
	OfferPhotoURL   string              `json:"offerPhotoUrl,omitempty"`
	Price           float64             `json:"price"`
	Description     string              `json:"description,omitempty"`
	ProductID       int64               `json:"productId"`
	CategoryCode    string              `json:"categoryCode"`
	SubCategoryCode string              `json:"subCategoryCode,omitempty"`
	Currency        typesOffer.Currency `json:"preferredCurrency"`
	Status          typesOffer.Status   `json:"status"`
	AddressID       int64               `json:"addressId"`
	CityCode        string              `json:"cityCode"`
	ProfileID       string              `json:"profileId"`
	Attributes      []typesAttr.Value   `json:"offerAttributeFormList"`
}

// OfferRepo - хранилище офферов
//
//go:generate mockgen -source=offer.go -destination=../mocks/mock_offer_repo.go -package=mocks
type OfferRepo interface {
	// GenerateForm создает черновик оффера: скаляры по умолчанию,
	// атрибуты инстанцированы из схемы товара с пустыми значениями
	GenerateForm(productID int64, profileID string) (*Offer, error)
	// GetByID возвращает оффер со всем списком атрибутов
	GetByID(id int64) (*Offer, error)
	// Update целиком заменяет скаляры и список атрибутов оффера
	Update(o Offer) (*Offer, error)
	// ListFiltered - постраничный листинг с фильтрами из query и body
	ListFiltered(q typesOffer.ListQuery, filter typesOffer.FilterRequest) (*typesOffer.Page[Offer], error)
	// QueryBuilder отдает пустой шаблон фильтра для товара
	QueryBuilder(productID int64) (*typesOffer.FilterRequest, error)
}
