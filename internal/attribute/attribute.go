package attribute

import (
	types "bazarlyq-main/internal/types/attribute"
)

// AttributeRepo - справочник атрибутов: определения, допустимые
// значения и сборка шаблона атрибутов для товара
//
//go:generate mockgen -source=attribute.go -destination=../mocks/mock_attribute_repo.go -package=mocks
type AttributeRepo interface {
	CreateDefinition(d types.CreateDefinition) (*types.Definition, error)
	GetDefinitionByID(id int64) (*types.Definition, error)
	UpdateDefinition(id int64, d types.CreateDefinition) (*types.Definition, error)
	DeleteDefinition(id int64) error
	ListDefinitions() ([]types.Definition, error)
	ListDefinitionsByKind(kind types.Kind) ([]types.Definition, error)
	SearchDefinitions(query string) ([]types.Definition, error)

	ListValues(attributeID int64) ([]types.AllowedValue, error)
	CreateValue(v types.AllowedValue) (*types.AllowedValue, error)
	DeleteValue(id int64) error

	// TemplateForProduct собирает шаблонный список атрибутов товара:
	// тип и диапазоны заполнены, значения пустые. Шаблон кормит
	// и форму нового оффера, и форму фильтра.
	TemplateForProduct(productID int64) ([]types.Value, error)

	// PublicRanges - публичные допустимые значения для набора атрибутов,
	// сгруппированные по attribute_id
	PublicRanges(attributeIDs []int64) (map[int64][]string, error)
}
