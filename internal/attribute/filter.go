package attribute

import (
	typesAttr "bazarlyq-main/internal/types/attribute"
	typesCity "bazarlyq-main/internal/types/city"
	typesOffer "bazarlyq-main/internal/types/offer"
)

// Редьюсер фильтра. Рабочее состояние - шаблонный список атрибутов
// категории (тип + диапазоны, значения пустые), который пользователь
// постепенно заполняет. Все операции возвращают новый срез,
// переданный не мутируется.

// Patch - частичное обновление одного критерия.
// nil-поле означает "не менять".
type Patch struct {
	TextValue      *string
	NumberValue    *float64
	NumberLimit    *float64
	CheckValue     *bool
	SelectedValues *[]string
}

// SetCriterion заменяет критерий с данным attributeID на копию
// с примененным патчем, остальные записи переносятся как есть.
func SetCriterion(template []typesAttr.Value, attributeID int64, patch Patch) []typesAttr.Value {
	out := make([]typesAttr.Value, len(template))
	for i, entry := range template {
		if entry.AttributeID != attributeID {
			out[i] = entry
			continue
		}

		merged := entry.Clone()
		if patch.TextValue != nil {
			t := *patch.TextValue
			merged.TextValue = &t
		}
		if patch.NumberValue != nil {
			n := *patch.NumberValue
			merged.NumberValue = &n
		}
		if patch.NumberLimit != nil {
			n := *patch.NumberLimit
			merged.NumberLimit = &n
		}
		if patch.CheckValue != nil {
			b := *patch.CheckValue
			merged.CheckValue = &b
		}
		if patch.SelectedValues != nil {
			merged.SelectedValues = append([]string(nil), (*patch.SelectedValues)...)
		}
		out[i] = merged
	}
	return out
}

// ClearAll сбрасывает пользовательские значения, сохраняя тип,
// attributeId и списки допустимых значений. Диапазоны ENUM/MULTISELECT
// терять нельзя - без них форма фильтра не отрисуется.
func ClearAll(template []typesAttr.Value) []typesAttr.Value {
	out := make([]typesAttr.Value, len(template))
	for i, entry := range template {
		cleared := entry.Clone()
		cleared.TextValue = nil
		cleared.NumberValue = nil
		cleared.NumberLimit = nil
		cleared.CheckValue = nil
		cleared.SelectedValues = nil
		out[i] = cleared
	}
	return out
}

// ToRequestBody собирает тело запроса фильтрации. Критерий попадает
// в запрос только если заполнено хоть одно значение: пропуск записи
// сервер читает как "без ограничения по этому атрибуту".
func ToRequestBody(criteria []typesAttr.Value, cities []typesCity.Local) typesOffer.FilterRequest {
	req := typesOffer.FilterRequest{
		Cities:           make([]typesCity.Local, 0, len(cities)),
		AttributeFilters: make([]typesAttr.Value, 0, len(criteria)),
	}
	req.Cities = append(req.Cities, cities...)

	for _, entry := range criteria {
		if entry.HasValue() {
			req.AttributeFilters = append(req.AttributeFilters, entry.Clone())
		}
	}

	return req
}
