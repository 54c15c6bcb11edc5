package attribute

// Kind - закрытый набор типов динамических атрибутов.
// Новые типы на рантайме не появляются.
type Kind string

const (
	KindString      Kind = "STRING"
	KindNumber      Kind = "NUMBER"
	KindBoolean     Kind = "BOOLEAN"
	KindEnum        Kind = "ENUM"
	KindMultiSelect Kind = "MULTISELECT"
)

// Valid проверяет, что тип входит в закрытый набор
func (k Kind) Valid() bool {
	switch k {
	case KindString, KindNumber, KindBoolean, KindEnum, KindMultiSelect:
		return true
	}
	return false
}

// Value - экземпляр атрибута в оффере или критерий фильтра.
// Плоская форма повторяет wire-формат бэкенда: заполнены только
// поля активного типа, остальные никем не читаются.
type Value struct {
	ID             int64  `json:"id"`
	AttributeID    int64  `json:"attributeId"`
	AttributeTitle string `json:"attributeTitle,omitempty"`
	ProductID      int64  `json:"productId"`
	Kind           Kind   `json:"type"`

	TextValue      *string  `json:"inputTextValue,omitempty"`
	NumberValue    *float64 `json:"inputNumberValue,omitempty"`
	NumberLimit    *float64 `json:"numberLimit,omitempty"`
	CheckValue     *bool    `json:"inputCheckValue,omitempty"`
	SelectedValues []string `json:"inputSelectedValues,omitempty"`

	EnumRange        []string `json:"enumRangeList,omitempty"`
	MultiSelectRange []string `json:"multiSelectRangeList,omitempty"`
}

// HasValue сообщает, задано ли у экземпляра хоть одно значение.
// Пустая строка считается незаполненной, false у чекбокса - заполненным:
// это явное ограничение "только без галочки".
func (v Value) HasValue() bool {
	if v.TextValue != nil && *v.TextValue != "" {
		return true
	}
	if v.NumberValue != nil || v.NumberLimit != nil {
		return true
	}
	if v.CheckValue != nil {
		return true
	}
	return len(v.SelectedValues) > 0
}

// Clone возвращает копию значения с собственными слайсами и указателями,
// чтобы редактор и редьюсер не делили память с исходником.
func (v Value) Clone() Value {
	c := v
	if v.TextValue != nil {
		t := *v.TextValue
		c.TextValue = &t
	}
	if v.NumberValue != nil {
		n := *v.NumberValue
		c.NumberValue = &n
	}
	if v.NumberLimit != nil {
		n := *v.NumberLimit
		c.NumberLimit = &n
	}
	if v.CheckValue != nil {
		b := *v.CheckValue
		c.CheckValue = &b
	}
	if v.SelectedValues != nil {
		c.SelectedValues = append([]string(nil), v.SelectedValues...)
	}
	if v.EnumRange != nil {
		c.EnumRange = append([]string(nil), v.EnumRange...)
	}
	if v.MultiSelectRange != nil {
		c.MultiSelectRange = append([]string(nil), v.MultiSelectRange...)
	}
	return c
}

// Definition - общее описание атрибута (справочник).
// Принадлежит категории товара, локализованные имена как в каталоге.
type Definition struct {
	ID       int64  `json:"id"`
	Code     string `json:"code"`
	NameRu   string `json:"nameRu"`
	NameKz   string `json:"nameKz"`
	NameEn   string `json:"nameEn"`
	IsPublic bool   `json:"isPublic"`
	Kind     Kind   `json:"type"`
}

// AllowedValue - допустимое значение для ENUM/MULTISELECT атрибута
type AllowedValue struct {
	ID          int64  `json:"id"`
	AttributeID int64  `json:"attributeId"`
	Value       string `json:"value"`
	IsPublic    bool   `json:"isPublic"`
}

// CreateDefinition - форма для создания атрибута
type CreateDefinition struct {
	Code     string `json:"code"`
	NameRu   string `json:"nameRu"`
	NameKz   string `json:"nameKz"`
	NameEn   string `json:"nameEn"`
	IsPublic bool   `json:"isPublic"`
	Kind     Kind   `json:"type"`
}
