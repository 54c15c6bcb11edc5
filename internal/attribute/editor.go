package attribute

import (
	"fmt"

	types "bazarlyq-main/internal/types/attribute"
)

// EditEvent - событие редактирования одного атрибута.
// Закрытое объединение, по одному событию на тип виджета.
type EditEvent interface {
	editEvent()
	// Kind - тип атрибута, которому адресовано событие
	Kind() types.Kind
}

// TextChanged - ввод текста для STRING
type TextChanged struct {
	Text string
}

// NumberChanged - ввод числа для NUMBER
type NumberChanged struct {
	Value float64
}

// CheckChanged - переключение чекбокса для BOOLEAN
type CheckChanged struct {
	Checked bool
}

// SingleSelectChanged - выбор одного значения для ENUM
type SingleSelectChanged struct {
	Value string
}

// MultiSelectToggled - переключение одного значения для MULTISELECT
type MultiSelectToggled struct {
	Value string
}

func (TextChanged) editEvent()         {}
func (NumberChanged) editEvent()       {}
func (CheckChanged) editEvent()        {}
func (SingleSelectChanged) editEvent() {}
func (MultiSelectToggled) editEvent()  {}

func (TextChanged) Kind() types.Kind         { return types.KindString }
func (NumberChanged) Kind() types.Kind       { return types.KindNumber }
func (CheckChanged) Kind() types.Kind        { return types.KindBoolean }
func (SingleSelectChanged) Kind() types.Kind { return types.KindEnum }
func (MultiSelectToggled) Kind() types.Kind  { return types.KindMultiSelect }

// ApplyEdit применяет событие к атрибуту и возвращает новую копию,
// исходник не трогается. Вернуть результат в список атрибутов
// оффера по нужному индексу - забота вызывающего.
//
// Несовпадение типа события и типа атрибута - ошибка программиста:
// UI порождает только события отрисованного виджета, поэтому здесь
// паника, а не тихое проглатывание.
func ApplyEdit(v types.Value, ev EditEvent) types.Value {
	if ev.Kind() != v.Kind {
		panic(fmt.Sprintf("attribute: %s event applied to %s attribute %d", ev.Kind(), v.Kind, v.AttributeID))
	}

	out := v.Clone()

	switch e := ev.(type) {
	case TextChanged:
		out.TextValue = &e.Text
	case NumberChanged:
		// Значение выше серверного лимита тихо отбрасывается,
		// без клампа и без ошибки
		if v.NumberLimit != nil && e.Value > *v.NumberLimit {
			return v
		}
		out.NumberValue = &e.Value
	case CheckChanged:
		out.CheckValue = &e.Checked
	case SingleSelectChanged:
		// ENUM - одиночный выбор, прежний выбор затирается целиком
		out.SelectedValues = []string{e.Value}
	case MultiSelectToggled:
		out.SelectedValues = toggle(out.SelectedValues, e.Value)
	}

	return out
}

// toggle убирает значение, если оно уже выбрано, иначе дописывает в конец.
// Порядок оставшихся - порядок вставки, без сортировки.
func toggle(selected []string, value string) []string {
	for i, s := range selected {
		if s == value {
			return append(selected[:i:i], selected[i+1:]...)
		}
	}
	return append(selected, value)
}
