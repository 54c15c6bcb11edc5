package attribute

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	types "bazarlyq-main/internal/types/attribute"
	typesCity "bazarlyq-main/internal/types/city"
)

func filterTemplate() []types.Value {
	return []types.Value{
		{AttributeID: 1, Kind: types.KindNumber, AttributeTitle: "Площадь"},
		{AttributeID: 2, Kind: types.KindString, AttributeTitle: "Материал"},
		{
			AttributeID:      3,
			Kind:             types.KindMultiSelect,
			AttributeTitle:   "Удобства",
			MultiSelectRange: []string{"wifi", "parking", "balcony"},
		},
		{
			AttributeID: 4,
			Kind:        types.KindEnum,
			EnumRange:   []string{"red", "green"},
		},
	}
}

func TestSetCriterion(t *testing.T) {
	template := filterTemplate()

	got := SetCriterion(template, 1, Patch{
		NumberValue: numPtr(20),
		NumberLimit: numPtr(80),
	})

	require.Len(t, got, len(template))
	require.NotNil(t, got[0].NumberValue)
	require.NotNil(t, got[0].NumberLimit)
	assert.Equal(t, 20.0, *got[0].NumberValue)
	assert.Equal(t, 80.0, *got[0].NumberLimit)

	// остальные записи без изменений
	assert.Equal(t, template[1], got[1])
	assert.Equal(t, template[2], got[2])

	// шаблон не мутирован
	assert.Nil(t, template[0].NumberValue)
}

func TestSetCriterion_PartialPatchKeepsOtherFields(t *testing.T) {
	template := SetCriterion(filterTemplate(), 1, Patch{NumberValue: numPtr(20)})

	got := SetCriterion(template, 1, Patch{NumberLimit: numPtr(90)})

	require.NotNil(t, got[0].NumberValue)
	assert.Equal(t, 20.0, *got[0].NumberValue)
	require.NotNil(t, got[0].NumberLimit)
	assert.Equal(t, 90.0, *got[0].NumberLimit)
}

func TestSetCriterion_UnknownAttributeIsNoop(t *testing.T) {
	template := filterTemplate()
	got := SetCriterion(template, 999, Patch{TextValue: strPtr("x")})
	assert.Equal(t, template, got)
}

func TestClearAll(t *testing.T) {
	template := filterTemplate()
	selected := []string{"wifi"}
	filled := SetCriterion(template, 3, Patch{SelectedValues: &selected})
	filled = SetCriterion(filled, 2, Patch{TextValue: strPtr("дерево")})
	filled = SetCriterion(filled, 1, Patch{NumberValue: numPtr(5), NumberLimit: numPtr(10)})

	cleared := ClearAll(filled)

	for i, entry := range cleared {
		assert.Nil(t, entry.TextValue, "entry %d", i)
		assert.Nil(t, entry.NumberValue, "entry %d", i)
		assert.Nil(t, entry.NumberLimit, "entry %d", i)
		assert.Nil(t, entry.CheckValue, "entry %d", i)
		assert.Empty(t, entry.SelectedValues, "entry %d", i)
	}

	// типы и диапазоны сохранены
	assert.Equal(t, types.KindMultiSelect, cleared[2].Kind)
	assert.Equal(t, []string{"wifi", "parking", "balcony"}, cleared[2].MultiSelectRange)
	assert.Equal(t, []string{"red", "green"}, cleared[3].EnumRange)
}

func TestClearAll_Idempotent(t *testing.T) {
	selected := []string{"wifi", "parking"}
	filled := SetCriterion(filterTemplate(), 3, Patch{SelectedValues: &selected})

	once := ClearAll(filled)
	twice := ClearAll(once)

	assert.Equal(t, once, twice)
}

func TestToRequestBody_OmitsEmptyEntries(t *testing.T) {
	// Один заполненный NUMBER и один пустой STRING:
	// в запросе ровно одна запись
	template := []types.Value{
		{ID: 1, AttributeID: 1, Kind: types.KindNumber, NumberValue: numPtr(50)},
		{ID: 2, AttributeID: 2, Kind: types.KindString},
	}

	req := ToRequestBody(template, nil)

	require.Len(t, req.AttributeFilters, 1)
	assert.Equal(t, int64(1), req.AttributeFilters[0].ID)
	require.NotNil(t, req.AttributeFilters[0].NumberValue)
	assert.Equal(t, 50.0, *req.AttributeFilters[0].NumberValue)
}

func TestToRequestBody_EmptyStringDoesNotCount(t *testing.T) {
	template := []types.Value{
		{AttributeID: 2, Kind: types.KindString, TextValue: strPtr("")},
	}
	req := ToRequestBody(template, nil)
	assert.Empty(t, req.AttributeFilters)
}

func TestToRequestBody_UncheckedBooleanCounts(t *testing.T) {
	// false - это явное ограничение, а не отсутствие значения
	template := []types.Value{
		{AttributeID: 5, Kind: types.KindBoolean, CheckValue: boolPtr(false)},
	}
	req := ToRequestBody(template, nil)
	assert.Len(t, req.AttributeFilters, 1)
}

func TestToRequestBody_Cities(t *testing.T) {
	cities := []typesCity.Local{{CityCode: "ALA", Name: "Алматы"}}
	req := ToRequestBody(nil, cities)

	assert.Equal(t, cities, req.Cities)
	// слайсы в теле всегда не-nil, сериализуются как []
	assert.NotNil(t, req.AttributeFilters)
}

func TestToRequestBody_AfterClearAllIsEmptyRequest(t *testing.T) {
	selected := []string{"wifi"}
	filled := SetCriterion(filterTemplate(), 3, Patch{SelectedValues: &selected})
	filled = SetCriterion(filled, 1, Patch{NumberValue: numPtr(1)})

	got := ToRequestBody(ClearAll(filled), nil)
	empty := ToRequestBody(ClearAll(filterTemplate()), nil)

	assert.Equal(t, empty, got)
	assert.Empty(t, got.AttributeFilters)
	assert.Empty(t, got.Cities)
}

// Сценарий из формы фильтра: лимит 100, 150 отбрасывается, 50 проходит
func TestFilterScenario_NumberLimit(t *testing.T) {
	template := []types.Value{
		{ID: 1, AttributeID: 1, Kind: types.KindNumber, NumberLimit: numPtr(100)},
	}

	entry := ApplyEdit(template[0], NumberChanged{Value: 150})
	assert.Nil(t, entry.NumberValue)

	entry = ApplyEdit(entry, NumberChanged{Value: 50})
	require.NotNil(t, entry.NumberValue)
	assert.Equal(t, 50.0, *entry.NumberValue)

	req := ToRequestBody([]types.Value{entry}, nil)
	require.Len(t, req.AttributeFilters, 1)
	assert.Equal(t, int64(1), req.AttributeFilters[0].ID)
	assert.Equal(t, 50.0, *req.AttributeFilters[0].NumberValue)
}
