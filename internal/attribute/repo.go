package attribute

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"
	"go.uber.org/zap"

	types "bazarlyq-main/internal/types/attribute"
	myErr "bazarlyq-main/internal/types/errors"
)

type AttributeDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewAttributeDBRepository(db *sql.DB, l *zap.SugaredLogger) *AttributeDBRepository {
	return &AttributeDBRepository{
		DB:     db,
		Logger: l,
	}
}

const definitionColumns = "id, code, name_ru, name_kz, name_en, is_public, kind"

func scanDefinition(row interface{ Scan(...interface{}) error }) (*types.Definition, error) {
	var d types.Definition
	err := row.Scan(&d.ID, &d.Code, &d.NameRu, &d.NameKz, &d.NameEn, &d.IsPublic, &d.Kind)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (ar *AttributeDBRepository) CreateDefinition(d types.CreateDefinition) (*types.Definition, error) {
	if !d.Kind.Valid() {
		return nil, myErr.ErrUnknownKind
	}

	query := `
	INSERT INTO attribute (code, name_ru, name_kz, name_en, is_public, kind)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING ` + definitionColumns

	def, err := scanDefinition(ar.DB.QueryRow(
		query,
		d.Code, d.NameRu, d.NameKz, d.NameEn, d.IsPublic, d.Kind,
	))
	if err != nil {
		ar.Logger.Errorf("Error creating attribute: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return def, nil
}

func (ar *AttributeDBRepository) GetDefinitionByID(id int64) (*types.Definition, error) {
	query := `SELECT ` + definitionColumns + ` FROM attribute WHERE id = $1`

	def, err := scanDefinition(ar.DB.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}
		ar.Logger.Errorf("Error getting attribute by ID: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return def, nil
}

func (ar *AttributeDBRepository) UpdateDefinition(id int64, d types.CreateDefinition) (*types.Definition, error) {
	if !d.Kind.Valid() {
		return nil, myErr.ErrUnknownKind
	}

	query := `
	UPDATE attribute
	SET code = $1, name_ru = $2, name_kz = $3, name_en = $4, is_public = $5, kind = $6
	WHERE id = $7
	RETURNING ` + definitionColumns

	def, err := scanDefinition(ar.DB.QueryRow(
		query,
		d.Code, d.NameRu, d.NameKz, d.NameEn, d.IsPublic, d.Kind, id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}
		ar.Logger.Errorf("Error updating attribute %d: %v", id, err)
		return nil, myErr.ErrDBInternal
	}

	return def, nil
}

func (ar *AttributeDBRepository) DeleteDefinition(id int64) error {
	res, err := ar.DB.Exec(`DELETE FROM attribute WHERE id = $1`, id)
	if err != nil {
		ar.Logger.Errorf("Error deleting attribute %d: %v", id, err)
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

func (ar *AttributeDBRepository) ListDefinitions() ([]types.Definition, error) {
	query := `SELECT ` + definitionColumns + ` FROM attribute ORDER BY id`
	return ar.queryDefinitions(query)
}

func (ar *AttributeDBRepository) ListDefinitionsByKind(kind types.Kind) ([]types.Definition, error) {
	if !kind.Valid() {
		return nil, myErr.ErrUnknownKind
	}

	query := `SELECT ` + definitionColumns + ` FROM attribute WHERE kind = $1 ORDER BY id`
	return ar.queryDefinitions(query, kind)
}

func (ar *AttributeDBRepository) SearchDefinitions(search string) ([]types.Definition, error) {
	search = strings.ToLower(search)
	query := `
	SELECT ` + definitionColumns + `
	FROM attribute
	WHERE LOWER(name_ru) LIKE '%' || $1 || '%'
	   OR LOWER(name_kz) LIKE '%' || $1 || '%'
	   OR LOWER(name_en) LIKE '%' || $1 || '%'
	   OR LOWER(code) LIKE '%' || $1 || '%'
	ORDER BY id
	LIMIT 50
	`
	return ar.queryDefinitions(query, search)
}

func (ar *AttributeDBRepository) queryDefinitions(query string, args ...interface{}) ([]types.Definition, error) {
	rows, err := ar.DB.Query(query, args...)
	if err != nil {
		ar.Logger.Errorf("Error listing attributes: %v", err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	var defs []types.Definition
	for rows.Next() {
		def, err := scanDefinition(rows)
		if err != nil {
			return nil, myErr.ErrDBInternal
		}
		defs = append(defs, *def)
	}

	return defs, nil
}

func (ar *AttributeDBRepository) ListValues(attributeID int64) ([]types.AllowedValue, error) {
	query := `
	SELECT id, attribute_id, value, is_public
	FROM attribute_value
	WHERE attribute_id = $1
	ORDER BY id
	`

	rows, err := ar.DB.Query(query, attributeID)
	if err != nil {
		ar.Logger.Errorf("Error listing attribute values: %v", err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	var values []types.AllowedValue
	for rows.Next() {
		var v types.AllowedValue
		if err := rows.Scan(&v.ID, &v.AttributeID, &v.Value, &v.IsPublic); err != nil {
			return nil, myErr.ErrDBInternal
		}
		values = append(values, v)
	}

	return values, nil
}

func (ar *AttributeDBRepository) CreateValue(v types.AllowedValue) (*types.AllowedValue, error) {
	query := `
	INSERT INTO attribute_value (attribute_id, value, is_public)
	VALUES ($1, $2, $3)
	RETURNING id, attribute_id, value, is_public
	`

	var created types.AllowedValue
	err := ar.DB.QueryRow(query, v.AttributeID, v.Value, v.IsPublic).
		Scan(&created.ID, &created.AttributeID, &created.Value, &created.IsPublic)
	if err != nil {
		ar.Logger.Errorf("Error creating attribute value: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return &created, nil
}

func (ar *AttributeDBRepository) DeleteValue(id int64) error {
	res, err := ar.DB.Exec(`DELETE FROM attribute_value WHERE id = $1`, id)
	if err != nil {
		ar.Logger.Errorf("Error deleting attribute value %d: %v", id, err)
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

func (ar *AttributeDBRepository) TemplateForProduct(productID int64) ([]types.Value, error) {
	query := `
	SELECT a.id, a.name_ru, a.kind
	FROM product_attribute pa
	JOIN attribute a ON a.id = pa.attribute_id
	WHERE pa.product_id = $1 AND a.is_public = TRUE
	ORDER BY a.id
	`

	rows, err := ar.DB.Query(query, productID)
	if err != nil {
		ar.Logger.Errorf("Error building attribute template for product %d: %v", productID, err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	var template []types.Value
	var rangeIDs []int64
	for rows.Next() {
		var v types.Value
		if err := rows.Scan(&v.AttributeID, &v.AttributeTitle, &v.Kind); err != nil {
			return nil, myErr.ErrDBInternal
		}
		v.ProductID = productID
		if v.Kind == types.KindEnum || v.Kind == types.KindMultiSelect {
			rangeIDs = append(rangeIDs, v.AttributeID)
		}
		template = append(template, v)
	}

	if len(rangeIDs) == 0 {
		return template, nil
	}

	ranges, err := ar.PublicRanges(rangeIDs)
	if err != nil {
		return nil, err
	}

	for i := range template {
		switch template[i].Kind {
		case types.KindEnum:
			template[i].EnumRange = ranges[template[i].AttributeID]
		case types.KindMultiSelect:
			template[i].MultiSelectRange = ranges[template[i].AttributeID]
		}
	}

	return template, nil
}

// PublicRanges достает публичные допустимые значения для набора атрибутов
func (ar *AttributeDBRepository) PublicRanges(attributeIDs []int64) (map[int64][]string, error) {
	query := `
	SELECT attribute_id, value
	FROM attribute_value
	WHERE attribute_id = ANY($1) AND is_public = TRUE
	ORDER BY id
	`

	rows, err := ar.DB.Query(query, pq.Array(attributeIDs))
	if err != nil {
		ar.Logger.Errorf("Error loading attribute ranges: %v", err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	ranges := make(map[int64][]string)
	for rows.Next() {
		var attributeID int64
		var value string
		if err := rows.Scan(&attributeID, &value); err != nil {
			return nil, myErr.ErrDBInternal
		}
		ranges[attributeID] = append(ranges[attributeID], value)
	}

	return ranges, nil
}
