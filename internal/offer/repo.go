package offer

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"bazarlyq-main/internal/attribute"
	typesAttr "bazarlyq-main/internal/types/attribute"
	typesCity "bazarlyq-main/internal/types/city"
	myErr "bazarlyq-main/internal/types/errors"
	typesOffer "bazarlyq-main/internal/types/offer"
)

type OfferDBRepository struct {
	DB            *sql.DB
	Logger        *zap.SugaredLogger
	AttributeRepo attribute.AttributeRepo
}

func NewOfferDBRepository(db *sql.DB, l *zap.SugaredLogger, ar attribute.AttributeRepo) *OfferDBRepository {
	return &OfferDBRepository{
		DB:            db,
		Logger:        l,
		AttributeRepo: ar,
	}
}

const offerColumns = `o.id, o.created_at, o.updated_at, o.offer_photo_url, o.price, o.description,
		o.product_id, o.category_code, o.sub_category_code, o.preferred_currency, o.status,
		o.address_id, o.city_code, o.profile_id`

func scanOffer(row interface{ Scan(...interface{}) error }) (*Offer, error) {
	var o Offer
	var photoURL, description, subCategory sql.NullString

	err := row.Scan(
		&o.OfferID, &o.CreatedAt, &o.UpdatedAt, &photoURL, &o.Price, &description,
		&o.ProductID, &o.CategoryCode, &subCategory, &o.Currency, &o.Status,
		&o.AddressID, &o.CityCode, &o.ProfileID,
	)
	if err != nil {
		return nil, err
	}

	o.OfferPhotoURL = photoURL.String
	o.Description = description.String
	o.SubCategoryCode = subCategory.String

	return &o, nil
}

// GenerateForm создает черновик: статус DRFT, валюта KZT, атрибуты
// из шаблона товара с пустыми значениями и заполненными диапазонами
func (or *OfferDBRepository) GenerateForm(productID int64, profileID string) (*Offer, error) {
	var categoryCode string
	var subCategory sql.NullString
	err := or.DB.
		QueryRow(`SELECT category_code, sub_category_code FROM product WHERE id = $1`, productID).
		Scan(&categoryCode, &subCategory)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}
		or.Logger.Errorf("Error looking up product %d: %v", productID, err)
		return nil, myErr.ErrDBInternal
	}

	template, err := or.AttributeRepo.TemplateForProduct(productID)
	if err != nil {
		return nil, err
	}

	tx, err := or.DB.Begin()
	if err != nil {
		return nil, myErr.ErrDBInternal
	}
	defer tx.Rollback() // nolint:errcheck

	var offerID int64
	err = tx.QueryRow(`
	INSERT INTO offer (product_id, category_code, sub_category_code, preferred_currency, status, profile_id)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id
	`, productID, categoryCode, subCategory, typesOffer.CurrencyKZT, typesOffer.StatusDraft, profileID).
		Scan(&offerID)
	if err != nil {
		or.Logger.Errorf("Error creating offer draft: %v", err)
		return nil, myErr.ErrDBInternal
	}

	if err := insertAttributes(tx, offerID, template); err != nil {
		or.Logger.Errorf("Error instantiating offer attributes: %v", err)
		return nil, myErr.ErrDBInternal
	}

	if err := tx.Commit(); err != nil {
		return nil, myErr.ErrDBInternal
	}

	return or.GetByID(offerID)
}

func (or *OfferDBRepository) GetByID(id int64) (*Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offer o WHERE o.id = $1`

	o, err := scanOffer(or.DB.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}
		or.Logger.Errorf("Error getting offer by ID: %v", err)
		return nil, myErr.ErrDBInternal
	}

	attrs, err := or.loadAttributes([]int64{id})
	if err != nil {
		return nil, err
	}
	o.Attributes = attrs[id]
	if o.Attributes == nil {
		o.Attributes = []typesAttr.Value{}
	}

	return o, nil
}

// Update заменяет скаляры и список атрибутов одной транзакцией.
// Статус не интерпретируется, только проверяется на известный токен
func (or *OfferDBRepository) Update(o Offer) (*Offer, error) {
	if o.OfferID == 0 {
		return nil, myErr.ErrBadID
	}
	if !o.Status.Valid() {
		return nil, myErr.ErrUnknownStatus
	}

	tx, err := or.DB.Begin()
	if err != nil {
		return nil, myErr.ErrDBInternal
	}
	defer tx.Rollback() // nolint:errcheck

	res, err := tx.Exec(`
	UPDATE offer
	SET price = $1,
		description = $2,
		offer_photo_url = $3,
		preferred_currency = $4,
		status = $5,
		address_id = $6,
		city_code = $7,
		sub_category_code = $8,
		search_indexed = FALSE,
		updated_at = NOW()
	WHERE id = $9 AND profile_id = $10
	`,
		o.Price,
		nullString(o.Description),
		nullString(o.OfferPhotoURL),
		o.Currency,
		o.Status,
		o.AddressID,
		o.CityCode,
		nullString(o.SubCategoryCode),
		o.OfferID,
		o.ProfileID,
	)
	if err != nil {
		or.Logger.Errorf("Error updating offer %d: %v", o.OfferID, err)
		return nil, myErr.ErrDBInternal
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, myErr.ErrDBInternal
	}
	if affected == 0 {
		return nil, myErr.ErrNotFound
	}

	// Список атрибутов заменяется оптом
	if _, err := tx.Exec(`DELETE FROM offer_attribute WHERE offer_id = $1`, o.OfferID); err != nil {
		or.Logger.Errorf("Error clearing offer attributes: %v", err)
		return nil, myErr.ErrDBInternal
	}
	if err := insertAttributes(tx, o.OfferID, o.Attributes); err != nil {
		or.Logger.Errorf("Error saving offer attributes: %v", err)
		return nil, myErr.ErrDBInternal
	}

	if err := tx.Commit(); err != nil {
		return nil, myErr.ErrDBInternal
	}

	return or.GetByID(o.OfferID)
}

func (or *OfferDBRepository) ListFiltered(
	q typesOffer.ListQuery,
	filter typesOffer.FilterRequest,
) (*typesOffer.Page[Offer], error) {
	if q.Size <= 0 {
		return nil, myErr.ErrBadID
	}

	where, args := buildFilter(q, filter)

	var total int64
	countQuery := `SELECT COUNT(*) FROM offer o WHERE ` + where
	if err := or.DB.QueryRow(countQuery, args...).Scan(&total); err != nil {
		or.Logger.Errorf("Error counting offers: %v", err)
		return nil, myErr.ErrDBInternal
	}

	// Вторичный ключ id фиксирует порядок при равных значениях
	// сортировки: страницы не перекрываются и не теряют записи
	listQuery := fmt.Sprintf(
		`SELECT %s FROM offer o WHERE %s ORDER BY o.%s %s, o.id ASC LIMIT $%d OFFSET $%d`,
		offerColumns, where, q.Sort.Column(), strings.ToUpper(string(q.Sort.Dir)),
		len(args)+1, len(args)+2,
	)
	args = append(args, q.Size, q.Page*q.Size)

	rows, err := or.DB.Query(listQuery, args...)
	if err != nil {
		or.Logger.Errorf("Error listing offers: %v", err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	offers := []Offer{}
	var ids []int64
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, myErr.ErrDBInternal
		}
		offers = append(offers, *o)
		ids = append(ids, o.OfferID)
	}

	if len(ids) > 0 {
		attrs, err := or.loadAttributes(ids)
		if err != nil {
			return nil, err
		}
		for i := range offers {
			offers[i].Attributes = attrs[offers[i].OfferID]
			if offers[i].Attributes == nil {
				offers[i].Attributes = []typesAttr.Value{}
			}
		}
	}

	totalPages := int((total + int64(q.Size) - 1) / int64(q.Size))

	return &typesOffer.Page[Offer]{
		Content:       offers,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

// QueryBuilder отдает пустую форму фильтра: шаблон атрибутов товара
// и пустой список городов
func (or *OfferDBRepository) QueryBuilder(productID int64) (*typesOffer.FilterRequest, error) {
	template, err := or.AttributeRepo.TemplateForProduct(productID)
	if err != nil {
		return nil, err
	}

	if template == nil {
		template = []typesAttr.Value{}
	}

	return &typesOffer.FilterRequest{
		Cities:           []typesCity.Local{},
		AttributeFilters: template,
	}, nil
}

// buildFilter собирает WHERE из query-параметров и тела фильтра.
// Возвращает условие и позиционные аргументы
func buildFilter(q typesOffer.ListQuery, filter typesOffer.FilterRequest) (string, []interface{}) {
	var conds []string
	var args []interface{}

	// productId не обязателен: без него листинг идет по всем товарам
	if q.ProductID != 0 {
		conds = append(conds, fmt.Sprintf("o.product_id = $%d", len(args)+1))
		args = append(args, q.ProductID)
	}

	// MINE/OTHERS: свои или чужие офферы по тому же товару
	if q.Other {
		conds = append(conds, fmt.Sprintf("o.profile_id <> $%d", len(args)+1))
	} else {
		conds = append(conds, fmt.Sprintf("o.profile_id = $%d", len(args)+1))
	}
	args = append(args, q.ProfileID)

	if q.Status != "" {
		conds = append(conds, fmt.Sprintf("o.status = $%d", len(args)+1))
		args = append(args, q.Status)
	}

	if len(filter.Cities) > 0 {
		codes := make([]string, 0, len(filter.Cities))
		for _, c := range filter.Cities {
			codes = append(codes, c.CityCode)
		}
		conds = append(conds, fmt.Sprintf("o.city_code = ANY($%d)", len(args)+1))
		args = append(args, pq.Array(codes))
	}

	for _, criterion := range filter.AttributeFilters {
		if !criterion.HasValue() {
			continue
		}
		cond, condArgs := criterionCondition(criterion, len(args))
		if cond == "" {
			continue
		}
		conds = append(conds, cond)
		args = append(args, condArgs...)
	}

	return strings.Join(conds, " AND "), args
}

// criterionCondition переводит один критерий фильтра в EXISTS-подзапрос.
// argOffset - сколько позиционных аргументов уже занято
func criterionCondition(c typesAttr.Value, argOffset int) (string, []interface{}) {
	var preds []string
	var args []interface{}

	next := func() int { return argOffset + len(args) + 1 }

	switch c.Kind {
	case typesAttr.KindString:
		if c.TextValue == nil || *c.TextValue == "" {
			return "", nil
		}
		preds = append(preds, fmt.Sprintf("oa.text_value ILIKE '%%' || $%d || '%%'", next()))
		args = append(args, *c.TextValue)
	case typesAttr.KindNumber:
		// В критерии пара number_value/number_limit читается как диапазон от/до
		if c.NumberValue != nil {
			preds = append(preds, fmt.Sprintf("oa.number_value >= $%d", next()))
			args = append(args, *c.NumberValue)
		}
		if c.NumberLimit != nil {
			preds = append(preds, fmt.Sprintf("oa.number_value <= $%d", next()))
			args = append(args, *c.NumberLimit)
		}
	case typesAttr.KindBoolean:
		if c.CheckValue == nil {
			return "", nil
		}
		preds = append(preds, fmt.Sprintf("oa.check_value = $%d", next()))
		args = append(args, *c.CheckValue)
	case typesAttr.KindEnum, typesAttr.KindMultiSelect:
		if len(c.SelectedValues) == 0 {
			return "", nil
		}
		preds = append(preds, fmt.Sprintf("oa.selected_values && $%d", next()))
		args = append(args, pq.Array(c.SelectedValues))
	default:
		return "", nil
	}

	if len(preds) == 0 {
		return "", nil
	}

	cond := fmt.Sprintf(
		"EXISTS (SELECT 1 FROM offer_attribute oa WHERE oa.offer_id = o.id AND oa.attribute_id = $%d AND %s)",
		argOffset+len(args)+1, strings.Join(preds, " AND "),
	)
	args = append(args, c.AttributeID)

	return cond, args
}

// loadAttributes грузит атрибуты пачкой для набора офферов,
// диапазоны ENUM/MULTISELECT дотягиваются из справочника
func (or *OfferDBRepository) loadAttributes(offerIDs []int64) (map[int64][]typesAttr.Value, error) {
	query := `
	SELECT oa.id, oa.offer_id, oa.attribute_id, a.name_ru, oa.kind,
		oa.text_value, oa.number_value, oa.number_limit, oa.check_value, oa.selected_values,
		o.product_id
	FROM offer_attribute oa
	JOIN attribute a ON a.id = oa.attribute_id
	JOIN offer o ON o.id = oa.offer_id
	WHERE oa.offer_id = ANY($1)
	ORDER BY oa.id
	`

	rows, err := or.DB.Query(query, pq.Array(offerIDs))
	if err != nil {
		or.Logger.Errorf("Error loading offer attributes: %v", err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	byOffer := make(map[int64][]typesAttr.Value)
	var rangeIDs []int64
	seenRange := make(map[int64]bool)

	for rows.Next() {
		var v typesAttr.Value
		var offerID int64
		var textValue sql.NullString
		var numberValue, numberLimit sql.NullFloat64
		var checkValue sql.NullBool
		var selected pq.StringArray

		err := rows.Scan(
			&v.ID, &offerID, &v.AttributeID, &v.AttributeTitle, &v.Kind,
			&textValue, &numberValue, &numberLimit, &checkValue, &selected,
			&v.ProductID,
		)
		if err != nil {
			return nil, myErr.ErrDBInternal
		}

		if textValue.Valid {
			v.TextValue = &textValue.String
		}
		if numberValue.Valid {
			v.NumberValue = &numberValue.Float64
		}
		if numberLimit.Valid {
			v.NumberLimit = &numberLimit.Float64
		}
		if checkValue.Valid {
			v.CheckValue = &checkValue.Bool
		}
		if len(selected) > 0 {
			v.SelectedValues = []string(selected)
		}

		if (v.Kind == typesAttr.KindEnum || v.Kind == typesAttr.KindMultiSelect) && !seenRange[v.AttributeID] {
			seenRange[v.AttributeID] = true
			rangeIDs = append(rangeIDs, v.AttributeID)
		}

		byOffer[offerID] = append(byOffer[offerID], v)
	}

	if len(rangeIDs) > 0 {
		ranges, err := or.AttributeRepo.PublicRanges(rangeIDs)
		if err != nil {
			return nil, err
		}
		for offerID, attrs := range byOffer {
			for i := range attrs {
				switch attrs[i].Kind {
				case typesAttr.KindEnum:
					attrs[i].EnumRange = ranges[attrs[i].AttributeID]
				case typesAttr.KindMultiSelect:
					attrs[i].MultiSelectRange = ranges[attrs[i].AttributeID]
				}
			}
			byOffer[offerID] = attrs
		}
	}

	return byOffer, nil
}

func insertAttributes(tx *sql.Tx, offerID int64, attrs []typesAttr.Value) error {
	query := `
	INSERT INTO offer_attribute (offer_id, attribute_id, kind, text_value, number_value, number_limit, check_value, selected_values)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for _, a := range attrs {
		_, err := tx.Exec(
			query,
			offerID,
			a.AttributeID,
			a.Kind,
			a.TextValue,
			a.NumberValue,
			a.NumberLimit,
			a.CheckValue,
			pq.Array(a.SelectedValues),
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
