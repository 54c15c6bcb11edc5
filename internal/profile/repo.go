package profile

import (
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	myErr "bazarlyq-main/internal/types/errors"
	types "bazarlyq-main/internal/types/profile"
)

type ProfileDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewProfileDBRepository(db *sql.DB, l *zap.SugaredLogger) *ProfileDBRepository {
	return &ProfileDBRepository{
		DB:     db,
		Logger: l,
	}
}

const profileColumns = `id, name, surname, registration_date, email,
	   phone_number, password_hash, city_code, preferred_language, preferred_currency`

func (pr *ProfileDBRepository) CheckProfile(email, password string) (*Profile, error) {
	p, err := pr.byEmail(email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)); err != nil {
		return nil, myErr.ErrBadPassword
	}

	return p, nil
}

func (pr *ProfileDBRepository) CreateProfile(cp types.CreateProfile) (*Profile, error) {
	// Профиль с такой почтой уже есть
	if _, err := pr.byEmail(cp.Email); err == nil {
		return nil, myErr.ErrAlreadyExists
	} else if !errors.Is(err, myErr.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cp.Password), bcrypt.DefaultCost)
	if err != nil {
		pr.Logger.Errorf("Ошибка при хэшировании пароля: %v", err)
		return nil, myErr.ErrDBInternal
	}

	p := &Profile{
		ID:                uuid.New().String(),
		Name:              cp.Name,
		Surname:           cp.Surname,
		RegistrationDate:  time.Now(),
		Email:             cp.Email,
		PhoneNumber:       cp.PhoneNumber,
		PasswordHash:      string(hash),
		CityCode:          cp.CityCode,
		PreferredLanguage: "ru",
		PreferredCurrency: "KZT",
	}

	query := `
	INSERT INTO profile (id, name, surname, registration_date, email,
						 phone_number, password_hash, city_code,
						 preferred_language, preferred_currency)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = pr.DB.Exec(query,
		p.ID, p.Name, p.Surname, p.RegistrationDate, p.Email,
		p.PhoneNumber, p.PasswordHash, p.CityCode,
		p.PreferredLanguage, p.PreferredCurrency,
	)
	if err != nil {
		pr.Logger.Errorf("Ошибка при создании профиля: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return p, nil
}

func (pr *ProfileDBRepository) Info(profileID string) (*Profile, error) {
	query := `
	SELECT ` + profileColumns + `
	FROM profile
	WHERE id = $1
	`
	p := &Profile{}
	err := pr.DB.QueryRow(query, profileID).
		Scan(
			&p.ID, &p.Name, &p.Surname, &p.RegistrationDate, &p.Email,
			&p.PhoneNumber, &p.PasswordHash, &p.CityCode,
			&p.PreferredLanguage, &p.PreferredCurrency,
		)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}
		pr.Logger.Warnf("Ошибка при получении информации о профиле: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return p, nil
}

func (pr *ProfileDBRepository) ChangeProfile(profileID string, updateProfile types.ChangeProfile) (*Profile, error) {
	fields := []string{}
	args := []interface{}{}
	argID := 1

	// Динамически добавляем поля в обновление
	if updateProfile.Name != "" {
		fields = append(fields, "name = $"+strconv.Itoa(argID))
		args = append(args, updateProfile.Name)
		argID++
	}
	if updateProfile.Surname != "" {
		fields = append(fields, "surname = $"+strconv.Itoa(argID))
		args = append(args, updateProfile.Surname)
		argID++
	}
	if updateProfile.PhoneNumber != "" {
		fields = append(fields, "phone_number = $"+strconv.Itoa(argID))
		args = append(args, updateProfile.PhoneNumber)
		argID++
	}
	if updateProfile.CityCode != "" {
		fields = append(fields, "city_code = $"+strconv.Itoa(argID))
		args = append(args, updateProfile.CityCode)
		argID++
	}
	if updateProfile.PreferredLanguage != "" {
		fields = append(fields, "preferred_language = $"+strconv.Itoa(argID))
		args = append(args, updateProfile.PreferredLanguage)
		argID++
	}
	if updateProfile.PreferredCurrency != "" {
		fields = append(fields, "preferred_currency = $"+strconv.Itoa(argID))
		args = append(args, updateProfile.PreferredCurrency)
		argID++
	}

	if len(fields) == 0 {
		return pr.Info(profileID) // Если ничего не обновляется, просто вернуть текущие данные
	}

	query := "UPDATE profile SET " + strings.Join(fields, ", ") + " WHERE id = $" + strconv.Itoa(argID) // nolint:gosec
	args = append(args, profileID)

	res, err := pr.DB.Exec(query, args...)
	if err != nil {
		pr.Logger.Warnf("Ошибка при обновлении профиля: %v", err)
		return nil, myErr.ErrDBInternal
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		pr.Logger.Warnf("Не удалось получить количество обновлённых строк: %v", err)
		return nil, myErr.ErrDBInternal
	}

	if rowsAffected == 0 {
		return nil, myErr.ErrNotFound
	}

	return pr.Info(profileID) // Возвращаем обновлённые данные профиля
}

func (pr *ProfileDBRepository) byEmail(email string) (*Profile, error) {
	query := `
	SELECT ` + profileColumns + `
	FROM profile
	WHERE email = $1
	`
	p := &Profile{}
	err := pr.DB.QueryRow(query, email).
		Scan(
			&p.ID, &p.Name, &p.Surname, &p.RegistrationDate, &p.Email,
			&p.PhoneNumber, &p.PasswordHash, &p.CityCode,
			&p.PreferredLanguage, &p.PreferredCurrency,
		)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}
		pr.Logger.Warnf("Ошибка при поиске профиля по почте: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return p, nil
}
