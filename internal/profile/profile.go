package profile

import (
	"time"

	types "bazarlyq-main/internal/types/profile"
)

// Profile структура профиля продавца
type Profile struct {
	ID                string    `json:"profileId"` // uuid
	Name              string    `json:"name"`
	Surname           string    `json:"surname"`
	RegistrationDate  time.Time `json:"registrationDate"`
	Email             string    `json:"email"`
	PhoneNumber       string    `json:"phoneNumber"`
	PasswordHash      string    `json:"-"`
	CityCode          string    `json:"cityCode"`
	PreferredLanguage string    `json:"preferredLanguage"`
	PreferredCurrency string    `json:"preferredCurrency"`
}

// ProfileRepo интерфейс удовлетворяющий методам сущности профиля
//
//go:generate mockgen -source=internal/profile/profile.go -destination=internal/mocks/mock_profile_repo.go -package=mocks
type ProfileRepo interface {
	// CheckProfile - проверяет профиль по почте и паролю
	CheckProfile(email, password string) (*Profile, error)
	// CreateProfile создает профиль
	CreateProfile(p types.CreateProfile) (*Profile, error)
	// Info возвращает информацию о профиле
	Info(profileID string) (*Profile, error)
	// ChangeProfile меняет поля профиля с profileID по updateProfile
	ChangeProfile(profileID string, updateProfile types.ChangeProfile) (*Profile, error)
}
