package profile

// CreateProfile структура с полями для регистрации профиля
type CreateProfile struct {
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
	CityCode    string `json:"cityCode"`
}

// ChangeProfile структура профиля с полями для изменения
type ChangeProfile struct {
	Name              string `json:"name"`
	Surname           string `json:"surname"`
	PhoneNumber       string `json:"phoneNumber"`
	CityCode          string `json:"cityCode"`
	PreferredLanguage string `json:"preferredLanguage"`
	PreferredCurrency string `json:"preferredCurrency"`
}

// LoginForm структура для входа по почте и паролю
type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
