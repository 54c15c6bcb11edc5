package city

// Country - страна справочника географии
type Country struct {
	CountryCode string `json:"countryCode"`
	NameRu      string `json:"nameRu"`
	NameKz      string `json:"nameKz"`
	NameEn      string `json:"nameEn"`
	IsPublic    bool   `json:"isPublic"`
}

// City - город справочника географии
type City struct {
	CityCode    string `json:"cityCode"`
	NameRu      string `json:"nameRu"`
	NameKz      string `json:"nameKz"`
	NameEn      string `json:"nameEn"`
	IsPublic    bool   `json:"isPublic"`
	CountryCode string `json:"countryCode"`
}

// Local - компактная ссылка на город в фильтрах и формах
type Local struct {
	CityCode string `json:"cityCode"`
	Name     string `json:"name,omitempty"`
}
