package elastic

// OfferDoc - представление оффера в поисковом индексе
type OfferDoc struct {
	ID           string  `json:"id"` // offer id в строковом виде
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	ProductID    int64   `json:"productId"`
	CategoryCode string  `json:"categoryCode"`
	CityCode     string  `json:"cityCode"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	Status       string  `json:"status"`
}
