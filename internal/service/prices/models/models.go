package models

import "github.com/m04kA/consultation-booking/internal/domain"

// ServiceResponse консультация каталога с действующей ценой
type ServiceResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PriceKey    string `json:"priceKey"`
	Price       string `json:"price"`
}

// ServicesResponse каталог консультаций
type ServicesResponse struct {
	Services []ServiceResponse `json:"services"`
}

// PricesResponse действующие цены по ключам
type PricesResponse struct {
	Prices domain.Prices `json:"prices"`
}

// UpdatePricesRequest частичное обновление цен
type UpdatePricesRequest struct {
	Prices map[string]string `json:"prices"`
}
