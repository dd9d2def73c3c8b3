package paymentprovider

import "time"

// CreateCustomerRequest представляет запрос на создание клиента.
type CreateCustomerRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Customer представляет клиента на стороне провайдера.
type Customer struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateSubscriptionRequest представляет запрос на создание подписки.
type CreateSubscriptionRequest struct {
	CustomerID string `json:"customer_id"`
	PriceID    string `json:"price_id"`
}

// Subscription представляет подписку на стороне провайдера.
type Subscription struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	PriceID    string    `json:"price_id"`
	Status     string    `json:"status"` // incomplete, active, canceled
	CreatedAt  time.Time `json:"created_at"`
}
