package models

// События платёжного провайдера, которые обрабатывает система.
const (
	EventPaymentSucceeded    = "payment.succeeded"
	EventSubscriptionDeleted = "subscription.deleted"
)

// WebhookPayload — тело уведомления платёжного провайдера.
type WebhookPayload struct {
	Event  string `json:"event"`
	Object struct {
		ID             string            `json:"id"`              // ID события или платежа
		Status         string            `json:"status"`          // статус на стороне провайдера
		CustomerID     string            `json:"customer_id"`     // клиент провайдера
		SubscriptionID string            `json:"subscription_id"` // подписка провайдера
		Metadata       map[string]string `json:"metadata"`        // user_uid и прочее
	} `json:"object"`
}
