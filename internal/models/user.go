// Package models содержит доменные структуры сервиса ежедневных заданий:
// пользователей, профили обучения и сгенерированные вопросы.
package models

import "time"

// Статусы подписки пользователя.
const (
	SubscriptionTrial    = "trial"
	SubscriptionActive   = "active"
	SubscriptionCanceled = "canceled"
	SubscriptionExpired  = "expired"
)

// User представляет зарегистрированного пользователя системы.
type User struct {
	UUID                  string     // Уникальный идентификатор пользователя
	Email                 string     // Электронная почта
	Username              string     // Имя пользователя (уникальное)
	PasswordHash          string     // Хэш пароля пользователя
	Role                  string     // Роль пользователя, admin или user
	TrialEndDate          *time.Time // Дата истечения пробного периода
	SubscriptionStatus    string     // trial, active, canceled, expired
	PaymentCustomerID     *string    // Идентификатор клиента в платёжном провайдере
	PaymentSubscriptionID *string    // Идентификатор подписки в платёжном провайдере
	CreatedAt             time.Time
}

// HasAccess сообщает, открыт ли пользователю доступ к вопросам:
// действующая оплаченная подписка либо неистёкший пробный период.
func (u *User) HasAccess(now time.Time) bool {
	if u.SubscriptionStatus == SubscriptionActive {
		return true
	}
	if u.SubscriptionStatus == SubscriptionTrial && u.TrialEndDate != nil && now.Before(*u.TrialEndDate) {
		return true
	}
	return false
}

// SubscriptionInfo возвращается HTTP-слою при запросе состояния подписки.
type SubscriptionInfo struct {
	Status         string     `json:"status"`
	TrialEndDate   *time.Time `json:"trial_end_date,omitempty"`
	CustomerID     string     `json:"customer_id,omitempty"`
	SubscriptionID string     `json:"subscription_id,omitempty"`
}
