// Package payment содержит бизнес-логику подписки: оформление и отмена
// через платёжного провайдера и обработку его webhook-событий.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/daily-practice/internal/lib/sl"
	"github.com/magabrotheeeer/daily-practice/internal/models"
	"github.com/magabrotheeeer/daily-practice/internal/paymentprovider"
)

// ErrNoSubscription возвращается при отмене, когда подписки у провайдера нет.
var ErrNoSubscription = errors.New("no provider subscription")

// UserRepository определяет методы хранилища для платёжной логики.
type UserRepository interface {
	GetUserByUUID(ctx context.Context, userUID string) (*models.User, error)
	SetPaymentIDs(ctx context.Context, userUID, customerID, subscriptionID string) error
	UpdateSubscriptionStatus(ctx context.Context, userUID, status string) (int, error)
	UpdateSubscriptionStatusByCustomerID(ctx context.Context, customerID, status string) (int, error)
}

// ProviderClient описывает клиент платёжного провайдера.
type ProviderClient interface {
	CreateCustomer(ctx context.Context, email, name string) (*paymentprovider.Customer, error)
	CreateSubscription(ctx context.Context, customerID, priceID string) (*paymentprovider.Subscription, error)
	CancelSubscription(ctx context.Context, subscriptionID string) error
}

// PaymentService реализует оформление, статус и отмену подписки.
type PaymentService struct {
	repo     UserRepository
	provider ProviderClient
	priceID  string
	log      *slog.Logger
}

// NewPaymentService создает новый экземпляр PaymentService.
func NewPaymentService(repo UserRepository, provider ProviderClient, priceID string, log *slog.Logger) *PaymentService {
	return &PaymentService{
		repo:     repo,
		provider: provider,
		priceID:  priceID,
		log:      log,
	}
}

// Subscribe оформляет подписку у провайдера. Если подписка уже оформлена,
// возвращает текущее состояние вместо создания дубликата.
func (s *PaymentService) Subscribe(ctx context.Context, userUID string) (*models.SubscriptionInfo, error) {
	user, err := s.repo.GetUserByUUID(ctx, userUID)
	if err != nil {
		return nil, err
	}

	if user.PaymentSubscriptionID != nil && user.SubscriptionStatus == models.SubscriptionActive {
		return buildInfo(user), nil
	}

	customerID := ""
	if user.PaymentCustomerID != nil {
		customerID = *user.PaymentCustomerID
	} else {
		customer, err := s.provider.CreateCustomer(ctx, user.Email, user.Username)
		if err != nil {
			return nil, fmt.Errorf("failed to create provider customer: %w", err)
		}
		customerID = customer.ID
	}

	subscription, err := s.provider.CreateSubscription(ctx, customerID, s.priceID)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider subscription: %w", err)
	}

	if err := s.repo.SetPaymentIDs(ctx, userUID, customerID, subscription.ID); err != nil {
		return nil, err
	}

	// Статус станет active после webhook-события payment.succeeded.
	s.log.Info("created provider subscription",
		slog.String("user_uid", userUID), slog.String("subscription_id", subscription.ID))

	user.PaymentCustomerID = &customerID
	user.PaymentSubscriptionID = &subscription.ID
	return buildInfo(user), nil
}

// Status возвращает текущее состояние подписки пользователя.
func (s *PaymentService) Status(ctx context.Context, userUID string) (*models.SubscriptionInfo, error) {
	user, err := s.repo.GetUserByUUID(ctx, userUID)
	if err != nil {
		return nil, err
	}
	return buildInfo(user), nil
}

// Cancel отменяет подписку у провайдера и помечает её отменённой локально.
func (s *PaymentService) Cancel(ctx context.Context, userUID string) error {
	user, err := s.repo.GetUserByUUID(ctx, userUID)
	if err != nil {
		return err
	}
	if user.PaymentSubscriptionID == nil {
		return ErrNoSubscription
	}

	if err := s.provider.CancelSubscription(ctx, *user.PaymentSubscriptionID); err != nil {
		return fmt.Errorf("failed to cancel provider subscription: %w", err)
	}

	if _, err := s.repo.UpdateSubscriptionStatus(ctx, userUID, models.SubscriptionCanceled); err != nil {
		return err
	}
	s.log.Info("canceled subscription", slog.String("user_uid", userUID))
	return nil
}

// ProcessWebhookEvent обновляет локальное состояние подписки по событию
// провайдера. Неизвестные события игнорируются с записью в лог.
func (s *PaymentService) ProcessWebhookEvent(ctx context.Context, payload *models.WebhookPayload) error {
	switch payload.Event {
	case models.EventPaymentSucceeded:
		count, err := s.repo.UpdateSubscriptionStatusByCustomerID(ctx,
			payload.Object.CustomerID, models.SubscriptionActive)
		if err != nil {
			s.log.Error("failed to activate subscription", sl.Err(err))
			return err
		}
		s.log.Info("subscription activated",
			slog.String("customer_id", payload.Object.CustomerID), slog.Int("users", count))
	case models.EventSubscriptionDeleted:
		count, err := s.repo.UpdateSubscriptionStatusByCustomerID(ctx,
			payload.Object.CustomerID, models.SubscriptionCanceled)
		if err != nil {
			s.log.Error("failed to cancel subscription", sl.Err(err))
			return err
		}
		s.log.Info("subscription canceled by provider",
			slog.String("customer_id", payload.Object.CustomerID), slog.Int("users", count))
	default:
		s.log.Info("ignored webhook event", slog.String("event", payload.Event))
	}
	return nil
}

func buildInfo(user *models.User) *models.SubscriptionInfo {
	info := models.SubscriptionInfo{
		Status:       user.SubscriptionStatus,
		TrialEndDate: user.TrialEndDate,
	}
	if user.PaymentCustomerID != nil {
		info.CustomerID = *user.PaymentCustomerID
	}
	if user.PaymentSubscriptionID != nil {
		info.SubscriptionID = *user.PaymentSubscriptionID
	}
	return &info
}
