// Package paymentprovider реализует HTTP-клиент платёжного провайдера:
// создание клиента, создание подписки на тарифный план и её отмена.
package paymentprovider

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client инкапсулирует доступ к API платёжного провайдера.
type Client struct {
	secretKey  string
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт новый клиент платёжного провайдера.
func NewClient(secretKey, apiURL string) *Client {
	return &Client{
		secretKey:  secretKey,
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	url := c.apiURL + path
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return nil, err
	}
	auth := base64.StdEncoding.EncodeToString([]byte(c.secretKey + ":"))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) do(req *http.Request, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}
	if result == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(result)
}

// CreateCustomer регистрирует пользователя у провайдера и возвращает клиента.
func (c *Client) CreateCustomer(ctx context.Context, email, name string) (*Customer, error) {
	const op = "paymentprovider.CreateCustomer"
	req, err := c.newRequest(ctx, http.MethodPost, "/customers", CreateCustomerRequest{
		Email: email,
		Name:  name,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var customer Customer
	if err := c.do(req, &customer); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &customer, nil
}

// CreateSubscription создаёт подписку клиента на тарифный план priceID.
func (c *Client) CreateSubscription(ctx context.Context, customerID, priceID string) (*Subscription, error) {
	const op = "paymentprovider.CreateSubscription"
	req, err := c.newRequest(ctx, http.MethodPost, "/subscriptions", CreateSubscriptionRequest{
		CustomerID: customerID,
		PriceID:    priceID,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var subscription Subscription
	if err := c.do(req, &subscription); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &subscription, nil
}

// CancelSubscription отменяет подписку у провайдера.
func (c *Client) CancelSubscription(ctx context.Context, subscriptionID string) error {
	const op = "paymentprovider.CancelSubscription"
	req, err := c.newRequest(ctx, http.MethodDelete, "/subscriptions/"+subscriptionID, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
