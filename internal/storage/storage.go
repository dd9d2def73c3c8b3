// Package storage реализует хранилище данных на основе PostgreSQL
// для управления пользователями и строками профиля обучения.
// Предоставляет методы создания и чтения пользователей, работы с
// профилями и отметкой даты последней отправки рассылки.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/magabrotheeeer/daily-practice/internal/models"
)

// ErrNotFound возвращается, когда запрошенная запись отсутствует.
var ErrNotFound = errors.New("not found")

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с пользователями и профилями.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// ===== USER METHODS =====

// RegisterUser сохраняет нового пользователя и возвращает его UUID.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	newUID := uuid.NewString()
	query := `INSERT INTO users (uuid, email, username, password_hash, role,
			      trial_end_date, subscription_status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING uuid`
	var result string
	err := s.DB.QueryRowContext(ctx, query,
		newUID, user.Email, user.Username, user.PasswordHash, user.Role,
		user.TrialEndDate, user.SubscriptionStatus).Scan(&result)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetUserByUsername возвращает пользователя по имени.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uuid, email, username, password_hash, role, trial_end_date,
			      subscription_status, payment_customer_id, payment_subscription_id, created_at
			  FROM users WHERE username = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, username), op)
}

// GetUserByUUID возвращает пользователя по его UUID.
func (s *Storage) GetUserByUUID(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUserByUUID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uuid, email, username, password_hash, role, trial_end_date,
			      subscription_status, payment_customer_id, payment_subscription_id, created_at
			  FROM users WHERE uuid = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, userUID), op)
}

func (s *Storage) scanUser(row *sql.Row, op string) (*models.User, error) {
	var result models.User
	err := row.Scan(&result.UUID, &result.Email, &result.Username, &result.PasswordHash,
		&result.Role, &result.TrialEndDate, &result.SubscriptionStatus,
		&result.PaymentCustomerID, &result.PaymentSubscriptionID, &result.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// SetPaymentIDs сохраняет идентификаторы клиента и подписки платёжного провайдера.
func (s *Storage) SetPaymentIDs(ctx context.Context, userUID, customerID, subscriptionID string) error {
	const op = "storage.SetPaymentIDs"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET payment_customer_id = $1, payment_subscription_id = $2
			  WHERE uuid = $3`
	_, err := s.DB.ExecContext(ctx, query, customerID, subscriptionID, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateSubscriptionStatus меняет статус подписки пользователя по UUID
// и возвращает количество изменённых строк.
func (s *Storage) UpdateSubscriptionStatus(ctx context.Context, userUID, status string) (int, error) {
	const op = "storage.UpdateSubscriptionStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET subscription_status = $1 WHERE uuid = $2`
	result, err := s.DB.ExecContext(ctx, query, status, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// UpdateSubscriptionStatusByCustomerID меняет статус подписки по идентификатору
// клиента платёжного провайдера. Используется обработчиком webhook-событий.
func (s *Storage) UpdateSubscriptionStatusByCustomerID(ctx context.Context, customerID, status string) (int, error) {
	const op = "storage.UpdateSubscriptionStatusByCustomerID"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET subscription_status = $1 WHERE payment_customer_id = $2`
	result, err := s.DB.ExecContext(ctx, query, status, customerID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ===== ENROLLMENT METHODS =====

// CreateEnrollments заменяет профиль пользователя: в одной транзакции удаляет
// старые строки и вставляет новые, по строке на предмет. Возвращает количество
// вставленных строк.
func (s *Storage) CreateEnrollments(ctx context.Context, userUID string, entries []models.Enrollment) (int, error) {
	const op = "storage.CreateEnrollments"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx, `DELETE FROM enrollments WHERE user_uid = $1`, userUID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO enrollments (user_uid, child_name, subject, grade, delivery_time)
			  VALUES ($1, $2, $3, $4, $5)`
	for _, entry := range entries {
		if _, err = tx.ExecContext(ctx, query,
			userUID, entry.ChildName, entry.Subject, entry.Grade, entry.DeliveryTime); err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return len(entries), nil
}

// ListEnrollmentsByUser возвращает все строки профиля пользователя.
func (s *Storage) ListEnrollmentsByUser(ctx context.Context, userUID string) ([]*models.Enrollment, error) {
	const op = "storage.ListEnrollmentsByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, child_name, subject, grade, delivery_time, last_sent_date
			  FROM enrollments
			  WHERE user_uid = $1
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []*models.Enrollment
	for rows.Next() {
		var item models.Enrollment
		if err := rows.Scan(&item.ID, &item.UserUID, &item.ChildName, &item.Subject,
			&item.Grade, &item.DeliveryTime, &item.LastSentDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListUsersWithEnrollments возвращает пользователей, у которых есть хотя бы
// одна строка профиля. Используется планировщиком рассылки.
func (s *Storage) ListUsersWithEnrollments(ctx context.Context) ([]*models.User, error) {
	const op = "storage.ListUsersWithEnrollments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT DISTINCT u.uuid, u.email, u.username, u.password_hash, u.role,
			      u.trial_end_date, u.subscription_status, u.payment_customer_id,
			      u.payment_subscription_id, u.created_at
			  FROM users u
			  JOIN enrollments e ON e.user_uid = u.uuid
			  ORDER BY u.uuid`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []*models.User
	for rows.Next() {
		var item models.User
		if err := rows.Scan(&item.UUID, &item.Email, &item.Username, &item.PasswordHash,
			&item.Role, &item.TrialEndDate, &item.SubscriptionStatus,
			&item.PaymentCustomerID, &item.PaymentSubscriptionID, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateLastSentDate отмечает дату последней отправки на всех строках профиля
// пользователя сразу: дата трактуется как общая для пользователя.
// Возвращает количество изменённых строк.
func (s *Storage) UpdateLastSentDate(ctx context.Context, userUID string, day time.Time) (int, error) {
	const op = "storage.UpdateLastSentDate"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE enrollments SET last_sent_date = $1 WHERE user_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, day.Format("2006-01-02"), userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
