// Package profile содержит бизнес-логику профиля обучения:
// создание строк подписки на предметы и чтение агрегированного профиля.
package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/daily-practice/internal/lib/clockfmt"
	"github.com/magabrotheeeer/daily-practice/internal/models"
)

// ErrProfileNotFound возвращается, когда у пользователя нет строк профиля.
var ErrProfileNotFound = errors.New("profile not found")

// Repository определяет методы для работы со строками профиля в хранилище.
type Repository interface {
	// CreateEnrollments заменяет строки профиля пользователя и возвращает их число.
	CreateEnrollments(ctx context.Context, userUID string, entries []models.Enrollment) (int, error)
	// ListEnrollmentsByUser возвращает все строки профиля пользователя.
	ListEnrollmentsByUser(ctx context.Context, userUID string) ([]*models.Enrollment, error)
}

// ProfileService реализует бизнес-логику работы с профилем обучения.
type ProfileService struct {
	repo Repository
	log  *slog.Logger
}

// NewProfileService создает новый экземпляр ProfileService.
func NewProfileService(repo Repository, log *slog.Logger) *ProfileService {
	return &ProfileService{
		repo: repo,
		log:  log,
	}
}

// Create конвертирует форму профиля в строки подписки на предметы,
// по строке на предмет. Время доставки проверяется на разборчивость.
func (s *ProfileService) Create(ctx context.Context, userUID string, req models.DummyProfile) (int, error) {
	if _, _, err := clockfmt.Parse(req.DeliveryTime); err != nil {
		return 0, fmt.Errorf("invalid delivery time: %w", err)
	}

	entries := make([]models.Enrollment, 0, len(req.Subjects))
	for _, subject := range req.Subjects {
		entries = append(entries, models.Enrollment{
			UserUID:      userUID,
			ChildName:    req.ChildName,
			Subject:      subject,
			Grade:        req.Grade,
			DeliveryTime: req.DeliveryTime,
		})
	}

	count, err := s.repo.CreateEnrollments(ctx, userUID, entries)
	if err != nil {
		return 0, err
	}
	s.log.Info("created profile", slog.String("user_uid", userUID), slog.Int("subjects", count))
	return count, nil
}

// Read агрегирует строки профиля пользователя в один ответ.
// Имя ребёнка, класс и время доставки берутся из первой строки:
// по инварианту они общие для всех строк пользователя.
func (s *ProfileService) Read(ctx context.Context, userUID string) (*models.Profile, error) {
	entries, err := s.repo.ListEnrollmentsByUser(ctx, userUID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrProfileNotFound
	}

	result := models.Profile{
		ChildName:    entries[0].ChildName,
		Grade:        entries[0].Grade,
		DeliveryTime: entries[0].DeliveryTime,
	}
	for _, entry := range entries {
		result.Subjects = append(result.Subjects, entry.Subject)
	}
	return &result, nil
}
