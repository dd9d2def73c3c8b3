// Package questions содержит бизнес-логику выдачи вопросов по запросу.
// Запрос списка вопросов одновременно отправляет тот же набор письмом —
// поведение исторического API сохранено.
package questions

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/daily-practice/internal/lib/sl"
	"github.com/magabrotheeeer/daily-practice/internal/models"
	"github.com/magabrotheeeer/daily-practice/internal/services/profile"
)

// Repository определяет методы хранилища, нужные для выдачи вопросов.
type Repository interface {
	GetUserByUUID(ctx context.Context, userUID string) (*models.User, error)
	ListEnrollmentsByUser(ctx context.Context, userUID string) ([]*models.Enrollment, error)
}

// Generator описывает генератор вопросов.
type Generator interface {
	Generate(subject string, grade, count int) []models.Question
}

// Mailer описывает отправку письма с вопросами.
type Mailer interface {
	Send(ctx context.Context, to, recipientName string, bundles []models.SubjectBundle) error
}

// QuestionsService реализует выдачу вопросов и попутную отправку письма.
type QuestionsService struct {
	repo       Repository
	gen        Generator
	mailer     Mailer
	perSubject int
	log        *slog.Logger
}

// NewQuestionsService создает новый экземпляр QuestionsService.
func NewQuestionsService(repo Repository, gen Generator, mailer Mailer,
	perSubject int, log *slog.Logger) *QuestionsService {
	return &QuestionsService{
		repo:       repo,
		gen:        gen,
		mailer:     mailer,
		perSubject: perSubject,
		log:        log,
	}
}

// List генерирует свежие вопросы по каждой строке профиля пользователя
// и отправляет тот же набор письмом. Ошибка отправки логируется и не
// мешает вернуть вопросы в HTTP-ответе.
func (s *QuestionsService) List(ctx context.Context, userUID string) ([]models.SubjectBundle, error) {
	user, err := s.repo.GetUserByUUID(ctx, userUID)
	if err != nil {
		return nil, err
	}

	entries, err := s.repo.ListEnrollmentsByUser(ctx, userUID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, profile.ErrProfileNotFound
	}

	bundles := make([]models.SubjectBundle, 0, len(entries))
	for _, entry := range entries {
		generated := s.gen.Generate(entry.Subject, entry.Grade, s.perSubject)
		if len(generated) == 0 {
			continue
		}
		bundles = append(bundles, models.SubjectBundle{
			Subject:   entry.Subject,
			Questions: generated,
		})
	}

	if len(bundles) > 0 {
		if err := s.mailer.Send(ctx, user.Email, entries[0].ChildName, bundles); err != nil {
			s.log.Error("failed to send on-demand email", sl.Err(err))
		}
	}

	return bundles, nil
}
