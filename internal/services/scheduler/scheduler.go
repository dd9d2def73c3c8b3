// Package scheduler реализует планировщик ежедневной рассылки вопросов.
//
// Планировщик просыпается с фиксированным интервалом и за один проход
// обходит всех пользователей с профилем. Письмо уходит, когда предпочтительное
// время доставки уже наступило и сегодня отправки ещё не было: проверка
// диапазоном вместо точного совпадения минут, поэтому опоздавший тик
// доставляет письмо, а дата последней отправки защищает от дублей.
package scheduler

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/magabrotheeeer/daily-practice/internal/lib/clockfmt"
	"github.com/magabrotheeeer/daily-practice/internal/lib/sl"
	"github.com/magabrotheeeer/daily-practice/internal/metrics"
	"github.com/magabrotheeeer/daily-practice/internal/models"
)

// Repository определяет методы хранилища, нужные планировщику.
type Repository interface {
	// ListUsersWithEnrollments возвращает пользователей с хотя бы одной строкой профиля.
	ListUsersWithEnrollments(ctx context.Context) ([]*models.User, error)
	// ListEnrollmentsByUser возвращает строки профиля пользователя.
	ListEnrollmentsByUser(ctx context.Context, userUID string) ([]*models.Enrollment, error)
	// UpdateLastSentDate отмечает дату отправки на всех строках пользователя.
	UpdateLastSentDate(ctx context.Context, userUID string, day time.Time) (int, error)
}

// Generator описывает генератор вопросов.
type Generator interface {
	Generate(subject string, grade, count int) []models.Question
}

// Mailer описывает отправку письма с вопросами.
type Mailer interface {
	Send(ctx context.Context, to, recipientName string, bundles []models.SubjectBundle) error
}

// Scheduler — объект с управляемым жизненным циклом: запускается через Run
// и останавливается отменой контекста. Повторный вход в проход исключён
// атомарным флагом.
type Scheduler struct {
	repo       Repository
	gen        Generator
	mailer     Mailer
	log        *slog.Logger
	interval   time.Duration
	perSubject int

	now        func() time.Time // подменяется в тестах
	inProgress atomic.Bool
}

// New создает новый экземпляр Scheduler.
func New(repo Repository, gen Generator, mailer Mailer, log *slog.Logger,
	interval time.Duration, perSubject int) *Scheduler {
	return &Scheduler{
		repo:       repo,
		gen:        gen,
		mailer:     mailer,
		log:        log,
		interval:   interval,
		perSubject: perSubject,
		now:        time.Now,
	}
}

// Run выполняет проход сразу и затем по тикеру, пока контекст не отменён.
func (s *Scheduler) Run(ctx context.Context) {
	s.log.Info("delivery scheduler started", slog.Duration("interval", s.interval))

	s.Tick(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("delivery scheduler stopped")
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick выполняет один проход по всем пользователям. Ошибка одного
// пользователя логируется и не прерывает обход остальных.
func (s *Scheduler) Tick(ctx context.Context) {
	if !s.inProgress.CompareAndSwap(false, true) {
		s.log.Warn("previous scan still in progress, skipping tick")
		return
	}
	defer s.inProgress.Store(false)

	metrics.SchedulerTicks.Inc()

	users, err := s.repo.ListUsersWithEnrollments(ctx)
	if err != nil {
		s.log.Error("failed to list users for delivery", sl.Err(err))
		return
	}

	for _, user := range users {
		if err := s.processUser(ctx, user); err != nil {
			s.log.Error("failed to deliver questions",
				slog.String("user_uid", user.UUID), sl.Err(err))
		}
	}
}

// processUser решает, пора ли слать письмо пользователю, и отправляет его.
func (s *Scheduler) processUser(ctx context.Context, user *models.User) error {
	now := s.now()

	if !user.HasAccess(now) {
		return nil
	}

	entries, err := s.repo.ListEnrollmentsByUser(ctx, user.UUID)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	if sentToday(entries, now) {
		return nil
	}

	// Время доставки общее для всех строк пользователя, берём первую.
	deliveryAt, err := clockfmt.At(entries[0].DeliveryTime, now)
	if err != nil {
		return err
	}
	if now.Before(deliveryAt) {
		return nil
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
	if len(bundles) == 0 {
		return nil
	}

	if err := s.mailer.Send(ctx, user.Email, entries[0].ChildName, bundles); err != nil {
		metrics.EmailSendFailures.Inc()
		return err
	}
	metrics.EmailsSent.Inc()

	if _, err := s.repo.UpdateLastSentDate(ctx, user.UUID, now); err != nil {
		return err
	}

	s.log.Info("daily questions delivered",
		slog.String("user_uid", user.UUID), slog.Int("subjects", len(bundles)))
	return nil
}

// sentToday проверяет, была ли уже отправка в текущую календарную дату
// по любой из строк пользователя.
func sentToday(entries []*models.Enrollment, now time.Time) bool {
	for _, entry := range entries {
		if entry.LastSentDate == nil {
			continue
		}
		y1, m1, d1 := entry.LastSentDate.Date()
		y2, m2, d2 := now.Date()
		if y1 == y2 && m1 == m2 && d1 == d2 {
			return true
		}
	}
	return false
}
