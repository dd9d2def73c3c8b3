// Package metrics описывает счётчики Prometheus для планировщика рассылки.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SchedulerTicks — количество выполненных тиков планировщика.
	SchedulerTicks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "daily_practice_scheduler_ticks_total",
		Help: "Number of completed scheduler scan passes.",
	})

	// EmailsSent — количество успешно отправленных писем с вопросами.
	EmailsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "daily_practice_emails_sent_total",
		Help: "Number of question emails successfully dispatched.",
	})

	// EmailSendFailures — количество неудачных попыток отправки письма.
	EmailSendFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "daily_practice_email_send_failures_total",
		Help: "Number of failed question email dispatch attempts.",
	})
)
