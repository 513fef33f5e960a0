// internal/common/metrics/metrics.go
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "worker_job_duration_seconds",
			Help:    "Duration of job processing in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	EligibilityDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eligibility_decisions_total",
			Help: "Eligibility evaluations by source and outcome",
		},
		[]string{"source", "eligible"},
	)

	ApplicationsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "applications_submitted_total",
			Help: "Apply attempts by result code",
		},
		[]string{"result"},
	)

	QuizAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_attempts_total",
			Help: "Recorded quiz attempts by pass/fail",
		},
		[]string{"passed"},
	)

	QuizScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "quiz_score_percent",
			Help:    "Distribution of recorded quiz scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_sent_total",
			Help: "Notifications by channel and outcome",
		},
		[]string{"channel", "status"},
	)
)

// JobTimer tracks one job from activation to completion or failure.
type JobTimer struct {
	taskType string
	start    time.Time
}

func StartJob(taskType string) *JobTimer {
	WorkerJobsActive.WithLabelValues(taskType).Inc()
	return &JobTimer{taskType: taskType, start: time.Now()}
}

func (t *JobTimer) Completed() {
	t.finish()
	WorkerJobsCompleted.WithLabelValues(t.taskType).Inc()
}

func (t *JobTimer) Failed(errorCode string) {
	t.finish()
	WorkerJobsFailed.WithLabelValues(t.taskType, errorCode).Inc()
}

func (t *JobTimer) finish() {
	WorkerJobsActive.WithLabelValues(t.taskType).Dec()
	WorkerJobDuration.WithLabelValues(t.taskType).Observe(time.Since(t.start).Seconds())
}

func RecordEligibility(source string, eligible bool) {
	EligibilityDecisions.WithLabelValues(source, strconv.FormatBool(eligible)).Inc()
}

func RecordQuizAttempt(score int, passed bool) {
	QuizAttempts.WithLabelValues(strconv.FormatBool(passed)).Inc()
	QuizScores.Observe(float64(score))
}

func RecordApplication(result string) {
	ApplicationsSubmitted.WithLabelValues(result).Inc()
}

func RecordNotification(channel, status string) {
	NotificationsSent.WithLabelValues(channel, status).Inc()
}
