// pkg/registry/builtin.go
package registry

// Builtin lists the activities implemented by the worker manager. Sync keeps
// configs/activity-registry.json in step with it.
func Builtin() []Activity {
	activities := []Activity{
		{
			ID:          "jobs.eligibility.evaluate",
			DisplayName: "Evaluate Eligibility",
			Description: "Checks a seeker's education and skill match against one job",
			Category:    "eligibility",
			TaskType:    "evaluate-eligibility",
			Inputs:      []string{"identity", "jobId"},
			Outputs:     []string{"eligible", "educationOk", "skillsOk", "matchPercentage", "matchedCount", "requiredCount", "missingSkillIds", "reasons", "jobActive"},
			ErrorCodes:  []string{"JOB_NOT_FOUND", "FORBIDDEN", "INVALID_INPUT", "STORAGE_FAILURE"},
			Timeout:     "10s",
			Retries:     3,
			Tags:        []string{"seeker", "read"},
		},
		{
			ID:          "jobs.eligibility.list",
			DisplayName: "List Jobs With Eligibility",
			Description: "Lists active jobs newest first with a per-job eligibility badge for seekers",
			Category:    "eligibility",
			TaskType:    "list-job-eligibility",
			Inputs:      []string{"identity", "from", "size"},
			Outputs:     []string{"total", "from", "size", "jobs"},
			ErrorCodes:  []string{"SEARCH_QUERY_FAILED", "INVALID_INPUT", "STORAGE_FAILURE"},
			Timeout:     "15s",
			Retries:     3,
			Tags:        []string{"listing", "read"},
		},
		{
			ID:          "jobs.application.submit",
			DisplayName: "Submit Application",
			Description: "Creates a pending application after availability, duplicate and eligibility checks",
			Category:    "application",
			TaskType:    "submit-application",
			Inputs:      []string{"identity", "jobId"},
			Outputs:     []string{"applicationId", "jobId", "seekerId", "applicationStatus", "appliedAt", "matchPercentage", "hasQuiz", "quizId", "nextStep"},
			ErrorCodes:  []string{"JOB_NOT_FOUND", "JOB_UNAVAILABLE", "ALREADY_APPLIED", "NOT_ELIGIBLE", "FORBIDDEN", "INVALID_INPUT", "STORAGE_FAILURE"},
			Timeout:     "10s",
			Retries:     3,
			Tags:        []string{"seeker", "write"},
		},
		{
			ID:          "jobs.application.update-status",
			DisplayName: "Update Application Status",
			Description: "Moves an application to a review status on behalf of the owning company",
			Category:    "application",
			TaskType:    "update-application-status",
			Inputs:      []string{"identity", "applicationId", "status"},
			Outputs:     []string{"applicationId", "jobId", "seekerId", "applicationStatus", "updatedAt"},
			ErrorCodes:  []string{"APPLICATION_NOT_FOUND", "INVALID_STATUS", "FORBIDDEN", "INVALID_INPUT", "STORAGE_FAILURE"},
			Timeout:     "10s",
			Retries:     3,
			Tags:        []string{"company", "write"},
		},
		{
			ID:          "jobs.application.list",
			DisplayName: "List Applications",
			Description: "Lists a seeker's applications, or a company's applicants, with status and quiz result",
			Category:    "application",
			TaskType:    "list-applications",
			Inputs:      []string{"identity", "jobId"},
			Outputs:     []string{"count", "applications"},
			ErrorCodes:  []string{"JOB_NOT_FOUND", "FORBIDDEN", "INVALID_INPUT", "STORAGE_FAILURE"},
			Timeout:     "10s",
			Retries:     3,
			Tags:        []string{"seeker", "company", "read"},
		},
		{
			ID:          "jobs.application.notify",
			DisplayName: "Send Notification",
			Description: "Sends the e-mail and SMS notices for applications and quiz results",
			Category:    "application",
			TaskType:    "send-notification",
			Inputs:      []string{"notificationType", "recipientType", "recipientId", "priority", "jobTitle", "applicationId", "applicationStatus", "quizTitle", "score", "passed"},
			Outputs:     []string{"notificationId", "status", "channels", "sentAt"},
			ErrorCodes:  []string{"NOTIFICATION_SEND_FAILED", "INVALID_INPUT", "STORAGE_FAILURE"},
			Timeout:     "30s",
			Retries:     3,
			Tags:        []string{"notification", "aws"},
		},
		{
			ID:          "jobs.assessment.check-access",
			DisplayName: "Check Quiz Access",
			Description: "Reports whether a seeker may start a quiz and returns its questions without answers",
			Category:    "assessment",
			TaskType:    "check-quiz-access",
			Inputs:      []string{"identity", "quizId"},
			Outputs:     []string{"quizId", "canAttempt", "reason", "previousAttempt", "title", "durationMinutes", "passingScore", "questions"},
			ErrorCodes:  []string{"QUIZ_NOT_FOUND", "FORBIDDEN", "INVALID_INPUT", "STORAGE_FAILURE"},
			Timeout:     "10s",
			Retries:     3,
			Tags:        []string{"seeker", "read"},
		},
		{
			ID:          "jobs.assessment.submit",
			DisplayName: "Submit Quiz",
			Description: "Scores a seeker's single attempt at a quiz",
			Category:    "assessment",
			TaskType:    "submit-quiz",
			Inputs:      []string{"identity", "quizId", "answers", "timeTakenSeconds"},
			Outputs:     []string{"attemptId", "quizId", "score", "correctCount", "totalQuestions", "passingScore", "passed", "timeTakenSeconds", "attemptedAt"},
			ErrorCodes:  []string{"QUIZ_NOT_FOUND", "ALREADY_ATTEMPTED", "NO_QUESTIONS", "FORBIDDEN", "INVALID_INPUT", "STORAGE_FAILURE"},
			Timeout:     "10s",
			Retries:     3,
			Tags:        []string{"seeker", "write"},
		},
		{
			ID:          "jobs.assessment.create",
			DisplayName: "Create Quiz",
			Description: "Attaches a multiple-choice quiz to one of the company's jobs",
			Category:    "assessment",
			TaskType:    "create-quiz",
			Inputs:      []string{"identity", "jobId", "title", "durationMinutes", "passingScore", "questions"},
			Outputs:     []string{"quizId", "jobId", "title", "durationMinutes", "passingScore", "questionCount"},
			ErrorCodes:  []string{"JOB_NOT_FOUND", "QUIZ_EXISTS", "FORBIDDEN", "INVALID_INPUT", "STORAGE_FAILURE"},
			Timeout:     "10s",
			Retries:     3,
			Tags:        []string{"company", "write"},
		},
	}

	for i := range activities {
		activities[i].Version = "1.0.0"
		activities[i].ImplementationStatus = StatusCompleted
		activities[i].Workflows = []string{}
	}
	return activities
}
