package services

import "fmt"

// Limits is the entitlement policy for non-premium accounts. Premium
// users are never restricted by these rules.
type Limits struct {
	FreeWorkplaces       int
	FreeQuizzes          int
	FreeQuestionsPerQuiz int
}

func DefaultLimits() Limits {
	return Limits{
		FreeWorkplaces:       1,
		FreeQuizzes:          1,
		FreeQuestionsPerQuiz: 20,
	}
}

func (l Limits) CheckWorkplaceCount(isPremium bool, existing int64) error {
	if isPremium {
		return nil
	}
	if existing >= int64(l.FreeWorkplaces) {
		return &QuotaError{Reason: fmt.Sprintf("free accounts are limited to %d workplace(s)", l.FreeWorkplaces)}
	}
	return nil
}

func (l Limits) CheckQuizCount(isPremium bool, existing int64) error {
	if isPremium {
		return nil
	}
	if existing >= int64(l.FreeQuizzes) {
		return &QuotaError{Reason: fmt.Sprintf("free accounts are limited to %d question block(s)", l.FreeQuizzes)}
	}
	return nil
}

// CheckQuestionTotal validates the question count a quiz would hold
// after a write. The check is against the resulting total, not the
// incoming batch.
func (l Limits) CheckQuestionTotal(isPremium bool, total int) error {
	if isPremium {
		return nil
	}
	if total > l.FreeQuestionsPerQuiz {
		return &QuotaError{Reason: fmt.Sprintf("free accounts are limited to %d questions per block", l.FreeQuestionsPerQuiz)}
	}
	return nil
}
