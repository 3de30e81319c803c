package cli

import (
	"fmt"

	"github.com/vetsec/url-security/internal/domain"
)

// ExitError lets a command control the process exit code without
// necessarily printing an additional error message.
type ExitError struct {
	code    int
	message string
}

func (e *ExitError) Error() string {
	if e == nil {
		return ""
	}
	if e.message != "" {
		return e.message
	}
	return fmt.Sprintf("exit %d", e.code)
}

func (e *ExitError) Code() int {
	if e == nil {
		return 1
	}
	return e.code
}

func (e *ExitError) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

// verdictExit maps a verdict onto the process exit code so shell scripts can
// branch on the outcome: 0 safe, 1 suspicious, 2 fraudulent.
func verdictExit(verdict domain.Verdict) error {
	switch verdict {
	case domain.VerdictSuspicious:
		return &ExitError{code: 1}
	case domain.VerdictFraudulent:
		return &ExitError{code: 2}
	default:
		return nil
	}
}
