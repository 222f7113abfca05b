package execution

import (
	"context"

	"pws/internal/config"
	"pws/internal/domain"
)

// Executor runs a resolved selection and reports the verdict
type Executor interface {
	Command(sel domain.Selection) Command
	Execute(ctx context.Context, sel domain.Selection, profile config.Profile) domain.RunResult
}
