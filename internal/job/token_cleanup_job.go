package job

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/rvermeer/authd/internal/pkg/timeutil"
	"github.com/rvermeer/authd/internal/repo"
)

// TokenCleanupJob clears verification codes and reset tokens whose expiry
// has passed. Lookups already reject expired entries, so this is storage
// hygiene, not an enforcement path.
type TokenCleanupJob struct {
	users *repo.UserRepo
}

func NewTokenCleanupJob(users *repo.UserRepo) *TokenCleanupJob {
	return &TokenCleanupJob{users: users}
}

func (j *TokenCleanupJob) Name() string {
	return "token_cleanup"
}

func (j *TokenCleanupJob) Run(ctx context.Context) error {
	if j.users == nil {
		return nil
	}
	now := timeutil.NowUnix()
	codes, err := j.users.ClearExpiredVerifications(ctx, now)
	if err != nil {
		return err
	}
	tokens, err := j.users.ClearExpiredResets(ctx, now)
	if err != nil {
		return err
	}
	if codes > 0 || tokens > 0 {
		logutil.GetLogger(ctx).Info("cleared expired tokens",
			zap.Int64("verification_codes", codes),
			zap.Int64("reset_tokens", tokens),
		)
	}
	return nil
}
