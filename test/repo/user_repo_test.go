package repo_test

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rvermeer/authd/internal/model"
	appErr "github.com/rvermeer/authd/internal/pkg/errors"
	"github.com/rvermeer/authd/internal/repo"
	"github.com/rvermeer/authd/test/testutil"
)

func newTestID() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

func newTestUser(code string, expires int64) *model.User {
	now := time.Now().Unix()
	id := newTestID()
	user := &model.User{
		ID:           id,
		Email:        id + "@example.com",
		Name:         "Test User",
		PasswordHash: "$2a$10$fakefakefakefakefakefufakefakefakefakefakefakefakefak",
		Ctime:        now,
		Mtime:        now,
	}
	if code != "" {
		user.VerificationCode = &code
		user.VerificationExpires = &expires
	}
	return user
}

func TestUserRepoCreateAndLookups(t *testing.T) {
	conn, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	users := repo.NewUserRepo(conn)
	ctx := context.Background()

	now := time.Now().Unix()
	user := newTestUser("123456", now+600)
	require.NoError(t, users.Create(ctx, user))

	byEmail, err := users.GetByEmail(ctx, user.Email)
	require.NoError(t, err)
	require.Equal(t, user.ID, byEmail.ID)
	require.False(t, byEmail.IsVerified)
	require.NotNil(t, byEmail.VerificationCode)

	byID, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Email, byID.Email)

	_, err = users.GetByID(ctx, "missing")
	require.ErrorIs(t, err, appErr.ErrNotFound)

	dup := newTestUser("", 0)
	dup.Email = user.Email
	require.ErrorIs(t, users.Create(ctx, dup), appErr.ErrConflict)
}

func TestUserRepoVerificationCodeExpiry(t *testing.T) {
	conn, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	users := repo.NewUserRepo(conn)
	ctx := context.Background()
	now := time.Now().Unix()

	live := newTestUser("654321", now+600)
	require.NoError(t, users.Create(ctx, live))

	found, err := users.GetByVerificationCode(ctx, "654321", now)
	require.NoError(t, err)
	require.Equal(t, live.ID, found.ID)

	// Same code, clock past the expiry: the lookup must miss.
	_, err = users.GetByVerificationCode(ctx, "654321", now+601)
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestUserRepoUpdateReplacesRecord(t *testing.T) {
	conn, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	users := repo.NewUserRepo(conn)
	ctx := context.Background()
	now := time.Now().Unix()

	user := newTestUser("111222", now+600)
	require.NoError(t, users.Create(ctx, user))

	user.IsVerified = true
	user.VerificationCode = nil
	user.VerificationExpires = nil
	token := newTestID()
	expires := now + 3600
	user.ResetToken = &token
	user.ResetExpires = &expires
	user.Mtime = now + 1
	require.NoError(t, users.Update(ctx, user))

	stored, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, stored.IsVerified)
	require.Nil(t, stored.VerificationCode)
	require.Nil(t, stored.VerificationExpires)
	require.NotNil(t, stored.ResetToken)
	require.Equal(t, token, *stored.ResetToken)

	byToken, err := users.GetByResetToken(ctx, token, now)
	require.NoError(t, err)
	require.Equal(t, user.ID, byToken.ID)
}

func TestUserRepoClearExpired(t *testing.T) {
	conn, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	users := repo.NewUserRepo(conn)
	ctx := context.Background()
	now := time.Now().Unix()

	expired := newTestUser("999000", now-1)
	require.NoError(t, users.Create(ctx, expired))
	live := newTestUser("999111", now+600)
	require.NoError(t, users.Create(ctx, live))

	_, err := users.ClearExpiredVerifications(ctx, now)
	require.NoError(t, err)

	cleared, err := users.GetByID(ctx, expired.ID)
	require.NoError(t, err)
	require.Nil(t, cleared.VerificationCode)
	require.Nil(t, cleared.VerificationExpires)

	kept, err := users.GetByID(ctx, live.ID)
	require.NoError(t, err)
	require.NotNil(t, kept.VerificationCode)
}
