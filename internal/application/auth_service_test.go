package application

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oreoluwa212/movie-recommendation-api/config"
	"github.com/oreoluwa212/movie-recommendation-api/internal/domain/entity"
	repo "github.com/oreoluwa212/movie-recommendation-api/internal/domain/repository"
	"github.com/oreoluwa212/movie-recommendation-api/pkg/helpers"
	"github.com/oreoluwa212/movie-recommendation-api/pkg/mailer"
)

// --- fakes ---

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User // keyed by hex id

	updateErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func copyUser(u *entity.User) *entity.User {
	c := *u
	return &c
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.users {
		if e.Email == u.Email || e.Username == u.Username {
			return repo.ErrDuplicate
		}
	}
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	f.users[u.ID.Hex()] = copyUser(u)
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		return copyUser(u), nil
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			return copyUser(u), nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.users[u.ID.Hex()]; !ok {
		return repo.ErrNotFound
	}
	f.users[u.ID.Hex()] = copyUser(u)
	return nil
}

func (f *fakeUserRepo) AddFavorite(_ context.Context, userID string, m entity.FavoriteMovie) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return repo.ErrNotFound
	}
	if u.HasFavorite(m.MovieID) {
		return repo.ErrDuplicate
	}
	u.Favorites = append(u.Favorites, m)
	return nil
}

func (f *fakeUserRepo) RemoveFavorite(_ context.Context, userID string, movieID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return repo.ErrNotFound
	}
	for i, fav := range u.Favorites {
		if fav.MovieID == movieID {
			u.Favorites = append(u.Favorites[:i], u.Favorites[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}

func (f *fakeUserRepo) AddWatched(_ context.Context, userID string, m entity.WatchedMovie) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return repo.ErrNotFound
	}
	if u.HasWatched(m.MovieID) {
		return repo.ErrDuplicate
	}
	u.Watched = append(u.Watched, m)
	return nil
}

func (f *fakeUserRepo) RemoveWatched(_ context.Context, userID string, movieID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return repo.ErrNotFound
	}
	for i, w := range u.Watched {
		if w.MovieID == movieID {
			u.Watched = append(u.Watched[:i], u.Watched[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}

type fakePublisher struct {
	mu   sync.Mutex
	jobs []mailer.EmailJob
	err  error
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if job, ok := body.(mailer.EmailJob); ok {
		f.jobs = append(f.jobs, job)
	}
	return nil
}

func (f *fakePublisher) last(t *testing.T) mailer.EmailJob {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.jobs, "expected at least one published email job")
	return f.jobs[len(f.jobs)-1]
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testConfig() *config.Config {
	return &config.Config{
		Env:             "test",
		CodeTTL:         time.Hour,
		MailSendEnabled: true,
	}
}

func newAuthService(r repo.UserRepository, pub EmailPublisher) *AuthService {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	return NewAuthService(r, jwt, pub, testLogger(), testConfig())
}

// --- tests ---

func TestRegister_PendingAndCodeQueued(t *testing.T) {
	r := newFakeUserRepo()
	pub := &fakePublisher{}
	svc := newAuthService(r, pub)

	res, err := svc.Register(context.Background(), "ana", "Ana@Example.com", "secret1")
	require.NoError(t, err)
	require.NotNil(t, res.User)

	assert.Equal(t, "ana@example.com", res.User.Email, "email is normalized")
	assert.False(t, res.User.IsEmailVerified)
	assert.True(t, res.EmailVerificationRequired)
	assert.NotEmpty(t, res.Token)
	require.NotNil(t, res.User.EmailVerificationToken)
	assert.Len(t, *res.User.EmailVerificationToken, 6)
	assert.NotEqual(t, "secret1", res.User.Password, "password must be hashed")

	job := pub.last(t)
	assert.Equal(t, mailer.TemplateVerificationCode, job.Template)
	assert.Equal(t, "ana@example.com", job.To)
	assert.Equal(t, *res.User.EmailVerificationToken, job.Data["Code"])
}

func TestRegister_DuplicateEmail(t *testing.T) {
	r := newFakeUserRepo()
	svc := newAuthService(r, &fakePublisher{})

	_, err := svc.Register(context.Background(), "ana", "ana@example.com", "secret1")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "other", "ana@example.com", "secret2")
	assert.ErrorIs(t, err, ErrDuplicateAccount)

	_, err = svc.Register(context.Background(), "ana", "second@example.com", "secret2")
	assert.ErrorIs(t, err, ErrDuplicateAccount)
}

func TestRegister_PublishFailureDoesNotAbort(t *testing.T) {
	r := newFakeUserRepo()
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := newAuthService(r, pub)

	res, err := svc.Register(context.Background(), "ana", "ana@example.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
}

func TestLogin_BlockedUntilVerified(t *testing.T) {
	r := newFakeUserRepo()
	svc := newAuthService(r, &fakePublisher{})

	_, err := svc.Register(context.Background(), "ana", "ana@example.com", "secret1")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "ana@example.com", "secret1")
	assert.ErrorIs(t, err, ErrEmailNotVerified)
}

func TestLogin_UnknownAndWrongPasswordIndistinguishable(t *testing.T) {
	r := newFakeUserRepo()
	svc := newAuthService(r, &fakePublisher{})

	_, err := svc.Register(context.Background(), "ana", "ana@example.com", "secret1")
	require.NoError(t, err)

	_, errUnknown := svc.Login(context.Background(), "ghost@example.com", "whatever")
	_, errWrongPwd := svc.Login(context.Background(), "ana@example.com", "not-the-password")

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPwd, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPwd.Error())
}

func TestVerifyEmail_ConsumesCode(t *testing.T) {
	r := newFakeUserRepo()
	pub := &fakePublisher{}
	svc := newAuthService(r, pub)

	res, err := svc.Register(context.Background(), "ana", "ana@example.com", "secret1")
	require.NoError(t, err)
	code := *res.User.EmailVerificationToken

	u, err := svc.VerifyEmail(context.Background(), "ana@example.com", code)
	require.NoError(t, err)
	assert.True(t, u.IsEmailVerified)
	assert.Nil(t, u.EmailVerificationToken)

	job := pub.last(t)
	assert.Equal(t, mailer.TemplateWelcome, job.Template)

	// Replay of the consumed code must fail.
	_, err = svc.VerifyEmail(context.Background(), "ana@example.com", code)
	assert.ErrorIs(t, err, ErrInvalidOrExpiredCode)

	// And login now succeeds.
	login, err := svc.Login(context.Background(), "ana@example.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
}

func TestVerifyEmail_WrongCode(t *testing.T) {
	r := newFakeUserRepo()
	svc := newAuthService(r, &fakePublisher{})

	_, err := svc.Register(context.Background(), "ana", "ana@example.com", "secret1")
	require.NoError(t, err)

	_, err = svc.VerifyEmail(context.Background(), "ana@example.com", "000000")
	assert.ErrorIs(t, err, ErrInvalidOrExpiredCode)
}

func TestVerifyEmail_ExpiredCode(t *testing.T) {
	r := newFakeUserRepo()
	svc := newAuthService(r, &fakePublisher{})
	svc.Cfg.CodeTTL = -time.Minute

	res, err := svc.Register(context.Background(), "ana", "ana@example.com", "secret1")
	require.NoError(t, err)

	_, err = svc.VerifyEmail(context.Background(), "ana@example.com", *res.User.EmailVerificationToken)
	assert.ErrorIs(t, err, ErrInvalidOrExpiredCode)
}

func TestResendVerification_RotatesCode(t *testing.T) {
	r := newFakeUserRepo()
	pub := &fakePublisher{}
	svc := newAuthService(r, pub)

	res, err := svc.Register(context.Background(), "ana", "ana@example.com", "secret1")
	require.NoError(t, err)
	oldCode := *res.User.EmailVerificationToken

	require.NoError(t, svc.ResendVerification(context.Background(), "ana@example.com"))

	newCode, ok := pub.last(t).Data["Code"].(string)
	require.True(t, ok)

	if newCode != oldCode {
		_, err = svc.VerifyEmail(context.Background(), "ana@example.com", oldCode)
		assert.ErrorIs(t, err, ErrInvalidOrExpiredCode, "old code must be invalidated")
	}
	_, err = svc.VerifyEmail(context.Background(), "ana@example.com", newCode)
	assert.NoError(t, err)
}

func TestResendVerification_AlreadyVerified(t *testing.T) {
	r := newFakeUserRepo()
	svc := newAuthService(r, &fakePublisher{})

	res, err := svc.Register(context.Background(), "ana", "ana@example.com", "secret1")
	require.NoError(t, err)
	_, err = svc.VerifyEmail(context.Background(), "ana@example.com", *res.User.EmailVerificationToken)
	require.NoError(t, err)

	err = svc.ResendVerification(context.Background(), "ana@example.com")
	assert.ErrorIs(t, err, ErrAlreadyVerified)
}

func TestResendVerification_DeliveryFailureSurfaced(t *testing.T) {
	r := newFakeUserRepo()
	pub := &fakePublisher{}
	svc := newAuthService(r, pub)

	_, err := svc.Register(context.Background(), "ana", "ana@example.com", "secret1")
	require.NoError(t, err)

	pub.err = errors.New("broker down")
	err = svc.ResendVerification(context.Background(), "ana@example.com")
	assert.ErrorIs(t, err, ErrDeliveryFailed)
}

func TestForgotPassword_UnknownEmailLooksLikeSuccess(t *testing.T) {
	r := newFakeUserRepo()
	pub := &fakePublisher{}
	svc := newAuthService(r, pub)

	err := svc.ForgotPassword(context.Background(), "ghost@example.com")
	assert.NoError(t, err)
	assert.Empty(t, pub.jobs, "nothing should be sent for an unknown email")
}

func TestResetPassword_FullFlow(t *testing.T) {
	r := newFakeUserRepo()
	pub := &fakePublisher{}
	svc := newAuthService(r, pub)

	res, err := svc.Register(context.Background(), "ana", "ana@example.com", "secret1")
	require.NoError(t, err)
	_, err = svc.VerifyEmail(context.Background(), "ana@example.com", *res.User.EmailVerificationToken)
	require.NoError(t, err)

	require.NoError(t, svc.ForgotPassword(context.Background(), "ana@example.com"))
	job := pub.last(t)
	require.Equal(t, mailer.TemplatePasswordReset, job.Template)
	code, ok := job.Data["Code"].(string)
	require.True(t, ok)

	require.NoError(t, svc.ResetPassword(context.Background(), "ana@example.com", code, "newsecret"))

	_, err = svc.Login(context.Background(), "ana@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "old password no longer works")

	login, err := svc.Login(context.Background(), "ana@example.com", "newsecret")
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)

	// The consumed code cannot be replayed.
	err = svc.ResetPassword(context.Background(), "ana@example.com", code, "thirdsecret")
	assert.ErrorIs(t, err, ErrInvalidOrExpiredCode)
}

func TestResetPassword_ExpiredCodeLeavesPasswordUnchanged(t *testing.T) {
	r := newFakeUserRepo()
	pub := &fakePublisher{}
	svc := newAuthService(r, pub)

	res, err := svc.Register(context.Background(), "ana", "ana@example.com", "secret1")
	require.NoError(t, err)
	_, err = svc.VerifyEmail(context.Background(), "ana@example.com", *res.User.EmailVerificationToken)
	require.NoError(t, err)

	svc.Cfg.CodeTTL = -time.Minute
	require.NoError(t, svc.ForgotPassword(context.Background(), "ana@example.com"))
	code := pub.last(t).Data["Code"].(string)

	err = svc.ResetPassword(context.Background(), "ana@example.com", code, "newsecret")
	assert.ErrorIs(t, err, ErrInvalidOrExpiredCode)

	_, err = svc.Login(context.Background(), "ana@example.com", "secret1")
	assert.NoError(t, err, "original password still valid")
}

func TestMe(t *testing.T) {
	r := newFakeUserRepo()
	svc := newAuthService(r, &fakePublisher{})

	res, err := svc.Register(context.Background(), "ana", "ana@example.com", "secret1")
	require.NoError(t, err)

	u, err := svc.Me(context.Background(), res.User.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "ana", u.Username)

	_, err = svc.Me(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrNotFoundOrForbidden)
}
