package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cannaconnect/cannaconnect-api/internal/auth"
	"github.com/cannaconnect/cannaconnect-api/internal/config"
	"github.com/cannaconnect/cannaconnect-api/internal/metrics"
	"github.com/cannaconnect/cannaconnect-api/internal/models"
	"github.com/cannaconnect/cannaconnect-api/internal/repository"
	"github.com/cannaconnect/cannaconnect-api/internal/security"
	"github.com/cannaconnect/cannaconnect-api/internal/storage"
	"github.com/cannaconnect/cannaconnect-api/internal/testutil"
)

const (
	testBaseURL    = "http://cannaconnect.test"
	testAdminEmail = "root@cannaconnect.test"
)

var testJWTConfig = config.JWTConfig{
	Secret:          "service-test-secret",
	Issuer:          "cannaconnect-test",
	AccessTokenTTL:  15 * time.Minute,
	RefreshTokenTTL: 24 * time.Hour,
	VerifyTokenTTL:  time.Hour,
}

type sentMail struct {
	to   string
	link string
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *recordingMailer) SendVerification(_ context.Context, to, _ string, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to: to, link: link})
	return nil
}

func (m *recordingMailer) last() sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[len(m.sent)-1]
}

type fixture struct {
	db     *gorm.DB
	uow    repository.UnitOfWork
	tokens *auth.TokenManager
	mailer *recordingMailer
	root   string
	store  *storage.FileStore

	auth        *AuthService
	users       *UserService
	companies   *CompanyService
	connections *ConnectionService
	jobs        *JobService
	media       *MediaService
	ads         *AdService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewTestDB(t)
	root := t.TempDir()
	store, err := storage.NewFileStore(root)
	require.NoError(t, err)

	f := &fixture{
		db:     db,
		uow:    repository.NewUnitOfWork(db),
		tokens: auth.NewTokenManager(testJWTConfig),
		mailer: &recordingMailer{},
		root:   root,
		store:  store,
	}
	sanitizer := security.NewTextSanitizer()
	recorder := metrics.Nop{}

	f.auth = NewAuthService(f.uow, f.tokens, f.mailer, recorder, testBaseURL, []string{testAdminEmail})
	f.users = NewUserService(f.uow, sanitizer)
	f.companies = NewCompanyService(f.uow, sanitizer)
	f.connections = NewConnectionService(f.uow)
	f.jobs = NewJobService(f.uow, store, sanitizer, recorder)
	f.media = NewMediaService(f.uow, store, recorder)
	f.ads = NewAdService(f.uow, sanitizer)
	return f
}

// user inserts a user directly, bypassing signup.
func (f *fixture) user(t *testing.T, email string, role models.Role, companyID *uint64) *models.User {
	t.Helper()
	u := &models.User{
		Name:         email,
		Email:        email,
		PasswordHash: "not-a-real-hash",
		Role:         role,
		CompanyID:    companyID,
	}
	require.NoError(t, f.db.Create(u).Error)
	return u
}

func (f *fixture) company(t *testing.T, name string) *models.Company {
	t.Helper()
	c := &models.Company{Name: name}
	require.NoError(t, f.db.Create(c).Error)
	return c
}

func (f *fixture) job(t *testing.T, poster *models.User, companyID *uint64) *models.JobPosting {
	t.Helper()
	j := &models.JobPosting{Title: "Trimmer", Description: "Trim plants", Location: "Denver", PostedBy: poster.ID, CompanyID: companyID}
	require.NoError(t, f.db.Create(j).Error)
	return j
}

func ptr[T any](v T) *T {
	return &v
}
