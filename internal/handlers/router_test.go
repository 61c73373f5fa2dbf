package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/cannaconnect/cannaconnect-api/internal/auth"
	"github.com/cannaconnect/cannaconnect-api/internal/config"
	"github.com/cannaconnect/cannaconnect-api/internal/constants"
	"github.com/cannaconnect/cannaconnect-api/internal/metrics"
	"github.com/cannaconnect/cannaconnect-api/internal/models"
	"github.com/cannaconnect/cannaconnect-api/internal/repository"
	"github.com/cannaconnect/cannaconnect-api/internal/security"
	"github.com/cannaconnect/cannaconnect-api/internal/services"
	"github.com/cannaconnect/cannaconnect-api/internal/storage"
	"github.com/cannaconnect/cannaconnect-api/internal/testutil"
)

const testAdminEmail = "root@cannaconnect.test"

// RouterTestSuite drives the full router over an in-memory database.
type RouterTestSuite struct {
	suite.Suite
	db       *gorm.DB
	tokens   *auth.TokenManager
	registry *prometheus.Registry
	router   *gin.Engine
}

func (suite *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.db = testutil.NewTestDB(suite.T())
	store, err := storage.NewFileStore(suite.T().TempDir())
	suite.Require().NoError(err)

	suite.tokens = auth.NewTokenManager(config.JWTConfig{
		Secret:          "router-test-secret",
		Issuer:          "cannaconnect-test",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: time.Hour,
		VerifyTokenTTL:  time.Hour,
	})
	suite.registry = prometheus.NewRegistry()
	collector := metrics.NewCollector(suite.registry)

	uow := repository.NewUnitOfWork(suite.db)
	sanitizer := security.NewTextSanitizer()
	jobs := services.NewJobService(uow, store, sanitizer, collector)

	suite.router = NewRouter(RouterConfig{
		MaxUploadBytes: 1 << 20,
		Recorder:       collector,
		Gatherer:       suite.registry,
	}, Services{
		Auth:        services.NewAuthService(uow, suite.tokens, auth.LogMailer{}, collector, "http://cannaconnect.test", []string{testAdminEmail}),
		Users:       services.NewUserService(uow, sanitizer),
		Companies:   services.NewCompanyService(uow, sanitizer),
		Connections: services.NewConnectionService(uow),
		Jobs:        jobs,
		Media:       services.NewMediaService(uow, store, collector),
		Ads:         services.NewAdService(uow, sanitizer),
	})
}

func (suite *RouterTestSuite) createUser(email string, role models.Role, companyID *uint64) *models.User {
	user := &models.User{Name: email, Email: email, PasswordHash: "hashedpassword", Role: role, CompanyID: companyID}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *RouterTestSuite) createCompany(name string) *models.Company {
	company := &models.Company{Name: name}
	suite.Require().NoError(suite.db.Create(company).Error)
	return company
}

func (suite *RouterTestSuite) token(userID uint64, typ auth.TokenType) string {
	token, _, err := suite.tokens.Issue(userID, typ)
	suite.Require().NoError(err)
	return token
}

// do sends a JSON request; token may be empty.
func (suite *RouterTestSuite) do(method, url string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *RouterTestSuite) upload(url, field, filename string, content []byte, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	suite.Require().NoError(err)
	_, err = part.Write(content)
	suite.Require().NoError(err)
	suite.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, url, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *RouterTestSuite) decode(w *httptest.ResponseRecorder, v interface{}) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (suite *RouterTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", nil, "")

	suite.Equal(http.StatusOK, w.Code)
	suite.NotEmpty(w.Header().Get(constants.HeaderRequestID))
}

func (suite *RouterTestSuite) TestEndToEnd_SignupLoginJobApply() {
	w := suite.do(http.MethodPost, "/signup", gin.H{"email": "a@x.com", "password": "pw123", "name": "Ann"}, "")
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var user map[string]interface{}
	suite.decode(w, &user)
	suite.EqualValues(1, user["id"])
	suite.NotContains(w.Body.String(), "password")

	w = suite.do(http.MethodPost, "/login", gin.H{"email": "a@x.com", "password": "pw123"}, "")
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var login struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	suite.decode(w, &login)
	suite.NotEmpty(login.AccessToken)

	w = suite.do(http.MethodPost, "/job", gin.H{"title": "Trimmer", "description": "Trim plants", "location": "Denver"}, login.AccessToken)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var job map[string]interface{}
	suite.decode(w, &job)
	suite.EqualValues(1, job["id"])
	suite.EqualValues(1, job["posted_by"])

	w = suite.upload("/job/1/apply", "resume", "cv.pdf", []byte("%PDF-1.4"), login.AccessToken)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var app map[string]interface{}
	suite.decode(w, &app)
	suite.Equal("pending", app["status"])
	suite.Contains(app, "decision_notes")
	suite.Nil(app["decision_notes"])
}

func (suite *RouterTestSuite) TestSignupValidationAndConflict() {
	w := suite.do(http.MethodPost, "/signup", gin.H{"email": "a@x.com"}, "")
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPost, "/signup", gin.H{"email": "a@x.com", "password": "pw123", "name": "Ann"}, "")
	suite.Require().Equal(http.StatusCreated, w.Code)

	w = suite.do(http.MethodPost, "/signup", gin.H{"email": "A@X.com", "password": "other", "name": "Other"}, "")
	suite.Equal(http.StatusConflict, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)
	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *RouterTestSuite) TestLoginFailuresAreIdentical() {
	suite.Require().Equal(http.StatusCreated,
		suite.do(http.MethodPost, "/signup", gin.H{"email": "a@x.com", "password": "pw123", "name": "Ann"}, "").Code)

	unknown := suite.do(http.MethodPost, "/login", gin.H{"email": "nouser@x.com", "password": "pw"}, "")
	wrong := suite.do(http.MethodPost, "/login", gin.H{"email": "a@x.com", "password": "wrongpw"}, "")

	suite.Equal(http.StatusUnauthorized, unknown.Code)
	suite.Equal(unknown.Code, wrong.Code)
	suite.JSONEq(unknown.Body.String(), wrong.Body.String())
}

func (suite *RouterTestSuite) TestLogoutRevokesRefreshToken() {
	user := suite.createUser("a@x.com", models.RoleCustomer, nil)
	refresh := suite.token(user.ID, auth.TokenRefresh)
	access := suite.token(user.ID, auth.TokenAccess)

	w := suite.do(http.MethodPost, "/refresh", nil, refresh)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	// Access tokens cannot refresh.
	suite.Equal(http.StatusUnauthorized, suite.do(http.MethodPost, "/refresh", nil, access).Code)

	w = suite.do(http.MethodPost, "/logout", gin.H{"access_token": access}, refresh)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	suite.Equal(http.StatusUnauthorized, suite.do(http.MethodPost, "/refresh", nil, refresh).Code)
	suite.Equal(http.StatusUnauthorized, suite.do(http.MethodGet, "/profile", nil, access).Code)
}

func (suite *RouterTestSuite) TestVerifyEmail() {
	user := suite.createUser("a@x.com", models.RoleCustomer, nil)

	w := suite.do(http.MethodGet, "/verify-email/"+suite.token(user.ID, auth.TokenVerifyEmail), nil, "")
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var reloaded models.User
	suite.Require().NoError(suite.db.First(&reloaded, user.ID).Error)
	suite.True(reloaded.IsVerified)

	w = suite.do(http.MethodGet, "/verify-email/garbage", nil, "")
	suite.Equal(http.StatusBadRequest, w.Code)
	var body map[string]interface{}
	suite.decode(w, &body)
	suite.Equal("TOKEN_INVALID", body["code"])

	w = suite.do(http.MethodPost, "/verify-email/resend", nil, suite.token(user.ID, auth.TokenAccess))
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *RouterTestSuite) TestProtectedRoutesRequireToken() {
	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/profile"},
		{http.MethodPost, "/job"},
		{http.MethodPost, "/connections/2/add"},
		{http.MethodPost, "/favorite-connects/1/add"},
		{http.MethodPost, "/ads"},
		{http.MethodGet, "/images/1"},
	} {
		w := suite.do(route.method, route.path, nil, "")
		suite.Equal(http.StatusUnauthorized, w.Code, route.path)
	}
}

func (suite *RouterTestSuite) TestProfile() {
	user := suite.createUser("a@x.com", models.RoleCustomer, nil)
	token := suite.token(user.ID, auth.TokenAccess)

	w := suite.do(http.MethodPatch, "/profile", gin.H{"bio": "Grower <b>in</b> Denver", "interests": []string{"extraction"}}, token)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var profile map[string]interface{}
	suite.decode(suite.do(http.MethodGet, "/profile", nil, token), &profile)
	suite.Equal("Grower in Denver", profile["bio"])
	suite.Equal([]interface{}{"extraction"}, profile["interests"])

	w = suite.do(http.MethodGet, "/users/"+strconv.FormatUint(user.ID, 10), nil, token)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(http.StatusNotFound, suite.do(http.MethodGet, "/users/999", nil, token).Code)
	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/users/abc", nil, token).Code)
}

func (suite *RouterTestSuite) TestJobsListingAndComments() {
	poster := suite.createUser("p@x.com", models.RoleGrower, nil)
	token := suite.token(poster.ID, auth.TokenAccess)

	for i := 0; i < 3; i++ {
		w := suite.do(http.MethodPost, "/job", gin.H{"title": "Trimmer", "description": "d", "location": "Denver"}, token)
		suite.Require().Equal(http.StatusCreated, w.Code)
	}

	w := suite.do(http.MethodGet, "/jobs?page=1&limit=2", nil, "")
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal("3", w.Header().Get(constants.HeaderTotalCount))
	var page struct {
		Jobs       []map[string]interface{} `json:"jobs"`
		TotalPages int                      `json:"total_pages"`
	}
	suite.decode(w, &page)
	suite.Len(page.Jobs, 2)
	suite.Equal(2, page.TotalPages)

	w = suite.do(http.MethodPost, "/job/1/comment", gin.H{"content": "Is this full time?"}, token)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	w = suite.do(http.MethodPost, "/job/1/comment", gin.H{"content": "Yes", "parent_id": 1}, token)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	suite.Equal(http.StatusBadRequest, suite.do(http.MethodPost, "/job/1/comment", gin.H{"content": "  "}, token).Code)
	suite.Equal(http.StatusBadRequest, suite.do(http.MethodPost, "/job/2/comment", gin.H{"content": "x", "parent_id": 1}, token).Code)

	var tree []struct {
		ID      uint64 `json:"id"`
		Replies []struct {
			ID uint64 `json:"id"`
		} `json:"replies"`
	}
	suite.decode(suite.do(http.MethodGet, "/job/1/comments", nil, ""), &tree)
	suite.Require().Len(tree, 1)
	suite.Equal(uint64(1), tree[0].ID)
	suite.Require().Len(tree[0].Replies, 1)
	suite.Equal(uint64(2), tree[0].Replies[0].ID)

	other := suite.createUser("o@x.com", models.RoleCustomer, nil)
	suite.Equal(http.StatusForbidden, suite.do(http.MethodDelete, "/job/1", nil, suite.token(other.ID, auth.TokenAccess)).Code)
	suite.Equal(http.StatusOK, suite.do(http.MethodDelete, "/job/1", nil, token).Code)
	suite.Equal(http.StatusNotFound, suite.do(http.MethodGet, "/jobs/1", nil, "").Code)
}

func (suite *RouterTestSuite) TestApplicationStatusFlow() {
	company := suite.createCompany("Green Leaf")
	manager := suite.createUser("m@x.com", models.RoleManager, &company.ID)
	applicant := suite.createUser("a@x.com", models.RoleCustomer, nil)
	managerToken := suite.token(manager.ID, auth.TokenAccess)
	applicantToken := suite.token(applicant.ID, auth.TokenAccess)

	w := suite.do(http.MethodPost, "/companies/"+strconv.FormatUint(company.ID, 10)+"/jobs",
		gin.H{"title": "Budtender", "description": "d", "location": "Denver"}, managerToken)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = suite.upload("/job/1/apply", "resume", "cv.docx", []byte("resume"), applicantToken)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	suite.Equal(http.StatusConflict, suite.upload("/job/1/apply", "resume", "cv.docx", []byte("resume"), applicantToken).Code)
	suite.Equal(http.StatusBadRequest, suite.upload("/job/1/apply", "resume", "cv.exe", []byte("x"), managerToken).Code)

	status := "/job/1/applications/1/status"
	suite.Equal(http.StatusForbidden, suite.do(http.MethodPatch, status, gin.H{"status": "accepted"}, applicantToken).Code)
	suite.Equal(http.StatusNotFound, suite.do(http.MethodPatch, "/job/1/applications/9/status", gin.H{"status": "accepted"}, managerToken).Code)
	suite.Equal(http.StatusBadRequest, suite.do(http.MethodPatch, status, gin.H{"status": "hired"}, managerToken).Code)

	w = suite.do(http.MethodPatch, status, gin.H{"status": "accepted", "decision_notes": "looks good"}, managerToken)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var app map[string]interface{}
	suite.decode(w, &app)
	suite.Equal("accepted", app["status"])
	suite.Equal("looks good", app["decision_notes"])

	var apps []map[string]interface{}
	suite.decode(suite.do(http.MethodGet, "/job/1/applications", nil, managerToken), &apps)
	suite.Require().Len(apps, 1)
	suite.Equal("looks good", apps[0]["decision_notes"])
	suite.Equal(http.StatusForbidden, suite.do(http.MethodGet, "/job/1/applications", nil, applicantToken).Code)

	var details map[string]interface{}
	suite.decode(suite.do(http.MethodGet, "/companies/"+strconv.FormatUint(company.ID, 10), nil, ""), &details)
	suite.Equal([]interface{}{float64(manager.ID)}, details["employee_ids"])
	suite.Equal([]interface{}{float64(1)}, details["job_ids"])
}

func (suite *RouterTestSuite) TestConnectionsAndNotifications() {
	alice := suite.createUser("alice@x.com", models.RoleCustomer, nil)
	bob := suite.createUser("bob@x.com", models.RoleCustomer, nil)
	aliceToken := suite.token(alice.ID, auth.TokenAccess)
	bobToken := suite.token(bob.ID, auth.TokenAccess)
	bobPath := strconv.FormatUint(bob.ID, 10)

	suite.Equal(http.StatusBadRequest, suite.do(http.MethodPost, "/connections/"+strconv.FormatUint(alice.ID, 10)+"/add", nil, aliceToken).Code)
	suite.Require().Equal(http.StatusCreated, suite.do(http.MethodPost, "/connections/"+bobPath+"/add", nil, aliceToken).Code)
	suite.Equal(http.StatusConflict, suite.do(http.MethodPost, "/connections/"+bobPath+"/add", nil, aliceToken).Code)

	var notes []map[string]interface{}
	suite.decode(suite.do(http.MethodGet, "/notifications", nil, bobToken), &notes)
	suite.Require().Len(notes, 1)
	suite.Equal("alice@x.com sent you a connection request", notes[0]["message"])
	suite.Contains(notes[0], "timestamp")

	suite.Equal(http.StatusForbidden, suite.do(http.MethodPatch, "/users/connection/1", gin.H{"status": "connected"}, aliceToken).Code)
	suite.Equal(http.StatusBadRequest, suite.do(http.MethodPatch, "/users/connection/1", gin.H{"status": "friends"}, bobToken).Code)
	suite.Equal(http.StatusNotFound, suite.do(http.MethodPatch, "/users/connection/9", gin.H{"status": "connected"}, bobToken).Code)
	suite.Require().Equal(http.StatusOK, suite.do(http.MethodPatch, "/users/connection/1", gin.H{"status": "connected"}, bobToken).Code)

	var conns []map[string]interface{}
	suite.decode(suite.do(http.MethodGet, "/connections", nil, aliceToken), &conns)
	suite.Require().Len(conns, 1)
	suite.Equal("connected", conns[0]["status"])

	suite.Equal(http.StatusNotFound, suite.do(http.MethodDelete, "/connections/1/delete", nil, bobToken).Code)
	suite.Equal(http.StatusOK, suite.do(http.MethodDelete, "/connections/1/delete", nil, aliceToken).Code)
}

func (suite *RouterTestSuite) TestFavorites() {
	alice := suite.createUser("alice@x.com", models.RoleCustomer, nil)
	bob := suite.createUser("bob@x.com", models.RoleCustomer, nil)
	aliceToken := suite.token(alice.ID, auth.TokenAccess)
	alicePath := "/favorite-connects/" + strconv.FormatUint(alice.ID, 10) + "/add"

	suite.Equal(http.StatusBadRequest, suite.do(http.MethodPost, alicePath, gin.H{}, aliceToken).Code)
	suite.Equal(http.StatusForbidden, suite.do(http.MethodPost, "/favorite-connects/"+strconv.FormatUint(bob.ID, 10)+"/add",
		gin.H{"favorite_user_id": alice.ID}, aliceToken).Code)
	suite.Equal(http.StatusNotFound, suite.do(http.MethodPost, alicePath, gin.H{"favorite_user_id": 999}, aliceToken).Code)
	suite.Require().Equal(http.StatusCreated, suite.do(http.MethodPost, alicePath, gin.H{"favorite_user_id": bob.ID}, aliceToken).Code)
	suite.Equal(http.StatusConflict, suite.do(http.MethodPost, alicePath, gin.H{"favorite_user_id": bob.ID}, aliceToken).Code)

	var favs []map[string]interface{}
	suite.decode(suite.do(http.MethodGet, "/favorite-connects", nil, aliceToken), &favs)
	suite.Require().Len(favs, 1)

	suite.Equal(http.StatusNotFound, suite.do(http.MethodDelete, "/favorite-connects/1/delete", nil, suite.token(bob.ID, auth.TokenAccess)).Code)
	suite.Equal(http.StatusOK, suite.do(http.MethodDelete, "/favorite-connects/1/delete", nil, aliceToken).Code)
}

func (suite *RouterTestSuite) TestAdsToggle() {
	company := suite.createCompany("Green Leaf")
	owner := suite.createUser("o@x.com", models.RoleDispensaryOwner, &company.ID)
	admin := suite.createUser("admin@x.com", models.RoleAdmin, nil)
	loner := suite.createUser("l@x.com", models.RoleCustomer, nil)
	ownerToken := suite.token(owner.ID, auth.TokenAccess)
	adminToken := suite.token(admin.ID, auth.TokenAccess)

	ad := gin.H{"title": "Grand opening", "description": "20% off", "link": "https://greenleaf.example"}
	suite.Equal(http.StatusForbidden, suite.do(http.MethodPost, "/ads", ad, suite.token(loner.ID, auth.TokenAccess)).Code)
	w := suite.do(http.MethodPost, "/ads", ad, ownerToken)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	listAds := func() []map[string]interface{} {
		var ads []map[string]interface{}
		suite.decode(suite.do(http.MethodGet, "/ads", nil, ""), &ads)
		return ads
	}
	ads := listAds()
	suite.Require().Len(ads, 1)
	suite.Equal("Green Leaf", ads[0]["company_name"])

	suite.Equal(http.StatusForbidden, suite.do(http.MethodPatch, "/ads/1/toggle", nil, ownerToken).Code)
	suite.Equal(http.StatusNotFound, suite.do(http.MethodPatch, "/ads/9/toggle", nil, adminToken).Code)

	suite.Require().Equal(http.StatusOK, suite.do(http.MethodPatch, "/ads/1/toggle", nil, adminToken).Code)
	suite.Empty(listAds())
	suite.Require().Equal(http.StatusOK, suite.do(http.MethodPatch, "/ads/1/toggle", nil, adminToken).Code)
	suite.Len(listAds(), 1)
}

func (suite *RouterTestSuite) TestMediaUploadAndStream() {
	grower := suite.createUser("g@x.com", models.RoleGrower, nil)
	customer := suite.createUser("c@x.com", models.RoleCustomer, nil)
	budtender := suite.createUser("b@x.com", models.RoleBudtender, nil)
	growerToken := suite.token(grower.ID, auth.TokenAccess)
	customerToken := suite.token(customer.ID, auth.TokenAccess)

	suite.Equal(http.StatusForbidden, suite.upload("/upload/video", "file", "clip.mp4", []byte("x"), suite.token(budtender.ID, auth.TokenAccess)).Code)
	suite.Equal(http.StatusBadRequest, suite.upload("/upload/video", "other", "clip.mp4", []byte("x"), growerToken).Code)

	w := suite.upload("/upload/video", "file", "trim.mp4", []byte("0123456789"), growerToken)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var media map[string]interface{}
	suite.decode(w, &media)
	suite.Equal(true, media["instructional"])
	suite.NotContains(media, "file_path")

	suite.Equal(http.StatusForbidden, suite.do(http.MethodGet, "/media/1/stream", nil, customerToken).Code)

	req := httptest.NewRequest(http.MethodGet, "/media/1/stream", nil)
	req.Header.Set("Authorization", "Bearer "+growerToken)
	req.Header.Set("Range", "bytes=2-5")
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)
	suite.Equal(http.StatusPartialContent, rec.Code)
	suite.Equal("2345", rec.Body.String())

	w = suite.upload("/upload/image", "file", "me.png", []byte("png-bytes"), customerToken)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var images []map[string]interface{}
	suite.decode(suite.do(http.MethodGet, "/users/"+strconv.FormatUint(customer.ID, 10)+"/images", nil, customerToken), &images)
	suite.Require().Len(images, 1)

	w = suite.do(http.MethodGet, "/images/1", nil, growerToken)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("png-bytes", w.Body.String())
	suite.Equal("image/png", w.Header().Get("Content-Type"))
}

func (suite *RouterTestSuite) TestMetricsEndpoint() {
	suite.do(http.MethodGet, "/health", nil, "")

	w := suite.do(http.MethodGet, "/metrics", nil, "")
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `cannaconnect_http_requests_total{method="GET",route="/health",status="200"} 1`)
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

// signupAndLogin registers through the API and returns the user and an access token.
func (suite *RouterTestSuite) signupAndLogin(email, role string) (uint64, string) {
	w := suite.do(http.MethodPost, "/signup", gin.H{"email": email, "password": "pw123", "name": email, "role": role}, "")
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var user struct {
		ID uint64 `json:"id"`
	}
	suite.decode(w, &user)

	w = suite.do(http.MethodPost, "/login", gin.H{"email": email, "password": "pw123"}, "")
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var login struct {
		AccessToken string `json:"access_token"`
	}
	suite.decode(w, &login)
	return user.ID, login.AccessToken
}

func (suite *RouterTestSuite) TestSignupRoleUnlocksCompanyJobs() {
	w := suite.do(http.MethodPost, "/signup", gin.H{"email": "x@x.com", "password": "pw123", "name": "X", "role": "Admin"}, "")
	suite.Equal(http.StatusBadRequest, w.Code)

	_, token := suite.signupAndLogin("g@x.com", "Grower")
	var profile struct {
		Role string `json:"role"`
	}
	suite.decode(suite.do(http.MethodGet, "/profile", nil, token), &profile)
	suite.Equal("Grower", profile.Role)

	w = suite.do(http.MethodPost, "/companies", gin.H{"name": "Green Leaf"}, token)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var company struct {
		ID uint64 `json:"id"`
	}
	suite.decode(w, &company)

	w = suite.do(http.MethodPost, "/companies/"+strconv.FormatUint(company.ID, 10)+"/jobs",
		gin.H{"title": "Trimmer", "description": "Trim plants", "location": "Denver"}, token)
	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
}

func (suite *RouterTestSuite) TestAdminBootstrapAndRoleChanges() {
	adminID, adminToken := suite.signupAndLogin(testAdminEmail, "")
	ownerID, ownerToken := suite.signupAndLogin("o@x.com", "")

	var admin struct {
		Role string `json:"role"`
	}
	suite.decode(suite.do(http.MethodGet, "/profile", nil, adminToken), &admin)
	suite.Equal("Admin", admin.Role)

	roleURL := func(id uint64) string { return "/admin/users/" + strconv.FormatUint(id, 10) + "/role" }

	suite.Equal(http.StatusForbidden, suite.do(http.MethodPatch, roleURL(adminID), gin.H{"role": "Customer"}, ownerToken).Code)
	suite.Equal(http.StatusBadRequest, suite.do(http.MethodPatch, roleURL(ownerID), gin.H{"role": "Emperor"}, adminToken).Code)
	suite.Equal(http.StatusNotFound, suite.do(http.MethodPatch, roleURL(999), gin.H{"role": "Grower"}, adminToken).Code)

	w := suite.do(http.MethodPatch, roleURL(ownerID), gin.H{"role": "Dispensary Owner"}, adminToken)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var owner struct {
		Role string `json:"role"`
	}
	suite.decode(w, &owner)
	suite.Equal("Dispensary Owner", owner.Role)

	suite.Require().Equal(http.StatusCreated, suite.do(http.MethodPost, "/companies", gin.H{"name": "Green Leaf"}, ownerToken).Code)
	ad := gin.H{"title": "Grand opening", "description": "Salt & Pepper OG, 20% off", "link": "https://greenleaf.example"}
	suite.Require().Equal(http.StatusCreated, suite.do(http.MethodPost, "/ads", ad, ownerToken).Code)

	var ads []struct {
		Description string `json:"description"`
	}
	suite.decode(suite.do(http.MethodGet, "/ads", nil, ""), &ads)
	suite.Require().Len(ads, 1)
	suite.Equal("Salt & Pepper OG, 20% off", ads[0].Description)

	suite.Equal(http.StatusOK, suite.do(http.MethodPatch, "/ads/1/toggle", nil, adminToken).Code)
	ads = nil
	suite.decode(suite.do(http.MethodGet, "/ads", nil, ""), &ads)
	suite.Empty(ads)
}
