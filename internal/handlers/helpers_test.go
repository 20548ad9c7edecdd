package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Keoroanthony/go-food-ordering/internal/auth"
	"github.com/Keoroanthony/go-food-ordering/internal/cart"
	"github.com/Keoroanthony/go-food-ordering/internal/catalog"
	"github.com/Keoroanthony/go-food-ordering/internal/handlers"
	"github.com/Keoroanthony/go-food-ordering/internal/models"
	"github.com/Keoroanthony/go-food-ordering/internal/orders"
	"github.com/Keoroanthony/go-food-ordering/internal/testkit"
)

const testSecret = "test-secret-key"

type testEnv struct {
	router  *gin.Engine
	db      *gorm.DB
	records *testkit.Records
	carts   *cart.MemoryStorage
}

// setupTestRouter builds the full API over an in-memory database seeded with a
// customer, an admin and a small menu.
func setupTestRouter(t *testing.T) *testEnv {
	gin.SetMode(gin.TestMode)

	records, testDB := testkit.NewRecords(t)
	carts := cart.NewMemoryStorage()

	require.NoError(t, testDB.Create(&models.User{ID: "cust-1", Name: "Ada", Email: "ada@example.com"}).Error)
	require.NoError(t, testDB.Create(&models.User{ID: "admin-1", Name: "Root", Email: "root@example.com", Role: models.RoleAdmin}).Error)

	mains := models.Category{Name: "Mains"}
	testDB.Create(&mains)
	testDB.Create(&models.Category{Name: "Pizza", ParentID: &mains.ID})
	testDB.Create(&models.MenuItem{Name: "Pizza", Description: "Margherita", Price: decimal.NewFromInt(10), Category: "Pizza"})
	testDB.Create(&models.MenuItem{Name: "Lasagne", Description: "Baked pasta", Price: decimal.NewFromInt(14), Category: "Mains"})

	h := &handlers.Handler{
		Records:   records,
		Catalog:   catalog.New(records),
		Carts:     carts,
		Submitter: orders.NewSubmitter(records, nil, nil),
		Tracker:   orders.NewTracker(records, nil, nil),
		Gateway:   auth.NewGateway(records),
		State:     auth.NewStateSigner(testSecret, time.Minute),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sessions.Sessions(auth.SessionName, cookie.NewStore([]byte(testSecret))))
	h.Register(r)

	return &testEnv{router: r, db: testDB, records: records, carts: carts}
}

func newRequest(method, path string, body interface{}) *http.Request {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// sessionCookie builds a session cookie carrying values, the way the session middleware would.
func sessionCookie(values map[string]interface{}) string {
	tempW := httptest.NewRecorder()
	tempC, _ := gin.CreateTestContext(tempW)
	tempC.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	sessions.Sessions(auth.SessionName, cookie.NewStore([]byte(testSecret)))(tempC)

	session := sessions.Default(tempC)
	for k, v := range values {
		session.Set(k, v)
	}
	_ = session.Save()

	return tempW.Header().Get("Set-Cookie")
}

// performRequest sends the request as browser cartID, signed in as userID when it is not empty.
func (e *testEnv) performRequest(method, path string, body interface{}, userID, cartID string) *httptest.ResponseRecorder {
	values := map[string]interface{}{}
	if cartID != "" {
		values["cart_id"] = cartID
	}
	if userID != "" {
		values["user_id"] = userID
		values["email"] = userID + "@example.com"
	}

	req := newRequest(method, path, body)
	if len(values) > 0 {
		req.Header.Set("Cookie", sessionCookie(values))
	}

	recorder := httptest.NewRecorder()
	e.router.ServeHTTP(recorder, req)
	return recorder
}

func decode(t *testing.T, recorder *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), v), recorder.Body.String())
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
