package Controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/jobportal-app/controllers"
	"github.com/yeremiapane/jobportal-app/models"
	"github.com/yeremiapane/jobportal-app/utils"
)

func setupTestDBForNotifications() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:notiftest?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(&models.Notification{}, &models.User{})
	if err != nil {
		panic(err)
	}
	// Seed: user beserta dua notifikasi reminder
	user := models.User{
		Name:  "Test User",
		Email: "testuser@example.com",
	}
	db.Create(&user)
	db.Create(&models.Notification{
		UserID:         user.ID,
		AnnouncementID: 1,
		Title:          "Penerimaan CPNS Kemenkeu",
		Type:           "cpns",
		Slug:           "cpns-kemenkeu",
		Organization:   "Kementerian Keuangan",
		Source:         "tracked",
		CreatedAt:      time.Now(),
	})
	db.Create(&models.Notification{
		UserID:         user.ID,
		AnnouncementID: 2,
		Title:          "Penerimaan PPPK Guru",
		Type:           "pppk",
		Slug:           "pppk-guru",
		Organization:   "Kemendikbud",
		Source:         "bookmark",
		CreatedAt:      time.Now(),
	})
	return db
}

func setupNotificationRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	notifCtrl := controllers.NewNotificationController(db)
	router.GET("/users/:user_id/notifications", notifCtrl.GetUserNotifications)
	router.GET("/users/:user_id/notifications/count", notifCtrl.GetUnreadCount)
	router.PATCH("/notifications/:notif_id/read", notifCtrl.MarkNotificationRead)
	return router
}

func TestNotificationFeed(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForNotifications()
	router := setupNotificationRouter(db)

	// Feed lengkap
	req, err := http.NewRequest("GET", "/users/1/notifications", nil)
	assert.NoError(t, err)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var listResp map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &listResp)
	assert.NoError(t, err)
	data := listResp["data"].([]interface{})
	assert.Len(t, data, 2)

	// Unread count sebelum dibaca
	req, err = http.NewRequest("GET", "/users/1/notifications/count", nil)
	assert.NoError(t, err)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var countResp map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &countResp)
	assert.NoError(t, err)
	count := countResp["data"].(map[string]interface{})["count"].(float64)
	assert.Equal(t, float64(2), count)

	// Tandai satu notifikasi sebagai dibaca
	first := data[0].(map[string]interface{})
	notifIDFloat, ok := first["id"].(float64)
	assert.True(t, ok)
	notifID := int(notifIDFloat)

	url := "/notifications/" + strconv.Itoa(notifID) + "/read"
	req, err = http.NewRequest("PATCH", url, nil)
	assert.NoError(t, err)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var notif models.Notification
	assert.NoError(t, db.First(&notif, notifID).Error)
	assert.NotNil(t, notif.ReadAt)
	firstReadAt := *notif.ReadAt

	// Membaca ulang tidak menggeser read_at
	req, err = http.NewRequest("PATCH", url, nil)
	assert.NoError(t, err)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.NoError(t, db.First(&notif, notifID).Error)
	assert.Equal(t, firstReadAt.Unix(), notif.ReadAt.Unix())

	// Filter unread menyisakan satu
	req, err = http.NewRequest("GET", "/users/1/notifications?unread=true", nil)
	assert.NoError(t, err)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	err = json.Unmarshal(w.Body.Bytes(), &listResp)
	assert.NoError(t, err)
	data = listResp["data"].([]interface{})
	assert.Len(t, data, 1)
}
