package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/icekidtech/information-systems/internal/config"
	"github.com/icekidtech/information-systems/internal/db"
	"github.com/icekidtech/information-systems/internal/models"
	"github.com/icekidtech/information-systems/internal/registration"
	"github.com/icekidtech/information-systems/internal/security"
	"github.com/icekidtech/information-systems/internal/store"
	"gorm.io/gorm"
)

var testJWT = config.JWTConfig{Secret: "admin-test-secret", Expiry: time.Hour}

func setupAdminRouter(t *testing.T) (*gin.Engine, *registration.Service, *gorm.DB, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:admin_%d?mode=memory&cache=shared", time.Now().UnixNano())
	conn, errOpen := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if errOpen != nil {
		t.Fatalf("open db: %v", errOpen)
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate db: %v", errMigrate)
	}
	if _, errSeed := db.SeedAdmin(conn, db.AdminSeed{
		Name:       "Department Admin",
		ExternalID: "admin",
		Email:      "admin@example.edu",
		Passcode:   "AdminPass1",
	}); errSeed != nil {
		t.Fatalf("seed admin: %v", errSeed)
	}

	regService := registration.NewService(store.NewAccountStore(conn), nil)
	uploadDir := t.TempDir()
	engine := gin.New()
	RegisterAdminRoutes(engine, conn, regService, testJWT, uploadDir)
	return engine, regService, conn, uploadDir
}

// tokenFor mints a session token for the given account row.
func tokenFor(t *testing.T, conn *gorm.DB, externalID string) string {
	t.Helper()
	var account models.Account
	if errFind := conn.Where("external_id = ?", externalID).First(&account).Error; errFind != nil {
		t.Fatalf("find account %s: %v", externalID, errFind)
	}
	token, errToken := security.GenerateToken(testJWT.Secret, account.ID, account.ExternalID, account.Name, account.Role, testJWT.Expiry)
	if errToken != nil {
		t.Fatalf("generate token: %v", errToken)
	}
	return token
}

func doAdminJSON(t *testing.T, engine *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload bytes.Buffer
	if body != nil {
		if errEncode := json.NewEncoder(&payload).Encode(body); errEncode != nil {
			t.Fatalf("encode body: %v", errEncode)
		}
	}
	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestPendingRegistrationsRequireAdminRole(t *testing.T) {
	engine, regService, conn, _ := setupAdminRouter(t)
	ctx := context.Background()

	id, errSignUp := regService.SignUp(ctx, "Jane Doe", "24/is/co/346", "jane@example.com")
	if errSignUp != nil {
		t.Fatalf("signup: %v", errSignUp)
	}
	if _, errApprove := regService.Approve(ctx, id); errApprove != nil {
		t.Fatalf("approve: %v", errApprove)
	}

	rec := doAdminJSON(t, engine, http.MethodGet, "/api/admin/pending-registrations", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated status = %d, want 401", rec.Code)
	}

	studentToken := tokenFor(t, conn, "24/is/co/346")
	rec = doAdminJSON(t, engine, http.MethodGet, "/api/admin/pending-registrations", studentToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("student status = %d, want 403", rec.Code)
	}

	adminToken := tokenFor(t, conn, "admin")
	rec = doAdminJSON(t, engine, http.MethodGet, "/api/admin/pending-registrations", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestConfirmRegistrationFlow(t *testing.T) {
	engine, regService, conn, _ := setupAdminRouter(t)
	ctx := context.Background()

	id, errSignUp := regService.SignUp(ctx, "Jane Doe", "24/is/co/346", "jane@example.com")
	if errSignUp != nil {
		t.Fatalf("signup: %v", errSignUp)
	}
	adminToken := tokenFor(t, conn, "admin")

	rec := doAdminJSON(t, engine, http.MethodGet, "/api/admin/pending-registrations", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var listing struct {
		Registrations []struct {
			ID uint64 `json:"id"`
		} `json:"registrations"`
	}
	if errDecode := json.Unmarshal(rec.Body.Bytes(), &listing); errDecode != nil {
		t.Fatalf("decode listing: %v", errDecode)
	}
	if len(listing.Registrations) != 1 || listing.Registrations[0].ID != id {
		t.Fatalf("unexpected pending listing: %+v", listing)
	}

	rec = doAdminJSON(t, engine, http.MethodPost, fmt.Sprintf("/api/admin/confirm-registration/%d", id), adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("confirm status = %d, body %s", rec.Code, rec.Body.String())
	}

	// The issued passcode must stay out of the response body.
	var account models.Account
	if errFind := conn.First(&account, id).Error; errFind != nil {
		t.Fatalf("reload account: %v", errFind)
	}
	if account.State != models.StateActive {
		t.Fatalf("state = %q, want active", account.State)
	}
	if account.PasscodeHash == nil {
		t.Fatal("expected passcode hash after confirmation")
	}
	if strings.Contains(rec.Body.String(), *account.PasscodeHash) {
		t.Fatal("response leaked the stored hash")
	}

	rec = doAdminJSON(t, engine, http.MethodPost, fmt.Sprintf("/api/admin/confirm-registration/%d", id), adminToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("repeat confirm status = %d, want 404", rec.Code)
	}

	rec = doAdminJSON(t, engine, http.MethodPost, "/api/admin/confirm-registration/424242", adminToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown id confirm status = %d, want 404", rec.Code)
	}
}

func TestDeleteCourseRemovesStoredFiles(t *testing.T) {
	engine, _, conn, uploadDir := setupAdminRouter(t)
	adminToken := tokenFor(t, conn, "admin")

	course := models.Course{Code: "CSC121", Title: "Introduction to Programming"}
	if errCreate := conn.Create(&course).Error; errCreate != nil {
		t.Fatalf("create course: %v", errCreate)
	}
	storedName := "lecture-notes.pdf"
	storedPath := filepath.Join(uploadDir, storedName)
	if errWrite := os.WriteFile(storedPath, []byte("pdf bytes"), 0o644); errWrite != nil {
		t.Fatalf("write stored file: %v", errWrite)
	}
	material := models.Material{
		CourseID:     course.ID,
		Title:        "Lecture Notes",
		FileName:     storedName,
		OriginalName: "notes.pdf",
		SizeBytes:    9,
	}
	if errCreate := conn.Create(&material).Error; errCreate != nil {
		t.Fatalf("create material: %v", errCreate)
	}

	rec := doAdminJSON(t, engine, http.MethodDelete, fmt.Sprintf("/api/admin/courses/%d", course.ID), adminToken, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete course status = %d, body %s", rec.Code, rec.Body.String())
	}

	var count int64
	if errCount := conn.Model(&models.Material{}).Where("course_id = ?", course.ID).Count(&count).Error; errCount != nil {
		t.Fatalf("count materials: %v", errCount)
	}
	if count != 0 {
		t.Fatalf("material rows remaining = %d, want 0", count)
	}
	if _, errStat := os.Stat(storedPath); !os.IsNotExist(errStat) {
		t.Fatalf("stored file still present after course delete: %v", errStat)
	}
}

func TestAdminCourseAndEventCRUD(t *testing.T) {
	engine, _, conn, _ := setupAdminRouter(t)
	adminToken := tokenFor(t, conn, "admin")

	rec := doAdminJSON(t, engine, http.MethodPost, "/api/admin/courses", adminToken, gin.H{
		"code":  "csc121",
		"title": "Introduction to Programming",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create course status = %d, body %s", rec.Code, rec.Body.String())
	}
	var course struct {
		ID   uint64 `json:"id"`
		Code string `json:"code"`
	}
	if errDecode := json.Unmarshal(rec.Body.Bytes(), &course); errDecode != nil {
		t.Fatalf("decode course: %v", errDecode)
	}
	if course.Code != "CSC121" {
		t.Fatalf("course code = %q, want upper-cased CSC121", course.Code)
	}

	rec = doAdminJSON(t, engine, http.MethodPost, "/api/admin/courses", adminToken, gin.H{
		"code":  "CSC121",
		"title": "Duplicate",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate course status = %d, want 409", rec.Code)
	}

	rec = doAdminJSON(t, engine, http.MethodPost, "/api/admin/events", adminToken, gin.H{
		"title": "Orientation",
		"body":  "Welcome week for new students.",
		"tags":  []string{"orientation", "freshers"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create event status = %d, body %s", rec.Code, rec.Body.String())
	}

	var count int64
	if errCount := conn.Model(&models.Event{}).Count(&count).Error; errCount != nil {
		t.Fatalf("count events: %v", errCount)
	}
	if count != 1 {
		t.Fatalf("event count = %d, want 1", count)
	}
}
