package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/project-moderation-api/internal/api"
	"github.com/project-moderation-api/internal/config"
	"github.com/project-moderation-api/internal/mocks"
	"github.com/project-moderation-api/internal/models"
	"github.com/project-moderation-api/internal/service"
	"github.com/rs/zerolog"
)

const adminEmail = "mod@test.dev"

func setupTestRouter() (*gin.Engine, *mocks.MockModerationService) {
	gin.SetMode(gin.TestMode)

	mockModeration := mocks.NewMockModerationService()
	services := &service.Services{Moderation: mockModeration}

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "8080"},
		Admin:  config.AdminConfig{Emails: []string{adminEmail}},
	}

	log := zerolog.Nop()
	router := api.NewRouter(services, cfg, log)

	return router, mockModeration
}

func adminRequest(method, path string, body []byte) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("X-User-Email", adminEmail)
	return req
}

func testIdea(id string, status models.Status, title string) *models.Idea {
	return &models.Idea{
		Submission: models.Submission{
			ID:             id,
			Status:         status,
			SubmitterName:  "Ada",
			SubmitterEmail: "ada@test.dev",
		},
		Title: title,
	}
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupTestRouter()

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", response["status"])
	}
	if response["service"] != "project-moderation-api" {
		t.Errorf("Expected service name, got %v", response["service"])
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router, mockSvc := setupTestRouter()
	mockSvc.Lists[models.KindIdea] = []models.Record{
		testIdea("i1", models.StatusPending, "A"),
		testIdea("i2", models.StatusApproved, "B"),
	}

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	records := response["records"].(map[string]interface{})
	if records["idea"].(float64) != 2 {
		t.Errorf("Expected 2 ideas, got %v", records["idea"])
	}
}

func TestListIdeas_ApprovedOnly(t *testing.T) {
	router, mockSvc := setupTestRouter()
	mockSvc.Lists[models.KindIdea] = []models.Record{
		testIdea("i1", models.StatusPending, "Pending idea"),
		testIdea("i2", models.StatusApproved, "Approved idea"),
		testIdea("i3", models.StatusRejected, "Rejected idea"),
	}

	req := httptest.NewRequest("GET", "/v1/ideas", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response struct {
		Ideas []models.Idea `json:"ideas"`
		Count int           `json:"count"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)

	if response.Count != 1 {
		t.Errorf("Expected only the approved idea, got %d", response.Count)
	}
	if len(response.Ideas) != 1 || response.Ideas[0].Title != "Approved idea" {
		t.Errorf("Wrong idea surfaced publicly: %+v", response.Ideas)
	}
}

func TestGetIdea_HidesNonApproved(t *testing.T) {
	router, mockSvc := setupTestRouter()
	mockSvc.Gets["i1"] = testIdea("i1", models.StatusPending, "Pending idea")
	mockSvc.Gets["i2"] = testIdea("i2", models.StatusApproved, "Approved idea")

	// Pending looks exactly like missing to the public
	for _, id := range []string{"i1", "missing"} {
		req := httptest.NewRequest("GET", "/v1/ideas/"+id, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusNotFound {
			t.Errorf("id %s: expected 404, got %d", id, w.Code)
		}
	}

	req := httptest.NewRequest("GET", "/v1/ideas/i2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for approved idea, got %d", w.Code)
	}
}

func TestSubmitIdea(t *testing.T) {
	router, _ := setupTestRouter()

	body, _ := json.Marshal(map[string]interface{}{
		"title":           "AI Study Planner",
		"problem":         "Students lose track of coursework",
		"solution":        "A planner that adapts to deadlines",
		"category":        "education",
		"difficulty":      "intermediate",
		"looking_for":     "backend developer",
		"how_you_help":    "I can lead design",
		"submitter_name":  "Ada",
		"submitter_email": "ada@test.dev",
	})

	req := httptest.NewRequest("POST", "/v1/ideas", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var idea models.Idea
	json.Unmarshal(w.Body.Bytes(), &idea)
	if idea.Status != models.StatusPending {
		t.Errorf("Expected created idea to be pending, got %s", idea.Status)
	}
}

func TestSubmitIdea_ValidationFailure(t *testing.T) {
	router, mockSvc := setupTestRouter()

	body, _ := json.Marshal(map[string]interface{}{
		"title":           "",
		"submitter_name":  "Ada",
		"submitter_email": "not-an-email",
	})

	req := httptest.NewRequest("POST", "/v1/ideas", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected 422, got %d", w.Code)
	}
	// The record must never have been created
	if len(mockSvc.Ideas) != 0 {
		t.Error("Invalid submission must not reach the store")
	}
}

func TestAdmin_RequiresIdentity(t *testing.T) {
	router, _ := setupTestRouter()

	req := httptest.NewRequest("GET", "/v1/admin/ideas", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without identity, got %d", w.Code)
	}
}

func TestAdmin_RejectsNonAdmins(t *testing.T) {
	router, _ := setupTestRouter()

	req := httptest.NewRequest("GET", "/v1/admin/ideas", nil)
	req.Header.Set("X-User-Email", "rando@test.dev")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for non-admin, got %d", w.Code)
	}
}

func TestAdmin_AllowListIsCaseInsensitive(t *testing.T) {
	router, _ := setupTestRouter()

	req := httptest.NewRequest("GET", "/v1/admin/ideas", nil)
	req.Header.Set("X-User-Email", "MOD@test.dev")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for differently-cased admin email, got %d", w.Code)
	}
}

func TestAdminList_CountsAndFilter(t *testing.T) {
	router, mockSvc := setupTestRouter()
	mockSvc.Lists[models.KindIdea] = []models.Record{
		testIdea("i1", models.StatusPending, "A"),
		testIdea("i2", models.StatusApproved, "B"),
		testIdea("i3", models.StatusApproved, "C"),
		testIdea("i4", models.StatusRejected, "D"),
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, adminRequest("GET", "/v1/admin/ideas?status=approved", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var response struct {
		Records []models.Idea       `json:"records"`
		Counts  models.StatusCounts `json:"counts"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)

	if len(response.Records) != 2 {
		t.Errorf("Expected 2 approved records, got %d", len(response.Records))
	}
	// Counts reflect the whole collection, not the filtered view
	if response.Counts.Total != 4 || response.Counts.Pending != 1 ||
		response.Counts.Approved != 2 || response.Counts.Rejected != 1 {
		t.Errorf("Unexpected counts: %+v", response.Counts)
	}
}

func TestAdminList_InvalidStatusFilter(t *testing.T) {
	router, _ := setupTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, adminRequest("GET", "/v1/admin/ideas?status=bogus", nil))

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for invalid status, got %d", w.Code)
	}
}

func TestAdmin_UnknownKind(t *testing.T) {
	router, _ := setupTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, adminRequest("GET", "/v1/admin/gadgets", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown kind, got %d", w.Code)
	}
}

func TestAdminApprove(t *testing.T) {
	router, mockSvc := setupTestRouter()
	mockSvc.Gets["i1"] = testIdea("i1", models.StatusPending, "A")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, adminRequest("POST", "/v1/admin/ideas/i1/approve", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(mockSvc.Transitions) != 1 || mockSvc.Transitions[0] != "idea/i1/approved" {
		t.Errorf("Expected one approve transition, got %v", mockSvc.Transitions)
	}

	var response struct {
		Notification string `json:"notification"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response.Notification != "sent" {
		t.Errorf("Expected notification outcome in response, got %q", response.Notification)
	}
}

func TestAdminApprove_NotFound(t *testing.T) {
	router, _ := setupTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, adminRequest("POST", "/v1/admin/ideas/missing/approve", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestAdminApprove_InFlightGuard(t *testing.T) {
	router, mockSvc := setupTestRouter()
	mockSvc.Gets["i1"] = testIdea("i1", models.StatusPending, "A")
	mockSvc.Gets["i2"] = testIdea("i2", models.StatusPending, "B")

	block := make(chan struct{})
	entered := make(chan struct{})
	mockSvc.BlockApproval = block
	mockSvc.ApproveEntered = entered

	firstDone := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, adminRequest("POST", "/v1/admin/ideas/i1/approve", nil))
		firstDone <- w
	}()
	<-entered // first request is now holding i1's guard

	// Same record: suppressed while the action is outstanding
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, adminRequest("POST", "/v1/admin/ideas/i1/reject", nil))
	if w2.Code != http.StatusConflict {
		t.Errorf("Expected 409 for duplicate action on same record, got %d", w2.Code)
	}

	// Other records stay independently actionable (reject does not block)
	w3 := httptest.NewRecorder()
	router.ServeHTTP(w3, adminRequest("POST", "/v1/admin/ideas/i2/reject", nil))
	if w3.Code != http.StatusOK {
		t.Errorf("Expected 200 for a different record, got %d", w3.Code)
	}

	close(block)
	w1 := <-firstDone
	if w1.Code != http.StatusOK {
		t.Errorf("Expected the blocked approve to finish with 200, got %d", w1.Code)
	}

	// Guard released: the record is actionable again
	w4 := httptest.NewRecorder()
	router.ServeHTTP(w4, adminRequest("POST", "/v1/admin/ideas/i1/reject", nil))
	if w4.Code != http.StatusOK {
		t.Errorf("Expected 200 after guard release, got %d", w4.Code)
	}
}

func TestAdminDelete_RequiresConfirmation(t *testing.T) {
	router, mockSvc := setupTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, adminRequest("DELETE", "/v1/admin/ideas/i1", nil))

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without confirmation, got %d", w.Code)
	}
	if len(mockSvc.Deleted) != 0 {
		t.Error("Unconfirmed delete must not reach the store")
	}
}

func TestAdminDelete_Confirmed(t *testing.T) {
	router, mockSvc := setupTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, adminRequest("DELETE", "/v1/admin/ideas/i1?confirm=true", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if len(mockSvc.Deleted) != 1 || mockSvc.Deleted[0] != "idea/i1" {
		t.Errorf("Expected delete to reach the store, got %v", mockSvc.Deleted)
	}
}

func TestProjectFeatures_ParentScoped(t *testing.T) {
	router, mockSvc := setupTestRouter()
	mockSvc.Lists[models.KindFeature] = []models.Record{
		&models.ProjectFeature{
			Submission: models.Submission{ID: "f1", Status: models.StatusApproved},
			ProjectID:  "p1", Title: "Dark mode",
		},
		&models.ProjectFeature{
			Submission: models.Submission{ID: "f2", Status: models.StatusApproved},
			ProjectID:  "p2", Title: "Light mode",
		},
		&models.ProjectFeature{
			Submission: models.Submission{ID: "f3", Status: models.StatusPending},
			ProjectID:  "p1", Title: "Hidden pending",
		},
	}

	req := httptest.NewRequest("GET", "/v1/projects/p1/features", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var response struct {
		Features []models.ProjectFeature `json:"features"`
		Count    int                     `json:"count"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)

	if response.Count != 1 || len(response.Features) != 1 {
		t.Fatalf("Expected exactly p1's approved feature, got %d", response.Count)
	}
	if response.Features[0].ID != "f1" {
		t.Errorf("Wrong feature returned: %s", response.Features[0].ID)
	}
}

func TestStoreFailure_Returns500(t *testing.T) {
	router, mockSvc := setupTestRouter()
	mockSvc.Gets["i1"] = testIdea("i1", models.StatusPending, "A")
	mockSvc.ActionError = models.ErrRecordNotFound // any error works; use a typed one below

	w := httptest.NewRecorder()
	router.ServeHTTP(w, adminRequest("POST", "/v1/admin/ideas/i1/approve", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Typed not-found should map to 404, got %d", w.Code)
	}

	mockSvc.ActionError = errTestStore
	w = httptest.NewRecorder()
	router.ServeHTTP(w, adminRequest("POST", "/v1/admin/ideas/i1/approve", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Store failure should map to 500, got %d", w.Code)
	}

	// Guard must be released so the operator can retry
	mockSvc.ActionError = nil
	w = httptest.NewRecorder()
	router.ServeHTTP(w, adminRequest("POST", "/v1/admin/ideas/i1/approve", nil))
	if w.Code != http.StatusOK {
		t.Errorf("Retry after failure should succeed, got %d", w.Code)
	}
}

var errTestStore = &storeError{}

type storeError struct{}

func (e *storeError) Error() string { return "store unavailable" }
