package routers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anilpotu/aws-s3-service/internal/app/domains/modules/mduser"
	"github.com/anilpotu/aws-s3-service/internal/app/domains/repo/rpuser/rpusertest"
	"github.com/anilpotu/aws-s3-service/internal/app/domains/services/svdispatch"
	"github.com/anilpotu/aws-s3-service/internal/app/domains/services/svnotify"
	"github.com/anilpotu/aws-s3-service/internal/app/domains/services/svstorage"
	"github.com/anilpotu/aws-s3-service/internal/app/domains/services/svuser"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/ginx"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/logger"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/outcome"
	"github.com/anilpotu/aws-s3-service/internal/app/server/handlers/notify"
	"github.com/anilpotu/aws-s3-service/internal/app/server/handlers/storage"
	"github.com/anilpotu/aws-s3-service/internal/app/server/handlers/user"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memStore 内存版对象存储
type memStore struct {
	mu      sync.Mutex
	objects map[string]map[string]interface{}
	err     error
}

func (s *memStore) ReadJSON(ctx context.Context, key string) (map[string]interface{}, outcome.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, outcome.Unknown, s.err
	}
	obj, ok := s.objects[key]
	if !ok {
		return nil, outcome.NotFound, nil
	}
	return obj, outcome.Found, nil
}

func (s *memStore) UploadJSON(ctx context.Context, key string, content map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.objects[key] = content
	return nil
}

func (s *memStore) UpdateJSON(ctx context.Context, key string, updates map[string]interface{}) (map[string]interface{}, outcome.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.objects[key]
	if !ok {
		return nil, outcome.NotFound, nil
	}
	for k, v := range updates {
		obj[k] = v
	}
	return obj, outcome.Updated, nil
}

type published struct{ message, subject string }

type fakeSNS struct {
	mu   sync.Mutex
	sent []published
}

func (f *fakeSNS) Publish(ctx context.Context, message, subject string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, published{message, subject})
	return "sns-1", nil
}

type fakeProducer struct {
	payloads []map[string]interface{}
	groupIDs []string
}

func (f *fakeProducer) Send(ctx context.Context, payload map[string]interface{}, groupID, dedupID string) (string, error) {
	f.payloads = append(f.payloads, payload)
	f.groupIDs = append(f.groupIDs, groupID)
	return "sqs-1", nil
}

type fixture struct {
	engine   *gin.Engine
	repo     *rpusertest.MemoryRepository
	store    *memStore
	sns      *fakeSNS
	producer *fakeProducer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.NewNop()
	f := &fixture{
		repo:     rpusertest.NewMemoryRepository(),
		store:    &memStore{objects: map[string]map[string]interface{}{}},
		sns:      &fakeSNS{},
		producer: &fakeProducer{},
	}

	module := mduser.NewUserModule(f.repo)
	storageService := svstorage.NewStorageService(f.store, f.sns, log)
	f.engine = SetupRoutes(log, Handlers{
		Storage: storage.NewStorageHandler(storageService),
		Notify:  notify.NewNotifyHandler(svnotify.NewNotifyService(f.sns, log)),
		User: user.NewUserHandler(
			svuser.NewUserService(module, log),
			storageService,
			svdispatch.NewDispatchService(module, f.producer, log),
		),
	})
	return f
}

func (f *fixture) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, ginx.Response) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	var resp ginx.Response
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func dataMap(t *testing.T, resp ginx.Response) map[string]interface{} {
	t.Helper()
	m, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "data is %T", resp.Data)
	return m
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	w, _ := f.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"ok"}`, w.Body.String())
}

func TestPersonalLifecycle(t *testing.T) {
	f := newFixture(t)

	w, resp := f.do(t, http.MethodPost, "/users/personal",
		`{"user_id":"u-1","name":"Alice","email":"alice@example.com","date_of_birth":"1990-05-17"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "1990-05-17", dataMap(t, resp)["date_of_birth"])

	w, resp = f.do(t, http.MethodPost, "/users/personal",
		`{"user_id":"u-1","name":"Alice","email":"alice@example.com"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Personal info already exists for user u-1", resp.Meta.Message)

	w, resp = f.do(t, http.MethodPatch, "/users/u-1/personal", `{"email":"alice@new.example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)
	data := dataMap(t, resp)
	assert.Equal(t, "alice@new.example.com", data["email"])
	assert.Equal(t, "Alice", data["name"])

	w, resp = f.do(t, http.MethodGet, "/users/u-1/personal", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice@new.example.com", dataMap(t, resp)["email"])

	w, resp = f.do(t, http.MethodDelete, "/users/u-1/personal", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Personal info deleted for user u-1", dataMap(t, resp)["message"])

	w, resp = f.do(t, http.MethodDelete, "/users/u-1/personal", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Personal info not found for user u-1", resp.Meta.Message)

	w, _ = f.do(t, http.MethodPatch, "/users/u-1/personal", `{"name":"Bob"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreatePersonal_Validation(t *testing.T) {
	f := newFixture(t)

	w, resp := f.do(t, http.MethodPost, "/users/personal", `{"user_id":"u-1","name":"Alice","email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotEmpty(t, resp.Meta.Details)
	assert.Equal(t, "Email", resp.Meta.Details[0].Path)

	w, _ = f.do(t, http.MethodPost, "/users/personal",
		`{"user_id":"u-1","name":"Alice","email":"a@example.com","date_of_birth":"17/05/1990"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFinancialAndHealth(t *testing.T) {
	f := newFixture(t)

	w, resp := f.do(t, http.MethodPost, "/users/financial", `{"user_id":"u-1","credit_score":720,"annual_income":85000}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.EqualValues(t, 720, dataMap(t, resp)["credit_score"])

	w, resp = f.do(t, http.MethodPatch, "/users/u-1/financial", `{"total_debt":12000.5}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 12000.5, dataMap(t, resp)["total_debt"])
	assert.EqualValues(t, 720, dataMap(t, resp)["credit_score"])

	w, resp = f.do(t, http.MethodPost, "/users/health", `{"user_id":"u-1","blood_type":"O+"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, []interface{}{}, dataMap(t, resp)["allergies"])

	w, resp = f.do(t, http.MethodPatch, "/users/u-1/health", `{"allergies":["pollen"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{"pollen"}, dataMap(t, resp)["allergies"])

	w, _ = f.do(t, http.MethodGet, "/users/u-2/health", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetFullRecord(t *testing.T) {
	f := newFixture(t)

	w, resp := f.do(t, http.MethodGet, "/users/u-1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No records found for user u-1", resp.Meta.Message)

	f.do(t, http.MethodPost, "/users/financial", `{"user_id":"u-1","credit_score":700}`)
	w, resp = f.do(t, http.MethodGet, "/users/u-1", "")
	require.Equal(t, http.StatusOK, w.Code)
	data := dataMap(t, resp)
	assert.Equal(t, "u-1", data["user_id"])
	assert.Nil(t, data["personal"])
	assert.NotNil(t, data["financial"])
	assert.Nil(t, data["health"])
}

func TestRepositoryFailureIsInternalError(t *testing.T) {
	f := newFixture(t)
	f.repo.Err = errors.New("connection refused")

	w, resp := f.do(t, http.MethodGet, "/users/u-1/personal", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, resp.Meta.Message, "connection refused")

	w, _ = f.do(t, http.MethodPost, "/users/personal", `{"user_id":"u-1","name":"A","email":"a@example.com"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestS3Routes(t *testing.T) {
	f := newFixture(t)

	w, resp := f.do(t, http.MethodGet, "/s3/reports/2024/q1.json", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "File not found: reports/2024/q1.json", resp.Meta.Message)

	w, resp = f.do(t, http.MethodPost, "/s3/upload", `{"key":"reports/2024/q1.json","content":{"a":1,"b":2}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Uploaded reports/2024/q1.json", dataMap(t, resp)["message"])

	w, resp = f.do(t, http.MethodPut, "/s3/reports/2024/q1.json", `{"content":{"b":3,"c":4}}`)
	require.Equal(t, http.StatusOK, w.Code)
	data := dataMap(t, resp)
	assert.Equal(t, "reports/2024/q1.json", data["key"])
	assert.Equal(t, map[string]interface{}{"a": float64(1), "b": float64(3), "c": float64(4)}, data["content"])

	w, resp = f.do(t, http.MethodGet, "/s3/reports/2024/q1.json", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "reports/2024/q1.json", dataMap(t, resp)["key"])

	w, _ = f.do(t, http.MethodPut, "/s3/missing.json", `{"content":{"x":1}}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, []published{
		{"S3 file uploaded: reports/2024/q1.json", "S3 File Upload"},
		{"S3 file updated: reports/2024/q1.json", "S3 File Update"},
	}, f.sns.sent)
}

func TestS3Upload_StoreFailure(t *testing.T) {
	f := newFixture(t)
	f.store.err = errors.New("AccessDenied")

	w, _ := f.do(t, http.MethodPost, "/s3/upload", `{"key":"a.json","content":{}}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, f.sns.sent)
}

func TestUserS3Files(t *testing.T) {
	f := newFixture(t)
	f.store.objects["users/u-1/personal.json"] = map[string]interface{}{"name": "Alice"}
	f.store.objects["users/u-1/financial.json"] = map[string]interface{}{"credit_score": float64(700)}

	w, resp := f.do(t, http.MethodGet, "/users/u-1/s3/personal", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Alice", dataMap(t, resp)["name"])

	w, resp = f.do(t, http.MethodGet, "/users/u-1/s3/all", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User info incomplete in S3 for user u-1", resp.Meta.Message)

	f.store.objects["users/u-1/health.json"] = map[string]interface{}{"blood_type": "O+"}
	w, resp = f.do(t, http.MethodGet, "/users/u-1/s3/all", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, dataMap(t, resp), 3)

	w, _ = f.do(t, http.MethodGet, "/users/u-1/s3/medical", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestSNSPublish(t *testing.T) {
	f := newFixture(t)

	w, resp := f.do(t, http.MethodPost, "/sns/publish", `{"subject":"Weekly","message":"report generated"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sns-1", dataMap(t, resp)["message_id"])

	w, _ = f.do(t, http.MethodPost, "/sns/publish", `{"message":"no subject"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = f.do(t, http.MethodPost, "/sns/publish", `{"subject":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, []published{{"report generated", "Weekly"}, {"no subject", ""}}, f.sns.sent)
}

func TestSQSSend(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/users/personal", `{"user_id":"u-1","name":"Alice","email":"alice@example.com"}`)

	w, resp := f.do(t, http.MethodPost, "/users/sqs/send", `{"user_id":"u-1","data_type":"personal","message_group_id":"g-1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	data := dataMap(t, resp)
	assert.Equal(t, "sqs-1", data["message_id"])
	assert.Equal(t, "personal", data["data_type"])
	require.Len(t, f.producer.payloads, 1)
	assert.Equal(t, "u-1", f.producer.payloads[0]["user_id"])
	assert.Equal(t, []string{"g-1"}, f.producer.groupIDs)

	w, resp = f.do(t, http.MethodPost, "/users/sqs/send", `{"user_id":"u-1","data_type":"medical"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "Invalid data_type 'medical'. Must be one of: personal, financial, health, all", resp.Meta.Message)

	w, resp = f.do(t, http.MethodPost, "/users/sqs/send", `{"user_id":"u-1","data_type":"health"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Health info not found for user u-1", resp.Meta.Message)

	assert.Len(t, f.producer.payloads, 1)
}
