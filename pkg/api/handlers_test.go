package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"driver-apply/pkg/clients/kana"
	"driver-apply/pkg/clients/microcms"
	"driver-apply/pkg/models"
	"driver-apply/pkg/services"
)

type stubSubmissionService struct {
	err      error
	received []models.ApplicantForm
	coupang  []models.CoupangApplicantForm
}

func (s *stubSubmissionService) ProcessApplicant(_ context.Context, form models.ApplicantForm, _ models.RequestMeta) error {
	if s.err != nil {
		return s.err
	}
	s.received = append(s.received, form)
	return nil
}

func (s *stubSubmissionService) ProcessCoupangApplicant(_ context.Context, form models.CoupangApplicantForm, _ models.RequestMeta) error {
	if s.err != nil {
		return s.err
	}
	s.coupang = append(s.coupang, form)
	return nil
}

type stubJobCountService struct {
	result *models.JobCountResult
	err    error
}

func (s *stubJobCountService) LookupByPostalCode(context.Context, string) (*models.JobCountResult, error) {
	return s.result, s.err
}

func (s *stubJobCountService) LookupByPrefectureID(context.Context, int) (*models.JobCountResult, error) {
	return s.result, s.err
}

type stubLocationService struct {
	list *microcms.ContentList
	err  error
}

func (s *stubLocationService) Prefectures(context.Context) (*microcms.ContentList, error) {
	return s.list, s.err
}

func (s *stubLocationService) Municipalities(context.Context, string, string) (*microcms.ContentList, error) {
	return s.list, s.err
}

type stubKanaClient struct {
	converted string
	err       error
}

func (s *stubKanaClient) Convert(context.Context, string) (string, error) {
	return s.converted, s.err
}

func newTestRouter(sub services.SubmissionService, jobs services.JobCountService, loc services.LocationService) *gin.Engine {
	return newTestRouterWithKana(sub, jobs, loc, &stubKanaClient{})
}

func newTestRouterWithKana(sub services.SubmissionService, jobs services.JobCountService, loc services.LocationService, kc kana.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)
	RegisterValidations()

	h := NewHandlers(sub, jobs, loc, kc, "test")
	router := gin.New()
	router.POST("/api/applicants", h.HandleApplicantSubmission)
	router.POST("/api/coupang/applicants", h.HandleCoupangSubmission)
	router.POST("/api/kana", h.HandleKanaConvert)
	router.GET("/api/jobs-count", h.HandleJobsCount)
	router.GET("/api/location/prefectures", h.HandlePrefectures)
	router.GET("/api/location/municipalities", h.HandleMunicipalities)
	router.GET("/health", h.HealthCheck)
	return router
}

func validApplicantBody() map[string]interface{} {
	return map[string]interface{}{
		"birthDate":     map[string]string{"year": "1990", "month": "5", "day": "1"},
		"lastName":      "山田",
		"firstName":     "太郎",
		"lastNameKana":  "やまだ",
		"firstNameKana": "たろう",
		"postalCode":    "1010051",
		"phoneNumber":   "09031415926",
		"utmParams":     map[string]string{"utm_source": "tiktok", "utm_medium": "ad"},
		"formOrigin":    "lp-default",
	}
}

func postJSON(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestApplicantSubmissionAccepted(t *testing.T) {
	sub := &stubSubmissionService{}
	router := newTestRouter(sub, &stubJobCountService{}, &stubLocationService{})

	w := postJSON(router, "/api/applicants", validApplicantBody())

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Application submitted successfully!", resp["message"])
	require.Len(t, sub.received, 1)
	assert.Equal(t, "tiktok", sub.received[0].UTMParams.Source)
}

func TestApplicantSubmissionParseFailure(t *testing.T) {
	router := newTestRouter(&stubSubmissionService{}, &stubJobCountService{}, &stubLocationService{})

	req := httptest.NewRequest("POST", "/api/applicants", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestApplicantSubmissionRejectsBlocklistedPhone(t *testing.T) {
	sub := &stubSubmissionService{}
	router := newTestRouter(sub, &stubJobCountService{}, &stubLocationService{})

	body := validApplicantBody()
	body["phoneNumber"] = "09012345678"
	w := postJSON(router, "/api/applicants", body)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, sub.received)
}

func TestApplicantSubmissionMissingWebhookConfig(t *testing.T) {
	sub := &stubSubmissionService{err: services.ErrWebhookNotConfigured}
	router := newTestRouter(sub, &stubJobCountService{}, &stubLocationService{})

	w := postJSON(router, "/api/applicants", validApplicantBody())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Webhook configuration missing", resp["message"])
}

func TestCoupangSubmissionAccepted(t *testing.T) {
	sub := &stubSubmissionService{}
	router := newTestRouter(sub, &stubJobCountService{}, &stubLocationService{})

	body := validApplicantBody()
	delete(body, "formOrigin")
	w := postJSON(router, "/api/coupang/applicants", body)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, sub.coupang, 1)
}

func TestJobsCountSuccess(t *testing.T) {
	jobs := &stubJobCountService{result: &models.JobCountResult{
		PostalCode:   "1010051",
		JobCount:     8,
		SearchMethod: "prefecture",
		SearchArea:   "東京都",
		Message:      "東京都内で8件の求人が見つかりました",
	}}
	router := newTestRouter(&stubSubmissionService{}, jobs, &stubLocationService{})

	req := httptest.NewRequest("GET", "/api/jobs-count?postalCode=1010051", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp models.JobCountResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 8, resp.JobCount)
	assert.Equal(t, "東京都内で8件の求人が見つかりました", resp.Message)
}

func TestJobsCountMissingParam(t *testing.T) {
	router := newTestRouter(&stubSubmissionService{}, &stubJobCountService{}, &stubLocationService{})

	req := httptest.NewRequest("GET", "/api/jobs-count", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJobsCountErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"malformed code", services.ErrPostalCodeInvalid, http.StatusBadRequest},
		{"unresolvable prefecture", services.ErrPrefectureNotFound, http.StatusNotFound},
		{"upstream failure", assert.AnError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&stubSubmissionService{}, &stubJobCountService{err: tt.err}, &stubLocationService{})

			req := httptest.NewRequest("GET", "/api/jobs-count?postalCode=1010051", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.code, w.Code)
		})
	}
}

func TestPrefecturesEndpoint(t *testing.T) {
	loc := &stubLocationService{list: &microcms.ContentList{
		Contents:   []microcms.Content{{ID: "13", Name: "東京都", Region: "関東"}},
		TotalCount: 1,
	}}
	router := newTestRouter(&stubSubmissionService{}, &stubJobCountService{}, loc)

	req := httptest.NewRequest("GET", "/api/location/prefectures", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp microcms.ContentList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Contents, 1)
	assert.Equal(t, "東京都", resp.Contents[0].Name)
}

func TestMunicipalitiesUpstreamFailure(t *testing.T) {
	loc := &stubLocationService{err: assert.AnError}
	router := newTestRouter(&stubSubmissionService{}, &stubJobCountService{}, loc)

	req := httptest.NewRequest("GET", "/api/location/municipalities?prefectureId=13", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestKanaConvertSuccess(t *testing.T) {
	router := newTestRouterWithKana(&stubSubmissionService{}, &stubJobCountService{}, &stubLocationService{}, &stubKanaClient{converted: "やまだ"})

	w := postJSON(router, "/api/kana", map[string]string{"text": "山田"})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "やまだ", resp["converted"])
}

func TestKanaConvertMissingText(t *testing.T) {
	router := newTestRouter(&stubSubmissionService{}, &stubJobCountService{}, &stubLocationService{})

	w := postJSON(router, "/api/kana", map[string]string{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestKanaConvertUpstreamFailureIsAdvisory(t *testing.T) {
	router := newTestRouterWithKana(&stubSubmissionService{}, &stubJobCountService{}, &stubLocationService{}, &stubKanaClient{err: assert.AnError})

	w := postJSON(router, "/api/kana", map[string]string{"text": "山田"})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "", resp["converted"])
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(&stubSubmissionService{}, &stubJobCountService{}, &stubLocationService{})

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
