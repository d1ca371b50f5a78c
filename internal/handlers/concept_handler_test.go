package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"concept_flash/internal/config"
	"concept_flash/internal/model"
	svc_mocks "concept_flash/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const basePath = "/api/" + testTable

func TestConceptHandler_ListConcepts(t *testing.T) {
	tests := []struct {
		name         string
		setupMock    func(m *svc_mocks.ConceptService)
		expectedCode int
		expectedBody string
	}{
		{
			name: "正常系: 複数件",
			setupMock: func(m *svc_mocks.ConceptService) {
				m.On("ListConcepts", mock.Anything).Return([]*model.Concept{
					{ID: 1, Title: "A", DifficultyLevel: model.DifficultyBeginner},
					{ID: 2, Title: "B", DifficultyLevel: model.DifficultyAdvanced},
				}, nil).Once()
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "正常系: サービスがnilを返すと空配列",
			setupMock: func(m *svc_mocks.ConceptService) {
				m.On("ListConcepts", mock.Anything).Return(nil, nil).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: "[]",
		},
		{
			name: "異常系: サービスエラー",
			setupMock: func(m *svc_mocks.ConceptService) {
				m.On("ListConcepts", mock.Anything).
					Return(nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to fetch concepts.", "", errors.New("db"))).Once()
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := svc_mocks.NewConceptService(t)
			tc.setupMock(m)
			server := newTestServer(t, testConfig(), openTestDB(t), m)

			body := sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: basePath}, tc.expectedCode)
			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, string(body))
			}
			if tc.expectedCode == http.StatusOK && tc.expectedBody == "" {
				var got []model.Concept
				require.NoError(t, json.Unmarshal(body, &got))
				assert.Len(t, got, 2)
				assert.Equal(t, model.DifficultyAdvanced, got[1].DifficultyLevel)
			}
		})
	}
}

func TestConceptHandler_GetConcept(t *testing.T) {
	t.Run("正常系", func(t *testing.T) {
		m := svc_mocks.NewConceptService(t)
		m.On("GetConcept", mock.Anything, uint(4)).Return(&model.Concept{ID: 4, Title: "Entropy"}, nil).Once()
		server := newTestServer(t, testConfig(), openTestDB(t), m)

		body := sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: basePath + "/4"}, http.StatusOK)
		var got model.Concept
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, "Entropy", got.Title)
	})

	t.Run("異常系: 不正なID", func(t *testing.T) {
		m := svc_mocks.NewConceptService(t)
		server := newTestServer(t, testConfig(), openTestDB(t), m)

		body := sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: basePath + "/abc"}, http.StatusBadRequest)
		detail := verifyErrorResponse(t, body, "INVALID_URL_PARAM")
		assert.Equal(t, "concept_id", detail.Field)
	})

	t.Run("異常系: 存在しない", func(t *testing.T) {
		m := svc_mocks.NewConceptService(t)
		m.On("GetConcept", mock.Anything, uint(9)).
			Return(nil, model.NewAppError("NOT_FOUND", "Concept not found.", "id", model.ErrNotFound)).Once()
		server := newTestServer(t, testConfig(), openTestDB(t), m)

		body := sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: basePath + "/9"}, http.StatusNotFound)
		verifyErrorResponse(t, body, "NOT_FOUND")
	})
}

func TestConceptHandler_CreateConcept(t *testing.T) {
	validReq := model.ConceptInput{
		Title:           "Recursion",
		Description:     "A function that calls itself",
		Category:        "programming",
		DifficultyLevel: model.DifficultyIntermediate,
	}

	tests := []struct {
		name         string
		body         interface{}
		setupMock    func(m *svc_mocks.ConceptService)
		expectedCode int
		expectedErr  string
	}{
		{
			name: "正常系",
			body: validReq,
			setupMock: func(m *svc_mocks.ConceptService) {
				m.On("CreateConcept", mock.Anything, &validReq).Return(&model.Concept{
					ID:              10,
					Title:           validReq.Title,
					Description:     validReq.Description,
					Category:        validReq.Category,
					DifficultyLevel: validReq.DifficultyLevel,
					CreatedAt:       time.Now(),
					UpdatedAt:       time.Now(),
				}, nil).Once()
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "異常系: 不正なJSON",
			body:         `{"title":`,
			setupMock:    func(m *svc_mocks.ConceptService) {},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "INVALID_REQUEST_BODY",
		},
		{
			name:         "異常系: 未知のフィールド",
			body:         `{"title":"t","description":"d","id":5}`,
			setupMock:    func(m *svc_mocks.ConceptService) {},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "INVALID_REQUEST_BODY",
		},
		{
			name:         "異常系: タイトル無し",
			body:         model.ConceptInput{Description: "only description"},
			setupMock:    func(m *svc_mocks.ConceptService) {},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "VALIDATION_ERROR",
		},
		{
			name:         "異常系: 難易度が不正",
			body:         `{"title":"t","description":"d","difficulty_level":"expert"}`,
			setupMock:    func(m *svc_mocks.ConceptService) {},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "VALIDATION_ERROR",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := svc_mocks.NewConceptService(t)
			tc.setupMock(m)
			server := newTestServer(t, testConfig(), openTestDB(t), m)

			body := sendRequest(t, server, httpRequestDetails{Method: http.MethodPost, Path: basePath, Body: tc.body}, tc.expectedCode)
			if tc.expectedErr != "" {
				verifyErrorResponse(t, body, tc.expectedErr)
				return
			}
			var got model.Concept
			require.NoError(t, json.Unmarshal(body, &got))
			assert.Equal(t, uint(10), got.ID)
			assert.Equal(t, validReq.Title, got.Title)
		})
	}
}

func TestConceptHandler_UpdateConcept(t *testing.T) {
	t.Run("正常系: PUTで部分更新", func(t *testing.T) {
		m := svc_mocks.NewConceptService(t)
		m.On("UpdateConcept", mock.Anything, uint(2), mock.MatchedBy(func(p *model.ConceptPatch) bool {
			return p.Title != nil && *p.Title == "Closures" && p.Description == nil
		})).Return(&model.Concept{ID: 2, Title: "Closures"}, nil).Once()
		server := newTestServer(t, testConfig(), openTestDB(t), m)

		body := sendRequest(t, server, httpRequestDetails{
			Method: http.MethodPut,
			Path:   basePath + "/2",
			Body:   `{"title":"Closures"}`,
		}, http.StatusOK)
		var got model.Concept
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, "Closures", got.Title)
	})

	t.Run("異常系: 更新フィールド無し", func(t *testing.T) {
		m := svc_mocks.NewConceptService(t)
		server := newTestServer(t, testConfig(), openTestDB(t), m)

		body := sendRequest(t, server, httpRequestDetails{Method: http.MethodPut, Path: basePath + "/2", Body: `{}`}, http.StatusBadRequest)
		verifyErrorResponse(t, body, "VALIDATION_ERROR")
	})

	t.Run("異常系: 存在しない", func(t *testing.T) {
		m := svc_mocks.NewConceptService(t)
		m.On("UpdateConcept", mock.Anything, uint(8), mock.Anything).
			Return(nil, model.NewAppError("NOT_FOUND", "Concept not found.", "id", model.ErrNotFound)).Once()
		server := newTestServer(t, testConfig(), openTestDB(t), m)

		body := sendRequest(t, server, httpRequestDetails{Method: http.MethodPut, Path: basePath + "/8", Body: `{"category":"art"}`}, http.StatusNotFound)
		verifyErrorResponse(t, body, "NOT_FOUND")
	})
}

func TestConceptHandler_DeleteConcept(t *testing.T) {
	t.Run("正常系", func(t *testing.T) {
		m := svc_mocks.NewConceptService(t)
		m.On("DeleteConcept", mock.Anything, uint(3)).Return(nil).Once()
		server := newTestServer(t, testConfig(), openTestDB(t), m)

		body := sendRequest(t, server, httpRequestDetails{Method: http.MethodDelete, Path: basePath + "/3"}, http.StatusNoContent)
		assert.Empty(t, body)
	})

	t.Run("異常系: 存在しない", func(t *testing.T) {
		m := svc_mocks.NewConceptService(t)
		m.On("DeleteConcept", mock.Anything, uint(3)).
			Return(model.NewAppError("NOT_FOUND", "Concept not found.", "id", model.ErrNotFound)).Once()
		server := newTestServer(t, testConfig(), openTestDB(t), m)

		sendRequest(t, server, httpRequestDetails{Method: http.MethodDelete, Path: basePath + "/3"}, http.StatusNotFound)
	})
}

func TestHealth(t *testing.T) {
	m := svc_mocks.NewConceptService(t)
	server := newTestServer(t, testConfig(), openTestDB(t), m)

	body := sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/health"}, http.StatusOK)
	assert.Equal(t, "OK", string(body))
}

func TestCORSPreflight_DefaultConfigAllowsPatch(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)
	cfg.Client.Table = testTable

	m := svc_mocks.NewConceptService(t)
	server := newTestServer(t, cfg, openTestDB(t), m)

	req, err := http.NewRequest(http.MethodOptions, server.URL+basePath+"/1", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), http.MethodPatch)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
