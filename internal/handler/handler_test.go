package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"samma3ni-go/internal/model"
	"samma3ni-go/internal/service"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSearchService struct {
	results   []model.SongResultDTO
	err       error
	gotQuery  string
	gotSearch model.SearchType
}

func (s *stubSearchService) SearchSongs(_ context.Context, query string, searchType model.SearchType) ([]model.SongResultDTO, error) {
	s.gotQuery, s.gotSearch = query, searchType
	return s.results, s.err
}

type stubHistoryService struct {
	saved []model.SearchHistory
	err   error
}

func (s *stubHistoryService) SaveSearch(_ context.Context, query string, searchType model.SearchType) (*model.SearchHistory, error) {
	if s.err != nil {
		return nil, s.err
	}
	if query == "" || !searchType.Valid() {
		return nil, service.ErrInvalidHistory
	}
	item := model.SearchHistory{ID: uint(len(s.saved) + 1), Query: query, SearchType: searchType}
	s.saved = append(s.saved, item)
	return &item, nil
}

func (s *stubHistoryService) RecentSearches(_ context.Context) ([]model.SearchHistory, error) {
	return s.saved, s.err
}

type envelope struct {
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

func newRouter(search service.SearchService, history service.HistoryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", Root)
	r.GET("/api/songs/search", NewSearchHandler(search).SearchSongs)
	h := NewHistoryHandler(history)
	r.POST("/api/history", h.Save)
	r.GET("/api/history", h.List)
	return r
}

func do(t *testing.T, r http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	var env envelope
	if strings.HasPrefix(rr.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	}
	return rr, env
}

func TestRoot(t *testing.T) {
	rr, _ := do(t, newRouter(&stubSearchService{}, &stubHistoryService{}), http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Song Search API is running", rr.Body.String())
}

func TestSearchSongs_OK(t *testing.T) {
	search := &stubSearchService{results: []model.SongResultDTO{{Title: "Hello", Artist: "Adele", Similarity: 0.58}}}
	rr, env := do(t, newRouter(search, &stubHistoryService{}), http.MethodGet, "/api/songs/search?q=hello&type=lyrics", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "hello", search.gotQuery)
	assert.Equal(t, model.SearchTypeLyrics, search.gotSearch)

	var results []model.SongResultDTO
	require.NoError(t, json.Unmarshal(env.Data, &results))
	require.Len(t, results, 1)
	assert.Equal(t, 0.58, results[0].Similarity)
}

func TestSearchSongs_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"invalid", service.ErrInvalidSearch, http.StatusBadRequest, "Missing query or type"},
		{"catalog", fmt.Errorf("%w: timeout", service.ErrCatalogUnavailable), http.StatusBadGateway, "Song catalog unavailable"},
		{"other", errors.New("boom"), http.StatusInternalServerError, "Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, env := do(t, newRouter(&stubSearchService{err: tt.err}, &stubHistoryService{}), http.MethodGet, "/api/songs/search?q=x&type=title", "")
			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.msg, env.Error)
		})
	}
}

func TestHistory_SaveAndList(t *testing.T) {
	history := &stubHistoryService{}
	r := newRouter(&stubSearchService{}, history)

	rr, env := do(t, r, http.MethodPost, "/api/history", `{"query":"hello","searchType":"title"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	var saved model.SearchHistory
	require.NoError(t, json.Unmarshal(env.Data, &saved))
	assert.Equal(t, "hello", saved.Query)
	assert.Equal(t, model.SearchTypeTitle, saved.SearchType)

	rr, env = do(t, r, http.MethodGet, "/api/history", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var items []model.SearchHistory
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 1)
}

func TestHistory_SaveInvalid(t *testing.T) {
	r := newRouter(&stubSearchService{}, &stubHistoryService{})
	for _, body := range []string{`{"query":"hello"}`, `{"searchType":"title"}`, `not json`} {
		rr, env := do(t, r, http.MethodPost, "/api/history", body)
		assert.Equal(t, http.StatusBadRequest, rr.Code, body)
		assert.Equal(t, "Query and searchType are required", env.Error, body)
	}
}

func TestHistory_ListError(t *testing.T) {
	rr, env := do(t, newRouter(&stubSearchService{}, &stubHistoryService{err: errors.New("db down")}), http.MethodGet, "/api/history", "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Internal Server Error", env.Error)
}
