package handler

import (
	"errors"
	"net/http"
	"samma3ni-go/internal/model"
	"samma3ni-go/internal/service"
	"samma3ni-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// HistoryHandler 负责处理搜索历史相关的 API 请求。
type HistoryHandler struct {
	historyService service.HistoryService
}

// NewHistoryHandler 创建一个新的 HistoryHandler 实例。
func NewHistoryHandler(historyService service.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// SaveHistoryRequest 定义了保存搜索历史的请求体。
type SaveHistoryRequest struct {
	Query      string           `json:"query"`
	SearchType model.SearchType `json:"searchType"`
}

// Save 保存一条搜索历史。
func (h *HistoryHandler) Save(c *gin.Context) {
	var req SaveHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("[HistoryHandler] 请求体解析失败: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query and searchType are required"})
		return
	}

	item, err := h.historyService.SaveSearch(c.Request.Context(), req.Query, req.SearchType)
	if err != nil {
		if errors.Is(err, service.ErrInvalidHistory) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Query and searchType are required"})
			return
		}
		log.Error("[HistoryHandler] 保存搜索历史失败", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"code": 201, "data": item, "message": "success"})
}

// List 返回最近的搜索历史。
func (h *HistoryHandler) List(c *gin.Context) {
	items, err := h.historyService.RecentSearches(c.Request.Context())
	if err != nil {
		log.Error("[HistoryHandler] 查询搜索历史失败", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "data": items, "message": "success"})
}
