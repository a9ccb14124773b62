// Package handler 存放 Gin 的 HTTP 处理函数。
package handler

import (
	"errors"
	"net/http"
	"samma3ni-go/internal/model"
	"samma3ni-go/internal/service"
	"samma3ni-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// SearchHandler 结构体定义了搜索相关的处理器。
type SearchHandler struct {
	searchService service.SearchService
}

// NewSearchHandler 创建一个新的 SearchHandler 实例。
func NewSearchHandler(searchService service.SearchService) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
	}
}

// Root 返回服务存活信息。
func Root(c *gin.Context) {
	c.String(http.StatusOK, "Song Search API is running")
}

// SearchSongs 是处理歌曲相似度搜索请求的 Gin 处理函数。
func (h *SearchHandler) SearchSongs(c *gin.Context) {
	query := c.Query("q")
	searchType := model.SearchType(c.Query("type"))
	log.Infof("[SearchHandler] 收到搜索请求, q: %s, type: %s", query, searchType)

	results, err := h.searchService.SearchSongs(c.Request.Context(), query, searchType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSearch):
			log.Warnf("[SearchHandler] 搜索请求参数无效, q: '%s', type: '%s'", query, searchType)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query or type"})
		case errors.Is(err, service.ErrCatalogUnavailable):
			log.Errorf("[SearchHandler] 候选歌曲来源不可用, error: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Song catalog unavailable"})
		default:
			log.Errorf("[SearchHandler] 搜索服务返回错误, error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		}
		return
	}

	log.Infof("[SearchHandler] 搜索成功, q: '%s', 返回 %d 条结果", query, len(results))
	c.JSON(http.StatusOK, gin.H{"code": 200, "data": results, "message": "success"})
}
