package handler

import (
	"strings"

	"vidshare-go/internal/api/response"
	"vidshare-go/internal/service"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	searchService *service.SearchService
}

func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// SearchVideos 搜索视频
// @Summary 搜索视频
// @Description 在公开且已处理完成的视频中按关键词搜索，q 为空时按时间倒序返回
// @Tags 搜索
// @Produce json
// @Param q query string false "搜索关键词"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} contract.APIResponse[contract.Video] "搜索成功"
// @Router /videos/search [get]
func (h *SearchHandler) SearchVideos(c *gin.Context) {
	page, pageSize := parsePagination(c)
	q := strings.TrimSpace(c.Query("q"))

	videos, total, err := h.searchService.SearchVideos(q, page, pageSize)
	if err != nil {
		internalError(c, "Search videos", err, "搜索失败，请稍后重试")
		return
	}

	response.Paginated(c, page, pageSize, videos, total)
}
