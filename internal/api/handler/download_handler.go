package handler

import (
	"errors"

	"vidshare-go/internal/api/dto"
	"vidshare-go/internal/api/response"
	"vidshare-go/internal/service"

	"github.com/gin-gonic/gin"
)

type DownloadHandler struct {
	downloadService *service.DownloadService
}

func NewDownloadHandler(downloadService *service.DownloadService) *DownloadHandler {
	return &DownloadHandler{downloadService: downloadService}
}

// Create 导入 YouTube 视频
// @Summary 导入 YouTube 视频
// @Tags 视频
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.YouTubeDownloadRequest true "视频链接"
// @Success 201 {object} response.Response{data=contract.YouTubeDownload} "已提交"
// @Failure 400 {object} response.ErrorResponse "链接无效"
// @Router /videos/youtube/download [post]
func (h *DownloadHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.YouTubeDownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	download, err := h.downloadService.Create(userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidYouTubeURL) {
			response.BadRequest(c, err.Error())
			return
		}
		internalError(c, "Create youtube download", err, "提交下载任务失败")
		return
	}

	response.Created(c, "下载任务已提交", download)
}

// List YouTube 导入记录
// @Summary YouTube 导入记录
// @Tags 视频
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} contract.APIResponse[contract.YouTubeDownload]
// @Router /videos/youtube/downloads [get]
func (h *DownloadHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)

	downloads, total, err := h.downloadService.List(userID, page, pageSize)
	if err != nil {
		internalError(c, "List youtube downloads", err, "获取下载记录失败")
		return
	}

	response.Paginated(c, page, pageSize, downloads, total)
}
