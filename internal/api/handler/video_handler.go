package handler

import (
	"errors"
	"net/http"

	"vidshare-go/internal/api/dto"
	"vidshare-go/internal/api/response"
	"vidshare-go/internal/service"
	"vidshare-go/pkg/contract"

	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	videoService *service.VideoService
	tagService   *service.TagService
}

func NewVideoHandler(videoService *service.VideoService, tagService *service.TagService) *VideoHandler {
	return &VideoHandler{videoService: videoService, tagService: tagService}
}

// List 当前用户的视频
// @Summary 我的视频列表
// @Tags 视频
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} contract.APIResponse[contract.Video]
// @Router /videos [get]
func (h *VideoHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)

	videos, total, err := h.videoService.List(userID, page, pageSize)
	if err != nil {
		internalError(c, "List videos", err, "获取视频列表失败")
		return
	}

	response.Paginated(c, page, pageSize, videos, total)
}

// Upload 上传视频
// @Summary 上传视频
// @Description multipart/form-data：title、description、is_public、video_file，可选 tag_names
// @Tags 视频
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "标题"
// @Param description formData string false "描述"
// @Param is_public formData bool false "是否公开"
// @Param tag_names formData string false "标签，逗号分隔"
// @Param video_file formData file true "视频文件"
// @Success 201 {object} response.Response{data=contract.Video} "上传成功"
// @Failure 400 {object} response.ErrorResponse "请求参数无效"
// @Router /videos [post]
func (h *VideoHandler) Upload(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			response.BadRequest(c, "请使用 multipart/form-data 上传")
			return
		}
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	upload, err := contract.ParseVideoUploadForm(form)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	video, err := h.videoService.Upload(userID, upload, splitTagNames(form.Value["tag_names"]))
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.Created(c, "视频上传成功，处理任务已提交", video)
}

// Get 视频详情
// @Summary 视频详情
// @Tags 视频
// @Produce json
// @Security BearerAuth
// @Param id path int true "视频ID"
// @Success 200 {object} response.Response{data=contract.Video}
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /videos/{id} [get]
func (h *VideoHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	video, err := h.videoService.Get(videoID, userID)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "获取视频详情成功", video)
}

// Update 更新视频信息
// @Summary 更新视频
// @Tags 视频
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "视频ID"
// @Param request body dto.VideoUpdateRequest true "可更新字段"
// @Success 200 {object} response.Response{data=contract.Video}
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /videos/{id} [put]
func (h *VideoHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	var req dto.VideoUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	video, err := h.videoService.Update(videoID, userID, &req)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "更新成功", video)
}

// Delete 删除视频
// @Summary 删除视频
// @Tags 视频
// @Produce json
// @Security BearerAuth
// @Param id path int true "视频ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /videos/{id} [delete]
func (h *VideoHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	if err := h.videoService.Delete(videoID, userID); err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "删除成功", nil)
}

// Tags 标签列表
// @Summary 标签列表
// @Tags 视频
// @Produce json
// @Security BearerAuth
// @Success 200 {object} contract.APIResponse[contract.Tag]
// @Router /videos/tags [get]
func (h *VideoHandler) Tags(c *gin.Context) {
	page, pageSize := parsePagination(c)

	tags, total, err := h.tagService.List(page, pageSize)
	if err != nil {
		internalError(c, "List tags", err, "获取标签失败")
		return
	}

	response.Paginated(c, page, pageSize, tags, total)
}

// ProcessingStatus 处理进度
// @Summary 处理进度
// @Tags 视频
// @Produce json
// @Security BearerAuth
// @Param id path int true "视频ID"
// @Success 200 {object} response.Response{data=contract.ProcessingStatus}
// @Router /videos/{id}/processing-status [get]
func (h *VideoHandler) ProcessingStatus(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	status, err := h.videoService.ProcessingStatus(videoID, userID)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "获取成功", status)
}

// Retry 重新处理失败的视频
// @Summary 重新处理
// @Tags 视频
// @Produce json
// @Security BearerAuth
// @Param id path int true "视频ID"
// @Success 200 {object} response.Response{data=contract.Video}
// @Failure 400 {object} response.ErrorResponse "视频未处于失败状态"
// @Router /videos/{id}/retry [post]
func (h *VideoHandler) Retry(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	video, err := h.videoService.Retry(videoID, userID)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "已重新提交处理", video)
}

// CancelProcessing 取消处理
// @Summary 取消处理
// @Tags 视频
// @Produce json
// @Security BearerAuth
// @Param id path int true "视频ID"
// @Success 200 {object} response.Response{data=contract.Video}
// @Failure 400 {object} response.ErrorResponse "当前状态无法取消"
// @Router /videos/{id}/processing [delete]
func (h *VideoHandler) CancelProcessing(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	video, err := h.videoService.CancelProcessing(videoID, userID)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "已取消处理", video)
}

func handleVideoError(c *gin.Context, err error) {
	if response.SchemaError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrVideoNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrUnsupportedFormat),
		errors.Is(err, service.ErrFileTooLarge),
		errors.Is(err, service.ErrNoFieldsToUpdate),
		errors.Is(err, service.ErrInvalidTagName),
		errors.Is(err, service.ErrVideoNotFailed),
		errors.Is(err, service.ErrCannotCancel):
		response.BadRequest(c, err.Error())
	default:
		internalError(c, "Video operation", err, "操作失败，请稍后重试")
	}
}
