package handler

import (
	"errors"

	"vidshare-go/internal/api/response"
	"vidshare-go/internal/service"
	"vidshare-go/pkg/contract"

	"github.com/gin-gonic/gin"
)

type SocialHandler struct {
	socialService *service.SocialService
}

func NewSocialHandler(socialService *service.SocialService) *SocialHandler {
	return &SocialHandler{socialService: socialService}
}

// Platforms 可发布的平台
// @Summary 平台列表
// @Tags 社交发布
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} contract.APIResponse[contract.SocialPlatform]
// @Router /social/platforms [get]
func (h *SocialHandler) Platforms(c *gin.Context) {
	page, pageSize := parsePagination(c)

	platforms, total, err := h.socialService.Platforms(page, pageSize)
	if err != nil {
		internalError(c, "List social platforms", err, "获取平台列表失败")
		return
	}

	response.Paginated(c, page, pageSize, platforms, total)
}

// Upload 发布视频到社交平台
// @Summary 发布视频
// @Description 每个平台生成一条发布记录；带 schedule_date 时为定时发布
// @Tags 社交发布
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body contract.SocialUploadData true "发布信息"
// @Success 201 {object} response.Response{data=[]contract.SocialMediaUpload} "已提交"
// @Failure 400 {object} response.ErrorResponse "请求参数无效"
// @Failure 409 {object} response.ErrorResponse "已在该平台发布"
// @Router /social/upload [post]
func (h *SocialHandler) Upload(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	req, ok := decodeContract[contract.SocialUploadData](c)
	if !ok {
		return
	}

	uploads, err := h.socialService.Upload(userID, req)
	if err != nil {
		handleSocialError(c, err)
		return
	}

	response.Created(c, "发布任务已提交", uploads)
}

// Uploads 发布记录
// @Summary 发布记录
// @Tags 社交发布
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} contract.APIResponse[contract.SocialMediaUpload]
// @Router /social/uploads [get]
func (h *SocialHandler) Uploads(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)

	uploads, total, err := h.socialService.List(userID, page, pageSize)
	if err != nil {
		internalError(c, "List social uploads", err, "获取发布记录失败")
		return
	}

	response.Paginated(c, page, pageSize, uploads, total)
}

// UploadStatus 发布状态
// @Summary 发布状态
// @Tags 社交发布
// @Produce json
// @Security BearerAuth
// @Param id path int true "发布记录ID"
// @Success 200 {object} response.Response{data=contract.SocialMediaUpload}
// @Failure 404 {object} response.ErrorResponse "发布记录不存在"
// @Router /social/upload-status/{id} [get]
func (h *SocialHandler) UploadStatus(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	uploadID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "无效的发布记录ID")
		return
	}

	upload, err := h.socialService.Get(uploadID, userID)
	if err != nil {
		handleSocialError(c, err)
		return
	}

	response.OK(c, "获取成功", upload)
}

// Retry 重试失败的发布
// @Summary 重试发布
// @Tags 社交发布
// @Produce json
// @Security BearerAuth
// @Param id path int true "发布记录ID"
// @Success 200 {object} response.Response{data=contract.SocialMediaUpload}
// @Failure 400 {object} response.ErrorResponse "当前状态不能重试"
// @Router /social/uploads/{id}/retry [post]
func (h *SocialHandler) Retry(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	uploadID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "无效的发布记录ID")
		return
	}

	upload, err := h.socialService.Retry(uploadID, userID)
	if err != nil {
		handleSocialError(c, err)
		return
	}

	response.OK(c, "已重新提交发布", upload)
}

// Cancel 取消发布
// @Summary 取消发布
// @Tags 社交发布
// @Produce json
// @Security BearerAuth
// @Param id path int true "发布记录ID"
// @Success 200 {object} response.Response{data=contract.SocialMediaUpload}
// @Failure 400 {object} response.ErrorResponse "当前状态不能取消"
// @Router /social/uploads/{id} [delete]
func (h *SocialHandler) Cancel(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	uploadID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "无效的发布记录ID")
		return
	}

	upload, err := h.socialService.Cancel(uploadID, userID)
	if err != nil {
		handleSocialError(c, err)
		return
	}

	response.OK(c, "已取消发布", upload)
}

func handleSocialError(c *gin.Context, err error) {
	if response.SchemaError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrVideoNotFound),
		errors.Is(err, service.ErrUploadNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrAlreadyPublished):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrVideoNotReady),
		errors.Is(err, service.ErrPlatformNotFound),
		errors.Is(err, service.ErrPlatformFileTooLarge),
		errors.Is(err, service.ErrPlatformTooLong),
		errors.Is(err, service.ErrPlatformFormat),
		errors.Is(err, service.ErrInvalidScheduleDate),
		errors.Is(err, service.ErrUploadNotFailed),
		errors.Is(err, service.ErrUploadNotCancellable):
		response.BadRequest(c, err.Error())
	default:
		internalError(c, "Social operation", err, "操作失败，请稍后重试")
	}
}
