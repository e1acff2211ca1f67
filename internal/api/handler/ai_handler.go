package handler

import (
	"errors"

	"vidshare-go/internal/api/dto"
	"vidshare-go/internal/api/response"
	"vidshare-go/internal/service"

	"github.com/gin-gonic/gin"
)

type AIHandler struct {
	aiService *service.AIService
}

func NewAIHandler(aiService *service.AIService) *AIHandler {
	return &AIHandler{aiService: aiService}
}

// Transcribe 派发转写任务
// @Summary 视频转写
// @Tags AI
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AIProcessRequest true "视频与服务商"
// @Success 200 {object} response.Response{data=dto.TaskDispatchData} "已派发"
// @Failure 400 {object} response.ErrorResponse "视频未就绪"
// @Router /ai/transcribe [post]
func (h *AIHandler) Transcribe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.AIProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	data, err := h.aiService.Transcribe(userID, &req)
	if err != nil {
		handleAIError(c, err)
		return
	}

	response.OK(c, "转写任务已提交", data)
}

// Analyze 内容分析
// @Summary 内容分析
// @Description 视频需已有转写文本
// @Tags AI
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AIProcessRequest true "视频与服务商"
// @Success 200 {object} response.Response{data=dto.TaskDispatchData} "已派发"
// @Failure 400 {object} response.ErrorResponse "视频尚无转写"
// @Router /ai/analyze [post]
func (h *AIHandler) Analyze(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.AIProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	data, err := h.aiService.Analyze(userID, &req)
	if err != nil {
		handleAIError(c, err)
		return
	}

	response.OK(c, "内容分析任务已提交", data)
}

// BatchTranscribe 批量转写
// @Summary 批量转写
// @Description 任一视频无效时不派发；部分作业发送失败时返回 207 和已派发的任务
// @Tags AI
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BatchTranscribeRequest true "视频ID列表"
// @Success 200 {object} response.Response{data=[]dto.TaskDispatchData} "已派发"
// @Success 207 {object} response.Response{data=[]dto.TaskDispatchData} "部分派发"
// @Failure 400 {object} response.ErrorResponse "视频不存在或未就绪"
// @Router /ai/batch-transcribe [post]
func (h *AIHandler) BatchTranscribe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.BatchTranscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	tasks, err := h.aiService.BatchTranscribe(userID, &req)
	if errors.Is(err, service.ErrBatchPartiallyDispatched) {
		response.MultiStatus(c, err.Error(), tasks)
		return
	}
	if err != nil {
		handleAIError(c, err)
		return
	}

	response.OK(c, "批量转写任务已提交", tasks)
}

// Providers AI 服务商
// @Summary AI 服务商列表
// @Tags AI
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]dto.AIProvider}
// @Router /ai/providers [get]
func (h *AIHandler) Providers(c *gin.Context) {
	response.OK(c, "获取成功", service.AIProviders)
}

// TranscriptionStatus 转写状态
// @Summary 转写状态
// @Tags AI
// @Produce json
// @Security BearerAuth
// @Param video_id path int true "视频ID"
// @Success 200 {object} response.Response{data=contract.TranscriptionStatus}
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /ai/transcription-status/{video_id} [get]
func (h *AIHandler) TranscriptionStatus(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	videoID, ok := parseIDParam(c, "video_id")
	if !ok {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	status, err := h.aiService.TranscriptionStatus(videoID, userID)
	if err != nil {
		handleAIError(c, err)
		return
	}

	response.OK(c, "获取成功", status)
}

func handleAIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVideoNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrVideoNotReady),
		errors.Is(err, service.ErrNoTranscription),
		errors.Is(err, service.ErrUnknownProvider),
		errors.Is(err, service.ErrBatchVideosInvalid):
		response.BadRequest(c, err.Error())
	default:
		internalError(c, "AI operation", err, "操作失败，请稍后重试")
	}
}
