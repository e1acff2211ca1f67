package dto

// AIProcessRequest 转写 / 内容分析请求
type AIProcessRequest struct {
	VideoID  int64  `json:"video_id" binding:"required,gt=0"`
	Provider string `json:"provider" binding:"omitempty,oneof=openai groq gemini"`
}

// BatchTranscribeRequest 批量转写
type BatchTranscribeRequest struct {
	VideoIDs []int64 `json:"video_ids" binding:"required,min=1,max=50,dive,gt=0"`
	Provider string  `json:"provider" binding:"omitempty,oneof=openai groq gemini"`
}

// AIProvider 可用的 AI 服务商
type AIProvider struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Services    []string `json:"services"`
	Description string   `json:"description"`
}

// TaskDispatchData 已派发的处理任务
type TaskDispatchData struct {
	TaskID   int64  `json:"task_id"`
	VideoID  int64  `json:"video_id"`
	TaskType string `json:"task_type"`
	Provider string `json:"provider"`
}
