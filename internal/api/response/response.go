package response

import (
	"errors"
	"net/http"
	"strconv"

	"vidshare-go/pkg/contract"
	"vidshare-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一成功响应
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorInfo 错误详情
type ErrorInfo struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// ErrorResponse 统一错误响应
type ErrorResponse struct {
	Error ErrorInfo `json:"error"`
}

func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// MultiStatus 207：部分成功，data 为已完成的部分
func MultiStatus(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusMultiStatus, Response{
		Success: false,
		Message: message,
		Data:    data,
	})
}

func Fail(c *gin.Context, statusCode int, errType string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error: ErrorInfo{
			Code:    statusCode,
			Message: message,
			Type:    errType,
		},
	})
}

func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, "BadRequest", message)
}

func Unauthorized(c *gin.Context, message string) {
	Fail(c, http.StatusUnauthorized, "Unauthorized", message)
}

func Forbidden(c *gin.Context, message string) {
	Fail(c, http.StatusForbidden, "Forbidden", message)
}

func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, "NotFound", message)
}

func Conflict(c *gin.Context, message string) {
	Fail(c, http.StatusConflict, "Conflict", message)
}

func InternalError(c *gin.Context, message string) {
	Fail(c, http.StatusInternalServerError, "InternalServerError", message)
}

// SchemaError 契约错误返回 400，type 为错误类别名；不是契约错误时返回 false
func SchemaError(c *gin.Context, err error) bool {
	var se *contract.SchemaError
	if !errors.As(err, &se) {
		return false
	}
	Fail(c, http.StatusBadRequest, contract.KindName(se), se.Error())
	return true
}

// PageURL 指定页的绝对地址，保留其余查询参数
func PageURL(r *http.Request, page int) string {
	u := *r.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	u.Host = r.Host
	u.Scheme = "http"
	if r.TLS != nil {
		u.Scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		u.Scheme = proto
	}
	return u.String()
}

// Paginated 列表接口直接写出分页信封 {results, count, next, previous}
func Paginated[T any](c *gin.Context, page, pageSize int, results []T, total int64) {
	var next, previous contract.Optional[string]
	if int64(page)*int64(pageSize) < total {
		next = contract.Some(PageURL(c.Request, page+1))
	}
	if page > 1 {
		previous = contract.Some(PageURL(c.Request, page-1))
	}

	env, err := contract.NewAPIResponse(results, total, next, previous)
	if err != nil {
		logger.Error("Build paginated response failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
		InternalError(c, "服务器内部错误")
		return
	}
	c.JSON(http.StatusOK, env)
}
