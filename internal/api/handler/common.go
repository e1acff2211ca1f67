package handler

import (
	"strconv"
	"strings"

	"vidshare-go/internal/api/middleware"
	"vidshare-go/internal/api/response"
	"vidshare-go/internal/config"
	"vidshare-go/pkg/contract"
	"vidshare-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxPage 页码上限，保证 (page-1)*pageSize 不溢出
const maxPage = 100000

func parsePagination(c *gin.Context) (int, int) {
	cfg := config.GetPagination()

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(cfg.DefaultPageSize)))
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	if pageSize < 1 {
		pageSize = cfg.DefaultPageSize
	}
	if pageSize > cfg.MaxPageSize {
		pageSize = cfg.MaxPageSize
	}
	return page, pageSize
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// currentUser 取当前登录用户，缺失时直接写 401
func currentUser(c *gin.Context) (int64, bool) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "无法获取用户信息")
		return 0, false
	}
	return userID, true
}

// decodeContract 按契约解码请求体，错误直接写入响应
func decodeContract[T any](c *gin.Context) (T, bool) {
	var zero T
	body, err := c.GetRawData()
	if err != nil {
		response.BadRequest(c, "读取请求体失败")
		return zero, false
	}
	v, err := contract.Decode[T](body)
	if err != nil {
		response.SchemaError(c, err)
		return zero, false
	}
	return v, true
}

// splitTagNames 兼容 tag_names=a,b 与重复字段两种写法
func splitTagNames(values []string) []string {
	var names []string
	for _, v := range values {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}

// internalError 记录日志后返回 500
func internalError(c *gin.Context, op string, err error, message string) {
	logger.Error(op+" failed",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	response.InternalError(c, message)
}
