// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"
	"net/http"
	"time"

	"task-prompt-api/internal/domain/entity"
	"task-prompt-api/internal/interfaces/http/dto"

	"github.com/gin-gonic/gin"
)

// Authenticator 校验凭证并签发令牌
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*entity.User, string, error)
}

// AuthHandler 认证处理器
type AuthHandler struct {
	auth     Authenticator
	tokenTTL time.Duration
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(auth Authenticator, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{auth: auth, tokenTTL: tokenTTL}
}

// Token 登录
// @Summary 获取访问令牌
// @Description OAuth2 password 流程，username 为邮箱，支持表单与 JSON
// @Tags Auth
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /token [post]
func (h *AuthHandler) Token(c *gin.Context) {
	var req dto.TokenRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	_, token, err := h.auth.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.Header("WWW-Authenticate", "Bearer")
		handleError(c, err, "failed to authenticate")
		return
	}

	// OAuth2 客户端要求令牌字段位于顶层
	c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(h.tokenTTL.Seconds()),
	})
}
