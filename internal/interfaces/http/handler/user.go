// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"

	"task-prompt-api/internal/domain/entity"
	"task-prompt-api/internal/domain/repository"
	"task-prompt-api/internal/interfaces/http/dto"
	"task-prompt-api/internal/interfaces/http/middleware"

	"github.com/gin-gonic/gin"
)

// AccountService 用户管理
type AccountService interface {
	Register(ctx context.Context, email, name, password string, isAdmin bool) (*entity.User, error)
	Get(ctx context.Context, id string) (*entity.User, error)
	List(ctx context.Context, page repository.Pagination) ([]*entity.User, error)
	Delete(ctx context.Context, id string) error
}

// CreditGranter 记录充值
type CreditGranter interface {
	Grant(ctx context.Context, userID string, amount int64, paymentRef *string) (*entity.CreditTransaction, int64, error)
}

// UserHandler 用户处理器
type UserHandler struct {
	accounts AccountService
	credits  CreditGranter
}

// NewUserHandler 创建用户处理器
func NewUserHandler(accounts AccountService, credits CreditGranter) *UserHandler {
	return &UserHandler{accounts: accounts, credits: credits}
}

// Register 注册
// @Summary 用户注册
// @Tags Users
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "注册信息"
// @Success 201 {object} dto.Response[dto.UserResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /users [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.accounts.Register(c.Request.Context(), req.Email, req.Name, req.Password, false)
	if err != nil {
		handleError(c, err, "failed to register user")
		return
	}
	dto.Created(c, dto.ToUserResponse(user))
}

// Me 当前用户
func (h *UserHandler) Me(c *gin.Context) {
	dto.Success(c, dto.ToUserResponse(middleware.GetUserFromGin(c)))
}

// ListUsers 用户列表（管理员）
// @Summary 用户列表
// @Tags Users
// @Produce json
// @Param skip query int false "跳过条数" default(0)
// @Param limit query int false "返回条数" default(100)
// @Success 200 {object} dto.Response[[]dto.UserResponse]
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, err := dto.BindPagination(c)
	if err != nil {
		bindError(c, err)
		return
	}

	users, err := h.accounts.List(c.Request.Context(), page)
	if err != nil {
		handleError(c, err, "failed to list users")
		return
	}
	dto.Success(c, dto.ToUserListResponse(users))
}

// GetUser 用户详情（管理员）
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.accounts.Get(c.Request.Context(), dto.BindUserID(c))
	if err != nil {
		handleError(c, err, "failed to get user")
		return
	}
	dto.Success(c, dto.ToUserResponse(user))
}

// DeleteUser 删除用户及其任务、结果与积分流水（管理员）
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.accounts.Delete(c.Request.Context(), dto.BindUserID(c)); err != nil {
		handleError(c, err, "failed to delete user")
		return
	}
	dto.NoContent(c)
}

// GrantCredits 为用户充值（管理员）
// @Summary 充值
// @Tags Users
// @Accept json
// @Produce json
// @Param body body dto.GrantCreditsRequest true "充值信息"
// @Success 201 {object} dto.Response[dto.GrantCreditsResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{id}/credits [post]
func (h *UserHandler) GrantCredits(c *gin.Context) {
	var req dto.GrantCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	txn, balance, err := h.credits.Grant(c.Request.Context(), dto.BindUserID(c), req.Amount, req.PaymentRef)
	if err != nil {
		handleError(c, err, "failed to grant credits")
		return
	}
	dto.Created(c, &dto.GrantCreditsResponse{
		Transaction:   dto.ToCreditResponse(txn),
		CreditBalance: balance,
	})
}
