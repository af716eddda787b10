package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/medibook-api/internal/services"
)

type RegisterUserRequest struct {
	FullName       string `json:"fullName" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8"`
	Role           string `json:"role"`
	Phone          string `json:"phone"`
	Specialization string `json:"specialization"`
}

func (h *Handler) RegisterUser(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()
	user, err := h.Accounts.Register(ctx, services.RegisterInput{
		FullName:       req.FullName,
		Email:          req.Email,
		Password:       req.Password,
		Role:           req.Role,
		Phone:          req.Phone,
		Specialization: req.Specialization,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	// Password carries json:"-".
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) Login(c *gin.Context) {
	var loginReq struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&loginReq); err != nil {
		badRequest(c, "Invalid request")
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()
	token, user, err := h.Accounts.Login(ctx, loginReq.Email, loginReq.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// GetCurrentUser returns the profile of the authenticated caller.
func (h *Handler) GetCurrentUser(c *gin.Context) {
	userID, _ := caller(c)
	ctx, cancel := h.requestContext(c)
	defer cancel()

	user, err := h.Accounts.Profile(ctx, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
