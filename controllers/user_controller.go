package controllers

import (
	"errors"
	"net/http"

	"Gin_postgres_redis_book_exchange/app"
	"Gin_postgres_redis_book_exchange/db"
	"Gin_postgres_redis_book_exchange/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserController struct{ *Srv }

func GetUserController(s *Srv) *UserController { return &UserController{Srv: s} }

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Mobile   string `json:"mobile" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// POST /auth/register
func (uc *UserController) Register(c *gin.Context) {
	var in registerRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		msg(c, http.StatusBadRequest, "All fields are required")
		return
	}
	role := models.Role(in.Role)
	if !role.Valid() {
		msg(c, http.StatusBadRequest, "Invalid role")
		return
	}

	u := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password, // 明文存储
		Mobile:   in.Mobile,
		Role:     role,
	}
	if err := uc.Repo.CreateUser(c.Request.Context(), u); err != nil {
		if errors.Is(err, db.ErrDuplicateEmail) {
			msg(c, http.StatusConflict, "User already exists")
			return
		}
		uc.serverError(c, "Server error", err)
		return
	}

	uc.Log.Info("user registered", zap.String("userID", u.ID), zap.String("role", string(u.Role)))
	c.JSON(http.StatusCreated, app.H{"message": "User registered", "user": u})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/login
// 不发 token / cookie：客户端把返回的 user 对象存在本地就算“已登录”
func (uc *UserController) Login(c *gin.Context) {
	var in loginRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		msg(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	u, err := uc.Repo.FindUserByEmail(c.Request.Context(), in.Email)
	if err != nil && !errors.Is(err, db.ErrNotFound) {
		uc.serverError(c, "Server error", err)
		return
	}
	if u == nil || u.Password != in.Password {
		msg(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	c.Set(app.LoginUserKey, u.ID)
	c.JSON(http.StatusOK, app.H{"message": "Login successful", "user": u})
}

// GET /users/:id
func (uc *UserController) GetUser(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		msg(c, http.StatusNotFound, "User not found")
		return
	}
	u, err := uc.Repo.FindUserByID(c.Request.Context(), id)
	if err != nil {
		uc.notFoundOr(c, err, "User not found", "Error fetching user")
		return
	}
	c.JSON(http.StatusOK, app.H{"user": u})
}
