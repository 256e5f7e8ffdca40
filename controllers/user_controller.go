package controllers

import (
	"net/http"

	"github.com/Rajeshwar-203/fitness-ai-backend/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	auth *services.AuthService
}

func NewUserController(auth *services.AuthService) *UserController {
	return &UserController{auth: auth}
}

// GetProfile answers for the token subject set by AuthMiddleware.
func (uc *UserController) GetProfile(c *gin.Context) {
	profile, err := uc.auth.Profile(c.Request.Context(), c.GetString("email"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
