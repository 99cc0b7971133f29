package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/iamsurajx/new-seller-server/controller"
)

func UserRoute(router *gin.Engine, ctrl *controller.AuthController, requireAuth, limiter gin.HandlerFunc) {
	router.POST("/signup", limiter, ctrl.Signup)
	router.POST("/login", limiter, ctrl.Login)
	router.GET("/me", requireAuth, ctrl.Me)
}
