package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/iamsurajx/new-seller-server/controller"
)

// ProductRoute sets up the routes for the product resource.
func ProductRoute(router *gin.Engine, ctrl *controller.ProductController) {
	router.POST("/add-product", ctrl.CreateProduct)
	router.GET("/products", ctrl.GetProducts)
	router.GET("/products/:id", ctrl.GetProductByID)
	router.PUT("/products/:id", ctrl.UpdateProduct)
	router.DELETE("/products/:id", ctrl.DeleteProduct)
}
