package router

import (
	"mySmartShop/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler) {
	users := api.Group("/users")

	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	products := api.Group("/products")

	products.GET("", handler.GetAllProducts)
	products.GET("/:product_id", handler.GetProductByID)
	products.GET("/:product_id/similar", handler.GetSimilarProducts)
	products.POST("", handler.CreateProduct, authRequired, adminOnly)
	products.PUT("/:product_id", handler.UpdateProduct, authRequired, adminOnly)
	products.DELETE("/:product_id", handler.DeleteProduct, authRequired, adminOnly)
}

func SetupCustomerRoutes(api *echo.Group, handler *rest.CustomerHandler, authRequired echo.MiddlewareFunc) {
	customers := api.Group("/customers", authRequired)

	customers.GET("", handler.GetAllCustomers)
	customers.GET("/:customer_id", handler.GetCustomerByID)
	customers.POST("", handler.CreateCustomer)
	customers.POST("/:customer_id/history", handler.AppendHistory)
}

func SetupCategoryRoutes(api *echo.Group, handler *rest.CategoryHandler) {
	categories := api.Group("/categories")

	categories.GET("", handler.GetAllCategories)
}

func SetupRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler, feedbackHandler *rest.FeedbackHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	reco := api.Group("/recommendations")

	reco.POST("/feedback", feedbackHandler.SubmitFeedback)
	reco.GET("/:customer_id", handler.Recommend)
	reco.GET("/:customer_id/explanation", handler.Explain)
	reco.GET("/:customer_id/stored", handler.Stored)

	admin := api.Group("/admin", authRequired, adminOnly)
	admin.POST("/batch", handler.RunBatch)
}
