package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sspl-t10/registration/controllers"
	"github.com/sspl-t10/registration/middleware"
	"github.com/sspl-t10/registration/utils"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter() *gin.Engine {
	router := gin.New()

	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	router.GET("/health", controllers.Health)
	router.GET("/health/detailed", controllers.HealthDetailed)

	api := router.Group("/api")
	{
		razorpay := api.Group("/razorpay")
		{
			razorpay.POST("/create-order", controllers.CreateOrder)
			razorpay.POST("/verify-payment", controllers.VerifyPayment)
			razorpay.POST("/cancel", controllers.CancelPayment)
			razorpay.GET("/config", controllers.GatewayConfig)
		}

		registrations := api.Group("/registrations")
		{
			registrations.POST("", controllers.CreateRegistration)
			registrations.GET("/:orderId", controllers.GetRegistration)
			registrations.GET("/:orderId/receipt", controllers.DownloadReceipt)
		}

		admin := api.Group("/admin")
		{
			admin.POST("/login", controllers.AdminLogin)

			authorized := admin.Group("")
			authorized.Use(middleware.AdminAuthMiddleware())
			{
				authorized.POST("/logout", controllers.AdminLogout)
				authorized.GET("/registrations", controllers.ListRegistrations)
				authorized.GET("/registrations/export", controllers.ExportRegistrationsExcel)
			}
		}
	}

	return router
}
