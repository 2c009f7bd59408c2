package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"realty/constants"
	"realty/controllers"
	middlewares "realty/middleware"
	"realty/services"
	"realty/services/logger"
)

// SetupRoutes wires the stores, controllers and the route surface the
// SPA consumes.
func SetupRoutes(router *gin.Engine, backend *services.BackendClient, redisCli *redis.Client) {
	log := logger.NewDefaultLogger(logger.InfoLevel)

	catalogService := services.NewCatalogService(services.CatalogServiceOptions{
		Client: backend,
		Redis:  redisCli,
		Logger: log,
	})
	reservationService := services.NewReservationService(services.ReservationServiceOptions{
		Client: backend,
		Logger: log,
	})
	contractService := services.NewContractService(services.ContractServiceOptions{
		Client:       backend,
		Reservations: reservationService,
		Logger:       log,
	})
	authService := services.NewAuthService(services.AuthServiceOptions{
		Client: backend,
		Redis:  redisCli,
		Logger: log,
	})

	objectController := controllers.NewObjectController(catalogService, redisCli)
	reservationController := controllers.NewReservationController(reservationService)
	contractController := controllers.NewContractController(contractService)
	authController := controllers.NewAuthController(authService)

	v1 := router.Group("/api/v1")
	v1.Use(middlewares.ErrorHandler())
	v1.Use(middlewares.SessionMiddleware())

	v1.POST("/login", authController.Login)
	v1.POST("/register", authController.Register)
	v1.GET("/session", authController.GetSession)
	v1.DELETE("/logout", middlewares.AuthMiddleware(), authController.Logout)
	v1.GET("/profile", middlewares.AuthMiddleware(), authController.GetProfile)
	v1.PUT("/profile", middlewares.AuthMiddleware(), authController.UpdateProfile)
	v1.GET("/all-users", middlewares.AuthMiddleware(constants.RoleAdmin), authController.GetAllUsers)

	v1.GET("/objects", middlewares.AuthMiddleware(constants.RoleAdmin), objectController.GetObjects)
	v1.GET("/objects-for-users", objectController.GetObjectsForUser)
	v1.GET("/objects/:id", objectController.GetObjectDetail)
	v1.POST("/objects", middlewares.AuthMiddleware(constants.RoleAdmin), objectController.CreateObject)
	v1.PUT("/objects/:id", middlewares.AuthMiddleware(constants.RoleAdmin), objectController.UpdateObject)
	v1.DELETE("/objects/:id", middlewares.AuthMiddleware(constants.RoleAdmin), objectController.DeleteObject)

	v1.GET("/catalog/:kind", objectController.GetCatalog)

	v1.GET("/reservations", middlewares.AuthMiddleware(), reservationController.GetReservations)
	v1.POST("/reservations", middlewares.AuthMiddleware(), reservationController.CreateReservation)
	v1.PUT("/reservations/:id", middlewares.AuthMiddleware(constants.RoleAdmin), reservationController.UpdateReservation)
	v1.POST("/reservations/:id/reject", middlewares.AuthMiddleware(), reservationController.RejectReservation)

	v1.GET("/contracts", middlewares.AuthMiddleware(constants.RoleAdmin), contractController.GetContracts)
	v1.POST("/contracts", middlewares.AuthMiddleware(constants.RoleAdmin), contractController.CreateContract)
	v1.GET("/contracts/:id", middlewares.AuthMiddleware(constants.RoleAdmin), contractController.GetContractDetail)
}
