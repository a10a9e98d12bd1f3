package routes

import (
	"time"

	userRepo "grandstay/database/repository/user"
	"grandstay/handlers"
	"grandstay/middleware"
	"grandstay/models"
	"grandstay/services/access"
	"grandstay/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers bundles every HTTP handler wired by the router.
type Handlers struct {
	Auth          *handlers.AuthHandler
	Users         *handlers.UserHandler
	Rooms         *handlers.RoomHandler
	Bookings      *handlers.BookingHandler
	Payments      *handlers.PaymentHandler
	Notifications *handlers.NotificationHandler
	Reports       *handlers.ReportHandler
}

// SetupRouter builds the gin engine with middleware and all route groups.
func SetupRouter(h Handlers, users userRepo.UserRepository) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RateLimiter())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Stripe-Signature"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	auth := router.Group("/auth")
	{
		auth.POST("/signup", h.Auth.Signup)
		auth.POST("/verify-email", h.Auth.VerifyEmail)
		auth.POST("/signin", h.Auth.Signin)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
		auth.POST("/signout", middleware.AuthRequired(users), h.Auth.Signout)
	}

	// Public room browsing.
	rooms := router.Group("/rooms")
	{
		rooms.GET("", h.Rooms.List)
		rooms.GET("/availability", h.Rooms.Availability)
		rooms.GET("/:id", h.Rooms.Get)
	}

	// Stripe calls this; auth is the signature header, not a session.
	router.POST("/payments/webhook", h.Payments.Webhook)

	authed := router.Group("/")
	authed.Use(middleware.AuthRequired(users))
	{
		me := authed.Group("/users/me")
		{
			me.GET("", h.Users.GetProfile)
			me.PUT("", h.Users.UpdateProfile)
			me.PUT("/notifications", h.Users.SetEmailNotifications)
		}

		bookings := authed.Group("/bookings")
		{
			bookings.GET("/quote", middleware.RequirePermission(access.ActionRead, access.ResourceRoom), h.Bookings.Quote)
			bookings.POST("", middleware.RequirePermission(access.ActionCreate, access.ResourceBooking), h.Bookings.Create)
			bookings.GET("", middleware.RequirePermission(access.ActionRead, access.ResourceBooking), h.Bookings.List)
			bookings.GET("/:id", middleware.RequirePermission(access.ActionRead, access.ResourceBooking), h.Bookings.Get)
			bookings.PUT("/:id/status", middleware.RequirePermission(access.ActionUpdate, access.ResourceBooking), h.Bookings.UpdateStatus)

			bookings.POST("/:id/request-cancel", h.Bookings.RequestCancellation)
			bookings.POST("/:id/approve-cancel", middleware.RequirePermission(access.ActionApprove, access.ResourceBooking), h.Bookings.ApproveCancellation)
			bookings.POST("/:id/decline-cancel", middleware.RequirePermission(access.ActionApprove, access.ResourceBooking), h.Bookings.DeclineCancellation)

			bookings.PUT("/:id/payment-status", middleware.RequirePermission(access.ActionCreate, access.ResourcePayment), h.Payments.SetPaymentStatus)
		}

		payments := authed.Group("/payments")
		payments.Use(middleware.RequirePermission(access.ActionCreate, access.ResourcePayment))
		{
			payments.POST("/create-checkout-session", h.Payments.CreateCheckoutSession)
			payments.POST("/confirm", h.Payments.ConfirmSession)
		}

		notifications := authed.Group("/notifications")
		notifications.Use(middleware.RequirePermission(access.ActionRead, access.ResourceNotification))
		{
			notifications.GET("", h.Notifications.List)
			notifications.PUT("/read-all", h.Notifications.MarkAllRead)
			notifications.PUT("/:id/read", h.Notifications.MarkRead)
		}

		admin := authed.Group("/admin")
		admin.Use(middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin))
		{
			adminRooms := admin.Group("/rooms")
			{
				adminRooms.POST("", middleware.RequirePermission(access.ActionCreate, access.ResourceRoom), h.Rooms.Create)
				adminRooms.PUT("/:id", middleware.RequirePermission(access.ActionUpdate, access.ResourceRoom), h.Rooms.Update)
				adminRooms.DELETE("/:id", middleware.RequirePermission(access.ActionDelete, access.ResourceRoom), h.Rooms.Delete)
				adminRooms.PUT("/:id/housekeeping", middleware.RequirePermission(access.ActionUpdate, access.ResourceRoom), h.Rooms.SetHousekeeping)
			}

			reports := admin.Group("/reports")
			reports.Use(middleware.RequirePermission(access.ActionRead, access.ResourceReport))
			{
				reports.GET("/occupancy", h.Reports.Occupancy)
				reports.GET("/revenue", h.Reports.Revenue)
				reports.GET("/top-customers", h.Reports.TopCustomers)
			}

			adminUsers := admin.Group("/users")
			{
				adminUsers.GET("", h.Users.ListUsers)
				adminUsers.PUT("/:id/blocked", h.Users.SetBlocked)
				adminUsers.PUT("/:id/role", middleware.RequireRole(models.RoleSuperAdmin), h.Users.SetRole)
			}
		}
	}

	return router
}
