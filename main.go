package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"grandstay/config"
	"grandstay/cron"
	"grandstay/database"
	bookingRepoPkg "grandstay/database/repository/booking"
	notificationRepoPkg "grandstay/database/repository/notification"
	roomRepoPkg "grandstay/database/repository/room"
	userRepoPkg "grandstay/database/repository/user"
	"grandstay/handlers"
	"grandstay/routes"
	bookingSvc "grandstay/services/booking"
	"grandstay/services/notification"
	paymentSvc "grandstay/services/payment"
	reportSvc "grandstay/services/report"
	roomSvc "grandstay/services/room"
	userSvc "grandstay/services/user"
	"grandstay/utils"

	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	stripe.Key = config.AppConfig.StripeKey

	// Repositories.
	users := userRepoPkg.NewMongoUserRepo()
	rooms := roomRepoPkg.NewMongoRoomRepo()
	bookings := bookingRepoPkg.NewMongoBookingRepo()
	notifications := notificationRepoPkg.NewMongoNotificationRepo()

	// Queue producer for outbound email, plus the worker consuming it.
	queue := cron.NewQueueClient()
	defer queue.Close()
	emailWorker := cron.StartEmailWorker(notification.NewMailer())

	notifier := notification.NewDefaultNotifier(users, notifications, queue)

	// Services.
	bookingService := &bookingSvc.DefaultBookingService{
		Bookings: bookings,
		Rooms:    rooms,
		Notifier: notifier,
	}
	roomService := &roomSvc.DefaultRoomService{
		Rooms:    rooms,
		Bookings: bookings,
	}
	paymentService := &paymentSvc.DefaultPaymentService{
		Bookings: bookings,
		Gateway:  paymentSvc.NewStripeGateway(),
		Notifier: notifier,
	}
	userService := &userSvc.DefaultUserService{
		Users:    users,
		Codes:    utils.NewCodeStore(utils.GetVerifyCacheClient(), 15*time.Minute),
		Notifier: notifier,
	}
	reportService := &reportSvc.ReportService{
		Bookings: bookings,
		Rooms:    rooms,
		Cache:    utils.GetCacheClient(),
	}

	// Nightly calendar sweep.
	sweeper := &cron.Sweeper{
		Bookings: bookings,
		Booking:  bookingService,
		Rooms:    roomService,
	}
	scheduler := sweeper.Start()

	router := routes.SetupRouter(routes.Handlers{
		Auth:          handlers.NewAuthHandler(userService),
		Users:         handlers.NewUserHandler(userService),
		Rooms:         handlers.NewRoomHandler(roomService, bookingService),
		Bookings:      handlers.NewBookingHandler(bookingService, roomService),
		Payments:      handlers.NewPaymentHandler(paymentService),
		Notifications: handlers.NewNotificationHandler(notifications),
		Reports:       handlers.NewReportHandler(reportService),
	}, users)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	scheduler.Stop()
	emailWorker.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("Server forced to shutdown: %v", err)
	}
	if err := database.MongoClient.Disconnect(ctx); err != nil {
		logger.Sugar().Warnf("MongoDB disconnect failed: %v", err)
	}
	logger.Info("Server exited cleanly")
}
