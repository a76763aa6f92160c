package routes

import (
	"github.com/gin-gonic/gin"

	"taxidesk/internal/handlers"
	"taxidesk/internal/middleware"
	"taxidesk/pkg/websocket"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Booking      *handlers.BookingHandler
	Tariff       *handlers.TariffHandler
	Customer     *handlers.CustomerHandler
	Driver       *handlers.DriverHandler
	Vendor       *handlers.VendorHandler
	Vehicle      *handlers.VehicleHandler
	Service      *handlers.ServiceHandler
	Invoice      *handlers.InvoiceHandler
	Enquiry      *handlers.EnquiryHandler
	Notification *handlers.NotificationHandler
	Dashboard    *handlers.DashboardHandler
	Upload       *handlers.UploadHandler
	Hub          *websocket.Hub
}

func Setup(router *gin.Engine, h *Handlers, jwtSecret string) {
	v1 := router.Group("/api/v1")

	// Public surface: login, website enquiry form, gateway callbacks.
	v1.POST("/auth/login", h.Auth.Login)
	v1.POST("/enquiries", h.Enquiry.Create)
	v1.POST("/webhooks/payment", h.Invoice.PaymentWebhook)

	authed := v1.Group("", middleware.AuthRequired(jwtSecret))
	{
		authed.GET("/auth/me", h.Auth.Me)
		authed.POST("/auth/change-password", h.Auth.ChangePassword)

		authed.GET("/ws", websocket.ServeWS(h.Hub, func(c *gin.Context) string {
			return middleware.GetUserID(c).Hex()
		}))

		authed.GET("/dashboard/stats", h.Dashboard.Stats)
		authed.POST("/uploads", h.Upload.Upload)

		bookings := authed.Group("/bookings")
		{
			bookings.GET("", h.Booking.List)
			bookings.POST("", h.Booking.Create)
			bookings.POST("/bulk-delete", h.Booking.BulkDelete)
			bookings.GET("/:id", h.Booking.Get)
			bookings.PUT("/:id", h.Booking.Update)
			bookings.DELETE("/:id", h.Booking.Delete)
			bookings.POST("/:id/start", h.Booking.StartTrip)
			bookings.POST("/:id/complete", h.Booking.CompleteTrip)
			bookings.POST("/:id/cancel", h.Booking.Cancel)
			bookings.GET("/:id/commission", h.Booking.Commission)
		}

		tariffs := authed.Group("/tariffs")
		{
			tariffs.GET("/resolve", h.Tariff.Resolve)
			tariffs.GET("", h.Tariff.List)
			tariffs.POST("", h.Tariff.Save)
			tariffs.POST("/bulk-delete", h.Tariff.BulkDelete)
			tariffs.GET("/packages", h.Tariff.ListPackages)
			tariffs.POST("/packages", h.Tariff.SavePackages)
			tariffs.GET("/:id", h.Tariff.Get)
			tariffs.PUT("/:id", h.Tariff.Update)
			tariffs.DELETE("/:id", h.Tariff.Delete)
		}

		customers := authed.Group("/customers")
		{
			customers.GET("", h.Customer.List)
			customers.POST("", h.Customer.Create)
			customers.POST("/bulk-delete", h.Customer.BulkDelete)
			customers.GET("/:id", h.Customer.Get)
			customers.PUT("/:id", h.Customer.Update)
			customers.DELETE("/:id", h.Customer.Delete)
		}

		drivers := authed.Group("/drivers")
		{
			drivers.GET("", h.Driver.List)
			drivers.POST("", h.Driver.Create)
			drivers.POST("/bulk-delete", h.Driver.BulkDelete)
			drivers.GET("/:id", h.Driver.Get)
			drivers.PUT("/:id", h.Driver.Update)
			drivers.PUT("/:id/device-token", h.Driver.UpdateDeviceToken)
			drivers.DELETE("/:id", h.Driver.Delete)
		}

		vehicles := authed.Group("/vehicles")
		{
			vehicles.GET("", h.Vehicle.List)
			vehicles.POST("", h.Vehicle.Create)
			vehicles.POST("/bulk-delete", h.Vehicle.BulkDelete)
			vehicles.GET("/:id", h.Vehicle.Get)
			vehicles.PUT("/:id", h.Vehicle.Update)
			vehicles.DELETE("/:id", h.Vehicle.Delete)
		}

		services := authed.Group("/services")
		{
			services.GET("", h.Service.List)
			services.GET("/active", h.Service.ListActive)
			services.GET("/:id", h.Service.Get)
		}

		invoices := authed.Group("/invoices")
		{
			invoices.GET("", h.Invoice.List)
			invoices.POST("/from-booking/:bookingId", h.Invoice.CreateFromBooking)
			invoices.GET("/:id", h.Invoice.Get)
			invoices.GET("/:id/pdf", h.Invoice.DownloadPDF)
			invoices.POST("/:id/payment-link", h.Invoice.CreatePaymentLink)
			invoices.POST("/:id/void", h.Invoice.Void)
		}

		notifications := authed.Group("/notifications")
		{
			notifications.GET("", h.Notification.List)
			notifications.GET("/unread-count", h.Notification.UnreadCount)
			notifications.POST("/:id/read", h.Notification.MarkRead)
		}

		enquiries := authed.Group("/enquiries")
		{
			enquiries.GET("", h.Enquiry.List)
			enquiries.GET("/:id", h.Enquiry.Get)
			enquiries.PUT("/:id/status", h.Enquiry.UpdateStatus)
			enquiries.DELETE("/:id", h.Enquiry.Delete)
			enquiries.POST("/bulk-delete", h.Enquiry.BulkDelete)
		}

		// Admin-only management surface.
		admin := authed.Group("", middleware.AdminRequired())
		{
			admin.POST("/users", h.Auth.CreateUser)
			admin.GET("/dashboard/traces", h.Dashboard.Traces)

			admin.POST("/services", h.Service.Create)
			admin.PUT("/services/:id", h.Service.Update)
			admin.DELETE("/services/:id", h.Service.Delete)

			admin.GET("/vendors", h.Vendor.List)
			admin.POST("/vendors", h.Vendor.Create)
			admin.POST("/vendors/bulk-delete", h.Vendor.BulkDelete)
			admin.GET("/vendors/:id", h.Vendor.Get)
			admin.PUT("/vendors/:id", h.Vendor.Update)
			admin.PUT("/vendors/:id/status", h.Vendor.UpdateStatus)
			admin.DELETE("/vendors/:id", h.Vendor.Delete)
		}
	}
}
