package utils

import "time"

// Application Constants
const (
	AppName    = "TaxiDesk"
	AppVersion = "1.0.0"

	// Default values
	DefaultCurrency    = "INR"
	DefaultCountryCode = "+91"
	DefaultTimeZone    = "Asia/Kolkata"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	PasswordMinLength = 8
	PasswordMaxLength = 128

	// Booking Constants
	BookingNumberPrefix = "BK"
	InvoiceNumberPrefix = "INV"
	MaxBookingDistance  = 3000.0 // kilometers

	// File Upload
	MaxImageSize    = 5 * 1024 * 1024  // 5MB
	MaxDocumentSize = 10 * 1024 * 1024 // 10MB

	// Cache TTLs
	DashboardStatsTTL = 2 * time.Minute
	TariffCacheTTL    = 10 * time.Minute

	// Notification
	NotificationTimeout = 30 * time.Second
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	ErrInvalidCredentials = "invalid credentials"
	ErrUserNotFound       = "user not found"
	ErrUserExists         = "user already exists"
	ErrInvalidToken       = "invalid token"
	ErrInternalServer     = "internal server error"
	ErrUnauthorized       = "unauthorized"
	ErrForbidden          = "forbidden"
	ErrValidationFailed   = "validation failed"
	ErrVersionConflict    = "record was modified by another session"
)

// Cache Keys
const (
	CacheTariffPrefix    = "tariff:"
	CacheBookingPrefix   = "booking:"
	CacheDashboardPrefix = "dashboard:"
	CacheSessionPrefix   = "session:"
)

// Websocket Event Types
const (
	EventBookingCreated   = "booking_created"
	EventBookingStarted   = "booking_started"
	EventBookingCompleted = "booking_completed"
	EventBookingCancelled = "booking_cancelled"
	EventBookingUpdated   = "booking_updated"
)

// File Types
var (
	AllowedImageTypes    = []string{"jpg", "jpeg", "png", "webp"}
	AllowedDocumentTypes = []string{"pdf", "jpg", "jpeg", "png"}
)
