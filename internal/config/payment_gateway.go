package config

type PaymentConfig struct {
	Provider string `yaml:"provider"` // razorpay, stripe

	RazorpayKeyID         string `yaml:"razorpay_key_id"`
	RazorpayKeySecret     string `yaml:"razorpay_key_secret"`
	RazorpayWebhookSecret string `yaml:"razorpay_webhook_secret"`

	StripeSecretKey     string `yaml:"stripe_secret_key"`
	StripeWebhookSecret string `yaml:"stripe_webhook_secret"`
}

func loadPaymentConfig() *PaymentConfig {
	return &PaymentConfig{
		Provider:              getEnv("PAYMENT_PROVIDER", "razorpay"),
		RazorpayKeyID:         getEnv("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret:     getEnv("RAZORPAY_KEY_SECRET", ""),
		RazorpayWebhookSecret: getEnv("RAZORPAY_WEBHOOK_SECRET", ""),
		StripeSecretKey:       getEnv("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret:   getEnv("STRIPE_WEBHOOK_SECRET", ""),
	}
}
