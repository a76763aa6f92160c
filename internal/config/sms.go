package config

type SMSConfig struct {
	Provider string `yaml:"provider"` // twilio, sns

	TwilioAccountSID string `yaml:"twilio_account_sid"`
	TwilioAuthToken  string `yaml:"twilio_auth_token"`
	TwilioFromNumber string `yaml:"twilio_from_number"`

	SNSRegion   string `yaml:"sns_region"`
	SNSSenderID string `yaml:"sns_sender_id"`
}

func loadSMSConfig() *SMSConfig {
	return &SMSConfig{
		Provider:         getEnv("SMS_PROVIDER", "twilio"),
		TwilioAccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioFromNumber: getEnv("TWILIO_FROM_NUMBER", ""),
		SNSRegion:        getEnv("SNS_REGION", "ap-south-1"),
		SNSSenderID:      getEnv("SNS_SENDER_ID", "TAXIDESK"),
	}
}
