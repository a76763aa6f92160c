package config

type MapsConfig struct {
	GoogleMapsAPIKey string `yaml:"google_maps_api_key"`
	Region           string `yaml:"region"`
}

func loadMapsConfig() *MapsConfig {
	return &MapsConfig{
		GoogleMapsAPIKey: getEnv("GOOGLE_MAPS_API_KEY", ""),
		Region:           getEnv("MAPS_REGION", "in"),
	}
}
