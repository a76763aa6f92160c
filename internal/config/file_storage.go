package config

type StorageConfig struct {
	Provider string `yaml:"provider"` // s3, local

	S3Region string `yaml:"s3_region"`
	S3Bucket string `yaml:"s3_bucket"`

	LocalPath    string `yaml:"local_path"`
	LocalBaseURL string `yaml:"local_base_url"`
}

func loadStorageConfig() *StorageConfig {
	return &StorageConfig{
		Provider:     getEnv("STORAGE_PROVIDER", "local"),
		S3Region:     getEnv("S3_REGION", "ap-south-1"),
		S3Bucket:     getEnv("S3_BUCKET", "taxidesk-documents"),
		LocalPath:    getEnv("STORAGE_LOCAL_PATH", "./uploads"),
		LocalBaseURL: getEnv("STORAGE_LOCAL_BASE_URL", "http://localhost:8080/uploads"),
	}
}
