package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration
type Config struct {
	// Currency
	INRToUSD float64 // exchange rate applied when a cost header mentions INR

	// Heuristic thresholds
	IdleCPUThreshold  float64 // fraction; CPU below this counts as idle
	LowIOPSThreshold  float64 // IOPS below this counts as cold storage
	HighCostThreshold float64 // USD/month; base trigger for the rules
	GPULowUtil        float64 // fraction; GPU utilization below this is underused
	GPUCostThreshold  float64 // USD/month; GPU rule cost trigger
	MinUsageHours     float64 // hours/month required before idleness matters

	// Explanation generator
	OpenAIAPIKey string
	OpenAIModel  string

	// Server
	ListenAddr  string
	CORSOrigins []string

	// Output
	Verbose bool
}

// NewConfig creates a new configuration with defaults
func NewConfig() *Config {
	return &Config{
		INRToUSD:          getEnvFloat("INR_TO_USD", 0.012),
		IdleCPUThreshold:  getEnvFloat("IDLE_CPU_THRESHOLD", 0.20),
		LowIOPSThreshold:  getEnvFloat("LOW_IOPS_THRESHOLD", 1),
		HighCostThreshold: getEnvFloat("HIGH_COST_THRESHOLD", 50),
		GPULowUtil:        getEnvFloat("GPU_LOW_UTIL", 0.30),
		GPUCostThreshold:  getEnvFloat("GPU_COST_THRESHOLD", 100),
		MinUsageHours:     getEnvFloat("MIN_USAGE_HOURS", 200),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		ListenAddr:        getEnv("LISTEN_ADDR", ":8000"),
		CORSOrigins: getEnvList("CORS_ORIGINS", []string{
			"http://localhost",
			"http://localhost:5173",
			"http://localhost:3000",
			"http://127.0.0.1:5173",
		}),
		Verbose: getEnvBool("VERBOSE", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if c.INRToUSD <= 0 {
		return fmt.Errorf("INR_TO_USD must be positive, got %.4f", c.INRToUSD)
	}
	if c.IdleCPUThreshold <= 0 || c.IdleCPUThreshold > 1 {
		return fmt.Errorf("IDLE_CPU_THRESHOLD must be a fraction in (0,1], got %.2f", c.IdleCPUThreshold)
	}
	if c.GPULowUtil <= 0 || c.GPULowUtil > 1 {
		return fmt.Errorf("GPU_LOW_UTIL must be a fraction in (0,1], got %.2f", c.GPULowUtil)
	}
	if c.HighCostThreshold < 0 {
		return fmt.Errorf("HIGH_COST_THRESHOLD must not be negative, got %.2f", c.HighCostThreshold)
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("LISTEN_ADDR must be set")
	}
	return nil
}
