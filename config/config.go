package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	ListingURL     string
	GeocodeURL     string
	SearchURL      string
	UserAgent      string
	HTTPTimeoutSec int

	DataDir     string
	CorpusPath  string
	CatalogPath string

	AreaConcurrency int
	AreaDelayMs     int
	SearchDelayMs   int

	StateName   string
	StateAbbrev string

	SnapshotBackend string
	ChromeBin       string

	CSVOutputPath string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	MaxRetries       int

	Debug bool
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		ListingURL:     getEnv("LISTING_URL", "https://www.visitchampaigncounty.org/things-to-do/food-and-drink"),
		GeocodeURL:     getEnv("GEOCODE_URL", "https://www.mapdevelopers.com/data.php?operation=geocode"),
		SearchURL:      getEnv("SEARCH_URL", "https://www.google.com/search"),
		UserAgent:      getEnv("USER_AGENT", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_14_0) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/73.0.3683.103 Safari/537.36"),
		HTTPTimeoutSec: getEnvInt("HTTP_TIMEOUT_SEC", 30),

		DataDir:     getEnv("DATA_DIR", "data"),
		CorpusPath:  getEnv("CORPUS_PATH", "campus_food_edited.txt"),
		CatalogPath: getEnv("CATALOG_PATH", "areas.json5"),

		AreaConcurrency: getEnvInt("AREA_CONCURRENCY", 1),
		AreaDelayMs:     getEnvInt("AREA_DELAY_MS", 0),
		SearchDelayMs:   getEnvInt("SEARCH_DELAY_MS", 1500),

		StateName:   getEnv("STATE_NAME", "Illinois"),
		StateAbbrev: getEnv("STATE_ABBREV", "IL"),

		SnapshotBackend: getEnv("SNAPSHOT_BACKEND", "http"),
		ChromeBin:       getEnv("CHROME_BIN", ""),

		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", "./output/eateries.csv"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scraper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "eatery_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		MaxRetries:       getEnvInt("MAX_RETRIES", 5),

		Debug: getEnvBool("DEBUG", false),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

// AreaDataPath returns the collection path the web source writes for an area,
// e.g. "Downtown Champaign" -> data/downtown_champaign_food_and_drink.json.
func (c *Config) AreaDataPath(area string) string {
	slug := strings.ReplaceAll(strings.ToLower(area), " ", "_")
	return filepath.Join(c.DataDir, slug+"_food_and_drink.json")
}

// FileDataPath returns the merged collection path the offline corpus source writes.
func (c *Config) FileDataPath() string {
	return filepath.Join(c.DataDir, "file_food_and_drink.json")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
