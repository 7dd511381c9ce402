package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var once sync.Once
var envOnce sync.Once
var logger *zap.SugaredLogger
var loggerOnce sync.Once

// isTestRun returns true if the current process is a Go test binary.
func isTestRun() bool {
	return flag.Lookup("test.v") != nil || filepath.Ext(os.Args[0]) == ".test"
}

func initConfig() {
	once.Do(func() {
		root, err := getProjectRoot()
		if err != nil {
			GetLogger().Errorw("Error finding project root", "error", err)
		}
		viper.SetConfigType("yaml")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		viper.SetConfigName("config")
		viper.AddConfigPath(root)
		if err = viper.ReadInConfig(); err != nil {
			GetLogger().Errorw("Error reading config file", "error", err)
		}

		if isTestRun() {
			viper.SetConfigName("config_test")
			viper.AddConfigPath(root)
			if err = viper.MergeInConfig(); err != nil {
				GetLogger().Errorw("Error merging test config file", "error", err)
			}
		}
	})
}

func getProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// getSecret reads a credential from the environment, loading .env once.
func getSecret(key string) string {
	envOnce.Do(func() {
		_ = godotenv.Load()
	})
	return os.Getenv(key)
}

func getDuration(key string, fallback time.Duration) time.Duration {
	initConfig()
	durStr := viper.GetString(key)
	if durStr == "" {
		return fallback
	}
	dur, err := time.ParseDuration(durStr)
	if err != nil {
		GetLogger().Warnw("Invalid duration in config, using default", "key", key, "value", durStr, "default", fallback)
		return fallback
	}
	return dur
}

func GetOpenWeatherApiUrl() string {
	initConfig()
	return viper.GetString("openweathermap.api_url")
}

func GetAccuWeatherApiUrl() string {
	initConfig()
	return viper.GetString("accuweather.api_url")
}

func GetTimezoneDBApiUrl() string {
	initConfig()
	return viper.GetString("timezonedb.api_url")
}

// GetFlagURLTemplate returns the fmt template used to build country flag image URLs.
func GetFlagURLTemplate() string {
	initConfig()
	tmpl := viper.GetString("flag.url_template")
	if tmpl == "" {
		tmpl = "https://flagcdn.com/w320/%s.png"
	}
	return tmpl
}

// GetUpstreamTimeout bounds every outbound provider call. Defaults to 10s.
func GetUpstreamTimeout() time.Duration {
	return getDuration("upstream.timeout", 10*time.Second)
}

func GetOpenWeatherMapAPIKey() string {
	return getSecret("OPENWEATHERMAP_API_KEY")
}

func GetAccuWeatherAPIKey() string {
	return getSecret("ACCUWEATHER_API_KEY")
}

func GetTimezoneDBAPIKey() string {
	return getSecret("TIMEZONEDB_API_KEY")
}

func GetEmailUser() string {
	return getSecret("EMAIL_USER")
}

func GetEmailPassword() string {
	return getSecret("EMAIL_PASS")
}

func GetRedisAddr() string {
	initConfig()
	return viper.GetString("redis.addr")
}

func GetServerPort() string {
	initConfig()
	serverPort := viper.GetString("server.port")
	if serverPort == "" {
		serverPort = "8080"
	}
	return serverPort
}

// GetServerTimeout returns server.<key> as a duration, e.g. "read_header_timeout".
func GetServerTimeout(key string) time.Duration {
	return getDuration("server."+key, 15*time.Second)
}

func GetStaticDir() string {
	initConfig()
	return viper.GetString("server.static_dir")
}

func GetSessionCookieName() string {
	initConfig()
	name := viper.GetString("session.cookie_name")
	if name == "" {
		name = "sid"
	}
	return name
}

// GetSessionTTL returns how long a login session lives in Redis. Defaults to 24h.
func GetSessionTTL() time.Duration {
	return getDuration("session.ttl", 24*time.Hour)
}

// GetDatabaseDriver returns "sqlite" or "postgres".
func GetDatabaseDriver() string {
	initConfig()
	driver := viper.GetString("database.driver")
	if driver == "" {
		driver = "sqlite"
	}
	return driver
}

func GetDatabaseDSN() string {
	initConfig()
	return viper.GetString("database.dsn")
}

func GetSMTPHost() string {
	initConfig()
	return viper.GetString("smtp.host")
}

func GetSMTPPort() int {
	initConfig()
	port := viper.GetInt("smtp.port")
	if port == 0 {
		port = 587
	}
	return port
}

// GetCORSAllowedOrigins lists origins allowed to make credentialed requests.
func GetCORSAllowedOrigins() []string {
	initConfig()
	return viper.GetStringSlice("cors.allowed_origins")
}

// GetSecureCookie reports whether the session cookie is marked Secure.
func GetSecureCookie() bool {
	initConfig()
	return viper.GetBool("session.secure_cookie")
}

// ReloadConfigForTest resets the config singleton and reloads Viper config. Use only in tests.
func ReloadConfigForTest() {
	once = sync.Once{}
	initConfig()
}

func GetLogger() *zap.SugaredLogger {
	loggerOnce.Do(func() {
		l, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		logger = l.Sugar()
	})
	return logger
}
