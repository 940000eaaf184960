package middleware

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	appLogger *log.Logger

	passwordField = regexp.MustCompile(`"password"\s*:\s*"[^"]*"`)
)

// InitLogger initializes the file-based logging system
// Logs are saved in the logs folder as a single app.log file
func InitLogger(logDir string) error {
	// Get absolute path for log directory
	absLogDir, err := filepath.Abs(logDir)
	if err != nil {
		absLogDir = logDir
	}

	// Create logs directory if not exists
	if err := os.MkdirAll(absLogDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory %s: %w", absLogDir, err)
	}

	// Get current date for log file name
	currentDate := time.Now().Format("2006-01-02")

	// Setup single app logger with rotation
	appLogFile := &lumberjack.Logger{
		Filename:   filepath.Join(absLogDir, fmt.Sprintf("app-%s.log", currentDate)),
		MaxSize:    10, // 10 MB
		MaxBackups: 30, // Keep 30 old files
		MaxAge:     30, // 30 days
		Compress:   true,
		LocalTime:  true,
	}

	// Create logger that writes to both file and stdout
	appLogger = log.New(io.MultiWriter(os.Stdout, appLogFile), "", log.LstdFlags)

	// Also set the default logger to use file output
	log.SetOutput(io.MultiWriter(os.Stdout, appLogFile))
	log.SetFlags(log.LstdFlags)

	appLogger.Printf("[INFO] Logger initialized, log directory: %s", absLogDir)

	return nil
}

// LogInfo logs info level messages
func LogInfo(format string, v ...interface{}) {
	if appLogger != nil {
		appLogger.Printf("[INFO] "+format, v...)
	} else {
		log.Printf("[INFO] "+format, v...)
	}
}

// LogError logs error level messages
func LogError(format string, v ...interface{}) {
	if appLogger != nil {
		appLogger.Printf("[ERROR] "+format, v...)
	} else {
		log.Printf("[ERROR] "+format, v...)
	}
}

// LogDebug logs debug level messages
func LogDebug(format string, v ...interface{}) {
	if appLogger != nil {
		appLogger.Printf("[DEBUG] "+format, v...)
	} else {
		log.Printf("[DEBUG] "+format, v...)
	}
}

// RequestLoggerMiddleware logs all incoming requests
func RequestLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		// Build full URL
		fullURL := c.Request.URL.Path
		if c.Request.URL.RawQuery != "" {
			fullURL = fullURL + "?" + c.Request.URL.RawQuery
		}

		// Process request
		c.Next()

		// Calculate latency
		latency := time.Since(startTime)
		statusCode := c.Writer.Status()

		// Log format: METHOD URL | request id | status | latency
		if statusCode >= 400 {
			LogError("%s %s | id=%s | status=%d | latency=%v",
				c.Request.Method, fullURL, GetRequestID(c), statusCode, latency)
		} else {
			LogInfo("%s %s | id=%s | status=%d | latency=%v",
				c.Request.Method, fullURL, GetRequestID(c), statusCode, latency)
		}
	}
}

// AuditLoggerMiddleware logs complete request bodies for mutating
// operations on finance records. Password fields are masked.
func AuditLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Read and restore request body
		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		bodyStr := passwordField.ReplaceAllString(string(bodyBytes), `"password":"***"`)
		if bodyStr == "" {
			bodyStr = "(empty)"
		} else if len(bodyStr) > 1000 {
			bodyStr = bodyStr[:1000] + "..."
		}

		LogInfo("AUDIT %s %s | id=%s | body=%s",
			c.Request.Method, c.Request.URL.Path, GetRequestID(c), bodyStr)

		c.Next()

		LogInfo("AUDIT %s %s | id=%s | status=%d",
			c.Request.Method, c.Request.URL.Path, GetRequestID(c), c.Writer.Status())
	}
}
