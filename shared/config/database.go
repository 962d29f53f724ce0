package config

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

var _ IConfig = (*DatabaseConfig)(nil)

// DatabaseConfig implements all configuration interfaces with PostgreSQL
// database-based storage. Settings live in a key/value table ("Settings",
// columns key/value) with JSON-encoded values, so operators can change them
// without a redeploy.
type DatabaseConfig struct {
	logger             *zap.Logger
	dbConnectionString string
}

// NewDatabaseConfig creates a new DatabaseConfig instance
func NewDatabaseConfig(dbConnectionString string, logger *zap.Logger) (*DatabaseConfig, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DatabaseConfig{
		dbConnectionString: dbConnectionString,
		logger:             logger,
	}, nil
}

// Close closes any resources held by the config
func (c *DatabaseConfig) Close() error {
	return nil
}

// --- IConfig Implementation ---

func (c *DatabaseConfig) ListenAddr() (string, error) {
	return c.getSettingString("server_listen_address", ":8080")
}

func (c *DatabaseConfig) ServerName() (string, error) {
	return c.getSettingString("server_name", "rpcwire")
}

func (c *DatabaseConfig) ServerVersion() (string, error) {
	return c.getSettingString("server_version", "1.0.0")
}

func (c *DatabaseConfig) LogLevel() (string, error) {
	return c.getSettingString("server_log_level", "info")
}

func (c *DatabaseConfig) ThrottlingRPS() (int, error) {
	return c.getSettingInt("server_throttling_rps", 0)
}

func (c *DatabaseConfig) ThrottlingRPM() (int, error) {
	return c.getSettingInt("server_throttling_rpm", 0)
}

func (c *DatabaseConfig) SSLEnabled() (bool, error) {
	return c.getSettingBool("server_ssl_enabled", false)
}

func (c *DatabaseConfig) SSLMode() (string, error) {
	return c.getSettingString("server_ssl_mode", "manual")
}

func (c *DatabaseConfig) SSLCertFile() (string, error) {
	return c.getSettingString("server_ssl_cert_file", "")
}

func (c *DatabaseConfig) SSLKeyFile() (string, error) {
	return c.getSettingString("server_ssl_key_file", "")
}

func (c *DatabaseConfig) SSLAcmeDomains() ([]string, error) {
	return c.getSettingStringSlice("server_ssl_acme_domains", []string{})
}

func (c *DatabaseConfig) SSLAcmeEmail() (string, error) {
	return c.getSettingString("server_ssl_acme_email", "")
}

func (c *DatabaseConfig) SSLAcmeCacheDir() (string, error) {
	return c.getSettingString("server_ssl_acme_cache_dir", "./.autocert-cache")
}

// Status verifies database connectivity.
func (c *DatabaseConfig) Status(ctx context.Context) error {
	db, err := sql.Open("postgres", c.dbConnectionString)
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	defer db.Close()
	return db.PingContext(ctx)
}

// --- Database Helper Functions ---

func (c *DatabaseConfig) getSettingRaw(key string) ([]byte, error) {
	db, err := sql.Open("postgres", c.dbConnectionString)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	defer db.Close()

	var valueStr sql.NullString // Use NullString to handle potential NULL
	err = db.QueryRowContext(context.Background(), `SELECT value FROM "Settings" WHERE key = $1 LIMIT 1`, key).Scan(&valueStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query setting '%s': %w", key, err)
	}
	if !valueStr.Valid {
		return nil, ErrNotFound
	}
	return []byte(valueStr.String), nil
}

func (c *DatabaseConfig) getSettingJSON(key string) (interface{}, error) {
	raw, err := c.getSettingRaw(key)
	if err != nil {
		return nil, err
	}
	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("unmarshal setting '%s': %w", key, err)
	}
	return value, nil
}

func (c *DatabaseConfig) getSettingString(key string, defaultValue string) (string, error) {
	value, err := c.getSettingJSON(key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return defaultValue, nil
		}
		return defaultValue, err
	}
	switch v := value.(type) {
	case string:
		return v, nil
	default:
		return defaultValue, fmt.Errorf("setting '%s' is not a string: %T", key, value)
	}
}

func (c *DatabaseConfig) getSettingBool(key string, defaultValue bool) (bool, error) {
	value, err := c.getSettingJSON(key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return defaultValue, nil
		}
		return defaultValue, err
	}
	switch v := value.(type) {
	case bool:
		return v, nil
	default:
		return defaultValue, fmt.Errorf("setting '%s' is not a bool: %T", key, value)
	}
}

func (c *DatabaseConfig) getSettingInt(key string, defaultValue int) (int, error) {
	value, err := c.getSettingJSON(key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return defaultValue, nil
		}
		return defaultValue, err
	}
	switch v := value.(type) {
	case float64:
		return int(v), nil
	default:
		return defaultValue, fmt.Errorf("setting '%s' is not a number: %T", key, value)
	}
}

func (c *DatabaseConfig) getSettingStringSlice(key string, defaultValue []string) ([]string, error) {
	value, err := c.getSettingJSON(key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return defaultValue, nil
		}
		return defaultValue, err
	}
	items, ok := value.([]interface{})
	if !ok {
		return defaultValue, fmt.Errorf("setting '%s' is not a list: %T", key, value)
	}
	result := make([]string, 0, len(items))
	for _, item := range items {
		str, ok := item.(string)
		if !ok {
			return defaultValue, fmt.Errorf("setting '%s' contains a non-string item: %T", key, item)
		}
		result = append(result, str)
	}
	return result, nil
}
