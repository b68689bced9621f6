package config

import (
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestApplyDefaults(t *testing.T) {
	c := qt.New(t)

	var conf AppConfig
	applyDefaults(&conf)

	c.Assert(conf.AppPort, qt.Equals, "8080")
	c.Assert(conf.GinMode, qt.Equals, "release")
	c.Assert(conf.RateLimitPerMinute, qt.Equals, 60)
	c.Assert(conf.AllowedOrigins, qt.DeepEquals, []string{"*"})
	c.Assert(conf.DBHost, qt.Equals, "127.0.0.1")
	c.Assert(conf.DBPort, qt.Equals, "3306")
	c.Assert(conf.DBName, qt.Equals, "goblog")
	c.Assert(conf.RedisPort, qt.Equals, 6379)
	c.Assert(conf.LogLevel, qt.Equals, "info")
	c.Assert(conf.LogMaxSizeMB, qt.Equals, 100)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	c := qt.New(t)

	conf := AppConfig{AppPort: "9000", DBName: "blog_prod", LogLevel: "warn"}
	applyDefaults(&conf)

	c.Assert(conf.AppPort, qt.Equals, "9000")
	c.Assert(conf.DBName, qt.Equals, "blog_prod")
	c.Assert(conf.LogLevel, qt.Equals, "warn")
}

func TestApplyEnvOverrides(t *testing.T) {
	c := qt.New(t)

	t.Setenv("APP_PORT", "9999")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("LOG_COMPRESS", "true")

	var conf AppConfig
	applyDefaults(&conf)
	applyEnvOverrides(&conf)

	c.Assert(conf.AppPort, qt.Equals, "9999")
	c.Assert(conf.JWTSecret, qt.Equals, "env-secret")
	c.Assert(conf.DBHost, qt.Equals, "db.internal")
	c.Assert(conf.RedisPort, qt.Equals, 6380)
	c.Assert(conf.AllowedOrigins, qt.DeepEquals, []string{"https://a.example.com", "https://b.example.com"})
	c.Assert(conf.LogCompress, qt.Equals, true)
}

func TestLoadJSONConfig(t *testing.T) {
	c := qt.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	body := `{
		"app": {"AppPort": "8088", "JWTSecret": "file-secret", "RateLimitPerMinute": 30},
		"database": {"DBHost": "mysql.internal", "DBName": "blog"},
		"redis": {"RedisHost": "redis.internal", "RedisPort": 7000},
		"log": {"Level": "debug", "MaxBackups": 5, "Compress": true}
	}`
	c.Assert(os.WriteFile(path, []byte(body), 0o600), qt.IsNil)

	var conf AppConfig
	c.Assert(loadJSONConfig(path, &conf), qt.IsNil)

	c.Assert(conf.AppPort, qt.Equals, "8088")
	c.Assert(conf.JWTSecret, qt.Equals, "file-secret")
	c.Assert(conf.RateLimitPerMinute, qt.Equals, 30)
	c.Assert(conf.DBHost, qt.Equals, "mysql.internal")
	c.Assert(conf.DBName, qt.Equals, "blog")
	c.Assert(conf.RedisHost, qt.Equals, "redis.internal")
	c.Assert(conf.RedisPort, qt.Equals, 7000)
	c.Assert(conf.LogLevel, qt.Equals, "debug")
	c.Assert(conf.LogMaxBackups, qt.Equals, 5)
	c.Assert(conf.LogCompress, qt.Equals, true)
}

func TestLoadJSONConfigMissingFileIsIgnored(t *testing.T) {
	c := qt.New(t)

	var conf AppConfig
	c.Assert(loadJSONConfig(filepath.Join(t.TempDir(), "absent.json"), &conf), qt.IsNil)
	c.Assert(conf, qt.DeepEquals, AppConfig{})
}

func TestSplitAndTrim(t *testing.T) {
	c := qt.New(t)

	c.Assert(splitAndTrim("a, b ,c,,  "), qt.DeepEquals, []string{"a", "b", "c"})
	c.Assert(splitAndTrim(""), qt.DeepEquals, []string{})
}
