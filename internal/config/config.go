package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	// Catalog
	MetadataURL  string `validate:"required,url"`
	FallbackFile string `validate:"required"`
	Theme        string `validate:"required"`

	// Local state
	OutputDir  string `validate:"required"`
	LedgerFile string `validate:"required"`

	// Pipeline
	Workers         int           `validate:"min=1"`
	MetadataTimeout time.Duration `validate:"min=0"`

	// SFTP (optional mirroring of run artifacts)
	SFTPHost                  string
	SFTPPort                  int
	SFTPUser                  string
	SFTPPass                  string
	SFTPDir                   string
	SFTPInsecureIgnoreHostKey bool
}

func Load() Config {
	return Config{
		MetadataURL:  getenv("REFRESH_METADATA_URL", "https://data.cms.gov/provider-data/api/1/metastore/schemas/dataset/items"),
		FallbackFile: getenv("REFRESH_FALLBACK_FILE", "CMS_BU_DATA.json"),
		Theme:        getenv("REFRESH_THEME", "Hospitals"),

		OutputDir:  getenv("REFRESH_OUTPUT_DIR", "hospital_download_data"),
		LedgerFile: getenv("REFRESH_LEDGER_FILE", "run_log.txt"),

		Workers:         getenvInt("REFRESH_WORKERS", 5),
		MetadataTimeout: time.Duration(getenvInt("REFRESH_METADATA_TIMEOUT_SECONDS", 10)) * time.Second,

		SFTPHost:                  os.Getenv("SFTP_HOST"),
		SFTPPort:                  getenvInt("SFTP_PORT", 22),
		SFTPUser:                  os.Getenv("SFTP_USER"),
		SFTPPass:                  os.Getenv("SFTP_PASS"),
		SFTPDir:                   getenv("SFTP_DIR", "/"),
		SFTPInsecureIgnoreHostKey: getenvBool("SFTP_INSECURE_IGNORE_HOST_KEY", false),
	}
}

var validate = validator.New()

// Validate rejects configurations the run could not work with: missing
// paths, a malformed metadata URL, or a non-positive worker width.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvBool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
