package config

import (
	"encoding/json"
	"log"
	"os"
)

type Configuration struct {
	ApiPort string `json:"api_port"`

	Database string `json:"database"` // "sqlite3" ou "postgres"
	DbHost   string `json:"db_host"`
	DbPort   string `json:"db_port"`
	DbUser   string `json:"db_user"`
	DbName   string `json:"db_name"`
	DbPass   string `json:"db_pass"`

	// ExportDir é onde o job diário grava os CSVs de logs.
	ExportDir string `json:"export_dir"`

	Security struct {
		JwtSecret  string `json:"jwt_secret"`
		TokenHours int    `json:"token_valid_hours"`
		BcryptCost int    `json:"bcrypt_cost"`
	} `json:"security"`
}

func Get(path string) Configuration {
	b, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}
	var c Configuration
	if err := json.Unmarshal(b, &c); err != nil {
		log.Fatal(err)
	}

	// defaults (pra evitar nil/zero chato)
	if c.ApiPort == "" {
		c.ApiPort = "8080"
	}
	if c.Database == "" {
		c.Database = "sqlite3"
	}
	if c.ExportDir == "" {
		c.ExportDir = "exports"
	}
	if c.Security.TokenHours <= 0 {
		c.Security.TokenHours = 24
	}
	if c.Security.BcryptCost <= 0 {
		c.Security.BcryptCost = 10
	}
	if c.Security.JwtSecret == "" {
		c.Security.JwtSecret = os.Getenv("JWT_SECRET")
	}
	if c.Security.JwtSecret == "" {
		c.Security.JwtSecret = "CHANGE_ME"
	}

	return c
}
