package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/examdesk/seatmap/pkg/core/model"
)

// StudentTabs names the two workbook sheets holding the student groups.
type StudentTabs struct {
	Group1 string `yaml:"group1" validate:"required"`
	Group2 string `yaml:"group2" validate:"required"`
}

// Columns maps the canonical student fields to the header names used in the
// workbook's student tabs.
type Columns struct {
	Name       string `yaml:"name" validate:"required"`
	Class      string `yaml:"class" validate:"required"`
	StudentID  string `yaml:"studentID" validate:"required"`
	SeatNumber string `yaml:"seatNumber" validate:"required"`
	Flex       string `yaml:"flex" validate:"required"`
}

// Server holds settings for the seat-map preview server.
type Server struct {
	Addr string `yaml:"addr" validate:"required,hostname_port"`
}

// Config represents the application configuration
type Config struct {
	StudentTabs StudentTabs `yaml:"studentTabs"`
	Columns     Columns     `yaml:"columns"`

	// BlockedSeats maps a room name to "row,col" positions (1-based, as an
	// operator would read them off the printed map) excluded from allocation.
	BlockedSeats map[string][]string `yaml:"blockedSeats,omitempty"`

	Server Server `yaml:"server"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Default returns the configuration used when no config file is present.
// Tab and column names match the workbook layout the tool grew up with.
func Default() *Config {
	return &Config{
		StudentTabs: StudentTabs{Group1: "alunos_1", Group2: "alunos_2"},
		Columns: Columns{
			Name:       "name",
			Class:      "class",
			StudentID:  "student_id",
			SeatNumber: "seat_number",
			Flex:       "flex",
		},
		Server: Server{Addr: ":8080"},
	}
}

// Load loads and validates the configuration from seatmap_config.yaml.
// It looks for the config file in the current directory first, then in the
// user's home directory, and falls back to defaults when neither exists.
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return Default(), nil
	}
	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration struct and checks blocked-seat syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	// Validate blocked-seat positions for each room
	for room, positions := range cfg.BlockedSeats {
		for _, pos := range positions {
			if _, err := parseSeat(pos); err != nil {
				return fmt.Errorf("invalid blocked seat %q for room %q: %w", pos, room, err)
			}
		}
	}

	return nil
}

// BlockedSeatsFor returns a room's blocked seats as a 0-based seat set.
// Validate has already vetted the syntax; range against the room's grid is
// checked by the allocator once dimensions are known.
func (c *Config) BlockedSeatsFor(room string) map[model.Seat]bool {
	positions := c.BlockedSeats[room]
	if len(positions) == 0 {
		return nil
	}

	blocked := make(map[model.Seat]bool, len(positions))
	for _, pos := range positions {
		seat, err := parseSeat(pos)
		if err != nil {
			continue
		}
		blocked[seat] = true
	}
	return blocked
}

// parseSeat parses a 1-based "row,col" position into a 0-based seat.
func parseSeat(pos string) (model.Seat, error) {
	parts := strings.Split(pos, ",")
	if len(parts) != 2 {
		return model.Seat{}, fmt.Errorf("expected \"row,col\"")
	}

	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return model.Seat{}, fmt.Errorf("row is not a number")
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return model.Seat{}, fmt.Errorf("column is not a number")
	}
	if row < 1 || col < 1 {
		return model.Seat{}, fmt.Errorf("positions are 1-based")
	}

	return model.Seat{Row: row - 1, Col: col - 1}, nil
}

// findConfigFile searches for seatmap_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "seatmap_config.yaml"

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
