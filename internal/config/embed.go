package config

import (
	_ "embed"

	"github.com/jmylchreest/tourtip/internal/model"
)

//go:embed tours/default.toml
var defaultTourTOML []byte

// DefaultTour returns the built-in demonstration tour. It is used when
// no tour file exists at the configured path.
func DefaultTour() ([]model.Page, error) {
	return ParseTour(defaultTourTOML)
}
