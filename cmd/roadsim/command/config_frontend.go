package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-roadsim/internal/frontend"
	"github.com/pixil98/go-service"
)

type FrontendType int

const (
	FrontendTypeLog FrontendType = iota
	FrontendTypeTUI
)

func (ft *FrontendType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "log":
		*ft = FrontendTypeLog
	case "tui":
		*ft = FrontendTypeTUI
	default:
		return fmt.Errorf("unknown frontend type: %s", text)
	}
	return nil
}

type FrontendConfig struct {
	Type            FrontendType `json:"type"`
	RefreshInterval string       `json:"refresh_interval,omitempty"`
}

func (fc *FrontendConfig) validate() error {
	el := errors.NewErrorList()

	if fc.RefreshInterval != "" {
		d, err := time.ParseDuration(fc.RefreshInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing refresh_interval: %w", err))
		} else if d <= 0 {
			el.Add(fmt.Errorf("refresh_interval must be positive"))
		}
	}

	return el.Err()
}

func (fc *FrontendConfig) BuildFrontend(shell *frontend.Shell) (service.Worker, error) {
	var refresh time.Duration
	if fc.RefreshInterval != "" {
		d, err := time.ParseDuration(fc.RefreshInterval)
		if err != nil {
			return nil, fmt.Errorf("parsing refresh_interval: %w", err)
		}
		refresh = d
	}

	switch fc.Type {
	case FrontendTypeLog:
		return frontend.NewLogFrontend(shell, refresh), nil
	case FrontendTypeTUI:
		return frontend.NewTUI(shell, refresh), nil
	default:
		return nil, fmt.Errorf("unknown frontend type: %v", fc.Type)
	}
}
