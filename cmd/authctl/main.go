// Command authctl is the terminal client: it logs in or registers against
// the auth API, keeps the token on disk and shows the protected profile.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sethvargo/go-envconfig"

	"github.com/99minutos/auth-system/internal/client/api"
	"github.com/99minutos/auth-system/internal/client/session"
	"github.com/99minutos/auth-system/internal/client/storage"
	"github.com/99minutos/auth-system/internal/client/tui"
	"github.com/99minutos/auth-system/pkg/logger"
)

type clientConfig struct {
	APIURL    string `env:"AUTHCTL_API_URL,    default=http://localhost:5000/api/auth"`
	TokenFile string `env:"AUTHCTL_TOKEN_FILE"`
	LogFile   string `env:"AUTHCTL_LOG_FILE"`
	LogLevel  string `env:"AUTHCTL_LOG_LEVEL,  default=warn"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "authctl: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var cfg clientConfig
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	tokenPath := cfg.TokenFile
	if tokenPath == "" {
		p, err := storage.DefaultTokenPath()
		if err != nil {
			return err
		}
		tokenPath = p
	}

	// The terminal belongs to the UI, so logs go to a file or nowhere.
	logOpts := logger.Options{Level: cfg.LogLevel, Service: "authctl"}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOpts.Output = f
	} else {
		logOpts.Output = io.Discard
	}
	log := logger.New(logOpts)

	shell, err := session.New(api.New(cfg.APIURL, nil), storage.NewFileTokenStore(tokenPath), log)
	if err != nil {
		return err
	}

	if _, err := tea.NewProgram(tui.New(shell), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
