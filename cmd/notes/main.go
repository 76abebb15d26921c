package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/notespath/backend/internal/config"
	"github.com/notespath/backend/internal/logger"
	"github.com/notespath/backend/internal/models"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := newRootCmd(cfg).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, formatCLIError(err))
		logger.Sync()
		os.Exit(1)
	}
}

// formatCLIError turns a workflow error into a single user-facing line
func formatCLIError(err error) string {
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		return fmt.Sprintf("error: %s (%s)", validationErr.Message, validationErr.Field)
	}
	return "error: " + err.Error()
}
