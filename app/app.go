// File: app/app.go
package app

import (
	"os"

	"go-atm-cli/config"
	"go-atm-cli/logger"
	"go-atm-cli/repository"
	"go-atm-cli/service"
	"go-atm-cli/terminal"
)

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	// --- Wiring All Layers Together ---
	// Repositories own the files, the service owns the rules, the session
	// owns the conversation.
	accountRepo := repository.NewAccountRepository(
		config.AppConfig.Storage.AccountsFile,
		config.AppConfig.Store.MaxAccounts,
	)
	historyRepo := repository.NewHistoryRepository(config.AppConfig.Storage.HistoryDir)
	accountService := service.NewAccountService(accountRepo, historyRepo)

	if err := accountService.Initialize(); err != nil {
		logger.Log.Fatalf("Error initializing account store: %v", err)
	}

	session := terminal.NewSession(
		accountService,
		os.Stdin,
		os.Stdout,
		config.AppConfig.Session.MaxLoginAttempts,
	)

	err := session.Run()
	if err == terminal.ErrLockedOut {
		logger.Log.Warn("Terminal locked after repeated failed logins")
		os.Exit(0)
	}
	if err != nil {
		logger.Log.Fatalf("Session ended with error: %v", err)
	}

	logger.Log.Info("Session ended, terminal exiting")
}
