package chatui

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Tanjamul-Azad/Complete-Legal-Aid/internal/chat"
	"github.com/Tanjamul-Azad/Complete-Legal-Aid/internal/chat/store"
	"github.com/Tanjamul-Azad/Complete-Legal-Aid/internal/config"
	"github.com/Tanjamul-Azad/Complete-Legal-Aid/internal/logging"
)

// Execute runs the legalchat CLI.
func Execute(version string) error {
	return newRootCmd(version).Execute()
}

func newRootCmd(version string) *cobra.Command {
	var (
		configFile string
		serverURL  string
		token      string
		userID     string
		peerID     string
		peerName   string
		caseID     string
		theme      string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:           "legalchat",
		Short:         "Secure messaging widget for the Complete Legal Aid platform",
		Long:          "legalchat opens the platform's secure messaging widget in the terminal:\nconversations with lawyers and citizens, unread tracking, and case-linked messages.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := config.NewLoader()
			if configFile != "" {
				loader.SetConfigFile(configFile)
			}
			if serverURL != "" {
				loader.Set("server.base_url", serverURL)
			}
			if token != "" {
				loader.Set("server.token", token)
			}
			if userID != "" {
				loader.Set("chat.user_id", userID)
			}
			if caseID != "" {
				loader.Set("chat.case_id", caseID)
			}
			if theme != "" {
				loader.Set("tui.theme", theme)
			}
			if logLevel != "" {
				loader.Set("logging.level", logLevel)
			}

			cfg, err := loader.Load()
			if err != nil {
				return err
			}
			if strings.TrimSpace(cfg.Chat.UserID) == "" {
				return fmt.Errorf("no user identity; pass --user or set chat.user_id")
			}

			initLogging(cfg)
			if cfgUsed := loader.ConfigFileUsed(); cfgUsed != "" {
				cfgLog := logging.Component("config")
				cfgLog.Debug().Str("config_file", cfgUsed).Msg("loaded config file")
			}
			userLog := logging.WithUser(cfg.Chat.UserID)
			userLog.Debug().Str("server", cfg.Server.BaseURL).Msg("starting legalchat")

			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return fmt.Errorf("legalchat needs an interactive terminal")
			}

			client, err := store.New(cfg.Server.BaseURL, cfg.Server.Token)
			if err != nil {
				return fmt.Errorf("init store: %w", err)
			}

			widget := Config{
				UserID:         cfg.Chat.UserID,
				CaseID:         cfg.Chat.CaseID,
				PollInterval:   cfg.Chat.PollInterval,
				Theme:          cfg.TUI.Theme,
				ShowTimestamps: cfg.TUI.ShowTimestamps,
			}
			sessions := config.DefaultSessionStore()
			if trimmed := strings.TrimSpace(peerID); trimmed != "" {
				widget.Peer = &chat.User{ID: trimmed, Name: strings.TrimSpace(peerName)}
			} else if sess, err := sessions.Load(); err == nil && !sess.IsEmpty() && sess.BelongsTo(cfg.Chat.UserID) {
				// Reopen the conversation from the previous run.
				widget.Peer = &chat.User{ID: sess.PeerID, Name: sess.PeerName}
			}

			model, err := NewModel(widget, client)
			if err != nil {
				return err
			}
			program := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return err
			}

			if selected := model.Selected(); selected != "" {
				sess := &config.Session{}
				name := ""
				if peer, ok := model.dir.Lookup(selected); ok {
					name = peer.Name
				}
				sess.SetPeer(cfg.Chat.UserID, selected, name)
				if err := sessions.Save(sess); err != nil {
					uiLog := logging.Component("chatui")
					uiLog.Warn().Err(err).Msg("session save failed")
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "Config file path")
	cmd.Flags().StringVar(&serverURL, "server", "", "API base URL")
	cmd.Flags().StringVar(&token, "token", "", "API auth token")
	cmd.Flags().StringVar(&userID, "user", "", "Current user ID")
	cmd.Flags().StringVar(&peerID, "peer", "", "Open the conversation with this user ID")
	cmd.Flags().StringVar(&peerName, "peer-name", "", "Display name for --peer when the directory lacks it")
	cmd.Flags().StringVar(&caseID, "case", "", "Associate sent messages with this case ID")
	cmd.Flags().StringVar(&theme, "theme", "", "Color theme (default, high-contrast)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	return cmd
}

func initLogging(cfg *config.Config) {
	logCfg := logging.Config{
		Level:        cfg.Logging.Level,
		Format:       cfg.Logging.Format,
		EnableCaller: cfg.Logging.EnableCaller,
	}
	if cfg.Logging.File != "" {
		if f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			logCfg.Output = f
			logCfg.Format = "json"
		}
	}
	logging.Init(logCfg)
}
