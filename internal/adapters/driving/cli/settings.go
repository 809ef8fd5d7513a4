package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Sources that authenticate with an account rather than anonymously.
var credentialSources = []string{"uk_coh", "france_inpi", "estonia_rik"}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage registry credentials and sessions",
	Long: `View and configure per-registry settings.

Some registries need an account (UK Companies House, the French INPI
register, the Estonian X-Road service) and some need a browser session
cookie harvested from their website (the Danish CVR gateway). Both are
stored in the configuration file.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsCredentialsCmd = &cobra.Command{
	Use:   "credentials [source]",
	Short: "Set a registry's account credentials",
	Long: `Store the username (or API key) and password for a source, e.g.:

  boexplorer settings credentials uk_coh`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsCredentials,
}

var settingsSessionCmd = &cobra.Command{
	Use:   "session [source]",
	Short: "Set a registry's session cookie",
	Long: `Store a browser session cookie value and user agent for a source
that gates access on an established browser session, e.g.:

  boexplorer settings session denmark_cvr`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsSession,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsCredentialsCmd)
	settingsCmd.AddCommand(settingsSessionCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()
	cmd.Printf("Config file: %s\n", configStore.Path())
	cmd.Println()

	cmd.Println("[Credentials]")
	for _, source := range credentialSources {
		user := configStore.GetString("sources." + source + ".credentials.user")
		status := "not set"
		if user != "" {
			status = maskValue(user)
		}
		cmd.Printf("  %-14s %s\n", source+":", status)
	}
	cmd.Println()

	cmd.Println("[Sessions]")
	cookie := configStore.GetString("sources.denmark_cvr.session.cookie")
	status := "not set"
	if cookie != "" {
		status = maskValue(cookie)
	}
	cmd.Printf("  %-14s %s\n", "denmark_cvr:", status)

	return nil
}

func runSettingsCredentials(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}
	source := args[0]

	reader := bufio.NewReader(os.Stdin)
	cmd.Printf("Username / API key for %s: ", source)
	user := readLine(reader)
	if user == "" {
		return errors.New("username is required")
	}
	cmd.Print("Password (empty for key-only auth): ")
	pass := readPassword()
	cmd.Println()

	if err := configStore.Set("sources."+source+".credentials.user", user); err != nil {
		return fmt.Errorf("failed to store credentials: %w", err)
	}
	if err := configStore.Set("sources."+source+".credentials.pass", pass); err != nil {
		return fmt.Errorf("failed to store credentials: %w", err)
	}

	cmd.Printf("Credentials stored for %s.\n", source)
	return nil
}

func runSettingsSession(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}
	source := args[0]

	reader := bufio.NewReader(os.Stdin)
	cmd.Printf("Session cookie value for %s: ", source)
	cookie := readLine(reader)
	if cookie == "" {
		return errors.New("cookie value is required")
	}
	cmd.Print("Browser user agent (empty for a random one): ")
	userAgent := readLine(reader)

	if err := configStore.Set("sources."+source+".session.cookie", cookie); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	if userAgent != "" {
		if err := configStore.Set("sources."+source+".session.user_agent", userAgent); err != nil {
			return fmt.Errorf("failed to store session: %w", err)
		}
	}

	cmd.Printf("Session stored for %s.\n", source)
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskValue(value string) string {
	if len(value) <= 8 {
		return "****"
	}
	return value[:4] + "..." + value[len(value)-4:]
}
