package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"pennywise/internal/api"
	"pennywise/internal/auth"
	"pennywise/internal/config"
	"pennywise/internal/ledger"
	"pennywise/internal/logging"
	"pennywise/internal/report"
	"pennywise/internal/tui"
)

func main() {
	if len(os.Args) >= 3 && os.Args[1] == "auth" {
		switch os.Args[2] {
		case "set":
			if err := runAuthSet(); err != nil {
				fmt.Fprintf(os.Stderr, "auth set error: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("Token saved to your system credential store.")
			return
		case "clear":
			if err := auth.ClearToken(); err != nil {
				fmt.Fprintf(os.Stderr, "auth clear error: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("Token removed from your system credential store.")
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log, closeLog := logging.New(cfg.LogFile)
	defer closeLog()

	client := api.New(cfg.APIBase, "")
	store := ledger.NewStore(client, log)
	session := auth.NewSession(client, log)
	reports := report.NewService(client, cfg.Timezone, log)

	p := tea.NewProgram(
		tui.New(cfg, client, store, session, reports, log),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("program exited with error")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runAuthSet() error {
	if len(os.Args) != 3 {
		return errors.New("usage: pennywise auth set")
	}

	fmt.Print("Enter API token: ")
	token, err := readSecret()
	if err != nil {
		return err
	}
	fmt.Println()

	if strings.TrimSpace(token) == "" {
		return errors.New("empty token")
	}

	return auth.SaveToken(token)
}

func readSecret() (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		value, err := term.ReadPassword(fd)
		if err != nil {
			return "", err
		}
		return string(value), nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		if len(line) == 0 {
			return "", err
		}
	}
	return strings.TrimSpace(line), nil
}
