package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/SwufeNinja/texas-tableclient/internal/client"
	"github.com/SwufeNinja/texas-tableclient/internal/config"
	"github.com/SwufeNinja/texas-tableclient/internal/game"
	"github.com/SwufeNinja/texas-tableclient/internal/logging"
	"github.com/SwufeNinja/texas-tableclient/internal/rest"
	"github.com/SwufeNinja/texas-tableclient/internal/ui"
	"github.com/SwufeNinja/texas-tableclient/internal/util"
)

var (
	cmdArgs    arg
	mainLogger = log.With().Str("logger_name", "main::main").Logger()
)

type arg struct {
	profileFile string
	serverURL   string
	playerID    string
	playerName  string
}

func init() {
	flag.StringVar(&cmdArgs.profileFile, "profile", "", "Player profile YAML file")
	flag.StringVar(&cmdArgs.serverURL, "server", "", "Game server base URL (overrides profile)")
	flag.StringVar(&cmdArgs.playerID, "player-id", "", "Player ID (overrides profile)")
	flag.StringVar(&cmdArgs.playerName, "name", "", "Display name (overrides profile)")
	flag.Parse()
}

func main() {
	os.Exit(tableclient())
}

func tableclient() int {
	zerolog.SetGlobalLevel(util.Env.GetZeroLogLogLevel())

	var profile *config.Profile
	if cmdArgs.profileFile != "" {
		var err error
		profile, err = config.ReadProfile(cmdArgs.profileFile)
		if err != nil {
			mainLogger.Error().Msgf("Error while parsing profile file: %+v", err)
			return 1
		}
	} else {
		profile = config.DefaultProfile()
	}
	if cmdArgs.serverURL != "" {
		profile.ServerURL = strings.TrimRight(cmdArgs.serverURL, "/")
	}
	if cmdArgs.playerID != "" {
		profile.PlayerID = cmdArgs.playerID
	}
	if cmdArgs.playerName != "" {
		profile.Name = cmdArgs.playerName
	}

	mainLogger.Info().Msgf("Game server: %s", profile.ServerURL)
	mainLogger.Info().
		Str(logging.PlayerIDKey, profile.PlayerID).
		Str(logging.PlayerNameKey, profile.Name).
		Msg("Joining table")

	sessionLogger := logging.GetZeroLogger("client::session", os.Stderr)
	session := client.NewSession(client.Config{
		ServerURL:         profile.ServerURL,
		ConfirmDisconnect: confirmDisconnect,
	}, sessionLogger)
	roster := rest.NewRosterClient(
		profile.ServerURL,
		func() bool { return session.State().HandInProgress() },
		session.Events().Append,
		logging.GetZeroLogger("rest::roster", os.Stderr),
	)

	if err := session.Connect(profile.PlayerID, profile.Name); err != nil {
		mainLogger.Error().Msgf("Could not join the table: %s", err)
		return 1
	}
	defer session.Close()

	console := ui.NewConsole(session)
	pterm.Println(pterm.Gray("Commands: show ready check call fold allin raise <n> ai-add <id> [name] ai-remove <id> connect quit"))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return 0
		}
		if !runCommand(scanner.Text(), session, roster, profile) {
			return 0
		}
		console.Render()
	}
}

func runCommand(line string, session *client.Session, roster *rest.RosterClient, profile *config.Profile) bool {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(line)))
	if len(fields) == 0 {
		return true
	}
	switch fields[0] {
	case "quit", "exit":
		return false
	case "show", "s":
		// Render happens after every command anyway.
	case "connect":
		if err := session.ToggleConnection(profile.PlayerID, profile.Name); err != nil {
			mainLogger.Error().Msgf("Connection attempt failed: %s", err)
		}
	case "ready", "r":
		session.ToggleReady()
	case "check":
		session.SendAction(game.ActionCheck, 0)
	case "call":
		session.SendAction(game.ActionCall, 0)
	case "fold":
		session.SendAction(game.ActionFold, 0)
	case "allin":
		session.SendAction(game.ActionAllIn, 0)
	case "raise":
		amount := session.State().MinRaise()
		if len(fields) > 1 {
			parsed, err := strconv.Atoi(fields[1])
			if err != nil {
				pterm.Println(pterm.LightRed("raise amount must be a number"))
				return true
			}
			amount = parsed
		}
		session.SendAction(game.ActionRaise, amount)
	case "ai-add":
		id, name := aiArgs(fields, profile)
		roster.AddParticipant(id, name)
	case "ai-remove":
		if len(fields) < 2 {
			pterm.Println(pterm.LightRed("usage: ai-remove <id>"))
			return true
		}
		roster.RemoveParticipant(fields[1])
	default:
		pterm.Println(pterm.LightRed("unknown command: " + fields[0]))
	}
	return true
}

// aiArgs resolves the id/name for ai-add, falling back to the first AI seat
// in the profile when no id is given.
func aiArgs(fields []string, profile *config.Profile) (string, string) {
	if len(fields) > 2 {
		return fields[1], fields[2]
	}
	if len(fields) > 1 {
		return fields[1], ""
	}
	if len(profile.AIPlayers) > 0 {
		return profile.AIPlayers[0].ID, profile.AIPlayers[0].Name
	}
	return "", ""
}

func confirmDisconnect() bool {
	ok, err := pterm.DefaultInteractiveConfirm.
		WithDefaultText("Are you sure you want to disconnect?").
		Show()
	if err != nil {
		return false
	}
	return ok
}
