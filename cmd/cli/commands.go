package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	score1    int
	score2    int
	winnerID  int
	allowTwo  bool
	outputRaw bool
)

func init() {
	recordCmd.Flags().IntVar(&score1, "score1", 0, "Points scored by player 1")
	recordCmd.Flags().IntVar(&score2, "score2", 0, "Points scored by player 2")
	recordCmd.Flags().IntVar(&winnerID, "winner", 0, "Participant id of the winner")
	_ = recordCmd.MarkFlagRequired("winner")

	layoutCmd.Flags().BoolVar(&allowTwo, "allow-two", false, "Allow a poule of two")

	rootCmd.PersistentFlags().BoolVar(&outputRaw, "raw", false, "Print the response body without indentation")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(layoutCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(finalizeCmd)
	rootCmd.AddCommand(stateCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil)
	},
}

var layoutCmd = &cobra.Command{
	Use:   "layout <players>",
	Short: "Show poule sizes, tables and round-robin order for a player count",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		players, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid player count %q: %w", args[0], err)
		}
		query := url.Values{}
		query.Set("players", strconv.Itoa(players))
		query.Set("allow_two", strconv.FormatBool(allowTwo))
		return performRequest(http.MethodGet, "/poules/layout?"+query.Encode(), nil)
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate <tournament-id>",
	Short: "Generate the bracket and classification matches from poule results",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return performRequest(http.MethodPost, fmt.Sprintf("/tournaments/%d/generate", id), nil)
	},
}

var recordCmd = &cobra.Command{
	Use:   "record <tournament-id> <match-id>",
	Short: "Record the result of a bracket or classification match",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tournamentID, err := parseID(args[0])
		if err != nil {
			return err
		}
		matchID, err := parseID(args[1])
		if err != nil {
			return err
		}
		body := map[string]int{
			"score1":    score1,
			"score2":    score2,
			"winner_id": winnerID,
		}
		return performRequest(http.MethodPost, fmt.Sprintf("/tournaments/%d/matches/%d/result", tournamentID, matchID), body)
	},
}

var finalizeCmd = &cobra.Command{
	Use:   "finalize <tournament-id>",
	Short: "Compute final positions and ranking points",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return performRequest(http.MethodPost, fmt.Sprintf("/tournaments/%d/finalize", id), nil)
	},
}

var stateCmd = &cobra.Command{
	Use:   "state <tournament-id>",
	Short: "Show matches, standings and positions of a tournament",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return performRequest(http.MethodGet, fmt.Sprintf("/tournaments/%d/state", id), nil)
	},
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func performRequest(method, endpoint string, payload interface{}) error {
	target := host + endpoint
	fmt.Printf("Making %s request to %s\n", method, target)

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, target, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(formatBody(respBody))

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("server answered %s", resp.Status)
	}
	return nil
}

func formatBody(body []byte) string {
	if outputRaw {
		return string(body)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, body, "", "  "); err != nil {
		return string(body)
	}
	return out.String()
}
