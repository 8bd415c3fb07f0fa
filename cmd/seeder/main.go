package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/g5stats/stats-api/internal/models"
)

// Config
const (
	defaultAPIURL = "http://localhost:8080"
	matchID       = int64(1)
	seasonID      = int64(1)
	steamID       = "76561198000000001"
)

func main() {
	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	apiKey := os.Getenv("MATCH_API_KEY")
	if apiKey == "" {
		log.Fatal("MATCH_API_KEY must hold the api key of a live match")
	}

	// One player's map stats, as the game server plugin reports them.
	name := "SeedPlayer"
	mapID := int64(0)
	teamID := int64(1)
	kills, deaths, hs, damage := 21, 14, 9, 2480
	report := []models.NewStats{{
		APIKey:        &apiKey,
		MatchID:       ptr(matchID),
		MapID:         &mapID,
		TeamID:        &teamID,
		SteamID:       ptr(steamID),
		Name:          &name,
		Kills:         &kills,
		Deaths:        &deaths,
		HeadshotKills: &hs,
		Damage:        &damage,
	}}

	client := &http.Client{Timeout: 5 * time.Second}

	// PUT inserts the row when it does not exist yet.
	send(client, http.MethodPut, apiURL+"/playerstats", report)

	one := 1.0
	delta := models.RankDelta{
		"score":     ptr(1012.0),
		"kills":     ptr(float64(kills)),
		"deaths":    ptr(float64(deaths)),
		"headshots": ptr(float64(hs)),
		"match_win": &one,
	}
	send(client, http.MethodPut, fmt.Sprintf("%s/ranks/%s/season/%d", apiURL, steamID, seasonID), delta)
}

func send(client *http.Client, method, url string, body any) {
	payload, err := json.Marshal(body)
	if err != nil {
		log.Fatalf("Failed to marshal JSON: %v", err)
	}

	req, err := http.NewRequest(method, url, bytes.NewBuffer(payload))
	if err != nil {
		log.Fatalf("Failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := os.Getenv("API_TOKEN"); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("Failed to send request: %v", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	fmt.Printf("%s %s\n", method, url)
	fmt.Printf("Status: %s\n", resp.Status)
	fmt.Printf("Response: %s\n", string(respBody))

	if resp.StatusCode != http.StatusOK {
		log.Fatalf("Seeding failed")
	}
}

func ptr[T any](v T) *T { return &v }
