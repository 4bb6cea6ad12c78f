package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
)

func main() {
	api := os.Getenv("API_BASE")
	if api == "" {
		api = "http://localhost:8080"
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Enter a URL to check (e.g., https://example.com): ")
	raw, _ := reader.ReadString('\n')
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		fmt.Println("Invalid URL.")
		return
	}

	body, _ := json.Marshal(map[string]string{"url": raw})
	resp, err := http.Post(api+"/api/v1/monitor", "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Println("Error contacting API:", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		fmt.Println("API returned status:", resp.Status)
		return
	}

	var rec struct {
		ID           int64    `json:"id"`
		URL          string   `json:"url"`
		StatusCode   *int     `json:"status_code"`
		LatencyMS    *float64 `json:"response_time_ms"`
		IsHealthy    bool     `json:"is_healthy"`
		ErrorMessage *string  `json:"error_message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		fmt.Println("Could not decode response:", err)
		return
	}

	if rec.IsHealthy {
		fmt.Printf("UP   %s (status %d, %.1f ms) - saved as result #%d\n",
			rec.URL, *rec.StatusCode, *rec.LatencyMS, rec.ID)
		return
	}
	if rec.ErrorMessage != nil {
		fmt.Printf("DOWN %s (%s) - saved as result #%d\n", rec.URL, *rec.ErrorMessage, rec.ID)
	} else if rec.StatusCode != nil {
		fmt.Printf("DOWN %s (status %d) - saved as result #%d\n", rec.URL, *rec.StatusCode, rec.ID)
	} else {
		fmt.Printf("DOWN %s - saved as result #%d\n", rec.URL, rec.ID)
	}
}
