// Package suggest asks a remote structured-generation service for
// creative input: color themes and whole map layouts. It is strictly a
// convenience; when credentials are absent or the service fails, a
// deterministic offline fallback is substituted and editing continues
// unaffected.
package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"metromap/core"
)

// Theme is a naming-and-palette suggestion for a map.
type Theme struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Palette      []string `json:"palette"`      // 5 hex colors
	StationNames []string `json:"stationNames"` // 10 suggestions
}

// Client calls the generation service.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client

	// fallbackDelay imitates a round trip before serving the offline
	// theme, so the UI's loading affordance behaves the same either way.
	fallbackDelay time.Duration
}

// NewClient builds a client from the SUGGEST_API_URL and
// SUGGEST_API_KEY environment variables. A client without credentials
// is valid and always serves fallbacks.
func NewClient() *Client {
	return &Client{
		endpoint:      os.Getenv("SUGGEST_API_URL"),
		apiKey:        os.Getenv("SUGGEST_API_KEY"),
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		fallbackDelay: 600 * time.Millisecond,
	}
}

// Theme requests a theme for the given prompt. It never fails: remote
// errors are logged and replaced by the offline fallback after a short
// artificial delay.
func (c *Client) Theme(ctx context.Context, prompt string) *Theme {
	if c.endpoint == "" || c.apiKey == "" {
		c.sleep(ctx)
		return FallbackTheme(prompt)
	}

	var theme Theme
	if err := c.generate(ctx, "theme", prompt, &theme); err != nil {
		log.Printf("suggest: theme generation failed, using fallback: %v", err)
		return FallbackTheme(prompt)
	}
	return &theme
}

// Layout requests a complete map layout for the given prompt. A nil
// result means "no change": there is no sensible offline layout to
// invent, so absence of credentials or any failure yields nil.
func (c *Client) Layout(ctx context.Context, prompt string) *core.Map {
	if c.endpoint == "" || c.apiKey == "" {
		return nil
	}

	var doc core.Map
	if err := c.generate(ctx, "layout", prompt, &doc); err != nil {
		log.Printf("suggest: layout generation failed: %v", err)
		return nil
	}
	return &doc
}

// generate posts a structured-generation request and decodes the JSON
// result into out.
func (c *Client) generate(ctx context.Context, kind, prompt string, out interface{}) error {
	body, err := json.Marshal(map[string]string{
		"schema": kind,
		"prompt": prompt,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("generation service returned %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding generation response: %w", err)
	}
	return nil
}

func (c *Client) sleep(ctx context.Context) {
	select {
	case <-time.After(c.fallbackDelay):
	case <-ctx.Done():
	}
}

var fallbackStationNames = []string{
	"Harbour Quay", "Old Mill", "Kings Cross", "Cathedral",
	"Riverside", "Market Square", "Observatory", "Garden Bridge",
	"Union Yard", "Northgate",
}

// FallbackTheme derives a deterministic offline theme from the prompt:
// the prompt seeds a base hue and the palette spreads five evenly
// rotated hues around it.
func FallbackTheme(prompt string) *Theme {
	h := fnv.New32a()
	h.Write([]byte(prompt))
	baseHue := float64(h.Sum32() % 360)

	palette := make([]string, 5)
	for i := range palette {
		hue := baseHue + float64(i)*72
		for hue >= 360 {
			hue -= 360
		}
		palette[i] = colorful.Hsv(hue, 0.85, 0.80).Hex()
	}

	names := make([]string, len(fallbackStationNames))
	copy(names, fallbackStationNames)

	return &Theme{
		Name:         "Classic Transit",
		Description:  "A balanced five-line palette with evenly spaced hues.",
		Palette:      palette,
		StationNames: names,
	}
}
