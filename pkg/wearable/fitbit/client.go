package fitbit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"mindmate-be/pkg/wearable"

	"golang.org/x/oauth2"
)

// Client talks to the Fitbit Web API. Requests run through an oauth2
// token source so expired access tokens refresh transparently.
type Client struct {
	baseURL string
	conf    *oauth2.Config
}

type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	TokenURL     string
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.fitbit.com"
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = "https://api.fitbit.com/oauth2/token"
	}
	return &Client{
		baseURL: cfg.BaseURL,
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL: cfg.TokenURL,
			},
		},
	}
}

func (c *Client) httpClient(ctx context.Context, accessToken, refreshToken string) *http.Client {
	token := &oauth2.Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}
	return oauth2.NewClient(ctx, c.conf.TokenSource(ctx, token))
}

type sleepResponse struct {
	Sleep []struct {
		DateOfSleep string `json:"dateOfSleep"`
		Duration    int64  `json:"duration"` // milliseconds
	} `json:"sleep"`
}

type activityResponse struct {
	Summary struct {
		Steps             int `json:"steps"`
		RestingHeartRate  int `json:"restingHeartRate"`
		FairlyActiveMins  int `json:"fairlyActiveMinutes"`
		VeryActiveMinutes int `json:"veryActiveMinutes"`
	} `json:"summary"`
}

// GetRecent returns up to `days` daily summaries ending today. A day whose
// activity fetch fails is skipped rather than failing the whole snapshot.
func (c *Client) GetRecent(ctx context.Context, accessToken, refreshToken string, days int) (*wearable.WellnessSnapshot, error) {
	if days <= 0 {
		days = 7
	}

	client := c.httpClient(ctx, accessToken, refreshToken)

	end := time.Now()
	start := end.AddDate(0, 0, -(days - 1))

	sleepByDate, err := c.fetchSleepRange(ctx, client, start, end)
	if err != nil {
		return nil, err
	}

	summaries := make([]wearable.DailySummary, 0, days)
	for d := 0; d < days; d++ {
		date := start.AddDate(0, 0, d).Format("2006-01-02")
		summary, err := c.fetchDailyActivity(ctx, client, date)
		if err != nil {
			continue
		}
		summary.SleepHours = sleepByDate[date]
		summaries = append(summaries, summary)
	}

	return &wearable.WellnessSnapshot{
		Days:       summaries,
		Indicators: wearable.DeriveIndicators(summaries),
		FetchedAt:  time.Now(),
	}, nil
}

func (c *Client) fetchSleepRange(ctx context.Context, client *http.Client, start, end time.Time) (map[string]float64, error) {
	url := fmt.Sprintf("%s/1.2/user/-/sleep/date/%s/%s.json",
		c.baseURL, start.Format("2006-01-02"), end.Format("2006-01-02"))

	var parsed sleepResponse
	if err := c.getJSON(ctx, client, url, &parsed); err != nil {
		return nil, fmt.Errorf("failed to fetch sleep range: %w", err)
	}

	byDate := make(map[string]float64, len(parsed.Sleep))
	for _, s := range parsed.Sleep {
		byDate[s.DateOfSleep] += float64(s.Duration) / float64(time.Hour/time.Millisecond)
	}
	return byDate, nil
}

func (c *Client) fetchDailyActivity(ctx context.Context, client *http.Client, date string) (wearable.DailySummary, error) {
	url := fmt.Sprintf("%s/1/user/-/activities/date/%s.json", c.baseURL, date)

	var parsed activityResponse
	if err := c.getJSON(ctx, client, url, &parsed); err != nil {
		return wearable.DailySummary{}, err
	}

	return wearable.DailySummary{
		Date:             date,
		Steps:            parsed.Summary.Steps,
		RestingHeartRate: parsed.Summary.RestingHeartRate,
		ActiveMinutes:    parsed.Summary.FairlyActiveMins + parsed.Summary.VeryActiveMinutes,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, client *http.Client, url string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("wearable API returned status %d: %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(v)
}
