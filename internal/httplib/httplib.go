package httplib

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// GetJSON fetches url and unmarshals the JSON body into v.
//
// The token is sent as bearer authorization when not empty.
func GetJSON(ctx context.Context, url string, token string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Add("Accept", "application/json")
	if token != "" {
		req.Header.Add("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return err
	}

	return nil
}

var (
	client = &http.Client{Timeout: 10 * time.Second}
)
