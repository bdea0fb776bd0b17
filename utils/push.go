package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

const expoPushURL = "https://exp.host/--/api/v2/push/send"

// SendNotification delivers one push message to an Expo push token.
func SendNotification(token, title, body string, data map[string]string) error {
	payload := map[string]interface{}{
		"to":    token,
		"title": title,
		"body":  body,
		"sound": "default",
	}
	if len(data) > 0 {
		payload["data"] = data
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", expoPushURL, bytes.NewReader(encoded))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("expo push returned status %d", res.StatusCode)
	}
	return nil
}
