package utils

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// ProbeVideoURL checks that a lecture's video URL is reachable on its host.
// Hosting itself lives with the external video provider; this only rejects
// obviously dead links at authoring time.
func ProbeVideoURL(url string) error {
	client := resty.New().SetTimeout(5 * time.Second)

	resp, err := client.R().Head(url)
	if err != nil {
		return err
	}
	if resp.StatusCode() >= 400 {
		return fmt.Errorf("video url returned status %d", resp.StatusCode())
	}
	return nil
}
