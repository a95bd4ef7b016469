package dto

import "time"

// DocumentLinkResponse carries a short-lived download link for evidence.
type DocumentLinkResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
