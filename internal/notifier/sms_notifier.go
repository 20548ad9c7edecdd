package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	config "github.com/Keoroanthony/go-food-ordering/configs"
	"github.com/Keoroanthony/go-food-ordering/internal/models"
)

type SMSResponse struct {
	SMSMessageData struct {
		Message    string `json:"Message"`
		Recipients []struct {
			StatusCode int    `json:"statusCode"`
			Number     string `json:"number"`
			Cost       string `json:"cost"`
			Status     string `json:"status"`
			MessageID  string `json:"messageId"`
		} `json:"Recipients"`
	} `json:"SMSMessageData"`
}

// SMSNotifier texts the phone number given at checkout through Africa's Talking.
// Orders without a phone number are skipped.
type SMSNotifier struct {
	cfg    config.AfricaTalkingConfig
	client *http.Client
}

func NewSMSNotifier(cfg config.AfricaTalkingConfig, client *http.Client) *SMSNotifier {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &SMSNotifier{cfg: cfg, client: client}
}

func (n *SMSNotifier) OrderPlaced(ctx context.Context, to Recipient, order models.Order) error {
	message := fmt.Sprintf("Your order #%d has been successfully placed! Total: $%s. Thank you for ordering with us!",
		order.ID, order.TotalPrice.StringFixed(2))
	return n.send(ctx, to.Phone, order.ID, message)
}

func (n *SMSNotifier) StatusChanged(ctx context.Context, to Recipient, order models.Order) error {
	return n.send(ctx, to.Phone, order.ID, fmt.Sprintf("Your order #%d is now %s.", order.ID, order.Status))
}

func (n *SMSNotifier) send(ctx context.Context, toPhoneNumber string, orderID uint, message string) error {
	if toPhoneNumber == "" {
		return nil
	}

	data := url.Values{}
	data.Set("username", n.cfg.Username)
	data.Set("to", toPhoneNumber)
	data.Set("message", message)
	data.Set("from", n.cfg.SenderID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.SMSURL, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create SMS request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("apikey", n.cfg.APIKey)

	resp, err := n.client.Do(req)
	if err != nil {
		log.Printf("SMS send failed to %s for order %d: %v\n", toPhoneNumber, orderID, err)
		return fmt.Errorf("SMS send failed: %w", err)
	}
	defer resp.Body.Close()

	var smsResp SMSResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&smsResp)

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		if decodeErr == nil {
			log.Printf("SMS API returned error for %s (order %d): Status %d, Message: %s\n", toPhoneNumber, orderID, resp.StatusCode, smsResp.SMSMessageData.Message)
		} else {
			log.Printf("SMS API returned non-success status %d for %s (order %d) and failed to decode response: %v\n", resp.StatusCode, toPhoneNumber, orderID, decodeErr)
		}
		return fmt.Errorf("SMS API returned non-success status: %d", resp.StatusCode)
	}

	if decodeErr != nil {
		log.Printf("Failed to decode SMS response for %s (order %d): %v\n", toPhoneNumber, orderID, decodeErr)
		return fmt.Errorf("failed to decode SMS response: %w", decodeErr)
	}

	log.Printf("SMS sent successfully to %s for order %d. Message: %s\n", toPhoneNumber, orderID, smsResp.SMSMessageData.Message)
	return nil
}
