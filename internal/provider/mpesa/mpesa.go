// internal/provider/mpesa/mpesa.go
package mpesa

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"autoparts-api/config"
)

const tokenSafetyMargin = 300 * time.Second

// Client talks to the M-Pesa Daraja API. It owns the cached OAuth token;
// there is no other shared state.
type Client struct {
	cfg        config.MpesaConfig
	baseURL    string
	httpClient *http.Client

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time

	now func() time.Time
}

func NewClient(cfg config.MpesaConfig) *Client {
	baseURL := "https://sandbox.safaricom.co.ke"
	if cfg.Environment == "production" {
		baseURL = "https://api.safaricom.co.ke"
	}

	return &Client{
		cfg:        cfg,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		now:        time.Now,
	}
}

// STKPushResponse is the provider's synchronous acknowledgment of a push.
type STKPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
}

type stkPushRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            int    `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

// InitiateSTKPush asks the provider to prompt the customer's phone for
// payment authorization. phoneNumber must already be normalized to
// 2547XXXXXXXX and amount must be >= 1; both are enforced by the caller.
// The response is returned verbatim so the caller can persist the
// correlation identifiers before acknowledging the end user.
func (c *Client) InitiateSTKPush(ctx context.Context, phoneNumber string, amount float64, accountRef, description string) (*STKPushResponse, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	if description == "" {
		description = c.cfg.TransactionDesc
	}

	timestamp := c.now().Format("20060102150405")
	password := base64.StdEncoding.EncodeToString([]byte(
		c.cfg.ShortCode + c.cfg.Passkey + timestamp,
	))

	request := stkPushRequest{
		BusinessShortCode: c.cfg.ShortCode,
		Password:          password,
		Timestamp:         timestamp,
		TransactionType:   "CustomerPayBillOnline",
		Amount:            int(amount),
		PartyA:            phoneNumber,
		PartyB:            c.cfg.ShortCode,
		PhoneNumber:       phoneNumber,
		CallBackURL:       c.cfg.CallbackURL,
		AccountReference:  accountRef,
		TransactionDesc:   description,
	}

	body, err := json.Marshal(request)
	if err != nil {
		return nil, &PushError{Message: "failed to encode request", Err: err}
	}

	url := c.baseURL + "/mpesa/stkpush/v1/processrequest"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &PushError{Message: "failed to build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &PushError{Message: "push request failed", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &PushError{Message: "failed to read push response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &PushError{
			StatusCode: resp.StatusCode,
			Message:    providerErrorMessage(respBody),
		}
	}

	var response STKPushResponse
	if err := json.Unmarshal(respBody, &response); err != nil {
		return nil, &PushError{Message: "failed to parse push response", Err: err}
	}

	return &response, nil
}

// AccessToken returns a cached OAuth bearer token, fetching a fresh one
// when the cache is empty or expired. The token is treated as expired
// five minutes before the provider-declared expiry. The fetch happens
// outside the lock, so concurrent cache misses may each hit the provider;
// the last writer wins, which is harmless.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.token != "" && c.now().Before(c.tokenExpiry) {
		token := c.token
		c.mu.Unlock()
		return token, nil
	}
	c.mu.Unlock()

	token, expiresIn, err := c.fetchToken(ctx)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.token = token
	c.tokenExpiry = c.now().Add(time.Duration(expiresIn)*time.Second - tokenSafetyMargin)
	c.mu.Unlock()

	return token, nil
}

func (c *Client) fetchToken(ctx context.Context) (string, int64, error) {
	url := c.baseURL + "/oauth/v1/generate?grant_type=client_credentials"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", 0, &TokenError{Message: "failed to build token request", Err: err}
	}

	auth := base64.StdEncoding.EncodeToString([]byte(
		c.cfg.ConsumerKey + ":" + c.cfg.ConsumerSecret,
	))
	req.Header.Set("Authorization", "Basic "+auth)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", 0, &TokenError{Message: "token request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", 0, &TokenError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("token endpoint returned %d: %s", resp.StatusCode, string(body)),
		}
	}

	// expires_in arrives as a JSON string from Daraja.
	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   string `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", 0, &TokenError{Message: "failed to parse token response", Err: err}
	}

	if result.AccessToken == "" {
		return "", 0, &TokenError{Message: "token response missing access_token"}
	}

	var expiresIn int64
	if _, err := fmt.Sscanf(result.ExpiresIn, "%d", &expiresIn); err != nil || expiresIn <= 0 {
		return "", 0, &TokenError{Message: "token response missing expires_in"}
	}

	return result.AccessToken, expiresIn, nil
}

func providerErrorMessage(body []byte) string {
	var errResp struct {
		ErrorMessage string `json:"errorMessage"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.ErrorMessage != "" {
		return errResp.ErrorMessage
	}
	return string(body)
}
