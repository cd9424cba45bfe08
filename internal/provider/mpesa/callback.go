// internal/provider/mpesa/callback.go
package mpesa

import (
	"encoding/json"
	"fmt"
)

// STKCallbackRequest mirrors the provider's asynchronous result
// notification body.
type STKCallbackRequest struct {
	Body struct {
		StkCallback struct {
			MerchantRequestID string `json:"MerchantRequestID"`
			CheckoutRequestID string `json:"CheckoutRequestID"`
			ResultCode        int    `json:"ResultCode"`
			ResultDesc        string `json:"ResultDesc"`
			CallbackMetadata  struct {
				Item []struct {
					Name  string      `json:"Name"`
					Value interface{} `json:"Value"`
				} `json:"Item"`
			} `json:"CallbackMetadata"`
		} `json:"stkCallback"`
	} `json:"Body"`
}

// CallbackResult is the parsed outcome of an STK callback. Metadata
// fields are empty strings when the provider omitted them; the provider
// does not guarantee item order, so extraction is by name.
type CallbackResult struct {
	CheckoutRequestID  string
	MerchantRequestID  string
	ResultCode         int
	ResultDesc         string
	Success            bool
	MpesaReceiptNumber string
	TransactionDate    string
	PhoneNumber        string
}

// ParseSTKCallback decodes a raw callback payload. Missing metadata
// items on a successful result leave the corresponding fields empty
// rather than failing; only a malformed body is an error.
func ParseSTKCallback(payload []byte) (*CallbackResult, error) {
	var callback STKCallbackRequest
	if err := json.Unmarshal(payload, &callback); err != nil {
		return nil, fmt.Errorf("failed to parse stk callback: %w", err)
	}

	stk := callback.Body.StkCallback
	result := &CallbackResult{
		CheckoutRequestID: stk.CheckoutRequestID,
		MerchantRequestID: stk.MerchantRequestID,
		ResultCode:        stk.ResultCode,
		ResultDesc:        stk.ResultDesc,
		Success:           stk.ResultCode == 0,
	}

	if result.Success {
		for _, item := range stk.CallbackMetadata.Item {
			switch item.Name {
			case "MpesaReceiptNumber":
				result.MpesaReceiptNumber = stringValue(item.Value)
			case "TransactionDate":
				result.TransactionDate = stringValue(item.Value)
			case "PhoneNumber":
				result.PhoneNumber = stringValue(item.Value)
			}
		}
	}

	return result, nil
}

// stringValue normalizes a metadata value. TransactionDate and
// PhoneNumber arrive as JSON numbers, the receipt as a string.
func stringValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return fmt.Sprintf("%.0f", val)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}
