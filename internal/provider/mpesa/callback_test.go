// internal/provider/mpesa/callback_test.go
package mpesa

import "testing"

func TestParseSTKCallbackSuccess(t *testing.T) {
	// Metadata items deliberately out of the usual order; numeric values
	// arrive as JSON numbers.
	payload := []byte(`{
		"Body": {
			"stkCallback": {
				"MerchantRequestID": "29115-34620561-1",
				"CheckoutRequestID": "ws_CO_191220191020363925",
				"ResultCode": 0,
				"ResultDesc": "The service request is processed successfully.",
				"CallbackMetadata": {
					"Item": [
						{"Name": "PhoneNumber", "Value": 254712345678},
						{"Name": "Amount", "Value": 2500.00},
						{"Name": "TransactionDate", "Value": 20250601143045},
						{"Name": "MpesaReceiptNumber", "Value": "NLJ7RT61SV"}
					]
				}
			}
		}
	}`)

	result, err := ParseSTKCallback(payload)
	if err != nil {
		t.Fatalf("ParseSTKCallback: %v", err)
	}

	if !result.Success {
		t.Error("Success = false, want true")
	}
	if result.CheckoutRequestID != "ws_CO_191220191020363925" {
		t.Errorf("CheckoutRequestID = %q", result.CheckoutRequestID)
	}
	if result.ResultCode != 0 {
		t.Errorf("ResultCode = %d, want 0", result.ResultCode)
	}
	if result.MpesaReceiptNumber != "NLJ7RT61SV" {
		t.Errorf("MpesaReceiptNumber = %q", result.MpesaReceiptNumber)
	}
	if result.TransactionDate != "20250601143045" {
		t.Errorf("TransactionDate = %q", result.TransactionDate)
	}
	if result.PhoneNumber != "254712345678" {
		t.Errorf("PhoneNumber = %q", result.PhoneNumber)
	}
}

func TestParseSTKCallbackFailure(t *testing.T) {
	payload := []byte(`{
		"Body": {
			"stkCallback": {
				"MerchantRequestID": "29115-34620561-1",
				"CheckoutRequestID": "ws_CO_191220191020363925",
				"ResultCode": 1032,
				"ResultDesc": "Request cancelled by user"
			}
		}
	}`)

	result, err := ParseSTKCallback(payload)
	if err != nil {
		t.Fatalf("ParseSTKCallback: %v", err)
	}

	if result.Success {
		t.Error("Success = true, want false")
	}
	if result.ResultCode != 1032 {
		t.Errorf("ResultCode = %d, want 1032", result.ResultCode)
	}
	if result.ResultDesc != "Request cancelled by user" {
		t.Errorf("ResultDesc = %q", result.ResultDesc)
	}
	if result.MpesaReceiptNumber != "" {
		t.Errorf("MpesaReceiptNumber = %q, want empty", result.MpesaReceiptNumber)
	}
}

func TestParseSTKCallbackSuccessMissingMetadata(t *testing.T) {
	payload := []byte(`{
		"Body": {
			"stkCallback": {
				"MerchantRequestID": "29115-34620561-1",
				"CheckoutRequestID": "ws_CO_191220191020363925",
				"ResultCode": 0,
				"ResultDesc": "The service request is processed successfully."
			}
		}
	}`)

	result, err := ParseSTKCallback(payload)
	if err != nil {
		t.Fatalf("ParseSTKCallback: %v", err)
	}

	if !result.Success {
		t.Error("Success = false, want true")
	}
	if result.MpesaReceiptNumber != "" || result.TransactionDate != "" || result.PhoneNumber != "" {
		t.Errorf("metadata fields not empty: %+v", result)
	}
}

func TestParseSTKCallbackMalformed(t *testing.T) {
	if _, err := ParseSTKCallback([]byte(`{not json`)); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
