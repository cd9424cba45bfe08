// internal/handler/callback_handler.go
package handler

import (
	"io"
	"net/http"

	"autoparts-api/internal/usecase"

	"go.uber.org/zap"
)

type CallbackHandler struct {
	callbackUC *usecase.CallbackUsecase
	logger     *zap.Logger
}

func NewCallbackHandler(callbackUC *usecase.CallbackUsecase, logger *zap.Logger) *CallbackHandler {
	return &CallbackHandler{
		callbackUC: callbackUC,
		logger:     logger,
	}
}

// callbackAck is the acknowledgment shape the provider expects. Its
// ResultCode drives provider-side redelivery: a nonzero code is returned
// only for internal failures worth a retry, never for lookup misses.
type callbackAck struct {
	ResultCode int    `json:"ResultCode"`
	ResultDesc string `json:"ResultDesc"`
}

// HandleSTKCallback handles POST /api/mpesa/callback. Unauthenticated:
// the provider calls it directly.
func (h *CallbackHandler) HandleSTKCallback(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Error("failed to read callback payload", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, callbackAck{ResultCode: 1, ResultDesc: "Internal Server Error"})
		return
	}

	if err := h.callbackUC.ProcessSTKCallback(r.Context(), payload); err != nil {
		respondJSON(w, http.StatusInternalServerError, callbackAck{ResultCode: 1, ResultDesc: "Internal Server Error"})
		return
	}

	respondJSON(w, http.StatusOK, callbackAck{ResultCode: 0, ResultDesc: "Callback received successfully"})
}
