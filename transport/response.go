package transport

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/muhammadheryan/commerce-engine/constant"
	"github.com/muhammadheryan/commerce-engine/utils/errors"
	"github.com/muhammadheryan/commerce-engine/utils/logger"
	"go.uber.org/zap"
)

// Response is the envelope of every JSON response.
type Response struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Data    interface{}  `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail carries the cause of a failed request. Requested and
// Available are set for stock shortages.
type ErrorDetail struct {
	Reason    string `json:"reason,omitempty"`
	Requested *int64 `json:"requested,omitempty"`
	Available *int64 `json:"available,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("[writeJSON] encode response", zap.String("error", err.Error()))
	}
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, Response{
		Code:    constant.ErrorTypeCode[constant.Successful],
		Message: constant.ErrorTypeMessage[constant.Successful],
		Data:    data,
	})
}

// writeError renders err. Errors that are not CustomError are reported as
// internal errors without exposing their text.
func writeError(w http.ResponseWriter, err error) {
	var ce errors.CustomError
	if !stderrors.As(err, &ce) {
		logger.Error("[writeError] unexpected error", zap.String("error", err.Error()))
		ce = errors.SetCustomError(constant.ErrInternal)
	}

	resp := Response{
		Code:    ce.ErrorCode(),
		Message: constant.ErrorTypeMessage[ce.ErrorType()],
	}
	detail := &ErrorDetail{Reason: ce.Reason()}
	if ce.ErrorType() == constant.ErrInsufficientStock {
		requested, available := ce.Quantities()
		detail.Requested = &requested
		detail.Available = &available
	}
	if detail.Reason != "" || detail.Requested != nil {
		resp.Error = detail
	}

	writeJSON(w, ce.ErrorHTTPCode(), resp)
}
