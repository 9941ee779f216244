package utils

import (
	"net/http"

	"bloomfundr-settlement/internal/constant"
)

// Response is the envelope returned by every JSON endpoint.
type Response struct {
	Code    int         `json:"code"`
	Msg     string      `json:"msg"`
	MsgEN   string      `json:"msg_en,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
}

func Success(data interface{}) Response {
	return Response{
		Code:  constant.CodeSuccess,
		Msg:   "成功",
		MsgEN: "Success",
		Data:  data,
	}
}

// Error builds a response from the message table.
func Error(code int) Response {
	return ErrorWithData(code, nil)
}

func ErrorWithData(code int, data interface{}) Response {
	if info, exists := constant.GetErrorInfo(code); exists {
		return Response{
			Code:  code,
			Msg:   info.CN,
			MsgEN: info.EN,
			Data:  data,
		}
	}
	return Response{
		Code:  code,
		Msg:   "未知错误",
		MsgEN: "Unknown error",
		Data:  data,
	}
}

// FromError picks the first constant.Error in the chain; anything else is
// reported as a system error.
func FromError(err error) (int, Response) {
	if code, ok := constant.CodeOf(err); ok {
		return HTTPStatus(code), Error(code)
	}
	return http.StatusInternalServerError, Error(constant.CodeSystemError)
}

// HTTPStatus maps a business code to the transport status.
func HTTPStatus(code int) int {
	switch code {
	case constant.CodeSuccess:
		return http.StatusOK
	case constant.CodeInvalidParams, constant.CodeMissingParams, constant.CodeParamsRangeError:
		return http.StatusBadRequest
	case constant.CodeUnauthorized, constant.CodeTokenInvalid, constant.CodeSignatureError:
		return http.StatusUnauthorized
	case constant.CodeAccessDenied:
		return http.StatusForbidden
	case constant.CodeOrderNotFound, constant.CodeCampaignNotFound, constant.CodeRecipientNotFound:
		return http.StatusNotFound
	case constant.CodeOrderStatusInvalid, constant.CodeOrderRefunded, constant.CodeDuplicateRequest:
		return http.StatusConflict
	case constant.CodeTimeout:
		return http.StatusGatewayTimeout
	case constant.CodeServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
