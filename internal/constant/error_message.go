package constant

// ErrorInfo carries the CN and EN text for a code.
type ErrorInfo struct {
	CN string `json:"cn"`
	EN string `json:"en"`
}

// ErrorMessages maps every code to its display text.
var ErrorMessages = map[int]ErrorInfo{
	CodeSuccess:            {"操作成功", "Success"},
	CodeSystemError:        {"系统错误", "System error"},
	CodeDatabaseError:      {"数据库错误", "Database error"},
	CodeRedisError:         {"缓存服务错误", "Cache error"},
	CodeInternalError:      {"内部服务错误", "Internal error"},
	CodeServiceUnavailable: {"服务暂时不可用", "Service unavailable"},
	CodeTimeout:            {"请求处理超时", "Request timeout"},

	CodeInvalidParams:    {"参数格式错误", "Invalid parameters"},
	CodeMissingParams:    {"缺少必要参数", "Missing parameters"},
	CodeParamsRangeError: {"参数范围错误", "Parameter out of range"},
	CodeDuplicateRequest: {"重复请求", "Duplicate request"},

	CodeUnauthorized:   {"未授权访问", "Unauthorized"},
	CodeTokenInvalid:   {"Token无效", "Invalid token"},
	CodeSignatureError: {"签名验证失败", "Signature verification failed"},
	CodeAccessDenied:   {"访问权限不足", "Access denied"},

	CodeOrderNotFound:      {"订单不存在", "Order not found"},
	CodeOrderStatusInvalid: {"订单状态无效", "Order status invalid"},
	CodeOrderPaid:          {"订单已支付", "Order already paid"},
	CodeOrderRefunded:      {"订单已退款", "Order already refunded"},

	CodeCampaignNotFound:  {"活动不存在", "Campaign not found"},
	CodeRecipientNotFound: {"收款方不存在", "Payout recipient not found"},

	CodePaymentFailed:     {"支付失败", "Payment failed"},
	CodePaymentEventError: {"支付事件无法解析", "Payment event invalid"},

	CodeSettlementFailed:    {"结算失败", "Settlement failed"},
	CodeTransferFailed:      {"分账转账失败", "Payout transfer failed"},
	CodeReconcileFailed:     {"收益对账失败", "Earnings reconciliation failed"},
	CodeSettlementDuplicate: {"订单已结算", "Order already settled"},

	CodeNotifyFailed:    {"通知发送失败", "Notification failed"},
	CodeNotifySignError: {"通知签名验证失败", "Notification signature invalid"},
}
