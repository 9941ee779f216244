package settlement

import (
	"errors"

	"bloomfundr-settlement/internal/constant"
)

// Fatal settlement errors. They are returned wrapped with the offending id;
// match them with errors.Is.
var (
	ErrOrderNotFound      = constant.NewError(constant.CodeOrderNotFound)
	ErrOrderStatusInvalid = constant.NewError(constant.CodeOrderStatusInvalid)
	ErrCampaignNotFound   = constant.NewError(constant.CodeCampaignNotFound)
	ErrRecipientNotFound  = constant.NewError(constant.CodeRecipientNotFound)
)

// IsFatal reports whether retrying the same request can never succeed.
func IsFatal(err error) bool {
	return errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrOrderStatusInvalid) ||
		errors.Is(err, ErrCampaignNotFound) ||
		errors.Is(err, ErrRecipientNotFound)
}
