package settlement

import (
	"bloomfundr-settlement/internal/dto"
	"bloomfundr-settlement/internal/utils"

	"github.com/shopspring/decimal"
)

// CalculateShares splits subtotal minus both stored fees between the two
// recipients in proportion to their margins. The margins are normalised
// against their own sum, not against 100. Each share is rounded to cents
// on its own, so the pair may miss the pool by one cent.
func CalculateShares(subtotal, processingFee, platformFee, floristPct, organizationPct decimal.Decimal) dto.Shares {
	available := subtotal.Sub(processingFee).Sub(platformFee)
	shares := dto.Shares{
		Available:    available,
		Florist:      decimal.Zero,
		Organization: decimal.Zero,
	}

	weight := floristPct.Add(organizationPct)
	if weight.Sign() <= 0 {
		return shares
	}
	shares.Florist = utils.RoundCents(available.Mul(floristPct).Div(weight))
	shares.Organization = utils.RoundCents(available.Mul(organizationPct).Div(weight))
	return shares
}
