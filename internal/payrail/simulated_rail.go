package payrail

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

var simNamespace = uuid.MustParse("6f1f6c52-2d0e-4b7a-9d55-3c1b9a1f0e21")

// SimulatedRail never leaves the process. The transfer id is derived from
// the idempotency key so a replay yields the same id.
type SimulatedRail struct{}

func (SimulatedRail) Name() string { return "simulated" }

func (SimulatedRail) Transfer(ctx context.Context, req TransferRequest) (TransferResult, error) {
	if err := ctx.Err(); err != nil {
		return TransferResult{}, err
	}
	id := uuid.NewSHA1(simNamespace, []byte(req.IdempotencyKey)).String()
	return TransferResult{TransferID: "sim_" + strings.ReplaceAll(id, "-", "")[:24]}, nil
}
