package payrail

import "context"

// Observer is told the outcome of every transfer.
type Observer interface {
	Observe(ctx context.Context, rail string, success bool) error
}

// ObservedRail reports each transfer outcome to an Observer. Observer errors
// are dropped; they never change the transfer result.
type ObservedRail struct {
	Rail     Rail
	Observer Observer
}

func (o ObservedRail) Name() string { return o.Rail.Name() }

func (o ObservedRail) Transfer(ctx context.Context, req TransferRequest) (TransferResult, error) {
	res, err := o.Rail.Transfer(ctx, req)
	if o.Observer != nil {
		_ = o.Observer.Observe(context.WithoutCancel(ctx), o.Rail.Name(), err == nil)
	}
	return res, err
}
