/*
package integrate contains the fixed-step radial steppers used to build
profiles. Every stepper writes into caller-owned slices, reports how many
samples it wrote, and never writes past the end of those slices. A stepper
that runs out of room reports Overrun, and the caller restarts it with a
larger step using Retry.
*/
package integrate

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/phil-mansfield/rhoprof/profile"
)

// MaxDoublings is the default number of times Retry will double the step.
const MaxDoublings = 40

// Status describes how an integration ended.
type Status int

const (
	// Completed means the density reached zero inside the buffer, or, for
	// steppers without a surface, that the whole span was integrated.
	Completed Status = iota
	// Overrun means the buffer was filled before the surface was reached.
	Overrun
)

func (s Status) String() string {
	switch s {
	case Completed:
		return "Completed"
	case Overrun:
		return "Overrun"
	}
	return "Unknown"
}

// Result is the outcome of one integration.
type Result struct {
	// Npts is the number of samples written.
	Npts   int
	Status Status
}

// Err returns an error wrapping profile.ErrOverrun if the integration
// overran its buffer and nil otherwise.
func (r Result) Err() error {
	if r.Status != Overrun {
		return nil
	}
	return errorsmod.Wrapf(profile.ErrOverrun, "buffer filled after %d "+
		"samples", r.Npts)
}

// Attempt is a single integration at step size dr.
type Attempt func(dr float64) (Result, error)

// Retry calls attempt, doubling dr after every Overrun. It gives up with
// profile.ErrStepLimit after maxDoublings doublings. The step that
// succeeded is returned alongside the result.
func Retry(dr float64, maxDoublings int, attempt Attempt) (Result, float64, error) {
	var last Result
	for doublings := 0; doublings <= maxDoublings; doublings++ {
		res, err := attempt(dr)
		if err != nil {
			return Result{}, dr, err
		}
		if res.Status == Completed {
			return res, dr, nil
		}
		last = res
		dr *= 2
	}

	return Result{}, dr, errorsmod.Wrapf(profile.ErrStepLimit,
		"%s on every attempt, %d step doublings", last.Err(), maxDoublings)
}
