package profile

import (
	errorsmod "cosmossdk.io/errors"
)

// Codespace is the codespace of every error registered by rhoprof.
const Codespace = "rhoprof"

var (
	// ErrOverrun is returned when a stepper fills its buffer before reaching
	// the surface. Generators retry it with a larger step.
	ErrOverrun = errorsmod.Register(Codespace, 2, "integration overran its buffer")
	// ErrStepLimit is returned when step doubling fails to fit a profile
	// into its buffer.
	ErrStepLimit = errorsmod.Register(Codespace, 3, "step-doubling limit exceeded")
	// ErrNoConvergence is returned when the central density search fails.
	ErrNoConvergence = errorsmod.Register(Codespace, 4, "central density did not converge")
	// ErrStable is returned for Bonnor-Ebert spheres below the critical
	// density contrast.
	ErrStable          = errorsmod.Register(Codespace, 5, "sphere is below the critical density contrast")
	ErrBadParameter    = errorsmod.Register(Codespace, 6, "invalid physical parameter")
	ErrDataUnavailable = errorsmod.Register(Codespace, 7, "input table unavailable")
	ErrOutOfRange      = errorsmod.Register(Codespace, 8, "value outside the integrated range")
)
