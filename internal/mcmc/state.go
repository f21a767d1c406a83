package mcmc

// State is a point in phase space together with the potential energy and
// gradient at its position. The energy and gradient are recomputed
// whenever the position changes, so they are always consistent.
type State struct {
	Position          Vars
	Momentum          Vars
	PotentialEnergy   float64
	PotentialGradient Vars
}

// NewState evaluates the potential at pos and returns a state with zero
// momentum. Momentum is drawn fresh at the start of each transition.
func NewState(pos Vars, pot Potential) State {
	return State{
		Position:          pos.Clone(),
		Momentum:          pos.Scale(0),
		PotentialEnergy:   pot.Energy(pos),
		PotentialGradient: pot.Gradient(pos),
	}
}

// WithMomentum returns a copy of s carrying the given momentum.
func (s State) WithMomentum(p Vars) State {
	s.Momentum = p
	return s
}

// FlipMomentum negates the momentum, leaving position, energy and
// gradient untouched. Applied to the trajectory endpoint so the proposal
// is evaluated on a time-reversible map.
func (s State) FlipMomentum() State {
	s.Momentum = s.Momentum.Negate()
	return s
}
