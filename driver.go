package dandelion

// MinStepInterval is the shortest gap between two simulation steps (60 Hz).
const MinStepInterval = 1.0 / 60.0

// Driver throttles a Simulation to at most 60 steps per second, whatever the
// host's frame rate. Calls that arrive too early are no-ops: their time is
// not lost, because the next accepted step integrates the full gap (subject
// to the simulation's own cap).
type Driver struct {
	sim      *Simulation
	lastStep float64
	stepped  bool
}

// NewDriver wraps sim. The driver becomes the simulation's only writer.
func NewDriver(sim *Simulation) *Driver {
	return &Driver{sim: sim}
}

// Simulation returns the driven simulation for read-only use.
func (d *Driver) Simulation() *Simulation {
	return d.sim
}

// Step forwards (now, windStrength) to the simulation unless less than
// MinStepInterval has passed since the last forwarded call. It reports
// whether the call was forwarded.
func (d *Driver) Step(now, windStrength float64) bool {
	if !finite(now) {
		return false
	}
	if d.stepped && now-d.lastStep < MinStepInterval {
		return false
	}
	d.lastStep = now
	d.stepped = true
	d.sim.Step(now, windStrength)
	return true
}
