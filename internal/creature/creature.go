// Package creature implements the concrete creatures a cocoon can hatch and
// the creators that manufacture them.
package creature

import (
	"fmt"
	"io"
	"os"

	"cocoon/internal/types"
)

// Drone is the Zerg worker. Its name is assigned by DroneCreator.
type Drone struct {
	name string
	out  io.Writer
}

// NewDrone creates a drone that announces itself on out (stdout when nil).
func NewDrone(name string, out io.Writer) *Drone {
	return &Drone{name: name, out: writerOrStdout(out)}
}

// Name returns the drone's identity.
func (d *Drone) Name() string { return d.name }

// Faction returns types.FactionZerg.
func (d *Drone) Faction() types.Faction { return types.FactionZerg }

// Greet announces the drone.
func (d *Drone) Greet() {
	fmt.Fprintf(d.out, "%s: I'm drone named %s\n", types.FactionZerg.Tag(), d.name)
}

// Move announces the drone's destination.
func (d *Drone) Move(to types.Point) {
	fmt.Fprintf(d.out, "%s: Drone moved to point %s\n", types.FactionZerg.Tag(), to)
}

// Marine is the Terran infantry unit. Its name is chosen by the caller.
type Marine struct {
	name string
	out  io.Writer
}

// NewMarine creates a marine that announces itself on out (stdout when nil).
func NewMarine(name string, out io.Writer) *Marine {
	return &Marine{name: name, out: writerOrStdout(out)}
}

// Name returns the marine's identity.
func (m *Marine) Name() string { return m.name }

// Faction returns types.FactionTerran.
func (m *Marine) Faction() types.Faction { return types.FactionTerran }

// Greet announces the marine.
func (m *Marine) Greet() {
	fmt.Fprintf(m.out, "%s: I'm terran %s\n", types.FactionTerran.Tag(), m.name)
}

// Move announces the marine's destination.
func (m *Marine) Move(to types.Point) {
	fmt.Fprintf(m.out, "%s: Marine moved to %s\n", types.FactionTerran.Tag(), to)
}

func writerOrStdout(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}

var (
	_ types.Creature = (*Drone)(nil)
	_ types.Creature = (*Marine)(nil)
)
