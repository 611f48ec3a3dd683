package creature

import (
	"io"

	"cocoon/internal/logging"
	"cocoon/internal/types"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DroneCreator hatches drones, each with a fresh UUID for a name.
type DroneCreator struct {
	out io.Writer
}

// NewDroneCreator returns a creator whose drones announce on out.
func NewDroneCreator(out io.Writer) *DroneCreator {
	return &DroneCreator{out: out}
}

// Create returns a new drone with a name no other drone shares.
func (c *DroneCreator) Create() *Drone {
	d := NewDrone(uuid.NewString(), c.out)
	logging.Get(logging.CategoryCreature).Debug("drone created", zap.String("name", d.name))
	return d
}

// MarineCreator hatches marines under a fixed, caller-supplied name.
type MarineCreator struct {
	name string
	out  io.Writer
}

// NewMarineCreator returns a creator whose marines are called name and
// announce on out.
func NewMarineCreator(name string, out io.Writer) *MarineCreator {
	return &MarineCreator{name: name, out: out}
}

// Create returns a new marine.
func (c *MarineCreator) Create() *Marine {
	m := NewMarine(c.name, c.out)
	logging.Get(logging.CategoryCreature).Debug("marine created", zap.String("name", m.name))
	return m
}

var (
	_ types.Creator[*Drone]  = (*DroneCreator)(nil)
	_ types.Creator[*Marine] = (*MarineCreator)(nil)
)
