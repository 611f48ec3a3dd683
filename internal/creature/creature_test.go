package creature

import (
	"bytes"
	"strings"
	"testing"

	"cocoon/internal/types"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDroneAnnouncements(t *testing.T) {
	var buf bytes.Buffer
	d := NewDrone("larva-7", &buf)

	d.Greet()
	d.Move(types.Point{X: 3, Y: 2})

	assert.Equal(t,
		"[ZERG]: I'm drone named larva-7\n"+
			"[ZERG]: Drone moved to point (3.0, 2.0)\n",
		buf.String())
	assert.Equal(t, types.FactionZerg, d.Faction())
}

func TestMarineAnnouncements(t *testing.T) {
	var buf bytes.Buffer
	m := NewMarine("Jim Raynor", &buf)

	m.Greet()
	m.Move(types.Point{X: -1.5, Y: 4})

	assert.Equal(t,
		"[TERRAN]: I'm terran Jim Raynor\n"+
			"[TERRAN]: Marine moved to (-1.5, 4.0)\n",
		buf.String())
	assert.Equal(t, types.FactionTerran, m.Faction())
}

func TestDroneCreatorUniqueNames(t *testing.T) {
	creator := NewDroneCreator(&bytes.Buffer{})

	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		d := creator.Create()
		_, err := uuid.Parse(d.Name())
		require.NoError(t, err, "drone name should be a UUID")
		require.False(t, seen[d.Name()], "duplicate drone name %s", d.Name())
		seen[d.Name()] = true
	}
}

func TestDroneCreatorReturnsFreshInstances(t *testing.T) {
	creator := NewDroneCreator(&bytes.Buffer{})
	assert.NotSame(t, creator.Create(), creator.Create())
}

func TestMarineCreatorUsesCallerName(t *testing.T) {
	var buf bytes.Buffer
	creator := NewMarineCreator("Tychus", &buf)

	a := creator.Create()
	b := creator.Create()

	assert.Equal(t, "Tychus", a.Name())
	assert.Equal(t, "Tychus", b.Name())
	assert.NotSame(t, a, b)

	a.Greet()
	assert.True(t, strings.HasPrefix(buf.String(), "[TERRAN]: I'm terran Tychus"))
}

func TestNilWriterFallsBackToStdout(t *testing.T) {
	d := NewDrone("x", nil)
	assert.NotNil(t, d.out)
	m := NewMarine("y", nil)
	assert.NotNil(t, m.out)
}
