package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildConstructsSpaceWithNamedBodiesAndPinJoint(t *testing.T) {
	scene := &Scene{
		Gravity:    [2]float64{0, -100},
		Iterations: 8,
		Bodies: []BodyConfig{
			{
				Name: "ground",
				Type: "static",
				Shapes: []ShapeConfig{
					{Type: "segment", A: [2]float64{-50, 0}, B: [2]float64{50, 0}},
				},
			},
			{
				Name:     "ball",
				Mass:     1,
				Moment:   1,
				Position: [2]float64{0, 10},
				Shapes: []ShapeConfig{
					{Type: "circle", Radius: 1},
				},
			},
		},
		Constraints: []ConstraintConfig{
			{Type: "pin", BodyA: "ground", BodyB: "ball"},
		},
	}

	space, bodies, err := Build(scene)
	require.NoError(t, err)
	require.Len(t, bodies, 2)
	require.Contains(t, bodies, "ground")
	require.Contains(t, bodies, "ball")
	require.Equal(t, 8, space.Iterations)
	require.Equal(t, -100.0, space.Gravity.Y)
}

func TestBuildRejectsUnknownBodyReference(t *testing.T) {
	scene := &Scene{
		Bodies: []BodyConfig{{Name: "only"}},
		Constraints: []ConstraintConfig{
			{Type: "pin", BodyA: "only", BodyB: "missing"},
		},
	}

	_, _, err := Build(scene)
	require.Error(t, err)
}

func TestBuildRejectsUnknownShapeType(t *testing.T) {
	scene := &Scene{
		Bodies: []BodyConfig{
			{Name: "b", Shapes: []ShapeConfig{{Type: "triangle-of-mystery"}}},
		},
	}

	_, _, err := Build(scene)
	require.Error(t, err)
}

func TestBuildDefaultsDynamicMassAndMoment(t *testing.T) {
	scene := &Scene{
		Bodies: []BodyConfig{{Name: "falling"}},
	}

	_, bodies, err := Build(scene)
	require.NoError(t, err)
	require.Equal(t, 1.0, bodies["falling"].Mass())
	require.Equal(t, 1.0, bodies["falling"].Moment())
}
