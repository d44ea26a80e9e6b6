// Package config loads simulation scenes from YAML, the on-disk format
// used by the cp2dctl command line tool and by integration tests that
// want a readable fixture instead of hand-built Go literals.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Scene is the top-level YAML document: world tuning plus the bodies and
// constraints to populate it with.
type Scene struct {
	Gravity    [2]float64 `yaml:"gravity"`
	Damping    float64    `yaml:"damping"`
	Iterations int        `yaml:"iterations"`

	CollisionSlop        float64 `yaml:"collision_slop"`
	CollisionBias        float64 `yaml:"collision_bias"`
	CollisionPersistence uint    `yaml:"collision_persistence"`

	Bodies      []BodyConfig       `yaml:"bodies"`
	Constraints []ConstraintConfig `yaml:"constraints"`
}

// BodyConfig describes one body and the shapes attached to it.
type BodyConfig struct {
	Name string `yaml:"name"`
	// Type is one of "dynamic", "kinematic", "static". Defaults to
	// dynamic.
	Type string `yaml:"type"`

	Mass   float64 `yaml:"mass"`
	Moment float64 `yaml:"moment"`

	Position [2]float64 `yaml:"position"`
	Angle    float64    `yaml:"angle"`
	Velocity [2]float64 `yaml:"velocity"`

	Shapes []ShapeConfig `yaml:"shapes"`
}

// ShapeConfig describes one shape attached to a body. Type selects which
// of circle/segment/polygon fields apply.
type ShapeConfig struct {
	// Type is one of "circle", "segment", "polygon".
	Type string `yaml:"type"`

	// circle
	Radius float64    `yaml:"radius"`
	Offset [2]float64 `yaml:"offset"`

	// segment
	A         [2]float64 `yaml:"a"`
	B         [2]float64 `yaml:"b"`
	LineWidth float64    `yaml:"line_width"`

	// polygon
	Vertices [][2]float64 `yaml:"vertices"`
	BoxWidth float64      `yaml:"box_width"`
	BoxHeight float64     `yaml:"box_height"`

	Elasticity    float64 `yaml:"elasticity"`
	Friction      float64 `yaml:"friction"`
	Sensor        bool    `yaml:"sensor"`
	CollisionType uint    `yaml:"collision_type"`

	Group      uint32 `yaml:"group"`
	Categories uint32 `yaml:"categories"`
	Mask       uint32 `yaml:"mask"`
}

// ConstraintConfig describes one constraint between two named bodies.
type ConstraintConfig struct {
	// Type is one of "pin", "slide", "pivot", "groove",
	// "damped_spring", "damped_rotary_spring", "gear", "motor".
	Type string `yaml:"type"`

	BodyA string `yaml:"body_a"`
	BodyB string `yaml:"body_b"`

	AnchorA [2]float64 `yaml:"anchor_a"`
	AnchorB [2]float64 `yaml:"anchor_b"`

	GrooveA [2]float64 `yaml:"groove_a"`
	GrooveB [2]float64 `yaml:"groove_b"`

	Pivot [2]float64 `yaml:"pivot"`

	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`

	RestLength float64 `yaml:"rest_length"`
	RestAngle  float64 `yaml:"rest_angle"`
	Stiffness  float64 `yaml:"stiffness"`
	Damping    float64 `yaml:"damping"`

	Phase float64 `yaml:"phase"`
	Ratio float64 `yaml:"ratio"`
	Rate  float64 `yaml:"rate"`

	MaxForce float64 `yaml:"max_force"`
	MaxBias  float64 `yaml:"max_bias"`

	// CollideBodies is a pointer so the YAML document can distinguish
	// "omitted" (defaults to true) from an explicit false.
	CollideBodies *bool `yaml:"collide_bodies"`
}

// collideBodies returns the constraint's collide_bodies setting,
// defaulting to true when the document didn't set it.
func (c ConstraintConfig) collideBodies() bool {
	return c.CollideBodies == nil || *c.CollideBodies
}

// Load reads and parses a scene file, defaulting iterations to 10 when
// the document omits it (a bare 0 would leave the solver doing nothing).
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading scene file %q", path)
	}

	var scene Scene
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return nil, errors.Wrapf(err, "parsing scene file %q", path)
	}

	if scene.Iterations == 0 {
		scene.Iterations = 10
	}

	return &scene, nil
}
