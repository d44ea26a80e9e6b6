package config

import (
	"fmt"

	"github.com/pkg/errors"

	physics "github.com/opcode-space/cp2d"
)

// Build constructs a live Space (and its named bodies) from a parsed
// scene. Body names only need to be unique within the scene; they let
// constraints reference their endpoints, and Build also returns them as
// a name-to-body map.
func Build(scene *Scene) (*physics.Space, map[string]*physics.Body, error) {
	space := physics.NewSpace()
	space.Gravity = physics.V(scene.Gravity[0], scene.Gravity[1])
	if scene.Damping != 0 {
		space.Damping = scene.Damping
	}
	space.Iterations = scene.Iterations
	if scene.CollisionSlop != 0 {
		space.CollisionSlop = scene.CollisionSlop
	}
	if scene.CollisionBias != 0 {
		space.CollisionBias = scene.CollisionBias
	}
	if scene.CollisionPersistence != 0 {
		space.CollisionPersistence = scene.CollisionPersistence
	}

	bodies := make(map[string]*physics.Body, len(scene.Bodies))

	for i, bc := range scene.Bodies {
		body, err := buildBody(bc)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "body %d (%q)", i, bc.Name)
		}
		space.AddBody(body)

		for j, sc := range bc.Shapes {
			shape, err := buildShape(body, sc)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "body %d (%q) shape %d", i, bc.Name, j)
			}
			space.AddShape(shape)
		}

		if bc.Name != "" {
			if _, dup := bodies[bc.Name]; dup {
				return nil, nil, errors.Errorf("duplicate body name %q", bc.Name)
			}
			bodies[bc.Name] = body
		}
	}

	for i, cc := range scene.Constraints {
		c, err := buildConstraint(bodies, cc)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "constraint %d (%s)", i, cc.Type)
		}
		space.AddConstraint(c)
	}

	return space, bodies, nil
}

func buildBody(bc BodyConfig) (*physics.Body, error) {
	var body *physics.Body
	switch bc.Type {
	case "", "dynamic":
		mass, moment := bc.Mass, bc.Moment
		if mass <= 0 {
			mass = 1
		}
		if moment <= 0 {
			moment = 1
		}
		body = physics.NewBody(mass, moment)
	case "kinematic":
		body = physics.NewKinematicBody()
	case "static":
		body = physics.NewStaticBody()
	default:
		return nil, errors.Errorf("unknown body type %q", bc.Type)
	}

	body.SetPosition(physics.V(bc.Position[0], bc.Position[1]))
	body.SetAngle(bc.Angle)
	body.SetVelocity(physics.V(bc.Velocity[0], bc.Velocity[1]))

	return body, nil
}

func buildShape(body *physics.Body, sc ShapeConfig) (*physics.Shape, error) {
	var shape *physics.Shape
	switch sc.Type {
	case "circle":
		shape = physics.NewCircleShape(body, sc.Radius, physics.V(sc.Offset[0], sc.Offset[1]))
	case "segment":
		shape = physics.NewSegmentShape(body,
			physics.V(sc.A[0], sc.A[1]), physics.V(sc.B[0], sc.B[1]), sc.LineWidth)
	case "polygon":
		if sc.BoxWidth != 0 || sc.BoxHeight != 0 {
			shape = physics.NewBoxShape(body, sc.BoxWidth, sc.BoxHeight, sc.LineWidth)
		} else {
			if len(sc.Vertices) < 3 {
				return nil, errors.New("polygon shape needs at least 3 vertices")
			}
			verts := make([]physics.Vector, len(sc.Vertices))
			for i, v := range sc.Vertices {
				verts[i] = physics.V(v[0], v[1])
			}
			shape = physics.NewPolygonShape(body, verts, sc.LineWidth)
		}
	default:
		return nil, errors.Errorf("unknown shape type %q", sc.Type)
	}

	shape.SetElasticity(sc.Elasticity)
	shape.SetFriction(sc.Friction)
	shape.SetSensor(sc.Sensor)
	shape.SetCollisionType(sc.CollisionType)

	if sc.Categories != 0 || sc.Mask != 0 || sc.Group != 0 {
		categories, mask := sc.Categories, sc.Mask
		if categories == 0 {
			categories = physics.AllCategories
		}
		if mask == 0 {
			mask = physics.AllCategories
		}
		shape.SetFilter(physics.ShapeFilter{Group: sc.Group, Categories: categories, Mask: mask})
	}

	return shape, nil
}

func buildConstraint(bodies map[string]*physics.Body, cc ConstraintConfig) (*physics.Constraint, error) {
	a, err := lookupBody(bodies, cc.BodyA)
	if err != nil {
		return nil, err
	}
	b, err := lookupBody(bodies, cc.BodyB)
	if err != nil {
		return nil, err
	}

	anchorA := physics.V(cc.AnchorA[0], cc.AnchorA[1])
	anchorB := physics.V(cc.AnchorB[0], cc.AnchorB[1])

	var c *physics.Constraint
	switch cc.Type {
	case "pin":
		c = physics.NewPinJoint(a, b, anchorA, anchorB)
	case "slide":
		c = physics.NewSlideJoint(a, b, anchorA, anchorB, cc.Min, cc.Max)
	case "pivot":
		c = physics.NewPivotJoint(a, b, physics.V(cc.Pivot[0], cc.Pivot[1]))
	case "groove":
		c = physics.NewGrooveJoint(a, b,
			physics.V(cc.GrooveA[0], cc.GrooveA[1]), physics.V(cc.GrooveB[0], cc.GrooveB[1]), anchorB)
	case "damped_spring":
		c = physics.NewDampedSpring(a, b, anchorA, anchorB, cc.RestLength, cc.Stiffness, cc.Damping)
	case "damped_rotary_spring":
		c = physics.NewDampedRotarySpring(a, b, cc.RestAngle, cc.Stiffness, cc.Damping)
	case "gear":
		c = physics.NewGearJoint(a, b, cc.Phase, cc.Ratio)
	case "motor":
		c = physics.NewSimpleMotor(a, b, cc.Rate)
	default:
		return nil, errors.Errorf("unknown constraint type %q", cc.Type)
	}

	if cc.MaxForce != 0 {
		c.SetMaxForce(cc.MaxForce)
	}
	if cc.MaxBias != 0 {
		c.SetMaxBias(cc.MaxBias)
	}
	c.SetCollideBodies(cc.collideBodies())

	return c, nil
}

func lookupBody(bodies map[string]*physics.Body, name string) (*physics.Body, error) {
	b, ok := bodies[name]
	if !ok {
		return nil, fmt.Errorf("unknown body %q", name)
	}
	return b, nil
}
