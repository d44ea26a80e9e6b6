package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleScene = `
gravity: [0, -100]
damping: 0.99
iterations: 12

bodies:
  - name: ground
    type: static
    shapes:
      - type: segment
        a: [-50, 0]
        b: [50, 0]
        friction: 1

  - name: ball
    mass: 1
    moment: 1
    position: [0, 10]
    shapes:
      - type: circle
        radius: 1
        elasticity: 0.5
        friction: 0.8

constraints:
  - type: pin
    body_a: ground
    body_b: ball
    anchor_a: [0, 0]
    anchor_b: [0, 0]
`

func writeScene(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadParsesSceneDocument(t *testing.T) {
	path := writeScene(t, sampleScene)

	scene, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, [2]float64{0, -100}, scene.Gravity)
	require.Equal(t, 12, scene.Iterations)
	require.Len(t, scene.Bodies, 2)
	require.Equal(t, "ground", scene.Bodies[0].Name)
	require.Len(t, scene.Constraints, 1)
	require.Equal(t, "pin", scene.Constraints[0].Type)
}

func TestLoadDefaultsIterationsWhenOmitted(t *testing.T) {
	path := writeScene(t, "gravity: [0, -10]\nbodies: []\n")

	scene, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 10, scene.Iterations)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestConstraintConfigCollideBodiesDefaultsTrue(t *testing.T) {
	cc := ConstraintConfig{}
	require.True(t, cc.collideBodies())

	f := false
	cc.CollideBodies = &f
	require.False(t, cc.collideBodies())
}
