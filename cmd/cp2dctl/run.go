package main

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	physics "github.com/opcode-space/cp2d"
	"github.com/opcode-space/cp2d/config"
)

func newRunCmd() *cobra.Command {
	var (
		scenePath string
		steps     int
		dt        float64
		graph     bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Step a scene file forward and report its energy",
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, err := config.Load(scenePath)
			if err != nil {
				return err
			}

			space, bodies, err := config.Build(scene)
			if err != nil {
				return err
			}

			log.WithFields(logrus.Fields{
				"scene":  scenePath,
				"bodies": len(bodies),
				"steps":  steps,
				"dt":     dt,
			}).Info("starting run")

			energy := make([]float64, 0, steps)
			for i := 0; i < steps; i++ {
				space.Step(dt)

				total := totalKineticEnergy(space)
				energy = append(energy, total)

				log.WithFields(logrus.Fields{
					"step":   i,
					"energy": total,
				}).Debug("step complete")
			}

			if graph && len(energy) > 0 {
				fmt.Println(asciigraph.Plot(energy, asciigraph.Height(10), asciigraph.Caption("kinetic energy")))
			}

			if len(energy) > 0 {
				log.WithField("final_energy", energy[len(energy)-1]).Info("run complete")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&scenePath, "scene", "", "path to a scene YAML file")
	cmd.Flags().IntVar(&steps, "steps", 600, "number of simulation steps to run")
	cmd.Flags().Float64Var(&dt, "dt", 1.0/60.0, "timestep in seconds")
	cmd.Flags().BoolVar(&graph, "graph", true, "print an ASCII sparkline of total kinetic energy")
	cmd.MarkFlagRequired("scene")

	return cmd
}

func totalKineticEnergy(space *physics.Space) float64 {
	var total float64
	space.EachBody(func(b *physics.Body) {
		total += b.KineticEnergy()
	})
	return total
}
