// projectile plots the flight of a projectile under gravity and wind.
package main

import (
	"context"
	"flag"

	"phongtracer/canvas"
	"phongtracer/output"
	"phongtracer/rgb"
	"phongtracer/vmath/vec4"

	"github.com/golang/glog"
)

var (
	outputFile = flag.String("output", "projectile.ppm", "Where to write the PPM image.  Local path or gs://bucket/object.")
	width      = flag.Int("width", 900, "Canvas columns")
	height     = flag.Int("height", 550, "Canvas rows")
	speed      = flag.Float64("speed", 11.25, "Launch speed")
	gravity    = flag.Float64("gravity", -0.1, "Gravity along y per tick")
	wind       = flag.Float64("wind", -0.01, "Wind along x per tick")
)

type Environment struct {
	Gravity vec4.T
	Wind    vec4.T
}

type Projectile struct {
	Position vec4.T
	Velocity vec4.T
}

// Tick advances p by one time step.
func Tick(env Environment, p Projectile) Projectile {
	return Projectile{
		Position: vec4.AddVV(p.Position, p.Velocity),
		Velocity: vec4.AddVV(vec4.AddVV(p.Velocity, env.Gravity), env.Wind),
	}
}

// Simulate plots p on c, with y pointing up, until it reaches the ground.  It
// returns the number of ticks taken.  maxTicks bounds flights that never land.
func Simulate(env Environment, p Projectile, c *canvas.Canvas, col rgb.T, maxTicks int) int {
	ticks := 0
	for p.Position.Y() > 0 && ticks < maxTicks {
		c.WritePixel(int(p.Position.X()), c.Height-int(p.Position.Y()), col)
		p = Tick(env, p)
		ticks++
	}
	return ticks
}

func main() {
	flag.Parse()

	glog.CopyStandardLogTo("INFO")
	defer glog.Flush()

	glog.Infof("output: %q", *outputFile)

	p := Projectile{
		Position: vec4.Point(0, 200, 0),
		Velocity: vec4.MulVS(vec4.Normalize(vec4.Vector(1, 0, 0)), *speed),
	}
	env := Environment{
		Gravity: vec4.Vector(0, *gravity, 0),
		Wind:    vec4.Vector(*wind, 0, 0),
	}

	c := canvas.New(*width, *height)
	ticks := Simulate(env, p, c, rgb.New(0, 1, 0), 100000)
	glog.Infof("Projectile crashed after %d ticks", ticks)

	if err := output.WriteFile(context.Background(), *outputFile, c.WritePPM); err != nil {
		glog.Fatalf("Error writing image: %v", err)
	}
}
