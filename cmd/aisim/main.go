package main

import (
	"flag"
	"math/rand"
	"time"

	"github.com/milk9111/rcai/common"
)

func main() {
	scenario := flag.String("scenario", "scenario.yaml", "scenario prefab in prefabs/ (embedded copy used when absent on disk)")
	seconds := flag.Float64("seconds", 10, "simulated seconds to run; 0 runs until interrupted")
	level := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	watch := flag.Bool("watch", false, "reload controllers when their prefab or scripts change on disk")
	realtime := flag.Bool("realtime", false, "sleep between frames so the simulation runs at wall-clock speed")
	seed := flag.Int64("seed", 1, "random seed for collectible travel times")
	flag.Parse()

	log := common.Logger("aisim")
	if err := common.SetLevel(*level); err != nil {
		log.WithError(err).Fatal("bad log level")
	}

	sim, err := newSim(*scenario, rand.New(rand.NewSource(*seed)))
	if err != nil {
		log.WithError(err).Fatal("failed to build scenario")
	}

	if *watch {
		if err := sim.watch(); err != nil {
			log.WithError(err).Warn("hot reload disabled")
		} else {
			defer sim.close()
			*realtime = true
		}
	}

	frames := int(*seconds * sim.tickRate)
	tick := time.Duration(float64(time.Second) / sim.tickRate)
	for i := 0; frames <= 0 || i < frames; i++ {
		sim.step()
		if *realtime {
			time.Sleep(tick)
		}
	}

	sim.summary()
}
