package main

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/rcai/ai"
	"github.com/milk9111/rcai/clock"
	"github.com/milk9111/rcai/collect"
	"github.com/milk9111/rcai/common"
	"github.com/milk9111/rcai/ecs"
	"github.com/milk9111/rcai/ecs/component"
	"github.com/milk9111/rcai/ecs/entity"
	"github.com/milk9111/rcai/ecs/system"
	"github.com/milk9111/rcai/prefabs"
)

type scheduledStimulus struct {
	at         float64
	controller string
	stimulus   ai.Stimulus
}

type sim struct {
	world    *ecs.World
	clock    *clock.FrameClock
	sched    *ecs.Scheduler
	scenario *entity.Scenario
	tickRate float64
	stimuli  []scheduledStimulus
	watcher  *prefabs.Watcher
	log      *logrus.Entry
}

func newSim(name string, rng collect.Rand) (*sim, error) {
	spec, err := prefabs.LoadScenarioSpec(name)
	if err != nil {
		return nil, err
	}

	stimuli := make([]scheduledStimulus, 0, len(spec.Stimuli))
	for _, st := range spec.Stimuli {
		sense, err := ai.ParseSense(st.Sense)
		if err != nil {
			return nil, err
		}
		stimuli = append(stimuli, scheduledStimulus{
			at:         st.At,
			controller: st.Controller,
			stimulus:   ai.Stimulus{Target: "scripted", Sensed: st.Sensed, Sense: sense},
		})
	}
	sort.SliceStable(stimuli, func(i, j int) bool { return stimuli[i].at < stimuli[j].at })

	w := ecs.NewWorld()
	fc := clock.NewFrameClock()
	sc, err := entity.BuildScenario(w, spec, fc, rng)
	if err != nil {
		return nil, err
	}

	dt := 1 / spec.TickRate
	s := &sim{
		world:    w,
		clock:    fc,
		scenario: sc,
		tickRate: spec.TickRate,
		stimuli:  stimuli,
		sched: ecs.NewScheduler(
			system.NewWaypointSystem(dt),
			system.NewSightSystem(),
			system.NewAISystem(),
			system.NewPatrolSystem(dt),
			system.NewCollectibleSystem(),
		),
		log: common.Logger("aisim"),
	}
	s.log.WithFields(logrus.Fields{
		"scenario":     spec.Name,
		"controllers":  len(sc.Controllers),
		"collectibles": len(sc.Collectibles),
	}).Info("scenario loaded")
	return s, nil
}

func (s *sim) step() {
	s.clock.Advance(1 / s.tickRate)
	s.deliverStimuli()
	s.reload()
	s.sched.Update(s.world)
	for _, ev := range s.world.Events().Drain() {
		s.report(ev)
	}
}

func (s *sim) deliverStimuli() {
	now := s.clock.Now()
	for len(s.stimuli) > 0 && s.stimuli[0].at <= now {
		st := s.stimuli[0]
		s.stimuli = s.stimuli[1:]

		e, ok := s.scenario.Controllers[st.controller]
		if !ok {
			s.log.WithField("controller", st.controller).Warn("stimulus for unknown controller")
			continue
		}
		q, ok := ecs.Get(s.world, e, component.PerceptionQueueComponent.Kind())
		if !ok {
			continue
		}
		q.Stimuli = append(q.Stimuli, st.stimulus)
	}
}

func (s *sim) report(ev ecs.Event) {
	fields := logrus.Fields{"t": s.clock.Now(), "entity": ev.Entity}
	switch data := ev.Data.(type) {
	case ai.StateChange:
		fields["controller"] = data.Controller
		fields["from"] = data.From
		fields["to"] = data.To
		fields["outcome"] = data.Outcome
	case system.CollectedEvent:
		fields["collector"] = data.Collector
		fields["amount"] = data.Amount
	}
	s.log.WithFields(fields).Info(ev.Type)
}

func (s *sim) watch() error {
	w, err := prefabs.WatchPrefabs()
	if err != nil {
		return err
	}
	s.watcher = w
	s.log.WithField("dir", prefabs.Dir).Info("watching prefabs")
	return nil
}

func (s *sim) close() {
	if s.watcher != nil {
		_ = s.watcher.Close()
	}
}

// reload applies any pending prefab changes without blocking the frame.
func (s *sim) reload() {
	if s.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-s.watcher.Events:
			if !ok {
				s.watcher = nil
				return
			}
			s.reloadPrefab(name)
		case err, ok := <-s.watcher.Errors:
			if ok {
				s.log.WithError(err).Warn("prefab watcher error")
			}
		default:
			return
		}
	}
}

func (s *sim) reloadPrefab(name string) {
	prefab := name
	if strings.HasPrefix(filepath.ToSlash(name), "scripts/") {
		// scripts are compiled into transitions, so every controller rebuilds
		prefab = ""
	}

	replaced, err := entity.ReloadAIControllers(s.world, prefab, s.clock)
	for old, fresh := range replaced {
		for ctrlName, e := range s.scenario.Controllers {
			if e == old {
				s.scenario.Controllers[ctrlName] = fresh
			}
		}
	}
	if err != nil {
		s.log.WithError(err).WithField("file", name).Warn("reload failed")
		return
	}
	if len(replaced) > 0 {
		s.log.WithFields(logrus.Fields{"file": name, "controllers": len(replaced)}).Info("reloaded controllers")
	}
}

func (s *sim) summary() {
	names := make([]string, 0, len(s.scenario.Controllers))
	for name := range s.scenario.Controllers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ac, ok := ecs.Get(s.world, s.scenario.Controllers[name], component.AIControllerComponent.Kind())
		if !ok {
			continue
		}
		s.log.WithFields(logrus.Fields{
			"controller": name,
			"state":      ac.Controller.State(),
			"sight":      ac.Controller.Sight().Radius,
		}).Info("final state")
	}

	if counter, ok := ecs.Get(s.world, s.scenario.Player, component.CollectibleCounterComponent.Kind()); ok {
		s.log.WithField("collected", counter.Count).Info("player")
	}
}
