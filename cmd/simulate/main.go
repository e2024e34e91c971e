// Package main runs an automated duel between two fighters described on the
// command line, equipped from the content catalog, and logs every exchange.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/steelkilt/internal/config"
	"github.com/cory-johannsen/steelkilt/internal/game/catalog"
	"github.com/cory-johannsen/steelkilt/internal/game/combat"
	"github.com/cory-johannsen/steelkilt/internal/game/dice"
	"github.com/cory-johannsen/steelkilt/internal/game/hitlocation"
	"github.com/cory-johannsen/steelkilt/internal/observability"
	"github.com/cory-johannsen/steelkilt/internal/scripting"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file; empty uses defaults")
	firstFlag := flag.String("first", "Aldric:str=9,con=6,skill=8,dodge=3,weapon=long_sword", "first fighter")
	secondFlag := flag.String("second", "Brom:con=7,skill=5,dodge=3,armor=chain", "second fighter")
	seed := flag.Uint64("seed", 0, "dice seed; overrides combat.seed when non-zero")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *seed != 0 {
		cfg.Combat.Seed = *seed
	}
	if cfg.Combat.MaxRounds == 0 {
		log.Fatalf("loading config: simulate requires combat.max_rounds > 0")
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	reg, err := catalog.LoadDirectory(cfg.Content.Dir)
	if err != nil {
		logger.Fatal("loading content", zap.Error(err))
	}
	logger.Info("content loaded",
		zap.String("dir", cfg.Content.Dir),
		zap.Int("weapons", len(reg.WeaponIDs())),
		zap.Int("armor", len(reg.ArmorIDs())),
		zap.Int("ranged", len(reg.RangedIDs())),
		zap.Int("spells", len(reg.SpellIDs())),
		zap.Int("skills", len(reg.SkillIDs())),
	)

	first, second, err := contenders(*firstFlag, *secondFlag, reg)
	if err != nil {
		logger.Fatal("building fighters", zap.Error(err))
	}
	for _, c := range []*contender{first, second} {
		logger.Info("fighter ready",
			zap.String("name", c.Name()),
			zap.String("weapon", c.Combatant.Weapon.Name),
			zap.String("armor", c.Combatant.Armor.Name),
			zap.Strings("skills", c.skillSheet()),
			zap.Int("skill_points", c.skillPoints()),
		)
	}

	if cfg.Scripting.Dir != "" {
		mgr := scripting.NewManager(dice.NewLoggedRoller(newSource(cfg.Combat.Seed, 1), logger), logger)
		defer mgr.Close()
		names, err := mgr.LoadDir(cfg.Scripting.Dir, cfg.Scripting.InstructionLimit)
		if err != nil {
			logger.Fatal("loading scripts", zap.Error(err))
		}
		logger.Info("scripts loaded", zap.Strings("scripts", names))
		if err := attachScripts(mgr, first, second); err != nil {
			logger.Fatal("attaching scripts", zap.Error(err))
		}
	}

	settings, err := sessionSettings(cfg.Combat)
	if err != nil {
		logger.Fatal("combat settings", zap.Error(err))
	}
	roller := dice.NewLoggedRoller(newSource(cfg.Combat.Seed, 0), logger)

	engine := combat.NewEngine(logger)
	id, err := engine.Start(first.Fighter, second.Fighter, roller, settings)
	if err != nil {
		logger.Fatal("starting combat", zap.Error(err))
	}

	err = engine.With(id, func(s *combat.Session) error {
		for s.Outcome() == combat.Ongoing {
			for _, e := range s.RunRound(first.next(), second.next()) {
				logEntry(logger, e)
				fmt.Println(e.Narrative)
			}
		}
		return nil
	})
	if err != nil {
		logger.Fatal("running combat", zap.Error(err))
	}

	outcome, err := engine.End(id)
	if err != nil {
		logger.Fatal("ending combat", zap.Error(err))
	}
	fmt.Printf("outcome: %s\n", outcome)
	logger.Info("simulation complete",
		zap.Stringer("outcome", outcome),
		zap.Int("rolls", roller.Rolls()),
		zap.Duration("elapsed", time.Since(start)),
	)
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.LoadFromViper(config.Defaults())
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return config.LoadFromViper(config.Defaults())
	}
	return config.Load(path)
}

// newSource returns a seeded source when seed is set, offset by stream so
// the session and the script roller draw independent sequences.
func newSource(seed, stream uint64) dice.Source {
	if seed == 0 {
		return dice.NewCryptoSource()
	}
	return dice.NewSeededSource(seed + stream)
}

func contenders(firstSpec, secondSpec string, reg *catalog.Registry) (*contender, *contender, error) {
	var out [2]*contender
	for i, spec := range []string{firstSpec, secondSpec} {
		e, err := parseEntrant(spec)
		if err != nil {
			return nil, nil, err
		}
		c, err := e.build(reg)
		if err != nil {
			return nil, nil, err
		}
		out[i] = c
	}
	return out[0], out[1], nil
}

func attachScripts(mgr *scripting.Manager, first, second *contender) error {
	for _, pair := range [][2]*contender{{first, second}, {second, first}} {
		self, opp := pair[0], pair[1]
		if self.script == "" {
			continue
		}
		if !mgr.Has(self.script) {
			return fmt.Errorf("fighter %q: unknown script %q", self.Name(), self.script)
		}
		self.Extra = append(self.Extra, mgr.Modifier(self.script, self.Combatant, opp.Combatant))
	}
	return nil
}

func sessionSettings(c config.CombatConfig) (combat.Settings, error) {
	dir, err := hitlocation.ParseDirection(c.Direction)
	if err != nil {
		return combat.Settings{}, err
	}
	arm, err := hitlocation.ParseLocation(c.WeaponArm)
	if err != nil {
		return combat.Settings{}, err
	}
	return combat.Settings{
		MaxRounds:       c.MaxRounds,
		FatiguePerRound: c.FatiguePerRound,
		HitLocations:    c.HitLocations,
		Direction:       dir,
		WeaponArm:       arm,
	}, nil
}

func logEntry(logger *zap.Logger, e combat.Entry) {
	fields := []zap.Field{
		zap.Int("round", e.Round),
		zap.String("actor", e.Actor),
		zap.Stringer("action", e.Action),
	}
	if r := e.Result; r != nil {
		fields = append(fields,
			zap.Int("attack_total", r.AttackTotal),
			zap.Int("defense_total", r.DefenseTotal),
			zap.Int("damage", r.Damage),
			zap.Stringer("severity", r.Severity),
		)
		if r.Location != nil {
			fields = append(fields, zap.Stringer("location", r.Location.Location))
		}
	}
	if e.Err != nil {
		fields = append(fields, zap.Error(e.Err))
		logger.Debug("combat action refused", fields...)
		return
	}
	logger.Info("combat action", fields...)
}
