package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/steelkilt/internal/game/catalog"
	"github.com/cory-johannsen/steelkilt/internal/game/dice"
	"github.com/cory-johannsen/steelkilt/internal/scripting"
)

func main() {
	contentDir := flag.String("content", "content", "path to catalog directory")
	scriptDir := flag.String("scripts", "", "optional path to Lua script directory")
	limit := flag.Int("instruction-limit", 0, "per-call instruction limit for scripts; 0 uses the default")
	flag.Parse()

	if *contentDir == "" {
		fmt.Fprintln(os.Stderr, "usage: check-content -content <dir> [-scripts <dir>] [-instruction-limit <n>]")
		os.Exit(1)
	}

	start := time.Now()
	reg, err := catalog.LoadDirectory(*contentDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("weapons: %d, armor: %d, ranged: %d, spells: %d, skills: %d\n",
		len(reg.WeaponIDs()), len(reg.ArmorIDs()), len(reg.RangedIDs()),
		len(reg.SpellIDs()), len(reg.SkillIDs()))

	if *scriptDir != "" {
		mgr := scripting.NewManager(dice.NewLoggedRoller(dice.NewCryptoSource(), zap.NewNop()), zap.NewNop())
		names, err := mgr.LoadDir(*scriptDir, *limit)
		mgr.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("scripts: %v\n", names)
	}
	fmt.Printf("content check complete in %s\n", time.Since(start).Round(time.Millisecond))
}
