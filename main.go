package main

import (
	"github.com/cre8streak/cre8streak/config"
	"github.com/cre8streak/cre8streak/engine"
	"github.com/cre8streak/cre8streak/models"
	"github.com/cre8streak/cre8streak/routes"
	"github.com/cre8streak/cre8streak/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.Streak{},
		&models.CheckIn{},
		&models.XPTransaction{},
		&models.Reward{},
		&models.Redemption{},
	)

	eng := engine.New(db)
	eng.BaseXP = cfg.CheckinBaseXP
	eng.MilestoneBonus = cfg.CheckinMilestoneBonus
	eng.MilestoneInterval = cfg.CheckinMilestoneInterval

	if err := eng.SeedRewards(); err != nil {
		utils.Sugar.Fatalf("failed to seed rewards: %v", err)
	}

	r := routes.SetupRouter(db, eng)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
