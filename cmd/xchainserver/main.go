package main

import (
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	logrus "github.com/sirupsen/logrus"

	core "synbridge/core"
	"synbridge/cmd/xchainserver/server"
	"synbridge/pkg/config"
	"synbridge/pkg/utils"
)

func main() {
	_ = godotenv.Load()

	if nodeCfg, err := config.LoadFromEnv(); err != nil {
		log.Printf("node-wide config not loaded, using defaults: %v", err)
	} else if lvl, err := logrus.ParseLevel(nodeCfg.Logging.Level); err == nil {
		logrus.SetLevel(lvl)
	}

	addr := utils.EnvOrDefault("BRIDGE_API_ADDR", ":8082")
	genesisPath := utils.EnvOrDefault("BRIDGE_GENESIS_DIR", "")
	genesisVersion := utils.EnvOrDefaultUint64("BRIDGE_GENESIS_VERSION", 0)
	readTimeoutSeconds := utils.EnvOrDefaultInt("BRIDGE_HTTP_READ_TIMEOUT_SECONDS", 15)
	writeTimeoutSeconds := utils.EnvOrDefaultInt("BRIDGE_HTTP_WRITE_TIMEOUT_SECONDS", 15)

	cfg, err := config.LoadBridgeGenesis(genesisPath)
	if err != nil {
		log.Fatalf("load bridge genesis: %v", err)
	}
	if _, err := core.InitOrMigrate(uint32(genesisVersion), cfg); err != nil {
		log.Fatalf("install bridge genesis: %v", err)
	}

	ledger := core.NewMemLedger()
	r := server.NewRouter(func() core.CustodyLedger { return ledger })

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(readTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(writeTimeoutSeconds) * time.Second,
	}

	log.Printf("bridge server listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
