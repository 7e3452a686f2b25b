package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"

	goredis "github.com/redis/go-redis/v9"
	flag "github.com/spf13/pflag"

	"github.com/devusSs/hostbridge/internal/config"
	"github.com/devusSs/hostbridge/internal/database/redis"
	"github.com/devusSs/hostbridge/internal/server"
	"github.com/devusSs/hostbridge/internal/updater"
	"github.com/devusSs/hostbridge/pkg/log"
	"github.com/devusSs/hostbridge/pkg/system"
)

func main() {
	helpFlag := flag.Bool("help", false, "Prints help information and exits")
	versionFlag := flag.Bool("version", false, "Prints version information and exits")
	infoFlag := flag.Bool("info", false, "Prints system information as JSON and exits")
	noUpdateFlag := flag.Bool("no-update", false, "Disables automatic update checks")
	consoleFlag := flag.Bool("console", false, "Enables log output to console")
	debugFlag := flag.Bool("debug", false, "Enables debug mode (verbose logging, also to console)")
	logsDirFlag := flag.StringP("logs", "l", "logs", "Directory to store logs in")
	configFileFlag := flag.StringP("config", "c", "", "Path to .env config file (default: environment only)")
	flag.Parse()

	if *helpFlag {
		printHelp()
		os.Exit(0)
	}

	if *versionFlag {
		printVersion()
		os.Exit(0)
	}

	if *infoFlag {
		if err := printSystemInfo(); err != nil {
			fmt.Println("Error getting system info:", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	log.SetDefaultLogsDirectory(*logsDirFlag)
	log.SetDefaultLogFileName("hostbridge.log")
	logger := log.NewLogger(
		log.WithName("main"),
		log.WithConsole(*consoleFlag),
		log.WithDebug(*debugFlag),
	)

	cfg, err := config.Load(*configFileFlag)
	if err != nil {
		logger.Error("Error loading config: %v", err)
		os.Exit(1)
	}

	logger.Debug("loaded config: %v", cfg)
	logger.Info("Config loaded successfully")

	wg := &sync.WaitGroup{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updateAvailable := make(chan string, 1)

	if !*noUpdateFlag {
		u := updater.New(updater.Config{
			Repository:   cfg.UpdateRepository,
			Token:        cfg.GitHubToken,
			BuildVersion: buildVersion,
			Console:      *consoleFlag,
			Debug:        *debugFlag,
		})
		updated, err := u.CheckAndApply(ctx)
		if err != nil {
			logger.Warn("Error checking for updates: %v", err)
		}
		if updated {
			logger.Info("Update succeeded, please restart the app")
			os.Exit(0)
		}
		if !u.DevBuild() {
			wg.Add(1)
			go u.PeriodicCheck(ctx, updateAvailable, wg)
		}
	}

	var redisClient *goredis.Client
	redisCfg := redis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
	if redisCfg.Enabled() {
		redisClient, err = redis.NewClient(ctx, redisCfg)
		if err != nil {
			logger.Error("Error initializing redis: %v", err)
			os.Exit(1)
		}
		defer redisClient.Close()
	}

	host := system.NewHost(system.WithLogger(log.NewLogger(
		log.WithOwnLogFile("system.log"),
		log.WithName("system"),
		log.WithConsole(*consoleFlag),
		log.WithDebug(*debugFlag),
	)))

	s := server.NewServer(server.Config{
		Port:         cfg.APIPort,
		FrontendURLs: cfg.FrontendURLs,
		RateLimit:    cfg.RateLimit,
		ExecTimeout:  cfg.ExecTimeout,
		Console:      *consoleFlag,
		Debug:        *debugFlag,
	})

	if err := s.ApplyMiddlewares(redisClient); err != nil {
		logger.Error("Error applying middlewares: %v", err)
		os.Exit(1)
	}

	if err := s.SetupRoutes(host); err != nil {
		logger.Error("Error setting up routes: %v", err)
		os.Exit(1)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 2)

	wg.Add(1)
	go s.Start(ctx, errChan, wg)

	for {
		select {
		case sig := <-stop:
			fmt.Println()
			logger.Info("Received signal '%s', stopping...", sig.String())
			cancel()
			wg.Wait()
			logger.Info("Shutdown complete")
			return
		case err := <-errChan:
			if errors.Is(err, server.ErrorCritical) {
				logger.Error("Critical error: %v", err)
				cancel()
				wg.Wait()
				os.Exit(1)
			}
			logger.Error("Error: %v", err)
		case version := <-updateAvailable:
			logger.Info("New update %s available, please restart the app", version)
		}
	}
}

const appMessage = `hostbridge - local host API for installer frontends`

var (
	buildVersion   string
	buildDate      string
	buildGitCommit string
)

func init() {
	if buildVersion == "" {
		buildVersion = "dev"
	}
	if buildDate == "" {
		buildDate = "unknown"
	}
	if buildGitCommit == "" {
		buildGitCommit = "unknown"
	}
}

func printHelp() {
	fmt.Println(appMessage)
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  hostbridge [FLAGS]")
	fmt.Println()
	fmt.Println("FLAGS:")
	flag.PrintDefaults()
}

func printVersion() {
	fmt.Println(appMessage)
	fmt.Println()
	fmt.Printf("Build version:\t\t%s\n", buildVersion)
	fmt.Printf("Build date:\t\t%s\n", buildDate)
	fmt.Printf("Build Git commit:\t%s\n", buildGitCommit)
	fmt.Println()
	fmt.Printf("Build Go version:\t%s\n", runtime.Version())
	fmt.Printf("Build Go os:\t\t%s\n", system.OS())
	fmt.Printf("Build Go arch:\t\t%s\n", system.Arch())
}

func printSystemInfo() error {
	info, err := system.GetSystemInfo(context.Background())
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
