package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yeremiapane/shop-dataset/catalog"
	"github.com/yeremiapane/shop-dataset/config"
	"github.com/yeremiapane/shop-dataset/controllers"
	"github.com/yeremiapane/shop-dataset/database"
	"github.com/yeremiapane/shop-dataset/dataset"
	"github.com/yeremiapane/shop-dataset/generator"
	"github.com/yeremiapane/shop-dataset/middlewares"
	"github.com/yeremiapane/shop-dataset/models"
	"github.com/yeremiapane/shop-dataset/router"
	"github.com/yeremiapane/shop-dataset/services"
	"github.com/yeremiapane/shop-dataset/utils"
	"github.com/yeremiapane/shop-dataset/validator"
)

var errUsage = errors.New("usage")

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := utils.SetLogLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return cfg, nil
}

func runGenerate(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML config file")
	out := fs.String("out", "", "output directory (default output.dir)")
	seed := fs.Uint64("seed", 0, "random seed")
	customers := fs.Int("customers", 0, "number of customers")
	products := fs.Int("products", 0, "number of products")
	orders := fs.Int("orders", 0, "number of orders")
	minItems := fs.Int("min-items", 0, "minimum items per order")
	maxItems := fs.Int("max-items", 0, "maximum items per order")
	now := fs.String("now", "", "reference date, YYYY-MM-DD")
	toDB := fs.Bool("db", false, "also export to the configured database")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	g := &cfg.Generator
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "out":
			cfg.Output.Dir = *out
		case "seed":
			g.Seed = *seed
		case "customers":
			g.Customers = *customers
		case "products":
			g.Products = *products
		case "orders":
			g.Orders = *orders
		case "min-items":
			g.MinItemsPerOrder = *minItems
		case "max-items":
			g.MaxItemsPerOrder = *maxItems
		case "now":
			g.Now = *now
		case "db":
			cfg.Database.Export = *toDB
		}
	})

	genCfg, err := cfg.Generation()
	if err != nil {
		return err
	}
	gen, err := generator.New(genCfg, catalog.Default(), generator.WithLoggers(utils.InfoLogger, utils.ErrorLogger))
	if err != nil {
		return err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"seed":      genCfg.Seed,
		"customers": genCfg.Customers,
		"products":  genCfg.Products,
		"orders":    genCfg.Orders,
		"now":       genCfg.Now.String(),
	}).Info("generating dataset")

	res, err := gen.Run()
	if err != nil {
		return err
	}
	paths, err := dataset.WriteDir(cfg.Output.Dir, &res.Dataset)
	if err != nil {
		return err
	}
	mdPath, err := dataset.WriteMetadata(cfg.Output.Dir, res.Metadata(time.Now()))
	if err != nil {
		return err
	}

	if cfg.Database.Export {
		db, err := config.InitDB(cfg.Database)
		if err != nil {
			return err
		}
		if err := database.Export(context.Background(), db, &res.Dataset); err != nil {
			return err
		}
	}

	counts := res.Dataset.RowCounts()
	for _, name := range models.TableNames {
		fmt.Fprintf(stdout, "%-12s %8d rows  %s\n", name, counts[name], paths[name])
	}
	fmt.Fprintf(stdout, "%-12s %8s       %s\n", "metadata", "", mdPath)
	if len(res.Failures) > 0 {
		fmt.Fprintf(stdout, "%d order(s) skipped\n", len(res.Failures))
	}
	return nil
}

// runValidate reports whether every check passed.
func runValidate(args []string, stdout io.Writer) (bool, error) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML config file")
	dir := fs.String("dir", "", "dataset directory (default output.dir)")
	fromDB := fs.Bool("db", false, "read the tables from the configured database")
	asJSON := fs.Bool("json", false, "print the report as JSON")
	if err := fs.Parse(args); err != nil {
		return false, errUsage
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return false, err
	}
	if *dir == "" {
		*dir = cfg.Output.Dir
	}

	var snap *dataset.Snapshot
	source := *dir
	if *fromDB {
		db, err := config.InitDB(cfg.Database)
		if err != nil {
			return false, err
		}
		snap = database.LoadTables(context.Background(), db)
		source = cfg.Database.Driver + " database"
	} else {
		snap = dataset.LoadDir(*dir)
	}

	utils.InfoLogger.WithField("source", source).Info("validating dataset")
	report := validator.New(catalog.Default()).Validate(snap)

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return false, err
		}
	} else if err := report.WriteText(stdout); err != nil {
		return false, err
	}
	return report.Passed(), nil
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML config file")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	if cfg.Server.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r, cleanup, err := buildServer(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		utils.InfoLogger.Infof("Listening on port %s", cfg.Server.Port)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	utils.InfoLogger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildServer wires the API from cfg. cleanup releases what it opened.
func buildServer(cfg *config.Config) (*gin.Engine, func(), error) {
	genCfg, err := cfg.Generation()
	if err != nil {
		return nil, nil, err
	}

	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var cache services.ReportCache = services.NewMemoryCache(cfg.Server.CacheTTL)
	if cfg.Server.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rc, err := services.NewRedisCache(ctx, cfg.Server.RedisAddr, cfg.Server.CacheTTL)
		cancel()
		if err != nil {
			utils.ErrorLogger.WithError(err).Error("redis unavailable, caching reports in memory")
		} else {
			cache = rc
			closers = append(closers, func() { rc.Close() })
		}
	}

	dc := controllers.NewDatasetController(cfg.Output.Root, catalog.Default(), genCfg, cache)
	dc.MaxRows = cfg.Server.MaxRows
	if cfg.Database.Export {
		db, err := config.InitDB(cfg.Database)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		dc.DB = db
	}

	limiter := middlewares.NewRateLimiter(cfg.Server.GenerateRate, cfg.Server.GenerateBurst)
	limiter.Start()
	closers = append(closers, limiter.Stop)

	r := router.SetupRouter(router.Options{
		Datasets:   dc,
		Limiter:    limiter,
		CORSOrigin: cfg.Server.CORSOrigin,
		Log:        utils.InfoLogger,
	})
	return r, cleanup, nil
}

func runCatalog(stdout io.Writer) error {
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRODUCT TYPE\tCATEGORY")
	for _, e := range catalog.Default().Entries() {
		fmt.Fprintf(tw, "%s\t%s\n", e.ProductType, e.Category)
	}
	return tw.Flush()
}

