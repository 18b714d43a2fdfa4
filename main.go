// @title           Plot Feasibility API
// @version         1.0
// @description     Zoning rule evaluation for urban plots: FSI, height, floors, setbacks, parking, area statement and fire classification.

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @schemes http https
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	_ "feasibility/docs"
	"feasibility/handlers"
	"feasibility/models"
	"feasibility/repository"
	"feasibility/services"
	"feasibility/storage"
	"feasibility/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var purgeRunning int32

func CORSConfig() cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{
		"Content-Type", "Content-Length", "Accept-Encoding", "Accept",
		"Origin", "X-Requested-With", "Authorization", "User-Agent", "Cache-Control",
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS", "HEAD"}
	corsConfig.ExposeHeaders = []string{"Content-Length", "Content-Type", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	return corsConfig
}

// loadRuleSets reads every configured revision from the selected source.
func loadRuleSets(cfg utils.Config) ([]models.RuleSet, error) {
	switch cfg.RulesSource {
	case utils.RulesFromFile:
		sets := make([]models.RuleSet, 0, len(cfg.RulesFiles))
		for _, path := range cfg.RulesFiles {
			rs, err := repository.LoadRuleFile(path)
			if err != nil {
				return nil, fmt.Errorf("rule file %s: %w", path, err)
			}
			log.Printf("[rules] loaded revision %q from %s", rs.Revision, path)
			sets = append(sets, rs)
		}
		return sets, nil

	case utils.RulesFromPostgres:
		db, err := storage.InitDB(cfg)
		if err != nil {
			return nil, err
		}
		defer db.Close()

		repo := repository.NewPostgresRuleRepository(db)
		ctx := context.Background()
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		names, err := repo.Revisions(ctx)
		if err != nil {
			return nil, err
		}
		if len(names) == 0 {
			log.Printf("[rules] no revisions stored, seeding %q", repository.DefaultRevision)
			if err := repo.Save(ctx, repository.DefaultRuleSet()); err != nil {
				return nil, err
			}
		}
		sets, err := repo.LoadAll(ctx, cfg.RulesRevisions)
		if err != nil {
			return nil, err
		}
		log.Printf("[rules] loaded %d revision(s) from postgres", len(sets))
		return sets, nil

	default:
		return []models.RuleSet{repository.DefaultRuleSet()}, nil
	}
}

// scheduleHistoryPurge deletes history older than the retention window on cfg.HistoryPurgeCron.
func scheduleHistoryPurge(c *cron.Cron, store *storage.EvaluationStore, cfg utils.Config) error {
	retention := time.Duration(cfg.HistoryRetentionDays) * 24 * time.Hour
	_, err := c.AddFunc(cfg.HistoryPurgeCron, func() {
		if !atomic.CompareAndSwapInt32(&purgeRunning, 0, 1) {
			log.Println("[history-cron] previous purge still running, skipping")
			return
		}
		defer atomic.StoreInt32(&purgeRunning, 0)

		cutoff := time.Now().Add(-retention)
		n, err := store.PurgeOlderThan(context.Background(), cutoff)
		if err != nil {
			log.Printf("[history-cron] purge failed: %v", err)
			return
		}
		log.Printf("[history-cron] removed %d evaluation(s) before %s", n, cutoff.Format(time.RFC3339))
	})
	return err
}

func main() {
	cfg, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	sets, err := loadRuleSets(cfg)
	if err != nil {
		log.Fatalf("Failed to load rule sets: %v", err)
	}
	registry, err := services.NewRegistry(cfg.DefaultRevision, sets...)
	if err != nil {
		log.Fatalf("Failed to build rule registry: %v", err)
	}
	log.Printf("[rules] serving revisions %v (default %q)", registry.Revisions(), registry.DefaultRevision())

	env := &handlers.Env{
		Registry: registry,
		Metrics:  services.NewMetrics(prometheus.DefaultRegisterer),
		Auth: handlers.AuthConfig{
			JWTSecret:         cfg.JWTSecret,
			AdminUser:         cfg.AdminUser,
			AdminPasswordHash: cfg.AdminPasswordHash,
		},
	}

	c := cron.New(
		cron.WithLogger(cron.VerbosePrintfLogger(log.New(os.Stdout, "cron: ", log.LstdFlags))),
	)
	if cfg.DatabaseEnabled() {
		gormDB, err := storage.InitGormDB(cfg)
		if err != nil {
			log.Printf("Warning: evaluation history disabled: %v", err)
		} else {
			store := storage.NewEvaluationStore(gormDB)
			env.History = store
			if err := scheduleHistoryPurge(c, store, cfg); err != nil {
				log.Fatalf("Failed to schedule history purge: %v", err)
			}
		}
	}
	c.Start()

	r := gin.Default()
	r.MaxMultipartMemory = 8 << 20
	r.Use(cors.New(CORSConfig()))

	handlers.RegisterRoutes(r, env)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server listening on :%s", cfg.Port)

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// wait for a running purge before closing
	<-c.Stop().Done()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exiting")
}
