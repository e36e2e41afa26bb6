package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/project-rsd/go-jobagent/internal/api"
	"github.com/project-rsd/go-jobagent/internal/common/cleaner"
	"github.com/project-rsd/go-jobagent/internal/config"
	"github.com/project-rsd/go-jobagent/internal/dedup"
	"github.com/project-rsd/go-jobagent/internal/filter"
	"github.com/project-rsd/go-jobagent/internal/index"
	"github.com/project-rsd/go-jobagent/internal/score"
	"github.com/project-rsd/go-jobagent/internal/search"
	"github.com/project-rsd/go-jobagent/internal/source"
	"github.com/project-rsd/go-jobagent/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Job Agent Server")

	// .env is optional, environment variables win
	_ = godotenv.Load()

	cfg := config.Load()
	ctx := context.Background()

	st, err := store.Open(cfg.Postgres.ConnectionString)
	if err != nil {
		log.Fatalf("PostgreSQL connection failed: %v", err)
	}
	defer st.Close()
	log.Println("PostgreSQL connected")

	// Optional cross-sweep URL cache
	var cache search.SeenCache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("Redis connection failed: %v", err)
		}
		log.Println("Redis connected")
		cache = dedup.NewURLCache(rdb, cfg.Redis.SeenPrefix, cfg.Redis.SeenTTL)
	}

	// Optional Elasticsearch keyword-search mirror
	var indexer search.JobIndexer
	var searcher api.JobSearcher
	if len(cfg.Elasticsearch.Addresses) > 0 {
		es, err := index.NewElasticsearch(cfg.Elasticsearch.Addresses, cfg.Elasticsearch.Index)
		if err != nil {
			log.Fatalf("Elasticsearch connection failed: %v", err)
		}
		if err := es.EnsureIndex(ctx); err != nil {
			log.Printf("Warning: ensure index failed: %v", err)
		}
		log.Println("Elasticsearch connected")
		indexer = es
		searcher = es
	}

	deps := source.Deps{
		Client:  &http.Client{Timeout: cfg.Search.FetchTimeout},
		Cleaner: cleaner.New(),
		Scorer: &score.Scorer{
			Skills:        config.SkillKeywords,
			Roles:         config.TargetRoles,
			Overqualified: config.OverqualifiedTitleKeywords,
			Penalty:       config.OverqualifiedPenalty,
		},
		MaxResults: cfg.Search.MaxResultsPerSource,
		UserAgent:  cfg.Search.UserAgent,
	}

	titles := filter.NewTitleFilter(
		config.RelevantTitleKeywords,
		config.RelevantTitleWordKeywords,
		config.ExcludedTitleKeywords,
	)

	sweeps := search.New(
		source.Registry(cfg, deps),
		titles,
		st, cache, indexer,
		cfg.Search.RequestDelay,
	)

	srv := api.New(st, sweeps, searcher)

	log.Printf("Server listening on %s", cfg.Server.Addr)
	if err := srv.Router().Run(cfg.Server.Addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
