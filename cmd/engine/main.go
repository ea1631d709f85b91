package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"jobmatch-engine/internal/aggregate"
	"jobmatch-engine/internal/config"
	"jobmatch-engine/internal/domain"
	"jobmatch-engine/internal/rank"
	"jobmatch-engine/internal/scrape/adzuna"
	"jobmatch-engine/internal/scrape/arbeitnow"
	"jobmatch-engine/internal/scrape/jobicy"
	"jobmatch-engine/internal/scrape/remoteok"
	"jobmatch-engine/internal/scrape/remotive"
	"jobmatch-engine/internal/scrape/themuse"
	"jobmatch-engine/internal/scrape/types"
	"jobmatch-engine/internal/scrape/util"
	"jobmatch-engine/internal/scrape/wuzzuf"
	"jobmatch-engine/internal/secrets"
	"jobmatch-engine/internal/store"
	"jobmatch-engine/internal/validate"
)

func main() {
	var (
		query      = flag.String("query", "", "search query, e.g. \"Python Developer\"")
		location   = flag.String("location", "", "optional location hint")
		maxJobs    = flag.Int("max", 0, "max jobs to return (0 = config default)")
		skills     = flag.String("skills", "", "comma-separated profile skills for ranking")
		jobTitle   = flag.String("title", "", "profile job title for ranking")
		dataDir    = flag.String("data-dir", "", "data directory (default $JOBMATCH_DATA_DIR or .)")
		defaultCfg = flag.String("config", filepath.Join("config", "config.yml"), "default config shipped with the binary")
		concurrent = flag.Bool("concurrent", false, "fan adapters out in parallel")
		userID     = flag.Int64("user", 1, "user id to record the search under")
	)
	flag.Parse()

	if *query == "" {
		flag.Usage()
		os.Exit(2)
	}

	// .env is optional; real env always wins.
	_ = godotenv.Load()

	dir := *dataDir
	if dir == "" {
		dir = os.Getenv("JOBMATCH_DATA_DIR")
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Fatal(err)
	}

	lock := flock.New(filepath.Join(dir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("data dir lock: %v", err)
	}
	if !locked {
		log.Fatalf("another engine instance is using %s", dir)
	}
	defer lock.Unlock()

	userCfgPath, err := config.EnsureUserConfig(dir, *defaultCfg)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}
	cfg, err := config.Load(userCfgPath)
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	db, err := store.Open(filepath.Join(dir, "jobmatch.db"))
	if err != nil {
		sugar.Fatalw("open store", "error", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	adapters := buildAdapters(cfg, sugar)
	validator := validate.New()
	observer := aggregate.NewLogObserver(sugar)

	agg := aggregate.New(adapters, validator, observer,
		aggregate.WithDelay(time.Duration(cfg.Scraper.AdapterDelayMS)*time.Millisecond),
		aggregate.WithConcurrency(*concurrent || cfg.Scraper.Concurrent),
	)

	limit := *maxJobs
	if limit <= 0 {
		limit = cfg.Scraper.MaxJobs
	}

	jobs := agg.Run(ctx, *query, *location, limit)

	profile := buildProfile(*skills, *jobTitle, *query)
	matches := rank.KeywordMatcher{}.Rank(profile, jobs)

	searchType := "chat"
	if len(profile.Skills) > 0 || profile.JobTitle != "" {
		searchType = "form"
	}

	runID := observer.Stats().LastRunID
	keywordSummary := strings.Join(aggregate.DeriveKeywords(*query), ", ")

	searchID, err := db.SaveSearch(ctx, *userID, searchType, *query, keywordSummary, runID)
	if err != nil {
		sugar.Fatalw("save search", "error", err)
	}
	if err := db.SaveJobResults(ctx, searchID, matches); err != nil {
		sugar.Fatalw("save job results", "error", err)
	}

	printResults(matches)
	printSummary(observer.Stats(), validator.Stats(), searchID)
}

// buildAdapters wires the enabled sources in their fixed priority order.
// An adapter whose construction fails (missing Adzuna credentials) is
// skipped and logged, never fatal.
func buildAdapters(cfg config.Config, sugar *zap.SugaredLogger) []types.Adapter {
	timeout := time.Duration(cfg.Scraper.TimeoutSeconds) * time.Second
	hc := &http.Client{Timeout: timeout}
	descLimit := cfg.Scraper.DescriptionLimit
	maxSkills := cfg.Scraper.MaxSkills

	var adapters []types.Adapter

	if cfg.Sources.RemoteOK.Enabled {
		adapters = append(adapters, remoteok.New(remoteok.Config{
			HTTPClient: hc, MaxDescription: descLimit, MaxSkills: maxSkills,
		}))
	}
	if cfg.Sources.Remotive.Enabled {
		adapters = append(adapters, remotive.New(remotive.Config{
			HTTPClient: hc, MaxDescription: descLimit, MaxSkills: maxSkills,
		}))
	}
	if cfg.Sources.Arbeitnow.Enabled {
		adapters = append(adapters, arbeitnow.New(arbeitnow.Config{
			HTTPClient: hc, MaxDescription: descLimit, MaxSkills: maxSkills,
		}))
	}
	if cfg.Sources.Adzuna.Enabled {
		appID, appKey, err := secrets.AdzunaCredentials()
		if err != nil {
			sugar.Warnw("adzuna disabled", "error", err)
		} else {
			ad, err := adzuna.New(adzuna.Config{
				AppID: appID, AppKey: appKey, Country: cfg.Sources.Adzuna.Country,
				HTTPClient: hc, MaxDescription: descLimit, MaxSkills: maxSkills,
			})
			if err != nil {
				sugar.Warnw("adzuna disabled", "error", err)
			} else {
				adapters = append(adapters, ad)
			}
		}
	}
	if cfg.Sources.Jobicy.Enabled {
		adapters = append(adapters, jobicy.New(jobicy.Config{
			HTTPClient: hc, MaxDescription: descLimit, MaxSkills: maxSkills,
		}))
	}
	if cfg.Sources.TheMuse.Enabled {
		adapters = append(adapters, themuse.New(themuse.Config{
			HTTPClient: hc, MaxDescription: descLimit, MaxSkills: maxSkills,
		}))
	}
	if cfg.Sources.Wuzzuf.Enabled {
		adapters = append(adapters, wuzzuf.New(wuzzuf.Config{
			HTTPClient: hc,
			Limiter:    util.NewHostLimiter(1, 1),
		}))
	}
	return adapters
}

func buildProfile(skills, jobTitle, query string) domain.Profile {
	p := domain.Profile{JobTitle: strings.TrimSpace(jobTitle)}
	for _, s := range strings.Split(skills, ",") {
		if s = strings.TrimSpace(s); s != "" {
			p.Skills = append(p.Skills, s)
		}
	}
	if len(p.Skills) == 0 && p.JobTitle == "" {
		p.FreeText = query
	}
	return p
}

func printResults(matches []rank.Match) {
	if len(matches) == 0 {
		fmt.Println("No jobs found.")
		return
	}
	for _, m := range matches {
		j := m.Job
		fmt.Printf("%3d. [%d] %s - %s (%s)\n", j.ID, m.Score, j.Title, j.Company, j.Platform)
		fmt.Printf("     %s | %s | %s\n", j.Location, j.Salary, j.URL)
		if len(j.Skills) > 0 {
			fmt.Printf("     skills: %s\n", strings.Join(j.Skills, ", "))
		}
	}
}

func printSummary(ss aggregate.ObserverStats, vs validate.Stats, searchID int64) {
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("sources attempted=%d succeeded=%d failed=%d scraped=%d\n",
		len(ss.Attempted), len(ss.Succeeded), len(ss.Failed), ss.TotalScraped)
	fmt.Printf("validation total=%d valid=%d invalid=%d\n", vs.Total, vs.Valid, vs.Invalid)
	fmt.Printf("saved as search %d (run %s)\n", searchID, ss.LastRunID)
	fmt.Println(strings.Repeat("=", 70))
}
