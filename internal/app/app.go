package app

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bmlt-tools/snapshot-server/internal/bmlt"
	"github.com/bmlt-tools/snapshot-server/internal/data/db"
	"github.com/bmlt-tools/snapshot-server/internal/data/repos"
	"github.com/bmlt-tools/snapshot-server/internal/http"
	httpH "github.com/bmlt-tools/snapshot-server/internal/http/handlers"
	"github.com/bmlt-tools/snapshot-server/internal/platform/logger"
	"github.com/bmlt-tools/snapshot-server/internal/snapshot"
)

type Repos struct {
	RootServers    repos.RootServerRepo
	Snapshots      repos.SnapshotRepo
	ServiceBodies  repos.ServiceBodyRepo
	Formats        repos.FormatRepo
	Meetings       repos.MeetingRepo
	MeetingFormats repos.MeetingFormatRepo
	NawsCodes      repos.NawsCodeRepo
}

type Services struct {
	Snapshot snapshot.Service
}

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, reposet)
	router := wireRouter(log, reposet)

	return &App{
		Log:      log,
		DB:       theDB,
		Router:   router,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
	}, nil
}

func (a *App) Run(addr string) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}

func wireRepos(theDB *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		RootServers:    repos.NewRootServerRepo(theDB, log),
		Snapshots:      repos.NewSnapshotRepo(theDB, log),
		ServiceBodies:  repos.NewServiceBodyRepo(theDB, log),
		Formats:        repos.NewFormatRepo(theDB, log),
		Meetings:       repos.NewMeetingRepo(theDB, log),
		MeetingFormats: repos.NewMeetingFormatRepo(theDB, log),
		NawsCodes:      repos.NewNawsCodeRepo(theDB, log),
	}
}

func wireServices(theDB *gorm.DB, log *logger.Logger, reposet Repos) Services {
	log.Info("Wiring services...")
	return Services{
		Snapshot: snapshot.NewService(theDB, log, snapshot.Deps{
			RootServers:    reposet.RootServers,
			Snapshots:      reposet.Snapshots,
			ServiceBodies:  reposet.ServiceBodies,
			Formats:        reposet.Formats,
			Meetings:       reposet.Meetings,
			MeetingFormats: reposet.MeetingFormats,
			NawsCodes:      reposet.NawsCodes,
			NewClient:      bmlt.NewFactory(log),
		}),
	}
}

func wireRouter(log *logger.Logger, reposet Repos) *gin.Engine {
	log.Info("Wiring router...")
	return http.NewRouter(http.RouterConfig{
		HealthHandler:     httpH.NewHealthHandler(),
		RootServerHandler: httpH.NewRootServerHandler(log, reposet.RootServers, reposet.Snapshots),
	})
}
