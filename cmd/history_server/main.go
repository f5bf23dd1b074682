package main

import (
	"flag"
	"os"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/develo3899/TrendTracker/pkg/repository"
	"github.com/develo3899/TrendTracker/pkg/server"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name 서비스 이름
	Name string = "history_server"
	// Version 서비스 버전
	Version string
	// flagconf 설정 파일 경로
	flagconf string

	id, _ = os.Hostname()
)

func init() {
	flag.StringVar(&flagconf, "conf", "configs/server.yaml", "config path, eg: -conf server.yaml")
}

func main() {
	flag.Parse()
	logger := log.With(log.NewStdLogger(os.Stdout),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
		"service.id", id,
		"service.name", Name,
		"service.version", Version,
	)

	c := config.New(
		config.WithSource(
			file.NewSource(flagconf),
		),
	)
	defer c.Close()

	if err := c.Load(); err != nil {
		panic(err)
	}

	var bc server.Bootstrap
	if err := c.Scan(&bc); err != nil {
		panic(err)
	}

	if bc.Server == nil || bc.Server.Http == nil {
		bc.Server = &server.Server{Http: &server.HTTP{Addr: ":8000"}}
	}

	csvPath := "data/search_history.csv"
	if bc.Store != nil && bc.Store.CsvPath != "" {
		csvPath = bc.Store.CsvPath
	}
	repo, err := repository.NewRepository(csvPath)
	if err != nil {
		panic(err)
	}

	httpSrv := server.NewHTTPServer(bc.Server, repo, logger)

	app := kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Logger(logger),
		kratos.Server(httpSrv),
	)

	if err := app.Run(); err != nil {
		panic(err)
	}
}
