package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	protoactor "github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/remote"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	matchactor "GoldenAges/internal/match/actor"
	"GoldenAges/internal/match/actors"
	"GoldenAges/internal/match/app/port"
	"GoldenAges/internal/match/infra/persistence/memory"
	"GoldenAges/internal/match/infra/persistence/model"
	matchmongo "GoldenAges/internal/match/infra/persistence/mongodb"
	matchmysql "GoldenAges/internal/match/infra/persistence/mysql"
	"GoldenAges/internal/match/interfaces"
	"GoldenAges/internal/match/service"
	"GoldenAges/internal/shared/config"
	"GoldenAges/internal/shared/infrastructure/db"
	sharedmongo "GoldenAges/internal/shared/infrastructure/mongo"
	"GoldenAges/internal/shared/logs"
	"GoldenAges/internal/shared/serverconfig"
	"GoldenAges/internal/shared/session"
	transportgrpc "GoldenAges/internal/shared/transport/grpc"
	transporthttp "GoldenAges/internal/shared/transport/http"
	"GoldenAges/internal/shared/transport/ws"
	"GoldenAges/internal/shared/utils"
	"GoldenAges/modules/kit/logx"
)

func main() {
	serverconfig.Load()
	conf := serverconfig.Conf
	if err := logs.Init("match", conf.Log); err != nil {
		panic(err)
	}
	defer logs.Sync()
	logs.Info("conf", zap.Any("rules", conf.Rules), zap.String("ws", conf.MatchServer.Addr()))

	config.OnChange(func() {
		// 端口与存储只在启动时生效，这里只记录
		config.Read(func() {
			logs.Info("config reloaded", zap.Any("rules", serverconfig.Conf.Rules))
		})
	})

	baseLogger := logx.NewZapLogger(logs.Logger())

	st := openStorage(conf)
	defer st.Close()

	system := protoactor.NewActorSystem()
	var remoting *remote.Remote
	if conf.Remote.Enabled {
		remoting = remote.NewRemote(system, remote.Configure(conf.Remote.Host, conf.Remote.Port))
		remoting.Start()
		logs.Info("match actor remote started", zap.String("addr", fmt.Sprintf("%s:%d", conf.Remote.Host, conf.Remote.Port)))
	}

	runtime := matchactor.NewRuntime(system, actors.Deps{
		Repo:        st.matches,
		Results:     st.results,
		FlushEvery:  conf.Rules.FlushInterval(),
		IdleTimeout: conf.Rules.IdleTimeout(),
		Log:         baseLogger,
	}, conf.Rules.AskTimeout())

	idGen, err := utils.NewIDGen(conf.Rules.NodeID)
	if err != nil {
		logs.Fatal("invalid rules.node_id", zap.Error(err))
	}

	sessMgr := session.NewSessMgr()
	svc := service.NewMatchService(runtime, sessMgr,
		service.WithIDGenerator(idGen.Next),
		service.WithDefaultExpansion(conf.Rules.DefaultExpansion),
		service.WithResults(st.results),
		service.WithLogger(baseLogger),
	)
	matchModule := interfaces.New(svc, sessMgr, baseLogger)

	wsRouter := ws.NewRouter(baseLogger)
	wsRouter.Register(matchModule)
	wsServer := ws.NewServer(wsRouter, baseLogger, conf.MatchServer.NeedSecret)

	httpServer := transporthttp.NewHttpServer(conf.HTTPServer.Addr(), nil, baseLogger)
	httpServer.Register(matchModule)
	for name, probe := range st.probes {
		httpServer.AddProbe(name, probe)
	}
	// ws 与 http 同端口时直接挂在 gin 上
	var wsHTTP *nethttp.Server
	if conf.MatchServer.Port == 0 || conf.MatchServer.Addr() == conf.HTTPServer.Addr() {
		httpServer.Engine().GET(conf.MatchServer.Path, gin.WrapH(wsServer))
	} else {
		mux := nethttp.NewServeMux()
		mux.Handle(conf.MatchServer.Path, wsServer)
		wsHTTP = &nethttp.Server{Addr: conf.MatchServer.Addr(), Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	}

	grpcServer := transportgrpc.NewServer(baseLogger)
	transportgrpc.Register(grpcServer, matchModule)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 3)
	go func() {
		logs.Info("match http server started", zap.String("addr", conf.HTTPServer.Addr()))
		if err := httpServer.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- fmt.Errorf("http serve failed: %w", err)
		}
	}()
	if wsHTTP != nil {
		go func() {
			logs.Info("match ws server started", zap.String("addr", wsHTTP.Addr), zap.String("path", conf.MatchServer.Path))
			if err := wsHTTP.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
				errCh <- fmt.Errorf("ws serve failed: %w", err)
			}
		}()
	}
	lis, err := net.Listen("tcp", conf.GRPCServer.Addr())
	if err != nil {
		logs.Fatal("listen grpc failed", zap.Error(err))
	}
	go func() {
		logs.Info("match grpc server started", zap.String("addr", conf.GRPCServer.Addr()))
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- fmt.Errorf("grpc serve failed: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logs.Info("收到退出信号，准备优雅退出")
	case err := <-errCh:
		logs.Error("服务异常退出", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
	if wsHTTP != nil {
		_ = wsHTTP.Shutdown(shutdownCtx)
	}
	// 被劫持的 ws 连接不受 http Shutdown 管理
	wsServer.CloseAll()

	stopCh := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopCh)
	}()
	select {
	case <-stopCh:
	case <-shutdownCtx.Done():
		grpcServer.Stop()
	}

	if remoting != nil {
		remoting.Shutdown(true)
	}
	// actor 停止时会把未落盘的快照刷完
	runtime.Shutdown()
}

// storage 对局快照与名次两个仓储，probes 挂到 /healthz。
type storage struct {
	matches port.MatchRepository
	results port.ResultRepository
	probes  map[string]transporthttp.Probe
	closers []func()
}

func (st *storage) Close() {
	for i := len(st.closers) - 1; i >= 0; i-- {
		st.closers[i]()
	}
}

// openStorage storage=mongo 时快照进 mongo、名次进 mysql，否则全部放内存。
func openStorage(conf serverconfig.Config) *storage {
	st := &storage{probes: map[string]transporthttp.Probe{}}
	if conf.Rules.Storage != "mongo" {
		logs.Warn("match storage is memory, data is lost on restart")
		st.matches, st.results = memory.NewMatchRepository(), memory.NewResultRepository()
		return st
	}

	store, err := sharedmongo.Open(conf.MongoDB, logs.Logger())
	if err != nil {
		logs.Fatal("open mongodb failed", zap.Error(err))
	}
	st.matches = matchmongo.NewMatchRepository(store.Database())
	st.probes["mongodb"] = store.Ping
	st.closers = append(st.closers, store.Close)

	if conf.MySQL.Host == "" {
		logs.Warn("mysql not configured, results kept in memory")
		st.results = memory.NewResultRepository()
		return st
	}
	gormDB, err := db.Open(conf.MySQL, &model.MatchResult{})
	if err != nil {
		logs.Fatal("open mysql failed", zap.Error(err))
	}
	st.results = matchmysql.NewResultRepository(gormDB)
	st.probes["mysql"] = func(ctx context.Context) error { return db.Ping(ctx, gormDB) }
	st.closers = append(st.closers, func() { db.Close(gormDB) })
	return st
}
