// Package main はRADIUS IdPゲートウェイ（外部ディレクトリ連携RADIUS認証サーバー）のエントリーポイント。
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oyaguma3/radius-idp-gateway/internal/auth"
	"github.com/oyaguma3/radius-idp-gateway/internal/config"
	"github.com/oyaguma3/radius-idp-gateway/internal/dict"
	"github.com/oyaguma3/radius-idp-gateway/internal/directory"
	"github.com/oyaguma3/radius-idp-gateway/internal/engine"
	"github.com/oyaguma3/radius-idp-gateway/internal/realm"
	"github.com/oyaguma3/radius-idp-gateway/internal/server"
	"github.com/oyaguma3/radius-idp-gateway/internal/session"
	"github.com/oyaguma3/radius-idp-gateway/internal/syncer"
	"github.com/oyaguma3/radius-idp-gateway/internal/verifier"
)

func main() {
	// 1. 環境変数読み込み
	cfg, err := config.Load()
	if err != nil {
		slog.Error("設定読み込み失敗", "error", err)
		os.Exit(1)
	}

	// 2. ロガー初期化（JSON形式、INFO以上）
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})).With("app", "radius-idp-gateway")
	slog.SetDefault(logger)

	slog.Info("radius-idp-gateway起動開始",
		"listen_addr", cfg.ListenAddr,
		"directory_api_url", cfg.DirectoryAPIURL,
		"sync_interval_sec", cfg.SyncIntervalSec,
	)

	// 3. Valkeyクライアント初期化
	valkeyClient, err := session.NewValkeyClient(cfg)
	if err != nil {
		slog.Error("Valkey接続失敗",
			"event_id", "VALKEY_CONN_ERR",
			"error", err,
		)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	slog.Info("Valkey接続完了", "addr", cfg.ValkeyAddr())

	// 4. ディレクトリAPIクライアント初期化
	dirClient := directory.NewClient(cfg)

	// 5. レルム設定ストアとセッションストア
	realmStore := realm.NewStore()
	realmSource := realm.NewValkeySource(valkeyClient)
	sessStore := session.NewSessionStore(valkeyClient)

	// 6. 認証プロトコルレジストリ
	dictionary := dict.Builtin()
	registry := auth.NewRegistry()
	registry.Register(auth.NewPAP())
	registry.Register(auth.NewCHAP())
	registry.Register(auth.NewMSCHAPV1(dictionary))
	registry.Register(auth.NewMSCHAPV2(dictionary))

	// 7. 参照シークレット収集器
	secrets := verifier.New(dirClient, sessStore)

	// 8. 認証エンジン
	authEngine := engine.NewEngine(realmStore, registry, dirClient, secrets, sessStore, dictionary, cfg)

	// 9. レルム設定シンクロナイザ
	sync := syncer.New(realmSource)
	sync.RegisterUnit(syncer.NewSettingsUnit(realmSource, realmStore))
	sync.RegisterUnit(syncer.NewClientsUnit(realmSource, realmStore))
	sync.RegisterFactory(syncer.NewProbeFactory(dirClient))

	// 10. 同期ジョブ起動（即時初回実行 → 定期実行）
	syncCtx, syncCancel := context.WithCancel(context.Background())
	defer syncCancel()
	go runSyncLoop(syncCtx, sync, cfg.SyncInterval())

	// 11. RADIUS Secret解決
	secretSource := server.NewSecretSource(realmStore, cfg.RadiusSecret)

	// 12. RADIUSハンドラ
	handler := server.NewHandler(authEngine)

	// 13. UDPサーバー
	srv := server.NewServer(cfg.ListenAddr, handler, secretSource)

	// 14. サーバー起動（goroutine）
	go func() {
		slog.Info("RADIUSサーバー起動", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil {
			slog.Error("サーバーエラー", "error", err)
		}
	}()

	// 15. シグナル待機 → Graceful Shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigCh
	slog.Info("シグナル受信、シャットダウン開始", "signal", sig)
	syncCancel()

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Warn("シャットダウンエラー", "error", err)
	}

	slog.Info("radius-idp-gateway停止完了")
}

// runSyncLoop はレルム設定同期を即時実行し、以後interval間隔で繰り返す
func runSyncLoop(ctx context.Context, sync *syncer.Syncer, interval time.Duration) {
	sync.Run(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sync.Run(ctx)
		}
	}
}
