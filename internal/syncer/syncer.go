// Package syncer はレルム設定の定期同期を提供する。
// 設定単位（ConfigUnit）と外部接続（ProviderFactory）をレルムごとに
// 初期化し、失敗をレルム単位で隔離する。
package syncer

import (
	"context"
	"log/slog"
	"time"

	"github.com/oyaguma3/radius-idp-gateway/internal/realm"
)

// Syncer はレルム設定同期タスクの実装。
type Syncer struct {
	source    realm.Source
	units     []ConfigUnit
	factories []ProviderFactory
}

// New は新しいSyncerを生成する。
func New(source realm.Source) *Syncer {
	return &Syncer{source: source}
}

// RegisterUnit は設定単位を登録する。登録順に実行される。
func (s *Syncer) RegisterUnit(u ConfigUnit) {
	s.units = append(s.units, u)
}

// RegisterFactory は接続ファクトリを登録する。設定単位の後に実行される。
func (s *Syncer) RegisterFactory(f ProviderFactory) {
	s.factories = append(s.factories, f)
}

// Run は全レルムの同期を1回実行する。
// レルム・設定単位ごとの失敗はReportに記録して続行し、
// 最後に必ず完了ログを出す。
func (s *Syncer) Run(ctx context.Context) *Report {
	report := &Report{StartedAt: time.Now()}
	realmCount := 0
	defer func() {
		report.FinishedAt = time.Now()
		slog.Info("レルム設定同期完了",
			"event_id", "SYNC_DONE",
			"realms", realmCount,
			"changed", report.ChangedCount(),
			"failures", len(report.Failures()),
			"elapsed_ms", report.FinishedAt.Sub(report.StartedAt).Milliseconds(),
		)
	}()

	realms, err := s.source.ListRealms(ctx)
	if err != nil {
		report.Err = err
		slog.Error("レルム一覧取得失敗",
			"event_id", "SYNC_LIST_ERR",
			"error", err.Error(),
		)
		return report
	}

	realmCount = len(realms)
	for _, name := range realms {
		s.syncRealm(ctx, name, report)
	}
	return report
}

// syncRealm は1レルム分の設定単位と接続を初期化する。
func (s *Syncer) syncRealm(ctx context.Context, name string, report *Report) {
	for _, unit := range s.units {
		changed, err := unit.Init(ctx, name)
		report.Results = append(report.Results, Result{
			Realm:   name,
			Unit:    unit.Name(),
			Changed: changed,
			Err:     err,
		})
		if err != nil {
			slog.Warn("設定ユニット初期化失敗",
				"event_id", "SYNC_UNIT_ERR",
				"realm", name,
				"unit", unit.Name(),
				"error", err.Error(),
			)
			continue
		}
		if changed {
			slog.Info("設定ユニット更新検知",
				"event_id", "SYNC_UNIT_CHANGED",
				"realm", name,
				"unit", unit.Name(),
			)
		}
	}

	for _, factory := range s.factories {
		provider, err := factory.Create(ctx)
		if err != nil {
			report.Results = append(report.Results, Result{
				Realm: name,
				Unit:  factory.Name(),
				Err:   err,
			})
			slog.Warn("プロバイダ生成失敗",
				"event_id", "SYNC_PROVIDER_ERR",
				"realm", name,
				"provider", factory.Name(),
				"error", err.Error(),
			)
			continue
		}
		changed, err := provider.Init(ctx, name)
		report.Results = append(report.Results, Result{
			Realm:   name,
			Unit:    factory.Name(),
			Changed: changed,
			Err:     err,
		})
		if err != nil {
			slog.Warn("プロバイダ初期化失敗",
				"event_id", "SYNC_PROVIDER_ERR",
				"realm", name,
				"provider", factory.Name(),
				"error", err.Error(),
			)
		}
	}
}
