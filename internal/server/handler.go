// Package server はRADIUS UDPサーバーとリクエストハンドラを提供する。
package server

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"layeh.com/radius"

	"github.com/oyaguma3/radius-idp-gateway/internal/engine"
	radiuspkg "github.com/oyaguma3/radius-idp-gateway/internal/radius"
)

// Handler はRADIUSリクエストを処理するハンドラ。
// layeh.com/radius.Handlerインターフェースの実装。
type Handler struct {
	engine engine.Processor
}

// NewHandler は新しいHandlerを生成する
func NewHandler(proc engine.Processor) *Handler {
	return &Handler{engine: proc}
}

// ServeRADIUS はRADIUSリクエストを処理する
func (h *Handler) ServeRADIUS(w radius.ResponseWriter, r *radius.Request) {
	traceID := uuid.New().String()
	srcIP := extractIP(r.RemoteAddr)

	slog.Info("RADIUSパケット受信",
		"event_id", "PKT_RECV",
		"trace_id", traceID,
		"src_ip", srcIP,
		"code", r.Code,
	)

	switch r.Code {
	case radius.CodeAccessRequest:
		h.handleAccessRequest(w, r, traceID, srcIP)

	default:
		slog.Warn("未対応のRADIUS Code",
			"event_id", "PKT_UNKNOWN_CODE",
			"trace_id", traceID,
			"code", r.Code,
		)
		// 応答なし
	}
}

// handleAccessRequest はAccess-Requestを処理する
func (h *Handler) handleAccessRequest(w radius.ResponseWriter, r *radius.Request, traceID, srcIP string) {
	secret := r.Packet.Secret

	// Message-Authenticatorは付与されている場合のみ検証する。
	// 検証失敗は改ざんとみなし無応答で破棄（RFC 3579）。
	if radiuspkg.HasMessageAuthenticator(r.Packet) &&
		!radiuspkg.VerifyMessageAuthenticator(r.Packet, secret) {
		slog.Warn("Message-Authenticator検証失敗",
			"event_id", "PKT_MA_INVALID",
			"trace_id", traceID,
			"src_ip", srcIP,
		)
		return // 応答なし
	}

	// ProxyState抽出（応答にそのまま返す）
	proxyStates := radiuspkg.ExtractProxyStates(r.Packet)

	ctx := context.Background()
	result, err := h.engine.Process(ctx, &engine.Request{
		TraceID: traceID,
		SrcIP:   srcIP,
		Packet:  r.Packet,
	})
	if err != nil {
		slog.Error("認証エンジンエラー",
			"event_id", "AUTH_ENGINE_ERR",
			"trace_id", traceID,
			"error", err,
		)
		return // 応答なし
	}

	switch result.Action {
	case engine.ActionAccept, engine.ActionReject:
		radiuspkg.Finalize(result.Response, r.Packet, secret, proxyStates)
		if err := w.Write(result.Response); err != nil {
			slog.Error("RADIUS応答送信失敗",
				"event_id", "PKT_SEND_ERR",
				"trace_id", traceID,
				"error", err,
			)
		}

	case engine.ActionDrop:
		slog.Info("パケットドロップ",
			"event_id", "PKT_DROP",
			"trace_id", traceID,
		)
		// 応答なし
	}
}
