// Package engine は認証ディスパッチの中核を提供する。
// レルム解決、プロトコル選択、ディレクトリ照合、セッション払い出し、
// 応答組み立てを1リクエスト分のトランザクションとして処理する。
package engine

import (
	"context"
	"errors"
	"log/slog"

	"layeh.com/radius"

	"github.com/oyaguma3/radius-idp-gateway/internal/auth"
	"github.com/oyaguma3/radius-idp-gateway/internal/config"
	"github.com/oyaguma3/radius-idp-gateway/internal/dict"
	"github.com/oyaguma3/radius-idp-gateway/internal/directory"
	"github.com/oyaguma3/radius-idp-gateway/internal/logging"
	radiuspkg "github.com/oyaguma3/radius-idp-gateway/internal/radius"
	"github.com/oyaguma3/radius-idp-gateway/internal/realm"
	"github.com/oyaguma3/radius-idp-gateway/internal/session"
)

// EngineImpl はProcessorの実装
type EngineImpl struct {
	realms    *realm.Store
	registry  *auth.Registry
	directory directory.DirectoryClient
	secrets   SecretSource
	sessions  session.SessionStore
	dict      *dict.Dictionary
	cfg       *config.Config
}

// NewEngine は新しい認証エンジンを生成する
func NewEngine(
	realms *realm.Store,
	registry *auth.Registry,
	dir directory.DirectoryClient,
	secrets SecretSource,
	sessions session.SessionStore,
	d *dict.Dictionary,
	cfg *config.Config,
) *EngineImpl {
	return &EngineImpl{
		realms:    realms,
		registry:  registry,
		directory: dir,
		secrets:   secrets,
		sessions:  sessions,
		dict:      d,
		cfg:       cfg,
	}
}

// Process はAccess-Requestを処理して応答アクションを決定する。
// 認証の失敗はすべてActionReject（フェイルクローズ）、
// レルムに紐付かないリクエストはActionDropとする。
func (e *EngineImpl) Process(ctx context.Context, req *Request) (*Result, error) {
	ctx = directory.WithTraceID(ctx, req.TraceID)

	// レルム解決: 未登録NASと無効レルムは応答自体を返さない
	realmCfg, ok := e.realms.ForClient(req.SrcIP)
	if !ok {
		slog.Warn("未登録クライアントからのリクエスト",
			"event_id", "AUTH_UNKNOWN_CLIENT",
			"trace_id", req.TraceID,
			"src_ip", req.SrcIP,
		)
		return &Result{Action: ActionDrop}, nil
	}
	if !realmCfg.Enabled {
		slog.Warn("レルム無効",
			"event_id", "AUTH_REALM_DISABLED",
			"trace_id", req.TraceID,
			"realm", realmCfg.Name,
		)
		return &Result{Action: ActionDrop, Realm: realmCfg.Name}, nil
	}

	username, ok := radiuspkg.GetUserName(req.Packet)
	if !ok {
		slog.Warn("User-Name属性なし",
			"event_id", "AUTH_NO_USERNAME",
			"trace_id", req.TraceID,
			"realm", realmCfg.Name,
		)
		return e.reject(req, realmCfg, nil, nil, ""), nil
	}
	maskedUser := logging.MaskUsername(username, e.cfg.LogMaskUsername)

	// プロトコル選択: 不一致・複数一致はバックエンド照会なしで拒否
	proto, err := e.registry.Select(req.Packet, realmCfg.ProtocolAllowed)
	if err != nil {
		slog.Warn("プロトコル選択失敗",
			"event_id", "AUTH_PROTO_SELECT_ERR",
			"trace_id", req.TraceID,
			"realm", realmCfg.Name,
			"user_name", maskedUser,
			"error", err.Error(),
		)
		return e.reject(req, realmCfg, nil, nil, username), nil
	}

	user, err := e.directory.LookupUser(ctx, realmCfg.Name, username)
	if err != nil {
		if errors.Is(err, directory.ErrUserNotFound) {
			slog.Info("ユーザー未登録",
				"event_id", "AUTH_USER_NOT_FOUND",
				"trace_id", req.TraceID,
				"realm", realmCfg.Name,
				"user_name", maskedUser,
			)
		} else {
			slog.Error("ディレクトリ照会失敗",
				"event_id", "AUTH_DIRECTORY_ERR",
				"trace_id", req.TraceID,
				"realm", realmCfg.Name,
				"user_name", maskedUser,
				"error", err.Error(),
			)
		}
		return e.reject(req, realmCfg, proto, nil, username), nil
	}
	if !user.Enabled {
		slog.Info("ユーザー無効",
			"event_id", "AUTH_USER_DISABLED",
			"trace_id", req.TraceID,
			"realm", realmCfg.Name,
			"user_name", maskedUser,
		)
		return e.reject(req, realmCfg, proto, nil, username), nil
	}

	refs, err := e.secrets.ReferenceSecrets(ctx, realmCfg.Name, user)
	if err != nil {
		slog.Error("参照シークレット取得失敗",
			"event_id", "AUTH_SECRET_FETCH_ERR",
			"trace_id", req.TraceID,
			"realm", realmCfg.Name,
			"user_name", maskedUser,
			"error", err.Error(),
		)
		return e.reject(req, realmCfg, proto, nil, username), nil
	}

	cred, err := proto.DecodeCredential(req.Packet)
	if err != nil {
		slog.Warn("資格情報デコード失敗",
			"event_id", "AUTH_CRED_DECODE_ERR",
			"trace_id", req.TraceID,
			"realm", realmCfg.Name,
			"user_name", maskedUser,
			"protocol", proto.Name(),
			"error", err.Error(),
		)
		return e.reject(req, realmCfg, proto, nil, username), nil
	}

	matched, ok := proto.Verify(cred, refs)
	if !ok {
		slog.Info("認証拒否",
			"event_id", "AUTH_REJECT",
			"trace_id", req.TraceID,
			"realm", realmCfg.Name,
			"user_name", maskedUser,
			"protocol", proto.Name(),
		)
		return e.reject(req, realmCfg, proto, cred, username), nil
	}

	// セッション払い出し。記録できない認証は成立させない。
	nasID, _ := radiuspkg.GetNASIdentifier(req.Packet)
	sess := &session.Session{
		Realm:         realmCfg.Name,
		Username:      username,
		UserID:        user.ID,
		Protocol:      proto.Name(),
		NASIdentifier: nasID,
		NASIPAddress:  req.SrcIP,
	}
	if err := e.sessions.Create(ctx, sess); err != nil {
		slog.Error("セッション作成失敗",
			"event_id", "AUTH_SESSION_ERR",
			"trace_id", req.TraceID,
			"realm", realmCfg.Name,
			"user_name", maskedUser,
			"error", err.Error(),
		)
		return e.reject(req, realmCfg, proto, cred, username), nil
	}
	if err := e.sessions.PutNote(ctx, sess.ID, session.NoteSessionPassword, matched); err != nil {
		// ノートは読み返し用の補助情報。保存失敗で認証は取り消さない。
		slog.Warn("セッションノート保存失敗",
			"event_id", "AUTH_NOTE_ERR",
			"trace_id", req.TraceID,
			"realm", realmCfg.Name,
			"session_id", sess.ID,
			"error", err.Error(),
		)
	}

	resp := radiuspkg.NewAccessAccept(req.Packet)
	if err := proto.BuildReply(resp, req.Packet, req.Packet.Secret, cred, matched, true); err != nil {
		slog.Error("応答構築失敗",
			"event_id", "AUTH_REPLY_ERR",
			"trace_id", req.TraceID,
			"realm", realmCfg.Name,
			"protocol", proto.Name(),
			"error", err.Error(),
		)
		return e.reject(req, realmCfg, proto, cred, username), nil
	}
	radiuspkg.SetClass(resp, sess.ID)
	radiuspkg.SetSessionTimeout(resp, int(realmCfg.SessionTimeout))
	e.addRealmAttrs(resp, realmCfg, req.TraceID)

	slog.Info("認証成功",
		"event_id", "AUTH_ACCEPT",
		"trace_id", req.TraceID,
		"realm", realmCfg.Name,
		"user_name", maskedUser,
		"protocol", proto.Name(),
		"session_id", sess.ID,
	)
	return &Result{
		Action:    ActionAccept,
		Response:  resp,
		Realm:     realmCfg.Name,
		Username:  username,
		Protocol:  proto.Name(),
		SessionID: sess.ID,
	}, nil
}

// reject はAccess-Reject応答を組み立てる。
// プロトコルと資格情報が判明している場合は失敗属性（MS-CHAP-Error等）を付与する。
func (e *EngineImpl) reject(req *Request, realmCfg *realm.Config, proto auth.Protocol, cred *auth.Credential, username string) *Result {
	resp := radiuspkg.NewAccessReject(req.Packet)
	protoName := ""
	if proto != nil {
		protoName = proto.Name()
		if cred != nil {
			if err := proto.BuildReply(resp, req.Packet, req.Packet.Secret, cred, "", false); err != nil {
				slog.Warn("拒否応答構築失敗",
					"event_id", "AUTH_REPLY_ERR",
					"trace_id", req.TraceID,
					"realm", realmCfg.Name,
					"protocol", protoName,
					"error", err.Error(),
				)
			}
		}
	}
	return &Result{
		Action:   ActionReject,
		Response: resp,
		Realm:    realmCfg.Name,
		Username: username,
		Protocol: protoName,
	}
}

// addRealmAttrs はレルム設定の応答属性を辞書経由で付与する。
// 不正な属性値はその属性だけスキップする。
func (e *EngineImpl) addRealmAttrs(resp *radius.Packet, realmCfg *realm.Config, traceID string) {
	for name, value := range realmCfg.ReplyAttrs {
		if err := e.dict.AddToPacket(resp, name, value); err != nil {
			slog.Warn("応答属性スキップ",
				"event_id", "AUTH_ATTR_SKIP",
				"trace_id", traceID,
				"realm", realmCfg.Name,
				"attr", name,
				"error", err.Error(),
			)
		}
	}
}
