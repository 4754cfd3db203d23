package auth

import (
	"fmt"

	"layeh.com/radius"
)

// Registry は対応プロトコルの集合を保持し、リクエストに適用する
// プロトコルをちょうど1つ選択する。
// 登録は起動時（リクエスト受付前）に完了させること。以降の読み取りは並行安全。
type Registry struct {
	protocols []Protocol
}

// NewRegistry は空のRegistryを生成する
func NewRegistry() *Registry {
	return &Registry{}
}

// Register はプロトコル実装を登録する
func (r *Registry) Register(p Protocol) {
	r.protocols = append(r.protocols, p)
}

// Protocols は登録済みプロトコルを登録順で返す
func (r *Registry) Protocols() []Protocol {
	return r.protocols
}

// Select はパケットに適用するプロトコルを選択する。
// allowedがnilでない場合、レルムで無効なプロトコルは候補から除外される。
// 候補が0件ならErrNoProtocolMatched、2件以上ならErrAmbiguousProtocol。
func (r *Registry) Select(p *radius.Packet, allowed func(name string) bool) (Protocol, error) {
	var selected Protocol
	for _, proto := range r.protocols {
		if allowed != nil && !allowed(proto.Name()) {
			continue
		}
		if !proto.Match(p) {
			continue
		}
		if selected != nil {
			return nil, fmt.Errorf("%w: %s and %s", ErrAmbiguousProtocol, selected.Name(), proto.Name())
		}
		selected = proto
	}
	if selected == nil {
		return nil, ErrNoProtocolMatched
	}
	return selected, nil
}
