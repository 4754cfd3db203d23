// Package dict はRADIUS属性辞書を提供する。
// 標準属性とベンダー固有属性（Microsoft / Mikrotik）の定義を名前および
// (vendor-id, type) で引けるようにし、型付きコーデックで値を変換する。
package dict

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"net"
	"strconv"

	"layeh.com/radius"
)

// DataType は属性値のデータ型を表す（RFC 2865 Section 5）
type DataType string

const (
	DataTypeString  DataType = "string"
	DataTypeInteger DataType = "integer"
	DataTypeIPAddr  DataType = "ipaddr"
	DataTypeOctets  DataType = "octets"
)

// Definition は属性定義を表す。ロード後は不変。
type Definition struct {
	Name     string
	Type     byte
	VendorID uint32 // 0は標準属性
	Data     DataType
}

// attrKey は(vendor-id, type)による検索キー
type attrKey struct {
	vendor uint32
	typ    byte
}

// Dictionary は属性定義の集合。初期化後の読み取りは並行安全。
type Dictionary struct {
	byName map[string]*Definition
	byKey  map[attrKey]*Definition
}

// New は空のDictionaryを生成する
func New() *Dictionary {
	return &Dictionary{
		byName: make(map[string]*Definition),
		byKey:  make(map[attrKey]*Definition),
	}
}

// Register は属性定義を登録する。名前またはキーの重複はエラー。
func (d *Dictionary) Register(def *Definition) error {
	if _, ok := d.byName[def.Name]; ok {
		return fmt.Errorf("%w: name %s", ErrDuplicateDefinition, def.Name)
	}
	key := attrKey{vendor: def.VendorID, typ: def.Type}
	if _, ok := d.byKey[key]; ok {
		return fmt.Errorf("%w: vendor=%d type=%d", ErrDuplicateDefinition, def.VendorID, def.Type)
	}
	d.byName[def.Name] = def
	d.byKey[key] = def
	return nil
}

// Lookup は属性定義を名前で検索する
func (d *Dictionary) Lookup(name string) (*Definition, bool) {
	def, ok := d.byName[name]
	return def, ok
}

// Find は属性定義を(vendor-id, type)で検索する
func (d *Dictionary) Find(vendorID uint32, typ byte) (*Definition, bool) {
	def, ok := d.byKey[attrKey{vendor: vendorID, typ: typ}]
	return def, ok
}

// EncodeValue は文字列表現の属性値をワイヤ形式に変換する。
// integer: 10進文字列 → 4バイトBE、ipaddr: ドット表記 → 4バイト、
// octets: hex文字列 → バイト列。
func (d *Dictionary) EncodeValue(def *Definition, value string) (radius.Attribute, error) {
	switch def.Data {
	case DataTypeString:
		return radius.Attribute(value), nil
	case DataTypeInteger:
		n, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q: %v", ErrInvalidValue, def.Name, value, err)
		}
		b := make(radius.Attribute, 4)
		binary.BigEndian.PutUint32(b, uint32(n))
		return b, nil
	case DataTypeIPAddr:
		ip := net.ParseIP(value)
		if ip == nil || ip.To4() == nil {
			return nil, fmt.Errorf("%w: %s=%q: not an IPv4 address", ErrInvalidValue, def.Name, value)
		}
		return radius.Attribute(ip.To4()), nil
	case DataTypeOctets:
		b, err := hex.DecodeString(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q: %v", ErrInvalidValue, def.Name, value, err)
		}
		return radius.Attribute(b), nil
	default:
		return nil, fmt.Errorf("%w: %s: data type %q", ErrInvalidValue, def.Name, def.Data)
	}
}

// DecodeValue はワイヤ形式の属性値を文字列表現に変換する。
// 型と長さが合わない値はoctetsとしてhexダンプする（デコードで落とさない）。
func (d *Dictionary) DecodeValue(def *Definition, attr radius.Attribute) string {
	switch def.Data {
	case DataTypeString:
		return string(attr)
	case DataTypeInteger:
		if len(attr) == 4 {
			return strconv.FormatUint(uint64(binary.BigEndian.Uint32(attr)), 10)
		}
	case DataTypeIPAddr:
		if len(attr) == 4 {
			return net.IP(attr).String()
		}
	}
	return hex.EncodeToString(attr)
}

// AddToPacket は名前指定の属性をパケットに追加する。
// ベンダー属性はVendor-Specific(26)にラップされる。
func (d *Dictionary) AddToPacket(p *radius.Packet, name, value string) error {
	def, ok := d.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAttribute, name)
	}
	encoded, err := d.EncodeValue(def, value)
	if err != nil {
		return err
	}
	if def.VendorID == 0 {
		p.Add(radius.Type(def.Type), encoded)
		return nil
	}
	p.Add(typeVendorSpecific, WrapVSA(def.VendorID, def.Type, encoded))
	return nil
}

// AttributeName は(vendor-id, type)に対応する属性名を返す。
// 未知の属性は "Vendor-<id>-Attr-<type>" / "Attr-<type>" 形式で返す。
func (d *Dictionary) AttributeName(vendorID uint32, typ byte) string {
	if def, ok := d.Find(vendorID, typ); ok {
		return def.Name
	}
	if vendorID != 0 {
		return fmt.Sprintf("Vendor-%d-Attr-%d", vendorID, typ)
	}
	return fmt.Sprintf("Attr-%d", typ)
}

// typeVendorSpecific はVendor-Specific属性の属性番号（RFC 2865 Section 5.26）
const typeVendorSpecific = radius.Type(26)

// WrapVSA はベンダーID・サブ属性タイプ・値をVendor-Specific属性値に包む
func WrapVSA(vendorID uint32, typ byte, value radius.Attribute) radius.Attribute {
	b := make(radius.Attribute, 4+2+len(value))
	binary.BigEndian.PutUint32(b[0:4], vendorID)
	b[4] = typ
	b[5] = byte(2 + len(value))
	copy(b[6:], value)
	return b
}

// UnwrapVSA はVendor-Specific属性値からベンダーIDとサブ属性を取り出す。
// サブ属性が複数連結されている場合は先頭のみ返す。
func UnwrapVSA(attr radius.Attribute) (vendorID uint32, typ byte, value radius.Attribute, err error) {
	if len(attr) < 6 {
		return 0, 0, nil, fmt.Errorf("%w: vendor-specific too short (%d bytes)", ErrMalformedVSA, len(attr))
	}
	vendorID = binary.BigEndian.Uint32(attr[0:4])
	typ = attr[4]
	subLen := int(attr[5])
	if subLen < 2 || 4+subLen > len(attr) {
		return 0, 0, nil, fmt.Errorf("%w: sub-attribute length %d", ErrMalformedVSA, subLen)
	}
	return vendorID, typ, radius.Attribute(attr[6 : 4+subLen]), nil
}
