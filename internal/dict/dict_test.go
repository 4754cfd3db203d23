package dict

import (
	"bytes"
	"errors"
	"testing"

	"layeh.com/radius"
	"layeh.com/radius/rfc2865"
)

func vendorSpecificGets(p *radius.Packet) (values []radius.Attribute, err error) {
	for _, avp := range p.Attributes {
		if avp.Type == rfc2865.VendorSpecific_Type {
			values = append(values, avp.Attribute)
		}
	}
	return
}

func TestBuiltinLookup(t *testing.T) {
	d := Builtin()

	tests := []struct {
		name   string
		vendor uint32
		typ    byte
		data   DataType
	}{
		{"User-Name", 0, 1, DataTypeString},
		{"Session-Timeout", 0, 27, DataTypeInteger},
		{"MS-CHAP-Challenge", VendorMicrosoft, 11, DataTypeOctets},
		{"MS-CHAP2-Response", VendorMicrosoft, 25, DataTypeOctets},
		{"Mikrotik-Rate-Limit", VendorMikrotik, 8, DataTypeString},
		{"Mikrotik-Host-IP", VendorMikrotik, 10, DataTypeIPAddr},
	}
	for _, tt := range tests {
		def, ok := d.Lookup(tt.name)
		if !ok {
			t.Fatalf("Lookup(%q): not found", tt.name)
		}
		if def.VendorID != tt.vendor || def.Type != tt.typ || def.Data != tt.data {
			t.Errorf("%s: got {vendor=%d type=%d data=%s}, want {vendor=%d type=%d data=%s}",
				tt.name, def.VendorID, def.Type, def.Data, tt.vendor, tt.typ, tt.data)
		}

		found, ok := d.Find(tt.vendor, tt.typ)
		if !ok || found.Name != tt.name {
			t.Errorf("Find(%d, %d): got %v, want %s", tt.vendor, tt.typ, found, tt.name)
		}
	}
}

func TestRegisterDuplicate(t *testing.T) {
	d := New()
	def := &Definition{Name: "Test-Attr", Type: 200, Data: DataTypeString}
	if err := d.Register(def); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	err := d.Register(&Definition{Name: "Test-Attr", Type: 201, Data: DataTypeString})
	if !errors.Is(err, ErrDuplicateDefinition) {
		t.Errorf("duplicate name: got %v, want ErrDuplicateDefinition", err)
	}
	err = d.Register(&Definition{Name: "Other-Attr", Type: 200, Data: DataTypeString})
	if !errors.Is(err, ErrDuplicateDefinition) {
		t.Errorf("duplicate key: got %v, want ErrDuplicateDefinition", err)
	}
}

func TestEncodeValue(t *testing.T) {
	d := Builtin()

	tests := []struct {
		attr  string
		value string
		want  []byte
	}{
		{"Reply-Message", "hello", []byte("hello")},
		{"Session-Timeout", "3600", []byte{0x00, 0x00, 0x0e, 0x10}},
		{"Framed-IP-Address", "192.168.1.10", []byte{192, 168, 1, 10}},
		{"CHAP-Challenge", "deadbeef", []byte{0xde, 0xad, 0xbe, 0xef}},
	}
	for _, tt := range tests {
		def, _ := d.Lookup(tt.attr)
		got, err := d.EncodeValue(def, tt.value)
		if err != nil {
			t.Fatalf("EncodeValue(%s, %q) failed: %v", tt.attr, tt.value, err)
		}
		if !bytes.Equal(got, tt.want) {
			t.Errorf("EncodeValue(%s, %q): got %x, want %x", tt.attr, tt.value, got, tt.want)
		}
	}
}

func TestEncodeValueInvalid(t *testing.T) {
	d := Builtin()

	tests := []struct {
		attr  string
		value string
	}{
		{"Session-Timeout", "not-a-number"},
		{"Framed-IP-Address", "::1"},
		{"CHAP-Challenge", "zz"},
	}
	for _, tt := range tests {
		def, _ := d.Lookup(tt.attr)
		if _, err := d.EncodeValue(def, tt.value); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("EncodeValue(%s, %q): got %v, want ErrInvalidValue", tt.attr, tt.value, err)
		}
	}
}

func TestDecodeValueRoundTrip(t *testing.T) {
	d := Builtin()

	tests := []struct {
		attr  string
		value string
	}{
		{"Reply-Message", "ok"},
		{"Session-Timeout", "600"},
		{"Framed-IP-Address", "10.0.0.1"},
		{"CHAP-Challenge", "0102030405060708"},
	}
	for _, tt := range tests {
		def, _ := d.Lookup(tt.attr)
		encoded, err := d.EncodeValue(def, tt.value)
		if err != nil {
			t.Fatalf("EncodeValue(%s) failed: %v", tt.attr, err)
		}
		if got := d.DecodeValue(def, encoded); got != tt.value {
			t.Errorf("round trip %s: got %q, want %q", tt.attr, got, tt.value)
		}
	}
}

func TestDecodeValueWrongLength(t *testing.T) {
	d := Builtin()
	def, _ := d.Lookup("Session-Timeout")

	// integerとして不正な長さはhexダンプになる
	got := d.DecodeValue(def, radius.Attribute{0x01, 0x02})
	if got != "0102" {
		t.Errorf("DecodeValue: got %q, want %q", got, "0102")
	}
}

func TestAddToPacketStandard(t *testing.T) {
	d := Builtin()
	p := radius.New(radius.CodeAccessAccept, []byte("secret"))

	if err := d.AddToPacket(p, "Session-Timeout", "1800"); err != nil {
		t.Fatalf("AddToPacket failed: %v", err)
	}
	if got := rfc2865.SessionTimeout_Get(p); got != 1800 {
		t.Errorf("Session-Timeout: got %d, want 1800", got)
	}
}

func TestAddToPacketVendor(t *testing.T) {
	d := Builtin()
	p := radius.New(radius.CodeAccessAccept, []byte("secret"))

	if err := d.AddToPacket(p, "Mikrotik-Rate-Limit", "10M/10M"); err != nil {
		t.Fatalf("AddToPacket failed: %v", err)
	}

	vsas, err := vendorSpecificGets(p)
	if err != nil || len(vsas) != 1 {
		t.Fatalf("VendorSpecific_Gets: got %d attrs, err=%v", len(vsas), err)
	}
	vendorID, typ, value, err := UnwrapVSA(vsas[0])
	if err != nil {
		t.Fatalf("UnwrapVSA failed: %v", err)
	}
	if vendorID != VendorMikrotik || typ != 8 {
		t.Errorf("VSA header: got vendor=%d type=%d, want vendor=%d type=8", vendorID, typ, VendorMikrotik)
	}
	if string(value) != "10M/10M" {
		t.Errorf("VSA value: got %q, want %q", value, "10M/10M")
	}
}

func TestAddToPacketUnknown(t *testing.T) {
	d := Builtin()
	p := radius.New(radius.CodeAccessAccept, []byte("secret"))

	err := d.AddToPacket(p, "No-Such-Attr", "x")
	if !errors.Is(err, ErrUnknownAttribute) {
		t.Errorf("got %v, want ErrUnknownAttribute", err)
	}
}

func TestUnwrapVSAMalformed(t *testing.T) {
	if _, _, _, err := UnwrapVSA(radius.Attribute{0x00, 0x00}); !errors.Is(err, ErrMalformedVSA) {
		t.Errorf("short VSA: got %v, want ErrMalformedVSA", err)
	}
	// サブ属性長がデータ範囲を超える
	bad := WrapVSA(VendorMikrotik, 8, radius.Attribute("x"))
	bad[5] = 0xff
	if _, _, _, err := UnwrapVSA(bad); !errors.Is(err, ErrMalformedVSA) {
		t.Errorf("bad sub length: got %v, want ErrMalformedVSA", err)
	}
}

func TestAttributeName(t *testing.T) {
	d := Builtin()
	if got := d.AttributeName(0, 1); got != "User-Name" {
		t.Errorf("got %q, want User-Name", got)
	}
	if got := d.AttributeName(VendorMicrosoft, 11); got != "MS-CHAP-Challenge" {
		t.Errorf("got %q, want MS-CHAP-Challenge", got)
	}
	if got := d.AttributeName(9, 1); got != "Vendor-9-Attr-1" {
		t.Errorf("got %q, want Vendor-9-Attr-1", got)
	}
	if got := d.AttributeName(0, 250); got != "Attr-250" {
		t.Errorf("got %q, want Attr-250", got)
	}
}
