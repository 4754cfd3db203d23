package dict

// ベンダーID
const (
	VendorMicrosoft uint32 = 311
	VendorMikrotik  uint32 = 14988
)

// standardDefs は本サーバーが名前で扱う標準属性（RFC 2865/2869）
var standardDefs = []*Definition{
	{Name: "User-Name", Type: 1, Data: DataTypeString},
	{Name: "User-Password", Type: 2, Data: DataTypeOctets},
	{Name: "CHAP-Password", Type: 3, Data: DataTypeOctets},
	{Name: "NAS-IP-Address", Type: 4, Data: DataTypeIPAddr},
	{Name: "Service-Type", Type: 6, Data: DataTypeInteger},
	{Name: "Framed-IP-Address", Type: 8, Data: DataTypeIPAddr},
	{Name: "Framed-IP-Netmask", Type: 9, Data: DataTypeIPAddr},
	{Name: "Framed-MTU", Type: 12, Data: DataTypeInteger},
	{Name: "Reply-Message", Type: 18, Data: DataTypeString},
	{Name: "Class", Type: 25, Data: DataTypeOctets},
	{Name: "Session-Timeout", Type: 27, Data: DataTypeInteger},
	{Name: "Idle-Timeout", Type: 28, Data: DataTypeInteger},
	{Name: "NAS-Identifier", Type: 32, Data: DataTypeString},
	{Name: "CHAP-Challenge", Type: 60, Data: DataTypeOctets},
	{Name: "NAS-Port-Type", Type: 61, Data: DataTypeInteger},
	{Name: "Acct-Interim-Interval", Type: 85, Data: DataTypeInteger},
}

// microsoftDefs はMicrosoftベンダー属性（RFC 2548）
var microsoftDefs = []*Definition{
	{Name: "MS-CHAP-Response", Type: 1, VendorID: VendorMicrosoft, Data: DataTypeOctets},
	{Name: "MS-CHAP-Error", Type: 2, VendorID: VendorMicrosoft, Data: DataTypeString},
	{Name: "MS-CHAP-Domain", Type: 10, VendorID: VendorMicrosoft, Data: DataTypeString},
	{Name: "MS-CHAP-Challenge", Type: 11, VendorID: VendorMicrosoft, Data: DataTypeOctets},
	{Name: "MS-CHAP-MPPE-Keys", Type: 12, VendorID: VendorMicrosoft, Data: DataTypeOctets},
	{Name: "MS-MPPE-Encryption-Policy", Type: 7, VendorID: VendorMicrosoft, Data: DataTypeInteger},
	{Name: "MS-MPPE-Encryption-Types", Type: 8, VendorID: VendorMicrosoft, Data: DataTypeInteger},
	{Name: "MS-MPPE-Send-Key", Type: 16, VendorID: VendorMicrosoft, Data: DataTypeOctets},
	{Name: "MS-MPPE-Recv-Key", Type: 17, VendorID: VendorMicrosoft, Data: DataTypeOctets},
	{Name: "MS-CHAP2-Response", Type: 25, VendorID: VendorMicrosoft, Data: DataTypeOctets},
	{Name: "MS-CHAP2-Success", Type: 26, VendorID: VendorMicrosoft, Data: DataTypeOctets},
}

// mikrotikDefs はMikrotikベンダー属性
var mikrotikDefs = []*Definition{
	{Name: "Mikrotik-Recv-Limit", Type: 1, VendorID: VendorMikrotik, Data: DataTypeInteger},
	{Name: "Mikrotik-Xmit-Limit", Type: 2, VendorID: VendorMikrotik, Data: DataTypeInteger},
	{Name: "Mikrotik-Group", Type: 3, VendorID: VendorMikrotik, Data: DataTypeString},
	{Name: "Mikrotik-Wireless-Forward", Type: 4, VendorID: VendorMikrotik, Data: DataTypeInteger},
	{Name: "Mikrotik-Wireless-Skip-Dot1x", Type: 5, VendorID: VendorMikrotik, Data: DataTypeInteger},
	{Name: "Mikrotik-Wireless-Enc-Algo", Type: 6, VendorID: VendorMikrotik, Data: DataTypeInteger},
	{Name: "Mikrotik-Wireless-Enc-Key", Type: 7, VendorID: VendorMikrotik, Data: DataTypeString},
	{Name: "Mikrotik-Rate-Limit", Type: 8, VendorID: VendorMikrotik, Data: DataTypeString},
	{Name: "Mikrotik-Realm", Type: 9, VendorID: VendorMikrotik, Data: DataTypeString},
	{Name: "Mikrotik-Host-IP", Type: 10, VendorID: VendorMikrotik, Data: DataTypeIPAddr},
	{Name: "Mikrotik-Mark-Id", Type: 11, VendorID: VendorMikrotik, Data: DataTypeString},
	{Name: "Mikrotik-Advertise-URL", Type: 12, VendorID: VendorMikrotik, Data: DataTypeString},
	{Name: "Mikrotik-Address-List", Type: 19, VendorID: VendorMikrotik, Data: DataTypeString},
}

// Builtin は標準 + Microsoft + Mikrotik辞書をロードしたDictionaryを返す。
// 定義テーブルは静的のため、登録エラーはプログラミングエラーとしてpanicする。
func Builtin() *Dictionary {
	d := New()
	for _, defs := range [][]*Definition{standardDefs, microsoftDefs, mikrotikDefs} {
		for _, def := range defs {
			if err := d.Register(def); err != nil {
				panic(err)
			}
		}
	}
	return d
}
