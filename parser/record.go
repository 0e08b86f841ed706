package parser

// Protocols a connection record may start with
const (
	TCP  = "TCP"
	UDP  = "UDP"
	ICMP = "ICMP"
)

type (
	// ConnectionRecord is one connection assembled from a "show conn detail"
	// block. Fields left empty were not present in the input.
	ConnectionRecord struct {
		Protocol     string `json:"protocol,omitempty"`
		SrcInterface string `json:"srcInterface,omitempty"`
		SrcIP        string `json:"srcIp,omitempty"`
		SrcPort      string `json:"srcPort,omitempty"`
		DstInterface string `json:"dstInterface,omitempty"`
		DstIP        string `json:"dstIp,omitempty"`
		DstPort      string `json:"dstPort,omitempty"`
		RawFlags     string `json:"rawFlags,omitempty"`
		Idle         string `json:"idle,omitempty"`
		Uptime       string `json:"uptime,omitempty"`
		Timeout      string `json:"timeout,omitempty"`
		BytesStr     string `json:"bytesStr,omitempty"`
		RxRingNum    string `json:"rxRingNum,omitempty"`
		InternalData string `json:"internalData,omitempty"`
		KeyID        string `json:"keyid,omitempty"`
		InitiatorIP  string `json:"initiatorIp,omitempty"`
		ResponderIP  string `json:"responderIp,omitempty"`
	}
)

// Fields returns the populated fields of the record keyed by field name
func (r ConnectionRecord) Fields() map[string]string {
	all := []struct {
		key, val string
	}{
		{"protocol", r.Protocol},
		{"srcInterface", r.SrcInterface},
		{"srcIp", r.SrcIP},
		{"srcPort", r.SrcPort},
		{"dstInterface", r.DstInterface},
		{"dstIp", r.DstIP},
		{"dstPort", r.DstPort},
		{"rawFlags", r.RawFlags},
		{"idle", r.Idle},
		{"uptime", r.Uptime},
		{"timeout", r.Timeout},
		{"bytesStr", r.BytesStr},
		{"rxRingNum", r.RxRingNum},
		{"internalData", r.InternalData},
		{"keyid", r.KeyID},
		{"initiatorIp", r.InitiatorIP},
		{"responderIp", r.ResponderIP},
	}

	fields := make(map[string]string)
	for _, f := range all {
		if f.val != "" {
			fields[f.key] = f.val
		}
	}
	return fields
}

// IsEmpty reports whether no field of the record has been set
func (r ConnectionRecord) IsEmpty() bool {
	return r == ConnectionRecord{}
}

// Valid reports whether the record carries a recognized protocol
func (r ConnectionRecord) Valid() bool {
	switch r.Protocol {
	case TCP, UDP, ICMP:
		return true
	}
	return false
}

// Source renders the source endpoint as ip:port
func (r ConnectionRecord) Source() string {
	return endpoint(r.SrcIP, r.SrcPort)
}

// Destination renders the destination endpoint as ip:port
func (r ConnectionRecord) Destination() string {
	return endpoint(r.DstIP, r.DstPort)
}

func endpoint(ip, port string) string {
	if ip == "" {
		ip = "N/A"
	}
	if port == "" {
		port = "N/A"
	}
	return ip + ":" + port
}
