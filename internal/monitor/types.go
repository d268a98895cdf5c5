package monitor

// Snapshot is one full collection cycle. The JSON field names are a stable
// surface: the dashboard and API clients key on them.
type Snapshot struct {
	Timestamp    string        `json:"timestamp"`
	Availability Availability  `json:"availability"`
	Speed        Speed         `json:"speed"`
	NetworkInfo  NetworkInfo   `json:"network_info"`
	Traffic      Traffic       `json:"traffic"`
	Processes    []ProcessConn `json:"processes"`
	LastDown     string        `json:"last_down"`
}

// Availability is the result of one probe walk over the test URLs.
type Availability struct {
	Available  bool     `json:"available"`
	StatusCode int      `json:"status_code"`
	PingMs     *float64 `json:"ping"`
	TestURL    *string  `json:"test_url"`
}

// Speed holds the last speed test result in Mbps; nil when no measurement
// is available.
type Speed struct {
	DownloadMbps *float64 `json:"download"`
	UploadMbps   *float64 `json:"upload"`
}

type NetworkInfo struct {
	Hostname      string `json:"hostname"`
	LocalIP       string `json:"local_ip"`
	MACAddress    string `json:"mac_address"`
	InterfaceName string `json:"interface_name"`
	ExternalIP    string `json:"external_ip"`
	Provider      string `json:"provider"`
}

// Traffic reports interface totals since boot and rates over the last
// refresh interval.
type Traffic struct {
	SentTotalMB  float64 `json:"sent_total_mb"`
	RecvTotalMB  float64 `json:"recv_total_mb"`
	SentRateKbps float64 `json:"sent_rate_kbps"`
	RecvRateKbps float64 `json:"recv_rate_kbps"`
}

// ProcessConn is one established connection with its owning process.
type ProcessConn struct {
	PID           int32  `json:"pid"`
	Name          string `json:"name"`
	LocalAddress  string `json:"local_address"`
	RemoteAddress string `json:"remote_address"`
	Status        string `json:"status"`
}

const notAvailable = "N/A"
