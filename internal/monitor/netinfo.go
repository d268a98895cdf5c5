package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"slices"

	psnet "github.com/shirou/gopsutil/v4/net"
)

// networkInfo collects hostname and the first non-loopback interface with an
// IPv4 address, plus the cached external identity. Failures degrade to "N/A"
// fields; a snapshot is never aborted over them.
func (m *Monitor) networkInfo() NetworkInfo {
	info := NetworkInfo{
		Hostname:      notAvailable,
		LocalIP:       notAvailable,
		MACAddress:    notAvailable,
		InterfaceName: notAvailable,
	}

	if hostname, err := os.Hostname(); err == nil {
		info.Hostname = hostname
	}

	interfaces, err := psnet.Interfaces()
	if err != nil {
		m.events.Error("Network info error: %v", err)
	} else {
		fillInterfaceInfo(&info, interfaces)
	}

	m.mutex.Lock()
	info.ExternalIP = m.externalIP
	info.Provider = m.provider
	m.mutex.Unlock()

	return info
}

func fillInterfaceInfo(info *NetworkInfo, interfaces psnet.InterfaceStatList) {
	for _, iface := range interfaces {
		if iface.Name == "lo" || slices.Contains(iface.Flags, "loopback") {
			continue
		}
		for _, addr := range iface.Addrs {
			ip, _, err := net.ParseCIDR(addr.Addr)
			if err != nil || ip.To4() == nil {
				continue
			}
			info.InterfaceName = iface.Name
			info.LocalIP = ip.String()
			if iface.HardwareAddr != "" {
				info.MACAddress = iface.HardwareAddr
			}
			return
		}
	}
}

func (m *Monitor) externalInfoDue() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.externalAt.IsZero() || m.now().Sub(m.externalAt) >= externalInfoMaxAge
}

// updateExternalInfo looks up the external IP and the ISP behind it. On any
// failure the previous values are kept.
func (m *Monitor) updateExternalInfo(ctx context.Context) {
	ip, err := m.fetchExternalIP(ctx)
	if err != nil {
		m.events.Error("External info update failed: %v", err)
		return
	}

	provider, err := m.fetchProvider(ctx, ip)
	if err != nil {
		m.events.Error("External info update failed: %v", err)
		return
	}

	m.mutex.Lock()
	m.externalIP = ip
	if provider != "" {
		m.provider = provider
	}
	m.externalAt = m.now()
	m.mutex.Unlock()
}

func (m *Monitor) fetchExternalIP(ctx context.Context) (string, error) {
	resp, err := m.infoClient.R().SetContext(ctx).Get(m.ipifyURL)
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("external IP lookup returned status %d", resp.StatusCode())
	}

	var body struct {
		IP string `json:"ip"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return "", fmt.Errorf("failed to parse external IP response: %w", err)
	}
	if body.IP == "" {
		return "", fmt.Errorf("external IP lookup returned no address")
	}
	return body.IP, nil
}

// fetchProvider resolves the ISP for an external IP, preferring the isp
// field and falling back to org.
func (m *Monitor) fetchProvider(ctx context.Context, ip string) (string, error) {
	resp, err := m.infoClient.R().SetContext(ctx).Get(fmt.Sprintf(m.ipAPIURL, ip))
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("provider lookup returned status %d", resp.StatusCode())
	}

	var body struct {
		ISP string `json:"isp"`
		Org string `json:"org"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return "", fmt.Errorf("failed to parse provider response: %w", err)
	}
	if body.ISP != "" {
		return body.ISP, nil
	}
	return body.Org, nil
}
