package monitor

import (
	"context"
	"fmt"

	psnet "github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"
)

// connectionLister abstracts the system connection table for tests.
type connectionLister interface {
	Connections(ctx context.Context) ([]psnet.ConnectionStat, error)
	ProcessName(pid int32) (string, error)
}

type systemConnections struct{}

func (systemConnections) Connections(ctx context.Context) ([]psnet.ConnectionStat, error) {
	return psnet.ConnectionsWithContext(ctx, "inet")
}

func (systemConnections) ProcessName(pid int32) (string, error) {
	proc, err := process.NewProcess(pid)
	if err != nil {
		return "", err
	}
	return proc.Name()
}

// networkProcesses lists established connections with their owning process,
// capped at the configured maximum. Processes that vanish between the
// connection listing and the name lookup are skipped.
func (m *Monitor) networkProcesses(ctx context.Context) []ProcessConn {
	conns, err := m.connections.Connections(ctx)
	if err != nil {
		m.events.Error("Process scan error: %v", err)
		return []ProcessConn{}
	}

	processes := make([]ProcessConn, 0, m.cfg.MaxProcesses)
	for _, conn := range conns {
		if conn.Status != "ESTABLISHED" || conn.Pid == 0 {
			continue
		}

		name, err := m.connections.ProcessName(conn.Pid)
		if err != nil {
			continue
		}

		remote := notAvailable
		if conn.Raddr.IP != "" {
			remote = fmt.Sprintf("%s:%d", conn.Raddr.IP, conn.Raddr.Port)
		}

		processes = append(processes, ProcessConn{
			PID:           conn.Pid,
			Name:          name,
			LocalAddress:  fmt.Sprintf("%s:%d", conn.Laddr.IP, conn.Laddr.Port),
			RemoteAddress: remote,
			Status:        conn.Status,
		})

		if len(processes) >= m.cfg.MaxProcesses {
			break
		}
	}

	return processes
}
