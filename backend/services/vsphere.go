// ABOUTME: vSphere client for GPU inventory discovery via govmomi
// ABOUTME: Counts NVIDIA display controllers on every ESXi host, per compute cluster

package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/nullsector/gpu-tco-analyzer/backend/models"
	"github.com/vmware/govmomi"
	"github.com/vmware/govmomi/find"
	"github.com/vmware/govmomi/object"
	"github.com/vmware/govmomi/vim25/mo"
	"github.com/vmware/govmomi/vim25/types"
	"golang.org/x/sync/errgroup"
)

// PCI identifiers used to recognize GPUs.
const (
	NVIDIAVendorID int16 = 0x10de
	pciClassVGA    int16 = 0x0300
	pciClass3D     int16 = 0x0302
)

const defaultHostWorkers = 8

// VSphereCredentials holds vCenter connection info
type VSphereCredentials struct {
	Host       string
	Username   string
	Password   string
	Datacenter string
	Insecure   bool
}

// VSphereClient wraps govmomi client for GPU discovery
type VSphereClient struct {
	creds       VSphereCredentials
	concurrency int
	client      *govmomi.Client
	finder      *find.Finder
	datacenter  *object.Datacenter
}

// NewVSphereClient creates a new vSphere client. concurrency bounds the
// number of hosts queried at once.
func NewVSphereClient(creds VSphereCredentials, concurrency int) *VSphereClient {
	if concurrency < 1 {
		concurrency = defaultHostWorkers
	}
	return &VSphereClient{
		creds:       creds,
		concurrency: concurrency,
	}
}

// Connect establishes connection to vCenter
func (v *VSphereClient) Connect(ctx context.Context) error {
	u, err := sdkURL(v.creds)
	if err != nil {
		return err
	}

	client, err := govmomi.NewClient(ctx, u, v.creds.Insecure)
	if err != nil {
		return connectError(v.creds.Host, err)
	}

	v.client = client
	v.finder = find.NewFinder(client.Client, true)

	dc, err := v.finder.Datacenter(ctx, v.creds.Datacenter)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return fmt.Errorf("datacenter '%s' not found - verify the datacenter name", v.creds.Datacenter)
		}
		return fmt.Errorf("error accessing datacenter '%s': %w", v.creds.Datacenter, err)
	}
	v.datacenter = dc
	v.finder.SetDatacenter(dc)

	slog.Info("vSphere connected successfully")
	slog.Debug("vSphere connection details", "host", v.creds.Host, "datacenter", v.creds.Datacenter)
	return nil
}

// sdkURL builds the vCenter SDK endpoint with credentials attached.
func sdkURL(creds VSphereCredentials) (*url.URL, error) {
	host := creds.Host
	if !strings.HasPrefix(host, "https://") && !strings.HasPrefix(host, "http://") {
		host = "https://" + host
	}

	u, err := url.Parse(host + "/sdk")
	if err != nil {
		return nil, fmt.Errorf("invalid vCenter URL '%s': %w", creds.Host, err)
	}
	u.User = url.UserPassword(creds.Username, creds.Password)
	return u, nil
}

// connectError maps common connection failures to actionable messages.
func connectError(host string, err error) error {
	errStr := err.Error()
	switch {
	case strings.Contains(errStr, "connection refused"):
		return fmt.Errorf("connection refused to vCenter at %s - verify the host is reachable", host)
	case strings.Contains(errStr, "no such host"):
		return fmt.Errorf("cannot resolve vCenter hostname '%s' - verify DNS", host)
	case strings.Contains(errStr, "401") || strings.Contains(errStr, "Cannot complete login"):
		return fmt.Errorf("authentication failed - verify username and password")
	case strings.Contains(errStr, "context deadline exceeded") || strings.Contains(errStr, "timeout"):
		return fmt.Errorf("connection timeout to vCenter at %s - check network connectivity", host)
	case strings.Contains(errStr, "certificate") || strings.Contains(errStr, "x509"):
		return fmt.Errorf("SSL certificate error connecting to %s - try setting VSPHERE_INSECURE=true", host)
	default:
		return fmt.Errorf("failed to connect to vCenter at %s: %w", host, err)
	}
}

// Disconnect closes the vCenter connection
func (v *VSphereClient) Disconnect(ctx context.Context) error {
	if v.client != nil {
		return v.client.Logout(ctx)
	}
	return nil
}

// IsConnected returns true if client has an active connection
func (v *VSphereClient) IsConnected() bool {
	return v.client != nil && v.client.Valid()
}

// hostGPUs is the GPU count of a single ESXi host.
type hostGPUs struct {
	name   string
	count  int
	models map[string]int
}

// GetGPUInventory counts GPUs on every host of every compute cluster in the datacenter.
func (v *VSphereClient) GetGPUInventory(ctx context.Context) (models.GPUInventory, error) {
	if v.finder == nil {
		return models.GPUInventory{}, fmt.Errorf("vSphere client is not connected")
	}

	clusters, err := v.finder.ClusterComputeResourceList(ctx, "*")
	if err != nil {
		return models.GPUInventory{}, fmt.Errorf("listing clusters: %w", err)
	}

	inv := models.GPUInventory{
		Datacenter: v.creds.Datacenter,
		Clusters:   make([]models.ClusterGPUs, 0, len(clusters)),
	}

	for _, cluster := range clusters {
		info, err := v.getClusterGPUs(ctx, cluster)
		if err != nil {
			return models.GPUInventory{}, fmt.Errorf("getting cluster %s GPUs: %w", cluster.Name(), err)
		}
		inv.Clusters = append(inv.Clusters, info)
		inv.TotalGPUCount += info.GPUCount
		inv.TotalHostCount += info.HostCount
	}

	inv.Timestamp = time.Now().UTC().Format(time.RFC3339)
	slog.Info("vSphere GPU discovery complete", "clusters", len(inv.Clusters), "hosts", inv.TotalHostCount, "gpus", inv.TotalGPUCount)
	return inv, nil
}

// getClusterGPUs queries the cluster's hosts concurrently and sums their GPUs.
func (v *VSphereClient) getClusterGPUs(ctx context.Context, cluster *object.ClusterComputeResource) (models.ClusterGPUs, error) {
	hosts, err := cluster.Hosts(ctx)
	if err != nil {
		return models.ClusterGPUs{}, fmt.Errorf("listing hosts: %w", err)
	}

	results := make([]hostGPUs, len(hosts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.concurrency)
	for i, host := range hosts {
		g.Go(func() error {
			r, err := getHostGPUs(gctx, host)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.ClusterGPUs{}, err
	}

	return summarizeCluster(cluster.Name(), results), nil
}

// getHostGPUs reads a host's PCI device list.
func getHostGPUs(ctx context.Context, host *object.HostSystem) (hostGPUs, error) {
	var hostMo mo.HostSystem
	err := host.Properties(ctx, host.Reference(), []string{"name", "hardware.pciDevice"}, &hostMo)
	if err != nil {
		return hostGPUs{}, fmt.Errorf("getting host %s properties: %w", host.Reference().Value, err)
	}

	var devices []types.HostPciDevice
	if hostMo.Hardware != nil {
		devices = hostMo.Hardware.PciDevice
	}
	count, gpuModels := countGPUs(devices)

	slog.Debug("vSphere host scanned", "host", hostMo.Name, "gpus", count)
	return hostGPUs{name: hostMo.Name, count: count, models: gpuModels}, nil
}

// countGPUs counts NVIDIA VGA and 3D controllers, keyed by device name.
func countGPUs(devices []types.HostPciDevice) (int, map[string]int) {
	count := 0
	byModel := make(map[string]int)
	for _, d := range devices {
		if d.VendorId != NVIDIAVendorID {
			continue
		}
		if d.ClassId != pciClassVGA && d.ClassId != pciClass3D {
			continue
		}
		count++
		name := d.DeviceName
		if name == "" {
			name = fmt.Sprintf("device 0x%04x", uint16(d.DeviceId))
		}
		byModel[name]++
	}
	return count, byModel
}

// summarizeCluster folds per-host counts into a cluster summary.
func summarizeCluster(name string, hosts []hostGPUs) models.ClusterGPUs {
	summary := models.ClusterGPUs{
		Name:      name,
		HostCount: len(hosts),
		GPUModels: make(map[string]int),
	}
	for _, h := range hosts {
		summary.GPUCount += h.count
		for model, n := range h.models {
			summary.GPUModels[model] += n
		}
	}
	return summary
}
