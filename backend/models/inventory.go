// ABOUTME: GPU inventory discovered from vSphere hosts
// ABOUTME: Per-cluster GPU counts feed the gpu_count input of an estimate

package models

// ClusterGPUs summarizes GPUs found on one compute cluster.
type ClusterGPUs struct {
	Name      string         `json:"name"`
	HostCount int            `json:"host_count"`
	GPUCount  int            `json:"gpu_count"`
	GPUModels map[string]int `json:"gpu_models"`
}

// GPUInventory is the datacenter-wide GPU count.
type GPUInventory struct {
	Datacenter     string        `json:"datacenter"`
	Clusters       []ClusterGPUs `json:"clusters"`
	TotalGPUCount  int           `json:"total_gpu_count"`
	TotalHostCount int           `json:"total_host_count"`
	Timestamp      string        `json:"timestamp"`
	Cached         bool          `json:"cached"`
}
