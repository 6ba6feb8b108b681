package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// VarsRelPath is the group_vars file for the cluster nodes group.
	VarsRelPath = "group_vars/windows_cluster_nodes.yml"
	// InventoryRelPath is the INI inventory.
	InventoryRelPath = "inventory/hosts.ini"
	// TargetSection is the inventory group whose hosts form the cluster.
	TargetSection = "windows_cluster_nodes"
)

// Env overrides.
const (
	EnvRoot            = "WINCLUSTER_ROOT"
	EnvLogLevel        = "WINCLUSTER_LOG_LEVEL"
	EnvMetricsTextfile = "WINCLUSTER_METRICS_TEXTFILE"
)

// Layout locates the inputs inside a repository checkout.
type Layout struct {
	Root string
}

// VarsFile returns the absolute path of the group_vars file.
func (l Layout) VarsFile() string {
	return filepath.Join(l.Root, filepath.FromSlash(VarsRelPath))
}

// InventoryFile returns the absolute path of the inventory file.
func (l Layout) InventoryFile() string {
	return filepath.Join(l.Root, filepath.FromSlash(InventoryRelPath))
}

// LayoutWithEnvOverrides uses the working directory as root unless WINCLUSTER_ROOT is set.
func LayoutWithEnvOverrides() (Layout, error) {
	root := os.Getenv(EnvRoot)
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Layout{}, fmt.Errorf("resolve working directory: %w", err)
		}
		root = wd
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return Layout{}, fmt.Errorf("resolve repo root %s: %w", root, err)
	}
	return Layout{Root: abs}, nil
}
