package validate

import (
	"fmt"

	"wincluster-go/config"
)

// Rule checks one property of the cluster vars.
type Rule interface {
	Check(cfg config.ClusterConfig) error
}

// WitnessModes are the quorum modes that need a file share witness.
var WitnessModes = []string{"NodeAndFileShareMajority", "FileShareWitness"}

// RequiredString requires Key to hold a non-empty string.
type RequiredString struct {
	Key string
}

func (r RequiredString) Check(cfg config.ClusterConfig) error {
	if s, ok := cfg.String(r.Key); ok && s != "" {
		return nil
	}
	return ErrInvalid(fmt.Sprintf("%s must be set to a non-empty string in %s", r.Key, config.VarsRelPath))
}

// ClusterNodes requires Key to be a list with at least two entries.
type ClusterNodes struct {
	Key string
}

func (r ClusterNodes) Check(cfg config.ClusterConfig) error {
	if nodes, ok := cfg.List(r.Key); ok && len(nodes) >= 2 {
		return nil
	}
	return ErrInvalid(fmt.Sprintf("%s must be a list with at least two hostnames in %s", r.Key, config.VarsRelPath))
}

// WitnessPath requires quorum_witness_path when quorum_mode is one of WitnessModes.
// Any other quorum_mode, or none, passes.
type WitnessPath struct{}

func (WitnessPath) Check(cfg config.ClusterConfig) error {
	mode, _ := cfg.String("quorum_mode")
	if !requiresWitness(mode) {
		return nil
	}
	if wp, ok := cfg.String("quorum_witness_path"); ok && wp != "" {
		return nil
	}
	return ErrInvalid("quorum_witness_path must be set (non-empty string) when quorum_mode requires a file share witness")
}

func requiresWitness(mode string) bool {
	for _, m := range WitnessModes {
		if mode == m {
			return true
		}
	}
	return false
}

// DefaultRules is the rule set for group_vars/windows_cluster_nodes.yml, in report order.
func DefaultRules() []Rule {
	return []Rule{
		RequiredString{Key: "cluster_name"},
		RequiredString{Key: "cluster_ip"},
		ClusterNodes{Key: "cluster_nodes"},
		WitnessPath{},
	}
}

// CheckAll runs every rule and collects each violation. It never stops early.
func CheckAll(cfg config.ClusterConfig, rules []Rule) []string {
	var msgs []string
	for _, r := range rules {
		if r == nil {
			continue
		}
		if err := r.Check(cfg); err != nil {
			msgs = append(msgs, err.Error())
		}
	}
	return msgs
}

// MinHosts is the smallest cluster the inventory may describe.
const MinHosts = 2

func inventoryMessage(section string) string {
	return fmt.Sprintf("%s must contain at least two hosts in the [%s] section", config.InventoryRelPath, section)
}
