// Command win_cluster_example runs the win_cluster_example action as an Ansible binary
// module: the optional first argument is a JSON args file, the result goes to stdout as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"wincluster-go/action"
	"wincluster-go/config"
	"wincluster-go/infrastructure/logger"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout))
}

func run(ctx context.Context, args []string, stdout io.Writer) int {
	log, err := logger.New(logger.ConfigWithEnvOverrides(config.EnvLogLevel))
	if err != nil {
		return fail(stdout, err)
	}
	defer log.Close()

	task, err := loadTask(args)
	if err != nil {
		log.LogError(err, map[string]interface{}{"args": args})
		return fail(stdout, err)
	}

	act, err := action.NewRegistry().Create(action.ClusterExampleName, action.Noop{})
	if err != nil {
		return fail(stdout, err)
	}
	res, err := act.Run(ctx, task)
	if err != nil {
		log.LogError(err, map[string]interface{}{"action": action.ClusterExampleName})
		return fail(stdout, err)
	}
	if err := json.NewEncoder(stdout).Encode(res); err != nil {
		return 1
	}
	return 0
}

// loadTask reads the args file Ansible passes to binary modules. Both a bare args
// object and one wrapped in ANSIBLE_MODULE_ARGS are accepted.
func loadTask(args []string) (action.Task, error) {
	if len(args) == 0 {
		return action.Task{}, nil
	}
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return action.Task{}, fmt.Errorf("read args file: %w", err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return action.Task{}, fmt.Errorf("parse args file: %w", err)
	}
	if wrapped, ok := doc["ANSIBLE_MODULE_ARGS"].(map[string]interface{}); ok {
		doc = wrapped
	}
	return action.Task{Args: doc}, nil
}

func fail(w io.Writer, err error) int {
	_ = json.NewEncoder(w).Encode(action.Result{"failed": true, "msg": err.Error()})
	return 1
}
