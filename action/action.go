// Package action holds controller-side actions that decorate the result of a base task.
package action

import "context"

// Message is the msg field set by ClusterExample.
const Message = "Action plugin executed on controller"

// Task carries what the orchestration runtime hands an action: the task args
// and the host/task variables.
type Task struct {
	Args map[string]interface{} `json:"args,omitempty"`
	Vars map[string]interface{} `json:"vars,omitempty"`
}

// Result is the mapping returned to the runtime.
type Result map[string]interface{}

// Executor runs the base task and returns its result mapping. Argument handling and
// connection management belong to the implementation.
type Executor interface {
	Run(ctx context.Context, task Task) (Result, error)
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(ctx context.Context, task Task) (Result, error)

func (f ExecutorFunc) Run(ctx context.Context, task Task) (Result, error) { return f(ctx, task) }

// ClusterExample runs the base task and adds a fixed message to its result.
type ClusterExample struct {
	Base Executor
}

func (a ClusterExample) Run(ctx context.Context, task Task) (Result, error) {
	var res Result
	if a.Base != nil {
		var err error
		res, err = a.Base.Run(ctx, task)
		if err != nil {
			return nil, err
		}
	}
	if res == nil {
		res = Result{}
	}
	res["msg"] = Message
	return res, nil
}

// Noop is a base executor with nothing to do; it reports an unchanged host.
type Noop struct{}

func (Noop) Run(ctx context.Context, _ Task) (Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Result{"changed": false}, nil
}
