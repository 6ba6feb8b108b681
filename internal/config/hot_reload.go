package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// HotReloadConfig 热更新配置
type HotReloadConfig struct {
	Enabled  bool          // 是否启用热更新
	Debounce time.Duration // 合并连续事件，编辑器保存常触发多次写入
}

// DefaultHotReloadConfig 默认热更新配置
func DefaultHotReloadConfig() HotReloadConfig {
	return HotReloadConfig{
		Enabled:  true,
		Debounce: 300 * time.Millisecond,
	}
}

// HotReloader 监听一组文件，变化后调用 reload handler。
// 监听的是文件所在目录，所以文件被删除、重建或原子替换时也能收到事件。
type HotReloader struct {
	config        HotReloadConfig
	paths         map[string]struct{}
	watcher       *fsnotify.Watcher
	logger        *zap.Logger
	lastReload    time.Time
	pending       *time.Timer
	started       bool
	stopped       bool
	mu            sync.Mutex
	inflight      sync.WaitGroup // 已排期或正在执行的 handler
	stopChan      chan struct{}
	doneChan      chan struct{}
	reloadHandler func() error
}

// NewHotReloader 创建热更新器
func NewHotReloader(paths []string, cfg HotReloadConfig, logger *zap.Logger) (*HotReloader, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		set[filepath.Clean(p)] = struct{}{}
	}
	return &HotReloader{
		config:   cfg,
		paths:    set,
		watcher:  watcher,
		logger:   logger,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}, nil
}

// SetReloadHandler 设置重载处理函数
func (h *HotReloader) SetReloadHandler(handler func() error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reloadHandler = handler
}

// Start 启动热更新监听
func (h *HotReloader) Start(ctx context.Context) error {
	if !h.config.Enabled {
		return nil
	}

	dirs := make(map[string]struct{})
	for p := range h.paths {
		dirs[filepath.Dir(p)] = struct{}{}
	}
	for dir := range dirs {
		if err := h.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	h.mu.Lock()
	h.started = true
	h.mu.Unlock()
	go h.watch(ctx)

	return nil
}

// Stop 停止热更新，并等待正在执行的 handler 返回。
func (h *HotReloader) Stop() error {
	h.mu.Lock()
	started := h.started
	h.mu.Unlock()

	if started {
		select {
		case <-h.stopChan:
		default:
			close(h.stopChan)
		}
		<-h.doneChan
	}

	// watch 已退出，之后不会再有新的排期
	h.mu.Lock()
	h.stopped = true
	if h.pending != nil && h.pending.Stop() {
		h.inflight.Done()
	}
	h.pending = nil
	h.mu.Unlock()
	h.inflight.Wait()

	return h.watcher.Close()
}

// watch 监听文件变化
func (h *HotReloader) watch(ctx context.Context) {
	defer close(h.doneChan)

	for {
		select {
		case <-ctx.Done():
			return
		case <-h.stopChan:
			return
		case event, ok := <-h.watcher.Events:
			if !ok {
				return
			}
			if _, watched := h.paths[filepath.Clean(event.Name)]; !watched {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				h.logger.Debug("watched file changed", zap.String("path", event.Name), zap.Stringer("op", event.Op))
				h.schedule()
			}

		case err, ok := <-h.watcher.Errors:
			if !ok {
				return
			}
			// 记录错误但继续监听
			h.logger.Warn("watcher error", zap.Error(err))
		}
	}
}

func (h *HotReloader) schedule() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return
	}
	if h.pending != nil && h.pending.Stop() {
		h.inflight.Done()
	}
	h.inflight.Add(1)
	h.pending = time.AfterFunc(h.config.Debounce, h.handleChange)
}

// handleChange 处理文件变化，记录的是最后一次触发重载的时间。
func (h *HotReloader) handleChange() {
	defer h.inflight.Done()

	h.mu.Lock()
	handler := h.reloadHandler
	h.lastReload = time.Now()
	h.mu.Unlock()

	if handler == nil {
		return
	}
	if err := handler(); err != nil {
		h.logger.Warn("reload failed", zap.Error(err))
	}
}

// GetLastReloadTime 获取最后重载时间
func (h *HotReloader) GetLastReloadTime() time.Time {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastReload
}
