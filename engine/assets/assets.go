package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/vignette/engine/core"
	"github.com/spaghettifunk/vignette/engine/jobs"
)

var (
	ErrAssetNotFound = errors.New("asset not found")
	ErrNoLoader      = errors.New("no loader registered for asset type")
	ErrClosed        = errors.New("asset manager is shut down")
)

// Info describes an indexed file. Name is the slash separated path relative
// to the asset root.
type Info struct {
	Name     string
	Path     string
	Type     AssetType
	Modified time.Time
}

type Asset struct {
	Info
	Data     interface{}
	LoadedAt time.Time
}

type FnOnLoaded func(asset *Asset, err error)
type FnOnChange func(info Info)

// Manager indexes the files under a root directory and loads them on
// demand. With watching enabled, files created or written on disk are
// re-indexed and reported to OnChange listeners. Load callbacks and change
// notifications only ever run inside Dispatch.
type Manager struct {
	root    string
	jobs    *jobs.JobSystem
	events  *core.EventBus
	loaders map[AssetType]Loader

	mutex  sync.RWMutex
	assets map[string]Info

	// main thread only
	listeners map[string][]FnOnChange

	pendingMutex sync.Mutex
	completed    []func()
	changed      []string

	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup
	closed  bool
}

// NewManager creates a manager for root. js may be nil, in which case
// LoadAsync reads on the calling goroutine.
func NewManager(root string, js *jobs.JobSystem) *Manager {
	return &Manager{
		root:      filepath.Clean(root),
		jobs:      js,
		loaders:   defaultLoaders(),
		assets:    make(map[string]Info),
		listeners: make(map[string][]FnOnChange),
	}
}

// AttachEvents makes the manager fire EVENT_CODE_ASSET_CHANGED from Dispatch.
func (am *Manager) AttachEvents(events *core.EventBus) {
	am.events = events
}

func (am *Manager) RegisterLoader(assetType AssetType, loader Loader) {
	am.loaders[assetType] = loader
}

func (am *Manager) Root() string {
	return am.root
}

func (am *Manager) Initialize(watch bool) error {
	fi, err := os.Stat(am.root)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return fmt.Errorf("asset root %s is not a directory", am.root)
	}

	if watch {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		am.watcher = w
		am.done = make(chan struct{})
	}

	if err := am.addRecursive(am.root); err != nil {
		am.Shutdown()
		return err
	}

	if am.watcher != nil {
		am.wg.Add(1)
		go am.start()
	}

	core.LogInfo("Asset manager indexed %d files under %s (watch=%t).", am.Len(), am.root, watch)
	return nil
}

// Shutdown stops the watcher. Pending callbacks are dropped.
func (am *Manager) Shutdown() {
	am.mutex.Lock()
	if am.closed {
		am.mutex.Unlock()
		return
	}
	am.closed = true
	am.mutex.Unlock()

	if am.watcher != nil {
		close(am.done)
		am.wg.Wait()
		am.watcher.Close()
	}

	am.pendingMutex.Lock()
	am.completed = nil
	am.changed = nil
	am.pendingMutex.Unlock()
}

func (am *Manager) Has(name string) bool {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	_, ok := am.assets[name]
	return ok
}

// Path returns the file system path of an indexed asset.
func (am *Manager) Path(name string) (string, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	info, ok := am.assets[name]
	return info.Path, ok
}

func (am *Manager) Len() int {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return len(am.assets)
}

// Names lists every indexed asset in lexical order.
func (am *Manager) Names() []string {
	am.mutex.RLock()
	names := make([]string, 0, len(am.assets))
	for name := range am.assets {
		names = append(names, name)
	}
	am.mutex.RUnlock()
	sort.Strings(names)
	return names
}

// Load reads an asset synchronously using the loader registered for its type.
func (am *Manager) Load(name string) (*Asset, error) {
	am.mutex.RLock()
	info, ok := am.assets[name]
	closed := am.closed
	am.mutex.RUnlock()
	if closed {
		return nil, ErrClosed
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, name)
	}

	loader, ok := am.loaders[info.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoLoader, info.Type)
	}
	data, err := loader.Load(info.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}
	return &Asset{
		Info:     info,
		Data:     data,
		LoadedAt: time.Now(),
	}, nil
}

// LoadAsync reads the asset on the job system. fn is called from Dispatch.
func (am *Manager) LoadAsync(name string, fn FnOnLoaded) {
	if am.jobs == nil {
		asset, err := am.Load(name)
		am.complete(func() { fn(asset, err) })
		return
	}

	err := am.jobs.Submit(jobs.Job{
		Name: "load " + name,
		Run: func() (interface{}, error) {
			return am.Load(name)
		},
		OnComplete: func(result interface{}) {
			asset := result.(*Asset)
			am.complete(func() { fn(asset, nil) })
		},
		OnFailure: func(err error) {
			am.complete(func() { fn(nil, err) })
		},
	})
	if err != nil {
		am.complete(func() { fn(nil, err) })
	}
}

// OnChange registers fn for changes to the named asset. It must be called
// from the main thread.
func (am *Manager) OnChange(name string, fn FnOnChange) {
	am.listeners[name] = append(am.listeners[name], fn)
}

// Dispatch runs completed loads and change listeners. It is called once per
// frame by the application loop.
func (am *Manager) Dispatch() {
	am.pendingMutex.Lock()
	completed := am.completed
	changed := am.changed
	am.completed = nil
	am.changed = nil
	am.pendingMutex.Unlock()

	for _, fn := range completed {
		fn()
	}

	seen := make(map[string]struct{}, len(changed))
	for _, name := range changed {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		am.mutex.RLock()
		info, ok := am.assets[name]
		am.mutex.RUnlock()
		if !ok {
			continue
		}
		core.LogDebug("Asset changed: %s", name)
		for _, fn := range am.listeners[name] {
			fn(info)
		}
		if am.events != nil {
			am.events.Fire(core.EventContext{
				Type:   core.EVENT_CODE_ASSET_CHANGED,
				Sender: am,
				Data:   &core.AssetEvent{Name: info.Name, Path: info.Path},
			})
		}
	}
}

func (am *Manager) complete(fn func()) {
	am.pendingMutex.Lock()
	am.completed = append(am.completed, fn)
	am.pendingMutex.Unlock()
}

func (am *Manager) start() {
	defer am.wg.Done()
	for {
		select {
		case e, ok := <-am.watcher.Events:
			if !ok {
				return
			}
			am.handleWatchEvent(e)

		case err, ok := <-am.watcher.Errors:
			if !ok {
				return
			}
			core.LogError("asset watcher: %s", err)

		case <-am.done:
			return
		}
	}
}

func (am *Manager) handleWatchEvent(e fsnotify.Event) {
	switch {
	case e.Op&(fsnotify.Create|fsnotify.Write) != 0:
		fi, err := os.Stat(e.Name)
		if err != nil {
			return
		}
		if fi.IsDir() {
			if e.Op&fsnotify.Create != 0 {
				if err := am.addRecursive(e.Name); err != nil {
					core.LogWarn("failed to watch %s: %s", e.Name, err)
				}
			}
			return
		}
		if name, ok := am.indexFile(e.Name, fi); ok {
			am.pendingMutex.Lock()
			am.changed = append(am.changed, name)
			am.pendingMutex.Unlock()
		}

	case e.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		// A removed path may have been a directory; fsnotify drops the
		// watch by itself, so only the index needs pruning.
		am.removePath(e.Name)
	}
}

// addRecursive indexes every file under path and watches every directory.
func (am *Manager) addRecursive(path string) error {
	return filepath.WalkDir(path, func(walkPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if am.watcher != nil {
				return am.watcher.Add(walkPath)
			}
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		am.indexFile(walkPath, fi)
		return nil
	})
}

func (am *Manager) indexFile(path string, fi fs.FileInfo) (string, bool) {
	assetType := determineAssetType(path)
	if assetType == AssetTypeNone {
		return "", false
	}
	name, err := am.nameOf(path)
	if err != nil {
		return "", false
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.assets[name] = Info{
		Name:     name,
		Path:     path,
		Type:     assetType,
		Modified: fi.ModTime(),
	}
	return name, true
}

func (am *Manager) removePath(path string) {
	name, err := am.nameOf(path)
	if err != nil {
		return
	}
	prefix := name + "/"

	am.mutex.Lock()
	defer am.mutex.Unlock()
	for n := range am.assets {
		if n == name || strings.HasPrefix(n, prefix) {
			delete(am.assets, n)
		}
	}
}

func (am *Manager) nameOf(path string) (string, error) {
	rel, err := filepath.Rel(am.root, path)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}
