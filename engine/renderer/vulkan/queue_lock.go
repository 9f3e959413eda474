package vulkan

import (
	"sync"

	vk "github.com/goki/vulkan"
)

// VulkanQueueLocks serializes access to queues, which must be externally
// synchronized. Graphics and present can be the same queue family, so the
// locks are keyed by family index.
type VulkanQueueLocks struct {
	mu    sync.Mutex
	locks map[int32]*sync.Mutex
}

func NewVulkanQueueLocks() *VulkanQueueLocks {
	return &VulkanQueueLocks{
		locks: make(map[int32]*sync.Mutex),
	}
}

func (ql *VulkanQueueLocks) lock(queueFamilyIndex int32) *sync.Mutex {
	ql.mu.Lock()
	defer ql.mu.Unlock()

	l, exists := ql.locks[queueFamilyIndex]
	if !exists {
		l = &sync.Mutex{}
		ql.locks[queueFamilyIndex] = l
	}
	return l
}

// Do runs fn while holding the lock of the queue family.
func (ql *VulkanQueueLocks) Do(queueFamilyIndex int32, fn func() vk.Result) vk.Result {
	l := ql.lock(queueFamilyIndex)
	l.Lock()
	defer l.Unlock()

	return fn()
}
