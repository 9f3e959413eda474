package renderer

import "unsafe"

type SurfaceKind uint8

const (
	SurfaceNone SurfaceKind = iota
	SurfaceGLFW
)

func (k SurfaceKind) String() string {
	switch k {
	case SurfaceGLFW:
		return "glfw"
	default:
		return "none"
	}
}

// Surface is an opaque handle to the native drawable of a window.
type Surface interface {
	Kind() SurfaceKind
	FramebufferSize() (width, height uint32)
}

// VulkanSurface is a Surface a Vulkan instance can present to.
type VulkanSurface interface {
	Surface
	// InstanceProcAddress is the loader entry point (vkGetInstanceProcAddr).
	InstanceProcAddress() unsafe.Pointer
	RequiredInstanceExtensions() []string
	// CreateVulkanSurface returns a VkSurfaceKHR handle for instance.
	CreateVulkanSurface(instance interface{}) (uintptr, error)
}

// NullSurface is used by windows that have nothing to present to.
type NullSurface struct {
	Width  uint32
	Height uint32
}

func (NullSurface) Kind() SurfaceKind { return SurfaceNone }

func (s NullSurface) FramebufferSize() (uint32, uint32) { return s.Width, s.Height }
