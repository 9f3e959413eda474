package vulkan

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"unsafe"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/vignette/engine/core"
	"github.com/spaghettifunk/vignette/engine/renderer"
)

const validationLayerName = "VK_LAYER_KHRONOS_validation"

type frameState uint8

const (
	frameIdle frameState = iota
	frameRecording
	// The swapchain could not provide an image; the frame is dropped.
	frameSkipped
)

// Backend clears and presents the swapchain image of a window every frame.
type Backend struct {
	context     *VulkanContext
	surface     renderer.VulkanSurface
	options     renderer.Options
	initialized bool

	FrameNumber uint64
	frame       frameState
	clearColor  renderer.Color
}

func New() *Backend {
	return &Backend{}
}

func (vr *Backend) Initialize(surface renderer.Surface, options renderer.Options) error {
	vs, ok := surface.(renderer.VulkanSurface)
	if !ok {
		return fmt.Errorf("vulkan backend cannot use a %s surface: %w", surface.Kind(), renderer.ErrUnsupportedSurface)
	}
	vr.surface = vs
	vr.options = options
	vr.clearColor = options.ClearColor
	vr.context = &VulkanContext{
		VSync:      options.VSync,
		QueueLocks: NewVulkanQueueLocks(),
	}

	if err := vr.initialize(); err != nil {
		vr.teardown()
		return err
	}
	vr.initialized = true
	core.LogInfo("Vulkan renderer initialized successfully.")
	return nil
}

func (vr *Backend) initialize() error {
	procAddr := vr.surface.InstanceProcAddress()
	if procAddr == nil {
		return errors.New("vkGetInstanceProcAddr is not available")
	}
	vk.SetGetInstanceProcAddr(procAddr)

	if err := vk.Init(); err != nil {
		return fmt.Errorf("failed to initialize vulkan: %w", err)
	}

	vr.context.FramebufferWidth, vr.context.FramebufferHeight = vr.surface.FramebufferSize()

	if err := vr.createInstance(); err != nil {
		return err
	}

	if vr.options.Validation {
		core.LogDebug("Creating Vulkan debugger...")
		debugCreateInfo := vk.DebugReportCallbackCreateInfo{
			SType:       vk.StructureTypeDebugReportCallbackCreateInfo,
			Flags:       vk.DebugReportFlags(vk.DebugReportErrorBit | vk.DebugReportWarningBit | vk.DebugReportPerformanceWarningBit),
			PfnCallback: dbgCallbackFunc,
		}
		var dbg vk.DebugReportCallback
		if err := vk.Error(vk.CreateDebugReportCallback(vr.context.Instance, &debugCreateInfo, vr.context.Allocator, &dbg)); err != nil {
			return fmt.Errorf("vk.CreateDebugReportCallback failed: %w", err)
		}
		vr.context.debugMessenger = dbg
		core.LogDebug("Vulkan debugger created.")
	}

	// Surface
	core.LogDebug("Creating Vulkan surface...")
	handle, err := vr.surface.CreateVulkanSurface(vr.context.Instance)
	if err != nil {
		return fmt.Errorf("failed to create window surface: %w", err)
	}
	vr.context.Surface = vk.SurfaceFromPointer(handle)
	core.LogDebug("Vulkan surface created.")

	if err := DeviceCreate(vr.context); err != nil {
		return err
	}

	sc, err := SwapchainCreate(vr.context, vr.context.FramebufferWidth, vr.context.FramebufferHeight)
	if err != nil {
		return err
	}
	vr.context.Swapchain = sc
	vr.context.FramebufferWidth = sc.Extent.Width
	vr.context.FramebufferHeight = sc.Extent.Height

	rp, err := RenderpassCreate(vr.context, 0, 0, float32(vr.context.FramebufferWidth), float32(vr.context.FramebufferHeight))
	if err != nil {
		return err
	}
	vr.context.MainRenderpass = rp

	if err := vr.regenerateFramebuffers(); err != nil {
		return err
	}
	if err := vr.createCommandBuffers(); err != nil {
		return err
	}
	return vr.createSyncObjects()
}

func (vr *Backend) createInstance() error {
	appInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         uint32(vk.MakeVersion(1, 0, 0)),
		ApplicationVersion: uint32(vk.MakeVersion(1, 0, 0)),
		PApplicationName:   VulkanSafeString(vr.options.ApplicationName),
		PEngineName:        VulkanSafeString("Vignette"),
	}

	createInfo := vk.InstanceCreateInfo{
		SType:            vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: appInfo,
	}

	// The window reports the generic surface extension plus its platform one.
	requiredExtensions := append([]string{}, vr.surface.RequiredInstanceExtensions()...)
	if runtime.GOOS == "darwin" {
		requiredExtensions = append(requiredExtensions,
			"VK_KHR_portability_enumeration",
			"VK_KHR_get_physical_device_properties2",
		)
		// VK_INSTANCE_CREATE_ENUMERATE_PORTABILITY_BIT_KHR
		createInfo.Flags |= 1
	}

	var layers []string
	if vr.options.Validation {
		requiredExtensions = append(requiredExtensions, vk.ExtDebugReportExtensionName)

		core.LogInfo("Validation layers enabled. Enumerating...")
		available, err := instanceLayers()
		if err != nil {
			return err
		}
		if !available[validationLayerName] {
			return fmt.Errorf("required validation layer is missing: %s", validationLayerName)
		}
		layers = append(layers, validationLayerName)
	}
	for _, ext := range requiredExtensions {
		core.LogDebug("Required extension: %s", ext)
	}

	createInfo.EnabledExtensionCount = uint32(len(requiredExtensions))
	createInfo.PpEnabledExtensionNames = VulkanSafeStrings(requiredExtensions)
	createInfo.EnabledLayerCount = uint32(len(layers))
	createInfo.PpEnabledLayerNames = VulkanSafeStrings(layers)

	if res := vk.CreateInstance(&createInfo, vr.context.Allocator, &vr.context.Instance); res != vk.Success {
		return fmt.Errorf("failed in creating the Vulkan Instance: %s", VulkanResultString(res))
	}
	if err := vk.InitInstance(vr.context.Instance); err != nil {
		return err
	}
	core.LogInfo("Vulkan Instance created.")
	return nil
}

func instanceLayers() (map[string]bool, error) {
	var count uint32
	if res := vk.EnumerateInstanceLayerProperties(&count, nil); res != vk.Success {
		return nil, fmt.Errorf("failed to enumerate instance layers: %s", VulkanResultString(res))
	}
	properties := make([]vk.LayerProperties, count)
	if count > 0 {
		if res := vk.EnumerateInstanceLayerProperties(&count, properties); res != vk.Success {
			return nil, fmt.Errorf("failed to enumerate instance layers: %s", VulkanResultString(res))
		}
	}
	names := make(map[string]bool, count)
	for i := range properties {
		properties[i].Deref()
		names[cString(properties[i].LayerName[:])] = true
	}
	return names, nil
}

func (vr *Backend) createSyncObjects() error {
	frames := int(vr.context.Swapchain.MaxFramesInFlight)
	vr.context.ImageAvailableSemaphores = make([]vk.Semaphore, frames)
	vr.context.QueueCompleteSemaphores = make([]vk.Semaphore, frames)
	vr.context.InFlightFences = make([]*VulkanFence, frames)

	semaphoreCreateInfo := vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
	}
	for i := 0; i < frames; i++ {
		if res := vk.CreateSemaphore(vr.context.Device.LogicalDevice, &semaphoreCreateInfo, vr.context.Allocator, &vr.context.ImageAvailableSemaphores[i]); res != vk.Success {
			return fmt.Errorf("failed to create image available semaphore: %s", VulkanResultString(res))
		}
		if res := vk.CreateSemaphore(vr.context.Device.LogicalDevice, &semaphoreCreateInfo, vr.context.Allocator, &vr.context.QueueCompleteSemaphores[i]); res != vk.Success {
			return fmt.Errorf("failed to create queue complete semaphore: %s", VulkanResultString(res))
		}

		// Created signaled so the first frame does not wait on a frame
		// that was never submitted.
		f, err := NewFence(vr.context, true)
		if err != nil {
			return err
		}
		vr.context.InFlightFences[i] = f
	}

	// Fences here are owned by InFlightFences.
	vr.context.ImagesInFlight = make([]*VulkanFence, vr.context.Swapchain.ImageCount)
	return nil
}

func (vr *Backend) Terminate() {
	if vr.context == nil {
		return
	}
	vr.teardown()
	vr.initialized = false
	vr.frame = frameIdle
	core.LogInfo("Vulkan renderer terminated.")
}

// teardown destroys whatever was created, in the opposite order of creation.
func (vr *Backend) teardown() {
	ctx := vr.context
	hasDevice := ctx.Device != nil && ctx.Device.LogicalDevice != nil
	if hasDevice {
		vk.DeviceWaitIdle(ctx.Device.LogicalDevice)

		for i := range ctx.ImageAvailableSemaphores {
			if ctx.ImageAvailableSemaphores[i] != vk.NullSemaphore {
				vk.DestroySemaphore(ctx.Device.LogicalDevice, ctx.ImageAvailableSemaphores[i], ctx.Allocator)
			}
		}
		for i := range ctx.QueueCompleteSemaphores {
			if ctx.QueueCompleteSemaphores[i] != vk.NullSemaphore {
				vk.DestroySemaphore(ctx.Device.LogicalDevice, ctx.QueueCompleteSemaphores[i], ctx.Allocator)
			}
		}
		for _, f := range ctx.InFlightFences {
			if f != nil {
				f.Destroy(ctx)
			}
		}
		ctx.ImageAvailableSemaphores = nil
		ctx.QueueCompleteSemaphores = nil
		ctx.InFlightFences = nil
		ctx.ImagesInFlight = nil

		vr.freeCommandBuffers()
		ctx.GraphicsCommandBuffers = nil

		if ctx.Swapchain != nil {
			vr.destroyFramebuffers()
		}
		if ctx.MainRenderpass != nil {
			ctx.MainRenderpass.Destroy(ctx)
			ctx.MainRenderpass = nil
		}
		if ctx.Swapchain != nil {
			ctx.Swapchain.Destroy(ctx)
			ctx.Swapchain = nil
		}
	}

	core.LogDebug("Destroying Vulkan device...")
	DeviceDestroy(ctx)
	ctx.Device = nil

	if ctx.Instance == nil {
		return
	}
	if ctx.Surface != vk.NullSurface {
		core.LogDebug("Destroying Vulkan surface...")
		vk.DestroySurface(ctx.Instance, ctx.Surface, ctx.Allocator)
		ctx.Surface = vk.NullSurface
	}
	if ctx.debugMessenger != vk.NullDebugReportCallback {
		core.LogDebug("Destroying Vulkan debugger...")
		vk.DestroyDebugReportCallback(ctx.Instance, ctx.debugMessenger, ctx.Allocator)
		ctx.debugMessenger = vk.NullDebugReportCallback
	}
	core.LogDebug("Destroying Vulkan instance...")
	vk.DestroyInstance(ctx.Instance, ctx.Allocator)
	ctx.Instance = nil
}

// Resized flags the swapchain for recreation at the start of the next frame.
func (vr *Backend) Resized(width, height uint32) {
	if vr.context == nil {
		return
	}
	vr.context.FramebufferSizeGeneration++
	core.LogInfo("Vulkan renderer backend resized: w/h/gen: %d/%d/%d", width, height, vr.context.FramebufferSizeGeneration)
}

func (vr *Backend) Clear(color renderer.Color) {
	vr.clearColor = color
}

func (vr *Backend) BeginRender() error {
	if !vr.initialized {
		return renderer.ErrNotInitialized
	}
	if vr.frame != frameIdle {
		return renderer.ErrFrameInProgress
	}
	vr.clearColor = vr.options.ClearColor
	ctx := vr.context

	if ctx.RecreatingSwapchain {
		vr.frame = frameSkipped
		return nil
	}

	// Check if the framebuffer has been resized. If so, a new swapchain must be created.
	if ctx.FramebufferSizeGeneration != ctx.FramebufferSizeLastGeneration {
		if err := vr.recreateSwapchain(); err != nil && !errors.Is(err, core.ErrSwapchainBooting) {
			return err
		}
		vr.frame = frameSkipped
		return nil
	}

	// Wait for the execution of the current frame to complete. The fence being free will allow this one to move on.
	if err := ctx.InFlightFences[ctx.CurrentFrame].Wait(ctx, math.MaxUint64); err != nil {
		return err
	}

	imageIndex, ok, err := ctx.Swapchain.AcquireNextImageIndex(ctx, math.MaxUint64, ctx.ImageAvailableSemaphores[ctx.CurrentFrame], vk.NullFence)
	if err != nil {
		return err
	}
	if !ok {
		ctx.FramebufferSizeGeneration++
		vr.frame = frameSkipped
		return nil
	}
	ctx.ImageIndex = imageIndex

	commandBuffer := ctx.GraphicsCommandBuffers[ctx.ImageIndex]
	commandBuffer.Reset()
	if err := commandBuffer.Begin(false, false, false); err != nil {
		return err
	}
	vr.frame = frameRecording
	return nil
}

func (vr *Backend) EndRender() error {
	switch vr.frame {
	case frameIdle:
		return renderer.ErrFrameNotStarted
	case frameSkipped:
		vr.frame = frameIdle
		return nil
	}
	vr.frame = frameIdle
	ctx := vr.context
	commandBuffer := ctx.GraphicsCommandBuffers[ctx.ImageIndex]

	ctx.MainRenderpass.Begin(commandBuffer, ctx.Swapchain.Framebuffers[ctx.ImageIndex].Handle, vr.clearColor)
	ctx.MainRenderpass.End(commandBuffer)
	if err := commandBuffer.End(); err != nil {
		return err
	}

	// Make sure the previous frame is not using this image.
	if inFlight := ctx.ImagesInFlight[ctx.ImageIndex]; inFlight != nil {
		if err := inFlight.Wait(ctx, math.MaxUint64); err != nil {
			return err
		}
	}
	// Mark the image fence as in-use by this frame.
	ctx.ImagesInFlight[ctx.ImageIndex] = ctx.InFlightFences[ctx.CurrentFrame]

	if err := ctx.InFlightFences[ctx.CurrentFrame].Reset(ctx); err != nil {
		return err
	}

	// The colour attachment write waits for the acquired image to be available.
	submitInfo := vk.SubmitInfo{
		SType:                vk.StructureTypeSubmitInfo,
		WaitSemaphoreCount:   1,
		PWaitSemaphores:      []vk.Semaphore{ctx.ImageAvailableSemaphores[ctx.CurrentFrame]},
		PWaitDstStageMask:    []vk.PipelineStageFlags{vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit)},
		CommandBufferCount:   1,
		PCommandBuffers:      []vk.CommandBuffer{commandBuffer.Handle},
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{ctx.QueueCompleteSemaphores[ctx.CurrentFrame]},
	}
	res := ctx.QueueLocks.Do(ctx.Device.GraphicsQueueIndex, func() vk.Result {
		return vk.QueueSubmit(ctx.Device.GraphicsQueue, 1, []vk.SubmitInfo{submitInfo}, ctx.InFlightFences[ctx.CurrentFrame].Handle)
	})
	if res != vk.Success {
		return fmt.Errorf("vkQueueSubmit failed with result: %s", VulkanResultString(res))
	}
	commandBuffer.UpdateSubmitted()

	// Give the image back to the swapchain.
	ok, err := ctx.Swapchain.Present(ctx, ctx.Device.PresentQueue, ctx.QueueCompleteSemaphores[ctx.CurrentFrame], ctx.ImageIndex)
	if err != nil {
		return err
	}
	if !ok {
		ctx.FramebufferSizeGeneration++
	}
	vr.FrameNumber++
	return nil
}

func (vr *Backend) createCommandBuffers() error {
	ctx := vr.context
	ctx.GraphicsCommandBuffers = make([]*VulkanCommandBuffer, ctx.Swapchain.ImageCount)
	for i := range ctx.GraphicsCommandBuffers {
		cb, err := NewVulkanCommandBuffer(ctx, ctx.Device.GraphicsCommandPool, true)
		if err != nil {
			return err
		}
		ctx.GraphicsCommandBuffers[i] = cb
	}
	core.LogDebug("Vulkan command buffers created.")
	return nil
}

func (vr *Backend) freeCommandBuffers() {
	ctx := vr.context
	for _, cb := range ctx.GraphicsCommandBuffers {
		if cb != nil {
			cb.Free(ctx, ctx.Device.GraphicsCommandPool)
		}
	}
}

func (vr *Backend) regenerateFramebuffers() error {
	ctx := vr.context
	swapchain := ctx.Swapchain
	swapchain.Framebuffers = make([]*VulkanFramebuffer, swapchain.ImageCount)
	for i := range swapchain.Framebuffers {
		fb, err := FramebufferCreate(ctx, ctx.MainRenderpass, ctx.FramebufferWidth, ctx.FramebufferHeight, []vk.ImageView{swapchain.Views[i]})
		if err != nil {
			return err
		}
		swapchain.Framebuffers[i] = fb
	}
	return nil
}

func (vr *Backend) destroyFramebuffers() {
	for _, fb := range vr.context.Swapchain.Framebuffers {
		if fb != nil {
			fb.Destroy(vr.context)
		}
	}
	vr.context.Swapchain.Framebuffers = nil
}

// recreateSwapchain returns core.ErrSwapchainBooting when the window cannot
// be drawn to yet; the generation stays stale so the next frame retries.
func (vr *Backend) recreateSwapchain() error {
	ctx := vr.context
	if ctx.RecreatingSwapchain {
		return core.ErrSwapchainBooting
	}

	// Detect if the window is too small to be drawn to
	width, height := vr.surface.FramebufferSize()
	if width == 0 || height == 0 {
		core.LogDebug("Swapchain recreation skipped, window is < 1 in a dimension.")
		return core.ErrSwapchainBooting
	}

	ctx.RecreatingSwapchain = true
	defer func() { ctx.RecreatingSwapchain = false }()

	vk.DeviceWaitIdle(ctx.Device.LogicalDevice)
	for i := range ctx.ImagesInFlight {
		ctx.ImagesInFlight[i] = nil
	}

	support, err := DeviceQuerySwapchainSupport(ctx.Device.PhysicalDevice, ctx.Surface)
	if err != nil {
		return err
	}
	ctx.Device.SwapchainSupport = support

	vr.freeCommandBuffers()
	vr.destroyFramebuffers()

	sc, err := ctx.Swapchain.Recreate(ctx, width, height)
	if err != nil {
		return err
	}
	ctx.Swapchain = sc
	ctx.FramebufferWidth = sc.Extent.Width
	ctx.FramebufferHeight = sc.Extent.Height
	ctx.MainRenderpass.X = 0
	ctx.MainRenderpass.Y = 0
	ctx.MainRenderpass.W = float32(ctx.FramebufferWidth)
	ctx.MainRenderpass.H = float32(ctx.FramebufferHeight)

	if err := vr.regenerateFramebuffers(); err != nil {
		return err
	}
	if err := vr.createCommandBuffers(); err != nil {
		return err
	}
	ctx.ImagesInFlight = make([]*VulkanFence, sc.ImageCount)

	ctx.FramebufferSizeLastGeneration = ctx.FramebufferSizeGeneration
	core.LogInfo("Swapchain recreated (%dx%d).", ctx.FramebufferWidth, ctx.FramebufferHeight)
	return nil
}

func dbgCallbackFunc(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType, object uint64, location uint64, messageCode int32, pLayerPrefix string, pMessage string, pUserData unsafe.Pointer) vk.Bool32 {
	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		core.LogError("[%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit) != 0:
		core.LogWarn("[%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportPerformanceWarningBit) != 0:
		core.LogWarn("PERFORMANCE: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	default:
		core.LogDebug("[%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	}
	return vk.Bool32(vk.False)
}
