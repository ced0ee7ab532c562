package camera

import (
	"math"
	"sync"

	"github.com/kestrelrender/kestrel/common"
)

type cameraImpl struct {
	mu *sync.Mutex

	up [3]float32

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix              [16]float32
	projectionMatrix        [16]float32
	viewProjectionMatrix    [16]float32
	inverseProjectionMatrix [16]float32

	infiniteProj   bool
	eyeSeparation  float32
	stereoViews    [2][16]float32

	controller CameraController
}

// Camera defines the interface for the camera system.
// The camera holds perspective settings and computes view/projection matrices
// from an attached CameraController each frame via Update().
type Camera interface {
	// Up returns the camera's up vector.
	//
	// Returns:
	//   - x, y, z: up vector components
	Up() (x, y, z float32)

	// Fov returns the field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// ViewMatrix returns the current 4x4 view matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the view matrix
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the current 4x4 projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the projection matrix
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns the current combined view-projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the combined view-projection matrix
	ViewProjectionMatrix() [16]float32

	// InverseProjectionMatrix returns the inverse of the current projection matrix
	// as 16 floats (column-major), the form light.GPULightCullUniforms.InvProj
	// carries.
	//
	// Returns:
	//   - [16]float32: the inverse projection matrix
	InverseProjectionMatrix() [16]float32

	// Controller returns the attached CameraController.
	// Returns nil if no controller is attached.
	//
	// Returns:
	//   - CameraController: the attached controller or nil
	Controller() CameraController

	// Update reads position/target from controller and recomputes matrices.
	// Should be called once per frame (typically in the tick callback).
	// If no controller is attached, this method does nothing.
	Update()

	// SetUp sets the camera's up vector.
	//
	// Parameters:
	//   - x, y, z: up vector components
	SetUp(x, y, z float32)

	// SetFov sets the field of view in radians and recomputes matrices.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// SetAspect sets the aspect ratio (width / height) and recomputes matrices.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetNear sets the near clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - near: near plane distance
	SetNear(near float32)

	// SetFar sets the far clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - far: far plane distance
	SetFar(far float32)

	// SetController attaches a CameraController to the camera.
	//
	// Parameters:
	//   - ctrl: the controller to attach
	SetController(ctrl CameraController)

	// InfiniteProjection reports whether ProjectionMatrix returns an
	// infinite-far-plane projection instead of one clipped at Far().
	InfiniteProjection() bool

	// SetInfiniteProjection switches between a far-clipped and an
	// infinite-far-plane projection and recomputes matrices.
	SetInfiniteProjection(infinite bool)

	// EyeSeparation returns the stereo interpupillary distance in world
	// units. Zero means stereo rendering is not in use.
	EyeSeparation() float32

	// SetEyeSeparation sets the stereo interpupillary distance and
	// recomputes the per-eye view matrices.
	SetEyeSeparation(separation float32)

	// StereoViewMatrix returns the view matrix for the given eye, offset
	// from the camera's main view matrix along its right vector by half
	// EyeSeparation in each direction.
	StereoViewMatrix(eye Eye) [16]float32
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with default perspective settings.
// A controller must be attached via SetController or WithController option
// before position/target data is available.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:                   &sync.Mutex{},
		up:                   [3]float32{0, 1, 0},
		fov:                  45.0 * (math.Pi / 180.0), // radians
		aspect:               1.0,
		near:                 0.1,
		far:                  100.0,
		viewMatrix:           [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1},
		projectionMatrix:     [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1},
		viewProjectionMatrix: [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1},
	}
	for _, option := range options {
		option(c)
	}
	if c.controller != nil {
		c.updateMatrices()
	}
	return c
}

func (c *cameraImpl) Up() (x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up[0], c.up[1], c.up[2]
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) InverseProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inverseProjectionMatrix
}

func (c *cameraImpl) SetUp(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = [3]float32{x, y, z}
	c.updateMatrices()
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateMatrices()
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateMatrices()
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.controller == nil {
		return
	}
	c.updateMatrices()
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
}

func (c *cameraImpl) InfiniteProjection() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.infiniteProj
}

func (c *cameraImpl) SetInfiniteProjection(infinite bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.infiniteProj = infinite
	c.updateMatrices()
}

func (c *cameraImpl) EyeSeparation() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eyeSeparation
}

func (c *cameraImpl) SetEyeSeparation(separation float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.eyeSeparation = separation
	c.updateMatrices()
}

func (c *cameraImpl) StereoViewMatrix(eye Eye) [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stereoViews[eye]
}

// updateMatrices recalculates the view, projection, view-projection, and inverse projection matrices.
// It reads position and target from the attached controller. This is a no-op when the controller is nil.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	if c.controller == nil {
		return
	}

	px, py, pz := c.controller.Position()
	tx, ty, tz := c.controller.Target()

	common.LookAt(c.viewMatrix[:],
		px, py, pz,
		tx, ty, tz,
		c.up[0], c.up[1], c.up[2],
	)

	if c.infiniteProj {
		common.InfinitePerspective(c.projectionMatrix[:], c.fov, c.aspect, c.near)
	} else {
		common.Perspective(c.projectionMatrix[:], c.fov, c.aspect, c.near, c.far)
	}

	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
	common.Invert4(c.inverseProjectionMatrix[:], c.projectionMatrix[:])

	c.updateStereoViews(px, py, pz, tx, ty, tz)
}

// updateStereoViews recomputes the per-eye view matrices by offsetting the
// eye position along the camera's right vector (forward x up) by half
// EyeSeparation in each direction, keeping both eyes looking at the same
// target. Caller must hold the mutex.
func (c *cameraImpl) updateStereoViews(px, py, pz, tx, ty, tz float32) {
	fx, fy, fz := tx-px, ty-py, tz-pz
	rx := fy*c.up[2] - fz*c.up[1]
	ry := fz*c.up[0] - fx*c.up[2]
	rz := fx*c.up[1] - fy*c.up[0]
	length := float32(math.Sqrt(float64(rx*rx + ry*ry + rz*rz)))
	if length > 1e-6 {
		rx, ry, rz = rx/length, ry/length, rz/length
	}

	half := c.eyeSeparation / 2
	for _, e := range [2]Eye{EyeLeft, EyeRight} {
		sign := float32(1)
		if e == EyeLeft {
			sign = -1
		}
		ox, oy, oz := px+rx*half*sign, py+ry*half*sign, pz+rz*half*sign
		common.LookAt(c.stereoViews[e][:],
			ox, oy, oz,
			tx+rx*half*sign, ty+ry*half*sign, tz+rz*half*sign,
			c.up[0], c.up[1], c.up[2],
		)
	}
}
